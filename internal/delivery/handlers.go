package delivery

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kbuenafe/dr2xlsx/internal/extraction"
)

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// corsError writes a plain-text error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// writeJSONError writes the API error shape: {error, details?}
func writeJSONError(w http.ResponseWriter, code int, message, details string) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	body := map[string]string{"error": message}
	if details != "" {
		body["details"] = details
	}
	json.NewEncoder(w).Encode(body)
}

// extractResponse is the body of a successful POST /api/extract
type extractResponse struct {
	ID      string                `json:"id"`
	Mock    bool                  `json:"mock,omitempty"`
	Warning string                `json:"warning,omitempty"`
	Data    []extraction.LineItem `json:"data"`
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleExtract accepts a multipart image upload, runs the extraction
// pipeline against it, and returns the extracted rows. No file-type or
// file-size validation happens here; the extractor deals with whatever
// arrives.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	// The size argument is only a memory threshold for multipart parsing
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		writeJSONError(w, http.StatusBadRequest, "Error parsing form", "")
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "No file uploaded", "")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeJSONError(w, http.StatusInternalServerError, "Error reading file", "")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = guessContentType(header.Filename)
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	ext, err := s.service.ProcessImage(r.Context(), header.Filename, data, contentType)
	if err != nil {
		s.writeExtractionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(extractResponse{
		ID:      ext.ID,
		Mock:    ext.Mock,
		Warning: ext.Warning,
		Data:    ext.Items,
	}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeExtractionError maps pipeline failures onto the API error shape.
// Full diagnostic context (including the raw model response on parse
// failures) goes to the log; the client gets a summary.
func (s *Server) writeExtractionError(w http.ResponseWriter, err error) {
	var malformed *extraction.MalformedResponseError
	if errors.As(err, &malformed) {
		slog.Error("AI response was not valid JSON", "error", malformed.Err, "response", malformed.Raw)
		writeJSONError(w, http.StatusInternalServerError, "Failed to parse AI response", malformed.Err.Error())
		return
	}

	var transport *extraction.TransportError
	if errors.As(err, &transport) {
		slog.Error("Extraction service call failed", "error", transport.Err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to process image", transport.Err.Error())
		return
	}

	slog.Error("Error processing image", "error", err)
	writeJSONError(w, http.StatusInternalServerError, "Failed to process image", err.Error())
}

// guessContentType maps common upload extensions when the browser omits the
// part's content type
func guessContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// handleListExtractions returns all extractions
func (s *Server) handleListExtractions(w http.ResponseWriter, r *http.Request) {
	extractions, err := s.service.ListExtractions()
	if err != nil {
		slog.Error("Error listing extractions", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(extractions); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetExtraction returns a single extraction
func (s *Server) handleGetExtraction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Extraction ID required", http.StatusBadRequest)
		return
	}
	ext, err := s.service.GetExtraction(id)
	if err != nil {
		corsError(w, "Extraction not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ext); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetExtractionFile returns the original uploaded file, which backs
// the image preview in the UI
func (s *Server) handleGetExtractionFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Extraction ID required", http.StatusBadRequest)
		return
	}
	data, contentType, err := s.service.GetExtractionFile(id)
	if err != nil {
		corsError(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleDeleteExtraction deletes an extraction
func (s *Server) handleDeleteExtraction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Extraction ID required", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteExtraction(id); err != nil {
		corsError(w, "Error deleting extraction", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateItem overwrites one field of one extracted row
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid row index", "")
		return
	}

	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	ext, err := s.service.UpdateItemField(id, index, req.Field, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownField), errors.Is(err, ErrIndexOutOfRange):
			writeJSONError(w, http.StatusBadRequest, err.Error(), "")
		default:
			writeJSONError(w, http.StatusNotFound, "Extraction not found", "")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ext); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleExport streams the xlsx workbook for an extraction's current rows
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Extraction ID required", http.StatusBadRequest)
		return
	}

	wb, filename, err := s.service.Export(id)
	if err != nil {
		corsError(w, "Extraction not found", http.StatusNotFound)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := wb.Write(w); err != nil {
		slog.Error("Error writing workbook", "error", err)
	}
}

// handleStaticCSS serves the CSS file
func (s *Server) handleStaticCSS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/css")
	w.Write(appCSS)
}

// handleStaticJS serves the JavaScript file
func (s *Server) handleStaticJS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write(appJS)
}
