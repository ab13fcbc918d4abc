package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kbuenafe/dr2xlsx/internal/extraction"
)

// Edit failures callers may want to branch on
var (
	ErrUnknownField    = errors.New("unknown field")
	ErrIndexOutOfRange = errors.New("row index out of range")
)

// IDGenerator generates unique IDs for extractions
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates IDs using UnixNano timestamp
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles extraction operations
type Service struct {
	db          DB
	extractor   extraction.Extractor
	storage     Storage
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, extractor extraction.Extractor, storage Storage) *Service {
	return &Service{
		db:          db,
		extractor:   extractor,
		storage:     storage,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, extractor extraction.Extractor, storage Storage, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		extractor:   extractor,
		storage:     storage,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// sanitizeFilename cleans up a filename by removing special characters and
// truncating length, since phone uploads arrive with long generated names
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")
	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)

	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}
	if base == "" {
		base = "receipt"
	}

	return base + ext
}

// ProcessImage stores the upload, runs the extractor against it, and
// persists the resulting row set. A prior extraction is never merged into:
// each call produces a fresh Extraction. The stored file is cleaned up if
// extraction or persistence fails.
func (s *Service) ProcessImage(ctx context.Context, filename string, data []byte, contentType string) (*Extraction, error) {
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	cleanFilename := sanitizeFilename(filename)
	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, cleanFilename), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	result, err := s.extractor.Extract(ctx, data, contentType)
	if err != nil {
		slog.Error("Failed to extract line items",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("extracting line items: %w", err)
	}

	items := result.Items
	if items == nil {
		items = []extraction.LineItem{}
	}

	ext := &Extraction{
		ID:          id,
		Filename:    savedPath,
		ContentType: contentType,
		Mock:        result.Mock,
		Warning:     result.Warning,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.SaveExtraction(ext); err != nil {
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("saving extraction to database: %w", err)
	}

	return ext, nil
}

// GetExtraction retrieves an extraction by ID
func (s *Service) GetExtraction(id string) (*Extraction, error) {
	ext, err := s.db.GetExtraction(id)
	if err != nil {
		return nil, fmt.Errorf("getting extraction: %w", err)
	}
	return ext, nil
}

// ListExtractions returns all extractions
func (s *Service) ListExtractions() ([]*Extraction, error) {
	extractions, err := s.db.ListExtractions()
	if err != nil {
		return nil, fmt.Errorf("listing extractions: %w", err)
	}
	return extractions, nil
}

// DeleteExtraction removes an extraction and its stored upload
func (s *Service) DeleteExtraction(id string) error {
	ext, err := s.db.GetExtraction(id)
	if err != nil {
		return fmt.Errorf("getting extraction for deletion: %w", err)
	}

	if err := s.storage.Delete(ext.Filename); err != nil {
		// Log but continue with database deletion
		slog.Warn("Failed to delete file", "filename", ext.Filename, "error", err)
	}

	if err := s.db.DeleteExtraction(id); err != nil {
		return fmt.Errorf("deleting extraction from database: %w", err)
	}
	return nil
}

// GetExtractionFile retrieves the original uploaded file for an extraction
func (s *Service) GetExtractionFile(id string) ([]byte, string, error) {
	ext, err := s.db.GetExtraction(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting extraction: %w", err)
	}

	data, err := s.storage.Get(ext.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting extraction file: %w", err)
	}

	return data, ext.ContentType, nil
}

// itemFieldSetters maps the editable field names to single-field mutations.
// An edit touches exactly one field of one row; everything else is left
// alone.
var itemFieldSetters = map[string]func(*extraction.LineItem, string){
	"date":       func(it *extraction.LineItem, v string) { it.Date = v },
	"qty":        func(it *extraction.LineItem, v string) { it.Qty = v },
	"unit":       func(it *extraction.LineItem, v string) { it.Unit = v },
	"item":       func(it *extraction.LineItem, v string) { it.Item = v },
	"drNumber":   func(it *extraction.LineItem, v string) { it.DRNumber = v },
	"remarks":    func(it *extraction.LineItem, v string) { it.Remarks = v },
	"receivedBy": func(it *extraction.LineItem, v string) { it.ReceivedBy = v },
}

// UpdateItemField overwrites one field of one row, addressed by row index
// and field name. There is no undo; the overwrite is final.
func (s *Service) UpdateItemField(id string, index int, field, value string) (*Extraction, error) {
	ext, err := s.db.GetExtraction(id)
	if err != nil {
		return nil, fmt.Errorf("getting extraction: %w", err)
	}

	if index < 0 || index >= len(ext.Items) {
		return nil, fmt.Errorf("%w: %d (have %d rows)", ErrIndexOutOfRange, index, len(ext.Items))
	}

	setter, ok := itemFieldSetters[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	setter(&ext.Items[index], value)
	ext.UpdatedAt = s.timeSource.Now()

	if err := s.db.SaveExtraction(ext); err != nil {
		return nil, fmt.Errorf("saving extraction: %w", err)
	}

	return ext, nil
}

// Export builds the xlsx workbook for an extraction's current rows and
// returns it with the download filename.
func (s *Service) Export(id string) (*excelize.File, string, error) {
	ext, err := s.db.GetExtraction(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting extraction: %w", err)
	}

	wb, err := BuildWorkbook(ext.Items)
	if err != nil {
		return nil, "", fmt.Errorf("building workbook: %w", err)
	}

	return wb, ExportFilename(s.timeSource.Now()), nil
}
