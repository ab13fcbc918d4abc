package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/kbuenafe/dr2xlsx/internal/delivery"
	"github.com/kbuenafe/dr2xlsx/internal/extraction"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	fs := ff.NewFlagSet("dr2xlsx")
	var (
		port          = fs.IntLong("port", 8080, "HTTP server port")
		dbPath        = fs.StringLong("db", "dr2xlsx.db", "Database file path")
		storagePath   = fs.StringLong("storage", "./uploads", "Upload storage directory")
		extractorType = fs.StringLong("extractor", "gemini", "Extraction backend: 'gemini' or 'ollama'")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GOOGLE_API_KEY / GEMINI_API_KEY)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		ollamaURL     = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel   = fs.StringLong("ollama-model", "llava", "Ollama vision model name")
		authUser      = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass      = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion   = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("DR2XLSX"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	slog.Info("Initializing database...")
	db, err := delivery.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	extractor, err := buildExtractor(*extractorType, *geminiKey, *geminiModel, *ollamaURL, *ollamaModel)
	if err != nil {
		slog.Error("Failed to initialize extractor", "error", err)
		os.Exit(1)
	}
	defer extractor.Close()

	slog.Info("Initializing storage...")
	store, err := delivery.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	service := delivery.NewService(db, extractor, store)

	server := delivery.NewServer(service, delivery.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	})

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}

// buildExtractor selects the extraction backend. A missing Gemini credential
// is not fatal: the service degrades to the mock backend so the table and
// export flows stay usable without an API key.
func buildExtractor(extractorType, geminiKey, geminiModel, ollamaURL, ollamaModel string) (extraction.Extractor, error) {
	switch extractorType {
	case "gemini":
		apiKey := geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GOOGLE_API_KEY")
		}
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Warn("No API key configured, running in degraded mock mode. Set --gemini-key, GOOGLE_API_KEY or GEMINI_API_KEY.")
			return extraction.NewMock(), nil
		}
		slog.Info("Initializing Gemini extractor...", "model", geminiModel)
		return extraction.NewGemini(apiKey, geminiModel)
	case "ollama":
		slog.Info("Initializing Ollama extractor...", "url", ollamaURL, "model", ollamaModel)
		return extraction.NewOllama(ollamaURL, ollamaModel)
	default:
		return nil, fmt.Errorf("invalid extractor type %q (valid: gemini, ollama)", extractorType)
	}
}
