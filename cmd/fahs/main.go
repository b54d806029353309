package main

import (
	"log"
	"log/slog"

	"github.com/obeidat/fahs/internal/ai"
	claudeai "github.com/obeidat/fahs/internal/ai/claude"
	ollamaai "github.com/obeidat/fahs/internal/ai/ollama"
	"github.com/obeidat/fahs/internal/config"
	"github.com/obeidat/fahs/internal/db"
	"github.com/obeidat/fahs/internal/logging"
	"github.com/obeidat/fahs/internal/report"
	"github.com/obeidat/fahs/internal/service"
	"github.com/obeidat/fahs/internal/store"
	"github.com/obeidat/fahs/internal/taxonomy"
	"github.com/obeidat/fahs/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	inspectionStore := store.NewInspectionStore(database)
	clientStore := store.NewClientStore(database)
	invoiceStore := store.NewInvoiceStore(database)

	assistant := newAssistant(cfg, logger)
	if assistant == nil {
		return
	}

	tax, err := taxonomy.Load()
	if err != nil {
		logger.Error("failed to load checklist taxonomy", "error", err)
		return
	}

	renderer := report.New(logger, report.Options{
		CompanyName:   cfg.CompanyName,
		WatermarkText: cfg.WatermarkText,
		FontDir:       cfg.FontDir,
		LatinFont:     cfg.LatinFont,
		ArabicFont:    cfg.ArabicFont,
	})

	server := web.NewServer(web.Services{
		Inspections: service.NewInspectionService(inspectionStore, assistant, logger),
		Clients:     service.NewClientService(clientStore, logger),
		Invoices:    service.NewInvoiceService(invoiceStore, clientStore, logger),
		Dashboard:   service.NewDashboardService(inspectionStore, clientStore, invoiceStore, logger),
		Renderer:    renderer,
		Assistant:   assistant,
		Taxonomy:    tax,
	}, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newAssistant(cfg *config.Config, logger *slog.Logger) ai.Assistant {
	switch cfg.AIBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Error("CLAUDE_API_KEY is required when AI_BACKEND=claude")
			return nil
		}
		logger.Info("using Claude AI backend", "model", cfg.ClaudeModel)
		return claudeai.New(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	default:
		logger.Info("using Ollama AI backend", "model", cfg.OllamaModel)
		return ollamaai.New(cfg.OllamaHost, cfg.OllamaModel)
	}
}
