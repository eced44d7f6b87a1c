// Package bootstrap wires configuration into a runnable application:
// the PDF splitter, the chosen extraction backend, the job queue and the
// orchestrating use case.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finparse/statement-extractor/internal/config"
	"github.com/finparse/statement-extractor/internal/core/ports"
	"github.com/finparse/statement-extractor/internal/core/usecase"
	"github.com/finparse/statement-extractor/internal/infrastructure/llm/gemini"
	"github.com/finparse/statement-extractor/internal/infrastructure/pdfsplit"
	"github.com/finparse/statement-extractor/internal/infrastructure/queue/nats"
	"github.com/finparse/statement-extractor/internal/infrastructure/resilience"
	"github.com/finparse/statement-extractor/internal/infrastructure/tableextract"
	"github.com/finparse/statement-extractor/internal/layout"
	"github.com/finparse/statement-extractor/internal/observability/logging"
)

// Mode selects the extraction backend.
const (
	ModeAI    = "ai"
	ModeTable = "table"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue     *nats.Queue
	Extractor ports.StatementExtractor

	closeFn func()
}

// Options alters which pieces New assembles. Zero value builds the AI
// worker without a queue.
type Options struct {
	Mode      string
	WithQueue bool
	Progress  ports.ProgressSink
}

func New(ctx context.Context, cfg config.Config, options Options) (*App, error) {
	logger := logging.NewJSONLogger("statement-extractor", cfg.LogLevel)

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	var (
		validator ports.StatementValidator
		pages     ports.PageExtractor
		finalizer ports.CategoryFinalizer
	)
	switch options.Mode {
	case "", ModeAI:
		client, err := gemini.New(ctx, cfg.GeminiModel, executor)
		if err != nil {
			return nil, fmt.Errorf("init gemini: %w", err)
		}
		validator = gemini.NewValidator(client)
		pages = gemini.NewPageProcessor(client)
		finalizer = gemini.NewFinalizer(client)
	case ModeTable:
		validator = tableextract.NewValidator()
		pages = tableextract.New(layout.Config{
			RowTolerance:    cfg.RowTolerance,
			ColumnTolerance: cfg.ColumnTolerance,
		})
		finalizer = tableextract.NewFinalizer()
	default:
		return nil, fmt.Errorf("unknown extraction mode %q", options.Mode)
	}

	uc := usecase.NewExtractStatementUseCase(
		pdfsplit.New(),
		validator,
		pages,
		finalizer,
		usecase.Options{
			Logger:          logger,
			Progress:        options.Progress,
			PageDelay:       cfg.PageDelay(),
			PageTimeout:     cfg.PageTimeout(),
			ValidateTimeout: cfg.ValidateTimeout(),
			FinalizeTimeout: cfg.FinalizeTimeout(),
		},
	)

	app := &App{
		Config:    cfg,
		Logger:    logger,
		Extractor: uc,
		closeFn:   func() {},
	}

	if options.WithQueue {
		queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
			ResilienceExecutor: executor,
		})
		if err != nil {
			return nil, fmt.Errorf("init message queue: %w", err)
		}
		app.Queue = queue
		app.closeFn = queue.Close
	}

	return app, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
