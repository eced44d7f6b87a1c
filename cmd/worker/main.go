package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finparse/statement-extractor/internal/bootstrap"
	"github.com/finparse/statement-extractor/internal/config"
	"github.com/finparse/statement-extractor/internal/core/domain"
	"github.com/finparse/statement-extractor/internal/core/ports"
	"github.com/finparse/statement-extractor/internal/observability/metrics"
)

const jobTimeout = 30 * time.Minute

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{WithQueue: true})
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	go serveMetrics(cfg.WorkerMetricsPort, workerMetrics)

	log.Printf("worker subscribed to %s", cfg.NATSSubject)
	err = app.Queue.SubscribeStatementJobs(ctx, jobHandler(app.Extractor, workerMetrics))
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}

// jobHandler runs one extraction job per message. A job that fails with
// domain.ErrTemporary (rate limit, broken connection) gets one extra
// attempt before the failure is surfaced.
func jobHandler(extractor ports.StatementExtractor, m *metrics.WorkerMetrics) func(context.Context, domain.StatementJob) error {
	return func(handlerCtx context.Context, job domain.StatementJob) error {
		m.ObserveQueueLag("worker", time.Since(job.EnqueuedAt))
		m.StartJob()
		start := time.Now()

		jobCtx, cancel := context.WithTimeout(handlerCtx, jobTimeout)
		defer cancel()

		result, err := extractor.Extract(jobCtx, job.DocumentPath, job.Expected(), job.Categories)
		if err != nil && domain.IsKind(err, domain.ErrTemporary) {
			log.Printf("job %s hit a temporary failure, retrying once: %v", job.ID, err)
			result, err = extractor.Extract(jobCtx, job.DocumentPath, job.Expected(), job.Categories)
		}

		m.FinishJob("worker", time.Since(start), err)
		if err != nil {
			return err
		}
		m.RecordResult("worker", result)
		return nil
	}
}

func serveMetrics(port string, m *metrics.WorkerMetrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("metrics server error: %v", err)
	}
}
