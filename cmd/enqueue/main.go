// Command enqueue publishes one extraction job for the workers.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/finparse/statement-extractor/internal/config"
	"github.com/finparse/statement-extractor/internal/core/domain"
	"github.com/finparse/statement-extractor/internal/infrastructure/queue/nats"
)

func main() {
	var (
		file  = flag.String("file", "", "path to the statement PDF, reachable by the workers")
		bank  = flag.String("bank", "", "expected bank name")
		month = flag.Int("month", 0, "expected statement month (1-12)")
		year  = flag.Int("year", 0, "expected statement year")
	)
	flag.Parse()

	if *file == "" || *bank == "" || *month < 1 || *month > 12 || *year == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	categories, err := config.LoadCategories(cfg.CategoriesPath)
	if err != nil {
		log.Fatalf("load categories: %v", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		log.Fatalf("connect queue: %v", err)
	}
	defer queue.Close()

	job := domain.StatementJob{
		ID:            uuid.NewString(),
		DocumentPath:  *file,
		ExpectedBank:  *bank,
		ExpectedMonth: time.Month(*month),
		ExpectedYear:  *year,
		Categories:    categories,
		EnqueuedAt:    time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := queue.PublishStatementJob(ctx, job); err != nil {
		log.Fatalf("publish job: %v", err)
	}
	log.Printf("enqueued job %s for %s", job.ID, job.DocumentPath)
}
