// Command extract runs one extraction job locally, without the queue, and
// optionally writes the result as an XLSX workbook.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finparse/statement-extractor/internal/bootstrap"
	"github.com/finparse/statement-extractor/internal/config"
	"github.com/finparse/statement-extractor/internal/core/domain"
	"github.com/finparse/statement-extractor/internal/export"
)

func main() {
	var (
		file  = flag.String("file", "", "path to the statement PDF")
		bank  = flag.String("bank", "", "expected bank name")
		month = flag.Int("month", 0, "expected statement month (1-12)")
		year  = flag.Int("year", 0, "expected statement year")
		mode  = flag.String("mode", bootstrap.ModeAI, "extraction backend: ai or table")
		out   = flag.String("out", "", "write transactions to this XLSX file")
	)
	flag.Parse()

	if *file == "" || *bank == "" || *month < 1 || *month > 12 || *year == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	categories, err := config.LoadCategories(cfg.CategoriesPath)
	if err != nil {
		log.Fatalf("load categories: %v", err)
	}

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{
		Mode: *mode,
		Progress: func(progress domain.JobProgress, _ domain.SecurityBreakdown) {
			log.Printf("status=%s page=%d/%d done=%d failed=%d",
				progress.Status, progress.CurrentPage, progress.TotalPages,
				progress.CompletedPages, progress.FailedPages)
		},
	})
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	expected := domain.ExpectedStatement{
		Bank:  *bank,
		Month: time.Month(*month),
		Year:  *year,
	}
	result, err := app.Extractor.Extract(ctx, *file, expected, categories)
	if err != nil {
		log.Fatalf("extract: %v", err)
	}

	if *out != "" {
		raw, err := export.NewWriter(app.Logger).WriteXLSX(result)
		if err != nil {
			log.Fatalf("export xlsx: %v", err)
		}
		if err := os.WriteFile(*out, raw, 0o644); err != nil {
			log.Fatalf("write xlsx: %v", err)
		}
		log.Printf("wrote %d transactions to %s", len(result.Transactions), *out)
		return
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	fmt.Println(string(encoded))
}
