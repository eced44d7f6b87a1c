// Package export renders extraction results as XLSX workbooks.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

// Writer produces XLSX bytes from an extraction result: one sheet of
// transactions plus a summary sheet with analytics and the security
// redaction breakdown.
type Writer struct {
	logger *slog.Logger
}

func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

const (
	transactionsSheet = "Transactions"
	summarySheet      = "Summary"
)

func (w *Writer) WriteXLSX(result *domain.ExtractionResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nil extraction result")
	}
	start := time.Now()

	f := excelize.NewFile()
	if err := writeTransactions(f, result.Transactions); err != nil {
		return nil, err
	}
	if err := writeSummary(f, result); err != nil {
		return nil, err
	}

	// Drop the default sheet that NewFile creates.
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}
	if index, _ := f.GetSheetIndex(transactionsSheet); index != -1 {
		f.SetActiveSheet(index)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	w.logger.Info("export.xlsx.ok",
		"transactions", len(result.Transactions),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeTransactions(f *excelize.File, transactions []domain.Transaction) error {
	if _, err := f.NewSheet(transactionsSheet); err != nil {
		return err
	}

	headers := []string{"Date", "Description", "Amount", "Category", "Transfer"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(transactionsSheet, cell, h); err != nil {
			return err
		}
	}

	row := 2
	for _, tx := range transactions {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(transactionsSheet, cell, v)
		}

		write(1, tx.Date.Format("2006-01-02"))
		write(2, tx.Description)
		amount, _ := tx.Amount.Float64()
		write(3, amount)
		write(4, tx.Category)
		write(5, tx.IsTransfer)
		row++
	}

	_ = f.SetColWidth(transactionsSheet, "A", "A", 12)
	_ = f.SetColWidth(transactionsSheet, "B", "B", 48)
	_ = f.SetColWidth(transactionsSheet, "C", "C", 14)
	_ = f.SetColWidth(transactionsSheet, "D", "D", 20)
	return nil
}

func writeSummary(f *excelize.File, result *domain.ExtractionResult) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	row := 1
	write := func(label string, value any) {
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(summarySheet, labelCell, label)
		_ = f.SetCellValue(summarySheet, valueCell, value)
		row++
	}

	write("Total Pages", result.Analytics.TotalPages)
	write("Successful Pages", result.Analytics.SuccessfulPages)
	write("Failed Pages", result.Analytics.FailedPages)
	write("Total Transactions", result.Analytics.TotalTransactions)
	write("Processing Time", result.Analytics.ProcessingTime.Round(time.Millisecond).String())
	write("Detected Bank", result.Validation.DetectedBank)
	write("Validation Confidence", result.Validation.Confidence)

	row++
	write("Redactions", result.Security.Total())
	for kind, count := range result.Security.ByKind() {
		if count > 0 {
			write("  "+kind, count)
		}
	}

	_ = f.SetColWidth(summarySheet, "A", "A", 24)
	_ = f.SetColWidth(summarySheet, "B", "B", 18)
	return nil
}
