package export

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/finparse/statement-extractor/internal/core/domain"
)

func TestWriteXLSX(t *testing.T) {
	result := &domain.ExtractionResult{
		Transactions: []domain.Transaction{
			{
				ID:          "tx-1",
				Date:        time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
				Description: "UPI PAYMENT [REDACTED]",
				Amount:      decimal.NewFromFloat(-500),
				Category:    "Food",
			},
			{
				ID:          "tx-2",
				Date:        time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC),
				Description: "SALARY ACME",
				Amount:      decimal.NewFromFloat(85000.50),
				Category:    "Income",
			},
		},
		Validation: domain.ValidationResult{IsValid: true, DetectedBank: "HDFC", Confidence: 0.95},
		Security:   domain.SecurityBreakdown{AccountNumbers: 2, Emails: 1},
		Analytics: domain.Analytics{
			TotalPages:        3,
			SuccessfulPages:   3,
			TotalTransactions: 2,
			ProcessingTime:    42 * time.Second,
		},
	}

	raw, err := NewWriter(slog.New(slog.DiscardHandler)).WriteXLSX(result)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(transactionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "2025-01-05", rows[1][0])
	assert.Equal(t, "UPI PAYMENT [REDACTED]", rows[1][1])
	assert.Equal(t, "Food", rows[1][3])
	assert.Equal(t, "SALARY ACME", rows[2][1])

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.NotEmpty(t, summary)
	assert.Equal(t, "Total Pages", summary[0][0])
	assert.Equal(t, "3", summary[0][1])
}

func TestWriteXLSXNilResult(t *testing.T) {
	_, err := NewWriter(nil).WriteXLSX(nil)
	require.Error(t, err)
}
