package export_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veristack/internal/domain"
	"veristack/internal/export"
)

func TestFlaggedWorkbook(t *testing.T) {
	records := []domain.InvoiceValidation{
		{
			ID:        uuid.New(),
			InvoiceID: 42,
			RuleType:  domain.RuleDuplicateInvoiceNumber,
			Severity:  domain.SeverityCritical,
			Status:    domain.ValidationStatusFlagged,
			Details:   "invoice number INV-001 already used by invoice 7 for the same vendor",
			CreatedAt: time.Date(2026, 4, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:        uuid.New(),
			InvoiceID: 42,
			RuleType:  domain.RuleAmountThresholdExceeded,
			Severity:  domain.SeverityWarning,
			Status:    domain.ValidationStatusFlagged,
			Details:   "invoice amount 20000.00 exceeds threshold 10000.00",
			CreatedAt: time.Date(2026, 4, 1, 10, 30, 0, 0, time.UTC),
		},
	}

	f, err := export.FlaggedWorkbook(42, records)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := "Flagged Validations"

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice ID", header)

	ruleType, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "DUPLICATE_INVOICE_NUMBER", ruleType)

	severity, err := f.GetCellValue(sheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "WARNING", severity)

	flaggedAt, err := f.GetCellValue(sheet, "F2")
	require.NoError(t, err)
	assert.Equal(t, "2026-04-01 10:30:00", flaggedAt)
}

func TestFlaggedWorkbook_NoRecords(t *testing.T) {
	f, err := export.FlaggedWorkbook(42, nil)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Flagged Validations")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
