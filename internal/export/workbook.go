// Package export renders validation results into spreadsheet workbooks for
// review outside the API.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"veristack/internal/domain"
)

const flaggedSheet = "Flagged Validations"

var flaggedHeader = []string{
	"Invoice ID", "Rule Type", "Severity", "Status", "Details", "Flagged At",
}

// FlaggedWorkbook builds an xlsx workbook listing the flagged validation rows
// of one invoice, one row per record.
func FlaggedWorkbook(invoiceID int64, records []domain.InvoiceValidation) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", flaggedSheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	for col, title := range flaggedHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(flaggedSheet, cell, title); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for i, rec := range records {
		row := []any{
			rec.InvoiceID,
			string(rec.RuleType),
			string(rec.Severity),
			string(rec.Status),
			rec.Details,
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(flaggedSheet, cell, value); err != nil {
				return nil, fmt.Errorf("writing row for invoice %d: %w", invoiceID, err)
			}
		}
	}

	return f, nil
}
