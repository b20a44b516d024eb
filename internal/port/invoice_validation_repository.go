package port

import (
	"context"

	"veristack/internal/domain"
)

// InvoiceValidationRepository persists flagged validation results. Records are
// written in bulk at the end of one orchestration run and removed wholesale
// when an invoice is re-validated.
type InvoiceValidationRepository interface {
	CreateMany(ctx context.Context, records []domain.InvoiceValidation) error
	FindByInvoiceID(ctx context.Context, invoiceID int64) ([]domain.InvoiceValidation, error)
	DeleteByInvoiceID(ctx context.Context, invoiceID int64) error
}
