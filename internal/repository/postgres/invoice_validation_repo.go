package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"veristack/internal/domain"
	"veristack/internal/port"
)

type invoiceValidationRepo struct {
	db *sqlx.DB
}

// NewInvoiceValidationRepo creates a new PostgreSQL-backed InvoiceValidationRepository.
func NewInvoiceValidationRepo(db *sqlx.DB) port.InvoiceValidationRepository {
	return &invoiceValidationRepo{db: db}
}

func (r *invoiceValidationRepo) CreateMany(ctx context.Context, records []domain.InvoiceValidation) error {
	if len(records) == 0 {
		return nil
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO invoice_validations (id, invoice_id, rule_type, severity, status, details, metadata, created_at)
		VALUES (:id, :invoice_id, :rule_type, :severity, :status, :details, :metadata, :created_at)`,
		records)
	if err != nil {
		return fmt.Errorf("invoiceValidationRepo.CreateMany: %w", err)
	}
	return nil
}

func (r *invoiceValidationRepo) FindByInvoiceID(ctx context.Context, invoiceID int64) ([]domain.InvoiceValidation, error) {
	var records []domain.InvoiceValidation
	err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM invoice_validations WHERE invoice_id = $1 ORDER BY created_at, rule_type",
		invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoiceValidationRepo.FindByInvoiceID: %w", err)
	}
	return records, nil
}

func (r *invoiceValidationRepo) DeleteByInvoiceID(ctx context.Context, invoiceID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM invoice_validations WHERE invoice_id = $1", invoiceID)
	if err != nil {
		return fmt.Errorf("invoiceValidationRepo.DeleteByInvoiceID: %w", err)
	}
	return nil
}
