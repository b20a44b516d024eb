package service

import (
	"context"

	"veristack/internal/domain"
	"veristack/internal/port"
	"veristack/internal/validator"
)

// ValidationService exposes the validation engine to transport layers.
type ValidationService interface {
	// Validate runs a full validation pass and returns the run summary.
	Validate(ctx context.Context, invoiceID int64) (*validator.Summary, error)
	// Results returns the persisted flagged rows for an invoice.
	Results(ctx context.Context, invoiceID int64) ([]domain.InvoiceValidation, error)
}

type validationService struct {
	orchestrator *validator.Orchestrator
	invoices     port.InvoiceRepository
	validations  port.InvoiceValidationRepository
}

func NewValidationService(
	orchestrator *validator.Orchestrator,
	invoices port.InvoiceRepository,
	validations port.InvoiceValidationRepository,
) ValidationService {
	return &validationService{
		orchestrator: orchestrator,
		invoices:     invoices,
		validations:  validations,
	}
}

func (s *validationService) Validate(ctx context.Context, invoiceID int64) (*validator.Summary, error) {
	return s.orchestrator.ValidateInvoice(ctx, invoiceID)
}

func (s *validationService) Results(ctx context.Context, invoiceID int64) ([]domain.InvoiceValidation, error) {
	// Distinguish "no flags" from "no such invoice".
	if _, err := s.invoices.FindByID(ctx, invoiceID, port.InvoiceInclude{}); err != nil {
		return nil, err
	}
	return s.validations.FindByInvoiceID(ctx, invoiceID)
}
