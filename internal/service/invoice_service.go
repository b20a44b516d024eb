package service

import (
	"context"

	"veristack/internal/domain"
	"veristack/internal/port"
)

// InvoiceService provides CRUD over invoices.
type InvoiceService interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	Get(ctx context.Context, id int64, include port.InvoiceInclude) (*domain.Invoice, error)
	List(ctx context.Context, filter port.InvoiceFilter) ([]domain.Invoice, int, error)
	Delete(ctx context.Context, id int64) error
}

type invoiceService struct {
	invoices port.InvoiceRepository
}

func NewInvoiceService(invoices port.InvoiceRepository) InvoiceService {
	return &invoiceService{invoices: invoices}
}

func (s *invoiceService) Create(ctx context.Context, inv *domain.Invoice) error {
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusDraft
	}
	return s.invoices.Create(ctx, inv)
}

func (s *invoiceService) Get(ctx context.Context, id int64, include port.InvoiceInclude) (*domain.Invoice, error) {
	return s.invoices.FindByID(ctx, id, include)
}

func (s *invoiceService) List(ctx context.Context, filter port.InvoiceFilter) ([]domain.Invoice, int, error) {
	return s.invoices.List(ctx, filter)
}

func (s *invoiceService) Delete(ctx context.Context, id int64) error {
	return s.invoices.Delete(ctx, id)
}
