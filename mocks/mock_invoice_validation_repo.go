package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"veristack/internal/domain"
)

// MockInvoiceValidationRepo is a mock implementation of port.InvoiceValidationRepository.
type MockInvoiceValidationRepo struct {
	mock.Mock
}

func (m *MockInvoiceValidationRepo) CreateMany(ctx context.Context, records []domain.InvoiceValidation) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockInvoiceValidationRepo) FindByInvoiceID(ctx context.Context, invoiceID int64) ([]domain.InvoiceValidation, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceValidation), args.Error(1)
}

func (m *MockInvoiceValidationRepo) DeleteByInvoiceID(ctx context.Context, invoiceID int64) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}
