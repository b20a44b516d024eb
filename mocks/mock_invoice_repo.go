package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"veristack/internal/domain"
	"veristack/internal/port"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepo) FindByID(ctx context.Context, id int64, include port.InvoiceInclude) (*domain.Invoice, error) {
	args := m.Called(ctx, id, include)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) List(ctx context.Context, filter port.InvoiceFilter) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepo) FindDuplicateByNumberAndVendor(ctx context.Context, invoiceNumber string, vendorID, excludeID int64) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceNumber, vendorID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) FindPriceHistoryForItems(ctx context.Context, itemIDs []int64, limit int) ([]domain.ItemPriceHistory, error) {
	args := m.Called(ctx, itemIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemPriceHistory), args.Error(1)
}
