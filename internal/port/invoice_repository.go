package port

import (
	"context"

	"veristack/internal/domain"
)

// InvoiceInclude selects which related aggregates FindByID loads eagerly.
type InvoiceInclude struct {
	Items         bool
	PurchaseOrder bool
	DeliveryNotes bool
}

// InvoiceFilter narrows List results.
type InvoiceFilter struct {
	VendorID *int64
	Status   *domain.InvoiceStatus
	Limit    int
	Offset   int
}

// InvoiceRepository provides access to invoices and the read paths the
// validation engine depends on.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	FindByID(ctx context.Context, id int64, include InvoiceInclude) (*domain.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, int, error)
	Delete(ctx context.Context, id int64) error

	// FindDuplicateByNumberAndVendor returns another non-deleted invoice with
	// the same invoice number and vendor, excluding excludeID, or nil when
	// none exists.
	FindDuplicateByNumberAndVendor(ctx context.Context, invoiceNumber string, vendorID, excludeID int64) (*domain.Invoice, error)

	// FindPriceHistoryForItems returns up to limit most-recent price rows per
	// item id, newest first within each item.
	FindPriceHistoryForItems(ctx context.Context, itemIDs []int64, limit int) ([]domain.ItemPriceHistory, error)
}
