package port

import (
	"context"

	"veristack/internal/domain"
)

// VendorRepository provides CRUD access to vendors.
type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	FindByID(ctx context.Context, id int64) (*domain.Vendor, error)
	List(ctx context.Context, limit, offset int) ([]domain.Vendor, int, error)
	Update(ctx context.Context, vendor *domain.Vendor) error
	Delete(ctx context.Context, id int64) error
}
