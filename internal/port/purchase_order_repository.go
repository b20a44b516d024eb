package port

import (
	"context"

	"veristack/internal/domain"
)

// PurchaseOrderRepository provides CRUD access to purchase orders.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	FindByID(ctx context.Context, id int64, includeItems bool) (*domain.PurchaseOrder, error)
	List(ctx context.Context, limit, offset int) ([]domain.PurchaseOrder, int, error)
	Delete(ctx context.Context, id int64) error
}
