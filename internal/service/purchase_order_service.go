package service

import (
	"context"

	"veristack/internal/domain"
	"veristack/internal/port"
)

// PurchaseOrderService provides CRUD over purchase orders.
type PurchaseOrderService interface {
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	Get(ctx context.Context, id int64, includeItems bool) (*domain.PurchaseOrder, error)
	List(ctx context.Context, limit, offset int) ([]domain.PurchaseOrder, int, error)
	Delete(ctx context.Context, id int64) error
}

type purchaseOrderService struct {
	orders port.PurchaseOrderRepository
}

func NewPurchaseOrderService(orders port.PurchaseOrderRepository) PurchaseOrderService {
	return &purchaseOrderService{orders: orders}
}

func (s *purchaseOrderService) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	if po.Status == "" {
		po.Status = domain.PurchaseOrderStatusOpen
	}
	return s.orders.Create(ctx, po)
}

func (s *purchaseOrderService) Get(ctx context.Context, id int64, includeItems bool) (*domain.PurchaseOrder, error) {
	return s.orders.FindByID(ctx, id, includeItems)
}

func (s *purchaseOrderService) List(ctx context.Context, limit, offset int) ([]domain.PurchaseOrder, int, error) {
	return s.orders.List(ctx, limit, offset)
}

func (s *purchaseOrderService) Delete(ctx context.Context, id int64) error {
	return s.orders.Delete(ctx, id)
}
