package service

import (
	"context"

	"veristack/internal/domain"
	"veristack/internal/port"
)

// ItemService provides CRUD over items and records price observations used by
// the price-variance rule.
type ItemService interface {
	Create(ctx context.Context, item *domain.Item) error
	Get(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context, limit, offset int) ([]domain.Item, int, error)
	Delete(ctx context.Context, id int64) error
	RecordPrice(ctx context.Context, entry *domain.ItemPriceHistory) error
}

type itemService struct {
	items port.ItemRepository
}

func NewItemService(items port.ItemRepository) ItemService {
	return &itemService{items: items}
}

func (s *itemService) Create(ctx context.Context, item *domain.Item) error {
	return s.items.Create(ctx, item)
}

func (s *itemService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	return s.items.FindByID(ctx, id)
}

func (s *itemService) List(ctx context.Context, limit, offset int) ([]domain.Item, int, error) {
	return s.items.List(ctx, limit, offset)
}

func (s *itemService) Delete(ctx context.Context, id int64) error {
	return s.items.Delete(ctx, id)
}

func (s *itemService) RecordPrice(ctx context.Context, entry *domain.ItemPriceHistory) error {
	if _, err := s.items.FindByID(ctx, entry.ItemID); err != nil {
		return err
	}
	return s.items.RecordPrice(ctx, entry)
}
