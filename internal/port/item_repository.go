package port

import (
	"context"

	"veristack/internal/domain"
)

// ItemRepository provides CRUD access to items and their price history.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context, limit, offset int) ([]domain.Item, int, error)
	Delete(ctx context.Context, id int64) error
	RecordPrice(ctx context.Context, entry *domain.ItemPriceHistory) error
}
