package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"veristack/internal/domain"
	"veristack/internal/port"
)

type itemRepo struct {
	db *sqlx.DB
}

// NewItemRepo creates a new PostgreSQL-backed ItemRepository.
func NewItemRepo(db *sqlx.DB) port.ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *domain.Item) error {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO items (sku, name, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		item.SKU, item.Name, item.UnitPrice, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("itemRepo.Create: %w", err)
	}
	return nil
}

func (r *itemRepo) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	err := r.db.GetContext(ctx, &item, "SELECT * FROM items WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("itemRepo.FindByID: %w", err)
	}
	return &item, nil
}

func (r *itemRepo) List(ctx context.Context, limit, offset int) ([]domain.Item, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM items"); err != nil {
		return nil, 0, fmt.Errorf("itemRepo.List: count: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	var items []domain.Item
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM items ORDER BY sku LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("itemRepo.List: %w", err)
	}
	return items, total, nil
}

func (r *itemRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("itemRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *itemRepo) RecordPrice(ctx context.Context, entry *domain.ItemPriceHistory) error {
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO item_price_history (item_id, price, recorded_at)
		VALUES ($1, $2, $3)
		RETURNING id`,
		entry.ItemID, entry.Price, entry.RecordedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("itemRepo.RecordPrice: %w", err)
	}
	return nil
}
