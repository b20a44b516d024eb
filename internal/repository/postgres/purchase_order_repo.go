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

type purchaseOrderRepo struct {
	db *sqlx.DB
}

// NewPurchaseOrderRepo creates a new PostgreSQL-backed PurchaseOrderRepository.
func NewPurchaseOrderRepo(db *sqlx.DB) port.PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	now := time.Now().UTC()
	po.CreatedAt = now
	po.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("purchaseOrderRepo.Create: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO purchase_orders (order_number, vendor_id, status, order_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		po.OrderNumber, po.VendorID, po.Status, po.OrderDate, po.CreatedAt, po.UpdatedAt,
	).Scan(&po.ID)
	if err != nil {
		return fmt.Errorf("purchaseOrderRepo.Create: %w", err)
	}

	for i := range po.Items {
		li := &po.Items[i]
		li.PurchaseOrderID = po.ID
		err = tx.QueryRowxContext(ctx, `
			INSERT INTO purchase_order_items (purchase_order_id, item_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			li.PurchaseOrderID, li.ItemID, li.Quantity, li.UnitPrice,
		).Scan(&li.ID)
		if err != nil {
			return fmt.Errorf("purchaseOrderRepo.Create: item %d: %w", li.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("purchaseOrderRepo.Create: commit: %w", err)
	}
	return nil
}

func (r *purchaseOrderRepo) FindByID(ctx context.Context, id int64, includeItems bool) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	err := r.db.GetContext(ctx, &po, "SELECT * FROM purchase_orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPurchaseOrderNotFound
		}
		return nil, fmt.Errorf("purchaseOrderRepo.FindByID: %w", err)
	}

	if includeItems {
		err = r.db.SelectContext(ctx, &po.Items,
			"SELECT * FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id", id)
		if err != nil {
			return nil, fmt.Errorf("purchaseOrderRepo.FindByID: items: %w", err)
		}
	}
	return &po, nil
}

func (r *purchaseOrderRepo) List(ctx context.Context, limit, offset int) ([]domain.PurchaseOrder, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM purchase_orders"); err != nil {
		return nil, 0, fmt.Errorf("purchaseOrderRepo.List: count: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	var orders []domain.PurchaseOrder
	err := r.db.SelectContext(ctx, &orders,
		"SELECT * FROM purchase_orders ORDER BY order_date DESC, id DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("purchaseOrderRepo.List: %w", err)
	}
	return orders, total, nil
}

func (r *purchaseOrderRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM purchase_orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("purchaseOrderRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPurchaseOrderNotFound
	}
	return nil
}
