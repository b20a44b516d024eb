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

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO invoices (invoice_number, vendor_id, purchase_order_id, total_amount, invoice_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		inv.InvoiceNumber, inv.VendorID, inv.PurchaseOrderID, inv.TotalAmount,
		inv.InvoiceDate, inv.Status, inv.CreatedAt, inv.UpdatedAt,
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	for i := range inv.Items {
		li := &inv.Items[i]
		li.InvoiceID = inv.ID
		err = tx.QueryRowxContext(ctx, `
			INSERT INTO invoice_items (invoice_id, item_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			li.InvoiceID, li.ItemID, li.Quantity, li.UnitPrice,
		).Scan(&li.ID)
		if err != nil {
			return fmt.Errorf("invoiceRepo.Create: item %d: %w", li.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Create: commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) FindByID(ctx context.Context, id int64, include port.InvoiceInclude) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE id = $1 AND deleted_at IS NULL", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.FindByID: %w", err)
	}

	if include.Items {
		err = r.db.SelectContext(ctx, &inv.Items,
			"SELECT * FROM invoice_items WHERE invoice_id = $1 ORDER BY id", id)
		if err != nil {
			return nil, fmt.Errorf("invoiceRepo.FindByID: items: %w", err)
		}
	}

	if include.PurchaseOrder && inv.PurchaseOrderID != nil {
		var po domain.PurchaseOrder
		err = r.db.GetContext(ctx, &po,
			"SELECT * FROM purchase_orders WHERE id = $1", *inv.PurchaseOrderID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("invoiceRepo.FindByID: purchase order: %w", err)
			}
		} else {
			err = r.db.SelectContext(ctx, &po.Items,
				"SELECT * FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id", po.ID)
			if err != nil {
				return nil, fmt.Errorf("invoiceRepo.FindByID: purchase order items: %w", err)
			}
			inv.PurchaseOrder = &po
		}
	}

	if include.DeliveryNotes {
		err = r.db.SelectContext(ctx, &inv.DeliveryNotes,
			"SELECT * FROM delivery_notes WHERE invoice_id = $1 ORDER BY received_at", id)
		if err != nil {
			return nil, fmt.Errorf("invoiceRepo.FindByID: delivery notes: %w", err)
		}
		for i := range inv.DeliveryNotes {
			note := &inv.DeliveryNotes[i]
			err = r.db.SelectContext(ctx, &note.Items,
				"SELECT * FROM delivery_note_items WHERE delivery_note_id = $1 ORDER BY id", note.ID)
			if err != nil {
				return nil, fmt.Errorf("invoiceRepo.FindByID: delivery note items: %w", err)
			}
		}
	}

	return &inv, nil
}

func (r *invoiceRepo) List(ctx context.Context, filter port.InvoiceFilter) ([]domain.Invoice, int, error) {
	where := "WHERE deleted_at IS NULL"
	args := []any{}
	n := 1
	if filter.VendorID != nil {
		where += fmt.Sprintf(" AND vendor_id = $%d", n)
		args = append(args, *filter.VendorID)
		n++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, *filter.Status)
		n++
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: count: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf("SELECT * FROM invoices %s ORDER BY invoice_date DESC, id DESC LIMIT $%d OFFSET $%d", where, n, n+1)
	args = append(args, limit, filter.Offset)

	var invoices []domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL",
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) FindDuplicateByNumberAndVendor(ctx context.Context, invoiceNumber string, vendorID, excludeID int64) (*domain.Invoice, error) {
	var dup domain.Invoice
	err := r.db.GetContext(ctx, &dup, `
		SELECT * FROM invoices
		WHERE invoice_number = $1
		  AND vendor_id = $2
		  AND id != $3
		  AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1`,
		invoiceNumber, vendorID, excludeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("invoiceRepo.FindDuplicateByNumberAndVendor: %w", err)
	}
	return &dup, nil
}

func (r *invoiceRepo) FindPriceHistoryForItems(ctx context.Context, itemIDs []int64, limit int) ([]domain.ItemPriceHistory, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, item_id, price, recorded_at FROM (
			SELECT h.*, ROW_NUMBER() OVER (PARTITION BY item_id ORDER BY recorded_at DESC) AS rn
			FROM item_price_history h
			WHERE item_id IN (?)
		) windowed
		WHERE rn <= ?
		ORDER BY item_id, recorded_at DESC`,
		itemIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.FindPriceHistoryForItems: %w", err)
	}

	var history []domain.ItemPriceHistory
	if err := r.db.SelectContext(ctx, &history, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("invoiceRepo.FindPriceHistoryForItems: %w", err)
	}
	return history, nil
}
