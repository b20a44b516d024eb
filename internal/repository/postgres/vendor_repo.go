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

type vendorRepo struct {
	db *sqlx.DB
}

// NewVendorRepo creates a new PostgreSQL-backed VendorRepository.
func NewVendorRepo(db *sqlx.DB) port.VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) Create(ctx context.Context, vendor *domain.Vendor) error {
	now := time.Now().UTC()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now

	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO vendors (name, tax_id, email, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		vendor.Name, vendor.TaxID, vendor.Email, vendor.IsActive, vendor.CreatedAt, vendor.UpdatedAt,
	).Scan(&vendor.ID)
	if err != nil {
		return fmt.Errorf("vendorRepo.Create: %w", err)
	}
	return nil
}

func (r *vendorRepo) FindByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	var vendor domain.Vendor
	err := r.db.GetContext(ctx, &vendor, "SELECT * FROM vendors WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, fmt.Errorf("vendorRepo.FindByID: %w", err)
	}
	return &vendor, nil
}

func (r *vendorRepo) List(ctx context.Context, limit, offset int) ([]domain.Vendor, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM vendors"); err != nil {
		return nil, 0, fmt.Errorf("vendorRepo.List: count: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	var vendors []domain.Vendor
	err := r.db.SelectContext(ctx, &vendors,
		"SELECT * FROM vendors ORDER BY name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("vendorRepo.List: %w", err)
	}
	return vendors, total, nil
}

func (r *vendorRepo) Update(ctx context.Context, vendor *domain.Vendor) error {
	vendor.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		UPDATE vendors SET name = $1, tax_id = $2, email = $3, is_active = $4, updated_at = $5
		WHERE id = $6`,
		vendor.Name, vendor.TaxID, vendor.Email, vendor.IsActive, vendor.UpdatedAt, vendor.ID)
	if err != nil {
		return fmt.Errorf("vendorRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}

func (r *vendorRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM vendors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("vendorRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}
