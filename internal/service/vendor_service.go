package service

import (
	"context"

	"veristack/internal/domain"
	"veristack/internal/port"
)

// VendorService provides CRUD over vendors.
type VendorService interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	Get(ctx context.Context, id int64) (*domain.Vendor, error)
	List(ctx context.Context, limit, offset int) ([]domain.Vendor, int, error)
	Update(ctx context.Context, vendor *domain.Vendor) error
	Delete(ctx context.Context, id int64) error
}

type vendorService struct {
	vendors port.VendorRepository
}

func NewVendorService(vendors port.VendorRepository) VendorService {
	return &vendorService{vendors: vendors}
}

func (s *vendorService) Create(ctx context.Context, vendor *domain.Vendor) error {
	return s.vendors.Create(ctx, vendor)
}

func (s *vendorService) Get(ctx context.Context, id int64) (*domain.Vendor, error) {
	return s.vendors.FindByID(ctx, id)
}

func (s *vendorService) List(ctx context.Context, limit, offset int) ([]domain.Vendor, int, error) {
	return s.vendors.List(ctx, limit, offset)
}

func (s *vendorService) Update(ctx context.Context, vendor *domain.Vendor) error {
	return s.vendors.Update(ctx, vendor)
}

func (s *vendorService) Delete(ctx context.Context, id int64) error {
	return s.vendors.Delete(ctx, id)
}
