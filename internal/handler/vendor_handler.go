package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"veristack/internal/domain"
	"veristack/internal/service"
)

type VendorHandler struct {
	vendors service.VendorService
}

func NewVendorHandler(vendors service.VendorService) *VendorHandler {
	return &VendorHandler{vendors: vendors}
}

type vendorRequest struct {
	Name     string  `json:"name" binding:"required"`
	TaxID    *string `json:"tax_id"`
	Email    *string `json:"email" binding:"omitempty,email"`
	IsActive *bool   `json:"is_active"`
}

// Create registers a new vendor.
// POST /api/v1/vendors
func (h *VendorHandler) Create(c *gin.Context) {
	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	vendor := &domain.Vendor{
		Name:     req.Name,
		TaxID:    req.TaxID,
		Email:    req.Email,
		IsActive: true,
	}
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}

	if err := h.vendors.Create(c.Request.Context(), vendor); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, vendor)
}

// Get fetches one vendor.
// GET /api/v1/vendors/:id
func (h *VendorHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	vendor, err := h.vendors.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, vendor)
}

// List returns vendors in a paginated envelope.
// GET /api/v1/vendors
func (h *VendorHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	vendors, total, err := h.vendors.List(c.Request.Context(), limit, offset)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondPaginated(c, vendors, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update replaces a vendor's mutable fields.
// PUT /api/v1/vendors/:id
func (h *VendorHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	vendor := &domain.Vendor{
		ID:       id,
		Name:     req.Name,
		TaxID:    req.TaxID,
		Email:    req.Email,
		IsActive: true,
	}
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}

	if err := h.vendors.Update(c.Request.Context(), vendor); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, vendor)
}

// Delete removes a vendor.
// DELETE /api/v1/vendors/:id
func (h *VendorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.vendors.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
