package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"veristack/internal/domain"
	"veristack/internal/service"
)

type ItemHandler struct {
	items service.ItemService
}

func NewItemHandler(items service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

type itemRequest struct {
	SKU       string  `json:"sku" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
}

// Create registers a new item.
// POST /api/v1/items
func (h *ItemHandler) Create(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	item := &domain.Item{
		SKU:       req.SKU,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
	}
	if err := h.items.Create(c.Request.Context(), item); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, item)
}

// Get fetches one item.
// GET /api/v1/items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, item)
}

// List returns items in a paginated envelope.
// GET /api/v1/items
func (h *ItemHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	items, total, err := h.items.List(c.Request.Context(), limit, offset)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Delete removes an item.
// DELETE /api/v1/items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type recordPriceRequest struct {
	Price      float64    `json:"price" binding:"required,gt=0"`
	RecordedAt *time.Time `json:"recorded_at"`
}

// RecordPrice appends a price observation to an item's history. The history
// feeds the price variance check on invoice validation.
// POST /api/v1/items/:id/prices
func (h *ItemHandler) RecordPrice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req recordPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	entry := &domain.ItemPriceHistory{
		ItemID: id,
		Price:  req.Price,
	}
	if req.RecordedAt != nil {
		entry.RecordedAt = *req.RecordedAt
	} else {
		entry.RecordedAt = time.Now().UTC()
	}

	if err := h.items.RecordPrice(c.Request.Context(), entry); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, entry)
}
