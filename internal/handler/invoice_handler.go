package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"veristack/internal/domain"
	"veristack/internal/port"
	"veristack/internal/service"
)

type InvoiceHandler struct {
	invoices service.InvoiceService
}

func NewInvoiceHandler(invoices service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

type createInvoiceItemRequest struct {
	ItemID    int64   `json:"item_id" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"required"`
}

type createInvoiceRequest struct {
	InvoiceNumber   *string                    `json:"invoice_number"`
	VendorID        *int64                     `json:"vendor_id"`
	PurchaseOrderID *int64                     `json:"purchase_order_id"`
	InvoiceDate     time.Time                  `json:"invoice_date" binding:"required"`
	TotalAmount     float64                    `json:"total_amount" binding:"required"`
	Status          string                     `json:"status"`
	Items           []createInvoiceItemRequest `json:"items"`
}

// Create registers a new invoice with its line items.
// POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	inv := &domain.Invoice{
		InvoiceNumber:   req.InvoiceNumber,
		VendorID:        req.VendorID,
		PurchaseOrderID: req.PurchaseOrderID,
		InvoiceDate:     req.InvoiceDate,
		TotalAmount:     req.TotalAmount,
		Status:          domain.InvoiceStatus(req.Status),
	}
	for _, it := range req.Items {
		inv.Items = append(inv.Items, domain.InvoiceItem{
			ItemID:    it.ItemID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	if err := h.invoices.Create(c.Request.Context(), inv); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, inv)
}

// Get fetches one invoice. Related aggregates are loaded when the
// corresponding query flag is set (?items=true&purchase_order=true&delivery_notes=true).
// GET /api/v1/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	include := port.InvoiceInclude{
		Items:         c.Query("items") == "true",
		PurchaseOrder: c.Query("purchase_order") == "true",
		DeliveryNotes: c.Query("delivery_notes") == "true",
	}

	inv, err := h.invoices.Get(c.Request.Context(), id, include)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, inv)
}

// List returns invoices matching the optional vendor_id and status filters.
// GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	filter := port.InvoiceFilter{
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}
	if raw := c.Query("vendor_id"); raw != "" {
		vendorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "vendor_id must be an integer")
			return
		}
		filter.VendorID = &vendorID
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.InvoiceStatus(raw)
		filter.Status = &status
	}

	invoices, total, err := h.invoices.List(c.Request.Context(), filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: filter.Offset, Limit: filter.Limit})
}

// Delete soft-deletes an invoice.
// DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.invoices.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// queryInt parses an integer query parameter, falling back to def.
func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
