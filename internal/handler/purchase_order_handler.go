package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"veristack/internal/domain"
	"veristack/internal/service"
)

type PurchaseOrderHandler struct {
	orders service.PurchaseOrderService
}

func NewPurchaseOrderHandler(orders service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orders: orders}
}

type createPurchaseOrderItemRequest struct {
	ItemID    int64   `json:"item_id" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"required"`
}

type createPurchaseOrderRequest struct {
	OrderNumber string                           `json:"order_number" binding:"required"`
	VendorID    int64                            `json:"vendor_id" binding:"required"`
	OrderDate   time.Time                        `json:"order_date" binding:"required"`
	Status      string                           `json:"status"`
	Items       []createPurchaseOrderItemRequest `json:"items"`
}

// Create registers a new purchase order with its line items.
// POST /api/v1/purchase-orders
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req createPurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	po := &domain.PurchaseOrder{
		OrderNumber: req.OrderNumber,
		VendorID:    req.VendorID,
		OrderDate:   req.OrderDate,
		Status:      domain.PurchaseOrderStatus(req.Status),
	}
	for _, it := range req.Items {
		po.Items = append(po.Items, domain.PurchaseOrderItem{
			ItemID:    it.ItemID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	if err := h.orders.Create(c.Request.Context(), po); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, po)
}

// Get fetches one purchase order, with line items when ?items=true.
// GET /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	po, err := h.orders.Get(c.Request.Context(), id, c.Query("items") == "true")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, po)
}

// List returns purchase orders in a paginated envelope.
// GET /api/v1/purchase-orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	orders, total, err := h.orders.List(c.Request.Context(), limit, offset)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondPaginated(c, orders, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Delete removes a purchase order.
// DELETE /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
