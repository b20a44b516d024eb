package router

import (
	"github.com/gin-gonic/gin"

	"veristack/internal/auth"
	"veristack/internal/domain"
	"veristack/internal/handler"
	"veristack/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health        *handler.HealthHandler
	Vendor        *handler.VendorHandler
	Item          *handler.ItemHandler
	Invoice       *handler.InvoiceHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Validation    *handler.ValidationHandler
	Rule          *handler.RuleHandler
}

// New builds the gin engine with all routes and middleware mounted.
// Health probes are public; everything under /api/v1 requires a valid token,
// and rule mutation additionally requires the admin role.
func New(h Handlers, tokens *auth.TokenService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())

	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(tokens))

	vendors := api.Group("/vendors")
	{
		vendors.POST("", h.Vendor.Create)
		vendors.GET("", h.Vendor.List)
		vendors.GET("/:id", h.Vendor.Get)
		vendors.PUT("/:id", h.Vendor.Update)
		vendors.DELETE("/:id", h.Vendor.Delete)
	}

	items := api.Group("/items")
	{
		items.POST("", h.Item.Create)
		items.GET("", h.Item.List)
		items.GET("/:id", h.Item.Get)
		items.DELETE("/:id", h.Item.Delete)
		items.POST("/:id/prices", h.Item.RecordPrice)
	}

	invoices := api.Group("/invoices")
	{
		invoices.POST("", h.Invoice.Create)
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.DELETE("/:id", h.Invoice.Delete)

		invoices.POST("/:id/validate", h.Validation.Validate)
		invoices.GET("/:id/validations", h.Validation.Results)
		invoices.GET("/:id/validations/export", h.Validation.Export)
	}

	orders := api.Group("/purchase-orders")
	{
		orders.POST("", h.PurchaseOrder.Create)
		orders.GET("", h.PurchaseOrder.List)
		orders.GET("/:id", h.PurchaseOrder.Get)
		orders.DELETE("/:id", h.PurchaseOrder.Delete)
	}

	rules := api.Group("/validation-rules")
	{
		rules.GET("", h.Rule.List)
		rules.GET("/cache", h.Rule.CacheStats)
		rules.GET("/:id", h.Rule.Get)

		admin := rules.Group("")
		admin.Use(middleware.RequireRole(domain.RoleAdmin))
		admin.PUT("/:id", h.Rule.Update)
		admin.POST("/cache/invalidate", h.Rule.InvalidateCache)
	}

	return r
}
