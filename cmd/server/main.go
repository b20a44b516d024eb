package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"veristack/internal/auth"
	"veristack/internal/config"
	"veristack/internal/handler"
	"veristack/internal/repository/postgres"
	"veristack/internal/router"
	"veristack/internal/service"
	"veristack/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	vendorRepo := postgres.NewVendorRepo(db)
	itemRepo := postgres.NewItemRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	poRepo := postgres.NewPurchaseOrderRepo(db)
	ruleRepo := postgres.NewValidationRuleRepo(db)
	validationRepo := postgres.NewInvoiceValidationRepo(db)

	// Initialize validation engine
	resolver := validator.NewConfigResolver(ruleRepo, cfg.Validation.ConfigTTL)
	duplicates := validator.NewDuplicateDetector(resolver, invoiceRepo)
	anomalies := validator.NewAnomalyDetector(resolver, cfg.Validation.RuleTimeout)
	orchestrator := validator.NewOrchestrator(
		invoiceRepo, validationRepo, duplicates, anomalies,
		cfg.Validation.PriceHistoryLimit,
	)

	// Initialize services
	vendorSvc := service.NewVendorService(vendorRepo)
	itemSvc := service.NewItemService(itemRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo)
	poSvc := service.NewPurchaseOrderService(poRepo)
	ruleSvc := service.NewRuleService(ruleRepo, resolver)
	validationSvc := service.NewValidationService(orchestrator, invoiceRepo, validationRepo)

	tokens := auth.NewTokenService(cfg.JWT)

	// Setup router
	r := router.New(router.Handlers{
		Health:        handler.NewHealthHandler(db),
		Vendor:        handler.NewVendorHandler(vendorSvc),
		Item:          handler.NewItemHandler(itemSvc),
		Invoice:       handler.NewInvoiceHandler(invoiceSvc),
		PurchaseOrder: handler.NewPurchaseOrderHandler(poSvc),
		Validation:    handler.NewValidationHandler(validationSvc),
		Rule:          handler.NewRuleHandler(ruleSvc),
	}, tokens)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
