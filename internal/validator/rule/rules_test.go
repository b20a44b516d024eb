package rule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"veristack/internal/domain"
	"veristack/internal/validator/rule"
)

func strptr(s string) *string { return &s }

func defaultConfig(ruleType domain.ValidationRuleType) rule.Config {
	return rule.DefaultFor(ruleType)
}

// --- MissingInvoiceNumber ---

func TestMissingInvoiceNumber_NilNumber(t *testing.T) {
	r := rule.NewMissingInvoiceNumber(defaultConfig(domain.RuleMissingInvoiceNumber))
	res := r.Validate(context.Background(), &domain.Invoice{ID: 1}, nil)

	assert.False(t, res.Passed)
	assert.Equal(t, domain.RuleMissingInvoiceNumber, res.RuleType)
}

func TestMissingInvoiceNumber_WhitespaceOnly(t *testing.T) {
	r := rule.NewMissingInvoiceNumber(defaultConfig(domain.RuleMissingInvoiceNumber))
	res := r.Validate(context.Background(), &domain.Invoice{ID: 1, InvoiceNumber: strptr("   ")}, nil)

	assert.False(t, res.Passed)
}

func TestMissingInvoiceNumber_Present(t *testing.T) {
	r := rule.NewMissingInvoiceNumber(defaultConfig(domain.RuleMissingInvoiceNumber))
	res := r.Validate(context.Background(), &domain.Invoice{ID: 1, InvoiceNumber: strptr("INV-001")}, nil)

	assert.True(t, res.Passed)
}

// --- AmountThresholdExceeded ---

func TestAmountThreshold_ExactlyAtThresholdPasses(t *testing.T) {
	r := rule.NewAmountThresholdExceeded(defaultConfig(domain.RuleAmountThresholdExceeded))
	res := r.Validate(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 10000}, nil)

	assert.True(t, res.Passed)
}

func TestAmountThreshold_JustAboveThresholdFails(t *testing.T) {
	r := rule.NewAmountThresholdExceeded(defaultConfig(domain.RuleAmountThresholdExceeded))
	res := r.Validate(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 10000.01}, nil)

	assert.False(t, res.Passed)
	assert.Equal(t, 10000.01, res.Details["amount"])
	assert.Equal(t, float64(10000), res.Details["threshold"])
}

func TestAmountThreshold_ConfiguredThreshold(t *testing.T) {
	cfg := defaultConfig(domain.RuleAmountThresholdExceeded)
	cfg.Params[rule.ParamThreshold] = 500

	r := rule.NewAmountThresholdExceeded(cfg)
	res := r.Validate(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 600}, nil)

	assert.False(t, res.Passed)
}

// --- RoundAmountPattern ---

func TestRoundAmount_RoundAboveMinimumFails(t *testing.T) {
	r := rule.NewRoundAmountPattern(defaultConfig(domain.RuleRoundAmountPattern))
	res := r.Validate(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 5000}, nil)

	assert.False(t, res.Passed)
	assert.Equal(t, "Round number (divisible by 100)", res.Details["pattern"])
}

func TestRoundAmount_RoundBelowMinimumPasses(t *testing.T) {
	r := rule.NewRoundAmountPattern(defaultConfig(domain.RuleRoundAmountPattern))
	res := r.Validate(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 500}, nil)

	assert.True(t, res.Passed)
}

func TestRoundAmount_NonRoundAmountPasses(t *testing.T) {
	r := rule.NewRoundAmountPattern(defaultConfig(domain.RuleRoundAmountPattern))
	res := r.Validate(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 5432.50}, nil)

	assert.True(t, res.Passed)
}

func TestRoundAmount_ExactlyAtMinimumFails(t *testing.T) {
	r := rule.NewRoundAmountPattern(defaultConfig(domain.RuleRoundAmountPattern))
	res := r.Validate(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 1000}, nil)

	assert.False(t, res.Passed)
}

// --- POAmountVariance ---

func poContext(items ...domain.PurchaseOrderItem) *rule.Context {
	return &rule.Context{
		PurchaseOrder: &domain.PurchaseOrder{ID: 9, OrderNumber: "PO-9", Items: items},
	}
}

func TestPOAmountVariance_NoPurchaseOrderSkips(t *testing.T) {
	r := rule.NewPOAmountVariance(defaultConfig(domain.RulePOAmountVariance))
	res := r.Validate(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 999}, &rule.Context{})

	assert.True(t, res.Passed)
	assert.Equal(t, "no purchase order linked", res.Details["reason"])
}

func TestPOAmountVariance_ExactlyAtLimitPasses(t *testing.T) {
	r := rule.NewPOAmountVariance(defaultConfig(domain.RulePOAmountVariance))
	vctx := poContext(domain.PurchaseOrderItem{ItemID: 1, Quantity: 10, UnitPrice: 500})

	// PO total 5000, invoice 5500 → exactly 10%
	res := r.Validate(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 5500}, vctx)

	assert.True(t, res.Passed)
	assert.Equal(t, float64(10), res.Details["variance_percent"])
}

func TestPOAmountVariance_AboveLimitFails(t *testing.T) {
	r := rule.NewPOAmountVariance(defaultConfig(domain.RulePOAmountVariance))
	vctx := poContext(domain.PurchaseOrderItem{ItemID: 1, Quantity: 10, UnitPrice: 500})

	res := r.Validate(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 5501}, vctx)

	assert.False(t, res.Passed)
	assert.Equal(t, float64(5000), res.Details["po_amount"])
}

func TestPOAmountVariance_UndershootCountsToo(t *testing.T) {
	r := rule.NewPOAmountVariance(defaultConfig(domain.RulePOAmountVariance))
	vctx := poContext(domain.PurchaseOrderItem{ItemID: 1, Quantity: 10, UnitPrice: 500})

	res := r.Validate(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 4000}, vctx)

	assert.False(t, res.Passed)
}

func TestPOAmountVariance_ZeroValuePOPasses(t *testing.T) {
	r := rule.NewPOAmountVariance(defaultConfig(domain.RulePOAmountVariance))
	vctx := poContext(domain.PurchaseOrderItem{ItemID: 1, Quantity: 10, UnitPrice: 0})

	res := r.Validate(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 1234}, vctx)

	assert.True(t, res.Passed)
	assert.Equal(t, float64(0), res.Details["variance_percent"])
}

// --- POItemMismatch ---

func TestPOItemMismatch_AllItemsOnOrderPasses(t *testing.T) {
	r := rule.NewPOItemMismatch(defaultConfig(domain.RulePOItemMismatch))
	vctx := poContext(
		domain.PurchaseOrderItem{ItemID: 1},
		domain.PurchaseOrderItem{ItemID: 2},
	)
	inv := &domain.Invoice{ID: 1, Items: []domain.InvoiceItem{{ItemID: 1}, {ItemID: 2}}}

	res := r.Validate(context.Background(), inv, vctx)

	assert.True(t, res.Passed)
}

func TestPOItemMismatch_ExtraInvoiceItemFails(t *testing.T) {
	r := rule.NewPOItemMismatch(defaultConfig(domain.RulePOItemMismatch))
	vctx := poContext(domain.PurchaseOrderItem{ItemID: 1})
	inv := &domain.Invoice{ID: 1, Items: []domain.InvoiceItem{{ItemID: 1}, {ItemID: 3}}}

	res := r.Validate(context.Background(), inv, vctx)

	assert.False(t, res.Passed)
	assert.Equal(t, []int64{3}, res.Details["item_ids"])
}

func TestPOItemMismatch_ExtraOrderItemsAreHarmless(t *testing.T) {
	r := rule.NewPOItemMismatch(defaultConfig(domain.RulePOItemMismatch))
	vctx := poContext(
		domain.PurchaseOrderItem{ItemID: 1},
		domain.PurchaseOrderItem{ItemID: 2},
		domain.PurchaseOrderItem{ItemID: 3},
	)
	inv := &domain.Invoice{ID: 1, Items: []domain.InvoiceItem{{ItemID: 2}}}

	res := r.Validate(context.Background(), inv, vctx)

	assert.True(t, res.Passed)
}

// --- DeliveryNoteMismatch ---

func TestDeliveryNoteMismatch_NoNotesSkips(t *testing.T) {
	r := rule.NewDeliveryNoteMismatch(defaultConfig(domain.RuleDeliveryNoteMismatch))
	res := r.Validate(context.Background(), &domain.Invoice{ID: 1}, &rule.Context{})

	assert.True(t, res.Passed)
	assert.Equal(t, "no delivery notes linked", res.Details["reason"])
}

func TestDeliveryNoteMismatch_DeliveriesAggregateAcrossNotes(t *testing.T) {
	r := rule.NewDeliveryNoteMismatch(defaultConfig(domain.RuleDeliveryNoteMismatch))
	vctx := &rule.Context{
		DeliveryNotes: []domain.DeliveryNote{
			{ID: 1, Items: []domain.DeliveryNoteItem{{ItemID: 1, DeliveredQuantity: 6}}},
			{ID: 2, Items: []domain.DeliveryNoteItem{{ItemID: 1, DeliveredQuantity: 4}}},
		},
	}
	inv := &domain.Invoice{ID: 1, Items: []domain.InvoiceItem{{ItemID: 1, Quantity: 10}}}

	res := r.Validate(context.Background(), inv, vctx)

	assert.True(t, res.Passed)
}

func TestDeliveryNoteMismatch_OverbilledItemFails(t *testing.T) {
	r := rule.NewDeliveryNoteMismatch(defaultConfig(domain.RuleDeliveryNoteMismatch))
	vctx := &rule.Context{
		DeliveryNotes: []domain.DeliveryNote{
			{ID: 1, Items: []domain.DeliveryNoteItem{{ItemID: 1, DeliveredQuantity: 5}}},
		},
	}
	inv := &domain.Invoice{ID: 1, Items: []domain.InvoiceItem{{ItemID: 1, Quantity: 8}}}

	res := r.Validate(context.Background(), inv, vctx)

	assert.False(t, res.Passed)
	assert.Equal(t, 1, res.Details["note_count"])
}

// --- PriceVariance ---

func historyRow(itemID int64, price float64, ageDays int) domain.ItemPriceHistory {
	return domain.ItemPriceHistory{
		ItemID:     itemID,
		Price:      price,
		RecordedAt: time.Now().AddDate(0, 0, -ageDays),
	}
}

func TestPriceVariance_NoHistorySkips(t *testing.T) {
	r := rule.NewPriceVariance(defaultConfig(domain.RulePriceVariance))
	res := r.Validate(context.Background(), &domain.Invoice{ID: 1}, &rule.Context{})

	assert.True(t, res.Passed)
	assert.Equal(t, "no price history available", res.Details["reason"])
}

func TestPriceVariance_WithinBandPasses(t *testing.T) {
	r := rule.NewPriceVariance(defaultConfig(domain.RulePriceVariance))
	vctx := &rule.Context{PriceHistory: []domain.ItemPriceHistory{
		historyRow(1, 100, 1),
		historyRow(1, 100, 2),
	}}
	inv := &domain.Invoice{ID: 1, Items: []domain.InvoiceItem{{ItemID: 1, UnitPrice: 110}}}

	res := r.Validate(context.Background(), inv, vctx)

	assert.True(t, res.Passed)
}

func TestPriceVariance_OutsideBandFails(t *testing.T) {
	r := rule.NewPriceVariance(defaultConfig(domain.RulePriceVariance))
	vctx := &rule.Context{PriceHistory: []domain.ItemPriceHistory{
		historyRow(1, 100, 1),
		historyRow(1, 100, 2),
	}}
	inv := &domain.Invoice{ID: 1, Items: []domain.InvoiceItem{{ItemID: 1, UnitPrice: 120}}}

	res := r.Validate(context.Background(), inv, vctx)

	assert.False(t, res.Passed)
}

func TestPriceVariance_WindowIgnoresOlderRows(t *testing.T) {
	cfg := defaultConfig(domain.RulePriceVariance)
	cfg.Params[rule.ParamHistoricalCount] = 3

	// The three newest rows average 100; the two older outliers must not count.
	vctx := &rule.Context{PriceHistory: []domain.ItemPriceHistory{
		historyRow(1, 100, 1),
		historyRow(1, 100, 2),
		historyRow(1, 100, 3),
		historyRow(1, 10, 30),
		historyRow(1, 10, 60),
	}}
	inv := &domain.Invoice{ID: 1, Items: []domain.InvoiceItem{{ItemID: 1, UnitPrice: 110}}}

	r := rule.NewPriceVariance(cfg)
	res := r.Validate(context.Background(), inv, vctx)

	assert.True(t, res.Passed)
}

func TestPriceVariance_ItemWithoutHistorySkipped(t *testing.T) {
	r := rule.NewPriceVariance(defaultConfig(domain.RulePriceVariance))
	vctx := &rule.Context{PriceHistory: []domain.ItemPriceHistory{historyRow(1, 100, 1)}}
	inv := &domain.Invoice{ID: 1, Items: []domain.InvoiceItem{
		{ItemID: 1, UnitPrice: 100},
		{ItemID: 2, UnitPrice: 99999},
	}}

	res := r.Validate(context.Background(), inv, vctx)

	assert.True(t, res.Passed)
}

// --- Config ---

func TestConfig_ParamFallsBackToDefault(t *testing.T) {
	cfg := rule.Config{Params: map[string]float64{}}
	assert.Equal(t, 42.0, cfg.Param("missing", 42))
}

func TestConfig_IntParamIgnoresNonPositive(t *testing.T) {
	cfg := rule.Config{Params: map[string]float64{rule.ParamHistoricalCount: 0}}
	assert.Equal(t, 5, cfg.IntParam(rule.ParamHistoricalCount, 5))
}

func TestDefaults_ReturnsFreshCopies(t *testing.T) {
	first := rule.Defaults()
	first[domain.RuleAmountThresholdExceeded].Params[rule.ParamThreshold] = 1

	second := rule.Defaults()
	assert.Equal(t, float64(rule.DefaultAmountThreshold), second[domain.RuleAmountThresholdExceeded].Params[rule.ParamThreshold])
}

func TestDefaultFor_UnknownType(t *testing.T) {
	cfg := rule.DefaultFor(domain.ValidationRuleType("SOMETHING_ELSE"))
	assert.True(t, cfg.Enabled)
	assert.Equal(t, domain.SeverityWarning, cfg.Severity)
}
