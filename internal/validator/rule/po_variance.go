package rule

import (
	"context"
	"fmt"
	"math"

	"veristack/internal/domain"
)

// POAmountVariance flags invoices whose total deviates from the linked
// purchase order total by strictly more than the configured percentage.
// Invoices without a linked purchase order are skipped.
type POAmountVariance struct {
	cfg        Config
	maxPercent float64
}

func NewPOAmountVariance(cfg Config) *POAmountVariance {
	return &POAmountVariance{
		cfg:        cfg,
		maxPercent: cfg.Param(ParamVariancePercent, DefaultPOVariancePercent),
	}
}

func (r *POAmountVariance) Type() domain.ValidationRuleType { return domain.RulePOAmountVariance }
func (r *POAmountVariance) Severity() domain.Severity       { return r.cfg.Severity }

func (r *POAmountVariance) Validate(_ context.Context, inv *domain.Invoice, vctx *Context) Result {
	if vctx == nil || vctx.PurchaseOrder == nil {
		return Pass(r.Type(), r.cfg.Severity, Details{
			"reason": "no purchase order linked",
		})
	}

	var poTotal float64
	for _, li := range vctx.PurchaseOrder.Items {
		poTotal += li.Quantity * li.UnitPrice
	}

	// A zero-valued PO yields zero variance rather than a division blowup.
	var variance float64
	if poTotal != 0 {
		variance = math.Abs(inv.TotalAmount-poTotal) * 100 / poTotal
	}

	if variance > r.maxPercent {
		return Fail(r.Type(), r.cfg.Severity, Details{
			"invoice_amount":   inv.TotalAmount,
			"po_amount":        poTotal,
			"variance_percent": variance,
			"max_percent":      r.maxPercent,
			"message": fmt.Sprintf("invoice amount %.2f deviates %.2f%% from purchase order total %.2f (allowed %.2f%%)",
				inv.TotalAmount, variance, poTotal, r.maxPercent),
		})
	}
	return Pass(r.Type(), r.cfg.Severity, Details{
		"invoice_amount":   inv.TotalAmount,
		"po_amount":        poTotal,
		"variance_percent": variance,
	})
}
