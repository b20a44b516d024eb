package rule

import (
	"context"
	"fmt"

	"veristack/internal/domain"
)

// POItemMismatch flags invoice line items that do not appear on the linked
// purchase order. Extra items on the purchase order are harmless; all
// offending invoice items are bundled into one result.
type POItemMismatch struct {
	cfg Config
}

func NewPOItemMismatch(cfg Config) *POItemMismatch {
	return &POItemMismatch{cfg: cfg}
}

func (r *POItemMismatch) Type() domain.ValidationRuleType { return domain.RulePOItemMismatch }
func (r *POItemMismatch) Severity() domain.Severity       { return r.cfg.Severity }

func (r *POItemMismatch) Validate(_ context.Context, inv *domain.Invoice, vctx *Context) Result {
	if vctx == nil || vctx.PurchaseOrder == nil {
		return Pass(r.Type(), r.cfg.Severity, Details{
			"reason": "no purchase order linked",
		})
	}

	onOrder := make(map[int64]bool, len(vctx.PurchaseOrder.Items))
	for _, li := range vctx.PurchaseOrder.Items {
		onOrder[li.ItemID] = true
	}

	var missing []int64
	for _, li := range inv.Items {
		if !onOrder[li.ItemID] {
			missing = append(missing, li.ItemID)
		}
	}

	if len(missing) > 0 {
		return Fail(r.Type(), r.cfg.Severity, Details{
			"item_ids": missing,
			"po_id":    vctx.PurchaseOrder.ID,
			"message":  fmt.Sprintf("%d invoice item(s) not present on purchase order %s", len(missing), vctx.PurchaseOrder.OrderNumber),
		})
	}
	return Pass(r.Type(), r.cfg.Severity, Details{
		"po_id": vctx.PurchaseOrder.ID,
	})
}
