package rule

import (
	"context"
	"fmt"

	"veristack/internal/domain"
)

// DeliveryNoteMismatch flags invoice line items billed for more than was
// delivered, with delivered quantities aggregated per item across all linked
// delivery notes. Invoices without delivery notes are skipped.
type DeliveryNoteMismatch struct {
	cfg Config
}

func NewDeliveryNoteMismatch(cfg Config) *DeliveryNoteMismatch {
	return &DeliveryNoteMismatch{cfg: cfg}
}

func (r *DeliveryNoteMismatch) Type() domain.ValidationRuleType { return domain.RuleDeliveryNoteMismatch }
func (r *DeliveryNoteMismatch) Severity() domain.Severity       { return r.cfg.Severity }

func (r *DeliveryNoteMismatch) Validate(_ context.Context, inv *domain.Invoice, vctx *Context) Result {
	if vctx == nil || len(vctx.DeliveryNotes) == 0 {
		return Pass(r.Type(), r.cfg.Severity, Details{
			"reason": "no delivery notes linked",
		})
	}

	delivered := vctx.DeliveredQuantities()

	type mismatch struct {
		ItemID    int64   `json:"item_id"`
		Billed    float64 `json:"billed_quantity"`
		Delivered float64 `json:"delivered_quantity"`
	}
	var offenders []mismatch
	for _, li := range inv.Items {
		if li.Quantity > delivered[li.ItemID] {
			offenders = append(offenders, mismatch{
				ItemID:    li.ItemID,
				Billed:    li.Quantity,
				Delivered: delivered[li.ItemID],
			})
		}
	}

	if len(offenders) > 0 {
		return Fail(r.Type(), r.cfg.Severity, Details{
			"mismatches": offenders,
			"note_count": len(vctx.DeliveryNotes),
			"message":    fmt.Sprintf("%d item(s) billed for more than the delivered quantity", len(offenders)),
		})
	}
	return Pass(r.Type(), r.cfg.Severity, Details{
		"note_count": len(vctx.DeliveryNotes),
	})
}
