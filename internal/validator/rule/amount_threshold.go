package rule

import (
	"context"
	"fmt"

	"veristack/internal/domain"
)

// AmountThresholdExceeded flags invoices whose total amount is strictly above
// the configured threshold. Amounts exactly at the threshold pass.
type AmountThresholdExceeded struct {
	cfg       Config
	threshold float64
}

func NewAmountThresholdExceeded(cfg Config) *AmountThresholdExceeded {
	return &AmountThresholdExceeded{
		cfg:       cfg,
		threshold: cfg.Param(ParamThreshold, DefaultAmountThreshold),
	}
}

func (r *AmountThresholdExceeded) Type() domain.ValidationRuleType {
	return domain.RuleAmountThresholdExceeded
}
func (r *AmountThresholdExceeded) Severity() domain.Severity { return r.cfg.Severity }

func (r *AmountThresholdExceeded) Validate(_ context.Context, inv *domain.Invoice, _ *Context) Result {
	if inv.TotalAmount > r.threshold {
		return Fail(r.Type(), r.cfg.Severity, Details{
			"amount":    inv.TotalAmount,
			"threshold": r.threshold,
			"message":   fmt.Sprintf("invoice amount %.2f exceeds threshold %.2f", inv.TotalAmount, r.threshold),
		})
	}
	return Pass(r.Type(), r.cfg.Severity, Details{
		"amount":    inv.TotalAmount,
		"threshold": r.threshold,
	})
}
