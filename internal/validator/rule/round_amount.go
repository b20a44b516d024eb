package rule

import (
	"context"
	"fmt"
	"math"

	"veristack/internal/domain"
)

const roundEpsilon = 1e-9

// RoundAmountPattern flags suspiciously round totals: amounts divisible by
// 100 at or above the configured minimum.
type RoundAmountPattern struct {
	cfg     Config
	minimum float64
}

func NewRoundAmountPattern(cfg Config) *RoundAmountPattern {
	return &RoundAmountPattern{
		cfg:     cfg,
		minimum: cfg.Param(ParamMinimumAmount, DefaultRoundMinimumAmount),
	}
}

func (r *RoundAmountPattern) Type() domain.ValidationRuleType { return domain.RuleRoundAmountPattern }
func (r *RoundAmountPattern) Severity() domain.Severity       { return r.cfg.Severity }

func (r *RoundAmountPattern) Validate(_ context.Context, inv *domain.Invoice, _ *Context) Result {
	amount := inv.TotalAmount
	if amount >= r.minimum && math.Abs(math.Mod(amount, 100)) < roundEpsilon {
		return Fail(r.Type(), r.cfg.Severity, Details{
			"amount":         amount,
			"minimum_amount": r.minimum,
			"pattern":        "Round number (divisible by 100)",
			"message":        fmt.Sprintf("invoice amount %.2f matches a round-number pattern", amount),
		})
	}
	return Pass(r.Type(), r.cfg.Severity, Details{
		"amount": amount,
	})
}
