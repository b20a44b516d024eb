package rule

import (
	"context"

	"veristack/internal/domain"
)

// Rule is a single anomaly check. Implementations are pure: they read only
// the invoice snapshot and the pass context, hold no mutable state, and are
// safe to evaluate concurrently.
type Rule interface {
	Type() domain.ValidationRuleType
	Severity() domain.Severity
	Validate(ctx context.Context, inv *domain.Invoice, vctx *Context) Result
}
