package validator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"veristack/internal/domain"
	"veristack/internal/validator/rule"
)

// stubRule lets tests inject arbitrary evaluation behavior.
type stubRule struct {
	validate func(ctx context.Context) rule.Result
}

func (s *stubRule) Type() domain.ValidationRuleType { return domain.RuleAmountThresholdExceeded }
func (s *stubRule) Severity() domain.Severity       { return domain.SeverityWarning }
func (s *stubRule) Validate(ctx context.Context, _ *domain.Invoice, _ *rule.Context) rule.Result {
	return s.validate(ctx)
}

func TestEvaluate_PanicBecomesFailedResult(t *testing.T) {
	d := &AnomalyDetector{ruleTimeout: time.Second}
	rl := &stubRule{validate: func(context.Context) rule.Result {
		panic("boom")
	}}

	res := d.evaluate(context.Background(), rl, &domain.Invoice{ID: 1}, nil)

	assert.False(t, res.Passed)
	assert.Equal(t, domain.RuleAmountThresholdExceeded, res.RuleType)
	assert.Equal(t, "rule evaluation panicked", res.Details["error"])
}

func TestEvaluate_TimeoutBecomesFailedResult(t *testing.T) {
	d := &AnomalyDetector{ruleTimeout: 20 * time.Millisecond}
	rl := &stubRule{validate: func(ctx context.Context) rule.Result {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		return rule.Pass(domain.RuleAmountThresholdExceeded, domain.SeverityWarning, nil)
	}}

	res := d.evaluate(context.Background(), rl, &domain.Invoice{ID: 1}, nil)

	assert.False(t, res.Passed)
	assert.Equal(t, "rule evaluation timed out", res.Details["message"])
}

func TestEvaluate_FastRulePassesThrough(t *testing.T) {
	d := &AnomalyDetector{ruleTimeout: time.Second}
	rl := &stubRule{validate: func(context.Context) rule.Result {
		return rule.Pass(domain.RuleAmountThresholdExceeded, domain.SeverityWarning, rule.Details{"amount": 5.0})
	}}

	res := d.evaluate(context.Background(), rl, &domain.Invoice{ID: 1}, nil)

	assert.True(t, res.Passed)
	assert.Equal(t, 5.0, res.Details["amount"])
}
