package port

import (
	"context"

	"veristack/internal/domain"
)

// ValidationRuleRepository provides access to persisted rule definitions.
// Callers that mutate rules must invalidate the config resolver cache.
type ValidationRuleRepository interface {
	FindAll(ctx context.Context) ([]domain.ValidationRule, error)
	FindEnabled(ctx context.Context) ([]domain.ValidationRule, error)
	FindByID(ctx context.Context, id int64) (*domain.ValidationRule, error)
	FindByType(ctx context.Context, ruleType domain.ValidationRuleType) (*domain.ValidationRule, error)
	Update(ctx context.Context, rule *domain.ValidationRule) error
}
