package service

import (
	"context"
	"fmt"
	"log"

	"veristack/internal/domain"
	"veristack/internal/port"
	"veristack/internal/validator"
)

// RuleService manages persisted validation rule definitions. Every mutation
// invalidates the config resolver cache so the next validation pass sees the
// new configuration.
type RuleService interface {
	List(ctx context.Context) ([]domain.ValidationRule, error)
	Get(ctx context.Context, id int64) (*domain.ValidationRule, error)
	Update(ctx context.Context, rule *domain.ValidationRule) error
	CacheStats() validator.CacheStats
	InvalidateCache()
}

type ruleService struct {
	rules    port.ValidationRuleRepository
	resolver *validator.ConfigResolver
}

func NewRuleService(rules port.ValidationRuleRepository, resolver *validator.ConfigResolver) RuleService {
	return &ruleService{rules: rules, resolver: resolver}
}

func (s *ruleService) List(ctx context.Context) ([]domain.ValidationRule, error) {
	return s.rules.FindAll(ctx)
}

func (s *ruleService) Get(ctx context.Context, id int64) (*domain.ValidationRule, error) {
	return s.rules.FindByID(ctx, id)
}

func (s *ruleService) Update(ctx context.Context, rule *domain.ValidationRule) error {
	if !rule.Severity.Valid() {
		return fmt.Errorf("%q: %w", rule.Severity, domain.ErrInvalidSeverity)
	}
	if err := s.rules.Update(ctx, rule); err != nil {
		return err
	}
	s.resolver.InvalidateCache()
	log.Printf("ruleService: rule %s updated (enabled=%t, severity=%s)", rule.RuleType, rule.Enabled, rule.Severity)
	return nil
}

func (s *ruleService) CacheStats() validator.CacheStats {
	return s.resolver.Stats()
}

func (s *ruleService) InvalidateCache() {
	s.resolver.InvalidateCache()
}
