package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"veristack/internal/domain"
	"veristack/internal/service"
	"veristack/internal/validator"
	"veristack/mocks"
)

func setupRuleService() (service.RuleService, *mocks.MockValidationRuleRepo, *validator.ConfigResolver) {
	ruleRepo := new(mocks.MockValidationRuleRepo)
	resolver := validator.NewConfigResolver(ruleRepo, time.Minute)
	return service.NewRuleService(ruleRepo, resolver), ruleRepo, resolver
}

func TestRuleService_Update(t *testing.T) {
	svc, ruleRepo, resolver := setupRuleService()
	ctx := context.Background()

	// Warm the resolver cache so the update has something to invalidate.
	ruleRepo.On("FindAll", ctx).Return([]domain.ValidationRule{}, nil)
	_, err := resolver.GetAllRuleConfigs(ctx)
	assert.NoError(t, err)
	assert.True(t, resolver.Stats().IsCached)

	updated := &domain.ValidationRule{
		ID:       3,
		RuleType: domain.RuleAmountThresholdExceeded,
		Enabled:  false,
		Severity: domain.SeverityInfo,
		Config:   json.RawMessage(`{"threshold": 500}`),
	}
	ruleRepo.On("Update", ctx, updated).Return(nil)

	err = svc.Update(ctx, updated)

	assert.NoError(t, err)
	ruleRepo.AssertCalled(t, "Update", ctx, updated)
	assert.False(t, resolver.Stats().IsCached)
}

func TestRuleService_UpdateRejectsUnknownSeverity(t *testing.T) {
	svc, ruleRepo, _ := setupRuleService()

	err := svc.Update(context.Background(), &domain.ValidationRule{
		ID:       3,
		RuleType: domain.RuleAmountThresholdExceeded,
		Severity: domain.Severity("FATAL"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidSeverity)
	ruleRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRuleService_UpdateErrorKeepsCache(t *testing.T) {
	svc, ruleRepo, resolver := setupRuleService()
	ctx := context.Background()

	ruleRepo.On("FindAll", ctx).Return([]domain.ValidationRule{}, nil)
	_, _ = resolver.GetAllRuleConfigs(ctx)

	updated := &domain.ValidationRule{
		ID:       3,
		RuleType: domain.RuleAmountThresholdExceeded,
		Severity: domain.SeverityWarning,
	}
	ruleRepo.On("Update", ctx, updated).Return(assert.AnError)

	err := svc.Update(ctx, updated)

	assert.Error(t, err)
	assert.True(t, resolver.Stats().IsCached)
}

func TestRuleService_InvalidateCache(t *testing.T) {
	svc, ruleRepo, resolver := setupRuleService()
	ctx := context.Background()

	ruleRepo.On("FindAll", ctx).Return([]domain.ValidationRule{}, nil)
	_, _ = resolver.GetAllRuleConfigs(ctx)
	assert.True(t, svc.CacheStats().IsCached)

	svc.InvalidateCache()

	assert.False(t, svc.CacheStats().IsCached)
}
