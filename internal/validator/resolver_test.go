package validator_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"veristack/internal/domain"
	"veristack/internal/validator"
	"veristack/internal/validator/rule"
	"veristack/mocks"
)

func makeRuleRow(ruleType domain.ValidationRuleType, enabled bool, severity domain.Severity, config string) domain.ValidationRule {
	return domain.ValidationRule{
		ID:       1,
		RuleType: ruleType,
		Name:     string(ruleType),
		Enabled:  enabled,
		Severity: severity,
		Config:   json.RawMessage(config),
	}
}

func TestConfigResolver_RowOverridesDefaults(t *testing.T) {
	ruleRepo := new(mocks.MockValidationRuleRepo)
	ctx := context.Background()

	rows := []domain.ValidationRule{
		makeRuleRow(domain.RuleAmountThresholdExceeded, false, domain.SeverityInfo, `{"threshold": 2500}`),
	}
	ruleRepo.On("FindAll", ctx).Return(rows, nil)

	resolver := validator.NewConfigResolver(ruleRepo, time.Minute)
	cfg, err := resolver.GetRuleConfig(ctx, domain.RuleAmountThresholdExceeded)

	assert.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, domain.SeverityInfo, cfg.Severity)
	assert.Equal(t, 2500.0, cfg.Params[rule.ParamThreshold])
}

func TestConfigResolver_UndefinedTypeIsNotResolvable(t *testing.T) {
	ruleRepo := new(mocks.MockValidationRuleRepo)
	ctx := context.Background()
	ruleRepo.On("FindAll", ctx).Return([]domain.ValidationRule{}, nil)

	resolver := validator.NewConfigResolver(ruleRepo, time.Minute)
	_, err := resolver.GetRuleConfig(ctx, domain.RulePriceVariance)

	assert.ErrorIs(t, err, domain.ErrRuleConfigNotFound)
}

func TestConfigResolver_EnvDisablesPersistedRule(t *testing.T) {
	t.Setenv("VALIDATION_RULE_AMOUNT_THRESHOLD_EXCEEDED_ENABLED", "false")

	ruleRepo := new(mocks.MockValidationRuleRepo)
	ctx := context.Background()
	rows := []domain.ValidationRule{
		makeRuleRow(domain.RuleAmountThresholdExceeded, true, domain.SeverityWarning, `{}`),
	}
	ruleRepo.On("FindAll", ctx).Return(rows, nil)

	resolver := validator.NewConfigResolver(ruleRepo, time.Minute)
	cfg, err := resolver.GetRuleConfig(ctx, domain.RuleAmountThresholdExceeded)

	assert.NoError(t, err)
	assert.False(t, cfg.Enabled)
}

func TestConfigResolver_EnvParamWinsOverRow(t *testing.T) {
	t.Setenv("VALIDATION_RULE_AMOUNT_THRESHOLD_EXCEEDED_THRESHOLD", "200")

	ruleRepo := new(mocks.MockValidationRuleRepo)
	ctx := context.Background()
	rows := []domain.ValidationRule{
		makeRuleRow(domain.RuleAmountThresholdExceeded, true, domain.SeverityWarning, `{"threshold": 9999}`),
	}
	ruleRepo.On("FindAll", ctx).Return(rows, nil)

	resolver := validator.NewConfigResolver(ruleRepo, time.Minute)
	cfg, err := resolver.GetRuleConfig(ctx, domain.RuleAmountThresholdExceeded)

	assert.NoError(t, err)
	assert.Equal(t, 200.0, cfg.Params[rule.ParamThreshold])
}

func TestConfigResolver_EnvOnlySynthesizesWarningConfig(t *testing.T) {
	t.Setenv("VALIDATION_RULE_PRICE_VARIANCE_VARIANCE_PERCENT", "25")

	ruleRepo := new(mocks.MockValidationRuleRepo)
	ctx := context.Background()
	ruleRepo.On("FindAll", ctx).Return([]domain.ValidationRule{}, nil)

	resolver := validator.NewConfigResolver(ruleRepo, time.Minute)
	cfg, err := resolver.GetRuleConfig(ctx, domain.RulePriceVariance)

	assert.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, domain.SeverityWarning, cfg.Severity)
	assert.Equal(t, 25.0, cfg.Params[rule.ParamVariancePercent])
}

func TestConfigResolver_UnparseableEnvValueIgnored(t *testing.T) {
	t.Setenv("VALIDATION_RULE_AMOUNT_THRESHOLD_EXCEEDED_THRESHOLD", "banana")

	ruleRepo := new(mocks.MockValidationRuleRepo)
	ctx := context.Background()
	rows := []domain.ValidationRule{
		makeRuleRow(domain.RuleAmountThresholdExceeded, true, domain.SeverityWarning, `{"threshold": 750}`),
	}
	ruleRepo.On("FindAll", ctx).Return(rows, nil)

	resolver := validator.NewConfigResolver(ruleRepo, time.Minute)
	cfg, err := resolver.GetRuleConfig(ctx, domain.RuleAmountThresholdExceeded)

	assert.NoError(t, err)
	assert.Equal(t, 750.0, cfg.Params[rule.ParamThreshold])
}

func TestConfigResolver_NonNumericRowParamDropped(t *testing.T) {
	ruleRepo := new(mocks.MockValidationRuleRepo)
	ctx := context.Background()
	rows := []domain.ValidationRule{
		makeRuleRow(domain.RuleAmountThresholdExceeded, true, domain.SeverityWarning, `{"threshold": "high"}`),
	}
	ruleRepo.On("FindAll", ctx).Return(rows, nil)

	resolver := validator.NewConfigResolver(ruleRepo, time.Minute)
	cfg, err := resolver.GetRuleConfig(ctx, domain.RuleAmountThresholdExceeded)

	assert.NoError(t, err)
	// The default survives since the row value is unusable.
	assert.Equal(t, float64(rule.DefaultAmountThreshold), cfg.Params[rule.ParamThreshold])
}

func TestConfigResolver_CachesUntilTTL(t *testing.T) {
	ruleRepo := new(mocks.MockValidationRuleRepo)
	ctx := context.Background()
	ruleRepo.On("FindAll", ctx).Return([]domain.ValidationRule{
		makeRuleRow(domain.RuleMissingInvoiceNumber, true, domain.SeverityWarning, `{}`),
	}, nil)

	resolver := validator.NewConfigResolver(ruleRepo, time.Minute)
	_, err := resolver.GetAllRuleConfigs(ctx)
	assert.NoError(t, err)
	_, err = resolver.GetAllRuleConfigs(ctx)
	assert.NoError(t, err)

	ruleRepo.AssertNumberOfCalls(t, "FindAll", 1)
}

func TestConfigResolver_InvalidateForcesReload(t *testing.T) {
	ruleRepo := new(mocks.MockValidationRuleRepo)
	ctx := context.Background()
	ruleRepo.On("FindAll", ctx).Return([]domain.ValidationRule{
		makeRuleRow(domain.RuleMissingInvoiceNumber, true, domain.SeverityWarning, `{}`),
	}, nil)

	resolver := validator.NewConfigResolver(ruleRepo, time.Minute)
	_, _ = resolver.GetAllRuleConfigs(ctx)
	resolver.InvalidateCache()
	_, _ = resolver.GetAllRuleConfigs(ctx)

	ruleRepo.AssertNumberOfCalls(t, "FindAll", 2)
}

func TestConfigResolver_RepoErrorPropagatesAndIsNotCached(t *testing.T) {
	ruleRepo := new(mocks.MockValidationRuleRepo)
	ctx := context.Background()
	ruleRepo.On("FindAll", ctx).Return(nil, errors.New("db down"))

	resolver := validator.NewConfigResolver(ruleRepo, time.Minute)
	_, err := resolver.GetAllRuleConfigs(ctx)
	assert.Error(t, err)

	stats := resolver.Stats()
	assert.False(t, stats.IsCached)
}

func TestConfigResolver_Stats(t *testing.T) {
	ruleRepo := new(mocks.MockValidationRuleRepo)
	ctx := context.Background()
	ruleRepo.On("FindAll", ctx).Return([]domain.ValidationRule{}, nil)

	resolver := validator.NewConfigResolver(ruleRepo, time.Minute)
	assert.False(t, resolver.Stats().IsCached)

	_, err := resolver.GetAllRuleConfigs(ctx)
	assert.NoError(t, err)

	stats := resolver.Stats()
	assert.True(t, stats.IsCached)
	assert.Equal(t, time.Minute, stats.TTL)
}
