package validator_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"veristack/internal/domain"
	"veristack/internal/validator"
	"veristack/internal/validator/rule"
	"veristack/mocks"
)

func setupAnomalyDetector(rows []domain.ValidationRule) *validator.AnomalyDetector {
	ruleRepo := new(mocks.MockValidationRuleRepo)
	ruleRepo.On("FindAll", context.Background()).Return(rows, nil)
	resolver := validator.NewConfigResolver(ruleRepo, time.Minute)
	return validator.NewAnomalyDetector(resolver, time.Second)
}

func TestAnomalyDetector_RunsOnlyConfiguredRules(t *testing.T) {
	rows := []domain.ValidationRule{
		makeRuleRow(domain.RuleMissingInvoiceNumber, true, domain.SeverityWarning, `{}`),
		makeRuleRow(domain.RuleAmountThresholdExceeded, true, domain.SeverityWarning, `{}`),
	}
	detector := setupAnomalyDetector(rows)

	results, err := detector.DetectAnomalies(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 50}, &rule.Context{})

	assert.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestAnomalyDetector_DisabledRuleExcluded(t *testing.T) {
	rows := []domain.ValidationRule{
		makeRuleRow(domain.RuleMissingInvoiceNumber, false, domain.SeverityWarning, `{}`),
		makeRuleRow(domain.RuleAmountThresholdExceeded, true, domain.SeverityWarning, `{}`),
	}
	detector := setupAnomalyDetector(rows)

	results, err := detector.DetectAnomalies(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 50}, &rule.Context{})

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, domain.RuleAmountThresholdExceeded, results[0].RuleType)
}

func TestAnomalyDetector_NoActiveRules(t *testing.T) {
	detector := setupAnomalyDetector([]domain.ValidationRule{})

	results, err := detector.DetectAnomalies(context.Background(), &domain.Invoice{ID: 1}, &rule.Context{})

	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestAnomalyDetector_DuplicateCheckNeverInBatch(t *testing.T) {
	rows := []domain.ValidationRule{
		makeRuleRow(domain.RuleDuplicateInvoiceNumber, true, domain.SeverityCritical, `{}`),
	}
	detector := setupAnomalyDetector(rows)

	results, err := detector.DetectAnomalies(context.Background(), &domain.Invoice{ID: 1}, &rule.Context{})

	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestAnomalyDetector_FailuresCollectedFromBatch(t *testing.T) {
	rows := []domain.ValidationRule{
		makeRuleRow(domain.RuleMissingInvoiceNumber, true, domain.SeverityWarning, `{}`),
		makeRuleRow(domain.RuleRoundAmountPattern, true, domain.SeverityInfo, `{}`),
	}
	detector := setupAnomalyDetector(rows)

	// No number and a round 5000 total: both rules fail.
	results, err := detector.DetectAnomalies(context.Background(), &domain.Invoice{ID: 1, TotalAmount: 5000}, &rule.Context{})

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	for _, res := range results {
		assert.False(t, res.Passed)
	}
}
