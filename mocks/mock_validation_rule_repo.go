package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"veristack/internal/domain"
)

// MockValidationRuleRepo is a mock implementation of port.ValidationRuleRepository.
type MockValidationRuleRepo struct {
	mock.Mock
}

func (m *MockValidationRuleRepo) FindAll(ctx context.Context) ([]domain.ValidationRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationRule), args.Error(1)
}

func (m *MockValidationRuleRepo) FindEnabled(ctx context.Context) ([]domain.ValidationRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationRule), args.Error(1)
}

func (m *MockValidationRuleRepo) FindByID(ctx context.Context, id int64) (*domain.ValidationRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationRule), args.Error(1)
}

func (m *MockValidationRuleRepo) FindByType(ctx context.Context, ruleType domain.ValidationRuleType) (*domain.ValidationRule, error) {
	args := m.Called(ctx, ruleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationRule), args.Error(1)
}

func (m *MockValidationRuleRepo) Update(ctx context.Context, rule *domain.ValidationRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}
