package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"veristack/internal/domain"
	"veristack/internal/port"
)

type validationRuleRepo struct {
	db *sqlx.DB
}

// NewValidationRuleRepo creates a new PostgreSQL-backed ValidationRuleRepository.
func NewValidationRuleRepo(db *sqlx.DB) port.ValidationRuleRepository {
	return &validationRuleRepo{db: db}
}

func (r *validationRuleRepo) FindAll(ctx context.Context) ([]domain.ValidationRule, error) {
	var rules []domain.ValidationRule
	err := r.db.SelectContext(ctx, &rules,
		"SELECT * FROM validation_rules ORDER BY rule_type")
	if err != nil {
		return nil, fmt.Errorf("validationRuleRepo.FindAll: %w", err)
	}
	return rules, nil
}

func (r *validationRuleRepo) FindEnabled(ctx context.Context) ([]domain.ValidationRule, error) {
	var rules []domain.ValidationRule
	err := r.db.SelectContext(ctx, &rules,
		"SELECT * FROM validation_rules WHERE enabled = TRUE ORDER BY rule_type")
	if err != nil {
		return nil, fmt.Errorf("validationRuleRepo.FindEnabled: %w", err)
	}
	return rules, nil
}

func (r *validationRuleRepo) FindByID(ctx context.Context, id int64) (*domain.ValidationRule, error) {
	var rule domain.ValidationRule
	err := r.db.GetContext(ctx, &rule,
		"SELECT * FROM validation_rules WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrValidationRuleNotFound
		}
		return nil, fmt.Errorf("validationRuleRepo.FindByID: %w", err)
	}
	return &rule, nil
}

func (r *validationRuleRepo) FindByType(ctx context.Context, ruleType domain.ValidationRuleType) (*domain.ValidationRule, error) {
	var rule domain.ValidationRule
	err := r.db.GetContext(ctx, &rule,
		"SELECT * FROM validation_rules WHERE rule_type = $1", ruleType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrValidationRuleNotFound
		}
		return nil, fmt.Errorf("validationRuleRepo.FindByType: %w", err)
	}
	return &rule, nil
}

func (r *validationRuleRepo) Update(ctx context.Context, rule *domain.ValidationRule) error {
	rule.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		UPDATE validation_rules SET
			name = $1, enabled = $2, severity = $3, config = $4, updated_at = $5
		WHERE id = $6`,
		rule.Name, rule.Enabled, rule.Severity, rule.Config, rule.UpdatedAt, rule.ID)
	if err != nil {
		return fmt.Errorf("validationRuleRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrValidationRuleNotFound
	}
	return nil
}
