package validator

import (
	"veristack/internal/domain"
	"veristack/internal/validator/rule"
)

// ruleConstructors is the closed registry mapping rule type to constructor.
// The duplicate check is deliberately absent: it runs through the
// DuplicateDetector, not the anomaly batch.
var ruleConstructors = map[domain.ValidationRuleType]func(rule.Config) rule.Rule{
	domain.RuleMissingInvoiceNumber: func(cfg rule.Config) rule.Rule {
		return rule.NewMissingInvoiceNumber(cfg)
	},
	domain.RuleAmountThresholdExceeded: func(cfg rule.Config) rule.Rule {
		return rule.NewAmountThresholdExceeded(cfg)
	},
	domain.RuleRoundAmountPattern: func(cfg rule.Config) rule.Rule {
		return rule.NewRoundAmountPattern(cfg)
	},
	domain.RulePOAmountVariance: func(cfg rule.Config) rule.Rule {
		return rule.NewPOAmountVariance(cfg)
	},
	domain.RulePOItemMismatch: func(cfg rule.Config) rule.Rule {
		return rule.NewPOItemMismatch(cfg)
	},
	domain.RuleDeliveryNoteMismatch: func(cfg rule.Config) rule.Rule {
		return rule.NewDeliveryNoteMismatch(cfg)
	},
	domain.RulePriceVariance: func(cfg rule.Config) rule.Rule {
		return rule.NewPriceVariance(cfg)
	},
}
