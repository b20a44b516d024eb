package rule

import "veristack/internal/domain"

// Details carries rule-specific metadata attached to a Result. The "message"
// key holds the human-readable explanation persisted with flagged rows.
type Details map[string]any

// Result is the immutable outcome of one rule evaluation. Construct it only
// via Pass or Fail and do not mutate it afterwards.
type Result struct {
	RuleType domain.ValidationRuleType `json:"rule_type"`
	Severity domain.Severity           `json:"severity"`
	Passed   bool                      `json:"passed"`
	Details  Details                   `json:"details,omitempty"`
}

// Pass builds a passing result.
func Pass(ruleType domain.ValidationRuleType, severity domain.Severity, details Details) Result {
	return Result{RuleType: ruleType, Severity: severity, Passed: true, Details: details}
}

// Fail builds a failing result.
func Fail(ruleType domain.ValidationRuleType, severity domain.Severity, details Details) Result {
	return Result{RuleType: ruleType, Severity: severity, Passed: false, Details: details}
}

// Message returns the result's "message" detail, or "" when absent.
func (r Result) Message() string {
	if r.Details == nil {
		return ""
	}
	msg, _ := r.Details["message"].(string)
	return msg
}
