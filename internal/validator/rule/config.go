package rule

import "veristack/internal/domain"

// Parameter keys used in merged rule configuration.
const (
	ParamThreshold       = "threshold"
	ParamVariancePercent = "variance_percent"
	ParamHistoricalCount = "historical_count"
	ParamMinimumAmount   = "minimum_amount"
)

// Config is the merged configuration a rule is constructed with. It is
// produced by the config resolver from environment overrides, the persisted
// rule row and hard defaults, in that precedence order.
type Config struct {
	Enabled  bool
	Severity domain.Severity
	Params   map[string]float64
}

// Param returns the named parameter or def when absent.
func (c Config) Param(key string, def float64) float64 {
	if v, ok := c.Params[key]; ok {
		return v
	}
	return def
}

// IntParam returns the named parameter truncated to int, or def when absent
// or non-positive.
func (c Config) IntParam(key string, def int) int {
	if v, ok := c.Params[key]; ok && int(v) > 0 {
		return int(v)
	}
	return def
}

// clone returns a deep copy so callers can layer overrides without aliasing.
func (c Config) clone() Config {
	out := Config{Enabled: c.Enabled, Severity: c.Severity, Params: make(map[string]float64, len(c.Params))}
	for k, v := range c.Params {
		out.Params[k] = v
	}
	return out
}

// Hard default values for rule parameters.
const (
	DefaultAmountThreshold    = 10000
	DefaultRoundMinimumAmount = 1000
	DefaultPOVariancePercent  = 10
	DefaultPriceVariancePct   = 15
	DefaultHistoricalCount    = 5
)

// Defaults returns the hard default configuration for every known rule type.
// Each call returns fresh maps; callers may mutate the result.
func Defaults() map[domain.ValidationRuleType]Config {
	base := map[domain.ValidationRuleType]Config{
		domain.RuleDuplicateInvoiceNumber: {
			Enabled:  true,
			Severity: domain.SeverityCritical,
			Params:   map[string]float64{},
		},
		domain.RuleMissingInvoiceNumber: {
			Enabled:  true,
			Severity: domain.SeverityWarning,
			Params:   map[string]float64{},
		},
		domain.RuleAmountThresholdExceeded: {
			Enabled:  true,
			Severity: domain.SeverityWarning,
			Params:   map[string]float64{ParamThreshold: DefaultAmountThreshold},
		},
		domain.RuleRoundAmountPattern: {
			Enabled:  true,
			Severity: domain.SeverityInfo,
			Params:   map[string]float64{ParamMinimumAmount: DefaultRoundMinimumAmount},
		},
		domain.RulePOAmountVariance: {
			Enabled:  true,
			Severity: domain.SeverityWarning,
			Params:   map[string]float64{ParamVariancePercent: DefaultPOVariancePercent},
		},
		domain.RulePOItemMismatch: {
			Enabled:  true,
			Severity: domain.SeverityWarning,
			Params:   map[string]float64{},
		},
		domain.RuleDeliveryNoteMismatch: {
			Enabled:  true,
			Severity: domain.SeverityWarning,
			Params:   map[string]float64{},
		},
		domain.RulePriceVariance: {
			Enabled:  true,
			Severity: domain.SeverityWarning,
			Params: map[string]float64{
				ParamVariancePercent: DefaultPriceVariancePct,
				ParamHistoricalCount: DefaultHistoricalCount,
			},
		},
	}

	out := make(map[domain.ValidationRuleType]Config, len(base))
	for rt, cfg := range base {
		out[rt] = cfg.clone()
	}
	return out
}

// DefaultFor returns the hard default configuration for one rule type. Unknown
// types get an enabled Warning config with no parameters.
func DefaultFor(ruleType domain.ValidationRuleType) Config {
	if cfg, ok := Defaults()[ruleType]; ok {
		return cfg
	}
	return Config{Enabled: true, Severity: domain.SeverityWarning, Params: map[string]float64{}}
}
