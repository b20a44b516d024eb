package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"veristack/internal/domain"
	"veristack/internal/port"
	"veristack/internal/validator/rule"
)

// DefaultConfigTTL is how long a merged config map is served from cache.
const DefaultConfigTTL = 5 * time.Minute

const ruleEnvPrefix = "VALIDATION_RULE_"

// Environment parameter names recognized per rule type. The ENABLED flag is
// recognized for every type.
var ruleEnvParams = map[domain.ValidationRuleType][]string{
	domain.RuleAmountThresholdExceeded: {"THRESHOLD"},
	domain.RuleRoundAmountPattern:      {"MINIMUM_AMOUNT"},
	domain.RulePOAmountVariance:        {"VARIANCE_PERCENT"},
	domain.RulePriceVariance:           {"VARIANCE_PERCENT", "HISTORICAL_COUNT"},
}

// Parameters parsed as base-10 integers rather than floats.
var integerEnvParams = map[string]bool{
	"HISTORICAL_COUNT": true,
}

// CacheStats describes the resolver cache for observability endpoints.
type CacheStats struct {
	IsCached bool          `json:"is_cached"`
	Age      time.Duration `json:"age"`
	TTL      time.Duration `json:"ttl"`
}

// ConfigResolver merges environment overrides, persisted rule rows and hard
// defaults into one config map, with precedence env > persisted > default
// (params shallow-merged, env keys winning). The merged map is cached for TTL;
// concurrent refreshes share a single database read.
type ConfigResolver struct {
	rules port.ValidationRuleRepository
	ttl   time.Duration

	mu       sync.Mutex
	cache    map[domain.ValidationRuleType]rule.Config
	cachedAt time.Time
	inflight *refreshCall
}

type refreshCall struct {
	done    chan struct{}
	configs map[domain.ValidationRuleType]rule.Config
	err     error
}

// NewConfigResolver creates a resolver. A non-positive ttl falls back to
// DefaultConfigTTL.
func NewConfigResolver(rules port.ValidationRuleRepository, ttl time.Duration) *ConfigResolver {
	if ttl <= 0 {
		ttl = DefaultConfigTTL
	}
	return &ConfigResolver{rules: rules, ttl: ttl}
}

// GetAllRuleConfigs returns the merged config map, refreshing it when the
// cache is absent or older than the TTL. Callers must treat the returned map
// as read-only.
func (r *ConfigResolver) GetAllRuleConfigs(ctx context.Context) (map[domain.ValidationRuleType]rule.Config, error) {
	r.mu.Lock()
	if r.cache != nil && time.Since(r.cachedAt) < r.ttl {
		cached := r.cache
		r.mu.Unlock()
		return cached, nil
	}
	if r.inflight != nil {
		call := r.inflight
		r.mu.Unlock()
		<-call.done
		return call.configs, call.err
	}
	call := &refreshCall{done: make(chan struct{})}
	r.inflight = call
	r.mu.Unlock()

	configs, err := r.refresh(ctx)
	call.configs, call.err = configs, err

	r.mu.Lock()
	if err == nil {
		r.cache = configs
		r.cachedAt = time.Now()
	}
	r.inflight = nil
	r.mu.Unlock()
	close(call.done)

	return configs, err
}

// GetRuleConfig returns the merged config for one rule type. It fails with
// domain.ErrRuleConfigNotFound when neither an environment override nor a
// persisted row defines the type.
func (r *ConfigResolver) GetRuleConfig(ctx context.Context, ruleType domain.ValidationRuleType) (rule.Config, error) {
	configs, err := r.GetAllRuleConfigs(ctx)
	if err != nil {
		return rule.Config{}, err
	}
	cfg, ok := configs[ruleType]
	if !ok {
		return rule.Config{}, fmt.Errorf("%s: %w", ruleType, domain.ErrRuleConfigNotFound)
	}
	return cfg, nil
}

// InvalidateCache drops the cached merge immediately. Any collaborator that
// mutates persisted rule rows must call this.
func (r *ConfigResolver) InvalidateCache() {
	r.mu.Lock()
	r.cache = nil
	r.cachedAt = time.Time{}
	r.mu.Unlock()
	log.Printf("configResolver: cache invalidated")
}

// Stats reports the current cache state.
func (r *ConfigResolver) Stats() CacheStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := CacheStats{TTL: r.ttl}
	if r.cache != nil {
		stats.IsCached = true
		stats.Age = time.Since(r.cachedAt)
	}
	return stats
}

// refresh loads persisted rows and performs the three-tier merge.
func (r *ConfigResolver) refresh(ctx context.Context) (map[domain.ValidationRuleType]rule.Config, error) {
	rows, err := r.rules.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("configResolver: loading rule definitions: %w", err)
	}

	byType := make(map[domain.ValidationRuleType]*domain.ValidationRule, len(rows))
	for i := range rows {
		byType[rows[i].RuleType] = &rows[i]
	}

	merged := make(map[domain.ValidationRuleType]rule.Config)
	for _, rt := range domain.AllRuleTypes() {
		row := byType[rt]
		env := parseEnvOverride(rt)
		if row == nil && !env.present {
			// Neither source defines this type; hard defaults alone do not
			// make a rule resolvable.
			continue
		}

		cfg := rule.DefaultFor(rt)
		if row != nil {
			cfg.Enabled = row.Enabled
			if row.Severity.Valid() {
				cfg.Severity = row.Severity
			}
			for k, v := range parseRowParams(row) {
				cfg.Params[k] = v
			}
		} else {
			// Synthesized from environment only.
			cfg.Severity = domain.SeverityWarning
		}

		if env.enabled != nil {
			cfg.Enabled = *env.enabled
		}
		for k, v := range env.params {
			cfg.Params[k] = v
		}

		merged[rt] = cfg
	}

	log.Printf("configResolver: merged %d rule configs (%d persisted rows)", len(merged), len(rows))
	return merged, nil
}

// parseRowParams extracts numeric parameters from a persisted rule's JSON
// config. Non-numeric values are dropped with a log line.
func parseRowParams(row *domain.ValidationRule) map[string]float64 {
	params := make(map[string]float64)
	if len(row.Config) == 0 {
		return params
	}
	var raw map[string]any
	if err := json.Unmarshal(row.Config, &raw); err != nil {
		log.Printf("configResolver: rule %s has malformed config JSON, ignoring: %v", row.RuleType, err)
		return params
	}
	for k, v := range raw {
		switch n := v.(type) {
		case float64:
			params[k] = n
		case bool:
			if n {
				params[k] = 1
			} else {
				params[k] = 0
			}
		default:
			log.Printf("configResolver: rule %s config key %q is not numeric, dropping", row.RuleType, k)
		}
	}
	return params
}

type envOverride struct {
	present bool
	enabled *bool
	params  map[string]float64
}

// parseEnvOverride reads VALIDATION_RULE_<TYPE>_ENABLED and the rule's
// recognized parameter variables. Unparseable values are logged and dropped so
// the persisted or default value applies; negative values are logged as
// warnings but kept.
func parseEnvOverride(ruleType domain.ValidationRuleType) envOverride {
	out := envOverride{params: make(map[string]float64)}

	if raw, ok := os.LookupEnv(ruleEnvPrefix + string(ruleType) + "_ENABLED"); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			log.Printf("configResolver: unparseable %s%s_ENABLED=%q, ignoring", ruleEnvPrefix, ruleType, raw)
		} else {
			out.enabled = &enabled
			out.present = true
		}
	}

	for _, name := range ruleEnvParams[ruleType] {
		raw, ok := os.LookupEnv(ruleEnvPrefix + string(ruleType) + "_" + name)
		if !ok {
			continue
		}
		var value float64
		if integerEnvParams[name] {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				log.Printf("configResolver: unparseable %s%s_%s=%q, ignoring", ruleEnvPrefix, ruleType, name, raw)
				continue
			}
			value = float64(n)
		} else {
			f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				log.Printf("configResolver: unparseable %s%s_%s=%q, ignoring", ruleEnvPrefix, ruleType, name, raw)
				continue
			}
			value = f
		}
		if value < 0 {
			log.Printf("configResolver: %s%s_%s=%q is negative, keeping anyway", ruleEnvPrefix, ruleType, name, raw)
		}
		out.params[strings.ToLower(name)] = value
		out.present = true
	}

	return out
}
