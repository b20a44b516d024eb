package validator

import (
	"context"
	"log"
	"sync"
	"time"

	"veristack/internal/domain"
	"veristack/internal/validator/rule"
)

// DefaultRuleTimeout bounds how long a single rule may run before it is
// reported as errored and the batch moves on without it.
const DefaultRuleTimeout = 10 * time.Second

// AnomalyDetector builds the active rule set from merged config and evaluates
// every active rule concurrently. Rule order and completion order are
// unspecified; the orchestrator's aggregation is order-independent.
type AnomalyDetector struct {
	resolver    *ConfigResolver
	ruleTimeout time.Duration
}

// NewAnomalyDetector creates a detector. A non-positive ruleTimeout falls
// back to DefaultRuleTimeout.
func NewAnomalyDetector(resolver *ConfigResolver, ruleTimeout time.Duration) *AnomalyDetector {
	if ruleTimeout <= 0 {
		ruleTimeout = DefaultRuleTimeout
	}
	return &AnomalyDetector{resolver: resolver, ruleTimeout: ruleTimeout}
}

// DetectAnomalies fans out all enabled anomaly rules and collects their
// results. A rule that panics or overruns its timeout degrades to a single
// failed result carrying an "error" detail; it never aborts its siblings.
func (d *AnomalyDetector) DetectAnomalies(ctx context.Context, inv *domain.Invoice, vctx *rule.Context) ([]rule.Result, error) {
	configs, err := d.resolver.GetAllRuleConfigs(ctx)
	if err != nil {
		return nil, err
	}

	var active []rule.Rule
	for ruleType, construct := range ruleConstructors {
		cfg, ok := configs[ruleType]
		if !ok || !cfg.Enabled {
			continue
		}
		active = append(active, construct(cfg))
	}
	if len(active) == 0 {
		return nil, nil
	}

	results := make([]rule.Result, len(active))
	var wg sync.WaitGroup
	for i, rl := range active {
		wg.Add(1)
		go func(i int, rl rule.Rule) {
			defer wg.Done()
			results[i] = d.evaluate(ctx, rl, inv, vctx)
		}(i, rl)
	}
	wg.Wait()

	return results, nil
}

// evaluate runs one rule with panic isolation and a per-rule deadline. The
// rule itself runs in a child goroutine; if it overruns the deadline its
// goroutine is abandoned and an errored result is returned in its place.
func (d *AnomalyDetector) evaluate(ctx context.Context, rl rule.Rule, inv *domain.Invoice, vctx *rule.Context) rule.Result {
	rctx, cancel := context.WithTimeout(ctx, d.ruleTimeout)
	defer cancel()

	done := make(chan rule.Result, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				log.Printf("anomalyDetector: rule %s panicked on invoice %d: %v", rl.Type(), inv.ID, p)
				done <- rule.Fail(rl.Type(), rl.Severity(), rule.Details{
					"error":   "rule evaluation panicked",
					"message": "rule evaluation failed",
				})
			}
		}()
		done <- rl.Validate(rctx, inv, vctx)
	}()

	select {
	case res := <-done:
		return res
	case <-rctx.Done():
		log.Printf("anomalyDetector: rule %s timed out on invoice %d: %v", rl.Type(), inv.ID, rctx.Err())
		return rule.Fail(rl.Type(), rl.Severity(), rule.Details{
			"error":   rctx.Err().Error(),
			"message": "rule evaluation timed out",
		})
	}
}
