package rule

import (
	"context"
	"fmt"
	"math"

	"veristack/internal/domain"
)

// PriceVariance flags invoice line items whose unit price deviates from the
// recent historical average by strictly more than the configured percentage.
// The average uses at most historicalCount most-recent-by-date rows per item;
// items with no history are skipped, and an invoice with no history at all
// passes with a skip reason.
type PriceVariance struct {
	cfg        Config
	maxPercent float64
	window     int
}

func NewPriceVariance(cfg Config) *PriceVariance {
	return &PriceVariance{
		cfg:        cfg,
		maxPercent: cfg.Param(ParamVariancePercent, DefaultPriceVariancePct),
		window:     cfg.IntParam(ParamHistoricalCount, DefaultHistoricalCount),
	}
}

func (r *PriceVariance) Type() domain.ValidationRuleType { return domain.RulePriceVariance }
func (r *PriceVariance) Severity() domain.Severity       { return r.cfg.Severity }

func (r *PriceVariance) Validate(_ context.Context, inv *domain.Invoice, vctx *Context) Result {
	if vctx == nil || len(vctx.PriceHistory) == 0 {
		return Pass(r.Type(), r.cfg.Severity, Details{
			"reason": "no price history available",
		})
	}

	type deviation struct {
		ItemID         int64   `json:"item_id"`
		UnitPrice      float64 `json:"unit_price"`
		AveragePrice   float64 `json:"average_price"`
		DeviationPct   float64 `json:"deviation_percent"`
		SamplesAverage int     `json:"samples_averaged"`
	}
	var offenders []deviation

	for _, li := range inv.Items {
		history := vctx.HistoryForItem(li.ItemID)
		if len(history) == 0 {
			continue
		}
		if len(history) > r.window {
			history = history[:r.window]
		}
		var sum float64
		for _, h := range history {
			sum += h.Price
		}
		avg := sum / float64(len(history))
		if avg == 0 {
			continue
		}
		pct := math.Abs(li.UnitPrice-avg) * 100 / avg
		if pct > r.maxPercent {
			offenders = append(offenders, deviation{
				ItemID:         li.ItemID,
				UnitPrice:      li.UnitPrice,
				AveragePrice:   avg,
				DeviationPct:   pct,
				SamplesAverage: len(history),
			})
		}
	}

	if len(offenders) > 0 {
		return Fail(r.Type(), r.cfg.Severity, Details{
			"deviations":  offenders,
			"max_percent": r.maxPercent,
			"message":     fmt.Sprintf("%d item(s) priced outside the %.2f%% band around recent history", len(offenders), r.maxPercent),
		})
	}
	return Pass(r.Type(), r.cfg.Severity, Details{
		"max_percent": r.maxPercent,
	})
}
