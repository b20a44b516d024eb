package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"veristack/internal/domain"
	"veristack/internal/port"
	"veristack/internal/validator/rule"
)

// DefaultPriceHistoryLimit caps the most-recent price-history rows loaded per
// referenced item for one validation pass.
const DefaultPriceHistoryLimit = 50

// Summary is the outcome of one orchestration run. Validations carries both
// passed and failed results; only failed ones are persisted.
type Summary struct {
	InvoiceID         int64            `json:"invoice_id"`
	IsValid           bool             `json:"is_valid"`
	HasBlockingIssues bool             `json:"has_blocking_issues"`
	FlagCount         int              `json:"flag_count"`
	HighestSeverity   *domain.Severity `json:"highest_severity"`
	Validations       []rule.Result    `json:"validations"`
}

// Orchestrator is the engine's top-level coordinator: it loads the invoice
// with its related aggregates, drives the duplicate check and the anomaly
// batch, persists failed results and reduces the outcome into a Summary.
type Orchestrator struct {
	invoices     port.InvoiceRepository
	validations  port.InvoiceValidationRepository
	duplicates   *DuplicateDetector
	anomalies    *AnomalyDetector
	historyLimit int
}

// NewOrchestrator creates an orchestrator. A non-positive historyLimit falls
// back to DefaultPriceHistoryLimit.
func NewOrchestrator(
	invoices port.InvoiceRepository,
	validations port.InvoiceValidationRepository,
	duplicates *DuplicateDetector,
	anomalies *AnomalyDetector,
	historyLimit int,
) *Orchestrator {
	if historyLimit <= 0 {
		historyLimit = DefaultPriceHistoryLimit
	}
	return &Orchestrator{
		invoices:     invoices,
		validations:  validations,
		duplicates:   duplicates,
		anomalies:    anomalies,
		historyLimit: historyLimit,
	}
}

// ValidateInvoice runs one full validation pass over the invoice. Previously
// persisted flagged rows are removed and replaced by this run's failures; a
// persistence failure aborts the run without a partial summary.
func (o *Orchestrator) ValidateInvoice(ctx context.Context, invoiceID int64) (*Summary, error) {
	inv, err := o.invoices.FindByID(ctx, invoiceID, port.InvoiceInclude{
		Items:         true,
		PurchaseOrder: true,
		DeliveryNotes: true,
	})
	if err != nil {
		return nil, err
	}

	vctx, err := o.buildContext(ctx, inv)
	if err != nil {
		return nil, err
	}

	// The duplicate check is authoritative and always runs ahead of the
	// concurrent anomaly batch.
	dupResult, err := o.duplicates.CheckDuplicate(ctx, inv)
	if err != nil {
		return nil, err
	}
	anomalyResults, err := o.anomalies.DetectAnomalies(ctx, inv, vctx)
	if err != nil {
		return nil, err
	}

	all := make([]rule.Result, 0, 1+len(anomalyResults))
	all = append(all, dupResult)
	all = append(all, anomalyResults...)

	var failed []rule.Result
	for _, res := range all {
		if !res.Passed {
			failed = append(failed, res)
		}
	}

	if err := o.persistFailures(ctx, invoiceID, failed); err != nil {
		return nil, err
	}

	highest := highestSeverity(failed)
	summary := &Summary{
		InvoiceID:         invoiceID,
		IsValid:           len(failed) == 0,
		HasBlockingIssues: hasBlocking(failed),
		FlagCount:         len(failed),
		HighestSeverity:   highest,
		Validations:       all,
	}

	log.Printf("validationOrchestrator: invoice %d validated — flags=%d, blocking=%t, results=%d",
		invoiceID, summary.FlagCount, summary.HasBlockingIssues, len(all))
	return summary, nil
}

// buildContext assembles the read-only pass context from the loaded invoice.
func (o *Orchestrator) buildContext(ctx context.Context, inv *domain.Invoice) (*rule.Context, error) {
	vctx := &rule.Context{
		PurchaseOrder: inv.PurchaseOrder,
		DeliveryNotes: inv.DeliveryNotes,
	}
	if len(inv.Items) == 0 {
		return vctx, nil
	}

	itemIDs := make([]int64, 0, len(inv.Items))
	seen := make(map[int64]bool, len(inv.Items))
	for _, li := range inv.Items {
		if !seen[li.ItemID] {
			seen[li.ItemID] = true
			itemIDs = append(itemIDs, li.ItemID)
		}
	}

	history, err := o.invoices.FindPriceHistoryForItems(ctx, itemIDs, o.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("validationOrchestrator: loading price history for invoice %d: %w", inv.ID, err)
	}
	vctx.PriceHistory = history
	return vctx, nil
}

// persistFailures replaces the invoice's flagged rows with this run's failed
// results. The delete runs even when there are no failures so that a clean
// re-validation clears stale flags.
func (o *Orchestrator) persistFailures(ctx context.Context, invoiceID int64, failed []rule.Result) error {
	if err := o.validations.DeleteByInvoiceID(ctx, invoiceID); err != nil {
		return fmt.Errorf("validationOrchestrator: clearing previous validations for invoice %d: %w", invoiceID, err)
	}
	if len(failed) == 0 {
		return nil
	}

	now := time.Now().UTC()
	records := make([]domain.InvoiceValidation, 0, len(failed))
	for _, res := range failed {
		metadata, err := json.Marshal(res.Details)
		if err != nil {
			return fmt.Errorf("validationOrchestrator: marshaling details for rule %s: %w", res.RuleType, err)
		}
		records = append(records, domain.InvoiceValidation{
			ID:        uuid.New(),
			InvoiceID: invoiceID,
			RuleType:  res.RuleType,
			Severity:  res.Severity,
			Status:    domain.ValidationStatusFlagged,
			Details:   res.Message(),
			Metadata:  metadata,
			CreatedAt: now,
		})
	}

	if err := o.validations.CreateMany(ctx, records); err != nil {
		return fmt.Errorf("validationOrchestrator: persisting %d flagged validations for invoice %d: %w",
			len(records), invoiceID, err)
	}
	return nil
}

// highestSeverity reduces failed results to the top severity, nil when there
// are none. The reduction is commutative, so result order never matters.
func highestSeverity(failed []rule.Result) *domain.Severity {
	var top *domain.Severity
	for i := range failed {
		sev := failed[i].Severity
		if top == nil || sev.Rank() > top.Rank() {
			s := sev
			top = &s
		}
	}
	return top
}

func hasBlocking(failed []rule.Result) bool {
	for _, res := range failed {
		if res.Severity == domain.SeverityCritical {
			return true
		}
	}
	return false
}
