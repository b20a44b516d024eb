package rule

import (
	"sort"

	"veristack/internal/domain"
)

// Context is the read-only bundle attached to a single validation pass. It is
// built once by the orchestrator and shared by every rule in the batch.
type Context struct {
	PurchaseOrder *domain.PurchaseOrder
	DeliveryNotes []domain.DeliveryNote
	PriceHistory  []domain.ItemPriceHistory
}

// HistoryForItem returns the item's price history sorted newest first.
func (c *Context) HistoryForItem(itemID int64) []domain.ItemPriceHistory {
	if c == nil {
		return nil
	}
	var rows []domain.ItemPriceHistory
	for _, h := range c.PriceHistory {
		if h.ItemID == itemID {
			rows = append(rows, h)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].RecordedAt.After(rows[j].RecordedAt)
	})
	return rows
}

// DeliveredQuantities sums delivered quantities per item across all notes.
func (c *Context) DeliveredQuantities() map[int64]float64 {
	totals := make(map[int64]float64)
	if c == nil {
		return totals
	}
	for _, note := range c.DeliveryNotes {
		for _, li := range note.Items {
			totals[li.ItemID] += li.DeliveredQuantity
		}
	}
	return totals
}
