package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Vendor represents a supplier that issues invoices.
type Vendor struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	TaxID     *string   `db:"tax_id" json:"tax_id,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Item represents a purchasable good or service referenced by invoice lines.
type Item struct {
	ID        int64     `db:"id" json:"id"`
	SKU       string    `db:"sku" json:"sku"`
	Name      string    `db:"name" json:"name"`
	UnitPrice float64   `db:"unit_price" json:"unit_price"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Invoice is the aggregate the validation engine operates on. Items,
// PurchaseOrder and DeliveryNotes are loaded on demand via port.InvoiceInclude
// and are nil/empty otherwise.
type Invoice struct {
	ID              int64         `db:"id" json:"id"`
	InvoiceNumber   *string       `db:"invoice_number" json:"invoice_number,omitempty"`
	VendorID        *int64        `db:"vendor_id" json:"vendor_id,omitempty"`
	PurchaseOrderID *int64        `db:"purchase_order_id" json:"purchase_order_id,omitempty"`
	TotalAmount     float64       `db:"total_amount" json:"total_amount"`
	InvoiceDate     time.Time     `db:"invoice_date" json:"invoice_date"`
	Status          InvoiceStatus `db:"status" json:"status"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
	DeletedAt       *time.Time    `db:"deleted_at" json:"-"`

	Items         []InvoiceItem  `db:"-" json:"items,omitempty"`
	PurchaseOrder *PurchaseOrder `db:"-" json:"purchase_order,omitempty"`
	DeliveryNotes []DeliveryNote `db:"-" json:"delivery_notes,omitempty"`
}

// InvoiceItem is a single line on an invoice.
type InvoiceItem struct {
	ID        int64   `db:"id" json:"id"`
	InvoiceID int64   `db:"invoice_id" json:"invoice_id"`
	ItemID    int64   `db:"item_id" json:"item_id"`
	Quantity  float64 `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unit_price"`
}

// PurchaseOrder represents an approved order an invoice may be billed against.
type PurchaseOrder struct {
	ID          int64               `db:"id" json:"id"`
	OrderNumber string              `db:"order_number" json:"order_number"`
	VendorID    int64               `db:"vendor_id" json:"vendor_id"`
	Status      PurchaseOrderStatus `db:"status" json:"status"`
	OrderDate   time.Time           `db:"order_date" json:"order_date"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `db:"updated_at" json:"updated_at"`

	Items []PurchaseOrderItem `db:"-" json:"items,omitempty"`
}

// PurchaseOrderItem is a single line on a purchase order.
type PurchaseOrderItem struct {
	ID              int64   `db:"id" json:"id"`
	PurchaseOrderID int64   `db:"purchase_order_id" json:"purchase_order_id"`
	ItemID          int64   `db:"item_id" json:"item_id"`
	Quantity        float64 `db:"quantity" json:"quantity"`
	UnitPrice       float64 `db:"unit_price" json:"unit_price"`
}

// DeliveryNote records goods received against an invoice.
type DeliveryNote struct {
	ID         int64     `db:"id" json:"id"`
	NoteNumber string    `db:"note_number" json:"note_number"`
	InvoiceID  int64     `db:"invoice_id" json:"invoice_id"`
	ReceivedAt time.Time `db:"received_at" json:"received_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`

	Items []DeliveryNoteItem `db:"-" json:"items,omitempty"`
}

// DeliveryNoteItem records ordered vs delivered quantities for one item on a note.
type DeliveryNoteItem struct {
	ID                int64         `db:"id" json:"id"`
	DeliveryNoteID    int64         `db:"delivery_note_id" json:"delivery_note_id"`
	ItemID            int64         `db:"item_id" json:"item_id"`
	OrderedQuantity   float64       `db:"ordered_quantity" json:"ordered_quantity"`
	DeliveredQuantity float64       `db:"delivered_quantity" json:"delivered_quantity"`
	Condition         ItemCondition `db:"condition" json:"condition"`
}

// ItemPriceHistory is one historical price observation for an item.
type ItemPriceHistory struct {
	ID         int64     `db:"id" json:"id"`
	ItemID     int64     `db:"item_id" json:"item_id"`
	Price      float64   `db:"price" json:"price"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

// ValidationRule is a persisted rule definition; Config holds rule-specific
// numeric parameters as JSON.
type ValidationRule struct {
	ID        int64              `db:"id" json:"id"`
	RuleType  ValidationRuleType `db:"rule_type" json:"rule_type"`
	Name      string             `db:"name" json:"name"`
	Enabled   bool               `db:"enabled" json:"enabled"`
	Severity  Severity           `db:"severity" json:"severity"`
	Config    json.RawMessage    `db:"config" json:"config"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

// InvoiceValidation is one persisted flagged validation result. Only failed
// results are ever written; passed results exist only in the run summary.
type InvoiceValidation struct {
	ID        uuid.UUID          `db:"id" json:"id"`
	InvoiceID int64              `db:"invoice_id" json:"invoice_id"`
	RuleType  ValidationRuleType `db:"rule_type" json:"rule_type"`
	Severity  Severity           `db:"severity" json:"severity"`
	Status    ValidationStatus   `db:"status" json:"status"`
	Details   string             `db:"details" json:"details"`
	Metadata  json.RawMessage    `db:"metadata" json:"metadata"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
}
