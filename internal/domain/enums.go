package domain

// ValidationRuleType enumerates the built-in validation checks.
type ValidationRuleType string

const (
	RuleDuplicateInvoiceNumber  ValidationRuleType = "DUPLICATE_INVOICE_NUMBER"
	RuleMissingInvoiceNumber    ValidationRuleType = "MISSING_INVOICE_NUMBER"
	RuleAmountThresholdExceeded ValidationRuleType = "AMOUNT_THRESHOLD_EXCEEDED"
	RuleRoundAmountPattern      ValidationRuleType = "ROUND_AMOUNT_PATTERN"
	RulePOAmountVariance        ValidationRuleType = "PO_AMOUNT_VARIANCE"
	RulePOItemMismatch          ValidationRuleType = "PO_ITEM_MISMATCH"
	RuleDeliveryNoteMismatch    ValidationRuleType = "DELIVERY_NOTE_MISMATCH"
	RulePriceVariance           ValidationRuleType = "PRICE_VARIANCE"
)

// AllRuleTypes returns every known rule type in a stable order.
func AllRuleTypes() []ValidationRuleType {
	return []ValidationRuleType{
		RuleDuplicateInvoiceNumber,
		RuleMissingInvoiceNumber,
		RuleAmountThresholdExceeded,
		RuleRoundAmountPattern,
		RulePOAmountVariance,
		RulePOItemMismatch,
		RuleDeliveryNoteMismatch,
		RulePriceVariance,
	}
}

// Severity ranks validation outcomes. Critical blocks, Warning and Info do not.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
	SeverityInfo     Severity = "INFO"
)

// Rank returns the reduction order: Critical > Warning > Info. Unknown
// severities rank below Info.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	return s == SeverityCritical || s == SeverityWarning || s == SeverityInfo
}

// ValidationStatus is the lifecycle of a persisted flagged result. The engine
// only ever writes FLAGGED; review flows move rows to RESOLVED or OVERRIDDEN.
type ValidationStatus string

const (
	ValidationStatusFlagged    ValidationStatus = "FLAGGED"
	ValidationStatusResolved   ValidationStatus = "RESOLVED"
	ValidationStatusOverridden ValidationStatus = "OVERRIDDEN"
)

// InvoiceStatus is the lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft    InvoiceStatus = "draft"
	InvoiceStatusPending  InvoiceStatus = "pending_approval"
	InvoiceStatusApproved InvoiceStatus = "approved"
	InvoiceStatusPaid     InvoiceStatus = "paid"
	InvoiceStatusRejected InvoiceStatus = "rejected"
)

// PurchaseOrderStatus is the lifecycle of a purchase order.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusOpen      PurchaseOrderStatus = "open"
	PurchaseOrderStatusFulfilled PurchaseOrderStatus = "fulfilled"
	PurchaseOrderStatusClosed    PurchaseOrderStatus = "closed"
)

// ItemCondition describes the state of delivered goods on a delivery note line.
type ItemCondition string

const (
	ConditionGood    ItemCondition = "good"
	ConditionDamaged ItemCondition = "damaged"
	ConditionPartial ItemCondition = "partial"
)

// UserRole defines the API role hierarchy.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)
