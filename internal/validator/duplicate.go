package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"veristack/internal/domain"
	"veristack/internal/port"
	"veristack/internal/validator/rule"
)

// DuplicateDetector runs the authoritative duplicate check: another
// non-deleted invoice sharing the same invoice number and vendor. Its
// severity is fixed at Critical regardless of configuration.
type DuplicateDetector struct {
	resolver *ConfigResolver
	invoices port.InvoiceRepository
}

func NewDuplicateDetector(resolver *ConfigResolver, invoices port.InvoiceRepository) *DuplicateDetector {
	return &DuplicateDetector{resolver: resolver, invoices: invoices}
}

// CheckDuplicate evaluates the duplicate rule for one invoice. Invoices with
// a blank number or without a vendor cannot be compared and pass with a skip
// reason. A vendor id of zero is treated the same as an absent vendor.
func (d *DuplicateDetector) CheckDuplicate(ctx context.Context, inv *domain.Invoice) (rule.Result, error) {
	cfg, err := d.resolver.GetRuleConfig(ctx, domain.RuleDuplicateInvoiceNumber)
	if err != nil {
		if !errors.Is(err, domain.ErrRuleConfigNotFound) {
			return rule.Result{}, err
		}
		cfg = rule.DefaultFor(domain.RuleDuplicateInvoiceNumber)
	}

	if !cfg.Enabled {
		return rule.Pass(domain.RuleDuplicateInvoiceNumber, domain.SeverityCritical, rule.Details{
			"reason": "disabled",
		}), nil
	}

	number := ""
	if inv.InvoiceNumber != nil {
		number = strings.TrimSpace(*inv.InvoiceNumber)
	}
	if number == "" || inv.VendorID == nil || *inv.VendorID == 0 {
		return rule.Pass(domain.RuleDuplicateInvoiceNumber, domain.SeverityCritical, rule.Details{
			"reason": "nothing to check",
		}), nil
	}

	dup, err := d.invoices.FindDuplicateByNumberAndVendor(ctx, number, *inv.VendorID, inv.ID)
	if err != nil {
		return rule.Result{}, fmt.Errorf("duplicateDetector: lookup for invoice %d: %w", inv.ID, err)
	}
	if dup == nil {
		return rule.Pass(domain.RuleDuplicateInvoiceNumber, domain.SeverityCritical, rule.Details{
			"invoice_number": number,
		}), nil
	}

	return rule.Fail(domain.RuleDuplicateInvoiceNumber, domain.SeverityCritical, rule.Details{
		"duplicate_invoice_id": dup.ID,
		"invoice_number":       number,
		"duplicate_date":       dup.InvoiceDate.Format("2006-01-02"),
		"duplicate_amount":     dup.TotalAmount,
		"duplicate_status":     string(dup.Status),
		"message":              fmt.Sprintf("invoice number %s already used by invoice %d for the same vendor", number, dup.ID),
	}), nil
}
