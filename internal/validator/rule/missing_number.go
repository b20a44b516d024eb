package rule

import (
	"context"
	"strings"

	"veristack/internal/domain"
)

// MissingInvoiceNumber flags invoices whose number is null, empty or
// whitespace-only.
type MissingInvoiceNumber struct {
	cfg Config
}

func NewMissingInvoiceNumber(cfg Config) *MissingInvoiceNumber {
	return &MissingInvoiceNumber{cfg: cfg}
}

func (r *MissingInvoiceNumber) Type() domain.ValidationRuleType { return domain.RuleMissingInvoiceNumber }
func (r *MissingInvoiceNumber) Severity() domain.Severity       { return r.cfg.Severity }

func (r *MissingInvoiceNumber) Validate(_ context.Context, inv *domain.Invoice, _ *Context) Result {
	if inv.InvoiceNumber == nil || strings.TrimSpace(*inv.InvoiceNumber) == "" {
		return Fail(r.Type(), r.cfg.Severity, Details{
			"message": "invoice has no invoice number",
		})
	}
	return Pass(r.Type(), r.cfg.Severity, Details{
		"invoice_number": *inv.InvoiceNumber,
	})
}
