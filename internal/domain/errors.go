package domain

import "errors"

var (
	ErrVendorNotFound         = errors.New("vendor not found")
	ErrItemNotFound           = errors.New("item not found")
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrPurchaseOrderNotFound  = errors.New("purchase order not found")
	ErrValidationRuleNotFound = errors.New("validation rule not found")
	ErrRuleConfigNotFound     = errors.New("no configuration found for rule type")
	ErrInvalidSeverity        = errors.New("invalid severity")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
)
