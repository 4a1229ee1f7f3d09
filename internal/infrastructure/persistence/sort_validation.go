package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// VillaSortFields contains allowed sort fields for villas
var VillaSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"villa_number":   true,
	"resident_name":  true,
	"occupancy_type": true,
}

// PaymentSortFields contains allowed sort fields for ledger rows
var PaymentSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"payment_date":      true,
	"payment_month":     true,
	"payment_year":      true,
	"receivable_amount": true,
	"received_amount":   true,
	"payment_method":    true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"expense_date":   true,
	"expense_month":  true,
	"expense_year":   true,
	"category":       true,
	"amount":         true,
	"payment_method": true,
}
