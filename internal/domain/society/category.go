package society

import (
	"strings"

	"github.com/villaledger/backend/internal/domain/shared"
)

// PaymentCategory represents a head under which dues are charged.
// Recurring categories are charged every month; non-recurring ones
// are one-time charges scoped to the year they were created in.
type PaymentCategory struct {
	shared.BaseEntity
	Name        string
	Description string
	IsRecurring bool
	IsActive    bool
}

// NewPaymentCategory creates an active category with a generated ID
func NewPaymentCategory(name, description string, isRecurring bool) (*PaymentCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category name is required")
	}
	return &PaymentCategory{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		IsRecurring: isRecurring,
		IsActive:    true,
	}, nil
}

// IsCurrentForYear reports whether the category should appear in a
// listing scoped to the given year. Recurring categories are always
// current; one-time categories only in their creation year, so stale
// one-off charges do not clutter later years.
func (c *PaymentCategory) IsCurrentForYear(year int) bool {
	if c.IsRecurring {
		return true
	}
	return c.CreatedAt.Year() == year
}

// Deactivate soft-deletes the category, keeping historical payment
// references intact.
func (c *PaymentCategory) Deactivate() {
	c.IsActive = false
}
