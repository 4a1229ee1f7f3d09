package society

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/villaledger/backend/internal/domain/shared"
)

// MonthlyBalance is a rolling cash snapshot for one period. Each
// month's closing balance chains off the previous month's stored
// closing balance; regenerating an early month does not cascade into
// later months, so callers regenerate in chronological order.
type MonthlyBalance struct {
	shared.BaseEntity
	Month           int // 1-12
	Year            int
	PreviousBalance decimal.Decimal
	TotalReceipts   decimal.Decimal
	TotalExpenses   decimal.Decimal
	CurrentBalance  decimal.Decimal
	IsGenerated     bool
	GeneratedAt     *time.Time
}

// NewMonthlyBalance assembles a generated balance snapshot for a period.
func NewMonthlyBalance(month, year int, previous, receipts, expenses decimal.Decimal, now time.Time) *MonthlyBalance {
	return &MonthlyBalance{
		BaseEntity:      shared.NewBaseEntity(),
		Month:           month,
		Year:            year,
		PreviousBalance: previous,
		TotalReceipts:   receipts,
		TotalExpenses:   expenses,
		CurrentBalance:  previous.Add(receipts).Sub(expenses),
		IsGenerated:     true,
		GeneratedAt:     &now,
	}
}

// Period returns the period this balance covers.
func (b *MonthlyBalance) Period() Period {
	return Period{Month: b.Month, Year: b.Year}
}

// Regenerate recomputes the snapshot in place from fresh aggregates.
func (b *MonthlyBalance) Regenerate(previous, receipts, expenses decimal.Decimal, now time.Time) {
	b.PreviousBalance = previous
	b.TotalReceipts = receipts
	b.TotalExpenses = expenses
	b.CurrentBalance = previous.Add(receipts).Sub(expenses)
	b.IsGenerated = true
	b.GeneratedAt = &now
	b.UpdatedAt = now
}
