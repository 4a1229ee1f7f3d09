package society

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/villaledger/backend/internal/domain/shared"
)

// VillaFilter defines filtering options for villa queries
type VillaFilter struct {
	shared.Filter
	OccupancyType *OccupancyType
}

// VillaRepository defines the interface for villa persistence
type VillaRepository interface {
	// FindByID finds a villa by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Villa, error)

	// FindByNumber finds a villa by its unique villa number
	FindByNumber(ctx context.Context, villaNumber string) (*Villa, error)

	// FindAll finds villas with filtering
	FindAll(ctx context.Context, filter VillaFilter) ([]Villa, error)

	// Save creates or updates a villa
	Save(ctx context.Context, villa *Villa) error

	// Delete removes a villa
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts villas matching the filter
	Count(ctx context.Context, filter VillaFilter) (int64, error)
}

// CategoryFilter defines filtering options for category queries.
// Year scoping of one-time categories is a domain predicate
// (PaymentCategory.IsCurrentForYear) applied by the caller, not a
// storage concern.
type CategoryFilter struct {
	ActiveOnly bool
}

// PaymentCategoryRepository defines the interface for category persistence
type PaymentCategoryRepository interface {
	// FindByID finds a category by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentCategory, error)

	// FindAll finds categories matching the filter, ordered by name ascending
	FindAll(ctx context.Context, filter CategoryFilter) ([]PaymentCategory, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *PaymentCategory) error
}

// PaymentFilter defines filtering options for payment queries
type PaymentFilter struct {
	Year       *int
	CategoryID *uuid.UUID
}

// PaymentRepository defines the interface for payment ledger persistence
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByTuple finds the unique payment row for a villa, category and
	// period, or shared.ErrNotFound
	FindByTuple(ctx context.Context, villaID, categoryID uuid.UUID, month, year int) (*Payment, error)

	// FindByVilla finds a villa's payments, sorted by (year desc, month desc)
	FindByVilla(ctx context.Context, villaID uuid.UUID, filter PaymentFilter) ([]Payment, error)

	// FindByPeriod finds all payments designated for a period
	FindByPeriod(ctx context.Context, month, year int) ([]Payment, error)

	// FindByDateRange finds payments whose physical payment date falls in
	// [from, to)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Payment, error)

	// FindAll returns the entire ledger sorted by (year desc, month desc)
	FindAll(ctx context.Context) ([]Payment, error)

	// CreateOrMerge atomically inserts the incoming row, or merges it into
	// the existing row for the same (villa, category, month, year) tuple.
	// Returns the stored row and whether a merge happened.
	CreateOrMerge(ctx context.Context, incoming *Payment) (*Payment, bool, error)

	// Save overwrites an existing payment row without merging
	Save(ctx context.Context, payment *Payment) error

	// Delete removes a payment row
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByVilla counts payment rows referencing a villa
	CountByVilla(ctx context.Context, villaID uuid.UUID) (int64, error)

	// SumReceivedForPeriod totals received amounts designated for a period
	SumReceivedForPeriod(ctx context.Context, month, year int) (decimal.Decimal, error)
}

// ExpenseFilter defines filtering options for expense queries
type ExpenseFilter struct {
	shared.Filter
	Month    *int
	Year     *int
	Category *string
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByID finds an expense by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindAll finds expenses matching the filter, newest first
	FindAll(ctx context.Context, filter ExpenseFilter) ([]Expense, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// Delete removes an expense
	Delete(ctx context.Context, id uuid.UUID) error

	// SumForPeriod totals expense amounts booked against a period
	SumForPeriod(ctx context.Context, month, year int) (decimal.Decimal, error)
}

// MonthlyBalanceRepository defines the interface for balance snapshot persistence
type MonthlyBalanceRepository interface {
	// FindByPeriod finds the balance snapshot for a period, or shared.ErrNotFound
	FindByPeriod(ctx context.Context, month, year int) (*MonthlyBalance, error)

	// FindByYear finds all snapshots for a year ordered by month ascending
	FindByYear(ctx context.Context, year int) ([]MonthlyBalance, error)

	// Save upserts a balance snapshot keyed on (month, year)
	Save(ctx context.Context, balance *MonthlyBalance) error
}
