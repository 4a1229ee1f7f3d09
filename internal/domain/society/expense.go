package society

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/villaledger/backend/internal/domain/shared"
)

// Expense is an operating cost borne by the society. It is independent
// of the villa ledger and is only consumed in aggregate when rolling up
// monthly balances.
type Expense struct {
	shared.BaseEntity
	Category      string // free-text label, not a PaymentCategory reference
	Description   string
	Amount        decimal.Decimal
	ExpenseDate   time.Time
	ExpenseMonth  int // 1-12
	ExpenseYear   int
	PaymentMethod PaymentMethod
}

// NewExpense creates an expense with a generated ID
func NewExpense(
	category, description string,
	amount decimal.Decimal,
	expenseDate time.Time,
	month, year int,
	method PaymentMethod,
) (*Expense, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense category is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense amount cannot be negative")
	}
	if !(Period{Month: month, Year: year}).IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid expense month or year")
	}
	if method != "" && !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment method")
	}
	return &Expense{
		BaseEntity:    shared.NewBaseEntity(),
		Category:      category,
		Description:   description,
		Amount:        amount,
		ExpenseDate:   expenseDate,
		ExpenseMonth:  month,
		ExpenseYear:   year,
		PaymentMethod: method,
	}, nil
}

// Period returns the period this expense is booked against.
func (e *Expense) Period() Period {
	return Period{Month: e.ExpenseMonth, Year: e.ExpenseYear}
}
