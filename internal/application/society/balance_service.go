package society

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/villaledger/backend/internal/domain/shared"
	"github.com/villaledger/backend/internal/domain/society"
)

// BalanceService maintains the monthly balance chain. Each generated
// month snapshots previous closing balance + receipts - expenses.
// Regenerating a month recomputes only that month; later months keep
// their stored figures until they are regenerated themselves.
type BalanceService struct {
	balanceRepo society.MonthlyBalanceRepository
	paymentRepo society.PaymentRepository
	expenseRepo society.ExpenseRepository
	clock       shared.Clock
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(
	balanceRepo society.MonthlyBalanceRepository,
	paymentRepo society.PaymentRepository,
	expenseRepo society.ExpenseRepository,
	clock shared.Clock,
) *BalanceService {
	return &BalanceService{
		balanceRepo: balanceRepo,
		paymentRepo: paymentRepo,
		expenseRepo: expenseRepo,
		clock:       clock,
	}
}

// BalanceView is the read model for one monthly balance
type BalanceView struct {
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	MonthName       string          `json:"month_name"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	TotalReceipts   decimal.Decimal `json:"total_receipts"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	IsGenerated     bool            `json:"is_generated"`
	GeneratedAt     *time.Time      `json:"generated_at"`
}

func newBalanceView(b society.MonthlyBalance) BalanceView {
	return BalanceView{
		Month:           b.Month,
		Year:            b.Year,
		MonthName:       society.Period{Month: b.Month, Year: b.Year}.MonthName(),
		PreviousBalance: b.PreviousBalance,
		TotalReceipts:   b.TotalReceipts,
		TotalExpenses:   b.TotalExpenses,
		CurrentBalance:  b.CurrentBalance,
		IsGenerated:     b.IsGenerated,
		GeneratedAt:     b.GeneratedAt,
	}
}

// Generate computes and stores the balance for one month. Receipts are
// the sum of received amounts designated for the period, expenses the
// sum of expenses designated for it, and the opening figure is the
// stored closing balance of the previous month (zero when absent).
// Calling Generate again for the same month recomputes and overwrites.
func (s *BalanceService) Generate(ctx context.Context, month, year int) (*BalanceView, error) {
	period := society.Period{Month: month, Year: year}
	if !period.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid month or year")
	}

	previous := decimal.Zero
	prevPeriod := period.Previous()
	prevBalance, err := s.balanceRepo.FindByPeriod(ctx, prevPeriod.Month, prevPeriod.Year)
	switch {
	case err == nil:
		previous = prevBalance.CurrentBalance
	case errors.Is(err, shared.ErrNotFound):
		// First month in the chain opens at zero.
	default:
		return nil, fmt.Errorf("failed to load previous balance: %w", err)
	}

	receipts, err := s.paymentRepo.SumReceivedForPeriod(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum receipts: %w", err)
	}
	expenses, err := s.expenseRepo.SumForPeriod(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	now := s.clock.Now()
	balance, err := s.balanceRepo.FindByPeriod(ctx, month, year)
	switch {
	case err == nil:
		balance.Regenerate(previous, receipts, expenses, now)
	case errors.Is(err, shared.ErrNotFound):
		balance = society.NewMonthlyBalance(month, year, previous, receipts, expenses, now)
	default:
		return nil, fmt.Errorf("failed to load balance: %w", err)
	}

	if err := s.balanceRepo.Save(ctx, balance); err != nil {
		return nil, fmt.Errorf("failed to save balance: %w", err)
	}
	view := newBalanceView(*balance)
	return &view, nil
}

// Get returns the stored balance for one month
func (s *BalanceService) Get(ctx context.Context, month, year int) (*BalanceView, error) {
	period := society.Period{Month: month, Year: year}
	if !period.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid month or year")
	}
	balance, err := s.balanceRepo.FindByPeriod(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance: %w", err)
	}
	view := newBalanceView(*balance)
	return &view, nil
}

// List returns every stored balance for a year in month order
func (s *BalanceService) List(ctx context.Context, year int) ([]BalanceView, error) {
	if year <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid year")
	}
	balances, err := s.balanceRepo.FindByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load balances: %w", err)
	}
	views := make([]BalanceView, 0, len(balances))
	for _, b := range balances {
		views = append(views, newBalanceView(b))
	}
	return views, nil
}
