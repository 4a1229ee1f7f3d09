package society

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/villaledger/backend/internal/domain/shared"
	"github.com/villaledger/backend/internal/domain/society"
)

// ExpenseService manages society outgoings
type ExpenseService struct {
	expenseRepo society.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo society.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpenseRequest captures one outgoing
type CreateExpenseRequest struct {
	Category      string          `json:"category" binding:"required"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	ExpenseDate   time.Time       `json:"expense_date" binding:"required"`
	ExpenseMonth  int             `json:"expense_month" binding:"required,min=1,max=12"`
	ExpenseYear   int             `json:"expense_year" binding:"required,min=2000"`
	PaymentMethod string          `json:"payment_method"`
}

// UpdateExpenseRequest carries a partial expense correction
type UpdateExpenseRequest struct {
	Category      *string          `json:"category"`
	Description   *string          `json:"description"`
	Amount        *decimal.Decimal `json:"amount"`
	ExpenseDate   *time.Time       `json:"expense_date"`
	PaymentMethod *string          `json:"payment_method"`
}

// ExpenseView is the read model for one expense
type ExpenseView struct {
	ID            uuid.UUID             `json:"id"`
	Category      string                `json:"category"`
	Description   string                `json:"description"`
	Amount        decimal.Decimal       `json:"amount"`
	ExpenseDate   time.Time             `json:"expense_date"`
	ExpenseMonth  int                   `json:"expense_month"`
	ExpenseYear   int                   `json:"expense_year"`
	PaymentMethod society.PaymentMethod `json:"payment_method"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func newExpenseView(e society.Expense) ExpenseView {
	return ExpenseView{
		ID:            e.ID,
		Category:      e.Category,
		Description:   e.Description,
		Amount:        e.Amount,
		ExpenseDate:   e.ExpenseDate,
		ExpenseMonth:  e.ExpenseMonth,
		ExpenseYear:   e.ExpenseYear,
		PaymentMethod: e.PaymentMethod,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// Create records an outgoing
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest) (*ExpenseView, error) {
	expense, err := society.NewExpense(
		req.Category,
		req.Description,
		req.Amount,
		req.ExpenseDate,
		req.ExpenseMonth,
		req.ExpenseYear,
		society.PaymentMethod(req.PaymentMethod),
	)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}
	view := newExpenseView(*expense)
	return &view, nil
}

// GetByID loads one expense
func (s *ExpenseService) GetByID(ctx context.Context, id uuid.UUID) (*ExpenseView, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense: %w", err)
	}
	view := newExpenseView(*expense)
	return &view, nil
}

// List returns expenses matching the filter, newest first
func (s *ExpenseService) List(ctx context.Context, filter society.ExpenseFilter) ([]ExpenseView, error) {
	expenses, err := s.expenseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	views := make([]ExpenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, newExpenseView(e))
	}
	return views, nil
}

// Update corrects an expense in place
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseView, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense: %w", err)
	}
	if req.Category != nil {
		if *req.Category == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Expense category is required")
		}
		expense.Category = *req.Category
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Expense amount cannot be negative")
		}
		expense.Amount = *req.Amount
	}
	if req.ExpenseDate != nil {
		expense.ExpenseDate = *req.ExpenseDate
	}
	if req.PaymentMethod != nil {
		method := society.PaymentMethod(*req.PaymentMethod)
		if method != "" && !method.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment method")
		}
		expense.PaymentMethod = method
	}
	expense.UpdatedAt = time.Now()
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}
	view := newExpenseView(*expense)
	return &view, nil
}

// Delete removes an expense permanently
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.expenseRepo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("failed to load expense: %w", err)
	}
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// SumForPeriod totals expenses designated for one month
func (s *ExpenseService) SumForPeriod(ctx context.Context, month, year int) (decimal.Decimal, error) {
	period := society.Period{Month: month, Year: year}
	if !period.IsValid() {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Invalid month or year")
	}
	total, err := s.expenseRepo.SumForPeriod(ctx, month, year)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}
