package society

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/villaledger/backend/internal/domain/society"
)

type MockVillaRepository struct {
	mock.Mock
}

func (m *MockVillaRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.Villa, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.Villa), args.Error(1)
}

func (m *MockVillaRepository) FindByNumber(ctx context.Context, villaNumber string) (*society.Villa, error) {
	args := m.Called(ctx, villaNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.Villa), args.Error(1)
}

func (m *MockVillaRepository) FindAll(ctx context.Context, filter society.VillaFilter) ([]society.Villa, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.Villa), args.Error(1)
}

func (m *MockVillaRepository) Save(ctx context.Context, villa *society.Villa) error {
	args := m.Called(ctx, villa)
	return args.Error(0)
}

func (m *MockVillaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVillaRepository) Count(ctx context.Context, filter society.VillaFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockPaymentCategoryRepository struct {
	mock.Mock
}

func (m *MockPaymentCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.PaymentCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.PaymentCategory), args.Error(1)
}

func (m *MockPaymentCategoryRepository) FindAll(ctx context.Context, filter society.CategoryFilter) ([]society.PaymentCategory, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.PaymentCategory), args.Error(1)
}

func (m *MockPaymentCategoryRepository) Save(ctx context.Context, category *society.PaymentCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByTuple(ctx context.Context, villaID, categoryID uuid.UUID, month, year int) (*society.Payment, error) {
	args := m.Called(ctx, villaID, categoryID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByVilla(ctx context.Context, villaID uuid.UUID, filter society.PaymentFilter) ([]society.Payment, error) {
	args := m.Called(ctx, villaID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByPeriod(ctx context.Context, month, year int) ([]society.Payment, error) {
	args := m.Called(ctx, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]society.Payment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context) ([]society.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CreateOrMerge(ctx context.Context, incoming *society.Payment) (*society.Payment, bool, error) {
	args := m.Called(ctx, incoming)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*society.Payment), args.Bool(1), args.Error(2)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *society.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) CountByVilla(ctx context.Context, villaID uuid.UUID) (int64, error) {
	args := m.Called(ctx, villaID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) SumReceivedForPeriod(ctx context.Context, month, year int) (decimal.Decimal, error) {
	args := m.Called(ctx, month, year)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter society.ExpenseFilter) ([]society.Expense, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *society.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) SumForPeriod(ctx context.Context, month, year int) (decimal.Decimal, error) {
	args := m.Called(ctx, month, year)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockMonthlyBalanceRepository struct {
	mock.Mock
}

func (m *MockMonthlyBalanceRepository) FindByPeriod(ctx context.Context, month, year int) (*society.MonthlyBalance, error) {
	args := m.Called(ctx, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.MonthlyBalance), args.Error(1)
}

func (m *MockMonthlyBalanceRepository) FindByYear(ctx context.Context, year int) ([]society.MonthlyBalance, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.MonthlyBalance), args.Error(1)
}

func (m *MockMonthlyBalanceRepository) Save(ctx context.Context, balance *society.MonthlyBalance) error {
	args := m.Called(ctx, balance)
	return args.Error(0)
}
