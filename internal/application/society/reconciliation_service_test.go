package society

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/villaledger/backend/internal/domain/shared"
	"github.com/villaledger/backend/internal/domain/society"
)

func fixedMarch2025() shared.Clock {
	return shared.FixedClock{Instant: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)}
}

func newReconciliationFixture(clock shared.Clock) (*ReconciliationService, *MockPaymentRepository, *MockPaymentCategoryRepository, *MockVillaRepository) {
	paymentRepo := new(MockPaymentRepository)
	categoryRepo := new(MockPaymentCategoryRepository)
	villaRepo := new(MockVillaRepository)
	svc := NewReconciliationService(paymentRepo, categoryRepo, villaRepo, clock, DefaultReconciliationConfig())
	return svc, paymentRepo, categoryRepo, villaRepo
}

func paymentRow(villaID, categoryID uuid.UUID, receivable, received int64, month, year int) society.Payment {
	p, err := society.NewPayment(
		villaID,
		categoryID,
		decimal.NewFromInt(receivable),
		decimal.NewFromInt(received),
		time.Date(year, time.Month(month), 5, 0, 0, 0, 0, time.UTC),
		month,
		year,
		society.PaymentMethodCash,
		"",
	)
	if err != nil {
		panic(err)
	}
	return *p
}

func TestStandardMaintenanceAmount_ModeOfReceivables(t *testing.T) {
	svc, paymentRepo, _, _ := newReconciliationFixture(fixedMarch2025())
	villaID := uuid.New()
	categoryID := uuid.New()

	// 1000 appears twice, 1500 once: the mode wins over the average.
	rows := []society.Payment{
		paymentRow(villaID, categoryID, 1000, 1000, 3, 2025),
		paymentRow(villaID, categoryID, 1000, 500, 3, 2025),
		paymentRow(villaID, categoryID, 1500, 1500, 3, 2025),
	}
	paymentRepo.On("FindByPeriod", mock.Anything, 3, 2025).Return(rows, nil)

	amount, err := svc.StandardMaintenanceAmount(context.Background(), 3, 2025)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(1000)), "expected 1000, got %s", amount)
}

func TestStandardMaintenanceAmount_TieKeepsFirstEncountered(t *testing.T) {
	svc, paymentRepo, _, _ := newReconciliationFixture(fixedMarch2025())
	villaID := uuid.New()
	categoryID := uuid.New()

	rows := []society.Payment{
		paymentRow(villaID, categoryID, 1200, 0, 3, 2025),
		paymentRow(villaID, categoryID, 1500, 0, 3, 2025),
	}
	paymentRepo.On("FindByPeriod", mock.Anything, 3, 2025).Return(rows, nil)

	amount, err := svc.StandardMaintenanceAmount(context.Background(), 3, 2025)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(1200)))
}

func TestStandardMaintenanceAmount_FallsBackToPreviousPeriod(t *testing.T) {
	svc, paymentRepo, _, _ := newReconciliationFixture(fixedMarch2025())
	villaID := uuid.New()
	categoryID := uuid.New()

	paymentRepo.On("FindByPeriod", mock.Anything, 3, 2025).Return([]society.Payment{}, nil)
	paymentRepo.On("FindByPeriod", mock.Anything, 2, 2025).Return([]society.Payment{
		paymentRow(villaID, categoryID, 1100, 1100, 2, 2025),
	}, nil)

	amount, err := svc.StandardMaintenanceAmount(context.Background(), 3, 2025)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(1100)))
}

func TestStandardMaintenanceAmount_DefaultWhenNoHistory(t *testing.T) {
	svc, paymentRepo, _, _ := newReconciliationFixture(fixedMarch2025())

	paymentRepo.On("FindByPeriod", mock.Anything, 1, 2025).Return([]society.Payment{}, nil)
	paymentRepo.On("FindByPeriod", mock.Anything, 12, 2024).Return([]society.Payment{}, nil)

	amount, err := svc.StandardMaintenanceAmount(context.Background(), 1, 2025)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(1000)), "expected the configured default")
}

func TestStandardMaintenanceAmount_JanuaryFallsBackToPriorDecember(t *testing.T) {
	svc, paymentRepo, _, _ := newReconciliationFixture(fixedMarch2025())
	villaID := uuid.New()
	categoryID := uuid.New()

	paymentRepo.On("FindByPeriod", mock.Anything, 1, 2025).Return([]society.Payment{}, nil)
	paymentRepo.On("FindByPeriod", mock.Anything, 12, 2024).Return([]society.Payment{
		paymentRow(villaID, categoryID, 1300, 1300, 12, 2024),
	}, nil)

	amount, err := svc.StandardMaintenanceAmount(context.Background(), 1, 2025)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(1300)))
}

func TestStandardMaintenanceAmount_InvalidPeriod(t *testing.T) {
	svc, _, _, _ := newReconciliationFixture(fixedMarch2025())

	_, err := svc.StandardMaintenanceAmount(context.Background(), 13, 2025)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func recurringCategory(name string) society.PaymentCategory {
	c, err := society.NewPaymentCategory(name, "", true)
	if err != nil {
		panic(err)
	}
	return *c
}

func oneTimeCategory(name string) society.PaymentCategory {
	c, err := society.NewPaymentCategory(name, "", false)
	if err != nil {
		panic(err)
	}
	return *c
}

func TestPendingMaintenancePayments_MissingAndPartialPeriods(t *testing.T) {
	svc, paymentRepo, categoryRepo, villaRepo := newReconciliationFixture(fixedMarch2025())
	maintenance := recurringCategory("Maintenance")
	villa, err := society.NewVilla("V-101", nil, nil)
	require.NoError(t, err)

	// January paid in full, February partially paid, March absent.
	payments := []society.Payment{
		paymentRow(villa.ID, maintenance.ID, 1000, 1000, 1, 2025),
		paymentRow(villa.ID, maintenance.ID, 1000, 400, 2, 2025),
	}

	villaRepo.On("FindByID", mock.Anything, villa.ID).Return(villa, nil)
	paymentRepo.On("FindByVilla", mock.Anything, villa.ID, society.PaymentFilter{}).Return(payments, nil)
	categoryRepo.On("FindAll", mock.Anything, society.CategoryFilter{ActiveOnly: true}).
		Return([]society.PaymentCategory{maintenance}, nil)
	paymentRepo.On("FindByPeriod", mock.Anything, 3, 2025).Return(payments[:1], nil)

	result, err := svc.PendingMaintenancePayments(context.Background(), villa.ID)
	require.NoError(t, err)
	require.Len(t, result, 2)

	feb := result[0]
	assert.Equal(t, 2, feb.Month)
	assert.Equal(t, 2025, feb.Year)
	assert.Equal(t, "February", feb.MonthName)
	assert.True(t, feb.PendingAmount.Equal(decimal.NewFromInt(600)))
	require.Len(t, feb.Categories, 1)
	assert.Equal(t, society.PaymentStatusPartial, feb.Categories[0].Status)

	mar := result[1]
	assert.Equal(t, 3, mar.Month)
	assert.True(t, mar.PendingAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, society.PaymentStatusUnpaid, mar.Status)
}

func TestPendingMaintenancePayments_RepeatReadsMatch(t *testing.T) {
	svc, paymentRepo, categoryRepo, villaRepo := newReconciliationFixture(fixedMarch2025())
	maintenance := recurringCategory("Maintenance")
	villa, err := society.NewVilla("V-101", nil, nil)
	require.NoError(t, err)

	payments := []society.Payment{
		paymentRow(villa.ID, maintenance.ID, 1000, 1000, 1, 2025),
		paymentRow(villa.ID, maintenance.ID, 1000, 400, 2, 2025),
	}

	villaRepo.On("FindByID", mock.Anything, villa.ID).Return(villa, nil)
	paymentRepo.On("FindByVilla", mock.Anything, villa.ID, society.PaymentFilter{}).Return(payments, nil)
	categoryRepo.On("FindAll", mock.Anything, society.CategoryFilter{ActiveOnly: true}).
		Return([]society.PaymentCategory{maintenance}, nil)
	paymentRepo.On("FindByPeriod", mock.Anything, 3, 2025).Return(payments[:1], nil)

	// Reporting is read-only: with no intervening writes two runs must
	// agree period for period.
	first, err := svc.PendingMaintenancePayments(context.Background(), villa.ID)
	require.NoError(t, err)
	second, err := svc.PendingMaintenancePayments(context.Background(), villa.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPendingMaintenancePayments_NoHistoryStartsAtJanuary(t *testing.T) {
	svc, paymentRepo, categoryRepo, villaRepo := newReconciliationFixture(fixedMarch2025())
	maintenance := recurringCategory("Maintenance")
	villa, err := society.NewVilla("V-102", nil, nil)
	require.NoError(t, err)

	villaRepo.On("FindByID", mock.Anything, villa.ID).Return(villa, nil)
	paymentRepo.On("FindByVilla", mock.Anything, villa.ID, society.PaymentFilter{}).
		Return([]society.Payment{}, nil)
	categoryRepo.On("FindAll", mock.Anything, society.CategoryFilter{ActiveOnly: true}).
		Return([]society.PaymentCategory{maintenance}, nil)
	paymentRepo.On("FindByPeriod", mock.Anything, 3, 2025).Return([]society.Payment{}, nil)
	paymentRepo.On("FindByPeriod", mock.Anything, 2, 2025).Return([]society.Payment{}, nil)

	result, err := svc.PendingMaintenancePayments(context.Background(), villa.ID)
	require.NoError(t, err)

	// January through March of the current year, all unpaid at the
	// default standard amount.
	require.Len(t, result, 3)
	for i, period := range result {
		assert.Equal(t, i+1, period.Month)
		assert.Equal(t, 2025, period.Year)
		assert.True(t, period.PendingAmount.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, society.PaymentStatusUnpaid, period.Status)
	}
}

func TestPendingMaintenancePayments_OneTimeChargeEmitsMonthZero(t *testing.T) {
	svc, paymentRepo, categoryRepo, villaRepo := newReconciliationFixture(fixedMarch2025())
	corpus := oneTimeCategory("Corpus Fund")
	villa, err := society.NewVilla("V-103", nil, nil)
	require.NoError(t, err)

	payments := []society.Payment{
		paymentRow(villa.ID, corpus.ID, 5000, 2000, 1, 2025),
	}

	villaRepo.On("FindByID", mock.Anything, villa.ID).Return(villa, nil)
	paymentRepo.On("FindByVilla", mock.Anything, villa.ID, society.PaymentFilter{}).Return(payments, nil)
	categoryRepo.On("FindAll", mock.Anything, society.CategoryFilter{ActiveOnly: true}).
		Return([]society.PaymentCategory{corpus}, nil)
	paymentRepo.On("FindByPeriod", mock.Anything, 3, 2025).Return(payments, nil)

	result, err := svc.PendingMaintenancePayments(context.Background(), villa.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)

	entry := result[0]
	assert.Equal(t, 0, entry.Month, "one-time charges use the month 0 pseudo-period")
	assert.Equal(t, "Corpus Fund", entry.MonthName)
	assert.True(t, entry.PendingAmount.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, society.PaymentStatusPartial, entry.Status)
}

func TestPendingMaintenancePayments_SettledOneTimeChargeDisappears(t *testing.T) {
	svc, paymentRepo, categoryRepo, villaRepo := newReconciliationFixture(fixedMarch2025())
	corpus := oneTimeCategory("Corpus Fund")
	villa, err := society.NewVilla("V-104", nil, nil)
	require.NoError(t, err)

	payments := []society.Payment{
		paymentRow(villa.ID, corpus.ID, 5000, 5000, 1, 2025),
	}

	villaRepo.On("FindByID", mock.Anything, villa.ID).Return(villa, nil)
	paymentRepo.On("FindByVilla", mock.Anything, villa.ID, society.PaymentFilter{}).Return(payments, nil)
	categoryRepo.On("FindAll", mock.Anything, society.CategoryFilter{ActiveOnly: true}).
		Return([]society.PaymentCategory{corpus}, nil)
	paymentRepo.On("FindByPeriod", mock.Anything, 3, 2025).Return(payments, nil)

	result, err := svc.PendingMaintenancePayments(context.Background(), villa.ID)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestPendingMaintenancePayments_VillaOverrideBeatsGlobalStandard(t *testing.T) {
	svc, paymentRepo, categoryRepo, villaRepo := newReconciliationFixture(fixedMarch2025())
	maintenance := recurringCategory("Maintenance")
	villa, err := society.NewVilla("V-105", nil, nil)
	require.NoError(t, err)

	// The villa pays a negotiated 1500 while the society mode is 1000.
	payments := []society.Payment{
		paymentRow(villa.ID, maintenance.ID, 1500, 1500, 1, 2025),
		paymentRow(villa.ID, maintenance.ID, 1500, 1500, 2, 2025),
	}
	otherVilla := uuid.New()
	globalRows := []society.Payment{
		paymentRow(otherVilla, maintenance.ID, 1000, 1000, 3, 2025),
		paymentRow(otherVilla, maintenance.ID, 1000, 1000, 3, 2025),
	}

	villaRepo.On("FindByID", mock.Anything, villa.ID).Return(villa, nil)
	paymentRepo.On("FindByVilla", mock.Anything, villa.ID, society.PaymentFilter{}).Return(payments, nil)
	categoryRepo.On("FindAll", mock.Anything, society.CategoryFilter{ActiveOnly: true}).
		Return([]society.PaymentCategory{maintenance}, nil)
	paymentRepo.On("FindByPeriod", mock.Anything, 3, 2025).Return(globalRows, nil)

	result, err := svc.PendingMaintenancePayments(context.Background(), villa.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 3, result[0].Month)
	assert.True(t, result[0].PendingAmount.Equal(decimal.NewFromInt(1500)),
		"missing March should be billed at the villa's own rate")
}

func TestPendingMaintenancePayments_AbortsBeyondMaxPeriods(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	categoryRepo := new(MockPaymentCategoryRepository)
	villaRepo := new(MockVillaRepository)
	cfg := DefaultReconciliationConfig()
	cfg.MaxPeriods = 12
	svc := NewReconciliationService(paymentRepo, categoryRepo, villaRepo, fixedMarch2025(), cfg)

	maintenance := recurringCategory("Maintenance")
	villa, err := society.NewVilla("V-106", nil, nil)
	require.NoError(t, err)

	// A row from 2020 would make the walk span five years.
	payments := []society.Payment{
		paymentRow(villa.ID, maintenance.ID, 1000, 1000, 1, 2020),
	}

	villaRepo.On("FindByID", mock.Anything, villa.ID).Return(villa, nil)
	paymentRepo.On("FindByVilla", mock.Anything, villa.ID, society.PaymentFilter{}).Return(payments, nil)
	categoryRepo.On("FindAll", mock.Anything, society.CategoryFilter{ActiveOnly: true}).
		Return([]society.PaymentCategory{maintenance}, nil)
	paymentRepo.On("FindByPeriod", mock.Anything, 3, 2025).Return(payments, nil)

	_, err = svc.PendingMaintenancePayments(context.Background(), villa.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PERIOD_RANGE_TOO_LARGE", domainErr.Code)
}

func TestCrossMonthPayments_FlagsEarlierPeriods(t *testing.T) {
	svc, paymentRepo, categoryRepo, villaRepo := newReconciliationFixture(fixedMarch2025())
	maintenance := recurringCategory("Maintenance")
	villa, err := society.NewVilla("V-107", nil, nil)
	require.NoError(t, err)

	// Both physically received in March 2025: one clears February dues
	// (cross-month), one clears March dues (not).
	febDues := paymentRow(villa.ID, maintenance.ID, 1000, 1000, 2, 2025)
	febDues.PaymentDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	marDues := paymentRow(villa.ID, maintenance.ID, 1000, 1000, 3, 2025)
	marDues.PaymentDate = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	window := society.Period{Month: 3, Year: 2025}
	paymentRepo.On("FindByDateRange", mock.Anything, window.Start(), window.End()).
		Return([]society.Payment{febDues, marDues}, nil)
	villaRepo.On("FindAll", mock.Anything, society.VillaFilter{}).Return([]society.Villa{*villa}, nil)
	categoryRepo.On("FindAll", mock.Anything, society.CategoryFilter{}).
		Return([]society.PaymentCategory{maintenance}, nil)

	result, err := svc.CrossMonthPayments(context.Background(), 3, 2025)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, febDues.ID, result[0].PaymentID)
	assert.Equal(t, "V-107", result[0].VillaNumber)
	assert.Equal(t, 2, result[0].DesignatedMonth)
	assert.Equal(t, "February", result[0].DesignatedName)
}

func TestCrossMonthPayments_PriorYearLaterMonthIsIncluded(t *testing.T) {
	// A payment received in March 2025 designated for December 2024 has a
	// designated month greater than the report month but a different
	// year, so the exclusion does not catch it. This pins the exclusion
	// as written; a strict period comparison would behave the same here
	// but differently for same-year future months.
	svc, paymentRepo, categoryRepo, villaRepo := newReconciliationFixture(fixedMarch2025())
	maintenance := recurringCategory("Maintenance")
	villa, err := society.NewVilla("V-108", nil, nil)
	require.NoError(t, err)

	decDues := paymentRow(villa.ID, maintenance.ID, 1000, 1000, 12, 2024)
	decDues.PaymentDate = time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	aprDues := paymentRow(villa.ID, maintenance.ID, 1000, 1000, 4, 2025)
	aprDues.PaymentDate = time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	window := society.Period{Month: 3, Year: 2025}
	paymentRepo.On("FindByDateRange", mock.Anything, window.Start(), window.End()).
		Return([]society.Payment{decDues, aprDues}, nil)
	villaRepo.On("FindAll", mock.Anything, society.VillaFilter{}).Return([]society.Villa{*villa}, nil)
	categoryRepo.On("FindAll", mock.Anything, society.CategoryFilter{}).
		Return([]society.PaymentCategory{maintenance}, nil)

	result, err := svc.CrossMonthPayments(context.Background(), 3, 2025)
	require.NoError(t, err)

	// December 2024 is included; the April 2025 advance is excluded even
	// though it is just as much a cross-month receipt.
	require.Len(t, result, 1)
	assert.Equal(t, 12, result[0].DesignatedMonth)
	assert.Equal(t, 2024, result[0].DesignatedYear)
}

func TestCrossMonthPayments_SkipsZeroReceipts(t *testing.T) {
	svc, paymentRepo, categoryRepo, villaRepo := newReconciliationFixture(fixedMarch2025())
	maintenance := recurringCategory("Maintenance")
	villa, err := society.NewVilla("V-109", nil, nil)
	require.NoError(t, err)

	unpaid := paymentRow(villa.ID, maintenance.ID, 1000, 0, 2, 2025)
	unpaid.PaymentDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	window := society.Period{Month: 3, Year: 2025}
	paymentRepo.On("FindByDateRange", mock.Anything, window.Start(), window.End()).
		Return([]society.Payment{unpaid}, nil)
	villaRepo.On("FindAll", mock.Anything, society.VillaFilter{}).Return([]society.Villa{*villa}, nil)
	categoryRepo.On("FindAll", mock.Anything, society.CategoryFilter{}).
		Return([]society.PaymentCategory{maintenance}, nil)

	result, err := svc.CrossMonthPayments(context.Background(), 3, 2025)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestAllWithVillaStructure_GroupsPerCategory(t *testing.T) {
	svc, paymentRepo, categoryRepo, villaRepo := newReconciliationFixture(fixedMarch2025())
	maintenance := recurringCategory("Maintenance")
	corpus := oneTimeCategory("Corpus Fund")
	villa, err := society.NewVilla("V-110", nil, nil)
	require.NoError(t, err)

	// Ledger order is (year desc, month desc).
	payments := []society.Payment{
		paymentRow(villa.ID, maintenance.ID, 1000, 400, 2, 2025),
		paymentRow(villa.ID, maintenance.ID, 1000, 1000, 1, 2025),
		paymentRow(villa.ID, corpus.ID, 5000, 5000, 1, 2025),
	}

	villaRepo.On("FindAll", mock.Anything, society.VillaFilter{}).Return([]society.Villa{*villa}, nil)
	paymentRepo.On("FindAll", mock.Anything).Return(payments, nil)
	categoryRepo.On("FindAll", mock.Anything, society.CategoryFilter{}).
		Return([]society.PaymentCategory{maintenance, corpus}, nil)

	result, err := svc.AllWithVillaStructure(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Len(t, result[0].Categories, 2)

	m := result[0].Categories[0]
	assert.Equal(t, "Maintenance", m.CategoryName)
	assert.True(t, m.TotalReceivable.Equal(decimal.NewFromInt(2000)))
	assert.True(t, m.TotalReceived.Equal(decimal.NewFromInt(1400)))
	assert.True(t, m.TotalPending.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, society.PaymentStatusPartial, m.Status)
	require.NotNil(t, m.LatestPayment)
	assert.Equal(t, 2, m.LatestPayment.PaymentMonth, "first row seen is the latest period")
	assert.Len(t, m.AllPayments, 2)

	c := result[0].Categories[1]
	assert.Equal(t, "Corpus Fund", c.CategoryName)
	assert.Equal(t, society.PaymentStatusPaid, c.Status)
	assert.True(t, c.TotalPending.IsZero())
}

func TestAllWithVillaStructure_VillaWithoutPayments(t *testing.T) {
	svc, paymentRepo, categoryRepo, villaRepo := newReconciliationFixture(fixedMarch2025())
	villa, err := society.NewVilla("V-111", nil, nil)
	require.NoError(t, err)

	villaRepo.On("FindAll", mock.Anything, society.VillaFilter{}).Return([]society.Villa{*villa}, nil)
	paymentRepo.On("FindAll", mock.Anything).Return([]society.Payment{}, nil)
	categoryRepo.On("FindAll", mock.Anything, society.CategoryFilter{}).
		Return([]society.PaymentCategory{}, nil)

	result, err := svc.AllWithVillaStructure(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Empty(t, result[0].Categories)
}
