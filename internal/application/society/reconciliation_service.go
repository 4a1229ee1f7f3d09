package society

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/villaledger/backend/internal/domain/shared"
	"github.com/villaledger/backend/internal/domain/society"
)

// ReconciliationConfig tunes the pending-payment computation
type ReconciliationConfig struct {
	// DefaultStandardAmount is the fallback expected fee when no payment
	// history exists anywhere for the queried and previous period.
	DefaultStandardAmount decimal.Decimal
	// MaxPeriods bounds the recurring-dues iteration. A villa whose
	// history start would produce more periods than this aborts the
	// computation instead of returning silently incomplete figures.
	MaxPeriods int
}

// DefaultReconciliationConfig returns the standard configuration
func DefaultReconciliationConfig() ReconciliationConfig {
	return ReconciliationConfig{
		DefaultStandardAmount: decimal.NewFromInt(1000),
		MaxPeriods:            600,
	}
}

// ReconciliationService computes what is owed, received and pending per
// villa and period from the payment ledger and the category registry.
// Every method is a deterministic read-only function of stored state.
type ReconciliationService struct {
	paymentRepo  society.PaymentRepository
	categoryRepo society.PaymentCategoryRepository
	villaRepo    society.VillaRepository
	clock        shared.Clock
	cfg          ReconciliationConfig
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	paymentRepo society.PaymentRepository,
	categoryRepo society.PaymentCategoryRepository,
	villaRepo society.VillaRepository,
	clock shared.Clock,
	cfg ReconciliationConfig,
) *ReconciliationService {
	if cfg.MaxPeriods <= 0 {
		cfg.MaxPeriods = DefaultReconciliationConfig().MaxPeriods
	}
	if cfg.DefaultStandardAmount.IsZero() {
		cfg.DefaultStandardAmount = DefaultReconciliationConfig().DefaultStandardAmount
	}
	return &ReconciliationService{
		paymentRepo:  paymentRepo,
		categoryRepo: categoryRepo,
		villaRepo:    villaRepo,
		clock:        clock,
		cfg:          cfg,
	}
}

// CategoryPending is one category's share of a pending period
type CategoryPending struct {
	CategoryID       uuid.UUID             `json:"category_id"`
	CategoryName     string                `json:"category_name"`
	ReceivableAmount decimal.Decimal       `json:"receivable_amount"`
	ReceivedAmount   decimal.Decimal       `json:"received_amount"`
	PendingAmount    decimal.Decimal       `json:"pending_amount"`
	Status           society.PaymentStatus `json:"status"`
}

// PendingPeriod is one period with outstanding dues for a villa.
// One-time charges are emitted as a pseudo-period with Month 0 and the
// category name in place of the month name.
type PendingPeriod struct {
	Month         int                   `json:"month"`
	Year          int                   `json:"year"`
	MonthName     string                `json:"month_name"`
	PendingAmount decimal.Decimal       `json:"pending_amount"`
	Categories    []CategoryPending     `json:"categories"`
	Status        society.PaymentStatus `json:"status"`
}

// StandardMaintenanceAmount infers the society-wide typical receivable
// for a period: the most frequent receivable amount among that period's
// payment rows, falling back to the previous period and finally to the
// configured default. The mode is used instead of an average because
// receivables cluster around one standard fee with occasional outliers.
func (s *ReconciliationService) StandardMaintenanceAmount(ctx context.Context, month, year int) (decimal.Decimal, error) {
	period := society.Period{Month: month, Year: year}
	if !period.IsValid() {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Invalid month or year")
	}

	rows, err := s.paymentRepo.FindByPeriod(ctx, period.Month, period.Year)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load payments for period: %w", err)
	}
	if len(rows) == 0 {
		prev := period.Previous()
		rows, err = s.paymentRepo.FindByPeriod(ctx, prev.Month, prev.Year)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to load payments for previous period: %w", err)
		}
	}
	if len(rows) == 0 {
		return s.cfg.DefaultStandardAmount, nil
	}

	// Mode with first-encountered-wins tie breaking: a later amount only
	// takes over when its count strictly exceeds the current best.
	counts := make(map[string]int, len(rows))
	best := rows[0].ReceivableAmount
	bestCount := 0
	for _, row := range rows {
		key := row.ReceivableAmount.String()
		counts[key]++
		if counts[key] > bestCount {
			bestCount = counts[key]
			best = row.ReceivableAmount
		}
	}
	return best, nil
}

// PendingMaintenancePayments computes the full outstanding-dues report
// for one villa, covering every period from the villa's payment history
// start through the current period for recurring categories, plus
// cumulative one-time charge entries for non-recurring categories.
func (s *ReconciliationService) PendingMaintenancePayments(ctx context.Context, villaID uuid.UUID) ([]PendingPeriod, error) {
	if _, err := s.villaRepo.FindByID(ctx, villaID); err != nil {
		return nil, fmt.Errorf("failed to load villa: %w", err)
	}

	now := society.PeriodOf(s.clock.Now())

	payments, err := s.paymentRepo.FindByVilla(ctx, villaID, society.PaymentFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load villa payments: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx, society.CategoryFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	var recurring, oneTime []society.PaymentCategory
	for _, c := range categories {
		if c.IsRecurring {
			recurring = append(recurring, c)
		} else {
			oneTime = append(oneTime, c)
		}
	}

	start := s.historyStart(payments, now)

	// Collapse the villa's rows into per-(period, category) aggregates.
	// The create path keeps one row per tuple, so this is defensive
	// against that invariant having been violated underneath us.
	type aggregate struct {
		receivable decimal.Decimal
		received   decimal.Decimal
		rows       int
	}
	byPeriodCategory := make(map[string]*aggregate, len(payments))
	keyOf := func(year, month int, categoryID uuid.UUID) string {
		return fmt.Sprintf("%d-%d-%s", year, month, categoryID)
	}
	for _, p := range payments {
		key := keyOf(p.PaymentYear, p.PaymentMonth, p.CategoryID)
		agg, ok := byPeriodCategory[key]
		if !ok {
			agg = &aggregate{receivable: decimal.Zero, received: decimal.Zero}
			byPeriodCategory[key] = agg
		}
		agg.receivable = agg.receivable.Add(p.ReceivableAmount)
		agg.received = agg.received.Add(p.ReceivedAmount)
		agg.rows++
	}

	standardByCategory, err := s.standardAmounts(ctx, categories, payments, now)
	if err != nil {
		return nil, err
	}

	var result []PendingPeriod

	// Recurring categories: walk every period from history start to now.
	if len(recurring) > 0 {
		periods := 0
		for p := start; !p.After(now); p = p.Next() {
			periods++
			if periods > s.cfg.MaxPeriods {
				return nil, shared.NewDomainError("PERIOD_RANGE_TOO_LARGE",
					fmt.Sprintf("Pending computation spans more than %d periods", s.cfg.MaxPeriods))
			}

			var entries []CategoryPending
			for _, cat := range recurring {
				std := standardByCategory[cat.ID]
				agg := byPeriodCategory[keyOf(p.Year, p.Month, cat.ID)]
				var entry CategoryPending
				if agg == nil {
					// No record at all: the whole standard amount is due.
					entry = CategoryPending{
						CategoryID:       cat.ID,
						CategoryName:     cat.Name,
						ReceivableAmount: std,
						ReceivedAmount:   decimal.Zero,
						PendingAmount:    std,
						Status:           society.PaymentStatusUnpaid,
					}
				} else {
					pending := agg.receivable.Sub(agg.received)
					if pending.LessThanOrEqual(decimal.Zero) {
						continue
					}
					entry = CategoryPending{
						CategoryID:       cat.ID,
						CategoryName:     cat.Name,
						ReceivableAmount: agg.receivable,
						ReceivedAmount:   agg.received,
						PendingAmount:    pending,
						Status:           society.ClassifyPayment(agg.receivable, agg.received),
					}
				}
				if entry.PendingAmount.GreaterThan(decimal.Zero) {
					entries = append(entries, entry)
				}
			}
			if len(entries) == 0 {
				continue
			}
			result = append(result, PendingPeriod{
				Month:         p.Month,
				Year:          p.Year,
				MonthName:     p.MonthName(),
				PendingAmount: sumPending(entries),
				Categories:    entries,
				Status:        overallStatus(entries),
			})
		}
	}

	// One-time categories: evaluated cumulatively, not per period.
	for _, cat := range oneTime {
		totalReceivable := decimal.Zero
		totalReceived := decimal.Zero
		rows := 0
		for _, p := range payments {
			if p.CategoryID != cat.ID {
				continue
			}
			totalReceivable = totalReceivable.Add(p.ReceivableAmount)
			totalReceived = totalReceived.Add(p.ReceivedAmount)
			rows++
		}

		var entry CategoryPending
		switch {
		case rows == 0:
			std := standardByCategory[cat.ID]
			entry = CategoryPending{
				CategoryID:       cat.ID,
				CategoryName:     cat.Name,
				ReceivableAmount: std,
				ReceivedAmount:   decimal.Zero,
				PendingAmount:    std,
				Status:           society.PaymentStatusUnpaid,
			}
		case totalReceived.LessThan(totalReceivable):
			entry = CategoryPending{
				CategoryID:       cat.ID,
				CategoryName:     cat.Name,
				ReceivableAmount: totalReceivable,
				ReceivedAmount:   totalReceived,
				PendingAmount:    totalReceivable.Sub(totalReceived),
				Status:           society.ClassifyPayment(totalReceivable, totalReceived),
			}
		default:
			// Fully paid one-time charge: nothing to report.
			continue
		}

		result = append(result, PendingPeriod{
			Month:         0,
			Year:          now.Year,
			MonthName:     cat.Name,
			PendingAmount: entry.PendingAmount,
			Categories:    []CategoryPending{entry},
			Status:        entry.Status,
		})
	}

	return result, nil
}

// historyStart resolves the earliest designated period in the villa's
// ledger, defaulting to January of the current year when the villa has
// no payments at all.
func (s *ReconciliationService) historyStart(payments []society.Payment, now society.Period) society.Period {
	if len(payments) == 0 {
		return society.Period{Month: 1, Year: now.Year}
	}
	start := payments[0].Period()
	for _, p := range payments[1:] {
		if p.Period().Before(start) {
			start = p.Period()
		}
	}
	return start
}

// standardAmounts resolves the expected fee per category: the global
// fallback for the current period, overridden by the villa's own
// last-seen positive receivable per category.
func (s *ReconciliationService) standardAmounts(
	ctx context.Context,
	categories []society.PaymentCategory,
	payments []society.Payment,
	now society.Period,
) (map[uuid.UUID]decimal.Decimal, error) {
	global, err := s.StandardMaintenanceAmount(ctx, now.Month, now.Year)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uuid.UUID]decimal.Decimal, len(categories))
	for _, c := range categories {
		byCategory[c.ID] = global
	}

	// Forward chronological scan so the most recent positive receivable
	// wins per category.
	ordered := make([]society.Payment, len(payments))
	copy(ordered, payments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Period().Before(ordered[j].Period())
	})
	for _, p := range ordered {
		if p.ReceivableAmount.GreaterThan(decimal.Zero) {
			if _, tracked := byCategory[p.CategoryID]; tracked {
				byCategory[p.CategoryID] = p.ReceivableAmount
			}
		}
	}
	return byCategory, nil
}

// CrossMonthRecord is a payment physically received inside a report
// month but designated for a different dues period.
type CrossMonthRecord struct {
	PaymentID       uuid.UUID             `json:"payment_id"`
	VillaID         uuid.UUID             `json:"villa_id"`
	VillaNumber     string                `json:"villa_number"`
	CategoryID      uuid.UUID             `json:"category_id"`
	CategoryName    string                `json:"category_name"`
	ReceivedAmount  decimal.Decimal       `json:"received_amount"`
	PaymentDate     time.Time             `json:"payment_date"`
	DesignatedMonth int                   `json:"designated_month"`
	DesignatedYear  int                   `json:"designated_year"`
	DesignatedName  string                `json:"designated_name"`
	PaymentMethod   society.PaymentMethod `json:"payment_method"`
}

// CrossMonthPayments finds money received during the report month's
// calendar window whose designated dues period differs, reconciling
// "cash received this month" against "dues this report covers".
//
// The exclusion keeps any row designated for the same-or-later month
// within the report year, not just the report month itself. That is
// broader than a strict period match and likely over-excludes, but it
// reproduces the established report figures; see the pinning test
// before changing it.
func (s *ReconciliationService) CrossMonthPayments(ctx context.Context, month, year int) ([]CrossMonthRecord, error) {
	period := society.Period{Month: month, Year: year}
	if !period.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid month or year")
	}

	rows, err := s.paymentRepo.FindByDateRange(ctx, period.Start(), period.End())
	if err != nil {
		return nil, fmt.Errorf("failed to load payments by date: %w", err)
	}

	villaNumbers, categoryNames, err := s.lookupNames(ctx)
	if err != nil {
		return nil, err
	}

	var result []CrossMonthRecord
	for _, p := range rows {
		if !p.ReceivedAmount.GreaterThan(decimal.Zero) {
			continue
		}
		if p.PaymentMonth >= month && p.PaymentYear == year {
			continue
		}
		result = append(result, CrossMonthRecord{
			PaymentID:       p.ID,
			VillaID:         p.VillaID,
			VillaNumber:     villaNumbers[p.VillaID],
			CategoryID:      p.CategoryID,
			CategoryName:    categoryNames[p.CategoryID],
			ReceivedAmount:  p.ReceivedAmount,
			PaymentDate:     p.PaymentDate,
			DesignatedMonth: p.PaymentMonth,
			DesignatedYear:  p.PaymentYear,
			DesignatedName:  p.Period().MonthName(),
			PaymentMethod:   p.PaymentMethod,
		})
	}
	return result, nil
}

// VillaCategoryProjection aggregates one villa's payments under one category
type VillaCategoryProjection struct {
	CategoryID      uuid.UUID             `json:"category_id"`
	CategoryName    string                `json:"category_name"`
	IsRecurring     bool                  `json:"is_recurring"`
	TotalReceivable decimal.Decimal       `json:"total_receivable"`
	TotalReceived   decimal.Decimal       `json:"total_received"`
	TotalPending    decimal.Decimal       `json:"total_pending"`
	Status          society.PaymentStatus `json:"status"`
	LatestPayment   *PaymentView          `json:"latest_payment,omitempty"`
	AllPayments     []PaymentView         `json:"all_payments"`
}

// VillaProjection is the denormalized per-villa view backing the
// dashboard payment table
type VillaProjection struct {
	VillaID       uuid.UUID                 `json:"villa_id"`
	VillaNumber   string                    `json:"villa_number"`
	ResidentName  *string                   `json:"resident_name"`
	OccupancyType *society.OccupancyType    `json:"occupancy_type"`
	Categories    []VillaCategoryProjection `json:"categories"`
}

// AllWithVillaStructure builds the dashboard projection: every villa
// with its payments grouped per category, aggregate totals, the latest
// payment snapshot and the full per-period list for drill-down.
func (s *ReconciliationService) AllWithVillaStructure(ctx context.Context) ([]VillaProjection, error) {
	villas, err := s.villaRepo.FindAll(ctx, society.VillaFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load villas: %w", err)
	}
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	categories, err := s.categoryRepo.FindAll(ctx, society.CategoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	categoryByID := make(map[uuid.UUID]society.PaymentCategory, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	// Rows arrive (year desc, month desc), so the first row seen per
	// villa and category is the latest payment.
	byVilla := make(map[uuid.UUID]map[uuid.UUID]*VillaCategoryProjection)
	categoryOrder := make(map[uuid.UUID][]uuid.UUID)
	for _, p := range payments {
		perCategory, ok := byVilla[p.VillaID]
		if !ok {
			perCategory = make(map[uuid.UUID]*VillaCategoryProjection)
			byVilla[p.VillaID] = perCategory
		}
		proj, ok := perCategory[p.CategoryID]
		if !ok {
			cat := categoryByID[p.CategoryID]
			view := newPaymentView(p)
			proj = &VillaCategoryProjection{
				CategoryID:      p.CategoryID,
				CategoryName:    cat.Name,
				IsRecurring:     cat.IsRecurring,
				TotalReceivable: decimal.Zero,
				TotalReceived:   decimal.Zero,
				LatestPayment:   &view,
			}
			perCategory[p.CategoryID] = proj
			categoryOrder[p.VillaID] = append(categoryOrder[p.VillaID], p.CategoryID)
		}
		proj.TotalReceivable = proj.TotalReceivable.Add(p.ReceivableAmount)
		proj.TotalReceived = proj.TotalReceived.Add(p.ReceivedAmount)
		proj.AllPayments = append(proj.AllPayments, newPaymentView(p))
	}

	result := make([]VillaProjection, 0, len(villas))
	for _, v := range villas {
		projection := VillaProjection{
			VillaID:       v.ID,
			VillaNumber:   v.VillaNumber,
			ResidentName:  v.ResidentName,
			OccupancyType: v.OccupancyType,
			Categories:    []VillaCategoryProjection{},
		}
		for _, categoryID := range categoryOrder[v.ID] {
			proj := byVilla[v.ID][categoryID]
			proj.TotalPending = proj.TotalReceivable.Sub(proj.TotalReceived)
			switch {
			case proj.TotalPending.LessThanOrEqual(decimal.Zero):
				proj.Status = society.PaymentStatusPaid
			case proj.TotalPending.LessThan(proj.TotalReceivable):
				proj.Status = society.PaymentStatusPartial
			default:
				proj.Status = society.PaymentStatusUnpaid
			}
			projection.Categories = append(projection.Categories, *proj)
		}
		result = append(result, projection)
	}
	return result, nil
}

// lookupNames loads villa number and category name lookup tables
func (s *ReconciliationService) lookupNames(ctx context.Context) (map[uuid.UUID]string, map[uuid.UUID]string, error) {
	villas, err := s.villaRepo.FindAll(ctx, society.VillaFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load villas: %w", err)
	}
	categories, err := s.categoryRepo.FindAll(ctx, society.CategoryFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load categories: %w", err)
	}
	villaNumbers := make(map[uuid.UUID]string, len(villas))
	for _, v := range villas {
		villaNumbers[v.ID] = v.VillaNumber
	}
	categoryNames := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}
	return villaNumbers, categoryNames, nil
}

func sumPending(entries []CategoryPending) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.PendingAmount)
	}
	return total
}

// overallStatus is unpaid only when every included category is unpaid
func overallStatus(entries []CategoryPending) society.PaymentStatus {
	for _, e := range entries {
		if e.Status != society.PaymentStatusUnpaid {
			return society.PaymentStatusPartial
		}
	}
	return society.PaymentStatusUnpaid
}
