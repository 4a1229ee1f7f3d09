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

// PaymentService manages the payment ledger. Recording a payment for a
// (villa, category, month, year) tuple that already has a row merges
// into it instead of inserting a duplicate.
type PaymentService struct {
	paymentRepo  society.PaymentRepository
	villaRepo    society.VillaRepository
	categoryRepo society.PaymentCategoryRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo society.PaymentRepository,
	villaRepo society.VillaRepository,
	categoryRepo society.PaymentCategoryRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		villaRepo:    villaRepo,
		categoryRepo: categoryRepo,
	}
}

// RecordPaymentRequest captures one payment submission
type RecordPaymentRequest struct {
	VillaID          uuid.UUID       `json:"villa_id" binding:"required"`
	CategoryID       uuid.UUID       `json:"category_id" binding:"required"`
	ReceivableAmount decimal.Decimal `json:"receivable_amount"`
	ReceivedAmount   decimal.Decimal `json:"received_amount"`
	PaymentDate      time.Time       `json:"payment_date" binding:"required"`
	PaymentMonth     int             `json:"payment_month" binding:"required,min=1,max=12"`
	PaymentYear      int             `json:"payment_year" binding:"required,min=2000"`
	PaymentMethod    string          `json:"payment_method"`
	Notes            string          `json:"notes"`
}

// UpdatePaymentRequest carries a partial payment correction. Nil fields
// are left unchanged; unlike Record, Update overwrites rather than
// accumulates.
type UpdatePaymentRequest struct {
	ReceivableAmount *decimal.Decimal `json:"receivable_amount"`
	ReceivedAmount   *decimal.Decimal `json:"received_amount"`
	PaymentDate      *time.Time       `json:"payment_date"`
	PaymentMethod    *string          `json:"payment_method"`
	Notes            *string          `json:"notes"`
}

// PaymentView is the read model for one ledger row
type PaymentView struct {
	ID               uuid.UUID             `json:"id"`
	VillaID          uuid.UUID             `json:"villa_id"`
	CategoryID       uuid.UUID             `json:"category_id"`
	ReceivableAmount decimal.Decimal       `json:"receivable_amount"`
	ReceivedAmount   decimal.Decimal       `json:"received_amount"`
	PendingAmount    decimal.Decimal       `json:"pending_amount"`
	Status           society.PaymentStatus `json:"status"`
	PaymentDate      time.Time             `json:"payment_date"`
	PaymentMonth     int                   `json:"payment_month"`
	PaymentYear      int                   `json:"payment_year"`
	PaymentMethod    society.PaymentMethod `json:"payment_method"`
	Notes            string                `json:"notes"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

func newPaymentView(p society.Payment) PaymentView {
	return PaymentView{
		ID:               p.ID,
		VillaID:          p.VillaID,
		CategoryID:       p.CategoryID,
		ReceivableAmount: p.ReceivableAmount,
		ReceivedAmount:   p.ReceivedAmount,
		PendingAmount:    p.PendingAmount(),
		Status:           p.Status(),
		PaymentDate:      p.PaymentDate,
		PaymentMonth:     p.PaymentMonth,
		PaymentYear:      p.PaymentYear,
		PaymentMethod:    p.PaymentMethod,
		Notes:            p.Notes,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// RecordResult reports the outcome of a Record call
type RecordResult struct {
	Payment PaymentView `json:"payment"`
	Merged  bool        `json:"merged"`
}

// Record writes a payment into the ledger. When a row already exists
// for the same villa, category and designated period, the received
// amount accumulates, the payment date and method are replaced, notes
// are appended and the existing receivable stays authoritative.
func (s *PaymentService) Record(ctx context.Context, req RecordPaymentRequest) (*RecordResult, error) {
	if _, err := s.villaRepo.FindByID(ctx, req.VillaID); err != nil {
		return nil, fmt.Errorf("failed to load villa: %w", err)
	}
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	payment, err := society.NewPayment(
		req.VillaID,
		req.CategoryID,
		req.ReceivableAmount,
		req.ReceivedAmount,
		req.PaymentDate,
		req.PaymentMonth,
		req.PaymentYear,
		society.PaymentMethod(req.PaymentMethod),
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	stored, merged, err := s.paymentRepo.CreateOrMerge(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}
	return &RecordResult{Payment: newPaymentView(*stored), Merged: merged}, nil
}

// Update corrects a single ledger row in place. Fields left nil are
// untouched; a non-nil received amount replaces the stored value.
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*PaymentView, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}

	if req.ReceivableAmount != nil {
		if req.ReceivableAmount.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Receivable amount cannot be negative")
		}
		payment.ReceivableAmount = *req.ReceivableAmount
	}
	if req.ReceivedAmount != nil {
		if req.ReceivedAmount.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Received amount cannot be negative")
		}
		payment.ReceivedAmount = *req.ReceivedAmount
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	}
	if req.PaymentMethod != nil {
		method := society.PaymentMethod(*req.PaymentMethod)
		if method != "" && !method.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment method")
		}
		payment.PaymentMethod = method
	}
	if req.Notes != nil {
		payment.Notes = *req.Notes
	}
	payment.UpdatedAt = time.Now()

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}
	view := newPaymentView(*payment)
	return &view, nil
}

// Delete removes a ledger row permanently
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.paymentRepo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("failed to load payment: %w", err)
	}
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}

// GetByID loads one ledger row
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentView, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	view := newPaymentView(*payment)
	return &view, nil
}

// GetByVilla lists a villa's ledger rows, newest period first
func (s *PaymentService) GetByVilla(ctx context.Context, villaID uuid.UUID, filter society.PaymentFilter) ([]PaymentView, error) {
	if _, err := s.villaRepo.FindByID(ctx, villaID); err != nil {
		return nil, fmt.Errorf("failed to load villa: %w", err)
	}
	payments, err := s.paymentRepo.FindByVilla(ctx, villaID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	views := make([]PaymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, newPaymentView(p))
	}
	return views, nil
}
