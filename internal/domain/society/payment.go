package society

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/villaledger/backend/internal/domain/shared"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodOnline       PaymentMethod = "ONLINE"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer,
		PaymentMethodCheque, PaymentMethodOnline:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus classifies a payment row by how much of the
// receivable has been collected
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"    // received >= receivable
	PaymentStatusPartial PaymentStatus = "partial" // 0 < received < receivable
	PaymentStatusUnpaid  PaymentStatus = "unpaid"  // received = 0
)

// ClassifyPayment derives a payment status from a receivable/received pair.
// Exact equality counts as paid, not partial.
func ClassifyPayment(receivable, received decimal.Decimal) PaymentStatus {
	if received.GreaterThanOrEqual(receivable) {
		return PaymentStatusPaid
	}
	if received.GreaterThan(decimal.Zero) {
		return PaymentStatusPartial
	}
	return PaymentStatusUnpaid
}

// Payment records dues for one villa, category and period. At most one
// row exists per (villa, category, month, year); partial payments merge
// into the existing row rather than creating a second one.
type Payment struct {
	shared.BaseEntity
	VillaID          uuid.UUID
	CategoryID       uuid.UUID
	ReceivableAmount decimal.Decimal
	ReceivedAmount   decimal.Decimal
	PaymentDate      time.Time
	PaymentMonth     int // 1-12
	PaymentYear      int
	PaymentMethod    PaymentMethod
	Notes            string
}

// NewPayment creates a payment row with a generated ID
func NewPayment(
	villaID, categoryID uuid.UUID,
	receivable, received decimal.Decimal,
	paymentDate time.Time,
	month, year int,
	method PaymentMethod,
	notes string,
) (*Payment, error) {
	if villaID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Villa is required")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category is required")
	}
	if receivable.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Receivable amount cannot be negative")
	}
	if received.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Received amount cannot be negative")
	}
	if !(Period{Month: month, Year: year}).IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment month or year")
	}
	if method != "" && !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment method")
	}
	return &Payment{
		BaseEntity:       shared.NewBaseEntity(),
		VillaID:          villaID,
		CategoryID:       categoryID,
		ReceivableAmount: receivable,
		ReceivedAmount:   received,
		PaymentDate:      paymentDate,
		PaymentMonth:     month,
		PaymentYear:      year,
		PaymentMethod:    method,
		Notes:            notes,
	}, nil
}

// Period returns the dues period this payment is designated for.
func (p *Payment) Period() Period {
	return Period{Month: p.PaymentMonth, Year: p.PaymentYear}
}

// PendingAmount returns receivable minus received. A negative value
// means the row is overpaid and is treated as fully paid.
func (p *Payment) PendingAmount() decimal.Decimal {
	return p.ReceivableAmount.Sub(p.ReceivedAmount)
}

// Status classifies this row as paid, partial or unpaid.
func (p *Payment) Status() PaymentStatus {
	return ClassifyPayment(p.ReceivableAmount, p.ReceivedAmount)
}

// Merge folds an incoming submission for the same (villa, category,
// period) tuple into this row. Received amounts accumulate so callers
// can top up partial payments without knowing the prior total, while
// the original receivable stays authoritative. The payment date moves
// to the incoming one, notes append rather than replace, and the
// method is only replaced when the incoming submission carries one.
func (p *Payment) Merge(incoming *Payment) {
	p.ReceivedAmount = p.ReceivedAmount.Add(incoming.ReceivedAmount)
	p.PaymentDate = incoming.PaymentDate
	if incoming.Notes != "" {
		if p.Notes != "" {
			p.Notes = p.Notes + "\n" + incoming.Notes
		} else {
			p.Notes = incoming.Notes
		}
	}
	if incoming.PaymentMethod != "" {
		p.PaymentMethod = incoming.PaymentMethod
	}
	p.UpdatedAt = time.Now()
}
