package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/villaledger/backend/internal/domain/shared"
	"github.com/villaledger/backend/internal/domain/society"
	"github.com/villaledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTuple finds the unique payment row for a villa, category and period
func (r *GormPaymentRepository) FindByTuple(ctx context.Context, villaID, categoryID uuid.UUID, month, year int) (*society.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("villa_id = ? AND category_id = ? AND payment_month = ? AND payment_year = ?",
			villaID, categoryID, month, year).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByVilla finds a villa's payments, newest designated period first
func (r *GormPaymentRepository) FindByVilla(ctx context.Context, villaID uuid.UUID, filter society.PaymentFilter) ([]society.Payment, error) {
	var paymentModels []models.PaymentModel
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("villa_id = ?", villaID)
	if filter.Year != nil {
		query = query.Where("payment_year = ?", *filter.Year)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if err := query.Order("payment_year desc, payment_month desc").Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByPeriod finds all payments designated for a period
func (r *GormPaymentRepository) FindByPeriod(ctx context.Context, month, year int) ([]society.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("payment_month = ? AND payment_year = ?", month, year).
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByDateRange finds payments whose physical payment date falls in [from, to)
func (r *GormPaymentRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]society.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("payment_date >= ? AND payment_date < ?", from, to).
		Order("payment_date asc").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindAll returns the entire ledger, newest designated period first
func (r *GormPaymentRepository) FindAll(ctx context.Context) ([]society.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Order("payment_year desc, payment_month desc").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// CreateOrMerge atomically inserts the incoming row, or merges it into
// the existing row for the same (villa, category, month, year) tuple.
// The row lock keeps concurrent submissions for the same tuple from
// both taking the insert branch.
func (r *GormPaymentRepository) CreateOrMerge(ctx context.Context, incoming *society.Payment) (*society.Payment, bool, error) {
	var stored *society.Payment
	merged := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lookup := tx.Where("villa_id = ? AND category_id = ? AND payment_month = ? AND payment_year = ?",
			incoming.VillaID, incoming.CategoryID, incoming.PaymentMonth, incoming.PaymentYear)
		// SQLite serializes writers on its own and rejects FOR UPDATE.
		if tx.Dialector.Name() == "postgres" {
			lookup = lookup.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var existing models.PaymentModel
		err := lookup.First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			var model models.PaymentModel
			model.FromDomain(incoming)
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
			stored = model.ToDomain()
			return nil
		case err != nil:
			return err
		}

		current := existing.ToDomain()
		current.Merge(incoming)
		existing.FromDomain(current)
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		stored = current
		merged = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return stored, merged, nil
}

// Save overwrites an existing payment row without merging
func (r *GormPaymentRepository) Save(ctx context.Context, payment *society.Payment) error {
	var model models.PaymentModel
	model.FromDomain(payment)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a payment row
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id).Error
}

// CountByVilla counts payment rows referencing a villa
func (r *GormPaymentRepository) CountByVilla(ctx context.Context, villaID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("villa_id = ?", villaID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumReceivedForPeriod totals received amounts designated for a period
func (r *GormPaymentRepository) SumReceivedForPeriod(ctx context.Context, month, year int) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Select("SUM(received_amount)").
		Where("payment_month = ? AND payment_year = ?", month, year).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func toDomainPayments(paymentModels []models.PaymentModel) []society.Payment {
	payments := make([]society.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments
}
