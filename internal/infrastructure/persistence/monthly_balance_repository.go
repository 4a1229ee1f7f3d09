package persistence

import (
	"context"
	"errors"

	"github.com/villaledger/backend/internal/domain/shared"
	"github.com/villaledger/backend/internal/domain/society"
	"github.com/villaledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMonthlyBalanceRepository implements MonthlyBalanceRepository using GORM
type GormMonthlyBalanceRepository struct {
	db *gorm.DB
}

// NewGormMonthlyBalanceRepository creates a new GormMonthlyBalanceRepository
func NewGormMonthlyBalanceRepository(db *gorm.DB) *GormMonthlyBalanceRepository {
	return &GormMonthlyBalanceRepository{db: db}
}

// FindByPeriod finds the balance snapshot for a period
func (r *GormMonthlyBalanceRepository) FindByPeriod(ctx context.Context, month, year int) (*society.MonthlyBalance, error) {
	var model models.MonthlyBalanceModel
	if err := r.db.WithContext(ctx).
		Where("month = ? AND year = ?", month, year).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByYear finds all snapshots for a year ordered by month ascending
func (r *GormMonthlyBalanceRepository) FindByYear(ctx context.Context, year int) ([]society.MonthlyBalance, error) {
	var balanceModels []models.MonthlyBalanceModel
	if err := r.db.WithContext(ctx).
		Where("year = ?", year).
		Order("month asc").
		Find(&balanceModels).Error; err != nil {
		return nil, err
	}
	balances := make([]society.MonthlyBalance, len(balanceModels))
	for i, model := range balanceModels {
		balances[i] = *model.ToDomain()
	}
	return balances, nil
}

// Save upserts a balance snapshot keyed on (month, year)
func (r *GormMonthlyBalanceRepository) Save(ctx context.Context, balance *society.MonthlyBalance) error {
	var model models.MonthlyBalanceModel
	model.FromDomain(balance)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "month"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"previous_balance", "total_receipts", "total_expenses",
				"current_balance", "is_generated", "generated_at", "updated_at",
			}),
		}).
		Create(&model).Error
}
