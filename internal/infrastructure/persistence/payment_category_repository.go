package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/villaledger/backend/internal/domain/shared"
	"github.com/villaledger/backend/internal/domain/society"
	"github.com/villaledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentCategoryRepository implements PaymentCategoryRepository using GORM
type GormPaymentCategoryRepository struct {
	db *gorm.DB
}

// NewGormPaymentCategoryRepository creates a new GormPaymentCategoryRepository
func NewGormPaymentCategoryRepository(db *gorm.DB) *GormPaymentCategoryRepository {
	return &GormPaymentCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormPaymentCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.PaymentCategory, error) {
	var model models.PaymentCategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds categories matching the filter, ordered by name ascending
func (r *GormPaymentCategoryRepository) FindAll(ctx context.Context, filter society.CategoryFilter) ([]society.PaymentCategory, error) {
	var categoryModels []models.PaymentCategoryModel
	query := r.db.WithContext(ctx).Model(&models.PaymentCategoryModel{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name asc").Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]society.PaymentCategory, len(categoryModels))
	for i, model := range categoryModels {
		categories[i] = *model.ToDomain()
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormPaymentCategoryRepository) Save(ctx context.Context, category *society.PaymentCategory) error {
	var model models.PaymentCategoryModel
	model.FromDomain(category)
	return r.db.WithContext(ctx).Save(&model).Error
}
