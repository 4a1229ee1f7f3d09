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

// GormVillaRepository implements VillaRepository using GORM
type GormVillaRepository struct {
	db *gorm.DB
}

// NewGormVillaRepository creates a new GormVillaRepository
func NewGormVillaRepository(db *gorm.DB) *GormVillaRepository {
	return &GormVillaRepository{db: db}
}

// FindByID finds a villa by its ID
func (r *GormVillaRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.Villa, error) {
	var model models.VillaModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a villa by its unique villa number
func (r *GormVillaRepository) FindByNumber(ctx context.Context, villaNumber string) (*society.Villa, error) {
	var model models.VillaModel
	if err := r.db.WithContext(ctx).
		Where("villa_number = ?", villaNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds villas with filtering, ordered by villa number
func (r *GormVillaRepository) FindAll(ctx context.Context, filter society.VillaFilter) ([]society.Villa, error) {
	var villaModels []models.VillaModel
	query := r.db.WithContext(ctx).Model(&models.VillaModel{})
	query = r.applyFilter(query, filter)

	sortField := ValidateSortField(filter.OrderBy, VillaSortFields, "villa_number")
	sortOrder := "ASC"
	if filter.OrderDir != "" {
		sortOrder = ValidateSortOrder(filter.OrderDir)
	}
	if err := query.Order(sortField + " " + sortOrder).Find(&villaModels).Error; err != nil {
		return nil, err
	}
	villas := make([]society.Villa, len(villaModels))
	for i, model := range villaModels {
		villas[i] = *model.ToDomain()
	}
	return villas, nil
}

// Save creates or updates a villa
func (r *GormVillaRepository) Save(ctx context.Context, villa *society.Villa) error {
	var model models.VillaModel
	model.FromDomain(villa)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a villa
func (r *GormVillaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.VillaModel{}, "id = ?", id).Error
}

// Count counts villas matching the filter
func (r *GormVillaRepository) Count(ctx context.Context, filter society.VillaFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.VillaModel{})
	query = r.applyFilter(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormVillaRepository) applyFilter(query *gorm.DB, filter society.VillaFilter) *gorm.DB {
	if filter.OccupancyType != nil {
		query = query.Where("occupancy_type = ?", filter.OccupancyType.String())
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("villa_number ILIKE ? OR resident_name ILIKE ?", pattern, pattern)
	}
	return query
}
