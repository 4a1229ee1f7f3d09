package society

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/villaledger/backend/internal/domain/shared"
	"github.com/villaledger/backend/internal/domain/society"
)

// CategoryService manages the payment category registry
type CategoryService struct {
	categoryRepo society.PaymentCategoryRepository
	clock        shared.Clock
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo society.PaymentCategoryRepository, clock shared.Clock) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, clock: clock}
}

// CreateCategoryRequest captures a new category definition
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsRecurring bool   `json:"is_recurring"`
}

// UpdateCategoryRequest carries a partial category edit
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsRecurring *bool   `json:"is_recurring"`
}

// CategoryView is the read model for one category
type CategoryView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsRecurring bool      `json:"is_recurring"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newCategoryView(c society.PaymentCategory) CategoryView {
	return CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsRecurring: c.IsRecurring,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// Create registers a new payment category, active by default
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryView, error) {
	category, err := society.NewPaymentCategory(req.Name, req.Description, req.IsRecurring)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	view := newCategoryView(*category)
	return &view, nil
}

// List returns active categories, optionally scoped to a year.
// With no year (0) every active category is returned. With a year,
// recurring categories always apply while one-time categories only
// surface in the year they were created, so old one-off charges stop
// appearing on new dashboards.
func (s *CategoryService) List(ctx context.Context, year int) ([]CategoryView, error) {
	categories, err := s.categoryRepo.FindAll(ctx, society.CategoryFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		if year != 0 && !c.IsCurrentForYear(year) {
			continue
		}
		views = append(views, newCategoryView(c))
	}
	return views, nil
}

// ListAll returns every category regardless of year or active flag
func (s *CategoryService) ListAll(ctx context.Context) ([]CategoryView, error) {
	categories, err := s.categoryRepo.FindAll(ctx, society.CategoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, newCategoryView(c))
	}
	return views, nil
}

// GetByID loads one category
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryView, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	view := newCategoryView(*category)
	return &view, nil
}

// Update edits a category definition in place
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryView, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Category name is required")
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.IsRecurring != nil {
		category.IsRecurring = *req.IsRecurring
	}
	category.UpdatedAt = s.clock.Now()
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	view := newCategoryView(*category)
	return &view, nil
}

// Deactivate soft-deletes a category. Existing ledger rows keep their
// reference; the category just stops appearing in active listings.
func (s *CategoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load category: %w", err)
	}
	category.Deactivate()
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}
