package society

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/villaledger/backend/internal/domain/shared"
	"github.com/villaledger/backend/internal/domain/society"
)

// VillaService manages the villa roster
type VillaService struct {
	villaRepo   society.VillaRepository
	paymentRepo society.PaymentRepository
}

// NewVillaService creates a new VillaService
func NewVillaService(villaRepo society.VillaRepository, paymentRepo society.PaymentRepository) *VillaService {
	return &VillaService{villaRepo: villaRepo, paymentRepo: paymentRepo}
}

// CreateVillaRequest captures a new villa registration
type CreateVillaRequest struct {
	VillaNumber   string  `json:"villa_number" binding:"required"`
	ResidentName  *string `json:"resident_name"`
	OccupancyType *string `json:"occupancy_type"`
}

// UpdateVillaRequest carries a partial villa edit
type UpdateVillaRequest struct {
	VillaNumber   *string `json:"villa_number"`
	ResidentName  *string `json:"resident_name"`
	OccupancyType *string `json:"occupancy_type"`
}

// VillaView is the read model for one villa
type VillaView struct {
	ID            uuid.UUID              `json:"id"`
	VillaNumber   string                 `json:"villa_number"`
	ResidentName  *string                `json:"resident_name"`
	OccupancyType *society.OccupancyType `json:"occupancy_type"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

func newVillaView(v society.Villa) VillaView {
	return VillaView{
		ID:            v.ID,
		VillaNumber:   v.VillaNumber,
		ResidentName:  v.ResidentName,
		OccupancyType: v.OccupancyType,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

// Create registers a villa. Villa numbers are unique across the society.
func (s *VillaService) Create(ctx context.Context, req CreateVillaRequest) (*VillaView, error) {
	existing, err := s.villaRepo.FindByNumber(ctx, req.VillaNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check villa number: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Villa number is already registered")
	}

	var occupancy *society.OccupancyType
	if req.OccupancyType != nil && *req.OccupancyType != "" {
		value := society.OccupancyType(*req.OccupancyType)
		occupancy = &value
	}
	villa, err := society.NewVilla(req.VillaNumber, req.ResidentName, occupancy)
	if err != nil {
		return nil, err
	}
	if err := s.villaRepo.Save(ctx, villa); err != nil {
		return nil, fmt.Errorf("failed to save villa: %w", err)
	}
	view := newVillaView(*villa)
	return &view, nil
}

// GetByID loads one villa
func (s *VillaService) GetByID(ctx context.Context, id uuid.UUID) (*VillaView, error) {
	villa, err := s.villaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load villa: %w", err)
	}
	view := newVillaView(*villa)
	return &view, nil
}

// List returns villas matching the filter, ordered by villa number
func (s *VillaService) List(ctx context.Context, filter society.VillaFilter) ([]VillaView, error) {
	villas, err := s.villaRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load villas: %w", err)
	}
	views := make([]VillaView, 0, len(villas))
	for _, v := range villas {
		views = append(views, newVillaView(v))
	}
	return views, nil
}

// Update edits a villa in place
func (s *VillaService) Update(ctx context.Context, id uuid.UUID, req UpdateVillaRequest) (*VillaView, error) {
	villa, err := s.villaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load villa: %w", err)
	}

	if req.VillaNumber != nil && *req.VillaNumber != villa.VillaNumber {
		if *req.VillaNumber == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Villa number is required")
		}
		other, err := s.villaRepo.FindByNumber(ctx, *req.VillaNumber)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("failed to check villa number: %w", err)
		}
		if other != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Villa number is already registered")
		}
		villa.VillaNumber = *req.VillaNumber
	}
	if req.ResidentName != nil {
		if *req.ResidentName == "" {
			villa.ResidentName = nil
		} else {
			villa.ResidentName = req.ResidentName
		}
	}
	if req.OccupancyType != nil {
		if *req.OccupancyType == "" {
			villa.OccupancyType = nil
		} else {
			occupancy := society.OccupancyType(*req.OccupancyType)
			if !occupancy.IsValid() {
				return nil, shared.NewDomainError("INVALID_INPUT", "Invalid occupancy type")
			}
			villa.OccupancyType = &occupancy
		}
	}
	villa.UpdatedAt = time.Now()

	if err := s.villaRepo.Save(ctx, villa); err != nil {
		return nil, fmt.Errorf("failed to save villa: %w", err)
	}
	view := newVillaView(*villa)
	return &view, nil
}

// Delete removes a villa. Villas with ledger history are refused so the
// payment trail stays intact.
func (s *VillaService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.villaRepo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("failed to load villa: %w", err)
	}
	count, err := s.paymentRepo.CountByVilla(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count villa payments: %w", err)
	}
	if count > 0 {
		return shared.NewDomainError("CONSTRAINT_VIOLATION", "Villa has payment records and cannot be deleted")
	}
	if err := s.villaRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete villa: %w", err)
	}
	return nil
}
