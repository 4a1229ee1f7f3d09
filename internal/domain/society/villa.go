package society

import (
	"strings"

	"github.com/villaledger/backend/internal/domain/shared"
)

// OccupancyType describes who currently occupies a villa
type OccupancyType string

const (
	OccupancyOwner  OccupancyType = "OWNER"
	OccupancyTenant OccupancyType = "TENANT"
	OccupancyVacant OccupancyType = "VACANT"
)

// IsValid checks if the occupancy type is valid
func (o OccupancyType) IsValid() bool {
	switch o {
	case OccupancyOwner, OccupancyTenant, OccupancyVacant:
		return true
	}
	return false
}

// String returns the string representation of OccupancyType
func (o OccupancyType) String() string {
	return string(o)
}

// Villa represents a residential unit in the society.
// ResidentName is nil while the villa is vacant.
type Villa struct {
	shared.BaseEntity
	VillaNumber   string
	ResidentName  *string
	OccupancyType *OccupancyType
}

// NewVilla creates a new villa with a generated ID
func NewVilla(villaNumber string, residentName *string, occupancy *OccupancyType) (*Villa, error) {
	villaNumber = strings.TrimSpace(villaNumber)
	if villaNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Villa number is required")
	}
	if occupancy != nil && !occupancy.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid occupancy type")
	}
	return &Villa{
		BaseEntity:    shared.NewBaseEntity(),
		VillaNumber:   villaNumber,
		ResidentName:  residentName,
		OccupancyType: occupancy,
	}, nil
}

// IsVacant reports whether the villa has no resident on record
func (v *Villa) IsVacant() bool {
	if v.OccupancyType != nil && *v.OccupancyType == OccupancyVacant {
		return true
	}
	return v.ResidentName == nil
}
