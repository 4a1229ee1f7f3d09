package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/villaledger/backend/internal/domain/shared"
	"github.com/villaledger/backend/internal/domain/society"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupVillaTestDB creates an in-memory SQLite database for testing
func setupVillaTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE villas (
			id TEXT PRIMARY KEY,
			villa_number TEXT NOT NULL UNIQUE,
			resident_name TEXT,
			occupancy_type TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	return db
}

func TestGormVillaRepository_SaveAndFindByNumber(t *testing.T) {
	db := setupVillaTestDB(t)
	repo := NewGormVillaRepository(db)
	ctx := context.Background()

	resident := "A. Sharma"
	occupancy := society.OccupancyOwner
	villa, err := society.NewVilla("V-101", &resident, &occupancy)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, villa))

	found, err := repo.FindByNumber(ctx, "V-101")
	require.NoError(t, err)
	assert.Equal(t, villa.ID, found.ID)
	require.NotNil(t, found.ResidentName)
	assert.Equal(t, "A. Sharma", *found.ResidentName)
	require.NotNil(t, found.OccupancyType)
	assert.Equal(t, society.OccupancyOwner, *found.OccupancyType)
}

func TestGormVillaRepository_FindAll_OrderedByNumber(t *testing.T) {
	db := setupVillaTestDB(t)
	repo := NewGormVillaRepository(db)
	ctx := context.Background()

	for _, number := range []string{"V-103", "V-101", "V-102"} {
		villa, err := society.NewVilla(number, nil, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, villa))
	}

	villas, err := repo.FindAll(ctx, society.VillaFilter{})
	require.NoError(t, err)
	require.Len(t, villas, 3)
	assert.Equal(t, "V-101", villas[0].VillaNumber)
	assert.Equal(t, "V-103", villas[2].VillaNumber)
}

func TestGormVillaRepository_FindAll_SortWhitelist(t *testing.T) {
	db := setupVillaTestDB(t)
	repo := NewGormVillaRepository(db)
	ctx := context.Background()

	for _, number := range []string{"V-101", "V-102", "V-103"} {
		villa, err := society.NewVilla(number, nil, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, villa))
	}

	filter := society.VillaFilter{}
	filter.OrderBy = "villa_number"
	filter.OrderDir = "desc"
	villas, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, villas, 3)
	assert.Equal(t, "V-103", villas[0].VillaNumber)

	// Unknown fields fall back to the default ordering instead of
	// reaching the SQL layer
	filter = society.VillaFilter{}
	filter.OrderBy = "resident_name; DROP TABLE villas"
	villas, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, villas, 3)
	assert.Equal(t, "V-101", villas[0].VillaNumber)
}

func TestGormVillaRepository_FindAll_OccupancyFilter(t *testing.T) {
	db := setupVillaTestDB(t)
	repo := NewGormVillaRepository(db)
	ctx := context.Background()

	owner := society.OccupancyOwner
	tenant := society.OccupancyTenant
	v1, err := society.NewVilla("V-101", nil, &owner)
	require.NoError(t, err)
	v2, err := society.NewVilla("V-102", nil, &tenant)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, v1))
	require.NoError(t, repo.Save(ctx, v2))

	villas, err := repo.FindAll(ctx, society.VillaFilter{OccupancyType: &tenant})
	require.NoError(t, err)
	require.Len(t, villas, 1)
	assert.Equal(t, "V-102", villas[0].VillaNumber)
}

func TestGormVillaRepository_Delete(t *testing.T) {
	db := setupVillaTestDB(t)
	repo := NewGormVillaRepository(db)
	ctx := context.Background()

	villa, err := society.NewVilla("V-101", nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, villa))

	require.NoError(t, repo.Delete(ctx, villa.ID))

	_, err = repo.FindByID(ctx, villa.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
