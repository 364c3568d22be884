package properties

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/martinbibb-cmd/Hail-Mary-sub002/pkg/logger"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE property_models (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			zones TEXT NOT NULL DEFAULT '[]',
			floor_area_m2 REAL,
			age_band TEXT,
			construction_notes TEXT,
			created_at INTEGER NOT NULL
		)
	`)
	require.NoError(t, err)

	return db
}

func TestCreateAndGet(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	area := 120.5
	created, err := repo.Create(PropertyModel{
		Name: "Victorian semi",
		Zones: []Zone{
			{Name: "ground floor", HeatLossWPerK: 180},
			{Name: "first floor", HeatLossWPerK: 140},
		},
		FloorAreaM2: &area,
		AgeBand:     "pre-1919",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.Get(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "Victorian semi", got.Name)
	assert.Len(t, got.Zones, 2)
	assert.Equal(t, "ground floor", got.Zones[0].Name)
	assert.InDelta(t, 180.0, got.Zones[0].HeatLossWPerK, 0.001)
	require.NotNil(t, got.FloorAreaM2)
	assert.InDelta(t, 120.5, *got.FloorAreaM2, 0.001)
	assert.Equal(t, "pre-1919", got.AgeBand)
	assert.True(t, got.HasZoneData())
}

func TestCreate_NoZonesOrFloorArea(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	created, err := repo.Create(PropertyModel{Name: "Unknown flat"})
	require.NoError(t, err)

	got, err := repo.Get(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Empty(t, got.Zones)
	assert.Nil(t, got.FloorAreaM2)
	assert.False(t, got.HasZoneData())
}

func TestGet_Missing(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	got, err := repo.Get("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestList(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	_, err := repo.Create(PropertyModel{Name: "First"})
	require.NoError(t, err)
	_, err = repo.Create(PropertyModel{Name: "Second"})
	require.NoError(t, err)

	all, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDelete(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	created, err := repo.Create(PropertyModel{Name: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(created.ID))

	got, err := repo.Get(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting a missing id is not an error
	assert.NoError(t, repo.Delete("already-gone"))
}
