package assumptions

import (
	"database/sql"
	"testing"
	"time"

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
		CREATE TABLE assumption_snapshots (
			id TEXT PRIMARY KEY,
			region TEXT NOT NULL,
			valid_from TEXT NOT NULL,
			valid_to TEXT,
			elec_price_p_per_kwh REAL NOT NULL,
			elec_offpeak_price_p_per_kwh REAL,
			gas_price_p_per_kwh REAL NOT NULL,
			elec_standing_p_per_day REAL,
			gas_standing_p_per_day REAL,
			grid_intensity_g_per_kwh REAL NOT NULL,
			gas_intensity_g_per_kwh REAL NOT NULL,
			created_at INTEGER NOT NULL
		)
	`)
	require.NoError(t, err)

	return db
}

func floatPtr(v float64) *float64 { return &v }

func gbSnapshot(validFrom time.Time) Snapshot {
	return Snapshot{
		Region:               "GB",
		ValidFrom:            validFrom,
		ElecPricePPerKWh:     28.5,
		GasPricePPerKWh:      7.2,
		ElecStandingPPerDay:  floatPtr(60.1),
		GasStandingPPerDay:   floatPtr(31.4),
		GridIntensityGPerKWh: 207,
		GasIntensityGPerKWh:  185,
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	validTo := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	s := gbSnapshot(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	s.ValidTo = &validTo
	s.ElecOffPeakPPerKWh = floatPtr(14.2)

	created, err := repo.Create(s)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.Get(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "GB", got.Region)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), got.ValidFrom)
	require.NotNil(t, got.ValidTo)
	assert.Equal(t, validTo, *got.ValidTo)
	assert.InDelta(t, 28.5, got.ElecPricePPerKWh, 0.001)
	require.NotNil(t, got.ElecOffPeakPPerKWh)
	assert.InDelta(t, 14.2, *got.ElecOffPeakPPerKWh, 0.001)
	require.NotNil(t, got.ElecStandingPPerDay)
	assert.InDelta(t, 60.1, *got.ElecStandingPPerDay, 0.001)
	assert.InDelta(t, 185.0, got.GasIntensityGPerKWh, 0.001)
}

func TestGet_Missing(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	got, err := repo.Get("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLatestForRegion(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	_, err := repo.Create(gbSnapshot(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	newest, err := repo.Create(gbSnapshot(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = repo.Create(gbSnapshot(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	got, err := repo.LatestForRegion("GB")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newest.ID, got.ID)
}

func TestLatestForRegion_NoSnapshots(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	got, err := repo.LatestForRegion("FR")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLatestForRegion_ScopedByRegion(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	gb, err := repo.Create(gbSnapshot(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	ie := gbSnapshot(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	ie.Region = "IE"
	_, err = repo.Create(ie)
	require.NoError(t, err)

	got, err := repo.LatestForRegion("GB")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, gb.ID, got.ID)
}

func TestList(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	_, err := repo.Create(gbSnapshot(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = repo.Create(gbSnapshot(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	ie := gbSnapshot(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	ie.Region = "IE"
	_, err = repo.Create(ie)
	require.NoError(t, err)

	gbOnly, err := repo.List("GB")
	require.NoError(t, err)
	require.Len(t, gbOnly, 2)
	// Newest validity first
	assert.True(t, gbOnly[0].ValidFrom.After(gbOnly[1].ValidFrom))

	all, err := repo.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDelete(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	created, err := repo.Create(gbSnapshot(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(created.ID))

	got, err := repo.Get(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
