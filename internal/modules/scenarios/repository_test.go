package scenarios

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
		CREATE TABLE scenarios (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			space_heating TEXT NOT NULL DEFAULT '[]',
			hot_water TEXT NOT NULL DEFAULT '[]',
			disruption_score INTEGER,
			created_at INTEGER NOT NULL
		)
	`)
	require.NoError(t, err)

	_, err = db.Exec(`
		CREATE TABLE journeys (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			steps TEXT NOT NULL DEFAULT '[]',
			created_at INTEGER NOT NULL
		)
	`)
	require.NoError(t, err)

	return db
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateAndGetScenario(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	disruption := 4
	created, err := repo.CreateScenario(Scenario{
		Name: "Full heat pump",
		SpaceHeating: []Technology{
			{Type: TechHeatPump, SeasonalCOP: floatPtr(3.4)},
		},
		HotWater: []Technology{
			{Type: TechHeatPump, SeasonalCOP: floatPtr(2.7)},
		},
		DisruptionScore: &disruption,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.GetScenario(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "Full heat pump", got.Name)
	require.Len(t, got.SpaceHeating, 1)
	assert.Equal(t, TechHeatPump, got.SpaceHeating[0].Type)
	require.NotNil(t, got.SpaceHeating[0].SeasonalCOP)
	assert.InDelta(t, 3.4, *got.SpaceHeating[0].SeasonalCOP, 0.001)
	require.Len(t, got.HotWater, 1)
	require.NotNil(t, got.DisruptionScore)
	assert.Equal(t, 4, *got.DisruptionScore)
}

func TestCreateScenario_EmptyMixes(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	created, err := repo.CreateScenario(Scenario{Name: "Do nothing"})
	require.NoError(t, err)

	got, err := repo.GetScenario(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Empty(t, got.SpaceHeating)
	assert.Empty(t, got.HotWater)
	assert.Nil(t, got.DisruptionScore)
}

func TestGetScenario_Missing(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	got, err := repo.GetScenario("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListAndDeleteScenarios(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	first, err := repo.CreateScenario(Scenario{Name: "First"})
	require.NoError(t, err)
	_, err = repo.CreateScenario(Scenario{Name: "Second"})
	require.NoError(t, err)

	all, err := repo.ListScenarios()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.DeleteScenario(first.ID))

	all, err = repo.ListScenarios()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateAndGetJourney(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	scenario, err := repo.CreateScenario(Scenario{Name: "Step one"})
	require.NoError(t, err)

	created, err := repo.CreateJourney(Journey{
		Name: "Phased retrofit",
		Steps: []JourneyStep{
			{ScenarioID: scenario.ID, EffectiveFrom: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
			{ScenarioID: scenario.ID, EffectiveFrom: time.Date(2028, 4, 1, 0, 0, 0, 0, time.UTC)},
		},
	})
	require.NoError(t, err)

	got, err := repo.GetJourney(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "Phased retrofit", got.Name)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, scenario.ID, got.Steps[0].ScenarioID)
	assert.True(t, got.Steps[0].EffectiveFrom.Before(got.Steps[1].EffectiveFrom))
}

func TestCreateJourney_NoSteps(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	created, err := repo.CreateJourney(Journey{Name: "Undecided"})
	require.NoError(t, err)

	got, err := repo.GetJourney(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Steps)
}

func TestGetJourney_Missing(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	got, err := repo.GetJourney("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListAndDeleteJourneys(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Disabled())

	first, err := repo.CreateJourney(Journey{Name: "First"})
	require.NoError(t, err)
	_, err = repo.CreateJourney(Journey{Name: "Second"})
	require.NoError(t, err)

	all, err := repo.ListJourneys()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.DeleteJourney(first.ID))

	all, err = repo.ListJourneys()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
