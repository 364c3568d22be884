package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/assumptions"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/households"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/projection"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/properties"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/scenarios"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/pkg/logger"
)

type fixture struct {
	router     chi.Router
	propertyID string
	occID      string
	dhwID      string
	scenarioID string
	journeyID  string
	emptyID    string
}

func setupFixture(t *testing.T) *fixture {
	planDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { planDB.Close() })

	for _, stmt := range []string{
		`CREATE TABLE property_models (
			id TEXT PRIMARY KEY, name TEXT NOT NULL, zones TEXT NOT NULL DEFAULT '[]',
			floor_area_m2 REAL, age_band TEXT, construction_notes TEXT, created_at INTEGER NOT NULL)`,
		`CREATE TABLE occupancy_profiles (
			id TEXT PRIMARY KEY, name TEXT NOT NULL, preset TEXT NOT NULL,
			comfort_priority TEXT NOT NULL DEFAULT '', created_at INTEGER NOT NULL)`,
		`CREATE TABLE dhw_profiles (
			id TEXT PRIMARY KEY, name TEXT NOT NULL, occupants INTEGER NOT NULL,
			showers_per_day REAL NOT NULL, baths_per_week REAL NOT NULL, target_temp_c REAL NOT NULL,
			preheat_enabled INTEGER NOT NULL DEFAULT 0, preheat_strategy TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL)`,
		`CREATE TABLE scenarios (
			id TEXT PRIMARY KEY, name TEXT NOT NULL, space_heating TEXT NOT NULL DEFAULT '[]',
			hot_water TEXT NOT NULL DEFAULT '[]', disruption_score INTEGER, created_at INTEGER NOT NULL)`,
		`CREATE TABLE journeys (
			id TEXT PRIMARY KEY, name TEXT NOT NULL, steps TEXT NOT NULL DEFAULT '[]',
			created_at INTEGER NOT NULL)`,
	} {
		_, err = planDB.Exec(stmt)
		require.NoError(t, err)
	}

	assumptionsDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { assumptionsDB.Close() })

	_, err = assumptionsDB.Exec(`
		CREATE TABLE assumption_snapshots (
			id TEXT PRIMARY KEY, region TEXT NOT NULL, valid_from TEXT NOT NULL, valid_to TEXT,
			elec_price_p_per_kwh REAL NOT NULL, elec_offpeak_price_p_per_kwh REAL,
			gas_price_p_per_kwh REAL NOT NULL, elec_standing_p_per_day REAL, gas_standing_p_per_day REAL,
			grid_intensity_g_per_kwh REAL NOT NULL, gas_intensity_g_per_kwh REAL NOT NULL,
			created_at INTEGER NOT NULL)
	`)
	require.NoError(t, err)

	log := logger.Disabled()
	propertyRepo := properties.NewRepository(planDB, log)
	occupancyRepo := households.NewOccupancyRepository(planDB, log)
	dhwRepo := households.NewDHWRepository(planDB, log)
	scenarioRepo := scenarios.NewRepository(planDB, log)
	snapshotRepo := assumptions.NewRepository(assumptionsDB, log)

	area := 100.0
	property, err := propertyRepo.Create(properties.PropertyModel{Name: "Terrace", FloorAreaM2: &area})
	require.NoError(t, err)

	occ, err := occupancyRepo.Create(households.OccupancyProfile{Name: "Commuters", Preset: households.PresetOut9To5})
	require.NoError(t, err)

	dhw, err := dhwRepo.Create(households.DHWProfile{Name: "Two adults", Occupants: 2, ShowersPerDay: 2, TargetTempC: 50})
	require.NoError(t, err)

	scenario, err := scenarioRepo.CreateScenario(scenarios.Scenario{
		Name:         "Heat pump retrofit",
		SpaceHeating: []scenarios.Technology{{Type: scenarios.TechHeatPump}},
	})
	require.NoError(t, err)

	journey, err := scenarioRepo.CreateJourney(scenarios.Journey{
		Name:  "Phased",
		Steps: []scenarios.JourneyStep{{ScenarioID: scenario.ID, EffectiveFrom: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)}},
	})
	require.NoError(t, err)

	empty, err := scenarioRepo.CreateJourney(scenarios.Journey{Name: "Undecided"})
	require.NoError(t, err)

	_, err = snapshotRepo.Create(assumptions.Snapshot{
		Region:               "GB",
		ValidFrom:            time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ElecPricePPerKWh:     28,
		GasPricePPerKWh:      7,
		GridIntensityGPerKWh: 200,
		GasIntensityGPerKWh:  185,
	})
	require.NoError(t, err)

	service := projection.NewService(propertyRepo, occupancyRepo, dhwRepo, scenarioRepo, snapshotRepo, nil, "GB", log)
	handler := NewHandler(service, log)
	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	return &fixture{
		router:     router,
		propertyID: property.ID,
		occID:      occ.ID,
		dhwID:      dhw.ID,
		scenarioID: scenario.ID,
		journeyID:  journey.ID,
		emptyID:    empty.ID,
	}
}

func (f *fixture) post(t *testing.T, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleProjectScenario(t *testing.T) {
	f := setupFixture(t)

	body := fmt.Sprintf(`{
		"property_model_id": %q,
		"occupancy_profile_id": %q,
		"dhw_profile_id": %q,
		"scenario_id": %q,
		"horizon_years": 5
	}`, f.propertyID, f.occID, f.dhwID, f.scenarioID)

	rec := f.post(t, "/projections/scenario", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp projection.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Len(t, resp.Monthly, 60)
	assert.Len(t, resp.Yearly, 5)
	assert.Equal(t, f.scenarioID, resp.Metadata.ScenarioID)
	assert.Equal(t, "GB", resp.Metadata.Region)
	assert.Equal(t, projection.PathCentral, resp.Metadata.GridDecarbPath)
	assert.Equal(t, projection.EngineVersion, resp.Metadata.EngineVersion)
}

func TestHandleProjectScenario_MissingScenarioID(t *testing.T) {
	f := setupFixture(t)

	rec := f.post(t, "/projections/scenario", `{"property_model_id": "x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleProjectScenario_InvalidBody(t *testing.T) {
	f := setupFixture(t)

	rec := f.post(t, "/projections/scenario", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleProjectScenario_UnknownScenario(t *testing.T) {
	f := setupFixture(t)

	body := fmt.Sprintf(`{
		"property_model_id": %q,
		"occupancy_profile_id": %q,
		"dhw_profile_id": %q,
		"scenario_id": "no-such-scenario"
	}`, f.propertyID, f.occID, f.dhwID)

	rec := f.post(t, "/projections/scenario", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleProjectJourney(t *testing.T) {
	f := setupFixture(t)

	body := fmt.Sprintf(`{
		"property_model_id": %q,
		"occupancy_profile_id": %q,
		"dhw_profile_id": %q,
		"journey_id": %q
	}`, f.propertyID, f.occID, f.dhwID, f.journeyID)

	rec := f.post(t, "/projections/journey", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp projection.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, f.journeyID, resp.Metadata.JourneyID)
	assert.Equal(t, f.scenarioID, resp.Metadata.ScenarioID)
	assert.Len(t, resp.Yearly, 10)
}

func TestHandleProjectJourney_Empty(t *testing.T) {
	f := setupFixture(t)

	body := fmt.Sprintf(`{
		"property_model_id": %q,
		"occupancy_profile_id": %q,
		"dhw_profile_id": %q,
		"journey_id": %q
	}`, f.propertyID, f.occID, f.dhwID, f.emptyID)

	rec := f.post(t, "/projections/journey", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleProjectJourney_MissingJourneyID(t *testing.T) {
	f := setupFixture(t)

	rec := f.post(t, "/projections/journey", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
