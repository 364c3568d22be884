// Package projection implements the retrofit cost/carbon projection engine:
// a pure, deterministic computation that maps a property, its occupants, its
// hot water demand, and a technology scenario to month-by-month and
// year-by-year electricity use, gas use, cost, and carbon over a multi-year
// horizon under a selectable grid decarbonization path.
package projection

import (
	"time"

	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/assumptions"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/households"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/properties"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/scenarios"
)

// EngineVersion tags every projection response for reproducibility auditing.
// Bump whenever a constant or allocation rule changes.
const EngineVersion = "engine/1.4.0"

// Inputs is the full value tuple the engine computes over. Identical inputs
// always produce identical results, so Inputs doubles as the memoization key.
type Inputs struct {
	Property     properties.PropertyModel    `msgpack:"property"`
	Occupancy    households.OccupancyProfile `msgpack:"occupancy"`
	HotWater     households.DHWProfile       `msgpack:"hot_water"`
	Scenario     scenarios.Scenario          `msgpack:"scenario"`
	Assumptions  assumptions.Snapshot        `msgpack:"assumptions"`
	DecarbPath   string                      `msgpack:"decarb_path"`
	HorizonYears int                         `msgpack:"horizon_years"`
	StartYear    int                         `msgpack:"start_year"`
}

// ConfidenceBand bounds a demand estimate. The factors depend only on input
// data quality (zone-level vs floor-area vs default) and are constant across
// the horizon.
type ConfidenceBand struct {
	Low  float64 `json:"low" msgpack:"low"`
	High float64 `json:"high" msgpack:"high"`
}

// EndUseBreakdown splits one end-use's input energy for a month by fuel and
// by technology. ByTechnology values are input kWh (electricity or gas)
// attributed to each technology tag.
type EndUseBreakdown struct {
	ByTechnology map[string]float64 `json:"by_technology" msgpack:"by_technology"`
	ElecKWh      float64            `json:"elec_kwh" msgpack:"elec_kwh"`
	GasKWh       float64            `json:"gas_kwh" msgpack:"gas_kwh"`
}

// MonthlyProjection is one month of projected consumption, cost, and carbon.
type MonthlyProjection struct {
	Period       time.Time       `json:"period" msgpack:"period"` // first day of the month, UTC
	SpaceHeating EndUseBreakdown `json:"space_heating" msgpack:"space_heating"`
	HotWater     EndUseBreakdown `json:"hot_water" msgpack:"hot_water"`
	ElecKWh      float64         `json:"elec_kwh" msgpack:"elec_kwh"`
	GasKWh       float64         `json:"gas_kwh" msgpack:"gas_kwh"`
	CostGBP      float64         `json:"cost_gbp" msgpack:"cost_gbp"`
	CarbonKg     float64         `json:"carbon_kg" msgpack:"carbon_kg"`
	Confidence   ConfidenceBand  `json:"confidence" msgpack:"confidence"`
}

// YearlyProjection aggregates twelve monthly records.
// Energy and carbon are rounded to whole units, cost to 2 decimal places.
type YearlyProjection struct {
	Year     int     `json:"year" msgpack:"year"`
	ElecKWh  float64 `json:"elec_kwh" msgpack:"elec_kwh"`
	GasKWh   float64 `json:"gas_kwh" msgpack:"gas_kwh"`
	CostGBP  float64 `json:"cost_gbp" msgpack:"cost_gbp"`
	CarbonKg float64 `json:"carbon_kg" msgpack:"carbon_kg"`
}

// Summary condenses a projection for comparison views.
type Summary struct {
	Year1CostGBP    float64 `json:"year_1_cost_gbp" msgpack:"year_1_cost_gbp"`
	Year1CarbonKg   float64 `json:"year_1_carbon_kg" msgpack:"year_1_carbon_kg"`
	Year10CostGBP   float64 `json:"year_10_cost_gbp" msgpack:"year_10_cost_gbp"`
	Year10CarbonKg  float64 `json:"year_10_carbon_kg" msgpack:"year_10_carbon_kg"`
	DisruptionScore int     `json:"disruption_score" msgpack:"disruption_score"`
	ComfortScore    int     `json:"comfort_score" msgpack:"comfort_score"`
}

// Result is the full engine output.
type Result struct {
	Monthly []MonthlyProjection `json:"monthly" msgpack:"monthly"`
	Yearly  []YearlyProjection  `json:"yearly" msgpack:"yearly"`
	Summary Summary             `json:"summary" msgpack:"summary"`
}

// Metadata records how a projection response was produced, for
// reproducibility auditing.
type Metadata struct {
	PropertyModelID       string    `json:"property_model_id"`
	OccupancyProfileID    string    `json:"occupancy_profile_id"`
	DHWProfileID          string    `json:"dhw_profile_id"`
	ScenarioID            string    `json:"scenario_id"`
	JourneyID             string    `json:"journey_id,omitempty"`
	AssumptionsSnapshotID string    `json:"assumptions_snapshot_id"`
	Region                string    `json:"region"`
	GridDecarbPath        string    `json:"grid_decarb_path"`
	HorizonYears          int       `json:"horizon_years"`
	StartYear             int       `json:"start_year"`
	EngineVersion         string    `json:"engine_version"`
	GeneratedAt           time.Time `json:"generated_at"`
}

// Response is the HTTP-facing projection payload.
type Response struct {
	Metadata Metadata            `json:"metadata"`
	Monthly  []MonthlyProjection `json:"monthly"`
	Yearly   []YearlyProjection  `json:"yearly"`
	Summary  Summary             `json:"summary"`
}
