// Package scenarios manages retrofit technology scenarios and journeys.
// A scenario is a named technology mix split by end-use (space heating and hot
// water); a journey is an ordered list of scenario steps with effective dates.
package scenarios

import "time"

// Technology type tags. Unrecognised tags are accepted; the projection engine
// allocates them to gas at the documented default efficiency.
const (
	TechHeatPump    = "heat_pump"
	TechAirToAir    = "air_to_air"
	TechGasBoiler   = "gas_boiler"
	TechElectric    = "electric"
	TechPreheatTank = "preheat_tank"
)

// Technology is one entry in a scenario's technology mix.
// SeasonalCOP applies to heat pump types, SeasonalEfficiency to combustion
// types; both are optional and default inside the engine.
type Technology struct {
	Type               string   `json:"type"`
	SeasonalCOP        *float64 `json:"seasonal_cop,omitempty"`
	SeasonalEfficiency *float64 `json:"seasonal_efficiency,omitempty"`
}

// Scenario is a named technology mix plus an installation disruption score.
type Scenario struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	SpaceHeating    []Technology `json:"space_heating"`
	HotWater        []Technology `json:"hot_water"`
	DisruptionScore *int         `json:"disruption_score,omitempty"` // 1-5
	CreatedAt       time.Time    `json:"created_at"`
}

// JourneyStep references a scenario taking effect at a given date.
type JourneyStep struct {
	ScenarioID    string    `json:"scenario_id"`
	EffectiveFrom time.Time `json:"effective_from"`
}

// Journey is an ordered list of retrofit steps.
//
// Projection currently flattens a journey to its first step's scenario for the
// whole horizon; date-based scenario transitions are a documented limitation.
type Journey struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Steps     []JourneyStep `json:"steps"`
	CreatedAt time.Time     `json:"created_at"`
}
