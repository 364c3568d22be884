// Package households manages the occupant-side inputs to a projection:
// occupancy profiles (when the household is home, and whether it prioritises
// comfort or savings) and domestic hot water profiles (how much hot water the
// household draws).
package households

import "time"

// Occupancy presets. Unknown presets are accepted and treated as neutral
// by the projection engine.
const (
	PresetAlwaysHome   = "always_home"
	PresetOut9To5      = "out_9_to_5"
	PresetShift        = "shift"
	PresetWorkFromHome = "work_from_home"
)

// Comfort priorities used only for the summary comfort score.
const (
	PriorityComfort = "comfort"
	PrioritySaver   = "saver"
)

// OccupancyProfile scales space-heat demand by how much time the household
// spends at home.
type OccupancyProfile struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Preset          string    `json:"preset"`
	ComfortPriority string    `json:"comfort_priority,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// DHWProfile describes a household's domestic hot water draw.
// PreheatEnabled opts the household into a tank-preheating strategy that
// shifts part of water heating to electricity.
type DHWProfile struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Occupants       int       `json:"occupants"`
	ShowersPerDay   float64   `json:"showers_per_day"`
	BathsPerWeek    float64   `json:"baths_per_week"`
	TargetTempC     float64   `json:"target_temp_c"`
	PreheatEnabled  bool      `json:"preheat_enabled"`
	PreheatStrategy string    `json:"preheat_strategy,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
