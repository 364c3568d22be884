// Package assumptions manages versioned regional energy-economics snapshots:
// unit prices, standing charges, and carbon intensities used as pricing and
// carbon inputs to a projection.
package assumptions

import "time"

// Snapshot is a region's energy economics for a validity window.
// Prices are in pence (minor currency unit) per kWh or per day; the engine
// converts to pounds. Carbon intensities are in g CO2e per kWh.
type Snapshot struct {
	ID                   string     `json:"id"`
	Region               string     `json:"region"`
	ValidFrom            time.Time  `json:"valid_from"`
	ValidTo              *time.Time `json:"valid_to,omitempty"`
	ElecPricePPerKWh     float64    `json:"elec_price_p_per_kwh"`
	ElecOffPeakPPerKWh   *float64   `json:"elec_offpeak_price_p_per_kwh,omitempty"`
	GasPricePPerKWh      float64    `json:"gas_price_p_per_kwh"`
	ElecStandingPPerDay  *float64   `json:"elec_standing_p_per_day,omitempty"`
	GasStandingPPerDay   *float64   `json:"gas_standing_p_per_day,omitempty"`
	GridIntensityGPerKWh float64    `json:"grid_intensity_g_per_kwh"`
	GasIntensityGPerKWh  float64    `json:"gas_intensity_g_per_kwh"`
	CreatedAt            time.Time  `json:"created_at"`
}
