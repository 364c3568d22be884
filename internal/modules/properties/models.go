// Package properties manages property models: the physical description of a
// dwelling used to estimate its space-heat demand. A property is described
// either by thermal zones (each with a heat-loss coefficient) or by floor area;
// the projection engine falls back to a fixed default when neither is present.
package properties

import "time"

// Zone is a thermal zone of a property with a measured heat-loss coefficient.
type Zone struct {
	Name          string  `json:"name"`
	HeatLossWPerK float64 `json:"heat_loss_w_per_k"`
}

// PropertyModel describes a dwelling for heat-demand estimation.
// Zones take precedence over floor area when both are present.
// AgeBand and ConstructionNotes are informational only.
type PropertyModel struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Zones             []Zone    `json:"zones"`
	FloorAreaM2       *float64  `json:"floor_area_m2,omitempty"`
	AgeBand           string    `json:"age_band,omitempty"`
	ConstructionNotes string    `json:"construction_notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// HasZoneData reports whether any zone carries a usable heat-loss coefficient
func (p *PropertyModel) HasZoneData() bool {
	for _, z := range p.Zones {
		if z.HeatLossWPerK > 0 {
			return true
		}
	}
	return false
}
