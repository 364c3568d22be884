package projection

import (
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/households"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/properties"
)

// Space-heat demand baselines. Zone heat-loss coefficients dominate floor
// area, which dominates the fixed default.
const (
	kwhPerWattPerKelvin = 35.0    // annual kWh per W/K of zone heat loss
	kwhPerSquareMetre   = 90.0    // annual kWh per m2 of floor area
	defaultAnnualHeat   = 12000.0 // annual kWh when nothing is known
)

// DHW demand constants.
const (
	litresPerShower      = 45.0
	litresPerBath        = 80.0
	litresPerOccupantDay = 10.0
	coldInletTempC       = 10.0  // fixed cold-inlet assumption
	waterSpecificHeat    = 4.186 // kJ per litre-kelvin
)

// occupancyMultipliers scale space-heat demand by how much time the household
// spends at home. Unknown presets are neutral.
var occupancyMultipliers = map[string]float64{
	households.PresetWorkFromHome: 1.15,
	households.PresetAlwaysHome:   1.25,
	households.PresetOut9To5:      0.90,
	households.PresetShift:        1.00,
}

// annualSpaceHeatDemand computes the baseline annual space-heat demand in kWh
// and reports whether zone-level data was available (which narrows the
// confidence band).
func annualSpaceHeatDemand(p properties.PropertyModel) (kwh float64, zoneBased bool) {
	if p.HasZoneData() {
		var total float64
		for _, z := range p.Zones {
			if z.HeatLossWPerK > 0 {
				total += z.HeatLossWPerK
			}
		}
		return total * kwhPerWattPerKelvin, true
	}

	if p.FloorAreaM2 != nil && *p.FloorAreaM2 > 0 {
		return *p.FloorAreaM2 * kwhPerSquareMetre, false
	}

	return defaultAnnualHeat, false
}

// occupancyMultiplier returns the demand multiplier for a preset, 1.0 for
// anything unrecognised.
func occupancyMultiplier(preset string) float64 {
	if m, ok := occupancyMultipliers[preset]; ok {
		return m
	}
	return 1.0
}

// annualDHWDemand computes the annual domestic hot water demand in kWh from
// the household's draw profile. A target temperature at or below the cold
// inlet yields zero demand rather than a negative one.
func annualDHWDemand(p households.DHWProfile) float64 {
	litresPerDay := p.ShowersPerDay*litresPerShower +
		(p.BathsPerWeek*litresPerBath)/7.0 +
		float64(p.Occupants)*litresPerOccupantDay

	tempDelta := p.TargetTempC - coldInletTempC
	if tempDelta < 0 {
		tempDelta = 0
	}

	kwhPerDay := litresPerDay * waterSpecificHeat * tempDelta / 3600.0
	return kwhPerDay * 365.0
}

// confidenceBand returns the demand confidence factors: tighter when the
// estimate came from zone-level heat-loss data.
func confidenceBand(zoneBased bool) ConfidenceBand {
	if zoneBased {
		return ConfidenceBand{Low: 0.88, High: 1.12}
	}
	return ConfidenceBand{Low: 0.75, High: 1.25}
}
