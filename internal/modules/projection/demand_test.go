package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/households"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/properties"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestAnnualSpaceHeatDemand_ZoneData(t *testing.T) {
	p := properties.PropertyModel{
		Zones: []properties.Zone{
			{Name: "ground", HeatLossWPerK: 120},
			{Name: "first", HeatLossWPerK: 80},
		},
	}

	kwh, zoneBased := annualSpaceHeatDemand(p)

	assert.True(t, zoneBased)
	assert.InDelta(t, 7000.0, kwh, 0.001) // 200 W/K * 35
}

func TestAnnualSpaceHeatDemand_ZonesTakePrecedenceOverFloorArea(t *testing.T) {
	p := properties.PropertyModel{
		Zones:       []properties.Zone{{Name: "whole house", HeatLossWPerK: 100}},
		FloorAreaM2: floatPtr(250),
	}

	kwh, zoneBased := annualSpaceHeatDemand(p)

	assert.True(t, zoneBased)
	assert.InDelta(t, 3500.0, kwh, 0.001)
}

func TestAnnualSpaceHeatDemand_NonPositiveZonesIgnored(t *testing.T) {
	// Zones without a usable coefficient don't count as zone data
	p := properties.PropertyModel{
		Zones:       []properties.Zone{{Name: "loft", HeatLossWPerK: 0}, {Name: "garage", HeatLossWPerK: -5}},
		FloorAreaM2: floatPtr(100),
	}

	kwh, zoneBased := annualSpaceHeatDemand(p)

	assert.False(t, zoneBased)
	assert.InDelta(t, 9000.0, kwh, 0.001) // falls back to 100 m2 * 90
}

func TestAnnualSpaceHeatDemand_FloorArea(t *testing.T) {
	p := properties.PropertyModel{FloorAreaM2: floatPtr(100)}

	kwh, zoneBased := annualSpaceHeatDemand(p)

	assert.False(t, zoneBased)
	assert.InDelta(t, 9000.0, kwh, 0.001)
}

func TestAnnualSpaceHeatDemand_Default(t *testing.T) {
	kwh, zoneBased := annualSpaceHeatDemand(properties.PropertyModel{})

	assert.False(t, zoneBased)
	assert.InDelta(t, 12000.0, kwh, 0.001)
}

func TestOccupancyMultiplier(t *testing.T) {
	tests := []struct {
		preset string
		want   float64
	}{
		{households.PresetWorkFromHome, 1.15},
		{households.PresetAlwaysHome, 1.25},
		{households.PresetOut9To5, 0.90},
		{households.PresetShift, 1.00},
		{"sabbatical", 1.00}, // unknown presets are neutral
		{"", 1.00},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, occupancyMultiplier(tt.preset), 0.001, "preset %q", tt.preset)
	}
}

func TestAnnualDHWDemand(t *testing.T) {
	p := households.DHWProfile{
		Occupants:     3,
		ShowersPerDay: 2,
		BathsPerWeek:  1,
		TargetTempC:   50,
	}

	// 2*45 + 80/7 + 3*10 = 131.43 l/day at a 40K lift
	kwh := annualDHWDemand(p)
	assert.InDelta(t, 2231.2, kwh, 0.1)
}

func TestAnnualDHWDemand_TargetBelowInletIsZero(t *testing.T) {
	p := households.DHWProfile{
		Occupants:     2,
		ShowersPerDay: 1,
		TargetTempC:   8, // below the 10C cold inlet
	}

	assert.Zero(t, annualDHWDemand(p))
}

func TestAnnualDHWDemand_NoDraw(t *testing.T) {
	assert.Zero(t, annualDHWDemand(households.DHWProfile{TargetTempC: 55}))
}

func TestConfidenceBand(t *testing.T) {
	zone := confidenceBand(true)
	assert.Equal(t, ConfidenceBand{Low: 0.88, High: 1.12}, zone)

	fallback := confidenceBand(false)
	assert.Equal(t, ConfidenceBand{Low: 0.75, High: 1.25}, fallback)

	// Zone-based estimates are strictly tighter
	assert.Greater(t, zone.Low, fallback.Low)
	assert.Less(t, zone.High, fallback.High)
}
