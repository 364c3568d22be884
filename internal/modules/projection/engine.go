package projection

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/households"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/scenarios"
)

// Technology efficiency defaults and floors. COPs below 1.0 and gas
// efficiencies below their floor are clamped so that a bad override can never
// make a technology consume less input energy than it delivers.
const (
	defaultSpaceHeatCOP  = 3.0
	defaultDHWCOP        = 2.5
	defaultGasEfficiency = 0.85 // space heating
	gasEfficiencyFloor   = 0.65
	defaultDHWGasEff     = 0.80 // hot water fallback, fixed
	preheatElecShare     = 0.70 // preheat tank: fraction of DHW served electrically
	preheatGasEff        = 0.85 // preheat tank: efficiency of the gas remainder
)

// Project runs the projection engine over the given inputs.
//
// It is pure and total: no I/O, no shared state, and no input combination
// fails. Missing optional fields fall back to documented defaults, so the
// result is always fully populated. Safe to call concurrently and to memoize
// by input value.
func Project(in Inputs) Result {
	annualHeat, zoneBased := annualSpaceHeatDemand(in.Property)
	annualHeat *= occupancyMultiplier(in.Occupancy.Preset)
	annualDHW := annualDHWDemand(in.HotWater)
	band := confidenceBand(zoneBased)

	// Hot water has no seasonality: flat spread across the year
	monthlyDHW := annualDHW / 12.0

	monthly := make([]MonthlyProjection, 0, in.HorizonYears*12)
	yearly := make([]YearlyProjection, 0, in.HorizonYears)

	for offset := 0; offset < in.HorizonYears; offset++ {
		year := in.StartYear + offset

		gridIntensity := in.Assumptions.GridIntensityGPerKWh * decarbMultiplier(in.DecarbPath, year, in.StartYear)
		gasIntensity := in.Assumptions.GasIntensityGPerKWh

		// Tariffs arrive in pence per kWh / pence per day; convert to pounds
		elecRate := in.Assumptions.ElecPricePPerKWh / 100.0
		gasRate := in.Assumptions.GasPricePPerKWh / 100.0
		standingGBP := (deref(in.Assumptions.ElecStandingPPerDay) + deref(in.Assumptions.GasStandingPPerDay)) * 30.0 / 100.0

		yearStart := len(monthly)
		for m := 0; m < 12; m++ {
			monthHeat := annualHeat * seasonalityWeights[m]

			space := allocateSpaceHeat(monthHeat, in.Scenario.SpaceHeating)
			water := allocateHotWater(monthlyDHW, in.Scenario.HotWater, in.HotWater)

			totalElec := space.ElecKWh + water.ElecKWh
			totalGas := space.GasKWh + water.GasKWh
			cost := totalElec*elecRate + totalGas*gasRate + standingGBP
			carbonKg := (totalElec*gridIntensity + totalGas*gasIntensity) / 1000.0

			monthly = append(monthly, MonthlyProjection{
				Period:       time.Date(year, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC),
				SpaceHeating: roundBreakdown(space),
				HotWater:     roundBreakdown(water),
				ElecKWh:      round1(totalElec),
				GasKWh:       round1(totalGas),
				CostGBP:      round2(cost),
				CarbonKg:     round2(carbonKg),
				Confidence:   band,
			})
		}

		yearly = append(yearly, aggregateYear(year, monthly[yearStart:]))
	}

	return Result{
		Monthly: monthly,
		Yearly:  yearly,
		Summary: summarize(yearly, in.Scenario, in.Occupancy),
	}
}

// allocateSpaceHeat splits a month's space-heat demand equally across the
// scenario's space-heating technologies and converts each share to input
// energy. Demand is split 1/count regardless of capacity; downstream
// consumers depend on this exact tie-break. With no technologies listed the
// whole demand is served by gas at the default efficiency.
func allocateSpaceHeat(demandKWh float64, techs []scenarios.Technology) EndUseBreakdown {
	b := EndUseBreakdown{ByTechnology: make(map[string]float64)}

	if len(techs) == 0 {
		input := demandKWh / defaultGasEfficiency
		b.GasKWh = input
		b.ByTechnology[scenarios.TechGasBoiler] = input
		return b
	}

	share := demandKWh / float64(len(techs))
	for _, t := range techs {
		switch t.Type {
		case scenarios.TechHeatPump, scenarios.TechAirToAir:
			cop := defaultSpaceHeatCOP
			if t.SeasonalCOP != nil {
				cop = *t.SeasonalCOP
			}
			input := share / maxFloat(1.0, cop)
			b.ElecKWh += input
			b.ByTechnology[t.Type] += input

		default:
			// gas_boiler, plus anything unrecognised: never fail on unknown
			// config, allocate to gas
			eff := defaultGasEfficiency
			if t.SeasonalEfficiency != nil {
				eff = *t.SeasonalEfficiency
			}
			input := share / maxFloat(gasEfficiencyFloor, eff)
			b.GasKWh += input
			b.ByTechnology[t.Type] += input
		}
	}

	return b
}

// allocateHotWater converts a month's hot-water demand to input energy per
// technology entry. The preheat tank strategy only applies when the household
// has opted in on its DHW profile; a preheat entry without the opt-in falls
// through to the gas fallback like any other unrecognised technology. With no
// technologies listed the whole demand is served by gas.
func allocateHotWater(demandKWh float64, techs []scenarios.Technology, profile households.DHWProfile) EndUseBreakdown {
	b := EndUseBreakdown{ByTechnology: make(map[string]float64)}

	if len(techs) == 0 {
		input := demandKWh / defaultDHWGasEff
		b.GasKWh = input
		b.ByTechnology[scenarios.TechGasBoiler] = input
		return b
	}

	for _, t := range techs {
		switch {
		case t.Type == scenarios.TechPreheatTank && profile.PreheatEnabled:
			// Preheated tank: most of the demand shifts to electricity at
			// unit efficiency, the remainder stays on gas
			elecInput := demandKWh * preheatElecShare
			gasInput := demandKWh * (1.0 - preheatElecShare) / preheatGasEff
			b.ElecKWh += elecInput
			b.GasKWh += gasInput
			b.ByTechnology[t.Type] += elecInput + gasInput

		case t.Type == scenarios.TechElectric || t.Type == scenarios.TechHeatPump:
			cop := defaultDHWCOP
			if t.SeasonalCOP != nil {
				cop = *t.SeasonalCOP
			}
			input := demandKWh / maxFloat(1.0, cop)
			b.ElecKWh += input
			b.ByTechnology[t.Type] += input

		default:
			input := demandKWh / defaultDHWGasEff
			b.GasKWh += input
			b.ByTechnology[t.Type] += input
		}
	}

	return b
}

// aggregateYear sums the emitted (already rounded) monthly records for one
// calendar year. Months must be in calendar order so each yearly record
// covers exactly its own 12-month window.
func aggregateYear(year int, months []MonthlyProjection) YearlyProjection {
	elec := make([]float64, len(months))
	gas := make([]float64, len(months))
	cost := make([]float64, len(months))
	carbon := make([]float64, len(months))
	for i, m := range months {
		elec[i] = m.ElecKWh
		gas[i] = m.GasKWh
		cost[i] = m.CostGBP
		carbon[i] = m.CarbonKg
	}

	return YearlyProjection{
		Year:     year,
		ElecKWh:  math.Round(floats.Sum(elec)),
		GasKWh:   math.Round(floats.Sum(gas)),
		CostGBP:  round2(floats.Sum(cost)),
		CarbonKg: math.Round(floats.Sum(carbon)),
	}
}

// summarize condenses the yearly series into the comparison summary.
// year_10 falls back to the last available year on shorter horizons.
func summarize(yearly []YearlyProjection, scenario scenarios.Scenario, occupancy households.OccupancyProfile) Summary {
	s := Summary{
		DisruptionScore: 3,
		ComfortScore:    comfortScore(occupancy.ComfortPriority),
	}
	if scenario.DisruptionScore != nil {
		s.DisruptionScore = *scenario.DisruptionScore
	}

	if len(yearly) == 0 {
		return s
	}

	s.Year1CostGBP = yearly[0].CostGBP
	s.Year1CarbonKg = yearly[0].CarbonKg

	tenth := 9
	if tenth >= len(yearly) {
		tenth = len(yearly) - 1
	}
	s.Year10CostGBP = yearly[tenth].CostGBP
	s.Year10CarbonKg = yearly[tenth].CarbonKg

	return s
}

func comfortScore(priority string) int {
	switch priority {
	case households.PriorityComfort:
		return 5
	case households.PrioritySaver:
		return 3
	default:
		return 4
	}
}

// roundBreakdown rounds all energy figures in a breakdown to 1 decimal place
// so snapshot tests stay stable.
func roundBreakdown(b EndUseBreakdown) EndUseBreakdown {
	out := EndUseBreakdown{
		ByTechnology: make(map[string]float64, len(b.ByTechnology)),
		ElecKWh:      round1(b.ElecKWh),
		GasKWh:       round1(b.GasKWh),
	}
	for tech, kwh := range b.ByTechnology {
		out.ByTechnology[tech] = round1(kwh)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10.0) / 10.0
}

func round2(v float64) float64 {
	return math.Round(v*100.0) / 100.0
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
