package projection

// Grid decarbonization path identifiers. An unknown path id falls back to
// PathCentral; gas carbon intensity never decarbonizes.
const (
	PathCentral = "central"
	PathFast    = "fast"
	PathSlow    = "slow"
)

// decarbMultiplier returns the grid-intensity multiplier for a year on the
// given path. Each path decays linearly from 1.0 at the start year down to a
// floor it never crosses: central 4%/yr to 0.40, fast 6%/yr to 0.20, slow
// 2%/yr to 0.60.
func decarbMultiplier(path string, year, startYear int) float64 {
	offset := float64(year - startYear)
	if offset < 0 {
		offset = 0
	}

	switch path {
	case PathFast:
		return maxFloat(0.20, 1.00-0.06*offset)
	case PathSlow:
		return maxFloat(0.60, 1.00-0.02*offset)
	case PathCentral:
		return maxFloat(0.40, 1.00-0.04*offset)
	default:
		// Unknown path ids are configuration, not errors
		return maxFloat(0.40, 1.00-0.04*offset)
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
