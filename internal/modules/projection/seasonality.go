package projection

// seasonalityWeights distributes annual space-heat demand across calendar
// months, UK-shaped and winter-weighted. The twelve weights sum to 1.0 so a
// year's monthly demands always add back up to the annual total.
//
// Domestic hot water is deliberately not seasonal: it is spread flat at
// annual/12 every month.
var seasonalityWeights = [12]float64{
	0.14, // Jan
	0.13, // Feb
	0.11, // Mar
	0.09, // Apr
	0.06, // May
	0.03, // Jun
	0.02, // Jul
	0.02, // Aug
	0.05, // Sep
	0.09, // Oct
	0.11, // Nov
	0.15, // Dec
}
