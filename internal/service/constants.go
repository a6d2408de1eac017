package service

const (
	// Unit conversions
	PoundsPerKg = 2.20462

	// Subscription pricing (GBP)
	PricePerWeekGBP    = 5
	FlatPriceGBP       = 120
	MinPricedCampWeeks = 4
	MaxPricedCampWeeks = 12

	// Date display
	DateLayout = "Mon 02 Jan 2006"
)
