package nutrition

// Energy and conversion constants
const (
	KcalPerKgBodyFat = 7700.0
	DaysPerWeek      = 7

	KcalPerGramProtein = 4.0
	KcalPerGramCarb    = 4.0
	KcalPerGramFat     = 9.0
)

// Macro ratios (grams per kg of body weight)
const (
	ProteinPerKgMale   = 2.2
	ProteinPerKgFemale = 2.0
	FatPerKg           = 1.0
)

// Input bounds
const (
	MinAge = 10
	MaxAge = 80

	DefaultHeightCM = 170.0
	MinHeightCM     = 120.0
	MaxHeightCM     = 230.0

	MaxWaterCutPct = 5.0

	// StrictMinCampDays is the shortest camp accepted in strict timing mode
	StrictMinCampDays = 28

	// AggressiveLossPct flags weekly losses above this share of body weight
	AggressiveLossPct = 1.0
)
