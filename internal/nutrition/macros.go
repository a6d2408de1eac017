package nutrition

// Macros are daily macronutrient targets in grams
type Macros struct {
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
	// Floored is set when the calorie budget could not cover the protein and
	// fat targets and carbs were floored at zero
	Floored bool `json:"floored"`
}

// Kcal returns the energy content of the macros
func (m Macros) Kcal() float64 {
	return m.ProteinG*KcalPerGramProtein + m.FatG*KcalPerGramFat + m.CarbsG*KcalPerGramCarb
}

// ProteinPerKg returns the protein ratio for sex
func ProteinPerKg(sex Sex) float64 {
	if sex == SexFemale {
		return ProteinPerKgFemale
	}
	return ProteinPerKgMale
}

// SplitMacros fixes protein and fat per kg of body weight and fills the rest
// of the calorie budget with carbohydrate. The result always reconciles with
// calories: if protein and fat alone exceed the budget, carbs go to zero and
// fat (then protein) gives up the difference.
func SplitMacros(weightKg, calories float64, sex Sex) Macros {
	m := Macros{
		ProteinG: ProteinPerKg(sex) * weightKg,
		FatG:     FatPerKg * weightKg,
	}

	remaining := calories - m.ProteinG*KcalPerGramProtein - m.FatG*KcalPerGramFat
	if remaining >= 0 {
		m.CarbsG = remaining / KcalPerGramCarb
		return m
	}

	m.Floored = true
	m.FatG = (calories - m.ProteinG*KcalPerGramProtein) / KcalPerGramFat
	if m.FatG < 0 {
		m.FatG = 0
		m.ProteinG = calories / KcalPerGramProtein
	}
	return m
}
