package nutrition

// BMR calculates basal metabolic rate with the Mifflin-St Jeor equation
// BMR = 10*weight(kg) + 6.25*height(cm) - 5*age + s, s = +5 male, -161 female
func BMR(weightKg, heightCM float64, age int, sex Sex) float64 {
	bmr := 10*weightKg + 6.25*heightCM - 5*float64(age)
	if sex == SexFemale {
		return bmr - 161
	}
	return bmr + 5
}

// EnergyBalance is the daily calorie budget for one camp week
type EnergyBalance struct {
	BMR             float64 `json:"bmr"`
	MaintenanceKcal float64 `json:"maintenance_kcal"`
	DeficitKcal     float64 `json:"deficit_kcal"`
	CaloriesKcal    float64 `json:"calories_kcal"`
	// Clamped is set when the deficit would have taken intake below BMR
	Clamped bool `json:"clamped"`
}

// DailyDeficit converts a weekly body-mass loss into a daily calorie deficit
func DailyDeficit(weeklyLossKg float64) float64 {
	return weeklyLossKg * KcalPerKgBodyFat / DaysPerWeek
}

// DailyEnergy computes the daily calorie target at a given body weight.
// Intake never drops below BMR.
func DailyEnergy(weightKg float64, p AthleteProfile, tier IntensityTier, weeklyLossKg float64) EnergyBalance {
	bmr := BMR(weightKg, p.Height(), p.Age, p.Sex)
	maintenance := bmr * tier.Multiplier()
	deficit := DailyDeficit(weeklyLossKg)

	e := EnergyBalance{
		BMR:             bmr,
		MaintenanceKcal: maintenance,
		DeficitKcal:     deficit,
		CaloriesKcal:    maintenance - deficit,
	}
	if e.CaloriesKcal < bmr {
		e.CaloriesKcal = bmr
		e.Clamped = true
	}
	return e
}
