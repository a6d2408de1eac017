package service

import (
	"fmt"

	"fightcamp/internal/config"
)

// Units provides unit conversion and formatting based on user preferences
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// FormatWeight formats a weight in kg to the user's preferred unit
func (u Units) FormatWeight(kg float64) string {
	return fmt.Sprintf("%s %s", u.FormatWeightValue(kg), u.WeightLabel())
}

// FormatWeightValue returns just the numeric weight value (no unit label)
func (u Units) FormatWeightValue(kg float64) string {
	if u.IsPounds() {
		return fmt.Sprintf("%.1f", kg*PoundsPerKg)
	}
	return fmt.Sprintf("%.1f", kg)
}

// FormatLoss formats a weekly loss with two decimals, enough to tell
// 0.64 from 0.65 kg
func (u Units) FormatLoss(kg float64) string {
	if u.IsPounds() {
		return fmt.Sprintf("%.2f lb", kg*PoundsPerKg)
	}
	return fmt.Sprintf("%.2f kg", kg)
}

// ConvertWeights converts kg values for charts
func (u Units) ConvertWeights(kg []float64) []float64 {
	if !u.IsPounds() {
		return kg
	}
	converted := make([]float64, len(kg))
	for i, w := range kg {
		converted[i] = w * PoundsPerKg
	}
	return converted
}

// WeightLabel returns the short unit label ("kg" or "lb")
func (u Units) WeightLabel() string {
	if u.IsPounds() {
		return "lb"
	}
	return "kg"
}

// IsPounds returns true if weight unit is pounds
func (u Units) IsPounds() bool {
	return u.cfg.WeightUnit == "lb"
}
