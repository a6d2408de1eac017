package nutrition

import (
	"fmt"
)

// WaterCut describes the acute water loss planned for fight week
type WaterCut struct {
	Percent float64 `json:"percent"`
	// ReferenceKg is the weight the percentage is applied to (the target weight)
	ReferenceKg      float64 `json:"reference_kg"`
	WaterCutKg       float64 `json:"water_cut_kg"`
	FightWeekStartKg float64 `json:"fight_week_start_kg"`
}

// WaterCutFor computes the water cut and the weight to reach before fight week.
// The fight-week start weight carries a 2x buffer over the planned water loss.
func WaterCutFor(currentKg, targetKg, pct float64) (WaterCut, error) {
	if targetKg <= 0 || currentKg <= 0 {
		return WaterCut{}, fmt.Errorf("weights must be positive (current %.1fkg, target %.1fkg): %w",
			currentKg, targetKg, ErrInvalidWeight)
	}
	if currentKg <= targetKg {
		return WaterCut{}, fmt.Errorf("current %.1fkg must exceed target %.1fkg: %w",
			currentKg, targetKg, ErrInvalidWeight)
	}
	if pct < 0 || pct > MaxWaterCutPct {
		return WaterCut{}, fmt.Errorf("water cut %.1f%% outside 0-%.0f%%: %w", pct, MaxWaterCutPct, ErrInvalidProfile)
	}

	waterKg := pct / 100 * targetKg
	return WaterCut{
		Percent:          pct,
		ReferenceKg:      targetKg,
		WaterCutKg:       waterKg,
		FightWeekStartKg: targetKg + 2*waterKg,
	}, nil
}

// FatLossGoal is the loss needed to reach the fight-week start weight.
// Never negative: when the water cut alone covers the gap there is nothing to lose.
func (w WaterCut) FatLossGoal(currentKg float64) float64 {
	goal := currentKg - w.FightWeekStartKg
	if goal < 0 {
		return 0
	}
	return goal
}

// LossWeeks returns the number of weeks available for gradual loss
func LossWeeks(campWeeks int, reserveFightWeek bool) (int, error) {
	n := campWeeks
	if reserveFightWeek {
		n--
	}
	if n <= 0 {
		return 0, fmt.Errorf("%d camp week(s) leaves no weeks for gradual loss: %w", campWeeks, ErrInsufficientCampLength)
	}
	return n, nil
}

// TrajectoryWeek is one week of the projected weight curve
type TrajectoryWeek struct {
	Week    int     `json:"week"`
	StartKg float64 `json:"start_kg"`
	EndKg   float64 `json:"end_kg"`
	LossKg  float64 `json:"loss_kg"`
}

// Trajectory walks the weekly loss shares down from the current weight
func Trajectory(currentKg float64, shares []float64) []TrajectoryWeek {
	weeks := make([]TrajectoryWeek, len(shares))
	w := currentKg
	for i, loss := range shares {
		weeks[i] = TrajectoryWeek{
			Week:    i + 1,
			StartKg: w,
			EndKg:   w - loss,
			LossKg:  loss,
		}
		w -= loss
	}
	return weeks
}
