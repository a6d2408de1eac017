package nutrition

import (
	"fmt"
	"time"

	"fightcamp/internal/guidance"
)

// WeeklyTarget is the full set of targets for one camp week
type WeeklyTarget struct {
	Week           int     `json:"week"`
	StartWeightKg  float64 `json:"start_weight_kg"`
	TargetWeightKg float64 `json:"target_weight_kg"`
	LossKg         float64 `json:"loss_kg"`

	EnergyBalance
	Macros

	Fibre guidance.Range `json:"fibre_g"`
	Salt  guidance.Range `json:"salt_g"`

	// FightWeek marks the final camp week
	FightWeek bool `json:"fight_week"`
	// Checklist is set in fight-week mode on the final week. Its energy,
	// macro, fibre and salt fields stay zero and PlanResult.FightWeek
	// holds the day-by-day guidance instead.
	Checklist bool `json:"checklist"`
}

// PlanResult is the complete output of ComputePlan
type PlanResult struct {
	Today     time.Time  `json:"today"`
	FightDate time.Time  `json:"fight_date"`
	Timing    CampTiming `json:"timing"`
	WaterCut  WaterCut   `json:"water_cut"`

	FatLossGoalKg float64 `json:"fat_loss_goal_kg"`
	LossWeeks     int     `json:"loss_weeks"`

	Weeks     []WeeklyTarget          `json:"weeks"`
	FightWeek *guidance.FightWeekPlan `json:"fight_week,omitempty"`
	// FightWeekToday is the fight-week row for the current day, set in fight-week
	// mode once the fight is within guidance.FightWeekDays
	FightWeekToday *guidance.FightWeekDay `json:"fight_week_today,omitempty"`
	Warnings       []string               `json:"warnings,omitempty"`
}

// TotalLossKg sums the planned loss across all weeks
func (r PlanResult) TotalLossKg() float64 {
	var total float64
	for _, w := range r.Weeks {
		total += w.LossKg
	}
	return total
}

// ComputePlan runs the full pipeline: camp timing, weight-cut trajectory,
// energy balance and macro split. All inputs are validated before any
// calculation so an error never comes with a partial plan.
func ComputePlan(profile AthleteProfile, inputs CampInputs, today time.Time) (PlanResult, error) {
	if err := profile.Validate(); err != nil {
		return PlanResult{}, err
	}
	if err := inputs.validate(); err != nil {
		return PlanResult{}, err
	}
	timing, err := CampTimingFor(today, inputs.FightDate, inputs.StrictTiming)
	if err != nil {
		return PlanResult{}, err
	}
	cut, err := WaterCutFor(profile.CurrentWeightKg, profile.TargetWeightKg, inputs.WaterCutPct)
	if err != nil {
		return PlanResult{}, err
	}
	lossWeeks, err := LossWeeks(timing.CampWeeks, inputs.ReserveFightWeek)
	if err != nil {
		return PlanResult{}, err
	}
	dist, err := NewDistributor(inputs.Distribution, inputs.RampGrowth)
	if err != nil {
		return PlanResult{}, err
	}

	result := PlanResult{
		Today:         civilDate(today),
		FightDate:     civilDate(inputs.FightDate),
		Timing:        timing,
		WaterCut:      cut,
		FatLossGoalKg: cut.FatLossGoal(profile.CurrentWeightKg),
		LossWeeks:     lossWeeks,
	}

	if profile.HeightCM == 0 {
		result.warn("height not set, using %.0fcm for BMR", DefaultHeightCM)
	}
	if result.FatLossGoalKg == 0 {
		result.warn("water cut alone reaches %.1fkg; no fat loss planned before fight week", cut.FightWeekStartKg)
	}

	shares := dist.Distribute(result.FatLossGoalKg, lossWeeks)
	if inputs.ReserveFightWeek {
		shares = append(shares, 0)
	}

	tables := guidance.Default()
	for _, tw := range Trajectory(profile.CurrentWeightKg, shares) {
		week := WeeklyTarget{
			Week:           tw.Week,
			StartWeightKg:  tw.StartKg,
			TargetWeightKg: tw.EndKg,
			LossKg:         tw.LossKg,
			FightWeek:      tw.Week == timing.CampWeeks,
		}

		if tw.LossKg > tw.StartKg*AggressiveLossPct/100 {
			result.warn("week %d: %.2fkg is more than %.0f%% of body weight", tw.Week, tw.LossKg, AggressiveLossPct)
		}

		if week.FightWeek && inputs.FightWeekMode {
			week.Checklist = true
			result.Weeks = append(result.Weeks, week)
			continue
		}

		energy := DailyEnergy(tw.EndKg, profile, inputs.Training, tw.LossKg)
		macros := SplitMacros(tw.EndKg, energy.CaloriesKcal, profile.Sex)
		week.EnergyBalance = energy
		week.Macros = macros
		week.Fibre = tables.DailyFibreG
		week.Salt = tables.DailySaltG

		if energy.Clamped {
			result.warn("week %d: calories raised to BMR (%.0f kcal); deficit not fully met", tw.Week, energy.BMR)
		}
		if macros.Floored {
			result.warn("week %d: calorie budget below protein and fat targets; carbs set to 0", tw.Week)
		}

		result.Weeks = append(result.Weeks, week)
	}

	if inputs.FightWeekMode {
		plan := tables.FightWeekPlan()
		result.FightWeek = &plan
		if timing.DaysRemaining <= guidance.FightWeekDays {
			day, err := tables.DayFor(timing.DaysRemaining)
			if err != nil {
				return PlanResult{}, err
			}
			result.FightWeekToday = &day
		}
	}

	return result, nil
}

func (r *PlanResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
