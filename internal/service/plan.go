package service

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"fightcamp/internal/config"
	"fightcamp/internal/guidance"
	"fightcamp/internal/nutrition"
)

// PlanService builds display-ready plans from the user's config
type PlanService struct {
	cfg   *config.Config
	now   func() time.Time
	units Units
}

// NewPlanService creates a new plan service. now is injected so that
// plans are reproducible; nil means time.Now.
func NewPlanService(cfg *config.Config, now func() time.Time) *PlanService {
	if now == nil {
		now = time.Now
	}
	return &PlanService{cfg: cfg, now: now, units: NewUnits(cfg.Display)}
}

// Units returns the unit formatter for the configured display unit
func (s *PlanService) Units() Units {
	return s.units
}

// OverviewDisplay is the headline summary of a plan
type OverviewDisplay struct {
	FightDate      string // "Mon 16 Mar 2026"
	FightIn        string // "3 weeks from now"
	DaysRemaining  int
	CampWeeks      int
	LossWeeks      int
	CurrentWeight  string
	TargetWeight   string
	WaterCut       string // "2.1 kg (3%)"
	FightWeekStart string
	FatLossGoal    string
	AvgWeeklyLoss  string
	Training       string // "Medium (x1.55)"
	Distribution   string
	Progress       float64 // 0..1
	PriceGBP       int
}

// WeekRow is one formatted row of the weekly plan table
type WeekRow struct {
	Label     string // "Week 1"
	Weight    string
	Loss      string
	Calories  string
	Protein   string
	Fat       string
	Carbs     string
	Fibre     string
	Salt      string
	FightWeek bool
	Checklist bool // macros replaced by the fight-week checklist
	Clamped   bool
}

// FightWeekRow is one formatted row of the fight-week checklist
type FightWeekRow struct {
	Label string
	Carbs string
	Fibre string
	Salt  string
	Water string // includes litres when the target is per kg
	Why   string
	Today bool // row covers the current number of days out
}

// ChartSeries holds per-week values for the trajectory charts
type ChartSeries struct {
	Weights  []float64 // end-of-week weight in display units
	Calories []float64
}

// PlanData contains all data needed for the plan screens and text export
type PlanData struct {
	Result      nutrition.PlanResult
	Overview    OverviewDisplay
	Weeks       []WeekRow
	FightWeek   []FightWeekRow
	Rehydration []string
	Supplements []string
	Warnings    []string
	Chart       ChartSeries
	WeightLabel string
	DailyFibre  string // "30g"
	DailySalt   string // "3-5g"
	Disclaimer  string
}

// BuildPlan runs the calculation for the configured athlete and camp
func (s *PlanService) BuildPlan() (*PlanData, error) {
	profile, err := s.cfg.Profile()
	if err != nil {
		return nil, fmt.Errorf("reading athlete config: %w", err)
	}
	inputs, err := s.cfg.CampInputs()
	if err != nil {
		return nil, fmt.Errorf("reading camp config: %w", err)
	}
	return s.BuildPlanFor(profile, inputs)
}

// BuildPlanFor runs the calculation for explicit inputs
func (s *PlanService) BuildPlanFor(profile nutrition.AthleteProfile, inputs nutrition.CampInputs) (*PlanData, error) {
	result, err := nutrition.ComputePlan(profile, inputs, s.now())
	if err != nil {
		return nil, err
	}
	return NewPlanData(result, profile, inputs, s.units), nil
}

// NewPlanData formats a computed plan for display
func NewPlanData(result nutrition.PlanResult, profile nutrition.AthleteProfile, inputs nutrition.CampInputs, units Units) *PlanData {
	tables := guidance.Default()
	data := &PlanData{
		Result:      result,
		Warnings:    result.Warnings,
		WeightLabel: units.WeightLabel(),
		DailyFibre:  tables.DailyFibreG.String() + "g",
		DailySalt:   tables.DailySaltG.String() + "g",
	}

	avgLoss := 0.0
	if result.LossWeeks > 0 {
		avgLoss = result.FatLossGoalKg / float64(result.LossWeeks)
	}

	data.Overview = OverviewDisplay{
		FightDate:      result.FightDate.Format(DateLayout),
		FightIn:        humanize.RelTime(result.FightDate, result.Today, "ago", "from now"),
		DaysRemaining:  result.Timing.DaysRemaining,
		CampWeeks:      result.Timing.CampWeeks,
		LossWeeks:      result.LossWeeks,
		CurrentWeight:  units.FormatWeight(profile.CurrentWeightKg),
		TargetWeight:   units.FormatWeight(profile.TargetWeightKg),
		WaterCut:       fmt.Sprintf("%s (%g%%)", units.FormatWeight(result.WaterCut.WaterCutKg), result.WaterCut.Percent),
		FightWeekStart: units.FormatWeight(result.WaterCut.FightWeekStartKg),
		FatLossGoal:    units.FormatWeight(result.FatLossGoalKg),
		AvgWeeklyLoss:  units.FormatLoss(avgLoss),
		Training:       fmt.Sprintf("%s (x%g)", capitalizeFirst(string(inputs.Training)), inputs.Training.Multiplier()),
		Distribution:   capitalizeFirst(string(distributionOrDefault(inputs.Distribution))),
		Progress:       CampProgress(result.Timing),
		PriceGBP:       SubscriptionPrice(result.Timing.CampWeeks),
	}

	weights := make([]float64, 0, len(result.Weeks))
	for _, w := range result.Weeks {
		data.Weeks = append(data.Weeks, newWeekRow(w, units))
		weights = append(weights, w.TargetWeightKg)
		if !w.Checklist {
			data.Chart.Calories = append(data.Chart.Calories, w.CaloriesKcal)
		}
	}
	data.Chart.Weights = units.ConvertWeights(weights)

	// Fight-week rows are always available for the checklist screen; the
	// result only carries them when fight-week mode was requested
	fw := result.FightWeek
	if fw == nil {
		plan := tables.FightWeekPlan()
		fw = &plan
	}
	startKg := result.WaterCut.FightWeekStartKg
	for _, d := range fw.Days {
		row := newFightWeekRow(d, startKg, units)
		row.Today = d.Covers(result.Timing.DaysRemaining)
		data.FightWeek = append(data.FightWeek, row)
	}
	data.Rehydration = fw.Rehydration
	data.Supplements = fw.Supplements
	data.Disclaimer = fw.Disclaimer

	return data
}

func newWeekRow(w nutrition.WeeklyTarget, units Units) WeekRow {
	if w.Checklist {
		return WeekRow{
			Label:     fmt.Sprintf("Week %d", w.Week),
			Weight:    units.FormatWeightValue(w.TargetWeightKg),
			Loss:      units.FormatLoss(w.LossKg),
			Calories:  "-",
			Protein:   "-",
			Fat:       "-",
			Carbs:     "-",
			Fibre:     "-",
			Salt:      "-",
			FightWeek: w.FightWeek,
			Checklist: true,
		}
	}
	return WeekRow{
		Label:     fmt.Sprintf("Week %d", w.Week),
		Weight:    units.FormatWeightValue(w.TargetWeightKg),
		Loss:      units.FormatLoss(w.LossKg),
		Calories:  formatKcal(w.CaloriesKcal),
		Protein:   formatGrams(w.ProteinG),
		Fat:       formatGrams(w.FatG),
		Carbs:     formatGrams(w.CarbsG),
		Fibre:     w.Fibre.String() + "g",
		Salt:      w.Salt.String() + "g",
		FightWeek: w.FightWeek,
		Clamped:   w.Clamped,
	}
}

func newFightWeekRow(d guidance.FightWeekDay, weightKg float64, units Units) FightWeekRow {
	water := d.Water
	if d.WaterMlPerKg > 0 {
		water = fmt.Sprintf("%s (~%.1f L at %s)", d.Water, d.WaterLitres(weightKg), units.FormatWeight(weightKg))
	}
	return FightWeekRow{
		Label: d.Label,
		Carbs: d.Carbs,
		Fibre: d.Fibre,
		Salt:  d.Salt,
		Water: water,
		Why:   d.Why,
	}
}

// SubscriptionPrice returns the camp price in GBP: 4-12 week camps are
// charged per week, anything else at the flat rate
func SubscriptionPrice(campWeeks int) int {
	if campWeeks >= MinPricedCampWeeks && campWeeks <= MaxPricedCampWeeks {
		return campWeeks * PricePerWeekGBP
	}
	return FlatPriceGBP
}

// CampProgress returns how far into the current camp week block the athlete
// is, as a fraction in [0, 1]
func CampProgress(timing nutrition.CampTiming) float64 {
	total := float64(timing.CampWeeks * nutrition.DaysPerWeek)
	if total <= 0 {
		return 0
	}
	p := (total - float64(timing.DaysRemaining)) / total
	return math.Max(0, math.Min(1, p))
}

func distributionOrDefault(p nutrition.DistributionPolicy) nutrition.DistributionPolicy {
	if p == "" {
		return nutrition.DistributeUniform
	}
	return p
}

// formatKcal formats calories with thousands separators: "1,982 kcal"
func formatKcal(kcal float64) string {
	return humanize.Comma(int64(math.Round(kcal))) + " kcal"
}

// formatGrams formats a macro target: "175g"
func formatGrams(g float64) string {
	return fmt.Sprintf("%.0fg", g)
}

// capitalizeFirst capitalizes the first letter of a string
func capitalizeFirst(s string) string {
	if len(s) == 0 {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-32) + s[1:]
	}
	return s
}
