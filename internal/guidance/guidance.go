package guidance

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed guidance.yaml
var defaultYAML []byte

// ErrNoGuidance is returned when no fight-week bucket covers the requested day
var ErrNoGuidance = errors.New("no fight-week guidance for day")

// FightWeekDays is the number of days before the weigh-in covered by the table
const FightWeekDays = 7

// Range is an inclusive min/max reference range
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// String formats the range as "30" or "3-5"
func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.FormatFloat(r.Min, 'f', -1, 64)
	}
	return strconv.FormatFloat(r.Min, 'f', -1, 64) + "-" + strconv.FormatFloat(r.Max, 'f', -1, 64)
}

// FightWeekDay is one row of the fight-week taper table
type FightWeekDay struct {
	Label        string  `yaml:"label" json:"label"`
	MinDaysOut   int     `yaml:"min_days_out" json:"min_days_out"`
	MaxDaysOut   int     `yaml:"max_days_out" json:"max_days_out"`
	Carbs        string  `yaml:"carbs" json:"carbs"`
	Fibre        string  `yaml:"fibre" json:"fibre"`
	Salt         string  `yaml:"salt" json:"salt"`
	Water        string  `yaml:"water" json:"water"`
	WaterMlPerKg float64 `yaml:"water_ml_per_kg" json:"water_ml_per_kg,omitempty"`
	Why          string  `yaml:"why" json:"why"`
}

// Covers reports whether the row applies to the given number of days out
func (d FightWeekDay) Covers(daysOut int) bool {
	return daysOut >= d.MinDaysOut && daysOut <= d.MaxDaysOut
}

// WaterLitres converts a per-kg water target to litres for a body weight.
// Rows without a weight-based target return 0.
func (d FightWeekDay) WaterLitres(weightKg float64) float64 {
	return d.WaterMlPerKg * weightKg / 1000
}

// FightWeekPlan is the fight-week checklist attached to a plan
type FightWeekPlan struct {
	Days        []FightWeekDay `json:"days"`
	Rehydration []string       `json:"rehydration"`
	Supplements []string       `json:"supplements"`
	Disclaimer  string         `json:"disclaimer"`
}

// Tables holds all static guidance
type Tables struct {
	DailyFibreG Range          `yaml:"daily_fibre_g"`
	DailySaltG  Range          `yaml:"daily_salt_g"`
	FightWeek   []FightWeekDay `yaml:"fight_week"`
	Rehydration []string       `yaml:"rehydration"`
	Supplements []string       `yaml:"supplements"`
	Disclaimer  string         `yaml:"disclaimer"`
}

var defaultTables = mustParse(defaultYAML)

// Parse decodes guidance tables and checks that the fight-week rows cover
// every day from the weigh-in to a week out exactly once
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing guidance: %w", err)
	}

	if t.Disclaimer == "" {
		return nil, errors.New("guidance disclaimer is missing")
	}

	seen := make(map[int]string, FightWeekDays+1)
	for _, row := range t.FightWeek {
		if row.Why == "" {
			return nil, fmt.Errorf("fight-week row %q has no rationale", row.Label)
		}
		if row.MinDaysOut > row.MaxDaysOut {
			return nil, fmt.Errorf("fight-week row %q: min %d > max %d", row.Label, row.MinDaysOut, row.MaxDaysOut)
		}
		for d := row.MinDaysOut; d <= row.MaxDaysOut; d++ {
			if prev, ok := seen[d]; ok {
				return nil, fmt.Errorf("fight-week day %d covered by both %q and %q", d, prev, row.Label)
			}
			seen[d] = row.Label
		}
	}
	for d := 0; d <= FightWeekDays; d++ {
		if _, ok := seen[d]; !ok {
			return nil, fmt.Errorf("fight-week day %d has no guidance", d)
		}
	}

	// Furthest-out first, the order an athlete works through them
	sort.SliceStable(t.FightWeek, func(i, j int) bool {
		return t.FightWeek[i].MaxDaysOut > t.FightWeek[j].MaxDaysOut
	})

	return &t, nil
}

func mustParse(data []byte) *Tables {
	t, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the embedded guidance tables
func Default() *Tables {
	return defaultTables
}

// FightWeekPlan returns a copy of the fight-week checklist
func (t *Tables) FightWeekPlan() FightWeekPlan {
	return FightWeekPlan{
		Days:        append([]FightWeekDay(nil), t.FightWeek...),
		Rehydration: append([]string(nil), t.Rehydration...),
		Supplements: append([]string(nil), t.Supplements...),
		Disclaimer:  t.Disclaimer,
	}
}

// DayFor looks up the row covering daysOut
func (t *Tables) DayFor(daysOut int) (FightWeekDay, error) {
	for _, row := range t.FightWeek {
		if row.Covers(daysOut) {
			return row, nil
		}
	}
	return FightWeekDay{}, fmt.Errorf("%d days out: %w", daysOut, ErrNoGuidance)
}

// FightWeek returns the embedded fight-week checklist
func FightWeek() FightWeekPlan {
	return defaultTables.FightWeekPlan()
}

// FightWeekDayFor looks up the embedded fight-week row for daysOut
func FightWeekDayFor(daysOut int) (FightWeekDay, error) {
	return defaultTables.DayFor(daysOut)
}
