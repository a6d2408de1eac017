package nutrition

import (
	"fmt"
	"strings"
	"time"
)

// Sex selects the BMR constant and protein ratio
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex accepts "male"/"female" (and "m"/"f") case-insensitively
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return SexMale, nil
	case "female", "f":
		return SexFemale, nil
	}
	return "", fmt.Errorf("sex %q: %w", s, ErrInvalidProfile)
}

// IntensityTier is the athlete's self-reported training load
type IntensityTier string

const (
	TierLow    IntensityTier = "low"
	TierMedium IntensityTier = "medium"
	TierHigh   IntensityTier = "high"
)

// Activity multipliers applied to BMR for maintenance calories
var tierMultipliers = map[IntensityTier]float64{
	TierLow:    1.375,
	TierMedium: 1.55,
	TierHigh:   1.75,
}

// Reference carbohydrate intake (g/kg) per tier. Informational only;
// planned carbs come from the calorie residual.
var tierCarbsPerKg = map[IntensityTier]float64{
	TierLow:    2.5,
	TierMedium: 2.75,
	TierHigh:   3.0,
}

// ParseIntensityTier accepts low/medium/high case-insensitively
func ParseIntensityTier(s string) (IntensityTier, error) {
	tier := IntensityTier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tierMultipliers[tier]; !ok {
		return "", fmt.Errorf("training tier %q: %w", s, ErrInvalidProfile)
	}
	return tier, nil
}

// Multiplier returns the BMR activity multiplier for the tier
func (t IntensityTier) Multiplier() float64 {
	return tierMultipliers[t]
}

// CarbsPerKg returns the reference carbohydrate intake for the tier
func (t IntensityTier) CarbsPerKg() float64 {
	return tierCarbsPerKg[t]
}

// AthleteProfile holds the athlete's biometrics
type AthleteProfile struct {
	Age             int     `json:"age"`
	Sex             Sex     `json:"sex"`
	HeightCM        float64 `json:"height_cm,omitempty"` // 0 means DefaultHeightCM
	CurrentWeightKg float64 `json:"current_weight_kg"`
	TargetWeightKg  float64 `json:"target_weight_kg"`
}

// Height returns the profile height, falling back to DefaultHeightCM
func (p AthleteProfile) Height() float64 {
	if p.HeightCM == 0 {
		return DefaultHeightCM
	}
	return p.HeightCM
}

// Validate checks age, sex and height ranges. Weights are checked by
// WaterCutFor so that the weight error stays distinct.
func (p AthleteProfile) Validate() error {
	if p.Age < MinAge || p.Age > MaxAge {
		return fmt.Errorf("age %d outside %d-%d: %w", p.Age, MinAge, MaxAge, ErrInvalidProfile)
	}
	if p.Sex != SexMale && p.Sex != SexFemale {
		return fmt.Errorf("sex %q: %w", p.Sex, ErrInvalidProfile)
	}
	if p.HeightCM != 0 && (p.HeightCM < MinHeightCM || p.HeightCM > MaxHeightCM) {
		return fmt.Errorf("height %.0fcm outside %.0f-%.0f: %w", p.HeightCM, MinHeightCM, MaxHeightCM, ErrInvalidProfile)
	}
	return nil
}

// CampInputs holds the camp parameters and calculation policies
type CampInputs struct {
	FightDate    time.Time          `json:"fight_date"`
	WaterCutPct  float64            `json:"water_cut_pct"`
	Training     IntensityTier      `json:"training"`
	Distribution DistributionPolicy `json:"distribution"`
	// RampGrowth is the per-week increase of the progressive ramp; 0 means 1
	RampGrowth float64 `json:"ramp_growth,omitempty"`
	// ReserveFightWeek keeps the final week free of fat loss for the water cut
	ReserveFightWeek bool `json:"reserve_fight_week"`
	// StrictTiming rejects camps shorter than StrictMinCampDays
	StrictTiming  bool `json:"strict_timing"`
	FightWeekMode bool `json:"fight_week_mode"`
}

// DefaultCampInputs returns inputs with the default policies set
func DefaultCampInputs(fightDate time.Time) CampInputs {
	return CampInputs{
		FightDate:        fightDate,
		WaterCutPct:      3,
		Training:         TierMedium,
		Distribution:     DistributeUniform,
		RampGrowth:       1,
		ReserveFightWeek: true,
	}
}

func (in CampInputs) validate() error {
	if in.WaterCutPct < 0 || in.WaterCutPct > MaxWaterCutPct {
		return fmt.Errorf("water cut %.1f%% outside 0-%.0f%%: %w", in.WaterCutPct, MaxWaterCutPct, ErrInvalidProfile)
	}
	if _, ok := tierMultipliers[in.Training]; !ok {
		return fmt.Errorf("training tier %q: %w", in.Training, ErrInvalidProfile)
	}
	if _, err := NewDistributor(in.Distribution, in.RampGrowth); err != nil {
		return err
	}
	return nil
}
