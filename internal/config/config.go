package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fightcamp/internal/nutrition"
)

// Config represents the application configuration
type Config struct {
	Athlete AthleteConfig `json:"athlete"`
	Camp    CampConfig    `json:"camp"`
	Display DisplayConfig `json:"display"`
	Server  ServerConfig  `json:"server"`
}

// AthleteConfig holds the athlete's biometrics
type AthleteConfig struct {
	Age             int     `json:"age"`
	Sex             string  `json:"sex"`
	HeightCM        float64 `json:"height_cm,omitempty"`
	CurrentWeightKg float64 `json:"current_weight_kg"`
	TargetWeightKg  float64 `json:"target_weight_kg"`
}

// CampConfig holds the fight date and plan policies
type CampConfig struct {
	FightDate string `json:"fight_date"` // YYYY-MM-DD
	// WaterCutPct is a pointer so an explicit 0 (no water cut) can be told
	// apart from a missing value, which defaults to 3
	WaterCutPct      *float64 `json:"water_cut_pct,omitempty"`
	Training         string   `json:"training"`
	Distribution     string   `json:"distribution"`
	RampGrowth       float64  `json:"ramp_growth,omitempty"`
	ReserveFightWeek *bool    `json:"reserve_fight_week,omitempty"`
	StrictTiming     bool     `json:"strict_timing"`
	FightWeekMode    bool     `json:"fight_week_mode"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	WeightUnit string `json:"weight_unit"`
}

// ServerConfig holds settings for --serve
type ServerConfig struct {
	Addr           string   `json:"addr"`
	AllowedOrigins []string `json:"allowed_origins,omitempty"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	reserve := true
	waterCut := 3.0
	return Config{
		Camp: CampConfig{
			WaterCutPct:      &waterCut,
			Training:         string(nutrition.TierMedium),
			Distribution:     string(nutrition.DistributeUniform),
			RampGrowth:       1,
			ReserveFightWeek: &reserve,
		},
		Display: DisplayConfig{
			WeightUnit: "kg",
		},
		Server: ServerConfig{
			Addr: "localhost:8090",
		},
	}
}

// Load reads the configuration from ~/.fightcamp/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from path and applies defaults
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Camp.WaterCutPct == nil {
		cfg.Camp.WaterCutPct = defaults.Camp.WaterCutPct
	}
	if cfg.Camp.Training == "" {
		cfg.Camp.Training = defaults.Camp.Training
	}
	if cfg.Camp.Distribution == "" {
		cfg.Camp.Distribution = defaults.Camp.Distribution
	}
	if cfg.Camp.RampGrowth == 0 {
		cfg.Camp.RampGrowth = defaults.Camp.RampGrowth
	}
	if cfg.Camp.ReserveFightWeek == nil {
		cfg.Camp.ReserveFightWeek = defaults.Camp.ReserveFightWeek
	}
	if cfg.Display.WeightUnit == "" {
		cfg.Display.WeightUnit = defaults.Display.WeightUnit
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.fightcamp/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Athlete = AthleteConfig{
		Age:             25,
		Sex:             "male",
		HeightCM:        170,
		CurrentWeightKg: 80,
		TargetWeightKg:  70,
	}
	example.Camp.FightDate = "YYYY-MM-DD"

	return Save(&example)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	if c.Camp.FightDate == "" || c.Camp.FightDate == "YYYY-MM-DD" {
		return errors.New("camp.fight_date is required (YYYY-MM-DD)")
	}
	if _, err := time.Parse(time.DateOnly, c.Camp.FightDate); err != nil {
		return fmt.Errorf("camp.fight_date must be YYYY-MM-DD, got %q", c.Camp.FightDate)
	}
	if c.Athlete.CurrentWeightKg <= 0 || c.Athlete.TargetWeightKg <= 0 {
		return errors.New("athlete.current_weight_kg and athlete.target_weight_kg are required")
	}
	if _, err := nutrition.ParseSex(c.Athlete.Sex); err != nil {
		return fmt.Errorf("athlete.sex must be \"male\" or \"female\", got %q", c.Athlete.Sex)
	}
	if c.Camp.Training != "" {
		if _, err := nutrition.ParseIntensityTier(c.Camp.Training); err != nil {
			return fmt.Errorf("camp.training must be \"low\", \"medium\" or \"high\", got %q", c.Camp.Training)
		}
	}
	if c.Camp.Distribution != "" {
		switch nutrition.DistributionPolicy(c.Camp.Distribution) {
		case nutrition.DistributeUniform, nutrition.DistributeProgressive:
		default:
			return fmt.Errorf("camp.distribution must be \"uniform\" or \"progressive\", got %q", c.Camp.Distribution)
		}
	}

	// Validate display units
	if c.Display.WeightUnit != "" && c.Display.WeightUnit != "kg" && c.Display.WeightUnit != "lb" {
		return fmt.Errorf("display.weight_unit must be \"kg\" or \"lb\", got %q", c.Display.WeightUnit)
	}

	return nil
}

// Profile converts the athlete section into a nutrition profile
func (c *Config) Profile() (nutrition.AthleteProfile, error) {
	sex, err := nutrition.ParseSex(c.Athlete.Sex)
	if err != nil {
		return nutrition.AthleteProfile{}, err
	}
	return nutrition.AthleteProfile{
		Age:             c.Athlete.Age,
		Sex:             sex,
		HeightCM:        c.Athlete.HeightCM,
		CurrentWeightKg: c.Athlete.CurrentWeightKg,
		TargetWeightKg:  c.Athlete.TargetWeightKg,
	}, nil
}

// CampInputs converts the camp section into nutrition inputs
func (c *Config) CampInputs() (nutrition.CampInputs, error) {
	fight, err := time.Parse(time.DateOnly, c.Camp.FightDate)
	if err != nil {
		return nutrition.CampInputs{}, fmt.Errorf("parsing camp.fight_date: %w", err)
	}

	inputs := nutrition.DefaultCampInputs(fight)
	if c.Camp.WaterCutPct != nil {
		inputs.WaterCutPct = *c.Camp.WaterCutPct
	}
	if c.Camp.Training != "" {
		tier, err := nutrition.ParseIntensityTier(c.Camp.Training)
		if err != nil {
			return nutrition.CampInputs{}, err
		}
		inputs.Training = tier
	}
	if c.Camp.Distribution != "" {
		inputs.Distribution = nutrition.DistributionPolicy(strings.ToLower(c.Camp.Distribution))
	}
	if c.Camp.RampGrowth != 0 {
		inputs.RampGrowth = c.Camp.RampGrowth
	}
	if c.Camp.ReserveFightWeek != nil {
		inputs.ReserveFightWeek = *c.Camp.ReserveFightWeek
	}
	inputs.StrictTiming = c.Camp.StrictTiming
	inputs.FightWeekMode = c.Camp.FightWeekMode

	return inputs, nil
}

// ApplyEnv overrides server settings from FIGHTCAMP_* environment variables
func (c *Config) ApplyEnv() {
	if addr := os.Getenv("FIGHTCAMP_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if origins := os.Getenv("FIGHTCAMP_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, o)
			}
		}
	}
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory.
// FIGHTCAMP_HOME overrides the default of ~/.fightcamp.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("FIGHTCAMP_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".fightcamp"), nil
}
