package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"fightcamp/internal/nutrition"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Athlete = AthleteConfig{
		Age:             25,
		Sex:             "male",
		HeightCM:        170,
		CurrentWeightKg: 80,
		TargetWeightKg:  70,
	}
	cfg.Camp.FightDate = "2026-03-16"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test camp defaults
	if cfg.Camp.WaterCutPct == nil || *cfg.Camp.WaterCutPct != 3 {
		t.Errorf("Camp.WaterCutPct = %v, want 3", cfg.Camp.WaterCutPct)
	}
	if cfg.Camp.Training != "medium" {
		t.Errorf("Camp.Training = %q, want %q", cfg.Camp.Training, "medium")
	}
	if cfg.Camp.Distribution != "uniform" {
		t.Errorf("Camp.Distribution = %q, want %q", cfg.Camp.Distribution, "uniform")
	}
	if cfg.Camp.ReserveFightWeek == nil || !*cfg.Camp.ReserveFightWeek {
		t.Error("Camp.ReserveFightWeek should default to true")
	}

	// Test display defaults
	if cfg.Display.WeightUnit != "kg" {
		t.Errorf("Display.WeightUnit = %q, want %q", cfg.Display.WeightUnit, "kg")
	}

	// Fight date has no sensible default
	if cfg.Camp.FightDate != "" {
		t.Errorf("Camp.FightDate should be empty, got %q", cfg.Camp.FightDate)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(c *Config)
		expectError bool
		errContains string
	}{
		{
			name:        "valid config",
			modify:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "missing fight date",
			modify:      func(c *Config) { c.Camp.FightDate = "" },
			expectError: true,
			errContains: "fight_date",
		},
		{
			name:        "placeholder fight date",
			modify:      func(c *Config) { c.Camp.FightDate = "YYYY-MM-DD" },
			expectError: true,
			errContains: "fight_date",
		},
		{
			name:        "malformed fight date",
			modify:      func(c *Config) { c.Camp.FightDate = "16/03/2026" },
			expectError: true,
			errContains: "fight_date",
		},
		{
			name:        "missing weights",
			modify:      func(c *Config) { c.Athlete.CurrentWeightKg = 0 },
			expectError: true,
			errContains: "current_weight_kg",
		},
		{
			name:        "bad sex",
			modify:      func(c *Config) { c.Athlete.Sex = "x" },
			expectError: true,
			errContains: "athlete.sex",
		},
		{
			name:        "bad training tier",
			modify:      func(c *Config) { c.Camp.Training = "extreme" },
			expectError: true,
			errContains: "camp.training",
		},
		{
			name:        "bad distribution",
			modify:      func(c *Config) { c.Camp.Distribution = "random" },
			expectError: true,
			errContains: "camp.distribution",
		},
		{
			name:        "bad weight unit",
			modify:      func(c *Config) { c.Display.WeightUnit = "stone" },
			expectError: true,
			errContains: "weight_unit",
		},
		{
			name:        "pounds are fine",
			modify:      func(c *Config) { c.Display.WeightUnit = "lb" },
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestProfileAndCampInputs(t *testing.T) {
	cfg := validConfig()
	reserve := false
	cfg.Camp.ReserveFightWeek = &reserve
	cfg.Camp.Training = "High"
	cfg.Camp.Distribution = "progressive"
	cfg.Camp.FightWeekMode = true

	profile, err := cfg.Profile()
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	wantProfile := nutrition.AthleteProfile{
		Age:             25,
		Sex:             nutrition.SexMale,
		HeightCM:        170,
		CurrentWeightKg: 80,
		TargetWeightKg:  70,
	}
	if diff := cmp.Diff(wantProfile, profile); diff != "" {
		t.Errorf("Profile() mismatch (-want +got):\n%s", diff)
	}

	inputs, err := cfg.CampInputs()
	if err != nil {
		t.Fatalf("CampInputs() error: %v", err)
	}
	wantInputs := nutrition.CampInputs{
		FightDate:        time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		WaterCutPct:      3,
		Training:         nutrition.TierHigh,
		Distribution:     nutrition.DistributeProgressive,
		RampGrowth:       1,
		ReserveFightWeek: false,
		FightWeekMode:    true,
	}
	if diff := cmp.Diff(wantInputs, inputs); diff != "" {
		t.Errorf("CampInputs() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.json"))
		if !errors.Is(err, ErrNoConfig) {
			t.Errorf("LoadFile() error = %v, want ErrNoConfig", err)
		}
	})

	t.Run("applies defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.json")
		data := `{"athlete": {"age": 30, "sex": "female", "current_weight_kg": 60, "target_weight_kg": 56},
			"camp": {"fight_date": "2026-05-01", "water_cut_pct": 2}}`
		if err := os.WriteFile(path, []byte(data), 0600); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error: %v", err)
		}
		if cfg.Camp.Training != "medium" {
			t.Errorf("Camp.Training = %q, want default %q", cfg.Camp.Training, "medium")
		}
		if cfg.Camp.ReserveFightWeek == nil || !*cfg.Camp.ReserveFightWeek {
			t.Error("Camp.ReserveFightWeek should default to true")
		}
		if cfg.Camp.WaterCutPct == nil || *cfg.Camp.WaterCutPct != 2 {
			t.Errorf("Camp.WaterCutPct = %v, want 2", cfg.Camp.WaterCutPct)
		}
		if cfg.Display.WeightUnit != "kg" {
			t.Errorf("Display.WeightUnit = %q, want %q", cfg.Display.WeightUnit, "kg")
		}
	})

	t.Run("water cut", func(t *testing.T) {
		tests := []struct {
			name string
			camp string
			want float64
		}{
			{name: "missing uses default", camp: `{"fight_date": "2026-05-01"}`, want: 3},
			{name: "explicit zero kept", camp: `{"fight_date": "2026-05-01", "water_cut_pct": 0}`, want: 0},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := filepath.Join(dir, "water.json")
				if err := os.WriteFile(path, []byte(`{"camp": `+tt.camp+`}`), 0600); err != nil {
					t.Fatal(err)
				}

				cfg, err := LoadFile(path)
				if err != nil {
					t.Fatalf("LoadFile() error: %v", err)
				}
				inputs, err := cfg.CampInputs()
				if err != nil {
					t.Fatalf("CampInputs() error: %v", err)
				}
				if inputs.WaterCutPct != tt.want {
					t.Errorf("WaterCutPct = %v, want %v", inputs.WaterCutPct, tt.want)
				}
			})
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte("{"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(path); err == nil || errors.Is(err, ErrNoConfig) {
			t.Errorf("LoadFile() error = %v, want parse error", err)
		}
	})
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("FIGHTCAMP_HOME", t.TempDir())

	if _, err := Load(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("Load() before save error = %v, want ErrNoConfig", err)
	}

	cfg := validConfig()
	if err := Save(&cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(cfg, *loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	// CreateExample never overwrites an existing file
	if err := CreateExample(); err != nil {
		t.Fatalf("CreateExample() error: %v", err)
	}
	again, _ := Load()
	if again.Camp.FightDate != cfg.Camp.FightDate {
		t.Errorf("CreateExample() overwrote config: fight_date = %q", again.Camp.FightDate)
	}
}

func TestCreateExample(t *testing.T) {
	t.Setenv("FIGHTCAMP_HOME", t.TempDir())

	if err := CreateExample(); err != nil {
		t.Fatalf("CreateExample() error: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	// The example needs a real fight date before it is usable
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "fight_date") {
		t.Errorf("Validate() on example = %v, want fight_date error", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FIGHTCAMP_ADDR", ":9999")
	t.Setenv("FIGHTCAMP_ALLOWED_ORIGINS", "http://localhost:3000, https://camp.example.com,")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9999")
	}
	want := []string{"http://localhost:3000", "https://camp.example.com"}
	if diff := cmp.Diff(want, cfg.Server.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
}
