package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"fightcamp/internal/api"
	"fightcamp/internal/config"
	"fightcamp/internal/logging"
	"fightcamp/internal/service"
	"fightcamp/internal/tui"
)

type options struct {
	json       bool
	text       bool
	serve      bool
	addr       string
	today      string
	fightWeek  bool
	configPath string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var opts options
	pflag.BoolVar(&opts.json, "json", false, "print the plan as JSON and exit")
	pflag.BoolVar(&opts.text, "text", false, "print the plain-text plan and exit")
	pflag.BoolVar(&opts.serve, "serve", false, "start the HTTP API instead of the TUI")
	pflag.StringVar(&opts.addr, "addr", "", "HTTP listen address (default $FIGHTCAMP_ADDR or config server.addr)")
	pflag.StringVar(&opts.today, "today", "", "calculate as if today were `YYYY-MM-DD`")
	pflag.BoolVar(&opts.fightWeek, "fight-week", false, "force fight-week mode")
	pflag.StringVar(&opts.configPath, "config", "", "config file path (default ~/.fightcamp/config.json)")
	pflag.Parse()

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	now := time.Now
	if opts.today != "" {
		today, err := time.Parse(time.DateOnly, opts.today)
		if err != nil {
			return fmt.Errorf("--today must be YYYY-MM-DD: %w", err)
		}
		now = func() time.Time { return today }
	}

	if opts.serve {
		return serve(opts, now)
	}

	// Load configuration
	cfg, err := loadConfig(opts.configPath)
	if errors.Is(err, config.ErrNoConfig) && opts.configPath == "" {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("Fill in your athlete details and the fight date (YYYY-MM-DD).")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Println("Please edit the config file and try again.")
		return nil
	}
	if opts.fightWeek {
		cfg.Camp.FightWeekMode = true
	}

	planSvc := service.NewPlanService(cfg, now)

	switch {
	case opts.json:
		data, err := planSvc.BuildPlan()
		if err != nil {
			return fmt.Errorf("building plan: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(data.Result)

	case opts.text:
		data, err := planSvc.BuildPlan()
		if err != nil {
			return fmt.Errorf("building plan: %w", err)
		}
		fmt.Print(service.PlanText(data))
		return nil
	}

	exportDir, err := config.GetConfigDir()
	if err != nil {
		return fmt.Errorf("getting export dir: %w", err)
	}

	// Launch TUI
	app := tui.NewApp(planSvc, exportDir)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// serve runs the HTTP API until interrupted. A missing config file is fine
// here since every request carries its own athlete and camp.
func serve(opts options, now func() time.Time) error {
	cfg, err := loadConfig(opts.configPath)
	if errors.Is(err, config.ErrNoConfig) {
		defaults := config.DefaultConfig()
		cfg = &defaults
	} else if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv()
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}

	gin.SetMode(gin.ReleaseMode)
	logger := logging.New(os.Stderr, true, slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(logger, now, cfg.Server.AllowedOrigins)
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}
