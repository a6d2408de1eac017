package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fightcamp/internal/config"
	"fightcamp/internal/guidance"
	"fightcamp/internal/nutrition"
	"fightcamp/internal/service"
)

/* ─── Request / response types ────────────────────────────────────────── */

type planRequest struct {
	Age             int     `json:"age"`
	Sex             string  `json:"sex"`
	HeightCM        float64 `json:"height_cm"`
	CurrentWeightKg float64 `json:"current_weight_kg"`
	TargetWeightKg  float64 `json:"target_weight_kg"`

	FightDate        string   `json:"fight_date"`
	WaterCutPct      *float64 `json:"water_cut_pct"`
	Training         string   `json:"training"`
	Distribution     string   `json:"distribution"`
	RampGrowth       float64  `json:"ramp_growth"`
	ReserveFightWeek *bool    `json:"reserve_fight_week"`
	Strict           bool     `json:"strict"`
	FightWeekMode    bool     `json:"fight_week_mode"`

	// Today overrides the server clock (YYYY-MM-DD)
	Today string `json:"today"`
}

// toConfig maps the request onto the same config sections the CLI reads, so
// both front ends share defaults and string parsing
func (r planRequest) toConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Athlete = config.AthleteConfig{
		Age:             r.Age,
		Sex:             r.Sex,
		HeightCM:        r.HeightCM,
		CurrentWeightKg: r.CurrentWeightKg,
		TargetWeightKg:  r.TargetWeightKg,
	}
	cfg.Camp.FightDate = r.FightDate
	if r.WaterCutPct != nil {
		cfg.Camp.WaterCutPct = r.WaterCutPct
	}
	if r.Training != "" {
		cfg.Camp.Training = r.Training
	}
	if r.Distribution != "" {
		cfg.Camp.Distribution = r.Distribution
	}
	cfg.Camp.RampGrowth = r.RampGrowth
	if r.ReserveFightWeek != nil {
		cfg.Camp.ReserveFightWeek = r.ReserveFightWeek
	}
	cfg.Camp.StrictTiming = r.Strict
	cfg.Camp.FightWeekMode = r.FightWeekMode
	return cfg
}

type planResponse struct {
	PlanID string               `json:"plan_id"`
	Plan   nutrition.PlanResult `json:"plan"`
}

type subscriptionResponse struct {
	Weeks    int `json:"weeks"`
	PriceGBP int `json:"price_gbp"`
}

func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Plan ────────────────────────────────────────────────────────────── */

func (s *Server) postPlan(c *gin.Context) {
	ctx := c.Request.Context()

	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg := req.toConfig()
	today := s.now()
	if req.Today != "" {
		t, err := time.Parse(time.DateOnly, req.Today)
		if err != nil {
			apiError(c, http.StatusBadRequest, "today must be YYYY-MM-DD")
			return
		}
		today = t
	}

	profile, err := cfg.Profile()
	if err != nil {
		s.planFailed(c, err)
		return
	}
	inputs, err := cfg.CampInputs()
	if err != nil {
		s.planFailed(c, err)
		return
	}

	plan, err := nutrition.ComputePlan(profile, inputs, today)
	if err != nil {
		s.planFailed(c, err)
		return
	}

	id := uuid.NewString()
	s.metrics.plans.WithLabelValues("ok").Inc()
	s.metrics.campWeeks.Observe(float64(plan.Timing.CampWeeks))
	s.logger.InfoContext(ctx, "plan computed",
		slog.String("plan_id", id),
		slog.Int("camp_weeks", plan.Timing.CampWeeks),
		slog.Int("warnings", len(plan.Warnings)),
	)

	c.JSON(http.StatusOK, planResponse{PlanID: id, Plan: plan})
}

// planFailed reports a rejected plan. Domain errors are 422 with a stable
// kind; anything else (such as an unparseable fight date) is a bad request.
func (s *Server) planFailed(c *gin.Context, err error) {
	kind := nutrition.ErrorKind(err)
	if kind == "" {
		s.metrics.plans.WithLabelValues("bad_request").Inc()
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	s.metrics.plans.WithLabelValues(kind).Inc()
	s.logger.InfoContext(c.Request.Context(), "plan rejected",
		slog.String("kind", kind),
		slog.String("error", err.Error()),
	)
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": kind})
}

/* ─── Fight week ──────────────────────────────────────────────────────── */

func (s *Server) getFightWeek(c *gin.Context) {
	c.JSON(http.StatusOK, guidance.FightWeek())
}

func (s *Server) getFightWeekDay(c *gin.Context) {
	daysOut, err := strconv.Atoi(c.Param("daysOut"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "daysOut must be a whole number")
		return
	}

	day, err := guidance.FightWeekDayFor(daysOut)
	if errors.Is(err, guidance.ErrNoGuidance) {
		apiError(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, day)
}

/* ─── Subscription ────────────────────────────────────────────────────── */

func (s *Server) getSubscription(c *gin.Context) {
	weeks, err := strconv.Atoi(c.Query("weeks"))
	if err != nil || weeks < 1 {
		apiError(c, http.StatusBadRequest, "weeks must be a positive whole number")
		return
	}
	c.JSON(http.StatusOK, subscriptionResponse{
		Weeks:    weeks,
		PriceGBP: service.SubscriptionPrice(weeks),
	})
}
