package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fightcamp/internal/guidance"
	"fightcamp/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(logger, func() time.Time {
		return time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	}, nil).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func scenarioA() map[string]any {
	return map[string]any{
		"age":               25,
		"sex":               "male",
		"height_cm":         170,
		"current_weight_kg": 80,
		"target_weight_kg":  70,
		"fight_date":        "2026-03-16",
	}
}

/* ─── Plan ────────────────────────────────────────────────────────────── */

func TestPostPlan(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/api/plan", scenarioA())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		PlanID string `json:"plan_id"`
		Plan   struct {
			Timing struct {
				DaysRemaining int `json:"days_remaining"`
				CampWeeks     int `json:"camp_weeks"`
			} `json:"timing"`
			WaterCut struct {
				WaterCutKg       float64 `json:"water_cut_kg"`
				FightWeekStartKg float64 `json:"fight_week_start_kg"`
			} `json:"water_cut"`
			FatLossGoalKg float64 `json:"fat_loss_goal_kg"`
			LossWeeks     int     `json:"loss_weeks"`
			Weeks         []struct {
				Week      int     `json:"week"`
				LossKg    float64 `json:"loss_kg"`
				Calories  float64 `json:"calories_kcal"`
				FightWeek bool    `json:"fight_week"`
			} `json:"weeks"`
		} `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	_, err := uuid.Parse(resp.PlanID)
	assert.NoError(t, err, "plan_id should be a uuid")

	plan := resp.Plan
	assert.Equal(t, 70, plan.Timing.DaysRemaining)
	assert.Equal(t, 10, plan.Timing.CampWeeks)
	assert.InDelta(t, 2.1, plan.WaterCut.WaterCutKg, 1e-9)
	assert.InDelta(t, 74.2, plan.WaterCut.FightWeekStartKg, 1e-9)
	assert.InDelta(t, 5.8, plan.FatLossGoalKg, 1e-9)
	assert.Equal(t, 9, plan.LossWeeks)

	require.Len(t, plan.Weeks, 10)
	assert.InDelta(t, 5.8/9, plan.Weeks[0].LossKg, 1e-9)
	assert.InDelta(t, 1982.0, plan.Weeks[0].Calories, 0.5)
	assert.True(t, plan.Weeks[9].FightWeek)
	assert.Zero(t, plan.Weeks[9].LossKg)
}

func TestPostPlan_TodayOverride(t *testing.T) {
	h := newTestHandler(t)

	body := scenarioA()
	body["today"] = "2026-02-02"
	w := do(t, h, http.MethodPost, "/api/plan", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Plan struct {
			Timing struct {
				CampWeeks int `json:"camp_weeks"`
			} `json:"timing"`
		} `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Plan.Timing.CampWeeks)
}

func TestPostPlan_FightWeekMode(t *testing.T) {
	h := newTestHandler(t)

	body := scenarioA()
	body["today"] = "2026-03-14"
	body["reserve_fight_week"] = false
	body["fight_week_mode"] = true
	body["water_cut_pct"] = 0
	w := do(t, h, http.MethodPost, "/api/plan", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Plan struct {
			WaterCut struct {
				Percent float64 `json:"percent"`
			} `json:"water_cut"`
			Weeks []struct {
				Checklist    bool    `json:"checklist"`
				CaloriesKcal float64 `json:"calories_kcal"`
			} `json:"weeks"`
			FightWeekToday *guidance.FightWeekDay `json:"fight_week_today"`
		} `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Plan.Weeks, 1)
	assert.True(t, resp.Plan.Weeks[0].Checklist)
	assert.Zero(t, resp.Plan.Weeks[0].CaloriesKcal)
	assert.Zero(t, resp.Plan.WaterCut.Percent)
	require.NotNil(t, resp.Plan.FightWeekToday)
	assert.Equal(t, "2 days out", resp.Plan.FightWeekToday.Label)
	assert.NotEmpty(t, resp.Plan.FightWeekToday.Why)
}

func TestPostPlan_Errors(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(map[string]any)
		wantStatus int
		wantKind   string
	}{
		{
			name:       "fight date is today",
			modify:     func(b map[string]any) { b["fight_date"] = "2026-01-05" },
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "invalid_date",
		},
		{
			name:       "strict timing under four weeks",
			modify:     func(b map[string]any) { b["fight_date"] = "2026-01-26"; b["strict"] = true },
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "invalid_date",
		},
		{
			name:       "current equals target",
			modify:     func(b map[string]any) { b["target_weight_kg"] = 80 },
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "invalid_weight",
		},
		{
			name:       "no weeks left for loss",
			modify:     func(b map[string]any) { b["fight_date"] = "2026-01-08" },
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "insufficient_camp_length",
		},
		{
			name:       "age out of range",
			modify:     func(b map[string]any) { b["age"] = 5 },
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "invalid_profile",
		},
		{
			name:       "unknown sex",
			modify:     func(b map[string]any) { b["sex"] = "x" },
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "invalid_profile",
		},
		{
			name:       "water cut too large",
			modify:     func(b map[string]any) { b["water_cut_pct"] = 8 },
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "invalid_profile",
		},
		{
			name:       "unparseable fight date",
			modify:     func(b map[string]any) { b["fight_date"] = "16/03/2026" },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unparseable today",
			modify:     func(b map[string]any) { b["today"] = "yesterday" },
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)
			body := scenarioA()
			tt.modify(body)

			w := do(t, h, http.MethodPost, "/api/plan", body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
			assert.NotContains(t, resp, "plan")
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, resp["kind"])
			}
		})
	}
}

func TestPostPlan_MalformedBody(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodPost, "/api/plan", `{"age": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "invalid request body"}`, w.Body.String())
}

/* ─── Fight week ──────────────────────────────────────────────────────── */

func TestGetFightWeek(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodGet, "/api/fight-week", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var plan guidance.FightWeekPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.Equal(t, guidance.FightWeek(), plan)
}

func TestGetFightWeekDay(t *testing.T) {
	tests := []struct {
		path       string
		wantStatus int
		wantLabel  string
	}{
		{"/api/fight-week/2", http.StatusOK, "2 days out"},
		{"/api/fight-week/0", http.StatusOK, "Weigh-in day"},
		{"/api/fight-week/6", http.StatusOK, "5-7 days out"},
		{"/api/fight-week/8", http.StatusNotFound, ""},
		{"/api/fight-week/-1", http.StatusNotFound, ""},
		{"/api/fight-week/soon", http.StatusBadRequest, ""},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, h, http.MethodGet, tt.path, nil)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantLabel == "" {
				return
			}
			var day guidance.FightWeekDay
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
			assert.Equal(t, tt.wantLabel, day.Label)
		})
	}
}

func TestGetFightWeekDay_ScenarioD(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodGet, "/api/fight-week/2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var day guidance.FightWeekDay
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
	assert.Equal(t, "100 ml/kg body weight", day.Water)
	assert.Equal(t, "<10 g/day", day.Fibre)
	assert.Equal(t, "0.5-1 g/day", day.Salt)
}

/* ─── Subscription ────────────────────────────────────────────────────── */

func TestGetSubscription(t *testing.T) {
	tests := []struct {
		query      string
		wantStatus int
		wantPrice  int
	}{
		{"weeks=4", http.StatusOK, 20},
		{"weeks=10", http.StatusOK, 50},
		{"weeks=12", http.StatusOK, 60},
		{"weeks=3", http.StatusOK, 120},
		{"weeks=13", http.StatusOK, 120},
		{"weeks=0", http.StatusBadRequest, 0},
		{"weeks=ten", http.StatusBadRequest, 0},
		{"", http.StatusBadRequest, 0},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := do(t, h, http.MethodGet, "/api/subscription?"+tt.query, nil)
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp subscriptionResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantPrice, resp.PriceGBP)
		})
	}
}

/* ─── Ambient ─────────────────────────────────────────────────────────── */

func TestHealthz(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/healthz", nil)
	_, err := uuid.Parse(w.Header().Get(requestIDHeader))
	assert.NoError(t, err, "generated request id should be a uuid")

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(requestIDHeader), "valid incoming id should be kept")
}

func TestRequestLogIncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	h := NewServer(logging.New(&buf, true, slog.LevelInfo), nil, nil).Handler()

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, id)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
	assert.Contains(t, buf.String(), `"path":"/healthz"`)
}

func TestCORS(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	restricted := NewServer(logger, nil, []string{"https://camp.example"}).Handler()
	w = httptest.NewRecorder()
	restricted.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	h := newTestHandler(t)

	do(t, h, http.MethodPost, "/api/plan", scenarioA())
	bad := scenarioA()
	bad["target_weight_kg"] = 90
	do(t, h, http.MethodPost, "/api/plan", bad)

	w := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `fightcamp_plans_total{outcome="ok"} 1`)
	assert.Contains(t, body, `fightcamp_plans_total{outcome="invalid_weight"} 1`)
	assert.Contains(t, body, `fightcamp_plan_camp_weeks_count 1`)
	assert.Contains(t, body, `fightcamp_http_requests_total{method="POST",route="/api/plan",status="200"} 1`)
	assert.Contains(t, body, `fightcamp_http_requests_total{method="POST",route="/api/plan",status="422"} 1`)
}
