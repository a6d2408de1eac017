package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests  *prometheus.CounterVec
	plans     *prometheus.CounterVec
	campWeeks prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fightcamp",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fightcamp",
			Name:      "plans_total",
			Help:      "Plan calculations by outcome (ok or error kind).",
		}, []string{"outcome"}),
		campWeeks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fightcamp",
			Name:      "plan_camp_weeks",
			Help:      "Camp length in weeks of successfully computed plans.",
			Buckets:   []float64{2, 4, 6, 8, 10, 12, 16, 20, 26},
		}),
	}
	reg.MustRegister(m.requests, m.plans, m.campWeeks)
	return m
}
