package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// shutdownTimeout bounds how long in-flight requests get after the context ends
const shutdownTimeout = 10 * time.Second

// Server exposes plan calculation over HTTP
type Server struct {
	logger         *slog.Logger
	now            func() time.Time
	registry       *prometheus.Registry
	metrics        *metrics
	allowedOrigins []string
}

// NewServer creates a server. now is injected for reproducible plans; nil
// means time.Now. An empty allowedOrigins list allows any origin.
func NewServer(logger *slog.Logger, now func() time.Time, allowedOrigins []string) *Server {
	if now == nil {
		now = time.Now
	}
	reg := prometheus.NewRegistry()
	return &Server{
		logger:         logger,
		now:            now,
		registry:       reg,
		metrics:        newMetrics(reg),
		allowedOrigins: allowedOrigins,
	}
}

// Handler returns the routed, CORS-wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	s.registerRoutes(router)

	origins := s.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{requestIDHeader},
	})
	return c.Handler(router)
}

/* ─── Routes ──────────────────────────────────────────────────────────── */

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	api.POST("/plan", s.postPlan)
	api.GET("/fight-week", s.getFightWeek)
	api.GET("/fight-week/:daysOut", s.getFightWeekDay)
	api.GET("/subscription", s.getSubscription)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
