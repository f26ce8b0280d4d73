package handlers

import (
	"Almonium/internal/config"
	"Almonium/internal/middleware"
	"Almonium/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router

	signinLimiter *middleware.RateLimiter
}

// Close останавливает фоновые задачи хендлеров.
func (h *Handler) Close() {
	h.signinLimiter.Stop()
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	tokens middleware.TokenParser,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)
	signinLimiter := middleware.NewRateLimiter(config.SigninRPS, burstFor(config.SigninRPS))

	r := chi.NewRouter()

	r.Use(middleware.WithLogging)
	r.Use(metrics.Handler)
	r.Use(middleware.WithAuth(tokens))

	userHandler := NewUserHandler(userService, logger, config)

	// Auth routes
	r.Post("/api/auth/signup", userHandler.Register)
	r.With(signinLimiter.Handler).Post("/api/auth/signin", userHandler.Login)

	// User routes
	r.With(middleware.RequireAuth).Get("/api/users/me", userHandler.Me)

	r.Method("GET", "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return &Handler{Router: r, signinLimiter: signinLimiter}
}

func burstFor(rps float64) int {
	if rps < 1 {
		return 1
	}
	return int(rps)
}
