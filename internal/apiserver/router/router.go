// Package router assembles the gin engine and registers all API routes.
package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/haven/internal/apiserver/handler"
	"github.com/kart-io/haven/pkg/auth/jwt"
	"github.com/kart-io/haven/pkg/middleware"
)

// Handlers carries the request handlers wired into the route tree.
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Entry    *handler.EntryHandler
	Tracking *handler.TrackingHandler
	Summary  *handler.SummaryHandler
	Advisor  *handler.AdvisorHandler
}

// Config controls engine construction.
type Config struct {
	// Mode is the gin mode, gin.ReleaseMode in production.
	Mode string
	// RequestTimeout bounds each request context. Zero disables the bound.
	RequestTimeout time.Duration
	// JWTManager verifies bearer tokens on protected routes.
	JWTManager *jwt.Manager
}

// New builds the gin engine with middleware and routes registered.
func New(cfg Config, h Handlers) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.Timeout(cfg.RequestTimeout),
	)

	engine.GET("/healthz", h.Health.Healthz)
	engine.GET("/readyz", h.Health.Healthz)
	engine.GET("/version", h.Health.Version)

	v1 := engine.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	authed := engine.Group("/v1", middleware.Auth(cfg.JWTManager))
	{
		authed.GET("/auth/me", h.Auth.Me)

		authed.POST("/entries", h.Entry.Create)
		authed.GET("/entries", h.Entry.List)
		authed.GET("/entries/:id", h.Entry.Get)
		authed.DELETE("/entries/:id", h.Entry.Delete)

		authed.PUT("/checklists/:date", h.Tracking.UpsertChecklist)
		authed.GET("/checklists/:date", h.Tracking.GetChecklist)

		authed.GET("/metrics", h.Tracking.MetricRange)
		authed.PUT("/metrics/:date", h.Tracking.UpsertMetric)
		authed.GET("/metrics/:date", h.Tracking.GetMetric)

		authed.POST("/cravings", h.Tracking.LogCraving)
		authed.GET("/cravings", h.Tracking.ListCravings)

		authed.POST("/plans", h.Tracking.CreatePlan)
		authed.GET("/plans", h.Tracking.ListPlans)
		authed.PATCH("/plans/:id", h.Tracking.UpdatePlan)
		authed.DELETE("/plans/:id", h.Tracking.DeletePlan)

		authed.POST("/summaries/:date", h.Summary.Generate)
		authed.GET("/summaries/:date", h.Summary.Get)

		authed.POST("/advisor/ask", h.Advisor.Ask)
		authed.GET("/advisor/conversation", h.Advisor.History)
		authed.DELETE("/advisor/conversation", h.Advisor.Clear)
	}

	return engine
}
