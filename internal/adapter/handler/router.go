package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-reporter/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-reporter/pkg/config"
	"github.com/johnquangdev/meeting-reporter/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg           *config.Config
	authHandler   *Auth
	reportHandler *Report
	jwtManager    *jwt.Manager
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, authHandler *Auth, reportHandler *Report, jwtManager *jwt.Manager) *Router {
	return &Router{
		cfg:           cfg,
		authHandler:   authHandler,
		reportHandler: reportHandler,
		jwtManager:    jwtManager,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.reportHandler.Health)

	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)
	rt.setupReportRoutes(v1)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.POST("/signup", rt.authHandler.Signup)
	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/refresh", rt.authHandler.Refresh)
	authGroup.POST("/logout", rt.authHandler.Logout)
	authGroup.GET("/me", rt.authHandler.Me, middleware.EchoAuth(rt.jwtManager))
}

// setupReportRoutes configures the report pipeline routes
func (rt *Router) setupReportRoutes(g *echo.Group) {
	reportGroup := g.Group("/reports", middleware.EchoAuth(rt.jwtManager))

	reportGroup.POST("/upload", rt.reportHandler.Upload)
}
