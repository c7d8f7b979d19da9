package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/huellitas-app/service-adoption/internal/platform/health"
	"github.com/huellitas-app/service-adoption/internal/platform/middleware"
)

// RouteRegistrar is implemented by every handler in this package.
type RouteRegistrar interface {
	RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc)
}

// RouterConfig carries what NewRouter wires together.
type RouterConfig struct {
	Logger      *zap.Logger
	CORSOrigins []string
	Auth        gin.HandlerFunc
	Health      *health.Handler
	Handlers    []RouteRegistrar
}

// NewRouter builds the gin engine with global middleware, /health and every
// handler mounted under /api.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(cfg.Logger))
	router.Use(middleware.LoggerMiddleware(cfg.Logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.NoRoute(middleware.NotFoundHandler())

	if cfg.Health != nil {
		cfg.Health.RegisterRoutes(router)
	}

	api := router.Group("/api")
	for _, h := range cfg.Handlers {
		h.RegisterRoutes(api, cfg.Auth)
	}
	return router, nil
}
