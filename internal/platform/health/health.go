// Package health exposes a liveness and database readiness endpoint.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler answers GET /health.
type Handler struct {
	db      *gorm.DB
	service string
}

// NewHandler creates a health handler for the named service.
func NewHandler(db *gorm.DB, service string) *Handler {
	return &Handler{db: db, service: service}
}

// RegisterRoutes mounts the health route on r.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Check)
}

// Check pings the database and reports the result.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	status := http.StatusOK
	if err := h.ping(ctx); err != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"ok":       status == http.StatusOK,
		"service":  h.service,
		"database": dbStatus,
		"time":     time.Now().UTC(),
	})
}

func (h *Handler) ping(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
