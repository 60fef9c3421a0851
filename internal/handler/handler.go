package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nillow/booking-api/internal/middleware"
	apperrors "github.com/nillow/booking-api/pkg/errors"
)

// Handler contains dependencies shared by all handlers
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
		"time":   time.Now(),
	})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now(),
	})
}

func (h *Handler) MetricsHandler(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}

// BusinessID reads the authenticated business from the request context.
func BusinessID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.GetString(middleware.ContextBusinessID))
	if err != nil {
		return uuid.Nil, apperrors.Unauthorized("missing business identity", err)
	}
	return id, nil
}
