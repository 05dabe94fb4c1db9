package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sentiment-service/internal/ml_client"
)

// HealthChecker reports whether the ML service is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) (*ml_client.HealthResponse, error)
}

type HealthHandler struct {
	classifier HealthChecker
	logger     *zap.Logger
}

func NewHealthHandler(classifier HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{classifier: classifier, logger: logger}
}

// Check handles GET /health. The service itself is up if this handler
// runs; the ML service status is reported alongside so operators can tell
// the two apart.
func (h *HealthHandler) Check(c *gin.Context) {
	mlStatus := "ok"
	if _, err := h.classifier.HealthCheck(c.Request.Context()); err != nil {
		h.logger.Warn("ML service health check failed", zap.Error(err))
		mlStatus = "unreachable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"ml_service": mlStatus,
	})
}
