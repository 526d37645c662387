package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/quipapp/quip-backend/internal/dto"
)

// HealthHandler reports process liveness and the backing store's health.
type HealthHandler struct {
	ping func() error
}

// NewHealthHandler takes the store's liveness probe. A nil probe means the
// store has no external dependency to check (in-memory driver).
func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	storeStatus := "ok"
	if h.ping != nil {
		if err := h.ping(); err != nil {
			storeStatus = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Store:     storeStatus,
	})
}
