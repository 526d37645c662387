package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quipapp/quip-backend/internal/dto"
	"github.com/quipapp/quip-backend/internal/matchmaking"
)

// SessionHandler exposes the formed-sessions projection.
type SessionHandler struct {
	engine *matchmaking.Engine
}

func NewSessionHandler(engine *matchmaking.Engine) *SessionHandler {
	return &SessionHandler{engine: engine}
}

// List handles GET /api/p/sessions
func (h *SessionHandler) List(c *fiber.Ctx) error {
	sessions, err := h.engine.PendingSessions()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch sessions",
		})
	}

	resp := make([]dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, dto.SessionResponse{
			ID:            s.ID,
			ActivityName:  s.ActivityName,
			Participants:  s.Participants,
			ScheduledTime: s.ScheduledTime,
			Location1:     s.Location1,
			Location2:     s.Location2,
			BookingLink1:  s.BookingLink1,
			BookingLink2:  s.BookingLink2,
			CreatedAt:     s.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{"data": resp, "total": len(resp)})
}
