package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/quipapp/quip-backend/internal/dto"
	"github.com/quipapp/quip-backend/internal/matchmaking"
	"github.com/quipapp/quip-backend/internal/store"
)

// ActivityHandler exposes the activity catalog and the interest toggle.
type ActivityHandler struct {
	engine *matchmaking.Engine
	store  store.Store
}

func NewActivityHandler(engine *matchmaking.Engine, st store.Store) *ActivityHandler {
	return &ActivityHandler{engine: engine, store: st}
}

// List handles GET /api/p/activities
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	activities, err := h.store.AllActivities()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch activities",
		})
	}
	counts, err := h.engine.InterestCounts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch interest counts",
		})
	}

	resp := make([]dto.ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		interested := false
		if _, err := h.store.InterestByUserAndActivity(userID, activity.ID); err == nil {
			interested = true
		}
		resp = append(resp, dto.ActivityResponse{
			ID:              activity.ID,
			Name:            activity.Name,
			Icon:            activity.Icon,
			Color:           activity.Color,
			Category:        activity.Category,
			MinParticipants: activity.MinParticipants,
			X:               activity.X,
			Y:               activity.Y,
			Z:               activity.Z,
			InterestCount:   counts[activity.ID],
			Interested:      interested,
		})
	}

	return c.JSON(fiber.Map{"data": resp, "total": len(resp)})
}

// ToggleInterest handles POST /api/p/activities/:id/interest
func (h *ActivityHandler) ToggleInterest(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid activity ID",
		})
	}

	interested, err := h.engine.ToggleInterest(userID, activityID)
	if err != nil {
		switch {
		case errors.Is(err, matchmaking.ErrActivityNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Activity not found",
			})
		case errors.Is(err, matchmaking.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to toggle interest",
			})
		}
	}

	interests, err := h.store.InterestsByActivity(activityID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch interest count",
		})
	}

	return c.JSON(dto.ToggleInterestResponse{
		Interested:    interested,
		InterestCount: len(interests),
	})
}

// currentUserID reads the authenticated user from the JWT middleware.
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing subject")
	}
	return uuid.Parse(sub)
}
