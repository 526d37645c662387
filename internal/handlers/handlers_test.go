package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/quipapp/quip-backend/internal/dto"
	"github.com/quipapp/quip-backend/internal/matchmaking"
	"github.com/quipapp/quip-backend/internal/models"
	"github.com/quipapp/quip-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires the protected routes behind a stub that injects the JWT
// token the real middleware would have parsed.
func testApp(t *testing.T, st store.Store, engine *matchmaking.Engine, userID uuid.UUID) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": userID.String(),
		})
		c.Locals("user", token)
		return c.Next()
	})

	activityHandler := NewActivityHandler(engine, st)
	sessionHandler := NewSessionHandler(engine)
	app.Get("/activities", activityHandler.List)
	app.Post("/activities/:id/interest", activityHandler.ToggleInterest)
	app.Get("/sessions", sessionHandler.List)
	return app
}

func setup(t *testing.T) (*fiber.App, *store.MemoryStore, models.User, models.Activity) {
	t.Helper()
	st := store.NewMemoryStore()
	engine := matchmaking.NewEngine(st, time.Hour)
	t.Cleanup(engine.Close)

	user := models.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	activity := models.Activity{ID: uuid.New(), Name: "Chess", MinParticipants: 2}
	st.StageInsert(&user)
	st.StageInsert(&activity)
	require.NoError(t, st.Commit())

	return testApp(t, st, engine, user.ID), st, user, activity
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestListActivities(t *testing.T) {
	app, _, _, activity := setup(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/activities", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Data  []dto.ActivityResponse `json:"data"`
		Total int                    `json:"total"`
	}
	decodeBody(t, resp, &payload)
	require.Equal(t, 1, payload.Total)
	assert.Equal(t, activity.ID, payload.Data[0].ID)
	assert.Equal(t, 0, payload.Data[0].InterestCount)
	assert.False(t, payload.Data[0].Interested)
}

func TestToggleInterestRoundTrip(t *testing.T) {
	app, _, _, activity := setup(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/activities/"+activity.ID.String()+"/interest", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var toggled dto.ToggleInterestResponse
	decodeBody(t, resp, &toggled)
	assert.True(t, toggled.Interested)
	assert.Equal(t, 1, toggled.InterestCount)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/activities/"+activity.ID.String()+"/interest", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	decodeBody(t, resp, &toggled)
	assert.False(t, toggled.Interested)
	assert.Equal(t, 0, toggled.InterestCount)
}

func TestToggleInterestUnknownActivity(t *testing.T) {
	app, _, _, _ := setup(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/activities/"+uuid.NewString()+"/interest", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestToggleInterestBadID(t *testing.T) {
	app, _, _, _ := setup(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/activities/not-a-uuid/interest", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListSessions(t *testing.T) {
	app, st, _, _ := setup(t)

	st.StageInsert(models.NewGroupSession("Chess", []string{"Alice", "Bob"}))
	require.NoError(t, st.Commit())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/sessions", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Data  []dto.SessionResponse `json:"data"`
		Total int                   `json:"total"`
	}
	decodeBody(t, resp, &payload)
	require.Equal(t, 1, payload.Total)
	assert.Equal(t, "Chess", payload.Data[0].ActivityName)
	assert.Equal(t, []string{"Alice", "Bob"}, payload.Data[0].Participants)
}
