package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alvaro/align-api/internal/handlers"
	"github.com/alvaro/align-api/internal/localstore"
	"github.com/alvaro/align-api/internal/models"
	"github.com/alvaro/align-api/internal/routes"
	"github.com/alvaro/align-api/internal/session"
	"github.com/alvaro/align-api/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// guestApp wires the full route table over a guest-mode store.
func guestApp(t *testing.T) *fiber.App {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	local, err := localstore.New(t.TempDir())
	require.NoError(t, err)

	sess := session.NewProvider(nil, local, "test-secret", log)
	sess.Resume()
	st := store.New(local, nil, sess, log)

	app := fiber.New()
	routes.Setup(app, handlers.New(st, sess, log))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestVisionLifecycleOverHTTP(t *testing.T) {
	app := guestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/visions/", fiber.Map{
		"title":     "Health",
		"timeframe": "Life",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	vision := decode[models.Vision](t, resp)
	assert.Equal(t, "Health", vision.Title)
	assert.Equal(t, 0, vision.Order)

	resp = doJSON(t, app, http.MethodPut, "/api/visions/"+vision.ID.String(), fiber.Map{
		"title": "Wellbeing",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decode[models.AppState](t, resp)
	require.Len(t, state.Visions, 1)
	assert.Equal(t, "Wellbeing", state.Visions[0].Title)

	resp = doJSON(t, app, http.MethodDelete, "/api/visions/"+vision.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	state = decode[models.AppState](t, doJSON(t, app, http.MethodGet, "/api/state", nil))
	assert.Empty(t, state.Visions)
}

func TestCreateVisionValidation(t *testing.T) {
	app := guestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/visions/", fiber.Map{"timeframe": "Life"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/visions/", fiber.Map{"title": "X", "timeframe": "2 years"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTaskToggleOverHTTP(t *testing.T) {
	app := guestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/tasks/", fiber.Map{
		"title": "Stretch",
		"date":  "2026-01-20",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	task := decode[models.Task](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/tasks/"+task.ID.String()+"/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	state := decode[models.AppState](t, doJSON(t, app, http.MethodGet, "/api/state", nil))
	require.Len(t, state.Tasks, 1)
	assert.True(t, state.Tasks[0].IsCompleted)
}

func TestPutLogValidation(t *testing.T) {
	app := guestApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/logs", fiber.Map{
		"date": "January 20", "energyLevel": 3, "focusLevel": 3, "progressRating": "Yes",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/logs", fiber.Map{
		"date": "2026-01-20", "energyLevel": 9, "focusLevel": 3, "progressRating": "Yes",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/logs", fiber.Map{
		"date": "2026-01-20", "energyLevel": 4, "focusLevel": 3, "progressRating": "Yes", "notes": "solid",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	log := decode[models.DayLog](t, resp)
	assert.Equal(t, 4, log.EnergyLevel)
}

func TestReorderVisionsOverHTTP(t *testing.T) {
	app := guestApp(t)

	first := decode[models.Vision](t, doJSON(t, app, http.MethodPost, "/api/visions/", fiber.Map{"title": "One", "timeframe": "Life"}))
	second := decode[models.Vision](t, doJSON(t, app, http.MethodPost, "/api/visions/", fiber.Map{"title": "Two", "timeframe": "Life"}))

	resp := doJSON(t, app, http.MethodPut, "/api/visions/reorder", fiber.Map{
		"ids": []string{second.ID.String(), first.ID.String()},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	visions := decode[[]models.Vision](t, resp)
	require.Len(t, visions, 2)
	assert.Equal(t, "Two", visions[0].Title)
	assert.Equal(t, 0, visions[0].Order)
	assert.Equal(t, "One", visions[1].Title)
	assert.Equal(t, 1, visions[1].Order)
}

func TestBackupOverHTTP(t *testing.T) {
	app := guestApp(t)

	doJSON(t, app, http.MethodPost, "/api/visions/", fiber.Map{"title": "Health", "timeframe": "Life"})

	resp := doJSON(t, app, http.MethodGet, "/api/backup", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	exported, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	resp = doJSON(t, app, http.MethodPost, "/api/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/backup", bytes.NewReader(exported))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	state := decode[models.AppState](t, doJSON(t, app, http.MethodGet, "/api/state", nil))
	require.Len(t, state.Visions, 1)
	assert.Equal(t, "Health", state.Visions[0].Title)

	resp = doJSON(t, app, http.MethodPost, "/api/backup", fiber.Map{})
	require.Equal(t, http.StatusOK, resp.StatusCode) // empty object imports nothing

	req = httptest.NewRequest(http.MethodPost, "/api/backup", bytes.NewReader([]byte("garbage")))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthUnavailableWithoutBackend(t *testing.T) {
	app := guestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email": "ana@example.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestInsightsOverHTTP(t *testing.T) {
	app := guestApp(t)

	vision := decode[models.Vision](t, doJSON(t, app, http.MethodPost, "/api/visions/", fiber.Map{"title": "Health", "timeframe": "Life"}))
	goal := decode[models.Goal](t, doJSON(t, app, http.MethodPost, "/api/goals/", fiber.Map{
		"visionId": vision.ID.String(), "title": "Run 500km", "deadline": "2026-12-31",
	}))

	resp := doJSON(t, app, http.MethodGet, "/api/insights/projection/"+goal.ID.String()+"?pace=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	projection := decode[map[string]any](t, resp)
	assert.EqualValues(t, 100, projection["remaining"])

	resp = doJSON(t, app, http.MethodGet, "/api/insights/momentum?month=2026-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/insights/momentum?month=nope", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
