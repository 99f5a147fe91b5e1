package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blacnova/dashboard-server/internal/model"
)

// MockClientRegistry mocks the ClientRegistry interface
type MockClientRegistry struct {
	mock.Mock
}

func (m *MockClientRegistry) Get(clientID string) (model.ClientProfile, bool) {
	args := m.Called(clientID)
	return args.Get(0).(model.ClientProfile), args.Bool(1)
}

func (m *MockClientRegistry) EnabledTabs(clientID string) []model.Tab {
	args := m.Called(clientID)
	return args.Get(0).([]model.Tab)
}

func (m *MockClientRegistry) HasFeature(clientID string, feature string) bool {
	args := m.Called(clientID, feature)
	return args.Bool(0)
}

func newClientApp(registry model.ClientRegistry) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/api/clients/config", NewClient(registry).GetConfig)
	return app
}

func TestClient_GetConfig(t *testing.T) {
	registry := &MockClientRegistry{}
	registry.On("Get", "chios").Return(model.ClientProfile{
		ID:        "chios",
		Name:      "Chios",
		Dashboard: "standard",
		Tabs: []model.Tab{
			{ID: "content", Name: "Content", Enabled: true},
			{ID: "users", Name: "Users", Enabled: false},
		},
		Features: map[string]bool{"content_editing": true},
		Repo: model.RepoLocation{
			Owner: "blacnova",
			Repo:  "chios-site",
		},
	}, true)

	app := newClientApp(registry)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/clients/config?client=chios", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "chios", body.Data["id"])
	assert.Len(t, body.Data["tabs"], 2)

	// The repo location is internal wiring and must not be exposed.
	_, leaked := body.Data["repo"]
	assert.False(t, leaked)
}

func TestClient_GetConfig_UnknownClient(t *testing.T) {
	registry := &MockClientRegistry{}
	registry.On("Get", "ghost").Return(model.ClientProfile{}, false)

	app := newClientApp(registry)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/clients/config?client=ghost", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestClient_GetConfig_MissingQuery(t *testing.T) {
	app := newClientApp(&MockClientRegistry{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/clients/config", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
