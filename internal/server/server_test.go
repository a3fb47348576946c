package server

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkwell/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

// mutatePost attempts a post creation and returns the raw response so tests
// can inspect headers on the failure path.
func mutatePost(t *testing.T, app *fiber.App, authHeader string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, "/api/posts",
		strings.NewReader(`{"title":"x","content":"y"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestBasicAuthMode(t *testing.T) {
	app, _ := setupTestServer(t, &config.Config{
		Port:     "0",
		Username: "admin",
		Password: "hunter2",
	})

	// No credentials: challenged with the Basic scheme.
	resp, body := mutatePost(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", string(body))
	assert.Equal(t, "Basic", resp.Header.Get(fiber.HeaderWWWAuthenticate))

	// Wrong password.
	resp, _ = mutatePost(t, app, basicHeader("admin", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Basic", resp.Header.Get(fiber.HeaderWWWAuthenticate))

	// Correct credentials pass through to the handler.
	status, _ := request(t, app, fiber.MethodPost, "/api/posts", basicHeader("admin", "hunter2"), map[string]any{
		"title": "x", "content": "y",
	})
	assert.Equal(t, http.StatusCreated, status)

	// A bearer token is meaningless in Basic mode.
	status, _ = request(t, app, fiber.MethodPost, "/api/posts", authToken(t), map[string]any{
		"title": "x", "content": "y",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuthModeWithoutCredentials(t *testing.T) {
	// Neither a secret nor a basic user configured: everything mutating 401s.
	app, _ := setupTestServer(t, &config.Config{Port: "0"})

	status, _ := request(t, app, fiber.MethodPost, "/api/posts", authToken(t), map[string]any{
		"title": "x", "content": "y",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthCheck(t *testing.T) {
	app, _ := bearerServer(t)

	status, raw := request(t, app, fiber.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)

	health := decode[struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
			Redis    string `json:"redis"`
		} `json:"checks"`
	}](t, raw)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "healthy", health.Checks.Database)
	assert.Equal(t, "unavailable", health.Checks.Redis)
}
