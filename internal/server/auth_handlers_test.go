package server

import (
	"net/http"
	"testing"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallAndLoginFlow(t *testing.T) {
	app, _ := bearerServer(t)

	status, raw := request(t, app, fiber.MethodPost, "/api/install", "", map[string]string{
		"blogName":      "My Blog",
		"adminUsername": "admin",
		"adminPassword": "hunter2",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	install := decode[struct {
		Success bool `json:"success"`
	}](t, raw)
	assert.True(t, install.Success)

	// Repeated install is refused once credentials exist.
	status, raw = request(t, app, fiber.MethodPost, "/api/install", "", map[string]string{
		"blogName":      "Other",
		"adminUsername": "eve",
		"adminPassword": "x",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Already installed", decode[models.ErrorResponse](t, raw).Error)

	status, raw = request(t, app, fiber.MethodPost, "/api/login", "", map[string]string{
		"adminUsername": "admin",
		"adminPassword": "hunter2",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	login := decode[struct {
		Token string `json:"token"`
	}](t, raw)
	require.NotEmpty(t, login.Token)
	assert.True(t, auth.VerifyBearer("Bearer "+login.Token, testSecret))

	// The issued token is accepted on protected routes.
	status, _ = request(t, app, fiber.MethodPost, "/api/posts", "Bearer "+login.Token, map[string]any{
		"title": "first", "content": "x",
	})
	assert.Equal(t, http.StatusCreated, status)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := bearerServer(t)

	// Before install there are no credentials to match.
	status, raw := request(t, app, fiber.MethodPost, "/api/login", "", map[string]string{
		"adminUsername": "admin",
		"adminPassword": "hunter2",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Wrong username or password", decode[models.ErrorResponse](t, raw).Error)

	status, _ = request(t, app, fiber.MethodPost, "/api/install", "", map[string]string{
		"blogName": "b", "adminUsername": "admin", "adminPassword": "hunter2",
	})
	require.Equal(t, http.StatusOK, status)

	for name, body := range map[string]map[string]string{
		"wrong password": {"adminUsername": "admin", "adminPassword": "wrong"},
		"wrong username": {"adminUsername": "root", "adminPassword": "hunter2"},
	} {
		t.Run(name, func(t *testing.T) {
			status, raw := request(t, app, fiber.MethodPost, "/api/login", "", body)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "Wrong username or password", decode[models.ErrorResponse](t, raw).Error)
		})
	}
}

func TestLoginWithoutSecret(t *testing.T) {
	app, _ := setupTestServer(t, &config.Config{Port: "0"})

	status, _ := request(t, app, fiber.MethodPost, "/api/install", "", map[string]string{
		"blogName": "b", "adminUsername": "admin", "adminPassword": "pw",
	})
	require.Equal(t, http.StatusOK, status)

	// Credentials check out but no signing secret is configured.
	status, raw := request(t, app, fiber.MethodPost, "/api/login", "", map[string]string{
		"adminUsername": "admin", "adminPassword": "pw",
	})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Secret not set", decode[models.ErrorResponse](t, raw).Error)
}
