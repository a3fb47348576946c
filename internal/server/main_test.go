package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"inkwell/internal/auth"
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/repository"
	"inkwell/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-0123456789abcdef"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// setupTestServer wires a server against in-memory sqlite and object storage.
func setupTestServer(t *testing.T, cfg *config.Config) (*fiber.App, *Server) {
	t.Helper()

	cache.Client = nil
	db := setupTestDB(t)

	s := &Server{
		config:     cfg,
		db:         db,
		postRepo:   repository.NewPostRepository(db),
		labelRepo:  repository.NewLabelRepository(db),
		replyRepo:  repository.NewReplyRepository(db),
		optionRepo: repository.NewOptionRepository(db),
		objects:    storage.NewMemoryStore(),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s
}

func bearerServer(t *testing.T) (*fiber.App, *Server) {
	return setupTestServer(t, &config.Config{Port: "0", Secret: testSecret})
}

func authToken(t *testing.T) string {
	t.Helper()
	token, err := auth.SignSession("admin", testSecret, auth.SessionTTL)
	require.NoError(t, err)
	return "Bearer " + token
}

func request(t *testing.T, app *fiber.App, method, target, authHeader string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}
