package server

import (
	"net/http"
	"testing"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type labelList struct {
	Items []repository.LabelCount `json:"items"`
}

func TestGetLabelsEmpty(t *testing.T) {
	app, _ := bearerServer(t)

	status, raw := request(t, app, fiber.MethodGet, "/api/labels", "", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[labelList](t, raw)
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)
}

func TestGetLabelsCounts(t *testing.T) {
	app, _ := bearerServer(t)
	token := authToken(t)

	for _, p := range []map[string]any{
		{"title": "a", "content": "x", "labels": []string{"go", "web"}},
		{"title": "b", "content": "x", "labels": []string{"go"}},
		{"title": "c", "content": "x", "labels": []string{"go"}},
	} {
		status, _ := request(t, app, fiber.MethodPost, "/api/posts", token, p)
		require.Equal(t, http.StatusCreated, status)
	}

	status, raw := request(t, app, fiber.MethodGet, "/api/labels", "", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[labelList](t, raw)
	require.Len(t, list.Items, 2)
	assert.Equal(t, repository.LabelCount{Name: "go", Count: 3}, list.Items[0])
	assert.Equal(t, repository.LabelCount{Name: "web", Count: 1}, list.Items[1])
}

func TestGetLabelsCached(t *testing.T) {
	mr := miniredis.RunT(t)
	app, _ := bearerServer(t)

	// The harness clears the cache client, so attach Redis after setup.
	cache.Client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = cache.Client.Close()
		cache.Client = nil
	})

	token := authToken(t)
	status, _ := request(t, app, fiber.MethodPost, "/api/posts", token, map[string]any{
		"title": "a", "content": "x", "labels": []string{"go"},
	})
	require.Equal(t, http.StatusCreated, status)

	status, raw := request(t, app, fiber.MethodGet, "/api/labels", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, decode[labelList](t, raw).Items, 1)

	// A write after the first read is invisible until the entry expires.
	status, _ = request(t, app, fiber.MethodPost, "/api/posts", token, map[string]any{
		"title": "b", "content": "x", "labels": []string{"web"},
	})
	require.Equal(t, http.StatusCreated, status)

	status, raw = request(t, app, fiber.MethodGet, "/api/labels", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[labelList](t, raw).Items, 1, "served from cache")

	mr.FastForward(labelCountTTL + time.Second)

	status, raw = request(t, app, fiber.MethodGet, "/api/labels", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[labelList](t, raw).Items, 2, "cache expired, fresh counts")
}
