package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-board/internal/config"
)

func newTestApp(t *testing.T, basePath string) *App {
	t.Helper()
	log, _ := test.NewNullLogger()
	cfg := config.Default()
	cfg.BasePath = basePath
	a := New(log, cfg)
	t.Cleanup(a.registry.Close)
	return a
}

func TestStatusCountsGames(t *testing.T) {
	a := newTestApp(t, "")
	h := a.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/game", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var status struct {
		Mode  string `json:"mode"`
		Games int    `json:"games"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "production", status.Mode)
	assert.Equal(t, 1, status.Games)
}

func TestBasePath(t *testing.T) {
	a := newTestApp(t, "/mines")
	h := a.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mines/v1/game?height=5&width=5&mine_count=5", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/game", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRand(t *testing.T) {
	r := createRand()
	for range 100 {
		n := r.IntN(9)
		assert.True(t, n >= 0 && n < 9)
	}
}
