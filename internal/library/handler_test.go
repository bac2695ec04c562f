package library

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"tessera/internal/database"
	"tessera/internal/geom"
	tileDb "tessera/internal/tile/database"
	"tessera/internal/tile/model"
)

func testConfig() *Config {
	return &Config{RequestTimeout: 10 * time.Second}
}

func newTestDB(t *testing.T) *tileDb.DB {
	t.Helper()

	sDB, err := database.NewFromEnv(context.Background(), &database.Config{
		FileName: filepath.Join(t.TempDir(), "tessera_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sDB.Close(context.Background())
	})

	return tileDb.New(sDB)
}

func TestHandlerList(t *testing.T) {
	db := newTestDB(t)
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.AppendMany(context.Background(), []model.Tile{
		model.NewTile("tiles/red.png", geom.New([]float64{255, 0, 0}), created),
		model.NewTile("tiles/blue.png", geom.New([]float64{0, 0, 255}), created),
		model.NewTile("tiles/green.png", geom.New([]float64{0, 255, 0}), created),
	}))

	h, err := NewHandler(testConfig(), db)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/palette", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 3, resp.Count)
	require.Len(t, resp.Tiles, 3)

	// Listed by average color, not by record id.
	require.Equal(t, "tiles/blue.png", resp.Tiles[0].Path)
	require.Equal(t, "tiles/green.png", resp.Tiles[1].Path)
	require.Equal(t, "tiles/red.png", resp.Tiles[2].Path)
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	h, err := NewHandler(testConfig(), newTestDB(t))
	require.NoError(t, err)

	r := httptest.NewRequest("POST", "/palette", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
