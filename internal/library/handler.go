package library

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"tessera/internal/httputil"
	"tessera/internal/logging"
	tileDb "tessera/internal/tile/database"
	"tessera/internal/tile/model"
)

type response struct {
	Count int          `json:"count"`
	Tiles []model.Tile `json:"tiles"`
}

// NewHandler serves the stored tile library for inspection.
func NewHandler(cfg *Config, db *tileDb.DB) (http.Handler, error) {
	return &handler{
		cfg: cfg,
		db:  db,
	}, nil
}

type handler struct {
	cfg *Config
	db  *tileDb.DB
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	logger := logging.FromContext(ctx)

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		logger.Debug(fmt.Sprintf(`{"error": "method %v is not allowed"}`, r.Method))
		_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
		return
	}

	tiles, err := h.db.FindAll(ctx, nil)
	if err != nil {
		httputil.RespInternalError(ctx, w, `{"error": "list tiles: %v"}`, err)
		return
	}

	// Cursor order follows the uuid keys; list by color instead so the
	// response is stable across re-ingests.
	sort.Slice(tiles, func(i, j int) bool {
		return tiles[i].AvgColor.Less(tiles[j].AvgColor)
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response{
		Count: len(tiles),
		Tiles: tiles,
	})
}
