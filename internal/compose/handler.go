package compose

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"time"

	"go.opencensus.io/stats"
	"tessera/internal/httputil"
	"tessera/internal/logging"
	"tessera/internal/mosaic"
	"tessera/internal/palette"
	"tessera/internal/telemetry"
)

const maxBodyBytes = 64 * 1024 * 1024

type request struct {
	Image      string `json:"image"`
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	TileWidth  int    `json:"tileWidth"`
	TileHeight int    `json:"tileHeight"`
}

type response struct {
	Mosaic string `json:"mosaic"`
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
	Tiles  int    `json:"tiles"`
}

func NewHandler(cfg *Config, palette palette.Manager) (http.Handler, error) {
	return &handler{
		cfg:     cfg,
		palette: palette,
	}, nil
}

type handler struct {
	cfg     *Config
	palette palette.Manager
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	logger := logging.FromContext(ctx)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		logger.Debug(fmt.Sprintf(`{"error": "method %v is not allowed"}`, r.Method))
		_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
		return
	}

	if t := r.Header.Get("content-type"); len(t) < 16 || t[:16] != "application/json" {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		logger.Debug(fmt.Sprintf(`{"error": "%v"}`, "content-type is not application/json"))
		_, _ = fmt.Fprintf(w, `{"error": "%v"}`, "content-type is not application/json")
		return
	}

	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	d := json.NewDecoder(r.Body)
	if err := d.Decode(&req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	if req.Rows < 1 || req.Rows > h.cfg.MaxGridRows || req.Cols < 1 || req.Cols > h.cfg.MaxGridCols {
		httputil.RespBadRequest(ctx, w,
			`{"error": "grid %dx%d outside allowed range 1x1..%dx%d"}`,
			req.Rows, req.Cols, h.cfg.MaxGridRows, h.cfg.MaxGridCols)
		return
	}

	// The rendered image is cols*tileWidth x rows*tileHeight; unbounded cell
	// sizes would let one request allocate an arbitrarily large buffer.
	if req.TileWidth > h.cfg.MaxTileWidth || req.TileHeight > h.cfg.MaxTileHeight {
		httputil.RespBadRequest(ctx, w,
			`{"error": "tile size %dx%d outside allowed range 1x1..%dx%d"}`,
			req.TileWidth, req.TileHeight, h.cfg.MaxTileWidth, h.cfg.MaxTileHeight)
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		httputil.RespBadRequest(ctx, w, `{"error": "image is not valid base64: %v"}`, err)
		return
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		httputil.RespBadRequest(ctx, w, `{"error": "image decode failed: %v"}`, err)
		return
	}

	start := time.Now()
	stats.Record(ctx, telemetry.MComposeRequests.M(1))

	out, snapshotLen, err := h.compose(ctx, img, req)
	if err != nil {
		httputil.RespInternalError(ctx, w, `{"error": "compose failed: %v"}`, err)
		return
	}

	stats.Record(ctx, telemetry.MComposeLatency.M(float64(time.Since(start).Milliseconds())))
	logger.Infof("composed %dx%d mosaic from %d tiles in %s", req.Rows, req.Cols, snapshotLen, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response{
		Mosaic: out,
		Rows:   req.Rows,
		Cols:   req.Cols,
		Tiles:  snapshotLen,
	})
}

func (h *handler) compose(ctx context.Context, img image.Image, req request) (string, int, error) {
	source, err := mosaic.NewSourceImage(img, req.Rows, req.Cols)
	if err != nil {
		return "", 0, err
	}

	snapshot, err := h.palette.Snapshot()
	if err != nil {
		return "", 0, err
	}

	canvas, err := mosaic.Assemble(ctx, source, snapshot)
	if err != nil {
		return "", 0, err
	}

	cellW, cellH := req.TileWidth, req.TileHeight
	if cellW < 1 {
		cellW = h.cfg.TileWidth
	}
	if cellH < 1 {
		cellH = h.cfg.TileHeight
	}
	rendered, err := canvas.Render(cellW, cellH)
	if err != nil {
		return "", 0, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, rendered); err != nil {
		return "", 0, fmt.Errorf("encode mosaic: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), snapshot.Len(), nil
}
