package palette

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opencensus.io/stats"
	"tessera/internal/geom"
	"tessera/internal/mosaic"
	"tessera/internal/telemetry"
)

// Snapshot is one immutable generation of the palette: the tiles, their
// nearest-color index, and an LRU memoizing lookups. Regions of a source
// image repeat colors heavily, so the cache absorbs most tree queries.
// A snapshot is never mutated after construction; the manager swaps whole
// snapshots on rebuild.
type Snapshot struct {
	idx   *mosaic.TileIndex
	cache *lru.Cache[string, mosaic.Tile]
	tiles []Tile
}

func newSnapshot(tiles []Tile, cacheSize int) (*Snapshot, error) {
	mts := make([]mosaic.Tile, len(tiles))
	for i := range tiles {
		mts[i] = tiles[i]
	}
	idx, err := mosaic.NewTileIndex(mts)
	if err != nil {
		return nil, err
	}

	if cacheSize < 1 {
		cacheSize = 1
	}
	cache, err := lru.New[string, mosaic.Tile](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create lookup cache: %w", err)
	}

	return &Snapshot{idx: idx, cache: cache, tiles: tiles}, nil
}

func (s *Snapshot) Len() int {
	return s.idx.Len()
}

func (s *Snapshot) Tiles() []mosaic.Tile {
	tiles := make([]mosaic.Tile, len(s.tiles))
	for i := range s.tiles {
		tiles[i] = s.tiles[i]
	}
	return tiles
}

// Nearest implements mosaic.Index over the snapshot's tree, memoized by
// exact query color.
func (s *Snapshot) Nearest(ctx context.Context, p geom.Point) (mosaic.Tile, error) {
	key := mosaic.ColorKey(p)
	if t, ok := s.cache.Get(key); ok {
		stats.Record(ctx, telemetry.MCacheHits.M(1))
		return t, nil
	}

	start := time.Now()
	t, err := s.idx.Nearest(ctx, p)
	if err != nil {
		return nil, err
	}
	stats.Record(ctx,
		telemetry.MCacheMisses.M(1),
		telemetry.MNearestLatency.M(float64(time.Since(start).Microseconds())/1000),
	)

	s.cache.Add(key, t)
	return t, nil
}
