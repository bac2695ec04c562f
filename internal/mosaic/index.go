package mosaic

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"tessera/internal/geom"
	"tessera/pkg/container/kdtree"
)

var ErrNoTiles = errors.New("mosaic: no tiles")

// Tile is a library image a mosaic cell can be filled with.
type Tile interface {
	AverageColor() geom.Point
	Image() image.Image
}

// Index answers nearest-color tile lookups.
type Index interface {
	Nearest(ctx context.Context, p geom.Point) (Tile, error)
	Len() int
}

// ColorKey renders a point as an exact-equality map key. Tiles whose average
// colors collide collapse to a single representative.
func ColorKey(p geom.Point) string {
	parts := make([]string, p.Dimensions())
	for i := range parts {
		parts[i] = strconv.FormatFloat(p.Dim(i), 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// TileIndex is a static nearest-color index: one k-d tree over the tiles'
// average colors plus an exact color-to-tile association. When several tiles
// share an average color the last one wins, matching the association's
// insertion order.
type TileIndex struct {
	tree    *kdtree.Tree
	byColor map[string]Tile
}

func NewTileIndex(tiles []Tile) (*TileIndex, error) {
	if len(tiles) == 0 {
		return nil, ErrNoTiles
	}

	byColor := make(map[string]Tile, len(tiles))
	points := make([]kdtree.Point, 0, len(tiles))
	for _, t := range tiles {
		p := t.AverageColor()
		points = append(points, p)
		byColor[ColorKey(p)] = t
	}

	tree, err := kdtree.NewTree(points...)
	if err != nil {
		return nil, fmt.Errorf("build tile tree: %w", err)
	}

	return &TileIndex{tree: tree, byColor: byColor}, nil
}

func (idx *TileIndex) Len() int {
	return idx.tree.Len()
}

func (idx *TileIndex) Nearest(_ context.Context, p geom.Point) (Tile, error) {
	nearest, err := idx.tree.NearestNeighbor(p)
	if err != nil {
		return nil, fmt.Errorf("nearest color: %w", err)
	}

	tile, ok := idx.byColor[ColorKey(geom.New(nearest.Points()))]
	if !ok {
		return nil, fmt.Errorf("mosaic: tree returned color %v absent from association", nearest.Points())
	}
	return tile, nil
}
