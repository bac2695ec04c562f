package mosaic

import (
	"context"
	"fmt"
)

// Assemble queries the index once per source region and fills a canvas with
// the nearest-color tile for each.
func Assemble(ctx context.Context, source *SourceImage, idx Index) (*Canvas, error) {
	canvas, err := NewCanvas(source.Rows(), source.Columns())
	if err != nil {
		return nil, err
	}

	for row := 0; row < source.Rows(); row++ {
		for col := 0; col < source.Columns(); col++ {
			tile, err := idx.Nearest(ctx, source.RegionColor(row, col))
			if err != nil {
				return nil, fmt.Errorf("match region (%d, %d): %w", row, col, err)
			}
			if err := canvas.SetTile(row, col, tile); err != nil {
				return nil, err
			}
		}
	}

	return canvas, nil
}

// MapTiles builds a one-shot index over the given tiles and assembles the
// mosaic for source with it.
func MapTiles(ctx context.Context, source *SourceImage, tiles []Tile) (*Canvas, error) {
	idx, err := NewTileIndex(tiles)
	if err != nil {
		return nil, err
	}
	return Assemble(ctx, source, idx)
}
