package palette

import (
	"image"

	"tessera/internal/geom"
	"tessera/internal/tile/model"
)

// Tile pairs a stored tile record with its decoded image. It satisfies
// mosaic.Tile.
type Tile struct {
	rec model.Tile
	img image.Image
}

func (t Tile) Record() model.Tile {
	return t.rec
}

func (t Tile) AverageColor() geom.Point {
	return t.rec.AvgColor
}

func (t Tile) Image() image.Image {
	return t.img
}
