package model

import (
	"time"

	"github.com/google/uuid"
	"tessera/internal/geom"
)

func NewTile(path string, avgColor geom.Point, createdAt time.Time) Tile {
	return Tile{
		ID:        uuid.New(),
		Path:      path,
		AvgColor:  avgColor,
		CreatedAt: createdAt,
	}
}

// Tile is one library image reduced to its average color. AvgColor is the
// 3-dimensional point the spatial index is built over; Path points back at
// the source image.
type Tile struct {
	ID        uuid.UUID  `json:"id"`
	Path      string     `json:"path"`
	AvgColor  geom.Point `json:"avgColor"`
	CreatedAt time.Time  `json:"createdAt"`
}
