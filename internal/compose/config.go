package compose

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"TESSERA_COMPOSE_REQUEST_TIMEOUT" default:"60s"`
	MaxGridRows    int           `envconfig:"TESSERA_COMPOSE_MAX_GRID_ROWS" default:"256"`
	MaxGridCols    int           `envconfig:"TESSERA_COMPOSE_MAX_GRID_COLS" default:"256"`
	TileWidth      int           `envconfig:"TESSERA_COMPOSE_TILE_WIDTH" default:"16"`
	TileHeight     int           `envconfig:"TESSERA_COMPOSE_TILE_HEIGHT" default:"16"`
	MaxTileWidth   int           `envconfig:"TESSERA_COMPOSE_MAX_TILE_WIDTH" default:"64"`
	MaxTileHeight  int           `envconfig:"TESSERA_COMPOSE_MAX_TILE_HEIGHT" default:"64"`
}
