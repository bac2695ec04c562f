package tessera

import (
	"tessera/internal/compose"
	"tessera/internal/database"
	"tessera/internal/library"
	"tessera/internal/palette"
	"tessera/internal/setup"
)

var (
	_ setup.DatabaseConfigProvider = (*Config)(nil)
	_ setup.PaletteConfigProvider  = (*Config)(nil)
)

type Config struct {
	SrvAddr  string `envconfig:"TESSERA_ADDR" default:":8789"`
	Database database.Config
	Palette  palette.Config
	Compose  compose.Config
	Library  library.Config
}

func (c Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c Config) PaletteConfig() *palette.Config {
	return &c.Palette
}

func (c Config) ComposeConfig() *compose.Config {
	return &c.Compose
}

func (c Config) LibraryConfig() *library.Config {
	return &c.Library
}
