package palette

import "time"

type Config struct {
	Dir                string        `envconfig:"TESSERA_PALETTE_DIR" default:"./tiles"`
	Manifest           string        `envconfig:"TESSERA_PALETTE_MANIFEST"`
	MaxConcurrentLoads int           `envconfig:"TESSERA_PALETTE_MAX_CONCURRENT_LOADS" default:"8"`
	Watch              bool          `envconfig:"TESSERA_PALETTE_WATCH" default:"false"`
	RebuildDebounce    time.Duration `envconfig:"TESSERA_PALETTE_REBUILD_DEBOUNCE" default:"2s"`
	CacheSize          int           `envconfig:"TESSERA_PALETTE_CACHE_SIZE" default:"4096"`
}
