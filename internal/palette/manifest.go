package palette

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"tessera/internal/httputil"
)

// Manifest declares where a palette's tiles come from. It replaces the
// single-directory default when TESSERA_PALETTE_MANIFEST is set.
type Manifest struct {
	Dirs    []string `toml:"dirs"`
	Remotes []Remote `toml:"remote"`
}

// Remote is a single tile image fetched over HTTP.
type Remote struct {
	URL  string                    `toml:"url"`
	HTTP httputil.HTTPClientConfig `toml:"http"`
}

func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if len(m.Dirs) == 0 && len(m.Remotes) == 0 {
		return nil, fmt.Errorf("manifest %s declares no tile sources", path)
	}
	for i := range m.Remotes {
		if err := m.Remotes[i].HTTP.Validate(); err != nil {
			return nil, fmt.Errorf("manifest %s remote %s: %w", path, m.Remotes[i].URL, err)
		}
	}
	return &m, nil
}
