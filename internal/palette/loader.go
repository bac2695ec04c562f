package palette

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"tessera/internal/httputil"
	"tessera/internal/mosaic"
	"tessera/internal/tile/model"
)

// LoadDir decodes every supported image under dir concurrently and reduces
// each to a tile record with its average color.
func LoadDir(ctx context.Context, dir string, maxConcurrent int) ([]Tile, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".png", ".jpg", ".jpeg", ".gif":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk tile dir %s: %w", dir, err)
	}

	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	tiles := make([]Tile, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			t, err := loadFile(path)
			if err != nil {
				return err
			}
			tiles[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return tiles, nil
}

func loadFile(path string) (Tile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tile{}, fmt.Errorf("open tile %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Tile{}, fmt.Errorf("decode tile %s: %w", path, err)
	}

	return newTile(path, img), nil
}

// loadRemotes fetches each manifest remote with its own configured client.
// Remotes are few; they are fetched sequentially to keep auth handling
// simple.
func loadRemotes(ctx context.Context, remotes []Remote) ([]Tile, error) {
	var tiles []Tile
	for _, remote := range remotes {
		client, err := httputil.NewClientFromConfig(remote.HTTP, true)
		if err != nil {
			return nil, fmt.Errorf("remote %s: %w", remote.URL, err)
		}
		t, err := fetchRemote(ctx, client, remote.URL)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

func fetchRemote(ctx context.Context, client *http.Client, url string) (Tile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Tile{}, fmt.Errorf("remote %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Tile{}, fmt.Errorf("remote %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Tile{}, fmt.Errorf("remote %s: unexpected status %d", url, resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return Tile{}, fmt.Errorf("decode remote %s: %w", url, err)
	}

	return newTile(url, img), nil
}

func newTile(path string, img image.Image) Tile {
	avg := mosaic.AverageColor(img, img.Bounds())
	return Tile{
		rec: model.NewTile(path, avg, time.Now()),
		img: img,
	}
}
