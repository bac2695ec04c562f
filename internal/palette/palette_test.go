package palette

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"tessera/internal/geom"
)

func writeSolidPNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSolidPNG(t, filepath.Join(dir, "red.png"), color.RGBA{R: 255, A: 255})
	writeSolidPNG(t, filepath.Join(dir, "green.png"), color.RGBA{G: 255, A: 255})
	writeSolidPNG(t, filepath.Join(dir, "blue.png"), color.RGBA{B: 255, A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o600))

	tiles, err := LoadDir(context.Background(), dir, 2)
	require.NoError(t, err)
	require.Len(t, tiles, 3)

	want := map[string]bool{
		"(255, 0, 0)": false,
		"(0, 255, 0)": false,
		"(0, 0, 255)": false,
	}
	for _, tile := range tiles {
		require.Equal(t, 3, tile.AverageColor().Dimensions())
		require.NotNil(t, tile.Image())
		require.NotEmpty(t, tile.Record().Path)
		key := fmt.Sprintf("(%.0f, %.0f, %.0f)",
			tile.AverageColor().Dim(0), tile.AverageColor().Dim(1), tile.AverageColor().Dim(2))
		seen, ok := want[key]
		require.True(t, ok, "unexpected average color %s", key)
		require.False(t, seen, "duplicate average color %s", key)
		want[key] = true
	}
}

func TestLoadDirMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadDir(context.Background(), filepath.Join(t.TempDir(), "nope"), 2)
	require.Error(t, err)
}

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "palette.toml")
	manifest := `
dirs = ["./tiles", "./extra"]

[[remote]]
url = "https://example.com/tile.png"
`
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Equal(t, []string{"./tiles", "./extra"}, m.Dirs)
	require.Len(t, m.Remotes, 1)
	require.Equal(t, "https://example.com/tile.png", m.Remotes[0].URL)
}

func TestLoadManifestEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "palette.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o600))

	_, err := LoadManifest(path)
	require.Error(t, err)
}

func TestSnapshotNearest(t *testing.T) {
	t.Parallel()

	tiles := []Tile{
		newTile("red", solid(color.RGBA{R: 255, A: 255})),
		newTile("green", solid(color.RGBA{G: 255, A: 255})),
		newTile("blue", solid(color.RGBA{B: 255, A: 255})),
	}
	snapshot, err := newSnapshot(tiles, 16)
	require.NoError(t, err)
	require.Equal(t, 3, snapshot.Len())

	ctx := context.Background()
	got, err := snapshot.Nearest(ctx, geom.New([]float64{200, 10, 10}))
	require.NoError(t, err)
	require.True(t, got.AverageColor().Equal(geom.New([]float64{255, 0, 0})))

	// Same query again exercises the memoized path.
	again, err := snapshot.Nearest(ctx, geom.New([]float64{200, 10, 10}))
	require.NoError(t, err)
	require.True(t, again.AverageColor().Equal(got.AverageColor()))
}

func TestManagerRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSolidPNG(t, filepath.Join(dir, "red.png"), color.RGBA{R: 255, A: 255})
	writeSolidPNG(t, filepath.Join(dir, "blue.png"), color.RGBA{B: 255, A: 255})

	shutdownCh := make(chan error, 1)
	m, err := New(nil, shutdownCh, WithDir(dir), WithMaxConcurrentLoads(2))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, m.Run(ctx))

	snapshot, err := m.Snapshot()
	require.NoError(t, err)
	require.Equal(t, 2, snapshot.Len())

	got, err := snapshot.Nearest(ctx, geom.New([]float64{10, 10, 220}))
	require.NoError(t, err)
	require.True(t, got.AverageColor().Equal(geom.New([]float64{0, 0, 255})))

	cancel()
	require.NoError(t, <-shutdownCh)
}

func TestManagerSnapshotBeforeRun(t *testing.T) {
	t.Parallel()

	shutdownCh := make(chan error, 1)
	m, err := New(nil, shutdownCh, WithDir(t.TempDir()))
	require.NoError(t, err)

	_, err = m.Snapshot()
	require.ErrorIs(t, err, ErrNotReady)

	require.NotPanics(t, m.Stop)
}

func solid(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
