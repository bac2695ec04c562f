package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tessera/internal/database"
	"tessera/internal/geom"
	"tessera/internal/tile/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	sDB, err := database.NewFromEnv(context.Background(), &database.Config{
		FileName: filepath.Join(t.TempDir(), "tessera_test.db"),
	})
	if err != nil {
		t.Fatalf("unable to open test db: %v", err)
	}
	t.Cleanup(func() {
		_ = sDB.Close(context.Background())
	})

	return New(sDB)
}

func newRecord(path string, color geom.Point) model.Tile {
	return model.NewTile(path, color, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
}

func TestStoreFindAll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	stored := newRecord("tiles/red.png", geom.New([]float64{255, 0, 0}))
	if err := db.Store(ctx, stored); err != nil {
		t.Fatalf("store: %v", err)
	}

	found, err := db.FindAll(ctx, nil)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("got: %v records, expected: %v", len(found), 1)
	}
	if found[0].ID != stored.ID {
		t.Fatalf("got: %v, expected: %v", found[0].ID, stored.ID)
	}
	if !found[0].AvgColor.Equal(stored.AvgColor) {
		t.Fatalf("got: %v, expected: %v", found[0].AvgColor, stored.AvgColor)
	}
}

func TestAppendManyFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	records := []model.Tile{
		newRecord("tiles/red.png", geom.New([]float64{255, 0, 0})),
		newRecord("tiles/green.png", geom.New([]float64{0, 255, 0})),
		newRecord("tiles/blue.png", geom.New([]float64{0, 0, 255})),
	}
	if err := db.AppendMany(ctx, records); err != nil {
		t.Fatalf("append many: %v", err)
	}

	found, err := db.FindAll(ctx, func(tile model.Tile) bool {
		return tile.AvgColor.Dim(0) > 0
	})
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("got: %v records, expected: %v", len(found), 1)
	}
	if found[0].Path != "tiles/red.png" {
		t.Fatalf("got: %v, expected: %v", found[0].Path, "tiles/red.png")
	}
}

func TestDeleteMany(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	records := []model.Tile{
		newRecord("tiles/red.png", geom.New([]float64{255, 0, 0})),
		newRecord("tiles/green.png", geom.New([]float64{0, 255, 0})),
	}
	if err := db.AppendMany(ctx, records); err != nil {
		t.Fatalf("append many: %v", err)
	}
	if err := db.DeleteMany(ctx, records[:1]); err != nil {
		t.Fatalf("delete many: %v", err)
	}

	found, err := db.FindAll(ctx, nil)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("got: %v records, expected: %v", len(found), 1)
	}
	if found[0].Path != "tiles/green.png" {
		t.Fatalf("got: %v, expected: %v", found[0].Path, "tiles/green.png")
	}
}

func TestPurge(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.AppendMany(ctx, []model.Tile{
		newRecord("tiles/red.png", geom.New([]float64{255, 0, 0})),
	}); err != nil {
		t.Fatalf("append many: %v", err)
	}
	if err := db.Purge(ctx); err != nil {
		t.Fatalf("purge: %v", err)
	}

	found, err := db.FindAll(ctx, nil)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("got: %v records, expected: %v", len(found), 0)
	}

	// Purge on an empty db is a no-op.
	if err := db.Purge(ctx); err != nil {
		t.Fatalf("purge empty: %v", err)
	}
}
