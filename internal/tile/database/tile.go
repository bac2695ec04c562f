package database

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"tessera/internal/database"
	"tessera/internal/tile/model"
)

const (
	tileBucket = "tile:records"
	pathBucket = "tile:paths"
)

type FilterFn func(tile model.Tile) bool

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

type DB struct {
	sDB *database.DB
}

func (db *DB) Store(_ context.Context, tile model.Tile) error {
	bytes, err := json.Marshal(tile)
	if err != nil {
		return err
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(tileBucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		if err := b.Put([]byte(tile.ID.String()), bytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}
		paths, err := tx.CreateBucketIfNotExists([]byte(pathBucket))
		if err != nil {
			return fmt.Errorf("create paths bucket: %w", err)
		}
		if err := paths.Put([]byte(tile.Path), []byte(tile.ID.String())); err != nil {
			return fmt.Errorf("put to paths bucket error: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

func (db *DB) AppendMany(_ context.Context, tiles []model.Tile) error {
	if err := db.sDB.DB.Batch(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(tileBucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		paths, err := tx.CreateBucketIfNotExists([]byte(pathBucket))
		if err != nil {
			return fmt.Errorf("create paths bucket: %w", err)
		}
		for _, tile := range tiles {
			bytes, err := json.Marshal(tile)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(tile.ID.String()), bytes); err != nil {
				return fmt.Errorf("put to bucket error: %w", err)
			}
			if err := paths.Put([]byte(tile.Path), []byte(tile.ID.String())); err != nil {
				return fmt.Errorf("put to paths bucket error: %w", err)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("batch transaction error: %w", err)
	}

	return nil
}

func (db *DB) FindAll(_ context.Context, filter FilterFn) ([]model.Tile, error) {
	var tiles []model.Tile
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(tileBucket))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var tile model.Tile
			if err := json.Unmarshal(v, &tile); err != nil {
				return fmt.Errorf("unmarshal tile %s: %w", k, err)
			}
			if filter == nil || filter(tile) {
				tiles = append(tiles, tile)
			}
		}
		return nil
	})

	return tiles, err
}

func (db *DB) DeleteMany(_ context.Context, tiles []model.Tile) error {
	if err := db.sDB.DB.Batch(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(tileBucket))
		if b == nil {
			return nil
		}
		paths := tx.Bucket([]byte(pathBucket))
		for _, tile := range tiles {
			if err := b.Delete([]byte(tile.ID.String())); err != nil {
				return fmt.Errorf("unable delete: %w", err)
			}
			if paths != nil {
				if err := paths.Delete([]byte(tile.Path)); err != nil {
					return fmt.Errorf("unable delete path: %w", err)
				}
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("batch transaction error: %w", err)
	}

	return nil
}

// Purge drops every tile record. Called before a full re-ingest so removed
// source files do not linger in the library.
func (db *DB) Purge(_ context.Context) error {
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{tileBucket, pathBucket} {
			if tx.Bucket([]byte(name)) == nil {
				continue
			}
			if err := tx.DeleteBucket([]byte(name)); err != nil {
				return fmt.Errorf("delete bucket %s: %w", name, err)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}
