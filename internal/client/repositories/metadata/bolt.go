package metadata

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var metadataBucket = []byte("metadata")

// BoltRepository stores metadata in a single bbolt bucket.
type BoltRepository struct {
	db *bolt.DB
}

// NewBoltRepository creates the bucket when missing.
func NewBoltRepository(db *bolt.DB) (*BoltRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(metadataBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata bucket: %w", err)
	}
	return &BoltRepository{db: db}, nil
}

func (r *BoltRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var value []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(metadataBucket).Get([]byte(key))
		if v != nil {
			// bbolt values are only valid inside the transaction
			value = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *BoltRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	err := r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metadataBucket).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *BoltRepository) Delete(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(metadataBucket)
		for _, key := range keys {
			if err := b.Delete([]byte(key)); err != nil {
				return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
			}
		}
		return nil
	})
}

func (r *BoltRepository) List(ctx context.Context) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := make(map[string][]byte)
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(metadataBucket).ForEach(func(k, v []byte) error {
			result[string(k)] = append([]byte{}, v...)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}
	return result, nil
}

func (r *BoltRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(metadataBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(metadataBucket)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}
