package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/primacrm/primacli/internal/client/storage"
)

var selectionsKey = []byte("current")

// SaveSelections stores the last-used form selections
func (s *Storage) SaveSelections(ctx context.Context, sel *storage.Selections) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSelections)
		if bucket == nil {
			return fmt.Errorf("selections bucket not found")
		}

		data, err := json.Marshal(sel)
		if err != nil {
			return fmt.Errorf("failed to marshal selections: %w", err)
		}

		if err := bucket.Put(selectionsKey, data); err != nil {
			return fmt.Errorf("failed to save selections: %w", err)
		}

		return nil
	})
}

// GetSelections retrieves the stored form selections
func (s *Storage) GetSelections(ctx context.Context) (*storage.Selections, error) {
	var sel *storage.Selections

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSelections)
		if bucket == nil {
			return fmt.Errorf("selections bucket not found")
		}

		data := bucket.Get(selectionsKey)
		if data == nil {
			return storage.ErrSelectionsNotFound
		}

		sel = &storage.Selections{}
		if err := json.Unmarshal(data, sel); err != nil {
			return fmt.Errorf("failed to unmarshal selections: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return sel, nil
}
