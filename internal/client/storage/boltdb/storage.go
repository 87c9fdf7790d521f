package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/primacrm/primacli/internal/client/storage"
)

var (
	// BoltDB bucket names
	bucketCredentials = []byte("credentials")
	bucketHistory     = []byte("history")
	bucketSelections  = []byte("selections")
)

// Compile-time checks that Storage implements the client storage interfaces
var (
	_ storage.CredentialStorage = (*Storage)(nil)
	_ storage.HistoryStorage    = (*Storage)(nil)
	_ storage.SelectionsStorage = (*Storage)(nil)
)

// Storage represents BoltDB storage implementation for the client
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets creates the required buckets if they do not exist yet
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketCredentials, bucketHistory, bucketSelections} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}
