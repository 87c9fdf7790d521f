package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/primacrm/primacli/internal/client/storage"
)

var historyKey = []byte("sessions")

// SaveSessions stores the full session list, replacing the previous one.
// The list is kept as a single JSON array record; there is no
// per-session update path.
func (s *Storage) SaveSessions(ctx context.Context, sessions []storage.ReportSession) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketHistory)
		if bucket == nil {
			return fmt.Errorf("history bucket not found")
		}

		data, err := json.Marshal(sessions)
		if err != nil {
			return fmt.Errorf("failed to marshal sessions: %w", err)
		}

		if err := bucket.Put(historyKey, data); err != nil {
			return fmt.Errorf("failed to save sessions: %w", err)
		}

		return nil
	})
}

// GetSessions retrieves the stored session list
func (s *Storage) GetSessions(ctx context.Context) ([]storage.ReportSession, error) {
	var sessions []storage.ReportSession

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketHistory)
		if bucket == nil {
			return fmt.Errorf("history bucket not found")
		}

		data := bucket.Get(historyKey)
		if data == nil {
			return nil
		}

		if err := json.Unmarshal(data, &sessions); err != nil {
			return fmt.Errorf("failed to unmarshal sessions: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return sessions, nil
}
