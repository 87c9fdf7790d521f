package storage

import "errors"

// Common client storage errors
var (
	// ErrCredentialsNotFound indicates that no credential pair is stored
	ErrCredentialsNotFound = errors.New("credentials not found")

	// ErrSelectionsNotFound indicates that no saved form selections exist
	ErrSelectionsNotFound = errors.New("selections not found")
)
