package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expiry  string
		expired bool
	}{
		{
			name:    "empty string",
			expiry:  "",
			expired: true,
		},
		{
			name:    "garbage",
			expiry:  "not-a-timestamp",
			expired: true,
		},
		{
			name:    "past instant with fraction and offset",
			expiry:  "2000-01-01T00:00:00.000+00:00",
			expired: true,
		},
		{
			name:    "far future",
			expiry:  "2099-01-01T00:00:00Z",
			expired: false,
		},
		{
			name:    "future with microseconds and offset",
			expiry:  "2025-06-15T12:30:00.123456+00:00",
			expired: false,
		},
		{
			name:    "one second in the past",
			expiry:  "2025-06-15T11:59:59Z",
			expired: true,
		},
		{
			name:    "one second in the future",
			expiry:  "2025-06-15T12:00:01Z",
			expired: false,
		},
		{
			name:    "explicit non-UTC offset",
			expiry:  "2025-06-15T14:00:00+03:00",
			expired: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, isExpiredAt(tt.expiry, now))
		})
	}
}

func TestExpiresWithin(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	window := time.Minute

	tests := []struct {
		name   string
		expiry string
		within bool
	}{
		{
			name:   "expires in 30 seconds",
			expiry: "2025-06-15T12:00:30Z",
			within: true,
		},
		{
			name:   "expires in 2 minutes",
			expiry: "2025-06-15T12:02:00Z",
			within: false,
		},
		{
			name:   "already expired",
			expiry: "2025-06-15T11:00:00Z",
			within: true,
		},
		{
			name:   "unparsable counts as expired",
			expiry: "later",
			within: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.within, expiresWithinAt(tt.expiry, window, now))
		})
	}
}

func TestNormalizeExpiry(t *testing.T) {
	assert.Equal(t, "2025-01-02T03:04:05Z", normalizeExpiry("2025-01-02T03:04:05.123456+00:00"))
	assert.Equal(t, "2025-01-02T03:04:05Z", normalizeExpiry("2025-01-02T03:04:05Z"))
	assert.Equal(t, "2025-01-02T03:04:05+02:00", normalizeExpiry("2025-01-02T03:04:05+02:00"))
}
