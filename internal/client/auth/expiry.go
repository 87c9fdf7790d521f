package auth

import (
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// fractionPattern matches the sub-second component of the backend's
// timestamp dialect, e.g. "2025-01-02T03:04:05.123456+00:00".
var fractionPattern = regexp.MustCompile(`\.\d+`)

// normalizeExpiry converts the backend's ISO 8601 dialect into a plain
// RFC 3339 string: the fractional seconds are stripped and a literal
// "+00:00" suffix becomes "Z".
func normalizeExpiry(expiry string) string {
	s := fractionPattern.ReplaceAllString(expiry, "")
	if strings.HasSuffix(s, "+00:00") {
		s = strings.TrimSuffix(s, "+00:00") + "Z"
	}
	return s
}

// parseExpiry parses a backend expiry string. Missing or unparsable
// values report ok=false.
func parseExpiry(expiry string) (time.Time, bool) {
	if expiry == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, normalizeExpiry(expiry))
	if err != nil {
		slog.Debug("unparsable token expiry", "expiry", expiry, "error", err)
		return time.Time{}, false
	}
	return t, true
}

// IsExpired reports whether the given expiry denotes a past instant.
// Missing or unparsable values are treated as expired (fail safe).
func IsExpired(expiry string) bool {
	return isExpiredAt(expiry, time.Now())
}

func isExpiredAt(expiry string, now time.Time) bool {
	t, ok := parseExpiry(expiry)
	if !ok {
		return true
	}
	return t.Before(now)
}

// ExpiresWithin reports whether the expiry falls within the given window
// from now. Missing or unparsable values count as already expired.
func ExpiresWithin(expiry string, window time.Duration) bool {
	return expiresWithinAt(expiry, window, time.Now())
}

func expiresWithinAt(expiry string, window time.Duration, now time.Time) bool {
	t, ok := parseExpiry(expiry)
	if !ok {
		return true
	}
	return t.Sub(now) < window
}
