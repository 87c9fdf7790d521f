package storage

import "context"

// CredentialStorage defines the lowest storage layer for the credential
// pair. It stores the four fields as-is and performs no expiry logic;
// deciding whether a token is still usable is the auth package's job.
type CredentialStorage interface {
	// SaveCredentials stores the credential pair, replacing any previous one
	SaveCredentials(ctx context.Context, creds *Credentials) error

	// GetCredentials retrieves the stored credential pair
	// Returns ErrCredentialsNotFound if nothing is stored
	GetCredentials(ctx context.Context) (*Credentials, error)

	// DeleteCredentials removes the stored credential pair (logout)
	// Returns ErrCredentialsNotFound if nothing is stored
	DeleteCredentials(ctx context.Context) error
}

// Credentials holds the four values the backend issues on login:
// a short-lived access token, a longer-lived refresh token and their
// expiry timestamps in the backend's ISO 8601 dialect. All fields are
// opaque strings as far as storage is concerned.
type Credentials struct {
	AccessToken        string `json:"access_token"`
	RefreshToken       string `json:"refresh_token"`
	AccessTokenExpiry  string `json:"access_token_expiry"`
	RefreshTokenExpiry string `json:"refresh_token_expiry"`
}
