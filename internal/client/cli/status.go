package cli

import (
	"context"
	"errors"

	"github.com/primacrm/primacli/internal/client/auth"
	"github.com/primacrm/primacli/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	creds, err := c.auth.Credentials(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrCredentialsNotFound) {
			c.io.Println("Not logged in.")
			return nil
		}
		return err
	}

	c.io.Println("=== Session status ===")
	c.io.Printf("Access token:  %s\n", tokenState(creds.AccessTokenExpiry))
	c.io.Printf("Refresh token: %s\n", tokenState(creds.RefreshTokenExpiry))

	if auth.IsExpired(creds.RefreshTokenExpiry) {
		c.io.Println("")
		c.io.Println("Session expired. Run 'primacli login' to sign in again.")
	}
	return nil
}

func tokenState(expiry string) string {
	if auth.IsExpired(expiry) {
		return "expired (" + expiry + ")"
	}
	return "valid until " + expiry
}
