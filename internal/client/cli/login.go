package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/primacrm/primacli/internal/client/auth"
	"github.com/primacrm/primacli/internal/client/storage"
	"github.com/primacrm/primacli/internal/validation"
	pkgapi "github.com/primacrm/primacli/pkg/api"
)

func (c *Cli) runLogin(ctx context.Context) error {
	// A live session short-circuits the login screen
	if creds, err := c.auth.Credentials(ctx); err == nil && !auth.IsExpired(creds.RefreshTokenExpiry) {
		c.io.Println("Already logged in. Run 'primacli logout' first to switch accounts.")
		return nil
	}

	username, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if err := validation.ValidateLogin(username, password); err != nil {
		return err
	}

	c.io.Println("Logging in...")

	resp, err := c.apiClient.Login(ctx, pkgapi.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	creds := &storage.Credentials{
		AccessToken:        resp.Data.AccessToken,
		RefreshToken:       resp.Data.RefreshToken,
		AccessTokenExpiry:  resp.Data.AccessTokenExpiry,
		RefreshTokenExpiry: resp.Data.RefreshTokenExpiry,
	}
	if err := c.auth.SaveCredentials(ctx, creds); err != nil {
		return err
	}

	c.io.Println("Login successful.")
	c.io.Printf("Access token expires at: %s\n", creds.AccessTokenExpiry)
	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.auth.Logout(ctx); err != nil {
		if errors.Is(err, storage.ErrCredentialsNotFound) {
			c.io.Println("Not logged in.")
			return nil
		}
		return err
	}
	c.io.Println("Logged out.")
	return nil
}
