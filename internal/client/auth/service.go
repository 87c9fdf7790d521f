package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/primacrm/primacli/internal/client/api"
	"github.com/primacrm/primacli/internal/client/storage"
	pkgapi "github.com/primacrm/primacli/pkg/api"
)

// ErrSessionExpired is the abort sentinel: the session could not be kept
// alive and the stored credentials have been cleared. Callers must stop
// the in-flight operation; the logout hook has already fired, so nothing
// else needs to be reported to the user.
var ErrSessionExpired = errors.New("session expired")

// Status is the session lifecycle state.
type Status int

const (
	// StatusAuthenticated means a credential pair is stored and usable
	StatusAuthenticated Status = iota
	// StatusRefreshing means an access token refresh is in progress
	StatusRefreshing
	// StatusLoggedOut means the session is gone; the transition here is
	// idempotent and fires the logout hook at most once
	StatusLoggedOut
)

// refreshClient is the slice of the API client the guard needs.
type refreshClient interface {
	RefreshAccessToken(ctx context.Context, refreshToken string) (*pkgapi.RefreshResponse, error)
}

// Service guards the credential pair lifecycle: it refreshes the access
// token ahead of expiry, rotates the stored credentials and performs an
// idempotent logout once the refresh token itself is expired or a
// refresh fails.
type Service struct {
	api       refreshClient
	store     storage.CredentialStorage
	lookahead time.Duration

	mu       sync.Mutex
	status   Status
	onLogout func()
}

// NewService creates a new session guard. lookahead is how long before
// the access token expiry a scheduled refresh kicks in.
func NewService(apiClient refreshClient, store storage.CredentialStorage, lookahead time.Duration) *Service {
	if lookahead <= 0 {
		lookahead = time.Minute
	}
	return &Service{
		api:       apiClient,
		store:     store,
		lookahead: lookahead,
	}
}

// NotifyLogout registers a hook invoked exactly once when the session
// transitions to the logged-out state, no matter how many callers detect
// expiry concurrently.
func (s *Service) NotifyLogout(fn func()) {
	s.mu.Lock()
	s.onLogout = fn
	s.mu.Unlock()
}

// Status returns the current session state.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Credentials returns the stored credential pair.
func (s *Service) Credentials(ctx context.Context) (*storage.Credentials, error) {
	return s.store.GetCredentials(ctx)
}

// SaveCredentials stores a freshly issued credential pair and marks the
// session authenticated again.
func (s *Service) SaveCredentials(ctx context.Context, creds *storage.Credentials) error {
	if err := s.store.SaveCredentials(ctx, creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	s.setStatus(StatusAuthenticated)
	return nil
}

// Logout clears the stored credential pair. The status transition is
// idempotent: only the caller that actually performs it fires the hook.
func (s *Service) Logout(ctx context.Context) error {
	var hook func()
	s.mu.Lock()
	if s.status != StatusLoggedOut {
		s.status = StatusLoggedOut
		hook = s.onLogout
	}
	s.mu.Unlock()

	err := s.store.DeleteCredentials(ctx)

	if hook != nil {
		hook()
	}

	if err != nil && !errors.Is(err, storage.ErrCredentialsNotFound) {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// Refresh mints a new access token using the stored refresh token and
// rotates the stored pair. On a missing or expired refresh token, or any
// backend failure, the credentials are cleared and ErrSessionExpired is
// returned; the caller must abort whatever it was doing.
func (s *Service) Refresh(ctx context.Context) (string, error) {
	creds, err := s.store.GetCredentials(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrCredentialsNotFound) {
			slog.Warn("failed to read credentials before refresh", "error", err)
		}
		_ = s.Logout(ctx)
		return "", ErrSessionExpired
	}

	if creds.RefreshToken == "" || IsExpired(creds.RefreshTokenExpiry) {
		_ = s.Logout(ctx)
		return "", ErrSessionExpired
	}

	s.setStatus(StatusRefreshing)

	resp, err := s.api.RefreshAccessToken(ctx, creds.RefreshToken)
	if err != nil {
		slog.Warn("access token refresh failed", "error", err)
		_ = s.Logout(ctx)
		return "", ErrSessionExpired
	}

	creds.AccessToken = resp.Data.AccessToken
	creds.AccessTokenExpiry = resp.Data.AccessTokenExpiry
	if err := s.SaveCredentials(ctx, creds); err != nil {
		return "", err
	}

	slog.Debug("access token refreshed", "expiry", creds.AccessTokenExpiry)
	return creds.AccessToken, nil
}

// Do runs fn with a valid access token: it refreshes beforehand when the
// token is missing or expired, aborts when the refresh token is gone and
// retries fn exactly once after an unauthorized response. fn is never
// invoked more than twice. ErrSessionExpired means the operation was
// aborted and the session has been torn down.
func (s *Service) Do(ctx context.Context, fn func(ctx context.Context, token string) error) error {
	creds, err := s.store.GetCredentials(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrCredentialsNotFound) {
			return fmt.Errorf("failed to read credentials: %w", err)
		}
		_ = s.Logout(ctx)
		return ErrSessionExpired
	}

	token := creds.AccessToken
	if token == "" || IsExpired(creds.AccessTokenExpiry) {
		if token, err = s.Refresh(ctx); err != nil {
			return err
		}
	}

	// A live access token is not enough once the refresh token is gone
	if IsExpired(creds.RefreshTokenExpiry) {
		_ = s.Logout(ctx)
		return ErrSessionExpired
	}

	err = fn(ctx, token)
	if err == nil {
		return nil
	}
	if !errors.Is(err, api.ErrUnauthorized) {
		return err
	}

	token, refreshErr := s.Refresh(ctx)
	if refreshErr != nil {
		return refreshErr
	}
	return fn(ctx, token)
}

// Watch runs the periodic expiry check until ctx is cancelled. Each tick
// logs the session out once the refresh token is expired, and refreshes
// the access token when it is about to expire.
func (s *Service) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		s.tick(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule expiry check: %w", err)
	}

	c.Start()
	<-ctx.Done()
	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}

// tick is one pass of the expiry watcher.
func (s *Service) tick(ctx context.Context) {
	creds, err := s.store.GetCredentials(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrCredentialsNotFound) {
			_ = s.Logout(ctx)
			return
		}
		slog.Warn("expiry check failed", "error", err)
		return
	}

	if IsExpired(creds.RefreshTokenExpiry) {
		_ = s.Logout(ctx)
		return
	}

	if ExpiresWithin(creds.AccessTokenExpiry, s.lookahead) {
		if _, err := s.Refresh(ctx); err != nil && !errors.Is(err, ErrSessionExpired) {
			slog.Warn("scheduled token refresh failed", "error", err)
		}
	}
}

func (s *Service) setStatus(status Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}
