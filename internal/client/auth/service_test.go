package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primacrm/primacli/internal/client/api"
	"github.com/primacrm/primacli/internal/client/storage"
	pkgapi "github.com/primacrm/primacli/pkg/api"
)

// mockCredentialStorage implements storage.CredentialStorage for testing
type mockCredentialStorage struct {
	creds     *storage.Credentials
	saveErr   error
	getErr    error
	deleteErr error
}

func (m *mockCredentialStorage) SaveCredentials(ctx context.Context, creds *storage.Credentials) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *creds
	m.creds = &copied
	return nil
}

func (m *mockCredentialStorage) GetCredentials(ctx context.Context) (*storage.Credentials, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.creds == nil {
		return nil, storage.ErrCredentialsNotFound
	}
	copied := *m.creds
	return &copied, nil
}

func (m *mockCredentialStorage) DeleteCredentials(ctx context.Context) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if m.creds == nil {
		return storage.ErrCredentialsNotFound
	}
	m.creds = nil
	return nil
}

// mockRefreshClient implements the refresh endpoint for testing
type mockRefreshClient struct {
	resp  *pkgapi.RefreshResponse
	err   error
	calls int
}

func (m *mockRefreshClient) RefreshAccessToken(ctx context.Context, refreshToken string) (*pkgapi.RefreshResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func futureExpiry(d time.Duration) string {
	return time.Now().Add(d).UTC().Format(time.RFC3339)
}

func validCredentials() *storage.Credentials {
	return &storage.Credentials{
		AccessToken:        "access-1",
		RefreshToken:       "refresh-1",
		AccessTokenExpiry:  futureExpiry(time.Hour),
		RefreshTokenExpiry: futureExpiry(24 * time.Hour),
	}
}

func TestService_Refresh_Success(t *testing.T) {
	store := &mockCredentialStorage{creds: validCredentials()}
	client := &mockRefreshClient{
		resp: &pkgapi.RefreshResponse{
			Data: pkgapi.RefreshData{
				AccessToken:       "access-2",
				AccessTokenExpiry: "2099-01-01T00:00:00.000+00:00",
			},
		},
	}
	svc := NewService(client, store, time.Minute)

	token, err := svc.Refresh(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "access-2", token)
	assert.Equal(t, "access-2", store.creds.AccessToken)
	assert.Equal(t, "2099-01-01T00:00:00.000+00:00", store.creds.AccessTokenExpiry)
	// The refresh token itself is not rotated
	assert.Equal(t, "refresh-1", store.creds.RefreshToken)
	assert.Equal(t, StatusAuthenticated, svc.Status())
}

func TestService_Refresh_ExpiredRefreshToken(t *testing.T) {
	creds := validCredentials()
	creds.RefreshTokenExpiry = "2000-01-01T00:00:00.000+00:00"
	store := &mockCredentialStorage{creds: creds}
	client := &mockRefreshClient{}
	svc := NewService(client, store, time.Minute)

	logouts := 0
	svc.NotifyLogout(func() { logouts++ })

	token, err := svc.Refresh(context.Background())

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, token)
	assert.Nil(t, store.creds, "credentials must be cleared")
	assert.Equal(t, 0, client.calls, "no refresh request should be sent")
	assert.Equal(t, 1, logouts)
	assert.Equal(t, StatusLoggedOut, svc.Status())
}

func TestService_Refresh_BackendFailure(t *testing.T) {
	store := &mockCredentialStorage{creds: validCredentials()}
	client := &mockRefreshClient{err: fmt.Errorf("server error (500): boom")}
	svc := NewService(client, store, time.Minute)

	_, err := svc.Refresh(context.Background())

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Nil(t, store.creds)
	assert.Equal(t, StatusLoggedOut, svc.Status())
}

func TestService_Logout_Idempotent(t *testing.T) {
	store := &mockCredentialStorage{creds: validCredentials()}
	svc := NewService(&mockRefreshClient{}, store, time.Minute)

	logouts := 0
	svc.NotifyLogout(func() { logouts++ })

	require.NoError(t, svc.Logout(context.Background()))
	require.NoError(t, svc.Logout(context.Background()))
	require.NoError(t, svc.Logout(context.Background()))

	assert.Equal(t, 1, logouts, "logout hook must fire at most once")
	assert.Nil(t, store.creds)
}

func TestService_Do_Success(t *testing.T) {
	store := &mockCredentialStorage{creds: validCredentials()}
	client := &mockRefreshClient{}
	svc := NewService(client, store, time.Minute)

	var gotToken string
	calls := 0
	err := svc.Do(context.Background(), func(ctx context.Context, token string) error {
		calls++
		gotToken = token
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "access-1", gotToken)
	assert.Equal(t, 0, client.calls, "no refresh needed for a live token")
}

func TestService_Do_RefreshesExpiredAccessToken(t *testing.T) {
	creds := validCredentials()
	creds.AccessTokenExpiry = "2000-01-01T00:00:00.000+00:00"
	store := &mockCredentialStorage{creds: creds}
	client := &mockRefreshClient{
		resp: &pkgapi.RefreshResponse{
			Data: pkgapi.RefreshData{
				AccessToken:       "access-2",
				AccessTokenExpiry: futureExpiry(time.Hour),
			},
		},
	}
	svc := NewService(client, store, time.Minute)

	var gotToken string
	err := svc.Do(context.Background(), func(ctx context.Context, token string) error {
		gotToken = token
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "access-2", gotToken)
	assert.Equal(t, 1, client.calls)
}

func TestService_Do_ExpiredRefreshTokenAborts(t *testing.T) {
	// The access token is still live, but the session must still be torn
	// down once the refresh token is gone
	creds := validCredentials()
	creds.RefreshTokenExpiry = "2000-01-01T00:00:00.000+00:00"
	store := &mockCredentialStorage{creds: creds}
	svc := NewService(&mockRefreshClient{}, store, time.Minute)

	logouts := 0
	svc.NotifyLogout(func() { logouts++ })

	calls := 0
	err := svc.Do(context.Background(), func(ctx context.Context, token string) error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 0, calls, "wrapped call must not run")
	assert.Nil(t, store.creds)
	assert.Equal(t, 1, logouts)
}

func TestService_Do_RetriesOnceOnUnauthorized(t *testing.T) {
	store := &mockCredentialStorage{creds: validCredentials()}
	client := &mockRefreshClient{
		resp: &pkgapi.RefreshResponse{
			Data: pkgapi.RefreshData{
				AccessToken:       "access-2",
				AccessTokenExpiry: futureExpiry(time.Hour),
			},
		},
	}
	svc := NewService(client, store, time.Minute)

	var tokens []string
	err := svc.Do(context.Background(), func(ctx context.Context, token string) error {
		tokens = append(tokens, token)
		if len(tokens) == 1 {
			return fmt.Errorf("%w: stale token", api.ErrUnauthorized)
		}
		return nil
	})

	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "access-1", tokens[0])
	assert.Equal(t, "access-2", tokens[1])
	assert.Equal(t, 1, client.calls)
}

func TestService_Do_NeverCallsMoreThanTwice(t *testing.T) {
	store := &mockCredentialStorage{creds: validCredentials()}
	client := &mockRefreshClient{
		resp: &pkgapi.RefreshResponse{
			Data: pkgapi.RefreshData{
				AccessToken:       "access-2",
				AccessTokenExpiry: futureExpiry(time.Hour),
			},
		},
	}
	svc := NewService(client, store, time.Minute)

	calls := 0
	err := svc.Do(context.Background(), func(ctx context.Context, token string) error {
		calls++
		return fmt.Errorf("%w: still stale", api.ErrUnauthorized)
	})

	assert.Error(t, err)
	assert.Equal(t, 2, calls, "wrapped call must run at most twice")
}

func TestService_Do_PropagatesOtherErrors(t *testing.T) {
	store := &mockCredentialStorage{creds: validCredentials()}
	client := &mockRefreshClient{}
	svc := NewService(client, store, time.Minute)

	wantErr := errors.New("server error (503): unavailable")
	err := svc.Do(context.Background(), func(ctx context.Context, token string) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0, client.calls, "non-auth failures must not trigger a refresh")
	assert.NotNil(t, store.creds, "credentials must survive transport errors")
}

func TestService_Do_NoCredentials(t *testing.T) {
	store := &mockCredentialStorage{}
	svc := NewService(&mockRefreshClient{}, store, time.Minute)

	err := svc.Do(context.Background(), func(ctx context.Context, token string) error {
		t.Fatal("wrapped call must not run")
		return nil
	})

	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestService_Tick_LogsOutOnExpiredRefreshToken(t *testing.T) {
	creds := validCredentials()
	creds.RefreshTokenExpiry = "2000-01-01T00:00:00.000+00:00"
	store := &mockCredentialStorage{creds: creds}
	svc := NewService(&mockRefreshClient{}, store, time.Minute)

	logouts := 0
	svc.NotifyLogout(func() { logouts++ })

	svc.tick(context.Background())
	svc.tick(context.Background())

	assert.Nil(t, store.creds)
	assert.Equal(t, 1, logouts, "a second tick must not navigate again")
}

func TestService_Tick_RefreshesWithinLookahead(t *testing.T) {
	creds := validCredentials()
	creds.AccessTokenExpiry = futureExpiry(30 * time.Second)
	store := &mockCredentialStorage{creds: creds}
	client := &mockRefreshClient{
		resp: &pkgapi.RefreshResponse{
			Data: pkgapi.RefreshData{
				AccessToken:       "access-2",
				AccessTokenExpiry: futureExpiry(time.Hour),
			},
		},
	}
	svc := NewService(client, store, time.Minute)

	svc.tick(context.Background())

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "access-2", store.creds.AccessToken)
}

func TestService_Tick_LeavesFreshTokensAlone(t *testing.T) {
	store := &mockCredentialStorage{creds: validCredentials()}
	client := &mockRefreshClient{}
	svc := NewService(client, store, time.Minute)

	svc.tick(context.Background())

	assert.Equal(t, 0, client.calls)
	assert.Equal(t, "access-1", store.creds.AccessToken)
}
