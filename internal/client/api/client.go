package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/primacrm/primacli/pkg/api"
)

// ErrUnauthorized is returned when the backend rejects the bearer token
// with HTTP 401. The auth layer reacts by refreshing the access token and
// retrying the call once.
var ErrUnauthorized = errors.New("unauthorized")

// Client represents the HTTP client for the report backend
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Keep the Authorization header across redirects
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Login exchanges the username and password for a credential pair
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	err := c.doRequest(ctx, "POST", "/auth/login", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// RefreshAccessToken mints a new access token from the refresh token.
// The refresh token itself is not rotated.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (*api.RefreshResponse, error) {
	var resp api.RefreshResponse
	req := api.RefreshRequest{RefreshToken: refreshToken}
	err := c.doRequest(ctx, "POST", "/auth/get-new-access-token", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// GenerateReport submits a report generation request. The call is
// cancellable through ctx; generation can take a while.
func (c *Client) GenerateReport(
	ctx context.Context,
	token string,
	req api.GenerateReportRequest,
) (*api.GenerateReportResponse, error) {
	var resp api.GenerateReportResponse
	if err := c.doRequest(ctx, "POST", "/report/generate", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ModifyReport pushes edited report content to the backend
func (c *Client) ModifyReport(ctx context.Context, token string, req api.ModifyReportRequest) error {
	var resp api.ReportActionResponse
	return c.doRequest(ctx, "POST", "/report/modify", token, req, &resp)
}

// FinalizeReport marks a report as final on the backend
func (c *Client) FinalizeReport(ctx context.Context, token string, req api.FinalizeReportRequest) error {
	var resp api.ReportActionResponse
	return c.doRequest(ctx, "POST", "/report/finalize", token, req, &resp)
}

// BulkModifyReports pushes several report contents in one call
func (c *Client) BulkModifyReports(ctx context.Context, token string, req api.BulkModifyRequest) error {
	var resp api.ReportActionResponse
	return c.doRequest(ctx, "POST", "/report/bulk", token, req, &resp)
}

// doRequest performs an HTTP request against the backend. A non-empty
// token is sent as a bearer Authorization header.
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorized, errorMessage(respBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// errorMessage extracts a human-readable message from an error body.
func errorMessage(body []byte) string {
	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return strings.TrimSpace(string(body))
}
