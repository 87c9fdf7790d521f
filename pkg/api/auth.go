package api

// LoginRequest is the credentials payload for /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenData carries the credential pair issued by the backend. Expiry
// fields are ISO 8601 strings in the backend's dialect (fractional
// seconds plus a literal "+00:00" offset); the client treats them as
// opaque until the auth layer parses them.
type TokenData struct {
	AccessToken        string `json:"access_token"`
	RefreshToken       string `json:"refresh_token"`
	AccessTokenExpiry  string `json:"access_token_expiry"`
	RefreshTokenExpiry string `json:"refresh_token_expiry"`
}

// LoginResponse is the successful /auth/login body.
type LoginResponse struct {
	Data TokenData `json:"data"`
}

// RefreshRequest is the payload for /auth/get-new-access-token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshData holds the rotated access token. The refresh token itself is
// not rotated by this call.
type RefreshData struct {
	AccessToken       string `json:"access_token"`
	AccessTokenExpiry string `json:"access_token_expiry"`
}

// RefreshResponse is the successful /auth/get-new-access-token body.
type RefreshResponse struct {
	Data RefreshData `json:"data"`
}

// ErrorResponse is the backend's error body.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
