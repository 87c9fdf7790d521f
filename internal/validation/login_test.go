package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  string
	}{
		{name: "valid", username: "coach@example.com", password: "secret1", wantErr: ""},
		{name: "empty username", username: "", password: "secret1", wantErr: "both fields are required"},
		{name: "empty password", username: "coach@example.com", password: "", wantErr: "both fields are required"},
		{name: "both empty", username: "", password: "", wantErr: "both fields are required"},
		{name: "no at sign", username: "coach.example.com", password: "secret1", wantErr: "invalid email format"},
		{name: "no domain dot", username: "coach@example", password: "secret1", wantErr: "invalid email format"},
		{name: "whitespace in address", username: "co ach@example.com", password: "secret1", wantErr: "invalid email format"},
		{name: "short password", username: "coach@example.com", password: "abc12", wantErr: "password must be at least 6 characters"},
		{name: "password at minimum", username: "coach@example.com", password: "abc123", wantErr: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLogin(tt.username, tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
