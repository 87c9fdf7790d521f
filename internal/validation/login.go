package validation

import (
	"fmt"
	"regexp"
)

// EmailPattern is the permissive shape check applied to the login
// username: something, an @, something, a dot, something.
var EmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// MinPasswordLen is the minimum login password length
const MinPasswordLen = 6

// ValidateLogin checks the login form fields in order; the first failing
// check wins and its message is the one shown to the user.
func ValidateLogin(username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("both fields are required")
	}
	if !EmailPattern.MatchString(username) {
		return fmt.Errorf("invalid email format")
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}
