package domain

import (
	"encoding/base64"
	"fmt"
)

// Credentials authenticate requests against the GitHub API.
type Credentials interface {
	// AuthorizationHeader returns the value of the Authorization header.
	AuthorizationHeader() string
}

// OAuthToken authenticates with a personal access or OAuth token.
type OAuthToken struct {
	Token string
}

// AuthorizationHeader returns "token <token>".
func (t OAuthToken) AuthorizationHeader() string {
	return fmt.Sprintf("token %s", t.Token)
}

// UsernamePassword authenticates with HTTP basic auth.
// The password may also be a token.
type UsernamePassword struct {
	Username string
	Password string
}

// AuthorizationHeader returns "Basic <base64(username:password)>".
func (u UsernamePassword) AuthorizationHeader() string {
	raw := fmt.Sprintf("%s:%s", u.Username, u.Password)
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}
