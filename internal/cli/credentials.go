package cli

import (
	"errors"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// Credential keys and the environment variables they are read from.
// The first set variable wins.
const (
	tokenKey    = "token"
	usernameKey = "username"
	passwordKey = "password"
)

var (
	tokenEnv    = []string{"CHANGELOG_GITHUB_TOKEN", "GITHUB_TOKEN"}
	usernameEnv = []string{"CHANGELOG_GITHUB_USERNAME"}
	passwordEnv = []string{"CHANGELOG_GITHUB_PASSWORD"}
)

var errPasswordRequired = errors.New("--password is required with --username")

// resolveCredentials reads the credentials from the flags, falling back to
// the environment. Basic authentication wins over a token. Both absent
// yields nil for anonymous requests.
func resolveCredentials(flags *pflag.FlagSet) (domain.Credentials, error) {
	v := viper.New()
	bind := func(key string, env []string) {
		_ = v.BindEnv(append([]string{key}, env...)...)
		if f := flags.Lookup(key); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
	bind(tokenKey, tokenEnv)
	bind(usernameKey, usernameEnv)
	bind(passwordKey, passwordEnv)

	if username := v.GetString(usernameKey); username != "" {
		password := v.GetString(passwordKey)
		if password == "" {
			return nil, errPasswordRequired
		}
		return domain.UsernamePassword{Username: username, Password: password}, nil
	}
	if token := v.GetString(tokenKey); token != "" {
		return domain.OAuthToken{Token: token}, nil
	}
	return nil, nil
}
