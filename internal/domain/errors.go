package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrInvalidConfig        = errors.New("invalid changelog config")
	ErrProjectNotFound      = errors.New("project not found in config")
	ErrConfigNotFound       = errors.New("config file does not exist")
	ErrConfigEmpty          = errors.New("config file does not define any project")
	ErrConfigExists         = errors.New("config file already exists")
	ErrRemoteNotFound       = errors.New("git remote not found")
	ErrUnsupportedRemote    = errors.New("remote is not a GitHub repository URL")
	ErrInvalidWriteStrategy = errors.New("invalid write strategy")
)

// APIError is returned when the GitHub API answers with a non-success status.
type APIError struct {
	Message    string // Message field of the error payload, if any
	StatusCode int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API call to GitHub failed with status code %d", e.StatusCode)
	}
	return fmt.Sprintf("API call to GitHub failed with status code %d and message \"%s\"", e.StatusCode, e.Message)
}
