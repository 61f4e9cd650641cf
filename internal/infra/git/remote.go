// Package git detects the GitHub repository of a working directory.
package git

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// DefaultRemoteName is the remote used to detect the repository.
const DefaultRemoteName = "origin"

// Ensure RemoteResolver implements domain.RemoteResolver.
var _ domain.RemoteResolver = (*RemoteResolver)(nil)

// RemoteResolver reads the remote URL of the enclosing git repository.
type RemoteResolver struct {
	remote string
}

// NewRemoteResolver creates a RemoteResolver for the origin remote.
func NewRemoteResolver() *RemoteResolver {
	return &RemoteResolver{remote: DefaultRemoteName}
}

// NewRemoteResolverFor creates a RemoteResolver for the named remote.
func NewRemoteResolverFor(remote string) *RemoteResolver {
	return &RemoteResolver{remote: remote}
}

// ResolveRepository returns owner and repository name parsed from the
// first URL of the remote. Parent directories are searched for .git.
func (r *RemoteResolver) ResolveRepository(dir string) (string, string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", fmt.Errorf("open git repository: %w", err)
	}

	remote, err := repo.Remote(r.remote)
	if errors.Is(err, gogit.ErrRemoteNotFound) {
		return "", "", fmt.Errorf("%w: %s", domain.ErrRemoteNotFound, r.remote)
	}
	if err != nil {
		return "", "", fmt.Errorf("read remote %s: %w", r.remote, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", fmt.Errorf("%w: %s has no URL", domain.ErrRemoteNotFound, r.remote)
	}
	return ParseRemoteURL(urls[0])
}

// ParseRemoteURL extracts owner and repository from an https, ssh or
// scp-style remote URL such as git@github.com:jwage/changelog-generator.git.
func ParseRemoteURL(rawURL string) (string, string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if isSCPLike(rawURL) {
		rawURL = normaliseSCP(rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", "", fmt.Errorf("%w: %q", domain.ErrUnsupportedRemote, rawURL)
	}

	path := strings.Trim(u.Path, "/")
	path = strings.TrimSuffix(path, ".git")

	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", domain.ErrUnsupportedRemote, rawURL)
	}
	return parts[0], parts[1], nil
}

// isSCPLike reports whether s has the form [user@]host:path.
func isSCPLike(s string) bool {
	if strings.Contains(s, "://") {
		return false
	}
	colon := strings.Index(s, ":")
	slash := strings.Index(s, "/")
	return colon > 0 && (slash < 0 || colon < slash)
}

func normaliseSCP(s string) string {
	return "ssh://" + strings.Replace(s, ":", "/", 1)
}
