// Package git detects the GitHub repository a working directory belongs to.
package git

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/runoshun/linkgen/internal/domain"
)

// OriginRemote is the remote consulted when owner/repository are not configured.
const OriginRemote = "origin"

// Ensure Client implements domain.RepositoryResolver interface.
var _ domain.RepositoryResolver = (*Client)(nil)

// Client reads repository metadata with go-git.
type Client struct{}

// NewClient creates a new git client.
func NewClient() *Client {
	return &Client{}
}

// Resolve opens the repository containing dir and returns the owner and
// name encoded in its origin remote URL.
// It works from any subdirectory and from linked worktrees.
func (c *Client) Resolve(dir string) (owner, repo string, err error) {
	r, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", "", domain.ErrNotGitRepository
		}
		return "", "", fmt.Errorf("open git repository: %w", err)
	}

	remote, err := r.Remote(OriginRemote)
	if err != nil {
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return "", "", domain.ErrNoOriginRemote
		}
		return "", "", fmt.Errorf("read origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", domain.ErrNoOriginRemote
	}
	return ParseRemoteURL(urls[0])
}

// ParseRemoteURL extracts owner and repository from a remote URL.
// Supported forms:
//
//	https://github.com/owner/repo.git
//	ssh://git@github.com/owner/repo.git
//	git@github.com:owner/repo.git
func ParseRemoteURL(raw string) (owner, repo string, err error) {
	raw = strings.TrimSpace(raw)

	var path string
	if strings.Contains(raw, "://") {
		u, perr := url.Parse(raw)
		if perr != nil {
			return "", "", fmt.Errorf("%w: %s", domain.ErrMissingRepository, perr)
		}
		path = u.Path
	} else {
		// scp-like syntax: [user@]host:path
		_, after, ok := strings.Cut(raw, ":")
		if !ok {
			return "", "", fmt.Errorf("%w: unrecognized remote %q", domain.ErrMissingRepository, raw)
		}
		path = after
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("%w: unrecognized remote %q", domain.ErrMissingRepository, raw)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
