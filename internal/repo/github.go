package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"supplyscore/internal/forge"
)

// GitHubRepo fetches repository metadata from a GitHub-like REST API.
// It implements every listing of the Source contract; stars and score are
// not provided and return ErrUnavailable.
type GitHubRepo struct {
	url    string
	owner  string
	name   string
	client *forge.Client
	logger *log.Logger
}

// NewGitHubRepo resolves owner and name from rawURL and returns a source
// ready to fetch. No network calls happen here; use Populate or the
// individual fetch methods.
//
// Owner and name are the second-to-last and last path segments of the URL.
// The shape is not validated: a URL with fewer than two segments yields empty
// strings rather than an error.
func NewGitHubRepo(logger *log.Logger, client *forge.Client, rawURL string) *GitHubRepo {
	r := &GitHubRepo{
		url:    rawURL,
		client: client,
		logger: logger,
	}
	r.owner = r.segmentFromEnd(2)
	logger.Info("resolved owner of repo", "owner", r.owner)
	r.name = r.segmentFromEnd(1)
	logger.Info("resolved name of repo", "name", r.name)
	return r
}

// segmentFromEnd returns the n-th path segment counting from the end of the
// URL, or "" when the URL has fewer segments.
func (r *GitHubRepo) segmentFromEnd(n int) string {
	parts := strings.Split(r.url, "/")
	if len(parts) < n {
		return ""
	}
	return parts[len(parts)-n]
}

func (r *GitHubRepo) URL() string   { return r.url }
func (r *GitHubRepo) Owner() string { return r.owner }
func (r *GitHubRepo) Name() string  { return r.name }

// listing builds the REST path for one of the repository's list endpoints.
func (r *GitHubRepo) listing(kind string) string {
	return fmt.Sprintf("/repos/%s/%s/%s", r.owner, r.name, kind)
}

// Contributors lists everyone who committed to the repository.
// GET /repos/{owner}/{repo}/contributors
func (r *GitHubRepo) Contributors(ctx context.Context) ([]forge.Record, error) {
	r.logger.Info("getting contributors for repo", "repo", r.name)
	return r.client.FetchAll(ctx, r.listing("contributors"), "")
}

// Forks lists the repository's forks.
// GET /repos/{owner}/{repo}/forks
func (r *GitHubRepo) Forks(ctx context.Context) ([]forge.Record, error) {
	r.logger.Info("getting forks for repo", "repo", r.name)
	return r.client.FetchAll(ctx, r.listing("forks"), "")
}

// Releases lists the repository's releases.
// GET /repos/{owner}/{repo}/releases
func (r *GitHubRepo) Releases(ctx context.Context) ([]forge.Record, error) {
	r.logger.Info("getting releases for repo", "repo", r.name)
	return r.client.FetchAll(ctx, r.listing("releases"), "")
}

// Stars is not provided by this source.
func (r *GitHubRepo) Stars(ctx context.Context) (int, error) {
	return 0, ErrUnavailable
}

// Issues lists the repository's issues, closed ones included.
// GET /repos/{owner}/{repo}/issues?state=all
func (r *GitHubRepo) Issues(ctx context.Context) ([]forge.Record, error) {
	r.logger.Info("getting issues for repo", "repo", r.name)
	return r.client.FetchAll(ctx, r.listing("issues"), "state=all")
}

// Commits lists the repository's commits.
// GET /repos/{owner}/{repo}/commits
func (r *GitHubRepo) Commits(ctx context.Context) ([]forge.Record, error) {
	r.logger.Info("getting commits for repo", "repo", r.name)
	return r.client.FetchAll(ctx, r.listing("commits"), "")
}

// Score is not implemented for any forge yet.
func (r *GitHubRepo) Score(ctx context.Context) (float64, error) {
	return 0, ErrUnavailable
}
