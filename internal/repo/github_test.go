package repo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplyscore/internal/forge"
)

func TestNewGitHubRepo_ResolvesOwnerAndName(t *testing.T) {
	logger := log.New(io.Discard)

	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantName  string
	}{
		{
			name:      "https github url",
			url:       "https://github.com/foo/bar",
			wantOwner: "foo",
			wantName:  "bar",
		},
		{
			name:      "bare owner/name",
			url:       "foo/bar",
			wantOwner: "foo",
			wantName:  "bar",
		},
		{
			name:      "other host",
			url:       "https://forge.example.com/some/org/repo",
			wantOwner: "org",
			wantName:  "repo",
		},
		{
			// Not validated: a single segment resolves to an empty owner.
			name:      "single segment",
			url:       "bar",
			wantOwner: "",
			wantName:  "bar",
		},
		{
			// Not validated either: a trailing slash makes the name empty.
			name:      "trailing slash",
			url:       "https://github.com/foo/bar/",
			wantOwner: "bar",
			wantName:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewGitHubRepo(logger, forge.NewClient(logger), tt.url)
			assert.Equal(t, tt.wantOwner, r.Owner())
			assert.Equal(t, tt.wantName, r.Name())
			assert.Equal(t, tt.url, r.URL())
		})
	}
}

func TestGitHubRepo_ListingEndpoints(t *testing.T) {
	logger := log.New(io.Discard)

	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 1.0}})
	}))
	t.Cleanup(server.Close)

	client := forge.NewClient(logger, forge.WithBaseURL(server.URL))
	r := NewGitHubRepo(logger, client, "https://github.com/foo/bar")
	ctx := context.Background()

	tests := []struct {
		name      string
		fetch     func(context.Context) ([]forge.Record, error)
		wantPath  string
		wantQuery string
	}{
		{"contributors", r.Contributors, "/repos/foo/bar/contributors", "per_page=100"},
		{"forks", r.Forks, "/repos/foo/bar/forks", "per_page=100"},
		{"releases", r.Releases, "/repos/foo/bar/releases", "per_page=100"},
		{"issues", r.Issues, "/repos/foo/bar/issues", "state=all&per_page=100"},
		{"commits", r.Commits, "/repos/foo/bar/commits", "per_page=100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := tt.fetch(ctx)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, tt.wantQuery, gotQuery)
		})
	}
}

func TestGitHubRepo_StarsAndScoreAreUnavailable(t *testing.T) {
	logger := log.New(io.Discard)
	r := NewGitHubRepo(logger, forge.NewClient(logger), "https://github.com/foo/bar")

	_, err := r.Stars(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = r.Score(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
