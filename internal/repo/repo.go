// Package repo defines the per-repository fetch contract and the snapshot a
// population pass produces.
package repo

import (
	"context"
	"errors"

	"supplyscore/internal/forge"
)

// ErrUnavailable marks a metric the forge implementation does not provide.
// Callers treat it as an explicit "no data", not a fetch failure.
var ErrUnavailable = errors.New("metric unavailable")

// Field names one populated attribute of a repository snapshot.
type Field string

const (
	FieldContributors Field = "contributors"
	FieldForks        Field = "forks"
	FieldReleases     Field = "releases"
	FieldStars        Field = "stars"
	FieldIssues       Field = "issues"
	FieldCommits      Field = "commits"
)

// Source is the fetch contract for a single repository on some forge.
// Implementations that do not support a metric return ErrUnavailable from it.
type Source interface {
	URL() string
	Owner() string
	Name() string

	Contributors(ctx context.Context) ([]forge.Record, error)
	Forks(ctx context.Context) ([]forge.Record, error)
	Releases(ctx context.Context) ([]forge.Record, error)
	Stars(ctx context.Context) (int, error)
	Issues(ctx context.Context) ([]forge.Record, error)
	Commits(ctx context.Context) ([]forge.Record, error)
	Score(ctx context.Context) (float64, error)
}

// Snapshot holds everything fetched for one repository. It is built once by
// Populate and not refreshed; fetch a new snapshot for fresh data.
type Snapshot struct {
	URL   string
	Owner string
	Name  string

	Contributors []forge.Record
	Forks        []forge.Record
	Releases     []forge.Record
	Issues       []forge.Record
	Commits      []forge.Record
	Stars        int

	errs map[Field]error
}

// Populate fetches every metric of src in a fixed order (contributors, forks,
// releases, stars, issues, commits) and records one result or error per
// field. A failed field leaves its collection nil; the other fields are still
// fetched.
func Populate(ctx context.Context, src Source) *Snapshot {
	s := &Snapshot{
		URL:   src.URL(),
		Owner: src.Owner(),
		Name:  src.Name(),
		errs:  make(map[Field]error),
	}

	s.Contributors = s.collect(ctx, FieldContributors, src.Contributors)
	s.Forks = s.collect(ctx, FieldForks, src.Forks)
	s.Releases = s.collect(ctx, FieldReleases, src.Releases)
	if stars, err := src.Stars(ctx); err != nil {
		s.errs[FieldStars] = err
	} else {
		s.Stars = stars
	}
	s.Issues = s.collect(ctx, FieldIssues, src.Issues)
	s.Commits = s.collect(ctx, FieldCommits, src.Commits)

	return s
}

func (s *Snapshot) collect(ctx context.Context, f Field, fetch func(context.Context) ([]forge.Record, error)) []forge.Record {
	records, err := fetch(ctx)
	if err != nil {
		s.errs[f] = err
		return nil
	}
	return records
}

// Err returns the fetch error recorded for f, if any.
func (s *Snapshot) Err(f Field) error {
	return s.errs[f]
}

// Errs returns all per-field fetch errors. The map is keyed by field name and
// empty for a fully successful population.
func (s *Snapshot) Errs() map[Field]error {
	out := make(map[Field]error, len(s.errs))
	for f, err := range s.errs {
		out[f] = err
	}
	return out
}

func (s *Snapshot) TotalContributors() int { return len(s.Contributors) }
func (s *Snapshot) TotalForks() int        { return len(s.Forks) }
func (s *Snapshot) TotalReleases() int     { return len(s.Releases) }
func (s *Snapshot) TotalIssues() int       { return len(s.Issues) }
func (s *Snapshot) TotalCommits() int      { return len(s.Commits) }
