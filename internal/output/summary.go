// Package output renders scan results for people and machines.
package output

import (
	"errors"
	"sort"

	"supplyscore/internal/repo"
)

// Summary is the externally visible result of scanning one repository.
// Counts are pointers: nil means the metric could not be fetched or is not
// provided by the forge.
type Summary struct {
	Repo         string            `json:"repo"`
	Owner        string            `json:"owner"`
	URL          string            `json:"url"`
	Contributors *int              `json:"contributors"`
	Forks        *int              `json:"forks"`
	Releases     *int              `json:"releases"`
	Stars        *int              `json:"stars"`
	Issues       *int              `json:"issues"`
	Commits      *int              `json:"commits"`
	Score        *float64          `json:"score"`
	Errors       map[string]string `json:"errors,omitempty"`
}

// Summarize maps a populated snapshot to its summary. Metrics the forge
// marked unavailable get a nil count and no error entry; genuine fetch
// failures get a nil count and an entry in Errors.
func Summarize(s *repo.Snapshot) Summary {
	sum := Summary{
		Repo:  s.Name,
		Owner: s.Owner,
		URL:   s.URL,
	}

	sum.Contributors = countFor(s, repo.FieldContributors, s.TotalContributors(), &sum)
	sum.Forks = countFor(s, repo.FieldForks, s.TotalForks(), &sum)
	sum.Releases = countFor(s, repo.FieldReleases, s.TotalReleases(), &sum)
	sum.Stars = countFor(s, repo.FieldStars, s.Stars, &sum)
	sum.Issues = countFor(s, repo.FieldIssues, s.TotalIssues(), &sum)
	sum.Commits = countFor(s, repo.FieldCommits, s.TotalCommits(), &sum)

	// Scoring is not implemented for any forge; the JSON field stays null so
	// downstream consumers have a stable shape.
	sum.Score = nil

	return sum
}

func countFor(s *repo.Snapshot, f repo.Field, count int, sum *Summary) *int {
	err := s.Err(f)
	if err == nil {
		c := count
		return &c
	}
	if !errors.Is(err, repo.ErrUnavailable) {
		if sum.Errors == nil {
			sum.Errors = make(map[string]string)
		}
		sum.Errors[string(f)] = err.Error()
	}
	return nil
}

// FailedFields lists the metrics with genuine fetch failures, sorted for
// stable output.
func (s Summary) FailedFields() []string {
	fields := make([]string, 0, len(s.Errors))
	for f := range s.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
