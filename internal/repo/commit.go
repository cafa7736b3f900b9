package repo

import (
	"fmt"
	"time"

	"supplyscore/internal/forge"
)

// commitDateLayout matches the forge's author-date strings, e.g.
// "2020-01-02T15:04:05Z". The trailing Z is treated as an implicit UTC
// marker; no other timezone forms are accepted.
const commitDateLayout = "2006-01-02T15:04:05Z"

// CommitBefore reports whether the commit's author date precedes t.
// The date is read from commit.commit.author.date; a missing field or a
// date outside the fixed layout is an error.
func CommitBefore(commit forge.Record, t time.Time) (bool, error) {
	raw, err := commitAuthorDate(commit)
	if err != nil {
		return false, err
	}
	authored, err := time.Parse(commitDateLayout, raw)
	if err != nil {
		return false, fmt.Errorf("parse commit author date: %w", err)
	}
	return authored.Before(t), nil
}

func commitAuthorDate(record forge.Record) (string, error) {
	commit, ok := record["commit"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("commit record has no commit object")
	}
	author, ok := commit["author"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("commit record has no author object")
	}
	date, ok := author["date"].(string)
	if !ok {
		return "", fmt.Errorf("commit record has no author date")
	}
	return date, nil
}
