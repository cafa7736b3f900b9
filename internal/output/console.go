package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// ConsoleSink writes scan summaries to a writer in one of two formats:
// "text" prints a colored block per repository as results arrive, "json"
// buffers summaries and flushes one JSON array on Close.
type ConsoleSink struct {
	writer    io.Writer
	format    string
	mu        sync.Mutex
	summaries []Summary
}

func NewConsoleSink(w io.Writer, format string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}
	return &ConsoleSink{
		writer: w,
		format: format,
	}
}

func (s *ConsoleSink) Write(sum Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json":
		s.summaries = append(s.summaries, sum)
		return nil
	case "text":
		return s.writeText(sum)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format != "json" {
		return nil
	}
	enc := json.NewEncoder(s.writer)
	enc.SetIndent("", "  ")
	if s.summaries == nil {
		s.summaries = []Summary{}
	}
	return enc.Encode(s.summaries)
}

func (s *ConsoleSink) writeText(sum Summary) error {
	bold := color.New(color.Bold)
	if _, err := bold.Fprintf(s.writer, "%s/%s\n", sum.Owner, sum.Repo); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "  url: %s\n", sum.URL); err != nil {
		return err
	}

	lines := []struct {
		label string
		count *int
		err   string
	}{
		{"contributors", sum.Contributors, sum.Errors["contributors"]},
		{"forks", sum.Forks, sum.Errors["forks"]},
		{"releases", sum.Releases, sum.Errors["releases"]},
		{"stars", sum.Stars, sum.Errors["stars"]},
		{"issues", sum.Issues, sum.Errors["issues"]},
		{"commits", sum.Commits, sum.Errors["commits"]},
	}
	for _, l := range lines {
		if err := s.writeMetric(l.label, l.count, l.err); err != nil {
			return err
		}
	}

	// Score has no implementation yet; keep the line so the text shape
	// matches the JSON shape.
	if _, err := fmt.Fprintf(s.writer, "  %-13s %s\n", "score:", color.YellowString("unavailable")); err != nil {
		return err
	}
	_, err := fmt.Fprintln(s.writer)
	return err
}

func (s *ConsoleSink) writeMetric(label string, count *int, errText string) error {
	switch {
	case errText != "":
		_, err := fmt.Fprintf(s.writer, "  %-13s %s\n", label+":", color.RedString("error: %s", errText))
		return err
	case count == nil:
		_, err := fmt.Fprintf(s.writer, "  %-13s %s\n", label+":", color.YellowString("unavailable"))
		return err
	default:
		_, err := fmt.Fprintf(s.writer, "  %-13s %s\n", label+":", color.GreenString("%d", *count))
		return err
	}
}
