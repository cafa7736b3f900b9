package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Targeting Targeting
	Forge     Forge
	Output    Output
	Runtime   Runtime
}

type Targeting struct {
	// Repos is the list of repository URLs to scan (see --repo).
	// Values may be provided as repeated flags and/or comma-separated lists.
	// Each URL must end in .../OWNER/NAME; the shape is not validated beyond
	// being non-empty.
	Repos []string
}

type Forge struct {
	// BaseURL is the REST endpoint of the forge (see --base-url).
	// Empty means the default github.com endpoint.
	BaseURL string
}

type Output struct {
	// Format controls how scan results are rendered (see --format).
	// Allowed values: text, json.
	Format string
}

type Runtime struct {
	// Timeout is the global deadline for one scan run (see --timeout).
	// Must be > 0.
	Timeout time.Duration

	// Verbose enables debug logging and per-request API traces.
	Verbose bool
}

func New() *Config {
	return &Config{
		Output: Output{
			Format: "text",
		},
		Runtime: Runtime{
			Timeout: 10 * time.Minute,
		},
	}
}

func (c *Config) Validate() error {
	c.Targeting.Repos = splitCommaList(c.Targeting.Repos)
	if len(c.Targeting.Repos) == 0 {
		return errors.New("at least one --repo must be provided")
	}

	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.Format != "text" && c.Output.Format != "json" {
		return fmt.Errorf("unsupported --format: %s (must be one of: text, json)", c.Output.Format)
	}

	c.Forge.BaseURL = strings.TrimRight(strings.TrimSpace(c.Forge.BaseURL), "/")

	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}

	return nil
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
