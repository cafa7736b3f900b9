package flags

// Package flags defines canonical CLI flag names shared across the CLI.
// Keeping these as constants helps avoid drift between Cobra flag wiring and
// other code paths that reference flags (e.g. config-file merging).
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Targeting
	FlagRepo = "repo"

	// Forge
	FlagBaseURL = "base-url"

	// Output
	FlagFormat = "format"

	// Runtime
	FlagConfig  = "config"
	FlagTimeout = "timeout"
	FlagVerbose = "verbose"
)
