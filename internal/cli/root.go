package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"supplyscore/internal/flags"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "supplyscore",
	Short: "Fetch repository metadata counts usable for a supply chain score",
	Long: `supplyscore fetches repository metadata (contributors, forks, releases,
issues, commits) from a GitHub-like REST API and reports the counts that feed
a supply chain score.

supplyscore is read-only and unauthenticated: it never sends a token and runs
under the forge's anonymous rate limits.

Examples:
	# Show available commands and global flags
	supplyscore --help

	# Scan a repository
	supplyscore scan --repo https://github.com/golang/go

	# Print build info
	supplyscore version

Output:
	By default, commands write human-readable output to stdout.
	Use "scan --format json" for machine-readable output.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable verbose logging (prints every forge API call)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
