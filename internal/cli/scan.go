package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"supplyscore/internal/config"
	"supplyscore/internal/flags"
	"supplyscore/internal/forge"
	"supplyscore/internal/output"
	"supplyscore/internal/repo"
)

var cfg = config.New()

var configPath string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Fetch metadata counts for a set of repositories",
	Long: `Fetch metadata counts for a set of repositories.

For each --repo URL, supplyscore resolves OWNER/NAME from the last two path
segments, walks the forge's paginated listing endpoints (contributors, forks,
releases, issues, commits; up to 10 pages of 100 records each) and prints the
resulting counts. Stars and the aggregate score are not provided yet and are
reported as unavailable.

Requests are unauthenticated. A connection failure on the first page of a
listing marks that metric as failed; a failure on a later page silently keeps
the records fetched so far.

Exit codes:
	0 = all metrics fetched
	2 = partial results (some metrics failed to fetch)
	3 = fatal error (invalid configuration)

Examples:
  supplyscore scan --repo https://github.com/golang/go

  # Several repositories, machine-readable output
  supplyscore scan --repo golang/go,golang/tools --format json

  # Defaults from a config file
  supplyscore scan --config supplyscore.toml
`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && cmd.Flags().NFlag() == 0 {
			_ = cmd.Help()
			return
		}
		if code := runScan(cmd, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()); code != 0 {
			os.Exit(code)
		}
	},
}

func runScan(cmd *cobra.Command, cfg *config.Config, out, errOut io.Writer) int {
	if configPath != "" {
		file, err := config.LoadFile(configPath)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			return 3
		}
		file.Apply(cfg, cmd.Flags().Changed)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 3
	}

	level := log.WarnLevel
	if cfg.Runtime.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(errOut, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	var opts []forge.Option
	if cfg.Forge.BaseURL != "" {
		opts = append(opts, forge.WithBaseURL(cfg.Forge.BaseURL))
	}
	if cfg.Runtime.Verbose {
		opts = append(opts, forge.WithVerbose(true, errOut))
	}
	client := forge.NewClient(logger, opts...)

	sink := output.NewConsoleSink(out, cfg.Output.Format)

	baseCtx := cmd.Context()
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := context.WithTimeout(baseCtx, cfg.Runtime.Timeout)
	defer cancel()

	partial := false
	for _, rawURL := range cfg.Targeting.Repos {
		src := repo.NewGitHubRepo(logger, client, rawURL)
		snapshot := repo.Populate(ctx, src)
		summary := output.Summarize(snapshot)
		if len(summary.Errors) > 0 {
			partial = true
			for _, field := range summary.FailedFields() {
				logger.Warn("metric fetch failed", "repo", rawURL, "field", field, "err", summary.Errors[field])
			}
		}
		if err := sink.Write(summary); err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			return 3
		}
	}

	if err := sink.Close(); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 3
	}
	if partial {
		return 2
	}
	return 0
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringArrayVar(&cfg.Targeting.Repos, flags.FlagRepo, nil, "Repository URL ending in OWNER/NAME (repeatable; comma-separated lists accepted)")
	scanCmd.Flags().StringVar(&cfg.Forge.BaseURL, flags.FlagBaseURL, "", "Forge REST endpoint (default: https://api.github.com)")
	scanCmd.Flags().StringVar(&cfg.Output.Format, flags.FlagFormat, cfg.Output.Format, "Output format: text or json")
	scanCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Global deadline for the whole scan")
	scanCmd.Flags().StringVar(&configPath, flags.FlagConfig, "", "Path to a TOML config file providing defaults for these flags")
}
