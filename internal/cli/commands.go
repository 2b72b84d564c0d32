// Package cli wires the pathmatch command line: flag parsing, config
// resolution, and the match-and-report loop.
package cli

import (
	"fmt"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/pathmatch/docs"
	"github.com/arthur-debert/pathmatch/internal/version"
	"github.com/arthur-debert/pathmatch/pkg/cobrax/topics"
	"github.com/arthur-debert/pathmatch/pkg/config"
	"github.com/arthur-debert/pathmatch/pkg/errors"
	"github.com/arthur-debert/pathmatch/pkg/fsproxy"
	"github.com/arthur-debert/pathmatch/pkg/logging"
	"github.com/arthur-debert/pathmatch/pkg/matcher"
	"github.com/arthur-debert/pathmatch/pkg/output"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		absolute  bool
		filesOnly bool
		slash     string
		limit     int
		noColor   bool
	)

	rootCmd := &cobra.Command{
		Use:   "pathmatch [flags] <pattern>...",
		Short: "Find files and directories with wildcard path patterns",
		Long: `pathmatch walks the filesystem and prints every path matching the given
patterns. Patterns support ? (one character), * (any characters within a
path segment) and ... (any characters across any number of segments, with
** as a synonym). Matching is case-insensitive, and / and \ are
interchangeable.

See 'pathmatch help patterns' for the full syntax.`,
		Version: version.Version,
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Flags the user actually set win over the config file.
			flags := cmd.Flags()
			if flags.Changed("absolute") {
				cfg.Absolute = absolute
			}
			if flags.Changed("files") {
				cfg.FilesOnly = filesOnly
			}
			if flags.Changed("slash") {
				cfg.Slash = slash
			}
			if flags.Changed("limit") {
				cfg.Limit = limit
			}
			if noColor {
				cfg.Color = "never"
			}

			if cfg.Slash != "/" && cfg.Slash != `\` {
				return errors.Newf(errors.ErrInvalidInput,
					"slash must be %q or %q, got %q", "/", `\`, cfg.Slash)
			}
			if cfg.Limit < 0 {
				return errors.Newf(errors.ErrInvalidInput,
					"limit must not be negative, got %d", cfg.Limit)
			}
			mode, err := output.ParseColorMode(cfg.Color)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			reporter := output.NewReporter(out, output.Options{
				Slash:     cfg.Slash[0],
				Absolute:  cfg.Absolute,
				FilesOnly: cfg.FilesOnly,
				Limit:     cfg.Limit,
				Color:     mode.Enabled(out),
			})

			logger := logging.GetLogger("cli")
			m := matcher.New(fsproxy.NewOS())
			for _, pattern := range args {
				reporter.Reset()
				if err := m.Match(pattern, reporter.Report); err != nil {
					return err
				}
				logger.Debug().
					Str("pattern", pattern).
					Int("matches", reporter.Count()).
					Msg("Pattern processed")
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.Flags().BoolVarP(&absolute, "absolute", "a", false, "Print absolute paths")
	rootCmd.Flags().BoolVarP(&filesOnly, "files", "f", false, "Print files only, never directories")
	rootCmd.Flags().StringVarP(&slash, "slash", "s", "/", `Path separator to print, "/" or "\"`)
	rootCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Stop after this many matches per pattern (0 = unlimited)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newVersionCmd())

	// Topic-based help, rendered from the embedded docs.
	if helpFS, err := fs.Sub(docs.Help, "help"); err == nil {
		_ = topics.InitializeWithOptions(rootCmd, helpFS, topics.Options{
			Renderer: topics.NewGlamourRenderer(),
		})
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pathmatch version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Built:  %s\n", version.Date)
			}
		},
	}
}
