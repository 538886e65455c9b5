package cmd

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-check/internal/config"
	"github.com/mj1618/a11y-check/internal/logging"
	"github.com/mj1618/a11y-check/internal/output"
	"github.com/mj1618/a11y-check/internal/version"
)

var (
	// cfg is the loaded configuration file merged with persistent flags.
	cfg = config.DefaultConfig(".a11y-check")
	// logger writes diagnostics to stderr at the configured level.
	logger hclog.Logger = hclog.NewNullLogger()
)

var rootCmd = &cobra.Command{
	Use:   "a11y-check",
	Short: "Evaluate accessibility rules against UI element trees",
	Long: `Evaluate accessibility rules against UI element trees.

Every rule is checked against every element and yields one verdict:
Pass, Fail, Note (needs review), Open (not applicable) or
RuleExecutionError (the element could not be read).

Trees come from fixture files (YAML or JSON element records) or, where a
platform backend is available, from the live desktop ("live").`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json, sarif, summary (default from config, else yaml)")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error, off")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.a11y-check/config.yaml)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path, _ := rootCmd.PersistentFlags().GetString("config")
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return err
			}
		}
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded

		if level, _ := rootCmd.PersistentFlags().GetString("log-level"); level != "" {
			if _, err := logging.ParseLevel(level); err != nil {
				return err
			}
			cfg.LogLevel = level
		}
		logger = logging.New("a11y-check", cfg.LogLevel, cmd.ErrOrStderr())

		format, _ := rootCmd.PersistentFlags().GetString("format")
		if format == "" {
			format = cfg.Format
		}
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		output.Stdout = cmd.OutOrStdout()
		return nil
	}
}
