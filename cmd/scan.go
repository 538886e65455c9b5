package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-check/internal/output"
	"github.com/mj1618/a11y-check/internal/platform"
	"github.com/mj1618/a11y-check/internal/report"
	"github.com/mj1618/a11y-check/internal/rules"
	"github.com/mj1618/a11y-check/internal/scan"
	"github.com/mj1618/a11y-check/internal/version"
)

var scanCmd = &cobra.Command{
	Use:   "scan <fixture>... | scan live",
	Short: "Evaluate every rule against every element",
	Long: `Walk one or more element trees and evaluate every selected rule against
every element. Results are ordered by element (pre-order) and then by rule.

Use --findings to print only Fail, Note and RuleExecutionError verdicts,
--save to keep the report for "a11y-check diff", and --watch to rescan
whenever a fixture file changes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	addRuleFlags(scanCmd)
	addWalkFlags(scanCmd)
	scanCmd.Flags().Int("scope-id", 0, "Only scan the subtree rooted at this element ID")
	scanCmd.Flags().Bool("findings", false, "Only report Fail, Note and RuleExecutionError verdicts")
	scanCmd.Flags().Bool("save", false, "Save the full report to the reports directory")
	scanCmd.Flags().String("reports-dir", "", "Reports directory (default from config)")
	scanCmd.Flags().String("fail-on", "", "Comma-separated verdicts that make the command exit non-zero (e.g. \"Fail,RuleExecutionError\")")
	scanCmd.Flags().Bool("watch", false, "Rescan whenever a fixture file changes")
	scanCmd.Flags().Duration("debounce", 300*time.Millisecond, "Quiet period before a rescan in --watch mode")
}

func runScan(cmd *cobra.Command, args []string) error {
	reg, err := selectRegistry(cmd)
	if err != nil {
		return err
	}
	src, err := platform.ResolveSource(args...)
	if err != nil {
		return err
	}
	failOn, err := parseCodes(cmd)
	if err != nil {
		return err
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		r, err := scanOnce(cmd, reg, src)
		if err != nil {
			return err
		}
		return checkFailOn(r, failOn)
	}

	if _, ok := src.(*platform.FixtureSource); !ok {
		return fmt.Errorf("--watch needs fixture files")
	}
	debounce, _ := cmd.Flags().GetDuration("debounce")
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchFiles(ctx, args, debounce, func() {
		r, err := scanOnce(cmd, reg, src)
		if err != nil {
			logger.Error("scan failed", "error", err)
			return
		}
		if err := checkFailOn(r, failOn); err != nil {
			logger.Warn(err.Error())
		}
	})
}

// scanOnce reads the roots, scans them and prints the report. The saved
// report always holds every verdict, even with --findings.
func scanOnce(cmd *cobra.Command, reg *rules.Registry, src platform.Source) (*scan.Report, error) {
	ctx := cmd.Context()
	window, _ := cmd.Flags().GetString("window")
	scopeID, _ := cmd.Flags().GetInt("scope-id")

	roots, err := src.Roots(ctx, platform.ReadOptions{Window: window, ElementID: scopeID})
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("no roots to scan in %s", src.Describe())
	}

	r, err := newScanner(cmd, reg, src).Scan(ctx, roots...)
	if err != nil {
		return nil, err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		dir, _ := cmd.Flags().GetString("reports-dir")
		if dir == "" {
			dir = cfg.ReportsDir
		}
		path, err := report.Save(dir, r)
		if err != nil {
			return nil, err
		}
		logger.Info("report saved", "path", path)
	}

	if findings, _ := cmd.Flags().GetBool("findings"); findings {
		shown := *r
		shown.Results = r.Filter(rules.Fail, rules.Note, rules.RuleExecutionError)
		return r, output.PrintReport(&shown, reg, version.Version)
	}
	return r, output.PrintReport(r, reg, version.Version)
}

func parseCodes(cmd *cobra.Command) ([]rules.EvaluationCode, error) {
	list, _ := cmd.Flags().GetString("fail-on")
	var codes []rules.EvaluationCode
	for _, s := range splitList(list) {
		code, err := rules.ParseEvaluationCode(s)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// checkFailOn returns an error when r holds a verdict with one of codes.
func checkFailOn(r *scan.Report, codes []rules.EvaluationCode) error {
	var hits []string
	for _, c := range codes {
		if n := r.Summary.Count(c); n > 0 {
			hits = append(hits, fmt.Sprintf("%d %s", n, c))
		}
	}
	if len(hits) == 0 {
		return nil
	}
	return fmt.Errorf("scan found %s", strings.Join(hits, ", "))
}
