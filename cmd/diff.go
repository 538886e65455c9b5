package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-check/internal/output"
	"github.com/mj1618/a11y-check/internal/report"
	"github.com/mj1618/a11y-check/internal/scan"
)

var diffCmd = &cobra.Command{
	Use:   "diff [<previous> [<current>]]",
	Short: "Compare the verdicts of two saved scan reports",
	Long: `Compare two scan reports and list verdicts that are new, resolved or
changed. Verdicts are matched by rule, element path and element name.

With no arguments the two most recent saved reports are compared. With one
argument the most recent saved report is compared with the given one.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().String("reports-dir", "", "Reports directory (default from config)")
	diffCmd.Flags().Bool("fail-on-regression", false, "Exit non-zero when a change introduces Fail or RuleExecutionError")
}

func runDiff(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("reports-dir")
	if dir == "" {
		dir = cfg.ReportsDir
	}
	prev, curr, err := diffInputs(dir, args)
	if err != nil {
		return err
	}

	d := report.Diff(prev, curr)
	if err := output.Print(d); err != nil {
		return err
	}
	if failOn, _ := cmd.Flags().GetBool("fail-on-regression"); failOn {
		if n := len(d.Regressions()); n > 0 {
			return fmt.Errorf("%d regression(s) since scan %s", n, prev.ScanID)
		}
	}
	return nil
}

// diffInputs picks the two reports to compare from args and the reports dir.
func diffInputs(dir string, args []string) (prev, curr *scan.Report, err error) {
	switch len(args) {
	case 2:
		if prev, err = report.Load(args[0]); err != nil {
			return nil, nil, err
		}
		curr, err = report.Load(args[1])
		return prev, curr, err
	case 1:
		if curr, err = report.Load(args[0]); err != nil {
			return nil, nil, err
		}
		prev, _, err = report.Latest(dir)
		return prev, curr, err
	}
	paths, err := report.List(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(paths) < 2 {
		return nil, nil, fmt.Errorf("need two saved reports in %s, found %d", dir, len(paths))
	}
	if prev, err = report.Load(paths[len(paths)-2]); err != nil {
		return nil, nil, err
	}
	curr, err = report.Load(paths[len(paths)-1])
	return prev, curr, err
}
