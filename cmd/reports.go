package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-check/internal/output"
	"github.com/mj1618/a11y-check/internal/report"
	"github.com/mj1618/a11y-check/internal/scan"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Manage saved scan reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scan reports, oldest first",
	Args:  cobra.NoArgs,
	RunE:  runReportsList,
}

var reportsCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove saved scan reports older than --max-age",
	Args:  cobra.NoArgs,
	RunE:  runReportsClean,
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(reportsListCmd, reportsCleanCmd)
	reportsCmd.PersistentFlags().String("reports-dir", "", "Reports directory (default from config)")
	reportsCleanCmd.Flags().Duration("max-age", 0, "Remove reports older than this (default from config)")
}

// reportInfo is one row of the reports list.
type reportInfo struct {
	Path    string       `yaml:"path"    json:"path"`
	ScanID  string       `yaml:"scan_id" json:"scan_id"`
	Source  string       `yaml:"source"  json:"source"`
	Started time.Time    `yaml:"started" json:"started"`
	Summary scan.Summary `yaml:"summary" json:"summary"`
}

type reportsListResult struct {
	Dir     string       `yaml:"dir"     json:"dir"`
	Reports []reportInfo `yaml:"reports" json:"reports"`
}

type reportsCleanResult struct {
	OK      bool   `yaml:"ok"      json:"ok"`
	Action  string `yaml:"action"  json:"action"`
	Dir     string `yaml:"dir"     json:"dir"`
	Removed int    `yaml:"removed" json:"removed"`
}

func reportsDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("reports-dir"); dir != "" {
		return dir
	}
	return cfg.ReportsDir
}

func runReportsList(cmd *cobra.Command, args []string) error {
	dir := reportsDir(cmd)
	paths, err := report.List(dir)
	if err != nil {
		return err
	}
	result := reportsListResult{Dir: dir, Reports: []reportInfo{}}
	for _, p := range paths {
		r, err := report.Load(p)
		if err != nil {
			logger.Warn("skipping unreadable report", "path", p, "error", err)
			continue
		}
		result.Reports = append(result.Reports, reportInfo{
			Path:    p,
			ScanID:  r.ScanID,
			Source:  r.Source,
			Started: r.Started,
			Summary: r.Summary,
		})
	}
	return output.Print(result)
}

func runReportsClean(cmd *cobra.Command, args []string) error {
	dir := reportsDir(cmd)
	maxAge, _ := cmd.Flags().GetDuration("max-age")
	if maxAge <= 0 {
		maxAge = cfg.KeepReports
	}
	if maxAge <= 0 {
		return output.Print(reportsCleanResult{OK: true, Action: "clean", Dir: dir})
	}
	removed, err := report.Clean(dir, maxAge)
	if err != nil {
		return err
	}
	logger.Info("reports cleaned", "dir", dir, "removed", removed)
	return output.Print(reportsCleanResult{OK: true, Action: "clean", Dir: dir, Removed: removed})
}
