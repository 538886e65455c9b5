// Package report persists scan reports and compares verdicts between scans.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mj1618/a11y-check/internal/filelock"
	"github.com/mj1618/a11y-check/internal/scan"
)

// filePrefix is the filename prefix for saved reports.
const filePrefix = "scan-"

// ErrNoReports is returned by Latest for a directory without reports.
var ErrNoReports = errors.New("no saved reports")

// FileName returns the file name a report is saved under. Names sort by
// start time.
func FileName(r *scan.Report) string {
	id := r.ScanID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s%s-%s.json", filePrefix, r.Started.UTC().Format("20060102T150405.000000000"), id)
}

// Save writes r into dir and returns the file path.
func Save(dir string, r *scan.Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	path := filepath.Join(dir, FileName(r))
	if err := filelock.AtomicWrite(path, data); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}

// Load reads a saved report.
func Load(path string) (*scan.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}
	var r scan.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal report %s: %w", path, err)
	}
	return &r, nil
}

// List returns the saved report paths in dir, oldest first.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list reports: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isReportFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Latest loads the most recent report in dir.
func Latest(dir string) (*scan.Report, string, error) {
	paths, err := List(dir)
	if err != nil {
		return nil, "", err
	}
	if len(paths) == 0 {
		return nil, "", fmt.Errorf("%w in %s", ErrNoReports, dir)
	}
	path := paths[len(paths)-1]
	r, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return r, path, nil
}

// Clean removes reports in dir last modified before now minus maxAge and
// returns how many were removed.
func Clean(dir string, maxAge time.Duration) (int, error) {
	paths, err := List(dir)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(p); err != nil {
				return removed, fmt.Errorf("remove %s: %w", p, err)
			}
			removed++
		}
	}
	return removed, nil
}

func isReportFile(name string) bool {
	return strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, ".json")
}
