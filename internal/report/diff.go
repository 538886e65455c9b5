package report

import (
	"crypto/sha256"
	"fmt"

	"github.com/mj1618/a11y-check/internal/rules"
	"github.com/mj1618/a11y-check/internal/scan"
)

// ChangeType is the kind of verdict change between two scans.
type ChangeType string

const (
	ChangeNew      ChangeType = "new"
	ChangeResolved ChangeType = "resolved"
	ChangeChanged  ChangeType = "changed"
)

// Change is one verdict that differs between two scans.
type Change struct {
	Type ChangeType            `yaml:"type"           json:"type"`
	Rule rules.ID              `yaml:"rule"           json:"rule"`
	Path string                `yaml:"path"           json:"path"`
	Name string                `yaml:"name,omitempty" json:"name,omitempty"`
	From *rules.EvaluationCode `yaml:"from,omitempty" json:"from,omitempty"`
	To   *rules.EvaluationCode `yaml:"to,omitempty"   json:"to,omitempty"`
}

// VerdictDiff is the verdict comparison of two reports.
type VerdictDiff struct {
	Previous       string   `yaml:"previous"        json:"previous"`
	Current        string   `yaml:"current"         json:"current"`
	Changes        []Change `yaml:"changes"         json:"changes"`
	UnchangedCount int      `yaml:"unchanged_count" json:"unchanged_count"`
}

// Regressions returns the changes that introduce a Fail or
// RuleExecutionError verdict.
func (d VerdictDiff) Regressions() []Change {
	var out []Change
	for _, c := range d.Changes {
		if c.To != nil && (*c.To == rules.Fail || *c.To == rules.RuleExecutionError) {
			out = append(out, c)
		}
	}
	return out
}

// EntryHash identifies a verdict across scans by rule, element path and
// element name. Element ids are not used since they shift between reads.
func EntryHash(e scan.Entry) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", e.Rule, e.Path, e.Name)
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// keyed assigns each entry its hash plus an occurrence counter, so that
// identical siblings are matched in order.
func keyed(entries []scan.Entry) ([]string, map[string]scan.Entry) {
	seen := make(map[string]int, len(entries))
	keys := make([]string, len(entries))
	byKey := make(map[string]scan.Entry, len(entries))
	for i, e := range entries {
		h := EntryHash(e)
		keys[i] = fmt.Sprintf("%s#%d", h, seen[h])
		seen[h]++
		byKey[keys[i]] = e
	}
	return keys, byKey
}

// Diff compares the verdicts of prev and curr. New and changed verdicts
// follow the order of curr; resolved ones follow prev.
func Diff(prev, curr *scan.Report) VerdictDiff {
	d := VerdictDiff{Previous: prev.ScanID, Current: curr.ScanID}
	prevKeys, prevByKey := keyed(prev.Results)
	currKeys, currByKey := keyed(curr.Results)

	for i, k := range currKeys {
		e := curr.Results[i]
		old, existed := prevByKey[k]
		switch {
		case !existed:
			d.Changes = append(d.Changes, Change{Type: ChangeNew, Rule: e.Rule, Path: e.Path, Name: e.Name, To: codePtr(e.Code)})
		case old.Code != e.Code:
			d.Changes = append(d.Changes, Change{Type: ChangeChanged, Rule: e.Rule, Path: e.Path, Name: e.Name, From: codePtr(old.Code), To: codePtr(e.Code)})
		default:
			d.UnchangedCount++
		}
	}
	for i, k := range prevKeys {
		if _, exists := currByKey[k]; !exists {
			e := prev.Results[i]
			d.Changes = append(d.Changes, Change{Type: ChangeResolved, Rule: e.Rule, Path: e.Path, Name: e.Name, From: codePtr(e.Code)})
		}
	}
	return d
}

func codePtr(c rules.EvaluationCode) *rules.EvaluationCode { return &c }
