package scan

import (
	"time"

	"github.com/mj1618/a11y-check/internal/rules"
)

// Entry is one verdict in a report, with enough of the element to locate it.
type Entry struct {
	Rule    rules.ID             `yaml:"rule"            json:"rule"`
	Code    rules.EvaluationCode `yaml:"code"            json:"code"`
	Element string               `yaml:"element"         json:"element"`
	Index   int                  `yaml:"index"           json:"index"`
	Path    string               `yaml:"path"            json:"path"`
	Name    string               `yaml:"name,omitempty"  json:"name,omitempty"`
	Fault   string               `yaml:"fault,omitempty" json:"fault,omitempty"`
}

// Summary counts verdicts by code.
type Summary struct {
	Elements int `yaml:"elements" json:"elements"`
	Pass     int `yaml:"pass"     json:"pass"`
	Fail     int `yaml:"fail"     json:"fail"`
	Note     int `yaml:"note"     json:"note"`
	Open     int `yaml:"open"     json:"open"`
	Errors   int `yaml:"errors"   json:"errors"`
}

func (s *Summary) add(code rules.EvaluationCode) {
	switch code {
	case rules.Pass:
		s.Pass++
	case rules.Fail:
		s.Fail++
	case rules.Note:
		s.Note++
	case rules.Open:
		s.Open++
	case rules.RuleExecutionError:
		s.Errors++
	}
}

// Count returns the number of verdicts with code.
func (s Summary) Count(code rules.EvaluationCode) int {
	switch code {
	case rules.Pass:
		return s.Pass
	case rules.Fail:
		return s.Fail
	case rules.Note:
		return s.Note
	case rules.Open:
		return s.Open
	case rules.RuleExecutionError:
		return s.Errors
	}
	return 0
}

// Report is the outcome of one scan.
type Report struct {
	ScanID   string    `yaml:"scan_id"            json:"scan_id"`
	Source   string    `yaml:"source,omitempty"   json:"source,omitempty"`
	Started  time.Time `yaml:"started"            json:"started"`
	Finished time.Time `yaml:"finished"           json:"finished"`
	Results  []Entry   `yaml:"results"            json:"results"`
	Summary  Summary   `yaml:"summary"            json:"summary"`
	Warnings []string  `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// Failed reports whether any verdict is Fail or RuleExecutionError.
func (r *Report) Failed() bool {
	return r.Summary.Fail > 0 || r.Summary.Errors > 0
}

// Filter returns the entries whose code is one of codes.
func (r *Report) Filter(codes ...rules.EvaluationCode) []Entry {
	var out []Entry
	for _, e := range r.Results {
		for _, c := range codes {
			if e.Code == c {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
