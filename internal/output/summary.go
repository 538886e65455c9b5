package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/mj1618/a11y-check/internal/rules"
	"github.com/mj1618/a11y-check/internal/scan"
)

// ColorEnabled reports whether f is a terminal that should get colored output.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type palette struct {
	head, pass, fail, note, warn, gray *color.Color
}

func newPalette(useColor bool) palette {
	p := palette{
		head: color.New(color.FgCyan, color.Bold),
		pass: color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
		note: color.New(color.FgYellow),
		warn: color.New(color.FgMagenta),
		gray: color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.head, p.pass, p.fail, p.note, p.warn, p.gray} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) forCode(code rules.EvaluationCode) *color.Color {
	switch code {
	case rules.Pass:
		return p.pass
	case rules.Fail:
		return p.fail
	case rules.Note:
		return p.note
	case rules.RuleExecutionError:
		return p.warn
	}
	return p.gray
}

var findingLabels = map[rules.EvaluationCode]string{
	rules.Fail:               "FAIL ",
	rules.Note:               "NOTE ",
	rules.RuleExecutionError: "ERROR",
}

// WriteSummary renders verdict counts and every Fail, Note and
// RuleExecutionError finding.
func WriteSummary(w io.Writer, r *scan.Report, useColor bool) error {
	p := newPalette(useColor)

	p.head.Fprintf(w, "=== Accessibility scan %s ===\n", r.ScanID)
	if r.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", r.Source)
	}
	fmt.Fprintf(w, "Elements: %d  Duration: %s\n\n", r.Summary.Elements, r.Finished.Sub(r.Started).Round(time.Microsecond))

	for _, code := range []rules.EvaluationCode{rules.Pass, rules.Fail, rules.Note, rules.Open, rules.RuleExecutionError} {
		fmt.Fprintf(w, "  %-20s ", code.String()+":")
		p.forCode(code).Fprintf(w, "%d\n", r.Summary.Count(code))
	}

	findings := r.Filter(rules.Fail, rules.Note, rules.RuleExecutionError)
	if len(findings) > 0 {
		p.head.Fprintf(w, "\nFindings:\n")
		for _, e := range findings {
			fmt.Fprint(w, "  ")
			p.forCode(e.Code).Fprint(w, findingLabels[e.Code])
			fmt.Fprintf(w, " %s  %s", e.Rule, e.Path)
			if e.Name != "" {
				fmt.Fprintf(w, " %q", e.Name)
			}
			p.gray.Fprintf(w, " [%s]", e.Element)
			if e.Fault != "" {
				fmt.Fprintf(w, ": %s", e.Fault)
			}
			fmt.Fprintln(w)
		}
	}

	if len(r.Warnings) > 0 {
		p.head.Fprintf(w, "\nWarnings:\n")
		for _, warning := range r.Warnings {
			p.warn.Fprintf(w, "  %s\n", warning)
		}
	}
	return nil
}
