package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/mj1618/a11y-check/internal/rules"
	"github.com/mj1618/a11y-check/internal/scan"
)

// ToolName and ToolURI identify the tool in SARIF logs.
const (
	ToolName = "a11y-check"
	ToolURI  = "https://github.com/mj1618/a11y-check"
)

// SARIFLevel maps a verdict to a SARIF result level. ok is false for
// verdicts that produce no result.
func SARIFLevel(code rules.EvaluationCode) (level string, ok bool) {
	switch code {
	case rules.Fail:
		return "error", true
	case rules.RuleExecutionError:
		return "warning", true
	case rules.Note:
		return "note", true
	}
	return "none", false
}

// NewSARIF converts a scan report to a SARIF 2.1.0 log. Every rule in reg
// gets a descriptor; Fail, Note and RuleExecutionError verdicts become
// results.
func NewSARIF(r *scan.Report, reg *rules.Registry, version string) (*sarif.Report, error) {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("create sarif report: %w", err)
	}
	run := sarif.NewRunWithInformationURI(ToolName, ToolURI)
	if version != "" {
		run.Tool.Driver.SemanticVersion = &version
	}

	descriptors := make(map[rules.ID]*sarif.ReportingDescriptor, reg.Len())
	for _, rule := range reg.Rules() {
		info := rule.Describe()
		level, _ := SARIFLevel(rule.Mismatch())
		d := run.AddRule(string(info.ID)).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: level}).
			WithProperties(sarif.Properties{"standard": string(info.Standard)})
		name, desc, fix := string(info.ID), info.Description, info.HowToFix
		d.Name = &name
		d.ShortDescription = &sarif.MultiformatMessageString{Text: &desc}
		d.FullDescription = &sarif.MultiformatMessageString{Text: &desc}
		d.Help = &sarif.MultiformatMessageString{Text: &fix}
		descriptors[info.ID] = d
	}

	for _, e := range r.Results {
		level, ok := SARIFLevel(e.Code)
		if !ok {
			continue
		}
		msg := fmt.Sprintf("%s: %s", e.Code, e.Path)
		if d, found := descriptors[e.Rule]; found && d.FullDescription != nil && d.FullDescription.Text != nil {
			msg = *d.FullDescription.Text
		}
		if e.Fault != "" {
			msg = "rule execution error: " + e.Fault
		}

		loc := sarif.NewLocation()
		path, name, kind := e.Path, e.Name, "element"
		loc.LogicalLocations = []*sarif.LogicalLocation{{
			Name:               &name,
			FullyQualifiedName: &path,
			Kind:               &kind,
		}}
		if r.Source != "" {
			loc = loc.WithPhysicalLocation(sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(r.Source)))
		}

		result := sarif.NewRuleResult(string(e.Rule)).
			WithMessage(sarif.NewTextMessage(msg)).
			WithLevel(level).
			WithLocations([]*sarif.Location{loc})
		result.Properties = sarif.Properties{
			"element": e.Element,
			"index":   e.Index,
			"verdict": e.Code.String(),
		}
		run.AddResult(result)
	}
	doc.AddRun(run)
	return doc, nil
}

// WriteSARIF writes r as an indented SARIF log.
func WriteSARIF(w io.Writer, r *scan.Report, reg *rules.Registry, version string) error {
	doc, err := NewSARIF(r, reg, version)
	if err != nil {
		return err
	}
	if err := doc.PrettyWrite(w); err != nil {
		return fmt.Errorf("write sarif: %w", err)
	}
	return nil
}
