package scan

import (
	"fmt"

	"github.com/mj1618/a11y-check/internal/a11y"
	"github.com/mj1618/a11y-check/internal/rules"
)

// Verdict is one rule outcome for a single element, with the rendered rule
// description and the fault behind a RuleExecutionError.
type Verdict struct {
	Rule        rules.ID             `yaml:"rule"            json:"rule"`
	Code        rules.EvaluationCode `yaml:"code"            json:"code"`
	Description string               `yaml:"description"     json:"description"`
	HowToFix    string               `yaml:"how_to_fix"      json:"how_to_fix"`
	Fault       string               `yaml:"fault,omitempty" json:"fault,omitempty"`
}

// Explanation is the outcome of every rule for one element.
type Explanation struct {
	Element  string    `yaml:"element"        json:"element"`
	Path     string    `yaml:"path"           json:"path"`
	Name     string    `yaml:"name,omitempty" json:"name,omitempty"`
	Verdicts []Verdict `yaml:"verdicts"       json:"verdicts"`
}

// Explain evaluates every rule of reg against e in registration order.
func Explain(reg *rules.Registry, e a11y.Element) (*Explanation, error) {
	if a11y.IsNil(e) {
		return nil, fmt.Errorf("explain: %w", rules.ErrInvalidArgument)
	}
	t := Locate(e)
	out := &Explanation{Element: t.ID, Path: t.Path, Name: t.Name}
	for _, r := range reg.Rules() {
		code, fault, err := r.Explain(e)
		if err != nil {
			return nil, err
		}
		info := r.Describe()
		v := Verdict{Rule: r.ID(), Code: code, Description: info.Description, HowToFix: info.HowToFix}
		if fault != nil {
			v.Fault = fault.Error()
		}
		out.Verdicts = append(out.Verdicts, v)
	}
	return out, nil
}

// Verdict returns the verdict for id, if reg held that rule.
func (x *Explanation) Verdict(id rules.ID) (Verdict, bool) {
	for _, v := range x.Verdicts {
		if v.Rule == id {
			return v, true
		}
	}
	return Verdict{}, false
}
