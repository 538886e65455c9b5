package output

import (
	"github.com/mj1618/a11y-check/internal/model"
	"github.com/mj1618/a11y-check/internal/rules"
)

// TreeResult is the top-level output of the `tree` command.
type TreeResult struct {
	Source   string          `yaml:"source"   json:"source"`
	Count    int             `yaml:"count"    json:"count"`
	Elements []model.Element `yaml:"elements" json:"elements"`
}

// TreeFlatResult is the top-level output when --flat is used.
type TreeFlatResult struct {
	Source   string              `yaml:"source"   json:"source"`
	Count    int                 `yaml:"count"    json:"count"`
	Elements []model.FlatElement `yaml:"elements" json:"elements"`
}

// RuleView is the rendered metadata of one rule.
type RuleView struct {
	ID          rules.ID       `yaml:"id"                   json:"id"`
	Standard    rules.Standard `yaml:"standard"             json:"standard"`
	Description string         `yaml:"description"          json:"description"`
	HowToFix    string         `yaml:"how_to_fix"           json:"how_to_fix"`
	Condition   string         `yaml:"condition"            json:"condition"`
	AppliesTo   string         `yaml:"applies_to,omitempty" json:"applies_to,omitempty"`
}

// NewRuleView renders r for display.
func NewRuleView(r *rules.Rule) RuleView {
	info := r.Describe()
	v := RuleView{
		ID:          info.ID,
		Standard:    info.Standard,
		Description: info.Description,
		HowToFix:    info.HowToFix,
		Condition:   r.Condition().Structure(),
	}
	if scope, ok := r.Scope(); ok {
		v.AppliesTo = scope.String()
	}
	return v
}

// RuleViews renders every rule of reg in registration order.
func RuleViews(reg *rules.Registry) []RuleView {
	var views []RuleView
	for _, r := range reg.Rules() {
		views = append(views, NewRuleView(r))
	}
	return views
}
