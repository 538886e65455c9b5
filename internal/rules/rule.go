// Package rules binds conditions to identifiers and remediation metadata and
// evaluates them against elements with per-rule failure isolation.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mj1618/a11y-check/internal/a11y"
	"github.com/mj1618/a11y-check/internal/condition"
)

var (
	// ErrInvalidArgument is returned by Evaluate for a nil element.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidRule is returned by New for malformed rule definitions.
	ErrInvalidRule = errors.New("invalid rule")
	// ErrRulePanic wraps a panic recovered while a rule was evaluating.
	ErrRulePanic = errors.New("rule panicked")
)

// Info is the static metadata of a rule. Description and HowToFix are
// templates; a "%s" is replaced by the rule condition's description.
type Info struct {
	ID          ID       `yaml:"id" json:"id"`
	Description string   `yaml:"description" json:"description"`
	HowToFix    string   `yaml:"how_to_fix" json:"how_to_fix"`
	Standard    Standard `yaml:"standard" json:"standard"`
}

// Render returns a copy of info with both templates substituted by desc.
func (info Info) Render(desc string) Info {
	info.Description = strings.ReplaceAll(info.Description, "%s", desc)
	info.HowToFix = strings.ReplaceAll(info.HowToFix, "%s", desc)
	return info
}

// EvaluateFunc is a custom rule body. It receives the element and the rule
// condition and returns the verdict.
type EvaluateFunc func(e a11y.Element, cond condition.Condition) (EvaluationCode, error)

// Rule is an immutable accessibility check.
type Rule struct {
	info       Info
	cond       condition.Condition
	applies    condition.Condition
	scoped     bool
	onMismatch EvaluationCode
	evaluate   EvaluateFunc
}

// Option configures a Rule at construction.
type Option func(*Rule)

// AppliesTo restricts the rule to elements matching c. Other elements
// evaluate to Open.
func AppliesTo(c condition.Condition) Option {
	return func(r *Rule) {
		r.applies = c
		r.scoped = true
	}
}

// OnMismatch sets the verdict for elements that do not satisfy the rule
// condition. Fail is the default; Note marks heuristic rules.
func OnMismatch(code EvaluationCode) Option {
	return func(r *Rule) { r.onMismatch = code }
}

// WithEvaluator replaces the default match-then-verdict body.
func WithEvaluator(fn EvaluateFunc) Option {
	return func(r *Rule) { r.evaluate = fn }
}

// New builds a rule from its metadata and condition.
func New(info Info, cond condition.Condition, opts ...Option) (*Rule, error) {
	r := &Rule{info: info, cond: cond, onMismatch: Fail}
	for _, opt := range opts {
		opt(r)
	}
	if strings.TrimSpace(string(info.ID)) == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidRule)
	}
	if r.onMismatch != Fail && r.onMismatch != Note {
		return nil, fmt.Errorf("%w: %s: mismatch verdict must be Fail or Note, got %s", ErrInvalidRule, info.ID, r.onMismatch)
	}
	return r, nil
}

// MustNew is like New but panics on error. It is used for the built-in catalog.
func MustNew(info Info, cond condition.Condition, opts ...Option) *Rule {
	r, err := New(info, cond, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Rule) ID() ID { return r.info.ID }

// Info returns the raw metadata templates.
func (r *Rule) Info() Info { return r.info }

// Condition returns the condition the rule checks.
func (r *Rule) Condition() condition.Condition { return r.cond }

// Scope returns the applicability condition and whether one was set.
func (r *Rule) Scope() (condition.Condition, bool) { return r.applies, r.scoped }

// Mismatch returns the code reported when the condition does not match.
func (r *Rule) Mismatch() EvaluationCode { return r.onMismatch }

// Describe returns the metadata with templates rendered against the rule
// condition.
func (r *Rule) Describe() Info { return r.info.Render(r.cond.String()) }

// Evaluate checks e against the rule. The only error is ErrInvalidArgument
// for a nil element, reported with the zero code Open; any failure inside
// the rule yields RuleExecutionError.
func (r *Rule) Evaluate(e a11y.Element) (EvaluationCode, error) {
	code, _, err := r.Explain(e)
	return code, err
}

// Explain is Evaluate plus the cause of a RuleExecutionError verdict.
func (r *Rule) Explain(e a11y.Element) (code EvaluationCode, fault error, err error) {
	if a11y.IsNil(e) {
		return Open, nil, fmt.Errorf("%w: rule %s: nil element", ErrInvalidArgument, r.info.ID)
	}
	code, fault = r.run(e)
	return code, fault, nil
}

func (r *Rule) run(e a11y.Element) (code EvaluationCode, fault error) {
	defer func() {
		if p := recover(); p != nil {
			code = RuleExecutionError
			fault = fmt.Errorf("rule %s: %w: %v", r.info.ID, ErrRulePanic, p)
		}
	}()
	code, err := r.decide(e)
	if err != nil {
		return RuleExecutionError, fmt.Errorf("rule %s: %w", r.info.ID, err)
	}
	if !code.Valid() {
		return RuleExecutionError, fmt.Errorf("rule %s: evaluator returned %s", r.info.ID, code)
	}
	return code, nil
}

func (r *Rule) decide(e a11y.Element) (EvaluationCode, error) {
	if r.scoped {
		ok, err := r.applies.Matches(e)
		if err != nil {
			return 0, fmt.Errorf("applicability: %w", err)
		}
		if !ok {
			return Open, nil
		}
	}
	if r.evaluate != nil {
		return r.evaluate(e, r.cond)
	}
	ok, err := r.cond.Matches(e)
	if err != nil {
		return 0, err
	}
	if ok {
		return Pass, nil
	}
	return r.onMismatch, nil
}
