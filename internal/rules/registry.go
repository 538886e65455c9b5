package rules

import (
	"errors"
	"fmt"

	"github.com/mj1618/a11y-check/internal/a11y"
)

var (
	// ErrDuplicateRule is returned when two rules share an id.
	ErrDuplicateRule = errors.New("duplicate rule id")
	// ErrUnknownRule is returned when a selected id is not registered.
	ErrUnknownRule = errors.New("unknown rule id")
)

// Registry is an ordered, immutable set of rules with unique ids.
type Registry struct {
	rules []*Rule
	byID  map[ID]*Rule
}

// NewRegistry registers rules in the given order.
func NewRegistry(rules ...*Rule) (*Registry, error) {
	reg := &Registry{
		rules: make([]*Rule, 0, len(rules)),
		byID:  make(map[ID]*Rule, len(rules)),
	}
	for i, r := range rules {
		if r == nil {
			return nil, fmt.Errorf("%w: nil rule at position %d", ErrInvalidRule, i)
		}
		if _, ok := reg.byID[r.ID()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, r.ID())
		}
		reg.byID[r.ID()] = r
		reg.rules = append(reg.rules, r)
	}
	return reg, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(rules ...*Rule) *Registry {
	reg, err := NewRegistry(rules...)
	if err != nil {
		panic(err)
	}
	return reg
}

func (reg *Registry) Lookup(id ID) (*Rule, bool) {
	r, ok := reg.byID[id]
	return r, ok
}

// Rules returns the rules in registration order.
func (reg *Registry) Rules() []*Rule {
	return append([]*Rule(nil), reg.rules...)
}

func (reg *Registry) Len() int { return len(reg.rules) }

// EvaluateAll runs every rule against e and returns one result per rule in
// registration order. A rule that fails internally does not affect the
// others.
func (reg *Registry) EvaluateAll(e a11y.Element) ([]Result, error) {
	if a11y.IsNil(e) {
		return nil, fmt.Errorf("%w: nil element", ErrInvalidArgument)
	}
	results := make([]Result, 0, len(reg.rules))
	for _, r := range reg.rules {
		code, fault, err := r.Explain(e)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{RuleID: r.ID(), Element: e, Code: code, Fault: fault})
	}
	return results, nil
}

// Select returns a registry holding only ids, in the order given.
func (reg *Registry) Select(ids ...ID) (*Registry, error) {
	picked := make([]*Rule, 0, len(ids))
	for _, id := range ids {
		r, ok := reg.byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, id)
		}
		picked = append(picked, r)
	}
	return NewRegistry(picked...)
}
