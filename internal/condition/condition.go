// Package condition provides composable, side-effect-free predicates over
// accessibility elements.
//
// A Condition is a closed variant: property and control-type primitives,
// child/descendant/sibling/ancestor navigators, and And/Or/Not combinators.
// Conditions are immutable values. Build them once and share them freely
// between rules and goroutines; evaluation keeps all of its state on the
// stack of a single Matches call.
package condition

import (
	"fmt"
	"strings"

	"github.com/mj1618/a11y-check/internal/a11y"
)

// Kind enumerates the condition variants.
type Kind int

const (
	KindConst Kind = iota
	KindProperty
	KindControlType
	KindChild
	KindDescendant
	KindSibling
	KindAncestor
	KindAnd
	KindOr
	KindNot
)

var kindNames = [...]string{
	KindConst:       "Const",
	KindProperty:    "Property",
	KindControlType: "ControlType",
	KindChild:       "Child",
	KindDescendant:  "Descendant",
	KindSibling:     "Sibling",
	KindAncestor:    "Ancestor",
	KindAnd:         "And",
	KindOr:          "Or",
	KindNot:         "Not",
}

// Kinds lists every condition variant.
func Kinds() []Kind {
	return []Kind{KindConst, KindProperty, KindControlType, KindChild, KindDescendant,
		KindSibling, KindAncestor, KindAnd, KindOr, KindNot}
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DefaultMaxDepth bounds Descendant and Ancestor traversal.
const DefaultMaxDepth = 64

// MaxVisited bounds the number of elements one structural condition visits.
const MaxVisited = 10000

// Condition is a pure predicate over an element. The zero value is False.
type Condition struct {
	kind      Kind
	name      string
	value     bool
	property  a11y.PropertyID
	predicate Predicate
	types     []a11y.ControlType
	operands  []Condition
	depth     int
}

// True matches every element.
func True() Condition { return Condition{kind: KindConst, value: true} }

// False matches no element.
func False() Condition { return Condition{kind: KindConst} }

// Property matches when the property is present and satisfies p.
func Property(id a11y.PropertyID, p Predicate) Condition {
	return Condition{kind: KindProperty, property: id, predicate: p}
}

// ControlTypeIs matches elements whose control type is one of types.
func ControlTypeIs(types ...a11y.ControlType) Condition {
	return Condition{kind: KindControlType, types: append([]a11y.ControlType(nil), types...)}
}

// Child matches when at least one direct child satisfies c.
func Child(c Condition) Condition {
	return Condition{kind: KindChild, operands: []Condition{c}}
}

// Descendant matches when any descendant within DefaultMaxDepth levels satisfies c.
func Descendant(c Condition) Condition { return DescendantWithin(c, DefaultMaxDepth) }

// DescendantWithin is Descendant with an explicit depth bound. A depth of 1
// is equivalent to Child.
func DescendantWithin(c Condition, depth int) Condition {
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	return Condition{kind: KindDescendant, operands: []Condition{c}, depth: depth}
}

// Sibling matches when another child of the element's parent satisfies c.
func Sibling(c Condition) Condition {
	return Condition{kind: KindSibling, operands: []Condition{c}}
}

// Ancestor matches when any ancestor within DefaultMaxDepth levels satisfies c.
func Ancestor(c Condition) Condition { return AncestorWithin(c, DefaultMaxDepth) }

// AncestorWithin is Ancestor with an explicit depth bound.
func AncestorWithin(c Condition, depth int) Condition {
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	return Condition{kind: KindAncestor, operands: []Condition{c}, depth: depth}
}

// And matches when every operand matches. Evaluation stops at the first
// operand that does not. An empty And matches.
func And(cs ...Condition) Condition {
	return Condition{kind: KindAnd, operands: append([]Condition(nil), cs...)}
}

// Or matches when any operand matches. Evaluation stops at the first
// operand that does. An empty Or does not match.
func Or(cs ...Condition) Condition {
	return Condition{kind: KindOr, operands: append([]Condition(nil), cs...)}
}

// Not negates c.
func Not(c Condition) Condition {
	return Condition{kind: KindNot, operands: []Condition{c}}
}

// Named returns a copy of c that renders as name.
func (c Condition) Named(name string) Condition {
	c.name = name
	return c
}

// Kind returns the variant of c.
func (c Condition) Kind() Kind { return c.kind }

// Name returns the display name attached with Named, if any.
func (c Condition) Name() string { return c.name }

// Operands returns a copy of the wrapped conditions.
func (c Condition) Operands() []Condition {
	return append([]Condition(nil), c.operands...)
}

// String renders the display name, or the structure of c when unnamed.
func (c Condition) String() string {
	if c.name != "" {
		return c.name
	}
	return c.Structure()
}

// Structure renders c structurally, using operand names where set.
func (c Condition) Structure() string {
	switch c.kind {
	case KindConst:
		if c.value {
			return "True"
		}
		return "False"
	case KindProperty:
		return fmt.Sprintf("%s %s", c.property, c.predicate)
	case KindControlType:
		names := make([]string, len(c.types))
		for i, t := range c.types {
			names[i] = t.String()
		}
		return "ControlType(" + strings.Join(names, "|") + ")"
	case KindChild, KindDescendant, KindSibling, KindAncestor:
		return fmt.Sprintf("%s(%s)", c.kind, c.operands[0])
	case KindAnd, KindOr:
		if len(c.operands) == 0 {
			if c.kind == KindAnd {
				return "True"
			}
			return "False"
		}
		parts := make([]string, len(c.operands))
		for i, op := range c.operands {
			parts[i] = op.String()
		}
		sep := " AND "
		if c.kind == KindOr {
			sep = " OR "
		}
		return "(" + strings.Join(parts, sep) + ")"
	case KindNot:
		return "NOT " + c.operands[0].String()
	}
	return c.kind.String()
}
