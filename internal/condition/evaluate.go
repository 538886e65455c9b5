package condition

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/mj1618/a11y-check/internal/a11y"
)

var (
	// ErrNilElement is returned when a condition is evaluated against nil.
	ErrNilElement = errors.New("nil element")

	// ErrUnknownKind is returned for a condition value outside the closed set.
	ErrUnknownKind = errors.New("unknown condition kind")
)

// Matches evaluates c against e. Absent properties, missing relatives,
// revisited elements and exhausted traversal bounds are non-matches. Any
// error reported by the element provider is returned wrapped.
func (c Condition) Matches(e a11y.Element) (bool, error) {
	if a11y.IsNil(e) {
		return false, ErrNilElement
	}
	return c.match(e)
}

func (c Condition) match(e a11y.Element) (bool, error) {
	switch c.kind {
	case KindConst:
		return c.value, nil
	case KindProperty:
		v, ok, err := e.Property(c.property)
		if err != nil {
			return false, fmt.Errorf("read property %s: %w", c.property, err)
		}
		return ok && c.predicate.Test(v), nil
	case KindControlType:
		ct, err := e.ControlType()
		if err != nil {
			return false, fmt.Errorf("read control type: %w", err)
		}
		return slices.Contains(c.types, ct), nil
	case KindChild:
		return c.child(e)
	case KindDescendant:
		return c.descendant(e)
	case KindSibling:
		return c.sibling(e)
	case KindAncestor:
		return c.ancestor(e)
	case KindAnd:
		for _, op := range c.operands {
			ok, err := op.match(e)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case KindOr:
		for _, op := range c.operands {
			ok, err := op.match(e)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	case KindNot:
		ok, err := c.operands[0].match(e)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
	return false, fmt.Errorf("%w: %d", ErrUnknownKind, int(c.kind))
}

func (c Condition) child(e a11y.Element) (bool, error) {
	children, err := e.Children()
	if err != nil {
		return false, fmt.Errorf("read children: %w", err)
	}
	for _, ch := range children {
		if a11y.IsNil(ch) {
			continue
		}
		ok, err := c.operands[0].match(ch)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

type frame struct {
	el    a11y.Element
	depth int
}

// descendant walks the subtree depth-first in document order.
func (c Condition) descendant(e a11y.Element) (bool, error) {
	g := newGuard(e)
	var stack []frame
	push := func(parent a11y.Element, depth int) error {
		children, err := parent.Children()
		if err != nil {
			return fmt.Errorf("read children: %w", err)
		}
		for i := len(children) - 1; i >= 0; i-- {
			if !a11y.IsNil(children[i]) {
				stack = append(stack, frame{children[i], depth})
			}
		}
		return nil
	}
	if err := push(e, 1); err != nil {
		return false, err
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch g.enter(f.el) {
		case visitRevisit:
			continue
		case visitExhausted:
			return false, nil
		}
		ok, err := c.operands[0].match(f.el)
		if err != nil || ok {
			return ok, err
		}
		if f.depth < c.depth {
			if err := push(f.el, f.depth+1); err != nil {
				return false, err
			}
		}
	}
	return false, nil
}

func (c Condition) ancestor(e a11y.Element) (bool, error) {
	g := newGuard(e)
	cur := e
	for depth := 0; depth < c.depth; depth++ {
		p, err := cur.Parent()
		if err != nil {
			return false, fmt.Errorf("read parent: %w", err)
		}
		if a11y.IsNil(p) || g.enter(p) != visitOK {
			return false, nil
		}
		ok, err := c.operands[0].match(p)
		if err != nil || ok {
			return ok, err
		}
		cur = p
	}
	return false, nil
}

func (c Condition) sibling(e a11y.Element) (bool, error) {
	p, err := e.Parent()
	if err != nil {
		return false, fmt.Errorf("read parent: %w", err)
	}
	if a11y.IsNil(p) {
		return false, nil
	}
	siblings, err := p.Children()
	if err != nil {
		return false, fmt.Errorf("read siblings: %w", err)
	}
	selfSkipped := false
	for _, s := range siblings {
		if a11y.IsNil(s) {
			continue
		}
		if !selfSkipped && isSelf(s, e) {
			selfSkipped = true
			continue
		}
		ok, err := c.operands[0].match(s)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// isSelf falls back to deep equality for elements without an identity.
func isSelf(a, b a11y.Element) bool {
	if a11y.Identity(b) != nil {
		return a11y.SameElement(a, b)
	}
	return reflect.DeepEqual(a, b)
}

type visit int

const (
	visitOK visit = iota
	visitRevisit
	visitExhausted
)

// guard tracks the elements one structural traversal has entered.
type guard struct {
	seen   map[any]struct{}
	visits int
}

func newGuard(start a11y.Element) *guard {
	g := &guard{seen: make(map[any]struct{})}
	if id := a11y.Identity(start); id != nil {
		g.seen[id] = struct{}{}
	}
	return g
}

func (g *guard) enter(e a11y.Element) visit {
	if g.visits >= MaxVisited {
		return visitExhausted
	}
	g.visits++
	id := a11y.Identity(e)
	if id == nil {
		return visitOK
	}
	if _, dup := g.seen[id]; dup {
		return visitRevisit
	}
	g.seen[id] = struct{}{}
	return visitOK
}
