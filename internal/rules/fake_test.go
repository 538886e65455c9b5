package rules

import (
	"errors"

	"github.com/mj1618/a11y-check/internal/a11y"
)

var errProvider = errors.New("provider unavailable")

type fakeElement struct {
	ctype    a11y.ControlType
	props    map[a11y.PropertyID]any
	children []a11y.Element
	parent   a11y.Element
	fault    error
}

func newFake(name string, ct a11y.ControlType) *fakeElement {
	return &fakeElement{
		ctype: ct,
		props: map[a11y.PropertyID]any{a11y.PropertyName: name},
	}
}

func (f *fakeElement) with(id a11y.PropertyID, v any) *fakeElement {
	f.props[id] = v
	return f
}

func (f *fakeElement) add(children ...*fakeElement) *fakeElement {
	for _, c := range children {
		c.parent = f
		f.children = append(f.children, c)
	}
	return f
}

func (f *fakeElement) Property(id a11y.PropertyID) (any, bool, error) {
	if f.fault != nil {
		return nil, false, f.fault
	}
	v, ok := f.props[id]
	return v, ok, nil
}

func (f *fakeElement) ControlType() (a11y.ControlType, error) {
	if f.fault != nil {
		return 0, f.fault
	}
	return f.ctype, nil
}

func (f *fakeElement) Children() ([]a11y.Element, error) {
	if f.fault != nil {
		return nil, f.fault
	}
	return f.children, nil
}

func (f *fakeElement) Parent() (a11y.Element, error) {
	if f.fault != nil {
		return nil, f.fault
	}
	return f.parent, nil
}

func contentView(name string) *fakeElement {
	return newFake(name, a11y.ControlTypeDocument).with(a11y.PropertyIsContentElement, true)
}
