package condition

import (
	"errors"

	"github.com/mj1618/a11y-check/internal/a11y"
)

var errProvider = errors.New("provider unavailable")

// fakeElement is an in-memory tree node that records property reads.
type fakeElement struct {
	name     string
	ctype    a11y.ControlType
	props    map[a11y.PropertyID]any
	children []a11y.Element
	parent   a11y.Element
	fault    error
	reads    map[a11y.PropertyID]int
}

func newFake(name string, ct a11y.ControlType) *fakeElement {
	return &fakeElement{
		name:  name,
		ctype: ct,
		props: map[a11y.PropertyID]any{a11y.PropertyName: name},
		reads: make(map[a11y.PropertyID]int),
	}
}

func (f *fakeElement) with(id a11y.PropertyID, v any) *fakeElement {
	f.props[id] = v
	return f
}

// add appends children and sets their parent link.
func (f *fakeElement) add(children ...*fakeElement) *fakeElement {
	for _, c := range children {
		c.parent = f
		f.children = append(f.children, c)
	}
	return f
}

func (f *fakeElement) Property(id a11y.PropertyID) (any, bool, error) {
	f.reads[id]++
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

// buildForm creates:
//
//	window
//	├── toolbar
//	│   ├── back (button)
//	│   └── forward (button)
//	└── document (content)
//	    ├── heading (text)
//	    └── group
//	        └── field (edit)
func buildForm() map[string]*fakeElement {
	n := map[string]*fakeElement{
		"window":   newFake("window", a11y.ControlTypeWindow),
		"toolbar":  newFake("toolbar", a11y.ControlTypeToolBar),
		"back":     newFake("back", a11y.ControlTypeButton),
		"forward":  newFake("forward", a11y.ControlTypeButton),
		"document": newFake("document", a11y.ControlTypeDocument).with(a11y.PropertyIsContentElement, true),
		"heading":  newFake("heading", a11y.ControlTypeText).with(a11y.PropertyHeadingLevel, 80051),
		"group":    newFake("group", a11y.ControlTypeGroup),
		"field":    newFake("field", a11y.ControlTypeEdit).with(a11y.PropertyIsKeyboardFocusable, true),
	}
	n["window"].add(n["toolbar"], n["document"])
	n["toolbar"].add(n["back"], n["forward"])
	n["document"].add(n["heading"], n["group"])
	n["group"].add(n["field"])
	return n
}
