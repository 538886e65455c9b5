package condition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/a11y-check/internal/a11y"
)

func mustMatch(t *testing.T, c Condition, e a11y.Element) bool {
	t.Helper()
	ok, err := c.Matches(e)
	require.NoError(t, err)
	return ok
}

func TestPredicates(t *testing.T) {
	type level int32
	tests := []struct {
		name string
		pred Predicate
		v    any
		want bool
	}{
		{"exists", Exists(), "", true},
		{"equals string", Equals("OK"), "OK", true},
		{"equals string case", Equals("OK"), "ok", false},
		{"equals int vs float", Equals(3), 3.0, true},
		{"equals named int", Equals(80051), level(80051), true},
		{"equals bool", Equals(true), true, true},
		{"equals type mismatch", Equals(1), "1", false},
		{"equals slice", Equals([]int{1, 2}), []int{1, 2}, true},
		{"fold", EqualFold("Éditer"), "éDITER", true},
		{"fold mismatch", EqualFold("submit"), "submitted", false},
		{"fold non string", EqualFold("1"), 1, false},
		{"contains", Contains("edit"), "Rich Edit Control", true},
		{"contains missing", Contains("button"), "Rich Edit Control", false},
		{"range inside", InRange(0, 100), 50, true},
		{"range edge", InRange(0, 100), uint8(100), true},
		{"range outside", InRange(0, 100), 100.5, false},
		{"range non numeric", InRange(0, 100), "50", false},
		{"flags set", HasFlags(0x1), 0x41, true},
		{"flags all bits", HasFlags(0x5), 0x4, false},
		{"flags float", HasFlags(0x2), float64(6), true},
		{"flags fractional", HasFlags(0x2), 6.5, false},
		{"non empty", NonEmpty(), " x ", true},
		{"non empty whitespace", NonEmpty(), " \t", false},
		{"is true", IsTrue(), true, true},
		{"is true false", IsTrue(), false, false},
		{"is true string", IsTrue(), "true", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred.Test(tt.v))
		})
	}
}

func TestProperty_AbsentIsNonMatch(t *testing.T) {
	el := newFake("plain", a11y.ControlTypeText)
	ok, err := Property(a11y.PropertyHelpText, Exists()).Matches(el)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = Not(Property(a11y.PropertyHelpText, Exists())).Matches(el)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestControlTypeIs(t *testing.T) {
	n := buildForm()
	assert.True(t, mustMatch(t, ControlTypeIs(a11y.ControlTypeEdit), n["field"]))
	assert.True(t, mustMatch(t, ControlTypeIs(a11y.ControlTypeButton, a11y.ControlTypeEdit), n["field"]))
	assert.False(t, mustMatch(t, ControlTypeIs(a11y.ControlTypeButton), n["field"]))
	assert.False(t, mustMatch(t, ControlTypeIs(), n["field"]))
}

func TestStructural(t *testing.T) {
	n := buildForm()
	edit := ControlTypeIs(a11y.ControlTypeEdit)
	button := ControlTypeIs(a11y.ControlTypeButton)
	doc := ControlTypeIs(a11y.ControlTypeDocument)

	tests := []struct {
		name string
		cond Condition
		el   string
		want bool
	}{
		{"child direct", Child(button), "toolbar", true},
		{"child not grandchild", Child(edit), "document", false},
		{"child leaf", Child(True()), "field", false},
		{"descendant deep", Descendant(edit), "window", true},
		{"descendant within bound", DescendantWithin(edit, 2), "document", true},
		{"descendant beyond bound", DescendantWithin(edit, 1), "document", false},
		{"descendant excludes self", Descendant(edit), "field", false},
		{"sibling", Sibling(button), "back", true},
		{"sibling excludes self", Sibling(ControlTypeIs(a11y.ControlTypeToolBar)), "toolbar", false},
		{"sibling other branch", Sibling(doc), "toolbar", true},
		{"root has no siblings", Sibling(True()), "window", false},
		{"ancestor", Ancestor(doc), "field", true},
		{"ancestor excludes self", Ancestor(doc), "document", false},
		{"ancestor within bound", AncestorWithin(doc, 1), "field", false},
		{"root has no ancestors", Ancestor(True()), "window", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustMatch(t, tt.cond, n[tt.el]))
		})
	}
}

func TestDescendant_DocumentOrder(t *testing.T) {
	n := buildForm()
	// The first button in document order is found before the document branch
	// is entered, so the document's properties are never read.
	c := Descendant(Or(ControlTypeIs(a11y.ControlTypeButton), Property(a11y.PropertyIsContentElement, IsTrue())))
	assert.True(t, mustMatch(t, c, n["window"]))
	assert.Zero(t, n["document"].reads[a11y.PropertyIsContentElement])
}

func TestDescendant_CycleTerminates(t *testing.T) {
	a := newFake("a", a11y.ControlTypePane)
	b := newFake("b", a11y.ControlTypeGroup)
	c := newFake("c", a11y.ControlTypeButton)
	a.add(b)
	b.add(c)
	// Corrupted provider: b reports a as its child as well.
	b.children = append(b.children, a)

	assert.False(t, mustMatch(t, Descendant(ControlTypeIs(a11y.ControlTypeEdit)), a))
	assert.True(t, mustMatch(t, Descendant(ControlTypeIs(a11y.ControlTypeButton)), a))
	// Revisiting the start element is not a match.
	assert.False(t, mustMatch(t, Descendant(ControlTypeIs(a11y.ControlTypePane)), a))
}

func TestDescendant_SelfLoopWithFanOut(t *testing.T) {
	root := newFake("root", a11y.ControlTypePane)
	// Every node lists root twice; without a visited set this explodes.
	l := newFake("l", a11y.ControlTypeGroup)
	r := newFake("r", a11y.ControlTypeGroup)
	root.add(l, r)
	l.children = append(l.children, root, root)
	r.children = append(r.children, root, root)

	assert.False(t, mustMatch(t, Descendant(ControlTypeIs(a11y.ControlTypeEdit)), root))
}

func TestAncestor_CycleTerminates(t *testing.T) {
	a := newFake("a", a11y.ControlTypeGroup)
	b := newFake("b", a11y.ControlTypeGroup)
	a.parent = b
	b.parent = a

	assert.False(t, mustMatch(t, Ancestor(ControlTypeIs(a11y.ControlTypeWindow)), a))
	assert.True(t, mustMatch(t, Ancestor(Property(a11y.PropertyName, Equals("b"))), a))
}

func TestDescendant_BudgetExhausted(t *testing.T) {
	root := newFake("root", a11y.ControlTypeList)
	for i := 0; i < MaxVisited+10; i++ {
		root.add(newFake("item", a11y.ControlTypeListItem))
	}
	last := root.children[len(root.children)-1].(*fakeElement)
	last.ctype = a11y.ControlTypeEdit

	assert.False(t, mustMatch(t, Descendant(ControlTypeIs(a11y.ControlTypeEdit)), root))
	// Direct children are not subject to the traversal budget.
	assert.True(t, mustMatch(t, Child(ControlTypeIs(a11y.ControlTypeEdit)), root))
}

func TestBoolean_ShortCircuit(t *testing.T) {
	el := newFake("el", a11y.ControlTypeButton)
	marker := Property(a11y.PropertyHelpText, Exists())

	assert.False(t, mustMatch(t, And(False(), marker), el))
	assert.Zero(t, el.reads[a11y.PropertyHelpText], "And must stop at the first false operand")

	assert.True(t, mustMatch(t, Or(True(), marker), el))
	assert.Zero(t, el.reads[a11y.PropertyHelpText], "Or must stop at the first true operand")

	assert.False(t, mustMatch(t, And(True(), marker), el))
	assert.Equal(t, 1, el.reads[a11y.PropertyHelpText])
}

func TestBoolean_EmptyAndNegation(t *testing.T) {
	el := newFake("el", a11y.ControlTypeButton)
	assert.True(t, mustMatch(t, And(), el))
	assert.False(t, mustMatch(t, Or(), el))
	assert.True(t, mustMatch(t, Not(False()), el))
	assert.False(t, mustMatch(t, Not(Not(False())), el))
}

func TestMatches_ProviderErrorPropagates(t *testing.T) {
	n := buildForm()
	n["group"].fault = errProvider

	_, err := Descendant(ControlTypeIs(a11y.ControlTypeEdit)).Matches(n["document"])
	require.Error(t, err)
	assert.True(t, errors.Is(err, errProvider))

	_, err = Property(a11y.PropertyName, Exists()).Matches(n["group"])
	assert.ErrorIs(t, err, errProvider)

	// A short-circuit before the faulty read avoids the error entirely.
	ok, err := Or(True(), Property(a11y.PropertyName, Exists())).Matches(n["group"])
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMatches_NilElement(t *testing.T) {
	var typed *fakeElement
	_, err := True().Matches(nil)
	assert.ErrorIs(t, err, ErrNilElement)
	_, err = True().Matches(typed)
	assert.ErrorIs(t, err, ErrNilElement)
}

func TestNilChildrenAreSkipped(t *testing.T) {
	parent := newFake("p", a11y.ControlTypeGroup)
	var missing *fakeElement
	parent.children = []a11y.Element{nil, missing}
	assert.False(t, mustMatch(t, Child(True()), parent))
	assert.False(t, mustMatch(t, Descendant(True()), parent))
}

func TestString(t *testing.T) {
	edit := ControlTypeIs(a11y.ControlTypeEdit).Named("Edit")
	tests := []struct {
		cond Condition
		want string
	}{
		{True(), "True"},
		{Condition{}, "False"},
		{ControlTypeIs(a11y.ControlTypeButton, a11y.ControlTypeEdit), "ControlType(Button|Edit)"},
		{Child(edit), "Child(Edit)"},
		{And(edit, Property(a11y.PropertyName, NonEmpty())), "(Edit AND Name is not empty)"},
		{Or(Not(edit), Property(a11y.PropertyHeadingLevel, InRange(80050, 80059))), "(NOT Edit OR HeadingLevel in [80050, 80059])"},
		{Descendant(edit).Named("EditStructure"), "EditStructure"},
		{And(), "True"},
		{Or(), "False"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cond.String())
	}
	assert.Equal(t, "Child(Edit)", Child(edit).Named("X").Structure())
}

func TestKinds_Exhaustive(t *testing.T) {
	el := buildForm()["document"]
	samples := map[Kind]Condition{
		KindConst:       True(),
		KindProperty:    Property(a11y.PropertyName, Exists()),
		KindControlType: ControlTypeIs(a11y.ControlTypeDocument),
		KindChild:       Child(True()),
		KindDescendant:  Descendant(True()),
		KindSibling:     Sibling(True()),
		KindAncestor:    Ancestor(True()),
		KindAnd:         And(True()),
		KindOr:          Or(True()),
		KindNot:         Not(False()),
	}
	for _, k := range Kinds() {
		c, ok := samples[k]
		require.True(t, ok, "no sample for kind %s", k)
		assert.Equal(t, k, c.Kind())
		_, err := c.Matches(el)
		assert.NoError(t, err, "kind %s", k)
	}

	_, err := Condition{kind: Kind(99)}.Matches(el)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestOperands_ReturnsCopy(t *testing.T) {
	c := And(True(), False())
	ops := c.Operands()
	ops[0] = False()
	assert.True(t, mustMatch(t, c.Operands()[0], newFake("x", a11y.ControlTypeText)))
}

// heldElement is a value element whose interface field may hold a slice.
type heldElement struct {
	payload  any
	children []a11y.Element
}

func (h heldElement) Property(a11y.PropertyID) (any, bool, error) { return nil, false, nil }
func (h heldElement) ControlType() (a11y.ControlType, error)      { return a11y.ControlTypeGroup, nil }
func (h heldElement) Children() ([]a11y.Element, error)           { return h.children, nil }
func (h heldElement) Parent() (a11y.Element, error)               { return nil, nil }

func TestDescendant_ValueHoldingSlice(t *testing.T) {
	leaf := heldElement{payload: []int{1}}
	root := heldElement{payload: []string{"x"}, children: []a11y.Element{leaf}}
	require.NotPanics(t, func() {
		assert.True(t, mustMatch(t, Descendant(True()), root))
	})
}
