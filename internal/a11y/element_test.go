package a11y

import "testing"

type stubElement struct{ id string }

func (s stubElement) Property(PropertyID) (any, bool, error) { return nil, false, nil }
func (s stubElement) ControlType() (ControlType, error)      { return ControlTypeButton, nil }
func (s stubElement) Children() ([]Element, error)           { return nil, nil }
func (s stubElement) Parent() (Element, error)               { return nil, nil }

type runtimeElement struct {
	stubElement
	rid string
}

func (r runtimeElement) RuntimeID() string { return r.rid }

type sliceElement []int

func (s sliceElement) Property(PropertyID) (any, bool, error) { return nil, false, nil }
func (s sliceElement) ControlType() (ControlType, error)      { return ControlTypeText, nil }
func (s sliceElement) Children() ([]Element, error)           { return nil, nil }
func (s sliceElement) Parent() (Element, error)               { return nil, nil }

func TestIsNil(t *testing.T) {
	var typedNil *stubElement
	tests := []struct {
		name string
		el   Element
		want bool
	}{
		{"nil interface", nil, true},
		{"typed nil pointer", typedNil, true},
		{"nil slice element", sliceElement(nil), true},
		{"live pointer", &stubElement{}, false},
		{"value type", runtimeElement{rid: "1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNil(tt.el); got != tt.want {
				t.Errorf("IsNil() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIdentity_PointerAndRuntimeID(t *testing.T) {
	a := &stubElement{id: "a"}
	b := &stubElement{id: "a"}
	if !SameElement(a, a) {
		t.Error("pointer should be identical to itself")
	}
	if SameElement(a, b) {
		t.Error("distinct pointers should not be the same element")
	}

	r1 := runtimeElement{rid: "42.1"}
	r2 := runtimeElement{rid: "42.1"}
	if !SameElement(r1, r2) {
		t.Error("elements with equal runtime ids should be the same element")
	}
	if SameElement(r1, runtimeElement{rid: "42.2"}) {
		t.Error("different runtime ids should differ")
	}
}

func TestIdentity_NonComparable(t *testing.T) {
	if got := Identity(sliceElement{1, 2}); got != nil {
		t.Errorf("expected nil identity for non-comparable element, got %v", got)
	}
	if SameElement(sliceElement{1}, sliceElement{1}) {
		t.Error("non-comparable elements are never reported as the same")
	}
}

// payloadElement has a comparable static type whose dynamic value may not be.
type payloadElement struct {
	stubElement
	payload any
}

func TestIdentity_InterfaceFieldHoldsSlice(t *testing.T) {
	held := payloadElement{payload: []int{1}}
	if got := Identity(held); got != nil {
		t.Errorf("expected nil identity for element holding a slice, got %v", got)
	}
	if SameElement(held, held) {
		t.Error("element holding a slice is never reported as the same")
	}

	plain := payloadElement{payload: 7}
	if Identity(plain) == nil {
		t.Fatal("element holding a comparable payload should have an identity")
	}
	if !SameElement(plain, payloadElement{payload: 7}) {
		t.Error("equal comparable values should be the same element")
	}
}

func TestParseControlType(t *testing.T) {
	tests := []struct {
		input string
		want  ControlType
	}{
		{"Edit", ControlTypeEdit},
		{"edit", ControlTypeEdit},
		{" Document ", ControlTypeDocument},
		{"ListItem", ControlTypeListItem},
	}
	for _, tt := range tests {
		got, err := ParseControlType(tt.input)
		if err != nil {
			t.Errorf("ParseControlType(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseControlType(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
	if _, err := ParseControlType("Widget"); err == nil {
		t.Error("ParseControlType(\"Widget\") should fail")
	}
}

func TestControlType_String(t *testing.T) {
	if got := ControlTypeButton.String(); got != "Button" {
		t.Errorf("got %q, want Button", got)
	}
	if got := ControlType(1).String(); got != "ControlType(1)" {
		t.Errorf("got %q, want ControlType(1)", got)
	}
	if ControlType(1).Known() {
		t.Error("ControlType(1) should not be known")
	}
}

func TestCatalogs(t *testing.T) {
	props := Properties()
	if len(props) == 0 {
		t.Fatal("property catalog is empty")
	}
	for i := 1; i < len(props); i++ {
		if props[i-1].ID >= props[i].ID {
			t.Errorf("property catalog not ordered at %d", i)
		}
	}
	events := Events()
	seen := make(map[int]bool)
	for _, e := range events {
		if seen[e.ID] {
			t.Errorf("duplicate event id %d", e.ID)
		}
		seen[e.ID] = true
	}
	if !seen[int(EventFocusChanged)] {
		t.Error("focus changed event missing from catalog")
	}

	// Returned slices are copies.
	events[0].Name = "mutated"
	if Events()[0].Name == "mutated" {
		t.Error("Events() must return a copy")
	}
}

func TestParsePropertyID(t *testing.T) {
	id, err := ParsePropertyID("isContentElement")
	if err != nil {
		t.Fatal(err)
	}
	if id != PropertyIsContentElement {
		t.Errorf("got %v, want IsContentElement", id)
	}
	if PropertyName.String() != "Name" {
		t.Errorf("PropertyName.String() = %q", PropertyName.String())
	}
	if _, err := ParsePropertyID("Colour"); err == nil {
		t.Error("unknown property should fail")
	}
}
