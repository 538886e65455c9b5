package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mj1618/a11y-check/internal/a11y"
)

const formFixture = `
- i: 1
  r: window
  t: Editor
  c:
    - r: toolbar
      c:
        - {r: btn, t: Save, a: [press, focus], b: [0, 0, 40, 20]}
    - r: doc
      p: {IsContentElement: true}
      c:
        - r: input
          t: Body
          f: true
`

func TestParseTree_YAML(t *testing.T) {
	tree, err := ParseTree([]byte(formFixture), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Roots) != 1 || tree.Len() != 5 {
		t.Fatalf("roots=%d len=%d, want 1 and 5", len(tree.Roots), tree.Len())
	}

	// IDs are assigned in pre-order after the highest explicit one.
	save, ok := tree.FindByID(3)
	if !ok {
		t.Fatal("element 3 not found")
	}
	if save.Name() != "Save" || save.Role() != "btn" {
		t.Errorf("element 3 = %q/%q, want Save/btn", save.Name(), save.Role())
	}
	ct, err := save.ControlType()
	if err != nil || ct != a11y.ControlTypeButton {
		t.Errorf("ControlType = %v, %v", ct, err)
	}
	if v, ok, _ := save.Property(a11y.PropertyIsKeyboardFocusable); !ok || v != true {
		t.Errorf("IsKeyboardFocusable = %v, %v", v, ok)
	}
	if v, ok, _ := save.Property(a11y.PropertyBoundingRectangle); !ok || v != [4]int{0, 0, 40, 20} {
		t.Errorf("BoundingRectangle = %v, %v", v, ok)
	}

	doc, _ := tree.FindByID(4)
	if v, ok, _ := doc.Property(a11y.PropertyIsContentElement); !ok || v != true {
		t.Errorf("IsContentElement = %v, %v", v, ok)
	}
	if _, ok, _ := doc.Property(a11y.PropertyBoundingRectangle); ok {
		t.Error("zero bounds should be absent")
	}

	body, _ := tree.FindByID(5)
	parent, err := body.Parent()
	if err != nil || parent != a11y.Element(doc) {
		t.Errorf("Parent = %v, %v", parent, err)
	}
	if v, _, _ := body.Property(a11y.PropertyHasKeyboardFocus); v != true {
		t.Errorf("HasKeyboardFocus = %v", v)
	}

	root, err := tree.Roots[0].Parent()
	if err != nil || root != nil {
		t.Errorf("root Parent = %v, %v; want nil interface", root, err)
	}
}

func TestParseTree_JSON(t *testing.T) {
	src := `{"i": 7, "r": "Document", "t": "doc", "p": {"HeadingLevel": 80052}, "c": [{"r": "Edit"}]}`
	tree, err := ParseTree([]byte(src), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	doc, ok := tree.FindByID(7)
	if !ok {
		t.Fatal("element 7 not found")
	}
	if v, _, _ := doc.Property(a11y.PropertyHeadingLevel); v != float64(80052) {
		t.Errorf("HeadingLevel = %v (%T)", v, v)
	}
	children, _ := doc.Children()
	if len(children) != 1 {
		t.Fatalf("children = %d, want 1", len(children))
	}
	if ct, _ := children[0].ControlType(); ct != a11y.ControlTypeEdit {
		t.Errorf("child control type = %v", ct)
	}
}

func TestParseTree_RefCycle(t *testing.T) {
	src := `
- i: 1
  r: group
  c:
    - i: 2
      r: pane
      c:
        - ref: 1
`
	tree, err := ParseTree([]byte(src), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	pane, _ := tree.FindByID(2)
	children, err := pane.Children()
	if err != nil || len(children) != 1 {
		t.Fatalf("children = %v, %v", children, err)
	}
	if children[0] != a11y.Element(tree.Roots[0]) {
		t.Error("ref should link back to the root node")
	}
	if tree.Len() != 2 {
		t.Errorf("Len = %d, want 2", tree.Len())
	}
}

func TestParseTree_Fault(t *testing.T) {
	src := `[{"i": 1, "r": "btn", "x": "device lost"}]`
	tree, err := ParseTree([]byte(src), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	n := tree.Roots[0]
	if _, _, err := n.Property(a11y.PropertyName); !errors.Is(err, ErrInjectedFault) {
		t.Errorf("Property err = %v, want injected fault", err)
	}
	if _, err := n.Children(); !errors.Is(err, ErrInjectedFault) {
		t.Errorf("Children err = %v, want injected fault", err)
	}
}

func TestParseTree_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"empty list", "[]"},
		{"duplicate id", "[{i: 1, r: btn}, {i: 1, r: txt}]"},
		{"unknown role", "[{r: AXButton}]"},
		{"unknown property", "[{r: btn, p: {Colour: red}}]"},
		{"dangling ref", "[{r: group, c: [{ref: 9}]}]"},
		{"top-level ref", "[{ref: 1}]"},
		{"ref with children", "[{i: 1, r: group, c: [{ref: 1, c: [{r: btn}]}]}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTree([]byte(tt.src), FormatYAML)
			if !errors.Is(err, ErrInvalidTree) {
				t.Errorf("err = %v, want ErrInvalidTree", err)
			}
		})
	}
}

func TestBuildTree_DoesNotMutateInput(t *testing.T) {
	records := []Element{{Role: "group", Children: []Element{{Role: "btn"}}}}
	if _, err := BuildTree(records); err != nil {
		t.Fatal(err)
	}
	if records[0].ID != 0 || records[0].Children[0].ID != 0 {
		t.Errorf("input records were renumbered: %+v", records)
	}
}

func TestLoadTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.yaml")
	if err := os.WriteFile(path, []byte(formFixture), 0644); err != nil {
		t.Fatal(err)
	}
	tree, err := LoadTree(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Elements()) != 1 {
		t.Errorf("Elements = %d, want 1", len(tree.Elements()))
	}

	if _, err := LoadTree(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if FormatForPath("a/b.JSON") != FormatJSON || FormatForPath("a/b.yml") != FormatYAML {
		t.Error("FormatForPath picked the wrong format")
	}
}
