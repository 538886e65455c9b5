package cmd

import (
	"strings"
	"testing"

	"github.com/mj1618/a11y-check/internal/a11y"
	"github.com/mj1618/a11y-check/internal/model"
)

// buildGmailTree creates a simplified accessibility tree mimicking the Gmail
// compose-over-inbox scenario described in the bug report.
//
//	root (id=1)
//	├── inbox (id=2, group)
//	│   ├── row1 (id=3, chk, title="unread, me, Test Subject, 20:59")
//	│   └── row2 (id=4, chk, title="unread, me, test subject, 20:48")
//	└── composeDialog (id=5, group)
//	    ├── to (id=6, input, desc="To")
//	    ├── subject (id=7, input, desc="Subject")  ← focused
//	    └── body (id=8, txt, desc="Body")
func buildGmailTree() []model.Element {
	return []model.Element{
		{
			ID: 1, Role: "group", Title: "Gmail",
			Children: []model.Element{
				{
					ID: 2, Role: "group", Title: "Inbox",
					Children: []model.Element{
						{ID: 3, Role: "chk", Title: "unread, me, Test Subject, 20:59"},
						{ID: 4, Role: "chk", Title: "unread, me, test subject, 20:48"},
					},
				},
				{
					ID: 5, Role: "group", Title: "Compose",
					Children: []model.Element{
						{ID: 6, Role: "input", Description: "To"},
						{ID: 7, Role: "input", Description: "Subject", Focused: true},
						{ID: 8, Role: "txt", Description: "Body"},
					},
				},
			},
		},
	}
}

func TestCollectLeafMatches_Substring(t *testing.T) {
	tree := buildGmailTree()
	matches := collectLeafMatches(tree, "subject", nil, false)
	// Substring matches: row1 (id=3), row2 (id=4), subject input (id=7)
	if len(matches) < 3 {
		t.Fatalf("expected at least 3 substring matches, got %d", len(matches))
	}
}

func TestCollectLeafMatches_Exact(t *testing.T) {
	tree := buildGmailTree()
	matches := collectLeafMatches(tree, "subject", nil, true)
	// Exact match: only id=7 (desc="Subject")
	if len(matches) != 1 {
		t.Fatalf("expected 1 exact match, got %d", len(matches))
	}
	if matches[0].ID != 7 {
		t.Fatalf("expected match id=7, got id=%d", matches[0].ID)
	}
}

func TestCollectLeafMatches_ExactWithRole(t *testing.T) {
	tree := buildGmailTree()
	roles := roleFilter("input")
	matches := collectLeafMatches(tree, "subject", roles, true)
	if len(matches) != 1 {
		t.Fatalf("expected 1 exact+role match, got %d", len(matches))
	}
	if matches[0].ID != 7 {
		t.Fatalf("expected match id=7, got id=%d", matches[0].ID)
	}
}

func TestNarrowByFocusProximity(t *testing.T) {
	tree := buildGmailTree()

	// Get all substring matches for "subject"
	matches := collectLeafMatches(tree, "subject", nil, false)
	if len(matches) < 2 {
		t.Fatalf("need multiple matches for focus test, got %d", len(matches))
	}

	narrowed := narrowByFocusProximity(tree, matches)

	// Focus is on id=7 in the compose dialog (id=5).
	// id=7 shares the deepest common ancestor (id=5→compose) with the focus.
	// id=3,4 are in the inbox (id=2), which has a shallower common ancestor (id=1).
	if len(narrowed) != 1 {
		t.Fatalf("expected focus proximity to narrow to 1, got %d", len(narrowed))
	}
	if narrowed[0].ID != 7 {
		t.Fatalf("expected narrowed match id=7, got id=%d", narrowed[0].ID)
	}
}

func TestNarrowByFocusProximity_NoFocus(t *testing.T) {
	// Tree with no focused element: should return all matches unchanged.
	tree := []model.Element{
		{ID: 1, Role: "group", Children: []model.Element{
			{ID: 2, Role: "txt", Title: "Hello"},
			{ID: 3, Role: "txt", Title: "Hello world"},
		}},
	}
	matches := collectLeafMatches(tree, "hello", nil, false)
	narrowed := narrowByFocusProximity(tree, matches)
	if len(narrowed) != len(matches) {
		t.Fatalf("expected %d matches (unchanged), got %d", len(matches), len(narrowed))
	}
}

func TestFindPathToID(t *testing.T) {
	tree := buildGmailTree()

	path := findPathToID(tree, 7)
	// root(1) → compose(5) → subject(7)
	// Note: root(1) contains inbox(2) and compose(5) as children
	expected := []int{1, 5, 7}
	if len(path) != len(expected) {
		t.Fatalf("expected path %v, got %v", expected, path)
	}
	for i, id := range expected {
		if path[i] != id {
			t.Fatalf("expected path[%d]=%d, got %d", i, id, path[i])
		}
	}
}

func TestFindPathToID_NotFound(t *testing.T) {
	tree := buildGmailTree()
	path := findPathToID(tree, 999)
	if path != nil {
		t.Fatalf("expected nil for missing ID, got %v", path)
	}
}

func TestCommonPrefixLen(t *testing.T) {
	tests := []struct {
		a, b     []int
		expected int
	}{
		{[]int{1, 5, 7}, []int{1, 5, 7}, 3},
		{[]int{1, 5, 7}, []int{1, 2, 3}, 1},
		{[]int{1, 5, 7}, []int{1, 5, 8}, 2},
		{[]int{1, 2}, []int{3, 4}, 0},
		{nil, []int{1}, 0},
		{[]int{1}, nil, 0},
	}
	for _, tt := range tests {
		got := commonPrefixLen(tt.a, tt.b)
		if got != tt.expected {
			t.Errorf("commonPrefixLen(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestScopeID(t *testing.T) {
	tree := buildGmailTree()

	// Scope to compose dialog (id=5): should only find id=7
	scopeEl := findElementByID(tree, 5)
	if scopeEl == nil {
		t.Fatal("scope element not found")
	}
	matches := collectLeafMatches(scopeEl.Children, "subject", nil, false)
	if len(matches) != 1 {
		t.Fatalf("expected 1 scoped match, got %d", len(matches))
	}
	if matches[0].ID != 7 {
		t.Fatalf("expected scoped match id=7, got id=%d", matches[0].ID)
	}
}

func TestTextMatchesElement_Exact(t *testing.T) {
	el := model.Element{Title: "Subject", Description: "test"}

	// Exact match on title
	if !textMatchesElement(el, "subject", true) {
		t.Error("expected exact match on title 'Subject'")
	}
	// Exact should NOT match substring
	if textMatchesElement(el, "subj", true) {
		t.Error("exact match should not match substring")
	}
	// Substring should match
	if !textMatchesElement(el, "subj", false) {
		t.Error("substring match should match 'subj' in 'Subject'")
	}
}

func TestTextMatchesElement_ExactStripsShortcutSuffix(t *testing.T) {
	// Plain parenthetical suffix
	el := model.Element{Description: "Save (Ctrl+S)"}
	if !textMatchesElement(el, "save", true) {
		t.Error("exact match should match after stripping parenthetical suffix")
	}

	// Unicode directional markers around shortcut (as seen in Chrome/Gmail)
	el2 := model.Element{Description: "Send \u202a(\u2318Enter)\u202c"}
	if !textMatchesElement(el2, "send", true) {
		t.Error("exact match should match after stripping Unicode-wrapped shortcut suffix")
	}

	// Should still reject unrelated text
	if textMatchesElement(el, "sav", true) {
		t.Error("exact match should not match substring even after stripping suffix")
	}
}

// buildCalculatorTree creates a simplified accessibility tree mimicking
// Calculator where each digit appears as both a txt (display) and btn.
//
//	root (id=1)
//	├── display (id=2, txt, value="347")
//	│   ├── digitTxt3 (id=3, txt, value="3")
//	│   ├── digitTxt4 (id=4, txt, value="4")
//	│   └── digitTxt7 (id=5, txt, value="7")
//	└── keypad (id=6, group)
//	    ├── btn3 (id=7, btn, desc="3")
//	    ├── btn4 (id=8, btn, desc="4")
//	    └── btn7 (id=9, btn, desc="7")
func buildCalculatorTree() []model.Element {
	return []model.Element{
		{
			ID: 1, Role: "group", Title: "Calculator",
			Children: []model.Element{
				{
					ID: 2, Role: "txt", Value: "347",
					Children: []model.Element{
						{ID: 3, Role: "txt", Value: "3"},
						{ID: 4, Role: "txt", Value: "4"},
						{ID: 5, Role: "txt", Value: "7"},
					},
				},
				{
					ID: 6, Role: "group", Title: "Keypad",
					Children: []model.Element{
						{ID: 7, Role: "btn", Description: "3"},
						{ID: 8, Role: "btn", Description: "4"},
						{ID: 9, Role: "btn", Description: "7"},
					},
				},
			},
		},
	}
}

func TestPreferInteractiveElements_MixedRoles(t *testing.T) {
	tree := buildCalculatorTree()
	// "3" matches txt (id=3) and btn (id=7)
	matches := collectLeafMatches(tree, "3", nil, false)
	if len(matches) < 2 {
		t.Fatalf("expected at least 2 matches, got %d", len(matches))
	}

	narrowed := preferInteractiveElements(matches)
	if len(narrowed) != 1 {
		t.Fatalf("expected 1 interactive match, got %d", len(narrowed))
	}
	if narrowed[0].ID != 7 {
		t.Fatalf("expected btn id=7, got id=%d role=%s", narrowed[0].ID, narrowed[0].Role)
	}
}

func TestPreferInteractiveElements_AllSameCategory(t *testing.T) {
	// Two buttons with the same text: should NOT filter, still ambiguous
	matches := []*model.Element{
		{ID: 1, Role: "btn", Title: "Submit"},
		{ID: 2, Role: "btn", Title: "Submit"},
	}
	narrowed := preferInteractiveElements(matches)
	if len(narrowed) != 2 {
		t.Fatalf("expected 2 matches unchanged (all interactive), got %d", len(narrowed))
	}
}

func TestPreferInteractiveElements_AllStatic(t *testing.T) {
	// All static text: should NOT filter
	matches := []*model.Element{
		{ID: 1, Role: "txt", Title: "Hello"},
		{ID: 2, Role: "txt", Title: "Hello world"},
	}
	narrowed := preferInteractiveElements(matches)
	if len(narrowed) != 2 {
		t.Fatalf("expected 2 matches unchanged (all static), got %d", len(narrowed))
	}
}

func TestPreferInteractiveElements_MultipleInteractive(t *testing.T) {
	// Mix of static and multiple interactive: should keep all interactive
	matches := []*model.Element{
		{ID: 1, Role: "txt", Title: "Save"},
		{ID: 2, Role: "btn", Title: "Save"},
		{ID: 3, Role: "lnk", Title: "Save"},
	}
	narrowed := preferInteractiveElements(matches)
	if len(narrowed) != 2 {
		t.Fatalf("expected 2 interactive matches, got %d", len(narrowed))
	}
	for _, m := range narrowed {
		if m.Role == "txt" {
			t.Fatalf("static element should have been filtered out, got role=%s", m.Role)
		}
	}
}

func TestRoleFilter(t *testing.T) {
	set := roleFilter("btn, interactive")
	for _, ct := range []a11y.ControlType{a11y.ControlTypeButton, a11y.ControlTypeEdit, a11y.ControlTypeHyperlink} {
		if !set[ct] {
			t.Errorf("expected %s in role filter", ct)
		}
	}
	if set[a11y.ControlTypeText] {
		t.Error("txt should not be in role filter")
	}
	if len(roleFilter("")) != 0 {
		t.Error("empty roles should give an empty filter")
	}
}

func TestFindRolePathToID(t *testing.T) {
	tree := buildGmailTree()
	if got := findRolePathToID(tree, 7); got != "group > group > input" {
		t.Errorf("unexpected path %q", got)
	}
	if got := findRolePathToID(tree, 999); got != "" {
		t.Errorf("expected empty path for missing ID, got %q", got)
	}
}

func TestResolveElementByText(t *testing.T) {
	tree := buildGmailTree()

	el, err := resolveElementByText(tree, "subject", "", false, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if el.ID != 7 {
		t.Errorf("expected focus proximity to pick id=7, got id=%d", el.ID)
	}

	el, err = resolveElementByText(tree, "to", "input", true, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if el.ID != 6 {
		t.Errorf("expected id=6, got id=%d", el.ID)
	}

	if _, err := resolveElementByText(tree, "nothing here", "", false, 0); err == nil {
		t.Error("expected error for no match")
	}
	if _, err := resolveElementByText(tree, "subject", "", false, 42); err == nil {
		t.Error("expected error for missing scope element")
	}
}

func TestResolveElementByText_Ambiguous(t *testing.T) {
	tree := []model.Element{
		{ID: 1, Role: "group", Children: []model.Element{
			{ID: 2, Role: "btn", Title: "Save"},
			{ID: 3, Role: "btn", Title: "Save all"},
		}},
	}
	_, err := resolveElementByText(tree, "save", "", false, 0)
	if err == nil {
		t.Fatal("expected ambiguity error")
	}
	msg := err.Error()
	for _, want := range []string{"multiple elements match", "id=2", "id=3", `path="group > btn"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in error:\n%s", want, msg)
		}
	}
}
