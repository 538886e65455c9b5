package recorder

import (
	"fmt"
	"strings"
)

// TreeScope selects which elements relative to the listened element
// produce events. Values are bit flags.
type TreeScope int

const (
	TreeScopeElement     TreeScope = 0x1
	TreeScopeChildren    TreeScope = 0x2
	TreeScopeDescendants TreeScope = 0x4
	TreeScopeParent      TreeScope = 0x8
	TreeScopeAncestors   TreeScope = 0x10
	TreeScopeSubtree               = TreeScopeElement | TreeScopeChildren | TreeScopeDescendants
)

var scopeNames = []struct {
	scope TreeScope
	name  string
}{
	{TreeScopeSubtree, "subtree"},
	{TreeScopeElement, "element"},
	{TreeScopeChildren, "children"},
	{TreeScopeDescendants, "descendants"},
	{TreeScopeParent, "parent"},
	{TreeScopeAncestors, "ancestors"},
}

func (s TreeScope) String() string {
	for _, n := range scopeNames {
		if n.scope == s {
			return n.name
		}
	}
	return fmt.Sprintf("TreeScope(%d)", int(s))
}

// ParseTreeScope resolves a scope name.
func ParseTreeScope(name string) (TreeScope, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, s := range scopeNames {
		if s.name == n {
			return s.scope, nil
		}
	}
	return 0, fmt.Errorf("unknown tree scope: %q", name)
}

func (s TreeScope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TreeScope) UnmarshalText(text []byte) error {
	v, err := ParseTreeScope(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
