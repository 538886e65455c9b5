package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/a11y-check/internal/a11y"
)

var (
	// ErrInjectedFault is wrapped by every read of an element carrying a fault.
	ErrInjectedFault = errors.New("injected fault")
	// ErrInvalidTree is returned for malformed fixture trees.
	ErrInvalidTree = errors.New("invalid element tree")
)

// Format names a fixture encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the encoding from a file extension; yaml is the default.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Node is an element of a loaded tree. It implements a11y.Element.
type Node struct {
	id       int
	role     string
	ctype    a11y.ControlType
	props    map[a11y.PropertyID]any
	parent   *Node
	children []*Node
	fault    error
}

func (n *Node) ID() int { return n.id }

// Role returns the role as written in the fixture.
func (n *Node) Role() string { return n.role }

// Name returns the accessible name.
func (n *Node) Name() string {
	s, _ := n.props[a11y.PropertyName].(string)
	return s
}

func (n *Node) RuntimeID() string { return strconv.Itoa(n.id) }

func (n *Node) Property(id a11y.PropertyID) (any, bool, error) {
	if n.fault != nil {
		return nil, false, n.fault
	}
	v, ok := n.props[id]
	return v, ok, nil
}

func (n *Node) ControlType() (a11y.ControlType, error) {
	if n.fault != nil {
		return 0, n.fault
	}
	return n.ctype, nil
}

func (n *Node) Children() ([]a11y.Element, error) {
	if n.fault != nil {
		return nil, n.fault
	}
	out := make([]a11y.Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out, nil
}

func (n *Node) Parent() (a11y.Element, error) {
	if n.fault != nil {
		return nil, n.fault
	}
	if n.parent == nil {
		return nil, nil
	}
	return n.parent, nil
}

// Tree is a loaded fixture: the records as written plus the linked nodes.
type Tree struct {
	Records []Element
	Roots   []*Node
	byID    map[int]*Node
}

// Elements returns the roots as port elements.
func (t *Tree) Elements() []a11y.Element {
	out := make([]a11y.Element, len(t.Roots))
	for i, r := range t.Roots {
		out[i] = r
	}
	return out
}

// FindByID returns the node with the given ID.
func (t *Tree) FindByID(id int) (*Node, bool) {
	n, ok := t.byID[id]
	return n, ok
}

// Len returns the number of distinct nodes.
func (t *Tree) Len() int { return len(t.byID) }

// LoadTree reads a fixture file.
func LoadTree(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	tree, err := ParseTree(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// ParseTree decodes a fixture. The document is either a list of root
// records or a single root record.
func ParseTree(data []byte, format Format) (*Tree, error) {
	records, err := decodeRecords(data, format)
	if err != nil {
		return nil, err
	}
	return BuildTree(records)
}

func decodeRecords(data []byte, format Format) ([]Element, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidTree)
	}
	single := trimmed[0] == '{'
	var records []Element
	switch format {
	case FormatJSON:
		if single {
			var el Element
			if err := json.Unmarshal(trimmed, &el); err != nil {
				return nil, fmt.Errorf("parse json: %w", err)
			}
			return []Element{el}, nil
		}
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(trimmed, &records); err != nil {
			var el Element
			if err2 := yaml.Unmarshal(trimmed, &el); err2 != nil {
				return nil, fmt.Errorf("parse yaml: %w", err)
			}
			return []Element{el}, nil
		}
	default:
		return nil, fmt.Errorf("unknown fixture format: %q", format)
	}
	return records, nil
}

// BuildTree links records into nodes. Records without an ID are numbered
// after the highest explicit ID in pre-order. A record with Ref becomes a
// second link to the referenced node, which may create a cycle.
func BuildTree(records []Element) (*Tree, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no elements", ErrInvalidTree)
	}
	records = slices.Clone(records)
	b := &builder{byID: make(map[int]*Node)}
	if err := b.assignIDs(records); err != nil {
		return nil, err
	}
	tree := &Tree{Records: records, byID: b.byID}
	for i := range records {
		if records[i].Ref != 0 {
			return nil, fmt.Errorf("%w: top-level element cannot be a ref", ErrInvalidTree)
		}
		n, err := b.build(&records[i], nil)
		if err != nil {
			return nil, err
		}
		tree.Roots = append(tree.Roots, n)
	}
	for _, l := range b.links {
		target, ok := b.byID[l.target]
		if !ok {
			return nil, fmt.Errorf("%w: ref to unknown element %d", ErrInvalidTree, l.target)
		}
		l.parent.children[l.index] = target
	}
	return tree, nil
}

type link struct {
	parent *Node
	index  int
	target int
}

type builder struct {
	byID  map[int]*Node
	links []link
	next  int
}

func (b *builder) assignIDs(records []Element) error {
	seen := make(map[int]bool)
	var scan func([]Element) error
	scan = func(els []Element) error {
		for i := range els {
			el := &els[i]
			if el.Ref == 0 && el.ID != 0 {
				if seen[el.ID] {
					return fmt.Errorf("%w: duplicate element id %d", ErrInvalidTree, el.ID)
				}
				seen[el.ID] = true
				b.next = max(b.next, el.ID)
			}
			if err := scan(el.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := scan(records); err != nil {
		return err
	}
	var number func([]Element)
	number = func(els []Element) {
		for i := range els {
			if els[i].Ref == 0 && els[i].ID == 0 {
				b.next++
				els[i].ID = b.next
			}
			// Children are shared with the caller's slice; copy before numbering.
			if len(els[i].Children) > 0 {
				els[i].Children = slices.Clone(els[i].Children)
				number(els[i].Children)
			}
		}
	}
	number(records)
	return nil
}

func (b *builder) build(el *Element, parent *Node) (*Node, error) {
	ct, ok := MapRole(el.Role)
	if !ok && el.Role != "" {
		return nil, fmt.Errorf("%w: element %d: unknown role %q", ErrInvalidTree, el.ID, el.Role)
	}
	props, err := properties(el)
	if err != nil {
		return nil, fmt.Errorf("%w: element %d: %w", ErrInvalidTree, el.ID, err)
	}
	n := &Node{id: el.ID, role: el.Role, ctype: ct, props: props, parent: parent}
	if el.Fault != "" {
		n.fault = fmt.Errorf("%w: element %d: %s", ErrInjectedFault, el.ID, el.Fault)
	}
	b.byID[el.ID] = n
	n.children = make([]*Node, len(el.Children))
	for i := range el.Children {
		child := &el.Children[i]
		if child.Ref != 0 {
			if len(child.Children) > 0 {
				return nil, fmt.Errorf("%w: ref to %d cannot have children", ErrInvalidTree, child.Ref)
			}
			b.links = append(b.links, link{parent: n, index: i, target: child.Ref})
			continue
		}
		c, err := b.build(child, n)
		if err != nil {
			return nil, err
		}
		n.children[i] = c
	}
	return n, nil
}

// properties derives the port properties of a record. Entries in Props
// override the derived values.
func properties(el *Element) (map[a11y.PropertyID]any, error) {
	props := map[a11y.PropertyID]any{
		a11y.PropertyName:                el.Title,
		a11y.PropertyHasKeyboardFocus:    el.Focused,
		a11y.PropertyIsEnabled:           el.Enabled == nil || *el.Enabled,
		a11y.PropertyIsKeyboardFocusable: el.Focused || slices.Contains(el.Actions, ActionFocus),
	}
	if el.Value != "" {
		props[a11y.PropertyValueValue] = el.Value
	}
	if el.Description != "" {
		props[a11y.PropertyHelpText] = el.Description
	}
	if el.Bounds != [4]int{} {
		props[a11y.PropertyBoundingRectangle] = el.Bounds
	}
	if el.Selected {
		props[a11y.PropertySelectionItemIsSelected] = true
	}
	for name, v := range el.Props {
		id, err := a11y.ParsePropertyID(name)
		if err != nil {
			return nil, err
		}
		props[id] = v
	}
	return props, nil
}
