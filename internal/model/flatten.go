package model

// FlatElement is an element with a path breadcrumb instead of children.
type FlatElement struct {
	ID          int            `yaml:"i" json:"i"`
	Role        string         `yaml:"r" json:"r"`
	Title       string         `yaml:"t,omitempty" json:"t,omitempty"`
	Value       string         `yaml:"v,omitempty" json:"v,omitempty"`
	Description string         `yaml:"d,omitempty" json:"d,omitempty"`
	Bounds      [4]int         `yaml:"b,flow" json:"b"`
	Focused     bool           `yaml:"f,omitempty" json:"f,omitempty"`
	Enabled     *bool          `yaml:"e,omitempty" json:"e,omitempty"`
	Selected    bool           `yaml:"s,omitempty" json:"s,omitempty"`
	Actions     []string       `yaml:"a,flow,omitempty" json:"a,omitempty"`
	Props       map[string]any `yaml:"p,omitempty" json:"p,omitempty"`
	Ref         int            `yaml:"ref,omitempty" json:"ref,omitempty"`
	Fault       string         `yaml:"x,omitempty" json:"x,omitempty"`
	Path        string         `yaml:"path,omitempty" json:"path,omitempty"`
	Depth       int            `yaml:"depth" json:"depth"`
}

// PathSeparator joins role codes in path breadcrumbs.
const PathSeparator = " > "

// FlattenElements converts a tree of records into a flat list in pre-order.
// Each element gets a path string showing its location in the tree using
// role codes joined with PathSeparator. A ref record keeps its own entry
// and is not expanded.
func FlattenElements(elements []Element) []FlatElement {
	var result []FlatElement
	for _, el := range elements {
		flattenRecursive(el, "", 0, &result)
	}
	return result
}

func flattenRecursive(el Element, parentPath string, depth int, result *[]FlatElement) {
	role := el.Role
	if ct, ok := MapRole(el.Role); ok {
		role = RoleCode(ct)
	}
	currentPath := role
	if parentPath != "" {
		currentPath = parentPath + PathSeparator + role
	}

	*result = append(*result, FlatElement{
		ID:          el.ID,
		Role:        el.Role,
		Title:       el.Title,
		Value:       el.Value,
		Description: el.Description,
		Bounds:      el.Bounds,
		Focused:     el.Focused,
		Enabled:     el.Enabled,
		Selected:    el.Selected,
		Actions:     el.Actions,
		Props:       el.Props,
		Ref:         el.Ref,
		Fault:       el.Fault,
		Path:        currentPath,
		Depth:       depth,
	})

	for _, child := range el.Children {
		flattenRecursive(child, currentPath, depth+1, result)
	}
}

// FindByID returns the record with the given ID, searching depth-first.
// Ref records are not matched.
func FindByID(elements []Element, id int) (*Element, bool) {
	for i := range elements {
		if elements[i].ID == id && elements[i].Ref == 0 {
			return &elements[i], true
		}
		if el, ok := FindByID(elements[i].Children, id); ok {
			return el, true
		}
	}
	return nil, false
}
