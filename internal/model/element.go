package model

// Element is one record of a serialized element tree. Fixture files are
// lists of these records.
type Element struct {
	ID          int            `yaml:"i" json:"i"`                          // Unique integer ID; 0 means assign on load
	Role        string         `yaml:"r" json:"r"`                          // Role code or control type name
	Title       string         `yaml:"t,omitempty" json:"t,omitempty"`      // Accessible name
	Value       string         `yaml:"v,omitempty" json:"v,omitempty"`      // Current value
	Description string         `yaml:"d,omitempty" json:"d,omitempty"`      // Help text
	Bounds      [4]int         `yaml:"b,flow" json:"b"`                     // [x, y, width, height]; all zero means none
	Focused     bool           `yaml:"f,omitempty" json:"f,omitempty"`      // Has keyboard focus
	Enabled     *bool          `yaml:"e,omitempty" json:"e,omitempty"`      // nil or true = enabled (omit); false = disabled (include)
	Selected    bool           `yaml:"s,omitempty" json:"s,omitempty"`      // Is selected
	Children    []Element      `yaml:"c,omitempty" json:"c,omitempty"`      // Child elements
	Actions     []string       `yaml:"a,flow,omitempty" json:"a,omitempty"` // Available actions
	Props       map[string]any `yaml:"p,omitempty" json:"p,omitempty"`      // Extra properties by catalog name
	Ref         int            `yaml:"ref,omitempty" json:"ref,omitempty"`  // Stand-in for the element with this ID
	Fault       string         `yaml:"x,omitempty" json:"x,omitempty"`      // Every read of this element fails
}

// ActionFocus marks an element as keyboard focusable.
const ActionFocus = "focus"
