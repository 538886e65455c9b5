package rules

// ID identifies a rule in the catalog.
type ID string

const (
	ContentViewEditStructure      ID = "ContentViewEditStructure"
	NameNotEmpty                  ID = "NameNotEmpty"
	NameExcludesControlType       ID = "NameExcludesControlType"
	ButtonNoInteractiveDescendant ID = "ButtonNoInteractiveDescendant"
	ListItemInContainer           ID = "ListItemInContainer"
	RadioButtonGrouped            ID = "RadioButtonGrouped"
	HeadingLevelValid             ID = "HeadingLevelValid"
	DisabledStateConsistent       ID = "DisabledStateConsistent"
	FocusableHasBounds            ID = "FocusableHasBounds"
)

var catalogIDs = []ID{
	ContentViewEditStructure,
	NameNotEmpty,
	NameExcludesControlType,
	ButtonNoInteractiveDescendant,
	ListItemInContainer,
	RadioButtonGrouped,
	HeadingLevelValid,
	DisabledStateConsistent,
	FocusableHasBounds,
}

// IDs returns the rule catalog in registration order.
func IDs() []ID {
	return append([]ID(nil), catalogIDs...)
}

// Known reports whether id belongs to the catalog.
func (id ID) Known() bool {
	for _, c := range catalogIDs {
		if c == id {
			return true
		}
	}
	return false
}

// Standard tags the compliance criterion a rule supports.
type Standard string

const (
	InfoAndRelationships Standard = "WCAG 1.3.1 Info and Relationships"
	HeadingsAndLabels    Standard = "WCAG 2.4.6 Headings and Labels"
	FocusVisible         Standard = "WCAG 2.4.7 Focus Visible"
	NameRoleValue        Standard = "WCAG 4.1.2 Name, Role, Value"
)
