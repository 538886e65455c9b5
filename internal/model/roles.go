package model

import "github.com/mj1618/a11y-check/internal/a11y"

type roleCode struct {
	code  string
	ctype a11y.ControlType
}

// roleCodes lists the compact role codes. The first code for a control type
// is the one used when rendering.
var roleCodes = []roleCode{
	{"btn", a11y.ControlTypeButton},
	{"txt", a11y.ControlTypeText},
	{"lnk", a11y.ControlTypeHyperlink},
	{"img", a11y.ControlTypeImage},
	{"input", a11y.ControlTypeEdit},
	{"chk", a11y.ControlTypeCheckBox},
	{"toggle", a11y.ControlTypeButton},
	{"radio", a11y.ControlTypeRadioButton},
	{"combo", a11y.ControlTypeComboBox},
	{"slider", a11y.ControlTypeSlider},
	{"menu", a11y.ControlTypeMenu},
	{"menubar", a11y.ControlTypeMenuBar},
	{"menuitem", a11y.ControlTypeMenuItem},
	{"tab", a11y.ControlTypeTab},
	{"tabitem", a11y.ControlTypeTabItem},
	{"list", a11y.ControlTypeList},
	{"item", a11y.ControlTypeListItem},
	{"grid", a11y.ControlTypeDataGrid},
	{"row", a11y.ControlTypeDataItem},
	{"cell", a11y.ControlTypeDataItem},
	{"tree", a11y.ControlTypeTree},
	{"treeitem", a11y.ControlTypeTreeItem},
	{"group", a11y.ControlTypeGroup},
	{"scroll", a11y.ControlTypePane},
	{"pane", a11y.ControlTypePane},
	{"toolbar", a11y.ControlTypeToolBar},
	{"status", a11y.ControlTypeStatusBar},
	{"doc", a11y.ControlTypeDocument},
	{"web", a11y.ControlTypeDocument},
	{"window", a11y.ControlTypeWindow},
	{"other", a11y.ControlTypeCustom},
}

// RoleMap maps compact role codes to control types.
var RoleMap = func() map[string]a11y.ControlType {
	m := make(map[string]a11y.ControlType, len(roleCodes))
	for _, rc := range roleCodes {
		m[rc.code] = rc.ctype
	}
	return m
}()

var codeByType = func() map[a11y.ControlType]string {
	m := make(map[a11y.ControlType]string, len(roleCodes))
	for _, rc := range roleCodes {
		if _, ok := m[rc.ctype]; !ok {
			m[rc.ctype] = rc.code
		}
	}
	return m
}()

// MetaRoles maps meta-role names to the concrete roles they expand to.
// "interactive" matches roles that are likely to accept user input.
var MetaRoles = map[string][]string{
	"interactive": {"btn", "input", "chk", "radio", "combo", "slider", "lnk"},
	"container":   {"list", "grid", "tree", "group", "pane", "toolbar"},
}

// ExpandRoles expands any meta-roles in the given list to their concrete roles.
// Non-meta roles are passed through unchanged. Duplicates are removed.
func ExpandRoles(roles []string) []string {
	seen := make(map[string]bool, len(roles))
	var expanded []string
	for _, r := range roles {
		if concrete, ok := MetaRoles[r]; ok {
			for _, c := range concrete {
				if !seen[c] {
					seen[c] = true
					expanded = append(expanded, c)
				}
			}
		} else if !seen[r] {
			seen[r] = true
			expanded = append(expanded, r)
		}
	}
	return expanded
}

// MapRole resolves a role code or a control type name. ok is false for
// unknown roles, which map to Custom.
func MapRole(role string) (ct a11y.ControlType, ok bool) {
	if ct, ok := RoleMap[role]; ok {
		return ct, true
	}
	if ct, err := a11y.ParseControlType(role); err == nil {
		return ct, true
	}
	return a11y.ControlTypeCustom, false
}

// RoleCode returns the compact code for ct, or its name when it has none.
func RoleCode(ct a11y.ControlType) string {
	if code, ok := codeByType[ct]; ok {
		return code
	}
	return ct.String()
}
