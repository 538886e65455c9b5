package model

import (
	"strings"

	"github.com/mj1618/a11y-check/internal/a11y"
)

// FilterElements keeps records whose control type is one of roles and whose
// bounds intersect bbox. Roles may be role codes, meta-roles or control type
// names. A record that does not match is replaced by its matching
// descendants. Ref records never match.
func FilterElements(elements []Element, roles []string, bbox *[4]int) []Element {
	if len(roles) == 0 && bbox == nil {
		return elements
	}
	types := make(map[a11y.ControlType]bool, len(roles))
	for _, r := range ExpandRoles(roles) {
		if ct, ok := MapRole(r); ok {
			types[ct] = true
		}
	}
	return filterRecords(elements, func(el Element) bool {
		if el.Ref != 0 {
			return false
		}
		ct, _ := MapRole(el.Role)
		roleMatch := len(roles) == 0 || types[ct]
		bboxMatch := bbox == nil || boundsIntersect(el.Bounds, *bbox)
		return roleMatch && bboxMatch
	})
}

// FilterByText keeps records whose title, value or description contains
// text (case-insensitive), together with their ancestors.
func FilterByText(elements []Element, text string) []Element {
	if text == "" {
		return elements
	}
	needle := strings.ToLower(text)
	var result []Element
	for _, el := range elements {
		childMatches := FilterByText(el.Children, text)
		if textMatches(el, needle) || len(childMatches) > 0 {
			kept := el
			kept.Children = childMatches
			result = append(result, kept)
		}
	}
	return result
}

func textMatches(el Element, needle string) bool {
	return strings.Contains(strings.ToLower(el.Title), needle) ||
		strings.Contains(strings.ToLower(el.Value), needle) ||
		strings.Contains(strings.ToLower(el.Description), needle)
}

// PruneEmptyGroups removes anonymous group, pane and custom records (no
// title, value, description or extra properties) and promotes their children.
func PruneEmptyGroups(elements []Element) []Element {
	var result []Element
	for _, el := range elements {
		pruned := PruneEmptyGroups(el.Children)
		if isEmptyGroup(el) {
			result = append(result, pruned...)
			continue
		}
		kept := el
		kept.Children = pruned
		result = append(result, kept)
	}
	return result
}

func isEmptyGroup(el Element) bool {
	if el.Ref != 0 || el.Fault != "" || len(el.Props) > 0 {
		return false
	}
	ct, _ := MapRole(el.Role)
	switch ct {
	case a11y.ControlTypeGroup, a11y.ControlTypePane, a11y.ControlTypeCustom:
		return el.Title == "" && el.Value == "" && el.Description == ""
	}
	return false
}

func filterRecords(elements []Element, keep func(Element) bool) []Element {
	var result []Element
	for _, el := range elements {
		children := filterRecords(el.Children, keep)
		if keep(el) {
			kept := el
			kept.Children = children
			result = append(result, kept)
		} else if len(children) > 0 {
			result = append(result, children...)
		}
	}
	return result
}

// boundsIntersect checks if two [x, y, width, height] rectangles overlap.
func boundsIntersect(a, b [4]int) bool {
	ax1, ay1, ax2, ay2 := a[0], a[1], a[0]+a[2], a[1]+a[3]
	bx1, by1, bx2, by2 := b[0], b[1], b[0]+b[2], b[1]+b[3]
	return ax1 < bx2 && ax2 > bx1 && ay1 < by2 && ay2 > by1
}
