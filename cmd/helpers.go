package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-check/internal/a11y"
	"github.com/mj1618/a11y-check/internal/model"
	"github.com/mj1618/a11y-check/internal/platform"
	"github.com/mj1618/a11y-check/internal/rules"
	"github.com/mj1618/a11y-check/internal/scan"
)

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// addRuleFlags adds --rules to a command that evaluates rules.
func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().String("rules", "", "Comma-separated rule IDs to evaluate (default: config rules, else all)")
}

// selectRegistry returns the registry named by --rules, the config rules,
// or the full default catalog.
func selectRegistry(cmd *cobra.Command) (*rules.Registry, error) {
	ids := cfg.RuleIDs()
	if flag, _ := cmd.Flags().GetString("rules"); flag != "" {
		ids = nil
		for _, id := range splitList(flag) {
			ids = append(ids, rules.ID(id))
		}
	}
	if len(ids) == 0 {
		return rules.Default(), nil
	}
	return rules.Default().Select(ids...)
}

// addWalkFlags adds the tree walk flags shared by scan-like commands.
func addWalkFlags(cmd *cobra.Command) {
	cmd.Flags().String("window", "", "Only use roots whose name contains this text")
	cmd.Flags().Int("workers", 0, "Elements evaluated concurrently (default from config)")
	cmd.Flags().Int("max-depth", 0, "Deepest level walked below a root (default from config, else 64)")
	cmd.Flags().Int("max-elements", 0, "Stop after this many elements (0 = 100000)")
}

// newScanner builds a scanner from the walk flags and config.
func newScanner(cmd *cobra.Command, reg *rules.Registry, src platform.Source) *scan.Scanner {
	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = cfg.Workers
	}
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	if maxDepth <= 0 {
		maxDepth = cfg.MaxDepth
	}
	maxElements, _ := cmd.Flags().GetInt("max-elements")
	return &scan.Scanner{
		Registry:    reg,
		MaxDepth:    maxDepth,
		MaxElements: maxElements,
		Workers:     workers,
		Logger:      logger.Named("scan"),
		Source:      src.Describe(),
	}
}

// loadTrees reads every fixture in order and returns the trees with their
// records concatenated.
func loadTrees(ctx context.Context, paths []string) ([]*model.Tree, []model.Element, error) {
	for _, p := range paths {
		if p == platform.LiveTarget {
			return nil, nil, fmt.Errorf("this command reads fixture files only")
		}
	}
	trees, err := platform.NewFixtureSource(paths...).Trees(ctx)
	if err != nil {
		return nil, nil, err
	}
	var records []model.Element
	for _, t := range trees {
		records = append(records, t.Records...)
	}
	return trees, records, nil
}

// loadRecords reads the element records of every fixture in order.
func loadRecords(paths []string) ([]model.Element, error) {
	_, records, err := loadTrees(context.Background(), paths)
	return records, err
}

// findElementByID searches the element tree recursively for an element with the given ID.
func findElementByID(elements []model.Element, id int) *model.Element {
	el, _ := model.FindByID(elements, id)
	return el
}

// roleFilter resolves role codes, meta-roles and control type names to a
// control type set. An empty result means no filtering.
func roleFilter(roles string) map[a11y.ControlType]bool {
	set := make(map[a11y.ControlType]bool)
	for _, r := range model.ExpandRoles(splitList(roles)) {
		if ct, ok := model.MapRole(r); ok {
			set[ct] = true
		}
	}
	return set
}

func roleOf(el model.Element) a11y.ControlType {
	ct, _ := model.MapRole(el.Role)
	return ct
}

// collectLeafMatches collects elements that directly match the text (case-insensitive
// substring on title/value/description), optionally filtered by role.
// It recurses into children but only returns the deepest (most specific) matches.
// If exact is true, only exact (case-insensitive) matches on title/value/description are used.
func collectLeafMatches(elements []model.Element, textLower string, roles map[a11y.ControlType]bool, exact bool) []*model.Element {
	var results []*model.Element
	for i := range elements {
		el := &elements[i]
		if el.Ref != 0 {
			continue
		}

		// Check children first
		childMatches := collectLeafMatches(el.Children, textLower, roles, exact)

		selfMatch := textMatchesElement(*el, textLower, exact) && (len(roles) == 0 || roles[roleOf(*el)])

		if selfMatch && len(childMatches) == 0 {
			results = append(results, el)
		} else {
			results = append(results, childMatches...)
		}
	}
	return results
}

func textMatchesElement(el model.Element, textLower string, exact bool) bool {
	if exact {
		return exactFieldMatch(el.Title, textLower) ||
			exactFieldMatch(el.Value, textLower) ||
			exactFieldMatch(el.Description, textLower)
	}
	return strings.Contains(strings.ToLower(el.Title), textLower) ||
		strings.Contains(strings.ToLower(el.Value), textLower) ||
		strings.Contains(strings.ToLower(el.Description), textLower)
}

// exactFieldMatch returns true if field matches text case-insensitively,
// either directly or after stripping a trailing parenthetical suffix like " (Ctrl+S)".
func exactFieldMatch(field, textLower string) bool {
	if strings.EqualFold(field, textLower) {
		return true
	}
	if idx := strings.LastIndex(field, "("); idx > 0 && strings.HasSuffix(strings.TrimRight(field, "\u202c"), ")") {
		stripped := strings.TrimRight(field[:idx], " \u202a")
		return strings.EqualFold(stripped, textLower)
	}
	return false
}

// resolveElementByText finds a single record matching text (and optional
// role filter). Zero or several matches are an error; the error for several
// matches lists the candidates so the caller can refine.
//
// If scopeID > 0, only descendants of that element are searched.
// When multiple matches exist, elements closer to the focused element in the
// tree are preferred, then interactive elements over static ones.
func resolveElementByText(elements []model.Element, text, roles string, exact bool, scopeID int) (*model.Element, error) {
	searchScope := elements
	if scopeID > 0 {
		scopeEl := findElementByID(elements, scopeID)
		if scopeEl == nil {
			return nil, fmt.Errorf("scope element with id %d not found", scopeID)
		}
		searchScope = scopeEl.Children
	}

	matches := collectLeafMatches(searchScope, strings.ToLower(text), roleFilter(roles), exact)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no element found matching text %q", text)
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	matches = narrowByFocusProximity(elements, matches)
	if len(matches) == 1 {
		return matches[0], nil
	}

	if roles == "" {
		matches = preferInteractiveElements(matches)
		if len(matches) == 1 {
			return matches[0], nil
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "multiple elements match text %q", text)
	if roles != "" {
		fmt.Fprintf(&b, " with roles %q", roles)
	}
	fmt.Fprintf(&b, "; use --id, --exact, or --scope-id to narrow:\n")
	for _, m := range matches {
		fmt.Fprintf(&b, "  id=%d %s", m.ID, m.Role)
		if m.Title != "" {
			fmt.Fprintf(&b, " title=%q", m.Title)
		}
		if m.Description != "" {
			fmt.Fprintf(&b, " desc=%q", m.Description)
		}
		if path := findRolePathToID(elements, m.ID); path != "" {
			fmt.Fprintf(&b, " path=%q", path)
		}
		fmt.Fprintln(&b)
	}
	return nil, fmt.Errorf("%s", b.String())
}

// narrowByFocusProximity filters matches to those sharing the deepest common
// ancestor with the focused element. This prefers elements in the same
// dialog as the focused element over background elements.
// Returns the original matches if no focused element exists or if focus
// proximity doesn't help narrow the results.
func narrowByFocusProximity(elements []model.Element, matches []*model.Element) []*model.Element {
	focused := findFocusedElement(elements)
	if focused == nil {
		return matches
	}
	focusPath := findPathToID(elements, focused.ID)
	if len(focusPath) == 0 {
		return matches
	}

	bestScore := 0
	scores := make([]int, len(matches))
	for i, m := range matches {
		scores[i] = commonPrefixLen(focusPath, findPathToID(elements, m.ID))
		if scores[i] > bestScore {
			bestScore = scores[i]
		}
	}
	if bestScore == 0 {
		return matches
	}

	var narrowed []*model.Element
	for i, m := range matches {
		if scores[i] == bestScore {
			narrowed = append(narrowed, m)
		}
	}
	return narrowed
}

// findFocusedElement returns the first record with f:true, or nil.
func findFocusedElement(elements []model.Element) *model.Element {
	for i := range elements {
		if elements[i].Focused {
			return &elements[i]
		}
		if found := findFocusedElement(elements[i].Children); found != nil {
			return found
		}
	}
	return nil
}

// staticTypes are display-only control types that are deprioritized when
// interactive elements also match the same text.
var staticTypes = map[a11y.ControlType]bool{
	a11y.ControlTypeText:   true,
	a11y.ControlTypeImage:  true,
	a11y.ControlTypeGroup:  true,
	a11y.ControlTypeCustom: true,
}

// preferInteractiveElements filters matches to interactive (non-static)
// elements when the match set contains a mix of interactive and static roles.
// If ALL matches are static or ALL are interactive, returns the original set.
func preferInteractiveElements(matches []*model.Element) []*model.Element {
	var interactive []*model.Element
	for _, m := range matches {
		if !staticTypes[roleOf(*m)] {
			interactive = append(interactive, m)
		}
	}
	if len(interactive) > 0 && len(interactive) < len(matches) {
		return interactive
	}
	return matches
}

// findPathToID returns the path (list of element IDs) from the root to the
// element with the given ID. Returns nil if not found.
func findPathToID(elements []model.Element, targetID int) []int {
	for i := range elements {
		if elements[i].Ref == 0 && elements[i].ID == targetID {
			return []int{elements[i].ID}
		}
		if childPath := findPathToID(elements[i].Children, targetID); childPath != nil {
			return append([]int{elements[i].ID}, childPath...)
		}
	}
	return nil
}

// findRolePathToID returns the role-based path from root to the element with
// the given ID, e.g. "window > group > list > item". Returns "" if the
// element is not found.
func findRolePathToID(elements []model.Element, targetID int) string {
	parts := findRolePathParts(elements, targetID)
	if parts == nil {
		return ""
	}
	return strings.Join(parts, model.PathSeparator)
}

func findRolePathParts(elements []model.Element, targetID int) []string {
	for i := range elements {
		if elements[i].Ref == 0 && elements[i].ID == targetID {
			return []string{elements[i].Role}
		}
		if childPath := findRolePathParts(elements[i].Children, targetID); childPath != nil {
			return append([]string{elements[i].Role}, childPath...)
		}
	}
	return nil
}

// commonPrefixLen returns the length of the common prefix between two int slices.
func commonPrefixLen(a, b []int) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// addTextTargetingFlags adds --text, --roles, --exact, and --scope-id flags to a
// command for text-based element targeting.
func addTextTargetingFlags(cmd *cobra.Command, textFlagName string, textHelp string) {
	cmd.Flags().String(textFlagName, "", textHelp)
	cmd.Flags().String("roles", "", "Filter by role when using text targeting (e.g. \"btn\", \"btn,lnk\")")
	cmd.Flags().Bool("exact", false, "Require exact match on title/value/description (default: substring)")
	cmd.Flags().Int("scope-id", 0, "Limit text search to descendants of this element ID")
}

// getTextTargetingFlags reads the text-targeting flags from a command.
func getTextTargetingFlags(cmd *cobra.Command, textFlagName string) (text string, roles string, exact bool, scopeID int) {
	text, _ = cmd.Flags().GetString(textFlagName)
	roles, _ = cmd.Flags().GetString("roles")
	exact, _ = cmd.Flags().GetBool("exact")
	scopeID, _ = cmd.Flags().GetInt("scope-id")
	return
}

// resolveTarget picks the element named by --id or by text targeting.
func resolveTarget(cmd *cobra.Command, records []model.Element) (*model.Element, error) {
	id, _ := cmd.Flags().GetInt("id")
	text, roles, exact, scopeID := getTextTargetingFlags(cmd, "text")
	switch {
	case id > 0:
		el := findElementByID(records, id)
		if el == nil {
			return nil, fmt.Errorf("element with id %d not found", id)
		}
		return el, nil
	case text != "":
		return resolveElementByText(records, text, roles, exact, scopeID)
	default:
		return nil, fmt.Errorf("specify --id or --text")
	}
}
