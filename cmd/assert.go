package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-check/internal/model"
	"github.com/mj1618/a11y-check/internal/output"
	"github.com/mj1618/a11y-check/internal/rules"
)

// ElementInfo is a compact element summary for command output.
type ElementInfo struct {
	ID    int    `yaml:"i"           json:"i"`
	Role  string `yaml:"r"           json:"r"`
	Title string `yaml:"t,omitempty" json:"t,omitempty"`
	Value string `yaml:"v,omitempty" json:"v,omitempty"`
	Path  string `yaml:"path,omitempty" json:"path,omitempty"`
}

func elementInfoFromElement(elem *model.Element) *ElementInfo {
	if elem == nil {
		return nil
	}
	return &ElementInfo{ID: elem.ID, Role: elem.Role, Title: elem.Title, Value: elem.Value}
}

// AssertResult is the YAML output of an assert command.
type AssertResult struct {
	OK       bool                 `yaml:"ok"                 json:"ok"`
	Action   string               `yaml:"action"             json:"action"`
	Pass     bool                 `yaml:"pass"               json:"pass"`
	Error    string               `yaml:"error,omitempty"    json:"error,omitempty"`
	Rule     rules.ID             `yaml:"rule,omitempty"     json:"rule,omitempty"`
	Verdict  rules.EvaluationCode `yaml:"verdict,omitempty"  json:"verdict,omitempty"`
	Element  *ElementInfo         `yaml:"element,omitempty"  json:"element,omitempty"`
}

var assertCmd = &cobra.Command{
	Use:   "assert <fixture>...",
	Short: "Assert a rule verdict or element state",
	Long: `Check that an element exists with expected properties, or that a rule
gives the expected verdict for it.

Returns pass/fail with structured output and exit code 0 (pass) or 1 (fail).
With --timeout the fixtures are re-read until the assertion holds, which
suits trees that another process rewrites.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAssert,
}

func init() {
	rootCmd.AddCommand(assertCmd)
	addTextTargetingFlags(assertCmd, "text", "Find element by title/value/description text")
	assertCmd.Flags().Int("id", 0, "Find element by ID")

	// Rule assertions
	assertCmd.Flags().String("rule", "", "Rule ID to evaluate against the element")
	assertCmd.Flags().String("expect", "Pass", "Expected verdict for --rule: Pass, Fail, Note, Open, RuleExecutionError")

	// Property assertions
	assertCmd.Flags().String("value", "", "Assert element value equals this string")
	assertCmd.Flags().String("value-contains", "", "Assert element value contains this substring")
	assertCmd.Flags().Bool("checked", false, "Assert element is selected/checked")
	assertCmd.Flags().Bool("unchecked", false, "Assert element is NOT selected/checked")
	assertCmd.Flags().Bool("disabled", false, "Assert element is disabled")
	assertCmd.Flags().Bool("enabled", false, "Assert element is enabled")
	assertCmd.Flags().Bool("is-focused", false, "Assert element has keyboard focus")
	assertCmd.Flags().Bool("gone", false, "Assert element does NOT exist")

	// Timing
	assertCmd.Flags().Int("timeout", 0, "Max seconds to poll (0 = single check, no polling)")
	assertCmd.Flags().Int("interval", 500, "Polling interval in milliseconds (default: 500)")
}

func runAssert(cmd *cobra.Command, args []string) error {
	text, roles, exact, scopeID := getTextTargetingFlags(cmd, "text")
	id, _ := cmd.Flags().GetInt("id")
	ruleID, _ := cmd.Flags().GetString("rule")
	expect, _ := cmd.Flags().GetString("expect")

	value, _ := cmd.Flags().GetString("value")
	valueContains, _ := cmd.Flags().GetString("value-contains")
	checked, _ := cmd.Flags().GetBool("checked")
	unchecked, _ := cmd.Flags().GetBool("unchecked")
	disabled, _ := cmd.Flags().GetBool("disabled")
	enabled, _ := cmd.Flags().GetBool("enabled")
	isFocused, _ := cmd.Flags().GetBool("is-focused")
	gone, _ := cmd.Flags().GetBool("gone")

	timeoutSec, _ := cmd.Flags().GetInt("timeout")
	intervalMs, _ := cmd.Flags().GetInt("interval")

	if text == "" && id == 0 {
		return fmt.Errorf("specify --text or --id to target an element")
	}

	opts := assertOptions{
		paths:         args,
		text:          text,
		roles:         roles,
		exact:         exact,
		scopeID:       scopeID,
		id:            id,
		value:         value,
		hasValueCheck: cmd.Flags().Changed("value"),
		valueContains: valueContains,
		checked:       checked,
		unchecked:     unchecked,
		disabled:      disabled,
		enabled:       enabled,
		isFocused:     isFocused,
		gone:          gone,
	}
	if ruleID != "" {
		reg, err := selectRegistry(cmd)
		if err != nil {
			return err
		}
		r, ok := reg.Lookup(rules.ID(ruleID))
		if !ok {
			return fmt.Errorf("%w: %q", rules.ErrUnknownRule, ruleID)
		}
		code, err := rules.ParseEvaluationCode(expect)
		if err != nil {
			return err
		}
		opts.rule = r
		opts.expect = code
	}

	ctx := cmd.Context()
	if timeoutSec > 0 {
		timeout := time.Duration(timeoutSec) * time.Second
		interval := time.Duration(intervalMs) * time.Millisecond
		deadline := time.Now().Add(timeout)

		for {
			result := checkAssert(ctx, opts)
			if result.Pass {
				return output.Print(result)
			}
			if time.Now().After(deadline) {
				_ = output.Print(result)
				return fmt.Errorf("assert failed: %s", result.Error)
			}
			logger.Debug("assert pending", "error", result.Error)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}
	}

	result := checkAssert(ctx, opts)
	if result.Pass {
		return output.Print(result)
	}
	_ = output.Print(result)
	return fmt.Errorf("assert failed: %s", result.Error)
}

type assertOptions struct {
	paths         []string
	text          string
	roles         string
	exact         bool
	scopeID       int
	id            int
	rule          *rules.Rule
	expect        rules.EvaluationCode
	value         string
	hasValueCheck bool
	valueContains string
	checked       bool
	unchecked     bool
	disabled      bool
	enabled       bool
	isFocused     bool
	gone          bool
}

// checkAssert performs a single assertion check and returns the result.
// The fixtures are read afresh on every call.
func checkAssert(ctx context.Context, opts assertOptions) AssertResult {
	trees, _, err := loadTrees(ctx, opts.paths)
	if err != nil {
		return AssertResult{Action: "assert", Error: err.Error()}
	}
	return checkAssertTrees(trees, opts)
}

func checkAssertTrees(trees []*model.Tree, opts assertOptions) AssertResult {
	var records []model.Element
	for _, t := range trees {
		records = append(records, t.Records...)
	}
	elem, err := findAssertElement(records, opts)

	if opts.gone {
		if err != nil || elem == nil {
			return AssertResult{OK: true, Action: "assert", Pass: true}
		}
		return AssertResult{
			Action:  "assert",
			Error:   fmt.Sprintf("expected element to be gone but found: %s", describeElement(elem)),
			Element: elementInfoFromElement(elem),
		}
	}

	if err != nil {
		return AssertResult{Action: "assert", Error: err.Error()}
	}

	info := elementInfoFromElement(elem)
	info.Path = findRolePathToID(records, elem.ID)
	if err := checkPropertyAssertions(elem, opts); err != nil {
		return AssertResult{Action: "assert", Error: err.Error(), Element: info}
	}

	result := AssertResult{OK: true, Action: "assert", Pass: true, Element: info}
	if opts.rule == nil {
		return result
	}
	result.Rule = opts.rule.ID()
	for _, t := range trees {
		node, ok := t.FindByID(elem.ID)
		if !ok {
			continue
		}
		code, fault, err := opts.rule.Explain(node)
		if err != nil {
			return AssertResult{Action: "assert", Error: err.Error(), Element: info, Rule: result.Rule}
		}
		result.Verdict = code
		if code != opts.expect {
			result.OK, result.Pass = false, false
			result.Error = fmt.Sprintf("expected %s to give %s but got %s", opts.rule.ID(), opts.expect, code)
			if fault != nil {
				result.Error += ": " + fault.Error()
			}
		}
		return result
	}
	return AssertResult{Action: "assert", Error: fmt.Sprintf("element with id %d not found", elem.ID), Element: info}
}

// findAssertElement locates the target element by text or ID.
func findAssertElement(records []model.Element, opts assertOptions) (*model.Element, error) {
	if opts.text != "" {
		return resolveElementByText(records, opts.text, opts.roles, opts.exact, opts.scopeID)
	}
	elem := findElementByID(records, opts.id)
	if elem == nil {
		return nil, fmt.Errorf("element with id %d not found", opts.id)
	}
	return elem, nil
}

// checkPropertyAssertions validates element properties against the assertion flags.
func checkPropertyAssertions(elem *model.Element, opts assertOptions) error {
	if opts.hasValueCheck {
		if elem.Value != opts.value {
			return fmt.Errorf("expected value %q but got %q", opts.value, elem.Value)
		}
	}
	if opts.valueContains != "" {
		if !strings.Contains(strings.ToLower(elem.Value), strings.ToLower(opts.valueContains)) {
			return fmt.Errorf("expected value to contain %q but got %q", opts.valueContains, elem.Value)
		}
	}
	if opts.checked {
		if !elem.Selected {
			return fmt.Errorf("expected element to be checked/selected but it is not")
		}
	}
	if opts.unchecked {
		if elem.Selected {
			return fmt.Errorf("expected element to be unchecked/unselected but it is selected")
		}
	}
	if opts.disabled {
		if elem.Enabled == nil || *elem.Enabled {
			return fmt.Errorf("expected element to be disabled but it is enabled")
		}
	}
	if opts.enabled {
		if elem.Enabled != nil && !*elem.Enabled {
			return fmt.Errorf("expected element to be enabled but it is disabled")
		}
	}
	if opts.isFocused {
		if !elem.Focused {
			return fmt.Errorf("expected element to be focused but it is not")
		}
	}
	return nil
}

// describeElement returns a brief human-readable description of an element.
func describeElement(elem *model.Element) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("id=%d", elem.ID))
	parts = append(parts, fmt.Sprintf("role=%s", elem.Role))
	if elem.Title != "" {
		parts = append(parts, fmt.Sprintf("title=%q", elem.Title))
	}
	if elem.Value != "" {
		parts = append(parts, fmt.Sprintf("value=%q", elem.Value))
	}
	return strings.Join(parts, " ")
}
