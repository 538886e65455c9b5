package rules

import (
	"fmt"
	"strings"
)

// EvaluationCode is the verdict of evaluating one rule against one element.
type EvaluationCode int

const (
	// Open means the rule was not applicable to the element.
	Open EvaluationCode = iota
	Pass
	Fail
	// Note flags a heuristic finding that needs manual review.
	Note
	// RuleExecutionError means the rule failed internally while evaluating.
	RuleExecutionError
)

var codeNames = [...]string{
	Open:               "Open",
	Pass:               "Pass",
	Fail:               "Fail",
	Note:               "Note",
	RuleExecutionError: "RuleExecutionError",
}

// Codes lists every evaluation code.
func Codes() []EvaluationCode {
	return []EvaluationCode{Open, Pass, Fail, Note, RuleExecutionError}
}

// Valid reports whether c is one of the defined codes.
func (c EvaluationCode) Valid() bool {
	return c >= Open && c <= RuleExecutionError
}

func (c EvaluationCode) String() string {
	if c.Valid() {
		return codeNames[c]
	}
	return fmt.Sprintf("EvaluationCode(%d)", int(c))
}

// ParseEvaluationCode parses a code name (case-insensitive). "error" is
// accepted for RuleExecutionError.
func ParseEvaluationCode(s string) (EvaluationCode, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "error") {
		return RuleExecutionError, nil
	}
	for _, c := range Codes() {
		if strings.EqualFold(codeNames[c], s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown evaluation code: %q", s)
}

func (c EvaluationCode) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid evaluation code %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *EvaluationCode) UnmarshalText(text []byte) error {
	parsed, err := ParseEvaluationCode(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
