package rules

import "github.com/mj1618/a11y-check/internal/a11y"

// Result is the verdict of one rule on one element. Fault holds the cause
// when Code is RuleExecutionError.
type Result struct {
	RuleID  ID
	Element a11y.Element
	Code    EvaluationCode
	Fault   error
}

// Failed reports whether the verdict needs attention.
func (r Result) Failed() bool {
	return r.Code == Fail || r.Code == RuleExecutionError
}
