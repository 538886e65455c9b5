package condition

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/cases"
)

// PredicateKind enumerates the value tests a property condition can apply.
type PredicateKind int

const (
	PredExists PredicateKind = iota
	PredEquals
	PredEqualFold
	PredContains
	PredInRange
	PredHasFlags
	PredNonEmpty
	PredIsTrue
)

// Predicate tests a property value. The zero Predicate accepts any present value.
type Predicate struct {
	kind     PredicateKind
	want     any
	text     string // folded for EqualFold and Contains
	raw      string
	min, max float64
	mask     uint64
}

// Exists accepts any present value.
func Exists() Predicate { return Predicate{kind: PredExists} }

// Equals accepts values equal to want. Numbers compare by value regardless
// of their Go type.
func Equals(want any) Predicate { return Predicate{kind: PredEquals, want: want} }

// EqualFold accepts strings equal to s under Unicode case folding.
func EqualFold(s string) Predicate {
	return Predicate{kind: PredEqualFold, text: fold(s), raw: s}
}

// Contains accepts strings containing s under Unicode case folding.
func Contains(s string) Predicate {
	return Predicate{kind: PredContains, text: fold(s), raw: s}
}

// InRange accepts numbers within [min, max].
func InRange(min, max float64) Predicate {
	return Predicate{kind: PredInRange, min: min, max: max}
}

// HasFlags accepts integers with every bit of mask set.
func HasFlags(mask uint64) Predicate { return Predicate{kind: PredHasFlags, mask: mask} }

// NonEmpty accepts strings containing at least one non-whitespace rune.
func NonEmpty() Predicate { return Predicate{kind: PredNonEmpty} }

// IsTrue accepts the boolean true.
func IsTrue() Predicate { return Predicate{kind: PredIsTrue} }

// Kind returns the predicate variant.
func (p Predicate) Kind() PredicateKind { return p.kind }

// Test reports whether v satisfies the predicate. Values of the wrong type
// never satisfy it.
func (p Predicate) Test(v any) bool {
	switch p.kind {
	case PredExists:
		return true
	case PredEquals:
		return equalValues(v, p.want)
	case PredEqualFold:
		s, ok := v.(string)
		return ok && fold(s) == p.text
	case PredContains:
		s, ok := v.(string)
		return ok && strings.Contains(fold(s), p.text)
	case PredInRange:
		f, ok := toFloat(v)
		return ok && f >= p.min && f <= p.max
	case PredHasFlags:
		u, ok := toUint(v)
		return ok && u&p.mask == p.mask
	case PredNonEmpty:
		s, ok := v.(string)
		return ok && strings.TrimSpace(s) != ""
	case PredIsTrue:
		b, ok := v.(bool)
		return ok && b
	}
	return false
}

func (p Predicate) String() string {
	switch p.kind {
	case PredExists:
		return "exists"
	case PredEquals:
		return fmt.Sprintf("== %v", p.want)
	case PredEqualFold:
		return fmt.Sprintf("equals %q (any case)", p.raw)
	case PredContains:
		return fmt.Sprintf("contains %q", p.raw)
	case PredInRange:
		return fmt.Sprintf("in [%g, %g]", p.min, p.max)
	case PredHasFlags:
		return fmt.Sprintf("has flags 0x%x", p.mask)
	case PredNonEmpty:
		return "is not empty"
	case PredIsTrue:
		return "is true"
	}
	return fmt.Sprintf("predicate(%d)", int(p.kind))
}

// fold uses a fresh Caser per call; casers are stateful and must not be
// shared between goroutines.
func fold(s string) string {
	return cases.Fold().String(s)
}

func equalValues(got, want any) bool {
	if gf, ok := toFloat(got); ok {
		if wf, ok := toFloat(want); ok {
			return gf == wf
		}
		return false
	}
	return reflect.DeepEqual(got, want)
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func toUint(v any) (uint64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// Negative flag words keep their two's complement bits.
		return uint64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	case reflect.Float32, reflect.Float64:
		// JSON fixtures decode integers as float64.
		f := rv.Float()
		if f < 0 || f != float64(uint64(f)) {
			return 0, false
		}
		return uint64(f), true
	}
	return 0, false
}
