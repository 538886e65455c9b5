// Package a11y defines the read-only contract the rule engine uses to inspect
// a UI element tree, together with the control-type, property and event
// catalogs shared by tree providers and the recorder configuration.
//
// Nothing in this package knows how a tree is backed. A live platform
// adapter, a serialized fixture and a hand-built test double all satisfy the
// same Element interface.
package a11y

import "reflect"

// Element is a read-only handle to one node of an accessibility tree.
//
// Implementations must not mutate the tree and must return consistent values
// for repeated calls against the same node within one evaluation. A non-nil
// error means the provider failed; it is not used to signal absence.
type Element interface {
	// Property returns the value of a property. ok is false when the
	// element does not support the property or the value is absent.
	Property(id PropertyID) (value any, ok bool, err error)

	// ControlType returns the control-type identifier of the element.
	ControlType() (ControlType, error)

	// Children returns the direct children in document order. The slice
	// may be empty and may be requested any number of times.
	Children() ([]Element, error)

	// Parent returns the parent element, or nil for a root.
	Parent() (Element, error)
}

// Identifiable is implemented by elements that carry a stable runtime
// identifier. The engine prefers it over interface identity when it needs
// to recognise an element it has already visited.
type Identifiable interface {
	RuntimeID() string
}

// IsNil reports whether e is a nil interface or an interface holding a nil
// pointer, map, slice, func or channel.
func IsNil(e Element) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Identity returns a comparable key for e, suitable for visited sets.
// It returns nil when e has no usable identity (a value that cannot be hashed,
// such as a struct holding a slice in an interface field, and no runtime id);
// callers must then rely on other bounds.
func Identity(e Element) any {
	if IsNil(e) {
		return nil
	}
	if ide, ok := e.(Identifiable); ok {
		if id := ide.RuntimeID(); id != "" {
			return runtimeKey(id)
		}
	}
	if reflect.ValueOf(e).Comparable() {
		return e
	}
	return nil
}

// SameElement reports whether a and b refer to the same node.
func SameElement(a, b Element) bool {
	ka, kb := Identity(a), Identity(b)
	return ka != nil && ka == kb
}

type runtimeKey string
