package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles the live backends for the current OS.
type Provider struct {
	Source Source
}

// ErrUnsupported is returned when no live backend is registered.
var ErrUnsupported = fmt.Errorf("live accessibility trees are not supported on %s/%s; pass fixture files instead", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}

// LiveTarget selects the live backend in ResolveSource.
const LiveTarget = "live"

// ResolveSource returns the live source for LiveTarget and a fixture source
// for anything else.
func ResolveSource(targets ...string) (Source, error) {
	if len(targets) == 1 && targets[0] == LiveTarget {
		p, err := NewProvider()
		if err != nil {
			return nil, err
		}
		if p.Source == nil {
			return nil, ErrUnsupported
		}
		return p.Source, nil
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no fixture files given")
	}
	return NewFixtureSource(targets...), nil
}
