package platform

import (
	"errors"
	"testing"
)

func TestNewProvider_UnsupportedPlatform(t *testing.T) {
	orig := NewProviderFunc
	NewProviderFunc = nil
	defer func() { NewProviderFunc = orig }()

	_, err := NewProvider()
	if err == nil {
		t.Fatal("expected error on unsupported platform")
	}
	if err != ErrUnsupported {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
	if _, err := ResolveSource(LiveTarget); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ResolveSource(live) = %v, want ErrUnsupported", err)
	}
}

func TestResolveSource_Registered(t *testing.T) {
	orig := NewProviderFunc
	defer func() { NewProviderFunc = orig }()

	want := NewFixtureSource("x.yaml")
	NewProviderFunc = func() (*Provider, error) { return &Provider{Source: want}, nil }
	got, err := ResolveSource(LiveTarget)
	if err != nil {
		t.Fatal(err)
	}
	if got != Source(want) {
		t.Errorf("ResolveSource(live) returned %v", got)
	}

	NewProviderFunc = func() (*Provider, error) { return &Provider{}, nil }
	if _, err := ResolveSource(LiveTarget); !errors.Is(err, ErrUnsupported) {
		t.Errorf("empty provider: %v, want ErrUnsupported", err)
	}
}

func TestResolveSource_Fixtures(t *testing.T) {
	src, err := ResolveSource("a.yaml", "b.json")
	if err != nil {
		t.Fatal(err)
	}
	fs, ok := src.(*FixtureSource)
	if !ok || len(fs.Paths) != 2 {
		t.Fatalf("expected fixture source with 2 paths, got %#v", src)
	}
	if _, err := ResolveSource(); err == nil {
		t.Error("expected error with no targets")
	}
}
