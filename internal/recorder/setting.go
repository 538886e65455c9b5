// Package recorder maintains the persisted recording configuration: which
// events and properties a user wants to observe.
package recorder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mj1618/a11y-check/internal/a11y"
)

// ErrUnknownEvent is returned when toggling an event id that is not in the setting.
var ErrUnknownEvent = errors.New("unknown event")

// EntityType distinguishes event entries from property entries.
type EntityType string

const (
	EntityEvent    EntityType = "event"
	EntityProperty EntityType = "property"
)

// ParseEntityType resolves "event" or "property".
func ParseEntityType(s string) (EntityType, error) {
	switch t := EntityType(strings.ToLower(strings.TrimSpace(s))); t {
	case EntityEvent, EntityProperty:
		return t, nil
	}
	return "", fmt.Errorf("unknown entity type: %q (expected event or property)", s)
}

// Entry is the recording state of one event or property.
type Entry struct {
	Type         EntityType `json:"type"          yaml:"type"`
	ID           int        `json:"id"            yaml:"id"`
	Name         string     `json:"name"          yaml:"name"`
	IsCustom     bool       `json:"is_custom"     yaml:"is_custom"`
	IsRecorded   bool       `json:"is_recorded"   yaml:"is_recorded"`
	CheckedCount int        `json:"checked_count" yaml:"checked_count"`
}

// Setting is the recording configuration document.
type Setting struct {
	Events             []Entry   `json:"events"               yaml:"events"`
	Properties         []Entry   `json:"properties"           yaml:"properties"`
	ListenFocusChanged bool      `json:"listen_focus_changed" yaml:"listen_focus_changed"`
	ListenAll          bool      `json:"listen_all"           yaml:"listen_all"`
	ListenScope        TreeScope `json:"listen_scope"         yaml:"listen_scope"`
}

// Catalog is the set of events and properties known to the engine.
type Catalog struct {
	Events     []a11y.CatalogEntry
	Properties []a11y.CatalogEntry
}

// DefaultCatalog returns the built-in event and property catalogs.
func DefaultCatalog() Catalog {
	return Catalog{Events: a11y.Events(), Properties: a11y.Properties()}
}

// Default builds a setting with one unselected entry per catalog id,
// focus-change listening on and subtree scope.
func Default(cat Catalog) *Setting {
	s := &Setting{
		Events:             make([]Entry, 0, len(cat.Events)),
		Properties:         make([]Entry, 0, len(cat.Properties)),
		ListenFocusChanged: true,
		ListenScope:        TreeScopeSubtree,
	}
	for _, e := range cat.Events {
		s.Events = append(s.Events, Entry{Type: EntityEvent, ID: e.ID, Name: e.Name})
	}
	for _, p := range cat.Properties {
		s.Properties = append(s.Properties, Entry{Type: EntityProperty, ID: p.ID, Name: p.Name})
	}
	return s
}

// Merge appends an unselected entry for every event in known that s does
// not list yet, in catalog order, and returns how many were added.
// Existing entries are never changed or removed.
func Merge(s *Setting, known []a11y.CatalogEntry) int {
	present := make(map[int]bool, len(s.Events))
	for _, e := range s.Events {
		present[e.ID] = true
	}
	added := 0
	for _, k := range known {
		if present[k.ID] {
			continue
		}
		present[k.ID] = true
		s.Events = append(s.Events, Entry{Type: EntityEvent, ID: k.ID, Name: k.Name})
		added++
	}
	return added
}

// SetChecked adjusts the reference count of an entry by +1 when on is set
// and by -1 otherwise. The focus-changed event toggles ListenFocusChanged
// instead. An unknown property id is added as a custom entry with a count
// of 1; name labels it.
func (s *Setting) SetChecked(id int, typ EntityType, on bool, name string) error {
	change := -1
	if on {
		change = 1
	}
	switch typ {
	case EntityEvent:
		if id == int(a11y.EventFocusChanged) {
			s.ListenFocusChanged = on
			return nil
		}
		for i := range s.Events {
			if s.Events[i].ID == id {
				s.Events[i].CheckedCount += change
				return nil
			}
		}
		return fmt.Errorf("%w: %d", ErrUnknownEvent, id)
	case EntityProperty:
		for i := range s.Properties {
			if s.Properties[i].ID == id {
				s.Properties[i].CheckedCount += change
				return nil
			}
		}
		s.Properties = append(s.Properties, Entry{
			Type:         EntityProperty,
			ID:           id,
			Name:         name,
			IsCustom:     true,
			CheckedCount: 1,
		})
		return nil
	default:
		return fmt.Errorf("unknown entity type: %q", typ)
	}
}

// EventsByRecorded returns the event entries whose IsRecorded flag equals recorded.
func (s *Setting) EventsByRecorded(recorded bool) []Entry {
	var out []Entry
	for _, e := range s.Events {
		if e.IsRecorded == recorded {
			out = append(out, e)
		}
	}
	return out
}

// Decode reads a setting from JSON.
func Decode(r io.Reader) (*Setting, error) {
	var s Setting
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode recorder setting: %w", err)
	}
	if s.Events == nil {
		s.Events = []Entry{}
	}
	if s.Properties == nil {
		s.Properties = []Entry{}
	}
	if s.ListenScope == 0 {
		s.ListenScope = TreeScopeSubtree
	}
	return &s, nil
}

// Encode writes s as indented JSON.
func (s *Setting) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode recorder setting: %w", err)
	}
	return nil
}

func (s *Setting) marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
