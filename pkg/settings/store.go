package settings

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Store owns the live settings record. The host event loop is the single
// logical writer; the mutex makes concurrent WASM callbacks safe anyway.
type Store struct {
	mu      sync.RWMutex
	current *Settings
}

// NewStore creates a store holding the default settings record.
func NewStore() *Store {
	return &Store{current: DefaultSettings()}
}

// Set replaces the whole record. No validation, no coercion: the caller is
// trusted to supply a shape-compatible record, matching host behavior.
func (s *Store) Set(next *Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next == nil {
		next = DefaultSettings()
	}
	s.current = next
}

// SetJSON replaces the whole record from its host-side JSON form.
func (s *Store) SetJSON(data []byte) error {
	next := new(Settings)
	if err := json.Unmarshal(data, next); err != nil {
		return fmt.Errorf("decoding settings: %w", err)
	}
	s.Set(next)
	return nil
}

// Update shallow-merges top-level keys only. A nested object present in
// partial fully replaces the stored nested object; absent top-level keys are
// untouched. Not a deep merge: callers pass partial nested objects expecting
// full replacement.
func (s *Store) Update(partial map[string]json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged, err := shallowMerge(s.current, partial)
	if err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}
	s.current = merged
	return nil
}

// UpdateJSON is Update with the partial record still in JSON form.
func (s *Store) UpdateJSON(data []byte) error {
	var partial map[string]json.RawMessage
	if err := json.Unmarshal(data, &partial); err != nil {
		return fmt.Errorf("decoding settings update: %w", err)
	}
	return s.Update(partial)
}

// Snapshot returns a deep copy of the current record for builders and
// serialization. Mutating the copy never touches the live record.
func (s *Store) Snapshot() *Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Mutate runs fn with exclusive access to the live record. Services use this
// for targeted in-place edits (roster maps, presets, campaigns).
func (s *Store) Mutate(fn func(*Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.current)
}

// View runs fn with shared read access to the live record. fn must not
// mutate or retain the record.
func (s *Store) View(fn func(*Settings)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.current)
}

// shallowMerge overlays partial's top-level keys onto current and decodes the
// result into a fresh record, so replaced sub-objects carry only what the
// partial supplied.
func shallowMerge(current *Settings, partial map[string]json.RawMessage) (*Settings, error) {
	raw, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("encoding current record: %w", err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("decoding current record: %w", err)
	}
	for k, v := range partial {
		top[k] = v
	}
	merged, err := json.Marshal(top)
	if err != nil {
		return nil, fmt.Errorf("encoding merged record: %w", err)
	}
	next := new(Settings)
	if err := json.Unmarshal(merged, next); err != nil {
		return nil, fmt.Errorf("decoding merged record: %w", err)
	}
	return next, nil
}

// Clone returns a deep copy via JSON round-trip.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return DefaultSettings()
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return DefaultSettings()
	}
	out := new(Settings)
	if err := json.Unmarshal(raw, out); err != nil {
		return DefaultSettings()
	}
	return out
}

// Clone returns a deep copy of the tracker configuration. Presets apply and
// snapshot through this so later edits never alias the stored copy.
func (c TrackerConfig) Clone() TrackerConfig {
	raw, err := json.Marshal(c)
	if err != nil {
		return DefaultTrackerConfig()
	}
	var out TrackerConfig
	if err := json.Unmarshal(raw, &out); err != nil {
		return DefaultTrackerConfig()
	}
	return out
}
