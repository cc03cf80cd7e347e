// Package roster manages the cast of characters the tracker knows about.
// Replaces the TypeScript character bookkeeping helpers (npcAvatars,
// characterColors, knownCharacters, removedCharacters) with one service over
// the settings store, plus prose scanning for mentions and new names.
package roster

import (
	"strings"
	"sync"

	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/settings"
)

// PresenceState classifies a character relative to the current scene.
type PresenceState int

const (
	// StatePresent - on the roster and listed in the scene.
	StatePresent PresenceState = iota
	// StateAbsent - on the roster but not listed in the scene.
	StateAbsent
	// StateNew - listed in the scene but not on the roster yet.
	StateNew
	// StateRemoved - marked removed yet still appearing in the scene.
	StateRemoved
)

func (s PresenceState) String() string {
	names := []string{"PRESENT", "ABSENT", "NEW", "REMOVED"}
	if int(s) < len(names) {
		return names[s]
	}
	return "NEW"
}

// Service exposes roster operations over the shared settings store.
// Thread-safe for concurrent WASM callbacks.
type Service struct {
	store *settings.Store

	mu       sync.Mutex // guards matcher + compiled
	matcher  *Matcher
	compiled []string

	discovery *Discovery
}

// NewService creates a roster service bound to the settings store.
func NewService(store *settings.Store) *Service {
	return &Service{
		store:     store,
		discovery: NewDiscovery(0),
	}
}

// SetAvatar records an avatar override for name. An empty url clears the
// override instead of storing a blank entry.
func (s *Service) SetAvatar(name, url string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	s.store.Mutate(func(st *settings.Settings) {
		if st.NpcAvatars == nil {
			st.NpcAvatars = make(map[string]string)
		}
		if url == "" {
			delete(st.NpcAvatars, name)
			return
		}
		st.NpcAvatars[name] = url
	})
}

// Avatar returns the avatar override for name, or "" when none is set.
func (s *Service) Avatar(name string) string {
	name = strings.TrimSpace(name)
	var out string
	s.store.View(func(st *settings.Settings) {
		out = st.NpcAvatars[name]
	})
	return out
}

// SetColor records a display color for name. An empty color clears the entry.
func (s *Service) SetColor(name, color string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	s.store.Mutate(func(st *settings.Settings) {
		if st.CharacterColors == nil {
			st.CharacterColors = make(map[string]string)
		}
		if color == "" {
			delete(st.CharacterColors, name)
			return
		}
		st.CharacterColors[name] = color
	})
}

// Color returns the display color for name, or "" when none is set.
func (s *Service) Color(name string) string {
	name = strings.TrimSpace(name)
	var out string
	s.store.View(func(st *settings.Settings) {
		out = st.CharacterColors[name]
	})
	return out
}

// AddKnown puts name on the roster. Re-adding a removed character restores
// it. Returns true when the roster actually changed.
func (s *Service) AddKnown(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	changed := false
	s.store.Mutate(func(st *settings.Settings) {
		if removeString(&st.RemovedCharacters, name) {
			changed = true
		}
		if !containsString(st.KnownCharacters, name) {
			st.KnownCharacters = append(st.KnownCharacters, name)
			changed = true
		}
	})
	if changed {
		// The accepted candidate leaves the discovery watch list.
		s.discovery.Forget(name)
	}
	return changed
}

// ForgetKnown drops name from the roster entirely. Avatar and color entries
// stay behind so re-adding the character restores its look.
func (s *Service) ForgetKnown(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	changed := false
	s.store.Mutate(func(st *settings.Settings) {
		changed = removeString(&st.KnownCharacters, name)
	})
	return changed
}

// MarkRemoved moves name from the active roster to the removed list.
// Removed characters are excluded from tracker prompts but keep their
// avatar and color entries.
func (s *Service) MarkRemoved(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	changed := false
	s.store.Mutate(func(st *settings.Settings) {
		if removeString(&st.KnownCharacters, name) {
			changed = true
		}
		if !containsString(st.RemovedCharacters, name) {
			st.RemovedCharacters = append(st.RemovedCharacters, name)
			changed = true
		}
	})
	return changed
}

// RestoreRemoved moves name back from the removed list to the active roster.
func (s *Service) RestoreRemoved(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	changed := false
	s.store.Mutate(func(st *settings.Settings) {
		if !removeString(&st.RemovedCharacters, name) {
			return
		}
		changed = true
		if !containsString(st.KnownCharacters, name) {
			st.KnownCharacters = append(st.KnownCharacters, name)
		}
	})
	return changed
}

// Known returns the active roster in insertion order.
func (s *Service) Known() []string {
	var out []string
	s.store.View(func(st *settings.Settings) {
		out = append(out, st.KnownCharacters...)
	})
	return out
}

// Removed returns the removed list in insertion order.
func (s *Service) Removed() []string {
	var out []string
	s.store.View(func(st *settings.Settings) {
		out = append(out, st.RemovedCharacters...)
	})
	return out
}

// Presence classifies every roster character and every listed scene name.
// Roster characters absent from the scene report StateAbsent; scene names
// not on the roster report StateNew; removed characters only appear in the
// result if the scene still lists them.
func (s *Service) Presence(present []string) map[string]PresenceState {
	out := make(map[string]PresenceState)
	s.store.View(func(st *settings.Settings) {
		inScene := make(map[string]bool, len(present))
		for _, name := range present {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			inScene[name] = true
		}

		for _, name := range st.KnownCharacters {
			if inScene[name] {
				out[name] = StatePresent
			} else {
				out[name] = StateAbsent
			}
		}
		removed := make(map[string]bool, len(st.RemovedCharacters))
		for _, name := range st.RemovedCharacters {
			removed[name] = true
		}
		for name := range inScene {
			if _, seen := out[name]; seen {
				continue
			}
			if removed[name] {
				out[name] = StateRemoved
			} else {
				out[name] = StateNew
			}
		}
	})
	return out
}

// Mentions scans prose for occurrences of roster names. The automaton is
// rebuilt lazily whenever the roster changed since the last scan.
func (s *Service) Mentions(text string) ([]Mention, error) {
	names := s.Known()
	if len(names) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.matcher == nil || !equalStrings(s.compiled, names) {
		m, err := CompileMatcher(names)
		if err != nil {
			return nil, err
		}
		s.matcher = m
		s.compiled = names
	}
	return s.matcher.Scan(text), nil
}

// Observe feeds prose to the discovery engine, skipping names that are
// already on the roster or the removed list.
func (s *Service) Observe(text string) {
	skip := make(map[string]bool)
	s.store.View(func(st *settings.Settings) {
		for _, name := range st.KnownCharacters {
			skip[strings.ToLower(name)] = true
		}
		for _, name := range st.RemovedCharacters {
			skip[strings.ToLower(name)] = true
		}
	})
	s.discovery.Observe(text, skip)
}

// Candidates returns the discovery engine's current suggestions.
func (s *Service) Candidates() []Candidate {
	return s.discovery.Candidates()
}

// IgnoreCandidate suppresses a discovery suggestion permanently.
func (s *Service) IgnoreCandidate(name string) {
	s.discovery.Ignore(name)
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// removeString deletes the first occurrence of v in *list.
func removeString(list *[]string, v string) bool {
	for i, s := range *list {
		if s == v {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
