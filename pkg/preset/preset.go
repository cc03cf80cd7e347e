// Package preset manages named snapshots of the tracker configuration.
// Replaces the TypeScript preset manager: presets live inside the settings
// record, can be tied to individual characters, and resolve through
// association -> default -> none. Unknown preset ids degrade to no-ops so a
// stale record never breaks the chat UI.
package preset

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/settings"
)

// Summary is the host-facing view of one preset.
type Summary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	IsDefault bool   `json:"isDefault"`
}

// Manager exposes preset operations over the shared settings store.
// Thread-safe for concurrent WASM callbacks.
type Manager struct {
	store *settings.Store
}

// NewManager creates a preset manager bound to the settings store.
func NewManager(store *settings.Store) *Manager {
	return &Manager{store: store}
}

// Save snapshots the live tracker configuration under a fresh id and makes
// it the active preset. The snapshot is a deep copy: later config edits do
// not bleed into it.
func (m *Manager) Save(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Unnamed Preset"
	}
	id := uuid.NewString()
	m.store.Mutate(func(st *settings.Settings) {
		if st.PresetManager.Presets == nil {
			st.PresetManager.Presets = make(map[string]settings.Preset)
		}
		st.PresetManager.Presets[id] = settings.Preset{
			Name:          name,
			TrackerConfig: st.TrackerConfig.Clone(),
		}
		st.PresetManager.ActivePresetID = id
	})
	return id
}

// Apply replaces the live tracker configuration with the preset's snapshot
// and marks it active. Unknown ids leave everything untouched.
func (m *Manager) Apply(id string) bool {
	applied := false
	m.store.Mutate(func(st *settings.Settings) {
		preset, ok := st.PresetManager.Presets[id]
		if !ok {
			return
		}
		st.TrackerConfig = preset.TrackerConfig.Clone()
		st.PresetManager.ActivePresetID = id
		applied = true
	})
	return applied
}

// Delete removes a preset and detaches everything referencing it: character
// associations, the active marker, and the default marker.
func (m *Manager) Delete(id string) bool {
	deleted := false
	m.store.Mutate(func(st *settings.Settings) {
		if _, ok := st.PresetManager.Presets[id]; !ok {
			return
		}
		delete(st.PresetManager.Presets, id)
		for character, presetID := range st.PresetManager.CharacterAssociations {
			if presetID == id {
				delete(st.PresetManager.CharacterAssociations, character)
			}
		}
		if st.PresetManager.ActivePresetID == id {
			st.PresetManager.ActivePresetID = ""
		}
		if st.PresetManager.DefaultPresetID == id {
			st.PresetManager.DefaultPresetID = ""
		}
		deleted = true
	})
	return deleted
}

// Rename changes a preset's display name.
func (m *Manager) Rename(id, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	renamed := false
	m.store.Mutate(func(st *settings.Settings) {
		preset, ok := st.PresetManager.Presets[id]
		if !ok {
			return
		}
		preset.Name = name
		st.PresetManager.Presets[id] = preset
		renamed = true
	})
	return renamed
}

// Associate ties a character to a preset. The preset must exist.
func (m *Manager) Associate(character, id string) bool {
	character = strings.TrimSpace(character)
	if character == "" {
		return false
	}
	associated := false
	m.store.Mutate(func(st *settings.Settings) {
		if _, ok := st.PresetManager.Presets[id]; !ok {
			return
		}
		if st.PresetManager.CharacterAssociations == nil {
			st.PresetManager.CharacterAssociations = make(map[string]string)
		}
		st.PresetManager.CharacterAssociations[character] = id
		associated = true
	})
	return associated
}

// Dissociate removes a character's preset association.
func (m *Manager) Dissociate(character string) bool {
	character = strings.TrimSpace(character)
	removed := false
	m.store.Mutate(func(st *settings.Settings) {
		if _, ok := st.PresetManager.CharacterAssociations[character]; !ok {
			return
		}
		delete(st.PresetManager.CharacterAssociations, character)
		removed = true
	})
	return removed
}

// SetActive marks a preset as selected without touching the live
// configuration. An empty id clears the selection.
func (m *Manager) SetActive(id string) bool {
	set := false
	m.store.Mutate(func(st *settings.Settings) {
		if id != "" {
			if _, ok := st.PresetManager.Presets[id]; !ok {
				return
			}
		}
		st.PresetManager.ActivePresetID = id
		set = true
	})
	return set
}

// SetDefault marks a preset as the fallback for characters without an
// association. An empty id clears the default.
func (m *Manager) SetDefault(id string) bool {
	set := false
	m.store.Mutate(func(st *settings.Settings) {
		if id != "" {
			if _, ok := st.PresetManager.Presets[id]; !ok {
				return
			}
		}
		st.PresetManager.DefaultPresetID = id
		set = true
	})
	return set
}

// ResolveFor returns the preset id that should apply to a character:
// its association if that preset still exists, else the default preset,
// else "". Dangling references are skipped silently.
func (m *Manager) ResolveFor(character string) string {
	character = strings.TrimSpace(character)
	resolved := ""
	m.store.View(func(st *settings.Settings) {
		pm := st.PresetManager
		if id, ok := pm.CharacterAssociations[character]; ok {
			if _, exists := pm.Presets[id]; exists {
				resolved = id
				return
			}
		}
		if pm.DefaultPresetID != "" {
			if _, exists := pm.Presets[pm.DefaultPresetID]; exists {
				resolved = pm.DefaultPresetID
			}
		}
	})
	return resolved
}

// ApplyFor resolves a character's preset and applies it. Returns false when
// nothing resolved; the live configuration is untouched in that case.
func (m *Manager) ApplyFor(character string) bool {
	id := m.ResolveFor(character)
	if id == "" {
		return false
	}
	return m.Apply(id)
}

// Get returns one preset's snapshot.
func (m *Manager) Get(id string) (settings.Preset, bool) {
	var out settings.Preset
	found := false
	m.store.View(func(st *settings.Settings) {
		preset, ok := st.PresetManager.Presets[id]
		if !ok {
			return
		}
		out = settings.Preset{
			Name:          preset.Name,
			TrackerConfig: preset.TrackerConfig.Clone(),
		}
		found = true
	})
	return out, found
}

// List returns all presets sorted by name, ties broken by id.
func (m *Manager) List() []Summary {
	var out []Summary
	m.store.View(func(st *settings.Settings) {
		pm := st.PresetManager
		for id, preset := range pm.Presets {
			out = append(out, Summary{
				ID:        id,
				Name:      preset.Name,
				IsActive:  id == pm.ActivePresetID,
				IsDefault: id == pm.DefaultPresetID,
			})
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Active returns the active preset id, or "" when none is active.
func (m *Manager) Active() string {
	active := ""
	m.store.View(func(st *settings.Settings) {
		if _, ok := st.PresetManager.Presets[st.PresetManager.ActivePresetID]; ok {
			active = st.PresetManager.ActivePresetID
		}
	})
	return active
}
