package settings

import "testing"

func TestDefaultSettingsShape(t *testing.T) {
	s := DefaultSettings()

	if s.SettingsVersion != CurrentSettingsVersion {
		t.Errorf("expected version %d, got %d", CurrentSettingsVersion, s.SettingsVersion)
	}
	if !s.Enabled {
		t.Error("expected extension enabled by default")
	}

	// Every widget key must have a config entry.
	for _, key := range WidgetOrder() {
		if _, ok := s.TrackerConfig.InfoBox.Widgets[key]; !ok {
			t.Errorf("missing widget config for %q", key)
		}
	}

	// Core widgets default to enabled.
	for _, key := range CoreWidgets {
		if !s.TrackerConfig.InfoBox.Widgets[key].Enabled {
			t.Errorf("core widget %q should default to enabled", key)
		}
	}

	// Maps must be initialized so host round-trips never see null.
	if s.NpcAvatars == nil || s.CharacterColors == nil {
		t.Error("roster maps must be initialized")
	}
	if s.PresetManager.Presets == nil || s.PresetManager.CharacterAssociations == nil {
		t.Error("preset manager maps must be initialized")
	}
	if s.Lorebook.Campaigns == nil || s.Lorebook.CampaignOrder == nil {
		t.Error("lorebook maps must be initialized")
	}
}

func TestDefaultSettingsDeterministic(t *testing.T) {
	a := DefaultSettings()
	b := DefaultSettings()
	if a.TrackerConfig.PresentCharacters.CustomFields[0].ID != b.TrackerConfig.PresentCharacters.CustomFields[0].ID {
		t.Error("defaults must be deterministic across calls")
	}
}

func TestLockedItemsHasAny(t *testing.T) {
	var l LockedItems
	if l.HasAny() {
		t.Error("zero value should have no locks")
	}

	l.Quests.Main = true
	if !l.HasAny() {
		t.Error("quest main lock not detected")
	}

	l = LockedItems{InfoBox: map[string]bool{"date": false}}
	if l.HasAny() {
		t.Error("false entries are not locks")
	}

	l = LockedItems{Characters: map[string]map[string]bool{"Alice": {"appearance": true}}}
	if !l.HasAny() {
		t.Error("character field lock not detected")
	}
}
