// Package settings defines the persisted configuration schema for the tracker
// extension and its controlled mutation entry points.
// This is the Go representation of the extensionSettings object the TypeScript
// host loads at startup and saves back on change.
package settings

// CurrentSettingsVersion is stamped into new settings records. It gates
// future migrations; no migration routine reads it yet.
const CurrentSettingsVersion = 3

// Widget keys understood by the info box. The prompt builder iterates these
// in a fixed order; unknown keys in the widget map produce no prompt fragment.
const (
	WidgetDate          = "date"
	WidgetWeather       = "weather"
	WidgetTemperature   = "temperature"
	WidgetTime          = "time"
	WidgetLocation      = "location"
	WidgetRecentEvents  = "recentEvents"
	WidgetMoonPhase     = "moonPhase"
	WidgetTension       = "tension"
	WidgetTimeSinceRest = "timeSinceRest"
	WidgetConditions    = "conditions"
	WidgetTerrain       = "terrain"
)

// CoreWidgets are always treated as enabled when building prompt text,
// regardless of their stored enabled value. The correction is applied to a
// read-time view only and is never written back.
var CoreWidgets = []string{WidgetDate, WidgetTime, WidgetLocation, WidgetRecentEvents}

// Settings is the root of the persisted configuration record.
// JSON tags are camelCase to match the host-side object field for field.
type Settings struct {
	SettingsVersion   int               `json:"settingsVersion"`
	Enabled           bool              `json:"enabled"`
	TrackerConfig     TrackerConfig     `json:"trackerConfig"`
	Quests            QuestState        `json:"quests"`
	LockedItems       LockedItems       `json:"lockedItems"`
	NpcAvatars        map[string]string `json:"npcAvatars"`
	KnownCharacters   []string          `json:"knownCharacters"`
	RemovedCharacters []string          `json:"removedCharacters"`
	CharacterColors   map[string]string `json:"characterColors"`
	PresetManager     PresetManager     `json:"presetManager"`
	Lorebook          Lorebook          `json:"lorebook"`
}

// TrackerConfig holds the per-feature tracking configuration. Presets
// snapshot and restore this sub-tree as a unit.
type TrackerConfig struct {
	Quests            QuestsConfig            `json:"quests"`
	InfoBox           InfoBoxConfig           `json:"infoBox"`
	PresentCharacters PresentCharactersConfig `json:"presentCharacters"`
}

// QuestsConfig configures the quest tracker.
type QuestsConfig struct {
	PersistInHistory bool `json:"persistInHistory"`
}

// InfoBoxConfig configures the info box widget strip.
type InfoBoxConfig struct {
	Widgets map[string]WidgetConfig `json:"widgets"`
}

// WidgetConfig is the per-widget state. Format applies to date/time style
// widgets; Unit applies to temperature.
type WidgetConfig struct {
	Enabled          bool   `json:"enabled"`
	PersistInHistory bool   `json:"persistInHistory"`
	Format           string `json:"format,omitempty"`
	Unit             string `json:"unit,omitempty"`
}

// PresentCharactersConfig configures the per-character tracker panel.
// Name and emoji are fixed fields; everything else is user-configurable.
type PresentCharactersConfig struct {
	CustomFields   []CustomField        `json:"customFields"`
	Relationships  RelationshipsConfig  `json:"relationships"`
	Thoughts       ThoughtsConfig       `json:"thoughts"`
	CharacterStats CharacterStatsConfig `json:"characterStats"`
}

// CustomField is one user-defined character detail field. Order in the slice
// is display and prompt order.
type CustomField struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Enabled          bool   `json:"enabled"`
	Description      string `json:"description"`
	PersistInHistory bool   `json:"persistInHistory"`
}

// RelationshipsConfig configures the relationship field: an ordered label set
// plus a label-to-emoji mapping used by the UI strip.
type RelationshipsConfig struct {
	Enabled bool              `json:"enabled"`
	Fields  []string          `json:"fields"`
	Emojis  map[string]string `json:"emojis"`
}

// ThoughtsConfig configures the character thoughts panel.
type ThoughtsConfig struct {
	Enabled     bool   `json:"enabled"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CharacterStatsConfig configures the character stat bars.
type CharacterStatsConfig struct {
	Enabled bool        `json:"enabled"`
	Stats   []StatField `json:"stats"`
}

// StatField is one stat definition.
type StatField struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// QuestState is the runtime quest state. The same shape appears in the
// generated tracker data.
type QuestState struct {
	Main     string   `json:"main"`
	Optional []string `json:"optional"`
}

// LockedItems mirrors the generated-data shape with booleans marking fields
// the model must not alter on the next generation pass. Characters is keyed
// by character display name, then by field key.
type LockedItems struct {
	Quests     QuestLocks                 `json:"quests"`
	InfoBox    map[string]bool            `json:"infoBox"`
	Characters map[string]map[string]bool `json:"characters"`
}

// QuestLocks marks quest fields as locked.
type QuestLocks struct {
	Main     bool `json:"main"`
	Optional bool `json:"optional"`
}

// HasAny reports whether any lock is set anywhere in the record.
func (l *LockedItems) HasAny() bool {
	if l == nil {
		return false
	}
	if l.Quests.Main || l.Quests.Optional {
		return true
	}
	for _, v := range l.InfoBox {
		if v {
			return true
		}
	}
	for _, fields := range l.Characters {
		for _, v := range fields {
			if v {
				return true
			}
		}
	}
	return false
}

// PresetManager holds named trackerConfig snapshots and their character
// associations. Associations bind an entity key (character or group identity)
// to a preset id independent of the active one.
type PresetManager struct {
	Presets               map[string]Preset `json:"presets"`
	CharacterAssociations map[string]string `json:"characterAssociations"`
	ActivePresetID        string            `json:"activePresetId"`
	DefaultPresetID       string            `json:"defaultPresetId"`
}

// Preset is a named snapshot of TrackerConfig.
type Preset struct {
	Name          string        `json:"name"`
	TrackerConfig TrackerConfig `json:"trackerConfig"`
}

// Lorebook groups lorebook files into campaigns. Purely organizational; the
// files themselves are owned by the host.
type Lorebook struct {
	Campaigns     map[string]Campaign `json:"campaigns"`
	CampaignOrder []string            `json:"campaignOrder"`
}

// Campaign is one UUID-keyed grouping of lorebook files.
type Campaign struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Icon     string   `json:"icon"`
	Color    string   `json:"color"`
	Books    []string `json:"books"`
	Keywords []string `json:"keywords"`
}
