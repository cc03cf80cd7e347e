package settings

// widgetOrder is the fixed iteration order for info box widgets in both the
// UI strip and the prompt builder.
var widgetOrder = []string{
	WidgetDate,
	WidgetWeather,
	WidgetTemperature,
	WidgetTime,
	WidgetLocation,
	WidgetRecentEvents,
	WidgetMoonPhase,
	WidgetTension,
	WidgetTimeSinceRest,
	WidgetConditions,
	WidgetTerrain,
}

// WidgetOrder returns the fixed widget iteration order.
func WidgetOrder() []string {
	out := make([]string, len(widgetOrder))
	copy(out, widgetOrder)
	return out
}

// DefaultSettings returns a fully populated settings record with every map
// initialized. Deterministic: no generated ids, no timestamps.
func DefaultSettings() *Settings {
	return &Settings{
		SettingsVersion: CurrentSettingsVersion,
		Enabled:         true,
		TrackerConfig:   DefaultTrackerConfig(),
		Quests: QuestState{
			Main:     "",
			Optional: []string{},
		},
		LockedItems: LockedItems{
			InfoBox:    map[string]bool{},
			Characters: map[string]map[string]bool{},
		},
		NpcAvatars:        map[string]string{},
		KnownCharacters:   []string{},
		RemovedCharacters: []string{},
		CharacterColors:   map[string]string{},
		PresetManager: PresetManager{
			Presets:               map[string]Preset{},
			CharacterAssociations: map[string]string{},
		},
		Lorebook: Lorebook{
			Campaigns:     map[string]Campaign{},
			CampaignOrder: []string{},
		},
	}
}

// DefaultTrackerConfig returns the default tracking configuration. Presets
// reset to this when no snapshot applies.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		Quests: QuestsConfig{
			PersistInHistory: true,
		},
		InfoBox: InfoBoxConfig{
			Widgets: map[string]WidgetConfig{
				WidgetDate:          {Enabled: true, PersistInHistory: true, Format: "YYYY-MM-DD"},
				WidgetWeather:       {Enabled: true, PersistInHistory: true},
				WidgetTemperature:   {Enabled: true, PersistInHistory: true, Unit: "F"},
				WidgetTime:          {Enabled: true, PersistInHistory: true, Format: "HH:mm"},
				WidgetLocation:      {Enabled: true, PersistInHistory: true},
				WidgetRecentEvents:  {Enabled: true, PersistInHistory: true},
				WidgetMoonPhase:     {Enabled: false, PersistInHistory: false},
				WidgetTension:       {Enabled: false, PersistInHistory: false},
				WidgetTimeSinceRest: {Enabled: false, PersistInHistory: false},
				WidgetConditions:    {Enabled: false, PersistInHistory: false},
				WidgetTerrain:       {Enabled: false, PersistInHistory: false},
			},
		},
		PresentCharacters: PresentCharactersConfig{
			CustomFields: []CustomField{
				{ID: "appearance", Name: "Appearance", Enabled: true, Description: "Physical appearance, clothing, and notable features", PersistInHistory: true},
				{ID: "mood", Name: "Mood", Enabled: true, Description: "Current emotional state", PersistInHistory: true},
				{ID: "activity", Name: "Activity", Enabled: true, Description: "What they are currently doing", PersistInHistory: true},
				{ID: "conditions", Name: "Conditions (up to 5 traits)", Enabled: false, Description: "Short-lived conditions affecting them", PersistInHistory: false},
			},
			Relationships: RelationshipsConfig{
				Enabled: true,
				Fields:  []string{"Stranger", "Acquaintance", "Friend", "Close Friend", "Lover", "Enemy"},
				Emojis: map[string]string{
					"Stranger":     "❓",
					"Acquaintance": "🙂",
					"Friend":       "😊",
					"Close Friend": "🤗",
					"Lover":        "❤️",
					"Enemy":        "⚔️",
				},
			},
			Thoughts: ThoughtsConfig{
				Enabled:     true,
				Name:        "Thoughts",
				Description: "Current private thoughts in first person",
			},
			CharacterStats: CharacterStatsConfig{
				Enabled: false,
				Stats: []StatField{
					{ID: "health", Name: "Health", Enabled: true},
					{ID: "stamina", Name: "Stamina", Enabled: true},
					{ID: "mana", Name: "Mana", Enabled: false},
				},
			},
		},
	}
}
