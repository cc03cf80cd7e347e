package prompt

import (
	"fmt"
	"strings"

	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/settings"
)

// questsInstruction is the quest block of the tracker instruction. Quests
// have no per-field toggles, so the template is a constant.
const questsInstruction = `"quests": {
    "main": "The active main quest objective, or an empty string if none",
    "optional": ["Each currently active optional quest objective as its own string"]
}`

// infoBoxFieldOrder is the visible field list of the info box instruction.
// temperature is absent: its enabled flag gates only the UI strip, never a
// prompt fragment. Its unit parameterizes the weather hint instead.
var infoBoxFieldOrder = []string{
	settings.WidgetDate,
	settings.WidgetWeather,
	settings.WidgetTime,
	settings.WidgetLocation,
	settings.WidgetRecentEvents,
	settings.WidgetMoonPhase,
	settings.WidgetTension,
	settings.WidgetTimeSinceRest,
	settings.WidgetConditions,
	settings.WidgetTerrain,
}

// BuildQuestsJSONInstruction returns the quest tracker block. Deterministic
// and independent of settings.
func BuildQuestsJSONInstruction() string {
	return questsInstruction
}

// BuildInfoBoxJSONInstruction returns the info box block for the enabled
// widget set. The four core widgets (date, time, location, recentEvents) are
// forced enabled on a read-time view; the stored record is never corrected.
func BuildInfoBoxJSONInstruction(s *settings.Settings) string {
	if s == nil {
		s = new(settings.Settings)
	}
	widgets := infoBoxView(s)

	var frags []string
	for _, key := range infoBoxFieldOrder {
		cfg, ok := widgets[key]
		if !ok || !cfg.Enabled {
			continue
		}
		frags = append(frags, fmt.Sprintf("    %q: %q", key, widgetHint(key, widgets)))
	}
	if len(frags) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\"infoBox\": {\n")
	sb.WriteString(strings.Join(frags, ",\n"))
	sb.WriteString("\n}")
	return sb.String()
}

// infoBoxView copies the widget map and forces the core widgets enabled,
// creating entries for core keys the stored map lacks.
func infoBoxView(s *settings.Settings) map[string]settings.WidgetConfig {
	view := make(map[string]settings.WidgetConfig, len(s.TrackerConfig.InfoBox.Widgets)+len(settings.CoreWidgets))
	for k, v := range s.TrackerConfig.InfoBox.Widgets {
		view[k] = v
	}
	for _, key := range settings.CoreWidgets {
		cfg := view[key]
		cfg.Enabled = true
		view[key] = cfg
	}
	return view
}

// widgetHint returns the instruction text for one widget key. The weather
// hint embeds the temperature widget's unit.
func widgetHint(key string, widgets map[string]settings.WidgetConfig) string {
	switch key {
	case settings.WidgetDate:
		format := widgets[key].Format
		if format == "" {
			format = "YYYY-MM-DD"
		}
		return "Current in-story date (format: " + format + ")"
	case settings.WidgetWeather:
		unit := widgets[settings.WidgetTemperature].Unit
		if unit == "" {
			unit = "F"
		}
		return "Current weather conditions with temperature in °" + unit
	case settings.WidgetTime:
		if f := widgets[key].Format; f != "" {
			return "Current in-story time (format: " + f + ")"
		}
		return "Current in-story time of day"
	case settings.WidgetLocation:
		return "Current location and immediate surroundings"
	case settings.WidgetRecentEvents:
		return "One or two sentences summarizing the most recent story events"
	case settings.WidgetMoonPhase:
		return "Current moon phase"
	case settings.WidgetTension:
		return "Scene tension (one of: Calm, Uneasy, Tense, Critical)"
	case settings.WidgetTimeSinceRest:
		return "Time elapsed since the characters last rested"
	case settings.WidgetConditions:
		return "Environmental conditions currently affecting the scene"
	case settings.WidgetTerrain:
		return "Terrain of the current area"
	}
	return ""
}

// BuildCharactersJSONInstruction returns the per-character template block.
// The model repeats the template once per character present in the scene.
// Fixed fields name and emoji always appear; details, relationship, stats and
// thoughts appear in that order when their configuration enables them.
func BuildCharactersJSONInstruction(s *settings.Settings) string {
	if s == nil {
		s = new(settings.Settings)
	}

	inner := []string{
		`    "name": "The character's display name"`,
		`    "emoji": "A single emoji capturing their current state"`,
	}
	if frag := detailsFragment(s); frag != "" {
		inner = append(inner, frag)
	}
	if frag := relationshipFragment(s); frag != "" {
		inner = append(inner, frag)
	}
	if frag := statsFragment(s); frag != "" {
		inner = append(inner, frag)
	}
	if frag := thoughtsFragment(s); frag != "" {
		inner = append(inner, frag)
	}

	var sb strings.Builder
	sb.WriteString("\"characters\": [\n  {\n")
	sb.WriteString(strings.Join(inner, ",\n"))
	sb.WriteString("\n  }\n]")
	return sb.String()
}

// detailsFragment builds the details object from the ordered enabled custom
// fields. Fields whose derived key is empty are skipped.
func detailsFragment(s *settings.Settings) string {
	var lines []string
	for _, f := range s.TrackerConfig.PresentCharacters.CustomFields {
		if !f.Enabled {
			continue
		}
		key := ToFieldKey(f.Name)
		if key == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("      %q: %q", key, f.Description))
	}
	if len(lines) == 0 {
		return ""
	}
	return "    \"details\": {\n" + strings.Join(lines, ",\n") + "\n    }"
}

// relationshipFragment lists the configured label set as an enumerated
// choice. No labels means nothing to enumerate, so the object is omitted.
func relationshipFragment(s *settings.Settings) string {
	rel := s.TrackerConfig.PresentCharacters.Relationships
	if !rel.Enabled || len(rel.Fields) == 0 {
		return ""
	}
	return fmt.Sprintf(`    "relationship": { "status": "(choose one: %s)" }`, strings.Join(rel.Fields, "/"))
}

// statsFragment builds the stats array from the enabled stat definitions.
func statsFragment(s *settings.Settings) string {
	cs := s.TrackerConfig.PresentCharacters.CharacterStats
	if !cs.Enabled {
		return ""
	}
	var lines []string
	for _, st := range cs.Stats {
		if !st.Enabled || strings.TrimSpace(st.Name) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf(`      { "name": %q, "value": "Current %s from 0-100" }`, st.Name, st.Name))
	}
	if len(lines) == 0 {
		return ""
	}
	return "    \"stats\": [\n" + strings.Join(lines, ",\n") + "\n    ]"
}

// thoughtsFragment builds the thoughts object keyed by the configured panel
// name.
func thoughtsFragment(s *settings.Settings) string {
	th := s.TrackerConfig.PresentCharacters.Thoughts
	if !th.Enabled {
		return ""
	}
	key := ToFieldKey(th.Name)
	if key == "" {
		key = "thoughts"
	}
	desc := th.Description
	if desc == "" {
		desc = "Current private thoughts in first person"
	}
	return fmt.Sprintf("    \"thoughts\": {\n      %q: %q\n    }", key, desc)
}
