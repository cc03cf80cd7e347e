package tracker

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ParseResponse parses a raw model reply into a tracker record. Handles
// markdown code fences, prose around the JSON object, and trailing commas.
// Unknown keys are ignored; a reply carrying a characters array instead of
// characterThoughts is folded down to name -> thought text.
func ParseResponse(raw string) (*Data, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))
	cleaned = extractObject(cleaned)
	if cleaned == "" {
		return nil, fmt.Errorf("tracker: no JSON object in response")
	}

	var reply rawReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		// Cheap repair: strip trailing commas and retry.
		repaired := trailingComma.ReplaceAllString(cleaned, "$1")
		if err2 := json.Unmarshal([]byte(repaired), &reply); err2 != nil {
			return nil, fmt.Errorf("tracker: failed to parse response: %w", err)
		}
	}

	return normalize(&reply), nil
}

// rawReply is the decode target: the record shape plus the characters array
// the instruction asks for.
type rawReply struct {
	Data
	Characters []rawCharacter `json:"characters"`
}

// rawCharacter carries the per-character template fields we fold from.
// Thoughts may be a plain string or an object of hint-keyed strings.
type rawCharacter struct {
	Name     string          `json:"name"`
	Thoughts json.RawMessage `json:"thoughts"`
}

// stripCodeFence removes markdown code block wrappers (```json ... ```).
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// extractObject cuts the outermost JSON object out of surrounding prose.
func extractObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// normalize fills nil maps, folds a characters array into characterThoughts,
// and drops unusable entries.
func normalize(reply *rawReply) *Data {
	d := &reply.Data

	if d.Quests.Optional == nil {
		d.Quests.Optional = []string{}
	}
	if d.InfoBox == nil {
		d.InfoBox = map[string]string{}
	}
	if d.CharacterThoughts == nil {
		d.CharacterThoughts = map[string]string{}
	}

	// characterThoughts given directly wins; otherwise fold the characters
	// array down to name -> thought text.
	if len(d.CharacterThoughts) == 0 {
		for _, c := range reply.Characters {
			name := strings.TrimSpace(c.Name)
			if name == "" {
				continue
			}
			if text := foldThoughts(c.Thoughts); text != "" {
				d.CharacterThoughts[name] = text
			}
		}
	}

	// Drop empty-name keys that would break the name-keyed roster join.
	for name, text := range d.CharacterThoughts {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			delete(d.CharacterThoughts, name)
			continue
		}
		if trimmed != name {
			delete(d.CharacterThoughts, name)
			d.CharacterThoughts[trimmed] = text
		}
	}

	return d
}

// foldThoughts flattens a thoughts value: a string passes through, an object
// joins its values in key order.
func foldThoughts(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err == nil {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			if v := strings.TrimSpace(obj[k]); v != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, " ")
	}

	return ""
}
