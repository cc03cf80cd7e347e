package prompt

import (
	"strings"

	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/settings"
)

// SystemPrompt pins the model to JSON-only tracker replies.
const SystemPrompt = `You are a story state tracker running alongside a roleplay chat.
After each scene, update the tracker state for quests, the info box, and every character present.
Return ONLY a valid JSON object matching the requested shape.
No markdown, no explanation. Start with { and end with }.`

// BuildTrackerPrompt assembles the complete tracker instruction: the three
// category blocks wrapped into one JSON shape, the committed state as the
// baseline to update, and the lock admonition when any lock is set.
// currentStateJSON may be empty on a fresh chat.
func BuildTrackerPrompt(s *settings.Settings, currentStateJSON string) string {
	if s == nil {
		s = new(settings.Settings)
	}

	var blocks []string
	blocks = append(blocks, BuildQuestsJSONInstruction())
	if frag := BuildInfoBoxJSONInstruction(s); frag != "" {
		blocks = append(blocks, frag)
	}
	if frag := BuildCharactersJSONInstruction(s); frag != "" {
		blocks = append(blocks, frag)
	}

	var sb strings.Builder
	sb.WriteString("Update the story tracker. Respond with a single valid JSON object of exactly this shape:\n\n{\n")
	sb.WriteString(strings.Join(blocks, ",\n"))
	sb.WriteString("\n}")

	if currentStateJSON != "" {
		sb.WriteString("\n\nCurrent tracker state (the baseline to update):\n")
		sb.WriteString(currentStateJSON)
	}

	out := sb.String()
	if s.LockedItems.HasAny() {
		out = AddLockInstruction(out)
	}
	return out
}
