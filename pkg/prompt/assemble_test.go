package prompt

import (
	"strings"
	"testing"

	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/settings"
)

func TestBuildTrackerPromptContainsAllBlocks(t *testing.T) {
	out := BuildTrackerPrompt(settings.DefaultSettings(), "")
	for _, key := range []string{`"quests"`, `"infoBox"`, `"characters"`} {
		if !strings.Contains(out, key) {
			t.Errorf("assembled prompt missing %s block:\n%s", key, out)
		}
	}
	if strings.Contains(out, LockInstruction) {
		t.Error("lock admonition should be absent when nothing is locked")
	}
}

func TestBuildTrackerPromptEmbedsCurrentState(t *testing.T) {
	state := `{"quests":{"main":"Find the amulet","optional":[]}}`
	out := BuildTrackerPrompt(settings.DefaultSettings(), state)
	if !strings.Contains(out, state) {
		t.Errorf("committed state missing from prompt:\n%s", out)
	}
}

func TestBuildTrackerPromptAppendsLockAdmonition(t *testing.T) {
	s := settings.DefaultSettings()
	s.LockedItems.Quests.Main = true

	out := BuildTrackerPrompt(s, "")
	if !strings.HasSuffix(out, LockInstruction) {
		t.Errorf("lock admonition should terminate the prompt when locks are set:\n%s", out)
	}
}

func TestBuildTrackerPromptNilSettings(t *testing.T) {
	out := BuildTrackerPrompt(nil, "")
	if !strings.Contains(out, `"quests"`) {
		t.Errorf("nil settings should still produce the quest block:\n%s", out)
	}
}
