package prompt

import (
	"strings"
	"testing"
)

func TestAddLockInstructionVerbatimAppend(t *testing.T) {
	base := `"quests": {}`
	out := AddLockInstruction(base)
	if out != base+LockInstruction {
		t.Errorf("expected verbatim append, got:\n%s", out)
	}
}

func TestAddLockInstructionNoDedup(t *testing.T) {
	// Pure concatenation: applying twice appends twice.
	out := AddLockInstruction(AddLockInstruction("x"))
	if got := strings.Count(out, LockInstruction); got != 2 {
		t.Errorf("expected admonition twice, found %d", got)
	}
}

func TestAddLockInstructionEmptyBase(t *testing.T) {
	if AddLockInstruction("") != LockInstruction {
		t.Error("empty base should yield the admonition alone")
	}
}
