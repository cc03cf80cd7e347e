package prompt

// LockInstruction is the fixed admonition appended when any tracker item is
// locked.
const LockInstruction = "\nSome items in the current tracker state are marked with \"locked\": true. Keep every locked item exactly as provided; do not alter, rephrase, or remove it. Omit the \"locked\" marker entirely for items that are not locked."

// AddLockInstruction appends the lock admonition to text. Pure concatenation
// with no deduplication: applying it twice appends the admonition twice.
func AddLockInstruction(text string) string {
	return text + LockInstruction
}
