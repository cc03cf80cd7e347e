// Package prompt builds the JSON-shaped tracker instruction text spliced into
// the outbound generation request. Replaces the TypeScript prompt-builder
// module. All builders are pure functions over a settings snapshot: absent or
// malformed configuration degrades to fragment omission, never an error.
package prompt

import (
	"regexp"
	"strings"
)

var (
	trailingParen = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	nonFieldChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// ToFieldKey derives the JSON key for a user-named field: strip one trailing
// parenthetical group, lowercase, collapse every run of non [a-z0-9] to a
// single underscore, trim underscores.
//
//	"Conditions (up to 5 traits)" -> "conditions"
//	"Status Effects"              -> "status_effects"
//	"  Weird!!Name__ "            -> "weird_name"
func ToFieldKey(name string) string {
	base := trailingParen.ReplaceAllString(name, "")
	base = strings.ToLower(base)
	base = nonFieldChars.ReplaceAllString(base, "_")
	return strings.Trim(base, "_")
}
