package roster

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
	"github.com/orsinium-labs/stopwords"

	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/pool"
)

// englishStop filters filler tokens out of alias derivation and discovery.
var englishStop = stopwords.MustGet("en")

// ============================================================================
// CANONICALIZER - one normal form for BOTH roster names and scanned prose
// ============================================================================

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// canonicalize folds text into the matcher's normal form and returns it
// together with a map from canonical byte positions back to byte positions
// in the original text.
//
// Rules: lowercase; letters and digits kept; apostrophes and ASCII hyphens
// kept only when flanked by word characters on both sides ("O'Brien",
// "Jean-Luc") so trailing punctuation never glues to a name; every other
// run of characters collapses to a single space; outer spaces trimmed.
// Names and prose MUST go through this same function or automaton offsets
// will not line up.
//
// The returned map is a pooled buffer: whoever keeps it hands it back with
// pool.PutOffsets once the offsets are consumed.
func canonicalize(s string) (string, []int) {
	runes := []rune(s)

	// Byte offset of every rune plus an end sentinel.
	offsets := pool.GetOffsets()
	pos := 0
	for _, r := range runes {
		offsets = append(offsets, pos)
		pos += utf8.RuneLen(r)
	}
	offsets = append(offsets, pos)

	var out strings.Builder
	out.Grow(len(s))
	mapping := pool.GetOffsets()

	lastWasSpace := true // trims leading separators
	for i, r := range runes {
		c := unicode.ToLower(r)
		// Curly apostrophes fold to straight so "Anna’s" and "Anna's" agree.
		if c == '’' || c == '‘' {
			c = '\''
		}

		keep := isWordRune(c)
		if !keep && (c == '\'' || c == '-') {
			keep = i > 0 && isWordRune(runes[i-1]) && i+1 < len(runes) && isWordRune(runes[i+1])
		}

		if keep {
			for j := 0; j < utf8.RuneLen(c); j++ {
				mapping = append(mapping, offsets[i])
			}
			out.WriteRune(c)
			lastWasSpace = false
			continue
		}
		if !lastWasSpace {
			mapping = append(mapping, offsets[i])
			out.WriteRune(' ')
			lastWasSpace = true
		}
	}

	canonical := out.String()
	if n := len(canonical); n > 0 && canonical[n-1] == ' ' {
		// The trimmed space's entry stays: it marks the exclusive end of the
		// last word, which may precede trailing punctuation.
		canonical = canonical[:n-1]
	} else {
		mapping = append(mapping, pos)
	}
	pool.PutOffsets(offsets)
	return canonical, mapping
}

// canonicalName is canonicalize without the offset map, for pattern keys.
func canonicalName(s string) string {
	c, m := canonicalize(s)
	pool.PutOffsets(m)
	return c
}

// mapOffset converts a canonical byte offset to an original byte offset.
func mapOffset(canonOffset int, mapping []int, originalLen int) int {
	if canonOffset < 0 {
		return 0
	}
	if canonOffset >= len(mapping) {
		return originalLen
	}
	return mapping[canonOffset]
}

// ============================================================================
// Matcher - Aho-Corasick over roster names
// ============================================================================

// Mention is one roster-name hit in scanned prose.
type Mention struct {
	Name  string `json:"name"`  // roster name as registered
	Start int    `json:"start"` // byte offset in the ORIGINAL text
	End   int    `json:"end"`   // byte offset (exclusive)
	Text  string `json:"text"`  // original slice, casing preserved
}

// Matcher scans prose for roster names with a single Aho-Corasick automaton
// built over the canonicalized names plus derived aliases. Compile once,
// scan per message.
type Matcher struct {
	ac *ahocorasick.Automaton

	// PatternID -> roster name as registered
	names []string

	// Canonical surface -> pattern index
	patternIndex map[string]int

	patterns []string
}

type patternEntry struct {
	owner string
	alias bool
	dead  bool // alias claimed by two roster names, dropped
}

// CompileMatcher builds a Matcher from roster names. Each name registers its
// full canonical form plus derived surfaces: a possessive, and for multiword
// names the surname and a long-enough first name. An alias wanted by two
// different roster names is dropped as ambiguous; full names always stay.
func CompileMatcher(names []string) (*Matcher, error) {
	entries := make(map[string]*patternEntry)

	add := func(key, owner string, alias bool) {
		if key == "" {
			return
		}
		e, ok := entries[key]
		if !ok {
			entries[key] = &patternEntry{owner: owner, alias: alias}
			return
		}
		if e.owner == owner {
			if !alias {
				e.alias = false
			}
			return
		}
		switch {
		case e.alias && alias:
			e.dead = true
		case e.alias && !alias:
			// A full name trumps another name's alias.
			e.owner = owner
			e.alias = false
			e.dead = false
		}
		// Full vs full: first registered wins.
	}

	for _, name := range names {
		display := strings.TrimSpace(name)
		if display == "" {
			continue
		}
		key := canonicalName(display)
		if key == "" {
			continue
		}
		add(key, display, false)
		for _, surface := range deriveSurfaces(key) {
			add(surface, display, true)
		}
	}

	m := &Matcher{patternIndex: make(map[string]int)}
	keys := make([]string, 0, len(entries))
	for key, e := range entries {
		if e.dead {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		m.patternIndex[key] = len(m.patterns)
		m.patterns = append(m.patterns, key)
		m.names = append(m.names, entries[key].owner)
	}

	if len(m.patterns) == 0 {
		return m, nil
	}

	// LeftmostLongest so "Ann Parker" beats "Ann" at the same position.
	automaton, err := ahocorasick.NewBuilder().
		AddStrings(m.patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, err
	}
	m.ac = automaton
	return m, nil
}

// deriveSurfaces returns extra canonical surfaces a reader would use for a
// name: "anna" also answers to "anna's"; "monkey d luffy" also answers to
// "luffy", "luffy's", "monkey" and "monkey luffy". Stopword tokens never
// become aliases on their own.
func deriveSurfaces(key string) []string {
	var out []string
	possessive := func(surface string) {
		if !strings.Contains(surface, " ") {
			out = append(out, surface+"'s")
		}
	}
	possessive(key)

	fields := strings.Fields(key)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if englishStop.Contains(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	if len(tokens) <= 1 {
		return out
	}

	first := tokens[0]
	last := tokens[len(tokens)-1]
	if len(last) >= 3 {
		out = append(out, last)
		possessive(last)
	}
	if len(tokens) >= 3 && first != last {
		out = append(out, first+" "+last)
	}
	if len(first) >= 4 && first != last {
		out = append(out, first)
		possessive(first)
	}
	return out
}

// Has reports whether a surface form refers to someone on the roster.
func (m *Matcher) Has(surface string) bool {
	_, exists := m.patternIndex[canonicalName(surface)]
	return exists
}

// Resolve maps a surface form to the registered roster name, or "" when the
// surface is unknown.
func (m *Matcher) Resolve(surface string) string {
	idx, exists := m.patternIndex[canonicalName(surface)]
	if !exists {
		return ""
	}
	return m.names[idx]
}

// Scan finds all roster-name mentions in text (O(n) via AC). Matches must sit
// on word boundaries in the canonical form, so "Ann" never fires inside
// "Announcement" or "Ann-Marie". Offsets are mapped back to the original
// text; overlapping hits resolve leftmost-longest.
func (m *Matcher) Scan(text string) []Mention {
	if m.ac == nil || text == "" {
		return nil
	}

	canonical, canonToOrig := canonicalize(text)
	haystack := []byte(canonical)

	type span struct {
		start, end, pattern int
	}
	var spans []span
	for _, am := range m.ac.FindAllOverlapping(haystack) {
		if am.Start > 0 && haystack[am.Start-1] != ' ' {
			continue
		}
		if am.End < len(haystack) && haystack[am.End] != ' ' {
			continue
		}
		spans = append(spans, span{am.Start, am.End, am.PatternID})
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var out []Mention
	lastEnd := -1
	for _, sp := range spans {
		if sp.start < lastEnd {
			continue
		}
		origStart := mapOffset(sp.start, canonToOrig, len(text))
		origEnd := mapOffset(sp.end, canonToOrig, len(text))
		if origStart >= len(text) || origEnd > len(text) || origStart >= origEnd {
			continue
		}
		out = append(out, Mention{
			Name:  m.names[sp.pattern],
			Start: origStart,
			End:   origEnd,
			Text:  text[origStart:origEnd],
		})
		lastEnd = sp.end
	}
	pool.PutOffsets(canonToOrig)
	return out
}
