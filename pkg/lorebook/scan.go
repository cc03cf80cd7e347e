package lorebook

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
	"github.com/orsinium-labs/stopwords"
)

// englishStop filters filler words out of keyword suggestions.
var englishStop = stopwords.MustGet("en")

// maxKeywordSuggestions caps SuggestKeywords output.
const maxKeywordSuggestions = 8

// foldText lowercases text and collapses every non-alphanumeric run to a
// single space. Keywords and scanned prose both go through this, so matches
// are case- and punctuation-insensitive.
func foldText(s string) string {
	var out strings.Builder
	out.Grow(len(s))
	lastWasSpace := true
	for _, r := range s {
		c := unicode.ToLower(r)
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			out.WriteRune(c)
			lastWasSpace = false
			continue
		}
		if !lastWasSpace {
			out.WriteRune(' ')
			lastWasSpace = true
		}
	}
	result := out.String()
	if n := len(result); n > 0 && result[n-1] == ' ' {
		result = result[:n-1]
	}
	return result
}

// ScanActivations returns the ids of every campaign with at least one
// keyword appearing in text, in display order. Keywords match whole words
// only, so "ash" does not activate on "flashback".
func (r *Registry) ScanActivations(text string) []string {
	campaigns := r.Campaigns()
	if len(campaigns) == 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	var patterns []string
	var owners [][]string
	index := make(map[string]int)
	for _, campaign := range campaigns {
		for _, kw := range campaign.Keywords {
			key := foldText(kw)
			if key == "" {
				continue
			}
			if idx, ok := index[key]; ok {
				owners[idx] = append(owners[idx], campaign.ID)
				continue
			}
			index[key] = len(patterns)
			patterns = append(patterns, key)
			owners = append(owners, []string{campaign.ID})
		}
	}
	if len(patterns) == 0 {
		return nil
	}

	automaton, err := ahocorasick.NewBuilder().
		AddStrings(patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		fmt.Printf("[DoomsCore] Failed to build lorebook keyword automaton: %v\n", err)
		return nil
	}

	haystack := []byte(foldText(text))
	hit := make(map[string]bool)
	for _, m := range automaton.FindAllOverlapping(haystack) {
		if m.Start > 0 && haystack[m.Start-1] != ' ' {
			continue
		}
		if m.End < len(haystack) && haystack[m.End] != ' ' {
			continue
		}
		for _, id := range owners[m.PatternID] {
			hit[id] = true
		}
	}
	if len(hit) == 0 {
		return nil
	}

	out := make([]string, 0, len(hit))
	for _, campaign := range campaigns {
		if hit[campaign.ID] {
			out = append(out, campaign.ID)
		}
	}
	return out
}

// SuggestKeywords proposes activation keywords for a campaign from a text
// sample: frequent, distinctive words not already on the keyword list.
// The host shows these in the campaign editor; nothing is added here.
func (r *Registry) SuggestKeywords(id, text string) []string {
	campaign, ok := r.Get(id)
	if !ok {
		return nil
	}
	existing := make(map[string]bool, len(campaign.Keywords))
	for _, kw := range campaign.Keywords {
		existing[foldText(kw)] = true
	}

	counts := make(map[string]int)
	display := make(map[string]string)
	for _, field := range strings.Fields(text) {
		word := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		key := foldText(word)
		if key == "" || strings.Contains(key, " ") {
			continue
		}
		if utf8.RuneCountInString(key) < 4 {
			continue
		}
		if englishStop.Contains(key) || existing[key] {
			continue
		}
		if _, seen := display[key]; !seen {
			display[key] = word
		}
		counts[key]++
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > maxKeywordSuggestions {
		keys = keys[:maxKeywordSuggestions]
	}

	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, display[key])
	}
	return out
}
