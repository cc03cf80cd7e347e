package roster

import (
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// defaultPromotionThreshold is how many sightings a new name needs before it
// becomes a suggestion.
const defaultPromotionThreshold = 2

// Candidate is a host-facing discovery suggestion.
type Candidate struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Promoted bool   `json:"promoted"`
}

type candidateStats struct {
	count    int
	display  string // best display form seen
	promoted bool
	ignored  bool
}

// Discovery watches prose for capitalized tokens that are not on the roster
// yet. A token seen often enough is promoted to a suggestion the host UI can
// offer as a new character. Thread-safe for concurrent WASM callbacks.
type Discovery struct {
	mu        sync.Mutex
	stats     map[string]*candidateStats
	threshold int
}

// NewDiscovery creates a discovery engine. threshold <= 0 selects the
// default promotion threshold.
func NewDiscovery(threshold int) *Discovery {
	if threshold <= 0 {
		threshold = defaultPromotionThreshold
	}
	return &Discovery{
		stats:     make(map[string]*candidateStats),
		threshold: threshold,
	}
}

// Observe harvests capitalized tokens from text. Runs of adjacent
// capitalized tokens count as one multiword name ("Anna Parker"), up to
// three tokens. Stopwords, short tokens, and keys in skip are ignored.
func (d *Discovery) Observe(text string, skip map[string]bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var run []string
	flush := func() {
		if len(run) == 0 {
			return
		}
		if len(run) <= 3 {
			d.observeName(strings.Join(run, " "), skip)
		} else {
			// Long runs are usually title-case prose, not a name.
			for _, tok := range run {
				d.observeName(tok, skip)
			}
		}
		run = run[:0]
	}

	for _, field := range strings.Fields(text) {
		tok, terminal := cleanToken(field)
		if tok == "" || !isCapitalized(tok) || englishStop.Contains(strings.ToLower(tok)) {
			flush()
			continue
		}
		run = append(run, tok)
		// Punctuation after the token ends the name run.
		if terminal {
			flush()
		}
	}
	flush()
}

func (d *Discovery) observeName(display string, skip map[string]bool) {
	key := strings.ToLower(display)
	if skip[key] {
		return
	}

	stats, exists := d.stats[key]
	if !exists {
		stats = &candidateStats{display: display}
		d.stats[key] = stats
	}
	if stats.ignored {
		return
	}
	stats.count++
	if stats.count >= d.threshold {
		stats.promoted = true
	}
}

// Candidates returns every watched name, most frequent first. Ignored names
// are excluded.
func (d *Discovery) Candidates() []Candidate {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Candidate, 0, len(d.stats))
	for _, stats := range d.stats {
		if stats.ignored {
			continue
		}
		out = append(out, Candidate{
			Name:     stats.display,
			Count:    stats.count,
			Promoted: stats.promoted,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Ignore suppresses a name permanently, including future sightings.
func (d *Discovery) Ignore(name string) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	stats, exists := d.stats[key]
	if !exists {
		stats = &candidateStats{display: strings.TrimSpace(name)}
		d.stats[key] = stats
	}
	stats.ignored = true
}

// Forget drops a name from the watch list, for example after the host added
// it to the roster.
func (d *Discovery) Forget(name string) {
	key := strings.ToLower(strings.TrimSpace(name))
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.stats, key)
}

// cleanToken strips edge punctuation and a possessive suffix from a raw
// whitespace-separated field. terminal reports whether trailing punctuation
// was removed, which ends a multiword name run.
func cleanToken(raw string) (string, bool) {
	trimmed := strings.TrimFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	// Leading punctuation is harmless; trailing punctuation ends a run.
	terminal := !strings.HasSuffix(raw, trimmed)

	for _, suffix := range []string{"'s", "’s"} {
		if strings.HasSuffix(trimmed, suffix) {
			trimmed = strings.TrimSuffix(trimmed, suffix)
			terminal = true
			break
		}
	}
	if utf8.RuneCountInString(trimmed) < 2 {
		return "", terminal
	}
	return trimmed, terminal
}

func isCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
