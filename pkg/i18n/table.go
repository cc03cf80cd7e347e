// Package i18n holds the extension's UI string tables. The host loads one
// JSON file per language (flat key -> string maps); lookups fall back from
// the selected language to English and finally to the key itself, so a
// missing translation can never blank out the UI.
package i18n

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// fallbackLanguage answers for keys the selected language is missing.
const fallbackLanguage = "en"

// Table stores loaded language maps and the current selection.
// Thread-safe for concurrent WASM callbacks.
type Table struct {
	mu      sync.RWMutex
	current string
	tables  map[string]map[string]string
}

// NewTable creates an empty table with English selected.
func NewTable() *Table {
	return &Table{
		current: fallbackLanguage,
		tables:  make(map[string]map[string]string),
	}
}

// normalizeLang folds language codes to one form: trimmed, lowercase,
// underscores to hyphens ("EN_us" -> "en-us").
func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	return strings.ReplaceAll(lang, "_", "-")
}

// Load parses a language file and stores it under lang, replacing any
// previously loaded table for that language.
func (t *Table) Load(lang string, data []byte) error {
	lang = normalizeLang(lang)
	if lang == "" {
		return fmt.Errorf("i18n: empty language code")
	}
	var msgs map[string]string
	if err := json.Unmarshal(data, &msgs); err != nil {
		return fmt.Errorf("i18n: parsing %s table: %w", lang, err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tables[lang] = msgs
	return nil
}

// SetLanguage selects the language used by T. The selection sticks even when
// no table is loaded yet (the host may load it right after); the return
// value reports whether a table for lang is already present.
func (t *Table) SetLanguage(lang string) bool {
	lang = normalizeLang(lang)
	if lang == "" {
		lang = fallbackLanguage
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = lang
	_, loaded := t.tables[lang]
	return loaded
}

// Language returns the selected language code.
func (t *Table) Language() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Languages returns the loaded language codes, sorted.
func (t *Table) Languages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.tables))
	for lang := range t.tables {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// T translates key: selected language first, then English, then the key
// itself. Empty values count as missing.
func (t *Table) T(key string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if msgs, ok := t.tables[t.current]; ok {
		if v, ok := msgs[key]; ok && v != "" {
			return v
		}
	}
	if t.current != fallbackLanguage {
		if msgs, ok := t.tables[fallbackLanguage]; ok {
			if v, ok := msgs[key]; ok && v != "" {
				return v
			}
		}
	}
	return key
}
