package tracker

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/internal/store"
)

// journalKeep bounds the per-chat generation journal.
const journalKeep = 50

// State holds the process-wide generated and committed records. The host
// event loop is the single logical writer; the mutex makes concurrent WASM
// callbacks safe anyway.
type State struct {
	mu                 sync.RWMutex
	generated          *Data
	committed          *Data
	lastActionWasSwipe bool
	lastGenerationID   string
	store              store.Storer
}

// NewState creates tracker state backed by the given store. The store may be
// nil; lifecycle methods then skip persistence.
func NewState(s store.Storer) *State {
	return &State{
		generated: NewData(),
		committed: NewData(),
		store:     s,
	}
}

// Generated returns a deep copy of the generated record.
func (t *State) Generated() *Data {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.generated.Clone()
}

// Committed returns a deep copy of the committed record.
func (t *State) Committed() *Data {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.committed.Clone()
}

// SetGenerated replaces the generated record. No validation.
func (t *State) SetGenerated(d *Data) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if d == nil {
		d = NewData()
	}
	t.generated = d
}

// SetCommitted replaces the committed record. No validation.
func (t *State) SetCommitted(d *Data) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if d == nil {
		d = NewData()
	}
	t.committed = d
}

// UpdateGenerated shallow-merges top-level keys into the generated record.
// Nested objects in partial fully replace the stored ones, the same contract
// as settings updates.
func (t *State) UpdateGenerated(partial map[string]json.RawMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	merged, err := shallowMergeData(t.generated, partial)
	if err != nil {
		return fmt.Errorf("updating generated data: %w", err)
	}
	t.generated = merged
	return nil
}

// UpdateCommitted shallow-merges top-level keys into the committed record.
func (t *State) UpdateCommitted(partial map[string]json.RawMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	merged, err := shallowMergeData(t.committed, partial)
	if err != nil {
		return fmt.Errorf("updating committed data: %w", err)
	}
	t.committed = merged
	return nil
}

// LastActionWasSwipe reports whether the most recent lifecycle action was a
// swipe. The host reads this to badge uncommitted tracker state.
func (t *State) LastActionWasSwipe() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastActionWasSwipe
}

// OnSwipe records a swipe/regeneration. Committed data is never touched: the
// swiped-in reply only overwrites the generated record once parsed.
func (t *State) OnSwipe() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastActionWasSwipe = true
}

// OnMessageSent is the explicit commit action: the generated record becomes
// the committed baseline, the snapshot is persisted for the chat, and the
// swipe flag clears.
func (t *State) OnMessageSent(chatID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastActionWasSwipe = false
	t.committed = t.generated.Clone()

	if t.store == nil {
		return nil
	}

	raw, err := json.Marshal(t.committed)
	if err != nil {
		return fmt.Errorf("encoding committed data: %w", err)
	}
	if err := t.store.SetChatMeta(chatID, store.MetaNamespace, string(raw)); err != nil {
		return fmt.Errorf("persisting committed data: %w", err)
	}
	if t.lastGenerationID != "" {
		if err := t.store.MarkCommitted(t.lastGenerationID); err != nil {
			return fmt.Errorf("marking generation committed: %w", err)
		}
	}
	return nil
}

// OnChatLoad restores the committed baseline for a chat. An absent snapshot
// resets to the zero record; corrupt snapshots do too, silently.
func (t *State) OnChatLoad(chatID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.generated = NewData()
	t.committed = NewData()
	t.lastActionWasSwipe = false
	t.lastGenerationID = ""

	if t.store == nil {
		return nil
	}

	meta, err := t.store.ChatMeta(chatID, store.MetaNamespace)
	if err != nil {
		return fmt.Errorf("loading committed data: %w", err)
	}
	if meta == nil {
		return nil
	}

	restored := new(Data)
	if err := json.Unmarshal([]byte(meta.Value), restored); err != nil {
		fmt.Printf("[DoomsCore] Discarding corrupt tracker snapshot for chat %s: %v\n", chatID, err)
		return nil
	}
	t.committed = restored
	return nil
}

// ParseAndStore parses a raw model reply into the generated record and
// journals it. Committed data is untouched; on parse failure the generated
// record keeps its previous value.
func (t *State) ParseAndStore(chatID, raw string) (*Data, error) {
	parsed, err := ParseResponse(raw)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.generated = parsed

	if t.store == nil {
		return parsed.Clone(), nil
	}

	parsedJSON, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("encoding parsed data: %w", err)
	}
	entry := &store.GenerationEntry{
		ID:     generateID(),
		ChatID: chatID,
		Raw:    raw,
		Parsed: string(parsedJSON),
	}
	if err := t.store.LogGeneration(entry); err != nil {
		return nil, fmt.Errorf("journaling generation: %w", err)
	}
	t.lastGenerationID = entry.ID
	if err := t.store.PruneGenerations(chatID, journalKeep); err != nil {
		return nil, fmt.Errorf("pruning journal: %w", err)
	}
	return parsed.Clone(), nil
}

// shallowMergeData overlays partial's top-level keys and decodes into a fresh
// record, so replaced sub-objects carry only what the partial supplied.
func shallowMergeData(current *Data, partial map[string]json.RawMessage) (*Data, error) {
	raw, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("encoding current record: %w", err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("decoding current record: %w", err)
	}
	for k, v := range partial {
		top[k] = v
	}
	merged, err := json.Marshal(top)
	if err != nil {
		return nil, fmt.Errorf("encoding merged record: %w", err)
	}
	next := new(Data)
	if err := json.Unmarshal(merged, next); err != nil {
		return nil, fmt.Errorf("decoding merged record: %w", err)
	}
	return next, nil
}

func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
