package store

import (
	"testing"
)

func TestChatMetaUpsert(t *testing.T) {
	s, err := NewSQLiteStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	if err := s.SetChatMeta("chat1", MetaNamespace, `{"quests":{}}`); err != nil {
		t.Fatalf("Failed to set chat meta: %v", err)
	}

	m, err := s.ChatMeta("chat1", MetaNamespace)
	if err != nil {
		t.Fatalf("Failed to get chat meta: %v", err)
	}
	if m == nil {
		t.Fatal("Expected chat meta, got nil")
	}
	if m.Value != `{"quests":{}}` {
		t.Errorf("Expected stored value, got %q", m.Value)
	}

	// Upsert replaces the value for the same key.
	if err := s.SetChatMeta("chat1", MetaNamespace, `{"quests":{"main":"x"}}`); err != nil {
		t.Fatalf("Failed to upsert chat meta: %v", err)
	}
	m, err = s.ChatMeta("chat1", MetaNamespace)
	if err != nil {
		t.Fatalf("Failed to re-get chat meta: %v", err)
	}
	if m.Value != `{"quests":{"main":"x"}}` {
		t.Errorf("Expected upserted value, got %q", m.Value)
	}
}

func TestChatMetaAbsentIsNil(t *testing.T) {
	s, err := NewSQLiteStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	m, err := s.ChatMeta("nope", "missing")
	if err != nil {
		t.Fatalf("Absent key should not error: %v", err)
	}
	if m != nil {
		t.Errorf("Expected nil for absent key, got %+v", m)
	}
}

func TestChatMetaDeleteAndList(t *testing.T) {
	s, err := NewSQLiteStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	if err := s.SetChatMeta("chat1", "a", "1"); err != nil {
		t.Fatalf("Failed to set meta: %v", err)
	}
	if err := s.SetChatMeta("chat1", "b", "2"); err != nil {
		t.Fatalf("Failed to set meta: %v", err)
	}
	if err := s.SetChatMeta("chat2", "a", "3"); err != nil {
		t.Fatalf("Failed to set meta: %v", err)
	}

	metas, err := s.ListChatMeta("chat1")
	if err != nil {
		t.Fatalf("Failed to list meta: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("Expected 2 rows for chat1, got %d", len(metas))
	}

	if err := s.DeleteChatMeta("chat1", "a"); err != nil {
		t.Fatalf("Failed to delete meta: %v", err)
	}
	metas, err = s.ListChatMeta("chat1")
	if err != nil {
		t.Fatalf("Failed to re-list meta: %v", err)
	}
	if len(metas) != 1 || metas[0].Key != "b" {
		t.Errorf("Expected only key b to remain, got %+v", metas)
	}
}

func TestGenerationJournal(t *testing.T) {
	s, err := NewSQLiteStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	entries := []*GenerationEntry{
		{ID: "g1", ChatID: "chat1", Raw: "raw1", Parsed: `{"a":1}`, CreatedAt: 100},
		{ID: "g2", ChatID: "chat1", Raw: "raw2", Parsed: `{"a":2}`, CreatedAt: 200},
		{ID: "g3", ChatID: "chat2", Raw: "raw3", Parsed: `{"a":3}`, CreatedAt: 300},
	}
	for _, e := range entries {
		if err := s.LogGeneration(e); err != nil {
			t.Fatalf("Failed to log generation %s: %v", e.ID, err)
		}
	}

	got, err := s.Generations("chat1", 0)
	if err != nil {
		t.Fatalf("Failed to list generations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries for chat1, got %d", len(got))
	}
	if got[0].ID != "g2" {
		t.Errorf("Expected newest first, got %s", got[0].ID)
	}

	limited, err := s.Generations("chat1", 1)
	if err != nil {
		t.Fatalf("Failed to list limited generations: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "g2" {
		t.Errorf("Expected newest single entry, got %+v", limited)
	}

	if err := s.MarkCommitted("g2"); err != nil {
		t.Fatalf("Failed to mark committed: %v", err)
	}
	e, err := s.GetGeneration("g2")
	if err != nil {
		t.Fatalf("Failed to get generation: %v", err)
	}
	if e == nil || !e.Committed {
		t.Errorf("Expected g2 committed, got %+v", e)
	}

	// Absent id resolves to nil, not an error.
	e, err = s.GetGeneration("missing")
	if err != nil {
		t.Fatalf("Absent generation should not error: %v", err)
	}
	if e != nil {
		t.Errorf("Expected nil for absent generation, got %+v", e)
	}
}

func TestPruneGenerations(t *testing.T) {
	s, err := NewSQLiteStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	for i, id := range []string{"g1", "g2", "g3", "g4"} {
		e := &GenerationEntry{ID: id, ChatID: "chat1", Raw: "r", CreatedAt: int64(100 * (i + 1))}
		if err := s.LogGeneration(e); err != nil {
			t.Fatalf("Failed to log generation: %v", err)
		}
	}

	if err := s.PruneGenerations("chat1", 2); err != nil {
		t.Fatalf("Failed to prune: %v", err)
	}

	got, err := s.Generations("chat1", 0)
	if err != nil {
		t.Fatalf("Failed to list after prune: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries after prune, got %d", len(got))
	}
	if got[0].ID != "g4" || got[1].ID != "g3" {
		t.Errorf("Prune should keep the newest entries, got %+v", got)
	}

	if err := s.PruneGenerations("chat1", 0); err != nil {
		t.Fatalf("Failed to prune all: %v", err)
	}
	got, err = s.Generations("chat1", 0)
	if err != nil {
		t.Fatalf("Failed to list after full prune: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty journal, got %d entries", len(got))
	}
}

func TestExportImport(t *testing.T) {
	s, err := NewSQLiteStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	if err := s.SetChatMeta("chat1", MetaNamespace, `{"quests":{"main":"Find the amulet"}}`); err != nil {
		t.Fatalf("Failed to set chat meta: %v", err)
	}
	if err := s.LogGeneration(&GenerationEntry{ID: "g1", ChatID: "chat1", Raw: "raw", Parsed: `{}`, Committed: true, CreatedAt: 100}); err != nil {
		t.Fatalf("Failed to log generation: %v", err)
	}

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Exported data is empty")
	}

	// A fresh store simulates an extension reload.
	s2, err := NewSQLiteStore()
	if err != nil {
		t.Fatalf("Failed to create second store: %v", err)
	}
	defer s2.Close()

	if err := s2.Import(data); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	m, err := s2.ChatMeta("chat1", MetaNamespace)
	if err != nil {
		t.Fatalf("Failed to get imported meta: %v", err)
	}
	if m == nil || m.Value != `{"quests":{"main":"Find the amulet"}}` {
		t.Errorf("Imported meta mismatch: %+v", m)
	}

	e, err := s2.GetGeneration("g1")
	if err != nil {
		t.Fatalf("Failed to get imported generation: %v", err)
	}
	if e == nil || !e.Committed || e.Raw != "raw" {
		t.Errorf("Imported generation mismatch: %+v", e)
	}
}

func TestImportEmptyIsNoop(t *testing.T) {
	s, err := NewSQLiteStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	if err := s.SetChatMeta("chat1", "k", "v"); err != nil {
		t.Fatalf("Failed to set meta: %v", err)
	}
	if err := s.Import(nil); err != nil {
		t.Fatalf("Empty import should be a no-op: %v", err)
	}

	m, err := s.ChatMeta("chat1", "k")
	if err != nil {
		t.Fatalf("Failed to get meta: %v", err)
	}
	if m == nil {
		t.Error("Existing data should survive an empty import")
	}
}
