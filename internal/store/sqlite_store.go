package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// SQLiteStore is the SQLite-backed data store.
// Thread-safe for concurrent WASM callbacks.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// schema defines the chat-metadata and generation-journal tables.
const schema = `
-- Chat metadata: per-chat key-value scratch space
CREATE TABLE IF NOT EXISTS chat_metadata (
    chat_id TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL,
    PRIMARY KEY (chat_id, key)
);

CREATE INDEX IF NOT EXISTS idx_chat_metadata_chat ON chat_metadata(chat_id);

-- Generation journal: one row per parsed model reply
CREATE TABLE IF NOT EXISTS generation_log (
    id TEXT PRIMARY KEY,
    chat_id TEXT NOT NULL,
    raw TEXT NOT NULL,
    parsed TEXT,
    committed INTEGER DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_generation_log_chat ON generation_log(chat_id, created_at);
`

// NewSQLiteStore creates a new in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a store with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// Chat metadata
// =============================================================================

// SetChatMeta upserts one key-value pair for a chat.
func (s *SQLiteStore) SetChatMeta(chatID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO chat_metadata (chat_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(chat_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, chatID, key, value, time.Now().UnixMilli())

	return err
}

// ChatMeta retrieves one key-value pair for a chat. Returns nil when the key
// is absent.
func (s *SQLiteStore) ChatMeta(chatID, key string) (*ChatMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var m ChatMeta
	err := s.db.QueryRow(`
		SELECT chat_id, key, value, updated_at
		FROM chat_metadata WHERE chat_id = ? AND key = ?
	`, chatID, key).Scan(&m.ChatID, &m.Key, &m.Value, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteChatMeta removes one key-value pair for a chat.
func (s *SQLiteStore) DeleteChatMeta(chatID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM chat_metadata WHERE chat_id = ? AND key = ?`, chatID, key)
	return err
}

// ListChatMeta returns all key-value pairs for a chat.
func (s *SQLiteStore) ListChatMeta(chatID string) ([]*ChatMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT chat_id, key, value, updated_at
		FROM chat_metadata WHERE chat_id = ? ORDER BY key
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metas []*ChatMeta
	for rows.Next() {
		var m ChatMeta
		if err := rows.Scan(&m.ChatID, &m.Key, &m.Value, &m.UpdatedAt); err != nil {
			return nil, err
		}
		metas = append(metas, &m)
	}
	return metas, rows.Err()
}

// =============================================================================
// Generation journal
// =============================================================================

// LogGeneration inserts one journal entry.
func (s *SQLiteStore) LogGeneration(entry *GenerationEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().UnixMilli()
	}

	_, err := s.db.Exec(`
		INSERT INTO generation_log (id, chat_id, raw, parsed, committed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			raw = excluded.raw,
			parsed = excluded.parsed,
			committed = excluded.committed
	`, entry.ID, entry.ChatID, entry.Raw, entry.Parsed, boolToInt(entry.Committed), entry.CreatedAt)

	return err
}

// GetGeneration retrieves one journal entry by id. Returns nil when absent.
func (s *SQLiteStore) GetGeneration(id string) (*GenerationEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e GenerationEntry
	var committed int
	err := s.db.QueryRow(`
		SELECT id, chat_id, raw, parsed, committed, created_at
		FROM generation_log WHERE id = ?
	`, id).Scan(&e.ID, &e.ChatID, &e.Raw, &e.Parsed, &committed, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.Committed = committed == 1
	return &e, nil
}

// Generations returns the newest journal entries for a chat, newest first.
// limit <= 0 returns all.
func (s *SQLiteStore) Generations(chatID string, limit int) ([]*GenerationEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, chat_id, raw, parsed, committed, created_at
		FROM generation_log WHERE chat_id = ?
		ORDER BY created_at DESC, id DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(query+` LIMIT ?`, chatID, limit)
	} else {
		rows, err = s.db.Query(query, chatID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*GenerationEntry
	for rows.Next() {
		var e GenerationEntry
		var committed int
		if err := rows.Scan(&e.ID, &e.ChatID, &e.Raw, &e.Parsed, &committed, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Committed = committed == 1
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// MarkCommitted flags one journal entry as committed.
func (s *SQLiteStore) MarkCommitted(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE generation_log SET committed = 1 WHERE id = ?`, id)
	return err
}

// PruneGenerations keeps the newest `keep` entries for a chat and deletes the
// rest. keep <= 0 deletes all entries for the chat.
func (s *SQLiteStore) PruneGenerations(chatID string, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep <= 0 {
		_, err := s.db.Exec(`DELETE FROM generation_log WHERE chat_id = ?`, chatID)
		return err
	}

	_, err := s.db.Exec(`
		DELETE FROM generation_log WHERE chat_id = ? AND id NOT IN (
			SELECT id FROM generation_log WHERE chat_id = ?
			ORDER BY created_at DESC, id DESC LIMIT ?
		)
	`, chatID, chatID, keep)
	return err
}

// =============================================================================
// Export / Import
// =============================================================================

// exportData is the portable JSON form of the whole store.
type exportData struct {
	ChatMeta    []*ChatMeta        `json:"chatMeta"`
	Generations []*GenerationEntry `json:"generations"`
}

// Export serializes all tables to JSON bytes. Portable: does not depend on
// sqlite serialization APIs.
func (s *SQLiteStore) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data exportData

	metaRows, err := s.db.Query(`SELECT chat_id, key, value, updated_at FROM chat_metadata`)
	if err != nil {
		return nil, fmt.Errorf("export chat metadata: %w", err)
	}
	defer metaRows.Close()
	for metaRows.Next() {
		var m ChatMeta
		if err := metaRows.Scan(&m.ChatID, &m.Key, &m.Value, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan chat metadata: %w", err)
		}
		data.ChatMeta = append(data.ChatMeta, &m)
	}
	if err := metaRows.Err(); err != nil {
		return nil, fmt.Errorf("export chat metadata: %w", err)
	}

	genRows, err := s.db.Query(`SELECT id, chat_id, raw, parsed, committed, created_at FROM generation_log`)
	if err != nil {
		return nil, fmt.Errorf("export generations: %w", err)
	}
	defer genRows.Close()
	for genRows.Next() {
		var e GenerationEntry
		var committed int
		if err := genRows.Scan(&e.ID, &e.ChatID, &e.Raw, &e.Parsed, &committed, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		e.Committed = committed == 1
		data.Generations = append(data.Generations, &e)
	}
	if err := genRows.Err(); err != nil {
		return nil, fmt.Errorf("export generations: %w", err)
	}

	return json.Marshal(data)
}

// Import replaces the store contents with a previously exported blob.
// Empty input is a no-op.
func (s *SQLiteStore) Import(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(data) == 0 {
		return nil
	}

	var importData exportData
	if err := json.Unmarshal(data, &importData); err != nil {
		return fmt.Errorf("import unmarshal: %w", err)
	}

	for _, table := range []string{"chat_metadata", "generation_log"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, m := range importData.ChatMeta {
		_, err := s.db.Exec(`
			INSERT INTO chat_metadata (chat_id, key, value, updated_at)
			VALUES (?, ?, ?, ?)
		`, m.ChatID, m.Key, m.Value, m.UpdatedAt)
		if err != nil {
			return fmt.Errorf("import chat metadata %s/%s: %w", m.ChatID, m.Key, err)
		}
	}

	for _, e := range importData.Generations {
		_, err := s.db.Exec(`
			INSERT INTO generation_log (id, chat_id, raw, parsed, committed, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, e.ID, e.ChatID, e.Raw, e.Parsed, boolToInt(e.Committed), e.CreatedAt)
		if err != nil {
			return fmt.Errorf("import generation %s: %w", e.ID, err)
		}
	}

	return nil
}

// Interface compliance check
var _ Storer = (*SQLiteStore)(nil)

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
