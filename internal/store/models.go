// Package store provides SQLite-backed persistence for the tracker core.
// This is the Go side of the host's chat-metadata scratch space: committed
// tracker snapshots and the generation journal live here, and the host
// persists the whole store through Export/Import.
package store

// MetaNamespace is the constant key under which the committed tracker
// snapshot is stored per chat.
const MetaNamespace = "dooms_tracker"

// ChatMeta is one per-chat key-value row.
type ChatMeta struct {
	ChatID    string `json:"chatId"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt int64  `json:"updatedAt"`
}

// GenerationEntry journals one model reply for a chat: the raw response, the
// parsed tracker record, and whether the user committed it.
type GenerationEntry struct {
	ID        string `json:"id"`
	ChatID    string `json:"chatId"`
	Raw       string `json:"raw"`
	Parsed    string `json:"parsed"`
	Committed bool   `json:"committed"`
	CreatedAt int64  `json:"createdAt"`
}

// Storer defines the interface for tracker persistence.
// SQLiteStore is the sole implementation, using in-memory SQLite for WASM.
type Storer interface {
	// Chat metadata - per-chat key-value scratch space
	SetChatMeta(chatID, key, value string) error
	ChatMeta(chatID, key string) (*ChatMeta, error)
	DeleteChatMeta(chatID, key string) error
	ListChatMeta(chatID string) ([]*ChatMeta, error)

	// Generation journal
	LogGeneration(entry *GenerationEntry) error
	GetGeneration(id string) (*GenerationEntry, error)
	Generations(chatID string, limit int) ([]*GenerationEntry, error)
	MarkCommitted(id string) error
	PruneGenerations(chatID string, keep int) error

	// Export/Import (database serialization for host-side persistence)
	Export() ([]byte, error)
	Import(data []byte) error

	// Lifecycle
	Close() error
}
