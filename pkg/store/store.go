package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when a key has never been written or has
// been deleted.
var ErrNotFound = errors.New("store: not found")

// Store is a flat document store. Keys are slash separated, scope first:
// "<trip>/<doc>".
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

// Backends understood by Open.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open creates the Store selected by cfg. A nil cfg loads the configuration
// from the environment.
func Open(cfg Config) (Store, error) {
	if cfg == nil {
		loaded, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	switch cfg.Backend() {
	case "", BackendDiskv:
		return Load(cfg)
	case BackendSQLite:
		return OpenSQLite(cfg.BasePath())
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

// Document names persisted per trip.
const (
	DocSelection = "selection"
	DocDayPlan   = "dayplan"
	DocHistory   = "history"
	DocSettings  = "settings"
)

// DocumentVersion is written into every envelope.
const DocumentVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Key joins a trip scope and document name.
func Key(trip, doc string) string {
	trip = strings.Trim(strings.TrimSpace(trip), "/")
	if trip == "" {
		trip = "default"
	}
	return trip + "/" + doc
}

// SplitKey is the inverse of Key.
func SplitKey(key string) (trip, doc string) {
	i := strings.LastIndex(key, "/")
	if i < 0 {
		return "", key
	}
	return key[:i], key[i+1:]
}

// LoadDocument decodes the document stored under key into v. found is false
// when nothing has been saved yet.
func LoadDocument(ctx context.Context, s Store, key string, v any) (found bool, err error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	if env.Version != DocumentVersion {
		return false, fmt.Errorf("store: %s: unsupported document version %d", key, env.Version)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return false, fmt.Errorf("store: decode %s data: %w", key, err)
	}
	return true, nil
}

// SaveDocument wraps v in a versioned envelope and writes it under key.
func SaveDocument(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	raw, err := json.Marshal(envelope{Version: DocumentVersion, Data: data})
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := s.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}
