package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Load creates the diskv backed Store rooted at cfg.BasePath().
func Load(cfg Config) (*Diskv, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	// No read cache: another process may rewrite the files under us.
	return &Diskv{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
	}), basePath: basePath}, nil
}

// Diskv stores each document as one file, <base>/<encoded trip>/<doc>.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

var _ Store = (*Diskv)(nil)

func (p *Diskv) Get(_ context.Context, key string) ([]byte, error) {
	val, err := p.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *Diskv) Put(_ context.Context, key string, data []byte) error {
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *Diskv) Delete(_ context.Context, key string) error {
	if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (p *Diskv) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range p.d.Keys(ctx.Done()) {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (p *Diskv) Close() error { return nil }

func keyToPathTransform(key string) *diskv.PathKey {
	trip, doc := SplitKey(key)
	return &diskv.PathKey{
		Path:     []string{toScope(trip)},
		FileName: doc,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s/%s", fromScope(pathKey.Path[0]), pathKey.FileName)
}

// Trip names may hold any character, so the directory name is encoded.
func toScope(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func fromScope(s string) string {
	scope, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return ""
	}
	return string(scope)
}
