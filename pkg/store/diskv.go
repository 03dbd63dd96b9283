package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/promptdock/pkg/node"
)

const (
	// TreeKey holds the serialized folder/prompt tree.
	TreeKey = "promptdock-tree"
	// FavoritesKey holds the JSON array of favorite prompt ids.
	FavoritesKey = "promptdock-favorites"
)

// ErrNoValue is returned when a key has never been written.
var ErrNoValue = errors.New("store: no value")

// Persistence defines the persistence contract for the tree and favorites.
type Persistence interface {
	ReadTree(ctx context.Context) (*node.Node, error)
	WriteTree(root *node.Node) error
	ReadFavorites(ctx context.Context) ([]string, error)
	WriteFavorites(ids []string) error
	Keys(ctx context.Context) []string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// Writes go to a temp file and are renamed into place, so a failed
		// write leaves the previous value untouched.
		TempDir: basePath + ".tmp",
		// No cache: other processes write the same keys.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) ([]byte, error) {
	rc, err := p.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoValue
		}
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (p *persistence) ReadTree(_ context.Context) (*node.Node, error) {
	data, err := p.read(TreeKey)
	if err != nil {
		return nil, err
	}
	root, err := node.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", TreeKey, err)
	}
	return root, nil
}

func (p *persistence) WriteTree(root *node.Node) error {
	data, err := node.Serialize(root)
	if err != nil {
		return fmt.Errorf("store: encode tree: %w", err)
	}
	if err := p.write(TreeKey, data); err != nil {
		return fmt.Errorf("store: write %s: %w", TreeKey, err)
	}
	return nil
}

func (p *persistence) ReadFavorites(_ context.Context) ([]string, error) {
	data, err := p.read(FavoritesKey)
	if errors.Is(err, ErrNoValue) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("store: decode favorites: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (p *persistence) WriteFavorites(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := p.write(FavoritesKey, data); err != nil {
		return fmt.Errorf("store: write %s: %w", FavoritesKey, err)
	}
	return nil
}

func (p *persistence) write(key string, data []byte) error {
	if err := os.MkdirAll(p.basePath+".tmp", 0o755); err != nil {
		return err
	}
	return p.d.Write(key, data)
}

func (p *persistence) Keys(ctx context.Context) []string {
	keys := make([]string, 0, 2)
	for key := range p.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Keys are flat: every value is a file directly under the base path.
func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
