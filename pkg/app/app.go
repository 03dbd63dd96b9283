package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/promptdock/pkg/favorites"
	"tableflip.dev/promptdock/pkg/node"
	"tableflip.dev/promptdock/pkg/store"
	"tableflip.dev/promptdock/pkg/tree"
)

// Service provides high-level operations over the prompt tree and favorites.
// It owns the in-memory document, writes every accepted change through to
// persistence, and is shared by the CLI runners and the MCP server.
type Service struct {
	Persistence store.Persistence
	Logger      *zap.Logger

	mu        sync.Mutex
	doc       *tree.Document
	favs      *favorites.List
	committed []byte
}

var (
	// ErrNoPersistence is returned when the service has no backing store.
	ErrNoPersistence = errors.New("app: no persistence configured")
	// ErrNotPrompt is returned when a favorite operation names a folder.
	ErrNotPrompt = errors.New("app: not a prompt")
)

// Format selects the encoding for Export and Import.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses json or yaml; empty means json.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("app: unknown format %q", raw)
}

// Item is a node together with its location in the tree.
type Item struct {
	Node     *node.Node
	ParentID string
	Path     []string
	Favorite bool
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Open loads the tree and favorites. It is called lazily by every other
// operation, so callers only need it to surface load problems early.
func (s *Service) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureOpen(ctx)
}

func (s *Service) ensureOpen(ctx context.Context) error {
	if s.doc != nil {
		return nil
	}
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	doc, data, err := s.loadTree(ctx)
	if err != nil {
		return err
	}
	s.doc, s.committed = doc, data
	s.favs = favorites.New(s.loadFavorites(ctx))
	return s.pruneFavorites()
}

// loadTree reads the stored tree, falling back to the bundled default when
// nothing is stored or the stored value is unreadable.
func (s *Service) loadTree(ctx context.Context) (*tree.Document, []byte, error) {
	root, err := s.Persistence.ReadTree(ctx)
	switch {
	case errors.Is(err, store.ErrNoValue):
		s.logger().Debug("no stored tree, using default")
		root = nil
	case err != nil:
		s.logger().Warn("stored tree unreadable, using default", zap.Error(err))
		root = nil
	}
	if root != nil {
		doc, err := tree.New(root)
		if err == nil {
			data, _ := node.Serialize(root)
			return doc, data, nil
		}
		s.logger().Warn("stored tree invalid, using default", zap.Error(err))
	}

	root, err = store.DefaultTree()
	if err != nil {
		return nil, nil, err
	}
	doc, err := tree.New(root)
	if err != nil {
		return nil, nil, fmt.Errorf("app: default tree: %w", err)
	}
	// The default is not written until the first change.
	return doc, nil, nil
}

func (s *Service) loadFavorites(ctx context.Context) []string {
	ids, err := s.Persistence.ReadFavorites(ctx)
	if err != nil {
		s.logger().Warn("stored favorites unreadable, starting empty", zap.Error(err))
		return nil
	}
	return ids
}

// pruneFavorites drops favorites that no longer name a prompt and persists the
// list when it changed.
func (s *Service) pruneFavorites() error {
	before := s.favs.IDs()
	if _, pruned := s.favs.Resolve(s.doc); !pruned {
		return nil
	}
	if err := s.Persistence.WriteFavorites(s.favs.IDs()); err != nil {
		s.favs = favorites.New(before)
		return fmt.Errorf("app: write favorites: %w", err)
	}
	s.logger().Debug("pruned favorites", zap.Strings("before", before), zap.Strings("after", s.favs.IDs()))
	return nil
}

// mutate applies fn to the document and writes the result through. Model
// errors leave the tree untouched; a failed write restores the last committed
// tree before returning.
func (s *Service) mutate(ctx context.Context, op string, fn func(d *tree.Document) error) error {
	if err := s.ensureOpen(ctx); err != nil {
		return err
	}
	snapshot := s.doc.Root().Clone()
	if err := fn(s.doc); err != nil {
		return err
	}
	if err := s.commit(snapshot); err != nil {
		return fmt.Errorf("app: %s: %w", op, err)
	}
	s.logger().Debug("tree updated", zap.String("op", op), zap.Int("nodes", s.doc.Len()))
	return s.pruneFavorites()
}

func (s *Service) commit(snapshot *node.Node) error {
	data, err := node.Serialize(s.doc.Root())
	if err == nil {
		err = s.Persistence.WriteTree(s.doc.Root())
	}
	if err != nil {
		s.rollback(snapshot)
		return err
	}
	s.committed = data
	return nil
}

func (s *Service) rollback(snapshot *node.Node) {
	doc, err := tree.New(snapshot)
	if err != nil {
		// The snapshot was indexed once already; this cannot fail.
		s.logger().Error("rollback failed", zap.Error(err))
		return
	}
	s.doc = doc
	s.logger().Warn("write failed, tree restored")
}

// Tree returns a copy of the whole tree.
func (s *Service) Tree(ctx context.Context) (*node.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureOpen(ctx); err != nil {
		return nil, err
	}
	return s.doc.Root().Clone(), nil
}

// Get returns a copy of the node with id and where it lives.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureOpen(ctx); err != nil {
		return nil, err
	}
	return s.item(id)
}

func (s *Service) item(id string) (*Item, error) {
	n := s.doc.Find(id)
	if n == nil {
		return nil, fmt.Errorf("app: %q: %w", id, tree.ErrNotFound)
	}
	it := &Item{
		Node:     n.Clone(),
		Path:     s.doc.Path(id),
		Favorite: s.favs.Contains(id),
	}
	if p := s.doc.Parent(id); p != nil {
		it.ParentID = p.ID
	}
	return it, nil
}

// RootID returns the id of the root folder.
func (s *Service) RootID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureOpen(ctx); err != nil {
		return "", err
	}
	return s.doc.Root().ID, nil
}

// resolveParent maps an empty parent id to the root.
func (s *Service) resolveParent(parentID string) string {
	if parentID == "" {
		return s.doc.Root().ID
	}
	return parentID
}

// AddFolder creates an empty folder under parentID (the root when empty).
func (s *Service) AddFolder(ctx context.Context, parentID, title string, index int) (*node.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var created *node.Node
	err := s.mutate(ctx, "add folder", func(d *tree.Document) error {
		var err error
		created, err = d.AddFolder(s.resolveParent(parentID), title, index)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created.Clone(), nil
}

// AddPrompt creates a prompt under parentID (the root when empty).
func (s *Service) AddPrompt(ctx context.Context, parentID, title, content string, index int) (*node.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var created *node.Node
	err := s.mutate(ctx, "add prompt", func(d *tree.Document) error {
		var err error
		created, err = d.AddPrompt(s.resolveParent(parentID), title, content, index)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created.Clone(), nil
}

// Rename sets the title of id.
func (s *Service) Rename(ctx context.Context, id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(ctx, "rename", func(d *tree.Document) error {
		return d.Rename(id, title)
	})
}

// SetContent replaces the body of the prompt id.
func (s *Service) SetContent(ctx context.Context, id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(ctx, "set content", func(d *tree.Document) error {
		return d.SetContent(id, content)
	})
}

// Move re-parents id into the folder target at index.
func (s *Service) Move(ctx context.Context, id, target string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(ctx, "move", func(d *tree.Document) error {
		return d.Move(id, target, index)
	})
}

// Combine wraps the sibling nodes a and b in a new folder.
func (s *Service) Combine(ctx context.Context, a, b, title string) (*node.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var created *node.Node
	err := s.mutate(ctx, "combine", func(d *tree.Document) error {
		var err error
		created, err = d.Combine(a, b, title)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created.Clone(), nil
}

// Reorder moves the child at oldIndex of parentID to newIndex.
func (s *Service) Reorder(ctx context.Context, parentID string, oldIndex, newIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(ctx, "reorder", func(d *tree.Document) error {
		return d.Reorder(s.resolveParent(parentID), oldIndex, newIndex)
	})
}

// Remove deletes id and its subtree. Favorites inside the subtree are pruned.
func (s *Service) Remove(ctx context.Context, id string) (*node.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed *node.Node
	err := s.mutate(ctx, "remove", func(d *tree.Document) error {
		n, ok := d.Remove(id)
		if !ok {
			return fmt.Errorf("app: remove %q: %w", id, tree.ErrNotFound)
		}
		removed = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// Export encodes the whole tree.
func (s *Service) Export(ctx context.Context, format Format) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureOpen(ctx); err != nil {
		return nil, err
	}
	switch format {
	case FormatYAML:
		return node.MarshalYAML(s.doc.Root())
	default:
		return node.Serialize(s.doc.Root())
	}
}

// Import replaces the whole tree with the decoded data and returns the node
// count of the new tree.
func (s *Service) Import(ctx context.Context, data []byte, format Format) (int, error) {
	var (
		root *node.Node
		err  error
	)
	switch format {
	case FormatYAML:
		root, err = node.UnmarshalYAML(data)
	default:
		root, err = node.Deserialize(data)
	}
	if err != nil {
		return 0, err
	}
	doc, err := tree.New(root)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureOpen(ctx); err != nil {
		return 0, err
	}
	snapshot := s.doc.Root().Clone()
	s.doc = doc
	if err := s.commit(snapshot); err != nil {
		return 0, fmt.Errorf("app: import: %w", err)
	}
	s.logger().Info("tree imported", zap.Int("nodes", doc.Len()))
	return doc.Len(), s.pruneFavorites()
}

// Favorites returns copies of the favorite prompts in display order, pruning
// stale ids first.
func (s *Service) Favorites(ctx context.Context) ([]*node.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureOpen(ctx); err != nil {
		return nil, err
	}
	if err := s.pruneFavorites(); err != nil {
		return nil, err
	}
	prompts, _ := s.favs.Resolve(s.doc)
	out := make([]*node.Node, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, p.Clone())
	}
	return out, nil
}

// AddFavorite marks the prompt id as a favorite.
func (s *Service) AddFavorite(ctx context.Context, id string) error {
	_, err := s.updateFavorites(ctx, id, func(l *favorites.List) bool {
		l.Add(id)
		return true
	})
	return err
}

// RemoveFavorite unmarks id. Unknown ids are ignored.
func (s *Service) RemoveFavorite(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureOpen(ctx); err != nil {
		return err
	}
	before := s.favs.IDs()
	if !s.favs.Remove(id) {
		return nil
	}
	return s.writeFavorites(before)
}

// ToggleFavorite flips the favorite state of the prompt id and reports
// whether it is now a favorite.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	return s.updateFavorites(ctx, id, func(l *favorites.List) bool {
		return l.Toggle(id)
	})
}

func (s *Service) updateFavorites(ctx context.Context, id string, fn func(l *favorites.List) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureOpen(ctx); err != nil {
		return false, err
	}
	n := s.doc.Find(id)
	if n == nil {
		return false, fmt.Errorf("app: favorite %q: %w", id, tree.ErrNotFound)
	}
	if !n.IsPrompt() {
		return false, fmt.Errorf("app: favorite %q: %w", id, ErrNotPrompt)
	}
	before := s.favs.IDs()
	on := fn(s.favs)
	return on, s.writeFavorites(before)
}

func (s *Service) writeFavorites(before []string) error {
	if err := s.Persistence.WriteFavorites(s.favs.IDs()); err != nil {
		s.favs = favorites.New(before)
		return fmt.Errorf("app: write favorites: %w", err)
	}
	return nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Reload re-reads persistence after an external change and reports whether
// the in-memory state changed. Echoes of this service's own writes are
// ignored.
func (s *Service) Reload(ctx context.Context, ev store.Event) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return false, s.ensureOpen(ctx)
	}

	changed := false
	if ev.Type != store.EventFavoritesChanged {
		doc, data, err := s.loadTree(ctx)
		if err != nil {
			return false, err
		}
		if data != nil && !bytes.Equal(data, s.committed) {
			s.doc, s.committed = doc, data
			changed = true
		}
	}
	if ev.Type != store.EventTreeChanged || changed {
		ids := s.loadFavorites(ctx)
		if !slices.Equal(ids, s.favs.IDs()) {
			s.favs = favorites.New(ids)
			changed = true
		}
	}
	if err := s.pruneFavorites(); err != nil {
		return changed, err
	}
	return changed, nil
}
