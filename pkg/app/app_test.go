package app

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/promptdock/pkg/node"
	"tableflip.dev/promptdock/pkg/store"
	"tableflip.dev/promptdock/pkg/tree"
)

var errDiskFull = errors.New("disk full")

type memoryPersistence struct {
	mu         sync.Mutex
	tree       []byte
	favorites  []string
	failWrites bool
	treeWrites int
	favWrites  int
	events     chan store.Event
}

func newMemoryPersistence(t *testing.T, root *node.Node, favs ...string) *memoryPersistence {
	t.Helper()
	mp := &memoryPersistence{favorites: favs}
	if root != nil {
		data, err := node.Serialize(root)
		if err != nil {
			t.Fatalf("serialize: %v", err)
		}
		mp.tree = data
	}
	return mp
}

func (m *memoryPersistence) ReadTree(_ context.Context) (*node.Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tree == nil {
		return nil, store.ErrNoValue
	}
	return node.Deserialize(m.tree)
}

func (m *memoryPersistence) WriteTree(root *node.Node) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errDiskFull
	}
	data, err := node.Serialize(root)
	if err != nil {
		return err
	}
	m.tree = data
	m.treeWrites++
	return nil
}

func (m *memoryPersistence) ReadFavorites(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.favorites), nil
}

func (m *memoryPersistence) WriteFavorites(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errDiskFull
	}
	m.favorites = slices.Clone(ids)
	m.favWrites++
	return nil
}

func (m *memoryPersistence) Keys(_ context.Context) []string {
	return []string{store.FavoritesKey, store.TreeKey}
}

func (m *memoryPersistence) Watch(_ context.Context) (<-chan store.Event, error) {
	if m.events == nil {
		return nil, errors.New("watch not supported")
	}
	return m.events, nil
}

func (m *memoryPersistence) storedTree(t *testing.T) *node.Node {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	root, err := node.Deserialize(m.tree)
	require.NoError(t, err)
	return root
}

// sample builds root{F1{P2}, P1, F3}.
func sample() *node.Node {
	return &node.Node{ID: "root", Kind: node.KindFolder, Title: "Prompts", Items: []*node.Node{
		{ID: "F1", Kind: node.KindFolder, Title: "F1", Items: []*node.Node{
			{ID: "P2", Kind: node.KindPrompt, Title: "P2", Content: "two"},
		}},
		{ID: "P1", Kind: node.KindPrompt, Title: "P1", Content: "one"},
		{ID: "F3", Kind: node.KindFolder, Title: "F3", Items: []*node.Node{}},
	}}
}

func TestOpenWithoutPersistence(t *testing.T) {
	svc := &Service{}
	assert.ErrorIs(t, svc.Open(context.Background()), ErrNoPersistence)
}

func TestOpenFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence(t, nil)
	svc := &Service{Persistence: mp}

	root, err := svc.Tree(ctx)
	require.NoError(t, err)
	def, err := store.DefaultTree()
	require.NoError(t, err)
	assert.Equal(t, def.ID, root.ID)
	assert.Zero(t, mp.treeWrites, "default is not written until the first change")
}

func TestOpenFallsBackOnCorruptTree(t *testing.T) {
	mp := newMemoryPersistence(t, nil)
	mp.tree = []byte("{broken")
	svc := &Service{Persistence: mp}

	root, err := svc.Tree(context.Background())
	require.NoError(t, err)
	def, _ := store.DefaultTree()
	assert.Equal(t, def.ID, root.ID)
}

func TestMutationsWriteThrough(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence(t, sample())
	svc := &Service{Persistence: mp}

	require.NoError(t, svc.Rename(ctx, "P1", "  Renamed  "))
	assert.Equal(t, "Renamed", tree.FindByID(mp.storedTree(t), "P1").Title)

	require.NoError(t, svc.Move(ctx, "P1", "F1", -1))
	assert.Equal(t, "F1", tree.FindParent(mp.storedTree(t), "P1").ID)

	f, err := svc.AddFolder(ctx, "", "New", 0)
	require.NoError(t, err)
	assert.Equal(t, f.ID, mp.storedTree(t).Items[0].ID)

	p, err := svc.AddPrompt(ctx, f.ID, "Hello", "body", -1)
	require.NoError(t, err)
	stored := tree.FindByID(mp.storedTree(t), p.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "body", stored.Content)

	require.NoError(t, svc.SetContent(ctx, p.ID, "changed"))
	assert.Equal(t, "changed", tree.FindByID(mp.storedTree(t), p.ID).Content)

	require.NoError(t, svc.Reorder(ctx, "F1", 0, 1))
	assert.Equal(t, "P1", mp.storedTree(t).Items[1].Items[0].ID)

	c, err := svc.Combine(ctx, "F3", f.ID, "Both")
	require.NoError(t, err)
	combined := tree.FindByID(mp.storedTree(t), c.ID)
	require.NotNil(t, combined)
	require.Len(t, combined.Items, 2)
	assert.Equal(t, f.ID, combined.Items[0].ID)
	assert.Equal(t, "F3", combined.Items[1].ID)

	assert.Equal(t, 7, mp.treeWrites)
}

func TestModelErrorsDoNotWrite(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence(t, sample())
	svc := &Service{Persistence: mp}

	assert.ErrorIs(t, svc.Rename(ctx, "P1", "   "), tree.ErrEmptyTitle)
	assert.ErrorIs(t, svc.Move(ctx, "F1", "P2", -1), tree.ErrInvalidTarget)
	assert.ErrorIs(t, svc.Move(ctx, "F1", "F1", -1), tree.ErrCycleDetected)
	_, err := svc.Remove(ctx, "missing")
	assert.ErrorIs(t, err, tree.ErrNotFound)
	assert.Zero(t, mp.treeWrites)
}

func TestFailedWriteRollsBack(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence(t, sample())
	svc := &Service{Persistence: mp}
	before, err := svc.Tree(ctx)
	require.NoError(t, err)

	mp.failWrites = true
	err = svc.Move(ctx, "P1", "F1", 0)
	require.ErrorIs(t, err, errDiskFull)

	after, err := svc.Tree(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// The restored document is fully usable.
	mp.failWrites = false
	require.NoError(t, svc.Move(ctx, "P1", "F1", 0))
	got, err := svc.Get(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "F1", got.ParentID)
	assert.Equal(t, []string{"F1", "P1"}, got.Path)
}

func TestFailedImportRollsBack(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence(t, sample())
	svc := &Service{Persistence: mp}
	require.NoError(t, svc.Open(ctx))

	mp.failWrites = true
	_, err := svc.Import(ctx, []byte(`{"id":"x","type":"folder","title":"X","items":[]}`), FormatJSON)
	require.ErrorIs(t, err, errDiskFull)

	root, err := svc.Tree(ctx)
	require.NoError(t, err)
	assert.Equal(t, "root", root.ID)
}

func TestFavoritesPrunedOnOpen(t *testing.T) {
	mp := newMemoryPersistence(t, sample(), "P1", "P9")
	svc := &Service{Persistence: mp}

	favs, err := svc.Favorites(context.Background())
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "P1", favs[0].ID)
	assert.Equal(t, []string{"P1"}, mp.favorites)
}

func TestRemovePrunesFavorites(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence(t, sample(), "P2", "P1")
	svc := &Service{Persistence: mp}

	removed, err := svc.Remove(ctx, "F1")
	require.NoError(t, err)
	assert.Equal(t, "P2", removed.Items[0].ID)
	assert.Equal(t, []string{"P1"}, mp.favorites)
}

func TestToggleFavorite(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence(t, sample())
	svc := &Service{Persistence: mp}

	on, err := svc.ToggleFavorite(ctx, "P2")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []string{"P2"}, mp.favorites)

	got, err := svc.Get(ctx, "P2")
	require.NoError(t, err)
	assert.True(t, got.Favorite)

	on, err = svc.ToggleFavorite(ctx, "P2")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, mp.favorites)

	_, err = svc.ToggleFavorite(ctx, "F1")
	assert.ErrorIs(t, err, ErrNotPrompt)
	_, err = svc.ToggleFavorite(ctx, "nope")
	assert.ErrorIs(t, err, tree.ErrNotFound)

	mp.failWrites = true
	_, err = svc.ToggleFavorite(ctx, "P1")
	require.ErrorIs(t, err, errDiskFull)
	favs, err := svc.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestAddRemoveFavorite(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence(t, sample())
	svc := &Service{Persistence: mp}

	require.NoError(t, svc.AddFavorite(ctx, "P1"))
	require.NoError(t, svc.AddFavorite(ctx, "P2"))
	require.NoError(t, svc.AddFavorite(ctx, "P1"))
	assert.Equal(t, []string{"P1", "P2"}, mp.favorites)

	require.NoError(t, svc.RemoveFavorite(ctx, "P1"))
	require.NoError(t, svc.RemoveFavorite(ctx, "unknown"))
	assert.Equal(t, []string{"P2"}, mp.favorites)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			src := &Service{Persistence: newMemoryPersistence(t, sample())}
			data, err := src.Export(ctx, format)
			require.NoError(t, err)

			old := &node.Node{ID: "old", Kind: node.KindFolder, Items: []*node.Node{
				{ID: "P9", Kind: node.KindPrompt, Title: "P9"},
			}}
			mp := newMemoryPersistence(t, old, "P9")
			dst := &Service{Persistence: mp}
			n, err := dst.Import(ctx, data, format)
			require.NoError(t, err)
			assert.Equal(t, 5, n)

			want, _ := src.Tree(ctx)
			got, _ := dst.Tree(ctx)
			assert.Equal(t, want, got)
			assert.Equal(t, want, mp.storedTree(t))
			assert.Empty(t, mp.favorites, "favorites outside the imported tree are pruned")
		})
	}
}

func TestImportRejectsBadInput(t *testing.T) {
	svc := &Service{Persistence: newMemoryPersistence(t, sample())}
	_, err := svc.Import(context.Background(), []byte("nope"), FormatJSON)
	assert.ErrorIs(t, err, node.ErrParse)
	_, err = svc.Import(context.Background(), []byte(`{"id":"r","type":"prompt","title":"x"}`), FormatJSON)
	assert.ErrorIs(t, err, node.ErrSchema)
}

func TestReloadIgnoresOwnWrites(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence(t, sample())
	svc := &Service{Persistence: mp}
	require.NoError(t, svc.Rename(ctx, "P1", "Mine"))

	changed, err := svc.Reload(ctx, store.Event{Type: store.EventTreeChanged, Key: store.TreeKey})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence(t, sample())
	svc := &Service{Persistence: mp}
	require.NoError(t, svc.Open(ctx))

	other := &Service{Persistence: mp}
	require.NoError(t, other.Rename(ctx, "P1", "Theirs"))
	require.NoError(t, other.AddFavorite(ctx, "P2"))

	changed, err := svc.Reload(ctx, store.Event{Type: store.EventTreeChanged, Key: store.TreeKey})
	require.NoError(t, err)
	assert.True(t, changed)
	got, err := svc.Get(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "Theirs", got.Node.Title)

	favs, err := svc.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "P2", favs[0].ID)
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{"": FormatJSON, "json": FormatJSON, "yaml": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
