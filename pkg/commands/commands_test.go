package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/promptdock/pkg/node"
	"tableflip.dev/promptdock/pkg/store"
	"tableflip.dev/promptdock/pkg/tree"
)

// useTempStore points config and storage at a fresh directory.
func useTempStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PROMPTDOCK_CONFIG_PATH", dir)
	t.Setenv("PROMPTDOCK_PATH", filepath.Join(dir, "db"))
	return dir
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := New()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func storedTree(t *testing.T) *node.Node {
	t.Helper()
	p, err := store.Load(nil)
	require.NoError(t, err)
	root, err := p.ReadTree(context.Background())
	require.NoError(t, err)
	return root
}

func TestSubcommands(t *testing.T) {
	want := []string{
		"tree", "show", "add", "rename", "edit", "mv", "combine", "reorder", "rm",
		"fav", "pick", "export", "import", "watch", "info", "key", "mcp", "version", "completion",
	}
	cmd := New()
	for _, name := range want {
		found, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
}

func TestAddRenameRemove(t *testing.T) {
	useTempStore(t)

	require.NoError(t, run(t, "add", "folder", "Code", "Reviews", "--index", "0"))
	root := storedTree(t)
	assert.Equal(t, "Code Reviews", root.Items[0].Title)
	id := root.Items[0].ID

	require.NoError(t, run(t, "add", "prompt", "Diff", "--parent", id, "--content", "review this"))
	root = storedTree(t)
	require.Len(t, root.Items[0].Items, 1)
	assert.Equal(t, "review this", root.Items[0].Items[0].Content)

	require.NoError(t, run(t, "rename", id, "Code"))
	assert.Equal(t, "Code", tree.FindByID(storedTree(t), id).Title)

	err := run(t, "mv", id, root.Items[0].Items[0].ID)
	assert.ErrorIs(t, err, tree.ErrInvalidTarget)
	err = run(t, "mv", id, id)
	assert.ErrorIs(t, err, tree.ErrCycleDetected)

	require.NoError(t, run(t, "rm", id))
	assert.Nil(t, tree.FindByID(storedTree(t), id))
}

func TestCombineUsesConfiguredTitle(t *testing.T) {
	dir := useTempStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".promptdock.yaml"), []byte("default-title: Grouped\n"), 0o644))

	def, err := store.DefaultTree()
	require.NoError(t, err)
	a, b := def.Items[0].ID, def.Items[1].ID

	require.NoError(t, run(t, "combine", a, b))
	root := storedTree(t)
	assert.Equal(t, "Grouped", root.Items[0].Title)
	assert.Equal(t, a, root.Items[0].Items[0].ID)
	assert.Equal(t, b, root.Items[0].Items[1].ID)
}

func TestExportImport(t *testing.T) {
	dir := useTempStore(t)
	out := filepath.Join(dir, "backup.yaml")

	assert.Error(t, run(t, "export", "-o", out, "--format", "xml"))
	require.NoError(t, run(t, "export", "-o", out, "--format", "yaml"))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "id: "), string(data))

	in := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"id":"r","type":"folder","title":"Mine","items":[{"id":"p","type":"prompt","title":"Only"}]}`), 0o644))
	require.NoError(t, run(t, "import", in))
	root := storedTree(t)
	assert.Equal(t, "r", root.ID)
	require.Len(t, root.Items, 1)
	assert.Equal(t, "", root.Items[0].Content)

	require.NoError(t, run(t, "import", out))
	def, err := store.DefaultTree()
	require.NoError(t, err)
	assert.Equal(t, def.ID, storedTree(t).ID)
}

func TestFavorites(t *testing.T) {
	useTempStore(t)
	def, err := store.DefaultTree()
	require.NoError(t, err)
	prompt := def.Items[0].Items[0].ID

	require.NoError(t, run(t, "fav", "toggle", prompt))
	p, err := store.Load(nil)
	require.NoError(t, err)
	ids, err := p.ReadFavorites(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{prompt}, ids)

	require.NoError(t, run(t, "fav", "rm", prompt))
	ids, err = p.ReadFavorites(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)

	assert.Error(t, run(t, "fav", "add", def.Items[0].ID))
}
