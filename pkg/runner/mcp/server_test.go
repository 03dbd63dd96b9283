package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/promptdock/pkg/app"
	"tableflip.dev/promptdock/pkg/node"
	"tableflip.dev/promptdock/pkg/store"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string           { return t.path }
func (t testConfig) DefaultFolderTitle() string { return "New Folder" }
func (t testConfig) LogLevel() string           { return "info" }

// newTestService seeds a store with root{F1{P2}, P1} and returns a service
// over it.
func newTestService(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.Load(testConfig{path: filepath.Join(t.TempDir(), "db")})
	require.NoError(t, err)
	root := &node.Node{ID: "root", Kind: node.KindFolder, Title: "Prompts", Items: []*node.Node{
		{ID: "F1", Kind: node.KindFolder, Title: "F1", Items: []*node.Node{
			{ID: "P2", Kind: node.KindPrompt, Title: "P2", Content: "two"},
		}},
		{ID: "P1", Kind: node.KindPrompt, Title: "P1", Content: "one"},
	}}
	require.NoError(t, p.WriteTree(root))
	return &app.Service{Persistence: p}
}

func callTool(t *testing.T, a *app.Service, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	srv := NewServer(a, "test", "0.1.0", "")
	tool, ok := srv.ListTools()[name]
	require.True(t, ok, "tool %s not registered", name)
	result, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	return result
}

func decode[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, result.IsError, "tool returned error: %v", result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent")
	var out T
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out
}

func errorText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.True(t, result.IsError)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestToolsRegistered(t *testing.T) {
	srv := NewServer(newTestService(t), "test", "0.1.0", "")
	want := []string{
		"list_tree", "get_prompt", "add_folder", "add_prompt", "rename_node",
		"set_content", "move_node", "combine_nodes", "remove_node",
		"reorder_node", "toggle_favorite", "list_favorites",
	}
	tools := srv.ListTools()
	assert.Len(t, tools, len(want))
	for _, name := range want {
		assert.Contains(t, tools, name)
	}
}

func TestListTree(t *testing.T) {
	got := decode[NodeDTO](t, callTool(t, newTestService(t), "list_tree", nil))
	assert.Equal(t, "root", got.ID)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "F1", got.Items[0].ID)
	assert.Equal(t, "P2", got.Items[0].Items[0].ID)
	require.NotNil(t, got.Items[0].Items[0].Content)
	assert.Equal(t, "two", *got.Items[0].Items[0].Content)
}

func TestGetPrompt(t *testing.T) {
	a := newTestService(t)
	got := decode[NodeDTO](t, callTool(t, a, "get_prompt", map[string]any{"id": "P2"}))
	assert.Equal(t, []string{"F1", "P2"}, got.Path)
	assert.Equal(t, "F1", got.ParentID)

	msg := errorText(t, callTool(t, a, "get_prompt", map[string]any{"id": "nope"}))
	assert.Contains(t, msg, "not found")

	errorText(t, callTool(t, a, "get_prompt", nil))
}

func TestAddAndMove(t *testing.T) {
	a := newTestService(t)
	folder := decode[NodeDTO](t, callTool(t, a, "add_folder", map[string]any{"title": "Code", "index": float64(0)}))
	assert.Equal(t, "folder", folder.Type)

	prompt := decode[NodeDTO](t, callTool(t, a, "add_prompt", map[string]any{
		"title": "Review", "content": "look", "parent_id": folder.ID,
	}))
	assert.Equal(t, []string{"Code", "Review"}, prompt.Path)

	moved := decode[NodeDTO](t, callTool(t, a, "move_node", map[string]any{"id": "P1", "target_id": folder.ID, "index": float64(0)}))
	assert.Equal(t, folder.ID, moved.ParentID)

	msg := errorText(t, callTool(t, a, "move_node", map[string]any{"id": "F1", "target_id": "F1"}))
	assert.Contains(t, msg, "cycle")

	root, err := a.Tree(context.Background())
	require.NoError(t, err)
	assert.Equal(t, folder.ID, root.Items[0].ID)
	assert.Equal(t, "P1", root.Items[0].Items[0].ID)
}

func TestRenameAndContent(t *testing.T) {
	a := newTestService(t)
	got := decode[NodeDTO](t, callTool(t, a, "rename_node", map[string]any{"id": "P1", "title": "  First "}))
	assert.Equal(t, "First", got.Title)

	errorText(t, callTool(t, a, "rename_node", map[string]any{"id": "P1", "title": "  "}))

	got = decode[NodeDTO](t, callTool(t, a, "set_content", map[string]any{"id": "P1", "content": "new"}))
	require.NotNil(t, got.Content)
	assert.Equal(t, "new", *got.Content)

	errorText(t, callTool(t, a, "set_content", map[string]any{"id": "F1", "content": "x"}))
}

func TestCombineUsesDefaultTitle(t *testing.T) {
	a := newTestService(t)
	got := decode[NodeDTO](t, callTool(t, a, "combine_nodes", map[string]any{"a": "P1", "b": "F1"}))
	assert.Equal(t, "New Folder", got.Title)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "F1", got.Items[0].ID)
	assert.Equal(t, "P1", got.Items[1].ID)

	errorText(t, callTool(t, a, "combine_nodes", map[string]any{"a": "P2", "b": "P1"}))
}

func TestReorderAndRemove(t *testing.T) {
	a := newTestService(t)
	got := decode[NodeDTO](t, callTool(t, a, "reorder_node", map[string]any{"from": float64(0), "to": float64(1)}))
	assert.Equal(t, "root", got.ID)
	assert.Equal(t, "P1", got.Items[0].ID)

	errorText(t, callTool(t, a, "reorder_node", map[string]any{"from": float64(0), "to": float64(9)}))

	removed := decode[map[string]NodeDTO](t, callTool(t, a, "remove_node", map[string]any{"id": "F1"}))
	assert.Equal(t, "P2", removed["removed"].Items[0].ID)

	errorText(t, callTool(t, a, "remove_node", map[string]any{"id": "root"}))
}

func TestFavoritesTools(t *testing.T) {
	a := newTestService(t)
	got := decode[NodeDTO](t, callTool(t, a, "toggle_favorite", map[string]any{"id": "P2"}))
	assert.True(t, got.Favorite)

	errorText(t, callTool(t, a, "toggle_favorite", map[string]any{"id": "F1"}))

	list := decode[struct {
		Favorites []NodeDTO `json:"favorites"`
		Count     int       `json:"count"`
	}](t, callTool(t, a, "list_favorites", nil))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "P2", list.Favorites[0].ID)

	tree := decode[NodeDTO](t, callTool(t, a, "list_tree", nil))
	assert.True(t, tree.Items[0].Items[0].Favorite)
}

func TestTemplateArg(t *testing.T) {
	assert.Equal(t, "a", templateArg(map[string]any{"id": "a"}, "id"))
	assert.Equal(t, "b", templateArg(map[string]any{"id": []string{"b"}}, "id"))
	assert.Equal(t, "c", templateArg(map[string]any{"id": []any{"c"}}, "id"))
	assert.Equal(t, "", templateArg(map[string]any{}, "id"))
}
