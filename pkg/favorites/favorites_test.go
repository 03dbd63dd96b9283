package favorites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/promptdock/pkg/node"
	"tableflip.dev/promptdock/pkg/tree"
)

func testDocument(t *testing.T) *tree.Document {
	t.Helper()
	d, err := tree.New(&node.Node{ID: "root", Kind: node.KindFolder, Items: []*node.Node{
		{ID: "F1", Kind: node.KindFolder, Title: "F1", Items: []*node.Node{}},
		{ID: "P1", Kind: node.KindPrompt, Title: "P1"},
		{ID: "P2", Kind: node.KindPrompt, Title: "P2"},
	}})
	require.NoError(t, err)
	return d
}

func TestNewDropsBlanksAndRepeats(t *testing.T) {
	l := New([]string{"P1", "", "P2", "P1"})
	assert.Equal(t, []string{"P1", "P2"}, l.IDs())
}

func TestAddRemoveToggle(t *testing.T) {
	l := New(nil)
	assert.True(t, l.Add("P1"))
	assert.False(t, l.Add("P1"))
	assert.True(t, l.Add("P2"))
	assert.Equal(t, []string{"P1", "P2"}, l.IDs())

	assert.True(t, l.Remove("P1"))
	assert.False(t, l.Remove("P1"))

	assert.True(t, l.Toggle("P3"))
	assert.False(t, l.Toggle("P2"))
	assert.Equal(t, []string{"P3"}, l.IDs())
}

func TestIDsIsACopy(t *testing.T) {
	l := New([]string{"P1"})
	ids := l.IDs()
	ids[0] = "changed"
	assert.Equal(t, []string{"P1"}, l.IDs())
}

func TestResolvePrunesStaleIDs(t *testing.T) {
	d := testDocument(t)
	l := New([]string{"P1", "P9"})

	prompts, pruned := l.Resolve(d)
	assert.True(t, pruned)
	require.Len(t, prompts, 1)
	assert.Equal(t, "P1", prompts[0].ID)
	assert.Equal(t, []string{"P1"}, l.IDs())

	_, pruned = l.Resolve(d)
	assert.False(t, pruned)
}

func TestResolveDropsFolders(t *testing.T) {
	d := testDocument(t)
	l := New([]string{"P2", "F1", "P1"})

	prompts, pruned := l.Resolve(d)
	assert.True(t, pruned)
	assert.Equal(t, []string{"P2", "P1"}, l.IDs())
	assert.Equal(t, "P2", prompts[0].ID)
}
