// Package tree implements the folder/prompt document model: lookup, insertion,
// removal, move, combine, rename and reorder over a single rooted tree.
package tree

import (
	"fmt"
	"slices"

	"tableflip.dev/promptdock/pkg/node"
)

// Document owns a tree and keeps an id index so lookups and parent queries do
// not re-walk from the root. It is not safe for concurrent use.
type Document struct {
	root    *node.Node
	nodes   map[string]*node.Node
	parents map[string]*node.Node
}

// New indexes root. Nodes without an id are given one; duplicate ids are
// rejected.
func New(root *node.Node) (*Document, error) {
	if !root.IsFolder() {
		return nil, fmt.Errorf("tree: root must be a folder: %w", ErrInvalidTarget)
	}
	d := &Document{
		root:    root,
		nodes:   make(map[string]*node.Node),
		parents: make(map[string]*node.Node),
	}
	if err := d.checkIDs(root); err != nil {
		return nil, err
	}
	d.index(root, nil)
	return d, nil
}

// Root returns the root folder. Callers must not restructure it directly.
func (d *Document) Root() *node.Node {
	return d.root
}

// Len returns the number of nodes in the tree, root included.
func (d *Document) Len() int {
	return len(d.nodes)
}

// Find returns the node with id, or nil.
func (d *Document) Find(id string) *node.Node {
	if id == "" {
		return nil
	}
	return d.nodes[id]
}

// Parent returns the folder directly containing id, or nil for the root and
// unknown ids.
func (d *Document) Parent(id string) *node.Node {
	if id == "" {
		return nil
	}
	return d.parents[id]
}

// Path returns the titles from the root's first child level down to id.
func (d *Document) Path(id string) []string {
	n := d.Find(id)
	if n == nil || n == d.root {
		return nil
	}
	var titles []string
	for cur := n; cur != nil && cur != d.root; cur = d.parents[cur.ID] {
		titles = append(titles, cur.Title)
	}
	slices.Reverse(titles)
	return titles
}

// Walk visits the whole tree depth first.
func (d *Document) Walk(fn func(n *node.Node, depth int) bool) {
	d.root.Walk(fn)
}

// Insert adds n to the folder parentID at index. A negative or past-the-end
// index appends.
func (d *Document) Insert(parentID string, n *node.Node, index int) error {
	parent := d.Find(parentID)
	if !parent.IsFolder() {
		return fmt.Errorf("tree: insert into %q: %w", parentID, ErrInvalidTarget)
	}
	if n == nil {
		return fmt.Errorf("tree: insert nil node: %w", ErrInvalidOperands)
	}
	if err := d.checkIDs(n); err != nil {
		return err
	}
	insertAt(parent, n, index)
	d.index(n, parent)
	return nil
}

// AddFolder creates an empty folder under parentID.
func (d *Document) AddFolder(parentID, title string, index int) (*node.Node, error) {
	title, err := NormalizeTitle(title)
	if err != nil {
		return nil, err
	}
	f := node.NewFolder(title)
	if err := d.Insert(parentID, f, index); err != nil {
		return nil, err
	}
	return f, nil
}

// AddPrompt creates a prompt under parentID.
func (d *Document) AddPrompt(parentID, title, content string, index int) (*node.Node, error) {
	title, err := NormalizeTitle(title)
	if err != nil {
		return nil, err
	}
	p := node.NewPrompt(title, content)
	if err := d.Insert(parentID, p, index); err != nil {
		return nil, err
	}
	return p, nil
}

// Remove detaches id from its parent and returns the removed subtree intact.
// The root and unknown ids are ignored.
func (d *Document) Remove(id string) (*node.Node, bool) {
	parent := d.Parent(id)
	if parent == nil {
		return nil, false
	}
	i := parent.IndexOf(id)
	n := parent.Items[i]
	parent.Items = slices.Delete(parent.Items, i, i+1)
	d.unindex(n)
	return n, true
}

// Move detaches sourceID and inserts it into targetFolderID at index. When the
// target is the current parent, index refers to the list after removal.
func (d *Document) Move(sourceID, targetFolderID string, index int) error {
	src := d.Find(sourceID)
	if src == nil || src == d.root {
		return fmt.Errorf("tree: move %q: %w", sourceID, ErrInvalidTarget)
	}
	target := d.Find(targetFolderID)
	if !target.IsFolder() {
		return fmt.Errorf("tree: move %q into %q: %w", sourceID, targetFolderID, ErrInvalidTarget)
	}
	if d.isSelfOrDescendant(targetFolderID, sourceID) {
		return fmt.Errorf("tree: move %q into %q: %w", sourceID, targetFolderID, ErrCycleDetected)
	}

	from := d.parents[sourceID]
	i := from.IndexOf(sourceID)
	from.Items = slices.Delete(from.Items, i, i+1)
	insertAt(target, src, index)
	d.parents[sourceID] = target
	return nil
}

// Combine wraps the sibling nodes aID and bID in a new folder placed where the
// first of them was.
func (d *Document) Combine(aID, bID, title string) (*node.Node, error) {
	a, b := d.Find(aID), d.Find(bID)
	if a == nil || b == nil || aID == bID {
		return nil, fmt.Errorf("tree: combine %q and %q: %w", aID, bID, ErrInvalidOperands)
	}
	parent := d.parents[aID]
	if parent == nil || parent != d.parents[bID] {
		return nil, fmt.Errorf("tree: combine %q and %q: not siblings: %w", aID, bID, ErrInvalidOperands)
	}
	title, err := NormalizeTitle(title)
	if err != nil {
		return nil, err
	}

	ia, ib := parent.IndexOf(aID), parent.IndexOf(bID)
	first, second := a, b
	lo, hi := ia, ib
	if ib < ia {
		first, second = b, a
		lo, hi = ib, ia
	}
	folder := node.NewFolder(title, first, second)

	parent.Items = slices.Delete(parent.Items, hi, hi+1)
	parent.Items = slices.Delete(parent.Items, lo, lo+1)
	parent.Items = slices.Insert(parent.Items, lo, folder)

	d.nodes[folder.ID] = folder
	d.parents[folder.ID] = parent
	d.parents[aID] = folder
	d.parents[bID] = folder
	return folder, nil
}

// Rename sets the title of id.
func (d *Document) Rename(id, title string) error {
	n := d.Find(id)
	if n == nil {
		return fmt.Errorf("tree: rename %q: %w", id, ErrNotFound)
	}
	title, err := NormalizeTitle(title)
	if err != nil {
		return err
	}
	n.Title = title
	return nil
}

// SetContent replaces the text of the prompt id.
func (d *Document) SetContent(id, content string) error {
	n := d.Find(id)
	if n == nil {
		return fmt.Errorf("tree: set content %q: %w", id, ErrNotFound)
	}
	if !n.IsPrompt() {
		return fmt.Errorf("tree: set content %q: not a prompt: %w", id, ErrInvalidTarget)
	}
	n.Content = content
	return nil
}

// Reorder moves the item at oldIndex to newIndex within the folder parentID.
func (d *Document) Reorder(parentID string, oldIndex, newIndex int) error {
	parent := d.Find(parentID)
	if !parent.IsFolder() {
		return fmt.Errorf("tree: reorder %q: %w", parentID, ErrInvalidTarget)
	}
	size := len(parent.Items)
	if oldIndex < 0 || oldIndex >= size || newIndex < 0 || newIndex >= size {
		return fmt.Errorf("tree: reorder %q %d -> %d of %d: %w", parentID, oldIndex, newIndex, size, ErrIndexOutOfRange)
	}
	if oldIndex == newIndex {
		return nil
	}
	n := parent.Items[oldIndex]
	parent.Items = slices.Delete(parent.Items, oldIndex, oldIndex+1)
	parent.Items = slices.Insert(parent.Items, newIndex, n)
	return nil
}

// isSelfOrDescendant reports whether id is ancestorID or lies below it.
func (d *Document) isSelfOrDescendant(id, ancestorID string) bool {
	for cur := d.Find(id); cur != nil; cur = d.parents[cur.ID] {
		if cur.ID == ancestorID {
			return true
		}
	}
	return false
}

func insertAt(parent, n *node.Node, index int) {
	if index < 0 || index >= len(parent.Items) {
		parent.Items = append(parent.Items, n)
		return
	}
	parent.Items = slices.Insert(parent.Items, index, n)
}

// checkIDs assigns missing ids in the subtree n and rejects ids that are
// repeated within n or already present in the document.
func (d *Document) checkIDs(n *node.Node) error {
	seen := make(map[string]struct{})
	var err error
	n.Walk(func(c *node.Node, _ int) bool {
		if c.ID == "" {
			c.ID = node.NewID()
		}
		_, inDoc := d.nodes[c.ID]
		_, inSubtree := seen[c.ID]
		if inDoc || inSubtree {
			err = fmt.Errorf("tree: %q: %w", c.ID, ErrDuplicateID)
			return false
		}
		seen[c.ID] = struct{}{}
		return true
	})
	return err
}

func (d *Document) index(n, parent *node.Node) {
	d.nodes[n.ID] = n
	if parent != nil {
		d.parents[n.ID] = parent
	}
	for _, child := range n.Items {
		d.index(child, n)
	}
}

func (d *Document) unindex(n *node.Node) {
	n.Walk(func(c *node.Node, _ int) bool {
		delete(d.nodes, c.ID)
		delete(d.parents, c.ID)
		return true
	})
}
