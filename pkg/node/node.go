// Package node defines the folder/prompt tree nodes and their wire format.
package node

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies which variant of Node a value is.
type Kind string

const (
	// KindFolder holds an ordered list of child nodes.
	KindFolder Kind = "folder"
	// KindPrompt is a leaf holding prompt text.
	KindPrompt Kind = "prompt"
)

// AllKinds returns the supported node kinds.
func AllKinds() []Kind {
	return []Kind{KindFolder, KindPrompt}
}

// ParseKind converts a string to a Kind or returns an error for unknown values.
func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range AllKinds() {
		if candidate == k {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("node: unknown type %q", raw)
}

// Node is either a folder or a prompt. Folders use Items, prompts use
// Content. A node does not know its parent; see tree.Document.
type Node struct {
	ID      string
	Kind    Kind
	Title   string
	Items   []*Node
	Content string
}

// NewID returns a random identifier in UUID v4 form.
func NewID() string {
	return uuid.NewString()
}

// NewFolder creates a folder with a fresh id.
func NewFolder(title string, items ...*Node) *Node {
	if items == nil {
		items = []*Node{}
	}
	return &Node{
		ID:    NewID(),
		Kind:  KindFolder,
		Title: title,
		Items: items,
	}
}

// NewPrompt creates a prompt with a fresh id.
func NewPrompt(title, content string) *Node {
	return &Node{
		ID:      NewID(),
		Kind:    KindPrompt,
		Title:   title,
		Content: content,
	}
}

func (n *Node) IsFolder() bool {
	return n != nil && n.Kind == KindFolder
}

func (n *Node) IsPrompt() bool {
	return n != nil && n.Kind == KindPrompt
}

// IndexOf returns the position of the direct child with id, or -1.
func (n *Node) IndexOf(id string) int {
	if n == nil {
		return -1
	}
	for i, child := range n.Items {
		if child != nil && child.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{
		ID:      n.ID,
		Kind:    n.Kind,
		Title:   n.Title,
		Content: n.Content,
	}
	if n.Items != nil {
		cp.Items = make([]*Node, 0, len(n.Items))
		for _, child := range n.Items {
			cp.Items = append(cp.Items, child.Clone())
		}
	}
	return cp
}

// Walk visits n and its descendants depth first, children in order. Returning
// false from fn stops the walk.
func (n *Node) Walk(fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n, depth) {
		return false
	}
	for _, child := range n.Items {
		if !walk(child, depth+1, fn) {
			return false
		}
	}
	return true
}

// Prompts returns every prompt in the subtree in walk order.
func (n *Node) Prompts() []*Node {
	var out []*Node
	n.Walk(func(c *Node, _ int) bool {
		if c.IsPrompt() {
			out = append(out, c)
		}
		return true
	})
	return out
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %q (%s)", n.Kind, n.Title, n.ID)
}
