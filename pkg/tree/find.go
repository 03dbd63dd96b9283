package tree

import "tableflip.dev/promptdock/pkg/node"

// FindByID walks root depth first, children in order, and returns the first
// node with id. It returns nil for an empty or unknown id.
func FindByID(root *node.Node, id string) *node.Node {
	if id == "" {
		return nil
	}
	var found *node.Node
	root.Walk(func(n *node.Node, _ int) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindParent returns the folder whose items directly contain id. It returns
// nil when id is the root or unknown.
func FindParent(root *node.Node, id string) *node.Node {
	if id == "" {
		return nil
	}
	var parent *node.Node
	root.Walk(func(n *node.Node, _ int) bool {
		if n.IsFolder() && n.IndexOf(id) >= 0 {
			parent = n
			return false
		}
		return true
	})
	return parent
}
