package store

import (
	_ "embed"
	"fmt"

	"tableflip.dev/promptdock/pkg/node"
)

//go:embed default_tree.json
var defaultTree []byte

// DefaultTree returns a fresh copy of the bundled starter document, used when
// nothing is stored yet or the stored tree cannot be read.
func DefaultTree() (*node.Node, error) {
	root, err := node.Deserialize(defaultTree)
	if err != nil {
		return nil, fmt.Errorf("store: bundled default: %w", err)
	}
	return root, nil
}
