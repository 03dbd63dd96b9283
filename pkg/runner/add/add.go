// Package add provides the runner logic for creating folders and prompts.
package add

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/promptdock/pkg/app"
	"tableflip.dev/promptdock/pkg/node"
	"tableflip.dev/promptdock/pkg/printers"
)

// Add creates a folder or prompt under ParentID and prints the parent folder.
type Add struct {
	Kind     node.Kind
	ParentID string
	Title    string
	Content  string
	// Index is the position among the parent's items; negative appends.
	Index int

	ShowID  bool
	Service *app.Service
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}

	var (
		created *node.Node
		err     error
	)
	switch n.Kind {
	case node.KindFolder:
		created, err = n.Service.AddFolder(ctx, n.ParentID, n.Title, n.Index)
	case node.KindPrompt:
		created, err = n.Service.AddPrompt(ctx, n.ParentID, n.Title, n.Content, n.Index)
	default:
		return errors.New("can not add, unknown kind " + string(n.Kind))
	}
	if err != nil {
		return err
	}

	it, err := n.Service.Get(ctx, created.ID)
	if err != nil {
		return err
	}
	parent, err := n.Service.Get(ctx, it.ParentID)
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.NewLine()
	pp.Tree(parent.Node, nil)
	return nil
}
