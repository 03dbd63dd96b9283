// Package get prints the prompt tree or a single node.
package get

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/promptdock/pkg/app"
	"tableflip.dev/promptdock/pkg/node"
	"tableflip.dev/promptdock/pkg/printers"
)

// Get prints the whole tree, or the subtree under ID when set.
type Get struct {
	ID      string
	ShowID  bool
	JSON    bool
	Service *app.Service
	Out     io.Writer
}

func (n *Get) out() io.Writer {
	if n.Out == nil {
		return color.Output
	}
	return n.Out
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	root, err := n.Service.Tree(ctx)
	if err != nil {
		return err
	}
	if n.ID != "" {
		it, err := n.Service.Get(ctx, n.ID)
		if err != nil {
			return err
		}
		root = it.Node
	}

	if n.JSON {
		data, err := node.Serialize(root)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(n.out(), string(data))
		return err
	}

	favs, err := n.Service.Favorites(ctx)
	if err != nil {
		return err
	}
	marked := make(map[string]bool, len(favs))
	for _, f := range favs {
		marked[f.ID] = true
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.out()}
	pp.NewLine()
	if !root.IsFolder() {
		it, err := n.Service.Get(ctx, root.ID)
		if err != nil {
			return err
		}
		pp.Prompt(it.Node, it.Path, it.Favorite)
		return nil
	}
	pp.Tree(root, func(id string) bool { return marked[id] })
	return nil
}
