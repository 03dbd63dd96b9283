// Package organize provides runners that restructure the tree.
package organize

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

// Move re-parents a node into a folder.
type Move struct {
	ID       string
	TargetID string
	Index    int
	ShowID   bool
	Service  *app.Service
	Out      io.Writer
}

func (n *Move) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not move, no service")
	}
	if err := n.Service.Move(ctx, n.ID, n.TargetID, n.Index); err != nil {
		return err
	}
	return printFolder(ctx, n.Service, n.TargetID, n.ShowID, n.Out)
}

// Combine wraps two sibling nodes in a new folder.
type Combine struct {
	A, B    string
	Title   string
	ShowID  bool
	Service *app.Service
	Out     io.Writer
}

func (n *Combine) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not combine, no service")
	}
	folder, err := n.Service.Combine(ctx, n.A, n.B, n.Title)
	if err != nil {
		return err
	}
	return printFolder(ctx, n.Service, folder.ID, n.ShowID, n.Out)
}

// Reorder moves a child within its folder.
type Reorder struct {
	ParentID string
	From, To int
	ShowID   bool
	Service  *app.Service
	Out      io.Writer
}

func (n *Reorder) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not reorder, no service")
	}
	if err := n.Service.Reorder(ctx, n.ParentID, n.From, n.To); err != nil {
		return err
	}
	parentID := n.ParentID
	if parentID == "" {
		var err error
		if parentID, err = n.Service.RootID(ctx); err != nil {
			return err
		}
	}
	return printFolder(ctx, n.Service, parentID, n.ShowID, n.Out)
}

// Remove deletes a node and everything under it.
type Remove struct {
	ID      string
	Service *app.Service
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	removed, err := n.Service.Remove(ctx, n.ID)
	if err != nil {
		return err
	}
	count := 0
	removed.Walk(func(_ *node.Node, _ int) bool {
		count++
		return true
	})
	_, err = fmt.Fprintf(out(n.Out), "removed %s (%d nodes)\n", removed, count)
	return err
}

func printFolder(ctx context.Context, svc *app.Service, id string, showID bool, w io.Writer) error {
	it, err := svc.Get(ctx, id)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: showID, Out: out(w)}
	pp.NewLine()
	pp.Tree(it.Node, nil)
	return nil
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
