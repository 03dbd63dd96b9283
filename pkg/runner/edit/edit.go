// Package edit provides runners that change a node in place.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/promptdock/pkg/app"
)

// Rename sets a node's title.
type Rename struct {
	ID      string
	Title   string
	Service *app.Service
	Out     io.Writer
}

func (n *Rename) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not rename, no service")
	}
	if err := n.Service.Rename(ctx, n.ID, n.Title); err != nil {
		return err
	}
	it, err := n.Service.Get(ctx, n.ID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out(n.Out), "renamed %s to %q\n", n.ID, it.Node.Title)
	return err
}

// Content replaces a prompt's body.
type Content struct {
	ID      string
	Content string
	Service *app.Service
	Out     io.Writer
}

func (n *Content) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	if err := n.Service.SetContent(ctx, n.ID, n.Content); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out(n.Out), "updated %s (%d bytes)\n", n.ID, len(n.Content))
	return err
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
