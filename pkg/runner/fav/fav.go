// Package fav provides the runner logic for managing favorite prompts.
package fav

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/promptdock/pkg/app"
	"tableflip.dev/promptdock/pkg/printers"
)

type Action string

const (
	List   Action = "list"
	Add    Action = "add"
	Remove Action = "rm"
	Toggle Action = "toggle"
)

// Fav changes or lists favorites. Every action ends by printing the list.
type Fav struct {
	Action  Action
	ID      string
	ShowID  bool
	JSON    bool
	Service *app.Service
	Out     io.Writer
}

func (n *Fav) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not manage favorites, no service")
	}

	var err error
	switch n.Action {
	case List, "":
	case Add:
		err = n.Service.AddFavorite(ctx, n.ID)
	case Remove:
		err = n.Service.RemoveFavorite(ctx, n.ID)
	case Toggle:
		_, err = n.Service.ToggleFavorite(ctx, n.ID)
	default:
		err = fmt.Errorf("unknown favorites action %q", n.Action)
	}
	if err != nil {
		return err
	}

	prompts, err := n.Service.Favorites(ctx)
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.JSON {
		type fav struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		}
		list := make([]fav, 0, len(prompts))
		for _, p := range prompts {
			list = append(list, fav{ID: p.ID, Title: p.Title})
		}
		b, err := json.Marshal(list)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.NewLine()
	pp.Favorites(prompts)
	return nil
}
