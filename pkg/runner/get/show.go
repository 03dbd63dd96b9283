package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/promptdock/pkg/app"
	"tableflip.dev/promptdock/pkg/printers"
)

// Show prints one node with its path and content.
type Show struct {
	Get
}

type shown struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Path     []string `json:"path"`
	ParentID string   `json:"parentId,omitempty"`
	Favorite bool     `json:"favorite"`
	Content  *string  `json:"content,omitempty"`
	Items    *int     `json:"items,omitempty"`
}

func toShown(it *app.Item) shown {
	s := shown{
		ID:       it.Node.ID,
		Type:     string(it.Node.Kind),
		Title:    it.Node.Title,
		Path:     it.Path,
		ParentID: it.ParentID,
		Favorite: it.Favorite,
	}
	if s.Path == nil {
		s.Path = []string{}
	}
	if it.Node.IsPrompt() {
		s.Content = &it.Node.Content
	} else {
		count := len(it.Node.Items)
		s.Items = &count
	}
	return s
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no service")
	}
	it, err := n.Service.Get(ctx, n.ID)
	if err != nil {
		return err
	}
	if n.JSON {
		b, err := json.MarshalIndent(toShown(it), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(n.out(), string(b))
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.out()}
	pp.NewLine()
	pp.Prompt(it.Node, it.Path, it.Favorite)
	return nil
}
