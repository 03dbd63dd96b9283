package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/promptdock/pkg/app"
	"tableflip.dev/promptdock/pkg/node"
	"tableflip.dev/promptdock/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Service     *app.Service
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("PROMPTDOCK_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "PROMPTDOCK_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "PROMPTDOCK_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.default-title: ", n.Config.DefaultFolderTitle())

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	_, _ = fmt.Fprintf(out, "Keys:\n")
	keys := n.Persistence.Keys(ctx)
	for _, k := range keys {
		_, _ = fmt.Fprintf(out, "  %s\n", k)
	}
	if len(keys) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "nothing stored yet")
	}

	if n.Service != nil {
		root, err := n.Service.Tree(ctx)
		if err != nil {
			return err
		}
		favs, err := n.Service.Favorites(ctx)
		if err != nil {
			return err
		}
		folders, prompts := 0, 0
		root.Walk(func(nd *node.Node, _ int) bool {
			if nd.IsFolder() {
				folders++
			} else {
				prompts++
			}
			return true
		})
		_, _ = fmt.Fprintf(out, "Tree: %d folders, %d prompts, %d favorites\n", folders-1, prompts, len(favs))
	}
	return nil
}
