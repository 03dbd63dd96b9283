// Package watch follows the store and reprints the tree when another process
// changes it.
package watch

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"tableflip.dev/promptdock/pkg/app"
	"tableflip.dev/promptdock/pkg/runner/get"
)

type Watch struct {
	ShowID bool
	// Clear wipes the screen before each reprint.
	Clear   bool
	Service *app.Service
	Logger  *zap.Logger
	Out     io.Writer
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not watch, no service")
	}
	log := n.Logger
	if log == nil {
		log = zap.NewNop()
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	show := &get.Get{ShowID: n.ShowID, Service: n.Service, Out: out}
	if err := show.Do(ctx); err != nil {
		return err
	}

	events, err := n.Service.Watch(ctx)
	if err != nil {
		return err
	}
	for ev := range events {
		changed, err := n.Service.Reload(ctx, ev)
		if err != nil {
			log.Warn("reload failed", zap.Stringer("event", ev.Type), zap.Error(err))
			continue
		}
		if !changed {
			continue
		}
		log.Debug("store changed", zap.Stringer("event", ev.Type))
		if n.Clear {
			termenv.NewOutput(out).ClearScreen()
		}
		if err := show.Do(ctx); err != nil {
			return err
		}
	}
	return nil
}
