// Package key provides CLI helpers to display the symbol legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/promptdock/pkg/glyph"
)

// Key prints a glyph legend describing node symbols and markers.
type Key struct {
	Out io.Writer
}

// Do renders the symbol and marker keys.
func (k *Key) Do(ctx context.Context) error {
	if k.Out == nil {
		k.Out = color.Output
	}
	_, _ = fmt.Fprintln(k.Out, "")
	k.Key(ctx, glyph.DefaultGlyphs(), false)
	_, _ = fmt.Fprintln(k.Out, "")
	k.Key(ctx, glyph.DefaultGlyphs(), true)
	_, _ = fmt.Fprintln(k.Out, "")
	return nil
}

// Key renders a glyph table; when marker is true, markers are shown.
func (k *Key) Key(_ context.Context, glyfs []glyph.Glyph, marker bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if marker {
		tbl.AddRow(bold.Sprint("Markers"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("Symbols"), bold.Sprint("Meaning"))
	}
	for _, v := range glyfs {
		if marker == v.Marker && v.Symbol != " " {
			tbl.AddRow(v.Symbol, v.Meaning)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.Out, tbl)
}
