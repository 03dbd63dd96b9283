package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/promptdock/pkg/glyph"
	"tableflip.dev/promptdock/pkg/node"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("00000000-0000-0000-0000-000000000000  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " prompt")
	default:
		_, _ = c.Fprintln(pp.out(), " prompts")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) id(id string) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	_, _ = y.Fprint(pp.out(), id)
	if pad := len(spacing) - len(id); pad > 0 {
		_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
	}
}

// Tree prints root's children indented by depth. favorite reports whether an
// id is a favorite and may be nil.
func (pp *PrettyPrint) Tree(root *node.Node, favorite func(id string) bool) {
	pp.TitleWithCount(root.Title, len(root.Prompts()))
	if len(root.Items) == 0 {
		pp.none()
		return
	}

	folder := color.New(color.Bold)
	plain := color.New()
	star := color.New(color.FgHiYellow)

	root.Walk(func(n *node.Node, depth int) bool {
		if n == root {
			return true
		}
		if pp.ShowID {
			pp.id(n.ID)
		}
		fav := favorite != nil && favorite(n.ID)
		_, _ = star.Fprintf(pp.out(), "%s ", glyph.Mark(fav))
		_, _ = plain.Fprintf(pp.out(), "%s%s ", strings.Repeat("  ", depth-1), glyph.For(n))
		if n.IsFolder() {
			_, _ = folder.Fprintln(pp.out(), n.Title)
		} else {
			_, _ = plain.Fprintln(pp.out(), n.Title)
		}
		return true
	})
	pp.NewLine()
}

// Prompt prints one node with its location and, for prompts, its content.
func (pp *PrettyPrint) Prompt(n *node.Node, path []string, favorite bool) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 80
	tbl.AddRow(glyph.Bold("ID"), n.ID)
	tbl.AddRow(glyph.Bold("Type"), string(n.Kind))
	tbl.AddRow(glyph.Bold("Title"), n.Title)
	tbl.AddRow(glyph.Bold("Path"), strings.Join(path, " / "))
	if favorite {
		tbl.AddRow(glyph.Bold("Favorite"), glyph.Favorite.String())
	}
	if n.IsFolder() {
		tbl.AddRow(glyph.Bold("Items"), fmt.Sprint(len(n.Items)))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)

	if n.IsPrompt() {
		pp.NewLine()
		if n.Content == "" {
			pp.none()
			return
		}
		_, _ = fmt.Fprintln(pp.out(), wordwrap.String(n.Content, 80))
	}
}

// Favorites prints the favorite prompts in display order.
func (pp *PrettyPrint) Favorites(prompts []*node.Node) {
	pp.TitleWithCount("Favorites", len(prompts))
	if len(prompts) == 0 {
		pp.none()
		return
	}
	t := color.New()
	for _, p := range prompts {
		if pp.ShowID {
			pp.id(p.ID)
		}
		_, _ = t.Fprintf(pp.out(), "%s %s %s\n", glyph.Favorite, glyph.For(p), p.Title)
	}
	pp.NewLine()
}
