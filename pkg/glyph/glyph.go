package glyph

import (
	"fmt"

	"tableflip.dev/promptdock/pkg/node"
)

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Marker  bool
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	faintCode     = 2
	underlineCode = 4
)

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Faint(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, faintCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

type Symbol int

const (
	Folder Symbol = iota
	EmptyFolder
	Prompt
	EmptyPrompt
	Favorite Symbol = iota
	None
)

func DefaultGlyphs() []Glyph {
	return []Glyph{{
		Key:     "folder",
		Symbol:  "▾",
		Meaning: "folder",
	}, {
		Key:     "empty",
		Symbol:  "▹",
		Meaning: "empty folder",
	}, {
		Key:     "prompt",
		Symbol:  "•",
		Meaning: "prompt",
	}, {
		Key:     "blank",
		Symbol:  "◦",
		Meaning: "prompt without content",
	}, {
		Key:     "fav",
		Symbol:  "★",
		Meaning: "favorite",
		Marker:  true,
	}, {
		Key:     " ",
		Symbol:  " ",
		Meaning: "none",
		Marker:  true,
	}}
}

func (g Glyph) String() string {
	return g.Symbol
}

func (s Symbol) Glyph() Glyph {
	return DefaultGlyphs()[s]
}

func (s Symbol) String() string {
	return s.Glyph().String()
}

// For picks the symbol that describes n.
func For(n *node.Node) Symbol {
	switch {
	case n.IsFolder() && len(n.Items) == 0:
		return EmptyFolder
	case n.IsFolder():
		return Folder
	case n.Content == "":
		return EmptyPrompt
	default:
		return Prompt
	}
}

// Mark returns the marker glyph for a node's favorite state.
func Mark(favorite bool) Symbol {
	if favorite {
		return Favorite
	}
	return None
}
