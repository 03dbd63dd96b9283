// Package pick lets the user choose a prompt interactively and prints its
// content, ready to be piped elsewhere.
package pick

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"tableflip.dev/promptdock/pkg/app"
	"tableflip.dev/promptdock/pkg/glyph"
	"tableflip.dev/promptdock/pkg/node"
)

// ErrNotTerminal is returned when stdin is not interactive.
var ErrNotTerminal = errors.New("pick needs an interactive terminal")

// Choice is one selectable prompt.
type Choice struct {
	ID       string
	Title    string
	Path     string
	Favorite bool
	Content  string
}

// Pick shows every prompt, favorites first, and prints the chosen content.
type Pick struct {
	Favorites bool
	Service   *app.Service
	In        io.ReadCloser
	Out       io.Writer
	// Select runs the selection; nil uses a promptui list.
	Select func(choices []Choice) (int, error)
}

func (n *Pick) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not pick, no service")
	}
	choices, err := Choices(ctx, n.Service, n.Favorites)
	if err != nil {
		return err
	}
	if len(choices) == 0 {
		return errors.New("no prompts to pick from")
	}

	sel := n.Select
	if sel == nil {
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return ErrNotTerminal
		}
		sel = n.promptui
	}
	i, err := sel(choices)
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintln(out, choices[i].Content)
	return err
}

// Choices lists prompts with favorites first, each group in tree order.
func Choices(ctx context.Context, svc *app.Service, favoritesOnly bool) ([]Choice, error) {
	favs, err := svc.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	root, err := svc.Tree(ctx)
	if err != nil {
		return nil, err
	}

	paths := map[string]string{}
	var walk func(n *node.Node, prefix []string)
	walk = func(n *node.Node, prefix []string) {
		for _, child := range n.Items {
			path := append(append([]string{}, prefix...), child.Title)
			paths[child.ID] = strings.Join(path, " / ")
			walk(child, path)
		}
	}
	walk(root, nil)

	choices := make([]Choice, 0, len(paths))
	seen := make(map[string]bool, len(favs))
	for _, f := range favs {
		seen[f.ID] = true
		choices = append(choices, Choice{ID: f.ID, Title: f.Title, Path: paths[f.ID], Favorite: true, Content: f.Content})
	}
	if favoritesOnly {
		return choices, nil
	}
	for _, p := range root.Prompts() {
		if seen[p.ID] {
			continue
		}
		choices = append(choices, Choice{ID: p.ID, Title: p.Title, Path: paths[p.ID], Content: p.Content})
	}
	return choices, nil
}

// Matches reports whether input appears in the choice's path, ignoring case
// and spaces.
func Matches(c Choice, input string) bool {
	name := strings.ReplaceAll(strings.ToLower(c.Path), " ", "")
	input = strings.ReplaceAll(strings.ToLower(input), " ", "")
	return strings.Contains(name, input)
}

func (n *Pick) promptui(choices []Choice) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ if .Favorite }}" + glyph.Favorite.String() + " {{ end }}{{ .Path | cyan }}",
		Inactive: "   {{ if .Favorite }}" + glyph.Favorite.String() + " {{ end }}{{ .Path }}",
		Selected: "➜  {{ .Title | bold }}",
		Details: `
--------- Content ----------
{{ .Content }}
`,
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Prompts",
		Items:     choices,
		Templates: templates,
		Size:      10,
		Searcher: func(input string, index int) bool {
			return Matches(choices[index], input)
		},
		Stdin:  n.In,
		Stdout: os.Stderr,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("prompt failed: %w", err)
	}
	return i, nil
}
