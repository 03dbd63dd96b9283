// Package transfer exports and imports the whole prompt tree as a file.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/promptdock/pkg/app"
)

// DefaultExportFile is used when no output path is given.
const DefaultExportFile = "prompts.json"

// Export writes the tree to Path, or to Out when Path is "-".
type Export struct {
	Path    string
	Format  app.Format
	Service *app.Service
	Out     io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}
	data, err := n.Service.Export(ctx, n.Format)
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.Path == "-" {
		_, err = out.Write(data)
		return err
	}
	path := n.Path
	if path == "" {
		path = DefaultExportFile
		if n.Format == app.FormatYAML {
			path = strings.TrimSuffix(path, ".json") + ".yaml"
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	_, err = fmt.Fprintf(out, "exported %d bytes to %s\n", len(data), path)
	return err
}

// Import replaces the tree with the contents of Path. The format follows the
// file extension unless Format is set.
type Import struct {
	Path    string
	Format  app.Format
	Service *app.Service
	Out     io.Writer
}

// FormatForPath picks yaml for .yaml/.yml files and json otherwise.
func FormatForPath(path string) app.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return app.FormatYAML
	default:
		return app.FormatJSON
	}
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no service")
	}
	data, err := os.ReadFile(n.Path)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	format := n.Format
	if format == "" {
		format = FormatForPath(n.Path)
	}
	count, err := n.Service.Import(ctx, data, format)
	if err != nil {
		return fmt.Errorf("import %s: %w", n.Path, err)
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, err = fmt.Fprintf(out, "imported %d nodes from %s\n", count, n.Path)
	return err
}
