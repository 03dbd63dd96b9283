package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/promptdock/pkg/app"
	"tableflip.dev/promptdock/pkg/commands/options"
	"tableflip.dev/promptdock/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command, s *session) {
	fo := &options.FormatOptions{}
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole tree to a file",
		Example: `
promptdock export
promptdock export -o backup.yaml --format yaml
promptdock export -o - | jq .
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := s.service()
			if err != nil {
				return err
			}
			e := transfer.Export{Path: path, Format: fo.Format, Service: svc, Out: cmd.OutOrStdout()}
			err = e.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&path, "output", "o", "", "File to write, or - for stdout. Defaults to "+transfer.DefaultExportFile+" or its .yaml twin.")
	options.AddFormatArgs(cmd, fo, app.FormatJSON)
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command, s *session) {
	fo := &options.FormatOptions{}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole tree with the contents of a file",
		Long: `Replace the whole tree with the contents of a file written by export.
Favorites that no longer name a prompt are dropped. The format follows the file
extension unless --format is given.`,
		Example: `
promptdock import prompts.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := s.service()
			if err != nil {
				return err
			}
			i := transfer.Import{Path: args[0], Format: fo.Format, Service: svc, Out: cmd.OutOrStdout()}
			err = i.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddFormatArgs(cmd, fo, "")
	topLevel.AddCommand(cmd)
}
