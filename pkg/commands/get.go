package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/promptdock/pkg/commands/options"
	"tableflip.dev/promptdock/pkg/runner/get"
)

func addTree(topLevel *cobra.Command, s *session) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "tree [folder-id]",
		Aliases: []string{"ls", "get"},
		Short:   "Print the folder and prompt tree",
		Example: `
promptdock tree
promptdock tree --show-id
promptdock tree 6f1c2a7e-0b1d-4c52-9f43-2d8a51e0a002 --json
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return nodeCompletions(s, toComplete, folderOnly), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := s.service()
			if err != nil {
				return err
			}
			g := get.Get{
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
				Service: svc,
			}
			if len(args) == 1 {
				g.ID = args[0]
			}
			err = g.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command, s *session) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a prompt with its content, or a folder's details",
		Example: `
promptdock show 6f1c2a7e-0b1d-4c52-9f43-2d8a51e0a003
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires an id")
			}
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nodeCompletions(s, toComplete, anyNode), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := s.service()
			if err != nil {
				return err
			}
			g := get.Show{Get: get.Get{ID: args[0], JSON: oo.JSON, Service: svc}}
			err = g.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
