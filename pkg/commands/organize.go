package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/promptdock/pkg/commands/options"
	"tableflip.dev/promptdock/pkg/runner/organize"
)

func addMove(topLevel *cobra.Command, s *session) {
	po := &options.PlacementOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "mv <id> <folder-id>",
		Aliases: []string{"move"},
		Short:   "Move a folder or prompt into another folder",
		Long: `Move a folder or prompt into another folder. A folder can not be moved
into itself or any folder below it. When moving within the same folder, --index
is the position after the node has been taken out.`,
		Example: `
promptdock mv 6f1c2a7e-0b1d-4c52-9f43-2d8a51e0a008 6f1c2a7e-0b1d-4c52-9f43-2d8a51e0a002 --index 0
`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return nodeCompletions(s, toComplete, anyNode), cobra.ShellCompDirectiveNoFileComp
			case 1:
				return nodeCompletions(s, toComplete, folderOnly), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := s.service()
			if err != nil {
				return err
			}
			m := organize.Move{
				ID:       args[0],
				TargetID: args[1],
				Index:    po.Index,
				ShowID:   io.ShowID,
				Service:  svc,
			}
			err = m.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddIndexArgs(cmd, po)
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addCombine(topLevel *cobra.Command, s *session) {
	io := &options.IDOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "combine <id> <id>",
		Short: "Wrap two siblings in a new folder",
		Example: `
promptdock combine 6f1c2a7e-0b1d-4c52-9f43-2d8a51e0a003 6f1c2a7e-0b1d-4c52-9f43-2d8a51e0a004 --title Editing
`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 1 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return nodeCompletions(s, toComplete, anyNode), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := s.service()
			if err != nil {
				return err
			}
			if title == "" {
				cfg, err := s.config()
				if err != nil {
					return err
				}
				title = cfg.DefaultFolderTitle()
			}
			c := organize.Combine{
				A:       args[0],
				B:       args[1],
				Title:   title,
				ShowID:  io.ShowID,
				Service: svc,
			}
			err = c.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Title of the new folder. Defaults to the configured default-title.")
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addReorder(topLevel *cobra.Command, s *session) {
	po := &options.PlacementOptions{}
	io := &options.IDOptions{}
	var from, to int

	cmd := &cobra.Command{
		Use:   "reorder <from> <to>",
		Short: "Move an item to another position within its folder",
		Example: `
promptdock reorder 0 2
promptdock reorder 1 0 --parent 6f1c2a7e-0b1d-4c52-9f43-2d8a51e0a002
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("requires two positions, got %d args", len(args))
			}
			var err error
			if from, err = strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}
			if to, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := s.service()
			if err != nil {
				return err
			}
			r := organize.Reorder{
				ParentID: po.ParentID,
				From:     from,
				To:       to,
				ShowID:   io.ShowID,
				Service:  svc,
			}
			err = r.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddParentArgs(cmd, po)
	options.AddShowIDArgs(cmd, io)
	_ = cmd.RegisterFlagCompletionFunc("parent", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return nodeCompletions(s, toComplete, folderOnly), cobra.ShellCompDirectiveNoFileComp
	})
	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command, s *session) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a folder or prompt and everything under it",
		Example: `
promptdock rm 6f1c2a7e-0b1d-4c52-9f43-2d8a51e0a008
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return nodeCompletions(s, toComplete, anyNode), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := s.service()
			if err != nil {
				return err
			}
			r := organize.Remove{ID: args[0], Service: svc}
			err = r.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
