package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/promptdock/pkg/commands/options"
	"tableflip.dev/promptdock/pkg/node"
	"tableflip.dev/promptdock/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command, s *session) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a folder or prompt",
		Example: `
promptdock add folder Writing
promptdock add prompt Summarize --content "Summarize this in three bullets."
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addNode(cmd, s, node.KindFolder)
	addNode(cmd, s, node.KindPrompt)

	topLevel.AddCommand(cmd)
}

func addNode(topLevel *cobra.Command, s *session, kind node.Kind) {
	po := &options.PlacementOptions{}
	io := &options.IDOptions{}
	var (
		title   string
		content string
	)

	cmd := &cobra.Command{
		Use:   string(kind) + " <title...>",
		Short: "Add a " + string(kind),
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := s.service()
			if err != nil {
				return err
			}
			a := add.Add{
				Kind:     kind,
				ParentID: po.ParentID,
				Title:    title,
				Content:  content,
				Index:    po.Index,
				ShowID:   io.ShowID,
				Service:  svc,
			}
			err = a.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddParentArgs(cmd, po)
	options.AddIndexArgs(cmd, po)
	options.AddShowIDArgs(cmd, io)
	if kind == node.KindPrompt {
		cmd.Flags().StringVarP(&content, "content", "c", "", "Body of the prompt.")
	}
	_ = cmd.RegisterFlagCompletionFunc("parent", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return nodeCompletions(s, toComplete, folderOnly), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
