package commands

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/promptdock/pkg/runner/edit"
)

func addRename(topLevel *cobra.Command, s *session) {
	var title string

	cmd := &cobra.Command{
		Use:   "rename <id> <title...>",
		Short: "Rename a folder or prompt",
		Example: `
promptdock rename 6f1c2a7e-0b1d-4c52-9f43-2d8a51e0a002 Drafting
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires an id and a title")
			}
			title = strings.Join(args[1:], " ")
			return nil
		},
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
			r := edit.Rename{ID: args[0], Title: title, Service: svc}
			err = r.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command, s *session) {
	var (
		content   string
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace the content of a prompt",
		Example: `
promptdock edit 6f1c2a7e-0b1d-4c52-9f43-2d8a51e0a003 --content "New body"
pbpaste | promptdock edit 6f1c2a7e-0b1d-4c52-9f43-2d8a51e0a003 --stdin
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return nodeCompletions(s, toComplete, promptOnly), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if fromStdin {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				content = string(b)
			} else if !cmd.Flags().Changed("content") {
				return output.HandleError(errors.New("requires --content or --stdin"))
			}
			svc, err := s.service()
			if err != nil {
				return err
			}
			e := edit.Content{ID: args[0], Content: content, Service: svc}
			err = e.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "New body of the prompt.")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the new body from stdin.")

	topLevel.AddCommand(cmd)
}
