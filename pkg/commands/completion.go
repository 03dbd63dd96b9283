package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/promptdock/pkg/node"
)

func addCompletions(topLevel *cobra.Command, _ *session) {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate shell completion scripts",
		Long: `Completions include folder and prompt ids, described by their titles.

To load bash completion run

. <(promptdock completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(promptdock completion)
`,
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return err
			}
			return cobra.OnlyValidArgs(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}
			out := cmd.OutOrStdout()
			switch shell {
			case "zsh":
				return topLevel.GenZshCompletion(out)
			case "fish":
				return topLevel.GenFishCompletion(out, true)
			default:
				return topLevel.GenBashCompletionV2(out, true)
			}
		},
	}

	topLevel.AddCommand(cmd)
}

type nodeFilter func(n *node.Node) bool

func anyNode(*node.Node) bool { return true }

func folderOnly(n *node.Node) bool { return n.IsFolder() }

func promptOnly(n *node.Node) bool { return n.IsPrompt() }

// nodeCompletions offers ids with their titles as descriptions.
func nodeCompletions(s *session, toComplete string, keep nodeFilter) []string {
	svc, err := s.service()
	if err != nil {
		return nil
	}
	root, err := svc.Tree(context.Background())
	if err != nil {
		return nil
	}
	var out []string
	root.Walk(func(n *node.Node, _ int) bool {
		if keep(n) && strings.HasPrefix(n.ID, toComplete) {
			out = append(out, n.ID+"\t"+n.Title)
		}
		return true
	})
	return out
}
