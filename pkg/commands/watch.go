package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/promptdock/pkg/commands/options"
	"tableflip.dev/promptdock/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command, s *session) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the tree and reprint it whenever another process changes it",
		Example: `
promptdock watch --show-id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := s.service()
			if err != nil {
				return err
			}
			w := watch.Watch{
				ShowID:  io.ShowID,
				Clear:   isatty.IsTerminal(os.Stdout.Fd()),
				Service: svc,
				Logger:  s.zap(),
			}
			err = w.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
