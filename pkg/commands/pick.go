package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/promptdock/pkg/runner/pick"
)

func addPick(topLevel *cobra.Command, s *session) {
	var favorites bool

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a prompt interactively and print its content",
		Example: `
promptdock pick | pbcopy
promptdock pick --favorites
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := s.service()
			if err != nil {
				return err
			}
			p := pick.Pick{Favorites: favorites, Service: svc, Out: cmd.OutOrStdout()}
			err = p.Do(cmd.Context())
			if errors.Is(err, pick.ErrNotTerminal) {
				return output.HandleError(errors.New("pick needs a terminal; use `promptdock show <id>` in scripts"))
			}
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&favorites, "favorites", false, "Only offer favorite prompts.")
	topLevel.AddCommand(cmd)
}
