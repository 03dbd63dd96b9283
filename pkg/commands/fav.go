package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/promptdock/pkg/commands/options"
	"tableflip.dev/promptdock/pkg/runner/fav"
)

func addFav(topLevel *cobra.Command, s *session) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "fav",
		Aliases: []string{"favorites"},
		Short:   "List favorite prompts",
		Example: `
promptdock fav
promptdock fav toggle 6f1c2a7e-0b1d-4c52-9f43-2d8a51e0a003
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := s.service()
			if err != nil {
				return err
			}
			f := fav.Fav{Action: fav.List, ShowID: io.ShowID, JSON: oo.JSON, Service: svc}
			err = f.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	for _, a := range []struct {
		action fav.Action
		short  string
	}{
		{fav.List, "List favorite prompts"},
		{fav.Add, "Mark a prompt as a favorite"},
		{fav.Remove, "Unmark a favorite"},
		{fav.Toggle, "Flip the favorite state of a prompt"},
	} {
		addFavAction(cmd, s, a.action, a.short)
	}

	topLevel.AddCommand(cmd)
}

func addFavAction(topLevel *cobra.Command, s *session, action fav.Action, short string) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	use := string(action) + " <id>"
	args := cobra.ExactArgs(1)
	if action == fav.List {
		use = string(action)
		args = cobra.NoArgs
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if action == fav.List || len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return nodeCompletions(s, toComplete, promptOnly), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := s.service()
			if err != nil {
				return err
			}
			f := fav.Fav{Action: action, ShowID: io.ShowID, JSON: oo.JSON, Service: svc}
			if len(args) == 1 {
				f.ID = args[0]
			}
			err = f.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}
	if action == fav.Remove {
		cmd.Aliases = []string{"remove"}
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
