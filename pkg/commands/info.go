package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/promptdock/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command, s *session) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where prompts are stored.",
		Example: `
promptdock info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := s.config()
			if err != nil {
				return err
			}
			p, err := s.persistence()
			if err != nil {
				return err
			}
			svc, err := s.service()
			if err != nil {
				return err
			}
			i := info.Info{
				Config:      cfg,
				Persistence: p,
				Service:     svc,
			}
			err = i.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
