package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and the client database",
		Long: "Write a default config.yaml when none exists, then create the database\n" +
			"file and the clients table. Running init again is harmless.",
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl, closeFn, err := s.open()
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := ctl.Count()
			if err != nil {
				return err
			}
			cfg, err := s.storeConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Client database ready at %s (%d clients)\n", cfg.Path, n)
			return nil
		},
	}
}
