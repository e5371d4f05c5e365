package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write every client to a JSONL file",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			ctl, closeFn, err := s.open()
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := ctl.Export(argv[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d clients to %s\n", n, argv[0])
			return nil
		},
	}
}

func newImportCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore clients from a JSONL file written by export",
		Long: "Restore the clients of a JSONL file with their ids. Every record is\n" +
			"validated first; if any record is invalid or its id is taken, nothing\n" +
			"is imported.",
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			ctl, closeFn, err := s.open()
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := ctl.Import(argv[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d clients from %s\n", n, argv[0])
			return nil
		},
	}
}
