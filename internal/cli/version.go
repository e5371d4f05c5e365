package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the clientbook release, overridden at build time with
// -ldflags "-X github.com/mesh-intelligence/clientbook/internal/cli.Version=...".
var Version = "0.1.0-dev"

const modulePath = "github.com/mesh-intelligence/clientbook"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the clientbook version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "clientbook v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
