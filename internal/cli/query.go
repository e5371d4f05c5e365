package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/clientbook/pkg/types"
)

func newListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every client ordered by id",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl, closeFn, err := s.open()
			if err != nil {
				return err
			}
			defer closeFn()

			all, err := ctl.List()
			if err != nil {
				return err
			}
			return s.printClients(cmd, all)
		},
	}
}

func newShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one client",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			id, err := parseID(argv[0])
			if err != nil {
				return err
			}
			ctl, closeFn, err := s.open()
			if err != nil {
				return err
			}
			defer closeFn()

			c, err := ctl.Get(id)
			if err != nil {
				return err
			}
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), c)
			}
			return writeClient(cmd.OutOrStdout(), c)
		},
	}
}

func newSearchCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "search [name]",
		Short: "List clients whose name contains the given text",
		Long: "Search matches the name case-insensitively and orders the result by name.\n" +
			"Without an argument every client is listed.",
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			var query string
			if len(argv) == 1 {
				query = argv[0]
			}
			ctl, closeFn, err := s.open()
			if err != nil {
				return err
			}
			defer closeFn()

			found, err := ctl.Search(query)
			if err != nil {
				return err
			}
			return s.printClients(cmd, found)
		},
	}
}

func newCountCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of clients",
		Args:  usageArgs(cobra.NoArgs),
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
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]int{"count": n})
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func (s *session) printClients(cmd *cobra.Command, clients []*types.Client) error {
	if s.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), clients)
	}
	if len(clients) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No clients.")
		return nil
	}
	return writeClients(cmd.OutOrStdout(), clients)
}

// parseID converts a command-line argument into a client id.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError{fmt.Errorf("invalid client id %q: must be a positive integer", arg)}
	}
	return id, nil
}
