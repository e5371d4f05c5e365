package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
)

const defaultSeedCount = 10

func newSeedCmd(s *session) *cobra.Command {
	var (
		count int
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert fabricated demo clients",
		Long: "Insert --count valid demo clients. Use --db to seed a specific database\n" +
			"file and --seed to make the generated data reproducible.",
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return usageError{fmt.Errorf("--count must be at least 1, got %d", count)}
			}
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}

			ctl, closeFn, err := s.open()
			if err != nil {
				return err
			}
			defer closeFn()

			rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
			ids, err := ctl.Seed(count, rng)
			if err != nil {
				return err
			}
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"ids": ids})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d clients (ids %d-%d)\n", len(ids), ids[0], ids[len(ids)-1])
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", defaultSeedCount, "number of clients to insert")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: time based)")
	return cmd
}
