// Package cli implements the clientbook command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/clientbook/internal/controller"
	"github.com/mesh-intelligence/clientbook/internal/logging"
	"github.com/mesh-intelligence/clientbook/internal/paths"
	"github.com/mesh-intelligence/clientbook/internal/sqlite"
	"github.com/mesh-intelligence/clientbook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// usageError marks bad command-line input: unknown flags, wrong argument
// counts, unparsable ids.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dbPath    string
	jsonMode  bool
	logLevel  string
}

// session is the state shared by the subcommands of one invocation.
type session struct {
	flags rootFlags
	cfg   *viper.Viper
	log   zerolog.Logger
}

// NewRootCmd creates the top-level "clientbook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	s := &session{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "clientbook",
		Short: "Manage a local book of clients",
		Long: "Clientbook keeps customer records in an embedded SQLite database.\n" +
			"Clients can be listed, searched, created, edited, and deleted.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: s.setup,
	}

	root.PersistentFlags().StringVar(&s.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&s.flags.dbPath, "db", "", "database file, or :memory: (default: platform data dir)")
	root.PersistentFlags().BoolVar(&s.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&s.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(s),
		newListCmd(s),
		newShowCmd(s),
		newSearchCmd(s),
		newCountCmd(s),
		newAddCmd(s),
		newUpdateCmd(s),
		newDeleteCmd(s),
		newSeedCmd(s),
		newExportCmd(s),
		newImportCmd(s),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns its exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode maps err to exitUserError when the user can fix it by changing
// the input, and to exitSysError otherwise.
func exitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &ue), controller.IsUserError(err):
		return exitUserError
	default:
		return exitSysError
	}
}

// usageArgs wraps a cobra positional-argument validator so its failures count as
// usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		if err := fn(cmd, a); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// setup loads the configuration and builds the logger. It runs before every
// subcommand except version and help.
func (s *session) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(s.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	s.cfg = cfg

	level := s.flags.logLevel
	if level == "" {
		level = cfg.GetString(cfgKeyLogLevel)
	}
	log, err := logging.New(cmd.ErrOrStderr(), level, cfg.GetString(cfgKeyLogFormat))
	if err != nil {
		return usageError{err}
	}
	s.log = logging.WithRunID(log).With().Str("command", cmd.Name()).Logger()
	s.log.Debug().Str("config_dir", configDir).Msg("configuration loaded")
	return nil
}

// storeConfig resolves the backend configuration from flags and config.yaml.
func (s *session) storeConfig() (types.Config, error) {
	path, err := paths.ResolveDBPath(s.flags.dbPath, s.cfg.GetString(cfgKeyDBPath))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve database path: %w", err)
	}
	return types.Config{
		Backend: s.cfg.GetString(cfgKeyBackend),
		Path:    path,
	}, nil
}

// open attaches the configured store and returns a controller over it. The
// caller must call the returned close function.
func (s *session) open() (*controller.ClientController, func(), error) {
	cfg, err := s.storeConfig()
	if err != nil {
		return nil, nil, err
	}

	backend := sqlite.NewBackend().WithLogger(s.log)
	if err := backend.Attach(cfg); err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := backend.Detach(); err != nil {
			s.log.Error().Err(err).Msg("detach failed")
		}
	}

	clients, err := backend.Clients()
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return controller.New(clients, s.log), closeFn, nil
}
