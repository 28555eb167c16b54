package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mtuwatcher/internal/app"
	"mtuwatcher/internal/logging"
	"mtuwatcher/internal/paths"
	"mtuwatcher/internal/target"
	pkgerrors "mtuwatcher/pkg/errors"
)

var version = "dev"

// Environment variables supplying flag defaults. The files from
// paths.EnvFiles are loaded into the environment at startup.
const (
	envLogLevel  = "MTUWATCHER_LOG_LEVEL"
	envLogFormat = "MTUWATCHER_LOG_FORMAT"
)

// runWatch enforces the target until a fatal error. Tests replace it.
var runWatch = func(t target.Target, log *logrus.Logger) error {
	a, err := app.New(t, app.DefaultPlatform, log)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mtuwatcher <interface-name> <target-mtu>",
		Short: "Pin a network interface's MTU and revert any change to it",
		Long: `mtuwatcher - pin a network interface's MTU

  Sets the MTU of one interface to the given value and keeps it there:
  every interface change notified by the kernel is checked and a drifted
  MTU is written back immediately.

  Requires root. Either run it with sudo or install it setuid root:
    sudo chown root mtuwatcher && sudo chmod u+s mtuwatcher

  Example:
    mtuwatcher en0 1400`,
		Version:           version,
		SilenceErrors:     true,
		Args:              usageArgs,
		ValidArgsFunction: completeWatchArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Past argument counting, errors are diagnostics, not usage.
			cmd.SilenceUsage = true

			t, err := target.New(args[0], args[1])
			if err != nil {
				return err
			}

			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			return runWatch(t, log)
		},
	}

	// Global flags
	cmd.PersistentFlags().String("log-level", envOr(envLogLevel, "info"), "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", envOr(envLogFormat, logging.FormatText), "log format (text, json)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (same as --log-level debug)")

	// Add subcommands
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// Execute executes the root command
func Execute() {
	if err := loadEnvFiles(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usageArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w (got %d arguments)", pkgerrors.ErrUsage, len(args))
	}
	return nil
}

func newLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	return logging.New(logging.Options{
		Level:  level,
		Format: format,
		Out:    cmd.OutOrStdout(),
	})
}

// loadEnvFiles sets variables from the env files that are not already set.
// The first file to set a variable wins.
func loadEnvFiles() error {
	for _, path := range paths.EnvFiles() {
		if err := loadEnvFile(path); err != nil {
			return err
		}
	}
	return nil
}

// loadEnvFile reports failures by path only; parse errors would echo the
// file's contents.
func loadEnvFile(path string) error {
	f, err := paths.OpenEnvFile(path)
	if err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse env file %s", path)
	}
	for key, value := range vars {
		if _, ok := os.LookupEnv(key); !ok {
			os.Setenv(key, value)
		}
	}
	return nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
