package main

import (
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/MatthiasKunnen/desktopfilter/basedir"
	"github.com/MatthiasKunnen/desktopfilter/config"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// filesFailedError is returned by the root command when at least one file could not be processed.
type filesFailedError struct {
	Failed int
	Total  int
	Err    error
}

func (e *filesFailedError) Error() string {
	return fmt.Sprintf("%d of %d files failed", e.Failed, e.Total)
}

func (e *filesFailedError) Unwrap() error {
	return e.Err
}

type options struct {
	dryRun     bool
	failFast   bool
	verbose    bool
	logLevel   string
	configPath string

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "desktopfilter [flags] <file|dir>...",
		Short: "Strip document MIME types and unknown keys from desktop files",
		Long: `desktopfilter rewrites desktop files so that they only contain a single
[Desktop Entry] group with a fixed set of keys: Version, Type, Name, GenericName,
Comment, TryExec, Exec, Icon, Categories and X-GNOME-UsesNotifications.

The MimeType key is kept, minus document formats such as text/plain, text/html,
application/pdf and word processor documents, so that the application no longer
claims to open them.

Directories are searched for desktop files. Files are replaced atomically.

Example: desktopfilter -n ~/.local/share/applications/firefox.desktop
This will print the rewritten file without modifying it.`,
		Args:          cobra.MinimumNArgs(1),
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "print the result instead of writing it")
	flags.BoolVar(&opts.failFast, "fail-fast", false, "stop at the first file that fails")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug messages")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: error, warn, info, debug or trace")
	flags.StringVarP(
		&opts.configPath,
		"config",
		"c",
		"",
		"config file (default $XDG_CONFIG_HOME/"+config.FileSuffix+")",
	)

	return cmd
}

// execute runs the command line and returns the exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	var failed *filesFailedError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &failed):
		return exitFailure
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		return exitUsage
	}
}

// loadConfig reads the config file and applies the flags that were set on top of it.
func (o *options) loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	var err error

	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = findConfig()
	}
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("fail-fast") {
		cfg.FailFast = o.failFast
	}

	switch {
	case o.verbose:
		cfg.LogLevel = log.DebugLevel.String()
	case flags.Changed("log-level"):
		cfg.LogLevel = o.logLevel
	}

	if _, err := cfg.Level(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func findConfig() (config.Config, error) {
	dirs, err := basedir.FromEnv()
	if errors.Is(err, basedir.ErrNoHome) {
		return config.Default(), nil
	}
	if err != nil {
		return config.Config{}, err
	}

	cfg, _, err := config.Find(dirs)
	return cfg, err
}

func newLogger(out io.Writer, level log.Level) *log.Logger {
	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	return logger
}
