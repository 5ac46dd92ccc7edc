package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dhamidi/noa/config"
	"github.com/dhamidi/noa/format"
	"github.com/dhamidi/noa/internal/logging"
	"github.com/dhamidi/noa/source"
)

var version = "0.1.0"

const (
	exitOK          = 0
	exitDiagnostics = 1
	exitFailure     = 2
)

// errDiagnostics reports that a command ran but found error diagnostics.
var errDiagnostics = errors.New("errors found")

type app struct {
	fs        afero.Fs
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	workDir   string
	lookupEnv func(string) (string, bool)

	configPath string
	verbose    int
	logFile    string
	color      string

	cfg *config.Config
}

func newApp(fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer) *app {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return &app{
		fs:        fs,
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		workDir:   wd,
		lookupEnv: os.LookupEnv,
	}
}

func (a *app) run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := a.newRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errDiagnostics) {
			return exitDiagnostics
		}
		fmt.Fprintf(a.stderr, "noa: %s\n", err)
		return exitFailure
	}
	return exitOK
}

func (a *app) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "noa",
		Short:         "Parse and check Noa source files",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure()
		},
	}
	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file (default: nearest .noa.yaml, .noa.yml or .noa.toml)")
	flags.CountVarP(&a.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.StringVar(&a.color, "color", "", "colorize output: auto, always or never")

	rootCmd.AddCommand(a.newParseCmd())
	rootCmd.AddCommand(a.newTokensCmd())
	rootCmd.AddCommand(a.newCheckCmd())
	rootCmd.AddCommand(a.newLSPCmd())

	return rootCmd
}

// configure loads the configuration file and environment, applies the
// global flags on top and sets up logging.
func (a *app) configure() error {
	cfg, err := config.Load(a.fs, a.workDir, a.configPath, a.lookupEnv)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.color != "" {
		cfg.Color = a.color
	}
	if a.logFile != "" {
		cfg.LogFile = a.logFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	a.cfg = cfg

	logging.Configure(cfg.Verbosity()+a.verbose, cfg.LogFile)
	return nil
}

// palette returns the colors to use when writing to w.
func (a *app) palette(w io.Writer) *format.Palette {
	mode, err := format.ParseColorMode(a.cfg.Color)
	if err != nil {
		return format.NewPalette(false)
	}
	return format.NewPalette(mode.Enabled(w))
}

// readSource loads path, or standard input when path is "-".
func (a *app) readSource(path string) (*source.Source, error) {
	if path == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return source.New("<stdin>", string(data)), nil
	}
	return source.Load(a.fs, path)
}
