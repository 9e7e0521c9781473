// Package commands implements the CLI commands for annocache.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/annocache/internal/app"
	"go.trai.ch/annocache/internal/build"
	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
)

// levelSetter is implemented by loggers whose verbosity can change at runtime.
type levelSetter interface {
	SetLevel(level domain.LogLevel)
}

// CLI represents the command line interface for annocache.
type CLI struct {
	app     *app.App
	logger  ports.Logger
	rootCmd *cobra.Command
	flags   rootFlags
}

type rootFlags struct {
	config    string
	manifest  string
	dev       bool
	store     string
	storePath string
	logLevel  string
	trace     bool
	metrics   bool
}

// New creates a new CLI instance with the given app.
func New(a *app.App, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "annocache",
		Short:         "A persistent cache for declaration annotations",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.flags.config, "config", "C", "", "Directory containing "+domain.ConfigFileName+" (default: current directory)")
	pf.StringVarP(&c.flags.manifest, "manifest", "m", "", "Path to the declaration manifest")
	pf.BoolVar(&c.flags.dev, "dev", false, "Revalidate cached entries against source modification times")
	pf.StringVar(&c.flags.store, "store", "", "Store backend: memory, file or badger")
	pf.StringVar(&c.flags.storePath, "store-path", "", "Store directory")
	pf.StringVar(&c.flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.BoolVar(&c.flags.trace, "trace", false, "Export resolution spans to stderr")
	pf.BoolVar(&c.flags.metrics, "metrics", false, "Write resolution counters to stderr in Prometheus text format on exit")

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newKeyCmd())
	rootCmd.AddCommand(c.newMtimeCmd())
	rootCmd.AddCommand(c.newWarmCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// settings resolves the settings of the invocation from the settings file,
// the environment and the persistent flags.
func (c *CLI) settings(cmd *cobra.Command, extra app.Overrides) (domain.Settings, error) {
	dir := c.flags.config
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return domain.Settings{}, err
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return domain.Settings{}, err
	}

	o := extra
	o.Manifest = c.flags.manifest
	o.Backend = c.flags.store
	o.StorePath = c.flags.storePath
	o.LogLevel = c.flags.logLevel
	o.Trace = c.flags.trace
	if cmd.Flags().Changed("dev") {
		dev := c.flags.dev
		o.DevMode = &dev
	}

	s, err := c.app.LoadSettings(dir, o)
	if err != nil {
		return domain.Settings{}, err
	}
	if ls, ok := c.logger.(levelSetter); ok {
		ls.SetLevel(domain.ParseLogLevel(s.LogLevel))
	}
	return s, nil
}

// withSession opens a session for the invocation, runs fn and closes it.
// With --metrics the counters are written to stderr once fn returns.
func (c *CLI) withSession(cmd *cobra.Command, extra app.Overrides, fn func(*app.Session) error) (err error) {
	settings, err := c.settings(cmd, extra)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := c.app.Open(ctx, settings)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(context.WithoutCancel(ctx)); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if c.flags.metrics {
		defer func() {
			if metricsErr := c.app.WriteMetrics(cmd.ErrOrStderr()); metricsErr != nil && err == nil {
				err = metricsErr
			}
		}()
	}
	return fn(s)
}
