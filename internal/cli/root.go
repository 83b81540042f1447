package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/replkit/internal/config"
	"github.com/Dicklesworthstone/replkit/internal/output"
	"github.com/Dicklesworthstone/replkit/internal/theme"
	"github.com/Dicklesworthstone/replkit/repl"
)

var (
	// Build information - set by goreleaser via ldflags
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	cfgFile     string
	noColor     bool
	logLevel    string
	historyFile string
	banner      string
}

// Execute runs the replkit command line.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "replkit",
		Short: "An interactive shell built on the replkit command engine",
		Long: `replkit starts an interactive shell with a small set of demo commands
backed by a shared workspace (a counter and a key/value store).

Inside the shell:
  help                 # List commands
  help hello           # Show usage for one command
  hello world Hi       # Run a command
  set greeting "hi there"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// theme.Apply sets REPLKIT_NO_COLOR so theme.NoColorEnabled() agrees
			if opts.noColor {
				theme.Apply(true)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/replkit/config.toml)")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	f := cmd.Flags()
	f.StringVar(&opts.historyFile, "history", "", "history file (overrides config)")
	f.StringVar(&opts.banner, "banner", "", "banner printed at startup (overrides config)")

	cmd.AddCommand(
		newDescribeCmd(opts),
		newBrowseCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig loads and validates the configuration, then applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.noColor {
		cfg.NoColor = true
	}
	if f := cmd.Flags().Lookup("history"); f != nil && f.Changed {
		cfg.History.File = config.ExpandHome(opts.historyFile)
	}
	if f := cmd.Flags().Lookup("banner"); f != nil && f.Changed {
		cfg.Banner = opts.banner
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errs[0])
	}
	return cfg, nil
}

// newLogger builds the diagnostic logger. Logs are discarded unless a file
// is configured, so they never interleave with the prompt.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	level, err := config.SlogLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

// sessionOptions maps the configuration onto session options.
func sessionOptions(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) []repl.Option {
	opts := []repl.Option{
		repl.WithName(cfg.Name),
		repl.WithVersion(Version),
		repl.WithDescription(demoDescription),
		repl.WithBanner(cfg.Banner),
		repl.WithPrompt(cfg.Prompt),
		repl.WithHistory(cfg.History.File),
		repl.WithHistoryLimit(cfg.History.Limit),
		repl.WithInput(cmd.InOrStdin()),
		repl.WithOutput(cmd.OutOrStdout()),
		repl.WithErrorOutput(cmd.ErrOrStderr()),
		repl.WithLogger(logger),
	}
	if cfg.Help.Width > 0 {
		opts = append(opts, repl.WithHelpViewer(repl.NewDefaultHelpViewer(cmd.OutOrStdout(), cfg.Help.Width)))
	}
	return opts
}

func runShell(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	theme.Apply(cfg.NoColor)

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.History.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.History.File), 0o755); err != nil {
			logger.Warn("history disabled", "file", cfg.History.File, "error", err)
			cfg.History.File = ""
		}
	}

	s, err := NewDemoSession(sessionOptions(cmd, cfg, logger)...)
	if err != nil {
		return err
	}
	if cfg.Errors.Mode == config.ErrorModeAbort {
		s.SetErrorHandler(repl.AbortOnError[Workspace])
	}

	logger.Info("starting shell", "name", cfg.Name, "history", cfg.History.File)
	return s.Run(cmd.Context())
}

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), Version)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "replkit %s (commit %s, built %s)\n", Version, Commit, Date)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if opts.cfgFile != "" {
				path = config.ExpandHome(opts.cfgFile)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}
			return config.Print(cfg, cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file for errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}
			errs := config.Validate(cfg)
			for _, e := range errs {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", e)
			}
			if len(errs) > 0 {
				return fmt.Errorf("configuration has %s", output.CountStr(len(errs), "error", "errors"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "configuration OK")
			return nil
		},
	})

	return cmd
}
