package main

import (
	"io"
	"os"
	"path/filepath"

	"f3os/internal/config"
	"f3os/internal/dispatch"
	"f3os/internal/errors"
	"f3os/internal/log"
	"f3os/internal/navigator"
	"f3os/internal/tui"
	"f3os/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const logFileName = "f3os.log"

type options struct {
	configPath  string
	root        string
	debug       bool
	watchConfig bool
}

// NewRootCmd creates the root command. Without a subcommand it runs the console.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "f3os",
		Short: "A fake operating system console",
		Long: `f3os is a console over a directory tree described by dirfile indexes.
Commands, colors and messages come from the config file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog := setupLogging(cmd, opts, false)
			defer closeLog()
			return runConsole(opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultConfigFile, "config file (JSON, JSONC or YAML)")
	flags.StringVar(&opts.root, "root", "", "directory tree to serve (overrides working_path)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&opts.watchConfig, "watch-config", false, "reload colors and texts when the config file changes")

	rootCmd.AddCommand(newExecCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

// setupLogging points the logger at the log file in the temp dir, or at
// stderr when debugging a command that does not own the terminal.
func setupLogging(cmd *cobra.Command, opts *options, allowStderr bool) func() {
	log.SetDebug(opts.debug)
	if allowStderr && opts.debug {
		log.SetOutput(cmd.ErrOrStderr())
		return func() {}
	}

	path := filepath.Join(os.TempDir(), logFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(io.Discard)
		f.Close()
	}
}

// loadConfig reads the config file and applies the --root override
func loadConfig(opts *options) (*config.Store, error) {
	cfg, err := config.Load(opts.configPath)
	if errors.Is(err, errors.ErrInvalidConfig) {
		return nil, errors.Wrapf(err, "fix or remove %s", opts.configPath)
	}
	if err != nil {
		return nil, err
	}
	if opts.root != "" {
		cfg.Set(config.KeyWorkingPath, opts.root)
	}
	return cfg, nil
}

// openSession loads the config and builds a dispatcher rooted at working_path
func openSession(opts *options) (*config.Store, *dispatch.Dispatcher, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	root := cfg.String(config.KeyWorkingPath, ".")
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, errors.NewFileError("working path not found", root, errors.InvalidPath, err)
	}
	if !info.IsDir() {
		return nil, nil, errors.NewFileError("working path is not a directory", root, errors.InvalidPath, nil)
	}

	hidden, _ := cfg.Lines(config.KeyHidden)
	nav, err := navigator.New(os.DirFS(root), navigator.WithHidden(hidden...))
	if err != nil {
		return nil, nil, errors.Wrap(err, "bad hidden pattern")
	}

	log.LogWithFields(log.F("root", root), log.F("config", opts.configPath)).Info("session opened")
	return cfg, dispatch.New(cfg, nav), nil
}

func runConsole(opts *options) error {
	cfg, d, err := openSession(opts)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.New(cfg, d), tui.ProgramOptions(cfg)...)

	if opts.watchConfig {
		w, err := watch.New(opts.configPath, watch.DefaultDebounce)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			log.LogError(err, "config watcher disabled")
		} else {
			defer w.Stop()
			go forwardReloads(w, cfg, program)
		}
	}

	_, err = program.Run()
	return err
}

// forwardReloads reloads the store on every settled edit and tells the UI.
// It returns when the watcher is stopped.
func forwardReloads(w *watch.Watcher, cfg *config.Store, program *tea.Program) {
	for change := range w.Changes() {
		if err := cfg.Reload(change.Path); err != nil {
			log.LogWithError(err).Warn("config reload failed")
			continue
		}
		log.LogWithFields(log.F("file", change.Path)).Info("config reloaded")
		program.Send(tui.ConfigReloadedMsg{})
	}
}
