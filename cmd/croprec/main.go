package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"croprec/config"
	"croprec/logging"
	"croprec/recommend"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "croprec",
	Short: "Crop recommendation from soil and weather measurements",
	Long: `croprec loads a pre-trained crop classifier once and serves a form
that collects seven soil and weather measurements and shows the
recommended crop.

Running without a command is the same as "croprec serve".`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stderr))
}

// execute runs the command line and returns the process exit code.
func execute(args []string, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// app is the state shared by every front-end: configuration, logger and the
// classifier service loaded exactly once.
type app struct {
	config     *config.Config
	configPath string
	logger     *zap.Logger
	level      zap.AtomicLevel
	service    *recommend.Service
}

func bootstrap(console io.Writer) (*app, error) {
	cfg, path, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, level, err := logging.New(cfg.Log, console)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if path != "" {
		logger.Info("config loaded", zap.String("path", path))
	} else {
		logger.Info("no config file found, using defaults")
	}

	service := recommend.Open(cfg.Model.Path,
		recommend.WithCacheSize(cfg.Model.CacheSize),
		recommend.WithLogger(logger),
	)

	return &app{
		config:     cfg,
		configPath: path,
		logger:     logger,
		level:      level,
		service:    service,
	}, nil
}

// watchConfig applies log level edits until ctx is done. The classifier is
// never reloaded.
func (a *app) watchConfig(ctx context.Context) {
	if a.configPath == "" {
		return
	}
	watcher, err := config.NewWatcher(a.configPath, a.logger, func(cfg *config.Config) {
		lvl, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return
		}
		if lvl != a.level.Level() {
			a.level.SetLevel(lvl)
			a.logger.Info("log level changed", zap.Stringer("level", lvl))
		}
	})
	if err != nil {
		a.logger.Warn("config watch disabled", zap.Error(err))
		return
	}
	go func() {
		defer watcher.Close()
		watcher.Run(ctx)
	}()
}

func (a *app) close() {
	_ = a.logger.Sync()
}
