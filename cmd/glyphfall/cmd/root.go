// Package cmd contains the glyphfall CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/dshills/glyphfall/internal/app"
	"github.com/dshills/glyphfall/internal/config"
	"github.com/dshills/glyphfall/internal/config/loader"
	"github.com/dshills/glyphfall/internal/renderer/backend"
)

// ErrNotTerminal is returned when stdout is redirected.
var ErrNotTerminal = errors.New("stdout is not a terminal")

// options holds flag values that are not configuration keys.
type options struct {
	configPath string
	seed       uint64
	stats      bool
	duration   time.Duration
}

// flagKeys maps command flags onto configuration keys.
var flagKeys = []struct {
	flag string
	key  string
}{
	{"fps", "rain.frame_rate"},
	{"speed", "rain.fall_speed"},
	{"density", "rain.column_density"},
	{"intensity", "rain.intensity"},
	{"log-file", "logging.file"},
	{"log-level", "logging.level"},
}

// Execute builds the command tree and runs it.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand returns the glyphfall command with its subcommands.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	v := config.NewViper()
	def := config.Default()

	root := &cobra.Command{
		Use:   "glyphfall",
		Short: "Falling glyph rain for the terminal",
		Long: `glyphfall fills the terminal with columns of glyphs that fall,
leave a fading trail and restart from the top.

Configuration is read from a TOML file, then GLYPHFALL_* environment
variables, then command line flags. Press q, Esc or Ctrl+C to quit.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRain(cmd, v, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (default is "+config.DefaultPath()+")")
	pf.Float64("fps", def.Rain.FrameRate, "frames per second")
	pf.Float64("speed", def.Rain.FallSpeed, "base fall speed in rows per frame")
	pf.Float64("density", def.Rain.ColumnDensity, "fraction of screen columns that carry rain")
	pf.Float64("intensity", def.Rain.Intensity, "global speed and fade multiplier")
	pf.String("log-file", "", "write diagnostics to this file")
	pf.String("log-level", def.Logging.Level, "log level (debug, info, warn, error)")

	for _, fk := range flagKeys {
		cobra.CheckErr(v.BindPFlag(fk.key, pf.Lookup(fk.flag)))
	}

	f := root.Flags()
	f.Uint64Var(&opts.seed, "seed", 0, "seed for the random source (0 picks one)")
	f.BoolVar(&opts.stats, "stats", false, "print frame statistics on exit")
	f.DurationVar(&opts.duration, "duration", 0, "stop after this long (0 runs until quit)")

	root.AddCommand(newConfigCommand(v, opts), newVersionCommand())
	return root
}

// loadConfig resolves the effective configuration: defaults, file,
// environment and flags, in that order, then validates it.
func loadConfig(cmd *cobra.Command, v *viper.Viper, opts *options) (*config.Config, error) {
	path := opts.configPath
	mustExist := cmd.Flags().Changed("config")
	if path == "" {
		path = config.DefaultPath()
		mustExist = false
	}

	cfg, err := config.Load(loader.DefaultFS(), path, mustExist)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyOverrides(cfg, v); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runRain(cmd *cobra.Command, v *viper.Viper, opts *options) error {
	cfg, err := loadConfig(cmd, v, opts)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	params, err := cfg.Params()
	if err != nil {
		return err
	}
	head, tail, err := cfg.GradientColors()
	if err != nil {
		return err
	}

	logger, closer, err := app.OpenLogFile(cfg.Logging.File, app.ParseLogLevel(cfg.Logging.Level))
	if err != nil {
		return err
	}
	defer closer.Close()
	logger = logger.WithRunID()

	application, err := app.New(app.Options{
		Params:    params,
		Head:      head,
		Tail:      tail,
		TailSteps: cfg.Colors.TailSteps,
		Seed:      opts.seed,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	surface, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := application.SetBackend(surface); err != nil {
		return fmt.Errorf("failed to set backend: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	runErr := application.Run(ctx)

	if opts.stats {
		fmt.Fprintf(cmd.ErrOrStderr(), "seed: %d\n", application.Seed())
		if _, err := application.Metrics().Snapshot().WriteTo(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}
	return runErr
}
