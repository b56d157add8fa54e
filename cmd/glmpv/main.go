// Command glmpv plays a media file in an OpenGL window through libmpv's
// render API and draws a small control panel over the video.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/depeter/glmpv/assets/icon"
	"github.com/depeter/glmpv/internal/app"
	"github.com/depeter/glmpv/internal/config"
	"github.com/depeter/glmpv/internal/logging"
	"github.com/depeter/glmpv/internal/overlay"
	"github.com/depeter/glmpv/internal/player"
	"github.com/depeter/glmpv/internal/surface"
)

var errMissingFilename = errors.New("missing filename as first argument")

type options struct {
	media      string
	configPath string
	profile    string
	logLevel   string
}

// parseArgs reads flags and the single media path from args.
func parseArgs(args []string, stderr io.Writer) (options, *pflag.FlagSet, error) {
	var opts options
	fs := pflag.NewFlagSet("glmpv", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/glmpv/config.toml)")
	fs.StringVar(&opts.profile, "profile", "", fmt.Sprintf("GL profile, one of %v", config.ProfileNames()))
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: glmpv [flags] FILE\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	switch fs.NArg() {
	case 0:
		return opts, fs, errMissingFilename
	case 1:
		opts.media = fs.Arg(0)
	default:
		return opts, fs, fmt.Errorf("expected one media path, got %d arguments", fs.NArg())
	}
	return opts, fs, nil
}

// loadConfig reads the config file and applies the profile and flag
// overrides.
func loadConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.ApplyProfile(opts.profile); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func main() {
	opts, fs, err := parseArgs(os.Args[1:], os.Stderr)
	switch {
	case errors.Is(err, pflag.ErrHelp):
		os.Exit(0)
	case errors.Is(err, errMissingFilename):
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(2)
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		logging.New(os.Stderr, "info").Fatal(err)
	}
	logger := logging.New(os.Stderr, cfg.Log.Level)

	if err := run(cfg, opts.media, logger); err != nil {
		logger.Fatal(err)
	}
}

// run creates the window, engine, render context and overlay in that order
// and runs the loop until the window closes or Quit is activated.
func run(cfg *config.Config, media string, logger *log.Logger) error {
	win, err := surface.New(cfg.Window, cfg.GL, icon.Generate(), logging.Sub(logger, "surface"))
	if err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	defer win.Destroy()

	mailbox := app.NewMailbox(win.Wake)

	session, err := player.NewSession(logging.Sub(logger, "engine"))
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	// The loop owns teardown once it runs.
	owned := true
	defer func() {
		if owned {
			_ = session.Destroy()
		}
	}()

	if err := session.SetWakeupCallback(func() { mailbox.Post(app.SignalEngineEvents) }); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	session.Configure(cfg.EngineOptions())
	session.RequestLogMessages(cfg.Engine.LogLevel)
	if err := session.Initialize(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	rc, err := player.NewRenderContext(session, win.ProcAddress, cfg.Engine.AdvancedControl, logging.Sub(logger, "render"))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer func() {
		if owned {
			_ = rc.Destroy()
		}
	}()
	if err := rc.SetUpdateCallback(func() { mailbox.Post(app.SignalRenderReady) }); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := session.LoadFile(media); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	loopOpts := app.Options{
		Surface:         win,
		Engine:          session,
		Renderer:        rc,
		Mailbox:         mailbox,
		Logger:          logging.Sub(logger, "loop"),
		FlipY:           cfg.Engine.FlipY,
		AdvancedControl: cfg.Engine.AdvancedControl,
	}
	if cfg.Overlay.Enabled {
		ov, err := overlay.New(cfg.Overlay, cfg.GL, win.ContentScale(), logging.Sub(logger, "overlay"))
		if err != nil {
			return fmt.Errorf("overlay: %w", err)
		}
		defer ov.Release()
		loopOpts.Overlay = ov
	}

	owned = false
	return app.NewLoop(loopOpts).Run()
}
