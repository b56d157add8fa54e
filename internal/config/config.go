package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/depeter/glmpv/internal/engine"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	GL      GLConfig      `toml:"gl"`
	Engine  EngineConfig  `toml:"engine"`
	Overlay OverlayConfig `toml:"overlay"`
	Log     LogConfig     `toml:"log"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

// GLConfig selects the OpenGL context version and the GLSL version line used
// by the overlay shaders.
type GLConfig struct {
	Major         int    `toml:"major"`
	Minor         int    `toml:"minor"`
	ShaderVersion string `toml:"shader_version"`
}

type EngineConfig struct {
	VO       string `toml:"vo"`
	HWDec    string `toml:"hwdec"`
	LogLevel string `toml:"log_level"`
	// TargetPrim and TargetTrc ask the engine for sRGB output. This is best
	// effort: the surface also disables GL_FRAMEBUFFER_SRGB after the overlay
	// is drawn, and the combination is not known to be color-exact.
	TargetPrim      string            `toml:"target_prim"`
	TargetTrc       string            `toml:"target_trc"`
	AdvancedControl bool              `toml:"advanced_control"`
	FlipY           bool              `toml:"flip_y"`
	Options         map[string]string `toml:"options"`
}

type OverlayConfig struct {
	Enabled  bool    `toml:"enabled"`
	Heading  string  `toml:"heading"`
	X        float64 `toml:"x"`
	Y        float64 `toml:"y"`
	FontSize float64 `toml:"font_size"`
	QuitKey  string  `toml:"quit_key"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1920,
			Height: 1080,
			Title:  "glmpv",
			VSync:  true,
		},
		GL: GLConfig{
			Major:         3,
			Minor:         3,
			ShaderVersion: "#version 330 core",
		},
		Engine: EngineConfig{
			VO:              "libmpv",
			HWDec:           "auto-safe",
			LogLevel:        "debug",
			TargetPrim:      "bt.709",
			TargetTrc:       "srgb",
			AdvancedControl: true,
			FlipY:           true,
		},
		Overlay: OverlayConfig{
			Enabled:  true,
			Heading:  "MPV Overlay",
			X:        100,
			Y:        100,
			FontSize: 18,
			QuitKey:  "escape",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// EngineOptions returns the options applied to the engine before it is
// initialized, built-ins first.
func (c *Config) EngineOptions() []engine.Option {
	return engine.Options([]engine.Option{
		{Name: "vo", Value: c.Engine.VO},
		{Name: "hwdec", Value: c.Engine.HWDec},
		{Name: "target-prim", Value: c.Engine.TargetPrim},
		{Name: "target-trc", Value: c.Engine.TargetTrc},
	}, c.Engine.Options)
}

// Validate checks the values the program cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.GL.Major < 3 {
		errs = append(errs, fmt.Errorf("gl version %d.%d is below 3.0", c.GL.Major, c.GL.Minor))
	}
	if c.Overlay.Enabled {
		if !strings.HasPrefix(c.GL.ShaderVersion, "#version ") {
			errs = append(errs, fmt.Errorf("gl shader_version %q must start with \"#version \"", c.GL.ShaderVersion))
		}
		if c.Overlay.FontSize <= 0 {
			errs = append(errs, fmt.Errorf("overlay font_size must be positive, got %v", c.Overlay.FontSize))
		}
	}
	return errors.Join(errs...)
}

// Profile adjusts the GL and overlay settings of a configuration.
type Profile func(*Config)

var profiles = map[string]Profile{
	// Canonical: GL 3.3 core with the overlay.
	"gl33-overlay": func(c *Config) {
		c.GL = GLConfig{Major: 3, Minor: 3, ShaderVersion: "#version 330 core"}
		c.Overlay.Enabled = true
	},
	// Video only, for drivers limited to GL 3.1.
	"gl31-bare": func(c *Config) {
		c.GL = GLConfig{Major: 3, Minor: 1, ShaderVersion: "#version 140"}
		c.Overlay.Enabled = false
	},
}

// ProfileNames lists the known profile names in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyProfile applies the named profile. An empty name is a no-op.
func (c *Config) ApplyProfile(name string) error {
	if name == "" {
		return nil
	}
	p, ok := profiles[name]
	if !ok {
		return fmt.Errorf("unknown profile %q (known: %s)", name, strings.Join(ProfileNames(), ", "))
	}
	p(c)
	return nil
}

func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "glmpv"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config from the default path.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path over the defaults. A missing file yields
// the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
