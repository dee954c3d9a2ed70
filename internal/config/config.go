package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AvengeMedia/danklauncher/internal/artifact"
	"github.com/AvengeMedia/danklauncher/internal/errdefs"
	"github.com/AvengeMedia/danklauncher/internal/fade"
	"github.com/AvengeMedia/danklauncher/internal/launcher"
	"github.com/AvengeMedia/danklauncher/internal/log"
	"github.com/AvengeMedia/danklauncher/internal/task"
	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"golang.org/x/exp/slices"
)

const (
	AppName     = "DankLauncher"
	HomeEnv     = "DANKLAUNCHER_HOME"
	ModsDirName = "mods"
	LogFileName = "launcher.log"
	configDir   = "danklauncher"
	configFile  = "config.toml"
)

// Config is resolved once at startup and passed explicitly to every
// component that needs it.
type Config struct {
	Root     string
	ModsDir  string
	Versions []string
	JavaPath string
	Debug    bool
	Install  task.Cadence
	Download task.Cadence
	Fade     fade.Options
}

// LogPath is where diagnostics go while the full-screen UI is active.
func (c *Config) LogPath() string {
	return filepath.Join(c.Root, LogFileName)
}

type cadenceValues struct {
	Step       int `toml:"step,omitempty"`
	IntervalMS int `toml:"interval_ms,omitempty"`
}

type fadeValues struct {
	Step       float64 `toml:"step,omitempty"`
	IntervalMS int     `toml:"interval_ms,omitempty"`
}

// Values mirrors the optional config file. The launcher never writes it.
type Values struct {
	Java     string        `toml:"java,omitempty"`
	Versions []string      `toml:"versions,omitempty"`
	Debug    bool          `toml:"debug"`
	Install  cadenceValues `toml:"install,omitempty"`
	Download cadenceValues `toml:"download,omitempty"`
	Fade     fadeValues    `toml:"fade,omitempty"`
}

type ResolveOptions struct {
	// Root overrides every other storage root source when set.
	Root string
	// ConfigPath points at an explicit config file, which must then exist.
	ConfigPath string
	Getenv     func(string) string
	Fs         afero.Fs
}

func Defaults() *Config {
	return &Config{
		Versions: append([]string(nil), launcher.DefaultVersions...),
		Install:  task.DefaultInstallCadence,
		Download: task.DefaultDownloadCadence,
		Fade:     fade.DefaultOptions,
	}
}

func Resolve(opts ResolveOptions) (*Config, error) {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	cfg := Defaults()

	path := opts.ConfigPath
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.load(opts.Fs, path, explicit); err != nil {
		return nil, err
	}

	cfg.Root = resolveRoot(opts.Root, opts.Getenv)
	cfg.ModsDir = filepath.Join(cfg.Root, ModsDirName)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath is where the config file is looked up when no path is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, configDir, configFile)
}

func resolveRoot(flag string, getenv func(string) string) string {
	if flag != "" {
		return flag
	}
	if home := getenv(HomeEnv); home != "" {
		return home
	}
	if appData := getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, AppName)
	}
	return filepath.Join(xdg.DataHome, AppName)
}

func (c *Config) load(fs afero.Fs, path string, explicit bool) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			log.Debugf("No config file at %s, using defaults", path)
			return nil
		}
		return errdefs.Wrap(errdefs.ErrTypeInvalidConfig, "failed to read config file", err)
	}

	var vals Values
	if err := toml.Unmarshal(data, &vals); err != nil {
		return errdefs.Wrap(errdefs.ErrTypeInvalidConfig, fmt.Sprintf("failed to parse %s", path), err)
	}
	log.Debugf("Loaded config from %s", path)

	c.JavaPath = vals.Java
	c.Debug = vals.Debug
	if len(vals.Versions) > 0 {
		c.Versions = vals.Versions
	}
	applyCadence(&c.Install, vals.Install)
	applyCadence(&c.Download, vals.Download)
	if vals.Fade.Step != 0 {
		c.Fade.Step = vals.Fade.Step
	}
	if vals.Fade.IntervalMS != 0 {
		c.Fade.Interval = time.Duration(vals.Fade.IntervalMS) * time.Millisecond
	}
	return nil
}

func applyCadence(dst *task.Cadence, v cadenceValues) {
	if v.Step != 0 {
		dst.Step = v.Step
	}
	if v.IntervalMS != 0 {
		dst.Interval = time.Duration(v.IntervalMS) * time.Millisecond
	}
}

func (c *Config) Validate() error {
	if len(c.Versions) == 0 {
		return errdefs.NewCustomError(errdefs.ErrTypeInvalidConfig, "at least one version is required")
	}
	for i, v := range c.Versions {
		if err := artifact.ValidVersion(v); err != nil {
			return errdefs.Wrap(errdefs.ErrTypeInvalidConfig, "invalid version list", err)
		}
		if slices.Index(c.Versions[i+1:], v) >= 0 {
			return errdefs.NewCustomError(errdefs.ErrTypeInvalidConfig, fmt.Sprintf("version %s listed twice", v))
		}
	}
	if err := c.Install.Validate(); err != nil {
		return err
	}
	if err := c.Download.Validate(); err != nil {
		return err
	}
	return c.Fade.Validate()
}

// HasVersion reports whether v is one of the selectable versions.
func (c *Config) HasVersion(v string) bool {
	return slices.Contains(c.Versions, v)
}

// EnsureDirectories creates the storage root and its mods directory.
// Failure is fatal for the launcher.
func EnsureDirectories(fs afero.Fs, c *Config) error {
	for _, dir := range []string{c.Root, c.ModsDir} {
		info, err := fs.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return errdefs.Wrap(errdefs.ErrTypeDirectoryCreationFailed,
					fmt.Sprintf("failed to create directory at %s", dir), errors.New("path exists and is not a directory"))
			}
			continue
		}

		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return errdefs.Wrap(errdefs.ErrTypeDirectoryCreationFailed,
				fmt.Sprintf("failed to create directory at %s", dir), err)
		}
		log.Infof("Created directory: %s", dir)
	}
	return nil
}
