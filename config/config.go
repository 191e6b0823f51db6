package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	env "github.com/Netflix/go-env"
)

type Config struct {
	LogLevel       string           `toml:"log_level"`
	TickInterval   time.Duration    `toml:"tick_interval"`   // bar refresh period (default 1s)
	RequestTimeout time.Duration    `toml:"request_timeout"` // per compositor request (default 500ms)
	CoalesceTicks  bool             `toml:"coalesce_ticks"`  // skip a workspace refresh while one is in flight
	Clock          ClockModule      `toml:"clock"`
	Workspaces     WorkspacesModule `toml:"workspaces"`
	Theme          ThemeModule      `toml:"theme"`

	Env       Env      `toml:"-"`
	path      string   // file the config was decoded from, empty for defaults
	undecoded []string // keys in the file that match no setting
}

type ClockModule struct {
	Layout   string `toml:"layout"`    // Go time layout (default "15:04:05 | 02.01.06")
	FontSize int    `toml:"font_size"` // points (default 16)
}

type WorkspacesModule struct {
	Count int `toml:"count"` // number of buttons, ids 1..count (default 8)
}

type ThemeModule struct {
	Active     string `toml:"active"`     // active workspace label color
	Foreground string `toml:"foreground"` // idle workspace label color
	Hover      string `toml:"hover"`      // hovered workspace label color
}

// Env holds the process environment the bar depends on.
type Env struct {
	Signature  string `env:"HYPRLAND_INSTANCE_SIGNATURE"`
	RuntimeDir string `env:"XDG_RUNTIME_DIR"`
	ConfigHome string `env:"XDG_CONFIG_HOME"`
	ConfigPath string `env:"FORGEBAR_CONFIG"`
	LogLevel   string `env:"FORGEBAR_LOG_LEVEL"`
}

const (
	DefaultTickInterval   = time.Second
	DefaultRequestTimeout = 500 * time.Millisecond
	DefaultClockLayout    = "15:04:05 | 02.01.06"
	DefaultFontSize       = 16
	DefaultWorkspaceCount = 8
)

func Defaults() *Config {
	return &Config{
		LogLevel:       "info",
		TickInterval:   DefaultTickInterval,
		RequestTimeout: DefaultRequestTimeout,
		Clock:          ClockModule{Layout: DefaultClockLayout, FontSize: DefaultFontSize},
		Workspaces:     WorkspacesModule{Count: DefaultWorkspaceCount},
		Theme:          ThemeModule{Active: "#ff0000", Foreground: "#d8dee9", Hover: "#eceff4"},
	}
}

// LoadEnv decodes the bar's environment variables from an environ slice
// (os.Environ() format).
func LoadEnv(environ []string) (Env, error) {
	var e Env
	es, err := env.EnvironToEnvSet(environ)
	if err != nil {
		return e, fmt.Errorf("read environment: %w", err)
	}
	if err := env.Unmarshal(es, &e); err != nil {
		return e, fmt.Errorf("decode environment: %w", err)
	}
	if e.RuntimeDir == "" {
		e.RuntimeDir = filepath.Join("/run/user", strconv.Itoa(os.Geteuid()))
	}
	return e, nil
}

// Resolve loads the environment, then the config file it points at (or the
// first one found on the search path), and overlays environment overrides.
// The returned config is always usable; a non-nil error is informational.
func Resolve(environ []string) (*Config, error) {
	e, envErr := LoadEnv(environ)
	cfg, err := load(e.ConfigPath, e)
	cfg.Env = e
	if e.LogLevel != "" {
		cfg.LogLevel = e.LogLevel
		cfg.normalizeLogLevel()
	}
	return cfg, errors.Join(envErr, err)
}

// load reads path, or the first file on the search path when path is empty.
// Missing file yields defaults and an error; parse errors also return defaults + error.
func load(path string, e Env) (*Config, error) {
	defaults := Defaults()
	var chosen string
	if path != "" {
		chosen = path
	} else {
		for _, p := range searchPaths(e) {
			if _, err := os.Stat(p); err == nil {
				chosen = p
				break
			}
		}
	}
	if chosen == "" { // no file found
		return defaults, errors.New("no config file found; using defaults")
	}
	data, err := os.ReadFile(chosen)
	if err != nil {
		return defaults, fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), defaults) // decode overlays onto defaults
	if err != nil {
		fresh := Defaults()
		fresh.path = chosen
		return fresh, fmt.Errorf("parse config %s: %w", chosen, err)
	}
	for _, k := range md.Undecoded() {
		defaults.undecoded = append(defaults.undecoded, k.String())
	}
	defaults.path = chosen
	defaults.normalize()
	return defaults, nil
}

func searchPaths(e Env) []string {
	var out []string
	if e.ConfigHome != "" {
		out = append(out, filepath.Join(e.ConfigHome, "forgebar", "config.toml"))
	}
	if home, _ := os.UserHomeDir(); home != "" {
		out = append(out, filepath.Join(home, ".config", "forgebar", "config.toml"))
	}
	return out
}

// Path returns the file the config was read from, or "" for defaults.
func (c *Config) Path() string { return c.path }

// Undecoded returns the keys of the config file that were ignored, usually
// because they sit in the wrong table or are misspelled.
func (c *Config) Undecoded() []string { return c.undecoded }

// ErrLevel is the level a Resolve error deserves. Finding no file on the
// search path is normal; a broken file, or one named by FORGEBAR_CONFIG that
// cannot be read, is not.
func (c *Config) ErrLevel() slog.Level {
	if c.path != "" || c.Env.ConfigPath != "" {
		return slog.LevelWarn
	}
	return slog.LevelDebug
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// normalize clamps and validates config values after decoding.
func (c *Config) normalize() {
	c.normalizeLogLevel()
	c.TickInterval = clampDuration(c.TickInterval, 100*time.Millisecond, time.Minute, DefaultTickInterval)
	c.RequestTimeout = clampDuration(c.RequestTimeout, 50*time.Millisecond, 10*time.Second, DefaultRequestTimeout)
	c.normalizeClock()
	c.Workspaces.Count = clampInt(c.Workspaces.Count, 1, 20, DefaultWorkspaceCount)
	c.normalizeTheme()
}

func (c *Config) normalizeLogLevel() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if !validLogLevel(c.LogLevel) {
		c.LogLevel = "info"
	}
}

func (c *Config) normalizeClock() {
	if strings.TrimSpace(c.Clock.Layout) == "" {
		c.Clock.Layout = DefaultClockLayout
	}
	c.Clock.FontSize = clampInt(c.Clock.FontSize, 6, 72, DefaultFontSize)
}

func (c *Config) normalizeTheme() {
	d := Defaults().Theme
	if !validColor(c.Theme.Active) {
		c.Theme.Active = d.Active
	}
	if !validColor(c.Theme.Foreground) {
		c.Theme.Foreground = d.Foreground
	}
	if !validColor(c.Theme.Hover) {
		c.Theme.Hover = d.Hover
	}
}

func clampInt(val, min, max, fallback int) int {
	if val == 0 && fallback != 0 { // allow zero to trigger fallback when min>0
		val = fallback
	}
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func clampDuration(val, min, max, fallback time.Duration) time.Duration {
	if val == 0 {
		val = fallback
	}
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func validLogLevel(l string) bool {
	switch l {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// validColor accepts #rgb and #rrggbb hex colors only; anything else could
// break out of the stylesheet declaration it is pasted into.
func validColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
