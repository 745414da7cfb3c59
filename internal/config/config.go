package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "JOURNAL_CONFIG"

	defaultConfigDir = "~/.config/journal"
	defaultDataDir   = "~/.local/share/journal"
)

type Keymap struct {
	NewEntry  string `toml:"new_entry"`
	Save      string `toml:"save"`
	DarkMode  string `toml:"dark_mode"`
	Dismiss   string `toml:"dismiss"`
	Quit      string `toml:"quit"`
	Search    string `toml:"search"`
	Analytics string `toml:"analytics"`
	Open      string `toml:"open"`
	Preview   string `toml:"preview"`
	Tag       string `toml:"tag"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Back      string `toml:"back"`
	Copy      string `toml:"copy"`
}

// Timing holds delays as duration strings ("1s", "30s").
type Timing struct {
	SearchDebounce  string `toml:"search_debounce"`
	AutosaveDelay   string `toml:"autosave_delay"`
	NotificationTTL string `toml:"notification_ttl"`
}

type Reveal struct {
	Threshold    float64 `toml:"threshold"`
	BottomMargin int     `toml:"bottom_margin"`
}

type Editor struct {
	MinRows int `toml:"min_rows"`
	MaxRows int `toml:"max_rows"`
}

type Config struct {
	DBPath         string `toml:"db_path"`
	DraftsDir      string `toml:"drafts_dir"`
	PrefsPath      string `toml:"prefs_path"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
	DashboardLimit int    `toml:"dashboard_limit"`
	Timing         Timing `toml:"timing"`
	Reveal         Reveal `toml:"reveal"`
	Editor         Editor `toml:"editor"`
	Keys           Keymap `toml:"keys"`
}

// ResolveConfigPath returns $JOURNAL_CONFIG when set, otherwise
// ~/.config/journal/config.toml.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	p, err := ExpandPath(filepath.Join(defaultConfigDir, DefaultConfigFileName))
	if err != nil {
		return DefaultConfigFileName
	}
	return p
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. Blank or invalid values fall back to defaults and
// every path in the result is absolute.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, fmt.Errorf("write default config: %w", err)
		}
		return cfg, cfg.expandPaths(filepath.Dir(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, cfg.expandPaths(filepath.Dir(path))
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration with unexpanded paths.
func Default() Config {
	return Config{
		DBPath:         defaultDataDir + "/journal.db",
		DraftsDir:      defaultDataDir + "/drafts",
		PrefsPath:      defaultConfigDir + "/prefs.toml",
		LogFile:        defaultDataDir + "/journal.log",
		LogLevel:       "info",
		DashboardLimit: 20,
		Timing: Timing{
			SearchDebounce:  "1s",
			AutosaveDelay:   "30s",
			NotificationTTL: "5s",
		},
		Reveal: Reveal{Threshold: 0.1, BottomMargin: 1},
		Editor: Editor{MinRows: 5, MaxRows: 15},
		Keys:   defaultKeymap(),
	}
}

func defaultKeymap() Keymap {
	return Keymap{
		NewEntry:  "ctrl+n",
		Save:      "ctrl+s",
		DarkMode:  "ctrl+t",
		Dismiss:   "ctrl+x",
		Quit:      "q",
		Search:    "/",
		Analytics: "a",
		Open:      "enter",
		Preview:   "p",
		Tag:       "t",
		Up:        "k",
		Down:      "j",
		Back:      "esc",
		Copy:      "y",
	}
}

func (c *Config) fillDefaults() {
	d := Default()
	orString(&c.DBPath, d.DBPath)
	orString(&c.DraftsDir, d.DraftsDir)
	orString(&c.PrefsPath, d.PrefsPath)
	orString(&c.LogFile, d.LogFile)
	orString(&c.LogLevel, d.LogLevel)
	if c.DashboardLimit <= 0 {
		c.DashboardLimit = d.DashboardLimit
	}
	if c.Reveal.Threshold <= 0 || c.Reveal.Threshold > 1 {
		c.Reveal.Threshold = d.Reveal.Threshold
	}
	if c.Reveal.BottomMargin < 0 {
		c.Reveal.BottomMargin = 0
	}
	if c.Editor.MinRows <= 0 {
		c.Editor.MinRows = d.Editor.MinRows
	}
	if c.Editor.MaxRows < c.Editor.MinRows {
		c.Editor.MaxRows = max(d.Editor.MaxRows, c.Editor.MinRows)
	}

	k := &c.Keys
	for _, f := range []struct {
		dst *string
		def string
	}{
		{&k.NewEntry, d.Keys.NewEntry},
		{&k.Save, d.Keys.Save},
		{&k.DarkMode, d.Keys.DarkMode},
		{&k.Dismiss, d.Keys.Dismiss},
		{&k.Quit, d.Keys.Quit},
		{&k.Search, d.Keys.Search},
		{&k.Analytics, d.Keys.Analytics},
		{&k.Open, d.Keys.Open},
		{&k.Preview, d.Keys.Preview},
		{&k.Tag, d.Keys.Tag},
		{&k.Up, d.Keys.Up},
		{&k.Down, d.Keys.Down},
		{&k.Back, d.Keys.Back},
		{&k.Copy, d.Keys.Copy},
	} {
		orString(f.dst, f.def)
	}
}

func orString(dst *string, fallback string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = fallback
	}
}

func (c *Config) expandPaths(base string) error {
	for _, p := range []*string{&c.DBPath, &c.DraftsDir, &c.PrefsPath, &c.LogFile} {
		resolved, err := resolveAgainst(*p, base)
		if err != nil {
			return err
		}
		*p = resolved
	}
	return nil
}

// Search is the idle time before the search form submits itself.
func (t Timing) Search() time.Duration {
	return parseDurationOr(t.SearchDebounce, time.Second)
}

func (t Timing) Autosave() time.Duration {
	return parseDurationOr(t.AutosaveDelay, 30*time.Second)
}

func (t Timing) Notification() time.Duration {
	return parseDurationOr(t.NotificationTTL, 5*time.Second)
}

func parseDurationOr(v string, fallback time.Duration) time.Duration {
	if v = strings.TrimSpace(v); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// ExpandPath resolves a leading ~ to the home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// resolveAgainst expands path, treating a relative path as relative to base.
func resolveAgainst(path, base string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed != "" && !strings.HasPrefix(trimmed, "~") && !filepath.IsAbs(trimmed) && base != "" {
		trimmed = filepath.Join(base, trimmed)
	}
	return ExpandPath(trimmed)
}
