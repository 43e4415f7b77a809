// Package config provides configuration management for calm.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/xvierd/calm-cli/internal/exercises"
)

// EnvPrefix prefixes environment overrides, e.g. CALM_STORAGE_ENGINE.
const EnvPrefix = "CALM"

const defaultDataDir = "~/.calm"

// Config holds all configuration for the calm application.
type Config struct {
	Storage       StorageConfig      `mapstructure:"storage"`
	Breathing     BreathingConfig    `mapstructure:"breathing"`
	Timers        TimersConfig       `mapstructure:"timers"`
	Mood          MoodConfig         `mapstructure:"mood"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	MCP           MCPConfig          `mapstructure:"mcp"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
	Engine  string `mapstructure:"engine"`
}

// BreathingConfig holds the breathing timer tool settings.
type BreathingConfig struct {
	PhaseSeconds int `mapstructure:"phase_seconds"`
	MinSeconds   int `mapstructure:"min_seconds"`
	MaxSeconds   int `mapstructure:"max_seconds"`
}

// Clamp keeps seconds inside the configured range.
func (b BreathingConfig) Clamp(seconds int) int {
	if seconds < b.MinSeconds {
		return b.MinSeconds
	}
	if seconds > b.MaxSeconds {
		return b.MaxSeconds
	}
	return seconds
}

// TimersConfig holds the lengths of the plain countdown exercises.
type TimersConfig struct {
	TwoMinute     Duration `mapstructure:"two_minute"`
	UrgeBreath    Duration `mapstructure:"urge_breath"`
	ResponseDelay Duration `mapstructure:"response_delay"`
}

// MoodConfig holds mood tracker settings.
type MoodConfig struct {
	WindowDays        int `mapstructure:"window_days"`
	InsightMinEntries int `mapstructure:"insight_min_entries"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig holds log file settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorPrimary  string `mapstructure:"color_primary"`
	ColorAccent   string `mapstructure:"color_accent"`
	ColorPaused   string `mapstructure:"color_paused"`
	ColorTitle    string `mapstructure:"color_title"`
	ColorText     string `mapstructure:"color_text"`
	ColorHelp     string `mapstructure:"color_help"`
	ColorInhale   string `mapstructure:"color_inhale"`
	ColorHold     string `mapstructure:"color_hold"`
	ColorExhale   string `mapstructure:"color_exhale"`
	GradientStart string `mapstructure:"gradient_start"`
	GradientEnd   string `mapstructure:"gradient_end"`
	IconApp       string `mapstructure:"icon_app"`
	IconJournal   string `mapstructure:"icon_journal"`
	IconMood      string `mapstructure:"icon_mood"`
	IconChat      string `mapstructure:"icon_chat"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorPrimary:  "#8B5CF6",
		ColorAccent:   "#3B82F6",
		ColorPaused:   "#6B7280",
		ColorTitle:    "#A78BFA",
		ColorText:     "#A0AEC0",
		ColorHelp:     "#95A5A6",
		ColorInhale:   "#60A5FA",
		ColorHold:     "#A78BFA",
		ColorExhale:   "#34D399",
		GradientStart: "#8B5CF6",
		GradientEnd:   "#3B82F6",
		IconApp:       "🌿",
		IconJournal:   "📖",
		IconMood:      "📊",
		IconChat:      "💬",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir: defaultDataDir,
			Engine:  "sqlite",
		},
		Breathing: BreathingConfig{
			PhaseSeconds: 4,
			MinSeconds:   3,
			MaxSeconds:   6,
		},
		Timers: TimersConfig{
			TwoMinute:     Duration(2 * time.Minute),
			UrgeBreath:    Duration(90 * time.Second),
			ResponseDelay: Duration(5 * time.Minute),
		},
		Mood: MoodConfig{
			WindowDays:        7,
			InsightMinEntries: 3,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "calm.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the default config file, creating it
// with defaults when it does not exist.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFile(configPath)
}

// LoadFile loads the configuration from path. A .env file next to it is
// read into the environment first, and CALM_* variables override the file.
func LoadFile(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := godotenv.Load(filepath.Join(configDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveFile(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return decode(v)
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "" || strings.HasPrefix(cfg.Storage.DataDir, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		rest := strings.TrimPrefix(strings.TrimPrefix(cfg.Storage.DataDir, "~"), "/")
		if cfg.Storage.DataDir == "" {
			rest = ".calm"
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, rest)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that the engines rely on.
func (c *Config) Validate() error {
	switch c.Storage.Engine {
	case "sqlite", "json":
	default:
		return fmt.Errorf("invalid storage.engine %q: want sqlite or json", c.Storage.Engine)
	}
	if c.Breathing.MinSeconds <= 0 || c.Breathing.MinSeconds > c.Breathing.MaxSeconds {
		return fmt.Errorf("invalid breathing range %d-%d", c.Breathing.MinSeconds, c.Breathing.MaxSeconds)
	}
	c.Breathing.PhaseSeconds = c.Breathing.Clamp(c.Breathing.PhaseSeconds)
	if c.Mood.WindowDays <= 0 {
		return fmt.Errorf("invalid mood.window_days %d", c.Mood.WindowDays)
	}
	for name, d := range map[string]Duration{
		"timers.two_minute":     c.Timers.TwoMinute,
		"timers.urge_breath":    c.Timers.UrgeBreath,
		"timers.response_delay": c.Timers.ResponseDelay,
	} {
		if time.Duration(d) < time.Second {
			return fmt.Errorf("invalid %s %s", name, d)
		}
	}
	return nil
}

// Save saves the configuration to the default config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveFile(configPath, cfg)
}

// SaveFile writes cfg to path as TOML.
func SaveFile(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	for key, value := range Values(cfg) {
		v.Set(key, value)
	}
	return v.WriteConfigAs(configPath)
}

// Set updates one known key in the config file at path.
func Set(configPath, key, value string) error {
	cfg, err := LoadFile(configPath)
	if err != nil {
		return err
	}
	current := Values(cfg)
	if _, ok := current[key]; !ok {
		return fmt.Errorf("unknown config key %q", key)
	}

	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	v.Set(key, value)
	if _, err := decode(v); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return v.WriteConfigAs(configPath)
}

// Keys returns every config key in sorted order.
func Keys() []string {
	keys := make([]string, 0)
	for k := range Values(DefaultConfig()) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values flattens cfg into viper keys.
func Values(cfg *Config) map[string]any {
	return map[string]any{
		"storage.data_dir":         cfg.Storage.DataDir,
		"storage.engine":           cfg.Storage.Engine,
		"breathing.phase_seconds":  cfg.Breathing.PhaseSeconds,
		"breathing.min_seconds":    cfg.Breathing.MinSeconds,
		"breathing.max_seconds":    cfg.Breathing.MaxSeconds,
		"timers.two_minute":        cfg.Timers.TwoMinute.String(),
		"timers.urge_breath":       cfg.Timers.UrgeBreath.String(),
		"timers.response_delay":    cfg.Timers.ResponseDelay.String(),
		"mood.window_days":         cfg.Mood.WindowDays,
		"mood.insight_min_entries": cfg.Mood.InsightMinEntries,
		"notifications.enabled":    cfg.Notifications.Enabled,
		"notifications.sound":      cfg.Notifications.Sound,
		"mcp.enabled":              cfg.MCP.Enabled,
		"logging.level":            cfg.Logging.Level,
		"logging.file":             cfg.Logging.File,
		"logging.max_size_mb":      cfg.Logging.MaxSizeMB,
		"logging.max_backups":      cfg.Logging.MaxBackups,
		"logging.max_age_days":     cfg.Logging.MaxAgeDays,
		"theme.color_primary":      cfg.Theme.ColorPrimary,
		"theme.color_accent":       cfg.Theme.ColorAccent,
		"theme.color_paused":       cfg.Theme.ColorPaused,
		"theme.color_title":        cfg.Theme.ColorTitle,
		"theme.color_text":         cfg.Theme.ColorText,
		"theme.color_help":         cfg.Theme.ColorHelp,
		"theme.color_inhale":       cfg.Theme.ColorInhale,
		"theme.color_hold":         cfg.Theme.ColorHold,
		"theme.color_exhale":       cfg.Theme.ColorExhale,
		"theme.gradient_start":     cfg.Theme.GradientStart,
		"theme.gradient_end":       cfg.Theme.GradientEnd,
		"theme.icon_app":           cfg.Theme.IconApp,
		"theme.icon_journal":       cfg.Theme.IconJournal,
		"theme.icon_mood":          cfg.Theme.IconMood,
		"theme.icon_chat":          cfg.Theme.IconChat,
	}
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".calm", "config.toml"), nil
}

// GetLogPath returns the path of the log file inside the data directory.
func GetLogPath(cfg *Config) string {
	if filepath.IsAbs(cfg.Logging.File) {
		return cfg.Logging.File
	}
	return filepath.Join(cfg.Storage.DataDir, cfg.Logging.File)
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	for key, value := range Values(DefaultConfig()) {
		v.SetDefault(key, value)
	}
}

// ExerciseSettings returns the configured timer lengths for the exercise catalog.
func (c *Config) ExerciseSettings() exercises.Settings {
	return exercises.Settings{
		TwoMinute:     time.Duration(c.Timers.TwoMinute),
		UrgeBreath:    time.Duration(c.Timers.UrgeBreath),
		ResponseDelay: time.Duration(c.Timers.ResponseDelay),
	}
}
