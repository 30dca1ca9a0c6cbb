// Package config provides configuration management for EREZChrome.
package config

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/NaveLIL/erez-chrome/models"
	"github.com/NaveLIL/erez-chrome/utils"
)

//go:embed config.yaml
var defaultConfig embed.FS

// Config holds all application configuration.
type Config struct {
	Chrome  ChromeConfig  `mapstructure:"chrome"`
	Shadow  ShadowConfig  `mapstructure:"shadow"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ChromeConfig holds the frame geometry and appearance settings.
type ChromeConfig struct {
	// CaptionHeight is the title bar height in pixels.
	CaptionHeight int `mapstructure:"caption_height"`
	// Border is the configured resize border.
	Border models.BorderThickness `mapstructure:"border"`
	// CornerRadius is "r" or "tl, tr, bl, br" in the list format of Locale.
	CornerRadius string `mapstructure:"corner_radius"`
	// Locale selects the list and decimal separators of CornerRadius.
	Locale string `mapstructure:"locale"`
	// AdjustWhenMaximized uses the OS frame border while maximized.
	AdjustWhenMaximized bool `mapstructure:"adjust_when_maximized"`
	// DoubleBuffered composes non-client paints off-screen first.
	DoubleBuffered bool `mapstructure:"double_buffered"`
	// ButtonWidth is the width of each caption button.
	ButtonWidth int         `mapstructure:"button_width"`
	Theme       ThemeConfig `mapstructure:"theme"`
}

// ThemeConfig holds caption colours as "#RRGGBB" or "#AARRGGBB" strings.
type ThemeConfig struct {
	CaptionColor        string `mapstructure:"caption_color"`
	BorderColor         string `mapstructure:"border_color"`
	InactiveBorderColor string `mapstructure:"inactive_border_color"`
	TextColor           string `mapstructure:"text_color"`
	InactiveTextColor   string `mapstructure:"inactive_text_color"`
	GlyphColor          string `mapstructure:"glyph_color"`
	DisabledGlyphColor  string `mapstructure:"disabled_glyph_color"`
	HoverColor          string `mapstructure:"hover_color"`
	PressedColor        string `mapstructure:"pressed_color"`
	CloseHoverColor     string `mapstructure:"close_hover_color"`
	ClosePressedColor   string `mapstructure:"close_pressed_color"`
}

// ShadowConfig holds drop shadow settings.
type ShadowConfig struct {
	// Enabled shows the four shadow overlays.
	Enabled bool `mapstructure:"enabled"`
	// Thickness is the shadow depth in pixels.
	Thickness int `mapstructure:"thickness"`
	// InactiveColor tints the shadow while the window is inactive.
	InactiveColor string `mapstructure:"inactive_color"`
}

// LoggingConfig holds logging-related settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `mapstructure:"level"`
	// ToFile enables logging to a file.
	ToFile bool `mapstructure:"to_file"`
	// FilePath is the path to the log file (relative to config dir if not absolute).
	FilePath string `mapstructure:"file_path"`
	// MaxFileSize is the maximum log file size before rotation.
	MaxFileSize string `mapstructure:"max_file_size"`
	// MaxAge is the maximum age of log files in days.
	MaxAge int `mapstructure:"max_age"`
	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int `mapstructure:"max_backups"`
}

// ParsedCornerRadius parses CornerRadius using the separators of Locale.
func (c *ChromeConfig) ParsedCornerRadius() (models.CornerRadius, error) {
	return models.ParseCornerRadius(c.CornerRadius, models.CultureFor(c.Locale))
}

// Manager handles configuration loading and saving.
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	viper    *viper.Viper
	filePath string
}

var (
	instance *Manager
	once     sync.Once
)

// GetManager returns the singleton configuration manager instance.
func GetManager() *Manager {
	once.Do(func() {
		instance = NewManager()
	})
	return instance
}

// NewManager creates a standalone manager.
func NewManager() *Manager {
	return &Manager{viper: viper.New()}
}

// Load loads the configuration from the specified file path.
// If the file doesn't exist, it creates a default configuration.
// An empty path loads the embedded defaults.
func (m *Manager) Load(configPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.filePath = configPath
	m.viper.SetConfigType("yaml")
	m.setDefaults()

	if configPath != "" {
		m.viper.SetConfigFile(configPath)
		if err := m.viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to read config: %w", err)
			}
			if err := m.createDefaultConfig(configPath); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
			if err := m.viper.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read default config: %w", err)
			}
		}
	} else {
		data, err := defaultConfig.ReadFile("config.yaml")
		if err != nil {
			return fmt.Errorf("failed to read embedded config: %w", err)
		}
		if err := m.viper.ReadConfig(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to parse embedded config: %w", err)
		}
	}

	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	m.config = cfg
	return nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Watch reloads the file whenever it changes on disk and reports the new
// configuration. onChange runs on the watcher goroutine.
func (m *Manager) Watch(onChange func(*Config, error)) {
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		cfg := &Config{}
		m.mu.Lock()
		err := m.viper.Unmarshal(cfg)
		if err == nil {
			m.config = cfg
		}
		m.mu.Unlock()

		if err != nil {
			onChange(nil, fmt.Errorf("failed to reload config %s: %w", e.Name, err))
			return
		}
		onChange(cfg, nil)
	})
	m.viper.WatchConfig()
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "EREZChrome"), nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// setDefaults sets default configuration values.
func (m *Manager) setDefaults() {
	// Chrome defaults
	m.viper.SetDefault("chrome.caption_height", 32)
	m.viper.SetDefault("chrome.border.left", 6)
	m.viper.SetDefault("chrome.border.top", 6)
	m.viper.SetDefault("chrome.border.right", 6)
	m.viper.SetDefault("chrome.border.bottom", 6)
	m.viper.SetDefault("chrome.corner_radius", "8")
	m.viper.SetDefault("chrome.locale", "en-US")
	m.viper.SetDefault("chrome.adjust_when_maximized", true)
	m.viper.SetDefault("chrome.double_buffered", true)
	m.viper.SetDefault("chrome.button_width", 46)
	m.viper.SetDefault("chrome.theme.caption_color", "#202020")
	m.viper.SetDefault("chrome.theme.border_color", "#0078D4")
	m.viper.SetDefault("chrome.theme.inactive_border_color", "#3C3C3C")
	m.viper.SetDefault("chrome.theme.text_color", "#FFFFFF")
	m.viper.SetDefault("chrome.theme.inactive_text_color", "#8A8A8A")
	m.viper.SetDefault("chrome.theme.glyph_color", "#FFFFFF")
	m.viper.SetDefault("chrome.theme.disabled_glyph_color", "#5A5A5A")
	m.viper.SetDefault("chrome.theme.hover_color", "#3A3A3A")
	m.viper.SetDefault("chrome.theme.pressed_color", "#505050")
	m.viper.SetDefault("chrome.theme.close_hover_color", "#E81123")
	m.viper.SetDefault("chrome.theme.close_pressed_color", "#F1707A")

	// Shadow defaults
	m.viper.SetDefault("shadow.enabled", true)
	m.viper.SetDefault("shadow.thickness", 12)
	m.viper.SetDefault("shadow.inactive_color", "#808080")

	// Logging defaults
	m.viper.SetDefault("logging.level", "info")
	m.viper.SetDefault("logging.to_file", true)
	m.viper.SetDefault("logging.file_path", "logs/erez-chrome.log")
	m.viper.SetDefault("logging.max_file_size", "10MB")
	m.viper.SetDefault("logging.max_age", 7)
	m.viper.SetDefault("logging.max_backups", 5)
}

// createDefaultConfig writes the embedded defaults to path.
func (m *Manager) createDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := defaultConfig.ReadFile("config.yaml")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() []error {
	var errs []error

	// Validate chrome config
	if c.Chrome.CaptionHeight < 0 || c.Chrome.CaptionHeight > 200 {
		errs = append(errs, fmt.Errorf("caption_height must be between 0 and 200"))
	}
	if err := c.Chrome.Border.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Chrome.ParsedCornerRadius(); err != nil {
		errs = append(errs, err)
	}
	if c.Chrome.ButtonWidth < 16 || c.Chrome.ButtonWidth > 120 {
		errs = append(errs, fmt.Errorf("button_width must be between 16 and 120"))
	}

	colors := map[string]string{
		"caption_color":         c.Chrome.Theme.CaptionColor,
		"border_color":          c.Chrome.Theme.BorderColor,
		"inactive_border_color": c.Chrome.Theme.InactiveBorderColor,
		"text_color":            c.Chrome.Theme.TextColor,
		"inactive_text_color":   c.Chrome.Theme.InactiveTextColor,
		"glyph_color":           c.Chrome.Theme.GlyphColor,
		"disabled_glyph_color":  c.Chrome.Theme.DisabledGlyphColor,
		"hover_color":           c.Chrome.Theme.HoverColor,
		"pressed_color":         c.Chrome.Theme.PressedColor,
		"close_hover_color":     c.Chrome.Theme.CloseHoverColor,
		"close_pressed_color":   c.Chrome.Theme.ClosePressedColor,
		"shadow.inactive_color": c.Shadow.InactiveColor,
	}
	for name, value := range colors {
		if _, err := utils.ParseHexColor(value); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", name, err))
		}
	}

	// Validate shadow config
	if c.Shadow.Thickness < 1 || c.Shadow.Thickness > 64 {
		errs = append(errs, fmt.Errorf("shadow thickness must be between 1 and 64"))
	}

	// Validate logging config
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Errorf("invalid log level: %s", c.Logging.Level))
	}

	return errs
}
