package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Server    ServerConfig    `toml:"server"`
	Dashboard DashboardConfig `toml:"dashboard"`
	Goals     GoalsConfig     `toml:"goals"`
	Ranking   RankingConfig   `toml:"ranking"`
	Auth      AuthConfig      `toml:"auth"`
	Log       LogConfig       `toml:"log"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains settings for the local JSON API.
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// DashboardConfig contains the fixed lists and fallbacks used by the catalog views.
type DashboardConfig struct {
	Artists          []string `toml:"artists"`
	FeaturedAlbums   []string `toml:"featured_albums"`
	DefaultDailyGoal int64    `toml:"default_daily_goal"`
	DefaultFocusSong string   `toml:"default_focus_song"`
	PlaylistURL      string   `toml:"playlist_url"`
}

// GoalsConfig contains goal progression settings.
type GoalsConfig struct {
	InitialGoal int64 `toml:"initial_goal"`
	RecentLimit int   `toml:"recent_limit"`
}

// RankingConfig contains leaderboard settings.
type RankingConfig struct {
	Size int `toml:"size"`
}

// AuthConfig contains login settings.
type AuthConfig struct {
	HashPasswords bool `toml:"hash_passwords"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
