package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/mediadex/mediadex/pkg/catalog"
)

//go:embed config.toml.sample
var configTemplate string

type Config struct {
	Database   string            `toml:"database"`
	ListenAddr string            `toml:"listen_addr"`
	StaticDir  string            `toml:"static_dir"`
	MatchMode  catalog.MatchMode `toml:"match_mode"`
	Debug      bool              `toml:"debug"`
}

func GetDefaultConfig() (*Config, error) {
	dbPath, err := GetDefaultDatabasePath()
	if err != nil {
		return nil, fmt.Errorf("getting default database path: %w", err)
	}
	return &Config{
		Database:   dbPath,
		ListenAddr: ":1337",
		StaticDir:  "static",
		MatchMode:  catalog.MatchFTS,
	}, nil
}

// LoadConfig reads the TOML config at configPath, filling in defaults for
// missing fields. A missing file yields the default config.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.Database == "" {
		dbPath, err := GetDefaultDatabasePath()
		if err != nil {
			return nil, fmt.Errorf("getting default database path: %w", err)
		}
		config.Database = dbPath
	}
	if config.ListenAddr == "" {
		config.ListenAddr = ":1337"
	}
	if config.MatchMode == "" {
		config.MatchMode = catalog.MatchFTS
	}
	if !config.MatchMode.Valid() {
		return nil, fmt.Errorf("invalid match_mode %q (want %q or %q)", config.MatchMode, catalog.MatchFTS, catalog.MatchLike)
	}

	return &config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the commented sample config with this config's
// database path substituted in.
func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	template := strings.ReplaceAll(configTemplate, "{{DATABASE}}", c.Database)
	return os.WriteFile(configPath, []byte(template), 0644)
}

func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config directory: %w", err)
	}
	return filepath.Join(configDir, "mediadex", "config.toml"), nil
}

func GetDefaultDatabasePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config directory: %w", err)
	}
	return filepath.Join(configDir, "mediadex", "catalog.db"), nil
}
