package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/vkotov/rulesmith/internal/log"
)

// LoadConfig reads and decodes the TOML configuration file.
// Paths inside the config are resolved relative to the file's directory.
func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		path, err := filepath.Abs(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %v", err)
		}
		configFile = path
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configFile)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf(derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, fmt.Errorf("failed to parse config file")
		}
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	config._absConfigFilePath = configFile
	config.applyDefaults()

	log.Debugf("Configuration file path: %s", configFile)
	log.Debugf("Fetched rules directory: %s", config.GetAbsRulesDir())

	return &config, nil
}

// SerializeConfig encodes the configuration as indented TOML.
func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

// WriteConfig writes the configuration back to the path it was loaded from.
func (c *Config) WriteConfig() error {
	serialized, err := c.SerializeConfig()
	if err != nil {
		return err
	}
	return os.WriteFile(c._absConfigFilePath, serialized.Bytes(), 0644)
}

// SetConfigPath records the file path the config belongs to.
// Used when building a config in memory instead of loading it.
func (c *Config) SetConfigPath(configPath string) error {
	path, err := filepath.Abs(filepath.Clean(configPath))
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %v", err)
	}
	c._absConfigFilePath = path
	return nil
}
