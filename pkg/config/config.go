package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application-level configuration for taxo
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Output  OutputConfig  `mapstructure:"output"`
}

// CatalogConfig holds catalog source/updater settings
type CatalogConfig struct {
	Endpoint string `mapstructure:"endpoint"` // REST endpoint for fetch/persist
	Token    string `mapstructure:"token"`    // bearer token (TAXO_CATALOG_TOKEN)
	Timeout  string `mapstructure:"timeout"`  // e.g. "30s"
	File     string `mapstructure:"file"`     // offline export file (overrides endpoint)
}

// EngineConfig holds batch engine settings
type EngineConfig struct {
	SchemaFile         string `mapstructure:"schema_file"` // taxonomy file; empty = built-in defaults
	Concurrency        int    `mapstructure:"concurrency"`
	ConcurrencyPercent int    `mapstructure:"concurrency_percent"`
	FailOn             string `mapstructure:"fail_on"` // error | warning | suggestion
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Format string `mapstructure:"format"` // concise | markdown | json | html | xml
}

var defaultConfig = Config{
	Catalog: CatalogConfig{
		Timeout: "30s",
	},
	Engine: EngineConfig{
		Concurrency:        0,
		ConcurrencyPercent: 50,
		FailOn:             "error",
	},
	Output: OutputConfig{
		Format: "concise",
	},
}

// Load loads configuration from file, environment and defaults.
// Search order: ./.taxo.yaml, $HOME/.taxo.yaml, TAXO_HOME/config/taxo.yaml.
func Load() (*Config, error) {
	v := viper.New()

	// Every key needs a default so environment overrides bind through Unmarshal.
	v.SetDefault("catalog.endpoint", defaultConfig.Catalog.Endpoint)
	v.SetDefault("catalog.token", defaultConfig.Catalog.Token)
	v.SetDefault("catalog.timeout", defaultConfig.Catalog.Timeout)
	v.SetDefault("catalog.file", defaultConfig.Catalog.File)
	v.SetDefault("engine.schema_file", defaultConfig.Engine.SchemaFile)
	v.SetDefault("engine.concurrency", defaultConfig.Engine.Concurrency)
	v.SetDefault("engine.concurrency_percent", defaultConfig.Engine.ConcurrencyPercent)
	v.SetDefault("engine.fail_on", defaultConfig.Engine.FailOn)
	v.SetDefault("output.format", defaultConfig.Output.Format)

	v.SetConfigName(".taxo")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")
	if configDir, err := GetConfigDir(); err == nil {
		v.AddConfigPath(configDir)
	}

	v.SetEnvPrefix("TAXO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; defaults apply when absent
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	return &cfg, nil
}

// HomeDir returns the taxo home directory (TAXO_HOME or ~/.taxo)
func HomeDir() (string, error) {
	if custom := os.Getenv("TAXO_HOME"); custom != "" {
		return custom, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %v", err)
	}
	return filepath.Join(home, ".taxo"), nil
}

// GetConfigDir returns the configuration directory under taxo home
func GetConfigDir() (string, error) {
	homeDir, err := HomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, "config")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create config directory: %v", err)
	}
	return configDir, nil
}
