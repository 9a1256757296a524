// Package config loads server settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all server settings.
type Config struct {
	Addr        string `yaml:"addr" json:"addr"`                       // Listen address, e.g. ":3001"
	MongoURI    string `yaml:"mongo_uri" json:"mongo_uri"`             // Document store connection string
	MongoDB     string `yaml:"mongo_db" json:"mongo_db"`               // Database name
	OpenAIKey   string `yaml:"openai_api_key" json:"-"`                // Completion provider credential
	OpenAIBase  string `yaml:"openai_base_url" json:"openai_base_url"` // Override for OpenAI-compatible endpoints
	FrontendURL string `yaml:"frontend_url" json:"frontend_url"`       // Allowed CORS origin

	LogLevel   string `yaml:"log_level" json:"log_level"`
	LogFile    string `yaml:"log_file" json:"log_file"`
	LogConsole bool   `yaml:"log_console" json:"log_console"`
}

// DefaultConfig returns settings with environment overrides applied.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".flowboard", "logs", "flowboard.log")
	}

	return &Config{
		Addr:        ":" + getEnv("PORT", "3001"),
		MongoURI:    getEnv("FLOWBOARD_MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("FLOWBOARD_MONGO_DB", "flowboard"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBase:  os.Getenv("OPENAI_BASE_URL"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		LogLevel:    getEnv("FLOWBOARD_LOG_LEVEL", "INFO"),
		LogFile:     getEnv("FLOWBOARD_LOG_FILE", logPath),
		LogConsole:  getEnv("FLOWBOARD_LOG_CONSOLE", "true") == "true",
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load reads config from path, or ~/.flowboard/config.yaml when path is
// empty. A missing file is not an error; environment-backed defaults apply.
// Environment variables win over file values.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".flowboard", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// A plain bool cannot express "unset", so probe the file separately to
	// tell an explicit log_console: false apart from an omitted key.
	var file struct {
		LogConsole *bool `yaml:"log_console"`
	}
	_ = yaml.Unmarshal(data, &file)

	// Fill anything the file left out, and let the environment win.
	defaults := DefaultConfig()
	merge(cfg, defaults)
	if file.LogConsole != nil && os.Getenv("FLOWBOARD_LOG_CONSOLE") == "" {
		cfg.LogConsole = *file.LogConsole
	}
	return cfg, nil
}

func merge(cfg, env *Config) {
	if cfg.Addr == "" || os.Getenv("PORT") != "" {
		cfg.Addr = env.Addr
	}
	if cfg.MongoURI == "" || os.Getenv("FLOWBOARD_MONGO_URI") != "" {
		cfg.MongoURI = env.MongoURI
	}
	if cfg.MongoDB == "" || os.Getenv("FLOWBOARD_MONGO_DB") != "" {
		cfg.MongoDB = env.MongoDB
	}
	if cfg.OpenAIKey == "" || os.Getenv("OPENAI_API_KEY") != "" {
		cfg.OpenAIKey = env.OpenAIKey
	}
	if cfg.OpenAIBase == "" || os.Getenv("OPENAI_BASE_URL") != "" {
		cfg.OpenAIBase = env.OpenAIBase
	}
	if cfg.FrontendURL == "" || os.Getenv("FRONTEND_URL") != "" {
		cfg.FrontendURL = env.FrontendURL
	}
	if cfg.LogLevel == "" || os.Getenv("FLOWBOARD_LOG_LEVEL") != "" {
		cfg.LogLevel = env.LogLevel
	}
	if cfg.LogFile == "" || os.Getenv("FLOWBOARD_LOG_FILE") != "" {
		cfg.LogFile = env.LogFile
	}
	// log_console: the file value is applied by Load when the key is
	// present and the environment is unset; everything else uses env.
	cfg.LogConsole = env.LogConsole
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.OpenAIKey == "" {
		return errors.New("OpenAI API key not found: set OPENAI_API_KEY or openai_api_key in config")
	}
	return nil
}
