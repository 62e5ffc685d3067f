package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents runtime configuration for the server.
type Config struct {
	ServerAddress    string       `json:"server_address"`
	StaticDir        string       `json:"static_dir"`
	ConversationsDir string       `json:"conversations_dir"`
	Gemini           GeminiConfig `json:"gemini"`
}

type GeminiConfig struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

func defaults() *Config {
	return &Config{
		ServerAddress:    ":8000",
		StaticDir:        "web",
		ConversationsDir: "conversations",
		Gemini: GeminiConfig{
			Model: "gemini-1.5-flash",
		},
	}
}

// Load reads configuration from the provided path (defaults to config.json).
// A missing file is not an error: the server runs on defaults plus
// environment overrides, so a bare checkout works out of the box.
// GEMINI_API_KEY in the environment always wins over the file.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = "config.json"
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	file, err := os.Open(absPath)
	if err == nil {
		defer file.Close()
		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("open config %s: %w", absPath, err)
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}
	if cfg.ServerAddress == "" {
		cfg.ServerAddress = ":8000"
	}
	if cfg.ConversationsDir == "" {
		cfg.ConversationsDir = "conversations"
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = "web"
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-1.5-flash"
	}
	return cfg, nil
}
