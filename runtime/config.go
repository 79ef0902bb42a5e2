package runtime

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is looked up in the user's home directory.
const DefaultConfigName = ".glox.yml"

// Config holds REPL settings read from a YAML file.
type Config struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	Banner             string `yaml:"banner"`
	HistoryFile        string `yaml:"history_file"`
	MultiLine          bool   `yaml:"multi_line"`
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() *Config {
	cfg := &Config{
		Prompt:             "> ",
		ContinuationPrompt: "... ",
		Banner:             "The Lox Programming Language",
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		cfg.HistoryFile = filepath.Join(home, ".glox_history")
	}
	return cfg
}

// LoadConfig reads settings from path on top of the defaults. An empty path
// selects $HOME/.glox.yml, which may be absent; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return cfg, nil
		}
		path = filepath.Join(home, DefaultConfigName)
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty file keeps the defaults.
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Prompt == "" {
		return errors.New("prompt must not be empty")
	}
	if c.ContinuationPrompt == "" {
		return errors.New("continuation_prompt must not be empty")
	}
	return nil
}
