// Package config loads the YAML configuration for custom tags and
// participant display names. A missing default config is not an error: the
// tool runs fine with no custom tags and raw handles.
package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "config.yaml"

// Config is the root configuration.
type Config struct {
	Gemini       Gemini        `yaml:"gemini"`
	Tags         []Tag         `yaml:"tags"`
	Participants []Participant `yaml:"participants"`
}

// Gemini configures the text-generation collaborator. The API key comes only
// from the environment, never from the file.
type Gemini struct {
	Model string `yaml:"model"`
}

// Tag describes one custom tag the evaluator may apply.
type Tag struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Participant maps an AIM handle to a display name and a Markdown link.
type Participant struct {
	Name string `yaml:"name"`
	AIM  string `yaml:"aim"`
	MD   string `yaml:"md"`
}

// Load reads and validates the config at path. Invalid tag or participant
// entries are skipped with a warning rather than failing the load.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	valid := cfg.Tags[:0]
	for _, t := range cfg.Tags {
		if t.Name == "" || t.Description == "" {
			logrus.Warnf("skipping invalid tag entry in %s: %+v", path, t)
			continue
		}
		valid = append(valid, t)
	}
	cfg.Tags = valid

	validP := cfg.Participants[:0]
	for _, p := range cfg.Participants {
		if p.Name == "" || p.AIM == "" {
			logrus.Warnf("skipping invalid participant entry in %s: %+v", path, p)
			continue
		}
		validP = append(validP, p)
	}
	cfg.Participants = validP

	return &cfg, nil
}

// LoadDefault loads DefaultPath if it exists, or returns an empty config.
func LoadDefault() (*Config, error) {
	if _, err := os.Stat(DefaultPath); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return Load(DefaultPath)
}
