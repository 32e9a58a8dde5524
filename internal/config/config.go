// Package config provides configuration loading and structs for the meibo server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Source     SourceConfig     `yaml:"source"`
	Search     SearchConfig     `yaml:"search"`
	Score      ScoreConfig      `yaml:"score"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Keywords   KeywordsConfig   `yaml:"keywords"`
	Locations  LocationsConfig  `yaml:"locations"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string  `yaml:"host"`
	Port           int     `yaml:"port"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
	// SessionTTLMinutes is how long an idle browse session survives.
	SessionTTLMinutes int `yaml:"session_ttl_minutes"`
}

// SourceConfig points at the raw profile feed.
type SourceConfig struct {
	// Path is a local JSON file holding the raw profile list.
	Path string `yaml:"path"`
	// URL is an http(s) feed of the same shape. When both are set, URL wins.
	URL string `yaml:"url"`
	// Watch reloads Path on change. File sources only.
	Watch          bool `yaml:"watch"`
	TimeoutSeconds int  `yaml:"timeout_seconds"`
}

// Timeout returns the fetch timeout as a duration.
func (s *SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// SearchConfig holds matching and suggestion settings.
type SearchConfig struct {
	FuzzyMinTermLength int     `yaml:"fuzzy_min_term_length"`
	FuzzyMinWordLength int     `yaml:"fuzzy_min_word_length"`
	FuzzyThreshold     float64 `yaml:"fuzzy_threshold"`
	SuggestionLimit    int     `yaml:"suggestion_limit"`
	MinSuggestionInput int     `yaml:"min_suggestion_input"`
}

// ScoreConfig weights the per-term relevance signal.
type ScoreConfig struct {
	NameWeight         float64 `yaml:"name_weight"`
	ProfessionalWeight float64 `yaml:"professional_weight"`
	TagWeight          float64 `yaml:"tag_weight"`
	PersonalWeight     float64 `yaml:"personal_weight"`
	LocationWeight     float64 `yaml:"location_weight"`
}

// SimilarityConfig weights the member-to-member similarity signal.
type SimilarityConfig struct {
	LocationWeight float64 `yaml:"location_weight"`
	TagWeight      float64 `yaml:"tag_weight"`
	KeywordWeight  float64 `yaml:"keyword_weight"`
}

// KeywordsConfig extends the built-in keyword extraction table, one list per
// category.
type KeywordsConfig struct {
	Roles        []string `yaml:"roles"`
	Technologies []string `yaml:"technologies"`
	Experience   []string `yaml:"experience"`
}

// LocationsConfig extends the built-in location alias table.
type LocationsConfig struct {
	Aliases map[string]string `yaml:"aliases"`
}

// Load reads and parses the config file at path, applies defaults, and
// expands the source path. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if cfg.Source.Path != "" {
		cfg.Source.Path = expandPath(cfg.Source.Path, filepath.Dir(path))
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
