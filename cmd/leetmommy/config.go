package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/leetmommy/leetmommy"
	"github.com/leetmommy/leetmommy/crawl"
	"github.com/leetmommy/leetmommy/elasticsearch"
	"gopkg.in/yaml.v3"
)

// Environment modes.
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// DefaultConfigPath is read when no config file is given and it exists.
const DefaultConfigPath = "leetmommy.yaml"

// Config holds process-wide settings. It is loaded once at startup from an
// optional YAML file, then overridden by environment variables.
type Config struct {
	Env              string   `yaml:"env"`
	ElasticsearchURL string   `yaml:"elasticsearch_url"`
	Addr             string   `yaml:"addr"`
	Cohorts          []string `yaml:"cohorts"`
	DBPath           string   `yaml:"db"`
	Debug            *bool    `yaml:"debug"`

	Crawl struct {
		ListingURL   string        `yaml:"listing_url"`
		Concurrency  int           `yaml:"concurrency"`
		Timeout      time.Duration `yaml:"timeout"`
		FetchTimeout time.Duration `yaml:"fetch_timeout"`
		RateLimit    float64       `yaml:"rate_limit"`
	} `yaml:"crawl"`

	// Search tunes full-text ranking. Unset values use
	// elasticsearch.DefaultQueryConfig.
	Search struct {
		TitleBoost  float64 `yaml:"title_boost"`
		HeaderBoost float64 `yaml:"header_boost"`
		CodeBoost   float64 `yaml:"code_boost"`
		Fuzziness   *int    `yaml:"fuzziness"`
	} `yaml:"search"`
}

// LoadConfig reads the YAML file at path, or DefaultConfigPath if path is
// empty and the file exists, then applies environment overrides and
// per-environment defaults.
func LoadConfig(path string, getenv func(string) string) (*Config, error) {
	var config Config

	if path == "" {
		if _, err := os.Stat(DefaultConfigPath); err == nil {
			path = DefaultConfigPath
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := mergeWithEnv(&config, getenv); err != nil {
		return nil, err
	}
	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func mergeWithEnv(config *Config, getenv func(string) string) error {
	if v := getenv("LEETMOMMY_ENV"); v != "" {
		config.Env = v
	}
	if v := getenv("ELASTIC_SEARCH_URL"); v != "" {
		config.ElasticsearchURL = v
	}
	if v := getenv("LEETMOMMY_ADDR"); v != "" {
		config.Addr = v
	}
	if v := getenv("LEETMOMMY_COHORTS"); v != "" {
		config.Cohorts = leetmommy.ParseCohorts(v).Strings()
	}
	if v := getenv("LEETMOMMY_DB"); v != "" {
		config.DBPath = v
	}
	if v := getenv("LEETMOMMY_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse LEETMOMMY_DEBUG: %w", err)
		}
		config.Debug = &debug
	}
	return nil
}

func applyDefaults(config *Config) {
	if config.Env == "" {
		config.Env = EnvDevelopment
	}

	// Production has no engine default; Validate reports it instead.
	if config.ElasticsearchURL == "" && config.Env != EnvProduction {
		config.ElasticsearchURL = elasticsearch.DefaultURL
	}
	if config.Debug == nil {
		debug := config.Env != EnvProduction
		config.Debug = &debug
	}

	if config.Addr == "" {
		config.Addr = ":5000"
	}
	if len(config.Cohorts) == 0 {
		config.Cohorts = leetmommy.DefaultCohorts().Strings()
	}
	if config.DBPath == "" {
		config.DBPath = defaultDBPath()
	}

	if config.Crawl.ListingURL == "" {
		config.Crawl.ListingURL = crawl.DefaultListingURL
	}
	if config.Crawl.Concurrency == 0 {
		config.Crawl.Concurrency = crawl.DefaultConcurrency
	}
	if config.Crawl.Timeout == 0 {
		config.Crawl.Timeout = crawl.DefaultTimeout
	}

	query := elasticsearch.DefaultQueryConfig()
	if config.Search.TitleBoost == 0 {
		config.Search.TitleBoost = query.TitleBoost
	}
	if config.Search.HeaderBoost == 0 {
		config.Search.HeaderBoost = query.HeaderBoost
	}
	if config.Search.CodeBoost == 0 {
		config.Search.CodeBoost = query.CodeBoost
	}
	if config.Search.Fuzziness == nil {
		config.Search.Fuzziness = &query.Fuzziness
	}
}

// Validate returns a *leetmommy.ValidationError naming every invalid field.
func (c *Config) Validate() error {
	var verr leetmommy.ValidationError
	add := func(field, message string) {
		verr.Errors = append(verr.Errors, leetmommy.FieldError{Field: field, Message: message})
	}

	switch c.Env {
	case EnvDevelopment, EnvTesting, EnvProduction:
	default:
		add("env", fmt.Sprintf("Value must be one of [%s %s %s].", EnvDevelopment, EnvTesting, EnvProduction))
	}
	if c.ElasticsearchURL == "" {
		add("elasticsearch_url", "This field is required in production. Set ELASTIC_SEARCH_URL.")
	}
	if c.Crawl.Concurrency < 0 {
		add("crawl.concurrency", "Value must not be negative.")
	}
	if c.Crawl.Timeout < 0 {
		add("crawl.timeout", "Value must not be negative.")
	}
	if c.Crawl.RateLimit < 0 {
		add("crawl.rate_limit", "Value must not be negative.")
	}
	if err := c.QueryConfig().Validate(); err != nil {
		add("search", leetmommy.ErrorMessage(err))
	}

	if len(verr.Errors) == 0 {
		return nil
	}
	return &verr
}

// QueryConfig returns the search weighting.
func (c *Config) QueryConfig() elasticsearch.QueryConfig {
	query := elasticsearch.QueryConfig{
		TitleBoost:  c.Search.TitleBoost,
		HeaderBoost: c.Search.HeaderBoost,
		CodeBoost:   c.Search.CodeBoost,
	}
	if c.Search.Fuzziness != nil {
		query.Fuzziness = *c.Search.Fuzziness
	}
	return query
}

// CohortSet returns the configured cohorts.
func (c *Config) CohortSet() leetmommy.Cohorts {
	cohorts := make(leetmommy.Cohorts, len(c.Cohorts))
	for i, s := range c.Cohorts {
		cohorts[i] = leetmommy.Cohort(s)
	}
	return cohorts
}

// DebugEnabled reports whether debug logging is on.
func (c *Config) DebugEnabled() bool {
	return c.Debug != nil && *c.Debug
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "leetmommy.db"
	}
	dir := filepath.Join(home, ".leetmommy")
	if err := os.MkdirAll(dir, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
		return "leetmommy.db"
	}
	return filepath.Join(dir, "leetmommy.db")
}
