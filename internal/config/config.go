package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger      LoggerConfig      `mapstructure:"logger" yaml:"logger"`
	Spanner     SpannerConfig     `mapstructure:"spanner" yaml:"spanner"`
	Transformer TransformerConfig `mapstructure:"transformer" yaml:"transformer"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SpannerConfig holds the backend target and the schema object names. All
// names are free-form.
type SpannerConfig struct {
	Project        string        `mapstructure:"project" yaml:"project"`
	Instance       string        `mapstructure:"instance" yaml:"instance"`
	Database       string        `mapstructure:"database" yaml:"database"`
	NodeTable      string        `mapstructure:"node_table" yaml:"node_table"`
	EdgeTable      string        `mapstructure:"edge_table" yaml:"edge_table"`
	GraphName      string        `mapstructure:"graph_name" yaml:"graph_name"`
	DDLTimeout     time.Duration `mapstructure:"ddl_timeout" yaml:"ddl_timeout"`
	StrictIdentity bool          `mapstructure:"strict_identity" yaml:"strict_identity"`
}

// DatabasePath renders the fully qualified database resource name.
func (s SpannerConfig) DatabasePath() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s", s.Project, s.Instance, s.Database)
}

// TransformerConfig tunes the LLM extraction pipeline.
type TransformerConfig struct {
	Model             string        `mapstructure:"model" yaml:"model"`
	APIKey            string        `mapstructure:"api_key" yaml:"-"`
	Temperature       float32       `mapstructure:"temperature" yaml:"temperature"`
	Concurrency       int           `mapstructure:"concurrency" yaml:"concurrency"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "graphloom")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Spanner --
	v.SetDefault("spanner.node_table", "GraphNode")
	v.SetDefault("spanner.edge_table", "GraphEdge")
	v.SetDefault("spanner.graph_name", "EntityGraph")
	v.SetDefault("spanner.ddl_timeout", "200s")
	v.SetDefault("spanner.strict_identity", false)

	// -- Transformer --
	v.SetDefault("transformer.model", "gemini-2.5-pro")
	v.SetDefault("transformer.temperature", 0.0)
	v.SetDefault("transformer.concurrency", 4)
	v.SetDefault("transformer.requests_per_second", 1.0)
	v.SetDefault("transformer.request_timeout", "2m")
}

// NewDefaultConfig returns a configuration populated with defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper creates a configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	// Sensitive values come from the environment, never the config file.
	_ = v.BindEnv("transformer.api_key", "GRAPHLOOM_GEMINI_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks for sane values. Backend target fields are checked at
// store construction instead, so commands that never touch the store (e.g.
// version) work without them.
func (c *Config) Validate() error {
	if c.Spanner.NodeTable == "" || c.Spanner.EdgeTable == "" {
		return fmt.Errorf("spanner.node_table and spanner.edge_table are required")
	}
	if c.Spanner.NodeTable == c.Spanner.EdgeTable {
		return fmt.Errorf("spanner.node_table and spanner.edge_table must differ")
	}
	if c.Spanner.GraphName == "" {
		return fmt.Errorf("spanner.graph_name is required")
	}
	if c.Spanner.DDLTimeout <= 0 {
		return fmt.Errorf("spanner.ddl_timeout must be a positive duration")
	}
	if c.Transformer.Concurrency <= 0 {
		return fmt.Errorf("transformer.concurrency must be a positive integer")
	}
	if c.Transformer.RequestsPerSecond <= 0 {
		return fmt.Errorf("transformer.requests_per_second must be positive")
	}
	return nil
}
