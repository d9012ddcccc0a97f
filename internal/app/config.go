package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"tierbench/internal/seed"
)

const (
	// DefaultConfigPath 是未指定配置时读取的文件。
	DefaultConfigPath = "configs/config.yaml"
	// ConfigEnv 可覆盖默认配置路径。
	ConfigEnv = "TIERBENCH_CONFIG"
)

type HTTP struct {
	Listen             string   `yaml:"listen"`
	CORSOrigins        []string `yaml:"cors_origins"`
	ShutdownTimeoutSec int      `yaml:"shutdown_timeout_second"`
}

type Log struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type SQL struct {
	Driver          string `yaml:"driver"`
	DSN             string `yaml:"dsn"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	BatchSize       int    `yaml:"batch_size"`
	SlowThresholdMs int    `yaml:"slow_threshold_ms"`
	ResetOnStart    bool   `yaml:"reset_on_start"`
}

type Mongo struct {
	URI                  string `yaml:"uri"`
	Database             string `yaml:"database"`
	Collection           string `yaml:"collection"`
	ConnectTimeoutSecond int    `yaml:"connect_timeout_second"`
	BatchSize            int    `yaml:"batch_size"`
	Retry                Retry  `yaml:"retry"`
}

type Neo4j struct {
	URI                  string `yaml:"uri"`
	Username             string `yaml:"username"`
	Password             string `yaml:"password"`
	Database             string `yaml:"database"`
	MaxConnectionPool    int    `yaml:"max_connections"`
	ConnectTimeoutSecond int    `yaml:"connect_timeout_second"`
	BatchSize            int    `yaml:"batch_size"`
	Retry                Retry  `yaml:"retry"`
}

type Retry struct {
	Attempts       int `yaml:"attempts"`
	BackoffSeconds int `yaml:"backoff_seconds"`
}

// Seed 控制造数引擎。
type Seed struct {
	Seed               int64  `yaml:"seed"`
	Policy             string `yaml:"policy"`
	RelationMaxPerItem int    `yaml:"relation_count_max_per_item"`
}

// Bench 控制定时压测。
type Bench struct {
	Enabled    bool   `yaml:"enabled"`
	Cron       string `yaml:"cron"`
	Iterations int    `yaml:"iterations"`
}

// Heartbeat 控制存储心跳检查。
type Heartbeat struct {
	Enabled bool   `yaml:"enabled"`
	Cron    string `yaml:"cron"`
}

type Config struct {
	HTTP      HTTP      `yaml:"http"`
	Log       Log       `yaml:"log"`
	SQL       SQL       `yaml:"sql"`
	Mongo     Mongo     `yaml:"mongo"`
	Neo4j     Neo4j     `yaml:"neo4j"`
	Seed      Seed      `yaml:"seed"`
	Bench     Bench     `yaml:"bench"`
	Heartbeat Heartbeat `yaml:"heartbeat"`
}

// ResolveConfigPath 依次取显式路径、环境变量和默认路径。
func ResolveConfigPath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(ConfigEnv)); p != "" {
		return p
	}
	return DefaultConfigPath
}

// LoadConfig 从文件加载配置，补齐默认值后校验。
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置失败: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置失败: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyDefaults 为未填写的字段补默认值。
func (c *Config) ApplyDefaults() {
	if c.HTTP.Listen == "" {
		c.HTTP.Listen = ":8080"
	}
	if c.HTTP.ShutdownTimeoutSec <= 0 {
		c.HTTP.ShutdownTimeoutSec = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Encoding == "" {
		c.Log.Encoding = "console"
	}
	if c.SQL.Driver == "" {
		c.SQL.Driver = "sqlite"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "tierbench"
	}
	c.Mongo.Retry.applyDefaults()
	if c.Neo4j.Database == "" {
		c.Neo4j.Database = "neo4j"
	}
	c.Neo4j.Retry.applyDefaults()
	if c.Seed.Seed == 0 {
		c.Seed.Seed = seed.DefaultSeed
	}
	if c.Seed.Policy == "" {
		c.Seed.Policy = seed.WithReplacement.String()
	}
	if c.Seed.RelationMaxPerItem <= 0 {
		c.Seed.RelationMaxPerItem = seed.DefaultMaxCount
	}
	if c.Bench.Cron == "" {
		c.Bench.Cron = "0 7 * * *"
	}
	if c.Bench.Iterations <= 0 {
		c.Bench.Iterations = 5
	}
	if c.Heartbeat.Cron == "" {
		c.Heartbeat.Cron = "@hourly"
	}
}

func (r *Retry) applyDefaults() {
	if r.Attempts <= 0 {
		r.Attempts = 3
	}
	if r.BackoffSeconds <= 0 {
		r.BackoffSeconds = 1
	}
}

// Validate 校验配置的合法性。
func (c Config) Validate() error {
	if _, err := seed.ParsePolicy(c.Seed.Policy); err != nil {
		return fmt.Errorf("seed.policy 非法: %w", err)
	}
	switch strings.ToLower(c.SQL.Driver) {
	case "sqlite", "postgres", "postgresql":
	default:
		return fmt.Errorf("sql.driver 非法: %s", c.SQL.Driver)
	}
	if c.Bench.Enabled {
		if _, err := cron.ParseStandard(c.Bench.Cron); err != nil {
			return fmt.Errorf("bench.cron 非法: %w", err)
		}
	}
	if c.Heartbeat.Enabled {
		if _, err := cron.ParseStandard(c.Heartbeat.Cron); err != nil {
			return fmt.Errorf("heartbeat.cron 非法: %w", err)
		}
	}
	return nil
}

// SQLEnabled 表示是否配置了关系库。
func (c Config) SQLEnabled() bool { return strings.TrimSpace(c.SQL.DSN) != "" }

// MongoEnabled 表示是否配置了 MongoDB。
func (c Config) MongoEnabled() bool { return strings.TrimSpace(c.Mongo.URI) != "" }

// Neo4jEnabled 表示是否配置了 Neo4j。
func (c Config) Neo4jEnabled() bool { return strings.TrimSpace(c.Neo4j.URI) != "" }
