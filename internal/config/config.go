package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Pg             Pg            `yaml:"pg"`
	LogLevel       string        `yaml:"log_level"`
	LogJSON        bool          `yaml:"log_json"`
	ThreadsPerPage int           `yaml:"threads_per_page"` // default page size for listing and search
	SafeURLs       bool          `yaml:"safe_urls"`        // emit bare numeric thread identifiers
	SearchURL      string        `yaml:"search_url"`
	SearchTimeout  time.Duration `yaml:"search_timeout"` // bound on the external index call
	RedisURL       string        `yaml:"redis_url"`
	JwtTTL         time.Duration `yaml:"jwt_ttl"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	JwtKey       string `yaml:"jwt_key"`
	SearchAPIKey string `yaml:"search_api_key"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Public.ThreadsPerPage <= 0 {
		c.Public.ThreadsPerPage = 30
	}
	if c.Public.SearchTimeout <= 0 {
		c.Public.SearchTimeout = 5 * time.Second
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
}
