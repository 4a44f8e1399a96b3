// Package config resolves server settings from defaults, an optional YAML
// file, a .env file and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort      = "3000"
	DefaultDBFile    = "db.json"
	DefaultPublicDir = "public"
	DefaultOrigins   = "*"
	DefaultBodyLimit = 256 * 1024
)

type Config struct {
	Port         string `yaml:"port"`
	DBFile       string `yaml:"db_file"`
	PublicDir    string `yaml:"public_dir"`
	AllowOrigins string `yaml:"allow_origins"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	APITokenHash string `yaml:"api_token_hash"`
	BodyLimit    int    `yaml:"body_limit"`
}

func Default() *Config {
	return &Config{
		Port:         DefaultPort,
		DBFile:       DefaultDBFile,
		PublicDir:    DefaultPublicDir,
		AllowOrigins: DefaultOrigins,
		LogLevel:     "info",
		LogFormat:    "json",
		BodyLimit:    DefaultBodyLimit,
	}
}

// Load builds the configuration. envFiles are passed to godotenv; with none,
// ./.env is tried. Missing env files are ignored and never override variables
// already set in the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := Default()

	if path, ok := os.LookupEnv("TODO_CONFIG"); ok && path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.mergeEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg.resolve()
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	set("PORT", &c.Port)
	set("DB_FILE", &c.DBFile)
	set("PUBLIC_DIR", &c.PublicDir)
	set("ALLOW_ORIGINS", &c.AllowOrigins)
	set("LOG_LEVEL", &c.LogLevel)
	set("LOG_FORMAT", &c.LogFormat)
	set("API_TOKEN_HASH", &c.APITokenHash)

	if v, ok := lookup("BODY_LIMIT"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid BODY_LIMIT %q: %w", v, err)
		}
		c.BodyLimit = n
	}
	return nil
}

func (c *Config) resolve() (*Config, error) {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return nil, fmt.Errorf("invalid port %q", c.Port)
	}
	if c.BodyLimit <= 0 {
		return nil, fmt.Errorf("invalid body limit %d", c.BodyLimit)
	}

	var err error
	if c.DBFile, err = filepath.Abs(c.DBFile); err != nil {
		return nil, fmt.Errorf("failed to resolve db file: %w", err)
	}
	if c.PublicDir, err = filepath.Abs(c.PublicDir); err != nil {
		return nil, fmt.Errorf("failed to resolve public dir: %w", err)
	}
	return c, nil
}

// Origins splits AllowOrigins on commas, trimming and dropping blanks.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
