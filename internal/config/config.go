// Package config resolves server settings: built-in defaults, then an
// optional YAML file, then environment variables (a .env file is loaded by
// the caller through godotenv before Load runs).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full set of server settings.
type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	DBPath   string `yaml:"db_path"`

	Content ContentConfig `yaml:"content"`
	Auth    AuthConfig    `yaml:"auth"`

	ClientOrigin string `yaml:"client_origin"`
	SessionIdle  int    `yaml:"session_idle_minutes"`
	Production   bool   `yaml:"production"`
}

// ContentConfig points at optional word/message files; empty means embedded.
type ContentConfig struct {
	WordsFile           string `yaml:"words_file"`
	CorrectMessagesFile string `yaml:"correct_messages_file"`
	WrongMessagesFile   string `yaml:"wrong_messages_file"`
}

// AuthConfig controls account tokens and cookies.
type AuthConfig struct {
	JWTSecret   string `yaml:"jwt_secret"`
	ExpiresDays int    `yaml:"jwt_expires_days"`
	CookieName  string `yaml:"cookie_name"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Port:         "5175",
		LogLevel:     "info",
		DBPath:       "./data/forca.db",
		ClientOrigin: "http://localhost:5175",
		SessionIdle:  120,
		Auth: AuthConfig{
			JWTSecret:   "dev_secret_change_me",
			ExpiresDays: 14,
			CookieName:  "forca_token",
		},
	}
}

// SessionIdleTimeout is SessionIdle as a duration.
func (c Config) SessionIdleTimeout() time.Duration {
	return time.Duration(c.SessionIdle) * time.Minute
}

// Load builds the config. A missing file at path is not an error; an
// unreadable or malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(c *Config) {
	c.Port = Env("PORT", c.Port)
	c.LogLevel = Env("LOG_LEVEL", c.LogLevel)
	c.DBPath = Env("DB_PATH", c.DBPath)
	c.Content.WordsFile = Env("WORDS_FILE", c.Content.WordsFile)
	c.Content.CorrectMessagesFile = Env("CORRECT_MESSAGES_FILE", c.Content.CorrectMessagesFile)
	c.Content.WrongMessagesFile = Env("WRONG_MESSAGES_FILE", c.Content.WrongMessagesFile)
	c.Auth.JWTSecret = Env("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.ExpiresDays = EnvInt("JWT_EXPIRES_DAYS", c.Auth.ExpiresDays)
	c.Auth.CookieName = Env("COOKIE_NAME", c.Auth.CookieName)
	c.ClientOrigin = Env("CLIENT_ORIGIN", c.ClientOrigin)
	c.SessionIdle = EnvInt("SESSION_IDLE_MINUTES", c.SessionIdle)
	if os.Getenv("NODE_ENV") == "production" {
		c.Production = true
	}
}

func (c Config) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("config: invalid port %q", c.Port)
	}
	if c.SessionIdle <= 0 {
		return fmt.Errorf("config: session_idle_minutes must be positive, got %d", c.SessionIdle)
	}
	if c.Auth.ExpiresDays <= 0 {
		return fmt.Errorf("config: jwt_expires_days must be positive, got %d", c.Auth.ExpiresDays)
	}
	return nil
}

// Env returns the value of k or def if unset/empty.
func Env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// EnvInt is Env for integers; unparsable values yield def.
func EnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
