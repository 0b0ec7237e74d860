// Package config loads process-wide settings once at startup. The returned *Config is
// read-only afterwards and is passed explicitly to the components that need it.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Defaults used when neither the config file, the environment nor a flag sets a value.
const (
	DefaultPort            = "5000"
	DefaultJWTSecret       = "default_secret"
	DefaultDatabaseDSN     = "authgate.db"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
	DefaultGinMode         = "release"
	DefaultCORSOrigins     = "http://localhost:5173"
	DefaultShutdownTimeout = 10 * time.Second
)

const (
	keyPort            = "port"
	keyJWTSecret       = "jwt.secret"
	keyDatabaseDSN     = "db.dsn"
	keyLogLevel        = "log.level"
	keyLogFormat       = "log.format"
	keyGinMode         = "gin.mode"
	keyCORSOrigins     = "cors.allowed_origins"
	keyHashConcurrency = "hash.concurrency"
	keyShutdownTimeout = "http.shutdown_timeout"
)

// Config holds everything the server needs to start.
type Config struct {
	Port               string
	JWTSecret          string
	DatabaseDSN        string
	LogLevel           string
	LogFormat          string
	GinMode            string
	CORSAllowedOrigins []string
	HashConcurrency    int
	ShutdownTimeout    time.Duration
}

// Options controls where Load looks for its sources.
type Options struct {
	// ConfigPaths are searched for config.yml. A missing file is not an error.
	ConfigPaths []string
	// EnvFiles are loaded into the process environment when present.
	EnvFiles []string
}

// DefaultOptions mirrors the layout of a checked-out repository.
func DefaultOptions() Options {
	return Options{
		ConfigPaths: []string{"configs"},
		EnvFiles:    []string{".env"},
	}
}

// envBindings lists, per key, the environment variables that set it. The first name
// present wins.
var envBindings = map[string][]string{
	keyPort:            {"PORT"},
	keyJWTSecret:       {"JWT_SECRET"},
	keyDatabaseDSN:     {"DB_DSN", "DATABASE_URL"},
	keyLogLevel:        {"LOG_LEVEL"},
	keyLogFormat:       {"LOG_FORMAT"},
	keyGinMode:         {"GIN_MODE"},
	keyCORSOrigins:     {"CORS_ALLOWED_ORIGINS"},
	keyHashConcurrency: {"HASH_CONCURRENCY"},
	keyShutdownTimeout: {"HTTP_SHUTDOWN_TIMEOUT"},
}

// Load reads defaults, config.yml, .env, the environment and command line flags, in
// increasing order of precedence. The process environment is only read, never written.
func Load(args []string, opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range opts.ConfigPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	dotenv, err := readEnvFiles(opts.EnvFiles)
	if err != nil {
		return nil, err
	}
	if err := mergeDotEnv(v, dotenv); err != nil {
		return nil, err
	}

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	cfg := &Config{
		Port:               strings.TrimPrefix(strings.TrimSpace(v.GetString(keyPort)), ":"),
		JWTSecret:          v.GetString(keyJWTSecret),
		DatabaseDSN:        strings.TrimSpace(v.GetString(keyDatabaseDSN)),
		LogLevel:           strings.ToLower(strings.TrimSpace(v.GetString(keyLogLevel))),
		LogFormat:          strings.ToLower(strings.TrimSpace(v.GetString(keyLogFormat))),
		GinMode:            strings.TrimSpace(v.GetString(keyGinMode)),
		CORSAllowedOrigins: splitList(v.GetString(keyCORSOrigins)),
		HashConcurrency:    v.GetInt(keyHashConcurrency),
		ShutdownTimeout:    v.GetDuration(keyShutdownTimeout),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch {
	case c.Port == "":
		return errors.New("port must not be empty")
	case c.JWTSecret == "":
		return errors.New("jwt secret must not be empty")
	case c.DatabaseDSN == "":
		return errors.New("database dsn must not be empty")
	case c.HashConcurrency <= 0:
		return fmt.Errorf("hash concurrency must be positive, got %d", c.HashConcurrency)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	case c.LogFormat != "" && c.LogFormat != "console" && c.LogFormat != "json":
		return fmt.Errorf("log format must be console or json, got %q", c.LogFormat)
	}
	for _, origin := range c.CORSAllowedOrigins {
		if err := validateOrigin(origin); err != nil {
			return err
		}
	}
	return nil
}

// validateOrigin accepts scheme://host[:port] with an http or https scheme, the form the
// CORS middleware requires.
func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("cors origin %q must look like http(s)://host[:port]", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("cors origin %q must not carry a path, query or fragment", origin)
	}
	return nil
}

// UsesDefaultSecret reports whether tokens would be signed with the well-known fallback key.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyPort, DefaultPort)
	v.SetDefault(keyJWTSecret, DefaultJWTSecret)
	v.SetDefault(keyDatabaseDSN, DefaultDatabaseDSN)
	v.SetDefault(keyLogLevel, DefaultLogLevel)
	v.SetDefault(keyLogFormat, DefaultLogFormat)
	v.SetDefault(keyGinMode, DefaultGinMode)
	v.SetDefault(keyCORSOrigins, DefaultCORSOrigins)
	v.SetDefault(keyHashConcurrency, runtime.NumCPU())
	v.SetDefault(keyShutdownTimeout, DefaultShutdownTimeout)
}

func bindEnv(v *viper.Viper) error {
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind env for %q: %w", key, err)
		}
	}
	return nil
}

// newFlagSet declares flags whose names match the viper keys so BindPFlags maps them directly.
func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("authgate", pflag.ContinueOnError)
	fs.String(keyPort, DefaultPort, "HTTP listening port")
	fs.String(keyDatabaseDSN, DefaultDatabaseDSN, "sqlite path or postgres:// connection string")
	fs.String(keyLogLevel, DefaultLogLevel, "log level: debug, info, warn, error")
	fs.String(keyLogFormat, DefaultLogFormat, "log encoding: console or json")
	fs.String(keyGinMode, DefaultGinMode, "gin mode: debug, release, test")
	return fs
}

// readEnvFiles parses the given .env files. Missing files are skipped; for a variable
// defined in several files the first one wins.
func readEnvFiles(files []string) (map[string]string, error) {
	vals := map[string]string{}
	for _, f := range files {
		m, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read env file %q: %w", f, err)
		}
		for k, val := range m {
			if _, ok := vals[k]; !ok {
				vals[k] = val
			}
		}
	}
	return vals, nil
}

// mergeDotEnv lays .env values over the config file. Real environment variables are
// bound afterwards and take precedence over both.
func mergeDotEnv(v *viper.Viper, dotenv map[string]string) error {
	tree := map[string]any{}
	for key, envs := range envBindings {
		for _, name := range envs {
			if val, ok := dotenv[name]; ok {
				setNested(tree, strings.Split(key, "."), val)
				break
			}
		}
	}
	if len(tree) == 0 {
		return nil
	}
	if err := v.MergeConfigMap(tree); err != nil {
		return fmt.Errorf("merge env file values: %w", err)
	}
	return nil
}

func setNested(tree map[string]any, path []string, val string) {
	for _, p := range path[:len(path)-1] {
		child, ok := tree[p].(map[string]any)
		if !ok {
			child = map[string]any{}
			tree[p] = child
		}
		tree = child
	}
	tree[path[len(path)-1]] = val
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
