// Package config resolves settings from flags, the environment, .env and
// ~/.config/ideas/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	ideaerrors "github.com/abatilo/ideas/internal/errors"
)

// Backend names where ideas are persisted.
type Backend string

const (
	BackendAPI    Backend = "api"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// Setting keys. Each is also read from IDEAS_<KEY>.
const (
	KeyAPIURL     = "api_url"
	KeyUsername   = "username"
	KeyPassword   = "password"
	KeyToken      = "token"
	KeyBackend    = "backend"
	KeyDataDir    = "data_dir"
	KeyServeAddr  = "serve_addr"
	KeyVerbose    = "verbose"
	defaultAPIURL = "http://localhost:8000"
	defaultServe  = "localhost:8000"
	envPrefix     = "IDEAS"
)

// Config is the resolved configuration.
type Config struct {
	APIURL    string
	Username  string
	Password  string
	Token     string
	Backend   Backend
	DataDir   string
	ServeAddr string
	Verbose   bool
}

// Options controls where configuration is read from.
type Options struct {
	// ConfigFile overrides the default config file search.
	ConfigFile string
	// EnvFile is loaded into the environment if it exists. Defaults to ".env".
	EnvFile string
	// Overrides take precedence over every other source.
	Overrides map[string]any
}

// ParseBackend parses a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendAPI, BackendFile, BackendMemory:
		return b, nil
	default:
		return "", ideaerrors.UnknownBackendError{Value: s}
	}
}

// Dir returns the default config directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "ideas")
	}
	return filepath.Join(home, ".config", "ideas")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ideas"
	}
	return filepath.Join(home, ".ideas")
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetDefault(KeyAPIURL, defaultAPIURL)
	v.SetDefault(KeyBackend, string(BackendAPI))
	v.SetDefault(KeyDataDir, defaultDataDir())
	v.SetDefault(KeyServeAddr, defaultServe)
	v.SetDefault(KeyVerbose, false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	for k, val := range opts.Overrides {
		v.Set(k, val)
	}

	backend, err := ParseBackend(v.GetString(KeyBackend))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:    strings.TrimRight(v.GetString(KeyAPIURL), "/"),
		Username:  v.GetString(KeyUsername),
		Password:  v.GetString(KeyPassword),
		Token:     v.GetString(KeyToken),
		Backend:   backend,
		DataDir:   expandHome(v.GetString(KeyDataDir)),
		ServeAddr: v.GetString(KeyServeAddr),
		Verbose:   v.GetBool(KeyVerbose),
	}

	if cfg.Backend == BackendAPI && cfg.APIURL == "" {
		return nil, ideaerrors.NotConfiguredError{Settings: []string{KeyAPIURL}}
	}
	return cfg, nil
}

// IdeasDir is where the file backend keeps one markdown file per idea.
func (c *Config) IdeasDir() string {
	return filepath.Join(c.DataDir, "ideas")
}

// HasPassword reports whether a username and password are configured.
func (c *Config) HasPassword() bool {
	return c.Username != "" && c.Password != ""
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
