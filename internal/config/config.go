// Package config loads go-pestel settings from defaults, a YAML file and the
// environment, in that order of precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Build-time defaults, overridable with
// -ldflags "-X github.com/goliatone/go-pestel/internal/config.DefaultBaseURL=...".
var (
	DefaultBaseURL = "http://127.0.0.1:5000"
	DefaultAddr    = ":8080"
)

const (
	DefaultTimeoutMS = 300000
	DefaultLogLevel  = "info"
	DefaultTheme     = "pestel"
	DefaultEnvFile   = ".env"
)

// Environment variable names.
const (
	EnvBaseURL     = "PESTEL_BACKEND_URL"
	EnvTimeoutMS   = "PESTEL_BACKEND_TIMEOUT_MS"
	EnvLiteralPath = "PESTEL_BACKEND_LITERAL_PATH"
	EnvAddr        = "PESTEL_SERVER_ADDR"
	EnvLogLevel    = "PESTEL_LOG_LEVEL"
	EnvLogFile     = "PESTEL_LOG_FILE"
	EnvShowErrors  = "PESTEL_UI_SHOW_ERRORS"
	EnvTheme       = "PESTEL_UI_THEME"
	EnvVariant     = "PESTEL_UI_VARIANT"
)

// Config is the full settings tree.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
}

// BackendConfig points at the analysis backend.
type BackendConfig struct {
	BaseURL     string `yaml:"base_url"`
	TimeoutMS   int    `yaml:"timeout_ms"`
	LiteralPath bool   `yaml:"literal_path"`
}

// Timeout returns TimeoutMS as a duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutMS) * time.Millisecond
}

// ServerConfig configures the web UI listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// ShowErrors surfaces submission failures to the user. Failures are
	// always logged.
	ShowErrors bool   `yaml:"show_errors"`
	Theme      string `yaml:"theme"`
	Variant    string `yaml:"variant"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:   DefaultBaseURL,
			TimeoutMS: DefaultTimeoutMS,
		},
		Server: ServerConfig{Addr: DefaultAddr},
		Log:    LogConfig{Level: DefaultLogLevel},
		UI:     UIConfig{Theme: DefaultTheme},
	}
}

// Options controls where Load looks.
type Options struct {
	// Path is a YAML file; it must exist when set.
	Path string
	// EnvFiles are dotenv files; missing ones are skipped. Defaults to .env.
	EnvFiles []string
	// Lookup reads process environment; defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Load builds a Config. Values from the process environment override dotenv
// files, which override the YAML file, which overrides the defaults.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", opts.Path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", opts.Path, err)
		}
	}

	env, err := readEnv(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings a run cannot work without.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: backend.base_url %q is not an absolute URL", c.Backend.BaseURL)
	}
	if c.Backend.TimeoutMS <= 0 {
		return fmt.Errorf("config: backend.timeout_ms must be positive, got %d", c.Backend.TimeoutMS)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	return nil
}

type envSource func(string) (string, bool)

func readEnv(opts Options) (envSource, error) {
	files := opts.EnvFiles
	if files == nil {
		files = []string{DefaultEnvFile}
	}
	fromFiles := map[string]string{}
	for _, file := range files {
		values, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
		for k, v := range values {
			if _, seen := fromFiles[k]; !seen {
				fromFiles[k] = v
			}
		}
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
		v, ok := fromFiles[key]
		return v, ok && v != ""
	}, nil
}

func (c *Config) applyEnv(env envSource) error {
	setString(env, EnvBaseURL, &c.Backend.BaseURL)
	setString(env, EnvAddr, &c.Server.Addr)
	setString(env, EnvLogLevel, &c.Log.Level)
	setString(env, EnvLogFile, &c.Log.File)
	setString(env, EnvTheme, &c.UI.Theme)
	setString(env, EnvVariant, &c.UI.Variant)

	if v, ok := env(EnvTimeoutMS); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTimeoutMS, err)
		}
		c.Backend.TimeoutMS = n
	}
	for key, target := range map[string]*bool{
		EnvLiteralPath: &c.Backend.LiteralPath,
		EnvShowErrors:  &c.UI.ShowErrors,
	} {
		if v, ok := env(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
			*target = b
		}
	}
	return nil
}

func setString(env envSource, key string, target *string) {
	if v, ok := env(key); ok {
		*target = v
	}
}
