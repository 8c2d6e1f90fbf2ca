package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the CLI, the REPL and the language
// server.
type Config struct {
	REPL   REPLConfig   `toml:"repl" yaml:"repl"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Limits LimitsConfig `toml:"limits" yaml:"limits"`
}

type REPLConfig struct {
	Prompt       string `toml:"prompt" yaml:"prompt"`
	Continuation string `toml:"continuation" yaml:"continuation"`
	Banner       bool   `toml:"banner" yaml:"banner"`
}

// OutputConfig controls how trees, tokens and diagnostics are printed.
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"` // text, json or yaml
	Color  string `toml:"color" yaml:"color"`   // auto, always or never
}

type LogConfig struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	Path      string `toml:"path" yaml:"path"`
}

type LimitsConfig struct {
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

const (
	DefaultPrompt       = ">> "
	DefaultContinuation = ".. "
	DefaultTimeout      = 10 * time.Second
)

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{REPL: REPLConfig{Banner: true}}
	cfg.applyDefaults()
	return cfg
}

// Load reads a configuration file. Files ending in .yaml or .yml are parsed
// as YAML, everything else as TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{REPL: REPLConfig{Banner: true}}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by FINOLA_CONFIG, or the first of the
// default locations that exists. Without any file it returns Default().
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv("FINOLA_CONFIG"); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// DefaultPaths lists the locations LoadFromEnv searches, in order.
func DefaultPaths() []string {
	paths := []string{"./finola.toml", "./finola.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "finola", "config.toml"))
	}
	return paths
}

func (c *Config) applyDefaults() {
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = DefaultPrompt
	}
	if c.REPL.Continuation == "" {
		c.REPL.Continuation = DefaultContinuation
	}

	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}

	if c.Limits.Timeout.Duration == 0 {
		c.Limits.Timeout.Duration = DefaultTimeout
	}
}

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format must be text, json or yaml, got %q", c.Output.Format)
	}

	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color)
	}

	if c.Limits.Timeout.Duration < 0 {
		return fmt.Errorf("limits.timeout must not be negative, got %s", c.Limits.Timeout)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative, got %d", c.Log.Verbosity)
	}
	return nil
}

// NoColor reports whether colored output should be switched off. For
// "auto" the decision is left to the terminal detection of the caller.
func (c *Config) NoColor() (disable bool, decided bool) {
	switch c.Output.Color {
	case "never":
		return true, true
	case "always":
		return false, true
	default:
		return false, false
	}
}

// LogPath returns the log file for commonlog.Configure, nil for stderr.
func (c *Config) LogPath() *string {
	if c.Log.Path == "" {
		return nil
	}
	path := os.ExpandEnv(c.Log.Path)
	return &path
}
