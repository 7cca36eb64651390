package nuclide

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile = "config.json"
	// EnvPrefix prefixes the environment variables read by LoadConfig.
	EnvPrefix = "NUCLIDETABLE"
)

// InputConfig describes where and how the source table is read.
type InputConfig struct {
	Path      string            `json:"path" yaml:"path"`
	Sheet     string            `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	Encoding  string            `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Delimiter string            `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
	Columns   map[string]string `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// OutputConfig describes the generated Maxima file.
type OutputConfig struct {
	Path     string `json:"path" yaml:"path"`
	ListName string `json:"listName" yaml:"listName"`
	Indent   string `json:"indent" yaml:"indent"`
}

// LoggingConfig selects the log level and encoding (console or json).
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Config aggregates runtime settings persisted to config.json or a YAML file.
type Config struct {
	Input   InputConfig      `json:"input" yaml:"input"`
	Output  OutputConfig     `json:"output" yaml:"output"`
	Logging LoggingConfig    `json:"logging" yaml:"logging"`
	Columns ColumnCandidates `json:"columns" yaml:"columns"`
}

// envOverrides lists the settings that may come from the environment, e.g.
// NUCLIDETABLE_LIST_NAME. Unset variables leave the file values alone.
type envOverrides struct {
	Input    string
	Output   string
	Sheet    string
	Encoding string
	ListName string `split_words:"true"`
	LogLevel string `split_words:"true"`
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Output.ListName == "" {
		c.Output.ListName = DefaultListName
	}
	if c.Output.Indent == "" {
		c.Output.Indent = DefaultIndent
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	out := c
	out.Columns = c.Columns.clone()
	if c.Input.Columns != nil {
		out.Input.Columns = make(map[string]string, len(c.Input.Columns))
		for k, v := range c.Input.Columns {
			out.Input.Columns[k] = v
		}
	}
	return out
}

// InputOptions converts the input section into reader options.
func (c Config) InputOptions() (InputOptions, error) {
	delim, err := ParseDelimiter(c.Input.Delimiter)
	if err != nil {
		return InputOptions{}, err
	}
	return InputOptions{
		Delimiter: delim,
		Sheet:     c.Input.Sheet,
		Encoding:  c.Input.Encoding,
		Columns:   c.Clone().Input.Columns,
	}, nil
}

// RenderOptions converts the output section into renderer options.
func (c Config) RenderOptions() RenderOptions {
	return RenderOptions{ListName: c.Output.ListName, Indent: c.Output.Indent}
}

// LoadConfig loads configuration from the given path or the default config.json,
// then applies NUCLIDETABLE_* environment overrides. A missing file yields defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := decodeConfig(path, data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := encodeConfig(path, cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if env.Input != "" {
		c.Input.Path = env.Input
	}
	if env.Output != "" {
		c.Output.Path = env.Output
	}
	if env.Sheet != "" {
		c.Input.Sheet = env.Sheet
	}
	if env.Encoding != "" {
		c.Input.Encoding = env.Encoding
	}
	if env.ListName != "" {
		c.Output.ListName = env.ListName
	}
	if env.LogLevel != "" {
		c.Logging.Level = env.LogLevel
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func decodeConfig(path string, data []byte, cfg *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, cfg)
	}
	return json.Unmarshal(data, cfg)
}

func encodeConfig(path string, cfg Config) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(cfg)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// writeFileAtomic writes through a temporary sibling and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
