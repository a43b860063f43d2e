package callpoint

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/callpoint/internal/logger"
	"github.com/viant/callpoint/service/action/decrypt"
	"github.com/viant/callpoint/service/action/greeting"
	"github.com/viant/callpoint/service/meta"
	"github.com/viant/callpoint/service/nsocli"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the service configuration.
// DefaultConfig values apply to every field the document leaves out.
type Config struct {
	Logging    LoggingConfig `json:"logging" yaml:"logging"`
	Tracing    TracingConfig `json:"tracing" yaml:"tracing"`
	CallPoints []string      `json:"callPoints" yaml:"callPoints"`
	Crypto     CryptoConfig  `json:"crypto" yaml:"crypto"`
	CLI        CLIConfig     `json:"cli" yaml:"cli"`
}

type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Service    string `json:"service" yaml:"service"`
	Version    string `json:"version" yaml:"version"`
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

type CryptoConfig struct {
	// Key is the key material the AES key is derived from
	Key string `json:"key" yaml:"key"`
}

type CLIConfig struct {
	Container     string        `json:"container" yaml:"container"`
	TimeLimit     time.Duration `json:"timeLimit" yaml:"timeLimit"`
	RetryInterval time.Duration `json:"retryInterval" yaml:"retryInterval"`
}

// DefaultConfig registers the java test call point only.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "INFO", Format: string(logger.FormatJSON)},
		Tracing: TracingConfig{Service: "callpoint", Version: "0.1.0"},
		CallPoints: []string{
			greeting.JavaCallPoint,
		},
		CLI: CLIConfig{
			Container:     nsocli.DefaultContainer,
			TimeLimit:     nsocli.DefaultTimeLimit,
			RetryInterval: nsocli.DefaultRetryInterval,
		},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	switch logger.Format(strings.ToUpper(c.Logging.Format)) {
	case "", logger.FormatJSON, logger.FormatConsole:
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is not supported", c.Logging.Format))
	}
	for _, callPoint := range c.CallPoints {
		if _, ok := builtins[callPoint]; !ok {
			errs = append(errs, fmt.Errorf("callPoints: unknown call point %q", callPoint))
		}
		if callPoint == decrypt.CallPoint && c.Crypto.Key == "" {
			errs = append(errs, fmt.Errorf("crypto.key is required by %v", decrypt.CallPoint))
		}
	}
	if c.CLI.TimeLimit < 0 {
		errs = append(errs, fmt.Errorf("cli.timeLimit must be >= 0"))
	}
	if c.CLI.RetryInterval < 0 {
		errs = append(errs, fmt.Errorf("cli.retryInterval must be >= 0"))
	}
	return errors.Join(errs...)
}

// DecodeConfig expands ${env.KEY} expressions and decodes YAML over the defaults
func DecodeConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(meta.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads config from any afs supported URL
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	return DecodeConfig(data)
}
