// Package config holds the settings shared by the diagnostic logger, the dump
// gates and the frame capture.
//
// Settings are read once per process: defaults first, then an optional YAML
// file, then the environment. Environment variables always win.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvVerbosity   = "MCDIAG_DEBUG"
	EnvColor       = "MCDIAG_DEBUG_COLORS"
	EnvLogPrefix   = "MCDIAG_LOG_PREFIX"
	EnvDumpHeaders = "MCDIAG_DUMP_HEADERS"
	EnvDumpPackets = "MCDIAG_DUMP_PACKETS"
	EnvCaptureFile = "MCDIAG_CAPTURE_FILE"
	EnvCaptureMax  = "MCDIAG_CAPTURE_MAX_FRAME"
	EnvConfigFile  = "MCDIAG_CONFIG_FILE"
)

const (
	// DefaultPrefix tags the lines of the default logger.
	DefaultPrefix = "mcdiag"

	// DefaultMaxFrame is the default number of bytes kept per captured frame.
	DefaultMaxFrame = 4096
)

// Config is the complete diagnostic configuration.
type Config struct {
	Logging Logging `yaml:"logging"`
	Dump    Dump    `yaml:"dump"`
	Capture Capture `yaml:"capture"`
}

// Logging configures the leveled diagnostic logger.
type Logging struct {
	// Prefix tags every line of the default logger.
	Prefix string `yaml:"prefix" env:"MCDIAG_LOG_PREFIX"`

	// Verbosity is a verbosity count; empty means "not configured".
	// It is kept as text so that an unparseable value can be told apart
	// from an absent one.
	Verbosity string `yaml:"verbosity" env:"MCDIAG_DEBUG"`

	// Color enables ANSI colors when non-empty.
	Color string `yaml:"color" env:"MCDIAG_DEBUG_COLORS"`
}

// Dump configures the header and packet dump gates.
// Any non-empty value enables the corresponding dump.
type Dump struct {
	Headers string `yaml:"headers" env:"MCDIAG_DUMP_HEADERS"`
	Packets string `yaml:"packets" env:"MCDIAG_DUMP_PACKETS"`
}

// HeadersEnabled reports whether header dumps are switched on.
func (d Dump) HeadersEnabled() bool { return d.Headers != "" }

// PacketsEnabled reports whether full packet dumps are switched on.
func (d Dump) PacketsEnabled() bool { return d.Packets != "" }

// Capture configures recording of raw frames to a CBOR capture file.
type Capture struct {
	// File is the capture path; empty disables capture.
	File string `yaml:"file" env:"MCDIAG_CAPTURE_FILE"`

	// MaxFrameBytes limits how many bytes of each frame are kept.
	MaxFrameBytes int `yaml:"max_frame_bytes" env:"MCDIAG_CAPTURE_MAX_FRAME"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Logging: Logging{Prefix: DefaultPrefix},
		Capture: Capture{MaxFrameBytes: DefaultMaxFrame},
	}
}

// Load overrides configuration in the following order (from less to most priority)
// 1 - Default configuration
// 2 - Contents of the provided YAML reader (nillable)
// 3 - Environment variables; a nil environment reads the process environment
//
// A variable that cannot be parsed does not discard the others: the returned
// Config carries every setting that did apply, alongside the error.
func Load(file io.Reader, environment map[string]string) (*Config, error) {
	cfg := DefaultConfig()
	if file != nil {
		buf, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("reading YAML configuration: %w", err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML configuration: %w", err)
		}
	}

	var err error
	if environment == nil {
		err = env.Parse(cfg)
	} else {
		err = env.ParseWithOptions(cfg, env.Options{Environment: environment})
	}

	if cfg.Logging.Prefix == "" {
		cfg.Logging.Prefix = DefaultPrefix
	}
	if cfg.Capture.MaxFrameBytes <= 0 {
		cfg.Capture.MaxFrameBytes = DefaultMaxFrame
	}
	if err != nil {
		return cfg, fmt.Errorf("reading env vars: %w", err)
	}
	return cfg, nil
}

// FromEnvironment loads the process configuration, reading the YAML file named
// by MCDIAG_CONFIG_FILE when it is set.
//
// The returned Config is never nil. When the file or a variable cannot be
// read, the error is returned alongside a configuration built from the
// defaults and whatever could still be applied.
func FromEnvironment() (*Config, error) {
	path := os.Getenv(EnvConfigFile)
	if path == "" {
		return loadOrDefault(nil)
	}

	f, err := os.Open(path)
	if err != nil {
		cfg, _ := loadOrDefault(nil)
		return cfg, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()
	return loadOrDefault(f)
}

func loadOrDefault(file io.Reader) (*Config, error) {
	cfg, err := Load(file, nil)
	if cfg != nil {
		return cfg, err
	}
	// The file was unreadable; the environment still applies.
	cfg, envErr := Load(nil, nil)
	return cfg, errors.Join(err, envErr)
}
