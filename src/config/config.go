package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultExcludeReason is the complianceReason HYCU reports for VMs that have
// the Exclude policy assigned.
const DefaultExcludeReason = "The Exclude policy is assigned."

// Environment variables consulted by ApplyEnv.
const (
	EnvHost  = "HYCU_HOST"
	EnvToken = "HYCU_API_TOKEN"
)

// Config holds the settings of a single check run. It is passed by value and
// never mutated once a run starts.
type Config struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Token string `yaml:"token"`
	// VerifyTLS is off by default: appliances usually ship self-signed
	// certificates. Turning it off trades MITM protection for zero setup.
	VerifyTLS      bool          `yaml:"verify_tls"`
	Timeout        time.Duration `yaml:"timeout"`
	PageSize       int           `yaml:"page_size"`
	BackupPageSize int           `yaml:"backup_page_size"`
	CriticalDays   int           `yaml:"critical_days"`
	Workers        int           `yaml:"workers"`
	ExcludeReason  string        `yaml:"exclude_reason"`
	ServicePrefix  string        `yaml:"service_prefix"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Port:           8443,
		Timeout:        10 * time.Second,
		PageSize:       200,
		BackupPageSize: 5,
		CriticalDays:   1,
		Workers:        4,
		ExcludeReason:  DefaultExcludeReason,
		ServicePrefix:  "HYCU",
	}
}

// Load reads a YAML config file on top of Default. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv fills Host and Token from the environment when they are unset. A
// value already present, from a file or a flag, is kept.
func (c Config) ApplyEnv(lookup func(string) (string, bool)) Config {
	if c.Host == "" {
		if v, ok := lookup(EnvHost); ok {
			c.Host = v
		}
	}
	if c.Token == "" {
		if v, ok := lookup(EnvToken); ok {
			c.Token = v
		}
	}
	return c
}

// Validate reports the first setting that would make a run meaningless.
func (c Config) Validate() error {
	switch {
	case c.Host == "":
		return fmt.Errorf("host is required (flag --host, env %s or config file)", EnvHost)
	case c.Token == "":
		return fmt.Errorf("API token is required (flag --token, env %s or config file)", EnvToken)
	case c.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	case c.PageSize <= 0:
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	case c.BackupPageSize <= 0:
		return fmt.Errorf("backup page size must be positive, got %d", c.BackupPageSize)
	case c.CriticalDays < 0:
		return fmt.Errorf("critical days must not be negative, got %d", c.CriticalDays)
	case c.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}
