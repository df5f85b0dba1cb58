// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"m4o.io/mvt"
	"m4o.io/mvt/model"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings shared by the commands. Values are read from
// an optional YAML file and overridden by flags given on the command line.
type Config struct {
	CPU         uint16 `yaml:"cpu"`
	MultiPoint  bool   `yaml:"multipoint"`
	Unpack      bool   `yaml:"unpack"`
	Compression string `yaml:"compression"`
	LogLevel    string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		CPU:         mvt.DefaultNCpu(),
		MultiPoint:  true,
		Unpack:      true,
		Compression: model.GZIP.String(),
		LogLevel:    "warn",
	}
}

// LoadConfig reads the YAML file at path over the defaults. An empty path
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config: %w", err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks that every setting has a usable value.
func (c Config) Validate() error {
	if c.CPU == 0 {
		return fmt.Errorf("%w: cpu must be positive", ErrInvalidConfig)
	}

	if _, err := model.ParseCompression(c.Compression); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level returns the configured log level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return lvl, nil
}

// Codec returns the configured compression.
func (c Config) Codec() model.Compression {
	comp, _ := model.ParseCompression(c.Compression)

	return comp
}

// Logger creates a text logger on stderr at the configured level.
func (c Config) Logger() *slog.Logger {
	lvl, _ := c.Level()

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// DecoderOptions translates the configuration into decoder options.
func (c Config) DecoderOptions(log *slog.Logger) []mvt.DecoderOption {
	return []mvt.DecoderOption{
		mvt.WithNCpus(c.CPU),
		mvt.WithMultiPoint(c.MultiPoint),
		mvt.WithUnpack(c.Unpack),
		mvt.WithLogger(log),
	}
}

// ResolveConfig loads the file named by the --config flag of cmd and
// applies the flags that were set explicitly.
func ResolveConfig(cmd *cobra.Command) (Config, error) {
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return Config{}, err
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return cfg, err
	}

	changed := func(name string) bool {
		f := flags.Lookup(name)

		return f != nil && f.Changed
	}

	if changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if changed("cpu") {
		cfg.CPU, _ = flags.GetUint16("cpu")
	}

	if changed("multipoint") {
		cfg.MultiPoint, _ = flags.GetBool("multipoint")
	}

	if changed("unpack") {
		cfg.Unpack, _ = flags.GetBool("unpack")
	}

	if changed("compression") {
		cfg.Compression = flags.Lookup("compression").Value.String()
	}

	return cfg, cfg.Validate()
}
