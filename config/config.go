// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package config loads OPRF profiles from a YAML file, overridden by environment variables.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/bytemare/xoprf"
	"github.com/bytemare/xoprf/ec"
	"github.com/bytemare/xoprf/lattice"
	"github.com/bytemare/xoprf/log"
)

// EnvPrefix prefixes the environment variables overriding the configuration. "__" is the hierarchy delimiter, e.g.
// XOPRF_LATTICE__DIMENSION=8.
const EnvPrefix = "XOPRF_"

const (
	mappingHashToCurve  = "hash-to-curve"
	mappingUniformBytes = "uniform-bytes"
)

// Config contains the profiles of both backends, and the logging configuration.
type Config struct {
	EC      *ECConfig       `koanf:"ec"`
	Lattice *lattice.Params `koanf:"lattice"`
	Log     *LogConfig      `koanf:"log"`
}

// ECConfig selects the EC-OPRF ciphersuite and input mapping.
type ECConfig struct {
	// Ciphersuite is the RFC9497 identifier, e.g. "ristretto255-SHA512".
	Ciphersuite string `koanf:"ciphersuite"`

	// Mapping is either "hash-to-curve" or "uniform-bytes".
	Mapping string `koanf:"mapping"`
}

// LogConfig is the logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	p := lattice.DefaultParams()

	return &Config{
		EC: &ECConfig{
			Ciphersuite: ec.Ristretto255Sha512.Name(),
			Mapping:     mappingHashToCurve,
		},
		Lattice: &p,
		Log: &LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate performs config validation.
func (cfg *Config) Validate() error {
	if cfg.EC != nil {
		if _, err := cfg.EC.Suite(); err != nil {
			return fmt.Errorf("ec: %w", err)
		}
	}

	if cfg.Lattice != nil {
		if err := cfg.Lattice.Validate(); err != nil {
			return fmt.Errorf("lattice: %w", err)
		}
	}

	if cfg.Log != nil {
		if err := cfg.Log.Validate(); err != nil {
			return fmt.Errorf("log: %w", err)
		}
	}

	return nil
}

// Suite returns the configured EC-OPRF suite.
func (cfg *ECConfig) Suite() (*ec.Suite, error) {
	cs, err := ec.FromName(cfg.Ciphersuite)
	if err != nil {
		return nil, err
	}

	var m ec.Mapping

	switch cfg.Mapping {
	case mappingHashToCurve, "":
		m = ec.HashToCurve
	case mappingUniformBytes:
		m = ec.UniformBytes
	default:
		return nil, fmt.Errorf("%w: unknown mapping %q", xoprf.ErrParameter, cfg.Mapping)
	}

	return ec.New(cs, m)
}

// Validate validates the logging configuration.
func (cfg *LogConfig) Validate() error {
	if _, err := log.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("%w: %w", xoprf.ErrParameter, err)
	}

	if _, err := log.ParseFormat(cfg.Format); err != nil {
		return fmt.Errorf("%w: %w", xoprf.ErrParameter, err)
	}

	return nil
}

// Logger returns a logger writing to w, as configured.
func (cfg *LogConfig) Logger(module string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, err)
	}

	format, err := log.ParseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xoprf.ErrParameter, err)
	}

	return log.NewLogger(module, w, format, lvl)
}

// Scheme returns the configured Lattice-OPRF scheme.
func (cfg *Config) Scheme(logger *log.Logger) (*lattice.Scheme, error) {
	if cfg.Lattice == nil {
		return nil, fmt.Errorf("%w: lattice: not configured", xoprf.ErrParameter)
	}

	return lattice.NewScheme(*cfg.Lattice, logger)
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// load merges the environment into k, and unmarshals the result over the defaults.
func load(k *koanf.Koanf) (*Config, error) {
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	config := Default()
	if err := k.Unmarshal("", config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// InitConfig loads the configuration from the YAML file f, merges environment variables on top, and validates the
// result. Values absent from both keep their defaults.
func InitConfig(f string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(f), yaml.Parser()); err != nil {
		return nil, err
	}

	return load(k)
}
