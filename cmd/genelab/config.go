// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix guards against unrelated environment variables leaking into
// the config.
const envPrefix = "GENELAB_"

// defaultConfigPath is probed when --config is not given; a missing file
// is not an error.
const defaultConfigPath = "genelab.yaml"

// Config is the full CLI configuration tree. Core packages never see it;
// they take explicit options derived from it.
type Config struct {
	Logging LoggingConfig `koanf:"logging"`
	Process ProcessConfig `koanf:"process"`
	Overlap OverlapConfig `koanf:"overlap"`
}

type LoggingConfig struct {
	Level string `koanf:"level"`
}

type ProcessConfig struct {
	Matrix string `koanf:"matrix"` // input expression matrix
	Format string `koanf:"format"` // tsv | gct
	Lookup string `koanf:"lookup"` // symbol lookup TSV; empty = identity
	OutDir string `koanf:"out"`

	MissingCutoff float64 `koanf:"missing_cutoff"`
	Impute        string  `koanf:"impute"` // row-mean | column-mean
	LogEpsilon    float64 `koanf:"log_epsilon"`
	TernaryCut    float64 `koanf:"ternary_cut"`
	Metric        string  `koanf:"metric"` // cosine | jaccard
	Workers       int     `koanf:"workers"`
}

type OverlapConfig struct {
	LibraryA string `koanf:"library_a"`
	LibraryB string `koanf:"library_b"`
	Out      string `koanf:"out"`

	Universe int `koanf:"universe"` // 0 = derive from the libraries
	TopK     int `koanf:"top_k"`
	Workers  int `koanf:"workers"`
}

func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Process: ProcessConfig{
			Format:        "tsv",
			OutDir:        ".",
			MissingCutoff: 0.95,
			Impute:        "row-mean",
			LogEpsilon:    1e-6,
			TernaryCut:    1.0,
			Metric:        "cosine",
		},
		Overlap: OverlapConfig{
			Out:  ".",
			TopK: 1000,
		},
	}
}

// loadConfig layers defaults ← YAML file ← GENELAB_* environment
// variables. Flags are applied later by the subcommands.
//
// Env names map section-first: GENELAB_PROCESS_MISSING_CUTOFF →
// process.missing_cutoff.
func loadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if path == "" {
		path = defaultConfigPath
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("genelab: config file %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("genelab: config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("genelab: environment: %w", err)
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("genelab: config: %w", err)
	}

	return cfg, nil
}

// envTransform splits the section off the first underscore; the rest of
// the key keeps its underscores: GENELAB_OVERLAP_TOP_K → overlap.top_k.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return "" // unknown shape, skip
	}

	return parts[0] + "." + parts[1]
}
