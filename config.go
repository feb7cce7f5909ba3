// Copyright 2025 Naren Yellavula
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

package main

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/cybrota/avlbench/avl"
	"github.com/cybrota/avlbench/bench"
	"github.com/cybrota/avlbench/dataset"
)

const configFileName = ".avlbench.yaml"

type DatasetsConfig struct {
	Dir    string         `yaml:"dir"`
	Sizes  map[string]int `yaml:"sizes"`
	Spread int            `yaml:"spread"`
	Seed   uint64         `yaml:"seed"` // 0 picks a fresh seed per run
}

type ArenaConfig struct {
	InitialCapacity int  `yaml:"initial_capacity"`
	Growth          bool `yaml:"growth"`
	MaxCapacity     int  `yaml:"max_capacity"` // 0 means no limit
}

type BenchConfig struct {
	Operations   []string `yaml:"operations"`
	Variants     []string `yaml:"variants"`
	SampleMemory bool     `yaml:"sample_memory"`
	Verify       bool     `yaml:"verify"`
	Results      string   `yaml:"results"`
	Metrics      string   `yaml:"metrics,omitempty"`
}

type Config struct {
	Datasets DatasetsConfig `yaml:"datasets"`
	Arena    ArenaConfig    `yaml:"arena"`
	Bench    BenchConfig    `yaml:"bench"`
}

func defaultConfig() *Config {
	return &Config{
		Datasets: DatasetsConfig{
			Dir:    "datasets",
			Sizes:  map[string]int{"small": 5, "medium": 15, "large": 30},
			Spread: 10,
		},
		Arena: ArenaConfig{
			InitialCapacity: avl.DefaultArenaCapacity,
			Growth:          true,
		},
		Bench: BenchConfig{
			Operations:   []string{"insert", "search", "delete"},
			Variants:     []string{"reference", "arena"},
			SampleMemory: true,
			Results:      filepath.Join("result", "benchmark_results.txt"),
		},
	}
}

// getConfigPath returns override when set, else the file in the home
// directory.
func getConfigPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

// LoadConfig reads the config at path. A missing file yields defaults; an
// unreadable or malformed one also yields defaults, with a warning.
func LoadConfig(path string, logger *slog.Logger) *Config {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return defaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("failed to read config, using defaults", "path", path, "error", err)
		return defaultConfig()
	}

	config, err := parseConfig(data)
	if err != nil {
		logger.Warn("failed to parse config, using defaults", "path", path, "error", err)
		return defaultConfig()
	}
	return config
}

// parseConfig overlays data onto the defaults. Sizes is replaced as a whole
// rather than merged.
func parseConfig(data []byte) (*Config, error) {
	config := defaultConfig()
	config.Datasets.Sizes = nil
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	defaults := defaultConfig()
	if len(config.Datasets.Sizes) == 0 {
		config.Datasets.Sizes = defaults.Datasets.Sizes
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.Datasets.Spread < 2 {
		return fmt.Errorf("datasets.spread must be at least 2, got %d", c.Datasets.Spread)
	}
	for name, size := range c.Datasets.Sizes {
		if size < 0 {
			return fmt.Errorf("datasets.sizes.%s must not be negative", name)
		}
	}
	if c.Arena.InitialCapacity < 1 {
		return fmt.Errorf("arena.initial_capacity must be positive, got %d", c.Arena.InitialCapacity)
	}
	if c.Arena.MaxCapacity != 0 && c.Arena.MaxCapacity < c.Arena.InitialCapacity {
		return fmt.Errorf("arena.max_capacity %d is below initial_capacity %d", c.Arena.MaxCapacity, c.Arena.InitialCapacity)
	}
	if _, err := c.operations(); err != nil {
		return err
	}
	return nil
}

// ArenaOptions turns the arena section into store options.
func (c *Config) ArenaOptions(logger *slog.Logger) []avl.ArenaOption {
	opts := []avl.ArenaOption{
		avl.WithCapacity(c.Arena.InitialCapacity),
		avl.WithGrowth(c.Arena.Growth),
		avl.WithLogger(logger),
	}
	if c.Arena.MaxCapacity > 0 {
		opts = append(opts, avl.WithMaxCapacity(c.Arena.MaxCapacity))
	}
	return opts
}

// DatasetSpecs lists the configured sizes, smallest first.
func (c *Config) DatasetSpecs() []dataset.Spec {
	specs := make([]dataset.Spec, 0, len(c.Datasets.Sizes))
	for name, size := range c.Datasets.Sizes {
		specs = append(specs, dataset.Spec{Name: name, Size: size})
	}
	slices.SortFunc(specs, func(a, b dataset.Spec) int {
		return cmp.Or(cmp.Compare(a.Size, b.Size), cmp.Compare(a.Name, b.Name))
	})
	return specs
}

// DatasetPaths are the files generate writes, smallest first.
func (c *Config) DatasetPaths() []string {
	specs := c.DatasetSpecs()
	paths := make([]string, len(specs))
	for i, spec := range specs {
		paths[i] = filepath.Join(c.Datasets.Dir, dataset.FileName(spec.Name))
	}
	return paths
}

func (c *Config) operations() ([]bench.Operation, error) {
	ops := make([]bench.Operation, 0, len(c.Bench.Operations))
	for _, name := range c.Bench.Operations {
		op, err := bench.ParseOperation(name)
		if err != nil {
			return nil, fmt.Errorf("bench.operations: %w", err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func createDefaultConfigFile(path string) error {
	data, err := yaml.Marshal(defaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func displaySettings(w io.Writer, path string, config *Config) error {
	exists := true
	if _, err := os.Stat(path); os.IsNotExist(err) {
		exists = false
	}

	fmt.Fprintf(w, "🔧 avlbench Configuration Settings\n")
	fmt.Fprintf(w, "═══════════════════════════════════\n\n")
	if exists {
		fmt.Fprintf(w, "📍 Config file: %s\n\n", path)
	} else {
		fmt.Fprintf(w, "📍 Config file: %s (not found, showing defaults; run `avlbench config init`)\n\n", path)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
