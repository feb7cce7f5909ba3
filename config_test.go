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
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/avlbench/avl"
	"github.com/cybrota/avlbench/bench"
	"github.com/cybrota/avlbench/dataset"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestLoadConfigMissingFileGivesDefaults(t *testing.T) {
	config := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), discardLogger())
	assert.Equal(t, defaultConfig(), config)
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avlbench.yaml")
	data := []byte(`
datasets:
  sizes: {tiny: 3}
arena:
  growth: false
bench:
  variants: [arena]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	config := LoadConfig(path, discardLogger())
	assert.Equal(t, map[string]int{"tiny": 3}, config.Datasets.Sizes)
	assert.Equal(t, 10, config.Datasets.Spread)
	assert.False(t, config.Arena.Growth)
	assert.Equal(t, avl.DefaultArenaCapacity, config.Arena.InitialCapacity)
	assert.Equal(t, []string{"arena"}, config.Bench.Variants)
	assert.Equal(t, []string{"insert", "search", "delete"}, config.Bench.Operations)
}

func TestLoadConfigMalformedWarnsAndFallsBack(t *testing.T) {
	cases := map[string]string{
		"syntax":    "datasets: [unclosed",
		"spread":    "datasets:\n  spread: 1\n",
		"capacity":  "arena:\n  initial_capacity: 0\n",
		"max":       "arena:\n  initial_capacity: 8\n  max_capacity: 4\n",
		"operation": "bench:\n  operations: [insert, rotate]\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			config := LoadConfig(path, logger)

			assert.Equal(t, defaultConfig(), config)
			assert.Contains(t, logs.String(), "using defaults")
		})
	}
}

func TestDatasetSpecsAndPaths(t *testing.T) {
	config := defaultConfig()
	config.Datasets.Dir = "data"
	assert.Equal(t, []dataset.Spec{{Name: "small", Size: 5}, {Name: "medium", Size: 15}, {Name: "large", Size: 30}}, config.DatasetSpecs())
	assert.Equal(t, []string{
		filepath.Join("data", "dataset_small.txt"),
		filepath.Join("data", "dataset_medium.txt"),
		filepath.Join("data", "dataset_large.txt"),
	}, config.DatasetPaths())
}

func TestArenaOptions(t *testing.T) {
	config := defaultConfig()
	config.Arena = ArenaConfig{InitialCapacity: 2, Growth: true, MaxCapacity: 4}

	tree := avl.NewArenaTree(config.ArenaOptions(discardLogger())...)
	for _, k := range []int64{1, 2, 3, 4} {
		require.NoError(t, tree.Insert(k))
	}
	assert.ErrorIs(t, tree.Insert(5), avl.ErrCapacityExceeded)
	assert.Equal(t, 4, tree.Arena().Cap())
}

func TestConfigOperations(t *testing.T) {
	ops, err := defaultConfig().operations()
	require.NoError(t, err)
	assert.Equal(t, bench.DefaultOperations, ops)
}

func TestCreateDefaultConfigFileRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", configFileName)
	require.NoError(t, createDefaultConfigFile(path))

	assert.Equal(t, defaultConfig(), LoadConfig(path, discardLogger()))

	var out bytes.Buffer
	require.NoError(t, displaySettings(&out, path, defaultConfig()))
	assert.Contains(t, out.String(), path)
	assert.Contains(t, out.String(), "initial_capacity: 16")
	assert.NotContains(t, out.String(), "not found")
}
