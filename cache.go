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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/cybrota/avlbench/bench"
	"github.com/cybrota/avlbench/dataset"
)

const (
	// Parsed datasets are kept for 30 minutes
	datasetCacheExpiration = 30 * time.Minute
	// Clean up expired entries every 5 minutes
	datasetCacheCleanup = 5 * time.Minute
)

// DatasetCache holds parsed key files. Entries are keyed by absolute path
// and modification time, so an edited file is parsed again.
type DatasetCache struct {
	c      *cache.Cache
	logger *slog.Logger
}

func NewDatasetCache(logger *slog.Logger) *DatasetCache {
	return &DatasetCache{
		c:      cache.New(datasetCacheExpiration, datasetCacheCleanup),
		logger: logger,
	}
}

func datasetCacheKey(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("open dataset: %w", err)
	}
	return fmt.Sprintf("%s@%d", abs, info.ModTime().UnixNano()), nil
}

// Load returns the keys in path, parsing the file only on a cache miss.
func (dc *DatasetCache) Load(path string) ([]int64, error) {
	key, err := datasetCacheKey(path)
	if err != nil {
		return nil, err
	}
	if val, ok := dc.c.Get(key); ok {
		dc.logger.Debug("dataset cache hit", "path", path)
		return val.([]int64), nil
	}

	keys, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	// Set rather than Add so a concurrent fill simply overwrites
	dc.c.Set(key, keys, datasetCacheExpiration)
	dc.logger.Debug("dataset cached", "path", path, "keys", len(keys))
	return keys, nil
}

// LoadAll loads every path as a named bench dataset.
func (dc *DatasetCache) LoadAll(paths []string) ([]bench.Dataset, error) {
	out := make([]bench.Dataset, 0, len(paths))
	for _, path := range paths {
		keys, err := dc.Load(path)
		if err != nil {
			return nil, err
		}
		out = append(out, bench.Dataset{Name: filepath.Base(path), Keys: keys})
	}
	return out, nil
}

func (dc *DatasetCache) Len() int {
	return dc.c.ItemCount()
}
