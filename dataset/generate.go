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

package dataset

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/willf/bloom"
)

const (
	falsePositiveRate = 0.001
	attemptsPerKey    = 64
)

// Generate draws size distinct keys from [1, size*spread) in random order.
//
// Drawn keys are tracked in a bloom filter. A false positive only rejects a
// key that was never drawn, so the output is always distinct; it just costs
// another draw.
func Generate(size, spread int, rng *rand.Rand) ([]int64, error) {
	if size <= 0 {
		return []int64{}, nil
	}
	upper := int64(size) * int64(spread)
	if spread <= 0 || upper-1 < int64(size) {
		return nil, fmt.Errorf("%w: need %d keys from [1, %d)", ErrRangeTooSmall, size, upper)
	}

	seen := bloom.NewWithEstimates(uint(size), falsePositiveRate)
	keys := make([]int64, 0, size)

	for attempts := 0; len(keys) < size; attempts++ {
		if attempts >= size*attemptsPerKey {
			return nil, fmt.Errorf("%w: %d of %d after %d draws", ErrExhausted, len(keys), size, attempts)
		}
		key := 1 + rng.Int64N(upper-1)
		s := strconv.FormatInt(key, 10)
		if seen.TestString(s) {
			continue
		}
		seen.AddString(s)
		keys = append(keys, key)
	}
	return keys, nil
}

// Spec names a dataset and its key count.
type Spec struct {
	Name string
	Size int
}

// GenerateAll writes one file per spec into dir and returns the paths in
// ascending size order.
func GenerateAll(dir string, specs []Spec, spread int, rng *rand.Rand) ([]string, error) {
	ordered := slices.Clone(specs)
	slices.SortStableFunc(ordered, func(a, b Spec) int { return cmp.Compare(a.Size, b.Size) })

	paths := make([]string, 0, len(ordered))
	for _, spec := range ordered {
		keys, err := Generate(spec.Size, spread, rng)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", spec.Name, err)
		}
		path := filepath.Join(dir, FileName(spec.Name))
		if err := WriteFile(path, keys); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
