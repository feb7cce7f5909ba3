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

package avl

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func avlHeightBound(n int) float64 {
	return 1.44*math.Log2(float64(n)+2) - 0.328
}

// multiset tracks the expected contents alongside the tree.
type multiset map[int64]int

func (m multiset) sorted() []int64 {
	out := []int64{}
	for k, c := range m {
		for range c {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	for name, newIndex := range variants {
		for seed := uint64(1); seed <= 5; seed++ {
			t.Run(fmt.Sprintf("%s/seed=%d", name, seed), func(t *testing.T) {
				rng := rand.New(rand.NewPCG(seed, seed*31))
				tree := newIndex()
				want := multiset{}

				for step := 0; step < 600; step++ {
					key := rng.Int64N(80) // small range forces duplicates
					if rng.IntN(3) == 0 {
						tree.Delete(key)
						if want[key] > 0 {
							want[key]--
						}
					} else {
						require.NoError(t, tree.Insert(key))
						want[key]++
					}

					require.NoError(t, tree.Validate(), "step %d", step)
					for k := int64(0); k < 80; k += 7 {
						require.Equal(t, want[k] > 0, tree.Search(k), "step %d key %d", step, k)
					}
				}

				keys := tree.Keys()
				assert.True(t, slices.IsSorted(keys))
				assert.Equal(t, want.sorted(), keys)
			})
		}
	}
}

func TestDistinctKeysStrictOrdering(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	tree := NewArenaTree(WithCapacity(1))
	for _, k := range rng.Perm(500) {
		require.NoError(t, tree.Insert(int64(k)))
	}

	var prev int64 = -1
	tree.InOrder(func(h Handle) bool {
		key := tree.Key(h)
		require.Greater(t, key, prev)
		if left := tree.Left(h); !tree.IsNil(left) {
			require.Less(t, tree.Key(left), key)
		}
		if right := tree.Right(h); !tree.IsNil(right) {
			require.Greater(t, tree.Key(right), key)
		}
		prev = key
		return true
	})
}

func TestHeightBound(t *testing.T) {
	sizes := []int{100, 500, 1000, 5000, 10000}
	for name, newIndex := range variants {
		for _, n := range sizes {
			t.Run(fmt.Sprintf("%s/n=%d", name, n), func(t *testing.T) {
				rng := rand.New(rand.NewPCG(uint64(n), 99))
				tree := newIndex()
				for range n {
					require.NoError(t, tree.Insert(rng.Int64N(int64(n)*4)))
				}
				assert.LessOrEqual(t, float64(tree.Height()), avlHeightBound(tree.Len()))

				// Sorted input is the worst case for an unbalanced tree.
				sorted := newIndex()
				for k := range n {
					require.NoError(t, sorted.Insert(int64(k)))
				}
				assert.LessOrEqual(t, float64(sorted.Height()), avlHeightBound(n))

				// Shrink by half and re-check.
				for k := 0; k < n; k += 2 {
					sorted.Delete(int64(k))
				}
				require.NoError(t, sorted.Validate())
				assert.LessOrEqual(t, float64(sorted.Height()), avlHeightBound(sorted.Len()))
			})
		}
	}
}

func TestBothVariantsAgree(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	ref := NewReferenceTree()
	arena := NewArenaTree(WithCapacity(4))

	for range 2000 {
		key := rng.Int64N(300)
		if rng.IntN(4) == 0 {
			ref.Delete(key)
			arena.Delete(key)
			continue
		}
		require.NoError(t, ref.Insert(key))
		require.NoError(t, arena.Insert(key))
	}

	assert.Equal(t, ref.Keys(), arena.Keys())
	assert.Equal(t, ref.Height(), arena.Height())
	assert.Equal(t, shape(ref), shape(arena.Tree))
}
