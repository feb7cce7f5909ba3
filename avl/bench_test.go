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
	"math/rand/v2"
	"testing"
)

func benchKeys(n int) []int64 {
	rng := rand.New(rand.NewPCG(1, 2))
	keys := make([]int64, n)
	for i := range keys {
		keys[i] = rng.Int64()
	}
	return keys
}

func benchmarkInsert(b *testing.B, newIndex func() Index) {
	keys := benchKeys(10000)
	b.ReportAllocs()
	for b.Loop() {
		tree := newIndex()
		for _, k := range keys {
			if err := tree.Insert(k); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkInsertReference(b *testing.B) {
	benchmarkInsert(b, func() Index { return NewReferenceTree() })
}

func BenchmarkInsertArena(b *testing.B) {
	benchmarkInsert(b, func() Index { return NewArenaTree() })
}

func BenchmarkInsertArenaPresized(b *testing.B) {
	benchmarkInsert(b, func() Index { return NewArenaTree(WithCapacity(10000)) })
}

func BenchmarkSearchArena(b *testing.B) {
	keys := benchKeys(10000)
	tree := NewArenaTree()
	for _, k := range keys {
		_ = tree.Insert(k)
	}
	i := 0
	for b.Loop() {
		tree.Search(keys[i%len(keys)])
		i++
	}
}
