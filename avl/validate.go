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

import "fmt"

type subtreeStats struct {
	height int32
	minKey int64
	maxKey int64
	count  int
}

// Validate scans the whole tree and returns the first broken invariant:
// key ordering, balance, cached heights, single reachability, and agreement
// between reachable and live node counts.
func (tree *Tree[H]) Validate() error {
	seen := make(map[H]struct{}, tree.Len())
	stats, err := tree.validateSubtree(tree.root, seen)
	if err != nil {
		return err
	}
	if stats.count != tree.store.Len() {
		return fmt.Errorf("%w: reachable=%d live=%d", ErrSizeMismatch, stats.count, tree.store.Len())
	}
	return nil
}

func (tree *Tree[H]) validateSubtree(node H, seen map[H]struct{}) (subtreeStats, error) {
	if node == tree.null {
		return subtreeStats{}, nil
	}
	if _, dup := seen[node]; dup {
		return subtreeStats{}, fmt.Errorf("%w: %v", ErrSharedNode, node)
	}
	seen[node] = struct{}{}

	s := tree.store
	key := s.Key(node)
	left, err := tree.validateSubtree(s.Left(node), seen)
	if err != nil {
		return subtreeStats{}, err
	}
	right, err := tree.validateSubtree(s.Right(node), seen)
	if err != nil {
		return subtreeStats{}, err
	}

	if left.count > 0 && left.maxKey > key {
		return subtreeStats{}, fmt.Errorf("%w: left subtree max %d above key %d", ErrOrderViolation, left.maxKey, key)
	}
	if right.count > 0 && right.minKey < key {
		return subtreeStats{}, fmt.Errorf("%w: right subtree min %d below key %d", ErrOrderViolation, right.minKey, key)
	}

	want := max(left.height, right.height) + 1
	if got := s.Height(node); got != want {
		return subtreeStats{}, fmt.Errorf("%w: key %d has height %d, want %d", ErrHeightViolation, key, got, want)
	}
	if bf := left.height - right.height; bf > 1 || bf < -1 {
		return subtreeStats{}, fmt.Errorf("%w: key %d has balance %d", ErrBalanceViolation, key, bf)
	}

	stats := subtreeStats{
		height: want,
		minKey: key,
		maxKey: key,
		count:  left.count + right.count + 1,
	}
	if left.count > 0 {
		stats.minKey = left.minKey
	}
	if right.count > 0 {
		stats.maxKey = right.maxKey
	}
	return stats, nil
}
