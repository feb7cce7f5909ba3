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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var variants = map[string]func() Index{
	"reference": func() Index { return NewReferenceTree() },
	"arena":     func() Index { return NewArenaTree(WithCapacity(2)) },
}

type AVLTestCase struct {
	Name          string
	InitialKeys   []int64
	KeysToInsert  []int64
	KeysToDelete  []int64
	ExpectedOrder []int64 // In-order traversal expectation after operations
}

func TestAVLTreeOperations(t *testing.T) {
	testCases := []AVLTestCase{
		{
			Name:          "Simple Insertion",
			KeysToInsert:  []int64{10, 20, 30},
			ExpectedOrder: []int64{10, 20, 30},
		},
		{
			Name:          "Insertion with Balancing (Left-Heavy)",
			InitialKeys:   []int64{30},
			KeysToInsert:  []int64{20, 10},
			ExpectedOrder: []int64{10, 20, 30},
		},
		{
			Name:          "Deletion with Balancing (Right-Heavy)",
			InitialKeys:   []int64{30, 20, 10},
			KeysToDelete:  []int64{30},
			ExpectedOrder: []int64{10, 20},
		},
		{
			Name:          "Mixed Operations",
			InitialKeys:   []int64{4, 2},
			KeysToInsert:  []int64{5, 1},
			KeysToDelete:  []int64{2},
			ExpectedOrder: []int64{1, 4, 5},
		},
		{
			Name:          "Duplicates Kept",
			InitialKeys:   []int64{7, 7},
			KeysToInsert:  []int64{3, 7},
			KeysToDelete:  []int64{7},
			ExpectedOrder: []int64{3, 7, 7},
		},
		{
			Name:          "Delete Absent Key",
			InitialKeys:   []int64{1, 2, 3},
			KeysToDelete:  []int64{99},
			ExpectedOrder: []int64{1, 2, 3},
		},
		{
			Name:          "Delete Everything",
			InitialKeys:   []int64{8, 3, 10, 1, 6, 14, 4, 7, 13},
			KeysToDelete:  []int64{8, 3, 10, 1, 6, 14, 4, 7, 13},
			ExpectedOrder: []int64{},
		},
	}

	for name, newIndex := range variants {
		for _, tc := range testCases {
			t.Run(name+"/"+tc.Name, func(t *testing.T) {
				tree := newIndex()
				for _, key := range tc.InitialKeys {
					require.NoError(t, tree.Insert(key))
				}
				for _, key := range tc.KeysToInsert {
					require.NoError(t, tree.Insert(key))
				}
				for _, key := range tc.KeysToDelete {
					tree.Delete(key)
				}
				require.NoError(t, tree.Validate())
				assert.Equal(t, tc.ExpectedOrder, tree.Keys())
				assert.Equal(t, len(tc.ExpectedOrder), tree.Len())
			})
		}
	}
}

// shape is a preorder dump of (key, height) pairs.
func shape[H comparable](tree *Tree[H]) [][2]int64 {
	var out [][2]int64
	tree.PreOrder(func(h H) bool {
		out = append(out, [2]int64{tree.Key(h), int64(tree.NodeHeight(h))})
		return true
	})
	return out
}

func rootAndChildren[H comparable](tree *Tree[H]) (root, left, right int64) {
	r := tree.Root()
	return tree.Key(r), tree.Key(tree.Left(r)), tree.Key(tree.Right(r))
}

func TestRotationCases(t *testing.T) {
	cases := []struct {
		name string
		keys []int64
	}{
		{"RR single left rotation", []int64{10, 20, 30}},
		{"LL single right rotation", []int64{30, 20, 10}},
		{"LR double rotation", []int64{30, 10, 20}},
		{"RL double rotation", []int64{10, 30, 20}},
	}

	for _, tc := range cases {
		t.Run("reference/"+tc.name, func(t *testing.T) {
			tree := NewReferenceTree()
			for _, k := range tc.keys {
				require.NoError(t, tree.Insert(k))
			}
			root, left, right := rootAndChildren(tree)
			assert.Equal(t, [3]int64{20, 10, 30}, [3]int64{root, left, right})
			assert.Equal(t, 2, tree.Height())
		})
		t.Run("arena/"+tc.name, func(t *testing.T) {
			tree := NewArenaTree()
			for _, k := range tc.keys {
				require.NoError(t, tree.Insert(k))
			}
			root, left, right := rootAndChildren(tree.Tree)
			assert.Equal(t, [3]int64{20, 10, 30}, [3]int64{root, left, right})
			assert.Equal(t, 2, tree.Height())
		})
	}
}

func TestDeleteRootTakesRightSubtreeMinimum(t *testing.T) {
	tree := NewArenaTree()
	for _, k := range []int64{10, 20, 30} {
		require.NoError(t, tree.Insert(k))
	}
	tree.Delete(20)

	require.NoError(t, tree.Validate())
	assert.Equal(t, 2, tree.Len())
	root := tree.Root()
	assert.Equal(t, int64(30), tree.Key(root))
	assert.Equal(t, int64(10), tree.Key(tree.Left(root)))
	assert.True(t, tree.IsNil(tree.Right(root)))
	// the successor's slot is the one released
	assert.Equal(t, 1, tree.Arena().Free())
}

func TestDeleteAbsentKeyLeavesShape(t *testing.T) {
	tree := NewReferenceTree()
	for _, k := range []int64{50, 25, 75, 10, 30, 60, 90, 5} {
		require.NoError(t, tree.Insert(k))
	}
	before := shape(tree)

	tree.Delete(26)
	tree.Delete(100)
	tree.Delete(-1)

	assert.Equal(t, before, shape(tree))
	assert.Equal(t, 8, tree.Len())
}

func TestDuplicateMultiplicity(t *testing.T) {
	for name, newIndex := range variants {
		t.Run(name, func(t *testing.T) {
			tree := newIndex()
			for range 3 {
				require.NoError(t, tree.Insert(5))
			}
			require.NoError(t, tree.Insert(4))
			require.NoError(t, tree.Insert(6))
			require.NoError(t, tree.Validate())

			for i := 0; i < 3; i++ {
				assert.True(t, tree.Search(5), "delete %d", i)
				tree.Delete(5)
				require.NoError(t, tree.Validate())
			}
			assert.False(t, tree.Search(5))
			assert.Equal(t, []int64{4, 6}, tree.Keys())
		})
	}
}

func TestEmptyTree(t *testing.T) {
	tree := NewArenaTree()
	assert.False(t, tree.Search(1))
	assert.Equal(t, 0, tree.Height())
	assert.Equal(t, 0, tree.Len())
	assert.Empty(t, tree.Keys())
	assert.True(t, tree.IsNil(tree.Root()))
	tree.Delete(1)
	require.NoError(t, tree.Validate())

	_, ok := tree.Find(1)
	assert.False(t, ok)
}

func TestTraversalStopsEarly(t *testing.T) {
	tree := NewReferenceTree()
	for k := int64(1); k <= 10; k++ {
		require.NoError(t, tree.Insert(k))
	}

	var visited []int64
	tree.InOrder(func(n *Node) bool {
		visited = append(visited, tree.Key(n))
		return len(visited) < 3
	})
	assert.Equal(t, []int64{1, 2, 3}, visited)

	var pre []int64
	tree.PreOrder(func(n *Node) bool {
		pre = append(pre, tree.Key(n))
		return true
	})
	require.Len(t, pre, 10)
	assert.Equal(t, tree.Key(tree.Root()), pre[0])
}

func TestValidateDetectsCorruption(t *testing.T) {
	t.Run("height", func(t *testing.T) {
		tree := NewArenaTree()
		for _, k := range []int64{2, 1, 3} {
			require.NoError(t, tree.Insert(k))
		}
		tree.Arena().SetHeight(tree.Root(), 5)
		assert.ErrorIs(t, tree.Validate(), ErrHeightViolation)
	})
	t.Run("order", func(t *testing.T) {
		tree := NewArenaTree()
		for _, k := range []int64{2, 1, 3} {
			require.NoError(t, tree.Insert(k))
		}
		tree.Arena().SetKey(tree.Left(tree.Root()), 9)
		assert.ErrorIs(t, tree.Validate(), ErrOrderViolation)
	})
	t.Run("shared", func(t *testing.T) {
		tree := NewArenaTree()
		for _, k := range []int64{2, 1, 3} {
			require.NoError(t, tree.Insert(k))
		}
		root := tree.Root()
		tree.Arena().SetRight(root, tree.Left(root))
		assert.ErrorIs(t, tree.Validate(), ErrSharedNode)
	})
	t.Run("balance", func(t *testing.T) {
		store := NewRefStore()
		tree := New[*Node](store)
		a, _ := store.Allocate(1)
		b, _ := store.Allocate(2)
		c, _ := store.Allocate(3)
		store.SetRight(a, b)
		store.SetRight(b, c)
		store.SetHeight(b, 2)
		store.SetHeight(a, 3)
		tree.root = a
		assert.ErrorIs(t, tree.Validate(), ErrBalanceViolation)
	})
	t.Run("size", func(t *testing.T) {
		tree := NewArenaTree()
		require.NoError(t, tree.Insert(1))
		_, err := tree.Arena().Allocate(2)
		require.NoError(t, err)
		assert.ErrorIs(t, tree.Validate(), ErrSizeMismatch)
	})
}
