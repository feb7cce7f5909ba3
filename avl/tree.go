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

// Tree is an AVL tree whose nodes live in a Store addressed by handles of
// type H.
type Tree[H comparable] struct {
	store Store[H]
	root  H
	null  H
}

// New returns an empty tree over store. The store must not be shared with
// another tree.
func New[H comparable](store Store[H]) *Tree[H] {
	null := store.Nil()
	return &Tree[H]{store: store, root: null, null: null}
}

// Insert adds key. Duplicates are kept and routed right. The only error is
// ErrCapacityExceeded from the store, in which case the tree is unchanged.
func (tree *Tree[H]) Insert(key int64) error {
	root, err := tree.insertRecursive(tree.root, key)
	if err != nil {
		return err
	}
	tree.root = root
	return nil
}

// insertRecursive allocates at the leaf before touching any link or height,
// so a failed allocation unwinds without writes.
func (tree *Tree[H]) insertRecursive(node H, key int64) (H, error) {
	if node == tree.null {
		return tree.store.Allocate(key)
	}

	s := tree.store
	if key < s.Key(node) {
		child, err := tree.insertRecursive(s.Left(node), key)
		if err != nil {
			return node, err
		}
		s.SetLeft(node, child)
	} else {
		child, err := tree.insertRecursive(s.Right(node), key)
		if err != nil {
			return node, err
		}
		s.SetRight(node, child)
	}

	tree.recomputeHeight(node)
	return tree.rebalance(node), nil
}

// Search reports whether key is present.
func (tree *Tree[H]) Search(key int64) bool {
	_, ok := tree.Find(key)
	return ok
}

// Find returns the handle of a node holding key.
func (tree *Tree[H]) Find(key int64) (H, bool) {
	s := tree.store
	node := tree.root
	for node != tree.null {
		k := s.Key(node)
		switch {
		case key == k:
			return node, true
		case key < k:
			node = s.Left(node)
		default:
			node = s.Right(node)
		}
	}
	return tree.null, false
}

// Delete removes one occurrence of key. Deleting an absent key is a no-op.
func (tree *Tree[H]) Delete(key int64) {
	root, removed := tree.deleteRecursive(tree.root, key)
	if removed {
		tree.root = root
	}
}

func (tree *Tree[H]) deleteRecursive(node H, key int64) (H, bool) {
	if node == tree.null {
		return node, false
	}

	s := tree.store
	nodeKey := s.Key(node)
	switch {
	case key < nodeKey:
		child, removed := tree.deleteRecursive(s.Left(node), key)
		if !removed {
			return node, false
		}
		s.SetLeft(node, child)
	case key > nodeKey:
		child, removed := tree.deleteRecursive(s.Right(node), key)
		if !removed {
			return node, false
		}
		s.SetRight(node, child)
	default:
		left, right := s.Left(node), s.Right(node)
		if left == tree.null || right == tree.null {
			replacement := left
			if replacement == tree.null {
				replacement = right
			}
			s.Release(node)
			return replacement, true
		}

		// Two children: take the successor's key and remove the successor.
		successorKey := s.Key(tree.findMin(right))
		s.SetKey(node, successorKey)
		child, _ := tree.deleteRecursive(right, successorKey)
		s.SetRight(node, child)
	}

	tree.recomputeHeight(node)
	return tree.rebalance(node), true
}

func (tree *Tree[H]) findMin(node H) H {
	s := tree.store
	for s.Left(node) != tree.null {
		node = s.Left(node)
	}
	return node
}

// Len is the number of keys held, counting duplicates.
func (tree *Tree[H]) Len() int {
	return tree.store.Len()
}

// Height is the height of the root; 0 for an empty tree.
func (tree *Tree[H]) Height() int {
	return int(tree.heightOf(tree.root))
}

// Store exposes the backing store.
func (tree *Tree[H]) Store() Store[H] {
	return tree.store
}
