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

func (tree *Tree[H]) heightOf(h H) int32 {
	return tree.store.Height(h)
}

func (tree *Tree[H]) balanceOf(h H) int32 {
	if h == tree.null {
		return 0
	}
	return tree.heightOf(tree.store.Left(h)) - tree.heightOf(tree.store.Right(h))
}

// recomputeHeight must run bottom-up after any change below h.
func (tree *Tree[H]) recomputeHeight(h H) {
	s := tree.store
	s.SetHeight(h, max(tree.heightOf(s.Left(h)), tree.heightOf(s.Right(h)))+1)
}

func (tree *Tree[H]) rotateLeft(node H) H {
	s := tree.store
	pivot := s.Right(node)
	if node == tree.null || pivot == tree.null {
		return node
	}

	s.SetRight(node, s.Left(pivot))
	s.SetLeft(pivot, node)

	// node is now below pivot
	tree.recomputeHeight(node)
	tree.recomputeHeight(pivot)
	return pivot
}

func (tree *Tree[H]) rotateRight(node H) H {
	s := tree.store
	pivot := s.Left(node)
	if node == tree.null || pivot == tree.null {
		return node
	}

	s.SetLeft(node, s.Right(pivot))
	s.SetRight(pivot, node)

	tree.recomputeHeight(node)
	tree.recomputeHeight(pivot)
	return pivot
}

// rebalance restores the balance invariant at node, assuming both subtrees
// are already balanced, and returns the root of the resulting subtree.
func (tree *Tree[H]) rebalance(node H) H {
	s := tree.store
	balanceFactor := tree.balanceOf(node)

	// Left-heavy
	if balanceFactor > 1 {
		if tree.balanceOf(s.Left(node)) < 0 {
			// Left-Right
			s.SetLeft(node, tree.rotateLeft(s.Left(node)))
		}
		return tree.rotateRight(node)
	}

	// Right-heavy
	if balanceFactor < -1 {
		if tree.balanceOf(s.Right(node)) > 0 {
			// Right-Left
			s.SetRight(node, tree.rotateRight(s.Right(node)))
		}
		return tree.rotateLeft(node)
	}

	return node
}
