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

// View is read-only access to tree structure, enough to walk and render it.
type View[H comparable] interface {
	Root() H
	IsNil(h H) bool
	Key(h H) int64
	NodeHeight(h H) int
	Left(h H) H
	Right(h H) H
}

var (
	_ View[Handle] = (*Tree[Handle])(nil)
	_ View[*Node]  = (*Tree[*Node])(nil)
)

func (tree *Tree[H]) Root() H            { return tree.root }
func (tree *Tree[H]) IsNil(h H) bool     { return h == tree.null }
func (tree *Tree[H]) Key(h H) int64      { return tree.store.Key(h) }
func (tree *Tree[H]) NodeHeight(h H) int { return int(tree.store.Height(h)) }
func (tree *Tree[H]) Left(h H) H         { return tree.store.Left(h) }
func (tree *Tree[H]) Right(h H) H        { return tree.store.Right(h) }

// InOrder calls fn for each node in ascending key order until fn returns
// false.
func (tree *Tree[H]) InOrder(fn func(h H) bool) {
	s := tree.store
	stack := make([]H, 0, tree.Height())
	node := tree.root
	for node != tree.null || len(stack) > 0 {
		for node != tree.null {
			stack = append(stack, node)
			node = s.Left(node)
		}
		node = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(node) {
			return
		}
		node = s.Right(node)
	}
}

// PreOrder calls fn for each node, parent before children, until fn returns
// false.
func (tree *Tree[H]) PreOrder(fn func(h H) bool) {
	if tree.root == tree.null {
		return
	}
	s := tree.store
	stack := []H{tree.root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(node) {
			return
		}
		if right := s.Right(node); right != tree.null {
			stack = append(stack, right)
		}
		if left := s.Left(node); left != tree.null {
			stack = append(stack, left)
		}
	}
}

// Keys returns every key in ascending order.
func (tree *Tree[H]) Keys() []int64 {
	keys := make([]int64, 0, tree.Len())
	tree.InOrder(func(h H) bool {
		keys = append(keys, tree.store.Key(h))
		return true
	})
	return keys
}
