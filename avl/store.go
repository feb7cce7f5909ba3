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

// Store owns node data and hands out handles of type H.
//
// Every accessor must accept the absent handle returned by Nil and answer
// with the neutral value for the field (0 for key and height, Nil for
// children). Setters on the absent handle do nothing.
type Store[H comparable] interface {
	Nil() H
	// Allocate creates a leaf with height 1 and absent children.
	Allocate(key int64) (H, error)
	// Release marks h as no longer reachable from the tree.
	Release(h H)

	Key(h H) int64
	Height(h H) int32
	Left(h H) H
	Right(h H) H

	SetKey(h H, key int64)
	SetHeight(h H, height int32)
	SetLeft(h, child H)
	SetRight(h, child H)

	// Len is the number of allocated, unreleased nodes.
	Len() int
}

// Node is a heap-allocated tree node used by RefStore.
type Node struct {
	key    int64
	height int32
	left   *Node
	right  *Node
}

// RefStore keeps nodes on the heap and links them with pointers. Released
// nodes are simply dropped.
type RefStore struct {
	live int
}

// NewRefStore returns an empty pointer-linked store.
func NewRefStore() *RefStore {
	return &RefStore{}
}

func (s *RefStore) Nil() *Node { return nil }

func (s *RefStore) Allocate(key int64) (*Node, error) {
	s.live++
	return &Node{key: key, height: 1}, nil
}

func (s *RefStore) Release(n *Node) {
	if n == nil {
		return
	}
	n.left, n.right = nil, nil
	s.live--
}

func (s *RefStore) Key(n *Node) int64 {
	if n == nil {
		return 0
	}
	return n.key
}

func (s *RefStore) Height(n *Node) int32 {
	if n == nil {
		return 0
	}
	return n.height
}

func (s *RefStore) Left(n *Node) *Node {
	if n == nil {
		return nil
	}
	return n.left
}

func (s *RefStore) Right(n *Node) *Node {
	if n == nil {
		return nil
	}
	return n.right
}

func (s *RefStore) SetKey(n *Node, key int64) {
	if n != nil {
		n.key = key
	}
}

func (s *RefStore) SetHeight(n *Node, height int32) {
	if n != nil {
		n.height = height
	}
}

func (s *RefStore) SetLeft(n, child *Node) {
	if n != nil {
		n.left = child
	}
}

func (s *RefStore) SetRight(n, child *Node) {
	if n != nil {
		n.right = child
	}
}

func (s *RefStore) Len() int { return s.live }
