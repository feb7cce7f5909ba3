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

// Index is the handle-free contract shared by both tree variants.
type Index interface {
	Insert(key int64) error
	Search(key int64) bool
	Delete(key int64)
	Len() int
	Height() int
	Keys() []int64
	Validate() error
}

var (
	_ Index = (*ArenaTree)(nil)
	_ Index = (*ReferenceTree)(nil)
)

// ReferenceTree is the pointer-linked variant.
type ReferenceTree = Tree[*Node]

// NewReferenceTree returns an empty pointer-linked tree.
func NewReferenceTree() *ReferenceTree {
	return New[*Node](NewRefStore())
}

// ArenaTree is the slot-indexed variant. It keeps a typed reference to its
// arena so callers can inspect capacity and growth.
type ArenaTree struct {
	*Tree[Handle]
	arena *ArenaStore
}

// NewArenaTree returns an empty tree backed by a new ArenaStore.
func NewArenaTree(opts ...ArenaOption) *ArenaTree {
	arena := NewArenaStore(opts...)
	return &ArenaTree{Tree: New[Handle](arena), arena: arena}
}

// Arena returns the backing store.
func (t *ArenaTree) Arena() *ArenaStore {
	return t.arena
}
