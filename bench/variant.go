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

package bench

import (
	"fmt"

	"github.com/cybrota/avlbench/avl"
)

// Variant builds fresh trees of one representation.
type Variant interface {
	Name() string  // CLI name, e.g. "arena"
	Label() string // results-file label, e.g. "ArrayAVL"
	New() avl.Index
}

// ReferenceVariant builds pointer-linked trees.
type ReferenceVariant struct{}

func (ReferenceVariant) Name() string   { return "reference" }
func (ReferenceVariant) Label() string  { return "ReferenceAVL" }
func (ReferenceVariant) New() avl.Index { return avl.NewReferenceTree() }

// ArenaVariant builds slot-indexed trees with the given arena options.
type ArenaVariant struct {
	Options []avl.ArenaOption
}

func (ArenaVariant) Name() string     { return "arena" }
func (ArenaVariant) Label() string    { return "ArrayAVL" }
func (v ArenaVariant) New() avl.Index { return avl.NewArenaTree(v.Options...) }

// Registry holds the known variants in registration order.
type Registry struct {
	variants []Variant
}

// NewRegistry registers the reference variant and an arena variant built
// with arenaOpts.
func NewRegistry(arenaOpts ...avl.ArenaOption) *Registry {
	registry := &Registry{}
	registry.Register(ReferenceVariant{})
	registry.Register(ArenaVariant{Options: arenaOpts})
	return registry
}

// Register adds v, replacing any variant with the same name.
func (r *Registry) Register(v Variant) {
	for i, existing := range r.variants {
		if existing.Name() == v.Name() {
			r.variants[i] = v
			return
		}
	}
	r.variants = append(r.variants, v)
}

// Get looks a variant up by name.
func (r *Registry) Get(name string) (Variant, error) {
	for _, v := range r.variants {
		if v.Name() == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownVariant, name, r.Names())
}

// Select resolves names in order; no names selects every variant.
func (r *Registry) Select(names []string) ([]Variant, error) {
	if len(names) == 0 {
		return append([]Variant(nil), r.variants...), nil
	}
	out := make([]Variant, 0, len(names))
	for _, name := range names {
		v, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.variants))
	for i, v := range r.variants {
		names[i] = v.Name()
	}
	return names
}
