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

package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cybrota/avlbench/avl"
)

// preOrder lists nodes parent first, left before right.
func preOrder[H comparable](view avl.View[H]) []H {
	root := view.Root()
	if view.IsNil(root) {
		return nil
	}
	var out []H
	stack := []H{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, node)
		if right := view.Right(node); !view.IsNil(right) {
			stack = append(stack, right)
		}
		if left := view.Left(node); !view.IsNil(left) {
			stack = append(stack, left)
		}
	}
	return out
}

// DOT emits a Graphviz digraph. Nodes are numbered in pre-order. A node
// with one child gets an invisible placeholder on the other side so the
// layout keeps left and right apart.
func DOT[H comparable](view avl.View[H], title string) string {
	nodes := preOrder(view)
	ids := make(map[H]int, len(nodes))
	for i, node := range nodes {
		ids[node] = i
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", strconv.Quote(title))
	sb.WriteString("  node [shape=circle, fontname=\"Helvetica\"];\n")

	placeholders := 0
	for i, node := range nodes {
		fmt.Fprintf(&sb, "  n%d [label=\"%d\\nh=%d\"];\n", i, view.Key(node), view.NodeHeight(node))

		left, right := view.Left(node), view.Right(node)
		if view.IsNil(left) && view.IsNil(right) {
			continue
		}
		for _, child := range []H{left, right} {
			if view.IsNil(child) {
				fmt.Fprintf(&sb, "  p%d [shape=point, style=invis];\n", placeholders)
				fmt.Fprintf(&sb, "  n%d -> p%d [style=invis];\n", i, placeholders)
				placeholders++
				continue
			}
			fmt.Fprintf(&sb, "  n%d -> n%d;\n", i, ids[child])
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}
