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

// Package render draws trees for humans. It only reads structure through
// avl.View, so either tree variant can be rendered.
package render

import (
	"fmt"
	"strings"

	"github.com/cybrota/avlbench/avl"
)

const (
	indentWidth = 4
	emptyTree   = "(empty)"
)

func label[H comparable](view avl.View[H], h H) string {
	return fmt.Sprintf("%d (h=%d)", view.Key(h), view.NodeHeight(h))
}

// Text draws the tree sideways: the right subtree above its parent, the
// left subtree below, one node per line indented by depth.
func Text[H comparable](view avl.View[H]) string {
	root := view.Root()
	if view.IsNil(root) {
		return emptyTree + "\n"
	}

	var sb strings.Builder
	type frame struct {
		node    H
		depth   int
		visited bool
	}
	// Reverse in-order: right, node, left
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.visited {
			sb.WriteString(strings.Repeat(" ", top.depth*indentWidth))
			sb.WriteString(label(view, top.node))
			sb.WriteByte('\n')
			continue
		}
		if left := view.Left(top.node); !view.IsNil(left) {
			stack = append(stack, frame{node: left, depth: top.depth + 1})
		}
		stack = append(stack, frame{node: top.node, depth: top.depth, visited: true})
		if right := view.Right(top.node); !view.IsNil(right) {
			stack = append(stack, frame{node: right, depth: top.depth + 1})
		}
	}
	return sb.String()
}
