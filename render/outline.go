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
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/cybrota/avlbench/avl"
)

// absentChild marks the missing side of a node with one child.
const absentChild = "·"

var (
	outlineRootStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	outlineEnumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginRight(1)
)

// Outline draws the tree top-down as a lipgloss tree, left child listed
// before right. When styled is false no ANSI styling is applied.
func Outline[H comparable](view avl.View[H], styled bool) string {
	root := view.Root()
	if view.IsNil(root) {
		return emptyTree
	}

	t := outlineNode(view, root)
	t.Enumerator(tree.RoundedEnumerator)
	if styled {
		t.RootStyle(outlineRootStyle).EnumeratorStyle(outlineEnumStyle)
	}
	return t.String()
}

func outlineNode[H comparable](view avl.View[H], node H) *tree.Tree {
	t := tree.Root(label(view, node))
	left, right := view.Left(node), view.Right(node)
	if view.IsNil(left) && view.IsNil(right) {
		return t
	}
	for _, child := range []H{left, right} {
		switch {
		case view.IsNil(child):
			t.Child(absentChild)
		case view.IsNil(view.Left(child)) && view.IsNil(view.Right(child)):
			t.Child(label(view, child))
		default:
			t.Child(outlineNode(view, child))
		}
	}
	return t
}
