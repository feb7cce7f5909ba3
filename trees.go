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

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cybrota/avlbench/avl"
	"github.com/cybrota/avlbench/render"
)

var ErrUnknownFormat = errors.New("unknown render format")

type renderFormat string

const (
	formatText    renderFormat = "text"
	formatOutline renderFormat = "outline"
	formatDOT     renderFormat = "dot"
)

func parseRenderFormat(s string) (renderFormat, error) {
	switch f := renderFormat(s); f {
	case formatText, formatOutline, formatDOT:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (want text, outline or dot)", ErrUnknownFormat, s)
}

// renderIndex draws idx when it is one of the two concrete tree types.
func renderIndex(idx avl.Index, format renderFormat, title string, styled bool) (string, error) {
	switch t := idx.(type) {
	case *avl.ArenaTree:
		return renderView[avl.Handle](t.Tree, format, title, styled)
	case *avl.ReferenceTree:
		return renderView[*avl.Node](t, format, title, styled)
	}
	return "", fmt.Errorf("cannot render %T", idx)
}

func renderView[H comparable](view avl.View[H], format renderFormat, title string, styled bool) (string, error) {
	switch format {
	case formatText:
		return render.Text(view), nil
	case formatOutline:
		return render.Outline(view, styled) + "\n", nil
	case formatDOT:
		return render.DOT(view, title), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// parseKeys converts decimal arguments to keys.
func parseKeys(args []string) ([]int64, error) {
	keys := make([]int64, 0, len(args))
	for _, arg := range args {
		key, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid key %q: %w", arg, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// insertAll inserts keys in order, stopping at the first failure.
func insertAll(idx avl.Index, keys []int64) error {
	for _, key := range keys {
		if err := idx.Insert(key); err != nil {
			return fmt.Errorf("insert %d: %w", key, err)
		}
	}
	return nil
}
