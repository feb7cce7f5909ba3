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
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/cybrota/avlbench/avl"
	"github.com/cybrota/avlbench/bench"
)

var ErrUnknownCommand = errors.New("unknown command")

// outcome is what one explorer command produced.
type outcome struct {
	Status   string
	Err      error
	Quit     bool
	ShowHelp bool
	Changed  bool // tree structure may differ
}

// explorer runs typed commands against one tree. It has no terminal
// dependency so it can be driven directly.
type explorer struct {
	variant bench.Variant
	tree    avl.Index
	format  renderFormat
	copy    func(string) error
}

func newExplorer(variant bench.Variant, copyFn func(string) error) *explorer {
	return &explorer{
		variant: variant,
		tree:    variant.New(),
		format:  formatText,
		copy:    copyFn,
	}
}

// splitCommand breaks a command line into words, honouring quotes.
func splitCommand(line string) ([]string, error) {
	parser := shellwords.NewParser()
	parser.ParseEnv = false
	parser.ParseBacktick = false
	return parser.Parse(line)
}

func (e *explorer) execute(line string) outcome {
	args, err := splitCommand(line)
	if err != nil {
		return outcome{Err: fmt.Errorf("parse %q: %w", line, err)}
	}
	if len(args) == 0 {
		return outcome{}
	}

	name, rest := strings.ToLower(args[0]), args[1:]
	switch name {
	case "insert", "i", "add":
		return e.insert(rest)
	case "delete", "d", "del", "rm":
		return e.delete(rest)
	case "search", "s", "find":
		return e.search(rest)
	case "clear":
		e.tree = e.variant.New()
		return outcome{Status: "tree cleared", Changed: true}
	case "validate", "check":
		if err := e.tree.Validate(); err != nil {
			return outcome{Err: err}
		}
		return outcome{Status: fmt.Sprintf("ok: %d keys, height %d", e.tree.Len(), e.tree.Height())}
	case "view":
		if len(rest) != 1 {
			return outcome{Err: errors.New("usage: view text|outline")}
		}
		format, err := parseRenderFormat(rest[0])
		if err != nil || format == formatDOT {
			return outcome{Err: fmt.Errorf("%w: %q (want text or outline)", ErrUnknownFormat, rest[0])}
		}
		e.format = format
		return outcome{Status: "view: " + string(format), Changed: true}
	case "copy":
		dot, err := renderIndex(e.tree, formatDOT, e.variant.Label(), false)
		if err != nil {
			return outcome{Err: err}
		}
		if err := e.copy(dot); err != nil {
			return outcome{Err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return outcome{Status: "DOT copied to clipboard"}
	case "help", "?":
		return outcome{ShowHelp: true}
	case "quit", "exit", "q":
		return outcome{Quit: true}
	}
	return outcome{Err: fmt.Errorf("%w: %q (try help)", ErrUnknownCommand, args[0])}
}

func (e *explorer) insert(args []string) outcome {
	keys, err := parseKeys(args)
	if err != nil {
		return outcome{Err: err}
	}
	if len(keys) == 0 {
		return outcome{Err: errors.New("usage: insert KEY...")}
	}
	for i, key := range keys {
		if err := e.tree.Insert(key); err != nil {
			return outcome{Err: fmt.Errorf("insert %d: %w", key, err), Changed: i > 0}
		}
	}
	return outcome{Status: fmt.Sprintf("inserted %d key(s)", len(keys)), Changed: true}
}

func (e *explorer) delete(args []string) outcome {
	keys, err := parseKeys(args)
	if err != nil {
		return outcome{Err: err}
	}
	if len(keys) == 0 {
		return outcome{Err: errors.New("usage: delete KEY...")}
	}
	before := e.tree.Len()
	for _, key := range keys {
		e.tree.Delete(key)
	}
	removed := before - e.tree.Len()
	return outcome{Status: fmt.Sprintf("deleted %d of %d key(s)", removed, len(keys)), Changed: removed > 0}
}

func (e *explorer) search(args []string) outcome {
	keys, err := parseKeys(args)
	if err != nil {
		return outcome{Err: err}
	}
	if len(keys) == 0 {
		return outcome{Err: errors.New("usage: search KEY...")}
	}
	parts := make([]string, len(keys))
	for i, key := range keys {
		if e.tree.Search(key) {
			parts[i] = fmt.Sprintf("%d found", key)
		} else {
			parts[i] = fmt.Sprintf("%d absent", key)
		}
	}
	return outcome{Status: strings.Join(parts, ", ")}
}

// view renders the tree pane.
func (e *explorer) view(styled bool) string {
	out, err := renderIndex(e.tree, e.format, e.variant.Label(), styled)
	if err != nil {
		return err.Error()
	}
	return out
}

// stats is the one-line tree summary shown above the tree pane.
func (e *explorer) stats() string {
	s := fmt.Sprintf("%s  keys=%d  height=%d", e.variant.Label(), e.tree.Len(), e.tree.Height())
	if arena, ok := e.tree.(*avl.ArenaTree); ok {
		store := arena.Arena()
		s += fmt.Sprintf("  cap=%d  free=%d  grows=%d", store.Cap(), store.Free(), store.Grows())
	}
	return s
}
