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
	"fmt"
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

const usageMarkdown = `

 **avlbench %s**

Benchmark two AVL tree representations side by side: one linked by pointers,
one stored in a slot-indexed arena.

Built with Go %s

# 1. Workflow
* ` + "`avlbench generate`" + ` writes random key datasets (one integer per line)
* ` + "`avlbench bench`" + ` times insert, search and delete for every variant and dataset
* ` + "`avlbench graph`" + ` charts the mean latencies from a results file
* ` + "`avlbench show 5 3 8`" + ` prints the tree built from the given keys
* ` + "`avlbench explore`" + ` opens an interactive tree session

# 2. Variants
* **reference**: nodes allocated individually and linked by pointers
* **arena**: nodes live in parallel slices and refer to each other by slot index

# 3. Configuration
* Settings are read from ` + "`~/.avlbench.yaml`" + ` or ` + "`--config PATH`" + `
* ` + "`avlbench config init`" + ` writes the defaults, ` + "`avlbench config show`" + ` prints them

# Please be aware
* Copying DOT output to the clipboard on Linux needs 'xclip' or 'xsel'
* Memory sampling slows the benchmark noticeably; disable it with --no-memory

# License
Licensed under the Apache License, Version 2.0
Copyright © 2025 Naren Yellavula

`

func getHelpMessage() string {
	message := fmt.Sprintf(usageMarkdown, version, runtime.Version())
	return string(markdown.Render(message, 80, 3))
}
