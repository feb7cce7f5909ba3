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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cybrota/avlbench/bench"
)

func sampleReport() *bench.Report {
	us := time.Microsecond
	return &bench.Report{Results: []bench.Result{
		{Variant: "ReferenceAVL", Dataset: "dataset_small.txt", Ops: []bench.OpResult{
			{Op: bench.OpInsert, Times: []time.Duration{2 * us, 4 * us}},
			{Op: bench.OpSearch, Times: []time.Duration{1 * us}},
		}},
		{Variant: "ArrayAVL", Dataset: "dataset_small.txt", Ops: []bench.OpResult{
			{Op: bench.OpInsert, Times: []time.Duration{1 * us, 1 * us}},
		}},
		{Variant: "ReferenceAVL", Dataset: "dataset_large.txt", Ops: []bench.OpResult{
			{Op: bench.OpInsert, Times: []time.Duration{6 * us}},
		}},
	}}
}

func TestBuildChartSeries(t *testing.T) {
	report := sampleReport()

	insert := buildChartSeries(report, bench.OpInsert)
	assert.Equal(t, []string{"Ref/small", "Arr/small", "Ref/large"}, insert.Labels)
	assert.Equal(t, []float64{3, 1, 6}, insert.Values)
	// Bars of the same variant share a color
	assert.Equal(t, insert.Colors[0], insert.Colors[2])
	assert.NotEqual(t, insert.Colors[0], insert.Colors[1])

	search := buildChartSeries(report, bench.OpSearch)
	assert.Equal(t, []string{"Ref/small"}, search.Labels)

	assert.Empty(t, buildChartSeries(report, bench.OpDelete).Labels)
}

func TestReportOperations(t *testing.T) {
	assert.Equal(t, []bench.Operation{bench.OpInsert, bench.OpSearch}, reportOperations(sampleReport()))
	assert.Empty(t, reportOperations(&bench.Report{}))
}

func TestShortNames(t *testing.T) {
	assert.Equal(t, "Ref", shortVariant("ReferenceAVL"))
	assert.Equal(t, "Arr", shortVariant("ArrayAVL"))
	assert.Equal(t, "Spl", shortVariant("SplayTree"))
	assert.Equal(t, "medium", shortDataset("datasets/dataset_medium.txt"))
	assert.Equal(t, "custom", shortDataset("custom.txt"))
}

func TestDetectTerminalMode(t *testing.T) {
	t.Setenv("TERM_THEME", "")
	t.Setenv("THEME", "")

	t.Setenv("COLORFGBG", "0;15")
	assert.Equal(t, TerminalModeLight, detectTerminalMode())

	t.Setenv("COLORFGBG", "15;0")
	assert.Equal(t, TerminalModeDark, detectTerminalMode())

	t.Setenv("COLORFGBG", "")
	t.Setenv("THEME", "Solarized Light")
	assert.Equal(t, TerminalModeLight, detectTerminalMode())

	t.Setenv("THEME", "")
	assert.Equal(t, TerminalModeDark, detectTerminalMode())
}
