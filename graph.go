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
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	tb "github.com/nsf/termbox-go"

	"github.com/cybrota/avlbench/bench"
)

// DisableMouseInput in termbox-go. This should be called after ui.Init()
func DisableMouseInput() {
	tb.SetInputMode(tb.InputEsc)
}

// chartSeries holds one bar per variant and dataset pair.
type chartSeries struct {
	Labels []string
	Values []float64 // mean latency in microseconds
	Colors []ui.Color
}

// shortVariant trims result labels so bars stay narrow.
func shortVariant(label string) string {
	switch label {
	case "ReferenceAVL":
		return "Ref"
	case "ArrayAVL":
		return "Arr"
	}
	if len(label) > 3 {
		return label[:3]
	}
	return label
}

// shortDataset turns "dataset_small.txt" into "small".
func shortDataset(name string) string {
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return strings.TrimPrefix(name, "dataset_")
}

func buildChartSeries(report *bench.Report, op bench.Operation) chartSeries {
	var series chartSeries
	variantIndex := map[string]int{}
	for _, res := range report.Results {
		samples, ok := res.Op(op)
		if !ok {
			continue
		}
		idx, seen := variantIndex[res.Variant]
		if !seen {
			idx = len(variantIndex)
			variantIndex[res.Variant] = idx
		}
		summary := bench.Summarize(res.Variant, res.Dataset, samples)
		series.Labels = append(series.Labels, shortVariant(res.Variant)+"/"+shortDataset(res.Dataset))
		series.Values = append(series.Values, float64(summary.Mean)/float64(time.Microsecond))
		series.Colors = append(series.Colors, SeriesColor(idx))
	}
	return series
}

// reportOperations lists operations in the order they first appear.
func reportOperations(report *bench.Report) []bench.Operation {
	var ops []bench.Operation
	seen := map[bench.Operation]bool{}
	for _, res := range report.Results {
		for _, op := range res.Ops {
			if !seen[op.Op] {
				seen[op.Op] = true
				ops = append(ops, op.Op)
			}
		}
	}
	return ops
}

func summaryLines(report *bench.Report) []string {
	summaries := report.Summaries()
	lines := make([]string, len(summaries))
	for i, s := range summaries {
		lines[i] = s.String()
	}
	return lines
}

func newBarChart(op bench.Operation, series chartSeries) *widgets.BarChart {
	chart := widgets.NewBarChart()
	chart.Title = fmt.Sprintf(" %s: mean µs ", op.Title())
	chart.TitleStyle = StyleTitle()
	chart.BorderStyle = StyleBorder(false)
	chart.Data = series.Values
	chart.Labels = series.Labels
	chart.BarColors = series.Colors
	chart.BarWidth = 9
	chart.BarGap = 2
	chart.LabelStyles = []ui.Style{StyleText()}
	chart.NumStyles = []ui.Style{ui.NewStyle(ui.ColorBlack)}
	chart.NumFormatter = func(v float64) string { return fmt.Sprintf("%.2f", v) }
	return chart
}

func layoutGraph(grid *ui.Grid, header *widgets.Paragraph, charts []*widgets.BarChart, summary *widgets.List) {
	rows := []interface{}{ui.NewRow(0.12, header)}
	if len(charts) > 0 {
		share := 0.6 / float64(len(charts))
		for _, chart := range charts {
			rows = append(rows, ui.NewRow(share, chart))
		}
	}
	rows = append(rows, ui.NewRow(0.28, summary))
	grid.Set(rows...)
}

// runGraph shows one bar chart per operation until the user quits.
func runGraph(report *bench.Report, source string, logger *slog.Logger) error {
	ops := reportOperations(report)
	if len(ops) == 0 {
		return fmt.Errorf("%s holds no results", source)
	}

	InitializeColors()
	if err := ui.Init(); err != nil {
		return fmt.Errorf("failed to initialize termui: %w", err)
	}
	DisableMouseInput()
	defer ui.Close()

	header := widgets.NewParagraph()
	header.Title = " Benchmark "
	header.TitleStyle = StyleTitle()
	header.BorderStyle = StyleBorder(false)
	header.WrapText = true
	header.Text = fmt.Sprintf("%s  run %s  %s\n[<tab>](fg:green) focus  [c](fg:green) copy summary  [q](fg:green) quit",
		source, report.RunID, report.Started.Format(time.RFC3339))

	charts := make([]*widgets.BarChart, len(ops))
	for i, op := range ops {
		charts[i] = newBarChart(op, buildChartSeries(report, op))
	}

	summary := widgets.NewList()
	summary.Title = " Summary "
	summary.TitleStyle = StyleTitle()
	summary.Rows = summaryLines(report)
	summary.TextStyle = StyleTextMuted()
	summary.SelectedRowStyle = ui.NewStyle(ui.ColorBlack, ui.ColorGreen)
	summary.BorderStyle = StyleBorder(false)

	termWidth, termHeight := ui.TerminalDimensions()
	grid := ui.NewGrid()
	grid.SetRect(0, 0, termWidth, termHeight)
	layoutGraph(grid, header, charts, summary)
	ui.Render(grid)

	// Focus cycles through the charts and then the summary list
	focus := len(charts)
	setFocus := func(next int) {
		focus = next
		for i, chart := range charts {
			chart.BorderStyle = StyleBorder(i == focus)
		}
		summary.BorderStyle = StyleBorder(focus == len(charts))
	}
	setFocus(focus)
	ui.Render(grid)

	for e := range ui.PollEvents() {
		switch e.ID {
		case "q", "<C-c>", "<Escape>":
			return nil
		case "<Tab>":
			setFocus((focus + 1) % (len(charts) + 1))
		case "<Up>", "k":
			if focus == len(charts) {
				summary.ScrollUp()
			}
		case "<Down>", "j":
			if focus == len(charts) {
				summary.ScrollDown()
			}
		case "c", "<C-z>":
			if err := clipboard.WriteAll(strings.Join(summary.Rows, "\n")); err != nil {
				logger.Warn("failed to copy summary", "error", err)
				header.Text = fmt.Sprintf("%s\n[copy failed: %v](fg:red)", source, err)
			} else {
				header.Text = fmt.Sprintf("%s\n[summary copied to clipboard](fg:green)", source)
			}
		case "<Resize>":
			if payload, ok := e.Payload.(ui.Resize); ok {
				grid.SetRect(0, 0, payload.Width, payload.Height)
			} else {
				w, h := ui.TerminalDimensions()
				grid.SetRect(0, 0, w, h)
			}
			ui.Clear()
		}
		ui.Render(grid)
	}
	return nil
}
