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

// Package bench times tree operations over key datasets and records the
// results in a plain text report.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/cybrota/avlbench/avl"
)

var (
	ErrUnknownVariant   = errors.New("bench: unknown variant")
	ErrUnknownOperation = errors.New("bench: unknown operation")
	ErrNoDatasets       = errors.New("bench: no datasets")
	ErrMalformedResults = errors.New("bench: malformed results")
)

// Operation names one tree operation applied to every key of a dataset.
type Operation string

const (
	OpInsert Operation = "insert"
	OpSearch Operation = "search"
	OpDelete Operation = "delete"
)

// DefaultOperations is the order the original tool runs them in.
var DefaultOperations = []Operation{OpInsert, OpSearch, OpDelete}

// Title is the capitalised form used in results files.
func (o Operation) Title() string {
	s := string(o)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseOperation accepts either the lower-case or title form.
func ParseOperation(s string) (Operation, error) {
	switch Operation(strings.ToLower(strings.TrimSpace(s))) {
	case OpInsert:
		return OpInsert, nil
	case OpSearch:
		return OpSearch, nil
	case OpDelete:
		return OpDelete, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
}

// Dataset is a named key sequence.
type Dataset struct {
	Name string
	Keys []int64
}

type Options struct {
	Datasets   []Dataset
	Variants   []Variant
	Operations []Operation // nil runs DefaultOperations

	// SampleMemory records the heap delta across each call.
	SampleMemory bool

	// Verify runs Validate after every mutating call.
	Verify bool

	// Progress receives a progress bar when non-nil.
	Progress io.Writer

	Logger *slog.Logger
}

// OpResult holds one sample per key, in dataset order.
type OpResult struct {
	Op     Operation
	Times  []time.Duration
	Memory []int64 // bytes; empty unless memory was sampled
}

// Result covers one variant on one dataset.
type Result struct {
	Variant string
	Dataset string
	Ops     []OpResult
}

// Op returns the samples for op, if present.
func (r Result) Op(op Operation) (OpResult, bool) {
	for _, o := range r.Ops {
		if o.Op == op {
			return o, true
		}
	}
	return OpResult{}, false
}

type Report struct {
	RunID   uuid.UUID
	Started time.Time
	Results []Result

	metrics *metrics
}

// Run executes every operation for each dataset and variant pair. Each pair
// gets one fresh tree and the operations run on it in order.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if len(opts.Datasets) == 0 {
		return nil, ErrNoDatasets
	}
	ops := opts.Operations
	if len(ops) == 0 {
		ops = DefaultOperations
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	report := &Report{
		RunID:   uuid.New(),
		Started: time.Now(),
		metrics: newMetrics(),
	}
	logger = logger.With("run", report.RunID.String())

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		total := int64(0)
		for _, d := range opts.Datasets {
			total += int64(len(d.Keys) * len(ops) * len(opts.Variants))
		}
		bar = progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("Benchmarking..."),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	for _, v := range opts.Variants {
		for _, d := range opts.Datasets {
			if bar != nil {
				bar.Describe(fmt.Sprintf("%s %s", v.Label(), d.Name))
			}
			logger.Info("benchmarking", "variant", v.Name(), "dataset", d.Name, "keys", len(d.Keys))

			result, err := report.runPair(ctx, v, d, ops, opts, bar)
			if err != nil {
				return nil, err
			}
			report.Results = append(report.Results, result)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}
	logger.Info("benchmark finished", "results", len(report.Results), "elapsed", time.Since(report.Started))
	return report, nil
}

func (r *Report) runPair(ctx context.Context, v Variant, d Dataset, ops []Operation, opts Options, bar *progressbar.ProgressBar) (Result, error) {
	tree := v.New()
	result := Result{Variant: v.Label(), Dataset: d.Name}

	for _, op := range ops {
		samples := OpResult{Op: op, Times: make([]time.Duration, 0, len(d.Keys))}
		if opts.SampleMemory {
			samples.Memory = make([]int64, 0, len(d.Keys))
		}

		for _, key := range d.Keys {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}

			var before, after runtime.MemStats
			if opts.SampleMemory {
				runtime.ReadMemStats(&before)
			}
			start := time.Now()
			err := apply(tree, op, key)
			elapsed := time.Since(start)
			if opts.SampleMemory {
				runtime.ReadMemStats(&after)
				delta := int64(after.TotalAlloc - before.TotalAlloc)
				samples.Memory = append(samples.Memory, delta)
				r.metrics.observeHeap(v.Name(), op, delta)
			}
			if err != nil {
				return Result{}, fmt.Errorf("%s %s %d on %s: %w", v.Name(), op, key, d.Name, err)
			}

			samples.Times = append(samples.Times, elapsed)
			r.metrics.observe(v.Name(), d.Name, op, elapsed)

			if opts.Verify && op != OpSearch {
				if err := tree.Validate(); err != nil {
					return Result{}, fmt.Errorf("%s after %s %d on %s: %w", v.Name(), op, key, d.Name, err)
				}
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}

		if op == OpInsert {
			r.metrics.treeHeight.WithLabelValues(v.Name(), d.Name).Set(float64(tree.Height()))
		}
		result.Ops = append(result.Ops, samples)
	}
	return result, nil
}

func apply(tree avl.Index, op Operation, key int64) error {
	switch op {
	case OpInsert:
		return tree.Insert(key)
	case OpSearch:
		tree.Search(key)
		return nil
	case OpDelete:
		tree.Delete(key)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownOperation, op)
}

// WriteMetrics dumps the run's Prometheus metrics in text exposition format.
func (r *Report) WriteMetrics(w io.Writer) error {
	if r.metrics == nil {
		return nil
	}
	return r.metrics.write(w)
}
