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
	"slices"
	"time"
)

// Summary condenses the samples of one operation.
type Summary struct {
	Variant string
	Dataset string
	Op      Operation
	Count   int
	Mean    time.Duration
	P50     time.Duration
	P99     time.Duration
	Max     time.Duration
	Memory  int64 // total bytes across all calls
}

// Summarize computes the summary for one operation's samples.
func Summarize(variant, dataset string, op OpResult) Summary {
	s := Summary{Variant: variant, Dataset: dataset, Op: op.Op, Count: len(op.Times)}
	for _, m := range op.Memory {
		s.Memory += m
	}
	if s.Count == 0 {
		return s
	}

	sorted := slices.Clone(op.Times)
	slices.Sort(sorted)

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	s.Mean = total / time.Duration(s.Count)
	s.P50 = percentile(sorted, 0.50)
	s.P99 = percentile(sorted, 0.99)
	s.Max = sorted[len(sorted)-1]
	return s
}

// percentile uses the nearest-rank method on sorted samples.
func percentile(sorted []time.Duration, p float64) time.Duration {
	rank := int(p*float64(len(sorted))+0.5) - 1
	rank = max(0, min(rank, len(sorted)-1))
	return sorted[rank]
}

// Summaries returns one summary per variant, dataset and operation in
// report order.
func (r *Report) Summaries() []Summary {
	var out []Summary
	for _, res := range r.Results {
		for _, op := range res.Ops {
			out = append(out, Summarize(res.Variant, res.Dataset, op))
		}
	}
	return out
}

func (s Summary) String() string {
	name := fmt.Sprintf("%s/%s/%s", s.Variant, s.Dataset, s.Op)
	return fmt.Sprintf("%-48s %8d ops  mean %10v  p50 %10v  p99 %10v  max %10v  mem %d B",
		name, s.Count, s.Mean, s.P50, s.P99, s.Max, s.Memory)
}
