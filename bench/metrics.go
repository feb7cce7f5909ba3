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
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// metrics live on a per-run registry so repeated runs in one process do not
// collide on registration.
type metrics struct {
	registry *prometheus.Registry

	// operationDuration tracks per-call latency
	operationDuration *prometheus.HistogramVec

	// operationsTotal counts calls by variant and operation
	operationsTotal *prometheus.CounterVec

	// heapDelta tracks heap bytes allocated across a single call
	heapDelta *prometheus.HistogramVec

	// treeHeight records the height after the insert phase
	treeHeight *prometheus.GaugeVec
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &metrics{
		registry: registry,
		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "avlbench_operation_duration_seconds",
			Help:    "Tree operation latency in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-8, 4, 12), // 10ns to ~40ms
		}, []string{"variant", "dataset", "operation"}),
		operationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "avlbench_operations_total",
			Help: "Total tree operations by variant and operation",
		}, []string{"variant", "operation"}),
		heapDelta: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "avlbench_operation_heap_delta_bytes",
			Help:    "Heap bytes allocated across one operation",
			Buckets: []float64{0, 64, 256, 1024, 4096, 65536, 1 << 20},
		}, []string{"variant", "operation"}),
		treeHeight: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "avlbench_tree_height",
			Help: "Tree height after inserting a dataset",
		}, []string{"variant", "dataset"}),
	}
}

func (m *metrics) observe(variant, dataset string, op Operation, elapsed time.Duration) {
	m.operationDuration.WithLabelValues(variant, dataset, string(op)).Observe(elapsed.Seconds())
	m.operationsTotal.WithLabelValues(variant, string(op)).Inc()
}

func (m *metrics) observeHeap(variant string, op Operation, delta int64) {
	m.heapDelta.WithLabelValues(variant, string(op)).Observe(float64(max(delta, 0)))
}

// write emits every family in the Prometheus text exposition format.
func (m *metrics) write(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
