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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	runPrefix     = "# run "
	datasetSep    = " - Dataset: "
	opSuffix      = " Operation:"
	timesPrefix   = "Times:"
	memoryPrefix  = "Memory Usage:"
	resultsIndent = "  "
)

// WriteResults writes the report in the plain results format:
//
//	# run <uuid> <RFC3339>
//	ArrayAVL - Dataset: dataset_small.txt
//	Insert Operation:
//	  Times: [1.2e-06, 3.1e-07]
//	  Memory Usage: [0, 48]
//
// Times are seconds. Memory is bytes allocated during the call.
func (r *Report) WriteResults(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s%s %s\n", runPrefix, r.RunID, r.Started.UTC().Format(time.RFC3339))
	for _, res := range r.Results {
		fmt.Fprintf(bw, "%s%s%s\n", res.Variant, datasetSep, res.Dataset)
		for _, op := range res.Ops {
			fmt.Fprintf(bw, "%s%s\n", op.Op.Title(), opSuffix)
			fmt.Fprintf(bw, "%s%s %s\n", resultsIndent, timesPrefix, formatTimes(op.Times))
			fmt.Fprintf(bw, "%s%s %s\n", resultsIndent, memoryPrefix, formatInts(op.Memory))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// WriteResultsFile writes the report to path, creating parent directories.
func (r *Report) WriteResultsFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results: %w", err)
	}
	if err := r.WriteResults(file); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

func formatTimes(times []time.Duration) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, d := range times {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(d.Seconds(), 'g', -1, 64))
	}
	sb.WriteByte(']')
	return sb.String()
}

func formatInts(values []int64) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

// ParseResults reads a results file back. The run header is optional so
// files from older runs still load; the returned report then has a zero
// RunID and no metrics.
func ParseResults(rd io.Reader) (*Report, error) {
	report := &Report{}

	scanner := bufio.NewScanner(rd)
	// Sample lists for large datasets are long single lines
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var current *Result
	var op *OpResult
	lineNo := 0

	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: line %d: %s", ErrMalformedResults, lineNo, fmt.Sprintf(format, args...))
	}

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)

		switch {
		case line == "":
			continue

		case strings.HasPrefix(line, runPrefix):
			fields := strings.Fields(strings.TrimPrefix(line, runPrefix))
			if len(fields) != 2 {
				return nil, fail("bad run header %q", line)
			}
			id, err := uuid.Parse(fields[0])
			if err != nil {
				return nil, fail("bad run id: %v", err)
			}
			started, err := time.Parse(time.RFC3339, fields[1])
			if err != nil {
				return nil, fail("bad run time: %v", err)
			}
			report.RunID, report.Started = id, started

		case strings.HasPrefix(line, "#"):
			continue

		case strings.Contains(line, datasetSep):
			variant, ds, _ := strings.Cut(line, datasetSep)
			report.Results = append(report.Results, Result{Variant: variant, Dataset: ds})
			current = &report.Results[len(report.Results)-1]
			op = nil

		case strings.HasSuffix(line, opSuffix):
			if current == nil {
				return nil, fail("operation before any dataset header")
			}
			parsed, err := ParseOperation(strings.TrimSuffix(line, opSuffix))
			if err != nil {
				return nil, fail("%v", err)
			}
			current.Ops = append(current.Ops, OpResult{Op: parsed})
			op = &current.Ops[len(current.Ops)-1]

		case strings.HasPrefix(line, timesPrefix):
			if op == nil {
				return nil, fail("times outside an operation")
			}
			values, err := parseList(strings.TrimPrefix(line, timesPrefix))
			if err != nil {
				return nil, fail("%v", err)
			}
			op.Times = make([]time.Duration, len(values))
			for i, v := range values {
				secs, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, fail("bad time %q", v)
				}
				op.Times[i] = time.Duration(math.Round(secs * float64(time.Second)))
			}

		case strings.HasPrefix(line, memoryPrefix):
			if op == nil {
				return nil, fail("memory outside an operation")
			}
			values, err := parseList(strings.TrimPrefix(line, memoryPrefix))
			if err != nil {
				return nil, fail("%v", err)
			}
			op.Memory = make([]int64, len(values))
			for i, v := range values {
				// Older files recorded fractional MiB
				n, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					f, ferr := strconv.ParseFloat(v, 64)
					if ferr != nil {
						return nil, fail("bad memory value %q", v)
					}
					n = int64(math.Round(f * (1 << 20)))
				}
				op.Memory[i] = n
			}

		default:
			return nil, fail("unexpected %q", raw)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return report, nil
}

// ParseResultsFile opens and parses path.
func ParseResultsFile(path string) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results: %w", err)
	}
	defer file.Close()
	return ParseResults(file)
}

func parseList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("expected [..] list, got %q", s)
	}
	s = strings.TrimSpace(s[1 : len(s)-1])
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}
