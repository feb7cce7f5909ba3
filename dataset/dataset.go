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

// Package dataset reads, writes and generates key datasets: plain text files
// holding one decimal integer per line.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	ErrMalformedLine = errors.New("dataset: malformed line")
	ErrRangeTooSmall = errors.New("dataset: key range smaller than requested size")
	ErrExhausted     = errors.New("dataset: could not draw enough distinct keys")
)

// Read parses one integer per line. Blank lines are skipped.
func Read(r io.Reader) ([]int64, error) {
	return readWithHint(r, 0)
}

func readWithHint(r io.Reader, hint int) ([]int64, error) {
	keys := make([]int64, 0, hint)

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedLine, lineNo, line)
		}
		keys = append(keys, key)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Load reads the dataset file at path.
func Load(path string) ([]int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	// Estimate ~6 bytes per line
	hint := 0
	if stat, err := file.Stat(); err == nil {
		hint = int(stat.Size() / 6)
	}

	keys, err := readWithHint(file, hint)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return keys, nil
}

// Write emits keys one per line with no trailing newline.
func Write(w io.Writer, keys []int64) error {
	bw := bufio.NewWriter(w)
	var scratch [20]byte
	for i, key := range keys {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.Write(strconv.AppendInt(scratch[:0], key, 10)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes keys to path, creating parent directories.
func WriteFile(path string, keys []int64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	if err := Write(file, keys); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

// FileName is the conventional file name for a named dataset size.
func FileName(name string) string {
	return "dataset_" + name + ".txt"
}
