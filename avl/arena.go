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

package avl

import (
	"fmt"
	"log/slog"
	"math"
)

// Handle is a slot index into an ArenaStore.
type Handle int32

// NoHandle is the absent child.
const NoHandle Handle = -1

const (
	DefaultArenaCapacity = 16
	maxArenaCapacity     = math.MaxInt32
)

// ArenaStore keeps node fields in four parallel slices indexed by Handle.
//
// The slices are always exactly capacity long. Slots below size have been
// handed out at least once; released slots are pushed on a free list and
// reused before size advances. Growth copies every slice into one twice as
// long, so a handle names the same node before and after.
type ArenaStore struct {
	keys    []int64
	heights []int32
	lefts   []Handle
	rights  []Handle

	size int
	free []Handle

	growth bool
	maxCap int
	grows  int

	logger *slog.Logger
}

// ArenaOption configures an ArenaStore.
type ArenaOption func(*ArenaStore)

// WithCapacity sets the initial slot count. Values below 1 are ignored.
func WithCapacity(n int) ArenaOption {
	return func(s *ArenaStore) {
		if n > 0 {
			s.resize(min(n, maxArenaCapacity))
		}
	}
}

// WithGrowth enables or disables doubling when the arena is full.
func WithGrowth(enabled bool) ArenaOption {
	return func(s *ArenaStore) {
		s.growth = enabled
	}
}

// WithMaxCapacity bounds growth. Zero means no bound beyond the handle range.
func WithMaxCapacity(n int) ArenaOption {
	return func(s *ArenaStore) {
		if n >= 0 {
			s.maxCap = n
		}
	}
}

// WithLogger reports grow events at debug level.
func WithLogger(logger *slog.Logger) ArenaOption {
	return func(s *ArenaStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewArenaStore returns an empty arena. Growth is enabled by default.
func NewArenaStore(opts ...ArenaOption) *ArenaStore {
	s := &ArenaStore{
		growth: true,
		logger: slog.New(slog.DiscardHandler),
	}
	s.resize(DefaultArenaCapacity)
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *ArenaStore) resize(n int) {
	keys := make([]int64, n)
	heights := make([]int32, n)
	lefts := make([]Handle, n)
	rights := make([]Handle, n)
	copy(keys, s.keys)
	copy(heights, s.heights)
	copy(lefts, s.lefts)
	copy(rights, s.rights)
	s.keys, s.heights, s.lefts, s.rights = keys, heights, lefts, rights
}

// grow doubles capacity, bounded by maxCap and the handle range.
func (s *ArenaStore) grow() error {
	old := len(s.keys)
	limit := maxArenaCapacity
	if s.maxCap > 0 {
		limit = min(limit, s.maxCap)
	}
	if old >= limit {
		return fmt.Errorf("%w: cannot grow past %d slots", ErrCapacityExceeded, limit)
	}
	next := min(max(old*2, 1), limit)
	s.resize(next)
	s.grows++
	s.logger.Debug("arena grown",
		slog.Int("from", old),
		slog.Int("to", next),
		slog.Int("live", s.Len()),
	)
	return nil
}

func (s *ArenaStore) Nil() Handle { return NoHandle }

// Allocate returns a slot holding a fresh leaf. It fails with
// ErrCapacityExceeded when the arena is full and growth is disabled or
// exhausted; nothing is modified in that case.
func (s *ArenaStore) Allocate(key int64) (Handle, error) {
	var h Handle
	switch {
	case len(s.free) > 0:
		h = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	case s.size < len(s.keys):
		h = Handle(s.size)
		s.size++
	case !s.growth:
		return NoHandle, fmt.Errorf("%w: %d of %d slots in use, growth disabled", ErrCapacityExceeded, s.size, len(s.keys))
	default:
		if err := s.grow(); err != nil {
			return NoHandle, err
		}
		h = Handle(s.size)
		s.size++
	}

	s.keys[h] = key
	s.heights[h] = 1
	s.lefts[h] = NoHandle
	s.rights[h] = NoHandle
	return h, nil
}

// Release zeroes the slot and queues it for reuse.
func (s *ArenaStore) Release(h Handle) {
	if h == NoHandle {
		return
	}
	s.keys[h] = 0
	s.heights[h] = 0
	s.lefts[h] = NoHandle
	s.rights[h] = NoHandle
	s.free = append(s.free, h)
}

func (s *ArenaStore) Key(h Handle) int64 {
	if h == NoHandle {
		return 0
	}
	return s.keys[h]
}

func (s *ArenaStore) Height(h Handle) int32 {
	if h == NoHandle {
		return 0
	}
	return s.heights[h]
}

func (s *ArenaStore) Left(h Handle) Handle {
	if h == NoHandle {
		return NoHandle
	}
	return s.lefts[h]
}

func (s *ArenaStore) Right(h Handle) Handle {
	if h == NoHandle {
		return NoHandle
	}
	return s.rights[h]
}

func (s *ArenaStore) SetKey(h Handle, key int64) {
	if h != NoHandle {
		s.keys[h] = key
	}
}

func (s *ArenaStore) SetHeight(h Handle, height int32) {
	if h != NoHandle {
		s.heights[h] = height
	}
}

func (s *ArenaStore) SetLeft(h, child Handle) {
	if h != NoHandle {
		s.lefts[h] = child
	}
}

func (s *ArenaStore) SetRight(h, child Handle) {
	if h != NoHandle {
		s.rights[h] = child
	}
}

// Len is the number of live slots.
func (s *ArenaStore) Len() int { return s.size - len(s.free) }

// Cap is the current slot capacity.
func (s *ArenaStore) Cap() int { return len(s.keys) }

// Grows counts how many times the arena has doubled.
func (s *ArenaStore) Grows() int { return s.grows }

// Free is the number of released slots awaiting reuse.
func (s *ArenaStore) Free() int { return len(s.free) }
