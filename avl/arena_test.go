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
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAbsentHandleIsNeutral(t *testing.T) {
	s := NewArenaStore()
	assert.Equal(t, int64(0), s.Key(NoHandle))
	assert.Equal(t, int32(0), s.Height(NoHandle))
	assert.Equal(t, NoHandle, s.Left(NoHandle))
	assert.Equal(t, NoHandle, s.Right(NoHandle))

	// setters on the absent handle are ignored
	s.SetKey(NoHandle, 4)
	s.SetHeight(NoHandle, 4)
	s.SetLeft(NoHandle, 0)
	s.SetRight(NoHandle, 0)
	s.Release(NoHandle)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Free())
}

func TestArenaAllocateFreshLeaf(t *testing.T) {
	s := NewArenaStore(WithCapacity(2))
	h, err := s.Allocate(42)
	require.NoError(t, err)
	assert.Equal(t, Handle(0), h)
	assert.Equal(t, int64(42), s.Key(h))
	assert.Equal(t, int32(1), s.Height(h))
	assert.Equal(t, NoHandle, s.Left(h))
	assert.Equal(t, NoHandle, s.Right(h))
	assert.Equal(t, 1, s.Len())
}

func TestArenaCapacityExceededWithoutGrowth(t *testing.T) {
	tree := NewArenaTree(WithCapacity(3), WithGrowth(false))
	for _, k := range []int64{1, 2, 3} {
		require.NoError(t, tree.Insert(k))
	}
	before := shape(tree.Tree)

	err := tree.Insert(4)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	// no partial mutation
	require.NoError(t, tree.Validate())
	assert.Equal(t, before, shape(tree.Tree))
	assert.Equal(t, 3, tree.Len())
	assert.Equal(t, 3, tree.Arena().Cap())
	assert.False(t, tree.Search(4))

	// freeing a slot makes room again
	tree.Delete(2)
	require.NoError(t, tree.Insert(4))
	assert.Equal(t, []int64{1, 3, 4}, tree.Keys())
}

func TestArenaMaxCapacityBoundsGrowth(t *testing.T) {
	tree := NewArenaTree(WithCapacity(2), WithMaxCapacity(5))
	for k := int64(1); k <= 5; k++ {
		require.NoError(t, tree.Insert(k))
	}
	assert.Equal(t, 5, tree.Arena().Cap())
	assert.Equal(t, 2, tree.Arena().Grows())

	require.ErrorIs(t, tree.Insert(6), ErrCapacityExceeded)
	require.NoError(t, tree.Validate())
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, tree.Keys())
}

func TestArenaGrowthKeepsHandles(t *testing.T) {
	tree := NewArenaTree(WithCapacity(4))
	handles := make(map[int64]Handle)

	keys := []int64{50, 20, 80, 10, 30, 70, 90, 5, 15, 25, 35, 65, 75, 85, 95, 1, 2, 3, 4, 6}
	for _, k := range keys {
		require.NoError(t, tree.Insert(k))
		h, ok := tree.Find(k)
		require.True(t, ok)
		handles[k] = h
	}
	require.GreaterOrEqual(t, tree.Arena().Grows(), 2)
	assert.Equal(t, 32, tree.Arena().Cap())

	for k, h := range handles {
		got, ok := tree.Find(k)
		require.True(t, ok, "key %d", k)
		assert.Equal(t, h, got, "key %d moved slots", k)
		assert.Equal(t, k, tree.Arena().Key(h))
	}
	require.NoError(t, tree.Validate())
}

func TestArenaFreeListReuse(t *testing.T) {
	tree := NewArenaTree(WithCapacity(8))
	for k := int64(1); k <= 5; k++ {
		require.NoError(t, tree.Insert(k))
	}
	leaf, ok := tree.Find(5)
	require.True(t, ok)

	tree.Delete(5)
	assert.Equal(t, 1, tree.Arena().Free())
	assert.Equal(t, 4, tree.Len())

	require.NoError(t, tree.Insert(10))
	h, ok := tree.Find(10)
	require.True(t, ok)
	assert.Equal(t, leaf, h)
	assert.Equal(t, 0, tree.Arena().Free())
	assert.Equal(t, 8, tree.Arena().Cap())
	assert.Equal(t, 0, tree.Arena().Grows())
}

func TestArenaLogsGrowth(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tree := NewArenaTree(WithCapacity(1), WithLogger(logger))
	require.NoError(t, tree.Insert(1))
	require.NoError(t, tree.Insert(2))

	assert.Contains(t, buf.String(), "arena grown")
	assert.Contains(t, buf.String(), "from=1")
	assert.Contains(t, buf.String(), "to=2")
}

func TestRefStoreLifecycle(t *testing.T) {
	s := NewRefStore()
	assert.Nil(t, s.Nil())
	n, err := s.Allocate(3)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, int32(1), s.Height(n))
	assert.Equal(t, int32(0), s.Height(nil))
	assert.Nil(t, s.Left(nil))

	s.Release(n)
	assert.Equal(t, 0, s.Len())
}
