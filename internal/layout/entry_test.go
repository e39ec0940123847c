package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treescope/internal/domain"
)

func dirOf(sizes ...int64) *domain.FileNode {
	children := make([]*domain.FileNode, len(sizes))
	for i, size := range sizes {
		name := fmt.Sprintf("c%02d", i)
		children[i] = domain.NewFile(name, "/d/"+name, size)
	}
	return domain.NewDirectory("d", "/d", children)
}

func TestChildEntriesAggregateExactSum(t *testing.T) {
	dir := dirOf(70, 5, 5, 5, 5)
	entries := childEntries(dir, 2, 0.11)

	require.Len(t, entries, 3, "two real entries plus one aggregate")
	assert.Equal(t, int64(70), entries[0].size)
	assert.Equal(t, int64(5), entries[1].size, "rank keeps one small child visible")

	agg := entries[2]
	require.True(t, agg.isAggregate)
	assert.Equal(t, int64(15), agg.size, "aggregate is the exact sum of excluded children")
	assert.Equal(t, AggregateLabel, agg.label)
	assert.Nil(t, agg.node, "aggregate has no backing node")
	assert.Equal(t, dir.SizeBytes(), entrySum(entries), "nothing lost to selection")
}

func TestChildEntriesThresholdAndRank(t *testing.T) {
	sizes := append([]int64{990}, make([]int64, 10)...)
	for i := 1; i < len(sizes); i++ {
		sizes[i] = 1
	}
	dir := dirOf(sizes...)
	entries := childEntries(dir, 8, 0.05)

	// The big child is visible; ranks 1..4 ride on keepByRank; the rest
	// collapse into the aggregate.
	require.Len(t, entries, keepByRank+1)
	agg := entries[keepByRank]
	require.True(t, agg.isAggregate)
	assert.Equal(t, int64(6), agg.size)
}

func TestChildEntriesNoAggregateWhenAllFit(t *testing.T) {
	dir := dirOf(50, 30, 20)
	entries := childEntries(dir, 10, 0.0)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.False(t, e.isAggregate)
	}
}

func TestChildEntriesOrderDeterministic(t *testing.T) {
	dir := dirOf(10, 40, 40, 5)
	first := childEntries(dir, 10, 0.0)
	second := childEntries(dir, 10, 0.0)
	require.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		if first[i].isAggregate {
			continue
		}
		assert.LessOrEqual(t, first[i].size, first[i-1].size, "real entries are size-descending")
	}
}

func TestChildEntriesEmptyDir(t *testing.T) {
	dir := domain.NewDirectory("d", "/d", nil)
	assert.Nil(t, childEntries(dir, 4, 0.1))
}
