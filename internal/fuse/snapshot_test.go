package fuse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ostafen/growtable/pkg/keys"
	"github.com/ostafen/growtable/pkg/table"
)

func TestTakeSnapshot(t *testing.T) {
	ints := keys.NewInt(nil)
	tb, err := table.New[int, *int](2, ints, keys.PrintRef[int], table.Options{})
	require.NoError(t, err)
	defer tb.Destroy()

	vals := []int{543, 6543, -22}
	for i := range vals {
		require.NoError(t, tb.Insert(vals[i], &vals[i]))
	}

	snap := TakeSnapshot(tb, ints.PrintKey, keys.PrintRef[int])

	layout, ok := snap.Walk("layout.txt")
	require.True(t, ok)
	require.False(t, layout.IsDir())
	require.Equal(t, "[0]\t-22,-22\t-->\t\n[1]\t543,543\t-->\t6543,6543\t-->\t\n", string(layout.Data))

	stats, ok := snap.Walk("stats.txt")
	require.True(t, ok)
	require.Contains(t, string(stats.Data), "entries 3\ncapacity 2\n")

	cells, ok := snap.Walk("cells")
	require.True(t, ok)
	require.True(t, cells.IsDir())
	require.Len(t, cells.Children, 2)

	e, ok := snap.Walk("cells", "1", "1")
	require.True(t, ok)
	require.Equal(t, "6543,6543\n", string(e.Data))

	_, ok = snap.Walk("cells", "1", "2")
	require.False(t, ok)

	// the snapshot is detached from the table
	require.NoError(t, tb.Insert(3, &vals[0]))
	require.Len(t, cells.Children, 2)
}

func TestSnapshotEmptyCellsAreDirs(t *testing.T) {
	tb, err := table.New[string, *string](4, keys.NewString(nil), keys.PrintRef[string], table.Options{})
	require.NoError(t, err)
	defer tb.Destroy()

	snap := TakeSnapshot(tb, keys.NewString(nil).PrintKey, keys.PrintRef[string])

	cell, ok := snap.Walk("cells", "3")
	require.True(t, ok)
	require.True(t, cell.IsDir())
	require.Empty(t, cell.Children)
}
