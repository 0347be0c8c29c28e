package loader

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ostafen/growtable/pkg/keys"
	"github.com/ostafen/growtable/pkg/mem"
	"github.com/ostafen/growtable/pkg/table"
)

func newTable[K any](t *testing.T, s table.KeyStrategy[K], opts table.Options) *table.Table[K, *string] {
	tb, err := table.New[K, *string](2, s, keys.PrintRef[string], opts)
	require.NoError(t, err)
	t.Cleanup(tb.Destroy)
	return tb
}

func TestLoad(t *testing.T) {
	tb := newTable[int](t, keys.NewInt(nil), table.Options{})

	data := []byte("# sample\n543 five four three\n\n-22 minus\n   \n7\n543 updated\n")

	var progress []uint64
	stats, err := Load(tb, data, ParseInt, Options{
		Progress: func(n uint64) { progress = append(progress, n) },
	})
	require.NoError(t, err)
	require.Equal(t, Stats{Lines: 4, Inserted: 3, Updated: 1}, stats)
	require.Equal(t, 3, tb.Len())

	v, _, found, err := tb.Find(543)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "updated", *v)

	v, _, found, err = tb.Find(7)
	require.NoError(t, err)
	require.True(t, found)
	require.Empty(t, *v)

	require.Len(t, progress, 7)
	require.IsIncreasing(t, progress)
	require.Equal(t, uint64(len(data)), progress[len(progress)-1])
}

func TestLoadNoTrailingNewline(t *testing.T) {
	tb := newTable[string](t, keys.NewString(nil), table.Options{})

	var last uint64
	stats, err := Load(tb, []byte("a 1\nb 2"), ParseString, Options{
		Progress: func(n uint64) { last = n },
	})
	require.NoError(t, err)
	require.Equal(t, 2, stats.Inserted)
	require.Equal(t, uint64(7), last)
}

func TestLoadParseError(t *testing.T) {
	tb := newTable[int](t, keys.NewInt(nil), table.Options{})

	stats, err := Load(tb, []byte("1 a\nx b\n2 c\n"), ParseInt, Options{})
	require.ErrorContains(t, err, "line 2: invalid key \"x\"")
	require.Equal(t, 1, stats.Inserted)
	require.Equal(t, 1, tb.Len())
}

func TestLoadOutOfMemory(t *testing.T) {
	budget := mem.NewBudget(1024)
	tb := newTable[int](t, keys.NewInt(budget), table.Options{Allocator: budget})

	var data []byte
	for i := range 1000 {
		data = fmt.Appendf(data, "%d v\n", i)
	}

	stats, err := Load(tb, data, ParseInt, Options{})
	require.True(t, errors.Is(err, table.ErrOutOfMemory))
	require.Equal(t, stats.Inserted, tb.Len())
	require.LessOrEqual(t, budget.Used(), budget.Limit())
}

func TestLoadEmpty(t *testing.T) {
	tb := newTable[int](t, keys.NewInt(nil), table.Options{})

	stats, err := Load(tb, nil, ParseInt, Options{})
	require.NoError(t, err)
	require.Zero(t, stats)
}
