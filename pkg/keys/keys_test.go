package keys_test

import (
	"bytes"
	"testing"

	"github.com/ostafen/growtable/pkg/keys"
	"github.com/ostafen/growtable/pkg/mem"
	"github.com/ostafen/growtable/pkg/table"
	"github.com/stretchr/testify/require"
)

func TestIntHash(t *testing.T) {
	s := keys.NewInt(nil)

	cases := []struct {
		key, capacity, want int
	}{
		{543, 2, 1},
		{-22, 2, 0},
		{-5, 2, 1},
		{-1, 3, 2},
		{0, 5, 0},
		{7, 1, 0},
	}
	for _, c := range cases {
		require.Equal(t, c.want, s.Hash(c.key, c.capacity), "Hash(%d, %d)", c.key, c.capacity)
	}
	require.Equal(t, table.InvalidHash, s.Hash(1, 0))
}

func TestIntCloneFree(t *testing.T) {
	budget := mem.NewBudget(8)
	s := keys.NewInt(budget)

	k, err := s.Clone(42)
	require.NoError(t, err)
	require.Equal(t, 42, k)
	require.Equal(t, uint64(8), budget.Used())

	_, err = s.Clone(43)
	require.ErrorIs(t, err, mem.ErrOutOfMemory)

	s.Free(k)
	require.Zero(t, budget.Used())
}

func TestCompare(t *testing.T) {
	ints := keys.NewInt(nil)
	require.Equal(t, table.Equal, ints.Compare(3, 3))
	require.Equal(t, table.NotEqual, ints.Compare(3, -3))

	strs := keys.NewString(nil)
	require.Equal(t, table.Equal, strs.Compare("abc", "abc"))
	require.Equal(t, table.NotEqual, strs.Compare("abc", "cba"))
}

func TestStringHash(t *testing.T) {
	s := keys.NewString(nil)

	// 'a' + 'b' = 195
	require.Equal(t, 195%7, s.Hash("ab", 7))
	require.Equal(t, s.Hash("ab", 7), s.Hash("ba", 7))
	require.Equal(t, 0, s.Hash("", 7))
	require.Equal(t, table.InvalidHash, s.Hash("ab", 0))

	xx := keys.NewXXString(nil)
	for _, k := range []string{"", "a", "hello", "growtable"} {
		h := xx.Hash(k, 13)
		require.GreaterOrEqual(t, h, 0)
		require.Less(t, h, 13)
		require.Equal(t, h, xx.Hash(k, 13))
	}
	require.Equal(t, table.InvalidHash, xx.Hash("a", -1))
}

func TestStringCloneFree(t *testing.T) {
	budget := mem.NewBudget(1024)
	s := keys.NewXXString(budget)

	orig := []byte("mutable")
	k, err := s.Clone(string(orig))
	require.NoError(t, err)
	require.Equal(t, "mutable", k)
	require.NotZero(t, budget.Used())

	s.Free(k)
	require.Zero(t, budget.Used())

	_, err = keys.NewString(mem.NewBudget(4)).Clone("too long for the budget")
	require.ErrorIs(t, err, mem.ErrOutOfMemory)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer

	keys.NewInt(nil).PrintKey(&buf, -7)
	buf.WriteString(",")
	keys.NewString(nil).PrintKey(&buf, "k")
	buf.WriteString(",")

	v := 3
	keys.PrintRef(&buf, &v)
	keys.PrintRef[int](&buf, nil)

	require.Equal(t, "-7,k,3", buf.String())
}

func TestLookup(t *testing.T) {
	for _, info := range keys.Strategies {
		got, err := keys.Lookup(info.Name)
		require.NoError(t, err)
		require.Equal(t, info, got)
	}

	_, err := keys.Lookup("float")
	require.Error(t, err)
}

func TestStrategiesWithTable(t *testing.T) {
	for _, s := range []table.KeyStrategy[string]{keys.NewString(nil), keys.NewXXString(nil)} {
		tb, err := table.New[string, *string](3, s, keys.PrintRef[string], table.Options{})
		require.NoError(t, err)

		words := []string{"listen", "silent", "enlist", "tinsel", "inlets"}
		for i := range words {
			require.NoError(t, tb.Insert(words[i], &words[i]))
		}
		for i := range words {
			v, _, found, err := tb.Find(words[i])
			require.NoError(t, err)
			require.True(t, found)
			require.Same(t, &words[i], v)
		}
		tb.Destroy()
	}
}
