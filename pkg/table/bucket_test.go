package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func compareInts(a, b int) int {
	if a == b {
		return Equal
	}
	return NotEqual
}

func TestBucket(t *testing.T) {
	b := newBucket[int, string](3)
	require.Equal(t, 0, b.len())
	require.False(t, b.full())

	require.Equal(t, 0, b.append(10, "a"))
	require.Equal(t, 1, b.append(20, "b"))
	require.Equal(t, 2, b.append(30, "c"))
	require.True(t, b.full())
	require.Panics(t, func() { b.append(40, "d") })

	require.Equal(t, 1, b.index(20, compareInts))
	require.Equal(t, -1, b.index(40, compareInts))

	e := b.remove(0)
	require.Equal(t, 10, e.key)
	require.Equal(t, "a", e.value)
	require.False(t, b.full())

	got, ok := b.at(0)
	require.True(t, ok)
	require.Equal(t, 20, got.key)

	got, ok = b.at(1)
	require.True(t, ok)
	require.Equal(t, 30, got.key)

	_, ok = b.at(2)
	require.False(t, ok)
	_, ok = b.at(-1)
	require.False(t, ok)

	b.remove(1)
	require.Equal(t, 1, b.len())
	require.Equal(t, 0, b.index(20, compareInts))
}

func TestIsNil(t *testing.T) {
	var (
		p   *int
		m   map[string]int
		s   []byte
		f   func()
		c   chan int
		err error
	)
	require.True(t, isNil(p))
	require.True(t, isNil(m))
	require.True(t, isNil(s))
	require.True(t, isNil(f))
	require.True(t, isNil(c))
	require.True(t, isNil(err))

	x := 0
	require.False(t, isNil(&x))
	require.False(t, isNil(0))
	require.False(t, isNil(""))
	require.False(t, isNil([]byte{}))
	require.False(t, isNil(struct{}{}))
}
