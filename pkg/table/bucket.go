package table

import "slices"

// element is a single entry. The key is owned by the table, the value is
// only referenced.
type element[K, V any] struct {
	key   K
	value V
}

// bucket is a chain of at most capacity elements, kept in insertion order.
// The position of an element in elems is its slot coordinate.
type bucket[K, V any] struct {
	elems    []element[K, V]
	capacity int
}

func newBucket[K, V any](capacity int) *bucket[K, V] {
	return &bucket[K, V]{capacity: capacity}
}

func (b *bucket[K, V]) len() int { return len(b.elems) }

func (b *bucket[K, V]) full() bool { return len(b.elems) >= b.capacity }

// append adds an element at the tail of the chain. The bucket must not be full.
func (b *bucket[K, V]) append(key K, value V) int {
	if b.full() {
		panic("table: append to a full bucket")
	}
	b.elems = append(b.elems, element[K, V]{key: key, value: value})
	return len(b.elems) - 1
}

// index returns the slot of the first element whose key equals key,
// or -1 if there is none.
func (b *bucket[K, V]) index(key K, compare func(a, b K) int) int {
	for i := range b.elems {
		if compare(b.elems[i].key, key) == Equal {
			return i
		}
	}
	return -1
}

func (b *bucket[K, V]) at(slot int) (*element[K, V], bool) {
	if slot < 0 || slot >= len(b.elems) {
		return nil, false
	}
	return &b.elems[slot], true
}

// remove unlinks the element at slot. Later elements move one slot down.
func (b *bucket[K, V]) remove(slot int) element[K, V] {
	e := b.elems[slot]
	b.elems = slices.Delete(b.elems, slot, slot+1)
	return e
}
