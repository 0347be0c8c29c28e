// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package table

import (
	"fmt"
	"unsafe"

	"github.com/ostafen/growtable/pkg/mem"
)

// Position identifies an entry: Cell is the absolute slot index in the
// table, Slot the position within that slot's bucket.
type Position struct {
	Cell int
	Slot int
}

// Entry is a key/value pair as seen during enumeration.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Table is an associative container whose keys are handled by a
// KeyStrategy.
//
// Keys are hashed once against the original capacity. The base hash h of a
// key selects the address window [h*g, h*g+g) of the slot array, where g is
// the growth factor. When every bucket of a window is full the table doubles:
// the bucket at slot i moves to slot 2i and slot 2i+1 receives a new empty
// bucket, so windows double in width while existing entries are never
// rehashed.
//
// A Table is not safe for concurrent use.
type Table[K, V any] struct {
	slots            []*bucket[K, V]
	originalCapacity int
	growthFactor     int
	bucketCapacity   int
	maxCapacity      int
	count            int

	keys       KeyStrategy[K]
	printValue ValuePrinter[V]

	mem      mem.Allocator
	reporter Reporter
	observer Observer
}

// New creates a table with the given number of slots, each holding an
// empty bucket.
func New[K, V any](capacity int, keys KeyStrategy[K], printValue ValuePrinter[V], opts Options) (*Table[K, V], error) {
	opts = opts.withDefaults()

	t, err := newTable(capacity, keys, printValue, opts)
	if err != nil {
		opts.Reporter.Report(OpCreate, err)
		return nil, err
	}
	return t, nil
}

func newTable[K, V any](capacity int, keys KeyStrategy[K], printValue ValuePrinter[V], opts Options) (*Table[K, V], error) {
	if capacity < MinCapacity {
		return nil, fmt.Errorf("%w: capacity %d, must be at least %d", ErrInvalidArgument, capacity, MinCapacity)
	}
	if isNil(keys) {
		return nil, fmt.Errorf("%w: missing key strategy", ErrInvalidArgument)
	}
	if v, ok := keys.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	if printValue == nil {
		return nil, fmt.Errorf("%w: missing value printer", ErrInvalidArgument)
	}
	if err := opts.validate(capacity); err != nil {
		return nil, err
	}

	t := &Table[K, V]{
		originalCapacity: capacity,
		growthFactor:     1,
		bucketCapacity:   opts.BucketCapacity,
		maxCapacity:      opts.MaxCapacity,
		keys:             keys,
		printValue:       printValue,
		mem:              opts.Allocator,
		reporter:         opts.Reporter,
		observer:         opts.Observer,
	}

	if err := t.mem.Alloc(t.recordSize()); err != nil {
		return nil, err
	}

	slots, err := t.allocSlots(capacity, 1)
	if err != nil {
		t.mem.Free(t.recordSize())
		return nil, err
	}
	t.slots = slots
	return t, nil
}

// Destroy releases every entry of the table, freeing each key through the
// key strategy. The table cannot be used afterwards. Destroy on a nil table
// is a no-op.
func (t *Table[K, V]) Destroy() {
	if t == nil || t.slots == nil {
		return
	}

	t.freeSlots(t.slots)
	t.mem.Free(t.recordSize())

	t.slots = nil
	t.count = 0
	t.observer.Destroyed()
}

// Len returns the number of entries.
func (t *Table[K, V]) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// Capacity returns the current number of slots.
func (t *Table[K, V]) Capacity() int {
	if t == nil {
		return 0
	}
	return len(t.slots)
}

// OriginalCapacity returns the number of slots the table was created with.
func (t *Table[K, V]) OriginalCapacity() int {
	if t == nil {
		return 0
	}
	return t.originalCapacity
}

// GrowthFactor returns the width of every address window.
func (t *Table[K, V]) GrowthFactor() int {
	if t == nil {
		return 0
	}
	return t.growthFactor
}

// BucketCapacity returns the maximum number of elements per bucket.
func (t *Table[K, V]) BucketCapacity() int {
	if t == nil {
		return 0
	}
	return t.bucketCapacity
}

// BucketLen returns the number of elements in the bucket at cell, or -1 if
// cell is out of range.
func (t *Table[K, V]) BucketLen(cell int) int {
	if t == nil || cell < 0 || cell >= len(t.slots) {
		return -1
	}
	return t.slots[cell].len()
}

// fail reports err and returns it.
func (t *Table[K, V]) fail(op string, err error) error {
	t.reporter.Report(op, err)
	return err
}

// usable returns ErrInvalidArgument for a nil or destroyed table. Only the
// latter can be reported.
func (t *Table[K, V]) usable(op string) error {
	if t == nil {
		return fmt.Errorf("%w: nil table", ErrInvalidArgument)
	}
	if t.slots == nil {
		return t.fail(op, fmt.Errorf("%w: destroyed table", ErrInvalidArgument))
	}
	return nil
}

// --- Memory accounting ---

func (t *Table[K, V]) recordSize() uintptr {
	return unsafe.Sizeof(*t)
}

func slotArraySize[K, V any](n int) uintptr {
	return uintptr(n) * unsafe.Sizeof((*bucket[K, V])(nil))
}

func bucketSize[K, V any]() uintptr {
	return unsafe.Sizeof(bucket[K, V]{})
}

func elementSize[K, V any]() uintptr {
	return unsafe.Sizeof(element[K, V]{})
}

// allocSlots returns a slot array of n slots. Every stride-th slot, starting
// at stride-1, holds a new empty bucket; the others are left nil for the
// caller to fill. On failure every charge made so far is released.
func (t *Table[K, V]) allocSlots(n, stride int) ([]*bucket[K, V], error) {
	if err := t.mem.Alloc(slotArraySize[K, V](n)); err != nil {
		return nil, err
	}

	slots := make([]*bucket[K, V], n)
	for i := stride - 1; i < n; i += stride {
		if err := t.mem.Alloc(bucketSize[K, V]()); err != nil {
			t.freeSlots(slots)
			return nil, err
		}
		slots[i] = newBucket[K, V](t.bucketCapacity)
	}
	return slots, nil
}

// freeSlots releases every bucket of slots together with its elements,
// and the slot array itself.
func (t *Table[K, V]) freeSlots(slots []*bucket[K, V]) {
	for i, b := range slots {
		if b == nil {
			continue
		}
		t.freeBucket(b)
		slots[i] = nil
	}
	t.mem.Free(slotArraySize[K, V](len(slots)))
}

func (t *Table[K, V]) freeBucket(b *bucket[K, V]) {
	for i := range b.elems {
		t.keys.Free(b.elems[i].key)
		t.mem.Free(elementSize[K, V]())
	}
	t.count -= len(b.elems)
	b.elems = nil

	t.mem.Free(bucketSize[K, V]())
}
