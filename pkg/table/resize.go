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
	"math"
)

// resizeFactor is the ratio between the capacity after and before a resize.
const resizeFactor = 2

// grow doubles the table. The bucket at slot i moves to slot 2i, and slot
// 2i+1 receives a new empty bucket. No entry is rehashed.
//
// The previous slot array is returned and stays charged until the caller
// either commits the resize with commitGrow or undoes it with undoGrow. If
// the new slot array or one of the new buckets cannot be allocated the
// table is left untouched.
func (t *Table[K, V]) grow() ([]*bucket[K, V], error) {
	oldCapacity := len(t.slots)
	if oldCapacity > math.MaxInt/resizeFactor {
		return nil, fmt.Errorf("%w: capacity %d cannot grow", ErrOutOfMemory, oldCapacity)
	}

	newCapacity := oldCapacity * resizeFactor
	if t.maxCapacity > 0 && newCapacity > t.maxCapacity {
		return nil, fmt.Errorf("%w: growing to %d slots exceeds the maximum of %d", ErrOutOfMemory, newCapacity, t.maxCapacity)
	}

	slots, err := t.allocSlots(newCapacity, resizeFactor)
	if err != nil {
		return nil, err
	}

	for i, b := range t.slots {
		slots[i*resizeFactor] = b
	}

	old := t.slots
	t.slots = slots
	t.growthFactor *= resizeFactor
	return old, nil
}

func (t *Table[K, V]) commitGrow(old []*bucket[K, V]) {
	t.mem.Free(slotArraySize[K, V](len(old)))
	t.observer.Resized(len(t.slots))
}

// undoGrow restores the slot array returned by grow. The buckets added by
// grow must still be empty.
func (t *Table[K, V]) undoGrow(old []*bucket[K, V]) {
	for i := 1; i < len(t.slots); i += resizeFactor {
		t.freeBucket(t.slots[i])
	}
	t.mem.Free(slotArraySize[K, V](len(t.slots)))

	t.slots = old
	t.growthFactor /= resizeFactor
}
