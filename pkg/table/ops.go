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
	"errors"
	"fmt"
)

// Insert associates value with key. If an equal key is already stored its
// value is replaced in place and the entry keeps its position. Otherwise a
// clone of key is appended to the first bucket of the key's address window
// with room left, doubling the table first if the whole window is full.
// A failed insert leaves the table as it was, including its capacity.
//
// The table keeps a reference to value but never copies or frees it.
func (t *Table[K, V]) Insert(key K, value V) error {
	if err := t.usable(OpInsert); err != nil {
		return err
	}
	if isNil(key) || isNil(value) {
		return t.fail(OpInsert, fmt.Errorf("%w: missing key or value", ErrInvalidArgument))
	}

	addr, pos, found, err := t.locate(key)
	if err != nil {
		return t.fail(OpInsert, err)
	}

	if found {
		t.slots[pos.Cell].elems[pos.Slot].value = value
		t.observer.Inserted(true)
		return nil
	}

	if b := t.available(addr); b != nil {
		if err := t.place(b, key, value); err != nil {
			return t.fail(OpInsert, err)
		}
		t.observer.Inserted(false)
		return nil
	}

	// Every bucket of the window is full. After doubling, the window spans
	// the old buckets at even slots and new empty ones at odd slots, so the
	// retry always finds room. The doubling is undone if placing fails.
	old, err := t.grow()
	if err != nil {
		return t.fail(OpInsert, err)
	}

	if err := t.place(t.available(addr*resizeFactor), key, value); err != nil {
		t.undoGrow(old)
		return t.fail(OpInsert, err)
	}
	t.commitGrow(old)

	t.observer.Inserted(false)
	return nil
}

// Find returns the value stored for key together with its position.
// A missing key is not an error: found is false and pos is zero.
func (t *Table[K, V]) Find(key K) (value V, pos Position, found bool, err error) {
	if err := t.usable(OpFind); err != nil {
		return value, pos, false, err
	}
	if isNil(key) {
		return value, pos, false, t.fail(OpFind, fmt.Errorf("%w: missing key", ErrInvalidArgument))
	}

	_, pos, found, err = t.locate(key)
	if err != nil {
		return value, Position{}, false, t.fail(OpFind, err)
	}

	t.observer.Searched(found)
	if !found {
		return value, Position{}, false, nil
	}
	return t.slots[pos.Cell].elems[pos.Slot].value, pos, true, nil
}

// Remove deletes the entry for key, frees its key and returns its value.
// Entries stored after it in the same bucket move one slot down.
// Removing a missing key is not an error: found is false.
func (t *Table[K, V]) Remove(key K) (value V, found bool, err error) {
	if err := t.usable(OpRemove); err != nil {
		return value, false, err
	}
	if isNil(key) {
		return value, false, t.fail(OpRemove, fmt.Errorf("%w: missing key", ErrInvalidArgument))
	}

	_, pos, found, err := t.locate(key)
	if err != nil {
		return value, false, t.fail(OpRemove, err)
	}

	t.observer.Removed(found)
	if !found {
		return value, false, nil
	}

	e := t.slots[pos.Cell].remove(pos.Slot)
	t.keys.Free(e.key)
	t.mem.Free(elementSize[K, V]())
	t.count--

	return e.value, true, nil
}

// DataAt returns the value stored at (cell, slot). Out of range
// coordinates yield found == false.
func (t *Table[K, V]) DataAt(cell, slot int) (value V, found bool) {
	e, ok := t.element(cell, slot)
	if !ok {
		return value, false
	}
	return e.value, true
}

// KeyAt returns the key stored at (cell, slot). The returned key is owned
// by the table and stays valid until the entry is removed.
func (t *Table[K, V]) KeyAt(cell, slot int) (key K, found bool) {
	e, ok := t.element(cell, slot)
	if !ok {
		return key, false
	}
	return e.key, true
}

func (t *Table[K, V]) element(cell, slot int) (*element[K, V], bool) {
	if t == nil || cell < 0 || cell >= len(t.slots) {
		return nil, false
	}
	return t.slots[cell].at(slot)
}

// address returns the first slot of the address window of key.
func (t *Table[K, V]) address(key K) (int, error) {
	h := t.keys.Hash(key, t.originalCapacity)
	if h < 0 || h >= t.originalCapacity {
		return 0, fmt.Errorf("%w: hash %d outside [0, %d)", ErrInvalidArgument, h, t.originalCapacity)
	}
	return h * t.growthFactor, nil
}

// locate scans the address window of key, bucket by bucket from left to
// right, for an entry with an equal key.
func (t *Table[K, V]) locate(key K) (addr int, pos Position, found bool, err error) {
	addr, err = t.address(key)
	if err != nil {
		return 0, Position{}, false, err
	}

	for cell := addr; cell < addr+t.growthFactor; cell++ {
		if slot := t.slots[cell].index(key, t.keys.Compare); slot >= 0 {
			return addr, Position{Cell: cell, Slot: slot}, true, nil
		}
	}
	return addr, Position{}, false, nil
}

// available returns the leftmost bucket of the window starting at addr
// which is not full, or nil.
func (t *Table[K, V]) available(addr int) *bucket[K, V] {
	for cell := addr; cell < addr+t.growthFactor; cell++ {
		if b := t.slots[cell]; !b.full() {
			return b
		}
	}
	return nil
}

// place appends a new element holding a clone of key to b.
func (t *Table[K, V]) place(b *bucket[K, V], key K, value V) error {
	if err := t.mem.Alloc(elementSize[K, V]()); err != nil {
		return err
	}

	clone, err := t.keys.Clone(key)
	if err != nil {
		t.mem.Free(elementSize[K, V]())
		if !errors.Is(err, ErrOutOfMemory) {
			err = fmt.Errorf("%w: clone key: %w", ErrOutOfMemory, err)
		}
		return err
	}

	b.append(clone, value)
	t.count++
	return nil
}
