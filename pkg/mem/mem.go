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
package mem

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned when an allocation cannot be satisfied.
var ErrOutOfMemory = errors.New("out of memory")

// Allocator accounts for the memory used by a data structure.
//
// Go allocations never fail in a recoverable way, so containers charge the
// size of every node they create to an Allocator before creating it. An
// Allocator refusing the charge is the only source of ErrOutOfMemory, which
// makes every failure path of a container reachable and testable.
type Allocator interface {
	// Alloc charges size bytes. It returns an error wrapping ErrOutOfMemory
	// if the charge cannot be satisfied, in which case nothing is charged.
	Alloc(size uintptr) error
	// Free releases size bytes previously charged with Alloc.
	Free(size uintptr)
}

type unlimited struct{}

func (unlimited) Alloc(uintptr) error { return nil }
func (unlimited) Free(uintptr)        {}

// Unlimited is an Allocator which never fails.
var Unlimited Allocator = unlimited{}

// Budget is an Allocator enforcing an upper bound on the number of bytes
// charged at any time.
type Budget struct {
	limit uint64
	used  uint64
	peak  uint64
}

// NewBudget returns a Budget allowing at most limit bytes to be in use.
func NewBudget(limit uint64) *Budget {
	return &Budget{limit: limit}
}

func (b *Budget) Alloc(size uintptr) error {
	if uint64(size) > b.limit-b.used {
		return fmt.Errorf("%w: requested %d bytes, %d of %d in use", ErrOutOfMemory, size, b.used, b.limit)
	}
	b.used += uint64(size)
	b.peak = max(b.peak, b.used)
	return nil
}

func (b *Budget) Free(size uintptr) {
	if uint64(size) > b.used {
		// releasing more than charged is a bug in the caller
		panic(fmt.Sprintf("mem: freeing %d bytes with only %d in use", size, b.used))
	}
	b.used -= uint64(size)
}

// Used returns the number of bytes currently charged.
func (b *Budget) Used() uint64 { return b.used }

// Peak returns the highest number of bytes ever charged at once.
func (b *Budget) Peak() uint64 { return b.peak }

// Limit returns the maximum number of bytes that can be charged.
func (b *Budget) Limit() uint64 { return b.limit }

// Available returns the number of bytes that can still be charged.
func (b *Budget) Available() uint64 { return b.limit - b.used }
