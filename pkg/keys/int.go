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
package keys

import (
	"fmt"
	"io"
	"unsafe"

	"github.com/ostafen/growtable/pkg/mem"
	"github.com/ostafen/growtable/pkg/table"
)

const intSize = unsafe.Sizeof(int(0))

// Int is the key strategy for int keys. Keys hash to their non-negative
// remainder modulo the table capacity.
type Int struct {
	mem mem.Allocator
}

// NewInt returns an Int strategy charging cloned keys to a.
// A nil allocator never fails.
func NewInt(a mem.Allocator) *Int {
	if a == nil {
		a = mem.Unlimited
	}
	return &Int{mem: a}
}

func (s *Int) Clone(key int) (int, error) {
	if err := s.mem.Alloc(intSize); err != nil {
		return 0, err
	}
	return key, nil
}

func (s *Int) Free(int) {
	s.mem.Free(intSize)
}

func (*Int) Hash(key int, capacity int) int {
	if capacity < 1 {
		return table.InvalidHash
	}

	h := key % capacity
	if h < 0 {
		// Go's % yields the remainder, not the modulus, for negative keys.
		h += capacity
	}
	return h
}

func (*Int) Compare(a, b int) int {
	if a == b {
		return table.Equal
	}
	return table.NotEqual
}

func (*Int) PrintKey(w io.Writer, key int) {
	fmt.Fprintf(w, "%d", key)
}
