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
	"io"
	"strings"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/ostafen/growtable/pkg/mem"
	"github.com/ostafen/growtable/pkg/table"
)

const stringHeaderSize = unsafe.Sizeof("")

// String is the key strategy for string keys. A key hashes to the sum of
// its bytes modulo the table capacity, so anagrams always collide.
type String struct {
	mem mem.Allocator
}

// NewString returns a String strategy charging cloned keys to a.
// A nil allocator never fails.
func NewString(a mem.Allocator) *String {
	if a == nil {
		a = mem.Unlimited
	}
	return &String{mem: a}
}

func (s *String) Clone(key string) (string, error) {
	if err := s.mem.Alloc(stringSize(key)); err != nil {
		return "", err
	}
	return strings.Clone(key), nil
}

func (s *String) Free(key string) {
	s.mem.Free(stringSize(key))
}

func (*String) Hash(key string, capacity int) int {
	if capacity < 1 {
		return table.InvalidHash
	}

	var sum uint64
	for i := 0; i < len(key); i++ {
		sum += uint64(key[i])
	}
	return int(sum % uint64(capacity))
}

func (*String) Compare(a, b string) int {
	if a == b {
		return table.Equal
	}
	return table.NotEqual
}

func (*String) PrintKey(w io.Writer, key string) {
	io.WriteString(w, key)
}

// XXString is a String strategy hashing keys with xxHash64, which spreads
// similar keys far better than the byte sum.
type XXString struct {
	String
}

// NewXXString returns an XXString strategy charging cloned keys to a.
func NewXXString(a mem.Allocator) *XXString {
	return &XXString{String: *NewString(a)}
}

func (*XXString) Hash(key string, capacity int) int {
	if capacity < 1 {
		return table.InvalidHash
	}
	return int(xxhash.Sum64String(key) % uint64(capacity))
}

func stringSize(s string) uintptr {
	return stringHeaderSize + uintptr(len(s))
}
