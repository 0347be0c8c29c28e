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
	"reflect"

	"github.com/ostafen/growtable/pkg/mem"
)

var (
	// ErrInvalidArgument is returned for malformed caller input: an absent
	// argument, an incomplete key strategy or a hash outside the table range.
	// It is always detected before the table is mutated.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfMemory is returned when an allocation charged to the table's
	// allocator is refused. The failing call releases everything it charged.
	ErrOutOfMemory = mem.ErrOutOfMemory
)

// Operation names passed to a Reporter.
const (
	OpCreate = "create"
	OpInsert = "insert"
	OpFind   = "find"
	OpRemove = "remove"
	OpPrint  = "print"
)

// Reporter receives every error returned by a table operation, before the
// error is handed back to the caller.
type Reporter interface {
	Report(op string, err error)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(op string, err error)

func (f ReporterFunc) Report(op string, err error) { f(op, err) }

type nopReporter struct{}

func (nopReporter) Report(string, error) {}

// Kind returns the symbolic name of the error kind wrapped by err, or an
// empty string if err is not a table error.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "InvalidArgument"
	case errors.Is(err, ErrOutOfMemory):
		return "OutOfMemory"
	}
	return ""
}

// isNil reports whether v is absent: a nil interface, pointer, map, slice,
// channel or function.
func isNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}

	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
