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
package demo

import (
	"fmt"
	"io"

	"github.com/ostafen/growtable/pkg/table"
)

// Script is the sequence of operations replayed by Run.
type Script[K any] struct {
	Add    []K
	Search []K
	Remove []K
	Readd  []K
}

var IntScript = Script[int]{
	Add:    []int{543, 6543, -22, 3, 4, -5, 10, 0, 6543, 22},
	Search: []int{5, -22, 32, 0, 6543, -22, 1, 543, 3, 4},
	Remove: []int{15, -22, -22, 0, 6543, -22, 1, 543, 3, 4},
	Readd:  []int{1, -1, 1, 2, 9},
}

var StringScript = Script[string]{
	Add:    []string{"apple", "banana", "cherry", "date", "fig", "grape", "kiwi", "lemon", "banana", "mango"},
	Search: []string{"pear", "cherry", "plum", "lemon", "banana", "cherry", "lime", "apple", "date", "fig"},
	Remove: []string{"quince", "cherry", "cherry", "lemon", "banana", "cherry", "lime", "apple", "date", "fig"},
	Readd:  []string{"lime", "olive", "lime", "peach", "nectarine"},
}

// Result counts how the operations of a run ended.
type Result struct {
	Found    int
	Missing  int
	Removed  int
	Failures int
}

// Run replays s against tb, writing a transcript of every step to w and the
// table layout after every mutation. Failing operations are counted and the
// run goes on; the table reports them to its own Reporter.
//
// Stored values point into s, which must outlive tb.
func Run[K any](w io.Writer, tb *table.Table[K, *K], s Script[K]) Result {
	var res Result

	section(w, "Add")
	add(w, tb, s.Add, &res)

	section(w, "Search")
	for i := range s.Search {
		fmt.Fprintf(w, "Searching the value: %4v\n", s.Search[i])

		_, pos, found, err := tb.Find(s.Search[i])
		switch {
		case err != nil:
			res.Failures++
			fmt.Fprintf(w, "Search failed: %v\n", err)
		case found:
			res.Found++
			fmt.Fprintf(w, "The desired value is in cell number %d, placement number %d\n", pos.Cell, pos.Slot)
		default:
			res.Missing++
			fmt.Fprintf(w, "Can't find what you're looking for...\n")
		}
		fmt.Fprintln(w)
	}

	section(w, "Remove")
	for i := range s.Remove {
		fmt.Fprintf(w, "Removing the value: %4v\n", s.Remove[i])

		_, found, err := tb.Remove(s.Remove[i])
		if err != nil {
			res.Failures++
		} else if found {
			res.Removed++
		}
		tb.Print(w)
		fmt.Fprintln(w)
	}

	section(w, "Add")
	add(w, tb, s.Readd, &res)

	return res
}

func add[K any](w io.Writer, tb *table.Table[K, *K], keys []K, res *Result) {
	for i := range keys {
		fmt.Fprintf(w, "Adding the value: %4v\n", keys[i])
		if err := tb.Insert(keys[i], &keys[i]); err != nil {
			res.Failures++
		}
		tb.Print(w)
		fmt.Fprintln(w)
	}
}

func section(w io.Writer, name string) {
	fmt.Fprintf(w, "------------------  %s  ------------------\n\n", name)
}
