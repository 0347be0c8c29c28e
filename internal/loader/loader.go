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
package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ostafen/growtable/pkg/table"
)

// ParseFunc turns the key field of an input line into a key.
type ParseFunc[K any] func(field string) (K, error)

func ParseInt(field string) (int, error) {
	return strconv.Atoi(field)
}

func ParseString(field string) (string, error) {
	return field, nil
}

type Stats struct {
	Lines    int
	Inserted int
	Updated  int
}

// Options tune a Load. Progress, when set, is called after every line
// with the number of bytes consumed so far.
type Options struct {
	Progress func(processed uint64)
}

// Load inserts every "key value" line of data into tb. Blank lines and lines
// starting with '#' are skipped. The value is the remainder of the line after
// the key, possibly empty.
//
// Loading stops at the first line that fails to parse or insert. Entries
// inserted before it stay in the table.
func Load[K any](tb *table.Table[K, *string], data []byte, parse ParseFunc[K], opts Options) (Stats, error) {
	var stats Stats

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)

	var processed uint64
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		processed += uint64(len(line)) + 1

		if err := loadLine(tb, line, parse, &stats); err != nil {
			return stats, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if opts.Progress != nil {
			opts.Progress(min(processed, uint64(len(data))))
		}
	}
	return stats, sc.Err()
}

func loadLine[K any](tb *table.Table[K, *string], line string, parse ParseFunc[K], stats *Stats) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	stats.Lines++

	field, rest, _ := strings.Cut(line, " ")
	key, err := parse(field)
	if err != nil {
		return fmt.Errorf("invalid key %q: %w", field, err)
	}

	value := strings.TrimSpace(rest)

	before := tb.Len()
	if err := tb.Insert(key, &value); err != nil {
		return err
	}
	if tb.Len() > before {
		stats.Inserted++
	} else {
		stats.Updated++
	}
	return nil
}
