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
package pbar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ostafen/growtable/pkg/util/format"
)

const MinRefreshRate = time.Millisecond * 500

const barLength = 20

// LoadState tracks the progress of loading an input of known size into a table.
type LoadState struct {
	Out io.Writer

	TotalBytes     uint64
	ProcessedBytes uint64
	Entries        int
	Capacity       int

	StartTime      time.Time
	LastUpdateTime time.Time

	now func() time.Time
}

func NewLoadState(out io.Writer, totalBytes uint64) *LoadState {
	return &LoadState{
		Out:        out,
		TotalBytes: totalBytes,
		StartTime:  time.Now(),
		now:        time.Now,
	}
}

// Update records the latest counters and renders at most once per MinRefreshRate.
func (s *LoadState) Update(processed uint64, entries, capacity int) {
	s.ProcessedBytes = processed
	s.Entries = entries
	s.Capacity = capacity
	s.Render(false)
}

func (s *LoadState) Render(force bool) {
	now := s.now()
	if !force && now.Sub(s.LastUpdateTime) < MinRefreshRate {
		return
	}
	s.LastUpdateTime = now

	percentage := 100.0
	if s.TotalBytes > 0 {
		percentage = min(float64(s.ProcessedBytes)/float64(s.TotalBytes)*100, 100)
	}

	filledLen := int(float64(barLength) * percentage / 100)
	bar := strings.Repeat("=", filledLen)
	if filledLen < barLength {
		bar += ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	elapsed := now.Sub(s.StartTime).Round(time.Second)

	// \r rewinds to the start of the line; trailing spaces clear leftovers
	fmt.Fprintf(s.Out, "\r[INFO] Loading: [%s] %3.0f%% (%s/%s) | Entries: %d | Capacity: %d | %s    ",
		bar,
		percentage,
		format.FormatBytes(s.ProcessedBytes),
		format.FormatBytes(s.TotalBytes),
		s.Entries,
		s.Capacity,
		elapsed)
}

// Finish renders the final state and moves to the next line.
func (s *LoadState) Finish() {
	s.Render(true)
	fmt.Fprintln(s.Out)
}
