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
package logger

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ostafen/growtable/pkg/table"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	// OffLevel disables every message.
	OffLevel
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "OFF"}

// ParseLevel accepts level names in any case.
func ParseLevel(level string) (Level, error) {
	for l, name := range levelNames {
		if strings.EqualFold(level, name) {
			return Level(l), nil
		}
	}
	return InfoLevel, fmt.Errorf("unknown log level %q", level)
}

func (l Level) String() string {
	if l < DebugLevel || l > OffLevel {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Logger writes leveled, line-oriented messages. It is safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

func New(w io.Writer, level Level) *Logger {
	return &Logger{
		out:   w,
		level: level,
	}
}

// Discard returns a logger that drops every message.
func Discard() *Logger {
	return New(io.Discard, OffLevel)
}

func (l *Logger) Enabled(level Level) bool {
	return level >= l.level && l.level < OffLevel
}

func (l *Logger) log(level Level, msg string) {
	if !l.Enabled(level) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.out, "[%s] %s\n", level, msg)
}

func (l *Logger) Debug(msg string) { l.log(DebugLevel, msg) }
func (l *Logger) Info(msg string)  { l.log(InfoLevel, msg) }
func (l *Logger) Warn(msg string)  { l.log(WarnLevel, msg) }
func (l *Logger) Error(msg string) { l.log(ErrorLevel, msg) }

func (l *Logger) Debugf(format string, args ...any) { l.log(DebugLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)  { l.log(InfoLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(WarnLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any) { l.log(ErrorLevel, fmt.Sprintf(format, args...)) }

// Report implements table.Reporter. Out of memory conditions are logged as
// errors, argument misuse as warnings.
func (l *Logger) Report(op string, err error) {
	level := WarnLevel
	if errors.Is(err, table.ErrOutOfMemory) {
		level = ErrorLevel
	}

	kind := table.Kind(err)
	if kind == "" {
		l.log(level, fmt.Sprintf("%s: %v", op, err))
		return
	}
	l.log(level, fmt.Sprintf("%s: %s: %v", op, kind, err))
}
