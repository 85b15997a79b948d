// This file is part of probe-rs.
//
// probe-rs is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// probe-rs is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with probe-rs.  If not, see <https://www.gnu.org/licenses/>.

// Package logger is a small, bounded, in-memory log rather than a
// straight-to-stderr logger. Entries accumulate in a ring up to a fixed
// capacity and a caller can Write() the whole thing, or Tail() the most
// recent N entries, to any io.Writer — typically a debugger UI panel
// rather than a terminal.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Permission gates whether a Log/Logf call is actually recorded. Callers
// that want a tag silenced under some condition (e.g. a noisy decode
// retry while a register is being polled at high frequency) pass a
// Permission whose AllowLogging reports false.
type Permission interface {
	AllowLogging() bool
}

type allowAll struct{}

func (allowAll) AllowLogging() bool { return true }

// Allow is the Permission that always allows logging.
var Allow Permission = allowAll{}

// entry is one recorded log line.
type entry struct {
	tag    string
	detail string
}

func (e entry) String() string {
	return fmt.Sprintf("%s: %s\n", e.tag, e.detail)
}

// Logger is a capacity-bounded ring of log entries. The zero value is not
// usable; construct one with NewLogger.
type Logger struct {
	mu       sync.Mutex
	capacity int
	entries  []entry
}

// NewLogger returns a Logger that retains at most capacity entries,
// discarding the oldest once that capacity is exceeded.
func NewLogger(capacity int) *Logger {
	return &Logger{capacity: capacity}
}

// detailString renders a Log() detail argument: errors use Error(),
// fmt.Stringer values use String(), anything else is formatted with %v.
func detailString(detail interface{}) string {
	switch d := detail.(type) {
	case error:
		return d.Error()
	case fmt.Stringer:
		return d.String()
	case string:
		return d
	default:
		return fmt.Sprintf("%v", d)
	}
}

// Log records tag/detail if perm allows it.
func (l *Logger) Log(perm Permission, tag string, detail interface{}) {
	if perm == nil || !perm.AllowLogging() {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry{tag: tag, detail: detailString(detail)})
	if l.capacity > 0 && len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Logf is Log with fmt.Sprintf-style formatting of the detail.
func (l *Logger) Logf(perm Permission, tag string, format string, args ...interface{}) {
	l.Log(perm, tag, fmt.Sprintf(format, args...))
}

// Write writes every retained entry, oldest first, to w.
func (l *Logger) Write(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var s strings.Builder
	for _, e := range l.entries {
		s.WriteString(e.String())
	}
	io.WriteString(w, s.String())
}

// Tail writes the most recent n entries, oldest first, to w. Asking for
// more entries than are retained is not an error; Tail simply writes
// everything it has.
func (l *Logger) Tail(w io.Writer, n int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}

	var s strings.Builder
	for _, e := range l.entries[len(l.entries)-n:] {
		s.WriteString(e.String())
	}
	io.WriteString(w, s.String())
}

// Clear discards every retained entry.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// def is the package-level Logger used by the convenience functions
// below, for callers that don't need a private ring (most of this
// module's diagnostic logging).
var def = NewLogger(1000)

// Log records tag/detail on the package-level default Logger.
func Log(tag string, detail interface{}) { def.Log(Allow, tag, detail) }

// Logf is Log with fmt.Sprintf-style formatting of the detail.
func Logf(tag string, format string, args ...interface{}) { def.Logf(Allow, tag, format, args...) }

// Write writes the package-level default Logger's entries to w.
func Write(w io.Writer) { def.Write(w) }

// Tail writes the package-level default Logger's most recent n entries
// to w.
func Tail(w io.Writer, n int) { def.Tail(w, n) }

// Clear discards the package-level default Logger's entries.
func Clear() { def.Clear() }
