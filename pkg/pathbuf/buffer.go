// Zaparoo Core
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Core.
//
// Zaparoo Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Core.  If not, see <http://www.gnu.org/licenses/>.

// Package pathbuf builds file paths inside fixed-capacity, NUL-terminated
// byte buffers. Every write follows the snprintf contract: output that does
// not fit is truncated, the buffer always stays terminated within its
// capacity, and the returned length is what would have been written.
package pathbuf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrTruncated reports that a fragment did not fit in the buffer.
var ErrTruncated = errors.New("path truncated")

// Length returns the index of the first NUL byte in buf, or len(buf) if buf
// is not terminated.
func Length(buf []byte) int {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return i
	}
	return len(buf)
}

// Remaining returns how many bytes, terminator included, can still be
// written after the current end of the string in buf. A buffer without a
// terminator is corrupt and has no remaining capacity.
func Remaining(buf []byte) int {
	end, ok := terminated(buf)
	if !ok {
		return 0
	}
	return len(buf) - end
}

// Appendf formats according to format and writes the result at the current
// end of the string in buf. It returns the length of the formatted text, not
// the number of bytes stored; a result >= the remaining capacity before the
// call means the output was truncated.
func Appendf(buf []byte, format string, args ...any) int {
	s := fmt.Sprintf(format, args...)
	end, ok := terminated(buf)
	if !ok {
		return len(s)
	}
	return writeString(buf[end:], s)
}

// Check converts the result of a write into an error. written is the value
// returned by the write and remaining the capacity available to it.
func Check(written, remaining int) error {
	if written >= remaining {
		return fmt.Errorf("%w: needed %d bytes, %d available", ErrTruncated, written+1, remaining)
	}
	return nil
}

// terminated returns the string length of buf and whether buf holds a
// terminator at all. Corrupt buffers are logged once per call.
func terminated(buf []byte) (int, bool) {
	end := Length(buf)
	if end >= len(buf) {
		log.Warn().
			Int("capacity", len(buf)).
			Msg("path buffer has no terminator, clamping remaining capacity to zero")
		return end, false
	}
	return end, true
}

// writeString copies as much of s as fits into dst, leaving room for and
// writing a terminator. An empty dst is left untouched.
func writeString(dst []byte, s string) int {
	if len(dst) == 0 {
		return len(s)
	}
	n := copy(dst[:len(dst)-1], s)
	dst[n] = 0
	return len(s)
}

// Buffer is a path buffer of fixed capacity. The zero value has no capacity;
// use New or NewString.
//
// A Buffer is not safe for concurrent use. Give each goroutine its own.
type Buffer struct {
	style     Style
	b         []byte
	truncated bool
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithStyle sets the path conventions used by the backward scans.
func WithStyle(s Style) Option {
	return func(b *Buffer) {
		if s != nil {
			b.style = s
		}
	}
}

// New returns an empty buffer holding at most capacity-1 path bytes.
func New(capacity int, opts ...Option) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	b := &Buffer{
		b:     make([]byte, capacity),
		style: Native(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewString returns a buffer initialised with prefix, truncated if needed.
func NewString(capacity int, prefix string, opts ...Option) *Buffer {
	b := New(capacity, opts...)
	b.Set(prefix)
	return b
}

// Set replaces the contents of the buffer with s.
func (b *Buffer) Set(s string) int {
	return b.writeAt(0, s)
}

// Appendf is the bounded append: it writes the formatted fragment at the
// end of the current path.
func (b *Buffer) Appendf(format string, args ...any) int {
	return b.appendString(fmt.Sprintf(format, args...))
}

// Remaining returns the capacity left after the current path.
func (b *Buffer) Remaining() int {
	return Remaining(b.b)
}

// Len returns the length of the current path.
func (b *Buffer) Len() int {
	return Length(b.b)
}

// Cap returns the fixed capacity, terminator included.
func (b *Buffer) Cap() int {
	return len(b.b)
}

// Style returns the path conventions of the buffer.
func (b *Buffer) Style() Style {
	return b.style
}

// Valid reports whether the buffer is terminated within its capacity.
func (b *Buffer) Valid() bool {
	return Length(b.b) < len(b.b)
}

// Truncated reports whether the last write did not fit.
func (b *Buffer) Truncated() bool {
	return b.truncated
}

// Err returns a wrapped ErrTruncated if the last write did not fit.
func (b *Buffer) Err() error {
	if b.truncated {
		return fmt.Errorf("%w: %q", ErrTruncated, b.String())
	}
	return nil
}

// String returns the current path.
func (b *Buffer) String() string {
	return string(b.b[:Length(b.b)])
}

// Raw returns the backing storage, terminator and any bytes past it
// included. Writing to it can corrupt the buffer.
func (b *Buffer) Raw() []byte {
	return b.b
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	clear(b.b)
	b.truncated = false
}

func (b *Buffer) appendString(s string) int {
	end, ok := terminated(b.b)
	if !ok {
		b.truncated = true
		return len(s)
	}
	return b.writeAt(end, s)
}

func (b *Buffer) writeAt(pos int, s string) int {
	avail := len(b.b) - pos
	n := writeString(b.b[pos:], s)
	b.truncated = n >= avail
	return n
}
