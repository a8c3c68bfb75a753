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

package pathbuf

import (
	"fmt"
	"strings"
)

// AppendExtension sets the extension of the file name at the end of the
// path. The scan runs backward from the end and stops at the nearest dot or
// separator: a dot found first marks an existing extension, which is
// overwritten; otherwise ".ext" is appended. A dot at the start of the path
// or inside a UNC volume prefix never counts as an extension.
//
//	"/path/to/image.png" + "jpg" -> "/path/to/image.jpg"
//	"/path/to/image"     + "jpg" -> "/path/to/image.jpg"
//	"/path.d/image"      + "jpg" -> "/path.d/image.jpg"
func (b *Buffer) AppendExtension(ext string) int {
	s := "." + strings.TrimPrefix(ext, ".")
	end, ok := terminated(b.b)
	if !ok {
		b.truncated = true
		return len(s)
	}
	return b.writeAt(b.extensionStart(end), s)
}

// AppendThumbnailMarker rewrites the path into its thumbnail name,
// "name{marker}.{ext}". Unlike AppendExtension, the backward scan only stops
// at a dot, so a dot in a directory name is taken as the extension start
// when the file name has none.
//
//	"image.jpg" + "-thumb", "jpg" -> "image-thumb.jpg"
func (b *Buffer) AppendThumbnailMarker(marker, ext string) int {
	s := marker + "." + strings.TrimPrefix(ext, ".")
	end, ok := terminated(b.b)
	if !ok {
		b.truncated = true
		return len(s)
	}
	return b.writeAt(b.lastDot(end), s)
}

// AppendNumberedName appends a numbered segment such as "/img_%d.html".
// It never scans or replaces.
func (b *Buffer) AppendNumberedName(format string, n int) int {
	return b.appendString(fmt.Sprintf(format, n))
}

// AppendSegment appends a separator (if the path does not already end with
// one) followed by name.
func (b *Buffer) AppendSegment(name string) int {
	end := b.Len()
	if end > 0 && end < len(b.b) && !b.style.IsSeparator(b.b[end-1]) {
		name = string(b.style.Separator()) + name
	}
	return b.appendString(name)
}

// Extension returns the extension AppendExtension would replace, dot
// included, or "" if the file name has none.
func (b *Buffer) Extension() string {
	end := Length(b.b)
	return string(b.b[b.extensionStart(end):end])
}

// extensionStart returns where a new extension should be written for a path
// of length end.
func (b *Buffer) extensionStart(end int) int {
	floor := b.style.UNCPrefixLength(string(b.b[:end]))
	for i := end - 1; i > 0 && i > floor; i-- {
		c := b.b[i]
		if c == '.' {
			return i
		}
		if c == '/' || b.style.IsSeparator(c) {
			return end
		}
	}
	return end
}

// lastDot returns the position of the nearest dot before end, or end.
func (b *Buffer) lastDot(end int) int {
	floor := b.style.UNCPrefixLength(string(b.b[:end]))
	for i := end - 1; i > 0 && i > floor; i-- {
		if b.b[i] == '.' {
			return i
		}
	}
	return end
}
