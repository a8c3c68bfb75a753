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
	"runtime"
	"strings"
)

const (
	// PosixPathMax matches PATH_MAX on Linux.
	PosixPathMax = 4096
	// WindowsMaxPath matches MAX_PATH on Windows.
	WindowsMaxPath = 260
)

const (
	StyleNative  = "native"
	StylePOSIX   = "posix"
	StyleWindows = "windows"
)

// Style describes the path conventions a Buffer scans with. Styles are
// plain values so both conventions can be exercised from the same binary.
type Style interface {
	// Name returns the config name of the style.
	Name() string
	// Separator returns the preferred separator appended between segments.
	Separator() byte
	// IsSeparator reports whether c ends a path segment.
	IsSeparator(c byte) bool
	// UNCPrefixLength returns the length of the \\server\share volume
	// prefix of path, or 0 if path has none.
	UNCPrefixLength(path string) int
	// MaxPath is the capacity callers should size path buffers to.
	MaxPath() int
}

type posixStyle struct{}

func (posixStyle) Name() string { return StylePOSIX }
func (posixStyle) Separator() byte { return '/' }
func (posixStyle) IsSeparator(c byte) bool { return c == '/' }
func (posixStyle) UNCPrefixLength(string) int { return 0 }
func (posixStyle) MaxPath() int { return PosixPathMax }

type windowsStyle struct{}

func (windowsStyle) Name() string { return StyleWindows }
func (windowsStyle) Separator() byte { return '\\' }
func (windowsStyle) IsSeparator(c byte) bool { return c == '\\' || c == '/' }
func (windowsStyle) MaxPath() int { return WindowsMaxPath }

// UNCPrefixLength measures "\\server\share": two leading separators, a
// server name, then a share name. Either separator may be used.
func (s windowsStyle) UNCPrefixLength(path string) int {
	if len(path) < 3 || !s.IsSeparator(path[0]) || !s.IsSeparator(path[1]) || s.IsSeparator(path[2]) {
		return 0
	}

	// server
	n := 3
	for n < len(path) && !s.IsSeparator(path[n]) {
		n++
	}
	if n >= len(path) {
		return n
	}

	// share
	n++
	for n < len(path) && !s.IsSeparator(path[n]) {
		n++
	}
	return n
}

var (
	// POSIX treats only '/' as a separator; backslash is an ordinary
	// character and "//server/share" is a regular path.
	POSIX Style = posixStyle{}
	// Windows accepts both separators and recognises UNC prefixes.
	Windows Style = windowsStyle{}
)

// Native returns the style of the running platform.
func Native() Style {
	return styleFor(runtime.GOOS)
}

func styleFor(goos string) Style {
	if goos == "windows" {
		return Windows
	}
	return POSIX
}

// ParseStyle returns the style matching a config name.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StyleNative:
		return Native(), nil
	case StylePOSIX:
		return POSIX, nil
	case StyleWindows:
		return Windows, nil
	default:
		return nil, fmt.Errorf("unknown path style: %q", name)
	}
}
