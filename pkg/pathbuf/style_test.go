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
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUNCPrefixLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		windows int
	}{
		{name: "server_and_share", path: `\\server\share`, windows: len(`\\server\share`)},
		{name: "with_directory", path: `\\server\share\directory`, windows: len(`\\server\share`)},
		{name: "forward_slashes", path: `//server/share/dir`, windows: len(`//server/share`)},
		{name: "server_only", path: `\\server`, windows: len(`\\server`)},
		{name: "server_trailing_separator", path: `\\server\`, windows: len(`\\server\`)},
		{name: "triple_separator", path: `\\\server`, windows: 0},
		{name: "two_separators_only", path: `\\`, windows: 0},
		{name: "drive", path: `C:\Users`, windows: 0},
		{name: "absolute", path: "/home/user", windows: 0},
		{name: "empty", path: "", windows: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.windows, Windows.UNCPrefixLength(tt.path))
			assert.Equal(t, 0, POSIX.UNCPrefixLength(tt.path))
		})
	}
}

func TestSeparators(t *testing.T) {
	t.Parallel()

	assert.True(t, POSIX.IsSeparator('/'))
	assert.False(t, POSIX.IsSeparator('\\'))
	assert.Equal(t, byte('/'), POSIX.Separator())
	assert.Equal(t, PosixPathMax, POSIX.MaxPath())

	assert.True(t, Windows.IsSeparator('/'))
	assert.True(t, Windows.IsSeparator('\\'))
	assert.False(t, Windows.IsSeparator(':'))
	assert.Equal(t, byte('\\'), Windows.Separator())
	assert.Equal(t, WindowsMaxPath, Windows.MaxPath())
}

func TestParseStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expected Style
		name     string
		input    string
		wantErr  bool
	}{
		{name: "posix", input: "posix", expected: POSIX},
		{name: "windows_upper", input: " WINDOWS ", expected: Windows},
		{name: "native", input: "native", expected: Native()},
		{name: "empty_is_native", input: "", expected: Native()},
		{name: "unknown", input: "plan9", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseStyle(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "plan9")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.Name(), got.Name())
		})
	}
}

func TestNativeStyle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Windows, styleFor("windows"))
	assert.Equal(t, POSIX, styleFor("linux"))
	assert.Equal(t, POSIX, styleFor("darwin"))

	if runtime.GOOS == "windows" {
		assert.Equal(t, StyleWindows, Native().Name())
	} else {
		assert.Equal(t, StylePOSIX, Native().Name())
	}
}
