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

package cli

import (
	"bytes"
	"flag"
	"io"
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/pathbuf/pkg/config"
	"github.com/ZaparooProject/pathbuf/pkg/pathbuf"
	testhelpers "github.com/ZaparooProject/pathbuf/pkg/testing/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runArgs(t *testing.T, fsh *testhelpers.FSHelper, args ...string) (string, error) {
	t.Helper()

	set := flag.NewFlagSet("pathbuf", flag.ContinueOnError)
	set.SetOutput(io.Discard)
	flags := SetupFlags(set)
	require.NoError(t, set.Parse(args))

	cfg, err := flags.LoadConfig(fsh.Fs)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	err = flags.Run(fsh.Fs, cfg, &out)
	return out.String(), err
}

func TestRunPosix(t *testing.T) {
	t.Parallel()

	out, err := runArgs(t, testhelpers.NewMemoryFS(),
		"-dir", "/export/gallery", "-name", "img_0007.nef", "-page", "42", "-style", "posix")
	require.NoError(t, err)
	assert.Equal(t,
		"image: /export/gallery/img_0007.jpg\n"+
			"thumbnail: /export/gallery/img_0007-thumb.jpg\n"+
			"page: /export/gallery/img_42.html\n",
		out)
}

func TestRunWindowsUNC(t *testing.T) {
	t.Parallel()

	out, err := runArgs(t, testhelpers.NewMemoryFS(),
		"-dir", `\\server\share\directory`, "-name", "photo", "-ext", "png", "-style", "windows")
	require.NoError(t, err)
	assert.Contains(t, out, `image: \\server\share\directory\photo.png`)
	assert.Contains(t, out, `thumbnail: \\server\share\directory\photo-thumb.png`)
}

func TestRunMissingArgs(t *testing.T) {
	t.Parallel()

	_, err := runArgs(t, testhelpers.NewMemoryFS(), "-dir", "/export")
	require.ErrorIs(t, err, ErrMissingArgs)
}

func TestRunTruncated(t *testing.T) {
	t.Parallel()

	_, err := runArgs(t, testhelpers.NewMemoryFS(),
		"-dir", "/export/gallery", "-name", "a_rather_long_name", "-style", "posix", "-capacity", "20")
	require.ErrorIs(t, err, pathbuf.ErrTruncated)
}

func TestRunInvalidOverrides(t *testing.T) {
	t.Parallel()

	_, err := runArgs(t, testhelpers.NewMemoryFS(), "-dir", "/e", "-name", "x", "-style", "vms")
	require.Error(t, err)

	_, err = runArgs(t, testhelpers.NewMemoryFS(), "-dir", "/e", "-name", "x", "-capacity", "1")
	require.Error(t, err)
}

func TestRunUnique(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	require.NoError(t, fsh.CreateExportTree("/export", "photo.jpg", "photo_01.jpg"))

	out, err := runArgs(t, fsh, "-dir", "/export", "-name", "photo", "-style", "posix", "-unique")
	require.NoError(t, err)
	assert.Contains(t, out, "image: /export/photo_02.jpg\n")
	assert.Contains(t, out, "thumbnail: /export/photo_02-thumb.jpg\n")
}

func TestRunUsesConfigFile(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	vals := config.BaseDefaults
	vals.Paths.Style = "posix"
	vals.Export.PageFormat = "/page_%d.htm"
	vals.Export.DefaultExtension = "webp"
	vals.Export.ThumbnailMarker = "_t"
	require.NoError(t, fsh.CreateConfigFile(filepath.Join("/cfg", config.CfgFile), vals))

	out, err := runArgs(t, fsh, "-config", "/cfg", "-dir", "/out", "-name", "a.tif", "-page", "3")
	require.NoError(t, err)
	assert.Equal(t, "image: /out/a.webp\nthumbnail: /out/a_t.webp\npage: /out/page_3.htm\n", out)
}

func TestRunCreatesConfigFile(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	_, err := runArgs(t, fsh, "-config", "/cfg", "-dir", "/out", "-name", "a", "-style", "posix")
	require.NoError(t, err)
	assert.True(t, fsh.FileExists(filepath.Join("/cfg", config.CfgFile)))
}
