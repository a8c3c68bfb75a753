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

// Package export derives the file names of a gallery export: the exported
// image, its thumbnail and its numbered page. All names are built in bounded
// path buffers; a name that does not fit is reported as pathbuf.ErrTruncated
// instead of being returned cut short.
package export

import (
	"errors"
	"fmt"

	"github.com/ZaparooProject/pathbuf/pkg/pathbuf"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	DefaultThumbnailMarker = "-thumb"
	DefaultPageFormat      = "/img_%d.html"
	DefaultExtension       = "jpg"
	// MaxUniqueSuffix is the highest "_NN" suffix UniquePath tries.
	MaxUniqueSuffix = 99
)

// ErrNoUniqueName is returned when every numbered candidate already exists.
var ErrNoUniqueName = errors.New("no unique file name available")

type Options struct {
	Style            pathbuf.Style
	ThumbnailMarker  string
	PageFormat       string
	DefaultExtension string
	Capacity         int
}

// Names holds every path derived for one exported image.
type Names struct {
	Image     string
	Thumbnail string
	Page      string
}

type Namer struct {
	opts Options
}

// NewNamer fills unset options with defaults. Capacity defaults to the
// MaxPath of the style.
//
//nolint:gocritic // options struct copied on purpose
func NewNamer(opts Options) *Namer {
	if opts.Style == nil {
		opts.Style = pathbuf.Native()
	}
	if opts.Capacity <= 0 {
		opts.Capacity = opts.Style.MaxPath()
	}
	if opts.ThumbnailMarker == "" {
		opts.ThumbnailMarker = DefaultThumbnailMarker
	}
	if opts.PageFormat == "" {
		opts.PageFormat = DefaultPageFormat
	}
	if opts.DefaultExtension == "" {
		opts.DefaultExtension = DefaultExtension
	}
	return &Namer{opts: opts}
}

func (n *Namer) Options() Options {
	return n.opts
}

func (n *Namer) buffer(prefix string) (*pathbuf.Buffer, error) {
	b := pathbuf.NewString(n.opts.Capacity, prefix, pathbuf.WithStyle(n.opts.Style))
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("prefix does not fit in %d bytes: %w", n.opts.Capacity, err)
	}
	return b, nil
}

func (n *Namer) ext(ext string) string {
	if ext == "" {
		return n.opts.DefaultExtension
	}
	return ext
}

// ImagePath joins dir and name and sets the extension of the result.
func (n *Namer) ImagePath(dir, name, ext string) (string, error) {
	b, err := n.buffer(dir)
	if err != nil {
		return "", fmt.Errorf("image path: %w", err)
	}

	b.AppendSegment(name)
	if err := b.Err(); err != nil {
		return "", fmt.Errorf("image path for %q: %w", name, err)
	}

	b.AppendExtension(n.ext(ext))
	if err := b.Err(); err != nil {
		return "", fmt.Errorf("image path for %q: %w", name, err)
	}

	return b.String(), nil
}

// ThumbnailPath returns the thumbnail name of filename.
func (n *Namer) ThumbnailPath(filename, ext string) (string, error) {
	b, err := n.buffer(filename)
	if err != nil {
		return "", fmt.Errorf("thumbnail path: %w", err)
	}

	b.AppendThumbnailMarker(n.opts.ThumbnailMarker, n.ext(ext))
	if err := b.Err(); err != nil {
		return "", fmt.Errorf("thumbnail path for %q: %w", filename, err)
	}

	return b.String(), nil
}

// PagePath returns the numbered page of an image inside dir.
func (n *Namer) PagePath(dir string, num int) (string, error) {
	b, err := n.buffer(dir)
	if err != nil {
		return "", fmt.Errorf("page path: %w", err)
	}

	b.AppendNumberedName(n.opts.PageFormat, num)
	if err := b.Err(); err != nil {
		return "", fmt.Errorf("page path %d: %w", num, err)
	}

	return b.String(), nil
}

// Plan derives all names for the num-th image of an export into dir.
func (n *Namer) Plan(dir, name string, num int) (Names, error) {
	image, err := n.ImagePath(dir, name, "")
	if err != nil {
		return Names{}, err
	}

	thumb, err := n.ThumbnailPath(image, "")
	if err != nil {
		return Names{}, err
	}

	page, err := n.PagePath(dir, num)
	if err != nil {
		return Names{}, err
	}

	log.Debug().
		Str("image", image).
		Str("thumbnail", thumb).
		Str("page", page).
		Msg("planned export names")

	return Names{Image: image, Thumbnail: thumb, Page: page}, nil
}

// UniquePath returns path if nothing exists there yet. Otherwise it inserts
// "_01", "_02", ... before the extension and returns the first candidate
// that does not exist on fs. The filesystem is only read.
func (n *Namer) UniquePath(fs afero.Fs, path string) (string, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to check %q: %w", path, err)
	}
	if !exists {
		return path, nil
	}

	b, err := n.buffer(path)
	if err != nil {
		return "", fmt.Errorf("unique path: %w", err)
	}
	ext := b.Extension()
	stem := b.String()
	stem = stem[:len(stem)-len(ext)]

	for i := 1; i <= MaxUniqueSuffix; i++ {
		b.Set(stem)
		b.AppendNumberedName("_%02d", i)
		if err := b.Err(); err != nil {
			return "", fmt.Errorf("unique path for %q: %w", path, err)
		}
		b.Appendf("%s", ext)
		if err := b.Err(); err != nil {
			return "", fmt.Errorf("unique path for %q: %w", path, err)
		}

		candidate := b.String()
		exists, err := afero.Exists(fs, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		log.Debug().Str("path", candidate).Msg("export name taken")
	}

	return "", fmt.Errorf("%w: %s", ErrNoUniqueName, path)
}
