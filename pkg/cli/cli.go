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
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/ZaparooProject/pathbuf/pkg/config"
	"github.com/ZaparooProject/pathbuf/pkg/export"
	"github.com/ZaparooProject/pathbuf/pkg/pathbuf"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var ErrMissingArgs = errors.New("-dir and -name are required")

type Flags struct {
	Dir       *string
	Name      *string
	Ext       *string
	Style     *string
	ConfigDir *string
	LogDir    *string
	Page      *int
	Capacity  *int
	Unique    *bool
	Debug     *bool
	Version   *bool
	set       *flag.FlagSet
}

// SetupFlags defines all CLI flags on fs.
func SetupFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		set: fs,
		Dir: fs.String(
			"dir",
			"",
			"export directory",
		),
		Name: fs.String(
			"name",
			"",
			"source file name of the exported image",
		),
		Ext: fs.String(
			"ext",
			"",
			"output extension (default from config)",
		),
		Page: fs.Int(
			"page",
			1,
			"page number of the image in the gallery",
		),
		Style: fs.String(
			"style",
			"",
			"path style: native, posix or windows",
		),
		Capacity: fs.Int(
			"capacity",
			0,
			"path buffer capacity in bytes (default MaxPath of the style)",
		),
		ConfigDir: fs.String(
			"config",
			"",
			"directory holding "+config.CfgFile+" (defaults only when empty)",
		),
		LogDir: fs.String(
			"logdir",
			"",
			"write a rotating log file to this directory",
		),
		Unique: fs.Bool(
			"unique",
			false,
			"number the image name until it does not exist on disk",
		),
		Debug: fs.Bool(
			"debug",
			false,
			"enable debug logging",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
}

func (f *Flags) isFlagPassed(name string) bool {
	found := false
	f.set.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// LoadConfig reads the config from the -config directory on fs and applies
// any flag overrides. Without -config the defaults live in memory only.
func (f *Flags) LoadConfig(fs afero.Fs) (*config.Instance, error) {
	cfgFs, cfgDir := fs, *f.ConfigDir
	if cfgDir == "" {
		cfgFs, cfgDir = afero.NewMemMapFs(), "/"
	}

	cfg, err := config.NewConfig(cfgFs, cfgDir, config.BaseDefaults)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if f.isFlagPassed("style") {
		if err := cfg.SetPathStyle(*f.Style); err != nil {
			return nil, err
		}
	}
	if f.isFlagPassed("capacity") {
		if err := cfg.SetCapacity(*f.Capacity); err != nil {
			return nil, err
		}
	}
	if *f.Debug {
		cfg.SetDebugLogging(true)
	}

	return cfg, nil
}

// NamerOptions converts config values into export options.
func NamerOptions(cfg *config.Instance) (export.Options, error) {
	style, err := pathbuf.ParseStyle(cfg.PathStyle())
	if err != nil {
		return export.Options{}, fmt.Errorf("invalid path style: %w", err)
	}
	return export.Options{
		Style:            style,
		Capacity:         cfg.Capacity(),
		ThumbnailMarker:  cfg.ThumbnailMarker(),
		PageFormat:       cfg.PageFormat(),
		DefaultExtension: cfg.DefaultExtension(),
	}, nil
}

// Run prints the export names for the flags already parsed into f.
func (f *Flags) Run(fs afero.Fs, cfg *config.Instance, out io.Writer) error {
	if *f.Dir == "" || *f.Name == "" {
		return ErrMissingArgs
	}

	opts, err := NamerOptions(cfg)
	if err != nil {
		return err
	}
	namer := export.NewNamer(opts)

	image, err := namer.ImagePath(*f.Dir, *f.Name, *f.Ext)
	if err != nil {
		return fmt.Errorf("failed to build image path: %w", err)
	}

	if *f.Unique {
		image, err = namer.UniquePath(fs, image)
		if err != nil {
			return fmt.Errorf("failed to find unique image path: %w", err)
		}
	}

	thumb, err := namer.ThumbnailPath(image, *f.Ext)
	if err != nil {
		return fmt.Errorf("failed to build thumbnail path: %w", err)
	}

	page, err := namer.PagePath(*f.Dir, *f.Page)
	if err != nil {
		return fmt.Errorf("failed to build page path: %w", err)
	}

	log.Debug().
		Str("style", opts.Style.Name()).
		Int("capacity", opts.Capacity).
		Str("image", image).
		Msg("export names built")

	_, err = fmt.Fprintf(out, "image: %s\nthumbnail: %s\npage: %s\n", image, thumb, page)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
