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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ZaparooProject/pathbuf/pkg/cli"
	"github.com/ZaparooProject/pathbuf/pkg/config"
	"github.com/ZaparooProject/pathbuf/pkg/helpers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags(flag.CommandLine)
	flag.Parse()

	if *flags.Version {
		_, _ = fmt.Printf("pathbuf v%s\n", config.AppVersion)
		return nil
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}
	if err := helpers.InitLogging(*flags.LogDir, *flags.Debug, writers); err != nil {
		return fmt.Errorf("failed to init logging: %w", err)
	}

	fs := afero.NewOsFs()
	cfg, err := flags.LoadConfig(fs)
	if err != nil {
		return err
	}

	if cfg.DebugLogging() && !*flags.Debug {
		if err := helpers.InitLogging(*flags.LogDir, true, writers); err != nil {
			return fmt.Errorf("failed to init logging: %w", err)
		}
	}

	if err := flags.Run(fs, cfg, os.Stdout); err != nil {
		log.Error().Err(err).Msg("failed to build export names")
		return err
	}
	return nil
}
