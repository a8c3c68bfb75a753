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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/pathbuf/pkg/helpers/syncutil"
	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	SchemaVersion = 1
	CfgEnv        = "PATHBUF_CFG"
)

type Values struct {
	Paths        Paths  `toml:"paths"`
	Export       Export `toml:"export"`
	ConfigSchema int    `toml:"config_schema"`
	DebugLogging bool   `toml:"debug_logging"`
}

// Paths selects the path conventions and buffer size. A zero Capacity means
// the MaxPath of the style.
type Paths struct {
	Style    string `toml:"style" validate:"omitempty,oneof=native posix windows"`
	Capacity int    `toml:"capacity,omitempty" validate:"omitempty,min=2,max=65536"`
}

type Export struct {
	ThumbnailMarker  string `toml:"thumbnail_marker,omitempty" validate:"omitempty,max=32,excludesall=/\\"`
	PageFormat       string `toml:"page_format,omitempty" validate:"omitempty,pageformat"`
	DefaultExtension string `toml:"default_extension,omitempty" validate:"omitempty,alphanum,max=16"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Paths: Paths{
		Style: "native",
	},
	Export: Export{
		ThumbnailMarker:  "-thumb",
		PageFormat:       "/img_%d.html",
		DefaultExtension: "jpg",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("pageformat", validatePageFormat)
	return v
}

// validatePageFormat accepts formats with exactly one verb, which must be %d.
func validatePageFormat(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return strings.Count(s, "%") == 1 && strings.Count(s, "%d") == 1
}

// Validate checks config values loaded from disk or set by flags.
//
//nolint:gocritic // config struct copied for immutability
func Validate(vals Values) error {
	if err := validate.Struct(vals); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

type Instance struct {
	fs       afero.Fs
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig loads the config file from configDir, or the path in CfgEnv if
// set. A missing file is created from defaults first.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(fs afero.Fs, configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		fs:       fs,
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	exists, err := afero.Exists(fs, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !exists {
		log.Info().Msg("saving new default config to disk")

		err := fs.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err = cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	if err := Validate(newVals); err != nil {
		return err
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(c.fs, c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) Path() string {
	return c.cfgPath
}

// Values returns a copy of the current values.
func (c *Instance) Values() Values {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

func (c *Instance) PathStyle() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Paths.Style
}

// SetPathStyle validates and sets the path style name.
func (c *Instance) SetPathStyle(style string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.vals
	next.Paths.Style = strings.ToLower(strings.TrimSpace(style))
	if err := Validate(next); err != nil {
		return err
	}
	c.vals = next
	return nil
}

func (c *Instance) Capacity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Paths.Capacity
}

// SetCapacity validates and sets the path buffer capacity.
func (c *Instance) SetCapacity(capacity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.vals
	next.Paths.Capacity = capacity
	if err := Validate(next); err != nil {
		return err
	}
	c.vals = next
	return nil
}

func (c *Instance) ThumbnailMarker() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Export.ThumbnailMarker
}

func (c *Instance) PageFormat() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Export.PageFormat
}

func (c *Instance) DefaultExtension() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Export.DefaultExtension
}
