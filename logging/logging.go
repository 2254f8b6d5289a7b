/*
 * logging.go, part of gopqr.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//Config sets up the logger.
type Config struct {
	Level          string   `mapstructure:"level"`           //debug, info, warn or error
	Format         string   `mapstructure:"format"`          //console or json
	Output         []string `mapstructure:"output"`          //paths, or stdout/stderr
	DuplicateLimit int      `mapstructure:"duplicate_limit"` //0 disables the suppression of repeated warnings
}

//DefaultConfig logs warnings and above to the standard error, and suppresses
//repeated warnings after the 30th.
func DefaultConfig() Config {
	return Config{Level: "warn", Format: "console", Output: []string{"stderr"}, DuplicateLimit: DuplicateLimit}
}

//Validate checks that the level and the format are known.
func (C Config) Validate() error {
	if _, err := zapcore.ParseLevel(C.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if C.Format != "console" && C.Format != "json" {
		return fmt.Errorf("logging: unknown format %q", C.Format)
	}
	if C.DuplicateLimit < 0 {
		return fmt.Errorf("logging: negative duplicate limit %d", C.DuplicateLimit)
	}
	return nil
}

//New builds a zap logger from cfg. Repeated warnings are suppressed
//as NewDedupCore does, unless cfg.DuplicateLimit is 0.
func New(cfg Config) (*zap.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := zapcore.ParseLevel(cfg.Level)
	out := cfg.Output
	if len(out) == 0 {
		out = []string{"stderr"}
	}
	var enc zapcore.EncoderConfig
	if cfg.Format == "console" {
		enc = zap.NewDevelopmentEncoderConfig()
	} else {
		enc = zap.NewProductionEncoderConfig()
	}
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	zc := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         cfg.Format,
		EncoderConfig:    enc,
		OutputPaths:      out,
		ErrorOutputPaths: []string{"stderr"},
	}
	var opts []zap.Option
	if cfg.DuplicateLimit > 0 {
		opts = append(opts, zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return NewDedupCore(c, cfg.DuplicateLimit, Repeated...)
		}))
	}
	l, err := zc.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("logging: building logger: %w", err)
	}
	return l, nil
}

//Names of the engine packages, for Named loggers.
const (
	Rebuild   = "rebuild"
	Clash     = "clash"
	Protonate = "protonate"
	Charges   = "charges"
	Prepare   = "prepare"
)

//Repeated are the beginnings of the warnings that can be given once per
//residue and are suppressed after a while.
var Repeated = []string{
	"Skipped atom during water optimization",
	"The best donor hydrogen was not picked",
}

//matching returns the prefix in prefixes that msg starts with, or "".
func matching(msg string, prefixes []string) string {
	for _, p := range prefixes {
		if strings.HasPrefix(msg, p) {
			return p
		}
	}
	return ""
}
