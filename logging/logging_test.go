/*
 * logging_test.go, part of gopqr.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDedup(Te *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(NewDedupCore(obs, DuplicateLimit, Repeated...))
	child := l.Named(Protonate).With(zap.String("run", "1"))
	for i := 0; i < 40; i++ {
		child.Warn(fmt.Sprintf("Skipped atom during water optimization: HOH W%d has no hydrogens or no oxygen", i))
		l.Info(fmt.Sprintf("Skipped atom during water optimization: %d", i))
	}
	l.Warn("The best donor hydrogen was not picked in HIS A1")
	l.Warn("Unable to debump SER A2")

	water := logs.FilterLevelExact(zapcore.WarnLevel).FilterMessageSnippet("Skipped atom during water optimization: ").All()
	require.Len(Te, water, DuplicateLimit-1)
	assert.Contains(Te, water[28].Message, "W28")
	assert.Equal(Te, "1", water[0].ContextMap()["run"])
	notice := logs.FilterMessage("Suppressing further 'Skipped atom during water optimization' messages").All()
	require.Len(Te, notice, 1)
	assert.Equal(Te, zapcore.WarnLevel, notice[0].Level)
	//other levels are not counted
	assert.Equal(Te, 40, logs.FilterLevelExact(zapcore.InfoLevel).Len())
	assert.Equal(Te, 1, logs.FilterMessageSnippet("best donor").Len())
	assert.Equal(Te, 1, logs.FilterMessageSnippet("Unable to debump").Len())
}

func TestDedupLevel(Te *testing.T) {
	obs, logs := observer.New(zapcore.ErrorLevel)
	l := zap.New(NewDedupCore(obs, 2, Repeated...))
	l.Warn("The best donor hydrogen was not picked")
	l.Error("The best donor hydrogen was not picked")
	assert.Equal(Te, 1, logs.Len())
}

func TestConfig(Te *testing.T) {
	c := DefaultConfig()
	require.NoError(Te, c.Validate())
	assert.Equal(Te, 30, c.DuplicateLimit)
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"level", func(c *Config) { c.Level = "loud" }},
		{"format", func(c *Config) { c.Format = "xml" }},
		{"limit", func(c *Config) { c.DuplicateLimit = -1 }},
	}
	for _, tt := range tests {
		Te.Run(tt.name, func(Te *testing.T) {
			c := DefaultConfig()
			tt.edit(&c)
			assert.Error(Te, c.Validate())
			_, err := New(c)
			assert.Error(Te, err)
		})
	}
	c.Output = []string{"stdout"}
	c.Format = "json"
	l, err := New(c)
	require.NoError(Te, err)
	assert.NotNil(Te, l)
	assert.False(Te, l.Core().Enabled(zapcore.InfoLevel))
}
