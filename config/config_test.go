/*
 * config_test.go, part of gopqr.
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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(Te *testing.T) {
	c, err := New(viper.New())
	require.NoError(Te, err)
	d := Default()
	d.Protonate.PH = d.PH
	assert.Equal(Te, d, c)
	assert.Equal(Te, 1.0, c.Clash.Tolerance)
	assert.Equal(Te, 30, c.Log.DuplicateLimit)
	assert.Equal(Te, 141, len(c.Grid.Values()))
}

func TestRead(Te *testing.T) {
	yml := `
ph: 5.5
neutral_n: true
force:
  HIS: HIE
clash:
  tolerance: 0.8
protonate:
  passes: 5
log:
  level: debug
`
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(Te, v.ReadConfig(strings.NewReader(yml)))
	c, err := New(v)
	require.NoError(Te, err)
	assert.Equal(Te, 5.5, c.PH)
	assert.Equal(Te, 5.5, c.Protonate.PH)
	assert.True(Te, c.NeutralN)
	assert.False(Te, c.NeutralC)
	assert.True(Te, c.Debump)
	assert.Equal(Te, map[string]string{"his": "HIE"}, c.Force)
	assert.Equal(Te, 0.8, c.Clash.Tolerance)
	assert.Equal(Te, 0.5, c.Clash.HBondAllowance)
	assert.Equal(Te, 5, c.Protonate.Passes)
	assert.Equal(Te, 3.3, c.Protonate.HBondDistance)
	assert.Equal(Te, "debug", c.Log.Level)
}

func TestLoad(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "run.yaml")
	require.NoError(Te, os.WriteFile(name, []byte("ph: 8\ndebump: false\n"), 0o644))
	Te.Setenv("GOPQR_PROTONATE_HBOND_ANGLE", "30")
	c, err := Load(name)
	require.NoError(Te, err)
	assert.Equal(Te, 8.0, c.PH)
	assert.False(Te, c.Debump)
	assert.Equal(Te, 30.0, c.Protonate.HBondAngle)
	_, err = Load(filepath.Join(Te.TempDir(), "missing.yaml"))
	assert.Error(Te, err)
}

func TestValidate(Te *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"pH", func(c *Config) { c.PH = 15 }},
		{"tolerance", func(c *Config) { c.ChargeTolerance = 0 }},
		{"bonds", func(c *Config) { c.Bonds.PeptideLimit = -1 }},
		{"clash", func(c *Config) { c.Clash.MaxAngles = 0 }},
		{"hbond", func(c *Config) { c.Protonate.HBondDistance = 0 }},
		{"passes", func(c *Config) { c.Protonate.Passes = 0 }},
		{"grid", func(c *Config) { c.Grid.Max = -1 }},
		{"log", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		Te.Run(tt.name, func(Te *testing.T) {
			c := Default()
			tt.edit(&c)
			assert.Error(Te, c.Validate())
		})
	}
	assert.NoError(Te, Default().Validate())
}
