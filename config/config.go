/*
 * config.go, part of gopqr.
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
	"errors"
	"fmt"
	"strings"

	"github.com/rmera/gopqr/chemgraph"
	"github.com/rmera/gopqr/clash"
	"github.com/rmera/gopqr/logging"
	"github.com/rmera/gopqr/pka"
	"github.com/rmera/gopqr/protonate"
	"github.com/spf13/viper"
)

//Config contains all the options of a run.
type Config struct {
	//the pH used to choose protonation states
	PH float64 `mapstructure:"ph"`
	//resolve the clashes after adding atoms
	Debump bool `mapstructure:"debump"`
	//optimize the hydrogens of all residues. If false, only waters are optimized
	Optimize bool `mapstructure:"optimize"`
	//make the termini neutral
	NeutralN bool `mapstructure:"neutral_n"`
	NeutralC bool `mapstructure:"neutral_c"`
	//only assign charges and radii, don't add or move atoms
	AssignOnly bool `mapstructure:"assign_only"`
	//remove all the water
	DropWater bool `mapstructure:"drop_water"`
	//states given to all the residues of a template that are not fixed, as template: state
	Force map[string]string `mapstructure:"force"`
	//largest distance from an integer allowed for residue charges
	ChargeTolerance float64 `mapstructure:"charge_tolerance"`

	Bonds     chemgraph.Options `mapstructure:"bonds"`
	Clash     clash.Options     `mapstructure:"clash"`
	Protonate protonate.Options `mapstructure:"protonate"`
	Grid      pka.Grid          `mapstructure:"titration_grid"`
	Log       logging.Config    `mapstructure:"log"`
}

//Default returns the options of a usual run at pH 7.
func Default() Config {
	return Config{
		PH:              7,
		Debump:          true,
		Optimize:        true,
		ChargeTolerance: 1e-3,
		Bonds:           chemgraph.DefaultOptions(),
		Clash:           clash.DefaultOptions(),
		Protonate:       protonate.DefaultOptions(),
		Grid:            pka.DefaultGrid(),
		Log:             logging.DefaultConfig(),
	}
}

//SetDefaults registers the values of Default in v, under the keys that
//New reads.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("ph", d.PH)
	v.SetDefault("debump", d.Debump)
	v.SetDefault("optimize", d.Optimize)
	v.SetDefault("neutral_n", d.NeutralN)
	v.SetDefault("neutral_c", d.NeutralC)
	v.SetDefault("assign_only", d.AssignOnly)
	v.SetDefault("drop_water", d.DropWater)
	v.SetDefault("charge_tolerance", d.ChargeTolerance)

	v.SetDefault("bonds.peptide_limit", d.Bonds.PeptideLimit)
	v.SetDefault("bonds.disulfide_limit", d.Bonds.DisulfideLimit)

	v.SetDefault("clash.tolerance", d.Clash.Tolerance)
	v.SetDefault("clash.hbond_allowance", d.Clash.HBondAllowance)
	v.SetDefault("clash.step", d.Clash.Step)
	v.SetDefault("clash.max_angles", d.Clash.MaxAngles)
	v.SetDefault("clash.max_iterations", d.Clash.MaxIterations)

	v.SetDefault("protonate.pka_window", d.Protonate.PKaWindow)
	v.SetDefault("protonate.hbond_distance", d.Protonate.HBondDistance)
	v.SetDefault("protonate.hbond_angle", d.Protonate.HBondAngle)
	v.SetDefault("protonate.clash_penalty", d.Protonate.ClashPenalty)
	v.SetDefault("protonate.passes", d.Protonate.Passes)
	v.SetDefault("protonate.water_steps", d.Protonate.WaterSteps)

	v.SetDefault("titration_grid.min", d.Grid.Min)
	v.SetDefault("titration_grid.max", d.Grid.Max)
	v.SetDefault("titration_grid.step", d.Grid.Step)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)
	v.SetDefault("log.duplicate_limit", d.Log.DuplicateLimit)
}

//New returns the Config in v, with the default values for what v doesn't
//set. The pH of the protonation options is always the one at the top level.
func New(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	c.Protonate.PH = c.PH
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

//Load reads the Config from a file, in any format viper understands.
//Environment variables prefixed with GOPQR_ override the file.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("gopqr")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return New(v)
}

//Validate returns an error describing every value out of range.
func (C Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(C.PH >= 0 && C.PH <= 14, "pH %g out of the 0-14 range", C.PH)
	check(C.ChargeTolerance > 0, "charge tolerance must be positive, not %g", C.ChargeTolerance)
	check(C.Bonds.PeptideLimit > 0 && C.Bonds.DisulfideLimit > 0, "bond limits must be positive")
	check(C.Clash.Step > 0 && C.Clash.MaxAngles > 0 && C.Clash.MaxIterations > 0, "clash steps and iterations must be positive")
	check(C.Clash.Tolerance >= 0 && C.Clash.HBondAllowance >= 0, "clash tolerances can't be negative")
	check(C.Protonate.HBondDistance > 0 && C.Protonate.HBondAngle > 0, "hydrogen bond limits must be positive")
	check(C.Protonate.PKaWindow >= 0 && C.Protonate.ClashPenalty >= 0, "pKa window and clash penalty can't be negative")
	check(C.Protonate.Passes > 0 && C.Protonate.WaterSteps > 0, "optimization passes and water steps must be positive")
	check(C.Grid.Step > 0 && C.Grid.Max > C.Grid.Min, "bad titration grid %g-%g, step %g", C.Grid.Min, C.Grid.Max, C.Grid.Step)
	if err := C.Log.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
