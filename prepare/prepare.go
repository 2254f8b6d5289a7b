/*
 * prepare.go, part of gopqr.
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

package prepare

import (
	"context"
	"fmt"
	"slices"
	"strings"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/charges"
	"github.com/rmera/gopqr/chemgraph"
	"github.com/rmera/gopqr/clash"
	"github.com/rmera/gopqr/config"
	"github.com/rmera/gopqr/logging"
	"github.com/rmera/gopqr/pka"
	"github.com/rmera/gopqr/protonate"
	"github.com/rmera/gopqr/rebuild"
	"github.com/rmera/gopqr/top"
	"go.uber.org/zap"
)

//Options for a run, besides the forcefield.
type Options struct {
	Config config.Config
	Lib    *top.Library   //nil means the default library
	PKa    pka.Calculator //nil means no pKa values are used. A *pka.Static without a grid uses Config.Grid
	Log    *zap.Logger    //nil means a logger built from Config.Log
}

//Result is what a run leaves: the completed molecule with its charges, and
//the problems found.
type Result struct {
	Mol           *pqr.Molecule
	Graph         *chemgraph.Graph
	Charges       charges.Report
	TotalCharge   float64
	Missed        []int //atoms without forcefield parameters
	Flagged       []int //residues with non-integral charge
	MissedLigands []int //residues without a template and with atoms without parameters
	Disulfides    [][2]int
	Titrations    []pka.Titration
	Warnings      []pqr.Warning
}

//Atoms returns the live atoms of the molecule, in output order.
func (R *Result) Atoms() []*pqr.Atom {
	idx := R.Mol.Ordered()
	ret := make([]*pqr.Atom, len(idx))
	for k, i := range idx {
		ret[k] = R.Mol.Atom(i)
	}
	return ret
}

//Warned returns the warnings of the given kind.
func (R *Result) Warned(kind pqr.WarningKind) []pqr.Warning {
	ret := make([]pqr.Warning, 0)
	for _, w := range R.Warnings {
		if w.Kind == kind {
			ret = append(ret, w)
		}
	}
	return ret
}

//run keeps the pieces shared by the stages of a run.
type run struct {
	cfg config.Config
	res *Result
	lib *top.Library
	b   *rebuild.Builder
	deb *clash.Debumper
	p   *protonate.Protonator
	log *zap.Logger
}

func (r *run) warn(w []pqr.Warning) {
	r.res.Warnings = append(r.res.Warnings, w...)
}

//Run completes the structure given by recs, chooses its protonation states,
//and gives its atoms the charges and radii of ff. Problems with particular
//residues or atoms are reported in the result. Only malformed records, a
//template library without the terminal patches, or a failure of the pKa
//calculator stop the run, with an error.
func Run(ctx context.Context, recs []pqr.Record, ff top.Forcefield, opts Options) (*Result, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Protonate.PH = cfg.PH
	log := opts.Log
	if log == nil {
		l, err := logging.New(cfg.Log)
		if err != nil {
			return nil, fmt.Errorf("prepare: %w", err)
		}
		defer l.Sync()
		log = l.Named(logging.Prepare)
	}
	calc := opts.PKa
	if s, ok := calc.(*pka.Static); ok && s.Grid == (pka.Grid{}) {
		calc = s.WithGrid(cfg.Grid)
	}
	lib := opts.Lib
	if lib == nil {
		lib = top.Default()
	}
	mol, w, err := pqr.NewMolecule(recs)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	for _, v := range w {
		log.Warn(v.Message)
	}
	g := chemgraph.New(mol, lib, cfg.Bonds, log.Named(logging.Rebuild))
	r := &run{cfg: cfg, lib: lib, log: log, res: &Result{Mol: mol, Graph: g, Warnings: w}}
	r.b = rebuild.New(mol, lib, g, log.Named(logging.Rebuild))
	r.deb = clash.NewDebumper(clash.NewDetector(mol, g, lib, cfg.Clash), log.Named(logging.Clash))
	r.p = protonate.New(r.b, r.deb, cfg.Protonate, log.Named(logging.Protonate))
	r.p.Debump = cfg.Debump

	r.warn(r.b.Assign())
	if cfg.DropWater {
		n := r.b.DropWater()
		log.Info("Water removed", zap.Int("residues", n))
	}
	if err := r.b.SetTermini(cfg.NeutralN, cfg.NeutralC); err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	if cfg.AssignOnly {
		r.b.ForceState("HIS", "HIP")
	} else if err := r.complete(ctx, calc); err != nil {
		return nil, err
	}
	r.p.SetStates()
	r.assign(ff)
	return r.res, nil
}

//complete adds the missing atoms, chooses the protonation states and
//optimizes the hydrogens.
func (r *run) complete(ctx context.Context, calc pka.Calculator) error {
	cfg := r.cfg
	r.warn(r.b.MissingHeavy())
	r.res.Disulfides = r.b.Disulfides()
	templates := make([]string, 0, len(cfg.Force))
	for t := range cfg.Force {
		templates = append(templates, t)
	}
	slices.Sort(templates)
	for _, t := range templates {
		r.b.ForceState(strings.ToUpper(t), cfg.Force[t])
	}
	if cfg.Debump {
		r.warn(r.deb.All())
	}
	if calc != nil {
		pk, err := calc.Compute(ctx, r.res.Mol)
		if err != nil {
			return fmt.Errorf("prepare: computing pKa values: %w", err)
		}
		r.res.Titrations = pk.Titrations
		r.p.ApplyPKa(pk.Lookup)
	}
	r.warn(r.b.AddHydrogens())
	if cfg.Debump {
		r.warn(r.deb.All())
	}
	if !cfg.Optimize {
		r.log.Info("Optimizing only the water")
	}
	r.warn(r.p.Optimize(!cfg.Optimize))
	n := r.p.Cleanup()
	r.log.Debug("Cleanup done", zap.Int("removed", n))
	return nil
}

//assign gives the charges and radii, and checks the residue charges.
func (r *run) assign(ff top.Forcefield) {
	mol := r.res.Mol
	clog := r.log.Named(logging.Charges)
	r.warn(charges.New(r.lib, ff, clog).Assign(mol))
	rep := charges.Check(mol, r.cfg.ChargeTolerance, clog)
	r.warn(rep.Warnings(mol))
	res := r.res
	res.Charges = rep
	res.TotalCharge = rep.Total
	res.Missed = mol.Missed
	res.Flagged = rep.Flagged
	res.MissedLigands = make([]int, 0)
	for _, i := range mol.Missed {
		ri := mol.Atom(i).Res
		if _, ok := r.lib.Residue(mol.Residue(ri).Body.Template); ok || slices.Contains(res.MissedLigands, ri) {
			continue
		}
		res.MissedLigands = append(res.MissedLigands, ri)
	}
	r.log.Info("Run finished", zap.Int("atoms", len(mol.Ordered())), zap.Float64("charge", res.TotalCharge),
		zap.Int("missed", len(res.Missed)), zap.Int("warnings", len(res.Warnings)))
}
