/*
 * protonate.go, part of gopqr.
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

package protonate

import (
	"slices"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/chemgraph"
	"github.com/rmera/gopqr/clash"
	"github.com/rmera/gopqr/rebuild"
	"github.com/rmera/gopqr/top"
	v3 "github.com/rmera/gopqr/v3"
	"go.uber.org/zap"
)

//Options for the protonation and hydrogen optimization.
type Options struct {
	PH            float64 `mapstructure:"ph"`
	PKaWindow     float64 `mapstructure:"pka_window"`     //sites with a pKa this close to the pH are decided by geometry
	HBondDistance float64 `mapstructure:"hbond_distance"` //maximum donor-acceptor distance, A
	HBondAngle    float64 `mapstructure:"hbond_angle"`    //maximum hydrogen-donor-acceptor angle, degrees
	ClashPenalty  float64 `mapstructure:"clash_penalty"`  //subtracted from the score for each clash
	Passes        int     `mapstructure:"passes"`         //maximum rounds of optimization
	WaterSteps    int     `mapstructure:"water_steps"`    //rotations tried around each axis for waters
}

//DefaultOptions returns the usual options, at pH 7.
func DefaultOptions() Options {
	return Options{PH: 7, PKaWindow: 1, HBondDistance: 3.3, HBondAngle: 20, ClashPenalty: 2, Passes: 3, WaterSteps: 6}
}

//Body is the site index of the residue itself, as opposed to its patches.
const Body = -1

//Hydrogen is a hydrogen that a candidate would put in the residue.
type Hydrogen struct {
	Name   string
	Parent int
	Pos    *v3.Matrix
}

//Candidate is a possible state or orientation of a site, with the
//hydrogens that it needs and its score.
type Candidate struct {
	Site      int
	State     string
	Hydrogens []Hydrogen
	HBonds    int
	Clashes   int
	Score     float64
}

//PKaSource returns the pKa of a site of residue res: its body, if patch is
//empty, or the named terminal patch. It returns false if there is no value.
type PKaSource func(res int, patch string) (float64, bool)

//Protonator chooses the protonation states of the residues and the
//orientations of their hydrogens.
type Protonator struct {
	Mol      *pqr.Molecule
	Lib      *top.Library
	Graph    *chemgraph.Graph
	Builder  *rebuild.Builder
	Debumper *clash.Debumper
	Debump   bool //debump each residue after a new state is committed
	Opts     Options
	Log      *zap.Logger
}

//New returns a Protonator working on the molecule of b. The debumper d counts
//the clashes of the candidates and, unless Debump is set to false, debumps the
//residues whose state changes. A nil logger discards messages.
func New(b *rebuild.Builder, d *clash.Debumper, opts Options, logger *zap.Logger) *Protonator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Protonator{Mol: b.Mol, Lib: b.Lib, Graph: b.Graph, Builder: b, Debumper: d, Debump: true, Opts: opts, Log: logger}
}

//site returns the template and the site of residue res with the index k, which
//is Body or the index of a patch.
func (P *Protonator) site(res, k int) (*top.Residue, *pqr.Site) {
	r := P.Mol.Residue(res)
	if k == Body {
		t, ok := P.Lib.Residue(r.Body.Template)
		if !ok {
			return nil, nil
		}
		return t, &r.Body
	}
	if k < 0 || k >= len(r.Patches) {
		return nil, nil
	}
	t, ok := P.Lib.Patch(r.Patches[k].Template)
	if !ok {
		return nil, nil
	}
	return t, &r.Patches[k]
}

//sites returns the indexes of the sites of residue res that have a template.
func (P *Protonator) sites(res int) []int {
	ret := make([]int, 0, 3)
	for k := Body; k < len(P.Mol.Residue(res).Patches); k++ {
		if t, _ := P.site(res, k); t != nil {
			ret = append(ret, k)
		}
	}
	return ret
}

//ApplyPKa narrows the candidate states of each titratable site according to its
//pKa, given by src, and the pH. Sites with a pKa well above the pH keep only
//their protonated states, those well below only the deprotonated ones. The
//site is put in its first candidate state. Fixed sites and sites without a
//pKa are left alone.
func (P *Protonator) ApplyPKa(src PKaSource) {
	if src == nil {
		return
	}
	for ri, r := range P.Mol.Residues {
		if len(r.Atoms) == 0 {
			continue
		}
		for _, k := range P.sites(ri) {
			t, s := P.site(ri, k)
			if s.Fixed || len(t.States) < 2 {
				continue
			}
			patch := ""
			if k != Body {
				patch = s.Template
			}
			pka, ok := src(ri, patch)
			if !ok {
				continue
			}
			c := t.Candidates(P.Opts.PH, pka, P.Opts.PKaWindow)
			if len(c) == 0 {
				continue
			}
			s.Candidates = c
			s.State = c[0]
			P.Log.Debug("pKa applied", zap.String("residue", P.Mol.ResidueID(ri)), zap.String("site", s.Template),
				zap.Float64("pKa", pka), zap.Strings("candidates", c))
		}
	}
	P.Mol.Touch()
}

//titratable returns the live atoms of residue res that the template t only has in some states.
func (P *Protonator) titratable(res int, t *top.Residue) []int {
	names := t.Titratable()
	ret := make([]int, 0, len(names))
	for _, n := range names {
		if i := P.Mol.AtomByName(res, n); i >= 0 {
			ret = append(ret, i)
		}
	}
	return ret
}

//Cleanup removes, from every site, the hydrogens that don't belong to its
//final state, so each residue is left with a single geometry. Candidate
//states and optimizable groups are discarded. It returns the number of
//atoms removed.
func (P *Protonator) Cleanup() int {
	n := 0
	for ri, r := range P.Mol.Residues {
		for _, k := range P.sites(ri) {
			t, s := P.site(ri, k)
			for _, i := range P.titratable(ri, t) {
				if !t.Present(P.Mol.Atom(i).Name, s.State) {
					P.Log.Debug("Hydrogen removed in cleanup", zap.String("atom", P.Mol.AtomID(i)))
					P.Mol.RemoveAtom(i)
					n++
				}
			}
			if s.State != "" {
				s.Candidates = []string{s.State}
			}
		}
		r.Groups = nil
	}
	return n
}

//SetStates gives every site without a state the default state of its
//template, and leaves the state as the only candidate.
func (P *Protonator) SetStates() {
	for ri := range P.Mol.Residues {
		for _, k := range P.sites(ri) {
			t, s := P.site(ri, k)
			if s.State == "" {
				if def := t.Default(); def != nil {
					s.State = def.Name
				}
			}
			if s.State != "" && !slices.Equal(s.Candidates, []string{s.State}) {
				s.Candidates = []string{s.State}
			}
		}
	}
}
