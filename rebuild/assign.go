/*
 * assign.go, part of gopqr.
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

package rebuild

import (
	"fmt"
	"math"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/chemgraph"
	"github.com/rmera/gopqr/top"
	"go.uber.org/zap"
)

//Builder matches the residues of a molecule with their templates and
//completes them.
type Builder struct {
	Mol   *pqr.Molecule
	Lib   *top.Library
	Graph *chemgraph.Graph
	Log   *zap.Logger
}

//New returns a Builder. A nil logger discards messages.
func New(mol *pqr.Molecule, lib *top.Library, g *chemgraph.Graph, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{Mol: mol, Lib: lib, Graph: g, Log: logger}
}

//Assign sets the template and the initial state of every residue. Residues
//named after a specific state (HID, CYX...) are fixed in that state, the rest
//start in the default state of their template, with the states of the same
//charge as candidates. Residues without a template are reported.
func (B *Builder) Assign() []pqr.Warning {
	var ret []pqr.Warning
	for i, r := range B.Mol.Residues {
		t, state, ok := B.Lib.Resolve(r.Name)
		if !ok {
			msg := fmt.Sprintf("No template for residue %s, bonds will be inferred from distances", B.Mol.ResidueID(i))
			B.Log.Warn(msg)
			ret = append(ret, pqr.Warning{Kind: pqr.UnknownResidue, Residue: i, Message: msg})
			continue
		}
		r.Body = pqr.Site{Template: t.Name}
		if state != "" {
			r.Body.State = state
			r.Body.Candidates = []string{state}
			r.Body.Fixed = true
			continue
		}
		if def := t.Default(); def != nil {
			r.Body.State = def.Name
			r.Body.Candidates = t.Candidates(0, math.NaN(), 0)
		}
	}
	B.Mol.Touch()
	return ret
}

//patchSite returns a site for the patch p in its default state, or in the
//state forced, if not empty.
func patchSite(p *top.Residue, forced string) pqr.Site {
	s := pqr.Site{Template: p.Name}
	if forced != "" && p.State(forced) != nil {
		s.State = forced
		s.Candidates = []string{forced}
		s.Fixed = true
		return s
	}
	if def := p.Default(); def != nil {
		s.State = def.Name
		s.Candidates = p.Candidates(0, math.NaN(), 0)
	}
	return s
}

//SetTermini marks the first and last peptide residues of each chain as termini
//and applies the terminal patches to them. Atoms that the patches replace
//are removed. Neutral termini are fixed in their uncharged states.
func (B *Builder) SetTermini(neutralN, neutralC bool) error {
	mol := B.Mol
	nforced, cforced := "", ""
	if neutralN {
		nforced = "N"
	}
	if neutralC {
		cforced = "C"
	}
	for _, c := range mol.Chains {
		first, last := -1, -1
		for _, ri := range c.Residues {
			t, ok := B.Lib.Residue(mol.Residue(ri).Body.Template)
			if !ok || !t.Peptide || len(mol.Residue(ri).Atoms) == 0 {
				continue
			}
			if first < 0 {
				first = ri
			}
			last = ri
		}
		if first < 0 {
			continue
		}
		r := mol.Residue(first)
		t, _ := B.Lib.Residue(r.Body.Template)
		pname := "NTERM"
		if t.NTerm != "" {
			pname = t.NTerm
		}
		p, ok := B.Lib.Patch(pname)
		if !ok {
			return pqr.NewError(fmt.Sprintf("No patch %s in library", pname), "SetTermini", true)
		}
		r.NTerm = true
		r.Patches = append(r.Patches, patchSite(p, nforced))
		for _, n := range p.Removes {
			if i := mol.AtomByName(first, n); i >= 0 {
				mol.RemoveAtom(i)
			}
		}
		p, ok = B.Lib.Patch("CTERM")
		if !ok {
			return pqr.NewError("No patch CTERM in library", "SetTermini", true)
		}
		r = mol.Residue(last)
		r.CTerm = true
		r.Patches = append(r.Patches, patchSite(p, cforced))
		for _, n := range p.Removes {
			if i := mol.AtomByName(last, n); i >= 0 {
				mol.RemoveAtom(i)
			}
		}
		B.Log.Debug("Termini set", zap.String("chain", c.ID), zap.String("N", mol.ResidueID(first)), zap.String("C", mol.ResidueID(last)))
	}
	mol.Touch()
	return nil
}

//Disulfides fixes in their disulfide state the residues with a sulfur bonded to
//another residue's sulfur. It returns the pairs of residues bonded.
func (B *Builder) Disulfides() [][2]int {
	mol := B.Mol
	ret := make([][2]int, 0)
	for _, d := range B.Graph.Disulfides() {
		r1, r2 := mol.Atom(d[0]).Res, mol.Atom(d[1]).Res
		for _, ri := range []int{r1, r2} {
			r := mol.Residue(ri)
			t, ok := B.Lib.Residue(r.Body.Template)
			if !ok || t.Disulfide() == nil {
				continue
			}
			s := t.Disulfide().Name
			r.Body.State = s
			r.Body.Candidates = []string{s}
			r.Body.Fixed = true
		}
		B.Log.Info("Disulfide bond found", zap.String("between", mol.ResidueID(r1)), zap.String("and", mol.ResidueID(r2)))
		ret = append(ret, [2]int{r1, r2})
	}
	return ret
}

//ForceState puts all the residues with the given template that are not fixed
//in the given state.
func (B *Builder) ForceState(template, state string) {
	for _, r := range B.Mol.Residues {
		if r.Body.Template != template || r.Body.Fixed {
			continue
		}
		t, ok := B.Lib.Residue(template)
		if !ok || t.State(state) == nil {
			continue
		}
		r.Body.State = state
		r.Body.Candidates = []string{state}
	}
}

//DropWater removes all the atoms of water residues. It returns the number of
//residues emptied.
func (B *Builder) DropWater() int {
	n := 0
	for i, r := range B.Mol.Residues {
		t, ok := B.Lib.Residue(r.Body.Template)
		if !ok || !t.Water || len(r.Atoms) == 0 {
			continue
		}
		for _, a := range append([]int(nil), r.Atoms...) {
			B.Mol.RemoveAtom(a)
		}
		B.Log.Debug("Water removed", zap.String("residue", B.Mol.ResidueID(i)))
		n++
	}
	return n
}
