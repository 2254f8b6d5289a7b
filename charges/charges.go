/*
 * charges.go, part of gopqr.
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

package charges

import (
	"fmt"
	"math"
	"strings"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/top"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

//DefaultTolerance is the largest distance from an integer allowed for the
//charge of a residue.
const DefaultTolerance = 1e-3

//ffName returns the forcefield name of the given state of template t, or
//the state name itself if the template doesn't give one.
func ffName(t *top.Residue, state string) string {
	s := t.State(state)
	if s == nil {
		return state
	}
	if s.FF != "" {
		return s.FF
	}
	return s.Name
}

//Assigner gives the atoms of a molecule their charges and radii.
type Assigner struct {
	Lib *top.Library
	FF  top.Forcefield
	Log *zap.Logger
}

//New returns an Assigner. A nil logger discards messages.
func New(lib *top.Library, ff top.Forcefield, logger *zap.Logger) *Assigner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assigner{Lib: lib, FF: ff, Log: logger}
}

//params returns the parameters for atom i of mol. The terminal patches of
//the residue, in their current states, are looked up before the residue. Residues without
//a template are looked up by their name.
func (A *Assigner) params(mol *pqr.Molecule, i int) (top.Params, bool) {
	at := mol.Atom(i)
	r := mol.Residue(at.Res)
	for _, s := range r.Patches {
		p, ok := A.Lib.Patch(s.Template)
		if !ok {
			continue
		}
		if par, ok := A.FF.Params(p.Name, ffName(p, s.State), at.Name); ok {
			return par, true
		}
	}
	t, ok := A.Lib.Residue(r.Body.Template)
	if !ok {
		return A.FF.Params(r.Name, "", at.Name)
	}
	return A.FF.Params(t.Name, ffName(t, r.Body.State), at.Name)
}

//Assign sets the charge and radius of every live atom of mol. Atoms that the
//forcefield doesn't know keep a zero charge and radius, and are put in
//mol.Missed. A warning is returned for each residue with such atoms.
func (A *Assigner) Assign(mol *pqr.Molecule) []pqr.Warning {
	mol.Missed = mol.Missed[:0]
	var ret []pqr.Warning
	for ri, r := range mol.Residues {
		missed := make([]string, 0)
		for _, i := range r.Atoms {
			at := mol.Atom(i)
			p, ok := A.params(mol, i)
			if !ok {
				at.Charge, at.Radius, at.HasParams = 0, 0, false
				mol.Missed = append(mol.Missed, i)
				missed = append(missed, at.Name)
				continue
			}
			at.Charge, at.Radius, at.HasParams = p.Charge, p.Radius, true
		}
		if len(missed) == 0 {
			continue
		}
		msg := fmt.Sprintf("No parameters for %s in %s", strings.Join(missed, " "), mol.ResidueID(ri))
		A.Log.Debug(msg)
		ret = append(ret, pqr.Warning{Kind: pqr.MissingParameters, Residue: ri, Atoms: missed, Message: msg})
	}
	if len(mol.Missed) > 0 {
		A.Log.Warn("Atoms without forcefield parameters", zap.Int("atoms", len(mol.Missed)), zap.Int("residues", len(ret)))
	}
	return ret
}

//Report contains the charges of a molecule.
type Report struct {
	Residues []float64 //charge of each residue, by index
	Total    float64
	Flagged  []int //residues with a charge that is not an integer
}

//ResidueCharge returns the sum of the charges of the live atoms of residue res.
func ResidueCharge(mol *pqr.Molecule, res int) float64 {
	r := mol.Residue(res)
	q := make([]float64, len(r.Atoms))
	for k, i := range r.Atoms {
		q[k] = mol.Atom(i).Charge
	}
	return floats.Sum(q)
}

//Check sums the charges of each residue and of the whole molecule. Residues
//with atoms and a charge more than tol away from the nearest integer are
//flagged, and put in mol.Flagged.
func Check(mol *pqr.Molecule, tol float64, logger *zap.Logger) Report {
	if logger == nil {
		logger = zap.NewNop()
	}
	rep := Report{Residues: make([]float64, len(mol.Residues)), Flagged: make([]int, 0)}
	for ri, r := range mol.Residues {
		if len(r.Atoms) == 0 {
			continue
		}
		q := ResidueCharge(mol, ri)
		rep.Residues[ri] = q
		if math.Abs(q-math.Round(q)) > tol {
			rep.Flagged = append(rep.Flagged, ri)
			logger.Warn("Residue has a non-integral charge", zap.String("residue", mol.ResidueID(ri)), zap.Float64("charge", q))
		}
	}
	rep.Total = floats.Sum(rep.Residues)
	mol.Flagged = rep.Flagged
	return rep
}

//Warnings returns a NonIntegralCharge warning for each residue flagged in rep.
func (rep Report) Warnings(mol *pqr.Molecule) []pqr.Warning {
	ret := make([]pqr.Warning, 0, len(rep.Flagged))
	for _, ri := range rep.Flagged {
		ret = append(ret, pqr.Warning{
			Kind:    pqr.NonIntegralCharge,
			Residue: ri,
			Message: fmt.Sprintf("Residue %s has a non-integral charge of %.4f", mol.ResidueID(ri), rep.Residues[ri]),
		})
	}
	return ret
}
