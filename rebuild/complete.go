/*
 * complete.go, part of gopqr.
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
	"errors"
	"fmt"
	"strings"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/chemgraph"
	"github.com/rmera/gopqr/top"
	v3 "github.com/rmera/gopqr/v3"
	"go.uber.org/zap"
)

//Lookup returns the position of the atom named as in a placement rule,
//or nil if the atom is not available.
type Lookup func(ref string) *v3.Matrix

//ErrNoReferences is returned by Locate when no rule has all its reference atoms.
var ErrNoReferences = errors.New("no placement rule has all its reference atoms")

//Locate returns the position given by the first of the rules whose
//reference atoms are all found by lookup, and which gives a non-degenerate result.
func Locate(rules []top.Placement, lookup Lookup) (*v3.Matrix, error) {
	var lasterr error = ErrNoReferences
Rules:
	for _, rule := range rules {
		refs := make([]*v3.Matrix, 0, len(rule.Refs))
		for _, name := range rule.Refs {
			c := lookup(name)
			if c == nil {
				continue Rules
			}
			refs = append(refs, c)
		}
		pos, err := pqr.Place(rule.Length, rule.Angle, rule.Dihedral, refs...)
		if err != nil {
			lasterr = err
			continue
		}
		return pos, nil
	}
	return nil, lasterr
}

//Neighbor returns the residue that a placement reference points to: the
//previous one for names starting with '-', the next one for '+', and res
//itself otherwise, together with the bare atom name. Previous and next
//residues only count if they are joined to res by a peptide bond.
//It returns -1 if there is no such residue.
func Neighbor(mol *pqr.Molecule, g *chemgraph.Graph, res int, ref string) (int, string) {
	switch {
	case strings.HasPrefix(ref, "-"):
		prev := mol.Prev(res)
		if prev < 0 || !g.Bonded(mol.AtomByName(prev, "C"), mol.AtomByName(res, "N")) {
			return -1, ref[1:]
		}
		return prev, ref[1:]
	case strings.HasPrefix(ref, "+"):
		next := mol.Next(res)
		if next < 0 || !g.Bonded(mol.AtomByName(res, "C"), mol.AtomByName(next, "N")) {
			return -1, ref[1:]
		}
		return next, ref[1:]
	}
	return res, ref
}

//MolLookup returns a Lookup for the atoms of the molecule, as seen from residue res.
func MolLookup(mol *pqr.Molecule, g *chemgraph.Graph, res int) Lookup {
	return func(ref string) *v3.Matrix {
		r, name := Neighbor(mol, g, res, ref)
		if r < 0 {
			return nil
		}
		i := mol.AtomByName(r, name)
		if i < 0 {
			return nil
		}
		return mol.Coord(i)
	}
}

//wanted returns the template atoms that residue res should have, in template
//order: body atoms first, then those of the patches. Atoms removed by patches
//and hydrogens that don't belong to the current states are left out.
func (B *Builder) wanted(res int) []top.Atom {
	r := B.Mol.Residue(res)
	t, ok := B.Lib.Residue(r.Body.Template)
	if !ok {
		return nil
	}
	removed := make(map[string]bool)
	patches := make([]*top.Residue, 0, len(r.Patches))
	for _, s := range r.Patches {
		p, ok := B.Lib.Patch(s.Template)
		if !ok {
			continue
		}
		patches = append(patches, p)
		for _, n := range p.Removes {
			removed[n] = true
		}
	}
	ret := make([]top.Atom, 0, len(t.Atoms))
	for _, a := range t.Atoms {
		if removed[a.Name] || !t.Present(a.Name, r.Body.State) {
			continue
		}
		ret = append(ret, a)
	}
	for k, p := range patches {
		for _, a := range p.Atoms {
			if p.Present(a.Name, r.Patches[k].State) {
				ret = append(ret, a)
			}
		}
	}
	return ret
}

//Complete adds to residue res the atoms of its template (and patches) that are
//missing, either heavy atoms or hydrogens. Atoms are placed in passes, in
//template order, until no more can be placed, so atoms can serve as
//reference for the ones after them. The atoms that could not be placed are
//reported.
func (B *Builder) Complete(res int, hydrogens bool) []pqr.Warning {
	mol := B.Mol
	pending := make([]top.Atom, 0)
	for _, a := range B.wanted(res) {
		if a.Hydrogen() == hydrogens && mol.AtomByName(res, a.Name) < 0 {
			pending = append(pending, a)
		}
	}
	lookup := MolLookup(mol, B.Graph, res)
	for progress := true; progress && len(pending) > 0; {
		progress = false
		left := pending[:0]
		for _, a := range pending {
			pos, err := Locate(a.Place, lookup)
			if err != nil {
				left = append(left, a)
				continue
			}
			if _, err := mol.AddAtom(res, a.Name, a.Element, pos, pqr.FromTemplate); err != nil {
				left = append(left, a)
				continue
			}
			progress = true
		}
		pending = left
	}
	if len(pending) == 0 {
		return nil
	}
	names := make([]string, 0, len(pending))
	for _, a := range pending {
		names = append(names, a.Name)
	}
	kind := pqr.MissingHeavy
	what := "heavy atoms"
	if hydrogens {
		kind = pqr.UnplacedHydrogen
		what = "hydrogens"
	}
	return []pqr.Warning{{
		Kind:    kind,
		Residue: res,
		Atoms:   names,
		Message: fmt.Sprintf("Unable to place %s %s in %s", what, strings.Join(names, " "), mol.ResidueID(res)),
	}}
}

//MissingHeavy adds the missing heavy atoms of all residues with a template.
func (B *Builder) MissingHeavy() []pqr.Warning {
	return B.completeAll(false)
}

//AddHydrogens adds the hydrogens of all residues with a template, according
//to their current states.
func (B *Builder) AddHydrogens() []pqr.Warning {
	return B.completeAll(true)
}

func (B *Builder) completeAll(hydrogens bool) []pqr.Warning {
	var ret []pqr.Warning
	before := B.Mol.Len()
	for i, r := range B.Mol.Residues {
		if r.Body.Template == "" || len(r.Atoms) == 0 {
			continue
		}
		w := B.Complete(i, hydrogens)
		for _, v := range w {
			B.Log.Warn(v.Message)
		}
		ret = append(ret, w...)
	}
	added := zap.Int("atoms", B.Mol.Len()-before)
	if hydrogens {
		B.Log.Info("Added hydrogens", added)
	} else {
		B.Log.Info("Added missing heavy atoms", added)
	}
	return ret
}
