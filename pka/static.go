/*
 * static.go, part of gopqr.
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

package pka

import (
	"context"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/top"
)

//Static is a Calculator that gives every titratable site the model pKa of
//its template, unless an override is given for the residue. Overrides are
//keyed by the identifier of the residue, as given by Molecule.ResidueID,
//for the residue itself, or by the identifier followed by a space and the
//patch name. The curves are sampled on Grid, or on the default grid if Grid
//is the zero value.
type Static struct {
	Lib      *top.Library
	Override map[string]float64
	Grid     Grid
}

//NewStatic returns a Static calculator without a grid of its own.
func NewStatic(lib *top.Library, override map[string]float64) *Static {
	return &Static{Lib: lib, Override: override}
}

//WithGrid returns a copy of S that samples its curves on g.
func (S *Static) WithGrid(g Grid) *Static {
	ret := *S
	ret.Grid = g
	return &ret
}

func (S *Static) grid() Grid {
	if S.Grid == (Grid{}) {
		return DefaultGrid()
	}
	return S.Grid
}

func (S *Static) site(mol *pqr.Molecule, res int, t *top.Residue, patch string) (Titration, bool) {
	if t.PKa <= 0 || len(t.States) < 2 {
		return Titration{}, false
	}
	id := mol.ResidueID(res)
	key := id
	if patch != "" {
		key += " " + patch
	}
	v := t.PKa
	if o, ok := S.Override[key]; ok {
		v = o
	}
	return Titration{Key: Key{Res: res, Patch: patch}, Residue: id, PKa: v, Curve: Curve(t, v, S.grid())}, true
}

//Compute implements Calculator. Fixed sites are left out.
func (S *Static) Compute(ctx context.Context, mol *pqr.Molecule) (*Result, error) {
	ret := &Result{Titrations: make([]Titration, 0)}
	for ri, r := range mol.Residues {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(r.Atoms) == 0 {
			continue
		}
		if t, ok := S.Lib.Residue(r.Body.Template); ok && !r.Body.Fixed {
			if tit, ok := S.site(mol, ri, t, ""); ok {
				ret.Titrations = append(ret.Titrations, tit)
			}
		}
		for _, s := range r.Patches {
			p, ok := S.Lib.Patch(s.Template)
			if !ok || s.Fixed {
				continue
			}
			if tit, ok := S.site(mol, ri, p, p.Name); ok {
				ret.Titrations = append(ret.Titrations, tit)
			}
		}
	}
	return ret, nil
}
