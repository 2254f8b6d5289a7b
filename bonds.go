/*
 * bonds.go, part of gopqr.
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

package pqr

import (
	"fmt"
	"sort"
	"strings"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

//Bond joins the atoms At1 and At2, which are indexes in a Molecule.
type Bond struct {
	At1  int
	At2  int
	Dist float64
}

//Cross returns the atom at the other end of the bond from origin.
//It panics if origin is not in the bond.
func (B Bond) Cross(origin int) int {
	if origin == B.At1 {
		return B.At2
	}
	if origin == B.At2 {
		return B.At1
	}
	panic("Trying to cross a bond: The origin atom given is not present in the bond!")
}

//InferBonds assigns bonds among the atoms in atoms (indexes in mol) based on a
//simple distance criterion, similar to that described in DOI:10.1186/1758-2946-3-33.
//Atoms with more bonds than their element allows lose the longest ones.
//Atoms of unknown elements get no bonds and are reported in a non-critical error,
//the bonds among the rest are returned anyway.
func InferBonds(mol *Molecule, atoms []int) ([]Bond, error) {
	bonds := make([]Bond, 0, len(atoms))
	perAtom := make(map[int][]int)
	skipped := make([]string, 0)
	for k, i := range atoms {
		at1 := mol.Atom(i)
		cov1, ok := CovalentRadius(at1.Element)
		if !ok {
			skipped = append(skipped, mol.AtomID(i))
			continue
		}
		t1 := mol.Coord(i)
		for _, j := range atoms[k+1:] {
			cov2, ok := CovalentRadius(mol.Atom(j).Element)
			if !ok {
				continue
			}
			d := Distance(t1, mol.Coord(j))
			if d < cov1+cov2+bondtol && d > tooclose {
				bonds = append(bonds, Bond{At1: i, At2: j, Dist: d})
				perAtom[i] = append(perAtom[i], len(bonds)-1)
				perAtom[j] = append(perAtom[j], len(bonds)-1)
			}
		}
	}
	//Now we check that no atom has too many bonds.
	removed := make([]bool, len(bonds))
	for _, i := range atoms {
		max := MaxBonds(mol.Atom(i).Element)
		if max == 0 {
			continue
		}
		live := make([]int, 0, len(perAtom[i]))
		for _, b := range perAtom[i] {
			if !removed[b] {
				live = append(live, b)
			}
		}
		sort.SliceStable(live, func(x, y int) bool { return bonds[live[x]].Dist < bonds[live[y]].Dist })
		for _, b := range live[min(max, len(live)):] {
			removed[b] = true
		}
	}
	ret := make([]Bond, 0, len(bonds))
	for k, b := range bonds {
		if !removed[k] {
			ret = append(ret, b)
		}
	}
	if len(skipped) > 0 {
		return ret, Error{fmt.Sprintf("No covalent radius for atoms %s", strings.Join(skipped, ", ")), []string{"InferBonds"}, false}
	}
	return ret, nil
}
