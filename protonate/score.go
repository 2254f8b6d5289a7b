/*
 * score.go, part of gopqr.
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
	v3 "github.com/rmera/gopqr/v3"
)

//maxHBondH is the longest bond between a donor and its hydrogen that we expect.
const maxHBondH = 1.1

//hbond returns true if the hydrogen h, bonded to the donor d, forms a
//hydrogen bond with the acceptor a.
func (P *Protonator) hbond(d, h, a *v3.Matrix) bool {
	if pqr.Distance(d, a) > P.Opts.HBondDistance {
		return false
	}
	return pqr.Angle(h, d, a) <= P.Opts.HBondAngle
}

//acceptor returns true if atom i can accept a hydrogen bond, when the
//atoms in removed are gone and the hydrogens in hyd are added. Oxygens always
//can, nitrogens only when they carry no hydrogen.
func (P *Protonator) acceptor(i int, hyd []Hydrogen, removed []int) bool {
	at := P.Mol.Atom(i)
	if at.Deleted || slices.Contains(removed, i) {
		return false
	}
	switch at.Element {
	case "O":
		return true
	case "N":
	default:
		return false
	}
	for _, h := range hyd {
		if h.Parent == i {
			return false
		}
	}
	for _, n := range P.Graph.Neighbors(i) {
		if P.Mol.Atom(n).Hydrogen() && !slices.Contains(removed, n) {
			return false
		}
	}
	return true
}

//parent returns the heavy atom bonded to the hydrogen i, or -1.
func (P *Protonator) parent(i int) int {
	for _, n := range P.Graph.Neighbors(i) {
		if !P.Mol.Atom(n).Hydrogen() {
			return n
		}
	}
	return -1
}

//apart returns true if atoms i and j belong to different residues and
//are more than three bonds away.
func (P *Protonator) apart(i, j int) bool {
	if P.Mol.Atom(i).Res == P.Mol.Atom(j).Res {
		return false
	}
	return P.Graph.Separation(i, j, 3) < 0
}

//donors returns the polar hydrogens that residue res has with the changes
//given: the live ones not in removed, followed by those in hyd.
func (P *Protonator) donors(res int, hyd []Hydrogen, removed []int) []Hydrogen {
	ret := make([]Hydrogen, 0, len(hyd)+4)
	for _, i := range P.Mol.Residue(res).Atoms {
		if !P.Mol.Atom(i).Hydrogen() || slices.Contains(removed, i) {
			continue
		}
		d := P.parent(i)
		if d >= 0 && P.Mol.Atom(d).Polar() {
			ret = append(ret, Hydrogen{Name: P.Mol.Atom(i).Name, Parent: d, Pos: P.Mol.Coord(i)})
		}
	}
	for _, h := range hyd {
		if P.Mol.Atom(h.Parent).Polar() {
			ret = append(ret, h)
		}
	}
	return ret
}

//score returns the number of hydrogen bonds between residue res and the rest
//of the molecule, and the number of clashes of the hydrogens in hyd, when the
//atoms in removed are taken away and those in hyd added.
func (P *Protonator) score(res int, hyd []Hydrogen, removed []int) (hbonds, clashes int) {
	mol := P.Mol
	D := P.Debumper
	for _, h := range P.donors(res, hyd, removed) {
		dpos := mol.Coord(h.Parent)
		for _, a := range D.Near(dpos, P.Opts.HBondDistance+0.01, removed) {
			if !P.apart(h.Parent, a) || !P.acceptor(a, nil, removed) {
				continue
			}
			if P.hbond(dpos, h.Pos, mol.Coord(a)) {
				hbonds++
			}
		}
	}
	for _, a := range mol.Residue(res).Atoms {
		if !P.acceptor(a, hyd, removed) {
			continue
		}
		apos := mol.Coord(a)
		for _, h := range D.Near(apos, P.Opts.HBondDistance+maxHBondH, removed) {
			if !mol.Atom(h).Hydrogen() || mol.Atom(h).Res == res {
				continue
			}
			d := P.parent(h)
			if d < 0 || !mol.Atom(d).Polar() || !P.apart(d, a) {
				continue
			}
			if P.hbond(mol.Coord(d), mol.Coord(h), apos) {
				hbonds++
			}
		}
	}
	for _, h := range hyd {
		clashes += len(D.Probe(h.Pos, "H", h.Parent, removed))
	}
	return hbonds, clashes
}

//evaluate fills the score of c for residue res, with the atoms in removed
//replaced by the hydrogens of c.
func (P *Protonator) evaluate(res int, c *Candidate, removed []int) {
	c.HBonds, c.Clashes = P.score(res, c.Hydrogens, removed)
	c.Score = float64(c.HBonds) - P.Opts.ClashPenalty*float64(c.Clashes)
}
