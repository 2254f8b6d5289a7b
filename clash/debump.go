/*
 * debump.go, part of gopqr.
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

package clash

import (
	"fmt"
	"slices"
	"strings"

	pqr "github.com/rmera/gopqr"
	v3 "github.com/rmera/gopqr/v3"
	"go.uber.org/zap"
)

//Debumper removes clashes by rotating groups of atoms around single bonds
//of the residue that contains them.
type Debumper struct {
	*Detector
	Log *zap.Logger
}

//NewDebumper returns a Debumper that uses the detector d. A nil logger discards messages.
func NewDebumper(d *Detector, logger *zap.Logger) *Debumper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Debumper{Detector: d, Log: logger}
}

//rotation is a set of atoms that moves around the bond anchor-pivot.
type rotation struct {
	anchor, pivot int
	moving        []int
}

//rotations returns the ways of moving exactly one atom of the clash c by a
//rotation around a bond of residue res that doesn't move atoms out of res.
//Rotations that move fewer atoms come first.
func (D *Debumper) rotations(res int, c Pair) []rotation {
	mol := D.Mol
	atoms := mol.Residue(res).Atoms
	ret := make([]rotation, 0)
	for _, a := range atoms {
		for _, b := range D.Graph.Neighbors(a) {
			if mol.Atom(b).Res != res {
				continue
			}
			side := D.Graph.FarSide(a, b)
			if side == nil {
				continue //ring
			}
			moving := slices.DeleteFunc(side, func(i int) bool { return i == b })
			if len(moving) == 0 {
				continue
			}
			if slices.ContainsFunc(moving, func(i int) bool { return mol.Atom(i).Res != res }) {
				continue
			}
			if slices.Contains(moving, c[0]) == slices.Contains(moving, c[1]) {
				continue
			}
			ret = append(ret, rotation{anchor: a, pivot: b, moving: moving})
		}
	}
	slices.SortStableFunc(ret, func(x, y rotation) int { return len(x.moving) - len(y.moving) })
	return ret
}

//clashSet returns the clashes that involve the given atoms.
func (D *Debumper) clashSet(atoms []int) []Pair {
	ret := make([]Pair, 0)
	for _, i := range atoms {
		for _, j := range D.AtomClashes(i) {
			p := newPair(i, j)
			if !slices.Contains(ret, p) {
				ret = append(ret, p)
			}
		}
	}
	return ret
}

//accept returns true if, after a rotation, c is gone and the moved atoms have
//no clash that wasn't there before.
func (D *Debumper) accept(c Pair, moving []int, before []Pair) bool {
	if D.Clashing(c[0], c[1]) {
		return false
	}
	for _, p := range D.clashSet(moving) {
		if !slices.Contains(before, p) {
			return false
		}
	}
	return true
}

//resolve tries to remove the clash c by rotating atoms of residue res. The
//smallest groups of atoms are tried first, with angles increasing in steps,
//each one tried in both directions. It returns true if the clash was
//removed. Otherwise, the coordinates are left as they were.
func (D *Debumper) resolve(res int, c Pair) bool {
	coords := D.Mol.Coords
	step := D.Opts.Step * pqr.Deg2Rad
	for _, rot := range D.rotations(res, c) {
		orig := v3.Zeros(len(rot.moving))
		orig.SomeVecs(coords, rot.moving)
		before := D.clashSet(rot.moving)
		tmp := v3.Zeros(len(rot.moving))
		for k := 1; k <= D.Opts.MaxAngles; k++ {
			for _, sign := range []float64{1, -1} {
				coords.SetVecs(orig, rot.moving)
				if _, err := bondRotate(coords, rot.anchor, rot.pivot, sign*float64(k)*step, rot.moving, tmp); err != nil {
					break
				}
				if D.accept(c, rot.moving, before) {
					D.Log.Debug("Clash removed", zap.String("between", D.Mol.AtomID(c[0])),
						zap.String("and", D.Mol.AtomID(c[1])), zap.Float64("angle", sign*float64(k)*D.Opts.Step))
					return true
				}
			}
		}
		coords.SetVecs(orig, rot.moving)
	}
	return false
}

//Residue removes the clashes of residue res, if it can, and returns a
//warning for each clash that is left. The debump state of the residue is
//updated along the way.
func (D *Debumper) Residue(res int) []pqr.Warning {
	r := D.Mol.Residue(res)
	clashes := D.ResidueClashes(res)
	if len(clashes) == 0 {
		r.Debump = pqr.Clean
		return nil
	}
	r.Debump = pqr.ClashDetected
	D.Log.Debug("Clashes found", zap.String("residue", D.Mol.ResidueID(res)), zap.Int("clashes", len(clashes)))
	r.Debump = pqr.Resolving
	for it := 0; it < D.Opts.MaxIterations && len(clashes) > 0; it++ {
		fixed := false
		for _, c := range clashes {
			if D.resolve(res, c) {
				fixed = true
				break
			}
		}
		if !fixed {
			break
		}
		clashes = D.ResidueClashes(res)
	}
	if len(clashes) == 0 {
		r.Debump = pqr.Resolved
		return nil
	}
	r.Debump = pqr.Unresolved
	ret := make([]pqr.Warning, 0, len(clashes))
	for _, c := range clashes {
		names := []string{D.Mol.Atom(c[0]).Name, D.Mol.Atom(c[1]).Name}
		msg := fmt.Sprintf("Unable to debump %s: %s is %.2f A from %s", D.Mol.ResidueID(res),
			D.Mol.AtomID(c[0]), pqr.Distance(D.Mol.Coord(c[0]), D.Mol.Coord(c[1])), D.Mol.AtomID(c[1]))
		D.Log.Warn(msg)
		ret = append(ret, pqr.Warning{Kind: pqr.UnresolvedClash, Residue: res, Atoms: names, Message: msg})
	}
	return ret
}

//Residues debumps the given residues, in order.
func (D *Debumper) Residues(res []int) []pqr.Warning {
	var ret []pqr.Warning
	for _, i := range res {
		ret = append(ret, D.Residue(i)...)
	}
	return ret
}

//All debumps every residue with atoms.
func (D *Debumper) All() []pqr.Warning {
	res := make([]int, 0, len(D.Mol.Residues))
	for i, r := range D.Mol.Residues {
		if len(r.Atoms) > 0 {
			res = append(res, i)
		}
	}
	w := D.Residues(res)
	unresolved := make([]string, 0)
	for _, v := range w {
		if id := D.Mol.ResidueID(v.Residue); !slices.Contains(unresolved, id) {
			unresolved = append(unresolved, id)
		}
	}
	if len(unresolved) > 0 {
		D.Log.Info("Residues with clashes left", zap.String("residues", strings.Join(unresolved, ", ")))
	}
	return w
}
