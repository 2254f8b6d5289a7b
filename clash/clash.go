/*
 * clash.go, part of gopqr.
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
	"math"
	"slices"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/chemgraph"
	"github.com/rmera/gopqr/top"
	v3 "github.com/rmera/gopqr/v3"
)

//Options for the detection and the resolution of clashes.
type Options struct {
	Tolerance      float64 `mapstructure:"tolerance"`       //how much two atoms can overlap before they clash, in A
	HBondAllowance float64 `mapstructure:"hbond_allowance"` //extra overlap allowed between a polar hydrogen and an acceptor
	Step           float64 `mapstructure:"step"`            //angle step for the rotations, in degrees
	MaxAngles      int     `mapstructure:"max_angles"`      //number of steps tried in each direction
	MaxIterations  int     `mapstructure:"max_iterations"`  //rounds of rotations per residue
}

//DefaultOptions returns the usual clash options.
func DefaultOptions() Options {
	return Options{Tolerance: 1.0, HBondAllowance: 0.5, Step: 5, MaxAngles: 36, MaxIterations: 20}
}

//Pair is a pair of atoms in a clash, the lower index first.
type Pair [2]int

func newPair(i, j int) Pair {
	if j < i {
		i, j = j, i
	}
	return Pair{i, j}
}

//Detector finds atoms that are closer than their radii allow. Atoms up to two
//bonds apart never clash.
type Detector struct {
	Mol   *pqr.Molecule
	Graph *chemgraph.Graph
	Lib   *top.Library
	Opts  Options
}

//NewDetector returns a Detector for mol.
func NewDetector(mol *pqr.Molecule, g *chemgraph.Graph, lib *top.Library, opts Options) *Detector {
	return &Detector{Mol: mol, Graph: g, Lib: lib, Opts: opts}
}

//Radius returns the radius used for the atom i: the one in its template,
//or the van der Waals radius of its element.
func (D *Detector) Radius(i int) float64 {
	at := D.Mol.Atom(i)
	r := D.Mol.Residue(at.Res)
	if D.Lib != nil {
		if t, ok := D.Lib.Residue(r.Body.Template); ok {
			if ta := t.Atom(at.Name); ta != nil && ta.Radius > 0 {
				return ta.Radius
			}
		}
		for _, s := range r.Patches {
			if p, ok := D.Lib.Patch(s.Template); ok {
				if pa := p.Atom(at.Name); pa != nil && pa.Radius > 0 {
					return pa.Radius
				}
			}
		}
	}
	return pqr.VdwRadius(at.Element)
}

//polarH returns true if i is a hydrogen bonded to a nitrogen or an oxygen.
func (D *Detector) polarH(i int) bool {
	if !D.Mol.Atom(i).Hydrogen() {
		return false
	}
	for _, n := range D.Graph.Neighbors(i) {
		if D.Mol.Atom(n).Polar() {
			return true
		}
	}
	return false
}

//limit returns the distance under which atoms with radii r1 and r2 clash.
//hbond is true when one of them is a polar hydrogen and the other an acceptor.
func (D *Detector) limit(r1, r2 float64, hbond bool) float64 {
	l := r1 + r2 - D.Opts.Tolerance
	if hbond {
		l -= D.Opts.HBondAllowance
	}
	return l
}

func (D *Detector) hbondPair(i, j int) bool {
	a, b := D.Mol.Atom(i), D.Mol.Atom(j)
	return (D.polarH(i) && b.Polar()) || (D.polarH(j) && a.Polar())
}

//Threshold returns the distance under which atoms i and j clash, if they are
//not bonded.
func (D *Detector) Threshold(i, j int) float64 {
	return D.limit(D.Radius(i), D.Radius(j), D.hbondPair(i, j))
}

//Clashing returns true if the atoms i and j clash.
func (D *Detector) Clashing(i, j int) bool {
	if i == j || D.Mol.Atom(i).Deleted || D.Mol.Atom(j).Deleted {
		return false
	}
	if pqr.Distance(D.Mol.Coord(i), D.Mol.Coord(j)) >= D.Threshold(i, j) {
		return false
	}
	return D.Graph.Separation(i, j, 2) < 0
}

//Near returns the live atoms, other than those in skip, that are nearer
//than cutoff to pos, in increasing order.
func (D *Detector) Near(pos *v3.Matrix, cutoff float64, skip []int) []int {
	p := pos.Vec(0)
	ret := make([]int, 0)
	for i, at := range D.Mol.Atoms {
		if at.Deleted || slices.Contains(skip, i) {
			continue
		}
		q := D.Mol.Coords.Vec(i)
		if math.Abs(p[0]-q[0]) > cutoff || math.Abs(p[1]-q[1]) > cutoff || math.Abs(p[2]-q[2]) > cutoff {
			continue
		}
		if pqr.Distance(pos, D.Mol.Coord(i)) < cutoff {
			ret = append(ret, i)
		}
	}
	return ret
}

//maxRadius is an upper bound for the radius of the atom pairs, used to
//discard far atoms quickly.
const maxRadius = 3.0

//AtomClashes returns the atoms that clash with i, in increasing order.
func (D *Detector) AtomClashes(i int) []int {
	if D.Mol.Atom(i).Deleted {
		return nil
	}
	near := D.Graph.Within(i, 2)
	ret := make([]int, 0)
	for _, j := range D.Near(D.Mol.Coord(i), D.Radius(i)+maxRadius, near) {
		if pqr.Distance(D.Mol.Coord(i), D.Mol.Coord(j)) < D.Threshold(i, j) {
			ret = append(ret, j)
		}
	}
	return ret
}

//Probe returns the atoms that would clash with an atom of the given element
//at pos, bonded to parent. Atoms in skip are ignored, as are the parent and
//the atoms bonded to it.
func (D *Detector) Probe(pos *v3.Matrix, element string, parent int, skip []int) []int {
	r := pqr.VdwRadius(element)
	excluded := append(D.Graph.Within(parent, 1), skip...)
	polarH := element == "H" && D.Mol.Atom(parent).Polar()
	ret := make([]int, 0)
	for _, j := range D.Near(pos, r+maxRadius, excluded) {
		acc := D.Mol.Atom(j).Polar()
		hb := (polarH && acc) || (D.polarH(j) && (element == "N" || element == "O"))
		if pqr.Distance(pos, D.Mol.Coord(j)) < D.limit(r, D.Radius(j), hb) {
			ret = append(ret, j)
		}
	}
	return ret
}

//ResidueClashes returns the clashes that involve at least one atom of residue res.
func (D *Detector) ResidueClashes(res int) []Pair {
	ret := make([]Pair, 0)
	for _, i := range D.Mol.Residue(res).Atoms {
		for _, j := range D.AtomClashes(i) {
			p := newPair(i, j)
			if !slices.Contains(ret, p) {
				ret = append(ret, p)
			}
		}
	}
	slices.SortFunc(ret, comparePairs)
	return ret
}

//Detect returns all the clashes in the molecule.
func (D *Detector) Detect() []Pair {
	ret := make([]Pair, 0)
	for i, at := range D.Mol.Atoms {
		if at.Deleted {
			continue
		}
		for _, j := range D.AtomClashes(i) {
			if j > i {
				ret = append(ret, Pair{i, j})
			}
		}
	}
	return ret
}

func comparePairs(a, b Pair) int {
	if a[0] != b[0] {
		return a[0] - b[0]
	}
	return a[1] - b[1]
}

//bondRotate rotates the atoms torotate of coord by angle radians around the
//axis from at1 to at2. coord is modified and returned.
func bondRotate(coord *v3.Matrix, at1, at2 int, angle float64, torotate []int, temp ...*v3.Matrix) (*v3.Matrix, error) {
	var tmp *v3.Matrix
	if len(temp) > 0 && temp[0].NVecs() == len(torotate) {
		tmp = temp[0]
	} else {
		tmp = v3.Zeros(len(torotate))
	}
	a1 := coord.VecView(at1)
	a2 := coord.VecView(at2)
	tmp.SomeVecs(coord, torotate)
	nc, err := pqr.RotateAbout(tmp, a1, a2, angle)
	if err != nil {
		return nil, err
	}
	coord.SetVecs(nc, torotate)
	return coord, nil
}
