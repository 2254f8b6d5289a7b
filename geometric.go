/*
 * geometric.go, part of gopqr.
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
	"math"

	v3 "github.com/rmera/gopqr/v3"
)

//Epsilon is the threshold under which lengths and cosine differences are
//taken as zero by the geometric functions.
const Epsilon = 1e-7

const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)

//All the functions in this file use only the first vector of each
//matrix given. None of them modifies its arguments.

func diff(a, b *v3.Matrix) *v3.Matrix {
	av, bv := a.Vec(0), b.Vec(0)
	return v3.NewVec(av[0]-bv[0], av[1]-bv[1], av[2]-bv[2])
}

//Distance returns the distance between a and b.
func Distance(a, b *v3.Matrix) float64 {
	return diff(a, b).Norm(2)
}

//Dot returns the dot product of a and b
func Dot(a, b *v3.Matrix) float64 {
	return a.Dot(b)
}

//Cross returns the cross product of a and b, as a new vector.
func Cross(a, b *v3.Matrix) *v3.Matrix {
	ret := v3.Zeros(1)
	ret.Cross(a, b)
	return ret
}

//Normalize returns a new unit vector with the direction of a. It returns an
//error if the norm of a is under Epsilon.
func Normalize(a *v3.Matrix) (*v3.Matrix, error) {
	n := a.VecView(0).Norm(2)
	if n < Epsilon {
		return nil, Error{"Vector too short to be normalized", []string{"Normalize"}, true}
	}
	ret := v3.Zeros(1)
	ret.Unit(a)
	return ret, nil
}

func clamp(c float64) float64 {
	return math.Max(-1, math.Min(1, c))
}

//Angle returns the angle a-b-c in degrees, with b as the vertex. The
//result is in [0,180], and it is 0 if one of the arms has zero length.
func Angle(a, b, c *v3.Matrix) float64 {
	u := diff(a, b)
	w := diff(c, b)
	nu := u.Norm(2)
	nw := w.Norm(2)
	if nu < Epsilon || nw < Epsilon {
		return 0
	}
	return math.Acos(clamp(u.Dot(w)/(nu*nw))) * Rad2Deg
}

//Dihedral returns the dihedral angle a-b-c-d in degrees, in [-180,180].
//Parallel planes give exactly 0 or 180. Collinear or degenerate input gives 0.
func Dihedral(a, b, c, d *v3.Matrix) float64 {
	bc := diff(c, b)
	n1 := Cross(diff(a, b), bc)
	n2 := Cross(diff(d, c), bc)
	l1 := n1.Norm(2)
	l2 := n2.Norm(2)
	if l1 < Epsilon || l2 < Epsilon {
		return 0
	}
	scal := n1.Dot(n2) / (l1 * l2)
	if math.Abs(scal+1) < Epsilon {
		return 180
	}
	if math.Abs(scal-1) < Epsilon {
		return 0
	}
	angle := math.Acos(clamp(scal)) * Rad2Deg
	if Cross(n1, n2).Dot(bc) < 0 {
		angle = -angle
	}
	return angle
}

//addScaled adds f times the first vector of v to r.
func addScaled(r *[3]float64, f float64, v *v3.Matrix) {
	w := v.Vec(0)
	r[0] += f * w[0]
	r[1] += f * w[1]
	r[2] += f * w[2]
}

//Place returns the position of an atom from internal coordinates: length is
//the bond to the last reference, angle (degrees) is measured at the last
//reference and dihedral (degrees) is defined by the 3 references and the
//new atom. With 2 references the dihedral is ignored and the atom is put on
//an arbitrary plane containing the references. With 1 reference, the atom
//is put length away along x.
func Place(length, angle, dihedral float64, refs ...*v3.Matrix) (*v3.Matrix, error) {
	switch len(refs) {
	case 1:
		r := refs[0].Vec(0)
		return v3.NewVec(r[0]+length, r[1], r[2]), nil
	case 2:
		axis, err := Normalize(diff(refs[1], refs[0]))
		if err != nil {
			return nil, errDecorate(err, "Place")
		}
		av := axis.Vec(0)
		idx := 0
		for i := 1; i < 3; i++ {
			if math.Abs(av[i]) < math.Abs(av[idx]) {
				idx = i
			}
		}
		e := v3.Zeros(1)
		e.Set(0, idx, 1)
		perp, err := Normalize(Cross(axis, e))
		if err != nil {
			return nil, errDecorate(err, "Place")
		}
		th := angle * Deg2Rad
		r := refs[1].Vec(0)
		addScaled(&r, -length*math.Cos(th), axis)
		addScaled(&r, length*math.Sin(th), perp)
		return v3.NewVec(r[0], r[1], r[2]), nil
	case 3:
		a, b, c := refs[0], refs[1], refs[2]
		bc, err := Normalize(diff(c, b))
		if err != nil {
			return nil, errDecorate(err, "Place")
		}
		n, err := Normalize(Cross(diff(b, a), bc))
		if err != nil {
			return nil, Error{"Collinear reference atoms", []string{"Place"}, true}
		}
		m := Cross(n, bc)
		th := angle * Deg2Rad
		ph := dihedral * Deg2Rad
		r := c.Vec(0)
		addScaled(&r, -length*math.Cos(th), bc)
		addScaled(&r, length*math.Sin(th)*math.Cos(ph), m)
		addScaled(&r, length*math.Sin(th)*math.Sin(ph), n)
		return v3.NewVec(r[0], r[1], r[2]), nil
	}
	return nil, Error{"Place needs 1 to 3 reference atoms", []string{"Place"}, true}
}
