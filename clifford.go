/*
 * clifford.go, part of gopqr.
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

//A paravector with a scalar, a pseudoscalar, a vector and a bivector part.
//Rotations of 3D vectors only need the real vector part of the result.
type paravector struct {
	Real  float64
	Imag  float64
	Vreal [3]float64
	Vimag [3]float64
}

func paravectorFromVector(v [3]float64) paravector {
	return paravector{Vreal: v}
}

//reverse returns the Clifford reverse of P.
func (P paravector) reverse() paravector {
	R := P
	R.Imag = -P.Imag
	for i := range R.Vimag {
		R.Vimag[i] = -P.Vimag[i]
	}
	return R
}

//cliProduct is the Clifford product of 2 paravectors. The bivector part of the
//result is left as zero, since it vanishes when rotating real vectors.
func cliProduct(A, B paravector) paravector {
	var R paravector
	R.Real = A.Real*B.Real - A.Imag*B.Imag
	R.Imag = A.Real*B.Imag + A.Imag*B.Real
	for i := 0; i < 3; i++ {
		R.Real += A.Vreal[i]*B.Vreal[i] - A.Vimag[i]*B.Vimag[i]
		R.Imag += A.Vreal[i]*B.Vimag[i] + A.Vimag[i]*B.Vreal[i]
	}
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		k := (i + 2) % 3
		R.Vreal[i] = A.Real*B.Vreal[i] + B.Real*A.Vreal[i] - A.Imag*B.Vimag[i] - B.Imag*A.Vimag[i] +
			A.Vimag[k]*B.Vreal[j] - A.Vimag[j]*B.Vreal[k] + A.Vreal[k]*B.Vimag[j] - A.Vreal[j]*B.Vimag[k]
	}
	return R
}

//cliRotation rotates A by angle radians around axis, which must be normalized.
func cliRotation(A paravector, axis [3]float64, angle float64) paravector {
	var R paravector
	R.Real = math.Cos(angle / 2.0)
	s := math.Sin(angle / 2.0)
	for i := 0; i < 3; i++ {
		R.Vimag[i] = s * axis[i]
	}
	return cliProduct(cliProduct(R.reverse(), A), R)
}

//RotateAbout returns the coordinates in coords rotated by angle radians
//around the axis that goes from ax1 to ax2. The rotation is right-handed.
//coords is not modified.
func RotateAbout(coords, ax1, ax2 *v3.Matrix, angle float64) (*v3.Matrix, error) {
	axis, err := Normalize(diff(ax2, ax1))
	if err != nil {
		return nil, errDecorate(err, "RotateAbout")
	}
	o := ax1.Vec(0)
	n := coords.NVecs()
	ret := v3.Zeros(n)
	for i := 0; i < n; i++ {
		v := coords.Vec(i)
		p := paravectorFromVector([3]float64{v[0] - o[0], v[1] - o[1], v[2] - o[2]})
		r := cliRotation(p, axis.Vec(0), angle).Vreal
		ret.SetVec(i, r[0]+o[0], r[1]+o[1], r[2]+o[2])
	}
	return ret, nil
}
