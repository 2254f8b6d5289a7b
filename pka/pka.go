/*
 * pka.go, part of gopqr.
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
	"math"
	"slices"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/top"
	"gonum.org/v1/gonum/floats"
)

//Key identifies a titratable site: the residue itself, if Patch is empty,
//or one of its terminal patches.
type Key struct {
	Res   int
	Patch string
}

//Point is the average charge of a site at a pH.
type Point struct {
	PH     float64
	Charge float64
}

//Titration is the pKa of a site and its titration curve.
type Titration struct {
	Key
	Residue string //human-readable identifier of the residue
	PKa     float64
	Curve   []Point
}

//Result is what a Calculator returns for a molecule.
type Result struct {
	Titrations []Titration
}

//Lookup returns the pKa of the site of residue res named by patch, and false
//if the result has none.
func (R *Result) Lookup(res int, patch string) (float64, bool) {
	if R == nil {
		return 0, false
	}
	i := slices.IndexFunc(R.Titrations, func(t Titration) bool { return t.Res == res && t.Patch == patch })
	if i < 0 {
		return 0, false
	}
	return R.Titrations[i].PKa, true
}

//Titration returns the titration of the given site, or nil.
func (R *Result) Titration(k Key) *Titration {
	for i := range R.Titrations {
		if R.Titrations[i].Key == k {
			return &R.Titrations[i]
		}
	}
	return nil
}

//Calculator computes the pKa values of the titratable sites of a molecule.
//Implementations may be slow or remote, so they take a context.
type Calculator interface {
	Compute(ctx context.Context, mol *pqr.Molecule) (*Result, error)
}

//Grid is a range of pH values.
type Grid struct {
	Min  float64 `mapstructure:"min"`
	Max  float64 `mapstructure:"max"`
	Step float64 `mapstructure:"step"`
}

//DefaultGrid goes from 0 to 14 in steps of 0.1.
func DefaultGrid() Grid {
	return Grid{Min: 0, Max: 14, Step: 0.1}
}

//Values returns the pH values of the grid, both ends included.
func (G Grid) Values() []float64 {
	if G.Step <= 0 || G.Max < G.Min {
		return []float64{G.Min}
	}
	n := int(math.Round((G.Max-G.Min)/G.Step)) + 1
	if n < 2 {
		return []float64{G.Min}
	}
	return floats.Span(make([]float64, n), G.Min, G.Max)
}

//Protonated returns the fraction of a site with the given pKa that is
//protonated at pH, by the Henderson-Hasselbalch equation.
func Protonated(pH, pka float64) float64 {
	return 1 / (1 + math.Pow(10, pH-pka))
}

//chargeRange returns the charges of the deprotonated and the protonated
//forms of the template t.
func chargeRange(t *top.Residue) (deprot, prot float64, ok bool) {
	deprot, prot = math.Inf(1), math.Inf(-1)
	for _, s := range t.States {
		if s.Disulfide {
			continue
		}
		if s.Protonated {
			prot = math.Max(prot, s.Charge)
		} else {
			deprot = math.Min(deprot, s.Charge)
		}
	}
	if math.IsInf(deprot, 0) || math.IsInf(prot, 0) {
		return 0, 0, false
	}
	return deprot, prot, true
}

//Curve returns the average charge of a site of template t with the given
//pKa, at each pH of the grid.
func Curve(t *top.Residue, pka float64, g Grid) []Point {
	deprot, prot, ok := chargeRange(t)
	if !ok {
		return nil
	}
	ph := g.Values()
	ret := make([]Point, len(ph))
	for i, v := range ph {
		ret[i] = Point{PH: v, Charge: deprot + Protonated(v, pka)*(prot-deprot)}
	}
	return ret
}
