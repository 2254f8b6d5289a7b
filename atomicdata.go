/*
 * atomicdata.go, part of gopqr.
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

//Covalent radii, from Cordero et al., 2008 (DOI:10.1039/B801115J).
//Only common bio-elements are present.
var symbolCovrad = map[string]float64{
	"H":  0.4, //0.31 in the reference. H has only one bond, so the extra ones are pruned.
	"C":  0.76,
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Se": 1.2,
	"K":  2.03,
	"Ca": 1.76,
	"Mg": 1.41,
	"Cl": 1.02,
	"Na": 1.66,
	"Cu": 1.32,
	"Zn": 1.22,
	"Co": 1.5,
	"Fe": 1.52,
	"Mn": 1.61,
	"Si": 1.11,
	"F":  0.57,
	"Br": 1.2,
	"I":  1.39,
}

//van der Waals radii from 10.1021/j100785a001 and 10.1021/jp8111556,
//metal radii from 10.1023/A:1011625728803
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"C":  1.70,
	"O":  1.52,
	"N":  1.55,
	"P":  1.80,
	"S":  1.80,
	"Se": 1.90,
	"K":  2.75,
	"Ca": 2.31,
	"Mg": 1.73,
	"Cl": 1.75,
	"Na": 2.27,
	"Cu": 2.00,
	"Zn": 2.02,
	"Co": 1.95,
	"Fe": 1.96,
	"Mn": 1.96,
	"Si": 2.10,
	"F":  1.47,
	"Br": 1.83,
	"I":  1.98,
}

//Maximum number of bonds. Elements not here are not checked.
var symbolMaxBonds = map[string]int{
	"H":  1,
	"C":  4,
	"O":  2,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}

//DefaultVdwRadius is used for elements without tabulated radius.
const DefaultVdwRadius = 1.70

//CovalentRadius returns the covalent radius of the element, and false if it is not known.
func CovalentRadius(element string) (float64, bool) {
	r, ok := symbolCovrad[element]
	return r, ok
}

//VdwRadius returns the van der Waals radius of the element, or DefaultVdwRadius.
func VdwRadius(element string) float64 {
	if r, ok := symbolVdwrad[element]; ok {
		return r
	}
	return DefaultVdwRadius
}

//MaxBonds returns the maximum number of bonds for the element, 0 meaning no limit.
func MaxBonds(element string) int {
	return symbolMaxBonds[element]
}
