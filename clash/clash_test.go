/*
 * clash_test.go, part of gopqr.
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
	"strings"
	"testing"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/chemgraph"
	"github.com/rmera/gopqr/top"
	v3 "github.com/rmera/gopqr/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(name, element, res string, seq int, c *v3.Matrix) pqr.Record {
	return pqr.Record{Name: name, Element: element, ResName: res, ResSeq: seq, Chain: "A", X: c.At(0, 0), Y: c.At(0, 1), Z: c.At(0, 2)}
}

func detector(Te *testing.T, lib *top.Library, recs []pqr.Record) *Detector {
	mol, _, err := pqr.NewMolecule(recs)
	require.NoError(Te, err)
	g := chemgraph.New(mol, lib, chemgraph.DefaultOptions(), nil)
	return NewDetector(mol, g, lib, DefaultOptions())
}

//spheres returns a detector for three atoms with a radius of 1.5 A, at 1 A and
//4 A from each other.
func spheres(Te *testing.T) *Detector {
	lib, err := top.Read(strings.NewReader("residues:\n  - {name: XX, atoms: [{name: A, element: C, radius: 1.5}]}\n"))
	require.NoError(Te, err)
	D := detector(Te, lib, []pqr.Record{
		rec("A", "C", "XX", 1, v3.NewVec(0, 0, 0)),
		rec("A", "C", "XX", 2, v3.NewVec(1, 0, 0)),
		rec("A", "C", "XX", 3, v3.NewVec(5, 0, 0)),
	})
	for _, r := range D.Mol.Residues {
		r.Body.Template = "XX"
	}
	return D
}

func TestDetector(Te *testing.T) {
	D := spheres(Te)
	assert.Equal(Te, 1.5, D.Radius(0))
	assert.InDelta(Te, 2.0, D.Threshold(0, 1), 1e-9)
	assert.True(Te, D.Clashing(0, 1))
	assert.True(Te, D.Clashing(1, 0))
	assert.False(Te, D.Clashing(1, 2))
	assert.False(Te, D.Clashing(0, 0))
	assert.Equal(Te, []Pair{{0, 1}}, D.Detect())
	assert.Equal(Te, []Pair{{0, 1}}, D.ResidueClashes(1))
	assert.Empty(Te, D.ResidueClashes(2))
	assert.Equal(Te, []int{1}, D.AtomClashes(0))
}

func TestBondedNeverClash(Te *testing.T) {
	//water-like fragment, with its atoms squeezed together
	D := detector(Te, top.Default(), []pqr.Record{
		rec("O1", "O", "LIG", 1, v3.NewVec(0, 0, 0)),
		rec("H1", "H", "LIG", 1, v3.NewVec(0.9, 0, 0)),
		rec("H2", "H", "LIG", 1, v3.NewVec(0.2, 0.88, 0)),
	})
	require.True(Te, D.Graph.Bonded(0, 1))
	require.True(Te, D.Graph.Bonded(0, 2))
	assert.False(Te, D.Graph.Bonded(1, 2))
	//1.12 A apart, under the 1.2 A limit for two hydrogens
	assert.Less(Te, pqr.Distance(D.Mol.Coord(1), D.Mol.Coord(2)), D.Threshold(1, 2))
	assert.False(Te, D.Clashing(1, 2))
	assert.Empty(Te, D.Detect())
}

func TestHBondAllowance(Te *testing.T) {
	D := detector(Te, top.Default(), []pqr.Record{
		rec("O1", "O", "LIG", 1, v3.NewVec(0, 0, 0)),
		rec("H1", "H", "LIG", 1, v3.NewVec(0.96, 0, 0)),
		rec("O", "O", "ACC", 2, v3.NewVec(2.36, 0, 0)),
		rec("C1", "C", "LIG", 3, v3.NewVec(10, 0, 0)),
		rec("H1", "H", "LIG", 3, v3.NewVec(11.09, 0, 0)),
		rec("O", "O", "ACC", 4, v3.NewVec(12.49, 0, 0)),
	})
	require.True(Te, D.Graph.Bonded(0, 1))
	require.True(Te, D.Graph.Bonded(3, 4))
	//1.10+1.52-1.0, less the allowance for the polar hydrogen
	assert.InDelta(Te, 1.12, D.Threshold(1, 2), 1e-9)
	assert.InDelta(Te, 1.62, D.Threshold(4, 5), 1e-9)
	assert.False(Te, D.Clashing(1, 2))
	assert.True(Te, D.Clashing(4, 5))
	assert.Equal(Te, []Pair{{4, 5}}, D.Detect())

	assert.Empty(Te, D.Probe(v3.NewVec(0.96, 0, 0), "H", 0, nil))
	assert.Equal(Te, []int{2}, D.Probe(v3.NewVec(1.96, 0, 0), "H", 0, nil))
	assert.Equal(Te, []int{5}, D.Probe(v3.NewVec(11.09, 0, 0), "H", 3, []int{4}))
}

//butane returns a four-carbon chain in the trans conformation. If obstacle is
//true, a carbon of another residue is placed almost where the last atom is.
func butane(Te *testing.T, obstacle bool) *Debumper {
	C1 := v3.NewVec(0, 0, 0)
	C2 := v3.NewVec(1.53, 0, 0)
	C3, err := pqr.Place(1.53, 111, 0, C1, C2)
	require.NoError(Te, err)
	C4, err := pqr.Place(1.53, 111, 180, C1, C2, C3)
	require.NoError(Te, err)
	recs := []pqr.Record{
		rec("C1", "C", "LIG", 1, C1),
		rec("C2", "C", "LIG", 1, C2),
		rec("C3", "C", "LIG", 1, C3),
		rec("C4", "C", "LIG", 1, C4),
	}
	if obstacle {
		X, err := pqr.Place(2.6, 111, 172, C1, C2, C3)
		require.NoError(Te, err)
		recs = append(recs, rec("C", "C", "OBS", 2, X))
	}
	return NewDebumper(detector(Te, top.Default(), recs), nil)
}

func TestDebump(Te *testing.T) {
	D := butane(Te, true)
	mol := D.Mol
	require.Equal(Te, []Pair{{3, 4}}, D.Detect())
	X := v3.Zeros(1)
	X.Copy(mol.Coord(4))
	w := D.Residue(0)
	assert.Empty(Te, w)
	assert.Equal(Te, pqr.Resolved, mol.Residue(0).Debump)
	assert.Empty(Te, D.Detect())
	//the smallest group, C4 alone, is rotated by the smallest angle step that clears the clash.
	dih := pqr.Dihedral(mol.Coord(0), mol.Coord(1), mol.Coord(2), mol.Coord(3))
	assert.InDelta(Te, -115, dih, 1e-4)
	assert.InDelta(Te, 1.53, pqr.Distance(mol.Coord(2), mol.Coord(3)), 1e-6)
	assert.InDelta(Te, 0, pqr.Distance(X, mol.Coord(4)), 1e-12)
}

func TestDebumpClean(Te *testing.T) {
	D := butane(Te, false)
	orig := v3.Zeros(D.Mol.Len())
	orig.Copy(D.Mol.Coords)
	assert.Empty(Te, D.All())
	assert.Equal(Te, pqr.Clean, D.Mol.Residue(0).Debump)
	assert.Equal(Te, orig.RawMatrix().Data, D.Mol.Coords.RawMatrix().Data)
	//a second pass changes nothing either
	assert.Empty(Te, D.All())
	assert.Equal(Te, orig.RawMatrix().Data, D.Mol.Coords.RawMatrix().Data)
}

func TestUnresolved(Te *testing.T) {
	D := NewDebumper(spheres(Te), nil)
	w := D.Residue(0)
	require.Len(Te, w, 1)
	assert.Equal(Te, pqr.UnresolvedClash, w[0].Kind)
	assert.Equal(Te, []string{"A", "A"}, w[0].Atoms)
	assert.Equal(Te, pqr.Unresolved, D.Mol.Residue(0).Debump)
	assert.Empty(Te, D.Residue(2))
	assert.Equal(Te, pqr.Clean, D.Mol.Residue(2).Debump)
}
