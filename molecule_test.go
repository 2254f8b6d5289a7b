/*
 * molecule_test.go, part of gopqr.
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
	"testing"

	v3 "github.com/rmera/gopqr/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waterRecords() []Record {
	return []Record{
		{Serial: 1, Name: "O", ResName: "HOH", ResSeq: 1, Chain: "W", X: 0, Y: 0, Z: 0},
		{Serial: 2, Name: "H1", ResName: "HOH", ResSeq: 1, Chain: "W", X: 0.96, Y: 0, Z: 0},
		{Serial: 3, Name: "H2", ResName: "HOH", ResSeq: 1, Chain: "W", X: -0.24, Y: 0.93, Z: 0},
	}
}

func TestNewMolecule(Te *testing.T) {
	recs := []Record{
		{Serial: 1, Name: "N", ResName: "SER", ResSeq: 1, Chain: "A", AltLoc: "A", X: 0, Y: 0, Z: 0},
		{Serial: 2, Name: "CA", ResName: "SER", ResSeq: 1, Chain: "A", X: 1.46, Y: 0, Z: 0},
		{Serial: 3, Name: "N", ResName: "SER", ResSeq: 1, Chain: "A", AltLoc: "B", X: 0.1, Y: 0, Z: 0},
		{Serial: 4, Name: "N", ResName: "GLY", ResSeq: 2, Chain: "A", X: 4, Y: 0, Z: 0},
	}
	recs = append(recs, waterRecords()...)
	mol, warns, err := NewMolecule(recs)
	require.NoError(Te, err)
	assert.Equal(Te, 6, mol.Len())
	assert.Equal(Te, 6, mol.Coords.NVecs())
	assert.Len(Te, mol.Chains, 2)
	assert.Len(Te, mol.Residues, 3)
	require.Len(Te, warns, 1)
	assert.Equal(Te, MultipleOccupancy, warns[0].Kind)
	assert.Equal(Te, []string{"N"}, warns[0].Atoms)
	assert.True(Te, mol.Residue(0).MultiOcc)
	//the first location is kept
	n := mol.AtomByName(0, "N")
	assert.Equal(Te, 0.0, mol.Coord(n).At(0, 0))
	assert.Equal(Te, "N", mol.Atom(mol.AtomByName(1, "N")).Element)
	assert.Equal(Te, "H", mol.Atom(mol.AtomByName(2, "H2")).Element)
	assert.Equal(Te, 1, mol.Next(0))
	assert.Equal(Te, -1, mol.Next(1))
	assert.Equal(Te, -1, mol.Prev(2))

	_, _, err = NewMolecule([]Record{{Name: "CA", ResName: " "}})
	assert.Error(Te, err)
	dup := []Record{{Name: "CA", ResName: "ALA", ResSeq: 1}, {Name: "CA", ResName: "ALA", ResSeq: 1}}
	_, _, err = NewMolecule(dup)
	assert.Error(Te, err)
}

func TestAddRemoveAtom(Te *testing.T) {
	mol, _, err := NewMolecule(waterRecords())
	require.NoError(Te, err)
	v := mol.Version()
	_, err = mol.AddAtom(0, "H1", "H", nil, FromTemplate)
	assert.Error(Te, err)
	i, err := mol.AddAtom(0, "H3", "H", v3.NewVec(0, 0, 1), FromTemplate)
	require.NoError(Te, err)
	assert.Equal(Te, 3, i)
	assert.Equal(Te, 4, mol.Coords.NVecs())
	assert.Equal(Te, [3]float64{0, 0, 1}, mol.Coords.Vec(3))
	assert.Greater(Te, mol.Version(), v)
	v = mol.Version()
	mol.RemoveAtom(1)
	assert.True(Te, mol.Atom(1).Deleted)
	assert.Equal(Te, -1, mol.AtomByName(0, "H1"))
	assert.Equal(Te, []int{0, 2, 3}, mol.Ordered())
	assert.Greater(Te, mol.Version(), v)
	//indexes are stable
	assert.Equal(Te, "H3", mol.Atom(3).Name)
}

func TestInferBonds(Te *testing.T) {
	recs := append(waterRecords(),
		Record{Serial: 4, Name: "C1", ResName: "LIG", ResSeq: 2, Chain: "W", X: 10, Y: 0, Z: 0},
		Record{Serial: 5, Name: "X1", Element: "Xx", ResName: "LIG", ResSeq: 2, Chain: "W", X: 11, Y: 0, Z: 0},
		//a hydrogen close to two atoms only keeps the shortest bond
		Record{Serial: 6, Name: "H9", ResName: "LIG", ResSeq: 2, Chain: "W", X: 10, Y: 1.0, Z: 0},
		Record{Serial: 7, Name: "C2", ResName: "LIG", ResSeq: 2, Chain: "W", X: 10, Y: 2.1, Z: 0},
	)
	mol, _, err := NewMolecule(recs)
	require.NoError(Te, err)
	bonds, err := InferBonds(mol, []int{0, 1, 2})
	require.NoError(Te, err)
	require.Len(Te, bonds, 2)
	assert.Equal(Te, 1, bonds[0].Cross(0))
	assert.Equal(Te, 2, bonds[1].At2)
	bonds, err = InferBonds(mol, []int{3, 4, 5, 6})
	require.Error(Te, err)
	e, ok := err.(Error)
	require.True(Te, ok)
	assert.False(Te, e.Critical())
	require.Len(Te, bonds, 1)
	assert.Equal(Te, Bond{At1: 3, At2: 5, Dist: 1.0}, bonds[0])
}
