/*
 * graph_test.go, part of gopqr.
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

package chemgraph

import (
	"math"
	"testing"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/top"
	v3 "github.com/rmera/gopqr/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(name, res string, seq int, chain string, x, y, z float64) pqr.Record {
	return pqr.Record{Name: name, ResName: res, ResSeq: seq, Chain: chain, X: x, Y: y, Z: z}
}

//testMolecule returns a molecule with a peptide, a disulfide, a small ligand,
//an ion and a ring. Atoms bonded by templates are far from each other, so
//their bonds can only come from the templates.
func testMolecule(Te *testing.T) *pqr.Molecule {
	recs := []pqr.Record{
		rec("N", "SER", 1, "A", 0, 0, 0),
		rec("CA", "SER", 1, "A", 5, 0, 0),
		rec("CB", "SER", 1, "A", 10, 0, 0),
		rec("OG", "SER", 1, "A", 15, 0, 0),
		rec("C", "SER", 1, "A", 5, 5, 0),
		rec("N", "GLY", 2, "A", 5, 6.33, 0),
		rec("CA", "GLY", 2, "A", 5, 12, 0),
		rec("CB", "CYS", 3, "B", 30, -5, 0),
		rec("SG", "CYS", 3, "B", 30, 0, 0),
		rec("CB", "CYS", 4, "B", 32, 5, 0),
		rec("SG", "CYS", 4, "B", 32.04, 0, 0),
		rec("C1", "LIG", 5, "C", 50, 0, 0),
		rec("C2", "LIG", 5, "C", 51.53, 0, 0),
		rec("O3", "LIG", 5, "C", 52.0, 1.36, 0),
	}
	na := rec("NA", "NA", 6, "C", 60, 0, 0)
	na.Element = "Na"
	recs = append(recs, na)
	for i := 0; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		recs = append(recs, rec("CR"+string(rune('1'+i)), "BEN", 7, "C", 70+1.4*math.Cos(a), 1.4*math.Sin(a), 0))
	}
	recs = append(recs, rec("C7", "BEN", 7, "C", 72.9, 0, 0))
	mol, _, err := pqr.NewMolecule(recs)
	require.NoError(Te, err)
	require.Equal(Te, 22, mol.Len())
	return mol
}

func TestBonds(Te *testing.T) {
	mol := testMolecule(Te)
	G := New(mol, top.Default(), DefaultOptions(), nil)
	assert.Equal(Te, []int{0, 2, 4}, G.Neighbors(1))
	assert.True(Te, G.Bonded(4, 5))
	assert.False(Te, G.Bonded(0, 3))
	assert.Equal(Te, [][2]int{{8, 10}}, G.Disulfides())
	assert.Equal(Te, []int{12}, G.Neighbors(11))
	assert.Equal(Te, []int{11, 13}, G.Neighbors(12))
	assert.Empty(Te, G.Neighbors(14))
	assert.Equal(Te, []int{16, 20, 21}, G.Neighbors(15))
	assert.Contains(Te, G.Bonds(), [2]int{2, 3})

	//the graph follows the molecule
	hg, err := mol.AddAtom(0, "HG", "H", v3.NewVec(20, 0, 0), pqr.FromTemplate)
	require.NoError(Te, err)
	assert.Equal(Te, []int{2, hg}, G.Neighbors(3))
	assert.Equal(Te, 23, G.Nodes().Len())
	mol.RemoveAtom(hg)
	assert.Equal(Te, []int{2}, G.Neighbors(3))
	assert.Nil(Te, G.Node(int64(hg)))
	assert.Equal(Te, 22, G.Nodes().Len())
}

func TestGonumInterface(Te *testing.T) {
	G := New(testMolecule(Te), top.Default(), DefaultOptions(), nil)
	assert.Equal(Te, 3, G.From(1).Len())
	e := G.Edge(4, 5)
	require.NotNil(Te, e)
	assert.Equal(Te, int64(4), e.From().ID())
	assert.Equal(Te, int64(5), e.To().ID())
	assert.Equal(Te, int64(4), e.ReversedEdge().To().ID())
	assert.Nil(Te, G.Edge(0, 3))
	assert.True(Te, G.HasEdgeBetween(5, 4))
	assert.Equal(Te, int64(7), G.EdgeBetween(7, 8).From().ID())
}

func TestPaths(Te *testing.T) {
	G := New(testMolecule(Te), top.Default(), DefaultOptions(), nil)
	assert.Equal(Te, []int{0, 1, 4, 5, 6}, G.ShortestPath(0, 6))
	assert.Equal(Te, []int{6, 5, 4, 1, 0}, G.ShortestPath(6, 0))
	assert.Equal(Te, []int{3}, G.ShortestPath(3, 3))
	assert.Nil(Te, G.ShortestPath(0, 14))
	//both ways around the ring have the same length, the lower neighbor goes first.
	assert.Equal(Te, []int{15, 16, 17, 18}, G.ShortestPath(15, 18))
	assert.Equal(Te, []int{11, 12, 13}, G.Component(13))
	assert.Equal(Te, []int{14}, G.Component(14))
	assert.Equal(Te, 3, G.Separation(0, 3, 5))
	assert.Equal(Te, -1, G.Separation(0, 3, 2))
	assert.Equal(Te, -1, G.Separation(0, 14, 10))
	assert.Equal(Te, 0, G.Separation(2, 2, 0))
	assert.Equal(Te, []int{0, 1, 2, 4}, G.Within(1, 1))
	assert.Equal(Te, []int{0, 1, 2, 3, 4, 5}, G.Within(1, 2))
}

func TestRings(Te *testing.T) {
	G := New(testMolecule(Te), top.Default(), DefaultOptions(), nil)
	assert.Equal(Te, []int{2, 3}, G.FarSide(1, 2))
	assert.Equal(Te, []int{0}, G.FarSide(1, 0))
	assert.Nil(Te, G.FarSide(0, 3))
	assert.True(Te, G.InRing(15, 16))
	assert.False(Te, G.InRing(15, 21))
	assert.Nil(Te, G.FarSide(16, 15))
	assert.Equal(Te, []int{21}, G.FarSide(15, 21))
	assert.Equal(Te, []int{15, 16, 17, 18, 19, 20}, G.FarSide(21, 15))
}
