/*
 * charges_test.go, part of gopqr.
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

package charges

import (
	"strings"
	"testing"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/chemgraph"
	"github.com/rmera/gopqr/rebuild"
	"github.com/rmera/gopqr/top"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toyFF = `# group atom charge radius
SER    N   -0.4  1.8
SER    CA  -0.1  1.9
SER    C    0.5  1.9
NTERM  N    0.6  1.8
HIS    CA   0.3  1.9
HID    CA   0.1  1.9
LIG    C1   0.25 1.7
`

func TestAssign(Te *testing.T) {
	recs := []pqr.Record{
		{Name: "N", ResName: "SER", ResSeq: 1, Chain: "A"},
		{Name: "CA", ResName: "SER", ResSeq: 1, Chain: "A", X: 1.458},
		{Name: "C", ResName: "SER", ResSeq: 1, Chain: "A", X: 2, Y: 1.4},
		{Name: "CA", ResName: "HIS", ResSeq: 2, Chain: "A", X: 6},
		{Name: "C1", Element: "C", ResName: "LIG", ResSeq: 1, Chain: "L", X: 20},
		{Name: "C2", Element: "C", ResName: "LIG", ResSeq: 1, Chain: "L", X: 21.5},
	}
	mol, _, err := pqr.NewMolecule(recs)
	require.NoError(Te, err)
	lib := top.Default()
	b := rebuild.New(mol, lib, chemgraph.New(mol, lib, chemgraph.DefaultOptions(), nil), nil)
	b.Assign()
	require.NoError(Te, b.SetTermini(false, false))
	ff, err := top.ReadDat(strings.NewReader(toyFF), "toy")
	require.NoError(Te, err)

	w := New(lib, ff, nil).Assign(mol)
	require.Len(Te, w, 1)
	assert.Equal(Te, pqr.MissingParameters, w[0].Kind)
	assert.Equal(Te, 2, w[0].Residue)
	assert.Equal(Te, []string{"C2"}, w[0].Atoms)
	assert.Equal(Te, []int{5}, mol.Missed)

	//the N-terminal patch comes before the residue
	assert.Equal(Te, 0.6, mol.Atom(0).Charge)
	assert.Equal(Te, -0.1, mol.Atom(1).Charge)
	//the state comes before the residue
	assert.Equal(Te, 0.1, mol.Atom(3).Charge)
	assert.Equal(Te, 1.7, mol.Atom(4).Radius)
	assert.True(Te, mol.Atom(4).HasParams)
	assert.False(Te, mol.Atom(5).HasParams)
	assert.Equal(Te, 0.0, mol.Atom(5).Radius)

	rep := Check(mol, DefaultTolerance, nil)
	assert.InDelta(Te, 1.0, rep.Residues[0], 1e-12)
	assert.InDelta(Te, 1.0, ResidueCharge(mol, 0), 1e-12)
	assert.InDelta(Te, 0.1, rep.Residues[1], 1e-12)
	assert.InDelta(Te, 1.35, rep.Total, 1e-12)
	assert.Equal(Te, []int{1, 2}, rep.Flagged)
	assert.Equal(Te, []int{1, 2}, mol.Flagged)
	ws := rep.Warnings(mol)
	require.Len(Te, ws, 2)
	assert.Equal(Te, pqr.NonIntegralCharge, ws[1].Kind)
	assert.Contains(Te, ws[1].Message, "0.2500")
}

func TestCheckTolerance(Te *testing.T) {
	mol, _, err := pqr.NewMolecule([]pqr.Record{
		{Name: "A", Element: "C", ResName: "XX", ResSeq: 1, Chain: "A"},
		{Name: "B", Element: "C", ResName: "XX", ResSeq: 1, Chain: "A", X: 1.5},
	})
	require.NoError(Te, err)
	mol.Atom(0).Charge = 0.5
	mol.Atom(1).Charge = -1.5005
	assert.Empty(Te, Check(mol, DefaultTolerance, nil).Flagged)
	assert.Equal(Te, []int{0}, Check(mol, 1e-4, nil).Flagged)
	mol.RemoveAtom(1)
	rep := Check(mol, DefaultTolerance, nil)
	assert.Equal(Te, 0.5, rep.Total)
	assert.Equal(Te, []int{0}, rep.Flagged)
}
