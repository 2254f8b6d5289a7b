/*
 * protonate_test.go, part of gopqr.
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

package protonate

import (
	"math"
	"testing"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/chemgraph"
	"github.com/rmera/gopqr/clash"
	"github.com/rmera/gopqr/rebuild"
	"github.com/rmera/gopqr/top"
	v3 "github.com/rmera/gopqr/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func rec(name, res string, seq int, chain string, c *v3.Matrix) pqr.Record {
	return pqr.Record{Name: name, ResName: res, ResSeq: seq, Chain: chain, X: c.At(0, 0), Y: c.At(0, 1), Z: c.At(0, 2)}
}

//residue returns the N, CA and C atoms of a residue.
func residue(name string, seq int) []pqr.Record {
	a := 69 * pqr.Deg2Rad
	return []pqr.Record{
		rec("N", name, seq, "A", v3.NewVec(0, 0, 0)),
		rec("CA", name, seq, "A", v3.NewVec(1.458, 0, 0)),
		rec("C", name, seq, "A", v3.NewVec(1.458+1.525*math.Cos(a), 1.525*math.Sin(a), 0)),
	}
}

//setup builds the molecule from recs, completes it and returns a Protonator for it.
func setup(Te *testing.T, logger *zap.Logger, recs ...pqr.Record) *Protonator {
	mol, _, err := pqr.NewMolecule(recs)
	require.NoError(Te, err)
	lib := top.Default()
	g := chemgraph.New(mol, lib, chemgraph.DefaultOptions(), nil)
	b := rebuild.New(mol, lib, g, nil)
	b.Assign()
	b.MissingHeavy()
	b.AddHydrogens()
	d := clash.NewDebumper(clash.NewDetector(mol, g, lib, clash.DefaultOptions()), nil)
	return New(b, d, DefaultOptions(), logger)
}

func coord(Te *testing.T, mol *pqr.Molecule, res int, name string) *v3.Matrix {
	i := mol.AtomByName(res, name)
	require.GreaterOrEqual(Te, i, 0, name)
	return mol.Coord(i)
}

//acceptor adds a lone oxygen in a new chain, at dist A from the atom parent
//of residue res, in the direction of pos.
func acceptor(Te *testing.T, mol *pqr.Molecule, res int, parent string, pos *v3.Matrix, dist float64) int {
	p := coord(Te, mol, res, parent).Vec(0)
	q := pos.Vec(0)
	u, err := pqr.Normalize(v3.NewVec(q[0]-p[0], q[1]-p[1], q[2]-p[2]))
	require.NoError(Te, err)
	w := u.Vec(0)
	dir := v3.NewVec(p[0]+dist*w[0], p[1]+dist*w[1], p[2]+dist*w[2])
	c := mol.AddChain("B")
	r, err := mol.AddResidue(c, "ACC", 1, "")
	require.NoError(Te, err)
	i, err := mol.AddAtom(r, "O", "O", dir, pqr.FromInput)
	require.NoError(Te, err)
	return i
}

func TestApplyPKa(Te *testing.T) {
	var recs []pqr.Record
	for i, n := range []string{"HIS", "HIS", "HIS", "ASP", "HSD"} {
		recs = append(recs, rec("CA", n, i+1, "A", v3.NewVec(10*float64(i), 0, 0)))
	}
	P := setup(Te, nil, recs...)
	mol := P.Mol
	require.Equal(Te, []string{"HID", "HIE"}, mol.Residue(2).Body.Candidates)
	pkas := map[int]float64{0: 9, 1: 6.5, 3: 2, 4: 9}
	P.ApplyPKa(func(res int, patch string) (float64, bool) {
		v, ok := pkas[res]
		return v, ok && patch == ""
	})
	assert.Equal(Te, []string{"HIP"}, mol.Residue(0).Body.Candidates)
	assert.Equal(Te, "HIP", mol.Residue(0).State())
	assert.Equal(Te, []string{"HID", "HIE", "HIP"}, mol.Residue(1).Body.Candidates)
	assert.Equal(Te, "HID", mol.Residue(1).State())
	assert.Equal(Te, []string{"HID", "HIE"}, mol.Residue(2).Body.Candidates)
	assert.Equal(Te, []string{"ASP"}, mol.Residue(3).Body.Candidates)
	assert.Equal(Te, pqr.Site{Template: "HIS", State: "HID", Candidates: []string{"HID"}, Fixed: true}, mol.Residue(4).Body)
}

func TestTitrate(Te *testing.T) {
	P := setup(Te, nil, residue("HIS", 1)...)
	mol := P.Mol
	require.Equal(Te, "HID", mol.Residue(0).State())
	require.GreaterOrEqual(Te, mol.AtomByName(0, "HD1"), 0)
	require.Equal(Te, -1, mol.AtomByName(0, "HE2"))
	CE1, CD2, NE2 := coord(Te, mol, 0, "CE1"), coord(Te, mol, 0, "CD2"), coord(Te, mol, 0, "NE2")
	HE2, err := pqr.Place(1.01, 126, 180, CE1, CD2, NE2)
	require.NoError(Te, err)
	//an acceptor in front of NE2 can only be reached in the HIE state
	acc := acceptor(Te, mol, 0, "NE2", HE2, 2.9)

	changed, w := P.titrate(0, Body)
	assert.True(Te, changed)
	assert.Empty(Te, w)
	assert.Equal(Te, "HIE", mol.Residue(0).State())
	assert.Equal(Te, -1, mol.AtomByName(0, "HD1"))
	h := mol.AtomByName(0, "HE2")
	require.GreaterOrEqual(Te, h, 0)
	assert.Equal(Te, pqr.FromTemplate, mol.Atom(h).Origin)
	assert.InDelta(Te, 1.89, pqr.Distance(mol.Coord(h), mol.Coord(acc)), 1e-6)
	assert.True(Te, P.Graph.Bonded(h, mol.AtomByName(0, "NE2")))
	assert.Equal(Te, pqr.Clean, mol.Residue(0).Debump)

	//nothing better is left
	changed, _ = P.titrate(0, Body)
	assert.False(Te, changed)
	assert.Equal(Te, "HIE", mol.Residue(0).State())
}

func TestTitrateTie(Te *testing.T) {
	P := setup(Te, nil, residue("HIS", 1)...)
	mol := P.Mol
	r := mol.Residue(0)
	require.Equal(Te, []string{"HID", "HIE"}, r.Body.Candidates)
	//a state taken in an earlier pass, with nothing to bond to
	r.Body.State = "HIE"
	changed, _ := P.titrate(0, Body)
	assert.True(Te, changed)
	assert.Equal(Te, "HID", r.State())
	assert.GreaterOrEqual(Te, mol.AtomByName(0, "HD1"), 0)
	assert.Equal(Te, -1, mol.AtomByName(0, "HE2"))
	changed, _ = P.titrate(0, Body)
	assert.False(Te, changed)
	assert.Equal(Te, "HID", r.State())
}

func TestFixedSite(Te *testing.T) {
	P := setup(Te, nil, residue("HSD", 1)...)
	mol := P.Mol
	HE2, err := pqr.Place(1.01, 126, 180, coord(Te, mol, 0, "CE1"), coord(Te, mol, 0, "CD2"), coord(Te, mol, 0, "NE2"))
	require.NoError(Te, err)
	acceptor(Te, mol, 0, "NE2", HE2, 2.9)
	P.Optimize(false)
	assert.Equal(Te, "HID", mol.Residue(0).State())
	assert.GreaterOrEqual(Te, mol.AtomByName(0, "HD1"), 0)
}

func TestRotor(Te *testing.T) {
	P := setup(Te, nil, residue("SER", 1)...)
	mol := P.Mol
	CA, CB, OG := coord(Te, mol, 0, "CA"), coord(Te, mol, 0, "CB"), coord(Te, mol, 0, "OG")
	require.InDelta(Te, 180, math.Abs(pqr.Dihedral(CA, CB, OG, coord(Te, mol, 0, "HG"))), 1e-6)
	target, err := pqr.Place(0.96, 109.5, -60, CA, CB, OG)
	require.NoError(Te, err)
	acceptor(Te, mol, 0, "OG", target, 2.8)

	assert.Empty(Te, P.Optimize(false))
	HG := coord(Te, mol, 0, "HG")
	assert.InDelta(Te, -60, pqr.Dihedral(CA, CB, OG, HG), 1e-6)
	assert.InDelta(Te, 0.96, pqr.Distance(OG, HG), 1e-6)
	require.Len(Te, mol.Residue(0).Groups, 1)
	assert.Equal(Te, "hydroxyl", mol.Residue(0).Groups[0].Name)
	//optimizing again keeps the orientation
	P.Optimize(false)
	assert.InDelta(Te, -60, pqr.Dihedral(CA, CB, OG, coord(Te, mol, 0, "HG")), 1e-6)
}

func TestWater(Te *testing.T) {
	P := setup(Te, nil,
		rec("O", "HOH", 1, "W", v3.NewVec(0, 0, 0)),
		rec("O", "ACC", 2, "X", v3.NewVec(-1.4, 2.425, 0)),
	)
	mol := P.Mol
	H1 := coord(Te, mol, 0, "H1")
	require.InDelta(Te, 0.96, H1.At(0, 0), 1e-9)
	O, A := coord(Te, mol, 0, "O"), mol.Coord(1)
	require.InDelta(Te, 120, pqr.Angle(H1, O, A), 0.01)

	P.Optimize(true)
	H1, H2 := coord(Te, mol, 0, "H1"), coord(Te, mol, 0, "H2")
	assert.InDelta(Te, 0, pqr.Angle(H1, O, A), 1e-4)
	assert.InDelta(Te, 0.96, pqr.Distance(O, H2), 1e-6)
	assert.InDelta(Te, 104.5, pqr.Angle(H1, O, H2), 1e-4)
	assert.InDelta(Te, 0, O.At(0, 0), 1e-12)
}

func TestWaterWithoutHydrogens(Te *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mol, _, err := pqr.NewMolecule([]pqr.Record{rec("O", "HOH", 1, "W", v3.NewVec(0, 0, 0))})
	require.NoError(Te, err)
	lib := top.Default()
	g := chemgraph.New(mol, lib, chemgraph.DefaultOptions(), nil)
	b := rebuild.New(mol, lib, g, nil)
	b.Assign()
	d := clash.NewDebumper(clash.NewDetector(mol, g, lib, clash.DefaultOptions()), nil)
	P := New(b, d, DefaultOptions(), zap.New(core))
	P.Optimize(true)
	entries := logs.FilterMessageSnippet("Skipped atom during water optimization").All()
	require.Len(Te, entries, 1)
	assert.Contains(Te, entries[0].Message, "HOH W1")
}

func TestCleanup(Te *testing.T) {
	P := setup(Te, nil, residue("ASP", 1)...)
	mol := P.Mol
	r := mol.Residue(0)
	require.Equal(Te, "ASP", r.State())
	require.Equal(Te, -1, mol.AtomByName(0, "HD2"))
	//leave both carboxyl hydrogens in place
	r.Body.State = "ASH1"
	P.Builder.Complete(0, true)
	r.Body.State = "ASH"
	P.Builder.Complete(0, true)
	require.GreaterOrEqual(Te, mol.AtomByName(0, "HD1"), 0)
	require.GreaterOrEqual(Te, mol.AtomByName(0, "HD2"), 0)
	P.groups(0)
	require.NotEmpty(Te, r.Groups)

	assert.Equal(Te, 1, P.Cleanup())
	assert.Equal(Te, -1, mol.AtomByName(0, "HD1"))
	assert.GreaterOrEqual(Te, mol.AtomByName(0, "HD2"), 0)
	assert.Equal(Te, []string{"ASH"}, r.Body.Candidates)
	assert.Nil(Te, r.Groups)
	assert.Equal(Te, 0, P.Cleanup())
}

func TestSetStates(Te *testing.T) {
	P := setup(Te, nil, rec("CA", "HIS", 1, "A", v3.NewVec(0, 0, 0)))
	s := &P.Mol.Residue(0).Body
	s.State = ""
	P.SetStates()
	assert.Equal(Te, "HID", s.State)
	assert.Equal(Te, []string{"HID"}, s.Candidates)
}
