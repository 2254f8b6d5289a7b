/*
 * search.go, part of gopqr.
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
	"fmt"
	"math"
	"slices"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/rebuild"
	"github.com/rmera/gopqr/top"
	v3 "github.com/rmera/gopqr/v3"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

//stateHydrogens returns the titratable hydrogens that the template t gives to
//residue res in the given state, placed from the current heavy atoms. It
//returns false if some of them can't be placed.
func (P *Protonator) stateHydrogens(res int, t *top.Residue, state string) ([]Hydrogen, bool) {
	s := t.State(state)
	if s == nil {
		return nil, false
	}
	lookup := rebuild.MolLookup(P.Mol, P.Graph, res)
	ret := make([]Hydrogen, 0, len(s.Hydrogens))
	for _, name := range t.Titratable() {
		if !slices.Contains(s.Hydrogens, name) {
			continue
		}
		ta := t.Atom(name)
		if len(ta.Bonds) == 0 {
			return nil, false
		}
		parent := P.Mol.AtomByName(res, ta.Bonds[0])
		if parent < 0 {
			return nil, false
		}
		pos, err := rebuild.Locate(ta.Place, lookup)
		if err != nil {
			return nil, false
		}
		ret = append(ret, Hydrogen{Name: name, Parent: parent, Pos: pos})
	}
	return ret, true
}

//currentHydrogens returns the titratable hydrogens of residue res that belong
//to the state, at their current positions. It returns false if some of them
//are not there.
func (P *Protonator) currentHydrogens(res int, t *top.Residue, state string) ([]Hydrogen, bool) {
	s := t.State(state)
	if s == nil {
		return nil, false
	}
	ret := make([]Hydrogen, 0, len(s.Hydrogens))
	for _, name := range t.Titratable() {
		if !slices.Contains(s.Hydrogens, name) {
			continue
		}
		i := P.Mol.AtomByName(res, name)
		if i < 0 {
			return nil, false
		}
		parent := P.parent(i)
		if parent < 0 {
			return nil, false
		}
		ret = append(ret, Hydrogen{Name: name, Parent: parent, Pos: P.Mol.Coord(i)})
	}
	return ret, true
}

//rotate returns copies of the hydrogens in hyd, with those named in names
//rotated by angle radians around the axis from ax1 to ax2.
func rotate(hyd []Hydrogen, names []string, ax1, ax2 *v3.Matrix, angle float64) ([]Hydrogen, error) {
	ret := slices.Clone(hyd)
	for i, h := range ret {
		if !slices.Contains(names, h.Name) {
			continue
		}
		pos, err := pqr.RotateAbout(h.Pos, ax1, ax2, angle)
		if err != nil {
			return nil, err
		}
		ret[i].Pos = pos
	}
	return ret, nil
}

//orientations returns hyd followed by its rotations around the rotors of the
//template t that move only hydrogens in hyd.
func (P *Protonator) orientations(res int, t *top.Residue, hyd []Hydrogen) [][]Hydrogen {
	ret := [][]Hydrogen{hyd}
	names := make([]string, 0, len(hyd))
	for _, h := range hyd {
		names = append(names, h.Name)
	}
	for _, r := range t.Rotors {
		moving := make([]string, 0, len(r.Atoms))
		for _, a := range r.Atoms {
			if slices.Contains(names, a) {
				moving = append(moving, a)
			}
		}
		if len(moving) == 0 || r.Steps < 2 || len(r.Axis) != 2 {
			continue
		}
		a1, a2 := P.Mol.AtomByName(res, r.Axis[0]), P.Mol.AtomByName(res, r.Axis[1])
		if a1 < 0 || a2 < 0 {
			continue
		}
		for k := 1; k < r.Steps; k++ {
			rot, err := rotate(hyd, moving, P.Mol.Coord(a1), P.Mol.Coord(a2), 2*math.Pi*float64(k)/float64(r.Steps))
			if err != nil {
				break
			}
			ret = append(ret, rot)
		}
	}
	return ret
}

//best returns the index of the candidate with the highest score. Ties go to
//the first one.
func best(cands []Candidate) int {
	scores := make([]float64, len(cands))
	for i, c := range cands {
		scores[i] = c.Score
	}
	return floats.MaxIdx(scores)
}

//titrate chooses the state of the site k of residue res among its candidate
//states. The current state is kept unless another one scores strictly
//higher, and on a tie the default state of the template wins. It returns
//true if the state changed.
func (P *Protonator) titrate(res, k int) (bool, []pqr.Warning) {
	t, s := P.site(res, k)
	if t == nil || s.Fixed || len(s.Candidates) < 2 {
		return false, nil
	}
	states := []string{s.State}
	for _, c := range s.Candidates {
		if c != s.State {
			states = append(states, c)
		}
	}
	removed := P.titratable(res, t)
	cands := make([]Candidate, 0, len(states))
	for _, st := range states {
		hyd, ok := P.currentHydrogens(res, t, st)
		if st != s.State || !ok {
			hyd, ok = P.stateHydrogens(res, t, st)
		}
		if !ok {
			P.Log.Debug("State can't be built", zap.String("residue", P.Mol.ResidueID(res)), zap.String("state", st))
			continue
		}
		orients := make([]Candidate, 0, 1)
		for _, o := range P.orientations(res, t, hyd) {
			c := Candidate{Site: k, State: st, Hydrogens: o}
			P.evaluate(res, &c, removed)
			orients = append(orients, c)
		}
		cands = append(cands, orients[best(orients)])
	}
	if len(cands) == 0 || cands[0].State != s.State {
		return false, nil
	}
	chosen := cands[best(cands)]
	if def := t.Default(); def != nil && chosen.State != def.Name {
		for _, c := range cands {
			if c.State == def.Name && c.Score >= chosen.Score {
				chosen = c
				break
			}
		}
	}
	P.donorCheck(res, cands, chosen)
	if chosen.State == s.State && P.same(removed, chosen.Hydrogens) {
		return false, nil
	}
	return true, P.commit(res, k, removed, chosen)
}

//donorCheck logs when the candidate with the most hydrogen bonds is not the one chosen.
func (P *Protonator) donorCheck(res int, cands []Candidate, chosen Candidate) {
	most := slices.MaxFunc(cands, func(a, b Candidate) int { return a.HBonds - b.HBonds })
	if most.HBonds > chosen.HBonds {
		P.Log.Warn(fmt.Sprintf("The best donor hydrogen was not picked in %s: %s has %d hydrogen bonds and %d clashes",
			P.Mol.ResidueID(res), most.State, most.HBonds, most.Clashes))
	}
}

//same returns true if the atoms in current are at the positions of the hydrogens in hyd.
func (P *Protonator) same(current []int, hyd []Hydrogen) bool {
	if len(current) != len(hyd) {
		return false
	}
	for _, h := range hyd {
		i := slices.IndexFunc(current, func(a int) bool { return P.Mol.Atom(a).Name == h.Name })
		if i < 0 || pqr.Distance(P.Mol.Coord(current[i]), h.Pos) > 1e-6 {
			return false
		}
	}
	return true
}

//commit puts the site k of residue res in the state of c: the atoms in removed
//are replaced by the hydrogens of c. The residue is debumped afterwards.
func (P *Protonator) commit(res, k int, removed []int, c Candidate) []pqr.Warning {
	_, s := P.site(res, k)
	for _, i := range removed {
		P.Mol.RemoveAtom(i)
	}
	for _, h := range c.Hydrogens {
		if _, err := P.Mol.AddAtom(res, h.Name, "H", h.Pos, pqr.FromTemplate); err != nil {
			P.Log.Error("Hydrogen not added", zap.String("residue", P.Mol.ResidueID(res)), zap.Error(err))
		}
	}
	if s.State != c.State {
		P.Log.Debug("State changed", zap.String("residue", P.Mol.ResidueID(res)), zap.String("from", s.State), zap.String("to", c.State))
	}
	s.State = c.State
	if !P.Debump {
		return nil
	}
	return P.Debumper.Residue(res)
}

//groups sets the optimizable groups of residue res from the rotors of its
//templates: those whose axis and some of whose atoms are present.
func (P *Protonator) groups(res int) {
	r := P.Mol.Residue(res)
	r.Groups = r.Groups[:0]
	for _, k := range P.sites(res) {
		t, _ := P.site(res, k)
		for _, rot := range t.Rotors {
			if len(rot.Axis) != 2 || rot.Steps < 2 {
				continue
			}
			a1, a2 := P.Mol.AtomByName(res, rot.Axis[0]), P.Mol.AtomByName(res, rot.Axis[1])
			if a1 < 0 || a2 < 0 {
				continue
			}
			g := pqr.Group{Name: rot.Name, Axis: [2]int{a1, a2}, Steps: rot.Steps}
			for _, n := range rot.Atoms {
				if i := P.Mol.AtomByName(res, n); i >= 0 {
					g.Atoms = append(g.Atoms, i)
				}
			}
			if len(g.Atoms) > 0 {
				r.Groups = append(r.Groups, g)
			}
		}
	}
}

//turn chooses the best orientation of each optimizable group of residue res.
//The current orientation is kept unless another one scores strictly higher.
//It returns true if some group moved.
func (P *Protonator) turn(res int) bool {
	P.groups(res)
	moved := false
	for _, g := range P.Mol.Residue(res).Groups {
		current := make([]Hydrogen, 0, len(g.Atoms))
		names := make([]string, 0, len(g.Atoms))
		for _, i := range g.Atoms {
			at := P.Mol.Atom(i)
			current = append(current, Hydrogen{Name: at.Name, Parent: g.Axis[1], Pos: P.Mol.Coord(i)})
			names = append(names, at.Name)
		}
		cands := []Candidate{{Site: Body, Hydrogens: current}}
		for k := 1; k < g.Steps; k++ {
			rot, err := rotate(current, names, P.Mol.Coord(g.Axis[0]), P.Mol.Coord(g.Axis[1]), 2*math.Pi*float64(k)/float64(g.Steps))
			if err != nil {
				break
			}
			cands = append(cands, Candidate{Site: Body, Hydrogens: rot})
		}
		for i := range cands {
			P.evaluate(res, &cands[i], g.Atoms)
		}
		b := best(cands)
		if b == 0 {
			continue
		}
		for i, h := range cands[b].Hydrogens {
			P.Mol.SetCoord(g.Atoms[i], h.Pos)
		}
		P.Log.Debug("Group rotated", zap.String("residue", P.Mol.ResidueID(res)), zap.String("group", g.Name),
			zap.Float64("angle", 360*float64(b)/float64(g.Steps)))
		moved = true
	}
	return moved
}

//flip turns the side chain of residue res by 180 degrees around the flip bond
//of its template, if that gives a strictly better score. It returns true if
//the side chain was flipped.
func (P *Protonator) flip(res int) bool {
	t, s := P.site(res, Body)
	if t == nil || len(t.Flip) != 2 || s.Fixed {
		return false
	}
	a1, a2 := P.Mol.AtomByName(res, t.Flip[0]), P.Mol.AtomByName(res, t.Flip[1])
	if a1 < 0 || a2 < 0 {
		return false
	}
	moving := slices.DeleteFunc(P.Graph.FarSide(a1, a2), func(i int) bool { return i == a2 })
	if len(moving) == 0 {
		return false
	}
	flipScore := func() float64 {
		hb, _ := P.score(res, nil, nil)
		clashes := 0
		for _, i := range moving {
			clashes += len(P.Debumper.AtomClashes(i))
		}
		return float64(hb) - P.Opts.ClashPenalty*float64(clashes)
	}
	before := flipScore()
	orig := v3.Zeros(len(moving))
	orig.SomeVecs(P.Mol.Coords, moving)
	rot, err := pqr.RotateAbout(orig, P.Mol.Coord(a1), P.Mol.Coord(a2), math.Pi)
	if err != nil {
		return false
	}
	P.Mol.Coords.SetVecs(rot, moving)
	if after := flipScore(); after > before {
		P.Log.Debug("Side chain flipped", zap.String("residue", P.Mol.ResidueID(res)), zap.Float64("score", after))
		return true
	}
	P.Mol.Coords.SetVecs(orig, moving)
	return false
}

//water chooses the orientation of the water res among rotations around the
//three Cartesian axes through its oxygen. The current orientation is kept
//unless another one scores strictly higher. It returns true if the water moved.
func (P *Protonator) water(res int) bool {
	o := P.Mol.AtomByName(res, "O")
	hs := make([]int, 0, 2)
	current := make([]Hydrogen, 0, 2)
	names := make([]string, 0, 2)
	for _, i := range P.Mol.Residue(res).Atoms {
		if at := P.Mol.Atom(i); at.Hydrogen() {
			hs = append(hs, i)
			current = append(current, Hydrogen{Name: at.Name, Parent: o, Pos: P.Mol.Coord(i)})
			names = append(names, at.Name)
		}
	}
	if o < 0 || len(hs) == 0 {
		P.Log.Warn(fmt.Sprintf("Skipped atom during water optimization: %s has no hydrogens or no oxygen", P.Mol.ResidueID(res)))
		return false
	}
	steps := max(P.Opts.WaterSteps, 1)
	op := P.Mol.Coord(o)
	cands := []Candidate{{Site: Body, Hydrogens: current}}
	for axis := 0; axis < 3; axis++ {
		ax2 := v3.Zeros(1)
		ax2.Copy(op)
		ax2.Set(0, axis, op.At(0, axis)+1)
		for k := 1; k < steps; k++ {
			rot, err := rotate(current, names, op, ax2, 2*math.Pi*float64(k)/float64(steps))
			if err != nil {
				break
			}
			cands = append(cands, Candidate{Site: Body, Hydrogens: rot})
		}
	}
	for i := range cands {
		P.evaluate(res, &cands[i], hs)
	}
	b := best(cands)
	if b == 0 {
		return false
	}
	for i, h := range cands[b].Hydrogens {
		P.Mol.SetCoord(hs[i], h.Pos)
	}
	P.Log.Debug("Water turned", zap.String("residue", P.Mol.ResidueID(res)), zap.Int("hbonds", cands[b].HBonds))
	return true
}

//waters optimizes the orientation of every water. It returns true if some water moved.
func (P *Protonator) waters() bool {
	moved := false
	for ri, r := range P.Mol.Residues {
		t, ok := P.Lib.Residue(r.Body.Template)
		if !ok || !t.Water || len(r.Atoms) == 0 {
			continue
		}
		if P.water(ri) {
			moved = true
		}
	}
	return moved
}

//Optimize chooses the states of the titratable sites and the orientations of
//flips, rotatable hydrogens and waters, residue by residue, until nothing
//changes or the maximum number of passes is reached. If watersOnly is true,
//only the waters are optimized. Warnings come from the debumping of the
//residues whose state changed.
func (P *Protonator) Optimize(watersOnly bool) []pqr.Warning {
	var ret []pqr.Warning
	for pass := 0; pass < max(P.Opts.Passes, 1); pass++ {
		changed := false
		if !watersOnly {
			for ri, r := range P.Mol.Residues {
				if len(r.Atoms) == 0 {
					continue
				}
				if t, _ := P.site(ri, Body); t != nil && t.Water {
					continue
				}
				if P.flip(ri) {
					changed = true
				}
				for _, k := range P.sites(ri) {
					c, w := P.titrate(ri, k)
					ret = append(ret, w...)
					changed = changed || c
				}
				if P.turn(ri) {
					changed = true
				}
			}
		}
		if P.waters() {
			changed = true
		}
		P.Log.Debug("Optimization pass", zap.Int("pass", pass+1), zap.Bool("changed", changed))
		if !changed {
			break
		}
	}
	return ret
}
