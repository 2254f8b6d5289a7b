/*
 * states.go, part of gopqr.
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

package top

import "math"

//Candidates returns the names of the states to consider for a site with the
//given pKa at the given pH. Sites with the pKa more than window units above the
//pH keep only their protonated states, those more than window units below only
//the deprotonated ones, and the rest keep all. With an unknown pKa (NaN) only
//the states with the same charge as the default are kept. Disulfide states are
//never candidates. The default state, if kept, goes first.
func (R *Residue) Candidates(pH, pka, window float64) []string {
	def := R.Default()
	if def == nil {
		return nil
	}
	keep := func(s *State) bool {
		switch {
		case s.Disulfide:
			return false
		case math.IsNaN(pka):
			return s.Charge == def.Charge
		case pka > pH+window:
			return s.Protonated
		case pka < pH-window:
			return !s.Protonated
		}
		return true
	}
	ret := make([]string, 0, len(R.States))
	if keep(def) {
		ret = append(ret, def.Name)
	}
	for i := range R.States {
		s := &R.States[i]
		if s.Name != def.Name && keep(s) {
			ret = append(ret, s.Name)
		}
	}
	return ret
}

//Disulfide returns the disulfide-bonded state of the residue, or nil.
func (R *Residue) Disulfide() *State {
	for i := range R.States {
		if R.States[i].Disulfide {
			return &R.States[i]
		}
	}
	return nil
}

//Charge returns the formal charge of the given state, and false if
//there is no such state.
func (R *Residue) Charge(state string) (float64, bool) {
	s := R.State(state)
	if s == nil {
		return 0, false
	}
	return s.Charge, true
}
