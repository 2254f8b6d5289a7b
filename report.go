/*
 * report.go, part of gopqr.
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

import "fmt"

//WarningKind classifies the problems found during a run that don't stop it.
type WarningKind int

const (
	MultipleOccupancy WarningKind = iota
	MissingHeavy
	UnplacedHydrogen
	UnresolvedClash
	UnknownResidue
	MissingParameters
	NonIntegralCharge
)

var warningNames = [...]string{
	"multiple occupancy",
	"missing heavy atom",
	"unplaced hydrogen",
	"unresolved clash",
	"unknown residue",
	"missing parameters",
	"non-integral charge",
}

func (w WarningKind) String() string {
	if int(w) < len(warningNames) {
		return warningNames[w]
	}
	return fmt.Sprintf("warning(%d)", int(w))
}

//Warning is a problem found in a residue. Atoms are the names of the
//atoms involved, if any.
type Warning struct {
	Kind    WarningKind
	Residue int
	Atoms   []string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}
