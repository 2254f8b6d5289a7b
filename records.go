/*
 * records.go, part of gopqr.
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
	"fmt"
	"strings"

	v3 "github.com/rmera/gopqr/v3"
)

//Record is an already-parsed atom record, as read from a structure file.
type Record struct {
	Serial    int
	Name      string
	Element   string //if empty, it is guessed from the name
	ResName   string
	ResSeq    int
	ICode     string
	Chain     string
	AltLoc    string
	Occupancy float64
	Het       bool
	X, Y, Z   float64
}

//NewMolecule builds a Molecule from a slice of records. Residues and atoms
//keep the order of the records. Only the first alternate location of each
//atom is kept, residues with more than one are reported.
//A record without residue name, or a repeated atom name without alternate
//locations, is an error.
func NewMolecule(recs []Record) (*Molecule, []Warning, error) {
	mol := NewEmpty()
	var warnings []Warning
	if len(recs) == 0 {
		return mol, nil, nil
	}
	mol.Coords = v3.Zeros(len(recs))
	chain, res := -1, -1
	var prev *Record
	skipped := make(map[int][]string)
	skippedOrder := make([]int, 0)
	n := 0
	for k := range recs {
		rec := &recs[k]
		name := strings.TrimSpace(rec.Name)
		resname := strings.TrimSpace(rec.ResName)
		if resname == "" {
			return nil, nil, Error{fmt.Sprintf("Record %d (%s) has no residue", rec.Serial, name), []string{"NewMolecule"}, true}
		}
		if prev == nil || prev.Chain != rec.Chain {
			chain = mol.AddChain(rec.Chain)
		}
		if prev == nil || prev.Chain != rec.Chain || prev.ResSeq != rec.ResSeq || prev.ICode != rec.ICode || strings.TrimSpace(prev.ResName) != resname {
			var err error
			res, err = mol.AddResidue(chain, resname, rec.ResSeq, rec.ICode)
			if err != nil {
				return nil, nil, errDecorate(err, "NewMolecule")
			}
			mol.Residues[res].Het = rec.Het
		}
		prev = rec
		if i := mol.AtomByName(res, name); i >= 0 {
			if rec.AltLoc == "" && mol.Atoms[i].AltLoc == "" {
				return nil, nil, Error{fmt.Sprintf("Atom %s repeated in residue %s", name, mol.ResidueID(res)), []string{"NewMolecule"}, true}
			}
			mol.Residues[res].MultiOcc = true
			if _, ok := skipped[res]; !ok {
				skippedOrder = append(skippedOrder, res)
			}
			skipped[res] = append(skipped[res], name)
			continue
		}
		el := strings.TrimSpace(rec.Element)
		if el == "" {
			el = SymbolFromName(name)
		}
		at := &Atom{Name: name, Element: el, Serial: rec.Serial, Index: n, Res: res, AltLoc: rec.AltLoc, Occupancy: rec.Occupancy, Origin: FromInput}
		mol.Atoms = append(mol.Atoms, at)
		mol.Coords.SetVec(n, rec.X, rec.Y, rec.Z)
		mol.Residues[res].Atoms = append(mol.Residues[res].Atoms, n)
		n++
	}
	if n < len(recs) {
		trimmed := v3.Zeros(n)
		trimmed.Copy(mol.Coords.View(0, 0, n, 3))
		mol.Coords = trimmed
	}
	for _, r := range skippedOrder {
		warnings = append(warnings, Warning{
			Kind:    MultipleOccupancy,
			Residue: r,
			Atoms:   skipped[r],
			Message: fmt.Sprintf("Multiple occupancies found in %s (%s), only the first location was kept", mol.ResidueID(r), strings.Join(skipped[r], " ")),
		})
	}
	mol.version++
	return mol, warnings, nil
}

//SymbolFromName guesses the element from a PDB atom name. Names starting
//with "CA" are taken as carbons: give the element explicitly for calcium.
func SymbolFromName(name string) string {
	name = strings.ToUpper(strings.TrimLeft(name, "0123456789"))
	if name == "" {
		return ""
	}
	if len(name) >= 2 {
		switch name[:2] {
		case "CL":
			return "Cl"
		case "NA":
			if len(name) == 2 {
				return "Na"
			}
		case "ZN":
			return "Zn"
		case "FE":
			return "Fe"
		case "MG":
			return "Mg"
		case "SE":
			return "Se"
		case "BR":
			return "Br"
		}
	}
	switch name[0] {
	case 'H', 'D':
		return "H"
	case 'C':
		return "C"
	case 'N':
		return "N"
	case 'O':
		return "O"
	case 'S':
		return "S"
	case 'P':
		return "P"
	}
	return name[:1]
}
