/*
 * atom.go, part of gopqr.
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

	v3 "github.com/rmera/gopqr/v3"
)

//Origin tells where the position of an atom comes from.
type Origin int

const (
	FromInput    Origin = iota //read from the input records
	FromTemplate               //placed from a residue template
)

func (o Origin) String() string {
	if o == FromTemplate {
		return "template"
	}
	return "input"
}

//Atom contains the identity and the parameters of an atom. The position
//lives in the Coords matrix of the Molecule, at the row Index.
//Name, Element and Serial don't change once the atom is created.
type Atom struct {
	Name      string
	Element   string
	Serial    int
	Index     int //position in the arena, which is also the row in the coordinates.
	Res       int //index of the residue that owns the atom
	AltLoc    string
	Occupancy float64
	Charge    float64
	Radius    float64
	HasParams bool //false until the forcefield gives charge and radius
	Origin    Origin
	Deleted   bool
}

//Hydrogen returns true if the atom is a hydrogen.
func (A *Atom) Hydrogen() bool {
	return A.Element == "H"
}

//Polar returns true for nitrogens and oxygens.
func (A *Atom) Polar() bool {
	return A.Element == "N" || A.Element == "O"
}

//DebumpState is the state of a residue in the clash resolution.
type DebumpState int

const (
	Clean DebumpState = iota
	ClashDetected
	Resolving
	Resolved
	Unresolved
)

func (d DebumpState) String() string {
	switch d {
	case ClashDetected:
		return "CLASH_DETECTED"
	case Resolving:
		return "RESOLVING"
	case Resolved:
		return "RESOLVED"
	case Unresolved:
		return "UNRESOLVED"
	}
	return "CLEAN"
}

//Site is a place of a residue with a discrete set of states: the residue itself,
//or a terminal patch applied to it. Template names the template (or patch)
//that enumerates the states.
type Site struct {
	Template   string
	State      string
	Candidates []string //states still under consideration, in order of preference.
	Fixed      bool     //the state was given in the input and is not to be searched.
}

//Group is a set of atoms that can be rotated together around the bond Axis.
type Group struct {
	Name  string
	Axis  [2]int
	Atoms []int
	Steps int
}

//Residue is an ordered set of atoms. The order of Atoms is the order
//in which they will be written out.
type Residue struct {
	Name     string //as read
	Seq      int
	ICode    string
	Chain    int
	Index    int
	Het      bool
	Atoms    []int
	Body     Site
	Patches  []Site
	NTerm    bool
	CTerm    bool
	Groups   []Group
	Debump   DebumpState
	MultiOcc bool
}

//State returns the state of the residue body.
func (R *Residue) State() string {
	return R.Body.State
}

//Patch returns the site for the patch with the given template name, or nil.
func (R *Residue) Patch(name string) *Site {
	for i := range R.Patches {
		if R.Patches[i].Template == name {
			return &R.Patches[i]
		}
	}
	return nil
}

//ID returns a human-readable identifier for the residue.
func (R *Residue) ID(chain string) string {
	return fmt.Sprintf("%s %s%d%s", R.Name, chain, R.Seq, R.ICode)
}

//Chain is an ordered set of residues.
type Chain struct {
	ID       string
	Residues []int
}

//Molecule owns all atoms, residues and chains of a structure, and the
//coordinates of the atoms. Atoms are never reordered: removed ones are
//marked as deleted and keep their index.
type Molecule struct {
	Atoms    []*Atom
	Residues []*Residue
	Chains   []*Chain
	Coords   *v3.Matrix
	Missed   []int //atoms without forcefield parameters
	Flagged  []int //residues with non-integral charge
	version  int
}

//NewEmpty returns an empty molecule.
func NewEmpty() *Molecule {
	return &Molecule{Atoms: make([]*Atom, 0, 100), Residues: make([]*Residue, 0, 10), Chains: make([]*Chain, 0, 1)}
}

//Version returns a counter that changes every time the set of atoms changes.
func (M *Molecule) Version() int {
	return M.version
}

//Touch increases the version, to signal a change that doesn't add or remove atoms,
//such as a new template or patch for a residue.
func (M *Molecule) Touch() {
	M.version++
}

//Len returns the number of atoms in the arena, deleted ones included.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

//Atom returns the ith atom.
func (M *Molecule) Atom(i int) *Atom {
	return M.Atoms[i]
}

//Residue returns the ith residue.
func (M *Molecule) Residue(i int) *Residue {
	return M.Residues[i]
}

//Coord returns a view of the position of the ith atom.
func (M *Molecule) Coord(i int) *v3.Matrix {
	return M.Coords.VecView(i)
}

//SetCoord sets the position of the ith atom to the first vector of c.
func (M *Molecule) SetCoord(i int, c *v3.Matrix) {
	M.Coords.SetVec(i, c.At(0, 0), c.At(0, 1), c.At(0, 2))
}

//AddChain appends a chain and returns its index.
func (M *Molecule) AddChain(id string) int {
	M.Chains = append(M.Chains, &Chain{ID: id})
	return len(M.Chains) - 1
}

//AddResidue appends a residue to the given chain and returns its index.
func (M *Molecule) AddResidue(chain int, name string, seq int, icode string) (int, error) {
	if chain < 0 || chain >= len(M.Chains) {
		return -1, Error{fmt.Sprintf("No chain %d for residue %s %d", chain, name, seq), []string{"AddResidue"}, true}
	}
	if name == "" {
		return -1, Error{fmt.Sprintf("Residue %d in chain %s has no name", seq, M.Chains[chain].ID), []string{"AddResidue"}, true}
	}
	r := &Residue{Name: name, Seq: seq, ICode: icode, Chain: chain, Index: len(M.Residues)}
	M.Residues = append(M.Residues, r)
	M.Chains[chain].Residues = append(M.Chains[chain].Residues, r.Index)
	return r.Index, nil
}

//AddAtom appends a new atom to the residue res, at the given position.
//Atom names must be unique in a residue.
func (M *Molecule) AddAtom(res int, name, element string, pos *v3.Matrix, origin Origin) (int, error) {
	if res < 0 || res >= len(M.Residues) {
		return -1, Error{fmt.Sprintf("Atom %s has no residue", name), []string{"AddAtom"}, true}
	}
	r := M.Residues[res]
	if M.AtomByName(res, name) >= 0 {
		return -1, Error{fmt.Sprintf("Atom %s already present in residue %s %d", name, r.Name, r.Seq), []string{"AddAtom"}, true}
	}
	i := len(M.Atoms)
	at := &Atom{Name: name, Element: element, Serial: i + 1, Index: i, Res: res, Occupancy: 1, Origin: origin}
	M.Atoms = append(M.Atoms, at)
	M.Coords = M.Coords.Extend(1)
	if pos != nil {
		M.SetCoord(i, pos)
	}
	r.Atoms = append(r.Atoms, i)
	M.version++
	return i, nil
}

//RemoveAtom marks the ith atom as deleted and takes it out of its residue.
func (M *Molecule) RemoveAtom(i int) {
	at := M.Atoms[i]
	if at.Deleted {
		return
	}
	at.Deleted = true
	r := M.Residues[at.Res]
	for k, v := range r.Atoms {
		if v == i {
			r.Atoms = append(r.Atoms[:k], r.Atoms[k+1:]...)
			break
		}
	}
	M.version++
}

//AtomByName returns the index of the atom with the given name in
//the residue res, or -1 if there is none.
func (M *Molecule) AtomByName(res int, name string) int {
	if res < 0 || res >= len(M.Residues) {
		return -1
	}
	for _, v := range M.Residues[res].Atoms {
		if M.Atoms[v].Name == name {
			return v
		}
	}
	return -1
}

//Prev returns the index of the residue before res in its chain, or -1.
func (M *Molecule) Prev(res int) int {
	return M.neighbor(res, -1)
}

//Next returns the index of the residue after res in its chain, or -1.
func (M *Molecule) Next(res int) int {
	return M.neighbor(res, 1)
}

func (M *Molecule) neighbor(res, step int) int {
	r := M.Residues[res]
	c := M.Chains[r.Chain]
	for k, v := range c.Residues {
		if v == res {
			if k+step < 0 || k+step >= len(c.Residues) {
				return -1
			}
			return c.Residues[k+step]
		}
	}
	return -1
}

//Ordered returns the indexes of the live atoms in output order: residues in
//the order they were created, atoms in residue order.
func (M *Molecule) Ordered() []int {
	ret := make([]int, 0, len(M.Atoms))
	for _, r := range M.Residues {
		ret = append(ret, r.Atoms...)
	}
	return ret
}

//ResidueID returns a human-readable identifier for the residue res.
func (M *Molecule) ResidueID(res int) string {
	r := M.Residues[res]
	return r.ID(M.Chains[r.Chain].ID)
}

//AtomID returns a human-readable identifier for the atom i.
func (M *Molecule) AtomID(i int) string {
	return fmt.Sprintf("%s:%s", M.ResidueID(M.Atoms[i].Res), M.Atoms[i].Name)
}
