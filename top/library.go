/*
 * library.go, part of gopqr.
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

import (
	_ "embed"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed residues.yaml
var defaultLibrary []byte

//Placement is a rule to put an atom from internal coordinates. The atom is
//bonded to the last of Refs, Angle is measured at the last ref and Dihedral is
//defined by the 3 refs and the atom. Angles in degrees, Length in A.
//A ref starting with '-' or '+' names an atom of the previous or the next
//residue in the chain.
type Placement struct {
	Refs     []string `yaml:"refs"`
	Length   float64  `yaml:"length"`
	Angle    float64  `yaml:"angle"`
	Dihedral float64  `yaml:"dihedral"`
}

//Atom is an atom of a template.
type Atom struct {
	Name    string      `yaml:"name"`
	Element string      `yaml:"element"`
	Bonds   []string    `yaml:"bonds"`
	Place   []Placement `yaml:"place"`
	Radius  float64     `yaml:"radius"` //0 means the element radius is used
}

//Hydrogen returns true if the template atom is a hydrogen.
func (A *Atom) Hydrogen() bool {
	return A.Element == "H"
}

//State is one of the discrete protonation states of a residue or patch.
//Hydrogens lists the titratable hydrogens present in the state.
type State struct {
	Name       string   `yaml:"name"`
	FF         string   `yaml:"ff"` //the name used in forcefield tables
	Charge     float64  `yaml:"charge"`
	Hydrogens  []string `yaml:"hydrogens"`
	Protonated bool     `yaml:"protonated"`
	Default    bool     `yaml:"default"`
	Disulfide  bool     `yaml:"disulfide"`
}

//Rotor is a group of atoms that can turn around the bond Axis in Steps
//equal increments.
type Rotor struct {
	Name  string   `yaml:"name"`
	Axis  []string `yaml:"axis"`
	Atoms []string `yaml:"atoms"`
	Steps int      `yaml:"steps"`
}

//Residue is a residue template, or a terminal patch.
type Residue struct {
	Name    string   `yaml:"name"`
	Peptide bool     `yaml:"peptide"`
	Water   bool     `yaml:"water"`
	NTerm   string   `yaml:"nterm"`   //name of the N-terminal patch, if not the default one
	Removes []string `yaml:"removes"` //atoms of the residue that a patch takes away
	PKa     float64  `yaml:"pka"`     //model pKa, 0 if not titratable
	Flip    []string `yaml:"flip"`    //bond around which the side chain can flip 180 degrees
	Atoms   []Atom   `yaml:"atoms"`
	States  []State  `yaml:"states"`
	Rotors  []Rotor  `yaml:"rotors"`
}

//Atom returns the template atom with the given name, or nil.
func (R *Residue) Atom(name string) *Atom {
	for i := range R.Atoms {
		if R.Atoms[i].Name == name {
			return &R.Atoms[i]
		}
	}
	return nil
}

//State returns the state with the given name, or nil.
func (R *Residue) State(name string) *State {
	for i := range R.States {
		if R.States[i].Name == name {
			return &R.States[i]
		}
	}
	return nil
}

//Default returns the default state, or nil if the template has no states.
//If no state is marked as default, the first one is.
func (R *Residue) Default() *State {
	for i := range R.States {
		if R.States[i].Default {
			return &R.States[i]
		}
	}
	if len(R.States) > 0 {
		return &R.States[0]
	}
	return nil
}

//Titratable returns the names of all the hydrogens that are present
//only in some of the states, in template order.
func (R *Residue) Titratable() []string {
	ret := make([]string, 0, 3)
	for _, a := range R.Atoms {
		for _, s := range R.States {
			if slices.Contains(s.Hydrogens, a.Name) {
				ret = append(ret, a.Name)
				break
			}
		}
	}
	return ret
}

//Present returns true if the atom belongs to the residue when it is in
//one of the given states. Atoms that are not titratable are always present.
func (R *Residue) Present(atom string, states ...string) bool {
	if !slices.Contains(R.Titratable(), atom) {
		return R.Atom(atom) != nil
	}
	for _, v := range states {
		if s := R.State(v); s != nil && slices.Contains(s.Hydrogens, atom) {
			return true
		}
	}
	return false
}

//Bonded returns true if the template has a bond between a and b.
func (R *Residue) Bonded(a, b string) bool {
	if at := R.Atom(a); at != nil && slices.Contains(at.Bonds, b) {
		return true
	}
	if at := R.Atom(b); at != nil && slices.Contains(at.Bonds, a) {
		return true
	}
	return false
}

//Alias maps a residue name to a template and, optionally, a fixed state.
type Alias struct {
	Name    string `yaml:"name"`
	Residue string `yaml:"residue"`
	State   string `yaml:"state"`
}

//Library is a set of residue templates, terminal patches and aliases.
type Library struct {
	Residues []*Residue `yaml:"residues"`
	Patches  []*Residue `yaml:"patches"`
	Aliases  []Alias    `yaml:"aliases"`
	res      map[string]*Residue
	patch    map[string]*Residue
	alias    map[string]Alias
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
)

//Default returns the built-in library for the standard amino acids and water.
//It panics if the built-in templates are broken.
func Default() *Library {
	defaultOnce.Do(func() {
		var err error
		defaultLib, err = Read(strings.NewReader(string(defaultLibrary)))
		if err != nil {
			panic(err.Error())
		}
	})
	return defaultLib
}

//Read reads a template library in YAML format and checks it.
func Read(r io.Reader) (*Library, error) {
	L := new(Library)
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(L); err != nil {
		return nil, fmt.Errorf("reading template library: %w", err)
	}
	if err := L.index(); err != nil {
		return nil, err
	}
	return L, nil
}

func (L *Library) index() error {
	L.res = make(map[string]*Residue, len(L.Residues))
	L.patch = make(map[string]*Residue, len(L.Patches))
	L.alias = make(map[string]Alias, len(L.Aliases))
	for _, r := range L.Residues {
		if err := checkResidue(r, false); err != nil {
			return err
		}
		if _, ok := L.res[r.Name]; ok {
			return fmt.Errorf("residue %s defined twice", r.Name)
		}
		L.res[r.Name] = r
	}
	for _, p := range L.Patches {
		if err := checkResidue(p, true); err != nil {
			return err
		}
		L.patch[p.Name] = p
	}
	for _, r := range L.Residues {
		if r.NTerm != "" && L.patch[r.NTerm] == nil {
			return fmt.Errorf("residue %s: unknown patch %s", r.Name, r.NTerm)
		}
	}
	for _, a := range L.Aliases {
		t, ok := L.res[a.Residue]
		if !ok {
			return fmt.Errorf("alias %s: unknown residue %s", a.Name, a.Residue)
		}
		if a.State != "" && t.State(a.State) == nil {
			return fmt.Errorf("alias %s: residue %s has no state %s", a.Name, a.Residue, a.State)
		}
		L.alias[a.Name] = a
	}
	return nil
}

//checkResidue verifies that all names used in the template refer to its atoms.
//Patches can refer to atoms of the residue they are applied to.
func checkResidue(r *Residue, patch bool) error {
	if r.Name == "" {
		return fmt.Errorf("template without name")
	}
	names := make(map[string]bool, len(r.Atoms))
	for _, a := range r.Atoms {
		if names[a.Name] {
			return fmt.Errorf("%s: atom %s repeated", r.Name, a.Name)
		}
		names[a.Name] = true
	}
	known := func(n string) bool {
		return patch || names[n] || strings.HasPrefix(n, "-") || strings.HasPrefix(n, "+")
	}
	for _, a := range r.Atoms {
		if a.Element == "" {
			return fmt.Errorf("%s: atom %s has no element", r.Name, a.Name)
		}
		for _, b := range a.Bonds {
			if !known(b) {
				return fmt.Errorf("%s: atom %s bonded to unknown atom %s", r.Name, a.Name, b)
			}
		}
		for _, p := range a.Place {
			if len(p.Refs) < 1 || len(p.Refs) > 3 {
				return fmt.Errorf("%s: atom %s needs 1 to 3 references", r.Name, a.Name)
			}
			for _, ref := range p.Refs {
				if ref == a.Name || !known(ref) {
					return fmt.Errorf("%s: atom %s placed from invalid atom %s", r.Name, a.Name, ref)
				}
			}
		}
	}
	defaults := 0
	for _, s := range r.States {
		if s.Default {
			defaults++
		}
		for _, h := range s.Hydrogens {
			if !names[h] {
				return fmt.Errorf("%s: state %s has unknown hydrogen %s", r.Name, s.Name, h)
			}
		}
	}
	if defaults > 1 {
		return fmt.Errorf("%s: more than one default state", r.Name)
	}
	for _, rot := range r.Rotors {
		if len(rot.Axis) != 2 || rot.Steps < 1 {
			return fmt.Errorf("%s: rotor %s needs a 2-atom axis and at least one step", r.Name, rot.Name)
		}
		for _, n := range append(slices.Clone(rot.Axis), rot.Atoms...) {
			if !known(n) {
				return fmt.Errorf("%s: rotor %s uses unknown atom %s", r.Name, rot.Name, n)
			}
		}
	}
	if len(r.Flip) != 0 && (len(r.Flip) != 2 || !names[r.Flip[0]] || !names[r.Flip[1]]) {
		return fmt.Errorf("%s: invalid flip bond", r.Name)
	}
	return nil
}

//Residue returns the template with the given name, following aliases.
func (L *Library) Residue(name string) (*Residue, bool) {
	if r, ok := L.res[name]; ok {
		return r, true
	}
	if a, ok := L.alias[name]; ok {
		return L.res[a.Residue], true
	}
	return nil, false
}

//Patch returns the patch with the given name.
func (L *Library) Patch(name string) (*Residue, bool) {
	p, ok := L.patch[name]
	return p, ok
}

//Resolve returns the template for the residue name and the state the name
//implies, if any. HID, for instance, gives the HIS template and the HID state.
func (L *Library) Resolve(name string) (*Residue, string, bool) {
	if r, ok := L.res[name]; ok {
		return r, "", true
	}
	if a, ok := L.alias[name]; ok {
		return L.res[a.Residue], a.State, true
	}
	return nil, "", false
}
