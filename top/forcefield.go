/*
 * forcefield.go, part of gopqr.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//Params are the nonbonded parameters that an atom gets from a forcefield.
type Params struct {
	Charge float64 `yaml:"charge"`
	Radius float64 `yaml:"radius"`
}

//Forcefield gives the parameters for an atom in a residue in a given state.
//state is the forcefield name of the state, which can be empty.
type Forcefield interface {
	Params(residue, state, atom string) (Params, bool)
}

//Table is a Forcefield backed by a map. Entries are grouped by residue or
//state name. A lookup tries the group named after the state first, then the
//one named after the residue.
type Table struct {
	Name    string                       `yaml:"name"`
	Entries map[string]map[string]Params `yaml:"groups"`
}

//NewTable returns an empty table.
func NewTable(name string) *Table {
	return &Table{Name: name, Entries: make(map[string]map[string]Params)}
}

//Set adds or replaces the parameters for atom in group.
func (T *Table) Set(group, atom string, p Params) {
	if T.Entries == nil {
		T.Entries = make(map[string]map[string]Params)
	}
	g, ok := T.Entries[group]
	if !ok {
		g = make(map[string]Params)
		T.Entries[group] = g
	}
	g[atom] = p
}

//Params implements Forcefield.
func (T *Table) Params(residue, state, atom string) (Params, bool) {
	if state != "" {
		if p, ok := T.Entries[state][atom]; ok {
			return p, true
		}
	}
	p, ok := T.Entries[residue][atom]
	return p, ok
}

//ReadForcefield reads a Table in YAML format:
//
//	name: myff
//	groups:
//	  ALA:
//	    N: {charge: -0.4157, radius: 1.824}
func ReadForcefield(r io.Reader) (*Table, error) {
	T := NewTable("")
	if err := yaml.NewDecoder(r).Decode(T); err != nil {
		return nil, fmt.Errorf("reading forcefield: %w", err)
	}
	return T, nil
}

func cleanString(s string) string {
	f := strings.Split(s, "#")[0]
	return strings.Trim(f, "\r\n\t ")
}

//ReadDat reads a Table from a whitespace-separated text file, one atom per
//line: group, atom name, charge and radius. Extra columns are ignored and
//'#' starts a comment.
func ReadDat(r io.Reader, name string) (*Table, error) {
	T := NewTable(name)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := cleanString(sc.Text())
		if s == "" {
			continue
		}
		l := strings.Fields(s)
		if len(l) < 4 {
			return nil, fmt.Errorf("forcefield %s, line %d: expected at least 4 fields, got %d", name, line, len(l))
		}
		q, err := strconv.ParseFloat(l[2], 64)
		if err != nil {
			return nil, fmt.Errorf("forcefield %s, line %d: %w", name, line, err)
		}
		rad, err := strconv.ParseFloat(l[3], 64)
		if err != nil {
			return nil, fmt.Errorf("forcefield %s, line %d: %w", name, line, err)
		}
		T.Set(l[0], l[1], Params{Charge: q, Radius: rad})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("forcefield %s: %w", name, err)
	}
	return T, nil
}
