/*
 * graph.go, part of gopqr.
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
	"slices"
	"strings"

	pqr "github.com/rmera/gopqr"
	"github.com/rmera/gopqr/top"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
)

//Options for the bonds that are not given by the templates.
type Options struct {
	PeptideLimit   float64 `mapstructure:"peptide_limit"`   //maximum C-N distance for a peptide bond
	DisulfideLimit float64 `mapstructure:"disulfide_limit"` //maximum SG-SG distance for a disulfide bond
}

//DefaultOptions returns the usual bond limits.
func DefaultOptions() Options {
	return Options{PeptideLimit: 2.0, DisulfideLimit: 2.5}
}

//Node is an atom in the graph. Its ID is the index of the atom in the molecule.
type Node int

func (n Node) ID() int64 {
	return int64(n)
}

//Bond is an edge of the graph. Bonds are not directional, but From and To
//follow the order in which the bond was requested.
type Bond struct {
	F, T Node
}

func (B Bond) From() graph.Node {
	return B.F
}

func (B Bond) To() graph.Node {
	return B.T
}

func (B Bond) ReversedEdge() graph.Edge {
	return Bond{F: B.T, T: B.F}
}

//Graph is the bonding graph of a molecule. It implements gonum's graph.Undirected.
//The graph rebuilds itself whenever the version of the molecule changes, so
//it always reflects the current set of atoms.
type Graph struct {
	mol        *pqr.Molecule
	lib        *top.Library
	opts       Options
	log        *zap.Logger
	adj        [][]int
	disulfides [][2]int
	version    int
	built      bool
}

var _ graph.Undirected = (*Graph)(nil)

//New returns the bonding graph for mol. Bonds come from the templates in lib,
//from distances between consecutive residues (peptide bonds) and between
//sulfur atoms (disulfides), and from covalent radii for residues without a
//template. A nil logger discards messages.
func New(mol *pqr.Molecule, lib *top.Library, opts Options, logger *zap.Logger) *Graph {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Graph{mol: mol, lib: lib, opts: opts, log: logger}
}

func (G *Graph) sync() {
	if G.built && G.version == G.mol.Version() {
		return
	}
	G.build()
}

func (G *Graph) addBond(i, j int) {
	if i == j || i < 0 || j < 0 || slices.Contains(G.adj[i], j) {
		return
	}
	G.adj[i] = append(G.adj[i], j)
	G.adj[j] = append(G.adj[j], i)
}

func (G *Graph) template(r *pqr.Residue) *top.Residue {
	name := r.Body.Template
	if name == "" {
		name = r.Name
	}
	t, ok := G.lib.Residue(name)
	if !ok {
		return nil
	}
	return t
}

func (G *Graph) build() {
	mol := G.mol
	G.adj = make([][]int, mol.Len())
	G.disulfides = G.disulfides[:0]
	for ri, r := range mol.Residues {
		t := G.template(r)
		unknown := make([]int, 0)
		for _, i := range r.Atoms {
			name := mol.Atom(i).Name
			known := false
			if t != nil {
				if ta := t.Atom(name); ta != nil {
					known = true
					G.nameBonds(ri, i, ta.Bonds)
				}
			}
			for _, site := range r.Patches {
				p, ok := G.lib.Patch(site.Template)
				if !ok {
					continue
				}
				if pa := p.Atom(name); pa != nil {
					known = true
					G.nameBonds(ri, i, pa.Bonds)
				}
			}
			if !known {
				unknown = append(unknown, i)
			}
		}
		if len(unknown) == 0 {
			continue
		}
		bonds, err := pqr.InferBonds(mol, r.Atoms)
		if err != nil {
			G.log.Debug("Bonds inferred with missing atomic data", zap.String("residue", mol.ResidueID(ri)), zap.Error(err))
		}
		for _, b := range bonds {
			if slices.Contains(unknown, b.At1) || slices.Contains(unknown, b.At2) {
				G.addBond(b.At1, b.At2)
			}
		}
	}
	G.peptideBonds()
	G.disulfideBonds()
	for i := range G.adj {
		slices.Sort(G.adj[i])
	}
	G.version = mol.Version()
	G.built = true
}

//nameBonds adds the bonds between atom i of residue res and the atoms named in names.
func (G *Graph) nameBonds(res, i int, names []string) {
	for _, b := range names {
		if strings.HasPrefix(b, "-") || strings.HasPrefix(b, "+") {
			continue
		}
		G.addBond(i, G.mol.AtomByName(res, b))
	}
}

func (G *Graph) peptideBonds() {
	mol := G.mol
	for _, c := range mol.Chains {
		for k := 1; k < len(c.Residues); k++ {
			prev, curr := c.Residues[k-1], c.Residues[k]
			ci := mol.AtomByName(prev, "C")
			ni := mol.AtomByName(curr, "N")
			if ci < 0 || ni < 0 {
				continue
			}
			if pqr.Distance(mol.Coord(ci), mol.Coord(ni)) < G.opts.PeptideLimit {
				G.addBond(ci, ni)
			}
		}
	}
}

func (G *Graph) disulfideBonds() {
	mol := G.mol
	sg := make([]int, 0)
	for ri := range mol.Residues {
		if i := mol.AtomByName(ri, "SG"); i >= 0 && mol.Atom(i).Element == "S" {
			sg = append(sg, i)
		}
	}
	for k, i := range sg {
		for _, j := range sg[k+1:] {
			if pqr.Distance(mol.Coord(i), mol.Coord(j)) < G.opts.DisulfideLimit {
				G.addBond(i, j)
				G.disulfides = append(G.disulfides, [2]int{i, j})
			}
		}
	}
}

//Disulfides returns the pairs of sulfur atoms joined by disulfide bonds.
func (G *Graph) Disulfides() [][2]int {
	G.sync()
	return slices.Clone(G.disulfides)
}

//Neighbors returns the atoms bonded to i, in increasing order.
func (G *Graph) Neighbors(i int) []int {
	G.sync()
	if i < 0 || i >= len(G.adj) {
		return nil
	}
	return slices.Clone(G.adj[i])
}

//Bonded returns true if i and j are bonded.
func (G *Graph) Bonded(i, j int) bool {
	G.sync()
	if i < 0 || i >= len(G.adj) {
		return false
	}
	return slices.Contains(G.adj[i], j)
}

//Bonds returns all the bonds in the graph as pairs of atoms, the lower index first.
func (G *Graph) Bonds() [][2]int {
	G.sync()
	ret := make([][2]int, 0, len(G.adj))
	for i, n := range G.adj {
		for _, j := range n {
			if j > i {
				ret = append(ret, [2]int{i, j})
			}
		}
	}
	return ret
}

//The gonum graph.Undirected interface.

func (G *Graph) live(id int64) bool {
	return id >= 0 && id < int64(G.mol.Len()) && !G.mol.Atom(int(id)).Deleted
}

//Node returns the node with the given ID, or nil if there is no such live atom.
func (G *Graph) Node(id int64) graph.Node {
	G.sync()
	if !G.live(id) {
		return nil
	}
	return Node(id)
}

//Nodes returns all the live atoms, in increasing order.
func (G *Graph) Nodes() graph.Nodes {
	G.sync()
	nodes := make([]graph.Node, 0, G.mol.Len())
	for i := 0; i < G.mol.Len(); i++ {
		if G.live(int64(i)) {
			nodes = append(nodes, Node(i))
		}
	}
	return iterator.NewOrderedNodes(nodes)
}

//From returns the atoms bonded to the atom id, in increasing order.
func (G *Graph) From(id int64) graph.Nodes {
	G.sync()
	if !G.live(id) {
		return graph.Empty
	}
	nodes := make([]graph.Node, 0, len(G.adj[id]))
	for _, j := range G.adj[id] {
		nodes = append(nodes, Node(j))
	}
	return iterator.NewOrderedNodes(nodes)
}

func (G *Graph) HasEdgeBetween(xid, yid int64) bool {
	return G.live(xid) && G.Bonded(int(xid), int(yid))
}

//Edge returns the bond between uid and vid, with uid as From, or nil.
func (G *Graph) Edge(uid, vid int64) graph.Edge {
	if !G.HasEdgeBetween(uid, vid) {
		return nil
	}
	return Bond{F: Node(uid), T: Node(vid)}
}

func (G *Graph) EdgeBetween(xid, yid int64) graph.Edge {
	return G.Edge(xid, yid)
}
