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

package chemgraph

import (
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/traverse"
)

//ShortestPath returns the atoms in a path with the minimum number of bonds
//from a to b, both included. Among paths of the same length, the one found
//first in the breadth-first search, which visits neighbors in increasing
//order, is returned. The path from an atom to itself is the atom alone.
//It returns nil if there is no path.
func (G *Graph) ShortestPath(a, b int) []int {
	G.sync()
	if !G.live(int64(a)) || !G.live(int64(b)) {
		return nil
	}
	if a == b {
		return []int{a}
	}
	parent := make(map[int]int)
	var bf traverse.BreadthFirst
	bf.Traverse = func(e graph.Edge) bool {
		to := e.To()
		if !bf.Visited(to) {
			if _, ok := parent[int(to.ID())]; !ok {
				parent[int(to.ID())] = int(e.From().ID())
			}
		}
		return true
	}
	found := bf.Walk(G, Node(a), func(n graph.Node, _ int) bool {
		return int(n.ID()) == b
	})
	if found == nil {
		return nil
	}
	path := []int{b}
	for curr := b; curr != a; {
		curr = parent[curr]
		path = append(path, curr)
	}
	slices.Reverse(path)
	return path
}

//Component returns the atoms connected to a, a included, in increasing order.
func (G *Graph) Component(a int) []int {
	G.sync()
	if !G.live(int64(a)) {
		return nil
	}
	ret := make([]int, 0)
	var bf traverse.BreadthFirst
	bf.Walk(G, Node(a), func(n graph.Node, _ int) bool {
		ret = append(ret, int(n.ID()))
		return false
	})
	slices.Sort(ret)
	return ret
}

//FarSide returns the atoms that stay with pivot when the bond anchor-pivot
//is cut, pivot included, in increasing order. It returns nil if the atoms are
//not bonded, or if the bond is in a ring, as then the anchor is reached anyway.
func (G *Graph) FarSide(anchor, pivot int) []int {
	if !G.Bonded(anchor, pivot) {
		return nil
	}
	ring := false
	ret := make([]int, 0)
	bf := traverse.BreadthFirst{
		Traverse: func(e graph.Edge) bool {
			f, t := int(e.From().ID()), int(e.To().ID())
			return !(f == pivot && t == anchor) && !(f == anchor && t == pivot)
		},
	}
	bf.Walk(G, Node(pivot), func(n graph.Node, _ int) bool {
		if int(n.ID()) == anchor {
			ring = true
			return true
		}
		ret = append(ret, int(n.ID()))
		return false
	})
	if ring {
		return nil
	}
	slices.Sort(ret)
	return ret
}

//InRing returns true if a and b are bonded and the bond belongs to a ring.
func (G *Graph) InRing(a, b int) bool {
	return G.Bonded(a, b) && G.FarSide(a, b) == nil
}

//Within returns the atoms at most n bonds away from a, a included, in
//increasing order.
func (G *Graph) Within(a, n int) []int {
	G.sync()
	if !G.live(int64(a)) {
		return nil
	}
	ret := make([]int, 0, 8)
	var bf traverse.BreadthFirst
	bf.Walk(G, Node(a), func(node graph.Node, d int) bool {
		if d > n {
			return true
		}
		ret = append(ret, int(node.ID()))
		return false
	})
	slices.Sort(ret)
	return ret
}

//Separation returns the number of bonds in the shortest path between a and b,
//or -1 if there is no path with max bonds or less.
func (G *Graph) Separation(a, b, max int) int {
	G.sync()
	if !G.live(int64(a)) || !G.live(int64(b)) {
		return -1
	}
	sep := -1
	var bf traverse.BreadthFirst
	bf.Walk(G, Node(a), func(n graph.Node, d int) bool {
		if d > max {
			return true
		}
		if int(n.ID()) == b {
			sep = d
			return true
		}
		return false
	})
	return sep
}
