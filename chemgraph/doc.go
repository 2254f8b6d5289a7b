/*
 * doc.go, part of gopqr.
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

/*
Package chemgraph builds the bonding graph of a molecule and answers
connectivity questions on it: neighbors, shortest paths, connected components,
rings and the atoms that move together when a bond is rotated.

The Graph satisfies gonum's graph.Undirected interface, so the gonum graph
algorithms can be used on it. Searches are breadth-first, with neighbors
visited in increasing index order, which makes the results deterministic.
*/
package chemgraph
