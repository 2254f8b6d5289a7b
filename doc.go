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

/*Package pqr is the core of goPQR, a library to prepare macromolecular structures for
electrostatics calculations. It adds missing heavy atoms and hydrogens from idealized
residue templates, resolves clashes by rotating flexible groups, picks protonation
states and hydrogen orientations, and gives each atom a charge and a radius.

This package contains the molecule model and the geometric kernel used by the
rest of the library.

The Molecule is an arena: atoms and residues are referred to by their index, which
never changes. Removed atoms are only marked as deleted. Every change in the set of
atoms increases the molecule version, which the bonding graph (package chemgraph) uses
to keep itself up to date.

Positions are stored in a v3.Matrix, with one row per atom. The geometric functions
(Distance, Angle, Dihedral, Place, RotateAbout) take v3.Matrix vectors and use only
their first row.

	**Packages**

    chemgraph: Bonding graph, built from templates and distances.

    top: Residue templates and forcefield tables.

    rebuild: Completion of missing heavy atoms and hydrogens.

    clash: Clash detection and debumping.

    protonate: Protonation state and hydrogen orientation search.

    charges: Charge and radius assignment.

    pka: Interface to pKa calculators.

    prepare: The whole run.

*/
package pqr
