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
Package top contains the residue templates and the forcefield tables used by goPQR.

A template lists the atoms of a residue with the rules to place each of them
from internal coordinates, its bonds, the protonation states it can be in, and
the groups of atoms that can rotate. Terminal patches have the same structure
and are applied on top of a residue. The built-in library, returned by Default,
covers the standard amino acids and water; Read loads other libraries.

Forcefield tables give charges and radii per residue (or state) and atom name.
*/
package top
