/*
 * doc.go, part of goMeso.
 *
 *
 * Copyright 2024 The goMeso Authors
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
 *
 */

/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package meso is the main package of the goMeso library. It provides the bead, polymer and
entity-type structures shared by the restart machinery of a mesoscale (DPD/MD/BD) bead-spring
simulation.

	**goMeso Capabilities**

    Holds the particle population (beads and polymers) a restart is resolved against.

    Keeps the table of bead, bond and bond-pair types, with a symmetric bead-bead
	interaction matrix that grows when new types are created during a run.

    Keeps the bonds created at run time between existing beads (dynamic bonds).

    Writes and reads "inclusive" restart files that recreate all of the above, plus
	the command targets and their decorators (see the restart and target packages).

The errors returned by this library are, whenever possible, of type *Error, which carries
a Kind that can be checked with IsKind.
*/
package meso
