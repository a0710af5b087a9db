/*
 * interfaces.go, part of goMeso.
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

package meso

// Beader is the basic interface for a particle population.
type Beader interface {

	//Bead returns the bead stored in the slot for the 1-based id.
	//The bead's own ID is not guaranteed to match id, callers that
	//care (the restart readers) must check it.
	Bead(id int) (*Bead, bool)

	Len() int
}

// Populator is a Beader that also knows about polymers and about
// the bonds owned by them.
type Populator interface {
	Beader

	//Polymer returns the polymer with the 1-based id.
	Polymer(id int) (*Polymer, bool)

	NPolymers() int

	//NPolymerTypes is the number of polymer types in the simulation.
	NPolymerTypes() int

	//BondTotal is the number of bonds already assigned an id,
	//dynamic bonds are numbered after them.
	BondTotal() int
}

//Errors

// Decorater is the interface for errors that all packages in this library return. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Decorater interface {
	Error() string
	Decorate(string) []string //Each call returns the "decoration" slice resulting from the current call. If passed an empty string, it just returns the current value.
	Critical() bool
}
