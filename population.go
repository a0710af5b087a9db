/*
 * population.go, part of goMeso.
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

import (
	"gonum.org/v1/gonum/spatial/r3"
)

//Bead contains the per-particle data of the simulation.
type Bead struct {
	ID        int //1-based
	Type      int //index into the bead types of a TypeTable
	PolymerID int //0 for beads not in a polymer
	Pos       r3.Vec
	Vel       r3.Vec
}

//Copy returns a copy of the Bead.
func (B *Bead) Copy() *Bead {
	if B == nil {
		panic("Attempted to copy a nil bead")
	}
	n := *B
	return &n
}

//Polymer is a chain of beads of a given polymer type.
type Polymer struct {
	ID    int //1-based
	Type  int
	Beads []*Bead
}

/*****Population type***/

//Population is the set of beads and polymers restart data is resolved against.
//It implements Populator.
type Population struct {
	Beads        []*Bead
	Polymers     []*Polymer
	polymerTypes int
	bonds        int
}

//NewPopulation builds a population from the given beads and polymers. Beads are
//attached to the polymer named in their PolymerID, in the order given. polymerTypes
//is the number of polymer types, bonds the number of bonds owned by the polymers.
//It returns error if a bead names a polymer that is not in polymers, or if
//a polymer's ID or type are out of range.
func NewPopulation(beads []*Bead, polymers []*Polymer, polymerTypes, bonds int) (*Population, error) {
	P := &Population{Beads: beads, Polymers: polymers, polymerTypes: polymerTypes, bonds: bonds}
	for i, p := range polymers {
		if p.ID != i+1 {
			return nil, NewError(FormatError, "", "polymer in slot %d has id %d", i+1, p.ID)
		}
		if p.Type < 0 || p.Type >= polymerTypes {
			return nil, NewError(FormatError, "", "polymer %d has type %d, but there are %d polymer types", p.ID, p.Type, polymerTypes)
		}
		p.Beads = p.Beads[:0]
	}
	for _, b := range beads {
		if b.PolymerID == 0 {
			continue
		}
		p, ok := P.Polymer(b.PolymerID)
		if !ok {
			return nil, NewError(DanglingReference, "", "bead %d belongs to polymer %d, which doesn't exist", b.ID, b.PolymerID)
		}
		p.Beads = append(p.Beads, b)
	}
	if bonds < 0 {
		return nil, NewError(FormatError, "", "negative bond count %d", bonds)
	}
	return P, nil
}

//Bead returns the bead in the slot for the 1-based id.
func (P *Population) Bead(id int) (*Bead, bool) {
	if id < 1 || id > len(P.Beads) {
		return nil, false
	}
	return P.Beads[id-1], true
}

//Len returns the number of beads.
func (P *Population) Len() int {
	return len(P.Beads)
}

//Polymer returns the polymer with the 1-based id.
func (P *Population) Polymer(id int) (*Polymer, bool) {
	if id < 1 || id > len(P.Polymers) {
		return nil, false
	}
	return P.Polymers[id-1], true
}

func (P *Population) NPolymers() int {
	return len(P.Polymers)
}

func (P *Population) NPolymerTypes() int {
	return P.polymerTypes
}

func (P *Population) BondTotal() int {
	return P.bonds
}

//MaxBeadType returns the largest bead type used by any bead, or -1 for
//an empty population.
func (P *Population) MaxBeadType() int {
	max := -1
	for _, b := range P.Beads {
		if b.Type > max {
			max = b.Type
		}
	}
	return max
}
