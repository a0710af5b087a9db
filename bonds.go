/*
 * bonds.go, part of goMeso.
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

import "gonum.org/v1/gonum/spatial/r3"

//DynamicBond is a bond created during the run between two beads that
//already existed. It is not owned by any polymer.
type DynamicBond struct {
	ID          int
	Type        int //index into the bond types of a TypeTable
	SpringConst float64
	RestLength  float64
	Head        *Bead
	Tail        *Bead
}

//Cross returns the bead at the other end of the bond from origin.
func (B *DynamicBond) Cross(origin *Bead) *Bead {
	if origin.ID == B.Head.ID {
		return B.Tail
	}
	if origin.ID == B.Tail.ID {
		return B.Head
	}
	panic("Trying to cross a bond: The origin bead given is not present in the bond!") //a programming error, so a panic is warranted.
}

//Length returns the distance between the endpoints, ignoring periodic images.
func (B *DynamicBond) Length() float64 {
	return r3.Norm(r3.Sub(B.Head.Pos, B.Tail.Pos))
}

//Stretch returns the length of the bond over its rest length.
func (B *DynamicBond) Stretch() float64 {
	return B.Length() / B.RestLength
}

//NewDynamicBond creates a dynamic bond of type bt between head and tail, with
//the given id. It returns error if head and tail are the same bead.
func NewDynamicBond(id int, bt *BondType, head, tail *Bead) (*DynamicBond, error) {
	if head == nil || tail == nil {
		return nil, NewError(DanglingReference, "", "dynamic bond %d has a nil endpoint", id)
	}
	if head.ID == tail.ID {
		return nil, NewError(FormatError, "", "dynamic bond %d joins bead %d to itself", id, head.ID)
	}
	return &DynamicBond{ID: id, Type: bt.ID, SpringConst: bt.SpringConst, RestLength: bt.RestLength, Head: head, Tail: tail}, nil
}
