/*
 * types.go, part of goMeso.
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
	"strings"
	"unicode"

	"gonum.org/v1/gonum/mat"
)

//BeadType is a bead species. Mass and Radius may change between restarts,
//ID and Name may not.
type BeadType struct {
	ID     int
	Name   string
	Mass   float64
	Radius float64
}

//BondType is a harmonic bond type.
type BondType struct {
	ID          int
	Name        string
	SpringConst float64
	RestLength  float64
}

//BondPairType is a bending (bond-angle) type.
type BondPairType struct {
	ID             int
	Name           string
	BendConst      float64
	PreferredAngle float64
}

//ValidName returns true if s can be written as a single token in
//a restart file.
func ValidName(s string) bool {
	return s != "" && strings.IndexFunc(s, unicode.IsSpace) < 0
}

//TypeTable holds the bead, bond and bond-pair types of a simulation, plus the
//bead-bead interaction coefficients. Types can only be appended.
type TypeTable struct {
	Beads     []*BeadType
	Bonds     []*BondType
	BondPairs []*BondPairType
	inter     *mat.SymDense //nil while there are no bead types
}

//NewTypeTable returns an empty table.
func NewTypeTable() *TypeTable {
	return new(TypeTable)
}

//AddBeadType appends a bead type with the next free ID. row holds the interaction
//coefficients between the new type and each existing type, followed by the
//self-interaction, so len(row) must be len(T.Beads)+1.
func (T *TypeTable) AddBeadType(name string, mass, radius float64, row []float64) (*BeadType, error) {
	n := len(T.Beads)
	if !ValidName(name) {
		return nil, NewError(FormatError, "", "invalid bead type name %q", name)
	}
	if len(row) != n+1 {
		return nil, NewError(FormatError, "", "bead type %s needs %d interaction coefficients, got %d", name, n+1, len(row))
	}
	grown := mat.NewSymDense(n+1, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			grown.SetSym(i, j, T.inter.At(i, j))
		}
	}
	for j, v := range row {
		grown.SetSym(n, j, v)
	}
	T.inter = grown
	bt := &BeadType{ID: n, Name: name, Mass: mass, Radius: radius}
	T.Beads = append(T.Beads, bt)
	return bt, nil
}

//AddBondType appends a bond type with the next free ID.
func (T *TypeTable) AddBondType(name string, springConst, restLength float64) (*BondType, error) {
	if !ValidName(name) {
		return nil, NewError(FormatError, "", "invalid bond type name %q", name)
	}
	bt := &BondType{ID: len(T.Bonds), Name: name, SpringConst: springConst, RestLength: restLength}
	T.Bonds = append(T.Bonds, bt)
	return bt, nil
}

//AddBondPairType appends a bond-pair type with the next free ID.
func (T *TypeTable) AddBondPairType(name string, bendConst, preferredAngle float64) (*BondPairType, error) {
	if !ValidName(name) {
		return nil, NewError(FormatError, "", "invalid bond-pair type name %q", name)
	}
	bt := &BondPairType{ID: len(T.BondPairs), Name: name, BendConst: bendConst, PreferredAngle: preferredAngle}
	T.BondPairs = append(T.BondPairs, bt)
	return bt, nil
}

//Interaction returns the coefficient between bead types i and j. Panics if
//out of range.
func (T *TypeTable) Interaction(i, j int) float64 {
	if T.inter == nil {
		panic("TypeTable: Requested interaction with no bead types")
	}
	return T.inter.At(i, j)
}

//SetInteraction sets the coefficient between bead types i and j (and j and i).
func (T *TypeTable) SetInteraction(i, j int, v float64) {
	if T.inter == nil {
		panic("TypeTable: Tried to set an interaction with no bead types")
	}
	T.inter.SetSym(i, j, v)
}

//InteractionRow returns a copy of the coefficients of bead type i with every bead type.
func (T *TypeTable) InteractionRow(i int) []float64 {
	row := make([]float64, len(T.Beads))
	for j := range row {
		row[j] = T.inter.At(i, j)
	}
	return row
}

//Interactions returns the interaction matrix, or nil if there are no bead types.
//The matrix must not be modified.
func (T *TypeTable) Interactions() mat.Symmetric {
	if T.inter == nil {
		return nil
	}
	return T.inter
}

//Copy returns a deep copy of the table.
func (T *TypeTable) Copy() *TypeTable {
	C := new(TypeTable)
	for _, v := range T.Beads {
		b := *v
		C.Beads = append(C.Beads, &b)
	}
	for _, v := range T.Bonds {
		b := *v
		C.Bonds = append(C.Bonds, &b)
	}
	for _, v := range T.BondPairs {
		b := *v
		C.BondPairs = append(C.BondPairs, &b)
	}
	if T.inter != nil {
		C.inter = mat.NewSymDense(len(T.Beads), nil)
		C.inter.CopySym(T.inter)
	}
	return C
}
