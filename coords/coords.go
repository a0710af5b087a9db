/*
 * coords.go, part of goMeso.
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

//Package coords implements the coordinates-only restart payload: the bead
//positions, velocities and polymer membership, without any of the data
//created during the run.
//
//The format is:
//
//	** <step> <bead types> <polymer types> <beads> <polymers> <polymer bonds>
//	<box x> <box y> <box z>
//	<id> <type> <polymer id> <x> <y> <z> <vx> <vy> <vz>    (one line per bead)
//	<id> <type>                                            (one line per polymer)
//	*
//
//Polymer id 0 marks a bead that belongs to no polymer. All tokens are
//whitespace-separated.
package coords

import (
	"io"

	meso "github.com/rmera/gomeso"
	"github.com/rmera/gomeso/tok"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	headerMark = "**"
	frameEnd   = "*"
)

//Frame is the content of a coordinates-only payload.
type Frame struct {
	Step         int
	Box          r3.Vec
	BeadTypes    int //number of bead types the writing simulation had
	PolymerTypes int
	Pop          *meso.Population
}

//Write writes the frame to w.
func Write(w io.Writer, F *Frame) error {
	if F == nil || F.Pop == nil {
		return meso.NewError(meso.FormatError, "", "given nil frame or population")
	}
	W := tok.NewWriter(w)
	P := F.Pop
	W.Token(headerMark)
	W.Int(F.Step)
	W.Int(F.BeadTypes)
	W.Int(P.NPolymerTypes())
	W.Int(P.Len())
	W.Int(P.NPolymers())
	W.Int(P.BondTotal())
	W.Newline()
	W.Float(F.Box.X)
	W.Float(F.Box.Y)
	W.Float(F.Box.Z)
	W.Newline()
	for _, b := range P.Beads {
		W.Int(b.ID)
		W.Int(b.Type)
		W.Int(b.PolymerID)
		for _, v := range [6]float64{b.Pos.X, b.Pos.Y, b.Pos.Z, b.Vel.X, b.Vel.Y, b.Vel.Z} {
			W.Float(v)
		}
		W.Newline()
	}
	for _, p := range P.Polymers {
		W.Int(p.ID)
		W.Int(p.Type)
		W.Newline()
	}
	W.Token(frameEnd)
	W.Newline()
	if err := W.Flush(); err != nil {
		return meso.Decorate(err, "coords.Write")
	}
	return nil
}

//Read reads a frame from R. After a successful call, R.Offset() is the position
//right after the frame terminator.
func Read(R *tok.Reader) (*Frame, error) {
	F := new(Frame)
	R.Expect(headerMark)
	F.Step = R.Int("step")
	F.BeadTypes = R.Count("bead type count")
	F.PolymerTypes = R.Count("polymer type count")
	nbeads := R.Records(9, "bead count")
	npoly := R.Records(2, "polymer count")
	nbonds := R.Count("polymer bond count")
	F.Box = r3.Vec{X: R.Float("box x"), Y: R.Float("box y"), Z: R.Float("box z")}
	if err := R.Err(); err != nil {
		return nil, meso.Decorate(err, "coords.Read")
	}
	var beads []*meso.Bead
	for i := 1; i <= nbeads && R.Err() == nil; i++ {
		b := new(meso.Bead)
		b.ID = R.Int("id of bead %d", i)
		b.Type = R.Int("type of bead %d", i)
		b.PolymerID = R.Count("polymer of bead %d", i)
		b.Pos = r3.Vec{X: R.Float("x of bead %d", i), Y: R.Float("y of bead %d", i), Z: R.Float("z of bead %d", i)}
		b.Vel = r3.Vec{X: R.Float("vx of bead %d", i), Y: R.Float("vy of bead %d", i), Z: R.Float("vz of bead %d", i)}
		if R.Err() == nil && (b.Type < 0 || b.Type >= F.BeadTypes) {
			R.Failf(meso.FormatError, "bead %d has type %d, but the header declares %d bead types", b.ID, b.Type, F.BeadTypes)
		}
		beads = append(beads, b)
	}
	var polymers []*meso.Polymer
	for i := 1; i <= npoly && R.Err() == nil; i++ {
		p := new(meso.Polymer)
		p.ID = R.Int("id of polymer %d", i)
		p.Type = R.Int("type of polymer %d", i)
		polymers = append(polymers, p)
	}
	R.Expect(frameEnd)
	if err := R.Err(); err != nil {
		return nil, meso.Decorate(err, "coords.Read")
	}
	var err error
	F.Pop, err = meso.NewPopulation(beads, polymers, F.PolymerTypes, nbonds)
	if err != nil {
		return nil, meso.Decorate(R.Fail(err), "coords.Read")
	}
	return F, nil
}
