/*
 * restart.go, part of goMeso.
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

//Package restart reads and writes goMeso restart files.
//
//A restart file starts with the coordinates-only payload of package coords.
//Files written by WriteFile continue with the sentinel token "inclusive" and
//the data created during the run: the type tables (which may have grown),
//the dynamic bonds and the command-target graph. Files without the sentinel
//are legacy files, and only the coordinates are recovered from them.
//
//Reading is all or nothing. The returned State is only built when the whole
//file has been parsed and every cross reference resolved, and the type table
//given in Options is never modified.
package restart

import (
	"io"
	"os"

	meso "github.com/rmera/gomeso"
	"github.com/rmera/gomeso/coords"
	"github.com/rmera/gomeso/target"
	"github.com/rmera/gomeso/tok"
	"go.uber.org/zap"
)

//State is everything a restart file holds.
type State struct {
	Frame     *coords.Frame
	Types     *meso.TypeTable
	Bonds     []*meso.DynamicBond
	Targets   *target.Graph
	Inclusive bool //false if the State was recovered from a legacy file
}

//Options controls how a restart file is read.
type Options struct {
	//Types are the types the current setup defines. They are merged with
	//the ones in the file. Required.
	Types *meso.TypeTable
	//Registry creates the command-target nodes. DefaultRegistry if nil.
	Registry *target.Registry
	//Log receives the warnings. Nothing is logged if nil.
	Log *zap.SugaredLogger

	skew int64 //added to the offset reported by the coordinates reader
}

func (O Options) withDefaults() Options {
	if O.Registry == nil {
		O.Registry = target.DefaultRegistry()
	}
	if O.Log == nil {
		O.Log = zap.NewNop().Sugar()
	}
	return O
}

//WriteFile writes S to a new file at path.
func WriteFile(path string, S *State) error {
	f, err := os.Create(path)
	if err != nil {
		return meso.NewError(meso.IOError, path, "%s", err.Error())
	}
	if err := Encode(f, S); err != nil {
		f.Close()
		if e, ok := err.(*meso.Error); ok {
			e.SetFileName(path)
		}
		return meso.Decorate(err, "WriteFile")
	}
	if err := f.Close(); err != nil {
		return meso.NewError(meso.IOError, path, "%s", err.Error())
	}
	return nil
}

//Encode writes S to ws. The coordinates are written first, then ws is moved to its
//end before the sentinel is appended, so the inclusive data never overwrites anything.
//The coordinates are written with the number of bead types in S.Types, whatever
//S.Frame.BeadTypes says. S is not modified.
func Encode(ws io.WriteSeeker, S *State) error {
	if S == nil || S.Frame == nil || S.Types == nil {
		return meso.NewError(meso.FormatError, "", "the state needs at least a frame and a type table")
	}
	F := *S.Frame
	F.BeadTypes = len(S.Types.Beads)
	if err := coords.Write(ws, &F); err != nil {
		return meso.Decorate(err, "Encode")
	}
	if _, err := ws.Seek(0, io.SeekEnd); err != nil {
		return meso.NewError(meso.IOError, "", "can't seek to the end of the coordinates: %s", err.Error())
	}
	G := S.Targets
	if G == nil {
		G = target.NewGraph()
	}
	W := tok.NewWriter(ws)
	W.Token(Sentinel)
	W.Newline()
	writeTypes(W, S.Types)
	writeBonds(W, S.Types, S.Bonds)
	writeGraph(W, G)
	if err := W.Flush(); err != nil {
		return meso.Decorate(err, "Encode")
	}
	return nil
}

//ReadFile reads the restart file at path. Files compressed with zstd or gzip
//are recognized by their first bytes and decompressed in memory.
func ReadFile(path string, O Options) (*State, error) {
	rs, closer, err := open(path)
	if err != nil {
		return nil, meso.Decorate(err, "ReadFile")
	}
	defer closer()
	S, err := Decode(rs, path, O)
	if err != nil {
		return nil, meso.Decorate(err, "ReadFile")
	}
	return S, nil
}

//Decode reads a restart file from rs. name is only used in messages.
func Decode(rs io.ReadSeeker, name string, O Options) (*State, error) {
	if O.Types == nil {
		return nil, meso.NewError(meso.FormatError, name, "no type table given to merge the file with")
	}
	O = O.withDefaults()
	CR, err := tok.NewReaderAt(rs, name, 0)
	if err != nil {
		return nil, meso.Decorate(err, "Decode")
	}
	F, err := coords.Read(CR)
	if err != nil {
		return nil, meso.Decorate(err, "Decode")
	}
	R, found, err := findSentinel(rs, name, CR.Offset()+O.skew)
	if err != nil {
		return nil, meso.Decorate(err, "Decode")
	}
	if !found {
		return legacy(F, name, O)
	}
	S, err := inclusive(R, F, O)
	if err != nil {
		return nil, meso.Decorate(err, "Decode")
	}
	O.Log.Debugw("read restart file", "file", name, "step", F.Step, "beadtypes", len(S.Types.Beads),
		"dynamicbonds", len(S.Bonds), "targets", S.Targets.Len())
	return S, nil
}

//inclusive reads everything after the sentinel.
func inclusive(R *tok.Reader, F *coords.Frame, O Options) (*State, error) {
	T, err := readTypes(R, O.Types)
	if err != nil {
		return nil, err
	}
	if len(T.Beads) != F.BeadTypes {
		return nil, R.Failf(meso.FormatError, "the coordinates were written with %d bead types, but the file defines %d", F.BeadTypes, len(T.Beads))
	}
	bonds, err := readBonds(R, T, F.Pop)
	if err != nil {
		return nil, err
	}
	G, err := readGraph(R, O.Registry)
	if err != nil {
		return nil, err
	}
	if err := target.Resolve(G, F.Pop, len(T.Beads)); err != nil {
		return nil, R.Fail(err)
	}
	if s, err := R.Scan(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, R.Failf(meso.FormatError, "unexpected %q after the command targets", s)
	}
	return &State{Frame: F, Types: T, Bonds: bonds, Targets: G, Inclusive: true}, nil
}

//legacy builds a State from a file with only coordinates. That only works if the
//setup defines every bead type the file uses.
func legacy(F *coords.Frame, name string, O Options) (*State, error) {
	expected := len(O.Types.Beads)
	if F.BeadTypes > expected || F.Pop.MaxBeadType() >= expected {
		return nil, meso.NewError(meso.UnexpectedEntityType, name, "the file has %d bead types and no inclusive data, but only %d are defined", F.BeadTypes, expected)
	}
	O.Log.Warnw("restart file has no inclusive data, continuing from the coordinates only",
		"file", name, "step", F.Step, "beads", F.Pop.Len())
	return &State{Frame: F, Types: O.Types.Copy(), Targets: target.NewGraph()}, nil
}
