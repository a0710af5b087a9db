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

package restart

import (
	meso "github.com/rmera/gomeso"
	"github.com/rmera/gomeso/tok"
)

//writeTypes writes the bead types, with a row of interaction coefficients each,
//then the bond types and the bond-pair types.
func writeTypes(W *tok.Writer, T *meso.TypeTable) {
	W.Int(len(T.Beads))
	W.Newline()
	for i, b := range T.Beads {
		W.Int(b.ID)
		W.Token(b.Name)
		W.Float(b.Mass)
		W.Float(b.Radius)
		for _, v := range T.InteractionRow(i) {
			W.Float(v)
		}
		W.Newline()
	}
	W.Int(len(T.Bonds))
	W.Newline()
	for _, b := range T.Bonds {
		W.Int(b.ID)
		W.Token(b.Name)
		W.Float(b.SpringConst)
		W.Float(b.RestLength)
		W.Newline()
	}
	W.Int(len(T.BondPairs))
	W.Newline()
	for _, b := range T.BondPairs {
		W.Int(b.ID)
		W.Token(b.Name)
		W.Float(b.BendConst)
		W.Float(b.PreferredAngle)
		W.Newline()
	}
}

//readTypes reads the type tables and merges them onto a copy of known, which is
//not modified. The first len(known) records of each table refresh the known types,
//which must match in id and name; the rest are appended as new types.
func readTypes(R *tok.Reader, known *meso.TypeTable) (*meso.TypeTable, error) {
	T := known.Copy()
	readBeadTypes(R, T)
	readBondTypes(R, T)
	readBondPairTypes(R, T)
	if err := R.Err(); err != nil {
		return nil, meso.Decorate(err, "readTypes")
	}
	return T, nil
}

//checkCount poisons R if a table shrank.
func checkCount(R *tok.Reader, what string, n, known int) {
	if R.Err() == nil && n < known {
		R.Failf(meso.TypeCountRegression, "the file declares %d %s types, but %d are already defined (types can't be removed)", n, what, known)
	}
}

//checkRecord poisons R if the i-th record of a table has the wrong id,
//or if it refreshes a known type but its name changed.
func checkRecord(R *tok.Reader, what string, i, id int, known []string, name string) {
	if R.Err() != nil {
		return
	}
	if id != i {
		R.Failf(meso.FormatError, "%s type record %d has id %d, ids must be consecutive from 0", what, i, id)
		return
	}
	if i < len(known) && known[i] != name {
		R.Failf(meso.FormatError, "%s type %d is %s in the file, but %s in the current setup", what, i, name, known[i])
	}
}

type newBead struct {
	name   string
	mass   float64
	radius float64
}

func readBeadTypes(R *tok.Reader, T *meso.TypeTable) {
	known := len(T.Beads)
	names := make([]string, known)
	for i, b := range T.Beads {
		names[i] = b.Name
	}
	n := R.Records(4, "bead type count")
	checkCount(R, "bead", n, known)
	if R.Err() != nil {
		return
	}
	var rows [][]float64
	var added []newBead
	for i := 0; i < n && R.Err() == nil; i++ {
		id := R.Int("id of bead type %d", i)
		name := R.Label("name of bead type %d", i)
		checkRecord(R, "bead", i, id, names, name)
		mass := R.Float("mass of bead type %s", name)
		radius := R.Float("radius of bead type %s", name)
		var row []float64
		for j := 0; j < n && R.Err() == nil; j++ {
			row = append(row, R.Float("interaction between bead types %d and %d", i, j))
		}
		if R.Err() != nil {
			return
		}
		rows = append(rows, row)
		if i < known {
			T.Beads[i].Mass = mass
			T.Beads[i].Radius = radius
		} else {
			added = append(added, newBead{name, mass, radius})
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rows[i][j] != rows[j][i] {
				R.Failf(meso.FormatError, "interaction between bead types %d and %d is %g, but between %d and %d it is %g", i, j, rows[i][j], j, i, rows[j][i])
				return
			}
		}
	}
	//Coefficients among the known types are overwritten, the ones involving
	//new types arrive with the rows of the new types.
	for i := 0; i < known; i++ {
		for j := i; j < known; j++ {
			T.SetInteraction(i, j, rows[i][j])
		}
	}
	for k, nb := range added {
		i := known + k
		if _, err := T.AddBeadType(nb.name, nb.mass, nb.radius, rows[i][:i+1]); err != nil {
			R.Fail(err)
			return
		}
	}
}

func readBondTypes(R *tok.Reader, T *meso.TypeTable) {
	known := len(T.Bonds)
	names := make([]string, known)
	for i, b := range T.Bonds {
		names[i] = b.Name
	}
	n := R.Records(4, "bond type count")
	checkCount(R, "bond", n, known)
	for i := 0; i < n && R.Err() == nil; i++ {
		id := R.Int("id of bond type %d", i)
		name := R.Label("name of bond type %d", i)
		checkRecord(R, "bond", i, id, names, name)
		k := R.Float("spring constant of bond type %s", name)
		l0 := R.Float("rest length of bond type %s", name)
		if R.Err() != nil {
			return
		}
		if i < known {
			T.Bonds[i].SpringConst = k
			T.Bonds[i].RestLength = l0
			continue
		}
		if _, err := T.AddBondType(name, k, l0); err != nil {
			R.Fail(err)
		}
	}
}

func readBondPairTypes(R *tok.Reader, T *meso.TypeTable) {
	known := len(T.BondPairs)
	names := make([]string, known)
	for i, b := range T.BondPairs {
		names[i] = b.Name
	}
	n := R.Records(4, "bond-pair type count")
	checkCount(R, "bond-pair", n, known)
	for i := 0; i < n && R.Err() == nil; i++ {
		id := R.Int("id of bond-pair type %d", i)
		name := R.Label("name of bond-pair type %d", i)
		checkRecord(R, "bond-pair", i, id, names, name)
		bend := R.Float("bending constant of bond-pair type %s", name)
		angle := R.Float("preferred angle of bond-pair type %s", name)
		if R.Err() != nil {
			return
		}
		if i < known {
			T.BondPairs[i].BendConst = bend
			T.BondPairs[i].PreferredAngle = angle
			continue
		}
		if _, err := T.AddBondPairType(name, bend, angle); err != nil {
			R.Fail(err)
		}
	}
}
