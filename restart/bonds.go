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

package restart

import (
	meso "github.com/rmera/gomeso"
	"github.com/rmera/gomeso/tok"
)

func writeBonds(W *tok.Writer, T *meso.TypeTable, bonds []*meso.DynamicBond) {
	W.Int(len(bonds))
	W.Newline()
	for _, b := range bonds {
		if b.Type < 0 || b.Type >= len(T.Bonds) {
			W.Fail(meso.NewError(meso.DanglingReference, "", "dynamic bond %d has type %d, but there are %d bond types", b.ID, b.Type, len(T.Bonds)))
			return
		}
		if b.Head == nil || b.Tail == nil {
			W.Fail(meso.NewError(meso.DanglingReference, "", "dynamic bond %d has a nil endpoint", b.ID))
			return
		}
		W.Int(b.Type)
		W.Token(T.Bonds[b.Type].Name)
		W.Float(b.SpringConst)
		W.Float(b.RestLength)
		W.Int(b.Head.ID)
		W.Int(b.Tail.ID)
		W.Newline()
	}
}

//endpoint returns the bead with the given id, checking that the bead
//in that slot really has that id.
func endpoint(R *tok.Reader, pop meso.Beader, bond, id int, end string) *meso.Bead {
	b, ok := pop.Bead(id)
	if !ok {
		R.Failf(meso.DanglingReference, "%s of dynamic bond %d is bead %d, but there are %d beads", end, bond, id, pop.Len())
		return nil
	}
	if b.ID != id {
		R.Failf(meso.DanglingReference, "%s of dynamic bond %d is bead %d, but the bead in that slot has id %d", end, bond, id, b.ID)
		return nil
	}
	return b
}

//readBonds reads the dynamic bonds and resolves their endpoints against pop.
//T must be the already merged type table. The k-th bond read (from 0) gets the
//id pop.BondTotal()+k+1.
func readBonds(R *tok.Reader, T *meso.TypeTable, pop meso.Populator) ([]*meso.DynamicBond, error) {
	n := R.Records(6, "dynamic bond count")
	if err := R.Err(); err != nil {
		return nil, meso.Decorate(err, "readBonds")
	}
	base := pop.BondTotal()
	var bonds []*meso.DynamicBond
	for k := 0; k < n; k++ {
		id := base + k + 1
		typ := R.Int("type of dynamic bond %d", id)
		name := R.Label("name of dynamic bond %d", id)
		spring := R.Float("spring constant of dynamic bond %d", id)
		length := R.Float("rest length of dynamic bond %d", id)
		hid := R.Int("head of dynamic bond %d", id)
		tid := R.Int("tail of dynamic bond %d", id)
		if R.Err() != nil {
			break
		}
		if typ < 0 || typ >= len(T.Bonds) {
			R.Failf(meso.DanglingReference, "dynamic bond %d has type %d, but there are %d bond types", id, typ, len(T.Bonds))
			break
		}
		if T.Bonds[typ].Name != name {
			R.Failf(meso.FormatError, "dynamic bond %d has type %d named %s, but that type is %s", id, typ, name, T.Bonds[typ].Name)
			break
		}
		head := endpoint(R, pop, id, hid, "head")
		tail := endpoint(R, pop, id, tid, "tail")
		if R.Err() != nil {
			break
		}
		b, err := meso.NewDynamicBond(id, T.Bonds[typ], head, tail)
		if err != nil {
			R.Fail(err)
			break
		}
		b.SpringConst = spring
		b.RestLength = length
		bonds = append(bonds, b)
	}
	if err := R.Err(); err != nil {
		return nil, meso.Decorate(err, "readBonds")
	}
	return bonds, nil
}
