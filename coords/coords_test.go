/*
 * coords_test.go, part of goMeso.
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

package coords

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	meso "github.com/rmera/gomeso"
	"github.com/rmera/gomeso/tok"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func testFrame(t *testing.T) *Frame {
	beads := []*meso.Bead{
		{ID: 1, Type: 0, PolymerID: 1, Pos: r3.Vec{X: 0.5, Y: 1.25, Z: 3}, Vel: r3.Vec{X: -0.1}},
		{ID: 2, Type: 1, PolymerID: 1, Pos: r3.Vec{X: 0.75, Y: 1.5, Z: 3}},
		{ID: 3, Type: 2, PolymerID: 2, Pos: r3.Vec{X: 5, Y: 5, Z: 5}},
		{ID: 4, Type: 2, Pos: r3.Vec{X: 9.999999, Y: 0.1, Z: 0.2}, Vel: r3.Vec{Z: 1e-7}},
	}
	polymers := []*meso.Polymer{{ID: 1, Type: 0}, {ID: 2, Type: 1}}
	P, err := meso.NewPopulation(beads, polymers, 2, 1)
	require.NoError(t, err)
	return &Frame{Step: 2000, Box: r3.Vec{X: 10, Y: 10, Z: 10}, BeadTypes: 3, PolymerTypes: 2, Pop: P}
}

func TestRoundTrip(Te *testing.T) {
	F := testFrame(Te)
	var buf bytes.Buffer
	require.NoError(Te, Write(&buf, F))
	size := int64(buf.Len())
	R := tok.NewReader(&buf, "frame", 0)
	G, err := Read(R)
	require.NoError(Te, err)
	require.Equal(Te, size, R.Offset())
	if diff := cmp.Diff(F.Pop.Beads, G.Pop.Beads); diff != "" {
		Te.Errorf("beads differ (-want +got):\n%s", diff)
	}
	require.Equal(Te, F.Step, G.Step)
	require.Equal(Te, F.Box, G.Box)
	require.Equal(Te, 3, G.BeadTypes)
	require.Equal(Te, 2, G.Pop.NPolymers())
	require.Equal(Te, 1, G.Pop.BondTotal())
	p, _ := G.Pop.Polymer(1)
	require.Len(Te, p.Beads, 2)
}

func TestMalformed(Te *testing.T) {
	cases := map[string]string{
		"no header":     "* 1 2 3",
		"short":         "** 0 1 0 2 0 0\n1 1 1\n1 0 0 0 0 0 0 0 0\n",
		"bad type":      "** 0 1 0 1 0 0\n1 1 1\n1 5 0 0 0 0 0 0 0\n*\n",
		"no terminator": "** 0 1 0 1 0 0\n1 1 1\n1 0 0 0 0 0 0 0 0\nfoo\n",
		"lost polymer":  "** 0 1 0 1 0 0\n1 1 1\n1 0 3 0 0 0 0 0 0\n*\n",
	}
	for name, src := range cases {
		_, err := Read(tok.NewReader(strings.NewReader(src), name, 0))
		require.Error(Te, err, name)
		var e *meso.Error
		require.ErrorAs(Te, err, &e, name)
		require.Equal(Te, name, e.FileName())
	}
}

func TestHugeCounts(Te *testing.T) {
	var buf bytes.Buffer
	require.NoError(Te, Write(&buf, testFrame(Te)))
	src := buf.String()
	for _, c := range [][2]string{
		{"** 2000 3 2 4 2 1", "** 2000 3 2 4611686018427387904 2 1"},
		{"** 2000 3 2 4 2 1", "** 2000 3 2 4 1000000000 1"},
	} {
		bad := strings.Replace(src, c[0], c[1], 1)
		require.NotEqual(Te, src, bad)
		R, err := tok.NewReaderAt(strings.NewReader(bad), "huge", 0)
		require.NoError(Te, err)
		_, err = Read(R)
		require.True(Te, meso.IsKind(err, meso.FormatError), "%v", err)
	}
}
