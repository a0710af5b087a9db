/*
 * restart_test.go, part of goMeso.
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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	meso "github.com/rmera/gomeso"
	"github.com/rmera/gomeso/coords"
	"github.com/rmera/gomeso/target"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//baseTypes returns the types a setup defines before any run.
func baseTypes(t *testing.T) *meso.TypeTable {
	T := meso.NewTypeTable()
	for i, row := range [][]float64{{25}, {35, 30}, {75, 35, 10}} {
		_, err := T.AddBeadType([]string{"wat", "amph", "oil"}[i], 1, 0.5, row)
		require.NoError(t, err)
	}
	_, err := T.AddBondType("harm", 128, 0.5)
	require.NoError(t, err)
	_, err = T.AddBondPairType("bend", 20, 3.14159)
	require.NoError(t, err)
	return T
}

//testState returns a state with 6 beads, two polymers, a graph with two
//decorated targets and a composite, and one dynamic bond.
func testState(t *testing.T, T *meso.TypeTable) *State {
	types := []int{0, 1, 1, 0, 2, 2}
	polys := []int{1, 1, 1, 2, 2, 0}
	var beads []*meso.Bead
	for i := range types {
		beads = append(beads, &meso.Bead{ID: i + 1, Type: types[i], PolymerID: polys[i],
			Pos: r3.Vec{X: float64(i) * 0.75, Y: 1.5, Z: 2.25}, Vel: r3.Vec{X: 0.01 * float64(i)}})
	}
	pop, err := meso.NewPopulation(beads, []*meso.Polymer{{ID: 1, Type: 0}, {ID: 2, Type: 1}}, 2, 3)
	require.NoError(t, err)
	b1, _ := pop.Bead(1)
	b6, _ := pop.Bead(6)
	p1, _ := pop.Polymer(1)

	G := target.NewGraph()
	require.NoError(t, G.AddTarget(target.NewBeadTarget("tip", 2, []*meso.Bead{b6})))
	require.NoError(t, G.AddTarget(target.NewPolymerTarget("chains", 0, []*meso.Polymer{p1})))
	require.NoError(t, G.AddTarget(target.NewCompositeTarget("both", "tip", "chains")))
	require.NoError(t, G.Wrap("tip", target.NewConstantForce("pull", 1.5, r3.Vec{Z: 1})))
	require.NoError(t, G.Wrap("tip", target.NewSpringForce("hold", 2, r3.Vec{X: 1, Y: 2, Z: 3})))
	require.NoError(t, G.Wrap("chains", target.NewLinearForce("ramp", 0.25, r3.Vec{X: 1}, 50)))

	bond, err := meso.NewDynamicBond(pop.BondTotal()+1, T.Bonds[0], b1, b6)
	require.NoError(t, err)
	bond.RestLength = 0.7
	return &State{
		Frame:   &coords.Frame{Step: 1000, Box: r3.Vec{X: 10, Y: 10, Z: 10}, PolymerTypes: 2, Pop: pop},
		Types:   T,
		Bonds:   []*meso.DynamicBond{bond},
		Targets: G,
	}
}

func write(t *testing.T, S *State) string {
	path := filepath.Join(t.TempDir(), "test.res")
	require.NoError(t, WriteFile(path, S))
	return path
}

func labels(G *target.Graph) []string {
	var ret []string
	for _, n := range G.Nodes() {
		ret = append(ret, n.Core().Label)
	}
	return ret
}

//requireSameTypes compares two type tables, including their interaction matrices.
func requireSameTypes(t *testing.T, want, got *meso.TypeTable) {
	if diff := cmp.Diff(want.Beads, got.Beads); diff != "" {
		t.Fatalf("bead types differ (-want +got):\n%s", diff)
	}
	require.Equal(t, want.Bonds, got.Bonds)
	require.Equal(t, want.BondPairs, got.BondPairs)
	require.True(t, mat.Equal(want.Interactions(), got.Interactions()))
}

func TestRoundTrip(Te *testing.T) {
	S := testState(Te, baseTypes(Te))
	path := write(Te, S)
	L, err := ReadFile(path, Options{Types: baseTypes(Te)})
	require.NoError(Te, err)
	require.True(Te, L.Inclusive)
	//the frame is written with the table's bead type count, the one given is left alone
	require.Equal(Te, 0, S.Frame.BeadTypes)
	require.Equal(Te, 3, L.Frame.BeadTypes)
	requireSameTypes(Te, S.Types, L.Types)
	require.Equal(Te, labels(S.Targets), labels(L.Targets))
	if diff := cmp.Diff(S.Frame.Pop.Beads, L.Frame.Pop.Beads); diff != "" {
		Te.Errorf("beads differ (-want +got):\n%s", diff)
	}

	require.Len(Te, L.Bonds, 1)
	b := L.Bonds[0]
	require.Equal(Te, 4, b.ID)
	require.Equal(Te, 0.7, b.RestLength)
	//the endpoints are the loaded beads, not copies
	h, _ := L.Frame.Pop.Bead(1)
	require.Same(Te, h, b.Head)
	require.Equal(Te, 6, b.Tail.ID)

	chain, err := L.Targets.Chain("tip")
	require.NoError(Te, err)
	var got []string
	for _, n := range chain {
		got = append(got, n.Core().Label)
	}
	require.Equal(Te, []string{"tip", "pull", "hold"}, got)
	beads, err := L.Targets.Beads("hold")
	require.NoError(Te, err)
	require.Len(Te, beads, 1)
	require.Same(Te, b.Tail, beads[0])
	both, _ := L.Targets.Lookup("both")
	require.Len(Te, both.(target.BeadSource).Beads(), 4)
	f, err := L.Targets.Force("chains", h, 60)
	require.NoError(Te, err)
	require.Equal(Te, r3.Vec{X: 2.5}, f)

	//write(read(write(S))) is byte for byte write(S)
	first, err := os.ReadFile(path)
	require.NoError(Te, err)
	second, err := os.ReadFile(write(Te, L))
	require.NoError(Te, err)
	require.Equal(Te, string(first), string(second))
}

func TestTypeGrowth(Te *testing.T) {
	grown := baseTypes(Te)
	grown.SetInteraction(0, 0, 27)
	_, err := grown.AddBeadType("salt", 2, 0.25, []float64{10, 20, 30, 40})
	require.NoError(Te, err)
	_, err = grown.AddBondType("stiff", 500, 0.3)
	require.NoError(Te, err)
	S := testState(Te, grown)
	S.Frame.Pop.Beads[4].Type = 3
	path := write(Te, S)

	compiled := baseTypes(Te)
	L, err := ReadFile(path, Options{Types: compiled})
	require.NoError(Te, err)
	requireSameTypes(Te, grown, L.Types)
	require.Len(Te, L.Types.Beads, 4)
	for i := range L.Types.Beads {
		require.Len(Te, L.Types.InteractionRow(i), 4)
	}
	require.Equal(Te, 27.0, L.Types.Interaction(0, 0))
	require.Equal(Te, 30.0, L.Types.Interaction(3, 2))
	//the setup's own table is not touched
	requireSameTypes(Te, baseTypes(Te), compiled)

	//a second cycle doesn't grow the tables any further, and keeps the bond ids
	path2 := write(Te, L)
	L2, err := ReadFile(path2, Options{Types: baseTypes(Te)})
	require.NoError(Te, err)
	requireSameTypes(Te, grown, L2.Types)
	require.Equal(Te, L.Bonds[0].ID, L2.Bonds[0].ID)
}

func TestTypeCountRegression(Te *testing.T) {
	path := write(Te, testState(Te, baseTypes(Te)))
	more := baseTypes(Te)
	_, err := more.AddBeadType("salt", 2, 0.25, []float64{10, 20, 30, 40})
	require.NoError(Te, err)
	_, err = ReadFile(path, Options{Types: more})
	require.True(Te, meso.IsKind(err, meso.TypeCountRegression), "got %v", err)
	require.Len(Te, more.Beads, 4)
}

func TestDanglingBead(Te *testing.T) {
	S := testState(Te, baseTypes(Te))
	//one past the last bead
	S.Bonds[0].Tail = &meso.Bead{ID: 7}
	path := write(Te, S)
	_, err := ReadFile(path, Options{Types: baseTypes(Te)})
	require.True(Te, meso.IsKind(err, meso.DanglingReference), "got %v", err)
	var e *meso.Error
	require.ErrorAs(Te, err, &e)
	require.Equal(Te, path, e.FileName())
}

//swap replaces the first occurrence of old after the sentinel.
func swap(data []byte, old, new string) []byte {
	s := string(data)
	i := strings.Index(s, Sentinel)
	return []byte(s[:i] + strings.Replace(s[i:], old, new, 1))
}

func TestMalformed(Te *testing.T) {
	first, err := os.ReadFile(write(Te, testState(Te, baseTypes(Te))))
	require.NoError(Te, err)
	cases := []struct {
		name string
		old  string
		new  string
		kind meso.Kind
	}{
		{"duplicate label", "linearforce ramp 6", "linearforce pull 6", meso.DuplicateLabel},
		{"unknown node type", "springforce", "magicforce", meso.UnknownNodeType},
		{"dangling decorator", "chains 2 chains ramp", "chains 2 chains rump", meso.DanglingReference},
		{"cycle", "springforce hold 5 pull hold", "springforce hold 5 pull pull", meso.CycleDetected},
		{"target posing as decorator", "beadtarget tip 1 tip", "beadtarget tip 1 pull", meso.FormatError},
		{"missing composite member", "2 tip chains", "2 tip chainz", meso.DanglingReference},
		{"missing target bead", "2 2 1 6", "2 2 1 9", meso.DanglingReference},
		{"bond type name", "0 harm 128 0.7", "0 stiff 128 0.7", meso.FormatError},
		{"bond type out of range", "0 harm 128 0.7", "1 harm 128 0.7", meso.DanglingReference},
		{"bead type name", "1 amph", "1 lipid", meso.FormatError},
		{"bead type id", "1 amph", "2 amph", meso.FormatError},
		{"asymmetric interactions", "1 amph 1 0.5 35", "1 amph 1 0.5 36", meso.FormatError},
		{"target bead type out of range", "tip pull 2 2 1 6", "tip pull 2 999 1 6", meso.DanglingReference},
		{"infinite mass", "1 amph 1 0.5", "1 amph Inf 0.5", meso.FormatError},
		{"NaN spring constant", "0 harm 128 0.7", "0 harm NaN 0.7", meso.FormatError},
		//counts far larger than the file
		{"huge bead type count", Sentinel + "\n3\n", Sentinel + "\n4611686018427387904\n", meso.FormatError},
		{"huge dynamic bond count", "\n1\n0 harm 128 0.7", "\n4611686018427387904\n0 harm 128 0.7", meso.FormatError},
		{"huge target count", "\n6\nbeadtarget", "\n4611686018427387904\nbeadtarget", meso.FormatError},
		{"huge bead id count", "tip pull 2 2 1 6", "tip pull 2 2 4611686018427387904 6", meso.FormatError},
		{"huge member count", "both 2 tip", "both 4611686018427387904 tip", meso.FormatError},
		{"large member count", "both 2 tip", "both 1000000000 tip", meso.FormatError},
	}
	for _, c := range cases {
		Te.Run(c.name, func(t *testing.T) {
			data := swap(first, c.old, c.new)
			require.NotEqual(t, string(first), string(data))
			compiled := baseTypes(t)
			_, err := Decode(bytes.NewReader(data), c.name, Options{Types: compiled})
			require.True(t, meso.IsKind(err, c.kind), "got %v", err)
			requireSameTypes(t, baseTypes(t), compiled)
		})
	}

	//truncated inclusive data
	_, err = Decode(bytes.NewReader(first[:len(first)-10]), "short", Options{Types: baseTypes(Te)})
	require.True(Te, meso.IsKind(err, meso.FormatError), "got %v", err)

	_, err = Decode(bytes.NewReader(append(first, []byte("extra\n")...)), "long", Options{Types: baseTypes(Te)})
	require.True(Te, meso.IsKind(err, meso.FormatError), "got %v", err)

	_, err = Decode(bytes.NewReader(first), "notypes", Options{})
	require.Error(Te, err)
}

func TestSentinelRecovery(Te *testing.T) {
	S := testState(Te, baseTypes(Te))
	data, err := os.ReadFile(write(Te, S))
	require.NoError(Te, err)
	want, err := Decode(bytes.NewReader(data), "exact", Options{Types: baseTypes(Te)})
	require.NoError(Te, err)
	//the offset reported after the coordinates may be wrong, the sentinel
	//must be found anyway
	for _, skew := range []int64{-1, 3, 17, -1 << 20, 1 << 20} {
		L, err := Decode(bytes.NewReader(data), "skewed", Options{Types: baseTypes(Te), skew: skew})
		require.NoError(Te, err, "skew %d", skew)
		require.True(Te, L.Inclusive)
		require.Equal(Te, labels(want.Targets), labels(L.Targets))
		require.Equal(Te, want.Bonds[0].ID, L.Bonds[0].ID)
	}
}

func TestLegacy(Te *testing.T) {
	S := testState(Te, baseTypes(Te))
	S.Frame.BeadTypes = 3
	var buf bytes.Buffer
	require.NoError(Te, coords.Write(&buf, S.Frame))

	core, logs := observer.New(zapcore.WarnLevel)
	L, err := Decode(bytes.NewReader(buf.Bytes()), "old", Options{Types: baseTypes(Te), Log: zap.New(core).Sugar()})
	require.NoError(Te, err)
	require.False(Te, L.Inclusive)
	require.Equal(Te, 0, L.Targets.Len())
	require.Empty(Te, L.Bonds)
	require.Equal(Te, 6, L.Frame.Pop.Len())
	requireSameTypes(Te, baseTypes(Te), L.Types)
	require.Equal(Te, 1, logs.Len())
	require.Equal(Te, "old", logs.All()[0].ContextMap()["file"])

	//a legacy file using a type the setup doesn't know can't be recovered
	S.Frame.BeadTypes = 4
	S.Frame.Pop.Beads[5].Type = 3
	buf.Reset()
	require.NoError(Te, coords.Write(&buf, S.Frame))
	_, err = Decode(bytes.NewReader(buf.Bytes()), "old", Options{Types: baseTypes(Te)})
	require.True(Te, meso.IsKind(err, meso.UnexpectedEntityType), "got %v", err)
}

func TestCompressed(Te *testing.T) {
	path := write(Te, testState(Te, baseTypes(Te)))
	want, err := ReadFile(path, Options{Types: baseTypes(Te)})
	require.NoError(Te, err)
	for _, suffix := range []string{".zst", ".gz"} {
		packed := path + suffix
		require.NoError(Te, Pack(path, packed))
		raw, err := os.ReadFile(packed)
		require.NoError(Te, err)
		plain, err := os.ReadFile(path)
		require.NoError(Te, err)
		require.NotEqual(Te, plain, raw)
		L, err := ReadFile(packed, Options{Types: baseTypes(Te)})
		require.NoError(Te, err, suffix)
		require.Equal(Te, labels(want.Targets), labels(L.Targets))
		requireSameTypes(Te, want.Types, L.Types)
	}
	_, err = ReadFile(filepath.Join(Te.TempDir(), "nothere.res"), Options{Types: baseTypes(Te)})
	require.True(Te, meso.IsKind(err, meso.IOError))
}

func TestSchedule(Te *testing.T) {
	dir := Te.TempDir()
	S := Schedule{Period: 500, Dir: dir, Prefix: "run", RunID: "abc"}
	require.False(Te, S.Due(0))
	require.False(Te, S.Due(250))
	require.True(Te, S.Due(1000))
	require.False(Te, Schedule{}.Due(1000))
	require.Equal(Te, filepath.Join(dir, "run.abc.1000.res"), S.Path(1000))

	St := testState(Te, baseTypes(Te))
	for _, c := range []string{"", "zst", "gz"} {
		S.Compress = c
		name, err := S.Write(St)
		require.NoError(Te, err)
		require.Equal(Te, S.Path(1000), name)
		L, err := ReadFile(name, Options{Types: baseTypes(Te)})
		require.NoError(Te, err)
		require.Equal(Te, 1000, L.Frame.Step)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(Te, err)
	//the uncompressed intermediate files are removed
	require.Len(Te, entries, 3)
}
