/*
 * graph.go, part of goMeso.
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
	"github.com/rmera/gomeso/target"
	"github.com/rmera/gomeso/tok"
)

//writeGraph writes the nodes of G in creation order. Each record is
//<tag> <label> <id> <inner label> <outer label> followed by the node's own payload.
func writeGraph(W *tok.Writer, G *target.Graph) {
	W.Int(G.Len())
	W.Newline()
	for _, n := range G.Nodes() {
		b := n.Core()
		W.Token(b.Tag)
		W.Token(b.Label)
		W.Int(b.ID)
		W.Token(b.InnerLabel)
		W.Token(b.OuterLabel)
		if err := n.WritePayload(W); err != nil {
			W.Fail(meso.Decorate(err, b.Label))
			return
		}
		W.Newline()
	}
}

//readGraph creates each node through reg and lets it read its payload. Nodes are
//only inserted in the graph, linking and proxy resolution happen later, in
//target.Resolve.
func readGraph(R *tok.Reader, reg *target.Registry) (*target.Graph, error) {
	n := R.Records(6, "command target count")
	G := target.NewGraph()
	for i := 0; i < n && R.Err() == nil; i++ {
		tag := R.Label("type of command target %d", i)
		label := R.Label("label of command target %d", i)
		if R.Err() != nil {
			break
		}
		node, err := reg.Create(tag, label)
		if err != nil {
			R.Fail(err)
			break
		}
		b := node.Core()
		b.ID = R.Int("id of %s", label)
		b.InnerLabel = R.Label("inner label of %s", label)
		b.OuterLabel = R.Label("outer label of %s", label)
		if R.Err() != nil {
			break
		}
		if err := node.ReadPayload(R); err != nil {
			R.Fail(err)
			break
		}
		//A node that wraps itself is a target, anything else is a decorator.
		leaf := b.InnerLabel == b.Label
		if leaf != node.Leaf() {
			what := "a target"
			if !node.Leaf() {
				what = "a decorator"
			}
			R.Failf(meso.FormatError, "%s is %s, but its inner label is %s", label, what, b.InnerLabel)
			break
		}
		if _, err := G.Insert(node); err != nil {
			R.Fail(err)
		}
	}
	if err := R.Err(); err != nil {
		return nil, meso.Decorate(err, "readGraph")
	}
	return G, nil
}
