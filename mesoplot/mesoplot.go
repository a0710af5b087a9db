/*
 * mesoplot.go, part of goMeso.
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

//Package mesoplot draws the interaction matrix of a goMeso type table as
//a heat map, one cell per pair of bead types.
package mesoplot

import (
	"image/color"
	"math"

	meso "github.com/rmera/gomeso"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//PaletteSize is the number of colors in the heat map palette.
const PaletteSize = 24

//grid shows a symmetric matrix as a plotter.GridXYZ. Column c and row r are bead types.
type grid struct {
	m mat.Symmetric
}

func (g grid) Dims() (c, r int) {
	n := g.m.SymmetricDim()
	return n, n
}

func (g grid) Z(c, r int) float64 { return g.m.At(r, c) }

func (g grid) X(c int) float64 { return float64(c) }

func (g grid) Y(r int) float64 { return float64(r) }

//hue implements palette.Palette with n colors going from red to violet.
type hue []color.Color

func (h hue) Colors() []color.Color { return h }

func newHue(n int) hue {
	ret := make(hue, 0, n)
	for key := 0; key < n; key++ {
		r, g, b := colors(key, n)
		ret = append(ret, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return ret
}

//InteractionMap returns a heat map of the bead interaction coefficients in T.
//The axes are labelled with the bead type names.
func InteractionMap(T *meso.TypeTable, title string) (*plot.Plot, error) {
	n := len(T.Beads)
	if n == 0 {
		return nil, meso.NewError(meso.FormatError, "", "no bead types to plot")
	}
	var pal palette.Palette = newHue(PaletteSize)
	h := plotter.NewHeatMap(grid{T.Interactions()}, pal)
	if h.Min == h.Max {
		//A flat matrix still gets a color.
		h.Max = h.Min + 1
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Bead type"
	p.Y.Label.Text = "Bead type"
	ticks := make([]plot.Tick, n)
	for i, b := range T.Beads {
		ticks[i] = plot.Tick{Value: float64(i), Label: b.Name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.Add(h)
	p.X.Min, p.X.Max = -0.5, float64(n)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(n)-0.5
	return p, nil
}

//SaveInteractionMap saves the heat map of T's interactions to filename. The format
//is taken from the extension (png, svg, pdf...). size is the side of the plot in cm.
func SaveInteractionMap(T *meso.TypeTable, title, filename string, size float64) error {
	p, err := InteractionMap(T, title)
	if err != nil {
		return err
	}
	if size <= 0 || math.IsNaN(size) {
		return meso.NewError(meso.FormatError, filename, "invalid plot size %g", size)
	}
	side := vg.Length(size) * vg.Centimeter
	//here I  intentionally shadow err.
	if err := p.Save(side, side, filename); err != nil {
		return err
	}
	return nil
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

//colors returns the key-th of steps colors, spread over the hue circle,
//skipping the yellows, which are hard to see.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 1.0, 1.0)
}
