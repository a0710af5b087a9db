/*
 * histo.go, part of goMeso.
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

//Package histo builds histograms over fixed bins, such as the distribution
//of dynamic bond lengths in a restart file.
package histo

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Data is a histogram. Bin i counts the values v with dividers[i] <= v < dividers[i+1].
//Values outside the dividers are counted in Outside, not in any bin.
type Data struct {
	normalized bool
	total      int
	outside    int
	dividers   []float64
	histo      []float64
}

//NewData returns a new histogram from the dividers and rawdata given. rawdata can
//be nil, in that case an empty histogram is created. There must be at least 2
//dividers, in increasing order.
func NewData(dividers []float64, rawdata []float64) (*Data, error) {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		return nil, fmt.Errorf("histo: need at least 2 increasing dividers, got %v", dividers)
	}
	d := new(Data)
	//the slice is copied so nobody can change it from outside
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(rawdata)
	}
	return d, nil
}

//Even returns n+1 dividers spanning [min, max] evenly.
func Even(min, max float64, n int) []float64 {
	return floats.Span(make([]float64, n+1), min, max)
}

//ReHisto replaces the content of the histogram with the rawdata given. rawdata is sorted in place.
func (D *Data) ReHisto(rawdata []float64) {
	sort.Float64s(rawdata)
	//stat.Histogram panics on values off limits, so those are removed before the call.
	maxi := sort.SearchFloat64s(rawdata, D.dividers[len(D.dividers)-1])
	mini := sort.SearchFloat64s(rawdata, D.dividers[0])
	D.outside = mini + len(rawdata) - maxi
	rawdata = rawdata[mini:maxi]
	D.total = len(rawdata)
	D.normalized = false
	D.histo = stat.Histogram(nil, D.dividers, rawdata, nil)
}

//AddData adds the given data point(s) to the histogram.
func (D *Data) AddData(point ...float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	last := D.dividers[len(D.dividers)-1]
	for _, v := range point {
		if !(v >= D.dividers[0] && v < last) {
			D.outside++
			continue
		}
		//first divider not below v
		j := sort.SearchFloat64s(D.dividers, v)
		if D.dividers[j] == v {
			D.histo[j]++
		} else {
			D.histo[j-1]++
		}
		D.total++
	}
	//if it was normalized, it goes back to that state
	if norma {
		D.Normalize()
	}
}

//Normalized returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize divides every bin by the number of values in the histogram.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	if normalize {
		n = 1 / n
	}
	D.normalized = normalize
	floats.Scale(n, D.histo)
}

//View returns the bins. They are not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

//Total returns the number of values in the bins.
func (D *Data) Total() int { return D.total }

//Outside returns the number of values that fell outside every bin.
func (D *Data) Outside() int { return D.outside }

//Sum returns the sum of the bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//String prints a -hopefully- pretty representation of the histogram,
//one bin per line.
func (D *Data) String() string {
	lines := make([]string, 0, len(D.histo)+1)
	for i, v := range D.histo {
		lines = append(lines, fmt.Sprintf("%8.3f-%-8.3f %9.3f", D.dividers[i], D.dividers[i+1], v))
	}
	if D.outside > 0 {
		lines = append(lines, fmt.Sprintf("%-17s %9d", "outside", D.outside))
	}
	return strings.Join(lines, "\n")
}
