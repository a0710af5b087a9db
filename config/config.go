/*
 * config.go, part of goMeso.
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

//Package config reads the YAML file that describes the types a goMeso setup
//defines before any run, and when and where restart files are written.
//
//An example:
//
//	beadtypes:
//	  - name: wat
//	    mass: 1
//	    radius: 0.5
//	    interactions: [25]          # with types 0..i, the last one is the self term
//	  - name: oil
//	    mass: 1
//	    radius: 0.5
//	    interactions: [75, 10]
//	bondtypes:
//	  - {name: harm, k: 128, l0: 0.5}
//	bondpairtypes:
//	  - {name: bend, k: 20, angle: 3.14159}
//	restart:
//	  period: 1000
//	  dir: out
//	  prefix: run
//	  compress: zst
//
//A missing run id is replaced by a random UUID.
package config

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	meso "github.com/rmera/gomeso"
	"github.com/rmera/gomeso/restart"
	"gopkg.in/yaml.v3"
)

type BeadType struct {
	Name         string    `yaml:"name"`
	Mass         float64   `yaml:"mass"`
	Radius       float64   `yaml:"radius"`
	Interactions []float64 `yaml:"interactions"`
}

type BondType struct {
	Name       string  `yaml:"name"`
	K          float64 `yaml:"k"`
	RestLength float64 `yaml:"l0"`
}

type BondPairType struct {
	Name  string  `yaml:"name"`
	K     float64 `yaml:"k"`
	Angle float64 `yaml:"angle"`
}

type Restart struct {
	Period   int    `yaml:"period"`
	Dir      string `yaml:"dir"`
	Prefix   string `yaml:"prefix"`
	RunID    string `yaml:"runid"`
	Compress string `yaml:"compress"`
}

//Config is the content of a configuration file.
type Config struct {
	BeadTypes     []BeadType     `yaml:"beadtypes"`
	BondTypes     []BondType     `yaml:"bondtypes"`
	BondPairTypes []BondPairType `yaml:"bondpairtypes"`
	Restart       Restart        `yaml:"restart"`
}

//Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening configuration")
	}
	defer f.Close()
	C, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return C, nil
}

//Parse reads a configuration from r, and fills in the defaults.
func Parse(r io.Reader) (*Config, error) {
	C := new(Config)
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(C); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding YAML")
	}
	if C.Restart.Prefix == "" {
		C.Restart.Prefix = "restart"
	}
	if C.Restart.RunID == "" {
		C.Restart.RunID = uuid.NewString()
	}
	switch C.Restart.Compress {
	case "", "zst", "gz":
	default:
		return nil, errors.Errorf("unknown restart compression %q, use zst or gz", C.Restart.Compress)
	}
	if C.Restart.Period < 0 {
		return nil, errors.Errorf("negative restart period %d", C.Restart.Period)
	}
	return C, nil
}

//TypeTable builds the type table the configuration describes.
func (C *Config) TypeTable() (*meso.TypeTable, error) {
	T := meso.NewTypeTable()
	for _, b := range C.BeadTypes {
		if _, err := T.AddBeadType(b.Name, b.Mass, b.Radius, b.Interactions); err != nil {
			return nil, errors.Wrapf(err, "bead type %q", b.Name)
		}
	}
	for _, b := range C.BondTypes {
		if _, err := T.AddBondType(b.Name, b.K, b.RestLength); err != nil {
			return nil, errors.Wrapf(err, "bond type %q", b.Name)
		}
	}
	for _, b := range C.BondPairTypes {
		if _, err := T.AddBondPairType(b.Name, b.K, b.Angle); err != nil {
			return nil, errors.Wrapf(err, "bond-pair type %q", b.Name)
		}
	}
	return T, nil
}

func (C *Config) Schedule() restart.Schedule {
	R := C.Restart
	return restart.Schedule{Period: R.Period, Dir: R.Dir, Prefix: R.Prefix, RunID: R.RunID, Compress: R.Compress}
}
