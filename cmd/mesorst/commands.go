/*
 * commands.go, part of goMeso.
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

package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	meso "github.com/rmera/gomeso"
	"github.com/rmera/gomeso/histo"
	"github.com/rmera/gomeso/mesoplot"
	"github.com/rmera/gomeso/restart"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

//digest returns the xxhash of the file at path, as 16 hex digits.
func digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "hashing file")
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

//stretches returns the histogram of length over rest length of the bonds,
//in bins of width 2/bins between 0 and 2.
func stretches(bonds []*meso.DynamicBond, bins int) (*histo.Data, error) {
	raw := make([]float64, 0, len(bonds))
	for _, b := range bonds {
		raw = append(raw, b.Stretch())
	}
	return histo.NewData(histo.Even(0, 2, bins), raw)
}

func infoCmd(A *app) *cobra.Command {
	var bins int
	cmd := &cobra.Command{
		Use:   "info <restart file>",
		Short: "Summarize the content of a restart file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			O, err := A.options()
			if err != nil {
				return err
			}
			S, err := restart.ReadFile(args[0], O)
			if err != nil {
				return err
			}
			sum, err := digest(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			kind := green("inclusive")
			if !S.Inclusive {
				kind = yellow("legacy")
			}
			pop := S.Frame.Pop
			fmt.Fprintf(out, "file:           %s (%s)\n", args[0], kind)
			fmt.Fprintf(out, "xxhash:         %s\n", sum)
			fmt.Fprintf(out, "step:           %d\n", S.Frame.Step)
			fmt.Fprintf(out, "beads:          %d in %d polymers\n", pop.Len(), pop.NPolymers())
			fmt.Fprintf(out, "bead types:     %d\n", len(S.Types.Beads))
			fmt.Fprintf(out, "bond types:     %d\n", len(S.Types.Bonds))
			fmt.Fprintf(out, "dynamic bonds:  %d\n", len(S.Bonds))
			fmt.Fprintf(out, "targets:        %d, with %d decorators\n", len(S.Targets.Targets()), len(S.Targets.Decorators()))
			for _, t := range S.Targets.Targets() {
				chain, err := S.Targets.Chain(t.Core().Label)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %s", t.Core().Label)
				for _, d := range chain[1:] {
					fmt.Fprintf(out, " <- %s(%s)", d.Core().Label, d.Core().Tag)
				}
				fmt.Fprintln(out)
			}
			if bins > 0 && len(S.Bonds) > 0 {
				H, err := stretches(S.Bonds, bins)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "dynamic bond stretch (length/rest length):\n%s\n", H)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&bins, "bins", 0, "print a histogram of dynamic bond stretches with this many bins")
	return cmd
}

func verifyCmd(A *app) *cobra.Command {
	var jobs int
	cmd := &cobra.Command{
		Use:   "verify <restart file>...",
		Short: "Check that restart files can be fully read",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			O, err := A.options()
			if err != nil {
				return err
			}
			if jobs < 1 {
				jobs = 1
			}
			results := make([]error, len(args))
			var eg errgroup.Group
			eg.SetLimit(jobs)
			for i, name := range args {
				i, name := i, name
				eg.Go(func() error {
					//each read gets its own copy of the types
					o := O
					o.Types = O.Types.Copy()
					_, results[i] = restart.ReadFile(name, o)
					return nil
				})
			}
			eg.Wait()
			var failed int
			out := cmd.OutOrStdout()
			for i, name := range args {
				if results[i] != nil {
					failed++
					fmt.Fprintf(out, "%s %s: %v\n", red("FAIL"), name, results[i])
					continue
				}
				fmt.Fprintf(out, "%s   %s\n", green("OK"), name)
			}
			if failed > 0 {
				return errors.Errorf("%d of %d restart files failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "files read at the same time")
	return cmd
}

func packCmd(A *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pack <restart file> <compressed file>",
		Short: "Compress a restart file (gzip for .gz names, zstd otherwise)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := restart.Pack(args[0], args[1]); err != nil {
				return err
			}
			A.log.Debugw("packed restart file", "from", args[0], "to", args[1])
			return nil
		},
	}
}

func plotCmd(A *app) *cobra.Command {
	var size float64
	cmd := &cobra.Command{
		Use:   "plot <restart file> <image file>",
		Short: "Draw the bead interaction matrix of a restart file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			O, err := A.options()
			if err != nil {
				return err
			}
			S, err := restart.ReadFile(args[0], O)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Interactions at step %d", S.Frame.Step)
			return mesoplot.SaveInteractionMap(S.Types, title, args[1], size)
		},
	}
	cmd.Flags().Float64Var(&size, "size", 12, "side of the plot, in cm")
	return cmd
}
