/*
 * main.go, part of goMeso.
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

//mesorst inspects, verifies, compresses and plots goMeso restart files.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	meso "github.com/rmera/gomeso"
	"github.com/rmera/gomeso/config"
	"github.com/rmera/gomeso/restart"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

//app holds what the commands share.
type app struct {
	configPath string
	verbose    bool
	log        *zap.SugaredLogger
}

func newLogger(verbose bool) *zap.SugaredLogger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

//options returns the read options: the types come from the configuration file,
//if one was given. Otherwise every type is taken from the restart file.
func (A *app) options() (restart.Options, error) {
	O := restart.Options{Types: meso.NewTypeTable(), Log: A.log}
	if A.configPath == "" {
		return O, nil
	}
	C, err := config.Load(A.configPath)
	if err != nil {
		return O, err
	}
	O.Types, err = C.TypeTable()
	if err != nil {
		return O, errors.Wrap(err, "building types from configuration")
	}
	return O, nil
}

func newRootCmd() *cobra.Command {
	A := new(app)
	root := &cobra.Command{
		Use:   "mesorst [subcommand]",
		Short: "Inspect and maintain goMeso restart files",
		// Errors are printed by main.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if A.log == nil {
				A.log = newLogger(A.verbose)
			}
		},
	}
	root.PersistentFlags().StringVarP(&A.configPath, "config", "c", "", "YAML file with the types the setup defines")
	root.PersistentFlags().BoolVarP(&A.verbose, "verbose", "v", false, "log debug messages")
	root.AddCommand(infoCmd(A), verifyCmd(A), packCmd(A), plotCmd(A))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
