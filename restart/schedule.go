/*
 * schedule.go, part of goMeso.
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
	"fmt"
	"os"
	"path/filepath"

	meso "github.com/rmera/gomeso"
)

//Schedule decides when restart files are written during a run, and how they are named.
type Schedule struct {
	Period   int    //steps between restart files, 0 disables them
	Dir      string //directory for the files
	Prefix   string
	RunID    string
	Compress string //"", "zst" or "gz"
}

//Due returns true if a restart file has to be written at step.
func (S Schedule) Due(step int) bool {
	return S.Period > 0 && step > 0 && step%S.Period == 0
}

//Path returns the name of the restart file for step.
//The name is <prefix>.<run id>.<step>.res, plus the compression suffix, if any.
func (S Schedule) Path(step int) string {
	name := fmt.Sprintf("%s.%s.%d.res", S.Prefix, S.RunID, step)
	if S.Compress != "" {
		name += "." + S.Compress
	}
	return filepath.Join(S.Dir, name)
}

//Write writes St to the file Path(St.Frame.Step), compressing it if the
//schedule says so. It returns the name of the file written.
func (S Schedule) Write(St *State) (string, error) {
	if St == nil || St.Frame == nil {
		return "", meso.NewError(meso.FormatError, "", "nil state given to Schedule.Write")
	}
	path := S.Path(St.Frame.Step)
	if S.Compress == "" {
		return path, WriteFile(path, St)
	}
	plain := path + ".tmp"
	if err := WriteFile(plain, St); err != nil {
		return "", err
	}
	defer os.Remove(plain)
	if err := Pack(plain, path); err != nil {
		return "", err
	}
	return path, nil
}
