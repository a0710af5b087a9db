/*
 * sentinel.go, part of goMeso.
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
	"io"

	"github.com/rmera/gomeso/tok"
)

//Sentinel separates the coordinates payload from the inclusive data.
const Sentinel = "inclusive"

//findSentinel looks for the sentinel token in rs and returns a Reader positioned
//right after it. The token is first looked for at reported, the offset where the
//coordinates payload ended. If it isn't there the whole stream is scanned from
//the start, token by token, and the first sentinel found is used.
//found is false if the stream has no sentinel at all.
func findSentinel(rs io.ReadSeeker, name string, reported int64) (R *tok.Reader, found bool, err error) {
	if reported >= 0 {
		R, err = tok.NewReaderAt(rs, name, reported)
		if err == nil {
			if s, err := R.Scan(); err == nil && s == Sentinel {
				return R, true, nil
			}
		}
	}
	R, err = tok.NewReaderAt(rs, name, 0)
	if err != nil {
		return nil, false, err
	}
	for {
		s, err := R.Scan()
		if err == io.EOF {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		if s == Sentinel {
			return R, true, nil
		}
	}
}
