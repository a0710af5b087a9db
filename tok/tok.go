/*
 * tok.go, part of goMeso.
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

//Package tok reads and writes the whitespace-delimited token streams used by
//goMeso restart files.
//
//Both Reader and Writer keep the first error they find. Once that happens every
//further call is a no-op, and the error is available from Err. This lets
//a record be read field by field and checked once at the end.
package tok

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	meso "github.com/rmera/gomeso"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r' || b == '\v' || b == '\f'
}

//Reader reads tokens from a stream, keeping track of the number of bytes consumed.
type Reader struct {
	r      *bufio.Reader
	name   string
	off    int64
	tokens int
	size   int64 //size of the underlying file, -1 if unknown
	err    error
}

//NewReader returns a Reader for r. name is only used in error messages.
//off is the position of r in the underlying file, and is the starting value
//for Offset.
func NewReader(r io.Reader, name string, off int64) *Reader {
	return &Reader{r: bufio.NewReader(r), name: name, off: off, size: -1}
}

//NewReaderAt seeks rs to off and returns a Reader starting there.
//Since the size of rs is known, the Reader can reject record counts that
//don't fit in what is left of the stream (see Records).
func NewReaderAt(rs io.ReadSeeker, name string, off int64) (*Reader, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, meso.NewError(meso.IOError, name, "can't find the size of the file: %s", err.Error())
	}
	if _, err := rs.Seek(off, io.SeekStart); err != nil {
		return nil, meso.NewError(meso.IOError, name, "can't seek to byte %d: %s", off, err.Error())
	}
	R := NewReader(rs, name, off)
	R.size = size
	return R, nil
}

//Offset returns the position, in the underlying file, right after the last
//token read and the whitespace byte that ended it.
func (R *Reader) Offset() int64 { return R.off }

//Tokens returns the number of tokens read so far.
func (R *Reader) Tokens() int { return R.tokens }

//Err returns the first error found by the reader, if any.
func (R *Reader) Err() error { return R.err }

//Fail poisons the reader with err, unless it already holds an error.
//It returns the error the reader holds afterwards.
func (R *Reader) Fail(err error) error {
	if R.err == nil && err != nil {
		if e, ok := err.(*meso.Error); ok {
			e.SetFileName(R.name)
		}
		R.err = err
	}
	return R.err
}

//Failf poisons the reader with a new error of the given kind.
func (R *Reader) Failf(kind meso.Kind, format string, args ...any) error {
	return R.Fail(meso.NewError(kind, R.name, format, args...))
}

//Scan returns the next token. At the end of the stream it returns io.EOF.
//Scan does not poison the reader on EOF, so it can be used to search
//a stream, but it does return the held error if the reader is poisoned.
func (R *Reader) Scan() (string, error) {
	if R.err != nil {
		return "", R.err
	}
	var b byte
	var err error
	for {
		b, err = R.r.ReadByte()
		if err == io.EOF {
			return "", io.EOF
		}
		if err != nil {
			return "", R.Failf(meso.IOError, "reading byte %d: %s", R.off, err.Error())
		}
		R.off++
		if !isSpace(b) {
			break
		}
	}
	buf := []byte{b}
	for {
		b, err = R.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", R.Failf(meso.IOError, "reading byte %d: %s", R.off, err.Error())
		}
		R.off++
		if isSpace(b) {
			break
		}
		buf = append(buf, b)
	}
	R.tokens++
	return string(buf), nil
}

//Token returns the next token. Reaching the end of the stream poisons the reader.
//what, formatted with args, names the field in error messages.
func (R *Reader) Token(what string, args ...any) string {
	if R.err != nil {
		return ""
	}
	s, err := R.Scan()
	if err == io.EOF {
		R.Failf(meso.FormatError, "unexpected end of file reading %s", fmt.Sprintf(what, args...))
		return ""
	}
	return s
}

//Label reads a token that names something. It is the same as Token, kept separate
//so readers document what they expect.
func (R *Reader) Label(what string, args ...any) string {
	return R.Token(what, args...)
}

//Expect reads a token and poisons the reader if it is not word.
func (R *Reader) Expect(word string) {
	s := R.Token("%q", word)
	if R.err == nil && s != word {
		R.Failf(meso.FormatError, "expected %q at token %d, found %q", word, R.tokens, s)
	}
}

//Int reads an integer.
func (R *Reader) Int(what string, args ...any) int {
	s := R.Token(what, args...)
	if R.err != nil {
		return 0
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		R.Failf(meso.FormatError, "can't read %s from %q (token %d)", fmt.Sprintf(what, args...), s, R.tokens)
		return 0
	}
	return i
}

//Count reads a non-negative integer.
func (R *Reader) Count(what string, args ...any) int {
	i := R.Int(what, args...)
	if R.err == nil && i < 0 {
		R.Failf(meso.FormatError, "%s can't be negative (%d)", fmt.Sprintf(what, args...), i)
		return 0
	}
	return i
}

//Records reads the number of records that follow, each of them at least
//tokens tokens long. If the size of the stream is known, a count that
//can't fit in the rest of it is a FormatError.
func (R *Reader) Records(tokens int, what string, args ...any) int {
	n := R.Count(what, args...)
	if R.err != nil || R.size < 0 || n == 0 {
		return n
	}
	if tokens < 1 {
		tokens = 1
	}
	left := R.size - R.off
	//each token but the last takes at least 2 bytes
	if int64(n) > (left+1)/(2*int64(tokens)) {
		R.Failf(meso.FormatError, "%s is %d, but only %d bytes are left in the file", fmt.Sprintf(what, args...), n, left)
		return 0
	}
	return n
}

//Int64 reads a 64-bit integer.
func (R *Reader) Int64(what string, args ...any) int64 {
	s := R.Token(what, args...)
	if R.err != nil {
		return 0
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		R.Failf(meso.FormatError, "can't read %s from %q (token %d)", fmt.Sprintf(what, args...), s, R.tokens)
		return 0
	}
	return i
}

//Float reads a finite float64. NaN and infinities are FormatErrors.
func (R *Reader) Float(what string, args ...any) float64 {
	s := R.Token(what, args...)
	if R.err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		R.Failf(meso.FormatError, "can't read %s from %q (token %d)", fmt.Sprintf(what, args...), s, R.tokens)
		return 0
	}
	return f
}

//Writer writes tokens separated by single spaces.
type Writer struct {
	w         *bufio.Writer
	err       error
	linestart bool
}

//NewWriter returns a Writer on w. Flush must be called when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), linestart: true}
}

func (W *Writer) raw(s string) {
	if W.err != nil {
		return
	}
	if !W.linestart {
		if err := W.w.WriteByte(' '); err != nil {
			W.err = meso.NewError(meso.IOError, "", "%s", err.Error())
			return
		}
	}
	if _, err := W.w.WriteString(s); err != nil {
		W.err = meso.NewError(meso.IOError, "", "%s", err.Error())
		return
	}
	W.linestart = false
}

//Token writes s. s must be a valid single token (see meso.ValidName).
func (W *Writer) Token(s string) {
	if W.err == nil && !meso.ValidName(s) {
		W.err = meso.NewError(meso.FormatError, "", "%q can't be written as a single token", s)
	}
	W.raw(s)
}

func (W *Writer) Int(i int) {
	W.raw(strconv.Itoa(i))
}

func (W *Writer) Int64(i int64) {
	W.raw(strconv.FormatInt(i, 10))
}

//Float writes f with the shortest representation that reads back to the same value.
func (W *Writer) Float(f float64) {
	W.raw(strconv.FormatFloat(f, 'g', -1, 64))
}

//Newline ends the current line.
func (W *Writer) Newline() {
	if W.err != nil {
		return
	}
	if err := W.w.WriteByte('\n'); err != nil {
		W.err = meso.NewError(meso.IOError, "", "%s", err.Error())
		return
	}
	W.linestart = true
}

//Fail poisons the writer with err, unless it already holds an error.
func (W *Writer) Fail(err error) error {
	if W.err == nil {
		W.err = err
	}
	return W.err
}

//Err returns the first error found by the writer.
func (W *Writer) Err() error { return W.err }

//Flush writes any buffered data and returns the first error found.
func (W *Writer) Flush() error {
	if W.err != nil {
		return W.err
	}
	if err := W.w.Flush(); err != nil {
		W.err = meso.NewError(meso.IOError, "", "%s", err.Error())
	}
	return W.err
}
