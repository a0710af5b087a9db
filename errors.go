/*
 * errors.go, part of goMeso.
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

package meso

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies the errors produced while writing or reading restart data.
type Kind int

const (
	//FormatError: unexpected token, wrong field count, or an inconsistent record.
	FormatError Kind = iota + 1
	//TypeCountRegression: the file declares fewer types than are already known.
	TypeCountRegression
	//DanglingReference: a proxy id, bond endpoint or decorator label that resolves to nothing.
	DanglingReference
	DuplicateLabel
	UnknownNodeType
	CycleDetected
	//UnexpectedEntityType: a coordinates-only file uses bead types the configuration doesn't have.
	UnexpectedEntityType
	IOError
)

var kindNames = map[Kind]string{
	FormatError:          "format error",
	TypeCountRegression:  "type count regression",
	DanglingReference:    "dangling reference",
	DuplicateLabel:       "duplicate label",
	UnknownNodeType:      "unknown node type",
	CycleDetected:        "cycle detected",
	UnexpectedEntityType: "unexpected entity type",
	IOError:              "I/O error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the general structure for goMeso errors. It fullfills Decorater.
type Error struct {
	kind     Kind
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

// NewError returns a critical error of the given kind. The filename can be empty.
func NewError(kind Kind, filename string, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...), filename: filename, critical: true}
}

func (err *Error) Error() string {
	var b strings.Builder
	b.WriteString(err.kind.String())
	if err.filename != "" {
		b.WriteString(" in ")
		b.WriteString(err.filename)
	}
	b.WriteString(": ")
	b.WriteString(err.message)
	if len(err.deco) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(err.deco, " <- "))
	}
	return b.String()
}

// Decorate adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Kind returns the class of the error.
func (err *Error) Kind() Kind { return err.kind }

// FileName returns the file to which the failing operation was associated
func (err *Error) FileName() string { return err.filename }

// SetFileName sets the file name if it was not known when the error was created.
func (err *Error) SetFileName(name string) {
	if err.filename == "" {
		err.filename = name
	}
}

// Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

// Decorate adds the caller's name to err if it is a Decorater, and returns it.
// Other errors are returned untouched.
func Decorate(err error, caller string) error {
	var d Decorater
	if errors.As(err, &d) {
		d.Decorate(caller)
	}
	return err
}

// IsKind reports whether err, or an error it wraps, is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == k
	}
	return false
}
