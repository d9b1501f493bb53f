// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors implements the diagnostic sink described in spec.md §1
// and §7: bug/error/warning/note, all span-tagged, collected into a
// List that downstream tooling (diagnostic rendering, out of scope for
// this module) can pretty-print.
package errors

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/latticelang/frontc/token"
)

// Error is the interface every diagnostic produced by this module
// implements.
type Error interface {
	error
	Position() token.Pos
	InputPositions() []token.Pos
	Path() []string
}

// Message holds a format string and its arguments so a diagnostic can be
// rendered lazily and compared structurally in tests.
type Message struct {
	format string
	args   []interface{}
}

// NewMessage builds a Message from a printf-style format and arguments.
func NewMessage(format string, args []interface{}) Message {
	return Message{format: format, args: args}
}

func (m Message) Msg() (string, []interface{}) { return m.format, m.args }

func (m Message) Error() string { return fmt.Sprintf(m.format, m.args...) }

// Severity distinguishes the four diagnostic tiers from spec.md §7.
type Severity int

const (
	SevError Severity = iota
	SevWarning
	SevNote
	SevBug
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevNote:
		return "note"
	case SevBug:
		return "internal compiler error"
	default:
		return "error"
	}
}

// diag is the concrete Error implementation produced by the sink.
type diag struct {
	pos      token.Pos
	sev      Severity
	code     string
	path     []string
	Message
}

func (d *diag) Position() token.Pos        { return d.pos }
func (d *diag) InputPositions() []token.Pos { return nil }
func (d *diag) Path() []string             { return d.path }

func (d *diag) Error() string {
	var b bytes.Buffer
	if d.pos.IsValid() {
		fmt.Fprintf(&b, "%s: ", d.pos)
	}
	b.WriteString(d.sev.String())
	if d.code != "" {
		fmt.Fprintf(&b, " [%s]", d.code)
	}
	b.WriteString(": ")
	b.WriteString(d.Message.Error())
	return b.String()
}

// Newf creates a plain error-severity Error with no class code (used by
// collaborators that only need the Error interface, e.g. resolver
// failures surfaced to the validator).
func Newf(pos token.Pos, format string, args ...interface{}) Error {
	return &diag{pos: pos, sev: SevError, Message: NewMessage(format, args)}
}

// List collects zero or more Errors, preserving first-seen order but
// able to produce a deterministic sorted view for display.
type List []Error

func (l List) Error() string {
	var b bytes.Buffer
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Append adds err to list, flattening if err is itself a List. Mirrors
// cue/errors.Append's "accumulate but don't nest" behavior.
func Append(list Error, err Error) Error {
	if err == nil {
		return list
	}
	var out List
	switch v := list.(type) {
	case nil:
	case List:
		out = append(out, v...)
	default:
		out = append(out, v)
	}
	switch v := err.(type) {
	case List:
		out = append(out, v...)
	default:
		out = append(out, v)
	}
	return out
}

// Sanitize returns a copy of list sorted by position for stable
// diagnostic output, as the spec's determinism requirement (§5) demands
// for anything rendered to a user.
func Sanitize(err Error) Error {
	l, ok := err.(List)
	if !ok {
		return err
	}
	out := make(List, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Position(), out[j].Position()
		if pi.Filename != pj.Filename {
			return pi.Filename < pj.Filename
		}
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Column < pj.Column
	})
	return out
}

// Print renders every error in err (flattening a List) into a string;
// kept minimal since diagnostic rendering is an external collaborator
// per spec.md §1 — this exists only so tests and the cmd/frontc driver
// have something reasonable to print.
func Print(err Error) string {
	return Sanitize(err).Error()
}
