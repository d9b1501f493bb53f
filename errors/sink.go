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

package errors

import (
	"golang.org/x/xerrors"

	"github.com/latticelang/frontc/token"
)

// A Sink is the shared diagnostic channel threaded through every phase
// (spec.md §6 "Inter-phase interface"). Each phase (lexer, parser,
// lowering, validator) takes a *Sink so diagnostics accumulate across
// phase boundaries without the phases depending on each other's types.
type Sink struct {
	errs     Error
	warnings Error
	notes    Error
}

// Error reports a user-facing diagnostic with a class code. Matches
// mrustc's ERROR() macro from original_source/src/include/rustic.hpp.
func (s *Sink) Error(pos token.Pos, code, format string, args ...interface{}) {
	s.errs = Append(s.errs, &diag{pos: pos, sev: SevError, code: code, Message: NewMessage(format, args)})
}

// Warning reports a non-fatal diagnostic; execution continues.
func (s *Sink) Warning(pos token.Pos, code, format string, args ...interface{}) {
	s.warnings = Append(s.warnings, &diag{pos: pos, sev: SevWarning, code: code, Message: NewMessage(format, args)})
}

// Note records supplementary context in its own accumulator, separate
// from errors and warnings and not linked to any earlier diagnostic;
// kept that way since this module does
// not own diagnostic rendering (an external collaborator per spec.md §1).
func (s *Sink) Note(pos token.Pos, format string, args ...interface{}) {
	s.notes = Append(s.notes, &diag{pos: pos, sev: SevNote, Message: NewMessage(format, args)})
}

// BugPanic is the payload recovered by a phase driver when Bug aborts
// the current phase. It is never meant to cross a phase boundary as a
// live panic; RunPhase below converts it back into an Error.
type BugPanic struct {
	Err Error
}

// Bug reports a programmer-invariant violation (spec.md §7: "A bug is a
// programmer invariant violation; it aborts the phase with a trace").
// It panics; callers run phases under RunPhase to convert that panic
// back into a normal Error return.
func (s *Sink) Bug(pos token.Pos, format string, args ...interface{}) {
	e := &diag{pos: pos, sev: SevBug, Message: NewMessage(format, args)}
	panic(BugPanic{Err: e})
}

// Bugf wraps an existing error as the bug's cause, using xerrors so the
// original error chain (e.g. an I/O failure from the lexer's reader) is
// preserved for %w-style unwrapping, the way cue/ast.go and
// internal/internal.go wrap underlying errors.
func (s *Sink) Bugf(pos token.Pos, cause error, format string, args ...interface{}) {
	wrapped := xerrors.Errorf(format+": %w", append(args, cause)...)
	panic(BugPanic{Err: &diag{pos: pos, sev: SevBug, Message: NewMessage(wrapped.Error(), nil)}})
}

// Err returns the accumulated user-facing errors, or nil if there were
// none.
func (s *Sink) Err() Error { return s.errs }

// Warnings returns the accumulated warnings, or nil.
func (s *Sink) Warnings() Error { return s.warnings }

// HasErrors reports whether Error has been called at least once.
func (s *Sink) HasErrors() bool { return s.errs != nil }

// RunPhase executes fn, converting a Bug panic raised anywhere within it
// into a returned Error instead of letting it unwind further. Every
// phase entry point in this module (scan, parse, lower, check) is
// invoked through RunPhase so "a bug aborts the phase" (spec.md §7)
// holds without every caller needing its own recover().
func (s *Sink) RunPhase(fn func()) (err Error) {
	defer func() {
		if r := recover(); r != nil {
			if bp, ok := r.(BugPanic); ok {
				err = Append(s.errs, bp.Err)
				return
			}
			panic(r)
		}
	}()
	fn()
	if s.errs != nil {
		return s.errs
	}
	return nil
}
