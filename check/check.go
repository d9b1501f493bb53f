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

// Package check implements C8, the expression validator that runs after
// type inference. It does not infer anything itself: every ExprNode
// already carries a Resolved type by the time Validate walks it, and
// this package only re-asserts the narrow structural properties
// inference is not required to have produced (spec.md §4.5).
package check

import (
	"github.com/latticelang/frontc/errors"
	"github.com/latticelang/frontc/hir"
	"github.com/latticelang/frontc/resolve"
)

// abortPhase is panicked by report once the first diagnostic has been
// recorded, so a single depth-first traversal never visits a second
// mismatch after the phase is already doomed (spec.md §4.5 "reports ...
// then unwinds the phase"). It is distinct from errors.BugPanic: a type
// mismatch is a user-facing diagnostic, not a programmer-invariant
// violation, but it still needs to unwind past an arbitrary traversal
// depth the same way a bug does. validator.run recovers it itself, since
// Sink.RunPhase only recovers errors.BugPanic.
type abortPhase struct{}

// validator carries the state one Validate call threads through the
// traversal: the diagnostic sink, the resolver collaborator (C9), the
// crate being checked, and the stack of return-type targets the
// innermost enclosing function/closure pushes (spec.md §4.5 "Return").
type validator struct {
	sink     *errors.Sink
	resolver resolve.TraitResolver
	crate    *hir.Crate

	returnStack []*hir.TypeRef
}

// Validate runs C8 over crate using resolver for impl/lang-item lookups,
// reporting diagnostics to sink. It returns the accumulated error, or
// nil if the crate validated cleanly.
func Validate(crate *hir.Crate, resolver resolve.TraitResolver, sink *errors.Sink) errors.Error {
	v := &validator{sink: sink, resolver: resolver, crate: crate}
	return sink.RunPhase(func() { v.run() })
}

// run walks every function body reachable from the root module, the
// only place ExprNode trees live in HIR (spec.md §3: item bodies are the
// sole ExprNode-bearing fields). Modules are visited in their Values/
// Types map order sorted by key to satisfy the deterministic-iteration
// requirement (spec.md §5).
// run recovers abortPhase itself rather than letting it reach
// Sink.RunPhase: RunPhase only understands errors.BugPanic, and a type
// mismatch is a diagnostic, not a bug, so the unwind has to stop here.
// The diagnostic itself was already appended to the sink by report
// before the panic; after recovering there is nothing left to do but
// let Validate see it via sink.Err().
func (v *validator) run() {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(abortPhase); ok {
				return
			}
			panic(r)
		}
	}()
	v.walkModule(v.crate.Root)
	for _, impl := range v.crate.TypeImpls {
		v.walkTypeImpl(impl)
	}
	for _, key := range v.crate.TraitImplKeys() {
		for _, impl := range v.crate.TraitImpls[key] {
			v.walkTraitImpl(impl)
		}
	}
}

func (v *validator) walkModule(m *hir.Module) {
	for _, name := range sortedKeys(m.Values) {
		item := m.Values[name]
		switch item.Kind {
		case hir.ValueFunction:
			v.walkFunction(item.Function)
		case hir.ValueConstant:
			if item.Constant.Value != nil {
				v.expr(item.Constant.Value)
			}
		case hir.ValueStatic:
			if item.Static.Value != nil {
				v.expr(item.Static.Value)
			}
		}
	}
	for _, name := range sortedTypeKeys(m.Types) {
		item := m.Types[name]
		switch item.Kind {
		case hir.TypeModule:
			v.walkModule(item.Module)
		case hir.TypeTrait:
			v.walkTrait(item.Trait)
		}
	}
}

func (v *validator) walkTrait(t *hir.Trait) {
	for _, name := range sortedTraitValueKeys(t.Values) {
		val := t.Values[name]
		if val.Kind == hir.TraitValueFunction && val.Function != nil && val.Function.Body != nil {
			v.walkFunction(val.Function)
		}
	}
}

func (v *validator) walkTypeImpl(impl *hir.TypeImpl) {
	for _, name := range sortedMethodKeys(impl.Methods) {
		v.walkFunction(impl.Methods[name].Function)
	}
}

func (v *validator) walkTraitImpl(impl *hir.TraitImpl) {
	for _, name := range sortedMethodKeys(impl.Methods) {
		v.walkFunction(impl.Methods[name].Function)
	}
	for _, name := range sortedConstKeys(impl.Constants) {
		if c := impl.Constants[name].Constant; c.Value != nil {
			v.expr(c.Value)
		}
	}
}

func (v *validator) walkFunction(f *hir.Function) {
	if f == nil || f.Body == nil {
		return
	}
	v.returnStack = append(v.returnStack, f.ReturnType)
	v.expr(f.Body)
	v.returnStack = v.returnStack[:len(v.returnStack)-1]
}

// report records one Type mismatch diagnostic and unwinds the phase
// (spec.md §4.5 "Failure"). Every validator check funnels through this
// single call site so the "exactly one diagnostic" contract cannot be
// violated by a forgotten early return.
func (v *validator) report(n hir.ExprNode, format string, args ...interface{}) {
	v.sink.Error(n.Pos().Start(), "E0000", format, args...)
	panic(abortPhase{})
}
