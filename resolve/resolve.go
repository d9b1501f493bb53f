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

// Package resolve implements C9's consumed contract: the TraitResolver
// interface the validator (package check) calls into for every impl
// lookup, plus a reference implementation adequate to drive the
// validator end to end. A production trait-resolution engine — full
// unification, specialisation ranking, auto-impl synthesis — is
// explicitly out of scope (spec.md §1 Non-goals: "trait resolution,
// coherence checking, specialisation ranking"); what ships here is the
// shallow structural matcher the reference implementation needs to
// exercise package check's contract in tests.
package resolve

import (
	"github.com/latticelang/frontc/errors"
	"github.com/latticelang/frontc/hir"
	"github.com/latticelang/frontc/token"
)

// TraitResolver is the interface spec.md §4.6 describes. The validator
// never walks Crate.TraitImpls/TypeImpls/LangItems directly; every
// lookup goes through here so a real resolution engine can be swapped
// in without touching package check.
type TraitResolver interface {
	// CrateRef gives read access to the HIR crate's indexes.
	CrateRef() *hir.Crate

	// FindTraitImpls iterates trait impls (and, in a fuller engine,
	// generic bounds and auto-impls) whose Implementor unifies with self
	// and whose TraitArgs unify with args, calling cb on each candidate
	// in order; it returns the first impl for which cb returns true, or
	// nil if cb is nil and no candidate unified at all.
	FindTraitImpls(trait hir.SimplePath, args hir.PathParams, self *hir.TypeRef, cb func(*hir.TraitImpl) bool) *hir.TraitImpl

	// FindTypeImpls iterates inherent impls whose receiver type unifies
	// with self (through resolveFn, if given, to expand associated types
	// first), calling cb on each candidate.
	FindTypeImpls(self *hir.TypeRef, resolveFn func(*hir.TypeRef) *hir.TypeRef, cb func(*hir.TypeImpl) bool) *hir.TypeImpl

	// ExpandAssociatedTypes rewrites a UfcsKnown TypeRef to its concrete
	// form where resolvable, otherwise returns ty unchanged.
	ExpandAssociatedTypes(ty *hir.TypeRef) *hir.TypeRef

	// GetLangItemPath resolves a lang-item name to its SimplePath; a
	// missing entry is a bug (spec.md §4.6).
	GetLangItemPath(name string) hir.SimplePath

	// SetImplGenerics/SetItemGenerics scope-activate a set of in-scope
	// generics for the duration of one visit, returning a release
	// function the caller must invoke on every exit path (spec.md §5
	// "Scoped acquisitions").
	SetImplGenerics(params hir.GenericParams) func()
	SetItemGenerics(params hir.GenericParams) func()
}

// reflectResolver is the reference TraitResolver: a linear scan over
// the crate's impl indexes with shallow structural unification (see
// unify.go). Named for how it answers every query by directly
// reflecting over Crate's slices and maps rather than building a
// separate index.
type reflectResolver struct {
	crate *hir.Crate
	sink  *errors.Sink

	implGenerics []hir.GenericParams
	itemGenerics []hir.GenericParams
}

// New returns the reference TraitResolver over crate, reporting a bug
// to sink if a query needs a lang item the crate never registered.
func New(crate *hir.Crate, sink *errors.Sink) TraitResolver {
	return &reflectResolver{crate: crate, sink: sink}
}

func (r *reflectResolver) CrateRef() *hir.Crate { return r.crate }

func (r *reflectResolver) FindTraitImpls(trait hir.SimplePath, args hir.PathParams, self *hir.TypeRef, cb func(*hir.TraitImpl) bool) *hir.TraitImpl {
	for _, impl := range r.crate.TraitImpls[trait.String()] {
		if !typesUnify(impl.Implementor, self) || !argsUnify(impl.TraitArgs, args) {
			continue
		}
		if cb == nil || cb(impl) {
			return impl
		}
	}
	return nil
}

func (r *reflectResolver) FindTypeImpls(self *hir.TypeRef, resolveFn func(*hir.TypeRef) *hir.TypeRef, cb func(*hir.TypeImpl) bool) *hir.TypeImpl {
	for _, impl := range r.crate.TypeImpls {
		target := impl.Implementor
		if resolveFn != nil {
			target = resolveFn(target)
		}
		if !typesUnify(target, self) {
			continue
		}
		if cb == nil || cb(impl) {
			return impl
		}
	}
	return nil
}

// ExpandAssociatedTypes only handles the PathUfcsKnown shape (`<Type as
// Trait>::Item`); a bare generic associated-type reference would need
// the in-scope substitution environment set up by SetImplGenerics/
// SetItemGenerics, which this reference implementation records but does
// not yet apply to rewriting (a fuller engine would walk itemGenerics
// here; this one returns ty unchanged for anything it cannot resolve
// immediately from the impl index, matching spec.md §4.5's "currently
// no-ops at this layer" note for associated-type checks).
func (r *reflectResolver) ExpandAssociatedTypes(ty *hir.TypeRef) *hir.TypeRef {
	if ty == nil || ty.Kind != hir.TyPath || ty.Path == nil || ty.Path.Kind != hir.PathUfcsKnown {
		return ty
	}
	p := ty.Path
	impl := r.FindTraitImpls(p.UfcsTrait.Path, p.UfcsTrait.Params, p.UfcsType, nil)
	if impl == nil {
		return ty
	}
	at, ok := impl.Types[p.Item]
	if !ok || at.Type == nil {
		return ty
	}
	return at.Type
}

func (r *reflectResolver) GetLangItemPath(name string) hir.SimplePath {
	p, ok := r.crate.LangItems[name]
	if !ok {
		r.sink.Bug(token.Pos{}, "lang item %q not registered", name)
	}
	return p
}

func (r *reflectResolver) SetImplGenerics(params hir.GenericParams) func() {
	r.implGenerics = append(r.implGenerics, params)
	return func() { r.implGenerics = r.implGenerics[:len(r.implGenerics)-1] }
}

func (r *reflectResolver) SetItemGenerics(params hir.GenericParams) func() {
	r.itemGenerics = append(r.itemGenerics, params)
	return func() { r.itemGenerics = r.itemGenerics[:len(r.itemGenerics)-1] }
}
