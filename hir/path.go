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

// Package hir is the lowered mirror of package ast (spec.md §3 "HIR
// mirror types"): every AST.Path/Pattern/TypeRef/ExprNode variant that
// can still be ambiguous or sugared at parse time has a narrower,
// fully-resolved HIR counterpart here.
package hir

import "strings"

// SimplePath is an absolute path with no generic arguments: crate name
// plus an ordered component list. The empty crate name denotes the
// current crate, matching the parser's `Path::Absolute("", ...)` form
// for `::core::mem::swap`-style paths (spec.md §8 "Parser" property).
type SimplePath struct {
	Crate      string
	Components []string
}

// String renders a SimplePath the way diagnostics and the TraitPath
// index-fixup pass key on it (spec.md "Impl index").
func (p SimplePath) String() string {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(p.Crate)
	for _, c := range p.Components {
		b.WriteString("::")
		b.WriteString(c)
	}
	return b.String()
}

// PathParams is the HIR form of ast.PathParams: associated-lifetime
// arguments are erased (they do not affect overload/impl selection),
// leaving only the ordered type argument list spec.md §3 names.
type PathParams struct {
	Types []*TypeRef
}

// GenericPath is a SimplePath plus one PathParams on the final
// component (the GLOSSARY's "GenericPath" entry).
type GenericPath struct {
	Path   SimplePath
	Params PathParams
}

// AssocTypeBound is one `Name = Type` equality constraint carried by a
// TraitPath (lowered from ast.PathParams.AssocBindings on a trait-bound
// position).
type AssocTypeBound struct {
	Name string
	Type *TypeRef
}

// TraitPath is a GenericPath used in bound/impl position: it carries
// higher-ranked lifetime binders, associated-type equalities, and the
// non-owning back-pointer the index-fixup pass (spec.md §4.4 step 7)
// resolves once every Trait item has been placed in the crate.
type TraitPath struct {
	Generic       GenericPath
	HRLs          []string
	TypeBounds    []AssocTypeBound
	ResolvedTrait *Trait // nil until the index-fixup pass runs; never nil after
}

// SimplePath reports the underlying trait's SimplePath, the key used by
// Crate.TraitImpls/MarkerImpls (spec.md "Impl index").
func (t *TraitPath) SimplePath() SimplePath { return t.Generic.Path }

// PathKind tags the four HIR path forms (spec.md §3: `Path = Generic |
// UfcsInherent | UfcsKnown | UfcsUnknown`).
type PathKind int

const (
	PathGeneric PathKind = iota
	PathUfcsInherent
	PathUfcsKnown
	PathUfcsUnknown
)

// Path is the lowered, fully-resolved path: by the time lowering
// produces one, every ast.Path `Relative`/`Self`/`Super`/`Local`/
// `Invalid` form has been folded away (spec.md §4.4 step 2; a surviving
// one of those reaching here is a lowering bug).
type Path struct {
	Kind PathKind

	// Generic payload.
	Generic GenericPath

	// UfcsInherent/UfcsKnown/UfcsUnknown payload: `<Type [as Trait]>::item`.
	UfcsType  *TypeRef
	UfcsTrait *GenericPath // set only for UfcsKnown
	Item      string
	Params    PathParams
}
