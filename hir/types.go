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

package hir

import "github.com/latticelang/frontc/token"

// TypeRefKind tags HIR's closed sum over types (spec.md §3
// "TypeRef::Data"). It adds Infer/Generic/Diverge to the AST's set and
// splits Array into a sized Array and an unsized Slice.
type TypeRefKind int

const (
	TyInfer TypeRefKind = iota
	TyGeneric
	TyDiverge
	TyPrimitive
	TyTuple
	TySlice
	TyArray
	TyBorrow
	TyPointer
	TyPath
	TyTraitObject
	TyFunction
	TyClosure
)

// InferClass narrows an inference variable the way the resolver's
// unifier needs to (spec.md leaves the exact lattice to the consumed
// resolver; the front-end only needs to distinguish "any type" from
// "some integer type" from "some float type" so literal defaulting has
// somewhere to record its guess).
type InferClass int

const (
	InferAny InferClass = iota
	InferInteger
	InferFloat
)

// TraitObjectInfo mirrors ast.TraitObjectInfo, but DataTrait is split
// out from Markers because spec.md §4.1 "TraitObject" requires
// splitting a surface `dyn A + B + 'a` list into exactly one data trait
// plus marker traits at lowering time, and a TypeRef should never need
// to re-derive that split.
type TraitObjectInfo struct {
	HRLs       []string
	DataTrait  *TraitPath // nil for a marker-only object (e.g. `dyn Send`)
	Markers    []*TraitPath
}

// FunctionTypeInfo mirrors ast.FunctionTypeInfo with the ABI default
// resolved (spec.md §4.4 step 1: `"" → "rust"`).
type FunctionTypeInfo struct {
	ABI        string
	Unsafe     bool
	Params     []*TypeRef
	Variadic   bool
	ReturnType *TypeRef
}

// ClosureTypeInfo is the HIR-only closure type produced when a
// ClosureExpr is typechecked; spec.md lists `Closure` among
// TypeRef::Data's concrete variants without prescribing its shape
// beyond "captures an ExprNode's closure", so this carries just enough
// for the validator's closure body/return check (§4.5 "Closure").
type ClosureTypeInfo struct {
	Params     []*TypeRef
	ReturnType *TypeRef
}

// TypeRef is the HIR closed sum type from spec.md §3.
type TypeRef struct {
	Kind TypeRefKind
	Span token.Span

	// Infer payload.
	InferIndex int
	InferClass InferClass

	// Generic payload: de Bruijn-style (name retained for diagnostics).
	GenericName  string
	GenericIndex int

	// Primitive payload.
	Primitive token.CoreType

	// Tuple payload (also the lowering target for ast.TyUnit: empty Tuple).
	Inners []*TypeRef

	// Slice/Array/Borrow/Pointer payload.
	Inner   *TypeRef
	Mutable bool
	Size    ExprNode // Array payload only

	// Path payload.
	Path *Path

	// TraitObject payload.
	TraitObject *TraitObjectInfo

	// Function payload.
	Function *FunctionTypeInfo

	// Closure payload.
	Closure *ClosureTypeInfo
}

// IsDiverge reports whether this type is the uninhabited `!` type,
// which unifies with anything (spec.md GLOSSARY "Diverge type";
// consulted throughout package check).
func (t *TypeRef) IsDiverge() bool { return t != nil && t.Kind == TyDiverge }
