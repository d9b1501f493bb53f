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

package ast

import "github.com/latticelang/frontc/token"

// TypeRefKind tags the closed sum over type expressions (spec.md §3).
type TypeRefKind int

const (
	TyNone TypeRefKind = iota // diverging, `!`
	TyAny                     // inferred, `_`
	TyUnit
	TyMacro
	TyPrimitive
	TyTuple
	TyBorrow
	TyPointer
	TyArray
	TyPath
	TyTraitObject
	TyFunction
	TyGeneric
)

// FunctionTypeInfo describes a `fn(..) -> T` or `Fn(..) -> T` type.
type FunctionTypeInfo struct {
	ABI        string // "" defaults to "rust" at lowering
	Unsafe     bool
	Params     []*TypeRef
	Variadic   bool
	ReturnType *TypeRef
}

// TraitObjectInfo describes a `dyn Trait + Marker + 'a` type.
type TraitObjectInfo struct {
	HRLs   []string // higher-ranked lifetime binders in scope
	Traits []*Path  // first may be the single data trait; rest are markers
}

// TypeRef is the closed sum type from spec.md §3.
type TypeRef struct {
	Kind TypeRefKind
	Span token.Span

	// Primitive payload.
	Primitive token.CoreType

	// Tuple payload.
	Inners []*TypeRef

	// Borrow/Pointer payload.
	Mutable bool
	Inner   *TypeRef

	// Array payload: size is nil for a slice type (`[]T`).
	Size ExprNode

	// Path payload.
	Path *Path

	// TraitObject payload.
	TraitObject *TraitObjectInfo

	// Function payload.
	Function *FunctionTypeInfo

	// Generic payload: a local type-parameter reference, resolved by
	// the name resolver to a (name, index) pair before lowering sees it.
	GenericName  string
	GenericIndex int
}
