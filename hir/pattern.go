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

// PatternKind tags HIR's closed sum over patterns. ast.PatMaybeBind and
// ast.PatMacro never reach here (spec.md §4.4 step 3: "must have been
// eliminated before lowering; reaching them is a bug"); ast.PatValue
// splits into Value/Range, and ast.PatWildcardStructTuple/PatStructTuple/
// PatStruct each split on whether the path binds an enum variant or a
// struct, per the resolver's PathBinding tag.
type PatternKind int

const (
	PatAny PatternKind = iota
	PatBindingOnly // a bare `name` binding with no further structure
	PatBox
	PatRef
	PatValue
	PatRange
	PatTuple
	PatSlice
	PatEnumTupleWildcard
	PatEnumTuple
	PatEnumStruct
	PatStructTupleWildcard
	PatStructTuple
	PatStruct
)

// BindMode mirrors ast.BindMode.
type BindMode int

const (
	BindMove BindMode = iota
	BindRef
	BindMutRef
)

// PatternBinding mirrors ast.PatternBinding with Slot always populated
// (the resolver's job, already done by the time lowering runs).
type PatternBinding struct {
	Present bool
	Mutable bool
	Mode    BindMode
	Name    string
	Slot    int
}

// StructPatternField mirrors ast.StructPatternField.
type StructPatternField struct {
	Name    string
	Pattern *Pattern
}

// Pattern is the HIR closed sum type from spec.md §3/§4.4 step 3.
type Pattern struct {
	Kind    PatternKind
	Span    token.Span
	Binding PatternBinding

	// Box/Ref payload.
	RefMutable bool
	Sub        *Pattern

	// Value/Range payload.
	Start ExprNode
	End   ExprNode // Range payload only

	// Tuple/Slice/EnumTuple/StructTuple sub-pattern lists.
	Subs []*Pattern

	// EnumTuple/EnumStruct/StructTuple/Struct payload.
	Path       *GenericPath
	EnumVariantIdx int // set for EnumTuple*/EnumStruct
	Fields     []StructPatternField
	Exhaustive bool

	// Slice payload.
	Leading   []*Pattern
	ExtraBind *PatternBinding
	Trailing  []*Pattern
}
