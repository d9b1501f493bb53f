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

// PatternKind tags the closed sum over pattern forms (spec.md §3).
type PatternKind int

const (
	PatAny PatternKind = iota
	PatMaybeBind
	PatMacro
	PatBox
	PatRef
	PatValue
	PatTuple
	PatWildcardStructTuple
	PatStructTuple
	PatStruct
	PatSlice
)

// BindMode tags how a pattern binding captures its matched value.
type BindMode int

const (
	BindMove BindMode = iota
	BindRef
	BindMutRef
)

// PatternBinding is the optional `name @` capture attached to a
// pattern, or an implicit capture for a bare identifier pattern.
type PatternBinding struct {
	Present bool
	Mutable bool
	Mode    BindMode
	Name    string
	Slot    int // assigned by the resolver; read-only here
}

// StructPatternField is one `name: pattern` entry of a Struct pattern.
type StructPatternField struct {
	Name    string
	Pattern *Pattern
}

// Pattern is the closed sum type from spec.md §3.
type Pattern struct {
	Kind    PatternKind
	Span    token.Span
	Binding PatternBinding

	// MaybeBind payload (pre-resolution; resolver decides enum-variant
	// vs binding based on whether the name matches a unit variant).
	MaybeBindName string

	// Macro payload.
	MacroInvocation *MacroInvocation

	// Box/Ref payload.
	RefMutable bool
	Sub        *Pattern

	// Value payload: literal or path range. End is nil for a
	// non-range value pattern.
	Start *ExprNode
	End   *ExprNode

	// Tuple/StructTuple/Slice sub-pattern lists.
	Subs []*Pattern

	// WildcardStructTuple/StructTuple/Struct payload.
	Path       *Path
	Fields     []StructPatternField
	Exhaustive bool // false when a Struct pattern ends in `, ..`

	// Slice payload: leading[], optional extra-bind (`rest @ ..`), trailing[].
	Leading      []*Pattern
	ExtraBind    *PatternBinding
	Trailing     []*Pattern
}
