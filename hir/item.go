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

// GenericBoundKind tags one entry of a GenericParams bound list.
type GenericBoundKind int

const (
	BoundTrait GenericBoundKind = iota
	BoundLifetime
	BoundMaybeTrait // `?Sized`-style relaxed bound; only "Sized" is recognised
	BoundTypeEquality
)

// GenericBound is one bound attached to a generic parameter or carried
// in a trait's own bound list. TraitBound.Target is a TypeRef so that
// `Self: ThisTrait` (spec.md invariant "GenericParams.m_bounds for a
// trait always starts with Self: ThisTrait") fits the same shape as an
// ordinary `T: Trait` parameter bound.
type GenericBound struct {
	Kind GenericBoundKind

	// BoundTrait payload.
	Target *TypeRef
	Trait  *TraitPath

	// BoundLifetime payload.
	Lifetime      string
	OuterLifetime string

	// BoundMaybeTrait payload.
	MaybeTraitName string

	// BoundTypeEquality payload.
	EqLeft  *TypeRef
	EqRight *TypeRef
}

// GenericParams is the HIR form of ast.Generics: lifetime names are
// erased to a count (HIR types reference them only by the Borrow
// TypeRef's absence/presence of a name, already folded away at
// lowering), type parameters keep their names for diagnostics.
type GenericParams struct {
	LifetimeCount int
	TypeParamNames []string
	Defaults       []*TypeRef // parallel to TypeParamNames; nil entries mean "no default"
	Bounds         []GenericBound
}

// Visibility mirrors ast.Visibility.
type Visibility int

const (
	VisPrivate Visibility = iota
	VisPublic
)

// Constant is a `const NAME: T = expr;` item.
type Constant struct {
	Public bool
	Name   string
	Type   *TypeRef
	Value  ExprNode
	Span   token.Span
}

// Static is a `static NAME: T = expr;`/`static mut NAME: T = expr;`
// item.
type Static struct {
	Public  bool
	Mutable bool
	Name    string
	Type    *TypeRef
	Value   ExprNode
	Span    token.Span
}

// Function is a lowered free function, inherent method, or trait
// method (default or declaration-only, Body nil in the latter case).
type Function struct {
	Public     bool
	Unsafe     bool
	Const      bool
	ABI        string
	Name       string
	Generics   GenericParams
	HasSelf    bool
	SelfByRef  bool
	SelfMut    bool
	Params     []*TypeRef
	ParamNames []string // parallel to Params, for diagnostics
	Variadic   bool
	ReturnType *TypeRef
	Body       *BlockExpr
	Span       token.Span
}

// StructConstructor is the synthesized value-namespace item for a
// tuple or unit struct's name used as a function (SPEC_FULL.md
// "Supplemented features": mrustc's src/hir/from_ast.cpp treats a
// tuple/unit struct's own name as a first-class constructor value).
type StructConstructor struct {
	Public bool
	Struct *Struct
	Span   token.Span
}

// AssociatedType is a trait's `type Name: Bounds = Default;` member.
type AssociatedType struct {
	Name    string
	Bounds  []GenericBound
	Default *TypeRef
	Span    token.Span
}

// TraitValueKind tags what a trait's `values` map entry is (spec.md §3
// "HIR.Trait ... values: map<name, Constant|Static|Function|None>").
type TraitValueKind int

const (
	TraitValueConstant TraitValueKind = iota
	TraitValueStatic
	TraitValueFunction
	TraitValueNone
)

// TraitValue is one entry of Trait.Values.
type TraitValue struct {
	Kind     TraitValueKind
	Constant *Constant
	Static   *Static
	Function *Function
}

// Trait is a lowered `trait Name<G>: Super + Bound { members... }`
// item. Generics.Bounds always starts with a Self: ThisTrait
// GenericBound, materialized by lowering (spec.md invariant).
type Trait struct {
	Public    bool
	Unsafe    bool
	IsMarker  bool // true when Types and Values are both empty
	Name      string
	Path      SimplePath
	Generics  GenericParams
	SelfLife  string
	Supertraits []*TraitPath
	Types     map[string]*AssociatedType
	Values    map[string]*TraitValue
	Span      token.Span
}

// Representation mirrors ast.Representation.
type Representation int

const (
	ReprRust Representation = iota
	ReprC
	ReprU8
	ReprU16
	ReprU32
	ReprPacked
)

// StructKind tags the three lowered struct shapes.
type StructKind int

const (
	StructUnit StructKind = iota
	StructTupleKind
	StructNamed
)

// StructField is one lowered named or positional field.
type StructField struct {
	Public bool
	Name   string // "" for a positional (tuple) field
	Type   *TypeRef
	Span   token.Span
}

// Struct is a lowered `struct Name<G> { ... }` item.
type Struct struct {
	Public   bool
	Name     string
	Path     SimplePath
	Generics GenericParams
	Kind     StructKind
	Repr     Representation
	Fields   []StructField
	Span     token.Span
}

// EnumVariantKind mirrors ast.EnumVariantKind.
type EnumVariantKind int

const (
	VariantUnit EnumVariantKind = iota
	VariantValue
	VariantTuple
	VariantStruct
)

// EnumVariant is a lowered enum variant; variant order is preserved
// (spec.md §8 scenario 4: "enum variants ordered A(Unit), B(Tuple[...]),
// C(Struct[...])"), and EnumVariantIdx in the Pattern/Path binding
// refers back into Enum.Variants by this position.
type EnumVariant struct {
	Name   string
	Kind   EnumVariantKind
	Value  ExprNode
	Fields []StructField
	Span   token.Span
}

// Enum is a lowered `enum Name<G> { variants... }` item.
type Enum struct {
	Public   bool
	Name     string
	Path     SimplePath
	Generics GenericParams
	Repr     Representation
	Variants []EnumVariant
	Span     token.Span
}

// ImplMethod is one method entry of a TraitImpl/TypeImpl method map,
// carrying the per-member flags spec.md's HIR.TraitImpl/TypeImpl
// describe.
type ImplMethod struct {
	Public        bool
	Specialisable bool
	Function      *Function
}

// ImplAssocType is one associated-type entry of a TraitImpl.
type ImplAssocType struct {
	Specialisable bool
	Type          *TypeRef
}

// ImplConstant is one associated-constant entry of a TraitImpl.
type ImplConstant struct {
	Specialisable bool
	Constant      *Constant
}

// TraitImpl is `impl<G> Trait<Args> for Type { members... }` (spec.md
// §3 "HIR.TraitImpl").
type TraitImpl struct {
	Generics    GenericParams
	TraitArgs   PathParams
	Trait       SimplePath
	Implementor *TypeRef
	Methods     map[string]*ImplMethod
	Constants   map[string]*ImplConstant
	Types       map[string]*ImplAssocType
	Module      SimplePath
	Span        token.Span
}

// TypeImpl is `impl<G> Type { methods... }` (spec.md §3 "HIR.TypeImpl").
type TypeImpl struct {
	Generics    GenericParams
	Implementor *TypeRef
	Methods     map[string]*ImplMethod
	Module      SimplePath
	Span        token.Span
}

// MarkerImpl is `impl<G> Trait<Args> for Type {}` or its negative form
// `impl<G> !Trait<Args> for Type {}` (spec.md §3 "HIR.MarkerImpl").
type MarkerImpl struct {
	Generics    GenericParams
	TraitArgs   PathParams
	Trait       SimplePath
	Positive    bool
	Implementor *TypeRef
	Module      SimplePath
	Span        token.Span
}

// MacroRules is the unexpanded body of an `exported_macros` entry; the
// rules themselves remain an opaque token tree because macro-rules
// matching is an external collaborator (spec.md §1 Non-goals).
type MacroRules struct {
	Name string
	Body token.Tree
	Span token.Span
}
