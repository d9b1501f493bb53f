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

// Visibility is the `pub`-driven flag carried by every module item
// (spec.md §4.3).
type Visibility int

const (
	VisPrivate Visibility = iota
	VisPublic
)

// LifetimeBoundSet is `'a + Trait + ?Sized`-style bound list attached
// to a generic type parameter or a where-clause entry.
type LifetimeBoundSet struct {
	Lifetimes   []string
	Traits      []*Path
	MaybeTraits []string // `?Sized`-style relaxed bounds; only "Sized" is recognised (spec.md §7)
}

// TypeParam is one `T: Bounds = Default` generic type parameter.
type TypeParam struct {
	Name    string
	Bounds  LifetimeBoundSet
	Default *TypeRef // nil when absent
}

// HRLBound is a `for<'a, 'b> Type: BoundList` where-clause entry or a
// higher-ranked trait bound on a single generic parameter.
type HRLBound struct {
	HRLs   []string
	Target *TypeRef
	Bounds LifetimeBoundSet
}

// WhereClauseKind tags the four forms §4.3 "Where-clauses" describes.
type WhereClauseKind int

const (
	WhereLifetime WhereClauseKind = iota
	WhereHRL
	WhereType
	WhereEquality
)

// WhereClauseEntry is one comma-separated where-clause predicate.
type WhereClauseEntry struct {
	Kind WhereClauseKind

	// WhereLifetime payload.
	Lifetime      string
	OuterLifetime string

	// WhereHRL/WhereType payload.
	HRL HRLBound

	// WhereEquality payload.
	EqLeft  *TypeRef
	EqRight *TypeRef
}

// Generics is the angle-bracketed `<'a, T: Bound = Default>` parameter
// list plus any trailing where-clause.
type Generics struct {
	Lifetimes  []string
	TypeParams []TypeParam
	Where      []WhereClauseEntry
}

// Field is one named struct/variant field.
type Field struct {
	Attrs   []Attribute
	Public  bool
	Name    string
	Type    *TypeRef
	Span    token.Span
}

// SelfKind tags the receiver form of a method, per §4.3 "Functions".
type SelfKind int

const (
	SelfNone SelfKind = iota
	SelfByValue
	SelfByRef
	SelfByRefMut
	SelfByRefLifetime
	SelfTyped // `self: T` or `&self: T`
)

// SelfParam describes argument position 0 when the containing context
// permits a self receiver.
type SelfParam struct {
	Kind     SelfKind
	Mutable  bool
	Lifetime string
	Type     *TypeRef // set for SelfTyped; inferred `Self`/`&Self`/`&mut Self` otherwise
}

// Param is one ordinary function argument.
type Param struct {
	Pattern *Pattern
	Type    *TypeRef
}

// Function is the shared shape of a free function, inherent method,
// trait method default, and trait method declaration.
type Function struct {
	Attrs      []Attribute
	Public     bool
	Unsafe     bool
	Const      bool
	ABI        string // "" unless declared `extern "C" fn`
	Name       string
	Generics   Generics
	Self       *SelfParam // nil outside of an impl/trait method position
	Params     []Param
	Variadic   bool
	ReturnType *TypeRef // nil => (), distinguished from explicit `-> !`
	Diverges   bool     // true for `-> !`
	Body       *BlockExpr // nil for a trait method declaration with no default
	Span       token.Span
}

// StructKind tags the three struct shapes (unit/tuple/record).
type StructKind int

const (
	StructUnit StructKind = iota
	StructTupleKind
	StructNamed
)

// Representation tags a struct/enum's `#[repr(...)]` layout.
type Representation int

const (
	ReprRust Representation = iota
	ReprC
	ReprU8
	ReprU16
	ReprU32
	ReprPacked
)

// Struct is a `struct Name<G> { ... }` item.
type Struct struct {
	Attrs    []Attribute
	Public   bool
	Name     string
	Generics Generics
	Kind     StructKind
	Repr     Representation
	Tuple    []Field // StructTupleKind payload
	Named    []Field // StructNamed payload
	Span     token.Span
}

// EnumVariantKind tags the four variant shapes.
type EnumVariantKind int

const (
	VariantUnit EnumVariantKind = iota
	VariantValue
	VariantTuple
	VariantStruct
)

// EnumVariant is one `Name`, `Name = expr`, `Name(T...)`, or
// `Name { field... }` entry.
type EnumVariant struct {
	Attrs  []Attribute
	Name   string
	Kind   EnumVariantKind
	Value  ExprNode // VariantValue payload
	Tuple  []Field  // VariantTuple payload
	Fields []Field  // VariantStruct payload
	Span   token.Span
}

// Enum is an `enum Name<G> { variants... }` item.
type Enum struct {
	Attrs    []Attribute
	Public   bool
	Name     string
	Generics Generics
	Repr     Representation
	Variants []EnumVariant
	Span     token.Span
}

// TraitMember is one item inside a `trait { ... }` body: an associated
// type, constant, or method (with or without a default body).
type TraitMember struct {
	Attrs    []Attribute
	Type     *AssocTypeDecl // set for an associated-type member
	Const    *ConstItem     // set for an associated constant
	Function *Function      // set for a method (Body nil => no default)
}

// AssocTypeDecl is `type Name: Bounds = Default;` inside a trait body.
type AssocTypeDecl struct {
	Name    string
	Bounds  LifetimeBoundSet
	Default *TypeRef
	Span    token.Span
}

// Trait is a `trait Name<G>: Super + Bound { members... }` item.
type Trait struct {
	Attrs      []Attribute
	Public     bool
	Unsafe     bool
	Name       string
	Generics   Generics
	SelfLife   string // the implicit trait-object self lifetime bound, if declared
	Supertraits []*Path
	Members    []TraitMember
	Span       token.Span
}

// ImplMember mirrors TraitMember for the body of an `impl` block, plus
// a per-member `specialisable?` flag (spec.md HIR.TraitImpl/TypeImpl).
type ImplMember struct {
	Attrs         []Attribute
	Public        bool
	Specialisable bool
	Type          *AssocTypeDecl
	Const         *ConstItem
	Function      *Function
}

// Impl is `unsafe? impl<G> !?Trait? for Type where W { members... }`.
// Trait is nil for an inherent impl.
type Impl struct {
	Attrs    []Attribute
	Unsafe   bool
	Negative bool
	Generics Generics
	Trait    *Path // nil for an inherent impl
	SelfType *TypeRef
	Members  []ImplMember
	Span     token.Span
}

// ConstItem is `const NAME: T = expr;` or `static NAME: T = expr;`/
// `static mut NAME: T = expr;`.
type ConstItem struct {
	Attrs  []Attribute
	Public bool
	Static bool
	Mutable bool // static mut
	Name   string
	Type   *TypeRef
	Value  ExprNode
	Span   token.Span
}

// TypeAliasItem is `type Name<G> = T;`.
type TypeAliasItem struct {
	Attrs    []Attribute
	Public   bool
	Name     string
	Generics Generics
	Type     *TypeRef
	Span     token.Span
}

// UseTreeKind tags the shapes a `use` path can take.
type UseTreeKind int

const (
	UseLeaf UseTreeKind = iota // optionally `as NAME`-renamed
	UseGlob                    // `::*`
	UseGroup                   // `{a, b::c, ...}`
)

// UseTree is one node of a (possibly nested) `use` declaration.
type UseTree struct {
	Kind    UseTreeKind
	Path    *Path
	Alias   string // UseLeaf payload, "" when not renamed
	Group   []UseTree
	Span    token.Span
}

// UseItem is a `use tree;` declaration.
type UseItem struct {
	Attrs  []Attribute
	Public bool
	Tree   UseTree
	Span   token.Span
}

// ExternCrateItem is `extern crate name as alias?;`.
type ExternCrateItem struct {
	Attrs []Attribute
	Name  string
	Alias string
	Span  token.Span
}

// ExternBlockItem is `extern "ABI"? { fns/statics... }`.
type ExternBlockItem struct {
	Attrs []Attribute
	ABI   string
	Fns   []Function
	Span  token.Span
}

// ModuleLoadKind tags whether a `mod` item has an inline body or loads
// an external file (§4.3).
type ModuleLoadKind int

const (
	ModInline ModuleLoadKind = iota
	ModExternalFile
)

// ModItem is `mod name { ... }` or `mod name;`.
type ModItem struct {
	Attrs    []Attribute
	Public   bool
	Name     string
	LoadKind ModuleLoadKind
	Inline   *Module // set for ModInline
	Span     token.Span
}

// Item is the closed sum over every module-item kind spec.md §4.3
// names. Exactly one field is non-nil.
type Item struct {
	Use          *UseItem
	ExternCrate  *ExternCrateItem
	ExternBlock  *ExternBlockItem
	Const        *ConstItem
	Function     *Function
	TypeAlias    *TypeAliasItem
	Struct       *Struct
	Enum         *Enum
	Trait        *Trait
	Impl         *Impl
	Mod          *ModItem
	MacroInvoke  *MacroInvocation
}
