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

// Package ast defines the surface syntax tree produced by package
// parser: §3 "AST.Path / AST.Pattern / AST.TypeRef / AST.ExprNode" and
// the item/module/crate shapes of spec.md §3-4.
package ast

import "github.com/latticelang/frontc/token"

// PathKind tags the closed sum over path forms (spec.md §3).
type PathKind int

const (
	PathInvalid PathKind = iota
	PathLocal
	PathRelative
	PathSelf
	PathSuper
	PathAbsolute
	PathUFCS
)

// BindingKind tags how a resolved Path is bound; populated by the name
// resolver (an external collaborator) and read during lowering.
type BindingKind int

const (
	BindUnbound BindingKind = iota
	BindModule
	BindEnum
	BindStruct
	BindTrait
	BindStatic
	BindFunction
	BindEnumVariant
	BindTypeAlias
	BindStructMethod
	BindTraitMethod
	BindTypeParameter
	BindVariable
)

// Binding is the resolver-populated tag attached to every Path.
type Binding struct {
	Kind BindingKind

	// EnumVariant payload.
	Enum    *Path // path to the owning enum, set only when Kind == BindEnumVariant
	VarIdx  int

	// TypeParameter payload: de Bruijn-style (level, index) pair.
	Level int
	Index int

	// Variable payload: local slot index assigned by the resolver.
	Slot int
}

// PathParams holds the ordered lifetime/type arguments and associated
// type bindings attached to one path segment.
type PathParams struct {
	Lifetimes []string
	Types     []*TypeRef
	// AssocBindings are `Name = Type` associated-type equality
	// constraints written inside a path's angle brackets.
	AssocBindings []AssocBinding
}

// AssocBinding is one `Name = Type` entry in PathParams.
type AssocBinding struct {
	Name string
	Type *TypeRef
}

// PathNode is one segment of a multi-component path.
type PathNode struct {
	Name   string
	Params PathParams
	Span   token.Span
}

// Path is the closed sum type from spec.md §3.
type Path struct {
	Kind Kind
	Span token.Span

	// Local payload.
	LocalName string

	// Relative/Self/Super/Absolute payload.
	Nodes []PathNode

	// Super payload.
	SuperCount int

	// Absolute payload.
	CrateName string

	// UFCS payload: <Type as Trait>::nodes or <Type>::nodes.
	UFCSType  *TypeRef
	UFCSTrait *Path // nil for the inherent (no "as Trait") form

	Binding Binding
}

// Kind re-exports PathKind under the name callers most naturally reach
// for (ast.Path{}.Kind is a PathKind); kept distinct from token.Kind.
type Kind = PathKind

// IsInvalid reports whether this path is the parser's placeholder,
// which must never reach lowering (spec.md invariants).
func (p *Path) IsInvalid() bool { return p.Kind == PathInvalid }

// LastNode returns the final path segment for Relative/Self/Super/
// Absolute/UFCS-with-nodes paths, or nil for Local/Invalid.
func (p *Path) LastNode() *PathNode {
	if len(p.Nodes) == 0 {
		return nil
	}
	return &p.Nodes[len(p.Nodes)-1]
}
