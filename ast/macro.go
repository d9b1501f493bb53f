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

// MetaItemKind tags the three forms §4.3 "Attributes" describes.
type MetaItemKind int

const (
	MetaName MetaItemKind = iota
	MetaList
	MetaNameValue
)

// MetaItem is `Name`, `Name(items...)`, or `Name = literal`.
type MetaItem struct {
	Kind    MetaItemKind
	Name    string
	Items   []MetaItem    // MetaList payload
	Literal *LiteralExpr  // MetaNameValue payload
	Span    token.Span
}

// Attribute is one `#[...]` or `#![...]` block, attached to the item or
// impl-body member that follows it.
type Attribute struct {
	Inner bool // true for #![...] (crate/module inner attribute)
	Item  MetaItem
	Span  token.Span
}

// MacroInvocation is `name!(tokens...)`, `name![tokens...]`, or
// `name!{tokens...}`, accepted at item, statement, pattern, or
// expression position but never expanded by this module (spec.md §1).
type MacroInvocation struct {
	Path   *Path
	Tokens token.Tree
	Span   token.Span
}
