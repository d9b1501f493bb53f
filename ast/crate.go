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

// Module is a lexical module: a source file's top level, or the body of
// an inline `mod name { ... }`.
type Module struct {
	Attrs []Attribute // crate/module inner attributes (`#![...]`)
	Items []Item
	Span  token.Span

	// Filename records which file this module's items came from, used
	// by the §4.3 "Sub-module loading policy" to decide whether a
	// nested `mod foo;` may load an external file.
	Filename string
	IsFileRoot bool // true for the crate root or a `mod.rs`
}

// Crate is the parser's top-level output: the whole parsed, but not yet
// expanded, program (spec.md §1 step 1's result).
type Crate struct {
	Name string
	Root *Module
}
