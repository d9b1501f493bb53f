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

import (
	"sort"

	"github.com/mpvl/unique"

	"github.com/latticelang/frontc/token"
)

// Import is a resolved `use` leaf: it names the SimplePath the import
// ultimately refers to, in whichever namespace it was declared for.
type Import struct {
	Target SimplePath
	Glob   bool
}

// ValueItemKind tags HIR.Module's value-namespace map entries (spec.md
// §3 "HIR.Module": `Import | Constant | Static | StructConstant |
// StructConstructor | Function`).
type ValueItemKind int

const (
	ValueImport ValueItemKind = iota
	ValueConstant
	ValueStatic
	ValueStructConstant
	ValueStructConstructor
	ValueFunction
)

// ValueItem is one entry of Module.Values.
type ValueItem struct {
	Public bool
	Kind   ValueItemKind

	Import            *Import
	Constant          *Constant
	Static            *Static
	StructConstant    *Struct // unit struct usable as a bare value
	StructConstructor *StructConstructor
	Function          *Function
}

// TypeItemKind tags HIR.Module's type-namespace map entries (spec.md
// §3: `Import | Module | TypeAlias | Enum | Struct | Trait`).
type TypeItemKind int

const (
	TypeImport TypeItemKind = iota
	TypeModule
	TypeTypeAlias
	TypeEnum
	TypeStruct
	TypeTrait
)

// TypeAlias is a lowered `type Name<G> = T;` item.
type TypeAlias struct {
	Public   bool
	Name     string
	Generics GenericParams
	Type     *TypeRef
	Span     token.Span
}

// TypeItem is one entry of Module.Types.
type TypeItem struct {
	Public bool
	Kind   TypeItemKind

	Import    *Import
	Module    *Module
	TypeAlias *TypeAlias
	Enum      *Enum
	Struct    *Struct
	Trait     *Trait
}

// Module is a lowered lexical module: two namespace maps plus the
// trait list every name/method lookup in this scope must consider
// (spec.md §3 "HIR.Module ... traits: ordered list<SimplePath>
// enumerating traits in lexical scope").
type Module struct {
	Path   SimplePath
	Values map[string]*ValueItem
	Types  map[string]*TypeItem
	Traits []SimplePath
}

// NewModule returns an empty module rooted at path.
func NewModule(path SimplePath) *Module {
	return &Module{
		Path:   path,
		Values: map[string]*ValueItem{},
		Types:  map[string]*TypeItem{},
	}
}

// traitPathSlice adapts []SimplePath to github.com/mpvl/unique's
// sort.Interface-plus-Truncate contract, the way cue-style call sites
// dedup a accumulated slice in place rather than building a map and
// re-flattening it (spec.md §5 "iteration order over these maps must
// be deterministic").
type traitPathSlice []SimplePath

func (s traitPathSlice) Len() int      { return len(s) }
func (s traitPathSlice) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s traitPathSlice) Less(i, j int) bool {
	return s[i].String() < s[j].String()
}

// SetTraits sorts and deduplicates the union of inherited and
// in-module-visible traits, then stores the result (spec.md §4.4 step
// 5: "Each module's trait list ... is the union of inherited traits and
// in-module-visible Trait items").
func (m *Module) SetTraits(traits []SimplePath) {
	cp := append([]SimplePath(nil), traits...)
	sort.Sort(traitPathSlice(cp))
	slice := traitPathSlice(cp)
	unique.Sort(dedupAdapter{&slice})
	m.Traits = []SimplePath(slice)
}

// dedupAdapter narrows traitPathSlice for unique.Sort, which expects a
// Truncate(i int) method in addition to sort.Interface; the slice is
// already sorted on entry, so unique.Sort only needs to compact
// adjacent equal runs and truncate the trailing garbage.
type dedupAdapter struct {
	s *traitPathSlice
}

func (d dedupAdapter) Len() int           { return d.s.Len() }
func (d dedupAdapter) Swap(i, j int)      { d.s.Swap(i, j) }
func (d dedupAdapter) Less(i, j int) bool { return d.s.Less(i, j) }
func (d dedupAdapter) Truncate(i int)     { *d.s = (*d.s)[:i] }
