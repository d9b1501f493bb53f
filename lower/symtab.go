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

package lower

import (
	"github.com/latticelang/frontc/ast"
	"github.com/latticelang/frontc/hir"
)

// symKind classifies what a symtab entry denotes, reusing
// ast.BindingKind's vocabulary so resolved paths can be tagged exactly
// the way spec.md §3's "Binding" describes.
type symKind = ast.BindingKind

// itemSym is one entry of a module scope: a function, static/const,
// struct, enum, trait, type alias, or nested module.
type itemSym struct {
	kind symKind
	path hir.SimplePath

	// Struct/Enum payload, needed to classify a later `Type::item` or
	// bare-value use as a unit/tuple/struct constructor without a
	// second AST walk.
	structKind hir.StructKind
	variants   map[string]int            // variant name -> variant index
	variantKind map[string]hir.EnumVariantKind

	sub *scope // Module payload
}

// scope is one module's symbol table: its own items plus a link to the
// enclosing scope for lexical (innermost-to-root) lookup.
type scope struct {
	path   hir.SimplePath
	items  map[string]*itemSym
	parent *scope
}

func newScope(path hir.SimplePath, parent *scope) *scope {
	return &scope{path: path, items: map[string]*itemSym{}, parent: parent}
}

// symtab is the whole crate's lexical item index, rooted at the crate
// root module.
type symtab struct {
	root *scope
}

func buildSymtab(crateName string, root *ast.Module, rootPath hir.SimplePath) *symtab {
	rs := newScope(rootPath, nil)
	populateScope(rs, root)
	return &symtab{root: rs}
}

// populateScope registers every name-introducing item of m directly
// into sc (one level; nested `mod` items get their own child scope,
// linked but not flattened).
func populateScope(sc *scope, m *ast.Module) {
	for i := range m.Items {
		it := &m.Items[i]
		switch {
		case it.Function != nil:
			name := normalizeIdent(it.Function.Name)
			sc.items[name] = &itemSym{kind: ast.BindFunction, path: child(sc.path, name)}
		case it.Const != nil:
			name := normalizeIdent(it.Const.Name)
			sc.items[name] = &itemSym{kind: ast.BindStatic, path: child(sc.path, name)}
		case it.TypeAlias != nil:
			name := normalizeIdent(it.TypeAlias.Name)
			sc.items[name] = &itemSym{kind: ast.BindTypeAlias, path: child(sc.path, name)}
		case it.Struct != nil:
			sk := hir.StructUnit
			switch it.Struct.Kind {
			case ast.StructTupleKind:
				sk = hir.StructTupleKind
			case ast.StructNamed:
				sk = hir.StructNamed
			}
			name := normalizeIdent(it.Struct.Name)
			sc.items[name] = &itemSym{kind: ast.BindStruct, path: child(sc.path, name), structKind: sk}
		case it.Enum != nil:
			variants := map[string]int{}
			variantKinds := map[string]hir.EnumVariantKind{}
			for idx, v := range it.Enum.Variants {
				vname := normalizeIdent(v.Name)
				variants[vname] = idx
				switch v.Kind {
				case ast.VariantUnit:
					variantKinds[vname] = hir.VariantUnit
				case ast.VariantValue:
					variantKinds[vname] = hir.VariantValue
				case ast.VariantTuple:
					variantKinds[vname] = hir.VariantTuple
				case ast.VariantStruct:
					variantKinds[vname] = hir.VariantStruct
				}
			}
			name := normalizeIdent(it.Enum.Name)
			sc.items[name] = &itemSym{
				kind: ast.BindEnum, path: child(sc.path, name),
				variants: variants, variantKind: variantKinds,
			}
		case it.Trait != nil:
			name := normalizeIdent(it.Trait.Name)
			sc.items[name] = &itemSym{kind: ast.BindTrait, path: child(sc.path, name)}
		case it.ExternBlock != nil:
			for _, fn := range it.ExternBlock.Fns {
				name := normalizeIdent(fn.Name)
				sc.items[name] = &itemSym{kind: ast.BindFunction, path: child(sc.path, name)}
			}
		case it.Mod != nil:
			name := normalizeIdent(it.Mod.Name)
			modPath := child(sc.path, name)
			sub := newScope(modPath, sc)
			if it.Mod.Inline != nil {
				populateScope(sub, it.Mod.Inline)
			}
			sc.items[name] = &itemSym{kind: ast.BindModule, path: modPath, sub: sub}
		}
	}
}

// collectMarkerTraits walks m recursively recording which traits have
// no members (spec.md GLOSSARY "Marker trait"), so lowering can
// classify a trait reference as a marker before the full Trait registry
// is necessarily built.
func collectMarkerTraits(path hir.SimplePath, m *ast.Module, out map[string]bool) {
	for i := range m.Items {
		it := &m.Items[i]
		switch {
		case it.Trait != nil:
			out[child(path, it.Trait.Name).String()] = len(it.Trait.Members) == 0
		case it.Mod != nil && it.Mod.Inline != nil:
			collectMarkerTraits(child(path, it.Mod.Name), it.Mod.Inline, out)
		}
	}
}

func child(p hir.SimplePath, name string) hir.SimplePath {
	out := hir.SimplePath{Crate: p.Crate, Components: append(append([]string(nil), p.Components...), name)}
	return out
}

// lookupLexical searches sc and its ancestors, innermost first, the way
// an unqualified name resolves against nested modules.
func lookupLexical(sc *scope, name string) (*itemSym, bool) {
	name = normalizeIdent(name)
	for s := sc; s != nil; s = s.parent {
		if sym, ok := s.items[name]; ok {
			return sym, true
		}
	}
	return nil, false
}
