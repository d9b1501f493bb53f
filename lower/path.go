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

// resolved is what path resolution against the symtab produces: either
// a local variable slot, or an item (optionally with one trailing
// "Type::item" style member name that the item-lookup couldn't descend
// through, e.g. the "n" of `S::n`).
type resolved struct {
	isLocal  bool
	slot     int
	localName string

	sym      *itemSym
	memberOf *itemSym // set when member != ""; the type/trait the member belongs to
	member   string
}

// resolvePath resolves every non-UFCS, non-Invalid ast.Path shape
// against the local scope stack and the crate symtab (spec.md §4.4
// step 2: only Absolute survives as a legitimate lowering input in the
// reference grammar; Local/Relative/Self/Super are additionally
// resolved here per this module's folded-in resolver, see
// package-level doc comment).
func (c *ctx) resolvePath(sc *scope, p *ast.Path) resolved {
	switch p.Kind {
	case ast.PathLocal:
		if slot, ok := c.lookupLocal(p.LocalName); ok {
			return resolved{isLocal: true, slot: slot, localName: p.LocalName}
		}
		if sym, ok := lookupLexical(sc, p.LocalName); ok {
			return resolved{sym: sym}
		}
		c.bug(p.Span, "unbound path %q reached lowering", p.LocalName)
		return resolved{}

	case ast.PathSelf:
		return c.resolveFromScope(sc, p.Nodes, p)

	case ast.PathSuper:
		target := sc
		for i := 0; i < p.SuperCount && target.parent != nil; i++ {
			target = target.parent
		}
		return c.resolveFromScope(target, p.Nodes, p)

	case ast.PathRelative:
		return c.resolveFromScope(sc, p.Nodes, p)

	case ast.PathAbsolute:
		if p.CrateName != "" {
			c.bug(p.Span, "external crate path %q: external crate loading is out of scope", p.CrateName)
			return resolved{}
		}
		return c.resolveFromScope(c.rootScope(sc), p.Nodes, p)
	}
	c.bug(p.Span, "invalid path reached lowering")
	return resolved{}
}

func (c *ctx) rootScope(sc *scope) *scope {
	s := sc
	for s.parent != nil {
		s = s.parent
	}
	return s
}

// resolveFromScope walks nodes against sc, descending through Module
// symbols and stopping at the first non-module item; any single
// trailing node becomes a "Type::item" member reference (spec.md's
// `S::n()` UFCS-inherent and `E::B` enum-variant forms). More than one
// trailing node is a depth this lexical resolver does not support.
func (c *ctx) resolveFromScope(sc *scope, nodes []ast.PathNode, p *ast.Path) resolved {
	if len(nodes) == 0 {
		c.bug(p.Span, "empty path")
		return resolved{}
	}
	cur := sc
	i := 0
	for i < len(nodes) {
		name := nodes[i].Name
		sym, ok := lookupLexical(cur, name)
		if !ok {
			c.bug(p.Span, "unbound path segment %q", name)
			return resolved{}
		}
		if sym.kind == ast.BindModule && i < len(nodes)-1 {
			cur = sym.sub
			i++
			continue
		}
		if i == len(nodes)-1 {
			return resolved{sym: sym}
		}
		if i == len(nodes)-2 {
			return resolved{memberOf: sym, member: normalizeIdent(nodes[i+1].Name)}
		}
		c.bug(p.Span, "unsupported path depth past %q", name)
		return resolved{}
	}
	c.bug(p.Span, "unreachable path resolution")
	return resolved{}
}

// lowerGenericPathTo builds an hir.GenericPath for path, attaching the
// final node's type-argument list.
func lowerGenericPathTo(path hir.SimplePath, last ast.PathNode, c *ctx, sc *scope) hir.GenericPath {
	var types []*hir.TypeRef
	for _, t := range last.Params.Types {
		types = append(types, c.lowerType(t, sc))
	}
	return hir.GenericPath{Path: path, Params: hir.PathParams{Types: types}}
}

// variantPath appends an enum variant's name onto its enum's SimplePath,
// the path form a TupleVariantExpr/UnitVariantExpr/enum-struct-literal
// needs to name "E::Variant" since those nodes carry no separate
// variant-index field the way hir.Pattern's EnumVariantIdx does.
func variantPath(enum hir.SimplePath, variant string) hir.SimplePath {
	return hir.SimplePath{Crate: enum.Crate, Components: append(append([]string(nil), enum.Components...), variant)}
}

func lastNode(p *ast.Path) ast.PathNode {
	if n := p.LastNode(); n != nil {
		return *n
	}
	return ast.PathNode{}
}

// lowerTypePath lowers a Path appearing in type position (TyPath).
// Type parameters (ast.BindTypeParameter) were already special-cased by
// the caller (lowerType); everything reaching here must resolve to a
// Struct/Enum/Trait/TypeAlias item, a bare UFCS type, or a bug.
func (c *ctx) lowerTypePath(p *ast.Path, sc *scope) *hir.Path {
	if p.Kind == ast.PathUFCS {
		return c.lowerUFCSPath(p, sc)
	}
	r := c.resolvePath(sc, p)
	if r.sym == nil {
		c.bug(p.Span, "type path did not resolve to an item")
		return nil
	}
	gp := lowerGenericPathTo(r.sym.path, lastNode(p), c, sc)
	return &hir.Path{Kind: hir.PathGeneric, Generic: gp}
}

// lowerUFCSPath lowers `<Type as Trait>::item` / `<Type>::item`.
func (c *ctx) lowerUFCSPath(p *ast.Path, sc *scope) *hir.Path {
	ty := c.lowerType(p.UFCSType, sc)
	item := ""
	if n := p.LastNode(); n != nil {
		item = n.Name
	}
	if p.UFCSTrait != nil {
		trResolved := c.resolvePath(sc, p.UFCSTrait)
		if trResolved.sym == nil {
			c.bug(p.Span, "UFCS trait did not resolve")
			return nil
		}
		gp := lowerGenericPathTo(trResolved.sym.path, lastNode(p.UFCSTrait), c, sc)
		return &hir.Path{Kind: hir.PathUfcsKnown, UfcsType: ty, UfcsTrait: &gp, Item: item}
	}
	return &hir.Path{Kind: hir.PathUfcsInherent, UfcsType: ty, Item: item}
}
