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

// lowerPattern lowers an ast.Pattern to its hir.Pattern mirror (spec.md
// §4.4 step 3). Any local name the pattern introduces is bound into the
// current scope as a side effect, so pattern lowering must run in
// declaration order relative to the code that can observe the binding.
func (c *ctx) lowerPattern(p *ast.Pattern, sc *scope) *hir.Pattern {
	if p == nil {
		return &hir.Pattern{Kind: hir.PatAny}
	}
	out := &hir.Pattern{Span: p.Span}
	if p.Binding.Present {
		out.Binding = hir.PatternBinding{
			Present: true,
			Mutable: p.Binding.Mutable,
			Mode:    hir.BindMode(p.Binding.Mode),
			Name:    p.Binding.Name,
			Slot:    c.bind(p.Binding.Name),
		}
	}
	switch p.Kind {
	case ast.PatAny:
		out.Kind = hir.PatAny
	case ast.PatMaybeBind:
		// A MaybeBind that survives to lowering resolves here (rather
		// than earlier, per spec.md §4.4 step 3) by checking whether
		// the name matches a unit struct in scope; anything else,
		// including the name of a unit enum variant, is an ordinary
		// binding.
		if sym, ok := lookupLexical(sc, p.MaybeBindName); ok {
			if sym.kind == ast.BindStruct && sym.structKind == hir.StructUnit {
				out.Kind = hir.PatStructTupleWildcard
				out.Path = &hir.GenericPath{Path: sym.path}
				out.Exhaustive = true
				return out
			}
		}
		out.Kind = hir.PatBindingOnly
		out.Binding = hir.PatternBinding{Present: true, Name: p.MaybeBindName, Slot: c.bind(p.MaybeBindName)}
	case ast.PatMacro:
		c.bug(p.Span, "unexpanded macro pattern survived to lowering")
	case ast.PatBox:
		out.Kind = hir.PatBox
		out.Sub = c.lowerPattern(p.Sub, sc)
	case ast.PatRef:
		out.Kind = hir.PatRef
		out.RefMutable = p.RefMutable
		out.Sub = c.lowerPattern(p.Sub, sc)
	case ast.PatValue:
		if p.End != nil {
			out.Kind = hir.PatRange
			out.Start = c.lowerExpr(*p.Start, sc)
			out.End = c.lowerExpr(*p.End, sc)
		} else {
			out.Kind = hir.PatValue
			out.Start = c.lowerExpr(*p.Start, sc)
		}
	case ast.PatTuple:
		out.Kind = hir.PatTuple
		for _, sub := range p.Subs {
			out.Subs = append(out.Subs, c.lowerPattern(sub, sc))
		}
	case ast.PatSlice:
		out.Kind = hir.PatSlice
		for _, sub := range p.Leading {
			out.Leading = append(out.Leading, c.lowerPattern(sub, sc))
		}
		for _, sub := range p.Trailing {
			out.Trailing = append(out.Trailing, c.lowerPattern(sub, sc))
		}
		if p.ExtraBind != nil {
			slot := 0
			if p.ExtraBind.Present {
				slot = c.bind(p.ExtraBind.Name)
			}
			out.ExtraBind = &hir.PatternBinding{
				Present: p.ExtraBind.Present, Mutable: p.ExtraBind.Mutable,
				Mode: hir.BindMode(p.ExtraBind.Mode), Name: p.ExtraBind.Name, Slot: slot,
			}
		}
	case ast.PatWildcardStructTuple, ast.PatStructTuple, ast.PatStruct:
		c.lowerPathPattern(p, sc, out)
	default:
		c.bug(p.Span, "unknown AST Pattern kind %d", p.Kind)
	}
	return out
}

// lowerPathPattern resolves a Pattern carrying a Path (the
// WildcardStructTuple/StructTuple/Struct forms) against the symtab,
// deciding between the enum-variant and struct forms the way spec.md
// §4.4 step 3 describes.
func (c *ctx) lowerPathPattern(p *ast.Pattern, sc *scope, out *hir.Pattern) {
	r := c.resolvePath(sc, p.Path)
	var path hir.SimplePath
	var enumIdx = -1
	var variantKind hir.EnumVariantKind
	isEnum := false
	switch {
	case r.sym != nil && r.sym.kind == ast.BindStruct:
		path = r.sym.path
	case r.memberOf != nil && r.memberOf.kind == ast.BindEnum:
		path = r.memberOf.path
		isEnum = true
		enumIdx = r.memberOf.variants[r.member]
		variantKind = r.memberOf.variantKind[r.member]
	default:
		c.bug(p.Span, "pattern path did not resolve to a struct or enum variant")
		return
	}
	gp := &hir.GenericPath{Path: path}
	out.Path = gp
	out.EnumVariantIdx = enumIdx
	_ = variantKind

	switch p.Kind {
	case ast.PatWildcardStructTuple:
		out.Kind = pick(isEnum, hir.PatEnumTupleWildcard, hir.PatStructTupleWildcard)
		out.Exhaustive = true
	case ast.PatStructTuple:
		out.Kind = pick(isEnum, hir.PatEnumTuple, hir.PatStructTuple)
		for _, sub := range p.Subs {
			out.Subs = append(out.Subs, c.lowerPattern(sub, sc))
		}
	case ast.PatStruct:
		out.Kind = pick(isEnum, hir.PatEnumStruct, hir.PatStruct)
		out.Exhaustive = p.Exhaustive
		for _, f := range p.Fields {
			out.Fields = append(out.Fields, hir.StructPatternField{Name: f.Name, Pattern: c.lowerPattern(f.Pattern, sc)})
		}
	}
}

func pick(cond bool, a, b hir.PatternKind) hir.PatternKind {
	if cond {
		return a
	}
	return b
}
