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

// genericScope maps a generic type parameter's surface name to its
// lowered (name, index) pair, consulted by lowerType so a bare
// identifier matching a type parameter becomes hir.TyGeneric instead of
// a symtab lookup (spec.md §4.4 step 1 "Path: if resolved to a local
// TypeParameter, emit Generic(name, index)").
type genericScope struct {
	names  map[string]int
	parent *genericScope
}

func (g *genericScope) lookup(name string) (int, bool) {
	for s := g; s != nil; s = s.parent {
		if idx, ok := s.names[name]; ok {
			return idx, true
		}
	}
	return 0, false
}

// lowerType lowers an ast.TypeRef to its hir.TypeRef mirror (spec.md
// §4.4 step 1). sc resolves any embedded path; the generic scope
// consulted for bare-identifier type parameters is threaded through
// ctx.generics (see item.go), read here via c.generics.
func (c *ctx) lowerType(t *ast.TypeRef, sc *scope) *hir.TypeRef {
	if t == nil {
		return &hir.TypeRef{Kind: hir.TyTuple}
	}
	switch t.Kind {
	case ast.TyNone:
		return &hir.TypeRef{Kind: hir.TyDiverge, Span: t.Span}
	case ast.TyAny:
		idx := c.nextInfer
		c.nextInfer++
		return &hir.TypeRef{Kind: hir.TyInfer, InferIndex: idx, Span: t.Span}
	case ast.TyUnit:
		return &hir.TypeRef{Kind: hir.TyTuple, Span: t.Span}
	case ast.TyMacro:
		c.bug(t.Span, "macro type survived to lowering")
		return nil
	case ast.TyPrimitive:
		return &hir.TypeRef{Kind: hir.TyPrimitive, Primitive: t.Primitive, Span: t.Span}
	case ast.TyTuple:
		inners := make([]*hir.TypeRef, len(t.Inners))
		for i, it := range t.Inners {
			inners[i] = c.lowerType(it, sc)
		}
		return &hir.TypeRef{Kind: hir.TyTuple, Inners: inners, Span: t.Span}
	case ast.TyBorrow:
		return &hir.TypeRef{Kind: hir.TyBorrow, Mutable: t.Mutable, Inner: c.lowerType(t.Inner, sc), Span: t.Span}
	case ast.TyPointer:
		return &hir.TypeRef{Kind: hir.TyPointer, Mutable: t.Mutable, Inner: c.lowerType(t.Inner, sc), Span: t.Span}
	case ast.TyArray:
		inner := c.lowerType(t.Inner, sc)
		if t.Size == nil {
			return &hir.TypeRef{Kind: hir.TySlice, Inner: inner, Span: t.Span}
		}
		return &hir.TypeRef{Kind: hir.TyArray, Inner: inner, Size: c.lowerExpr(t.Size, sc), Span: t.Span}
	case ast.TyPath:
		if t.Path.Kind == ast.PathLocal {
			if idx, ok := c.generics.lookup(t.Path.LocalName); ok {
				return &hir.TypeRef{Kind: hir.TyGeneric, GenericName: t.Path.LocalName, GenericIndex: idx, Span: t.Span}
			}
		}
		return &hir.TypeRef{Kind: hir.TyPath, Path: c.lowerTypePath(t.Path, sc), Span: t.Span}
	case ast.TyTraitObject:
		return c.lowerTraitObject(t, sc)
	case ast.TyFunction:
		return c.lowerFunctionType(t, sc)
	case ast.TyGeneric:
		return &hir.TypeRef{Kind: hir.TyGeneric, GenericName: t.GenericName, GenericIndex: t.GenericIndex, Span: t.Span}
	}
	c.bug(t.Span, "unknown AST TypeRef kind %d", t.Kind)
	return nil
}

// lowerTraitObject splits a surface `dyn A + B + 'a` list into one
// data trait plus marker traits (spec.md §4.4 step 1 "TraitObject":
// "more than one data trait is a hard error").
func (c *ctx) lowerTraitObject(t *ast.TypeRef, sc *scope) *hir.TypeRef {
	info := &hir.TraitObjectInfo{HRLs: append([]string(nil), t.TraitObject.HRLs...)}
	for _, tr := range t.TraitObject.Traits {
		r := c.resolvePath(sc, tr)
		if r.sym == nil {
			c.bug(tr.Span, "trait-object member did not resolve to a trait")
			continue
		}
		gp := lowerGenericPathTo(r.sym.path, lastNode(tr), c, sc)
		tp := &hir.TraitPath{Generic: gp}
		c.pending = append(c.pending, tp)
		isMarker := c.markerTraits[r.sym.path.String()]
		if isMarker {
			info.Markers = append(info.Markers, tp)
			continue
		}
		if info.DataTrait != nil {
			c.sink.Error(t.Span.Start(), "E0200", "trait object has more than one data trait")
			continue
		}
		info.DataTrait = tp
	}
	return &hir.TypeRef{Kind: hir.TyTraitObject, TraitObject: info, Span: t.Span}
}

func (c *ctx) lowerFunctionType(t *ast.TypeRef, sc *scope) *hir.TypeRef {
	info := &hir.FunctionTypeInfo{ABI: t.Function.ABI, Unsafe: t.Function.Unsafe, Variadic: t.Function.Variadic}
	if info.ABI == "" {
		info.ABI = "rust"
	}
	for _, p := range t.Function.Params {
		info.Params = append(info.Params, c.lowerType(p, sc))
	}
	info.ReturnType = c.lowerType(t.Function.ReturnType, sc)
	return &hir.TypeRef{Kind: hir.TyFunction, Function: info, Span: t.Span}
}
