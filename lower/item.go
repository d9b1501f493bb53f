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
	"github.com/latticelang/frontc/token"
)

// selfGenericIndex is the sentinel GenericIndex a trait's implicit
// `Self` type parameter lowers to (spec.md invariant "GenericParams.m_bounds
// for a trait always starts with Self: ThisTrait"); it is never a valid
// index into GenericParams.TypeParamNames, which starts numbering
// ordinary parameters at 0.
const selfGenericIndex = -1

// lowerGenerics lowers an ast.Generics block and returns both the HIR
// form and a genericScope a caller should install as c.generics before
// lowering anything (bounds, defaults, body) that can reference these
// parameters by name.
func (c *ctx) lowerGenerics(g *ast.Generics, sc *scope, parent *genericScope) (hir.GenericParams, *genericScope) {
	gp := hir.GenericParams{LifetimeCount: len(g.Lifetimes)}
	names := map[string]int{}
	for i, tp := range g.TypeParams {
		gp.TypeParamNames = append(gp.TypeParamNames, tp.Name)
		names[tp.Name] = i
	}
	gs := &genericScope{names: names, parent: parent}

	saved := c.generics
	c.generics = gs
	defer func() { c.generics = saved }()

	gp.Defaults = make([]*hir.TypeRef, len(g.TypeParams))
	for i, tp := range g.TypeParams {
		if tp.Default != nil {
			gp.Defaults[i] = c.lowerType(tp.Default, sc)
		}
		target := &hir.TypeRef{Kind: hir.TyGeneric, GenericName: tp.Name, GenericIndex: i}
		gp.Bounds = append(gp.Bounds, c.lowerBoundSet(target, tp.Bounds, sc)...)
	}
	for _, w := range g.Where {
		gp.Bounds = append(gp.Bounds, c.lowerWhereEntry(w, sc)...)
	}
	return gp, gs
}

func (c *ctx) lowerBoundSet(target *hir.TypeRef, bs ast.LifetimeBoundSet, sc *scope) []hir.GenericBound {
	var out []hir.GenericBound
	for _, lt := range bs.Lifetimes {
		out = append(out, hir.GenericBound{Kind: hir.BoundLifetime, Lifetime: lt})
	}
	for _, tr := range bs.Traits {
		tp := c.traitPathFromAstPath(tr, sc)
		out = append(out, hir.GenericBound{Kind: hir.BoundTrait, Target: target, Trait: tp})
	}
	for _, mt := range bs.MaybeTraits {
		out = append(out, hir.GenericBound{Kind: hir.BoundMaybeTrait, MaybeTraitName: mt})
	}
	return out
}

func (c *ctx) lowerWhereEntry(w ast.WhereClauseEntry, sc *scope) []hir.GenericBound {
	switch w.Kind {
	case ast.WhereLifetime:
		return []hir.GenericBound{{Kind: hir.BoundLifetime, Lifetime: w.Lifetime, OuterLifetime: w.OuterLifetime}}
	case ast.WhereType, ast.WhereHRL:
		target := c.lowerType(w.HRL.Target, sc)
		out := c.lowerBoundSet(target, w.HRL.Bounds, sc)
		if w.Kind == ast.WhereHRL {
			for i := range out {
				if out[i].Trait != nil {
					out[i].Trait.HRLs = append(append([]string(nil), w.HRL.HRLs...), out[i].Trait.HRLs...)
				}
			}
		}
		return out
	case ast.WhereEquality:
		return []hir.GenericBound{{Kind: hir.BoundTypeEquality, EqLeft: c.lowerType(w.EqLeft, sc), EqRight: c.lowerType(w.EqRight, sc)}}
	}
	return nil
}

// traitPathFromAstPath resolves an ast.Path known to name a trait into
// an hir.TraitPath, registering it with the index-fixup pass the way
// lowerTraitObject does for `dyn` lists.
func (c *ctx) traitPathFromAstPath(p *ast.Path, sc *scope) *hir.TraitPath {
	r := c.resolvePath(sc, p)
	if r.sym == nil {
		c.bug(p.Span, "trait bound did not resolve to a trait")
		return &hir.TraitPath{}
	}
	gp := lowerGenericPathTo(r.sym.path, lastNode(p), c, sc)
	tp := &hir.TraitPath{Generic: gp}
	c.pending = append(c.pending, tp)
	return tp
}

func patternDisplayName(p *ast.Pattern) string {
	if p != nil && p.Binding.Present {
		return p.Binding.Name
	}
	if p != nil && p.Kind == ast.PatMaybeBind {
		return p.MaybeBindName
	}
	return "_"
}

// typeParamIndexOf adapts a lowered GenericParams back into the
// name->index map lowerType's generic-scope lookup needs.
func typeParamIndexOf(gp hir.GenericParams) map[string]int {
	m := map[string]int{}
	for i, n := range gp.TypeParamNames {
		m[n] = i
	}
	return m
}

// lowerFunction lowers a free function, inherent method, or trait
// method (default or declaration-only) per spec.md §4.4 step 6's
// "Functions" handling, including the self:T generalisation
// (SPEC_FULL.md supplemented feature) that folds SelfTyped into the
// same HasSelf/SelfByRef/SelfMut flags an ordinary receiver produces.
func (c *ctx) lowerFunction(fn *ast.Function, sc *scope, parentGS *genericScope) *hir.Function {
	gp, _ := c.lowerGenerics(&fn.Generics, sc, parentGS)
	saved := c.generics
	c.generics = &genericScope{names: typeParamIndexOf(gp), parent: parentGS}
	defer func() { c.generics = saved }()

	out := &hir.Function{
		Public: fn.Public, Unsafe: fn.Unsafe, Const: fn.Const, ABI: fn.ABI,
		Name: fn.Name, Generics: gp, Variadic: fn.Variadic, Span: fn.Span,
	}
	if fn.Self != nil {
		out.HasSelf = true
		switch fn.Self.Kind {
		case ast.SelfByValue:
		case ast.SelfByRef, ast.SelfByRefLifetime:
			out.SelfByRef = true
		case ast.SelfByRefMut:
			out.SelfByRef = true
			out.SelfMut = true
		case ast.SelfTyped:
			// `self: T` / `self: Box<Self>` sugar: by-value semantics at
			// the HIR flag level; the annotated receiver type itself is
			// not separately representable on hir.Function and is
			// dropped here, matching this HIR's thin self-representation.
		}
	}

	c.pushScope()
	if out.HasSelf {
		c.bind("self")
	}
	for _, p := range fn.Params {
		c.lowerPattern(p.Pattern, sc)
		out.ParamNames = append(out.ParamNames, patternDisplayName(p.Pattern))
		out.Params = append(out.Params, c.lowerType(p.Type, sc))
	}
	switch {
	case fn.Diverges:
		out.ReturnType = &hir.TypeRef{Kind: hir.TyDiverge, Span: fn.Span}
	case fn.ReturnType == nil:
		out.ReturnType = &hir.TypeRef{Kind: hir.TyTuple, Span: fn.Span}
	default:
		out.ReturnType = c.lowerType(fn.ReturnType, sc)
	}
	if fn.Body != nil {
		out.Body = c.lowerBlock(fn.Body, sc)
	}
	c.popScope()
	return out
}

func lowerField(f ast.Field, c *ctx, sc *scope) hir.StructField {
	return hir.StructField{Public: f.Public, Name: f.Name, Type: c.lowerType(f.Type, sc), Span: f.Span}
}

func lowerRepr(r ast.Representation) hir.Representation { return hir.Representation(r) }

func (c *ctx) lowerStruct(s *ast.Struct, path hir.SimplePath, sc *scope) *hir.Struct {
	gp, gs := c.lowerGenerics(&s.Generics, sc, nil)
	saved := c.generics
	c.generics = gs
	defer func() { c.generics = saved }()
	out := &hir.Struct{Public: s.Public, Name: s.Name, Path: path, Generics: gp, Repr: lowerRepr(s.Repr), Span: s.Span}
	switch s.Kind {
	case ast.StructUnit:
		out.Kind = hir.StructUnit
	case ast.StructTupleKind:
		out.Kind = hir.StructTupleKind
		for _, f := range s.Tuple {
			out.Fields = append(out.Fields, lowerField(f, c, sc))
		}
	case ast.StructNamed:
		out.Kind = hir.StructNamed
		for _, f := range s.Named {
			out.Fields = append(out.Fields, lowerField(f, c, sc))
		}
	}
	return out
}

func (c *ctx) lowerEnum(e *ast.Enum, path hir.SimplePath, sc *scope) *hir.Enum {
	gp, gs := c.lowerGenerics(&e.Generics, sc, nil)
	saved := c.generics
	c.generics = gs
	defer func() { c.generics = saved }()
	out := &hir.Enum{Public: e.Public, Name: e.Name, Path: path, Generics: gp, Repr: lowerRepr(e.Repr), Span: e.Span}
	for _, v := range e.Variants {
		hv := hir.EnumVariant{Name: v.Name, Span: v.Span}
		switch v.Kind {
		case ast.VariantUnit:
			hv.Kind = hir.VariantUnit
		case ast.VariantValue:
			hv.Kind = hir.VariantValue
			hv.Value = c.lowerExpr(v.Value, sc)
		case ast.VariantTuple:
			hv.Kind = hir.VariantTuple
			for _, f := range v.Tuple {
				hv.Fields = append(hv.Fields, lowerField(f, c, sc))
			}
		case ast.VariantStruct:
			hv.Kind = hir.VariantStruct
			for _, f := range v.Fields {
				hv.Fields = append(hv.Fields, lowerField(f, c, sc))
			}
		}
		out.Variants = append(out.Variants, hv)
	}
	return out
}

// lowerTrait lowers a trait item, materializing the implicit
// `Self: ThisTrait` bound spec.md requires and detecting the
// zero-members marker-trait case (GLOSSARY "Marker trait").
func (c *ctx) lowerTrait(t *ast.Trait, path hir.SimplePath, sc *scope) *hir.Trait {
	gp, gs := c.lowerGenerics(&t.Generics, sc, nil)
	self := &hir.TraitPath{Generic: hir.GenericPath{Path: path}}
	c.pending = append(c.pending, self)
	gp.Bounds = append([]hir.GenericBound{{
		Kind:   hir.BoundTrait,
		Target: &hir.TypeRef{Kind: hir.TyGeneric, GenericName: "Self", GenericIndex: selfGenericIndex},
		Trait:  self,
	}}, gp.Bounds...)

	out := &hir.Trait{
		Public: t.Public, Unsafe: t.Unsafe, Name: t.Name, Path: path, Generics: gp,
		SelfLife: t.SelfLife, Types: map[string]*hir.AssociatedType{}, Values: map[string]*hir.TraitValue{}, Span: t.Span,
	}
	for _, st := range t.Supertraits {
		out.Supertraits = append(out.Supertraits, c.traitPathFromAstPath(st, sc))
	}

	saved := c.generics
	c.generics = gs
	for _, m := range t.Members {
		switch {
		case m.Type != nil:
			at := &hir.AssociatedType{Name: m.Type.Name, Span: m.Type.Span}
			at.Bounds = c.lowerBoundSet(&hir.TypeRef{Kind: hir.TyGeneric, GenericName: m.Type.Name}, m.Type.Bounds, sc)
			if m.Type.Default != nil {
				at.Default = c.lowerType(m.Type.Default, sc)
			}
			out.Types[m.Type.Name] = at
		case m.Const != nil:
			if m.Const.Static {
				st := &hir.Static{Public: true, Name: m.Const.Name, Type: c.lowerType(m.Const.Type, sc), Span: m.Const.Span}
				if m.Const.Value != nil {
					st.Value = c.lowerExpr(m.Const.Value, sc)
				}
				out.Values[m.Const.Name] = &hir.TraitValue{Kind: hir.TraitValueStatic, Static: st}
			} else {
				ct := &hir.Constant{Public: true, Name: m.Const.Name, Type: c.lowerType(m.Const.Type, sc), Span: m.Const.Span}
				if m.Const.Value != nil {
					ct.Value = c.lowerExpr(m.Const.Value, sc)
				}
				out.Values[m.Const.Name] = &hir.TraitValue{Kind: hir.TraitValueConstant, Constant: ct}
			}
		case m.Function != nil:
			fn := c.lowerFunction(m.Function, sc, gs)
			out.Values[m.Function.Name] = &hir.TraitValue{Kind: hir.TraitValueFunction, Function: fn}
		}
	}
	c.generics = saved

	out.IsMarker = len(out.Types) == 0 && len(out.Values) == 0
	c.traitRegistry[path.String()] = out
	return out
}

func (c *ctx) lowerTypeAliasItem(ta *ast.TypeAliasItem, sc *scope) *hir.TypeAlias {
	gp, gs := c.lowerGenerics(&ta.Generics, sc, nil)
	saved := c.generics
	c.generics = gs
	defer func() { c.generics = saved }()
	return &hir.TypeAlias{Public: ta.Public, Name: ta.Name, Generics: gp, Type: c.lowerType(ta.Type, sc), Span: ta.Span}
}

func (c *ctx) lowerConstItem(ci *ast.ConstItem, sc *scope) (isStatic bool, cst *hir.Constant, st *hir.Static) {
	ty := c.lowerType(ci.Type, sc)
	var val hir.ExprNode
	if ci.Value != nil {
		val = c.lowerExpr(ci.Value, sc)
	}
	if ci.Static {
		return true, nil, &hir.Static{Public: ci.Public, Mutable: ci.Mutable, Name: ci.Name, Type: ty, Value: val, Span: ci.Span}
	}
	return false, &hir.Constant{Public: ci.Public, Name: ci.Name, Type: ty, Value: val, Span: ci.Span}, nil
}

func isValueKind(k ast.BindingKind) bool {
	switch k {
	case ast.BindFunction, ast.BindStatic:
		return true
	}
	return false
}

// lowerUseTree lowers one `use` declaration leaf/glob/group into
// Import entries in whichever namespace its target resolves to. A
// group's prefix is prepended to each of its entries (`use a::{b, c::d}`
// binds `a::b` and `a::c::d`); an entry with no path of its own, such as
// a bare `*`, logs a bug.
func (c *ctx) lowerUseTree(t ast.UseTree, sc *scope, out *hir.Module) {
	switch t.Kind {
	case ast.UseLeaf:
		r := c.resolvePath(sc, t.Path)
		if r.sym == nil {
			c.bug(t.Span, "use path did not resolve")
			return
		}
		name := t.Alias
		if name == "" {
			name = lastNode(t.Path).Name
		}
		imp := &hir.Import{Target: r.sym.path}
		if isValueKind(r.sym.kind) {
			out.Values[name] = &hir.ValueItem{Kind: hir.ValueImport, Import: imp}
		} else {
			out.Types[name] = &hir.TypeItem{Kind: hir.TypeImport, Import: imp}
		}
	case ast.UseGlob:
		r := c.resolvePath(sc, t.Path)
		if r.sym == nil || r.sym.kind != ast.BindModule {
			c.bug(t.Span, "glob use did not resolve to a module")
			return
		}
		for name, sym := range r.sym.sub.items {
			imp := &hir.Import{Target: sym.path, Glob: true}
			if isValueKind(sym.kind) {
				out.Values[name] = &hir.ValueItem{Kind: hir.ValueImport, Import: imp}
			} else {
				out.Types[name] = &hir.TypeItem{Kind: hir.TypeImport, Import: imp}
			}
		}
	case ast.UseGroup:
		for _, sub := range t.Group {
			if len(sub.Path.Nodes) == 0 && sub.Path.Kind != ast.PathLocal {
				c.bug(t.Span, "use-group entry without a self-contained path is not supported")
				continue
			}
			if len(t.Path.Nodes) > 0 {
				nodes := append([]ast.PathNode{}, t.Path.Nodes...)
				if sub.Path.Kind == ast.PathLocal {
					nodes = append(nodes, ast.PathNode{Name: sub.Path.LocalName})
				} else {
					nodes = append(nodes, sub.Path.Nodes...)
				}
				sub.Path = &ast.Path{Kind: t.Path.Kind, Nodes: nodes, SuperCount: t.Path.SuperCount, CrateName: t.Path.CrateName, Span: sub.Path.Span}
			}
			c.lowerUseTree(sub, sc, out)
		}
	}
}

// lowerModuleInto lowers every item of m into out, recursing into
// nested inline modules. sc is m's matching symtab scope (built ahead
// of time by buildSymtab, so every path inside m already resolves).
// inherited is the trait list visible from enclosing scopes, unioned
// into this module's own trait list per spec.md §4.4 step 5.
func (c *ctx) lowerModuleInto(out *hir.Module, m *ast.Module, sc *scope, inherited []hir.SimplePath) {
	c.moduleIndex[sc.path.String()] = out
	own := append([]hir.SimplePath(nil), inherited...)

	for i := range m.Items {
		it := &m.Items[i]
		switch {
		case it.Const != nil:
			isStatic, cst, st := c.lowerConstItem(it.Const, sc)
			if isStatic {
				out.Values[it.Const.Name] = &hir.ValueItem{Public: it.Const.Public, Kind: hir.ValueStatic, Static: st}
			} else {
				out.Values[it.Const.Name] = &hir.ValueItem{Public: it.Const.Public, Kind: hir.ValueConstant, Constant: cst}
			}

		case it.Function != nil:
			fn := c.lowerFunction(it.Function, sc, nil)
			out.Values[it.Function.Name] = &hir.ValueItem{Public: it.Function.Public, Kind: hir.ValueFunction, Function: fn}

		case it.TypeAlias != nil:
			out.Types[it.TypeAlias.Name] = &hir.TypeItem{Public: it.TypeAlias.Public, Kind: hir.TypeTypeAlias, TypeAlias: c.lowerTypeAliasItem(it.TypeAlias, sc)}

		case it.Struct != nil:
			st := c.lowerStruct(it.Struct, child(sc.path, it.Struct.Name), sc)
			out.Types[it.Struct.Name] = &hir.TypeItem{Public: it.Struct.Public, Kind: hir.TypeStruct, Struct: st}
			switch st.Kind {
			case hir.StructUnit:
				out.Values[it.Struct.Name] = &hir.ValueItem{Public: it.Struct.Public, Kind: hir.ValueStructConstant, StructConstant: st}
			case hir.StructTupleKind:
				out.Values[it.Struct.Name] = &hir.ValueItem{
					Public: it.Struct.Public, Kind: hir.ValueStructConstructor,
					StructConstructor: &hir.StructConstructor{Public: it.Struct.Public, Struct: st, Span: st.Span},
				}
			}

		case it.Enum != nil:
			out.Types[it.Enum.Name] = &hir.TypeItem{Public: it.Enum.Public, Kind: hir.TypeEnum, Enum: c.lowerEnum(it.Enum, child(sc.path, it.Enum.Name), sc)}

		case it.Trait != nil:
			tr := c.lowerTrait(it.Trait, child(sc.path, it.Trait.Name), sc)
			out.Types[it.Trait.Name] = &hir.TypeItem{Public: it.Trait.Public, Kind: hir.TypeTrait, Trait: tr}
			own = append(own, tr.Path)

		case it.ExternBlock != nil:
			for fi := range it.ExternBlock.Fns {
				fn := &it.ExternBlock.Fns[fi]
				if fn.ABI == "" {
					fn.ABI = it.ExternBlock.ABI
				}
				lowered := c.lowerFunction(fn, sc, nil)
				out.Values[fn.Name] = &hir.ValueItem{Public: fn.Public, Kind: hir.ValueFunction, Function: lowered}
			}

		case it.Mod != nil:
			childOut := hir.NewModule(child(sc.path, it.Mod.Name))
			out.Types[it.Mod.Name] = &hir.TypeItem{Public: it.Mod.Public, Kind: hir.TypeModule, Module: childOut}
			if it.Mod.Inline != nil {
				childSym := sc.items[it.Mod.Name]
				c.lowerModuleInto(childOut, it.Mod.Inline, childSym.sub, own)
			}

		case it.Use != nil:
			c.lowerUseTree(it.Use.Tree, sc, out)

		case it.Impl != nil, it.ExternCrate != nil, it.MacroInvoke != nil:
			// Impl blocks are lowered in a second crate-wide pass
			// (lowerImplsInModule) so every type/trait item is already
			// registered; extern crate loading and unexpanded
			// macro-invocation items are out of scope (spec.md §1
			// Non-goals).
		}
	}

	out.SetTraits(own)
}

// lowerImplsInModule walks the same module tree a second time, now
// that every type/trait item is registered, lowering every `impl`
// block into the crate's TypeImpls/TraitImpls/MarkerImpls indexes
// (spec.md §4.4 step 6).
func (c *ctx) lowerImplsInModule(m *ast.Module, sc *scope) {
	for i := range m.Items {
		it := &m.Items[i]
		switch {
		case it.Impl != nil:
			c.lowerImpl(it.Impl, sc)
		case it.Mod != nil && it.Mod.Inline != nil:
			c.lowerImplsInModule(it.Mod.Inline, sc.items[it.Mod.Name].sub)
		}
	}
}

func (c *ctx) lowerImpl(imp *ast.Impl, sc *scope) {
	gp, gs := c.lowerGenerics(&imp.Generics, sc, nil)
	saved := c.generics
	c.generics = gs
	defer func() { c.generics = saved }()

	implType := c.lowerType(imp.SelfType, sc)
	modPath := sc.path

	if imp.Trait == nil {
		ti := &hir.TypeImpl{Generics: gp, Implementor: implType, Methods: map[string]*hir.ImplMethod{}, Module: modPath, Span: imp.Span}
		for _, m := range imp.Members {
			if m.Function != nil {
				fn := c.lowerFunction(m.Function, sc, gs)
				ti.Methods[m.Function.Name] = &hir.ImplMethod{Public: m.Public, Specialisable: m.Specialisable, Function: fn}
			}
		}
		c.crate.TypeImpls = append(c.crate.TypeImpls, ti)
		return
	}

	trResolved := c.resolvePath(sc, imp.Trait)
	if trResolved.sym == nil {
		c.bug(imp.Trait.Span, "impl target trait did not resolve")
		return
	}
	traitPath := trResolved.sym.path
	isMarkerTrait := c.markerTraits[traitPath.String()]
	var traitArgs hir.PathParams
	for _, t := range lastNode(imp.Trait).Params.Types {
		traitArgs.Types = append(traitArgs.Types, c.lowerType(t, sc))
	}

	if len(imp.Members) == 0 && (isMarkerTrait || imp.Negative) {
		mi := &hir.MarkerImpl{Generics: gp, TraitArgs: traitArgs, Trait: traitPath, Positive: !imp.Negative, Implementor: implType, Module: modPath, Span: imp.Span}
		c.crate.AddMarkerImpl(traitPath, mi)
		return
	}

	ti := &hir.TraitImpl{
		Generics: gp, TraitArgs: traitArgs, Trait: traitPath, Implementor: implType,
		Methods: map[string]*hir.ImplMethod{}, Constants: map[string]*hir.ImplConstant{}, Types: map[string]*hir.ImplAssocType{},
		Module: modPath, Span: imp.Span,
	}
	for _, m := range imp.Members {
		switch {
		case m.Function != nil:
			fn := c.lowerFunction(m.Function, sc, gs)
			ti.Methods[m.Function.Name] = &hir.ImplMethod{Public: m.Public, Specialisable: m.Specialisable, Function: fn}
		case m.Const != nil:
			ct := &hir.Constant{Public: true, Name: m.Const.Name, Type: c.lowerType(m.Const.Type, sc), Span: m.Const.Span}
			if m.Const.Value != nil {
				ct.Value = c.lowerExpr(m.Const.Value, sc)
			}
			ti.Constants[m.Const.Name] = &hir.ImplConstant{Specialisable: m.Specialisable, Constant: ct}
		case m.Type != nil:
			var def *hir.TypeRef
			if m.Type.Default != nil {
				def = c.lowerType(m.Type.Default, sc)
			}
			ti.Types[m.Type.Name] = &hir.ImplAssocType{Specialisable: m.Specialisable, Type: def}
		}
	}
	c.crate.AddTraitImpl(traitPath, ti)
}

// fixupIndex resolves every TraitPath accumulated during lowering
// against the now-complete trait registry (spec.md §4.4 step 7): the
// last step of Lower, run once every trait in the crate has been
// placed.
func (c *ctx) fixupIndex() {
	for _, tp := range c.pending {
		key := tp.Generic.Path.String()
		tr, ok := c.traitRegistry[key]
		if !ok {
			c.sink.Bug(token.Pos{}, "trait path %s never resolved to a registered trait", key)
			return
		}
		tp.ResolvedTrait = tr
	}
}

// hoistBlockItem lowers an item declared inside a function body into a
// synthetic `#N` sub-module of the enclosing module (spec.md §4.4 step
// 5); the block itself is left with no trace of the declaration.
func (c *ctx) hoistBlockItem(item ast.Item, sc *scope) {
	name := c.nextAnonName(sc.path.String())
	anonPath := child(sc.path, name)
	synthetic := &ast.Module{Items: []ast.Item{item}}
	anonScope := newScope(anonPath, sc)
	populateScope(anonScope, synthetic)
	sc.items[name] = &itemSym{kind: ast.BindModule, path: anonPath, sub: anonScope}

	out := hir.NewModule(anonPath)
	c.lowerModuleInto(out, synthetic, anonScope, nil)
	if parentMod := c.moduleIndex[sc.path.String()]; parentMod != nil {
		parentMod.Types[name] = &hir.TypeItem{Kind: hir.TypeModule, Module: out}
	}
}
