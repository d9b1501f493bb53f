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

package parser

import (
	"bytes"
	"path/filepath"

	"github.com/latticelang/frontc/ast"
	"github.com/latticelang/frontc/scan"
	"github.com/latticelang/frontc/stream"
	"github.com/latticelang/frontc/token"
)

// isItemLead reports whether the upcoming tokens (after any attrs and
// visibility) start an item, used by block parsing to distinguish a
// local item from a statement expression.
func (p *Parser) isItemLead() bool {
	i := 0
	for p.s.Lookahead(i) == token.POUND {
		i++
		if p.s.Lookahead(i) == token.BANG {
			i++
		}
		// cheap skip of one bracket group; nested attrs are rare enough
		// that under/over-skipping here only risks a slower fallback
		// parse rather than incorrect results.
		depth := 0
		for {
			switch p.s.Lookahead(i) {
			case token.LBRACKET:
				depth++
			case token.RBRACKET:
				depth--
				i++
				if depth == 0 {
					goto doneAttr
				}
				continue
			case token.EOF:
				goto doneAttr
			}
			i++
		}
	doneAttr:
	}
	if p.s.Lookahead(i) == token.KW_PUB {
		i++
	}
	switch p.s.Lookahead(i) {
	case token.KW_USE, token.KW_EXTERN, token.KW_CONST, token.KW_STATIC,
		token.KW_FN, token.KW_TYPE, token.KW_STRUCT, token.KW_ENUM,
		token.KW_TRAIT, token.KW_IMPL, token.KW_MOD, token.KW_UNSAFE:
		return true
	case token.IDENT:
		return p.s.Lookahead(i+1) == token.BANG
	}
	return false
}

// parseItem parses one module-level item, including its leading
// attributes and visibility (§4.3 "Items").
func (p *Parser) parseItem() ast.Item {
	attrs := p.parseOuterAttrs()
	pub := p.parseVisibility() == ast.VisPublic

	switch {
	case p.at(token.KW_USE):
		return ast.Item{Use: p.parseUseItem(attrs, pub)}
	case p.at(token.KW_EXTERN) && p.s.Lookahead(1) == token.KW_CRATE:
		return ast.Item{ExternCrate: p.parseExternCrate(attrs)}
	case p.at(token.KW_EXTERN):
		return ast.Item{ExternBlock: p.parseExternBlock(attrs)}
	case p.at(token.KW_CONST) && p.s.Lookahead(1) != token.KW_FN && p.s.Lookahead(1) != token.KW_UNSAFE:
		return ast.Item{Const: p.parseConstItem(attrs, pub, false)}
	case p.at(token.KW_STATIC):
		return ast.Item{Const: p.parseConstItem(attrs, pub, true)}
	case p.at(token.KW_FN) || p.at(token.KW_UNSAFE) || (p.at(token.KW_CONST) && p.s.Lookahead(1) == token.KW_FN):
		return ast.Item{Function: p.parseFunction(attrs, pub)}
	case p.at(token.KW_TYPE):
		return ast.Item{TypeAlias: p.parseTypeAlias(attrs, pub)}
	case p.at(token.KW_STRUCT):
		return ast.Item{Struct: p.parseStruct(attrs, pub)}
	case p.at(token.KW_ENUM):
		return ast.Item{Enum: p.parseEnum(attrs, pub)}
	case p.at(token.KW_TRAIT):
		return ast.Item{Trait: p.parseTrait(attrs, pub)}
	case p.at(token.KW_IMPL) || (p.at(token.BANG) && p.s.Lookahead(1) == token.KW_IMPL):
		return ast.Item{Impl: p.parseImpl(attrs)}
	case p.at(token.KW_MOD):
		return ast.Item{Mod: p.parseModItem(attrs, pub)}
	case p.at(token.IDENT) && p.s.Lookahead(1) == token.BANG:
		name := p.s.Get().Text
		p.s.Get()
		toks := p.parseDelimitedTree()
		if p.at(token.SEMI) {
			p.s.Get()
		}
		return ast.Item{MacroInvoke: &ast.MacroInvocation{Path: &ast.Path{Kind: ast.PathLocal, LocalName: name}, Tokens: toks}}
	default:
		t := p.s.Get()
		p.sink.Error(t.Span.Start(), "E0103", "expected an item, found %s", t.Kind)
		return ast.Item{}
	}
}

func (p *Parser) parseUseItem(attrs []ast.Attribute, pub bool) *ast.UseItem {
	ps := p.s.StartSpan()
	p.expect(token.KW_USE)
	tree := p.parseUseTree()
	p.expect(token.SEMI)
	return &ast.UseItem{Attrs: attrs, Public: pub, Tree: tree, Span: p.s.EndSpan(ps)}
}

func (p *Parser) parseUseTree() ast.UseTree {
	ps := p.s.StartSpan()
	var nodes []ast.PathNode
	leading := ast.PathRelative
	if _, ok := p.accept(token.COLONCOLON); ok {
		leading = ast.PathAbsolute
	}
	for {
		if p.at(token.STAR) {
			p.s.Get()
			path := &ast.Path{Kind: leading, Nodes: nodes}
			return ast.UseTree{Kind: ast.UseGlob, Path: path, Span: p.s.EndSpan(ps)}
		}
		if p.at(token.LBRACE) {
			p.s.Get()
			var group []ast.UseTree
			for !p.at(token.RBRACE) {
				group = append(group, p.parseUseTree())
				if !p.at(token.RBRACE) {
					p.expect(token.COMMA)
				}
			}
			p.expect(token.RBRACE)
			path := &ast.Path{Kind: leading, Nodes: nodes}
			return ast.UseTree{Kind: ast.UseGroup, Path: path, Group: group, Span: p.s.EndSpan(ps)}
		}
		name := p.expect(token.IDENT).Text
		nodes = append(nodes, ast.PathNode{Name: name})
		if _, ok := p.accept(token.COLONCOLON); ok {
			continue
		}
		break
	}
	alias := ""
	if _, ok := p.accept(token.KW_AS); ok {
		alias = p.expect(token.IDENT).Text
	}
	path := &ast.Path{Kind: leading, Nodes: nodes}
	if leading == ast.PathRelative && len(nodes) == 1 {
		path = &ast.Path{Kind: ast.PathLocal, LocalName: nodes[0].Name}
	}
	return ast.UseTree{Kind: ast.UseLeaf, Path: path, Alias: alias, Span: p.s.EndSpan(ps)}
}

func (p *Parser) parseExternCrate(attrs []ast.Attribute) *ast.ExternCrateItem {
	ps := p.s.StartSpan()
	p.expect(token.KW_EXTERN)
	p.expect(token.KW_CRATE)
	name := p.expect(token.IDENT).Text
	alias := ""
	if _, ok := p.accept(token.KW_AS); ok {
		alias = p.expect(token.IDENT).Text
	}
	p.expect(token.SEMI)
	return &ast.ExternCrateItem{Attrs: attrs, Name: name, Alias: alias, Span: p.s.EndSpan(ps)}
}

func (p *Parser) parseExternBlock(attrs []ast.Attribute) *ast.ExternBlockItem {
	ps := p.s.StartSpan()
	p.expect(token.KW_EXTERN)
	abi := "C"
	if p.at(token.STRING) {
		abi = p.s.Get().StrVal
	}
	p.expect(token.LBRACE)
	var fns []ast.Function
	for !p.at(token.RBRACE) {
		fnAttrs := p.parseOuterAttrs()
		fnPub := p.parseVisibility() == ast.VisPublic
		fn := p.parseFunction(fnAttrs, fnPub)
		fns = append(fns, *fn)
	}
	p.expect(token.RBRACE)
	return &ast.ExternBlockItem{Attrs: attrs, ABI: abi, Fns: fns, Span: p.s.EndSpan(ps)}
}

func (p *Parser) parseConstItem(attrs []ast.Attribute, pub, static bool) *ast.ConstItem {
	ps := p.s.StartSpan()
	if static {
		p.expect(token.KW_STATIC)
	} else {
		p.expect(token.KW_CONST)
	}
	mutable := false
	if static {
		if _, ok := p.accept(token.KW_MUT); ok {
			mutable = true
		}
	}
	name := p.expect(token.IDENT).Text
	p.expect(token.COLON)
	ty := p.parseType()
	var val ast.ExprNode
	if _, ok := p.accept(token.EQ); ok {
		val = p.parseExpr()
	}
	p.expect(token.SEMI)
	return &ast.ConstItem{Attrs: attrs, Public: pub, Static: static, Mutable: mutable, Name: name, Type: ty, Value: val, Span: p.s.EndSpan(ps)}
}

func (p *Parser) parseFunction(attrs []ast.Attribute, pub bool) *ast.Function {
	ps := p.s.StartSpan()
	unsafe := false
	if _, ok := p.accept(token.KW_UNSAFE); ok {
		unsafe = true
	}
	isConst := false
	if _, ok := p.accept(token.KW_CONST); ok {
		isConst = true
	}
	abi := ""
	if _, ok := p.accept(token.KW_EXTERN); ok {
		abi = "C"
		if p.at(token.STRING) {
			abi = p.s.Get().StrVal
		}
	}
	p.expect(token.KW_FN)
	name := p.expect(token.IDENT).Text
	generics := p.parseGenerics()
	p.expect(token.LPAREN)

	fn := &ast.Function{Attrs: attrs, Public: pub, Unsafe: unsafe, Const: isConst, ABI: abi, Name: name, Generics: generics}

	if self, ok := p.tryParseSelfParam(); ok {
		fn.Self = self
		if !p.at(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	for !p.at(token.RPAREN) {
		if _, ok := p.accept(token.DOTDOTDOT); ok {
			fn.Variadic = true
			break
		}
		pat := p.parsePattern()
		p.expect(token.COLON)
		ty := p.parseType()
		fn.Params = append(fn.Params, ast.Param{Pattern: pat, Type: ty})
		if !p.at(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RPAREN)

	if _, ok := p.accept(token.ARROW); ok {
		if p.at(token.BANG) {
			p.s.Get()
			fn.Diverges = true
		} else {
			fn.ReturnType = p.parseType()
		}
	}
	fn.Generics.Where = p.parseWhereClause()

	if p.at(token.LBRACE) {
		fn.Body = p.parseBlock("")
	} else {
		p.expect(token.SEMI)
	}
	fn.Span = p.s.EndSpan(ps)
	return fn
}

func (p *Parser) tryParseSelfParam() (*ast.SelfParam, bool) {
	ps := p.s.StartSpan()
	switch {
	case p.at(token.KW_SELF_VALUE):
		p.s.Get()
		sp := &ast.SelfParam{Kind: ast.SelfByValue}
		if _, ok := p.accept(token.COLON); ok {
			sp.Kind = ast.SelfTyped
			sp.Type = p.parseType()
		}
		_ = ps
		return sp, true
	case p.at(token.AMP) && p.s.Lookahead(1) == token.KW_SELF_VALUE:
		p.s.Get()
		p.s.Get()
		return &ast.SelfParam{Kind: ast.SelfByRef}, true
	case p.at(token.AMP) && p.s.Lookahead(1) == token.LIFETIME && p.s.Lookahead(2) == token.KW_SELF_VALUE:
		p.s.Get()
		lt := p.s.Get().Text
		p.s.Get()
		return &ast.SelfParam{Kind: ast.SelfByRefLifetime, Lifetime: lt}, true
	case p.at(token.AMP) && p.s.Lookahead(1) == token.KW_MUT && p.s.Lookahead(2) == token.KW_SELF_VALUE:
		p.s.Get()
		p.s.Get()
		p.s.Get()
		return &ast.SelfParam{Kind: ast.SelfByRefMut, Mutable: true}, true
	default:
		return nil, false
	}
}

func (p *Parser) parseTypeAlias(attrs []ast.Attribute, pub bool) *ast.TypeAliasItem {
	ps := p.s.StartSpan()
	p.expect(token.KW_TYPE)
	name := p.expect(token.IDENT).Text
	generics := p.parseGenerics()
	p.expect(token.EQ)
	ty := p.parseType()
	p.expect(token.SEMI)
	return &ast.TypeAliasItem{Attrs: attrs, Public: pub, Name: name, Generics: generics, Type: ty, Span: p.s.EndSpan(ps)}
}

func (p *Parser) parseRepr(attrs []ast.Attribute) ast.Representation {
	for _, a := range attrs {
		if a.Item.Name != "repr" || a.Item.Kind != ast.MetaList {
			continue
		}
		for _, sub := range a.Item.Items {
			switch sub.Name {
			case "C":
				return ast.ReprC
			case "u8":
				return ast.ReprU8
			case "u16":
				return ast.ReprU16
			case "u32":
				return ast.ReprU32
			case "packed":
				return ast.ReprPacked
			}
		}
	}
	return ast.ReprRust
}

func (p *Parser) parseStruct(attrs []ast.Attribute, pub bool) *ast.Struct {
	ps := p.s.StartSpan()
	p.expect(token.KW_STRUCT)
	name := p.expect(token.IDENT).Text
	generics := p.parseGenerics()
	s := &ast.Struct{Attrs: attrs, Public: pub, Name: name, Generics: generics, Repr: p.parseRepr(attrs)}

	switch {
	case p.at(token.LPAREN):
		p.s.Get()
		for !p.at(token.RPAREN) {
			fAttrs := p.parseOuterAttrs()
			fPub := p.parseVisibility() == ast.VisPublic
			ty := p.parseType()
			s.Tuple = append(s.Tuple, ast.Field{Attrs: fAttrs, Public: fPub, Type: ty})
			if !p.at(token.RPAREN) {
				p.expect(token.COMMA)
			}
		}
		p.expect(token.RPAREN)
		s.Generics.Where = p.parseWhereClause()
		p.expect(token.SEMI)
		s.Kind = ast.StructTupleKind
	case p.at(token.SEMI):
		p.s.Get()
		s.Kind = ast.StructUnit
	default:
		s.Generics.Where = p.parseWhereClause()
		p.expect(token.LBRACE)
		for !p.at(token.RBRACE) {
			fAttrs := p.parseOuterAttrs()
			fPub := p.parseVisibility() == ast.VisPublic
			fName := p.expect(token.IDENT).Text
			p.expect(token.COLON)
			ty := p.parseType()
			s.Named = append(s.Named, ast.Field{Attrs: fAttrs, Public: fPub, Name: fName, Type: ty})
			if !p.at(token.RBRACE) {
				p.expect(token.COMMA)
			}
		}
		p.expect(token.RBRACE)
		s.Kind = ast.StructNamed
	}
	s.Span = p.s.EndSpan(ps)
	return s
}

func (p *Parser) parseEnum(attrs []ast.Attribute, pub bool) *ast.Enum {
	ps := p.s.StartSpan()
	p.expect(token.KW_ENUM)
	name := p.expect(token.IDENT).Text
	generics := p.parseGenerics()
	generics.Where = p.parseWhereClause()
	e := &ast.Enum{Attrs: attrs, Public: pub, Name: name, Generics: generics, Repr: p.parseRepr(attrs)}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) {
		vAttrs := p.parseOuterAttrs()
		vName := p.expect(token.IDENT).Text
		v := ast.EnumVariant{Attrs: vAttrs, Name: vName, Kind: ast.VariantUnit}
		switch {
		case p.at(token.LPAREN):
			p.s.Get()
			for !p.at(token.RPAREN) {
				ty := p.parseType()
				v.Tuple = append(v.Tuple, ast.Field{Type: ty})
				if !p.at(token.RPAREN) {
					p.expect(token.COMMA)
				}
			}
			p.expect(token.RPAREN)
			v.Kind = ast.VariantTuple
		case p.at(token.LBRACE):
			p.s.Get()
			for !p.at(token.RBRACE) {
				fName := p.expect(token.IDENT).Text
				p.expect(token.COLON)
				ty := p.parseType()
				v.Fields = append(v.Fields, ast.Field{Name: fName, Type: ty})
				if !p.at(token.RBRACE) {
					p.expect(token.COMMA)
				}
			}
			p.expect(token.RBRACE)
			v.Kind = ast.VariantStruct
		case p.at(token.EQ):
			p.s.Get()
			v.Value = p.parseExpr()
			v.Kind = ast.VariantValue
		}
		e.Variants = append(e.Variants, v)
		if !p.at(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RBRACE)
	e.Span = p.s.EndSpan(ps)
	return e
}

func (p *Parser) parseTrait(attrs []ast.Attribute, pub bool) *ast.Trait {
	ps := p.s.StartSpan()
	unsafe := false
	if _, ok := p.accept(token.KW_UNSAFE); ok {
		unsafe = true
	}
	p.expect(token.KW_TRAIT)
	name := p.expect(token.IDENT).Text
	generics := p.parseGenerics()
	t := &ast.Trait{Attrs: attrs, Public: pub, Unsafe: unsafe, Name: name, Generics: generics}
	if _, ok := p.accept(token.COLON); ok {
		for {
			if p.at(token.LIFETIME) {
				t.SelfLife = p.s.Get().Text
			} else {
				t.Supertraits = append(t.Supertraits, p.parseHRLTraitPath())
			}
			if _, ok := p.accept(token.PLUS); !ok {
				break
			}
		}
	}
	t.Generics.Where = p.parseWhereClause()
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) {
		t.Members = append(t.Members, p.parseTraitMember())
	}
	p.expect(token.RBRACE)
	t.Span = p.s.EndSpan(ps)
	return t
}

func (p *Parser) parseTraitMember() ast.TraitMember {
	attrs := p.parseOuterAttrs()
	switch {
	case p.at(token.KW_TYPE):
		p.s.Get()
		ps := p.s.StartSpan()
		name := p.expect(token.IDENT).Text
		decl := &ast.AssocTypeDecl{Name: name}
		if _, ok := p.accept(token.COLON); ok {
			decl.Bounds = p.parseBoundSet()
		}
		if _, ok := p.accept(token.EQ); ok {
			decl.Default = p.parseType()
		}
		p.expect(token.SEMI)
		decl.Span = p.s.EndSpan(ps)
		return ast.TraitMember{Attrs: attrs, Type: decl}
	case p.at(token.KW_CONST):
		c := p.parseConstItem(nil, false, false)
		return ast.TraitMember{Attrs: attrs, Const: c}
	default:
		fn := p.parseFunction(nil, false)
		return ast.TraitMember{Attrs: attrs, Function: fn}
	}
}

func (p *Parser) parseImpl(attrs []ast.Attribute) *ast.Impl {
	ps := p.s.StartSpan()
	unsafe := false
	if _, ok := p.accept(token.KW_UNSAFE); ok {
		unsafe = true
	}
	negative := false
	if _, ok := p.accept(token.BANG); ok {
		negative = true
	}
	p.expect(token.KW_IMPL)
	generics := p.parseGenerics()
	im := &ast.Impl{Attrs: attrs, Unsafe: unsafe, Negative: negative, Generics: generics}

	first := p.parseType()
	if _, ok := p.accept(token.KW_FOR); ok {
		if first.Kind != ast.TyPath {
			p.sink.Error(p.s.EndSpan(ps).Start(), "E0104", "trait position of an impl must be a path")
		} else {
			im.Trait = first.Path
		}
		im.SelfType = p.parseType()
	} else {
		im.SelfType = first
	}
	im.Generics.Where = p.parseWhereClause()
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) {
		im.Members = append(im.Members, p.parseImplMember())
	}
	p.expect(token.RBRACE)
	im.Span = p.s.EndSpan(ps)
	return im
}

func (p *Parser) parseImplMember() ast.ImplMember {
	attrs := p.parseOuterAttrs()
	pub := p.parseVisibility() == ast.VisPublic
	switch {
	case p.at(token.KW_TYPE):
		p.s.Get()
		name := p.expect(token.IDENT).Text
		decl := &ast.AssocTypeDecl{Name: name}
		p.expect(token.EQ)
		decl.Default = p.parseType()
		p.expect(token.SEMI)
		return ast.ImplMember{Attrs: attrs, Public: pub, Type: decl}
	case p.at(token.KW_CONST):
		c := p.parseConstItem(nil, pub, false)
		return ast.ImplMember{Attrs: attrs, Public: pub, Const: c}
	default:
		fn := p.parseFunction(nil, pub)
		return ast.ImplMember{Attrs: attrs, Public: pub, Function: fn}
	}
}

func (p *Parser) parseModItem(attrs []ast.Attribute, pub bool) *ast.ModItem {
	ps := p.s.StartSpan()
	p.expect(token.KW_MOD)
	name := p.expect(token.IDENT).Text
	mi := &ast.ModItem{Attrs: attrs, Public: pub, Name: name}

	if p.at(token.LBRACE) {
		p.s.Get()
		mod := &ast.Module{Filename: p.filename}
		mod.Attrs = p.parseInnerAttrs()
		for !p.at(token.RBRACE) {
			mod.Items = append(mod.Items, p.parseItem())
		}
		p.expect(token.RBRACE)
		mi.LoadKind = ast.ModInline
		mi.Inline = mod
		mi.Span = p.s.EndSpan(ps)
		return mi
	}

	p.expect(token.SEMI)
	mi.LoadKind = ast.ModExternalFile
	if !p.allowExternalMods {
		p.sink.Error(p.s.EndSpan(ps).Start(), "E0105", "cannot load external module %q: input was read from standard input", name)
		mi.Span = p.s.EndSpan(ps)
		return mi
	}
	if p.loader == nil {
		p.sink.Error(p.s.EndSpan(ps).Start(), "E0106", "cannot load external module %q: no module loader configured", name)
		mi.Span = p.s.EndSpan(ps)
		return mi
	}
	dir := filepath.Dir(p.filename)
	content, path, err := p.loader.Load(dir, name)
	if err != nil {
		p.sink.Error(p.s.EndSpan(ps).Start(), "E0107", "cannot load external module %q: %s", name, err)
		mi.Span = p.s.EndSpan(ps)
		return mi
	}
	lx, lexErr := scan.New(path, bytes.NewReader(content), p.sink)
	if lexErr != nil {
		p.sink.Error(p.s.EndSpan(ps).Start(), "E0107", "cannot load external module %q: %s", name, lexErr)
		mi.Span = p.s.EndSpan(ps)
		return mi
	}
	sub := &Parser{
		s:                 stream.NewFromLexer(lx, path, p.sink),
		sink:              p.sink,
		loader:            p.loader,
		filename:          path,
		allowExternalMods: true,
	}
	mi.Inline = sub.parseModule(path, false)
	mi.Span = p.s.EndSpan(ps)
	return mi
}
