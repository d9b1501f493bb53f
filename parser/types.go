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
	"github.com/latticelang/frontc/ast"
	"github.com/latticelang/frontc/token"
)

var primitiveTypes = map[string]token.CoreType{
	"i8": token.CoreI8, "i16": token.CoreI16, "i32": token.CoreI32, "i64": token.CoreI64,
	"isize": token.CoreISize, "u8": token.CoreU8, "u16": token.CoreU16, "u32": token.CoreU32,
	"u64": token.CoreU64, "usize": token.CoreUSize, "f32": token.CoreF32, "f64": token.CoreF64,
	"bool": token.CoreBool, "char": token.CoreChar, "str": token.CoreStr,
}

// parseType parses a single type expression (spec.md §3 AST.TypeRef).
func (p *Parser) parseType() *ast.TypeRef {
	ps := p.s.StartSpan()
	switch {
	case p.at(token.BANG):
		p.s.Get()
		return &ast.TypeRef{Kind: ast.TyNone, Span: p.s.EndSpan(ps)}

	case p.at(token.UNDERSCORE):
		p.s.Get()
		return &ast.TypeRef{Kind: ast.TyAny, Span: p.s.EndSpan(ps)}

	case p.at(token.LPAREN):
		return p.parseTupleOrParenType(ps)

	case p.at(token.AMP):
		p.s.Get()
		if p.at(token.LIFETIME) {
			p.s.Get()
		}
		mut := false
		if _, ok := p.accept(token.KW_MUT); ok {
			mut = true
		}
		inner := p.parseType()
		return &ast.TypeRef{Kind: ast.TyBorrow, Mutable: mut, Inner: inner, Span: p.s.EndSpan(ps)}

	case p.at(token.STAR):
		p.s.Get()
		mut := false
		if _, ok := p.accept(token.KW_MUT); ok {
			mut = true
		} else {
			p.expect(token.KW_CONST)
		}
		inner := p.parseType()
		return &ast.TypeRef{Kind: ast.TyPointer, Mutable: mut, Inner: inner, Span: p.s.EndSpan(ps)}

	case p.at(token.LBRACKET):
		p.s.Get()
		inner := p.parseType()
		var size ast.ExprNode
		if _, ok := p.accept(token.SEMI); ok {
			size = p.parseExpr()
		}
		p.expect(token.RBRACKET)
		return &ast.TypeRef{Kind: ast.TyArray, Inner: inner, Size: size, Span: p.s.EndSpan(ps)}

	case p.at(token.KW_DYN):
		p.s.Get()
		return p.parseTraitObjectType(ps)

	case p.at(token.KW_FN) || (p.at(token.KW_UNSAFE) && p.s.Lookahead(1) == token.KW_FN) || p.at(token.KW_EXTERN):
		return p.parseFunctionType(ps)

	case p.at(token.IDENT) || p.at(token.KW_SELF_TYPE) || p.at(token.KW_SELF_VALUE) || p.at(token.KW_SUPER) || p.at(token.KW_CRATE) || p.at(token.COLONCOLON) || p.at(token.LT):
		path := p.parsePath()
		if path.Kind == ast.PathLocal {
			if ct, ok := primitiveCoreType(path.LocalName); ok {
				return &ast.TypeRef{Kind: ast.TyPrimitive, Primitive: ct, Span: p.s.EndSpan(ps)}
			}
		}
		return &ast.TypeRef{Kind: ast.TyPath, Path: path, Span: p.s.EndSpan(ps)}

	default:
		t := p.s.Get()
		p.sink.Error(t.Span.Start(), "E0101", "expected a type, found %s", t.Kind)
		return &ast.TypeRef{Kind: ast.TyAny, Span: p.s.EndSpan(ps)}
	}
}

func (p *Parser) parseTupleOrParenType(ps token.ProtoSpan) *ast.TypeRef {
	p.expect(token.LPAREN)
	if _, ok := p.accept(token.RPAREN); ok {
		return &ast.TypeRef{Kind: ast.TyUnit, Span: p.s.EndSpan(ps)}
	}
	first := p.parseType()
	if _, ok := p.accept(token.RPAREN); ok {
		return first // parenthesised type, not a 1-tuple
	}
	inners := []*ast.TypeRef{first}
	for {
		p.expect(token.COMMA)
		if p.at(token.RPAREN) {
			break
		}
		inners = append(inners, p.parseType())
		if p.at(token.RPAREN) {
			break
		}
	}
	p.expect(token.RPAREN)
	return &ast.TypeRef{Kind: ast.TyTuple, Inners: inners, Span: p.s.EndSpan(ps)}
}

func (p *Parser) parseTraitObjectType(ps token.ProtoSpan) *ast.TypeRef {
	var hrls []string
	var traits []*ast.Path
	for {
		traits = append(traits, p.parseHRLTraitPath())
		if _, ok := p.accept(token.PLUS); !ok {
			break
		}
	}
	return &ast.TypeRef{Kind: ast.TyTraitObject, TraitObject: &ast.TraitObjectInfo{HRLs: hrls, Traits: traits}, Span: p.s.EndSpan(ps)}
}

func (p *Parser) parseFunctionType(ps token.ProtoSpan) *ast.TypeRef {
	info := &ast.FunctionTypeInfo{}
	if _, ok := p.accept(token.KW_UNSAFE); ok {
		info.Unsafe = true
	}
	if _, ok := p.accept(token.KW_EXTERN); ok {
		if p.at(token.STRING) {
			info.ABI = p.s.Get().StrVal
		} else {
			info.ABI = "C"
		}
	}
	p.expect(token.KW_FN)
	p.expect(token.LPAREN)
	for !p.at(token.RPAREN) {
		if _, ok := p.accept(token.DOTDOTDOT); ok {
			info.Variadic = true
			break
		}
		info.Params = append(info.Params, p.parseType())
		if !p.at(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RPAREN)
	if _, ok := p.accept(token.ARROW); ok {
		info.ReturnType = p.parseType()
	}
	return &ast.TypeRef{Kind: ast.TyFunction, Function: info, Span: p.s.EndSpan(ps)}
}

func primitiveCoreType(name string) (token.CoreType, bool) {
	ct, ok := primitiveTypes[name]
	return ct, ok
}
