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

// parsePattern parses one pattern (spec.md §3 AST.Pattern).
func (p *Parser) parsePattern() *ast.Pattern {
	ps := p.s.StartSpan()
	switch {
	case p.at(token.UNDERSCORE):
		p.s.Get()
		return &ast.Pattern{Kind: ast.PatAny, Span: p.s.EndSpan(ps)}

	case p.at(token.KW_BOX):
		p.s.Get()
		sub := p.parsePattern()
		return &ast.Pattern{Kind: ast.PatBox, Sub: sub, Span: p.s.EndSpan(ps)}

	case p.at(token.AMP):
		p.s.Get()
		mut := false
		if _, ok := p.accept(token.KW_MUT); ok {
			mut = true
		}
		sub := p.parsePattern()
		return &ast.Pattern{Kind: ast.PatRef, RefMutable: mut, Sub: sub, Span: p.s.EndSpan(ps)}

	case p.at(token.LPAREN):
		p.s.Get()
		var subs []*ast.Pattern
		for !p.at(token.RPAREN) {
			subs = append(subs, p.parsePattern())
			if !p.at(token.RPAREN) {
				p.expect(token.COMMA)
			}
		}
		p.expect(token.RPAREN)
		return &ast.Pattern{Kind: ast.PatTuple, Subs: subs, Span: p.s.EndSpan(ps)}

	case p.at(token.LBRACKET):
		return p.parseSlicePattern(ps)

	case p.at(token.KW_REF) || p.at(token.KW_MUT):
		return p.parseBindingPattern(ps)

	case p.at(token.IDENT) && p.s.Lookahead(1) == token.BANG:
		name := p.s.Get().Text
		p.s.Get() // '!'
		toks := p.parseDelimitedTree()
		inv := &ast.MacroInvocation{Path: &ast.Path{Kind: ast.PathLocal, LocalName: name}, Tokens: toks, Span: p.s.EndSpan(ps)}
		return &ast.Pattern{Kind: ast.PatMacro, MacroInvocation: inv, Span: p.s.EndSpan(ps)}

	case p.at(token.IDENT) && (p.s.Lookahead(1) == token.AT):
		name := p.s.Get().Text
		p.s.Get() // '@'
		sub := p.parsePattern()
		pat := &ast.Pattern{Kind: sub.Kind, Span: p.s.EndSpan(ps)}
		*pat = *sub
		pat.Span = p.s.EndSpan(ps)
		pat.Binding = ast.PatternBinding{Present: true, Name: name}
		return pat

	case isPathLead(p):
		return p.parsePathPattern(ps)

	default:
		return p.parseLiteralOrRangePattern(ps)
	}
}

func isPathLead(p *Parser) bool {
	switch p.s.Lookahead(0) {
	case token.IDENT, token.KW_SELF_TYPE, token.KW_SELF_VALUE, token.KW_SUPER, token.KW_CRATE, token.COLONCOLON, token.LT:
		return true
	}
	return false
}

func (p *Parser) parseBindingPattern(ps token.ProtoSpan) *ast.Pattern {
	mode := ast.BindMove
	if _, ok := p.accept(token.KW_REF); ok {
		mode = ast.BindRef
	}
	mut := false
	if _, ok := p.accept(token.KW_MUT); ok {
		mut = true
		if mode == ast.BindRef {
			mode = ast.BindMutRef
		}
	}
	name := p.expect(token.IDENT).Text
	pat := &ast.Pattern{Kind: ast.PatAny, Span: p.s.EndSpan(ps)}
	pat.Binding = ast.PatternBinding{Present: true, Mutable: mut, Mode: mode, Name: name}
	if _, ok := p.accept(token.AT); ok {
		sub := p.parsePattern()
		*pat = *sub
		pat.Span = p.s.EndSpan(ps)
		pat.Binding = ast.PatternBinding{Present: true, Mutable: mut, Mode: mode, Name: name}
	}
	return pat
}

func (p *Parser) parsePathPattern(ps token.ProtoSpan) *ast.Pattern {
	path := p.parsePath()

	// A single bare identifier with no following `(`/`{` is a name that
	// might bind a fresh local OR denote a unit struct/enum-variant;
	// the resolver (external) decides via path.Binding — represented
	// here as MaybeBind, per spec.md §3.
	if path.Kind == ast.PathLocal && !p.at(token.LPAREN) && !p.at(token.LBRACE) && !p.at(token.DOTDOT) && !p.at(token.DOTDOTEQ) {
		return &ast.Pattern{Kind: ast.PatMaybeBind, MaybeBindName: path.LocalName, Span: p.s.EndSpan(ps)}
	}

	switch {
	case p.at(token.LPAREN):
		p.s.Get()
		if _, ok := p.accept(token.DOTDOT); ok {
			p.expect(token.RPAREN)
			return &ast.Pattern{Kind: ast.PatWildcardStructTuple, Path: path, Span: p.s.EndSpan(ps)}
		}
		var subs []*ast.Pattern
		for !p.at(token.RPAREN) {
			subs = append(subs, p.parsePattern())
			if !p.at(token.RPAREN) {
				p.expect(token.COMMA)
			}
		}
		p.expect(token.RPAREN)
		return &ast.Pattern{Kind: ast.PatStructTuple, Path: path, Subs: subs, Span: p.s.EndSpan(ps)}

	case p.at(token.LBRACE):
		p.s.Get()
		var fields []ast.StructPatternField
		exhaustive := true
		for !p.at(token.RBRACE) {
			if _, ok := p.accept(token.DOTDOT); ok {
				exhaustive = false
				break
			}
			name := p.expect(token.IDENT).Text
			var fp *ast.Pattern
			if _, ok := p.accept(token.COLON); ok {
				fp = p.parsePattern()
			} else {
				fp = &ast.Pattern{Kind: ast.PatAny}
				fp.Binding = ast.PatternBinding{Present: true, Name: name}
			}
			fields = append(fields, ast.StructPatternField{Name: name, Pattern: fp})
			if !p.at(token.RBRACE) {
				p.expect(token.COMMA)
			}
		}
		p.expect(token.RBRACE)
		return &ast.Pattern{Kind: ast.PatStruct, Path: path, Fields: fields, Exhaustive: exhaustive, Span: p.s.EndSpan(ps)}

	case p.at(token.DOTDOT) || p.at(token.DOTDOTEQ):
		inclusive := p.at(token.DOTDOTEQ)
		p.s.Get()
		startExpr := ast.ExprNode(&ast.NamedValueExpr{Path: path})
		var endExpr ast.ExprNode
		if isPathLead(p) || isLiteralLead(p) {
			endExpr = p.parseUnaryExpr()
		}
		_ = inclusive
		return &ast.Pattern{Kind: ast.PatValue, Start: &startExpr, End: &endExpr, Span: p.s.EndSpan(ps)}

	default:
		v := ast.ExprNode(&ast.NamedValueExpr{Path: path})
		return &ast.Pattern{Kind: ast.PatValue, Start: &v, Span: p.s.EndSpan(ps)}
	}
}

func isLiteralLead(p *Parser) bool {
	switch p.s.Lookahead(0) {
	case token.INTEGER, token.FLOAT, token.CHAR, token.STRING, token.BYTESTRING, token.MINUS:
		return true
	}
	return false
}

func (p *Parser) parseLiteralOrRangePattern(ps token.ProtoSpan) *ast.Pattern {
	start := p.parseUnaryExpr()
	if p.at(token.DOTDOT) || p.at(token.DOTDOTEQ) {
		p.s.Get()
		var end ast.ExprNode
		if isLiteralLead(p) || isPathLead(p) {
			end = p.parseUnaryExpr()
		}
		return &ast.Pattern{Kind: ast.PatValue, Start: &start, End: &end, Span: p.s.EndSpan(ps)}
	}
	return &ast.Pattern{Kind: ast.PatValue, Start: &start, Span: p.s.EndSpan(ps)}
}

func (p *Parser) parseSlicePattern(ps token.ProtoSpan) *ast.Pattern {
	p.expect(token.LBRACKET)
	var leading []*ast.Pattern
	var extra *ast.PatternBinding
	var trailing []*ast.Pattern
	seenDotdot := false
	for !p.at(token.RBRACKET) {
		if p.at(token.DOTDOT) {
			p.s.Get()
			seenDotdot = true
			extra = &ast.PatternBinding{}
		} else {
			sub := p.parsePattern()
			if seenDotdot {
				trailing = append(trailing, sub)
			} else {
				leading = append(leading, sub)
			}
		}
		if !p.at(token.RBRACKET) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RBRACKET)
	return &ast.Pattern{Kind: ast.PatSlice, Leading: leading, ExtraBind: extra, Trailing: trailing, Span: p.s.EndSpan(ps)}
}
