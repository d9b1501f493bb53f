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

// parseInnerAttrs consumes a run of leading `#![...]` crate/module
// attributes (§4.3).
func (p *Parser) parseInnerAttrs() []ast.Attribute {
	var out []ast.Attribute
	for p.at(token.POUND) && p.s.Lookahead(1) == token.BANG {
		out = append(out, p.parseOneAttr(true))
	}
	return out
}

// parseOuterAttrs consumes a run of `#[...]` attributes attached to the
// item or impl-body member that follows.
func (p *Parser) parseOuterAttrs() []ast.Attribute {
	var out []ast.Attribute
	for p.at(token.POUND) && p.s.Lookahead(1) != token.BANG {
		out = append(out, p.parseOneAttr(false))
	}
	return out
}

func (p *Parser) parseOneAttr(inner bool) ast.Attribute {
	ps := p.s.StartSpan()
	p.expect(token.POUND)
	if inner {
		p.expect(token.BANG)
	}
	p.expect(token.LBRACKET)
	item := p.parseMetaItem()
	p.expect(token.RBRACKET)
	return ast.Attribute{Inner: inner, Item: item, Span: p.s.EndSpan(ps)}
}

func (p *Parser) parseMetaItem() ast.MetaItem {
	ps := p.s.StartSpan()
	name := p.expect(token.IDENT).Text
	switch {
	case p.at(token.LPAREN):
		p.s.Get()
		var items []ast.MetaItem
		for !p.at(token.RPAREN) {
			items = append(items, p.parseMetaItem())
			if !p.at(token.RPAREN) {
				p.expect(token.COMMA)
			}
		}
		p.expect(token.RPAREN)
		return ast.MetaItem{Kind: ast.MetaList, Name: name, Items: items, Span: p.s.EndSpan(ps)}
	case p.at(token.EQ):
		p.s.Get()
		lit := p.parseLiteralExpr()
		return ast.MetaItem{Kind: ast.MetaNameValue, Name: name, Literal: lit, Span: p.s.EndSpan(ps)}
	default:
		return ast.MetaItem{Kind: ast.MetaName, Name: name, Span: p.s.EndSpan(ps)}
	}
}

// parseVisibility consumes an optional leading `pub`.
func (p *Parser) parseVisibility() ast.Visibility {
	if _, ok := p.accept(token.KW_PUB); ok {
		return ast.VisPublic
	}
	return ast.VisPrivate
}
