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

// parseGenerics parses an optional `<'a, T: Bound = Default>` list
// (§4.3 "Generics"): lifetimes first, then type parameters.
func (p *Parser) parseGenerics() ast.Generics {
	var g ast.Generics
	if !p.at(token.LT) {
		return g
	}
	p.s.Get()
	for !p.at(token.GT) {
		if p.at(token.LIFETIME) {
			g.Lifetimes = append(g.Lifetimes, p.s.Get().Text)
		} else {
			g.TypeParams = append(g.TypeParams, p.parseTypeParam())
		}
		if !p.at(token.GT) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.GT)
	return g
}

func (p *Parser) parseTypeParam() ast.TypeParam {
	name := p.expect(token.IDENT).Text
	tp := ast.TypeParam{Name: name}
	if _, ok := p.accept(token.COLON); ok {
		tp.Bounds = p.parseBoundSet()
	}
	if _, ok := p.accept(token.EQ); ok {
		tp.Default = p.parseType()
	}
	return tp
}

// parseBoundSet parses `'a + Trait + ?Sized` (§4.3 "Generics").
func (p *Parser) parseBoundSet() ast.LifetimeBoundSet {
	var b ast.LifetimeBoundSet
	for {
		switch {
		case p.at(token.LIFETIME):
			b.Lifetimes = append(b.Lifetimes, p.s.Get().Text)
		case p.at(token.QUESTION):
			p.s.Get()
			name := p.expect(token.IDENT).Text
			b.MaybeTraits = append(b.MaybeTraits, name)
		default:
			b.Traits = append(b.Traits, p.parseHRLTraitPath())
		}
		if _, ok := p.accept(token.PLUS); !ok {
			break
		}
	}
	return b
}

// parseHRLTraitPath parses an optional `for<'a, 'b>` binder followed by
// a trait path.
func (p *Parser) parseHRLTraitPath() *ast.Path {
	if _, ok := p.accept(token.KW_FOR); ok {
		p.expect(token.LT)
		for !p.at(token.GT) {
			p.expect(token.LIFETIME)
			if !p.at(token.GT) {
				p.expect(token.COMMA)
			}
		}
		p.expect(token.GT)
	}
	return p.parsePath()
}

// parseWhereClause parses a comma-separated predicate list terminated
// by `{` or `;` (§4.3 "Where-clauses").
func (p *Parser) parseWhereClause() []ast.WhereClauseEntry {
	if _, ok := p.accept(token.KW_WHERE); !ok {
		return nil
	}
	var out []ast.WhereClauseEntry
	for !p.at(token.LBRACE) && !p.at(token.SEMI) {
		out = append(out, p.parseWhereEntry())
		if !p.at(token.LBRACE) && !p.at(token.SEMI) {
			p.expect(token.COMMA)
		}
	}
	return out
}

func (p *Parser) parseWhereEntry() ast.WhereClauseEntry {
	if p.at(token.LIFETIME) {
		lt := p.s.Get().Text
		p.expect(token.COLON)
		outer := p.expect(token.LIFETIME).Text
		return ast.WhereClauseEntry{Kind: ast.WhereLifetime, Lifetime: lt, OuterLifetime: outer}
	}
	var hrls []string
	if _, ok := p.accept(token.KW_FOR); ok {
		p.expect(token.LT)
		for !p.at(token.GT) {
			hrls = append(hrls, p.expect(token.LIFETIME).Text)
			if !p.at(token.GT) {
				p.expect(token.COMMA)
			}
		}
		p.expect(token.GT)
	}
	ty := p.parseType()
	if _, ok := p.accept(token.EQ); ok {
		rhs := p.parseType()
		return ast.WhereClauseEntry{Kind: ast.WhereEquality, EqLeft: ty, EqRight: rhs}
	}
	p.expect(token.COLON)
	bounds := p.parseBoundSet()
	kind := ast.WhereType
	if len(hrls) > 0 {
		kind = ast.WhereHRL
	}
	return ast.WhereClauseEntry{Kind: kind, HRL: ast.HRLBound{HRLs: hrls, Target: ty, Bounds: bounds}}
}
