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

// parsePath parses a general path in type or expression position,
// producing the unresolved Relative/Self/Super/Absolute/UFCS forms of
// spec.md §3 and §8 ("Path forms"). Name-kind resolution (Binding) is
// the external resolver's job; the parser only records shape.
func (p *Parser) parsePath() *ast.Path {
	ps := p.s.StartSpan()

	if p.at(token.LT) {
		return p.parseUFCSPath(ps)
	}

	var leadingColons bool
	if _, ok := p.accept(token.COLONCOLON); ok {
		leadingColons = true
	}

	switch {
	case !leadingColons && p.at(token.KW_CRATE) && p.s.Lookahead(1) == token.COLONCOLON:
		p.s.Get()
		p.expect(token.COLONCOLON)
		nodes := p.parsePathNodes()
		return &ast.Path{Kind: ast.PathAbsolute, CrateName: "", Nodes: nodes, Span: p.s.EndSpan(ps)}

	case !leadingColons && (p.at(token.KW_SELF_VALUE) || p.at(token.KW_SELF_TYPE)):
		p.s.Get()
		p.expect(token.COLONCOLON)
		nodes := p.parsePathNodes()
		return &ast.Path{Kind: ast.PathSelf, Nodes: nodes, Span: p.s.EndSpan(ps)}

	case !leadingColons && p.at(token.KW_SUPER):
		count := 0
		for p.at(token.KW_SUPER) {
			p.s.Get()
			count++
			p.expect(token.COLONCOLON)
			if !p.at(token.KW_SUPER) {
				break
			}
		}
		nodes := p.parsePathNodes()
		return &ast.Path{Kind: ast.PathSuper, SuperCount: count, Nodes: nodes, Span: p.s.EndSpan(ps)}

	case leadingColons:
		// A leading `::` is always a current-crate absolute path
		// (spec.md §8: `::core::mem::swap` -> `Absolute("",
		// ["core","mem","swap"])`); external-crate-qualified absolute
		// paths are not a surface form this grammar produces.
		nodes := p.parsePathNodes()
		return &ast.Path{Kind: ast.PathAbsolute, CrateName: "", Nodes: nodes, Span: p.s.EndSpan(ps)}

	default:
		nodes := p.parsePathNodes()
		if len(nodes) == 1 && len(nodes[0].Params.Types) == 0 && len(nodes[0].Params.Lifetimes) == 0 {
			return &ast.Path{Kind: ast.PathLocal, LocalName: nodes[0].Name, Span: p.s.EndSpan(ps)}
		}
		return &ast.Path{Kind: ast.PathRelative, Nodes: nodes, Span: p.s.EndSpan(ps)}
	}
}

// parsePathNodes parses one or more `::`-separated segments, each with
// optional `::<...>` or `<...>` generic arguments.
func (p *Parser) parsePathNodes() []ast.PathNode {
	var nodes []ast.PathNode
	for {
		nps := p.s.StartSpan()
		name := p.expect(token.IDENT).Text
		params := p.parsePathParams()
		nodes = append(nodes, ast.PathNode{Name: name, Params: params, Span: p.s.EndSpan(nps)})
		if p.at(token.COLONCOLON) && p.s.Lookahead(1) == token.IDENT {
			p.s.Get()
			continue
		}
		break
	}
	return nodes
}

// parsePathParams parses an optional `::<T, U>`/`<T, U>` or, inside a
// UFCS/trait-bound position, `<Assoc = T>` associated-type bindings.
func (p *Parser) parsePathParams() ast.PathParams {
	var params ast.PathParams
	if p.at(token.COLONCOLON) && p.s.Lookahead(1) == token.LT {
		p.s.Get()
	} else if !p.at(token.LT) {
		return params
	}
	if !p.at(token.LT) {
		return params
	}
	p.s.Get()
	for !p.at(token.GT) {
		switch {
		case p.at(token.LIFETIME):
			params.Lifetimes = append(params.Lifetimes, p.s.Get().Text)
		case p.at(token.IDENT) && p.s.Lookahead(1) == token.EQ:
			name := p.s.Get().Text
			p.s.Get() // '='
			ty := p.parseType()
			params.AssocBindings = append(params.AssocBindings, ast.AssocBinding{Name: name, Type: ty})
		default:
			params.Types = append(params.Types, p.parseType())
		}
		if !p.at(token.GT) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.GT)
	return params
}

// parseUFCSPath parses `<Type as Trait>::item` or `<Type>::item`.
func (p *Parser) parseUFCSPath(ps token.ProtoSpan) *ast.Path {
	p.expect(token.LT)
	ty := p.parseType()
	var tr *ast.Path
	if _, ok := p.accept(token.KW_AS); ok {
		tr = p.parsePath()
	}
	p.expect(token.GT)
	p.expect(token.COLONCOLON)
	nodes := p.parsePathNodes()
	return &ast.Path{Kind: ast.PathUFCS, UFCSType: ty, UFCSTrait: tr, Nodes: nodes, Span: p.s.EndSpan(ps)}
}
