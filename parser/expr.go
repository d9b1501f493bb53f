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

// precedence table for the Pratt-style binary operator parser (§4.3
// "Expressions"); higher binds tighter.
var binPrec = map[token.Kind]int{
	token.PIPEPIPE: 1,
	token.AMPAMP:   2,
	token.EQEQ:     3, token.NE: 3, token.LT: 3, token.LE: 3, token.GT: 3, token.GE: 3,
	token.DOTDOT: 4, token.DOTDOTEQ: 4,
	token.PIPE: 5,
	token.CARET: 6,
	token.AMP: 7,
	token.SHL: 8, token.SHR: 8,
	token.PLUS: 9, token.MINUS: 9,
	token.STAR: 10, token.SLASH: 10, token.PERCENT: 10,
	token.KW_AS: 11,
}

var binOpFromToken = map[token.Kind]ast.BinOp{
	token.PLUS: ast.OpAdd, token.MINUS: ast.OpSub, token.STAR: ast.OpMul,
	token.SLASH: ast.OpDiv, token.PERCENT: ast.OpRem,
	token.AMP: ast.OpBitAnd, token.PIPE: ast.OpBitOr, token.CARET: ast.OpBitXor,
	token.SHL: ast.OpShl, token.SHR: ast.OpShr,
	token.EQEQ: ast.OpEq, token.NE: ast.OpNe, token.LT: ast.OpLt, token.LE: ast.OpLe,
	token.GT: ast.OpGt, token.GE: ast.OpGe,
	token.AMPAMP: ast.OpAndAnd, token.PIPEPIPE: ast.OpOrOr,
}

var compoundAssignOps = map[token.Kind]ast.BinOp{
	token.PLUSEQ: ast.OpAdd, token.MINUSEQ: ast.OpSub, token.STAREQ: ast.OpMul,
	token.SLASHEQ: ast.OpDiv, token.PERCENTEQ: ast.OpRem,
	token.AMPEQ: ast.OpBitAnd, token.PIPEEQ: ast.OpBitOr, token.CARETEQ: ast.OpBitXor,
	token.SHLEQ: ast.OpShl, token.SHREQ: ast.OpShr,
}

// parseExpr is the entry point for a full expression, including
// assignment (which binds looser than everything in binPrec).
func (p *Parser) parseExpr() ast.ExprNode {
	return p.parseAssignExpr()
}

func (p *Parser) parseAssignExpr() ast.ExprNode {
	ps := p.s.StartSpan()
	lhs := p.parseBinExpr(0)
	if _, ok := p.accept(token.EQ); ok {
		rhs := p.parseAssignExpr()
		return &ast.AssignExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, LHS: lhs, RHS: rhs}
	}
	if op, ok := compoundAssignOps[p.s.Lookahead(0)]; ok {
		p.s.Get()
		rhs := p.parseAssignExpr()
		return &ast.AssignExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Compound: true, Op: op, LHS: lhs, RHS: rhs}
	}
	return lhs
}

func (p *Parser) parseBinExpr(minPrec int) ast.ExprNode {
	ps := p.s.StartSpan()
	lhs := p.parseUnaryExpr()
	for {
		k := p.s.Lookahead(0)
		prec, ok := binPrec[k]
		if !ok || prec < minPrec {
			return lhs
		}
		if k == token.KW_AS {
			p.s.Get()
			ty := p.parseType()
			lhs = &ast.CastExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Operand: lhs, Type: ty}
			continue
		}
		if k == token.DOTDOT || k == token.DOTDOTEQ {
			inclusive := k == token.DOTDOTEQ
			p.s.Get()
			var rhs ast.ExprNode
			if canStartExpr(p) {
				rhs = p.parseBinExpr(prec + 1)
			}
			op := ast.OpRange
			if inclusive {
				op = ast.OpRangeInc
			}
			lhs = &ast.BinOpExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Op: op, LHS: lhs, RHS: rhs}
			continue
		}
		op, known := binOpFromToken[k]
		if !known {
			return lhs
		}
		p.s.Get()
		rhs := p.parseBinExpr(prec + 1)
		lhs = &ast.BinOpExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Op: op, LHS: lhs, RHS: rhs}
	}
}

func canStartExpr(p *Parser) bool {
	switch p.s.Lookahead(0) {
	case token.SEMI, token.RPAREN, token.RBRACE, token.RBRACKET, token.COMMA, token.EOF, token.LBRACE:
		return false
	default:
		return true
	}
}

func (p *Parser) parseUnaryExpr() ast.ExprNode {
	ps := p.s.StartSpan()
	switch {
	case p.at(token.MINUS):
		p.s.Get()
		operand := p.parseUnaryExpr()
		return &ast.UniOpExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Op: ast.OpNeg, Operand: operand}
	case p.at(token.BANG):
		p.s.Get()
		operand := p.parseUnaryExpr()
		return &ast.UniOpExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Op: ast.OpNot, Operand: operand}
	case p.at(token.STAR):
		p.s.Get()
		operand := p.parseUnaryExpr()
		return &ast.DerefExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Value: operand}
	case p.at(token.AMP):
		p.s.Get()
		mut := false
		if _, ok := p.accept(token.KW_MUT); ok {
			mut = true
		}
		operand := p.parseUnaryExpr()
		return &ast.BorrowExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Mutable: mut, Operand: operand}
	default:
		return p.parsePostfixExpr()
	}
}

func (p *Parser) parsePostfixExpr() ast.ExprNode {
	ps := p.s.StartSpan()
	e := p.parsePrimaryExpr()
	for {
		switch {
		case p.at(token.QUESTION):
			p.s.Get()
			e = &ast.TryExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Operand: e}
		case p.at(token.DOT) && p.s.Lookahead(1) == token.INTEGER:
			p.s.Get()
			idx := p.s.Get()
			n, _ := idx.IntVal.Uint64()
			e = &ast.FieldExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Value: e, IsTupleIdx: true, TupleIdx: int(n)}
		case p.at(token.DOT) && p.s.Lookahead(1) == token.IDENT &&
			(p.s.Lookahead(2) == token.LPAREN || p.s.Lookahead(2) == token.COLONCOLON):
			p.s.Get()
			name := p.s.Get().Text
			var generics []*ast.TypeRef
			if p.at(token.COLONCOLON) {
				params := p.parsePathParams()
				generics = params.Types
			}
			args := p.parseCallArgs()
			e = &ast.CallMethodExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Receiver: e, Method: name, Generics: generics, Args: args}
		case p.at(token.DOT) && p.s.Lookahead(1) == token.IDENT:
			p.s.Get()
			name := p.s.Get().Text
			e = &ast.FieldExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Value: e, Name: name}
		case p.at(token.LPAREN):
			args := p.parseCallArgs()
			if nv, ok := e.(*ast.NamedValueExpr); ok {
				e = &ast.CallPathExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Callee: nv.Path, Args: args}
			} else {
				e = &ast.CallValueExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Callee: e, Args: args}
			}
		case p.at(token.LBRACKET):
			p.s.Get()
			idx := p.parseExpr()
			p.expect(token.RBRACKET)
			e = &ast.IndexExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Value: e, Index: idx}
		default:
			return e
		}
	}
}

func (p *Parser) parseCallArgs() []ast.ExprNode {
	p.expect(token.LPAREN)
	var args []ast.ExprNode
	for !p.at(token.RPAREN) {
		args = append(args, p.parseExpr())
		if !p.at(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parsePrimaryExpr() ast.ExprNode {
	ps := p.s.StartSpan()
	switch {
	case isLiteralLead(p) && p.s.Lookahead(0) != token.MINUS:
		return p.parseLiteralExprNode()
	case p.at(token.KW_TRUE):
		p.s.Get()
		return &ast.LiteralExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Kind: ast.LitBool, CoreType: token.CoreBool, BoolVal: true}
	case p.at(token.KW_FALSE):
		p.s.Get()
		return &ast.LiteralExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Kind: ast.LitBool, CoreType: token.CoreBool, BoolVal: false}
	case p.at(token.LBRACE):
		return p.parseBlockExprAsNode(p.parseBlock(""))
	case p.at(token.KW_RETURN):
		p.s.Get()
		var v ast.ExprNode
		if canStartExpr(p) {
			v = p.parseExpr()
		}
		return &ast.ReturnExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Value: v}
	case p.at(token.KW_BREAK):
		p.s.Get()
		var label string
		if p.at(token.LIFETIME) {
			label = p.s.Get().Text
		}
		var v ast.ExprNode
		if canStartExpr(p) {
			v = p.parseExpr()
		}
		return &ast.LoopControlExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Kind: ast.CtlBreak, Label: label, Value: v}
	case p.at(token.KW_CONTINUE):
		p.s.Get()
		var label string
		if p.at(token.LIFETIME) {
			label = p.s.Get().Text
		}
		return &ast.LoopControlExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Kind: ast.CtlContinue, Label: label}
	case p.at(token.LIFETIME) && p.s.Lookahead(1) == token.COLON:
		label := p.s.Get().Text
		p.s.Get()
		return p.parseLabeledExpr(ps, label)
	case p.at(token.KW_LOOP):
		p.s.Get()
		body := p.parseBlock("")
		return &ast.LoopExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Body: body}
	case p.at(token.KW_WHILE) && p.s.Lookahead(1) == token.KW_LET:
		p.s.Get()
		p.s.Get()
		pat := p.parsePattern()
		p.expect(token.EQ)
		val := p.parseExprNoStruct()
		body := p.parseBlock("")
		return &ast.WhileLetExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Pattern: pat, Value: val, Body: body}
	case p.at(token.KW_WHILE):
		p.s.Get()
		cond := p.parseExprNoStruct()
		body := p.parseBlock("")
		return &ast.WhileExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Cond: cond, Body: body}
	case p.at(token.KW_FOR):
		p.s.Get()
		pat := p.parsePattern()
		p.expect(token.KW_IN)
		it := p.parseExprNoStruct()
		body := p.parseBlock("")
		return &ast.ForExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Pattern: pat, Iter: it, Body: body}
	case p.at(token.KW_IF) && p.s.Lookahead(1) == token.KW_LET:
		return p.parseIfLet(ps)
	case p.at(token.KW_IF):
		return p.parseIf(ps)
	case p.at(token.KW_MATCH):
		return p.parseMatch(ps)
	case p.at(token.KW_MOVE) || p.at(token.PIPE) || p.at(token.PIPEPIPE):
		return p.parseClosure(ps)
	case p.at(token.LPAREN):
		return p.parseTupleOrParenExpr(ps)
	case p.at(token.LBRACKET):
		return p.parseArrayExpr(ps)
	case p.at(token.IDENT) && p.s.Lookahead(1) == token.BANG:
		name := p.s.Get().Text
		p.s.Get()
		toks := p.parseDelimitedTree()
		return &ast.MacroExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Invocation: &ast.MacroInvocation{Path: &ast.Path{Kind: ast.PathLocal, LocalName: name}, Tokens: toks}}
	default:
		path := p.parsePath()
		if p.at(token.LBRACE) && pathCanStartStructLiteral(p) {
			return p.parseStructLiteral(ps, path)
		}
		return &ast.NamedValueExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Path: path}
	}
}

// parseExprNoStruct suppresses `{` from being read as a struct literal
// opener while parsing the condition/scrutinee of `if`/`while`/`for`/
// `match`, matching the grammar ambiguity every Rust-like parser must
// resolve the same way.
func (p *Parser) parseExprNoStruct() ast.ExprNode {
	prev := p.noStruct
	p.noStruct = true
	defer func() { p.noStruct = prev }()
	return p.parseExpr()
}

func pathCanStartStructLiteral(p *Parser) bool { return !p.noStruct }

func (p *Parser) parseLabeledExpr(ps token.ProtoSpan, label string) ast.ExprNode {
	switch {
	case p.at(token.LBRACE):
		b := p.parseBlock(label)
		return b
	case p.at(token.KW_LOOP):
		p.s.Get()
		body := p.parseBlock("")
		return &ast.LoopExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Label: label, Body: body}
	case p.at(token.KW_WHILE) && p.s.Lookahead(1) == token.KW_LET:
		p.s.Get()
		p.s.Get()
		pat := p.parsePattern()
		p.expect(token.EQ)
		val := p.parseExprNoStruct()
		body := p.parseBlock("")
		return &ast.WhileLetExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Label: label, Pattern: pat, Value: val, Body: body}
	case p.at(token.KW_WHILE):
		p.s.Get()
		cond := p.parseExprNoStruct()
		body := p.parseBlock("")
		return &ast.WhileExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Label: label, Cond: cond, Body: body}
	case p.at(token.KW_FOR):
		p.s.Get()
		pat := p.parsePattern()
		p.expect(token.KW_IN)
		it := p.parseExprNoStruct()
		body := p.parseBlock("")
		return &ast.ForExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Label: label, Pattern: pat, Iter: it, Body: body}
	default:
		t := p.s.Get()
		p.sink.Error(t.Span.Start(), "E0102", "expected block or loop after label")
		return &ast.BlockExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}}
	}
}

func (p *Parser) parseBlockExprAsNode(b *ast.BlockExpr) ast.ExprNode { return b }

// parseBlock parses `{ stmts...; tail? }`.
func (p *Parser) parseBlock(label string) *ast.BlockExpr {
	ps := p.s.StartSpan()
	p.expect(token.LBRACE)
	b := &ast.BlockExpr{Label: label}
	for !p.at(token.RBRACE) {
		if p.isItemLead() {
			it := p.parseItem()
			b.Stmts = append(b.Stmts, ast.Stmt{Item: it})
			continue
		}
		if p.at(token.KW_LET) {
			b.Stmts = append(b.Stmts, ast.Stmt{Let: p.parseLet()})
			continue
		}
		e := p.parseExpr()
		if p.at(token.SEMI) {
			p.s.Get()
			b.Stmts = append(b.Stmts, ast.Stmt{Expr: e})
			continue
		}
		if p.at(token.RBRACE) {
			b.Tail = e
			break
		}
		b.Stmts = append(b.Stmts, ast.Stmt{Expr: e})
	}
	p.expect(token.RBRACE)
	b.Span = p.s.EndSpan(ps)
	return b
}

func (p *Parser) parseLet() *ast.LetExpr {
	ps := p.s.StartSpan()
	p.expect(token.KW_LET)
	pat := p.parsePattern()
	var ty *ast.TypeRef
	if _, ok := p.accept(token.COLON); ok {
		ty = p.parseType()
	}
	var val ast.ExprNode
	if _, ok := p.accept(token.EQ); ok {
		val = p.parseExpr()
	}
	p.expect(token.SEMI)
	return &ast.LetExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Pattern: pat, Type: ty, Value: val}
}

func (p *Parser) parseIf(ps token.ProtoSpan) ast.ExprNode {
	p.expect(token.KW_IF)
	cond := p.parseExprNoStruct()
	then := p.parseBlock("")
	var els ast.ExprNode
	if _, ok := p.accept(token.KW_ELSE); ok {
		switch {
		case p.at(token.KW_IF) && p.s.Lookahead(1) == token.KW_LET:
			els = p.parseIfLet(p.s.StartSpan())
		case p.at(token.KW_IF):
			els = p.parseIf(p.s.StartSpan())
		default:
			els = p.parseBlock("")
		}
	}
	return &ast.IfExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseIfLet(ps token.ProtoSpan) ast.ExprNode {
	p.expect(token.KW_IF)
	p.expect(token.KW_LET)
	pat := p.parsePattern()
	p.expect(token.EQ)
	val := p.parseExprNoStruct()
	then := p.parseBlock("")
	var els ast.ExprNode
	if _, ok := p.accept(token.KW_ELSE); ok {
		switch {
		case p.at(token.KW_IF) && p.s.Lookahead(1) == token.KW_LET:
			els = p.parseIfLet(p.s.StartSpan())
		case p.at(token.KW_IF):
			els = p.parseIf(p.s.StartSpan())
		default:
			els = p.parseBlock("")
		}
	}
	return &ast.IfLetExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Pattern: pat, Value: val, Then: then, Else: els}
}

func (p *Parser) parseMatch(ps token.ProtoSpan) ast.ExprNode {
	p.expect(token.KW_MATCH)
	val := p.parseExprNoStruct()
	p.expect(token.LBRACE)
	var arms []ast.MatchArm
	for !p.at(token.RBRACE) {
		pats := []*ast.Pattern{p.parsePattern()}
		for {
			if _, ok := p.accept(token.PIPE); ok {
				pats = append(pats, p.parsePattern())
				continue
			}
			break
		}
		var guard ast.ExprNode
		if _, ok := p.accept(token.KW_IF); ok {
			guard = p.parseExprNoStruct()
		}
		p.expect(token.FATARROW)
		body := p.parseExpr()
		// Pattern is a closed sum with no Or variant (spec.md §3), so a
		// `pat1 | pat2 => body` arm expands to one MatchArm per
		// alternative, all sharing the same guard and body.
		for _, pat := range pats {
			arms = append(arms, ast.MatchArm{Pattern: pat, Guard: guard, Body: body})
		}
		if !p.at(token.RBRACE) {
			p.accept(token.COMMA)
		}
	}
	p.expect(token.RBRACE)
	return &ast.MatchExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Value: val, Arms: arms}
}

func (p *Parser) parseClosure(ps token.ProtoSpan) ast.ExprNode {
	move := false
	if _, ok := p.accept(token.KW_MOVE); ok {
		move = true
	}
	var params []ast.ClosureParam
	if _, ok := p.accept(token.PIPEPIPE); !ok {
		p.expect(token.PIPE)
		for !p.at(token.PIPE) {
			pat := p.parsePattern()
			var ty *ast.TypeRef
			if _, ok := p.accept(token.COLON); ok {
				ty = p.parseType()
			}
			params = append(params, ast.ClosureParam{Pattern: pat, Type: ty})
			if !p.at(token.PIPE) {
				p.expect(token.COMMA)
			}
		}
		p.expect(token.PIPE)
	}
	var ret *ast.TypeRef
	if _, ok := p.accept(token.ARROW); ok {
		ret = p.parseType()
	}
	body := p.parseExpr()
	return &ast.ClosureExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Move: move, Params: params, ReturnType: ret, Body: body}
}

func (p *Parser) parseTupleOrParenExpr(ps token.ProtoSpan) ast.ExprNode {
	p.expect(token.LPAREN)
	if _, ok := p.accept(token.RPAREN); ok {
		return &ast.TupleExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}}
	}
	first := p.parseExpr()
	if _, ok := p.accept(token.RPAREN); ok {
		return first
	}
	elems := []ast.ExprNode{first}
	for {
		p.expect(token.COMMA)
		if p.at(token.RPAREN) {
			break
		}
		elems = append(elems, p.parseExpr())
		if p.at(token.RPAREN) {
			break
		}
	}
	p.expect(token.RPAREN)
	return &ast.TupleExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Elems: elems}
}

func (p *Parser) parseArrayExpr(ps token.ProtoSpan) ast.ExprNode {
	p.expect(token.LBRACKET)
	if _, ok := p.accept(token.RBRACKET); ok {
		return &ast.ArrayExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}}
	}
	first := p.parseExpr()
	if _, ok := p.accept(token.SEMI); ok {
		count := p.parseExpr()
		p.expect(token.RBRACKET)
		return &ast.ArrayExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Sized: true, Value: first, Count: count}
	}
	list := []ast.ExprNode{first}
	for !p.at(token.RBRACKET) {
		p.expect(token.COMMA)
		if p.at(token.RBRACKET) {
			break
		}
		list = append(list, p.parseExpr())
	}
	p.expect(token.RBRACKET)
	return &ast.ArrayExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, List: list}
}

func (p *Parser) parseStructLiteral(ps token.ProtoSpan, path *ast.Path) ast.ExprNode {
	p.expect(token.LBRACE)
	var fields []ast.StructLiteralField
	var base ast.ExprNode
	for !p.at(token.RBRACE) {
		if _, ok := p.accept(token.DOTDOT); ok {
			base = p.parseExpr()
			break
		}
		name := p.expect(token.IDENT).Text
		var val ast.ExprNode
		if _, ok := p.accept(token.COLON); ok {
			val = p.parseExpr()
		}
		fields = append(fields, ast.StructLiteralField{Name: name, Value: val})
		if !p.at(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RBRACE)
	return &ast.StructLiteralExpr{ExprBase: ast.ExprBase{Span: p.s.EndSpan(ps)}, Path: path, Fields: fields, Base: base}
}

func (p *Parser) parseLiteralExprNode() ast.ExprNode {
	ps := p.s.StartSpan()
	t := p.s.Get()
	e := literalFromToken(t)
	e.Span = p.s.EndSpan(ps)
	return e
}

// parseLiteralExpr is used by attribute-value position (`Name = "lit"`).
func (p *Parser) parseLiteralExpr() *ast.LiteralExpr {
	ps := p.s.StartSpan()
	t := p.s.Get()
	e := literalFromToken(t)
	e.Span = p.s.EndSpan(ps)
	return e
}

func literalFromToken(t token.Token) *ast.LiteralExpr {
	switch t.Kind {
	case token.INTEGER:
		return &ast.LiteralExpr{Kind: ast.LitInt, CoreType: t.CoreType, IntVal: t.IntVal}
	case token.FLOAT:
		return &ast.LiteralExpr{Kind: ast.LitFloat, CoreType: t.CoreType, FloatVal: t.FloatVal}
	case token.CHAR:
		return &ast.LiteralExpr{Kind: ast.LitChar, CoreType: token.CoreChar, CharVal: t.CharVal}
	case token.STRING:
		return &ast.LiteralExpr{Kind: ast.LitString, CoreType: token.CoreStr, StrVal: t.StrVal}
	case token.BYTESTRING:
		return &ast.LiteralExpr{Kind: ast.LitByteString, ByteVal: t.ByteVal}
	default:
		return &ast.LiteralExpr{Kind: ast.LitInt}
	}
}

// parseDelimitedTree reads one balanced bracket group — `(...)`,
// `[...]`, or `{...}` — as a token.Tree, the form macro invocation
// arguments and unexpanded attribute argument lists take (§4.2).
func (p *Parser) parseDelimitedTree() token.Tree {
	open := p.s.Get()
	closeKind := token.ClosingFor(open.Kind)
	var children []token.Tree
	for p.s.Lookahead(0) != closeKind && p.s.Lookahead(0) != token.EOF {
		switch p.s.Lookahead(0) {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			children = append(children, p.parseDelimitedTree())
		default:
			children = append(children, token.Tree{Leaf: p.s.Get()})
		}
	}
	close := p.s.Get()
	return token.Tree{Open: open, Close: close, Children: children}
}
