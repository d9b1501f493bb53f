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

// Package parser implements C5: pure recursive descent from a
// stream.Stream of tokens to an ast.Crate.
package parser

import (
	"github.com/latticelang/frontc/ast"
	"github.com/latticelang/frontc/errors"
	"github.com/latticelang/frontc/scan"
	"github.com/latticelang/frontc/stream"
	"github.com/latticelang/frontc/token"
)

// Loader resolves an external `mod foo;` declaration to source text, the
// file-system collaborator spec.md §4.3 describes as external to this
// module's core. The parser calls it only for inline-eligible modules;
// a nil Loader makes every external mod declaration a parse error.
type Loader interface {
	// Load returns the file content and its canonical path for either
	// "<dir>/foo.rs" or "<dir>/foo/mod.rs". It reports an error if both
	// exist, or if neither does.
	Load(dir, name string) (content []byte, path string, err error)
}

// Parser holds the token stream and the diagnostic sink threaded
// through every production.
type Parser struct {
	s        *stream.Stream
	sink     *errors.Sink
	loader   Loader
	filename string

	// allowExternalMods is false once the root was read from "-" (§4.3:
	// "Reading standard input permits no external module loading").
	allowExternalMods bool

	// noStruct suppresses struct-literal parsing at a bare `{` while
	// inside the condition/scrutinee of if/while/for/match, resolving
	// the same grammar ambiguity every Rust-like parser resolves.
	noStruct bool
}

// ParseFile parses filename as the crate root. If filename is "-",
// standard input is read instead and no external module loading is
// permitted for the whole parse.
func ParseFile(filename string, lx *scan.Lexer, sink *errors.Sink, loader Loader) (*ast.Crate, errors.Error) {
	p := &Parser{
		s:                 stream.NewFromLexer(lx, filename, sink),
		sink:              sink,
		loader:            loader,
		filename:          filename,
		allowExternalMods: filename != "-",
	}
	var crate *ast.Crate
	err := sink.RunPhase(func() {
		root := p.parseModule(filename, true)
		crate = &ast.Crate{Name: crateNameFromPath(filename), Root: root}
	})
	return crate, err
}

func crateNameFromPath(filename string) string {
	if filename == "-" || filename == "" {
		return "main"
	}
	start := 0
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '/' {
			start = i + 1
			break
		}
	}
	end := len(filename)
	for i := end - 1; i > start; i-- {
		if filename[i] == '.' {
			end = i
			break
		}
	}
	return filename[start:end]
}

// parseModule parses a module body: the whole file for isFileRoot, or
// the contents of `{ ... }` for an inline `mod name { ... }`.
func (p *Parser) parseModule(filename string, isFileRoot bool) *ast.Module {
	m := &ast.Module{Filename: filename, IsFileRoot: isFileRoot}
	m.Attrs = p.parseInnerAttrs()
	for !p.atModuleEnd() {
		m.Items = append(m.Items, p.parseItem())
	}
	return m
}

func (p *Parser) atModuleEnd() bool {
	return p.s.Lookahead(0) == token.EOF || p.s.Lookahead(0) == token.RBRACE
}

// expect consumes the next token and raises a parse error (§4.3
// "Failure") if it is not of kind k.
func (p *Parser) expect(k token.Kind) token.Token {
	t := p.s.Get()
	if t.Kind != k {
		p.sink.Error(t.Span.Start(), "E0100", "expected %s, found %s", k, t.Kind)
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.s.Lookahead(0) == k }

func (p *Parser) accept(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.s.Get(), true
	}
	return token.Token{}, false
}
