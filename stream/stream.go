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

// Package stream implements C3: a uniform TokenStream interface over a
// file-backed scan.Lexer, an existing token.Tree (macro expansion), or
// an owned token.Tree, with bounded lookahead and single-slot putback.
package stream

import (
	"github.com/latticelang/frontc/errors"
	"github.com/latticelang/frontc/scan"
	"github.com/latticelang/frontc/token"
)

// source abstracts the three backing kinds the spec requires: a lexer,
// an externally-owned tree, or a tree this Stream owns.
type source interface {
	next() token.Token
}

type lexerSource struct{ lx *scan.Lexer }

func (s *lexerSource) next() token.Token {
	for {
		t := s.lx.Next()
		switch t.Kind {
		case token.WHITESPACE, token.COMMENT, token.NEWLINE:
			continue
		default:
			return t
		}
	}
}

// treeSource drains a pre-built token.Tree in depth-first leaf order,
// the form interpolated-fragment and macro-matcher streams take.
type treeSource struct {
	leaves []token.Token
	pos    int
}

func (s *treeSource) next() token.Token {
	if s.pos >= len(s.leaves) {
		return token.Token{Kind: token.EOF}
	}
	t := s.leaves[s.pos]
	s.pos++
	return t
}

const maxLookahead = 3

// Stream is the parser's sole view of the token sequence.
type Stream struct {
	src       source
	sink      *errors.Sink
	putbackOK bool
	putback   token.Token
	queue     []token.Token // lookahead buffer, drained by Get before reading further
	filename  string
	lastPos   token.Pos
}

// NewFromLexer builds a Stream over a file-backed lexer, consuming the
// shebang line first per §4.1 rule 3.
func NewFromLexer(lx *scan.Lexer, filename string, sink *errors.Sink) *Stream {
	lx.ConsumeShebang()
	return &Stream{src: &lexerSource{lx: lx}, sink: sink, filename: filename}
}

// NewFromTree builds a Stream over an existing token.Tree, the form
// used for macro-rules matching and interpolated fragment parsing.
func NewFromTree(t token.Tree, sink *errors.Sink) *Stream {
	return &Stream{src: &treeSource{leaves: t.Flatten()}, sink: sink}
}

// Get returns the next non-trivia token, taking a pending Putback
// first, then the lookahead queue, before reading from the source.
func (s *Stream) Get() token.Token {
	var t token.Token
	switch {
	case s.putbackOK:
		t = s.putback
		s.putbackOK = false
	case len(s.queue) > 0:
		t = s.queue[0]
		s.queue = s.queue[1:]
	default:
		t = s.src.next()
	}
	s.lastPos = t.Span.End()
	return t
}

// Putback caches one token to be returned by the next Get. A second
// Putback before an intervening Get is a bug.
func (s *Stream) Putback(t token.Token) {
	if s.putbackOK {
		s.sink.Bug(t.Span.Start(), "Double putback")
	}
	s.putback = t
	s.putbackOK = true
}

// Lookahead returns the Kind of the i'th future token (0 = the token
// Get would return next) without consuming it. At most three tokens of
// lookahead may be requested; exceeding this is a bug.
func (s *Stream) Lookahead(i int) token.Kind {
	if i >= maxLookahead {
		s.sink.Bug(s.lastPos, "lookahead(%d) exceeds the 3-token limit", i)
	}
	idx := i
	if s.putbackOK {
		if idx == 0 {
			return s.putback.Kind
		}
		idx--
	}
	for idx >= len(s.queue) {
		s.queue = append(s.queue, s.src.next())
	}
	return s.queue[idx].Kind
}

// StartSpan returns a ProtoSpan at the stream's current logical
// position (before the next Get).
func (s *Stream) StartSpan() token.ProtoSpan {
	pos := s.peekStartPos()
	return token.ProtoSpan{Filename: s.filename, StartLine: pos.Line, StartCol: pos.Column}
}

func (s *Stream) peekStartPos() token.Pos {
	if s.putbackOK {
		return s.putback.Span.Start()
	}
	if len(s.queue) > 0 {
		return s.queue[0].Span.Start()
	}
	return s.lastPos
}

// EndSpan materialises a Span closing at the stream's current position
// (after the most recent Get).
func (s *Stream) EndSpan(ps token.ProtoSpan) token.Span {
	return ps.Close(s.lastPos)
}

// Filename reports the source file this stream was built over (empty
// for a tree-backed stream with no file association).
func (s *Stream) Filename() string { return s.filename }
