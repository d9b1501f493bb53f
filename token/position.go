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

// Package token defines source positions and the token vocabulary shared
// by the lexer, the token stream, and the parser.
package token

import "fmt"

// A Pos is a single point in a source file.
type Pos struct {
	Filename string
	Line     int
	Column   int
}

// NoPos is the zero value for Pos; it is used when a node has no
// meaningful position (synthesized nodes, lang items).
var NoPos = Pos{}

// IsValid reports whether the position is meaningful.
func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// A Span is a contiguous source range, from Start up to and including
// End. The lexer creates spans; the parser threads them through every
// AST node; lowering preserves them onto HIR nodes.
type Span struct {
	Filename string
	StartLine, StartCol int
	EndLine, EndCol     int
}

// NoSpan is the zero value of Span.
var NoSpan = Span{}

func (s Span) IsValid() bool { return s.Filename != "" || s.StartLine > 0 }

// Start returns the span's opening position.
func (s Span) Start() Pos { return Pos{s.Filename, s.StartLine, s.StartCol} }

// End returns the span's closing position.
func (s Span) End() Pos { return Pos{s.Filename, s.EndLine, s.EndCol} }

func (s Span) String() string {
	if !s.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", s.Filename, s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}

// Merge returns the smallest span enclosing both s and other. Used when
// a parser production folds several sub-node spans into a parent span.
func (s Span) Merge(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() {
		return s
	}
	out := s
	if other.StartLine < s.StartLine || (other.StartLine == s.StartLine && other.StartCol < s.StartCol) {
		out.StartLine, out.StartCol = other.StartLine, other.StartCol
	}
	if other.EndLine > s.EndLine || (other.EndLine == s.EndLine && other.EndCol > s.EndCol) {
		out.EndLine, out.EndCol = other.EndLine, other.EndCol
	}
	return out
}

// A ProtoSpan is a half-open span: the start position captured by
// Stream.StartSpan, later closed by Stream.EndSpan once the production
// finishes consuming tokens.
type ProtoSpan struct {
	Filename           string
	StartLine, StartCol int
}

// Close materialises a full Span ending at the given position.
func (p ProtoSpan) Close(end Pos) Span {
	return Span{
		Filename:  p.Filename,
		StartLine: p.StartLine,
		StartCol:  p.StartCol,
		EndLine:   end.Line,
		EndCol:    end.Column,
	}
}
