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

// Package scan implements C2: a byte stream to Token stream lexer,
// Unicode-aware, emitting comment/whitespace as classified trivia
// tokens the way spec.md §4.1 describes.
package scan

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/xerrors"

	"github.com/latticelang/frontc/errors"
	"github.com/latticelang/frontc/token"
)

// Lexer tokenises a single source file (or "-" for standard input, per
// spec.md §6). It is stateful and single-use: construct one per file.
type Lexer struct {
	filename string
	src      []byte
	pos      int // byte offset into src
	line     int
	col      int // 1-based byte column within the current line
	sink     *errors.Sink
}

// New reads all of r into memory (the spec has no streaming requirement;
// the lexer operates on a complete buffer like mrustc's src/parse/lex.cpp)
// and returns a Lexer positioned at the start, having consumed a single
// leading UTF-8 BOM if present.
func New(filename string, r io.Reader, sink *errors.Sink) (*Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, xerrors.Errorf("scan: reading %s: %w", filename, err)
	}
	l := &Lexer{filename: filename, src: data, line: 1, col: 1, sink: sink}
	if bytes3BOM(data) {
		l.pos = 3
		l.col = 1
	}
	return l, nil
}

func bytes3BOM(b []byte) bool {
	return len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF
}

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) peekByte() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advanceByte() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *Lexer) here() token.Pos {
	return token.Pos{Filename: l.filename, Line: l.line, Column: l.col}
}

func (l *Lexer) startProto() token.ProtoSpan {
	return token.ProtoSpan{Filename: l.filename, StartLine: l.line, StartCol: l.col}
}

func (l *Lexer) span(ps token.ProtoSpan) token.Span {
	return ps.Close(l.here())
}

// Next returns the next raw token, including whitespace, newline, and
// comment trivia (§4.1 rules 1-2). Consumers wanting a "real" token
// stream filter these via stream.Stream, which also special-cases the
// rule-3 shebang handling at file start.
func (l *Lexer) Next() token.Token {
	if l.eof() {
		return token.Token{Kind: token.EOF, Span: l.span(l.startProto())}
	}

	ps := l.startProto()
	b := l.peekByte()

	switch {
	case b == ' ' || b == '\t' || b == '\r':
		return l.lexWhitespace(ps)
	case b == '\n':
		l.advanceByte()
		return token.Token{Kind: token.NEWLINE, Span: l.span(ps), Text: "\n"}
	case b == '/' && l.peekByteAt(1) == '/':
		return l.lexLineComment(ps)
	case b == '/' && l.peekByteAt(1) == '*':
		return l.lexBlockComment(ps)
	case b == '\'':
		return l.lexCharOrLifetime(ps)
	case b == '"':
		return l.lexString(ps, false)
	case b == 'b' && l.peekByteAt(1) == '"':
		l.advanceByte()
		return l.lexString(ps, true)
	case b == 'b' && l.peekByteAt(1) == 'r' && (l.peekByteAt(2) == '"' || l.peekByteAt(2) == '#'):
		l.advanceByte()
		return l.lexRawString(ps, true)
	case b == 'r' && (l.peekByteAt(1) == '"' || l.peekByteAt(1) == '#'):
		return l.lexRawString(ps, false)
	case isDigit(b):
		return l.lexNumber(ps)
	case isIdentStart(b) || b >= utf8.RuneSelf:
		return l.lexIdentOrKeyword(ps)
	default:
		return l.lexSymbol(ps)
	}
}

func (l *Lexer) lexWhitespace(ps token.ProtoSpan) token.Token {
	start := l.pos
	for !l.eof() {
		b := l.peekByte()
		if b == ' ' || b == '\t' || b == '\r' {
			l.advanceByte()
			continue
		}
		break
	}
	return token.Token{Kind: token.WHITESPACE, Span: l.span(ps), Text: string(l.src[start:l.pos])}
}

func (l *Lexer) lexLineComment(ps token.ProtoSpan) token.Token {
	start := l.pos
	for !l.eof() && l.peekByte() != '\n' {
		l.advanceByte()
	}
	return token.Token{Kind: token.COMMENT, Span: l.span(ps), Text: string(l.src[start:l.pos])}
}

func (l *Lexer) lexBlockComment(ps token.ProtoSpan) token.Token {
	start := l.pos
	l.advanceByte() // '/'
	l.advanceByte() // '*'
	depth := 1
	for depth > 0 {
		if l.eof() {
			l.sink.Error(l.here(), "E0001", "unterminated block comment")
			break
		}
		if l.peekByte() == '/' && l.peekByteAt(1) == '*' {
			l.advanceByte()
			l.advanceByte()
			depth++
			continue
		}
		if l.peekByte() == '*' && l.peekByteAt(1) == '/' {
			l.advanceByte()
			l.advanceByte()
			depth--
			continue
		}
		l.advanceByte()
	}
	return token.Token{Kind: token.COMMENT, Span: l.span(ps), Text: string(l.src[start:l.pos])}
}

// ConsumeShebang implements §4.1 rule 3: at (line 1, col 1) a `#!`
// followed by `/` consumes to end of line and is treated as whitespace;
// `#![` is instead the crate-attribute opener and must not be consumed
// here. Called once by stream.Stream before the first real Next().
func (l *Lexer) ConsumeShebang() {
	if l.line != 1 || l.col != 1 {
		return
	}
	if l.peekByte() != '#' || l.peekByteAt(1) != '!' || l.peekByteAt(2) != '/' {
		return
	}
	for !l.eof() && l.peekByte() != '\n' {
		l.advanceByte()
	}
}

func isDigit(b byte) bool    { return b >= '0' && b <= '9' }
func isHexDigit(b byte) bool { return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') }
func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func isIdentCont(b byte) bool { return isIdentStart(b) || isDigit(b) }

// decodeRune explicitly decodes the UTF-8 sequence at the lexer's
// current position (§4.1 "Codepoint helper"), reporting invalid
// continuations as errors and advancing past the sequence. Returns
// utf8.RuneError on failure, having still advanced one byte.
func (l *Lexer) decodeRune() rune {
	if l.eof() {
		return utf8.RuneError
	}
	r, size := utf8.DecodeRune(l.src[l.pos:])
	if r == utf8.RuneError && size <= 1 {
		l.sink.Error(l.here(), "E0002", "invalid UTF-8 sequence")
		l.advanceByte()
		return utf8.RuneError
	}
	for i := 0; i < size; i++ {
		l.advanceByte()
	}
	return r
}

func (l *Lexer) lexIdentOrKeyword(ps token.ProtoSpan) token.Token {
	start := l.pos
	for !l.eof() {
		b := l.peekByte()
		if b < utf8.RuneSelf {
			if !isIdentCont(b) {
				break
			}
			l.advanceByte()
			continue
		}
		save := l.pos
		r := l.decodeRune()
		if r == utf8.RuneError {
			l.pos = save
			break
		}
	}
	text := string(l.src[start:l.pos])

	// A trailing '!' makes this a macro-name token, never a keyword.
	if !l.eof() && l.peekByte() == '!' {
		return token.Token{Kind: token.IDENT, Span: l.span(ps), Text: text}
	}
	if kw, ok := token.Keywords[text]; ok {
		return token.Token{Kind: kw, Span: l.span(ps), Text: text}
	}
	return token.Token{Kind: token.IDENT, Span: l.span(ps), Text: text}
}

func (l *Lexer) lexCharOrLifetime(ps token.ProtoSpan) token.Token {
	l.advanceByte() // opening '
	// §4.1 rule 6: lifetime vs char. If the next char begins an
	// identifier and is NOT immediately followed by a closing quote,
	// this is a lifetime, not a char literal.
	if isIdentStart(l.peekByte()) {
		save := l.pos
		start := l.pos
		for !l.eof() && isIdentCont(l.peekByte()) {
			l.advanceByte()
		}
		if l.peekByte() != '\'' {
			name := string(l.src[start:l.pos])
			return token.Token{Kind: token.LIFETIME, Span: l.span(ps), Text: "'" + name}
		}
		l.pos = save
	}

	r, ok := l.lexEscapedChar('\'')
	if !ok {
		l.sink.Error(l.here(), "E0003", "invalid character literal")
	}
	if l.peekByte() != '\'' {
		l.sink.Error(l.here(), "E0004", "unterminated character literal")
	} else {
		l.advanceByte()
	}
	return token.Token{Kind: token.CHAR, Span: l.span(ps), CharVal: r, CoreType: token.CoreChar}
}

// lexEscapedChar decodes one (possibly escaped) character for use in
// both char and string literals, per §4.1 rule 5's escape set.
func (l *Lexer) lexEscapedChar(quote byte) (rune, bool) {
	if l.eof() {
		return 0, false
	}
	if l.peekByte() != '\\' {
		return l.decodeRune(), true
	}
	l.advanceByte() // backslash
	if l.eof() {
		return 0, false
	}
	e := l.advanceByte()
	switch e {
	case '\\':
		return '\\', true
	case '\'':
		return '\'', true
	case '"':
		return '"', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '0':
		return 0, true
	case 'x':
		v := 0
		for i := 0; i < 2; i++ {
			if !isHexDigit(l.peekByte()) {
				l.sink.Error(l.here(), "E0005", "invalid \\x escape")
				return 0, false
			}
			v = v*16 + hexVal(l.advanceByte())
		}
		return rune(v), true
	case 'u':
		if l.peekByte() != '{' {
			l.sink.Error(l.here(), "E0006", "expected '{' after \\u")
			return 0, false
		}
		l.advanceByte()
		v := 0
		digits := 0
		for isHexDigit(l.peekByte()) {
			if digits >= 6 {
				l.sink.Error(l.here(), "E0007", "\\u{...} escape too long")
				return 0, false
			}
			v = v*16 + hexVal(l.advanceByte())
			digits++
		}
		if digits == 0 || l.peekByte() != '}' {
			l.sink.Error(l.here(), "E0006", "invalid \\u{...} escape")
			return 0, false
		}
		l.advanceByte()
		return rune(v), true
	case '\n':
		// Newline-splicing: consume through the next non-space.
		for !l.eof() && (l.peekByte() == ' ' || l.peekByte() == '\t' || l.peekByte() == '\n' || l.peekByte() == '\r') {
			l.advanceByte()
		}
		return -1, true // sentinel: caller must skip, no char produced
	default:
		l.sink.Error(l.here(), "E0008", "unknown escape sequence '\\%c'", e)
		return 0, false
	}
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}

func (l *Lexer) lexString(ps token.ProtoSpan, isByte bool) token.Token {
	l.advanceByte() // opening quote
	var sb strings.Builder
	var bb []byte
	for {
		if l.eof() {
			l.sink.Error(l.here(), "E0004", "unterminated string literal")
			break
		}
		if l.peekByte() == '"' {
			l.advanceByte()
			break
		}
		r, ok := l.lexEscapedChar('"')
		if !ok {
			break
		}
		if r == -1 {
			continue // newline splice produced no character
		}
		if isByte {
			bb = append(bb, byte(r))
		} else {
			sb.WriteRune(r)
		}
	}
	if isByte {
		return token.Token{Kind: token.BYTESTRING, Span: l.span(ps), ByteVal: bb}
	}
	return token.Token{Kind: token.STRING, Span: l.span(ps), StrVal: sb.String(), CoreType: token.CoreStr}
}

func (l *Lexer) lexRawString(ps token.ProtoSpan, isByte bool) token.Token {
	l.advanceByte() // 'r'
	hashes := 0
	for l.peekByte() == '#' {
		l.advanceByte()
		hashes++
	}
	if l.peekByte() != '"' {
		l.sink.Error(l.here(), "E0009", "expected '\"' to start raw string")
		return token.Token{Kind: token.ILLEGAL, Span: l.span(ps)}
	}
	l.advanceByte()
	start := l.pos
	for {
		if l.eof() {
			l.sink.Error(l.here(), "E0010", "unterminated raw string literal")
			break
		}
		if l.peekByte() == '"' {
			closeStart := l.pos
			save := l.pos
			l.advanceByte()
			matched := 0
			for matched < hashes && l.peekByte() == '#' {
				l.advanceByte()
				matched++
			}
			if matched == hashes {
				body := string(l.src[start:closeStart])
				if isByte {
					return token.Token{Kind: token.BYTESTRING, Span: l.span(ps), ByteVal: []byte(body)}
				}
				return token.Token{Kind: token.STRING, Span: l.span(ps), StrVal: body, CoreType: token.CoreStr}
			}
			l.pos = save
		}
		l.advanceByte()
	}
	body := string(l.src[start:l.pos])
	if isByte {
		return token.Token{Kind: token.BYTESTRING, Span: l.span(ps), ByteVal: []byte(body)}
	}
	return token.Token{Kind: token.STRING, Span: l.span(ps), StrVal: body}
}

func (l *Lexer) lexSymbol(ps token.ProtoSpan) token.Token {
	// §4.1 rule 7: greedy longest-match over the ordered symbol table,
	// remembering the longest prefix that is a complete entry and
	// un-reading to that point.
	const maxSymLen = 3
	var buf [maxSymLen]byte
	n := 0
	for n < maxSymLen && !l.eofAt(n) {
		buf[n] = l.src[l.pos+n]
		n++
	}
	best := -1
	bestLen := 0
	for i := n; i >= 1; i-- {
		cand := string(buf[:i])
		if k := lookupSymbol(cand); k != token.ILLEGAL {
			best = int(k)
			bestLen = i
			break
		}
	}
	if best == -1 {
		r := l.decodeRune()
		l.sink.Error(l.here(), "E0011", "unexpected byte sequence %q", string(r))
		return token.Token{Kind: token.ILLEGAL, Span: l.span(ps)}
	}
	for i := 0; i < bestLen; i++ {
		l.advanceByte()
	}
	return token.Token{Kind: token.Kind(best), Span: l.span(ps), Text: string(buf[:bestLen])}
}

func (l *Lexer) eofAt(off int) bool { return l.pos+off >= len(l.src) }

func lookupSymbol(s string) token.Kind {
	for _, e := range token.Symbols {
		if e.Text == s {
			return e.Kind
		}
	}
	return token.ILLEGAL
}

func (l *Lexer) lexNumber(ps token.ProtoSpan) token.Token {
	start := l.pos
	textStart := l.pos
	base := 10
	if l.peekByte() == '0' {
		switch l.peekByteAt(1) {
		case 'x', 'X':
			base = 16
			l.advanceByte()
			l.advanceByte()
			start = l.pos
		case 'o', 'O':
			base = 8
			l.advanceByte()
			l.advanceByte()
			start = l.pos
		case 'b', 'B':
			base = 2
			l.advanceByte()
			l.advanceByte()
			start = l.pos
		}
	}

	digitsOK := func(b byte) bool {
		switch base {
		case 16:
			return isHexDigit(b) || b == '_'
		case 8:
			return (b >= '0' && b <= '7') || b == '_'
		case 2:
			return b == '0' || b == '1' || b == '_'
		default:
			return isDigit(b) || b == '_'
		}
	}
	for !l.eof() && digitsOK(l.peekByte()) {
		l.advanceByte()
	}
	intEnd := l.pos

	isFloat := false
	if base == 10 {
		// A trailing '.' followed by a digit escalates to float; a '.'
		// NOT followed by a digit is a separate Dot token (lookahead
		// putback handled by simply not consuming it here).
		if l.peekByte() == '.' && isDigit(l.peekByteAt(1)) {
			isFloat = true
			l.advanceByte()
			for !l.eof() && (isDigit(l.peekByte()) || l.peekByte() == '_') {
				l.advanceByte()
			}
		}
		if l.peekByte() == 'e' || l.peekByte() == 'E' {
			save := l.pos
			l.advanceByte()
			if l.peekByte() == '+' || l.peekByte() == '-' {
				l.advanceByte()
			}
			if isDigit(l.peekByte()) {
				isFloat = true
				for !l.eof() && (isDigit(l.peekByte()) || l.peekByte() == '_') {
					l.advanceByte()
				}
			} else {
				l.pos = save // not an exponent after all
			}
		}
	} else if l.peekByte() == '.' && isDigit(l.peekByteAt(1)) {
		// §9 Open Question: non-decimal floats are rejected (matches
		// mrustc), so this is reported rather than silently widened.
		l.sink.Error(l.here(), "E0012", "non-decimal floating point literal is not permitted")
	}

	digits := stripUnderscores(string(l.src[start:l.pos]))
	if len(digits) > 60 {
		l.sink.Error(l.here(), "E0013", "integer or float literal has too many significant digits")
	}

	if isFloat {
		suffix, ct := l.lexSuffix(token.FloatSuffixes)
		dec, err := token.NewDecimalFromString(digits)
		if err != nil {
			l.sink.Error(l.here(), "E0014", "invalid floating point literal")
		}
		if suffix == "" {
			ct = token.CoreAny
		}
		return token.Token{Kind: token.FLOAT, Span: l.span(ps), FloatVal: dec, CoreType: ct, Text: string(l.src[textStart:l.pos])}
	}

	var val *token.Decimal
	if base == 10 {
		var err error
		val, err = token.NewDecimalFromString(digits)
		if err != nil {
			l.sink.Error(l.here(), "E0014", "invalid integer literal")
		}
	} else {
		u, err := parseUintBase(digits, base)
		if err != nil {
			l.sink.Error(l.here(), "E0014", "invalid integer literal")
		}
		val = token.NewDecimalFromUint64(u)
	}
	_ = intEnd
	suffix, ct := l.lexSuffix(token.IntegerSuffixes)
	if suffix == "" {
		ct = token.CoreAny
	}
	return token.Token{Kind: token.INTEGER, Span: l.span(ps), IntVal: val, CoreType: ct, Text: string(l.src[textStart:l.pos])}
}

func stripUnderscores(s string) string {
	return strings.ReplaceAll(s, "_", "")
}

func parseUintBase(digits string, base int) (uint64, error) {
	var v uint64
	for i := 0; i < len(digits); i++ {
		var d uint64
		c := digits[i]
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			return 0, fmt.Errorf("bad digit %q", c)
		}
		v = v*uint64(base) + d
	}
	return v, nil
}

// lexSuffix reads an optional trailing identifier run and checks it
// against the allowed suffix table; an unrecognised suffix is an error
// (§4.1 rule 4) rather than silently ignored.
func (l *Lexer) lexSuffix(table map[string]token.CoreType) (string, token.CoreType) {
	if !isIdentStart(l.peekByte()) {
		return "", token.CoreAny
	}
	start := l.pos
	for !l.eof() && isIdentCont(l.peekByte()) {
		l.advanceByte()
	}
	text := string(l.src[start:l.pos])
	ct, ok := table[text]
	if !ok {
		l.sink.Error(l.here(), "E0015", "invalid literal suffix %q", text)
		return text, token.CoreAny
	}
	return text, ct
}
