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

package token

import "fmt"

// CoreType tags the explicit or deferred type of a numeric literal.
type CoreType int

const (
	CoreAny CoreType = iota // deferred; resolved later by inference
	CoreI8
	CoreI16
	CoreI32
	CoreI64
	CoreISize
	CoreU8
	CoreU16
	CoreU32
	CoreU64
	CoreUSize
	CoreF32
	CoreF64
	CoreBool
	CoreChar
	CoreStr
)

var coreTypeNames = map[CoreType]string{
	CoreAny: "{integer}", CoreI8: "i8", CoreI16: "i16", CoreI32: "i32",
	CoreI64: "i64", CoreISize: "isize", CoreU8: "u8", CoreU16: "u16",
	CoreU32: "u32", CoreU64: "u64", CoreUSize: "usize", CoreF32: "f32",
	CoreF64: "f64", CoreBool: "bool", CoreChar: "char", CoreStr: "str",
}

func (c CoreType) String() string { return coreTypeNames[c] }

// IntegerSuffixes lists every permitted explicit integer literal suffix.
var IntegerSuffixes = map[string]CoreType{
	"i8": CoreI8, "i16": CoreI16, "i32": CoreI32, "i64": CoreI64, "isize": CoreISize,
	"u8": CoreU8, "u16": CoreU16, "u32": CoreU32, "u64": CoreU64, "usize": CoreUSize,
}

// FloatSuffixes lists every permitted explicit float literal suffix.
var FloatSuffixes = map[string]CoreType{
	"f32": CoreF32, "f64": CoreF64,
}

// Kind identifies the lexical category of a Token.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	// Trivia, emitted by the raw lexer and filtered by Stream.Get.
	WHITESPACE
	NEWLINE
	COMMENT

	IDENT
	LIFETIME

	INTEGER
	FLOAT
	CHAR
	STRING
	BYTESTRING

	// Interpolated fragments: AST pieces spliced into a token stream by
	// macro expansion (an external collaborator). The parser has a
	// dedicated acceptor for each.
	FRAG_TYPE
	FRAG_PATTERN
	FRAG_PATH
	FRAG_EXPR
	FRAG_STMT
	FRAG_BLOCK
	FRAG_META

	kindKeywordStart
	// Keywords.
	KW_AS
	KW_BREAK
	KW_CONST
	KW_CONTINUE
	KW_CRATE
	KW_DYN
	KW_ELSE
	KW_ENUM
	KW_EXTERN
	KW_FALSE
	KW_FN
	KW_FOR
	KW_IF
	KW_IMPL
	KW_IN
	KW_LET
	KW_LOOP
	KW_MACRO
	KW_MATCH
	KW_MOD
	KW_MOVE
	KW_MUT
	KW_PROC
	KW_PUB
	KW_REF
	KW_RETURN
	KW_SELF_VALUE
	KW_SELF_TYPE
	KW_STATIC
	KW_STRUCT
	KW_SUPER
	KW_TRAIT
	KW_TRUE
	KW_TYPE
	KW_TYPEOF
	KW_UNSAFE
	KW_USE
	KW_WHERE
	KW_WHILE
	KW_BOX
	kindKeywordEnd

	kindSymbolStart
	// Symbols, longest-match table lives in symbolTable below.
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	SEMI
	COLON
	COLONCOLON
	ARROW
	FATARROW
	DOT
	DOTDOT
	DOTDOTEQ
	DOTDOTDOT
	AT
	POUND
	DOLLAR
	QUESTION
	BANG
	TILDE
	AMP
	AMPAMP
	PIPE
	PIPEPIPE
	CARET
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	SHL
	SHR
	EQ
	EQEQ
	NE
	LT
	LE
	GT
	GE
	PLUSEQ
	MINUSEQ
	STAREQ
	SLASHEQ
	PERCENTEQ
	AMPEQ
	PIPEEQ
	CARETEQ
	SHLEQ
	SHREQ
	UNDERSCORE
	kindSymbolEnd
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", WHITESPACE: "whitespace", NEWLINE: "newline",
	COMMENT: "comment", IDENT: "identifier", LIFETIME: "lifetime",
	INTEGER: "integer", FLOAT: "float", CHAR: "char", STRING: "string",
	BYTESTRING: "byte-string",
	FRAG_TYPE: "$type", FRAG_PATTERN: "$pat", FRAG_PATH: "$path",
	FRAG_EXPR: "$expr", FRAG_STMT: "$stmt", FRAG_BLOCK: "$block", FRAG_META: "$meta",

	KW_AS: "as", KW_BREAK: "break", KW_CONST: "const", KW_CONTINUE: "continue",
	KW_CRATE: "crate", KW_DYN: "dyn", KW_ELSE: "else", KW_ENUM: "enum",
	KW_EXTERN: "extern", KW_FALSE: "false", KW_FN: "fn", KW_FOR: "for",
	KW_IF: "if", KW_IMPL: "impl", KW_IN: "in", KW_LET: "let", KW_LOOP: "loop",
	KW_MACRO: "macro", KW_MATCH: "match", KW_MOD: "mod", KW_MOVE: "move",
	KW_MUT: "mut", KW_PROC: "proc", KW_PUB: "pub", KW_REF: "ref",
	KW_RETURN: "return", KW_SELF_VALUE: "self", KW_SELF_TYPE: "Self",
	KW_STATIC: "static", KW_STRUCT: "struct", KW_SUPER: "super",
	KW_TRAIT: "trait", KW_TRUE: "true", KW_TYPE: "type", KW_TYPEOF: "typeof",
	KW_UNSAFE: "unsafe", KW_USE: "use", KW_WHERE: "where", KW_WHILE: "while",
	KW_BOX: "box",

	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACKET: "[", RBRACKET: "]",
	COMMA: ",", SEMI: ";", COLON: ":", COLONCOLON: "::", ARROW: "->", FATARROW: "=>",
	DOT: ".", DOTDOT: "..", DOTDOTEQ: "..=", DOTDOTDOT: "...", AT: "@", POUND: "#",
	DOLLAR: "$", QUESTION: "?", BANG: "!", TILDE: "~", AMP: "&", AMPAMP: "&&",
	PIPE: "|", PIPEPIPE: "||", CARET: "^", PLUS: "+", MINUS: "-", STAR: "*",
	SLASH: "/", PERCENT: "%", SHL: "<<", SHR: ">>", EQ: "=", EQEQ: "==", NE: "!=",
	LT: "<", LE: "<=", GT: ">", GE: ">=", PLUSEQ: "+=", MINUSEQ: "-=", STAREQ: "*=",
	SLASHEQ: "/=", PERCENTEQ: "%=", AMPEQ: "&=", PIPEEQ: "|=", CARETEQ: "^=",
	SHLEQ: "<<=", SHREQ: ">>=", UNDERSCORE: "_",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) IsKeyword() bool { return k > kindKeywordStart && k < kindKeywordEnd }
func (k Kind) IsSymbol() bool  { return k > kindSymbolStart && k < kindSymbolEnd }

// Keywords maps spelling to Kind, used by the lexer's reserved-word
// lookup once an identifier run has been read.
var Keywords = func() map[string]Kind {
	m := make(map[string]Kind, int(kindKeywordEnd-kindKeywordStart))
	for k := kindKeywordStart + 1; k < kindKeywordEnd; k++ {
		m[kindNames[k]] = k
	}
	// "self" and "Self" share the identifier-lookup table but differ by case.
	return m
}()

// SymbolEntry is one row of the longest-match symbol table (§4.1.7): at
// most three bytes; the lexer finds an entry by linear scan.
type SymbolEntry struct {
	Text string
	Kind Kind
}

// Symbols is ordered lexicographically as the spec requires, longest
// entries sharing a prefix listed after their prefix so a linear greedy
// extend-then-backtrack scan finds the longest match.
var Symbols = []SymbolEntry{
	{"!", BANG}, {"!=", NE},
	{"#", POUND},
	{"$", DOLLAR},
	{"%", PERCENT}, {"%=", PERCENTEQ},
	{"&", AMP}, {"&&", AMPAMP}, {"&=", AMPEQ},
	{"(", LPAREN},
	{")", RPAREN},
	{"*", STAR}, {"*=", STAREQ},
	{"+", PLUS}, {"+=", PLUSEQ},
	{",", COMMA},
	{"-", MINUS}, {"-=", MINUSEQ}, {"->", ARROW},
	{".", DOT}, {"..", DOTDOT}, {"..=", DOTDOTEQ}, {"...", DOTDOTDOT},
	{"/", SLASH}, {"/=", SLASHEQ},
	{":", COLON}, {"::", COLONCOLON},
	{";", SEMI},
	{"<", LT}, {"<<", SHL}, {"<<=", SHLEQ}, {"<=", LE},
	{"=", EQ}, {"==", EQEQ}, {"=>", FATARROW},
	{">", GT}, {">=", GE}, {">>", SHR}, {">>=", SHREQ},
	{"?", QUESTION},
	{"@", AT},
	{"[", LBRACKET},
	{"]", RBRACKET},
	{"^", CARET}, {"^=", CARETEQ},
	{"_", UNDERSCORE},
	{"{", LBRACE},
	{"|", PIPE}, {"|=", PIPEEQ}, {"||", PIPEPIPE},
	{"}", RBRACE},
	{"~", TILDE},
}

// Token is a single lexical unit with its source span.
type Token struct {
	Kind Kind
	Span Span

	// Text is the verbatim spelling of identifiers, keywords, lifetimes,
	// symbols, trivia and numeric literals, used for round-trip
	// reconstruction and by the parser. String, char and byte-string
	// tokens leave Text empty (their decoded value is in StrVal/CharVal/
	// ByteVal), so concatenating Text reproduces only input without them.
	Text string

	// IntVal/FloatVal hold decoded literal values. Integers use a
	// *big.Int-backed decimal so arbitrarily wide literals never
	// truncate before a later pass narrows them to CoreType.
	IntVal   *Decimal
	FloatVal *Decimal
	CoreType CoreType

	// CharVal/StrVal/ByteVal hold decoded char/string/byte-string values.
	CharVal rune
	StrVal  string
	ByteVal []byte

	// Frag holds an interpolated fragment's payload (an AST node,
	// opaque to this package — parser.Fragment type-asserts it).
	Frag interface{}
}

func (t Token) String() string {
	if s, ok := kindNames[t.Kind]; ok && t.Text == "" {
		return s
	}
	return t.Text
}
