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

package ast

import "github.com/latticelang/frontc/token"

// ExprNode is the sealed interface every expression variant implements,
// following the teacher's internal/core/adt "closed interface + many
// concrete structs" idiom rather than one tagged struct: each visitor
// (lowering, the validator) switches over the concrete type and the Go
// compiler has no default-arm escape hatch for a missing case if the
// switch is written exhaustively with a final panic.
type ExprNode interface {
	exprNode()
	Pos() token.Span
}

// ExprBase is embedded by every ExprNode variant. It is exported so
// that callers outside the package (the parser, the lowering pass) can
// construct variants directly with a composite literal.
type ExprBase struct{ Span token.Span }

func (ExprBase) exprNode()         {}
func (e ExprBase) Pos() token.Span { return e.Span }

// BinOp enumerates binary operators, used by BinOpExpr and by the
// compound-assignment tag on AssignExpr.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAndAnd
	OpOrOr
	OpRange
	OpRangeInc
)

// UniOp enumerates unary operators.
type UniOp int

const (
	OpNot UniOp = iota
	OpNeg
)

// BlockExpr is `{ stmts...; tail? }`; Label is non-empty for a labeled
// block (`'a: { ... }`), supplementing spec.md per SPEC_FULL.md §4.
type BlockExpr struct {
	ExprBase
	Label string
	Stmts []Stmt
	Tail  ExprNode // nil for an expression-less block (implicit unit)
}

// Stmt is either a let-binding, an item, or a bare expression statement.
type Stmt struct {
	Let  *LetExpr
	Item Item
	Expr ExprNode
}

// LetExpr is `let pat: T? = value`.
type LetExpr struct {
	ExprBase
	Pattern *Pattern
	Type    *TypeRef // nil when untyped
	Value   ExprNode
}

// ReturnExpr is `return value?`; a bare `return;` is lowered to
// `return ()` per spec.md §4.4.
type ReturnExpr struct {
	ExprBase
	Value ExprNode // nil for a bare `return`
}

// LoopControlKind distinguishes break from continue.
type LoopControlKind int

const (
	CtlBreak LoopControlKind = iota
	CtlContinue
)

// LoopControlExpr is `break 'label? value?` or `continue 'label?`.
type LoopControlExpr struct {
	ExprBase
	Kind  LoopControlKind
	Label string
	Value ExprNode // always nil for Continue; break-with-value is rejected by lowering (§4.4)
}

// AssignExpr is `lhs = rhs` or a compound `lhs op= rhs`.
type AssignExpr struct {
	ExprBase
	Compound bool
	Op       BinOp // meaningful only when Compound
	LHS      ExprNode
	RHS      ExprNode
}

// BinOpExpr is `lhs op rhs`.
type BinOpExpr struct {
	ExprBase
	Op  BinOp
	LHS ExprNode
	RHS ExprNode
}

// UniOpExpr is `op operand`.
type UniOpExpr struct {
	ExprBase
	Op      UniOp
	Operand ExprNode
}

// BorrowExpr is `&expr` or `&mut expr`.
type BorrowExpr struct {
	ExprBase
	Mutable bool
	Operand ExprNode
}

// CastExpr is `expr as T`.
type CastExpr struct {
	ExprBase
	Operand ExprNode
	Type    *TypeRef
}

// CallPathExpr is `path(args...)` where path does not resolve to a
// local variable (free function, tuple-struct constructor, UFCS item).
type CallPathExpr struct {
	ExprBase
	Callee *Path
	Args   []ExprNode
}

// CallValueExpr is `local_var(args...)`.
type CallValueExpr struct {
	ExprBase
	Callee ExprNode
	Args   []ExprNode
}

// CallMethodExpr is `receiver.method::<T>(args...)`.
type CallMethodExpr struct {
	ExprBase
	Receiver ExprNode
	Method   string
	Generics []*TypeRef
	Args     []ExprNode
}

// LoopExpr is a bare `loop { body }`, the lowering target for `while`
// and `while let` (spec.md §4.4).
type LoopExpr struct {
	ExprBase
	Label string
	Body  *BlockExpr
}

// WhileExpr is `while cond { body }`, desugared away by lowering.
type WhileExpr struct {
	ExprBase
	Label string
	Cond  ExprNode
	Body  *BlockExpr
}

// WhileLetExpr is `while let pat = e { body }`, desugared away by
// lowering.
type WhileLetExpr struct {
	ExprBase
	Label   string
	Pattern *Pattern
	Value   ExprNode
	Body    *BlockExpr
}

// ForExpr is `for pat in iter { body }`. Per spec.md §4.4, a `for` loop
// surviving to lowering is a bug: the external expansion collaborator
// is expected to have desugared it into `IntoIterator`/`loop`/`match`
// machinery before this phase ever sees the tree. It is retained in the
// AST purely so the parser can recognise the surface syntax described
// by spec.md §4.3.
type ForExpr struct {
	ExprBase
	Label   string
	Pattern *Pattern
	Iter    ExprNode
	Body    *BlockExpr
}

// MatchArm is one `pattern if guard? => body` arm.
type MatchArm struct {
	Pattern *Pattern
	Guard   ExprNode // nil when absent
	Body    ExprNode
}

// MatchExpr is `match value { arms... }`.
type MatchExpr struct {
	ExprBase
	Value ExprNode
	Arms  []MatchArm
}

// IfExpr is `if cond { then } else { else }?`.
type IfExpr struct {
	ExprBase
	Cond ExprNode
	Then *BlockExpr
	Else ExprNode // *BlockExpr or *IfExpr, nil when absent
}

// IfLetExpr is `if let pat = e { then } else { else }?`, desugared away
// by lowering.
type IfLetExpr struct {
	ExprBase
	Pattern *Pattern
	Value   ExprNode
	Then    *BlockExpr
	Else    ExprNode
}

// LiteralKind tags LiteralExpr's payload.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
	LitString
	LitByteString
	LitChar
)

// LiteralExpr carries an explicit or deferred core type (spec.md §3).
type LiteralExpr struct {
	ExprBase
	Kind     LiteralKind
	CoreType token.CoreType
	IntVal   *token.Decimal
	FloatVal *token.Decimal
	BoolVal  bool
	StrVal   string
	ByteVal  []byte
	CharVal  rune
}

// ClosureParam is one closure argument: a pattern and optional
// annotated type.
type ClosureParam struct {
	Pattern *Pattern
	Type    *TypeRef
}

// ClosureExpr is `move? |params| -> T? body`.
type ClosureExpr struct {
	ExprBase
	Move       bool
	Params     []ClosureParam
	ReturnType *TypeRef // nil when inferred
	Body       ExprNode
}

// StructLiteralField is one `name: value` entry, or a shorthand `name`
// field (Value == nil meaning "use the local of the same name").
type StructLiteralField struct {
	Name  string
	Value ExprNode
}

// StructLiteralExpr is `Path { fields..., ..base? }`.
type StructLiteralExpr struct {
	ExprBase
	Path   *Path
	Fields []StructLiteralField
	Base   ExprNode // functional-update `..base`, nil when absent
}

// ArrayExpr is `[a, b, c]` (List) or `[value; count]` (Sized).
type ArrayExpr struct {
	ExprBase
	Sized bool
	List  []ExprNode
	Value ExprNode // Sized payload
	Count ExprNode // Sized payload
}

// TupleExpr is `(a, b, c)`.
type TupleExpr struct {
	ExprBase
	Elems []ExprNode
}

// NamedValueExpr is a bare path used as a value, resolved via the
// path's Binding by the time lowering runs.
type NamedValueExpr struct {
	ExprBase
	Path *Path
}

// FieldExpr is `value.name` where name is either an identifier (struct
// field) or an unsuffixed integer (tuple/closure-capture field).
type FieldExpr struct {
	ExprBase
	Value     ExprNode
	Name      string
	TupleIdx  int
	IsTupleIdx bool
}

// IndexExpr is `value[index]`.
type IndexExpr struct {
	ExprBase
	Value ExprNode
	Index ExprNode
}

// DerefExpr is `*value`.
type DerefExpr struct {
	ExprBase
	Value ExprNode
}

// MacroExpr is a macro invocation in expression position. Per spec.md
// §4.4, one surviving to lowering (unexpanded) is a bug: macro
// expansion is an external collaborator this module only parses
// through, never interprets.
type MacroExpr struct {
	ExprBase
	Invocation *MacroInvocation
}

// TryExpr is the postfix `?` operator. Per spec.md §4.3/4.4 it is a
// parse-time token that must have been expanded away (into a
// match-on-Try machinery) before lowering; surviving to lowering is a
// bug, exactly like MacroExpr and ForExpr.
type TryExpr struct {
	ExprBase
	Operand ExprNode
}
