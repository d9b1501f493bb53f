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

package hir

import "github.com/latticelang/frontc/token"

// ExprNode is the HIR closed sum over expressions (spec.md §3
// "ExprNode mirror"). As in package ast, every variant is a concrete
// struct embedding ExprBase. Go does not check a type switch over these
// variants for exhaustiveness, so a visitor ends its switch with a
// default arm (package check raises a bug there) (spec.md §9 "Tagged
// unions"). Several AST variants never reach here at all: WhileExpr,
// WhileLetExpr, IfLetExpr, ForExpr, TryExpr, and MacroExpr are all
// lowering targets or lowering-time bugs per spec.md §4.4 step 4 — by
// the time a tree is HIR, they have become LoopExpr/MatchExpr/IfExpr or
// have aborted the phase.
type ExprNode interface {
	exprNode()
	Pos() token.Span
	// Type returns the node's result type, filled in by the external
	// typeck collaborator before package check ever walks the tree.
	Type() *TypeRef
}

// ExprBase is embedded by every ExprNode variant.
type ExprBase struct {
	Span     token.Span
	Resolved *TypeRef // set by the consumed typeck collaborator
}

func (ExprBase) exprNode()          {}
func (e ExprBase) Pos() token.Span  { return e.Span }
func (e ExprBase) Type() *TypeRef   { return e.Resolved }

// BinOp mirrors ast.BinOp, minus the two Range variants: `..`/`..=`
// never reach an HIR BinOpExpr, having been desugared into RangeExpr
// struct literals (spec.md §4.4 step 4 bullet 4).
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
)

// UniOp mirrors ast.UniOp.
type UniOp int

const (
	OpNot UniOp = iota
	OpNeg
)

// BlockExpr is `{ stmts...; tail? }`.
type BlockExpr struct {
	ExprBase
	Label string
	Stmts []Stmt
	Tail  ExprNode
}

// Stmt mirrors ast.Stmt; by HIR time Item statements have already been
// hoisted into the enclosing module by item lowering (spec.md §4.4
// step 5), so Stmt carries only Let and Expr.
type Stmt struct {
	Let  *LetExpr
	Expr ExprNode
}

// LetExpr is `let pat: T? = value`.
type LetExpr struct {
	ExprBase
	Pattern *Pattern
	Type    *TypeRef
	Value   ExprNode
}

// ReturnExpr is `return value`; a bare `return;` has already become
// `return ()` (spec.md §4.4 step 4 bullet 6), so Value is never nil.
type ReturnExpr struct {
	ExprBase
	Value ExprNode
}

// LoopControlKind distinguishes break from continue.
type LoopControlKind int

const (
	CtlBreak LoopControlKind = iota
	CtlContinue
)

// LoopControlExpr is `break 'label?` or `continue 'label?`. Per
// spec.md §4.4 step 4 bullet 7, break/continue with a value are
// rejected by lowering, so there is no Value field here (unlike the
// AST node it mirrors).
type LoopControlExpr struct {
	ExprBase
	Kind  LoopControlKind
	Label string
}

// AssignExpr is `lhs = rhs` or a compound `lhs op= rhs`.
type AssignExpr struct {
	ExprBase
	Compound bool
	Op       BinOp
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

// CallValueExpr is `CallValue(Variable, args)` (spec.md §4.4 step 4
// bullet 8): the callee is a locally-resolved variable.
type CallValueExpr struct {
	ExprBase
	Callee ExprNode
	Args   []ExprNode
}

// CallPathExpr is every other free-function/UFCS call site.
type CallPathExpr struct {
	ExprBase
	Callee *Path
	Args   []ExprNode
}

// CallMethodExpr is `receiver.method::<T>(args...)`, resolved against
// the impl index during the consumed typeck phase; package check
// re-validates argument-count consistency only: when ResolvedOn is set,
// len(Args) must equal the resolved method's Params, which exclude the
// receiver (spec.md §4.5 "CallValue/CallMethod").
type CallMethodExpr struct {
	ExprBase
	Receiver   ExprNode
	Method     string
	Generics   []*TypeRef
	Args       []ExprNode
	ResolvedOn *TypeImpl // the inherent impl the method resolved to
}

// TupleVariantExpr is a unit- or tuple-variant/struct constructor call
// (spec.md §4.4 step 4 bullet 8: "unit-variant and tuple-variant paths
// become TupleVariant(path, is_struct, args)").
type TupleVariantExpr struct {
	ExprBase
	Path     *GenericPath
	IsStruct bool // true for a tuple struct constructor, false for an enum tuple variant
	Args     []ExprNode
}

// UnitVariantExpr is a bare reference to a unit struct or unit enum
// variant used as a value (`E::A` with no call parens).
type UnitVariantExpr struct {
	ExprBase
	Path     *GenericPath
	IsStruct bool
}

// LoopExpr is `loop { body }`, the universal loop form by HIR time:
// `while`/`while let` have both desugared into this (spec.md §4.4 step
// 4 bullets 1-2). Diverges is set by the post-lowering visitor spec.md
// step 4 bullet 9 describes: true unless some enclosed LoopControlExpr
// targets this loop's label.
type LoopExpr struct {
	ExprBase
	Label    string
	Body     *BlockExpr
	Diverges bool
}

// MatchArm mirrors ast.MatchArm.
type MatchArm struct {
	Pattern *Pattern
	Guard   ExprNode
	Body    ExprNode
}

// MatchExpr is `match value { arms... }`. It is also the lowering
// target for `while let` and `if let` (spec.md §4.4 step 4 bullets
// 2-3): a two-arm match with the wildcard arm in the second position.
type MatchExpr struct {
	ExprBase
	Value ExprNode
	Arms  []MatchArm
}

// IfExpr is `if cond { then } else { else }?`; `if let` has already
// become a MatchExpr by the time this node exists.
type IfExpr struct {
	ExprBase
	Cond ExprNode
	Then *BlockExpr
	Else ExprNode
}

// LiteralKind mirrors ast.LiteralKind.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
	LitString
	LitByteString
	LitChar
)

// LiteralExpr mirrors ast.LiteralExpr. Integer literals with
// token.CoreAny preserve deferred typing for the consumed inference
// pass (spec.md §4.4 step 4 bullet 10).
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

// ClosureParam mirrors ast.ClosureParam.
type ClosureParam struct {
	Pattern *Pattern
	Type    *TypeRef
}

// ClosureExpr is `move? |params| -> T? body`.
type ClosureExpr struct {
	ExprBase
	Move       bool
	Params     []ClosureParam
	ReturnType *TypeRef
	Body       ExprNode
}

// StructLiteralField mirrors ast.StructLiteralField.
type StructLiteralField struct {
	Name  string
	Value ExprNode
}

// StructLiteralExpr is `Path { fields..., ..base? }`.
type StructLiteralExpr struct {
	ExprBase
	Path   *GenericPath
	Fields []StructLiteralField
	Base   ExprNode
}

// RangeKind tags which `ops::Range*` struct a range expression targets
// (spec.md §4.4 step 4 bullet 4).
type RangeKind int

const (
	RangeFull RangeKind = iota
	RangeFrom
	RangeTo
	RangeToInclusive
	Range
	RangeInclusive
)

// RangeExpr is the lowering target of `a..b`/`a..`/`..b`/`..`/`a..=b`/
// `..=b`: a struct literal against the corresponding `ops::Range*`
// type, represented as its own node so package check does not need to
// recover the range shape from a generic StructLiteralExpr.
type RangeExpr struct {
	ExprBase
	RangeKind RangeKind
	Start     ExprNode // nil for RangeFull/RangeTo/RangeToInclusive
	End       ExprNode // nil for RangeFull/RangeFrom
}

// ArrayListExpr is `[a, b, c]`.
type ArrayListExpr struct {
	ExprBase
	Elems []ExprNode
}

// ArraySizedExpr is `[value; count]`.
type ArraySizedExpr struct {
	ExprBase
	Value ExprNode
	Count ExprNode
}

// TupleExpr is `(a, b, c)`.
type TupleExpr struct {
	ExprBase
	Elems []ExprNode
}

// NamedValueExpr is a reference to a local variable, resolved to its
// slot by the time lowering runs (spec.md §4.4 step 4 bullet 8).
type NamedValueExpr struct {
	ExprBase
	Slot int
	Name string // retained for diagnostics only
}

// PathValueExpr is a bare reference to a static or constant used as a
// value (a NamedValueExpr whose path did not resolve to a local
// variable and is not a unit struct/variant). spec.md's "Calls" bullet
// only names the classification for call sites; a non-call bare path
// read needs the same "is it local or an item" split, so this rounds
// out the NamedValueExpr family.
type PathValueExpr struct {
	ExprBase
	Path *GenericPath
}

// FieldExpr is `value.name` or `value.N`.
type FieldExpr struct {
	ExprBase
	Value      ExprNode
	Name       string
	TupleIdx   int
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
