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

package check

import "github.com/latticelang/frontc/hir"

// arithOpTrait maps the arithmetic/bitwise BinOp variants to the
// operator trait whose Output associated type the node's result must
// equal (spec.md §4.5 "BinOp").
var arithOpTrait = map[hir.BinOp]string{
	hir.OpAdd:    "add",
	hir.OpSub:    "sub",
	hir.OpMul:    "mul",
	hir.OpDiv:    "div",
	hir.OpRem:    "rem",
	hir.OpBitAnd: "bitand",
	hir.OpBitOr:  "bitor",
	hir.OpBitXor: "bitxor",
	hir.OpShl:    "shl",
	hir.OpShr:    "shr",
}

// compoundAssignTrait maps a compound AssignExpr's Op straight to its
// matching `*_assign` trait name: add_assign pairs with add's shape,
// shl_assign with shl's, and so on, with no swapped pairing (Open
// Question decision recorded in DESIGN.md).
var compoundAssignTrait = map[hir.BinOp]string{
	hir.OpAdd:    "add_assign",
	hir.OpSub:    "sub_assign",
	hir.OpMul:    "mul_assign",
	hir.OpDiv:    "div_assign",
	hir.OpRem:    "rem_assign",
	hir.OpBitAnd: "bitand_assign",
	hir.OpBitOr:  "bitor_assign",
	hir.OpBitXor: "bitxor_assign",
	hir.OpShl:    "shl_assign",
	hir.OpShr:    "shr_assign",
}

// comparisonTrait classifies the comparison BinOp variants into the
// "eq" family (Eq/Ne) and the "ord" family (Lt/Le/Gt/Ge); both require
// the node's result type to be bool (spec.md §4.5 "Comparisons resolve
// via eq or ord").
var comparisonTrait = map[hir.BinOp]string{
	hir.OpEq: "eq",
	hir.OpNe: "eq",
	hir.OpLt: "ord",
	hir.OpLe: "ord",
	hir.OpGt: "ord",
	hir.OpGe: "ord",
}

func isLogicalOp(op hir.BinOp) bool {
	return op == hir.OpAndAnd || op == hir.OpOrOr
}

// uniOpTrait maps `!`/`-` to the unary operator trait whose Output the
// node's result type must equal (spec.md §4.5 "UniOp").
var uniOpTrait = map[hir.UniOp]string{
	hir.OpNot: "not",
	hir.OpNeg: "neg",
}
