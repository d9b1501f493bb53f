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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticelang/frontc/errors"
	"github.com/latticelang/frontc/hir"
	"github.com/latticelang/frontc/resolve"
	"github.com/latticelang/frontc/token"
)

func i32() *hir.TypeRef  { return &hir.TypeRef{Kind: hir.TyPrimitive, Primitive: token.CoreI32} }
func bl() *hir.TypeRef   { return &hir.TypeRef{Kind: hir.TyPrimitive, Primitive: token.CoreBool} }
func unit() *hir.TypeRef { return &hir.TypeRef{Kind: hir.TyTuple} }

func lit(n int64, ty *hir.TypeRef) *hir.LiteralExpr {
	return &hir.LiteralExpr{ExprBase: hir.ExprBase{Resolved: ty}, Kind: hir.LitInt}
}

func addFunction(name string) *hir.Function {
	return &hir.Function{Name: name, ReturnType: i32(), Body: &hir.BlockExpr{
		ExprBase: hir.ExprBase{Resolved: i32()},
		Tail:     lit(1, i32()),
	}}
}

func crateWithFunction(f *hir.Function) *hir.Crate {
	crate := hir.NewCrate("test")
	crate.Root.Values["f"] = &hir.ValueItem{Kind: hir.ValueFunction, Function: f}
	registerOperatorLangItems(crate)
	return crate
}

// registerOperatorLangItems stands in for the lang-item registration
// step lowering performs (spec.md §4.4 step 8); tests that only care
// about operator-trait membership, not lang-item resolution itself,
// call this so GetLangItemPath never reports a bug of its own.
func registerOperatorLangItems(crate *hir.Crate) {
	for _, name := range []string{"add", "sub", "mul", "div", "rem", "bitand", "bitor", "bitxor", "shl", "shr", "eq", "ord", "not", "neg", "deref"} {
		crate.LangItems[name] = hir.SimplePath{Crate: "core", Components: []string{"ops", name}}
	}
}

func validate(t *testing.T, crate *hir.Crate) errors.Error {
	t.Helper()
	sink := &errors.Sink{}
	r := resolve.New(crate, sink)
	return Validate(crate, r, sink)
}

func TestValidateCleanFunction(t *testing.T) {
	err := validate(t, crateWithFunction(addFunction("f")))
	assert.Nil(t, err)
}

func TestValidateReturnMismatch(t *testing.T) {
	f := &hir.Function{Name: "f", ReturnType: i32(), Body: &hir.BlockExpr{
		ExprBase: hir.ExprBase{Resolved: unit()},
		Stmts: []hir.Stmt{{Expr: &hir.ReturnExpr{
			ExprBase: hir.ExprBase{Resolved: &hir.TypeRef{Kind: hir.TyDiverge}},
			Value:    lit(1, bl()),
		}}},
	}}
	err := validate(t, crateWithFunction(f))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "Type mismatch")
}

func TestValidateBlockTailMismatch(t *testing.T) {
	f := &hir.Function{Name: "f", ReturnType: unit(), Body: &hir.BlockExpr{
		ExprBase: hir.ExprBase{Resolved: i32()},
		Tail:     lit(1, bl()),
	}}
	err := validate(t, crateWithFunction(f))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "block result")
}

func TestValidateIfWithoutElseMustBeUnit(t *testing.T) {
	f := &hir.Function{Name: "f", ReturnType: unit(), Body: &hir.BlockExpr{
		ExprBase: hir.ExprBase{Resolved: unit()},
		Tail: &hir.IfExpr{
			ExprBase: hir.ExprBase{Resolved: i32()},
			Cond:     lit(1, bl()),
			Then:     &hir.BlockExpr{ExprBase: hir.ExprBase{Resolved: i32()}, Tail: lit(1, i32())},
		},
	}}
	err := validate(t, crateWithFunction(f))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "if without else")
}

func TestValidateTupleVariantArity(t *testing.T) {
	crate := hir.NewCrate("test")
	enum := &hir.Enum{Name: "E", Path: hir.SimplePath{Crate: "test", Components: []string{"E"}}, Variants: []hir.EnumVariant{
		{Name: "B", Kind: hir.VariantTuple, Fields: []hir.StructField{{Type: i32()}}},
	}}
	crate.Root.Types["E"] = &hir.TypeItem{Kind: hir.TypeEnum, Enum: enum}

	variantPath := hir.SimplePath{Crate: "test", Components: []string{"E", "B"}}
	f := &hir.Function{Name: "f", ReturnType: unit(), Body: &hir.BlockExpr{
		ExprBase: hir.ExprBase{Resolved: unit()},
		Stmts: []hir.Stmt{{Expr: &hir.TupleVariantExpr{
			ExprBase: hir.ExprBase{Resolved: unit()},
			Path:     &hir.GenericPath{Path: variantPath},
			Args:     []hir.ExprNode{lit(1, i32()), lit(2, i32())},
		}}},
	}}
	crate.Root.Values["f"] = &hir.ValueItem{Kind: hir.ValueFunction, Function: f}

	err := validate(t, crate)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "takes 1 fields, 2 supplied")
}

func TestValidateBinOpMissingImplReportsMismatch(t *testing.T) {
	f := &hir.Function{Name: "f", ReturnType: unit(), Body: &hir.BlockExpr{
		ExprBase: hir.ExprBase{Resolved: unit()},
		Stmts: []hir.Stmt{{Expr: &hir.BinOpExpr{
			ExprBase: hir.ExprBase{Resolved: i32()},
			Op:       hir.OpAdd,
			LHS:      lit(1, i32()),
			RHS:      lit(2, i32()),
		}}},
	}}
	err := validate(t, crateWithFunction(f))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "does not implement add")
}

func TestValidateDivergingBreakUnifiesWithAnything(t *testing.T) {
	f := &hir.Function{Name: "f", ReturnType: i32(), Body: &hir.BlockExpr{
		ExprBase: hir.ExprBase{Resolved: i32()},
		Tail: &hir.MatchExpr{
			ExprBase: hir.ExprBase{Resolved: i32()},
			Value:    lit(1, bl()),
			Arms: []hir.MatchArm{
				{Pattern: &hir.Pattern{Kind: hir.PatAny}, Body: lit(1, i32())},
				{Pattern: &hir.Pattern{Kind: hir.PatAny}, Body: &hir.LoopControlExpr{
					ExprBase: hir.ExprBase{Resolved: &hir.TypeRef{Kind: hir.TyDiverge}},
					Kind:     hir.CtlBreak,
				}},
			},
		},
	}}
	err := validate(t, crateWithFunction(f))
	assert.Nil(t, err)
}
