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
	"github.com/latticelang/frontc/hir"
	"github.com/latticelang/frontc/token"
)

var unitType = &hir.TypeRef{Kind: hir.TyTuple}

// expr is the single depth-first traversal entry point (spec.md §4.5
// "Algorithm: single depth-first traversal"). It visits n's children
// first, then checks n's own contract, matching a validator that only
// ever needs a completed subtree's types.
func (v *validator) expr(n hir.ExprNode) {
	if n == nil {
		return
	}
	switch e := n.(type) {
	case *hir.BlockExpr:
		v.visitBlock(e)
	case *hir.LetExpr:
		v.expr(e.Value)
		v.checkLet(e)
	case *hir.ReturnExpr:
		v.expr(e.Value)
		v.checkReturn(e)
	case *hir.LoopControlExpr:
		// no operand, no result-type contract beyond its own Diverge type.
	case *hir.AssignExpr:
		v.expr(e.LHS)
		v.expr(e.RHS)
		v.checkAssign(e)
	case *hir.BinOpExpr:
		v.expr(e.LHS)
		v.expr(e.RHS)
		v.checkBinOp(e)
	case *hir.UniOpExpr:
		v.expr(e.Operand)
		v.checkUniOp(e)
	case *hir.BorrowExpr:
		v.expr(e.Operand)
		v.checkBorrow(e)
	case *hir.CastExpr:
		v.expr(e.Operand)
		v.checkCast(e)
	case *hir.CallValueExpr:
		v.expr(e.Callee)
		for _, a := range e.Args {
			v.expr(a)
		}
	case *hir.CallPathExpr:
		for _, a := range e.Args {
			v.expr(a)
		}
		v.checkCallPath(e)
	case *hir.CallMethodExpr:
		v.expr(e.Receiver)
		for _, a := range e.Args {
			v.expr(a)
		}
		if e.ResolvedOn != nil {
			if m, ok := e.ResolvedOn.Methods[e.Method]; ok && m.Function != nil && !m.Function.Variadic && len(e.Args) != len(m.Function.Params) {
				v.report(e, "%s takes %d arguments, %d supplied", e.Method, len(m.Function.Params), len(e.Args))
			}
		}
	case *hir.TupleVariantExpr:
		for _, a := range e.Args {
			v.expr(a)
		}
		v.checkTupleVariant(e)
	case *hir.UnitVariantExpr:
		v.checkUnitVariant(e)
	case *hir.LoopExpr:
		v.expr(e.Body)
	case *hir.MatchExpr:
		v.expr(e.Value)
		for _, arm := range e.Arms {
			v.expr(arm.Guard)
			v.expr(arm.Body)
		}
		v.checkMatch(e)
	case *hir.IfExpr:
		v.expr(e.Cond)
		v.expr(e.Then)
		v.expr(e.Else)
		v.checkIf(e)
	case *hir.LiteralExpr:
		// leaf; nothing to re-check beyond what inference already fixed.
	case *hir.ClosureExpr:
		v.checkClosure(e)
	case *hir.StructLiteralExpr:
		for _, f := range e.Fields {
			v.expr(f.Value)
		}
		v.expr(e.Base)
		v.checkStructLiteral(e)
	case *hir.RangeExpr:
		v.expr(e.Start)
		v.expr(e.End)
	case *hir.ArrayListExpr:
		for _, el := range e.Elems {
			v.expr(el)
		}
		v.checkArrayList(e)
	case *hir.ArraySizedExpr:
		v.expr(e.Value)
		v.expr(e.Count)
	case *hir.TupleExpr:
		for _, el := range e.Elems {
			v.expr(el)
		}
		v.checkTuple(e)
	case *hir.NamedValueExpr:
		// leaf; slot typing is the inference collaborator's job.
	case *hir.PathValueExpr:
		// leaf.
	case *hir.FieldExpr:
		v.expr(e.Value)
		v.checkField(e)
	case *hir.IndexExpr:
		v.expr(e.Value)
		v.expr(e.Index)
	case *hir.DerefExpr:
		v.expr(e.Value)
		v.checkDeref(e)
	default:
		v.sink.Bug(n.Pos().Start(), "check: unhandled ExprNode variant %T", n)
	}
}

// visitBlock implements the Block contract: the block's result type
// equals the tail expression's type, or unit for an open block (spec.md
// §4.5 "Block").
func (v *validator) visitBlock(b *hir.BlockExpr) {
	for _, s := range b.Stmts {
		if s.Let != nil {
			v.expr(s.Let)
		} else {
			v.expr(s.Expr)
		}
	}
	v.expr(b.Tail)
	want := unitType
	if b.Tail != nil {
		want = b.Tail.Type()
	}
	if !typesEqual(b.Type(), want) {
		v.mismatch(b, "block result", want, b.Type())
	}
}

func (v *validator) checkLet(e *hir.LetExpr) {
	if e.Type == nil {
		return
	}
	if !typesEqual(e.Type, e.Value.Type()) {
		v.mismatch(e, "let binding", e.Type, e.Value.Type())
	}
}

func (v *validator) checkReturn(e *hir.ReturnExpr) {
	if len(v.returnStack) == 0 {
		v.sink.Bug(e.Span.Start(), "return reached outside any function or closure")
		return
	}
	target := v.returnStack[len(v.returnStack)-1]
	if !typesEqual(target, e.Value.Type()) {
		v.mismatch(e, "return", target, e.Value.Type())
	}
}

func (v *validator) checkAssign(e *hir.AssignExpr) {
	if !e.Compound {
		if !typesEqual(e.LHS.Type(), e.RHS.Type()) {
			v.mismatch(e, "assignment", e.LHS.Type(), e.RHS.Type())
		}
		return
	}
	name, ok := compoundAssignTrait[e.Op]
	if !ok {
		v.sink.Bug(e.Span.Start(), "compound assign with non-arithmetic operator")
		return
	}
	if v.operatorImpl(name, e.LHS.Type(), hir.PathParams{Types: []*hir.TypeRef{e.RHS.Type()}}) == nil {
		v.report(e, "type %s does not implement %s for compound assignment", typeString(e.LHS.Type()), name)
	}
}

func (v *validator) checkBinOp(e *hir.BinOpExpr) {
	if isLogicalOp(e.Op) {
		return
	}
	if name, ok := comparisonTrait[e.Op]; ok {
		if v.operatorImpl(name, e.LHS.Type(), hir.PathParams{Types: []*hir.TypeRef{e.RHS.Type()}}) == nil {
			v.report(e, "type %s does not implement %s", typeString(e.LHS.Type()), name)
			return
		}
		if !typesEqual(e.Type(), boolType) {
			v.mismatch(e, "comparison result", boolType, e.Type())
		}
		return
	}
	name, ok := arithOpTrait[e.Op]
	if !ok {
		v.sink.Bug(e.Span.Start(), "unrecognised BinOp in validator")
		return
	}
	impl := v.operatorImpl(name, e.LHS.Type(), hir.PathParams{Types: []*hir.TypeRef{e.RHS.Type()}})
	if impl == nil {
		v.report(e, "type %s does not implement %s", typeString(e.LHS.Type()), name)
		return
	}
	out, ok := impl.Types["Output"]
	if !ok || out.Type == nil {
		return
	}
	if !typesEqual(out.Type, e.Type()) {
		v.mismatch(e, "binary operator result", out.Type, e.Type())
	}
}

func (v *validator) checkUniOp(e *hir.UniOpExpr) {
	name, ok := uniOpTrait[e.Op]
	if !ok {
		v.sink.Bug(e.Span.Start(), "unrecognised UniOp in validator")
		return
	}
	impl := v.operatorImpl(name, e.Operand.Type(), hir.PathParams{})
	if impl == nil {
		v.report(e, "type %s does not implement %s", typeString(e.Operand.Type()), name)
		return
	}
	out, ok := impl.Types["Output"]
	if !ok || out.Type == nil {
		return
	}
	if !typesEqual(out.Type, e.Type()) {
		v.mismatch(e, "unary operator result", out.Type, e.Type())
	}
}

func (v *validator) checkBorrow(e *hir.BorrowExpr) {
	t := e.Type()
	if t == nil || t.Kind != hir.TyBorrow {
		v.mismatch(e, "borrow", &hir.TypeRef{Kind: hir.TyBorrow, Mutable: e.Mutable, Inner: e.Operand.Type()}, t)
		return
	}
	if t.Mutable != e.Mutable || !typesEqual(t.Inner, e.Operand.Type()) {
		v.mismatch(e, "borrow", &hir.TypeRef{Kind: hir.TyBorrow, Mutable: e.Mutable, Inner: e.Operand.Type()}, t)
	}
}

// checkCast implements both Cast and Unsize (spec.md §4.5 "Cast"/
// "Unsize"): HIR has no separate Unsize node, so a cast whose target is
// a trait object or slice is validated under the Unsize rule instead of
// the primitive/pointer/reference compatibility rules.
func (v *validator) checkCast(e *hir.CastExpr) {
	target := e.Type
	if target != nil && (target.Kind == hir.TyTraitObject || target.Kind == hir.TySlice) {
		return
	}
	src := e.Operand.Type()
	if src == nil || target == nil {
		return
	}
	switch {
	case src.Kind == hir.TyPrimitive && target.Kind == hir.TyPrimitive:
		return
	case src.Kind == hir.TyPointer && target.Kind == hir.TyPrimitive && target.Primitive == token.CoreUSize:
		return
	case src.Kind == hir.TyPrimitive && src.Primitive == token.CoreUSize && target.Kind == hir.TyPointer:
		return
	case src.Kind == hir.TyPointer && target.Kind == hir.TyPointer:
		if src.Inner != nil && target.Inner != nil && !typesEqual(src.Inner, target.Inner) &&
			(src.Inner.Kind == hir.TyTraitObject || src.Inner.Kind == hir.TySlice) &&
			target.Inner.Kind != hir.TyTraitObject && target.Inner.Kind != hir.TySlice {
			v.report(e, "cast would widen a thin pointer from %s to %s", typeString(src), typeString(target))
			return
		}
		return
	case src.Kind == hir.TyFunction && target.Kind == hir.TyPointer && target.Inner != nil && len(target.Inner.Inners) == 0:
		return
	case src.Kind == hir.TyBorrow && target.Kind == hir.TyBorrow:
		if !typesEqual(src.Inner, target.Inner) {
			v.mismatch(e, "reference cast", src.Inner, target.Inner)
		}
		return
	default:
		v.report(e, "invalid cast from %s to %s", typeString(src), typeString(target))
	}
}

func (v *validator) checkDeref(e *hir.DerefExpr) {
	impl := v.operatorImpl("deref", e.Value.Type(), hir.PathParams{})
	if impl == nil {
		v.report(e, "type %s does not implement deref", typeString(e.Value.Type()))
		return
	}
	target, ok := impl.Types["Target"]
	if !ok || target.Type == nil {
		return
	}
	if !typesEqual(target.Type, e.Type()) {
		v.mismatch(e, "dereference", target.Type, e.Type())
	}
}

func (v *validator) checkTupleVariant(e *hir.TupleVariantExpr) {
	if e.IsStruct {
		s := lookupStruct(v.crate, e.Path.Path)
		if s == nil {
			v.sink.Bug(e.Span.Start(), "tuple struct constructor %s did not resolve", e.Path.Path.String())
			return
		}
		if len(e.Args) != len(s.Fields) {
			v.report(e, "%s takes %d fields, %d supplied", s.Name, len(s.Fields), len(e.Args))
		}
		return
	}
	enum, variant := lookupEnum(v.crate, e.Path.Path)
	if enum == nil {
		v.sink.Bug(e.Span.Start(), "tuple variant %s did not resolve", e.Path.Path.String())
		return
	}
	ev := findVariant(enum, variant)
	if ev == nil {
		v.sink.Bug(e.Span.Start(), "variant %q not found on enum %s", variant, enum.Name)
		return
	}
	if len(e.Args) != len(ev.Fields) {
		v.report(e, "%s::%s takes %d fields, %d supplied", enum.Name, variant, len(ev.Fields), len(e.Args))
	}
}

func (v *validator) checkUnitVariant(e *hir.UnitVariantExpr) {
	if e.IsStruct {
		s := lookupStruct(v.crate, e.Path.Path)
		if s == nil {
			v.sink.Bug(e.Span.Start(), "unit struct %s did not resolve", e.Path.Path.String())
			return
		}
		if s.Kind != hir.StructUnit {
			v.report(e, "%s is not a unit struct", s.Name)
		}
		return
	}
	enum, variant := lookupEnum(v.crate, e.Path.Path)
	if enum == nil {
		v.sink.Bug(e.Span.Start(), "unit variant %s did not resolve", e.Path.Path.String())
		return
	}
	ev := findVariant(enum, variant)
	if ev == nil {
		v.sink.Bug(e.Span.Start(), "variant %q not found on enum %s", variant, enum.Name)
		return
	}
	if ev.Kind != hir.VariantUnit && ev.Kind != hir.VariantValue {
		v.report(e, "%s::%s is not a unit-like variant", enum.Name, variant)
	}
}

func (v *validator) checkStructLiteral(e *hir.StructLiteralExpr) {
	var fields []hir.StructField
	var name string
	if enum, variant := lookupEnum(v.crate, e.Path.Path); enum != nil {
		ev := findVariant(enum, variant)
		if ev == nil {
			v.sink.Bug(e.Span.Start(), "variant %q not found on enum %s", variant, enum.Name)
			return
		}
		fields, name = ev.Fields, enum.Name+"::"+variant
	} else if s := lookupStruct(v.crate, e.Path.Path); s != nil {
		fields, name = s.Fields, s.Name
	} else {
		v.sink.Bug(e.Span.Start(), "struct literal path %s did not resolve", e.Path.Path.String())
		return
	}
	if e.Base != nil {
		return // `..base` permits a strict subset of fields; arity is not fixed.
	}
	if len(e.Fields) != len(fields) {
		v.report(e, "%s takes %d fields, %d supplied", name, len(fields), len(e.Fields))
	}
}

func (v *validator) checkCallPath(e *hir.CallPathExpr) {
	if e.Callee == nil {
		return
	}
	if e.Callee.Kind != hir.PathGeneric {
		return // UFCS callee resolution/impl-satisfaction is the inference collaborator's job; see spec.md §4.5.
	}
	fn := lookupFunction(v.crate, e.Callee.Generic.Path)
	if fn == nil {
		return
	}
	if !fn.Variadic && len(e.Args) != len(fn.Params) {
		v.report(e, "%s takes %d arguments, %d supplied", e.Callee.Generic.Path.String(), len(fn.Params), len(e.Args))
	}
}

func (v *validator) checkMatch(e *hir.MatchExpr) {
	want := e.Type()
	for _, arm := range e.Arms {
		if !typesEqual(arm.Body.Type(), want) {
			v.mismatch(arm.Body, "match arm", want, arm.Body.Type())
			return
		}
	}
}

func (v *validator) checkIf(e *hir.IfExpr) {
	want := e.Type()
	if !typesEqual(e.Then.Type(), want) {
		v.mismatch(e.Then, "if branch", want, e.Then.Type())
		return
	}
	if e.Else == nil {
		if !typesEqual(want, unitType) {
			v.mismatch(e, "if without else", unitType, want)
		}
		return
	}
	if !typesEqual(e.Else.Type(), want) {
		v.mismatch(e.Else, "else branch", want, e.Else.Type())
	}
}

func (v *validator) checkClosure(e *hir.ClosureExpr) {
	v.returnStack = append(v.returnStack, e.ReturnType)
	v.expr(e.Body)
	v.returnStack = v.returnStack[:len(v.returnStack)-1]
	if !typesEqual(e.Body.Type(), e.ReturnType) {
		v.mismatch(e, "closure body", e.ReturnType, e.Body.Type())
	}
}

func (v *validator) checkField(e *hir.FieldExpr) {
	vt := e.Value.Type()
	if vt == nil {
		return
	}
	if e.IsTupleIdx {
		if vt.Kind == hir.TyClosure {
			return // closure captures: the inference collaborator owns capture typing.
		}
		if vt.Kind != hir.TyTuple || e.TupleIdx < 0 || e.TupleIdx >= len(vt.Inners) {
			v.sink.Bug(e.Span.Start(), "tuple index %d out of range on %s", e.TupleIdx, typeString(vt))
			return
		}
		if !typesEqual(vt.Inners[e.TupleIdx], e.Type()) {
			v.mismatch(e, "tuple field", vt.Inners[e.TupleIdx], e.Type())
		}
		return
	}
	if vt.Kind != hir.TyPath {
		v.sink.Bug(e.Span.Start(), "named field %q on non-struct type %s", e.Name, typeString(vt))
		return
	}
	s := lookupStruct(v.crate, pathComponents(vt.Path))
	if s == nil {
		return
	}
	for _, f := range s.Fields {
		if f.Name == e.Name {
			if !typesEqual(f.Type, e.Type()) {
				v.mismatch(e, "struct field", f.Type, e.Type())
			}
			return
		}
	}
	v.sink.Bug(e.Span.Start(), "struct %s has no field %q", s.Name, e.Name)
}

func (v *validator) checkTuple(e *hir.TupleExpr) {
	t := e.Type()
	if t == nil || t.Kind != hir.TyTuple || len(t.Inners) != len(e.Elems) {
		return
	}
	for i, el := range e.Elems {
		if !typesEqual(t.Inners[i], el.Type()) {
			v.mismatch(el, "tuple element", t.Inners[i], el.Type())
			return
		}
	}
}

func (v *validator) checkArrayList(e *hir.ArrayListExpr) {
	if len(e.Elems) == 0 {
		return
	}
	want := e.Elems[0].Type()
	for _, el := range e.Elems[1:] {
		if !typesEqual(want, el.Type()) {
			v.mismatch(el, "array element", want, el.Type())
			return
		}
	}
}

// pathComponents extracts the SimplePath a TyPath's Generic form names;
// a non-generic path reaching a field lookup is itself a bug, since
// only struct/enum types can own named fields.
func pathComponents(p *hir.Path) hir.SimplePath {
	if p == nil || p.Kind != hir.PathGeneric {
		return hir.SimplePath{}
	}
	return p.Generic.Path
}

// operatorImpl resolves name (an operator lang item such as "add") to
// its trait SimplePath and looks up an impl on self with the given
// trait type arguments (spec.md §4.5's per-operator "look up the
// corresponding operator trait").
func (v *validator) operatorImpl(name string, self *hir.TypeRef, args hir.PathParams) *hir.TraitImpl {
	trait := v.resolver.GetLangItemPath(name)
	return v.resolver.FindTraitImpls(trait, args, self, nil)
}

var boolType = &hir.TypeRef{Kind: hir.TyPrimitive, Primitive: token.CoreBool}
