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
	"fmt"
	"strings"

	"github.com/latticelang/frontc/hir"
)

// typesEqual is the validator's own equality check, distinct from
// resolve's typesUnify: a diverging operand unifies with anything
// (spec.md §4.5 "Diverging types (!) unify with anything"), but
// TyInfer/TyGeneric are NOT wildcards here — by the time this phase
// runs, inference is complete and a surviving TyInfer is itself a bug
// the resolver collaborator should have resolved, not a license to
// treat two arbitrary types as equal.
func typesEqual(a, b *hir.TypeRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsDiverge() || b.IsDiverge() {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case hir.TyInfer:
		return a.InferIndex == b.InferIndex
	case hir.TyGeneric:
		return a.GenericIndex == b.GenericIndex
	case hir.TyPrimitive:
		return a.Primitive == b.Primitive
	case hir.TyTuple:
		return typeListEqual(a.Inners, b.Inners)
	case hir.TySlice, hir.TyArray:
		return typesEqual(a.Inner, b.Inner)
	case hir.TyBorrow, hir.TyPointer:
		return a.Mutable == b.Mutable && typesEqual(a.Inner, b.Inner)
	case hir.TyPath:
		return pathEqual(a.Path, b.Path)
	case hir.TyTraitObject:
		return traitObjectEqual(a.TraitObject, b.TraitObject)
	case hir.TyFunction:
		return functionEqual(a.Function, b.Function)
	case hir.TyClosure:
		return a.Closure != nil && b.Closure != nil &&
			typeListEqual(a.Closure.Params, b.Closure.Params) &&
			typesEqual(a.Closure.ReturnType, b.Closure.ReturnType)
	}
	return false
}

func typeListEqual(a, b []*hir.TypeRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !typesEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func pathEqual(a, b *hir.Path) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == hir.PathGeneric {
		return a.Generic.Path.String() == b.Generic.Path.String() &&
			typeListEqual(a.Generic.Params.Types, b.Generic.Params.Types)
	}
	return typesEqual(a.UfcsType, b.UfcsType) && a.Item == b.Item
}

func traitObjectEqual(a, b *hir.TraitObjectInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	if (a.DataTrait == nil) != (b.DataTrait == nil) {
		return false
	}
	if a.DataTrait != nil && a.DataTrait.SimplePath().String() != b.DataTrait.SimplePath().String() {
		return false
	}
	return len(a.Markers) == len(b.Markers)
}

func functionEqual(a, b *hir.FunctionTypeInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ABI == b.ABI && a.Unsafe == b.Unsafe && a.Variadic == b.Variadic &&
		typeListEqual(a.Params, b.Params) && typesEqual(a.ReturnType, b.ReturnType)
}

// typeString renders a TypeRef for a "Type mismatch" diagnostic's two
// offending types (spec.md §4.5 "Failure").
func typeString(t *hir.TypeRef) string {
	if t == nil {
		return "<unknown>"
	}
	switch t.Kind {
	case hir.TyInfer:
		return "_"
	case hir.TyGeneric:
		return t.GenericName
	case hir.TyDiverge:
		return "!"
	case hir.TyPrimitive:
		return fmt.Sprint(t.Primitive)
	case hir.TyTuple:
		parts := make([]string, len(t.Inners))
		for i, e := range t.Inners {
			parts[i] = typeString(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case hir.TySlice:
		return "[" + typeString(t.Inner) + "]"
	case hir.TyArray:
		return "[" + typeString(t.Inner) + "; _]"
	case hir.TyBorrow:
		if t.Mutable {
			return "&mut " + typeString(t.Inner)
		}
		return "&" + typeString(t.Inner)
	case hir.TyPointer:
		if t.Mutable {
			return "*mut " + typeString(t.Inner)
		}
		return "*const " + typeString(t.Inner)
	case hir.TyPath:
		return pathString(t.Path)
	case hir.TyTraitObject:
		return "dyn " + traitObjectString(t.TraitObject)
	case hir.TyFunction:
		return "fn(...)"
	case hir.TyClosure:
		return "closure"
	}
	return "<invalid>"
}

func pathString(p *hir.Path) string {
	if p == nil {
		return "<unresolved>"
	}
	switch p.Kind {
	case hir.PathGeneric:
		return p.Generic.Path.String()
	case hir.PathUfcsInherent:
		return "<" + typeString(p.UfcsType) + ">::" + p.Item
	case hir.PathUfcsKnown:
		return "<" + typeString(p.UfcsType) + " as " + p.UfcsTrait.Path.String() + ">::" + p.Item
	default:
		return "<" + typeString(p.UfcsType) + ">::" + p.Item
	}
}

func traitObjectString(info *hir.TraitObjectInfo) string {
	if info == nil {
		return "<empty>"
	}
	var parts []string
	if info.DataTrait != nil {
		parts = append(parts, info.DataTrait.SimplePath().String())
	}
	for _, m := range info.Markers {
		parts = append(parts, m.SimplePath().String())
	}
	return strings.Join(parts, " + ")
}

// mismatch is the single formatting entry point for a Type mismatch
// diagnostic (spec.md §4.5 "reports `Type mismatch` with the two
// offending types").
func (v *validator) mismatch(n hir.ExprNode, context string, want, got *hir.TypeRef) {
	v.report(n, "Type mismatch in %s: expected %s, found %s", context, typeString(want), typeString(got))
}
