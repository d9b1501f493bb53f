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

package resolve

import "github.com/latticelang/frontc/hir"

// typesUnify is the shallow structural match find_trait_impls/
// find_type_impls need to pick a candidate: exact structural equality,
// except TyInfer and TyGeneric act as wildcards on either side. Full
// unification with substitution recording belongs to the inference
// engine this module consumes rather than builds (spec.md §1
// Non-goals).
func typesUnify(a, b *hir.TypeRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind == hir.TyInfer || b.Kind == hir.TyInfer {
		return true
	}
	if a.Kind == hir.TyGeneric || b.Kind == hir.TyGeneric {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case hir.TyDiverge, hir.TyTraitObject:
		return traitObjectsUnify(a.TraitObject, b.TraitObject)
	case hir.TyPrimitive:
		return a.Primitive == b.Primitive
	case hir.TyTuple:
		return unifyList(a.Inners, b.Inners)
	case hir.TySlice, hir.TyArray:
		return typesUnify(a.Inner, b.Inner)
	case hir.TyBorrow, hir.TyPointer:
		return a.Mutable == b.Mutable && typesUnify(a.Inner, b.Inner)
	case hir.TyPath:
		return pathsUnify(a.Path, b.Path)
	case hir.TyFunction:
		return functionsUnify(a.Function, b.Function)
	case hir.TyClosure:
		return closuresUnify(a.Closure, b.Closure)
	}
	return false
}

func unifyList(a, b []*hir.TypeRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !typesUnify(a[i], b[i]) {
			return false
		}
	}
	return true
}

func pathsUnify(a, b *hir.Path) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == hir.PathGeneric {
		return a.Generic.Path.String() == b.Generic.Path.String() && unifyList(a.Generic.Params.Types, b.Generic.Params.Types)
	}
	return typesUnify(a.UfcsType, b.UfcsType) && a.Item == b.Item
}

func traitObjectsUnify(a, b *hir.TraitObjectInfo) bool {
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

func functionsUnify(a, b *hir.FunctionTypeInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ABI == b.ABI && a.Unsafe == b.Unsafe && a.Variadic == b.Variadic &&
		unifyList(a.Params, b.Params) && typesUnify(a.ReturnType, b.ReturnType)
}

func closuresUnify(a, b *hir.ClosureTypeInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	return unifyList(a.Params, b.Params) && typesUnify(a.ReturnType, b.ReturnType)
}

// argsUnify matches an impl's trait arguments (a) against a query's (b).
// An impl that spells no trait arguments (`impl Add for i32`, its
// parameters left at their defaults) matches any query arguments.
func argsUnify(a, b hir.PathParams) bool {
	if len(a.Types) == 0 {
		return true
	}
	return unifyList(a.Types, b.Types)
}
