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
	"sort"

	"github.com/latticelang/frontc/hir"
)

// sortedKeys/sortedTypeKeys/sortedMethodKeys/sortedConstKeys/
// sortedTraitValueKeys give the validator's
// traversal a deterministic order over HIR's map-keyed collections
// (spec.md §5 "iteration order over these maps must be deterministic").

func sortedKeys(m map[string]*hir.ValueItem) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedTypeKeys(m map[string]*hir.TypeItem) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedMethodKeys(m map[string]*hir.ImplMethod) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedConstKeys(m map[string]*hir.ImplConstant) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedTraitValueKeys(m map[string]*hir.TraitValue) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// moduleAt descends from root along path's components, stopping at the
// last one; it does not resolve the final component itself, since
// callers need either the value or the type namespace of the last
// segment, not a sub-module.
func moduleAt(root *hir.Module, components []string) *hir.Module {
	cur := root
	for _, c := range components {
		item, ok := cur.Types[c]
		if !ok || item.Kind != hir.TypeModule {
			return nil
		}
		cur = item.Module
	}
	return cur
}

// lookupStruct finds the hir.Struct a SimplePath names, by walking the
// crate's root module along the path's components.
func lookupStruct(crate *hir.Crate, p hir.SimplePath) *hir.Struct {
	if len(p.Components) == 0 {
		return nil
	}
	m := moduleAt(crate.Root, p.Components[:len(p.Components)-1])
	if m == nil {
		return nil
	}
	item, ok := m.Types[p.Components[len(p.Components)-1]]
	if !ok || item.Kind != hir.TypeStruct {
		return nil
	}
	return item.Struct
}

// lookupEnum finds the hir.Enum named by the path formed from p's
// components with the trailing variant name dropped (the shape
// lower.variantPath produces for `E::Variant`).
func lookupEnum(crate *hir.Crate, p hir.SimplePath) (*hir.Enum, string) {
	if len(p.Components) < 2 {
		return nil, ""
	}
	variant := p.Components[len(p.Components)-1]
	enumPath := p.Components[:len(p.Components)-1]
	m := moduleAt(crate.Root, enumPath[:len(enumPath)-1])
	if m == nil {
		return nil, ""
	}
	item, ok := m.Types[enumPath[len(enumPath)-1]]
	if !ok || item.Kind != hir.TypeEnum {
		return nil, ""
	}
	return item.Enum, variant
}

// lookupFunction finds the hir.Function a SimplePath names in the value
// namespace, by walking the crate's root module along the path's
// components.
func lookupFunction(crate *hir.Crate, p hir.SimplePath) *hir.Function {
	if len(p.Components) == 0 {
		return nil
	}
	m := moduleAt(crate.Root, p.Components[:len(p.Components)-1])
	if m == nil {
		return nil
	}
	item, ok := m.Values[p.Components[len(p.Components)-1]]
	if !ok || item.Kind != hir.ValueFunction {
		return nil
	}
	return item.Function
}

// findVariant returns the EnumVariant named name in e, or nil.
func findVariant(e *hir.Enum, name string) *hir.EnumVariant {
	for i := range e.Variants {
		if e.Variants[i].Name == name {
			return &e.Variants[i]
		}
	}
	return nil
}
