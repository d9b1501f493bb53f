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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticelang/frontc/errors"
	"github.com/latticelang/frontc/hir"
	"github.com/latticelang/frontc/token"
)

func boolTy() *hir.TypeRef  { return &hir.TypeRef{Kind: hir.TyPrimitive, Primitive: token.CoreBool} }
func i32Ty() *hir.TypeRef   { return &hir.TypeRef{Kind: hir.TyPrimitive, Primitive: token.CoreI32} }
func addTrait() hir.SimplePath { return hir.SimplePath{Crate: "core", Components: []string{"ops", "Add"}} }

func TestFindTraitImpls(t *testing.T) {
	crate := hir.NewCrate("test")
	impl := &hir.TraitImpl{
		Trait:       addTrait(),
		Implementor: i32Ty(),
		Types:       map[string]*hir.ImplAssocType{"Output": {Type: i32Ty()}},
	}
	crate.AddTraitImpl(addTrait(), impl)

	r := New(crate, &errors.Sink{})
	got := r.FindTraitImpls(addTrait(), hir.PathParams{Types: []*hir.TypeRef{i32Ty()}}, i32Ty(), nil)
	require.NotNil(t, got)
	assert.Equal(t, impl, got)

	missing := r.FindTraitImpls(addTrait(), hir.PathParams{Types: []*hir.TypeRef{boolTy()}}, boolTy(), nil)
	assert.Nil(t, missing)
}

func TestFindTraitImplsCallback(t *testing.T) {
	crate := hir.NewCrate("test")
	first := &hir.TraitImpl{Trait: addTrait(), Implementor: i32Ty()}
	second := &hir.TraitImpl{Trait: addTrait(), Implementor: i32Ty()}
	crate.AddTraitImpl(addTrait(), first)
	crate.AddTraitImpl(addTrait(), second)

	r := New(crate, &errors.Sink{})
	var seen []*hir.TraitImpl
	got := r.FindTraitImpls(addTrait(), hir.PathParams{}, i32Ty(), func(impl *hir.TraitImpl) bool {
		seen = append(seen, impl)
		return impl == second
	})
	assert.Equal(t, second, got)
	assert.Equal(t, []*hir.TraitImpl{first, second}, seen)
}

func TestFindTypeImpls(t *testing.T) {
	crate := hir.NewCrate("test")
	impl := &hir.TypeImpl{Implementor: i32Ty()}
	crate.TypeImpls = append(crate.TypeImpls, impl)

	r := New(crate, &errors.Sink{})
	got := r.FindTypeImpls(i32Ty(), nil, nil)
	assert.Equal(t, impl, got)
}

func TestExpandAssociatedTypesResolves(t *testing.T) {
	crate := hir.NewCrate("test")
	impl := &hir.TraitImpl{
		Trait:       addTrait(),
		Implementor: i32Ty(),
		Types:       map[string]*hir.ImplAssocType{"Output": {Type: boolTy()}},
	}
	crate.AddTraitImpl(addTrait(), impl)

	r := New(crate, &errors.Sink{})
	ty := &hir.TypeRef{
		Kind: hir.TyPath,
		Path: &hir.Path{
			Kind:      hir.PathUfcsKnown,
			UfcsType:  i32Ty(),
			UfcsTrait: &hir.GenericPath{Path: addTrait()},
			Item:      "Output",
		},
	}
	got := r.ExpandAssociatedTypes(ty)
	assert.Equal(t, boolTy(), got)
}

func TestExpandAssociatedTypesLeavesUnresolved(t *testing.T) {
	r := New(hir.NewCrate("test"), &errors.Sink{})
	ty := i32Ty()
	assert.Equal(t, ty, r.ExpandAssociatedTypes(ty))
}

func TestGetLangItemPath(t *testing.T) {
	crate := hir.NewCrate("test")
	crate.LangItems["add"] = addTrait()
	r := New(crate, &errors.Sink{})
	assert.Equal(t, addTrait(), r.GetLangItemPath("add"))
}

func TestSetGenericsScopeReleases(t *testing.T) {
	r := New(hir.NewCrate("test"), &errors.Sink{}).(*reflectResolver)
	release := r.SetImplGenerics(hir.GenericParams{TypeParamNames: []string{"T"}})
	require.Len(t, r.implGenerics, 1)
	release()
	assert.Len(t, r.implGenerics, 0)
}

func TestTypesUnifyWildcards(t *testing.T) {
	infer := &hir.TypeRef{Kind: hir.TyInfer}
	assert.True(t, typesUnify(infer, i32Ty()))
	assert.True(t, typesUnify(i32Ty(), infer))
	assert.False(t, typesUnify(i32Ty(), boolTy()))
	assert.True(t, typesUnify(i32Ty(), i32Ty()))
}
