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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplePathString(t *testing.T) {
	p := SimplePath{Crate: "core", Components: []string{"ops", "Add"}}
	assert.Equal(t, "::core::ops::Add", p.String())
}

func TestAddTraitImplPreservesFirstSeenKeyOrder(t *testing.T) {
	crate := NewCrate("test")
	b := SimplePath{Crate: "core", Components: []string{"B"}}
	a := SimplePath{Crate: "core", Components: []string{"A"}}
	crate.AddTraitImpl(b, &TraitImpl{Trait: b})
	crate.AddTraitImpl(a, &TraitImpl{Trait: a})
	crate.AddTraitImpl(b, &TraitImpl{Trait: b})

	assert.Equal(t, []string{b.String(), a.String()}, crate.TraitImplKeys())
	assert.Len(t, crate.TraitImpls[b.String()], 2)
}

func TestSetTraitsSortsAndDedups(t *testing.T) {
	m := NewModule(SimplePath{Crate: "test"})
	c := SimplePath{Crate: "test", Components: []string{"C"}}
	a := SimplePath{Crate: "test", Components: []string{"A"}}
	m.SetTraits([]SimplePath{c, a, c, a})

	require := assert.New(t)
	require.Len(m.Traits, 2)
	require.Equal(a, m.Traits[0])
	require.Equal(c, m.Traits[1])
}
