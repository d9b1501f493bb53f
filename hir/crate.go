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

// TraitImpls and MarkerImpls keep insertion order within one trait key,
// since spec.md §5 requires deterministic map iteration for reproducible
// impl-selection tie-breaking: the map[string][]*T slice value already
// iterates in insertion order, and the key order is handled by
// Crate.TraitImplKeys/MarkerImplKeys below.

// Crate is the parser's lowered, fully-resolved output (spec.md §3
// "HIR.Crate"): a root module plus the three impl indexes, the
// exported-macro table, and the lang-item table.
type Crate struct {
	Name string
	Root *Module

	TypeImpls []*TypeImpl

	// TraitImpls/MarkerImpls are multimaps keyed by the trait's
	// SimplePath, rendered to its canonical string form so the map key
	// is comparable; traitImplOrder/markerImplOrder record first-seen
	// key order for deterministic iteration (spec.md §5).
	TraitImpls      map[string][]*TraitImpl
	traitImplOrder  []string
	MarkerImpls     map[string][]*MarkerImpl
	markerImplOrder []string

	ExportedMacros map[string]*MacroRules
	LangItems      map[string]SimplePath
}

// NewCrate returns an empty crate named name with an empty root module.
func NewCrate(name string) *Crate {
	return &Crate{
		Name:           name,
		Root:           NewModule(SimplePath{Crate: name}),
		TraitImpls:     map[string][]*TraitImpl{},
		MarkerImpls:    map[string][]*MarkerImpl{},
		ExportedMacros: map[string]*MacroRules{},
		LangItems:      map[string]SimplePath{},
	}
}

// AddTraitImpl records impl under trait's key, preserving first-seen
// key order (spec.md §8 "the count of trait impls equals the sum over
// modules of `impl Trait for …` blocks").
func (c *Crate) AddTraitImpl(trait SimplePath, impl *TraitImpl) {
	key := trait.String()
	if _, ok := c.TraitImpls[key]; !ok {
		c.traitImplOrder = append(c.traitImplOrder, key)
	}
	c.TraitImpls[key] = append(c.TraitImpls[key], impl)
}

// AddMarkerImpl records impl under trait's key (positive or negative;
// spec.md §8: "negative impls land in marker_impls with
// is_positive=false").
func (c *Crate) AddMarkerImpl(trait SimplePath, impl *MarkerImpl) {
	key := trait.String()
	if _, ok := c.MarkerImpls[key]; !ok {
		c.markerImplOrder = append(c.markerImplOrder, key)
	}
	c.MarkerImpls[key] = append(c.MarkerImpls[key], impl)
}

// TraitImplKeys returns the trait keys of TraitImpls in first-seen
// insertion order.
func (c *Crate) TraitImplKeys() []string { return c.traitImplOrder }

// MarkerImplKeys returns the trait keys of MarkerImpls in first-seen
// insertion order.
func (c *Crate) MarkerImplKeys() []string { return c.markerImplOrder }
