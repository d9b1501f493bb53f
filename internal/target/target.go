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

// Package target loads the target-platform descriptor the driver feeds
// to attribute-filtering (`cfg`) during expansion (spec.md §6
// "Environment"). Evaluating a `#[cfg(...)]` predicate against this
// descriptor is the expansion collaborator's job; this package only
// owns the document shape and its loading.
package target

import (
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Endian names the target's byte order, one of the two values cfg's
// `target_endian` key→predicate form compares against.
type Endian string

const (
	Little Endian = "little"
	Big    Endian = "big"
)

// Config is a target platform descriptor: a handful of well-known
// settings (pointer width, endianness, architecture) plus two
// open-ended lists of feature flags (`target_feature = "..."`,
// `target_has_atomic = "..."`). The lists are plain YAML sequences, so
// a build can add a feature without a schema change.
type Config struct {
	PointerWidth int      `yaml:"pointer_width"`
	Endian       Endian   `yaml:"endian"`
	Arch         string   `yaml:"arch"`
	Atomics      []string `yaml:"atomics"`
	Features     []string `yaml:"features"`
}

// Load decodes a target descriptor document from r.
func Load(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HasAtomic reports whether width (e.g. "64", "ptr") is in the target's
// atomic support set, the predicate `cfg(target_has_atomic = "64")`
// tests during expansion.
func (c *Config) HasAtomic(width string) bool {
	for _, w := range c.Atomics {
		if w == width {
			return true
		}
	}
	return false
}

// HasFeature reports whether name is one of the target's enabled
// features, the predicate `cfg(target_feature = "...")` tests.
func (c *Config) HasFeature(name string) bool {
	for _, f := range c.Features {
		if f == name {
			return true
		}
	}
	return false
}

// Predicates flattens the descriptor into the key/value and
// key/predicate entry set spec.md §6 describes, for a driver that wants
// to hand cfg a uniform lookup table rather than a typed Config.
func (c *Config) Predicates() map[string][]string {
	p := map[string][]string{
		"target_pointer_width": {strconv.Itoa(c.PointerWidth)},
		"target_endian":        {string(c.Endian)},
		"target_arch":          {c.Arch},
		"target_has_atomic":    c.Atomics,
		"target_feature":       c.Features,
	}
	return p
}
