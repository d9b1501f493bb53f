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

package target

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `
pointer_width: 64
endian: little
arch: x86_64
atomics: ["8", "16", "32", "64", "ptr"]
features: ["sse2", "fxsr"]
`

func TestLoad(t *testing.T) {
	cfg, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.PointerWidth)
	assert.Equal(t, Little, cfg.Endian)
	assert.Equal(t, "x86_64", cfg.Arch)
	assert.True(t, cfg.HasAtomic("64"))
	assert.False(t, cfg.HasAtomic("128"))
	assert.True(t, cfg.HasFeature("sse2"))
	assert.False(t, cfg.HasFeature("avx512"))
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader(doc + "bogus: true\n"))
	assert.Error(t, err)
}

func TestPredicates(t *testing.T) {
	cfg, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	p := cfg.Predicates()
	assert.Equal(t, []string{"64"}, p["target_pointer_width"])
	assert.Equal(t, []string{"little"}, p["target_endian"])
	assert.Contains(t, p["target_feature"], "fxsr")
}
