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

package lower

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticelang/frontc/errors"
	"github.com/latticelang/frontc/hir"
	"github.com/latticelang/frontc/parser"
	"github.com/latticelang/frontc/scan"
	"github.com/latticelang/frontc/token"
)

func lowerSrc(t *testing.T, src string) (*hir.Crate, errors.Error) {
	t.Helper()
	sink := &errors.Sink{}
	lx, err := scan.New("t.rs", strings.NewReader(src), sink)
	require.NoError(t, err)
	crate, perr := parser.ParseFile("t.rs", lx, sink, nil)
	require.Nil(t, perr)
	return Lower(crate, sink)
}

func TestLowerSimpleFunction(t *testing.T) {
	hirCrate, err := lowerSrc(t, "fn main() {}\n")
	require.Nil(t, err)
	require.NotNil(t, hirCrate)
	item, ok := hirCrate.Root.Values["main"]
	require.True(t, ok)
	assert.Equal(t, hir.ValueFunction, item.Kind)
	require.NotNil(t, item.Function)
	assert.NotNil(t, item.Function.Body)
}

func TestLowerStructFields(t *testing.T) {
	hirCrate, err := lowerSrc(t, "struct Point { x: i32, y: i32 }\n")
	require.Nil(t, err)
	item, ok := hirCrate.Root.Types["Point"]
	require.True(t, ok)
	assert.Equal(t, hir.TypeStruct, item.Kind)
	require.NotNil(t, item.Struct)
	assert.Len(t, item.Struct.Fields, 2)
}

func TestLowerReportsUnboundPathAsBug(t *testing.T) {
	_, err := lowerSrc(t, "fn main() { undefined_fn(); }\n")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "internal compiler error")
}

// TestLowerUnifiesDifferentlyNormalizedIdentifiers binds a local using
// the decomposed (NFD) spelling of an accented name and references it
// with the precomposed (NFC) spelling; both must resolve to the same
// binding rather than lowering reporting an unbound path.
func TestLowerUnifiesDifferentlyNormalizedIdentifiers(t *testing.T) {
	nfd := "caf" + "é" // "e" + combining acute accent (U+0301)
	nfc := "caf" + "é" // precomposed "é" (U+00E9)
	require.NotEqual(t, nfd, nfc, "fixture must exercise two distinct byte encodings")

	src := "fn main() { let " + nfd + " = 1; " + nfc + "; }\n"
	_, err := lowerSrc(t, src)
	require.Nil(t, err)
}

// TestLowerStructFieldTypesMatchShape compares the lowered field types
// structurally with cmp.Diff rather than field-by-field assertions, the
// way cue/types_test.go diffs whole value trees instead of re-deriving
// each field's expected contents by hand.
func TestLowerStructFieldTypesMatchShape(t *testing.T) {
	hirCrate, err := lowerSrc(t, "struct Point { x: i32, y: bool }\n")
	require.Nil(t, err)

	fields := hirCrate.Root.Types["Point"].Struct.Fields
	require.Len(t, fields, 2)

	want := []*hir.TypeRef{
		{Kind: hir.TyPrimitive, Primitive: token.CoreI32},
		{Kind: hir.TyPrimitive, Primitive: token.CoreBool},
	}
	opt := cmp.Comparer(func(a, b *hir.TypeRef) bool {
		if a == nil || b == nil {
			return a == b
		}
		return a.Kind == b.Kind && a.Primitive == b.Primitive
	})
	got := []*hir.TypeRef{fields[0].Type, fields[1].Type}
	if diff := cmp.Diff(want, got, opt); diff != "" {
		t.Errorf("field types differ (-want +got):\n%s", diff)
	}
}
