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

package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticelang/frontc/errors"
	"github.com/latticelang/frontc/scan"
)

func TestParseFileFunction(t *testing.T) {
	sink := &errors.Sink{}
	lx, err := scan.New("t.rs", strings.NewReader("fn main() {}\n"), sink)
	require.NoError(t, err)

	crate, perr := ParseFile("t.rs", lx, sink, nil)
	assert.Nil(t, perr)
	require.NotNil(t, crate)
	require.Len(t, crate.Root.Items, 1)
	fn := crate.Root.Items[0].Function
	require.NotNil(t, fn)
	assert.Equal(t, "main", fn.Name)
	assert.NotNil(t, fn.Body)
	assert.Nil(t, fn.ReturnType)
}

func TestParseFileReportsMissingToken(t *testing.T) {
	sink := &errors.Sink{}
	lx, err := scan.New("t.rs", strings.NewReader("fn main("), sink)
	require.NoError(t, err)

	_, perr := ParseFile("t.rs", lx, sink, nil)
	require.NotNil(t, perr)
	assert.Contains(t, perr.Error(), "expected")
}

func TestParseFileStructWithFields(t *testing.T) {
	sink := &errors.Sink{}
	lx, err := scan.New("t.rs", strings.NewReader("struct Point { x: i32, y: i32 }\n"), sink)
	require.NoError(t, err)

	crate, perr := ParseFile("t.rs", lx, sink, nil)
	assert.Nil(t, perr)
	require.Len(t, crate.Root.Items, 1)
	st := crate.Root.Items[0].Struct
	require.NotNil(t, st)
	assert.Equal(t, "Point", st.Name)
}

func TestCrateNameFromPath(t *testing.T) {
	assert.Equal(t, "main", crateNameFromPath("-"))
	assert.Equal(t, "lib", crateNameFromPath("src/lib.rs"))
}
