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

package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticelang/frontc/token"
)

func pos(file string, line, col int) token.Pos {
	return token.Pos{Filename: file, Line: line, Column: col}
}

func TestNewfRendersPositionAndMessage(t *testing.T) {
	err := Newf(pos("a.rs", 3, 1), "expected %s, found %s", "IDENT", "SEMI")
	assert.Contains(t, err.Error(), "a.rs:3:1")
	assert.Contains(t, err.Error(), "expected IDENT, found SEMI")
}

func TestAppendFlattensLists(t *testing.T) {
	a := Newf(pos("a.rs", 1, 1), "first")
	b := Newf(pos("a.rs", 2, 1), "second")
	c := Newf(pos("a.rs", 3, 1), "third")

	list := Append(a, b)
	list = Append(list, c)

	l, ok := list.(List)
	require.True(t, ok)
	assert.Len(t, l, 3)
}

func TestAppendNilErrIsNoop(t *testing.T) {
	a := Newf(pos("a.rs", 1, 1), "first")
	assert.Equal(t, a, Append(a, nil))
}

func TestSanitizeOrdersByPosition(t *testing.T) {
	list := Append(Newf(pos("b.rs", 1, 1), "in b"), Newf(pos("a.rs", 5, 1), "in a"))
	sanitized := Sanitize(list).(List)
	require.Len(t, sanitized, 2)
	assert.Equal(t, "a.rs", sanitized[0].Position().Filename)
	assert.Equal(t, "b.rs", sanitized[1].Position().Filename)
}

func TestSanitizeNonListIsUnchanged(t *testing.T) {
	a := Newf(pos("a.rs", 1, 1), "solo")
	assert.Equal(t, a, Sanitize(a))
}
