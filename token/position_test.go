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

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoPosIsInvalid(t *testing.T) {
	assert.False(t, NoPos.IsValid())
	assert.True(t, Pos{Filename: "a.rs", Line: 1, Column: 1}.IsValid())
}

func TestProtoSpanClose(t *testing.T) {
	ps := ProtoSpan{Filename: "a.rs", StartLine: 1, StartCol: 1}
	end := Pos{Filename: "a.rs", Line: 2, Column: 5}
	sp := ps.Close(end)
	assert.Equal(t, Span{Filename: "a.rs", StartLine: 1, StartCol: 1, EndLine: 2, EndCol: 5}, sp)
}

func TestSpanMerge(t *testing.T) {
	a := Span{Filename: "a.rs", StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 5}
	b := Span{Filename: "a.rs", StartLine: 2, StartCol: 1, EndLine: 3, EndCol: 2}
	merged := a.Merge(b)
	assert.Equal(t, 1, merged.StartLine)
	assert.Equal(t, 3, merged.EndLine)
	assert.Equal(t, 2, merged.EndCol)
}

func TestSpanStartEnd(t *testing.T) {
	sp := Span{Filename: "a.rs", StartLine: 1, StartCol: 1, EndLine: 2, EndCol: 3}
	assert.Equal(t, Pos{Filename: "a.rs", Line: 1, Column: 1}, sp.Start())
	assert.Equal(t, Pos{Filename: "a.rs", Line: 2, Column: 3}, sp.End())
}
