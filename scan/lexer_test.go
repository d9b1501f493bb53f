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

package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticelang/frontc/errors"
	"github.com/latticelang/frontc/token"
)

func tokenize(t *testing.T, src string) ([]token.Token, *errors.Sink) {
	t.Helper()
	sink := &errors.Sink{}
	lx, err := New("t.rs", strings.NewReader(src), sink)
	require.NoError(t, err)
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, sink
}

// TestRoundTrip verifies spec.md §8's lexer round-trip property:
// concatenating every emitted token's literal spelling reproduces the
// input exactly.
func TestRoundTrip(t *testing.T) {
	src := "fn main() {\n\tlet x = 1 + 2; // comment\n}\n"
	toks, sink := tokenize(t, src)
	assert.False(t, sink.HasErrors())

	var b strings.Builder
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		b.WriteString(tok.Text)
	}
	assert.Equal(t, src, b.String())
}

func TestIntegerLiteralBases(t *testing.T) {
	cases := []struct {
		src  string
		want uint64
	}{
		{"0x1F", 31},
		{"0b101", 5},
		{"0o17", 15},
		{"1_000", 1000},
	}
	for _, c := range cases {
		toks, sink := tokenize(t, c.src)
		require.False(t, sink.HasErrors(), c.src)
		require.Equal(t, token.INTEGER, toks[0].Kind, c.src)
		got, err := toks[0].IntVal.Uint64()
		require.NoError(t, err, c.src)
		assert.Equal(t, c.want, got, c.src)
	}
}

func TestFloatEscalation(t *testing.T) {
	toks, sink := tokenize(t, "1.5")
	assert.False(t, sink.HasErrors())
	require.Equal(t, token.FLOAT, toks[0].Kind)
}

func TestDotNotFollowedByDigitIsSeparateToken(t *testing.T) {
	toks, sink := tokenize(t, "1.foo")
	assert.False(t, sink.HasErrors())
	require.Equal(t, token.INTEGER, toks[0].Kind)
	assert.Equal(t, "1", toks[0].Text)
}

func TestInvalidSuffixIsError(t *testing.T) {
	_, sink := tokenize(t, "1q2")
	assert.True(t, sink.HasErrors())
}

func TestUnterminatedStringIsError(t *testing.T) {
	_, sink := tokenize(t, `"abc`)
	assert.True(t, sink.HasErrors())
}
