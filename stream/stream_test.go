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

package stream

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticelang/frontc/errors"
	"github.com/latticelang/frontc/scan"
	"github.com/latticelang/frontc/token"
)

func newStream(t *testing.T, src string) *Stream {
	t.Helper()
	sink := &errors.Sink{}
	lx, err := scan.New("t.rs", strings.NewReader(src), sink)
	require.NoError(t, err)
	return NewFromLexer(lx, "t.rs", sink)
}

func TestGetSkipsTrivia(t *testing.T) {
	s := newStream(t, "  fn // comment\n  main")
	tok := s.Get()
	assert.Equal(t, token.KW_FN, tok.Kind)
	tok = s.Get()
	assert.Equal(t, token.IDENT, tok.Kind)
	assert.Equal(t, "main", tok.Text)
}

func TestPutbackReplaysToken(t *testing.T) {
	s := newStream(t, "fn main")
	first := s.Get()
	s.Putback(first)
	replayed := s.Get()
	assert.Equal(t, first, replayed)
}

func TestDoublePutbackIsBug(t *testing.T) {
	s := newStream(t, "fn main")
	sink := &errors.Sink{}
	s.sink = sink
	first := s.Get()
	assert.Panics(t, func() {
		s.Putback(first)
		s.Putback(first)
	})
}

func TestLookaheadDoesNotConsume(t *testing.T) {
	s := newStream(t, "fn main ( )")
	assert.Equal(t, token.KW_FN, s.Lookahead(0))
	assert.Equal(t, token.IDENT, s.Lookahead(1))
	assert.Equal(t, token.KW_FN, s.Get().Kind)
	assert.Equal(t, token.IDENT, s.Get().Kind)
}

func TestLookaheadBeyondLimitIsBug(t *testing.T) {
	s := newStream(t, "fn main ( )")
	assert.Panics(t, func() { s.Lookahead(maxLookahead) })
}
