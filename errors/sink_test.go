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
)

func TestSinkErrorAccumulates(t *testing.T) {
	s := &Sink{}
	assert.False(t, s.HasErrors())
	s.Error(pos("a.rs", 1, 1), "E0100", "unexpected token")
	s.Error(pos("a.rs", 2, 1), "E0100", "unexpected token again")
	assert.True(t, s.HasErrors())
	l, ok := s.Err().(List)
	require.True(t, ok)
	assert.Len(t, l, 2)
}

func TestSinkWarningDoesNotCountAsError(t *testing.T) {
	s := &Sink{}
	s.Warning(pos("a.rs", 1, 1), "W001", "unused import")
	assert.False(t, s.HasErrors())
	require.NotNil(t, s.Warnings())
}

func TestRunPhaseReturnsNilOnSuccess(t *testing.T) {
	s := &Sink{}
	err := s.RunPhase(func() {})
	assert.Nil(t, err)
}

func TestRunPhaseCollectsPlainErrors(t *testing.T) {
	s := &Sink{}
	err := s.RunPhase(func() {
		s.Error(pos("a.rs", 1, 1), "E0000", "boom")
	})
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunPhaseRecoversBug(t *testing.T) {
	s := &Sink{}
	err := s.RunPhase(func() {
		s.Bug(pos("a.rs", 1, 1), "unreachable state reached")
	})
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "internal compiler error")
}

func TestRunPhaseRepanicsOtherValues(t *testing.T) {
	s := &Sink{}
	assert.Panics(t, func() {
		s.RunPhase(func() { panic("not a BugPanic") })
	})
}
