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

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInvalid(t *testing.T) {
	assert.True(t, (&Path{Kind: PathInvalid}).IsInvalid())
	assert.False(t, (&Path{Kind: PathLocal}).IsInvalid())
}

func TestLastNode(t *testing.T) {
	assert.Nil(t, (&Path{Kind: PathLocal}).LastNode())

	p := &Path{Kind: PathRelative, Nodes: []PathNode{{Name: "a"}, {Name: "b"}}}
	last := p.LastNode()
	if assert.NotNil(t, last) {
		assert.Equal(t, "b", last.Name)
	}
}
