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

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainRejectsUnknownEmit(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.rs")
	require.NoError(t, ioutil.WriteFile(src, []byte("fn main() {}\n"), 0o644))

	code := Main([]string{"--emit", "bogus", src})
	assert.Equal(t, exitArgError, code)
}

func TestMainRejectsMissingFile(t *testing.T) {
	code := Main([]string{filepath.Join(t.TempDir(), "missing.rs")})
	assert.Equal(t, exitArgError, code)
}

func TestMainStopAfterParseSucceeds(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.rs")
	require.NoError(t, ioutil.WriteFile(src, []byte("fn main() {}\n"), 0o644))
	outStem := filepath.Join(dir, "main.o")

	code := Main([]string{"--stop-after", "parse", "-o", outStem, src})
	assert.Equal(t, exitOK, code)
	_, err := os.Stat(outStem)
	assert.NoError(t, err)
}

func TestOutputStem(t *testing.T) {
	assert.Equal(t, "foo.o", outputStem("foo.rs"))
	assert.Equal(t, "-.o", outputStem("-"))
	assert.Equal(t, "noext.o", outputStem("noext"))
}
