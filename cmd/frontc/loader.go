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
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
)

// fsLoader resolves `mod` declarations against files on disk, rooted at
// base (--crate-path). It is the only real implementation of
// parser.Loader this module ships; tests that need a Loader use their
// own in-memory stand-in instead of touching the filesystem.
type fsLoader struct {
	base string
}

// Load implements parser.Loader's "<dir>/foo.rs or <dir>/foo/mod.rs,
// error if both exist" rule (spec.md §4.3).
func (l *fsLoader) Load(dir, name string) (content []byte, path string, err error) {
	root := dir
	if root == "" {
		root = l.base
	}
	sibling := filepath.Join(root, name+".rs")
	nested := filepath.Join(root, name, "mod.rs")

	_, siblingErr := os.Stat(sibling)
	_, nestedErr := os.Stat(nested)
	switch {
	case siblingErr == nil && nestedErr == nil:
		return nil, sibling, fmt.Errorf("both %s and %s exist", sibling, nested)
	case siblingErr == nil:
		content, err = ioutil.ReadFile(sibling)
		return content, sibling, err
	case nestedErr == nil:
		content, err = ioutil.ReadFile(nested)
		return content, nested, err
	default:
		return nil, sibling, siblingErr
	}
}
