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

// A Tree is either a single Token or a balanced-bracket sequence of
// sub-trees. It supplies uniform traversal for macro matchers and
// attribute argument lists (§4.2).
type Tree struct {
	// Leaf holds the single token when Children is nil.
	Leaf Token

	// Open/Close bracket the children when this tree is a group; Open.Kind
	// is one of LPAREN, LBRACKET, LBRACE.
	Open, Close Token
	Children    []Tree
}

// IsLeaf reports whether this tree wraps a single token.
func (t Tree) IsLeaf() bool { return t.Children == nil && t.Open.Kind == ILLEGAL }

// Span returns the full span covered by the tree.
func (t Tree) Span() Span {
	if t.IsLeaf() {
		return t.Leaf.Span
	}
	return t.Open.Span.Merge(t.Close.Span)
}

// Flatten yields every leaf token in the tree, depth-first, including
// the bracket tokens themselves — the form a macro matcher or attribute
// parser walks.
func (t Tree) Flatten() []Token {
	if t.IsLeaf() {
		return []Token{t.Leaf}
	}
	out := []Token{t.Open}
	for _, c := range t.Children {
		out = append(out, c.Flatten()...)
	}
	out = append(out, t.Close)
	return out
}

// closingFor returns the Kind that closes the given opening bracket
// Kind, used by the parser when assembling trees.
func closingFor(open Kind) Kind {
	switch open {
	case LPAREN:
		return RPAREN
	case LBRACKET:
		return RBRACKET
	case LBRACE:
		return RBRACE
	}
	return ILLEGAL
}

// ClosingFor exports closingFor for consumers that assemble trees
// incrementally (the parser).
func ClosingFor(open Kind) Kind { return closingFor(open) }
