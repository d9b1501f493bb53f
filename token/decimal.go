// Copyright 2020 CUE Authors
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
	"github.com/cockroachdb/apd/v2"
)

// Decimal wraps an arbitrary-precision value so integer and float
// literals of any width can be lexed without premature truncation; a
// later pass narrows the value once the literal's CoreType is known
// (explicit suffix or inferred). Mirrors how cue/literal.NumInfo keeps
// literal values as apd.Decimal through parsing.
type Decimal struct {
	apd.Decimal
}

// NewDecimalFromString parses a plain base-10 digit run (underscores
// already stripped by the caller) into a Decimal.
func NewDecimalFromString(s string) (*Decimal, error) {
	d := &Decimal{}
	_, _, err := d.Decimal.SetString(s)
	return d, err
}

// NewDecimalFromUint64 builds a Decimal from an already-parsed
// non-decimal-base integer (hex/octal/binary).
func NewDecimalFromUint64(v uint64) *Decimal {
	d := &Decimal{}
	d.Decimal.SetFinite(int64(v), 0)
	return d
}

// Uint64 reports the value as a uint64, if it fits exactly.
func (d *Decimal) Uint64() (uint64, error) {
	i, err := d.Decimal.Int64()
	if err != nil {
		return 0, err
	}
	return uint64(i), nil
}
