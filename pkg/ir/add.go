// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ir

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Add represents the addition of one or more expressions.
type Add struct{ Args []Expr }

// Sum one or more expressions together.
func Sum(terms ...Expr) Expr {
	if len(terms) == 1 {
		return terms[0]
	}
	//
	return &Add{terms}
}

// EvalAt implementation for Expr interface.
func (p *Add) EvalAt(row int, tr Trace) (fr.Element, error) {
	var val fr.Element
	// Accumulate arguments
	err := evalTerms(row, tr, func(ith fr.Element) {
		val.Add(&val, &ith)
	}, p.Args...)
	// Done
	return val, err
}

// String implementation for Expr interface.
func (p *Add) String() string {
	return stringOfTerms("+", p.Args)
}
