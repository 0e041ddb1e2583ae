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

// Mul represents the product of one or more expressions.
type Mul struct{ Args []Expr }

// Product multiplies one or more expressions together.  Within an opcode
// module this is how a constraint is scaled by its enable predicate, such
// that inactive rows are unconstrained.
func Product(terms ...Expr) Expr {
	if len(terms) == 1 {
		return terms[0]
	}
	//
	return &Mul{terms}
}

// EvalAt implementation for Expr interface.
func (p *Mul) EvalAt(row int, tr Trace) (fr.Element, error) {
	// Evaluate first argument
	val, err := p.Args[0].EvalAt(row, tr)
	if err != nil {
		return val, err
	}
	// Multiply in the rest, short-circuiting on zero.
	for _, ith := range p.Args[1:] {
		if val.IsZero() {
			return val, nil
		}
		//
		ithVal, err := ith.EvalAt(row, tr)
		if err != nil {
			return val, err
		}
		//
		val.Mul(&val, &ithVal)
	}
	// Done
	return val, nil
}

// String implementation for Expr interface.
func (p *Mul) String() string {
	return stringOfTerms("*", p.Args)
}
