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

// Sub represents the subtraction of one or more expressions from the first.
type Sub struct{ Args []Expr }

// Subtract one or more expressions from the first.
func Subtract(terms ...Expr) Expr {
	if len(terms) == 1 {
		return terms[0]
	}
	//
	return &Sub{terms}
}

// EvalAt implementation for Expr interface.
func (p *Sub) EvalAt(row int, tr Trace) (fr.Element, error) {
	// Evaluate first argument
	val, err := p.Args[0].EvalAt(row, tr)
	if err != nil {
		return val, err
	}
	// Subtract the rest
	err = evalTerms(row, tr, func(ith fr.Element) {
		val.Sub(&val, &ith)
	}, p.Args[1:]...)
	// Done
	return val, err
}

// String implementation for Expr interface.
func (p *Sub) String() string {
	return stringOfTerms("-", p.Args)
}
