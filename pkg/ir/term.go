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

// Trace provides read access to the cells of an assigned witness, as required
// for evaluating expressions.  Columns are identified by their allocation
// index, rows by their position in the trace.
type Trace interface {
	// Cell returns the value held in a given column on a given row.  An error
	// is returned if either the column or the row is out-of-bounds.
	Cell(col uint, row int) (fr.Element, error)
	// Height returns the number of rows in this trace.
	Height() uint
}

// Expr represents a symbolic expression over the cells of the current row.
// Expressions are fixed at configuration time and evaluated at checking time
// against a concrete trace.  Unlike a full intermediate representation there
// are no row shifts here: every gate and lookup in the event table reads the
// current row only.
type Expr interface {
	// EvalAt evaluates this expression on the given row of a trace.
	EvalAt(row int, tr Trace) (fr.Element, error)
	// String returns a human-readable rendition of this expression, which is
	// useful for reporting failed constraints.
	String() string
}

// evalTerms evaluates a sequence of expressions on a given row, handing each
// result to the supplied accumulator.
func evalTerms(row int, tr Trace, fn func(fr.Element), terms ...Expr) error {
	for _, ith := range terms {
		val, err := ith.EvalAt(row, tr)
		if err != nil {
			return err
		}
		//
		fn(val)
	}
	//
	return nil
}

func stringOfTerms(op string, terms []Expr) string {
	str := "(" + op
	for _, ith := range terms {
		str += " " + ith.String()
	}
	//
	return str + ")"
}
