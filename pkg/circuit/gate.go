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
package circuit

import (
	"github.com/consensys/go-zkwasm/pkg/ir"
)

// Gate is a named set of polynomial identities which must each evaluate to
// zero on every row of a valid trace.
type Gate struct {
	// A unique identifier for this gate, useful primarily for debugging.
	Handle string
	// The identities themselves.
	Constraints []ir.Expr
}

// Accepts checks whether every constraint of this gate vanishes on every row
// of the given trace.  If so, nil is returned; otherwise a failure
// identifying the offending constraint and row.
func (p *Gate) Accepts(tr ir.Trace) Failure {
	height := tr.Height()
	//
	for k := 0; k < int(height); k++ {
		if err := p.holdsLocally(k, tr); err != nil {
			return err
		}
	}
	// Success
	return nil
}

// holdsLocally checks whether this gate vanishes on a specific row of a
// trace.  If not, report an appropriate failure.
func (p *Gate) holdsLocally(k int, tr ir.Trace) Failure {
	for _, constraint := range p.Constraints {
		val, err := constraint.EvalAt(k, tr)
		// Check for errors
		if err != nil {
			return &InternalFailure{p.Handle, uint(k), err.Error()}
		} else if !val.IsZero() {
			// Evaluation failure
			return &VanishingFailure{p.Handle, constraint, uint(k)}
		}
	}
	// Success
	return nil
}

// Accepts checks whether every gate of this constraint system holds on every
// row of the given trace, returning a failure if one arose.  Gates read
// disjoint state and hence are checked in parallel, one go-routine each.
func (p *ConstraintSystem) Accepts(tr ir.Trace) Failure {
	return ParCheck(len(p.gates), func(i int) Failure {
		return p.gates[i].Accepts(tr)
	})
}
