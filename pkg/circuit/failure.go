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
	"fmt"

	"github.com/consensys/go-zkwasm/pkg/ir"
)

// Failure embodies structured information about a failing constraint, such
// that it can be reported back to the user in a meaningful fashion.
type Failure interface {
	// Message returns a suitable error message for this failure.
	Message() string
}

// VanishingFailure indicates a given gate constraint did not evaluate to zero
// on a given row.
type VanishingFailure struct {
	// Handle of the failing gate.
	Handle string
	// Constraint which did not vanish.
	Constraint ir.Expr
	// Row of the trace on which the constraint failed.
	Row uint
}

// Message implementation for the Failure interface.
func (p *VanishingFailure) Message() string {
	return fmt.Sprintf("gate %q does not vanish on row %d (%s)", p.Handle, p.Row, p.Constraint.String())
}

func (p *VanishingFailure) String() string {
	return p.Message()
}

// InternalFailure indicates something unexpected went wrong whilst checking a
// constraint (e.g. an expression accessing an out-of-bounds column).  This
// always signals a wiring defect, rather than an invalid witness.
type InternalFailure struct {
	// Handle of the constraint being checked.
	Handle string
	// Row of the trace being checked.
	Row uint
	// Underlying error.
	Error string
}

// Message implementation for the Failure interface.
func (p *InternalFailure) Message() string {
	return fmt.Sprintf("constraint %q failed on row %d: %s", p.Handle, p.Row, p.Error)
}

func (p *InternalFailure) String() string {
	return p.Message()
}
