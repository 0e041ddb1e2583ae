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
package etable

import (
	"math/big"

	"github.com/consensys/go-zkwasm/pkg/circuit"
	"github.com/consensys/go-zkwasm/pkg/ir"
)

// CommonConfig holds the per-row columns shared by all opcode modules: the
// execution id, the stack pointer before the step, and the row-enable
// predicate.  The one-hot opcode-class selector bits also belong to the
// common layer, but are handed to each module individually at configure
// time.
type CommonConfig struct {
	// Eid is the monotonic step identifier of the row.
	Eid circuit.Column
	// Sp is the stack pointer before the step, being the index of the next
	// free slot.
	Sp circuit.Column
	// Enable is non-zero exactly on rows holding an executed step (as
	// opposed to padding).
	Enable circuit.Column
}

// EidExpr returns the execution id of the current row.
func (p *CommonConfig) EidExpr() ir.Expr {
	return p.Eid.Expr()
}

// SpExpr returns the stack pointer of the current row.
func (p *CommonConfig) SpExpr() ir.Expr {
	return p.Sp.Expr()
}

// EnableExpr returns the row-enable predicate.
func (p *CommonConfig) EnableExpr() ir.Expr {
	return p.Enable.Expr()
}

// minusOne is the field rendition of -1, as used by modules whose net effect
// shrinks the stack.
func minusOne() ir.Expr {
	return ir.ConstBig(big.NewInt(-1))
}
