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
	"github.com/consensys/go-zkwasm/pkg/circuit"
	"github.com/consensys/go-zkwasm/pkg/ir"
	"github.com/consensys/go-zkwasm/pkg/isa"
	"github.com/consensys/go-zkwasm/pkg/rtable"
)

// TValueConfig is the column group representing one typed stack operand: a
// type tag plus a value.  Configuring a slot registers the range lookup
// guaranteeing that, whenever the activation predicate holds, the pair is
// well-typed: the tag is one of the enumerated types and the value fits the
// bit-width that tag implies.
type TValueConfig struct {
	// VType holds the type tag.
	VType circuit.Column
	// Value holds the operand's bit pattern.
	Value circuit.Column
}

// ConfigureTValue allocates the columns for one typed operand from the
// shared cursor and wires its validity lookup into the range table.
func ConfigureTValue(handle string, alloc *circuit.Allocator, rt *rtable.RangeTableConfig,
	enable ir.Expr) TValueConfig {
	//
	p := TValueConfig{
		VType: alloc.Next(),
		Value: alloc.Next(),
	}
	//
	rt.AddTypedRangeConstraint(handle, enable, p.VTypeExpr(), p.ValueExpr())
	//
	return p
}

// VTypeExpr returns the type tag of this slot on the current row.
func (p TValueConfig) VTypeExpr() ir.Expr {
	return p.VType.Expr()
}

// ValueExpr returns the value of this slot on the current row.
func (p TValueConfig) ValueExpr() ir.Expr {
	return p.Value.Expr()
}

// Assign writes a concrete typed value into this slot.  A value outside the
// range implied by the tag is not rejected here; it fails the registered
// range lookup when the witness is checked.
func (p TValueConfig) Assign(row *RowContext, vtype isa.VarType, value uint64) {
	row.AssignU64(p.VType, uint64(vtype))
	row.AssignU64(p.Value, value)
}
