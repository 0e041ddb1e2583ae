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
	"github.com/consensys/go-zkwasm/pkg/itable"
	"github.com/consensys/go-zkwasm/pkg/jtable"
	"github.com/consensys/go-zkwasm/pkg/mtable"
	"github.com/consensys/go-zkwasm/pkg/rtable"
)

// ConstOpConfig is the const module: it pushes an immediate typed value onto
// the stack, growing it by one slot.
type ConstOpConfig struct {
	value  TValueConfig
	active ir.Expr
}

// ConstOpConfigBuilder builds the const module.
type ConstOpConfigBuilder struct{}

// Configure implementation for the ConfigBuilder interface.
func (ConstOpConfigBuilder) Configure(
	_ *circuit.ConstraintSystem,
	common *CommonConfig,
	classBit circuit.Column,
	alloc *circuit.Allocator,
	rt *rtable.RangeTableConfig,
	_ *itable.InstructionTableConfig,
	mt *mtable.MemoryTableConfig,
	_ *jtable.JumpTableConfig,
	enable ir.Expr,
) OpcodeConfig {
	active := ir.Product(classBit.Expr(), enable)
	value := ConfigureTValue("const value", alloc, rt, active)
	// Push the immediate at the next free slot.
	mt.AddStackWrite("const: push", active,
		common.EidExpr(),
		ir.Const64(1),
		common.SpExpr(),
		value.VTypeExpr(),
		value.ValueExpr())
	//
	return &ConstOpConfig{value, active}
}

// Opcode implementation for the OpcodeConfig interface.
func (p *ConstOpConfig) Opcode() ir.Expr {
	return ir.Product(
		ir.Sum(
			ir.Const(isa.ShiftedConst(uint64(isa.Const), isa.ClassShift)),
			ir.Product(p.value.VTypeExpr(), ir.Const(isa.ShiftedConst(1, isa.Arg1Shift))),
		),
		p.active)
}

// SpDiff implementation for the OpcodeConfig interface.
func (p *ConstOpConfig) SpDiff() ir.Expr {
	return ir.Product(ir.Const64(1), p.active)
}

// Class implementation for the OpcodeConfig interface.
func (p *ConstOpConfig) Class() isa.OpcodeClass {
	return isa.Const
}

// Assign implementation for the OpcodeConfig interface.
func (p *ConstOpConfig) Assign(row *RowContext, entry *isa.EventTableEntry) error {
	step, ok := entry.Step.(isa.ConstStep)
	if !ok {
		return errMismatch(entry, isa.Const)
	}
	//
	p.value.Assign(row, step.VType, step.Value)
	//
	return nil
}
