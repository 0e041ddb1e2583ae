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
	"fmt"

	"github.com/consensys/go-zkwasm/pkg/circuit"
	"github.com/consensys/go-zkwasm/pkg/ir"
	"github.com/consensys/go-zkwasm/pkg/isa"
	"github.com/consensys/go-zkwasm/pkg/itable"
	"github.com/consensys/go-zkwasm/pkg/jtable"
	"github.com/consensys/go-zkwasm/pkg/mtable"
	"github.com/consensys/go-zkwasm/pkg/rtable"
)

// RelOpConfig is the relational-operator module: it pops two operands of
// equal type, compares them for (in)equality and pushes the boolean result,
// for a net stack shrink of one slot.
type RelOpConfig struct {
	left   TValueConfig
	right  TValueConfig
	res    circuit.Column
	isEq   circuit.Column
	isNe   circuit.Column
	active ir.Expr
}

// RelOpConfigBuilder builds the relational-operator module.
type RelOpConfigBuilder struct{}

// Configure implementation for the ConfigBuilder interface.
func (RelOpConfigBuilder) Configure(
	cs *circuit.ConstraintSystem,
	common *CommonConfig,
	classBit circuit.Column,
	alloc *circuit.Allocator,
	rt *rtable.RangeTableConfig,
	_ *itable.InstructionTableConfig,
	mt *mtable.MemoryTableConfig,
	_ *jtable.JumpTableConfig,
	enable ir.Expr,
) OpcodeConfig {
	var (
		isEq   = alloc.Next()
		isNe   = alloc.Next()
		res    = alloc.Next()
		one    = ir.Const64(1)
		active = ir.Product(classBit.Expr(), enable)
	)
	//
	left := ConfigureTValue("rel left", alloc, rt, active)
	right := ConfigureTValue("rel right", alloc, rt, active)
	//
	cs.CreateGate("rel: is eq or ne",
		ir.Product(isEq.Expr(), ir.Subtract(isEq.Expr(), one), active),
		ir.Product(isNe.Expr(), ir.Subtract(isNe.Expr(), one), active),
		ir.Product(ir.Subtract(ir.Sum(isEq.Expr(), isNe.Expr()), one), active))
	//
	cs.CreateGate("rel: res is bool",
		ir.Product(res.Expr(), ir.Subtract(res.Expr(), one), active))
	//
	cs.CreateGate("rel: operand types agree",
		ir.Product(ir.Subtract(left.VTypeExpr(), right.VTypeExpr()), active))
	// Pop right operand from the top slot.
	mt.AddStackRead("rel: pop right", active,
		common.EidExpr(),
		ir.Const64(1),
		ir.Subtract(common.SpExpr(), one),
		right.VTypeExpr(),
		right.ValueExpr())
	// Pop left operand from the slot beneath.
	mt.AddStackRead("rel: pop left", active,
		common.EidExpr(),
		ir.Const64(2),
		ir.Subtract(common.SpExpr(), ir.Const64(2)),
		left.VTypeExpr(),
		left.ValueExpr())
	// Push the boolean result, shrinking the stack by one slot.
	mt.AddStackWrite("rel: push res", active,
		common.EidExpr(),
		ir.Const64(3),
		ir.Subtract(common.SpExpr(), ir.Const64(2)),
		ir.Const64(uint64(isa.Bool)),
		res.Expr())
	//
	return &RelOpConfig{left, right, res, isEq, isNe, active}
}

// Opcode implementation for the OpcodeConfig interface.
func (p *RelOpConfig) Opcode() ir.Expr {
	return ir.Product(
		ir.Sum(
			ir.Const(isa.ShiftedConst(uint64(isa.Rel), isa.ClassShift)),
			ir.Product(p.isEq.Expr(), ir.Const(isa.ShiftedConst(uint64(isa.Eq), isa.Arg0Shift))),
			ir.Product(p.isNe.Expr(), ir.Const(isa.ShiftedConst(uint64(isa.Ne), isa.Arg0Shift))),
			ir.Product(p.left.VTypeExpr(), ir.Const(isa.ShiftedConst(1, isa.Arg1Shift))),
		),
		p.active)
}

// SpDiff implementation for the OpcodeConfig interface.
func (p *RelOpConfig) SpDiff() ir.Expr {
	return ir.Product(minusOne(), p.active)
}

// Class implementation for the OpcodeConfig interface.
func (p *RelOpConfig) Class() isa.OpcodeClass {
	return isa.Rel
}

// Assign implementation for the OpcodeConfig interface.
func (p *RelOpConfig) Assign(row *RowContext, entry *isa.EventTableEntry) error {
	step, ok := entry.Step.(isa.RelStep)
	if !ok {
		return errMismatch(entry, isa.Rel)
	}
	//
	switch step.Op {
	case isa.Eq:
		row.AssignBit(p.isEq, true)
	case isa.Ne:
		row.AssignBit(p.isNe, true)
	default:
		return &AssignError{entry.Eid, isa.Rel,
			fmt.Sprintf("unknown relational operator %d", uint64(step.Op))}
	}
	//
	p.left.Assign(row, step.VType, step.Left)
	p.right.Assign(row, step.VType, step.Right)
	row.AssignBit(p.res, step.Result)
	//
	return nil
}
