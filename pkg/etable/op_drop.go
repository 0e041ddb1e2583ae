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

// DropOpConfig is the drop module: it discards the value on top of the
// stack.  The slot's contents are untouched, so no memory lookup is needed;
// the module's entire effect is its stack-pointer delta.
type DropOpConfig struct {
	active ir.Expr
}

// DropOpConfigBuilder builds the drop module.
type DropOpConfigBuilder struct{}

// Configure implementation for the ConfigBuilder interface.
func (DropOpConfigBuilder) Configure(
	_ *circuit.ConstraintSystem,
	_ *CommonConfig,
	classBit circuit.Column,
	_ *circuit.Allocator,
	_ *rtable.RangeTableConfig,
	_ *itable.InstructionTableConfig,
	_ *mtable.MemoryTableConfig,
	_ *jtable.JumpTableConfig,
	enable ir.Expr,
) OpcodeConfig {
	return &DropOpConfig{ir.Product(classBit.Expr(), enable)}
}

// Opcode implementation for the OpcodeConfig interface.
func (p *DropOpConfig) Opcode() ir.Expr {
	return ir.Product(
		ir.Const(isa.ShiftedConst(uint64(isa.Drop), isa.ClassShift)),
		p.active)
}

// SpDiff implementation for the OpcodeConfig interface.
func (p *DropOpConfig) SpDiff() ir.Expr {
	return ir.Product(minusOne(), p.active)
}

// Class implementation for the OpcodeConfig interface.
func (p *DropOpConfig) Class() isa.OpcodeClass {
	return isa.Drop
}

// Assign implementation for the OpcodeConfig interface.
func (p *DropOpConfig) Assign(_ *RowContext, entry *isa.EventTableEntry) error {
	if _, ok := entry.Step.(isa.DropStep); !ok {
		return errMismatch(entry, isa.Drop)
	}
	//
	return nil
}
