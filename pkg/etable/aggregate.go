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
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/consensys/go-zkwasm/pkg/circuit"
	"github.com/consensys/go-zkwasm/pkg/ir"
	"github.com/consensys/go-zkwasm/pkg/isa"
	"github.com/consensys/go-zkwasm/pkg/itable"
	"github.com/consensys/go-zkwasm/pkg/jtable"
	"github.com/consensys/go-zkwasm/pkg/mtable"
	"github.com/consensys/go-zkwasm/pkg/rtable"
)

// maxAdviceColumns bounds the advice arena handed to the opcode modules.
const maxAdviceColumns = 64

// Circuit aggregates the constraint system, the shared lookup tables and the
// configured event table into one checkable unit.  Construction runs the
// configuration phase to completion; assignment and checking are strictly
// subsequent phases.
type Circuit struct {
	// CS is the underlying constraint system.
	CS *circuit.ConstraintSystem
	// Range is the shared range table.
	Range *rtable.RangeTableConfig
	// Instr is the shared instruction table.
	Instr *itable.InstructionTableConfig
	// Memory is the shared memory table.
	Memory *mtable.MemoryTableConfig
	// Jump is the shared jump table.
	Jump *jtable.JumpTableConfig
	// Etable is the configured event table.
	Etable *EventTableConfig
}

// NewCircuit configures a circuit from a given set of opcode modules.
func NewCircuit(builders ...ConfigBuilder) *Circuit {
	var (
		cs    = circuit.NewConstraintSystem()
		rt    = rtable.NewRangeTableConfig()
		it    = itable.NewInstructionTableConfig()
		mt    = mtable.NewMemoryTableConfig()
		jt    = jtable.NewJumpTableConfig()
		alloc = circuit.NewAllocator(cs, "adv", maxAdviceColumns)
	)
	//
	et := Configure(cs, alloc, rt, it, mt, jt, builders)
	//
	return &Circuit{cs, rt, it, mt, jt, et}
}

// Assign generates the witness for a given execution trace.
func (p *Circuit) Assign(entries []isa.EventTableEntry) (*circuit.Matrix, error) {
	return p.Etable.Assign(entries)
}

// Accepts checks a witness against every gate and every lookup of this
// circuit, with the lookup target relations derived from the execution
// trace.  Phases run in order, with the checks of each phase running in
// parallel; a failure (if any arose) is returned.
func (p *Circuit) Accepts(tr ir.Trace, entries []isa.EventTableEntry) circuit.Failure {
	// Gates
	if err := p.CS.Accepts(tr); err != nil {
		return err
	}
	// Range lookups
	if err := p.Range.Accepts(tr); err != nil {
		return err
	}
	// Memory lookups
	if err := p.Memory.Accepts(tr, mtable.NewRelation(entries)); err != nil {
		return err
	}
	// Instruction-fetch lookups
	if err := p.Instr.Accepts(tr, Program(entries)); err != nil {
		return err
	}
	// Control-flow lookups.  No implemented module transfers control, so the
	// relation is empty.
	return p.Jump.Accepts(tr, nil)
}

// Program extracts the instruction-fetch relation from an execution trace,
// being the encoded opcode of every executed step.
func Program(entries []isa.EventTableEntry) []fr.Element {
	program := make([]fr.Element, len(entries))
	//
	for i, entry := range entries {
		program[i] = isa.EncodeStep(entry.Step)
	}
	//
	return program
}
