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

// Package itable provides the instruction-table lookup contract: every
// decoded opcode appearing on an active event-table row must be an
// instruction of the program being executed.  One aggregate lookup suffices
// because every opcode module's encoding expression is scaled by its own
// enable predicate, so summing contributions across modules yields the one
// decoded opcode of each row.
package itable

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/consensys/go-zkwasm/pkg/circuit"
	"github.com/consensys/go-zkwasm/pkg/ir"
)

// instructionLookup requires, on every row where enable is non-zero, that
// the decoded opcode appears in the instruction relation.
type instructionLookup struct {
	handle string
	enable ir.Expr
	opcode ir.Expr
}

// InstructionTableConfig accumulates instruction-fetch lookups.
type InstructionTableConfig struct {
	lookups []instructionLookup
}

// NewInstructionTableConfig constructs an empty instruction table
// configuration.
func NewInstructionTableConfig() *InstructionTableConfig {
	return &InstructionTableConfig{}
}

// AddInstructionLookup registers a lookup proving the decoded opcode matches
// a fetched instruction whenever enable is non-zero.
func (p *InstructionTableConfig) AddInstructionLookup(handle string, enable ir.Expr, opcode ir.Expr) {
	p.lookups = append(p.lookups, instructionLookup{handle, enable, opcode})
}

// Accepts checks every registered lookup against a concrete trace and the
// set of program instructions, returning a failure if one arose.  Lookups
// only read the (frozen) instruction set and the trace, and hence are
// checked in parallel.
func (p *InstructionTableConfig) Accepts(tr ir.Trace, program []fr.Element) circuit.Failure {
	instructions := make(map[fr.Element]struct{}, len(program))
	//
	for _, insn := range program {
		instructions[insn] = struct{}{}
	}
	//
	return circuit.ParCheck(len(p.lookups), func(i int) circuit.Failure {
		return p.lookups[i].accepts(tr, instructions)
	})
}

func (p *instructionLookup) accepts(tr ir.Trace, instructions map[fr.Element]struct{}) circuit.Failure {
	for k := 0; k < int(tr.Height()); k++ {
		sel, err := p.enable.EvalAt(k, tr)
		//
		if err != nil {
			return &circuit.InternalFailure{Handle: p.handle, Row: uint(k), Error: err.Error()}
		} else if sel.IsZero() {
			continue
		}
		//
		opcode, err := p.opcode.EvalAt(k, tr)
		if err != nil {
			return &circuit.InternalFailure{Handle: p.handle, Row: uint(k), Error: err.Error()}
		}
		//
		if _, ok := instructions[opcode]; !ok {
			return &Failure{p.handle, uint(k), opcode}
		}
	}
	// Success
	return nil
}

// Failure indicates a decoded opcode was absent from the program.
type Failure struct {
	// Handle of the failing lookup.
	Handle string
	// Row of the trace on which the lookup failed.
	Row uint
	// The decoded opcode which was not found.
	Opcode fr.Element
}

// Message implementation for the circuit.Failure interface.
func (p *Failure) Message() string {
	return fmt.Sprintf("instruction lookup %q failed on row %d: opcode %s not in program",
		p.Handle, p.Row, p.Opcode.String())
}

func (p *Failure) String() string {
	return p.Message()
}
