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

// Package jtable provides the jump-table lookup contract, proving
// control-flow targets valid.  None of the opcode modules implemented here
// performs a jump, so the relation is empty in practice; call/branch modules
// wire into it the same way they wire into the memory table.
package jtable

import (
	"fmt"

	"github.com/consensys/go-zkwasm/pkg/circuit"
	"github.com/consensys/go-zkwasm/pkg/ir"
)

// Jump is one row of the jump relation: a control-flow transfer performed by
// some executed step.
type Jump struct {
	// Eid of the executing step.
	Eid uint64
	// Target of the transfer.
	Target uint64
}

func (p Jump) String() string {
	return fmt.Sprintf("(jump eid=%d target=%d)", p.Eid, p.Target)
}

// jumpLookup requires, on every row where enable is non-zero, that the
// (eid, target) pair appears in the jump relation.
type jumpLookup struct {
	handle string
	enable ir.Expr
	eid    ir.Expr
	target ir.Expr
}

// JumpTableConfig accumulates control-flow lookups.
type JumpTableConfig struct {
	lookups []jumpLookup
}

// NewJumpTableConfig constructs an empty jump table configuration.
func NewJumpTableConfig() *JumpTableConfig {
	return &JumpTableConfig{}
}

// AddJumpLookup registers a lookup proving a control-flow transfer to target
// whenever enable is non-zero.
func (p *JumpTableConfig) AddJumpLookup(handle string, enable ir.Expr, eid ir.Expr, target ir.Expr) {
	p.lookups = append(p.lookups, jumpLookup{handle, enable, eid, target})
}

// Len returns the number of lookups registered so far.
func (p *JumpTableConfig) Len() uint {
	return uint(len(p.lookups))
}

// Accepts checks every registered lookup against a concrete trace and the
// set of performed jumps, returning a failure if one arose.  Lookups only
// read the (frozen) jump set and the trace, and hence are checked in
// parallel.
func (p *JumpTableConfig) Accepts(tr ir.Trace, jumps []Jump) circuit.Failure {
	relation := make(map[Jump]struct{}, len(jumps))
	//
	for _, jump := range jumps {
		relation[jump] = struct{}{}
	}
	//
	return circuit.ParCheck(len(p.lookups), func(i int) circuit.Failure {
		return p.lookups[i].accepts(tr, relation)
	})
}

func (p *jumpLookup) accepts(tr ir.Trace, relation map[Jump]struct{}) circuit.Failure {
	for k := 0; k < int(tr.Height()); k++ {
		sel, err := p.enable.EvalAt(k, tr)
		//
		if err != nil {
			return &circuit.InternalFailure{Handle: p.handle, Row: uint(k), Error: err.Error()}
		} else if sel.IsZero() {
			continue
		}
		//
		jump, err := p.evalJump(k, tr)
		if err != nil {
			return &circuit.InternalFailure{Handle: p.handle, Row: uint(k), Error: err.Error()}
		}
		//
		if _, ok := relation[jump]; !ok {
			return &Failure{p.handle, uint(k), jump}
		}
	}
	// Success
	return nil
}

func (p *jumpLookup) evalJump(k int, tr ir.Trace) (Jump, error) {
	var jump Jump
	//
	eid, err := p.eid.EvalAt(k, tr)
	if err != nil {
		return jump, err
	}
	//
	target, err := p.target.EvalAt(k, tr)
	if err != nil {
		return jump, err
	}
	//
	if !eid.IsUint64() || !target.IsUint64() {
		return jump, fmt.Errorf("jump (%s,%s) does not fit machine words", eid.String(), target.String())
	}
	//
	return Jump{eid.Uint64(), target.Uint64()}, nil
}

// Failure indicates an emitted control-flow transfer was absent from the
// relation.
type Failure struct {
	// Handle of the failing lookup.
	Handle string
	// Row of the trace on which the lookup failed.
	Row uint
	// The jump which was not found.
	Jump Jump
}

// Message implementation for the circuit.Failure interface.
func (p *Failure) Message() string {
	return fmt.Sprintf("jump lookup %q failed on row %d: %s not in relation", p.Handle, p.Row, p.Jump)
}

func (p *Failure) String() string {
	return p.Message()
}
