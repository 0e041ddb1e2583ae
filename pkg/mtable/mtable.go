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

// Package mtable provides the memory-table lookup contract.  Opcode modules
// contribute one row per stack operand they touch, tagged with an access
// index ordering accesses within the step; the memory table owns the global
// read-after-write consistency proof across the whole trace.  Modules only
// contribute rows, they never verify consistency themselves.
package mtable

import (
	"fmt"

	"github.com/consensys/go-zkwasm/pkg/circuit"
	"github.com/consensys/go-zkwasm/pkg/ir"
)

// AccessType distinguishes reads from writes within the memory relation.
type AccessType uint8

const (
	// Read covers stack pops.
	Read AccessType = 1
	// Write covers stack pushes.
	Write AccessType = 2
)

func (p AccessType) String() string {
	if p == Read {
		return "read"
	}
	//
	return "write"
}

// LookupVector is one source vector contributed into the memory relation: on
// every row where Enable is non-zero, the evaluated tuple (eid, access index,
// address, vtype, value) must appear in the relation with the given access
// type.
type LookupVector struct {
	// Handle identifies this lookup for reporting.
	Handle string
	// Access indicates whether this is a read or a write.
	Access AccessType
	// Enable is the activation predicate for this vector.
	Enable ir.Expr
	// Eid is the executing step identifier.
	Eid ir.Expr
	// AccessIndex orders accesses within the step (1 = first).
	AccessIndex ir.Expr
	// Address is the stack slot accessed.
	Address ir.Expr
	// VType is the type tag of the value accessed.
	VType ir.Expr
	// Value is the bit pattern of the value accessed.
	Value ir.Expr
}

// MemoryTableConfig accumulates the lookup vectors contributed by opcode
// modules.  Registration is append-only during the configuration phase and
// the config is read-only thereafter.
type MemoryTableConfig struct {
	vectors []LookupVector
}

// NewMemoryTableConfig constructs an empty memory table configuration.
func NewMemoryTableConfig() *MemoryTableConfig {
	return &MemoryTableConfig{}
}

// AddStackRead registers a lookup proving a stack pop: whenever enable is
// non-zero, the tuple must appear as a read in the memory relation.
func (p *MemoryTableConfig) AddStackRead(handle string, enable, eid, accessIndex, address, vtype, value ir.Expr) {
	p.vectors = append(p.vectors,
		LookupVector{handle, Read, enable, eid, accessIndex, address, vtype, value})
}

// AddStackWrite registers a lookup proving a stack push: whenever enable is
// non-zero, the tuple must appear as a write in the memory relation.
func (p *MemoryTableConfig) AddStackWrite(handle string, enable, eid, accessIndex, address, vtype, value ir.Expr) {
	p.vectors = append(p.vectors,
		LookupVector{handle, Write, enable, eid, accessIndex, address, vtype, value})
}

// Vectors returns all lookup vectors registered so far.
func (p *MemoryTableConfig) Vectors() []LookupVector {
	return p.vectors
}

// Accepts checks that, for every registered vector and every active row of
// the trace, the evaluated tuple appears in the given memory relation.  This
// is the source side of the lookup argument; consistency of the relation
// itself is the memory table's own proof.  Vectors only read the (frozen)
// relation and the trace, and hence are checked in parallel.
func (p *MemoryTableConfig) Accepts(tr ir.Trace, relation *Relation) circuit.Failure {
	return circuit.ParCheck(len(p.vectors), func(i int) circuit.Failure {
		vec := p.vectors[i]
		//
		for k := 0; k < int(tr.Height()); k++ {
			if err := checkSourceVector(k, vec, relation, tr); err != nil {
				return err
			}
		}
		// Success
		return nil
	})
}

func checkSourceVector(k int, vec LookupVector, relation *Relation, tr ir.Trace) circuit.Failure {
	sel, err := vec.Enable.EvalAt(k, tr)
	//
	if err != nil {
		return &circuit.InternalFailure{Handle: vec.Handle, Row: uint(k), Error: err.Error()}
	} else if sel.IsZero() {
		// Row not selected
		return nil
	}
	// Evaluate the source tuple
	access, err := evalAccess(k, vec, tr)
	if err != nil {
		return &circuit.InternalFailure{Handle: vec.Handle, Row: uint(k), Error: err.Error()}
	}
	// Check whether contained
	if !relation.Contains(access) {
		return &Failure{vec.Handle, uint(k), access}
	}
	// Success
	return nil
}

func evalAccess(k int, vec LookupVector, tr ir.Trace) (Access, error) {
	var (
		access = Access{Type: vec.Access}
		err    error
	)
	//
	if access.Eid, err = evalUint(k, vec.Eid, tr); err != nil {
		return access, err
	}
	//
	if access.Index, err = evalUint(k, vec.AccessIndex, tr); err != nil {
		return access, err
	}
	//
	if access.Address, err = evalUint(k, vec.Address, tr); err != nil {
		return access, err
	}
	//
	if access.VType, err = evalUint(k, vec.VType, tr); err != nil {
		return access, err
	}
	//
	access.Value, err = vec.Value.EvalAt(k, tr)
	//
	return access, err
}

func evalUint(k int, expr ir.Expr, tr ir.Trace) (uint64, error) {
	val, err := expr.EvalAt(k, tr)
	//
	if err != nil {
		return 0, err
	} else if !val.IsUint64() {
		return 0, fmt.Errorf("%s does not fit a machine word (%s)", expr.String(), val.String())
	}
	//
	return val.Uint64(), nil
}

// Failure indicates an emitted memory access was absent from the relation.
type Failure struct {
	// Handle of the failing lookup.
	Handle string
	// Row of the trace on which the lookup failed.
	Row uint
	// The access which was not found.
	Access Access
}

// Message implementation for the circuit.Failure interface.
func (p *Failure) Message() string {
	return fmt.Sprintf("memory lookup %q failed on row %d: %s not in relation", p.Handle, p.Row, p.Access)
}

func (p *Failure) String() string {
	return p.Message()
}
