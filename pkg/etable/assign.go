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

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-zkwasm/pkg/circuit"
	"github.com/consensys/go-zkwasm/pkg/isa"
)

// RowContext gives an opcode module write access to the cells of the one row
// it is assigning.
type RowContext struct {
	matrix *circuit.Matrix
	row    int
}

// Assign writes a field element into a given column on this row.
func (p *RowContext) Assign(col circuit.Column, val fr.Element) {
	p.matrix.Set(col, p.row, val)
}

// AssignU64 writes an unsigned integer into a given column on this row.
func (p *RowContext) AssignU64(col circuit.Column, val uint64) {
	var elem fr.Element
	//
	elem.SetUint64(val)
	//
	p.matrix.Set(col, p.row, elem)
}

// AssignBit writes a boolean into a given column on this row.
func (p *RowContext) AssignBit(col circuit.Column, val bool) {
	if val {
		p.AssignU64(col, 1)
	} else {
		p.AssignU64(col, 0)
	}
}

// AssignError reports a failed witness assignment, naming the trace entry
// (by eid) and opcode module responsible so the failure can be traced back
// to a specific executed instruction.
type AssignError struct {
	// Eid of the offending trace entry.
	Eid uint
	// Class of the module which rejected the entry.
	Class isa.OpcodeClass
	// Detail describing the rejection.
	Detail string
}

func (p *AssignError) Error() string {
	return fmt.Sprintf("assigning step %d (%s): %s", p.Eid, p.Class, p.Detail)
}

// errMismatch constructs the internal-consistency error raised when a trace
// entry's payload variant does not match the dispatched module.  The
// dispatcher guarantees the match, so reaching this indicates a defect, but
// it is checked rather than assumed to avoid silently miscompiling the
// witness.
func errMismatch(entry *isa.EventTableEntry, class isa.OpcodeClass) error {
	return &AssignError{entry.Eid, class,
		fmt.Sprintf("unexpected payload variant %T", entry.Step)}
}

// Assign fills one row of the witness for every entry of the execution
// trace, dispatching each entry to the opcode module whose class matches.
// Any failure aborts witness generation for the whole trace; there is no
// partial assignment.
func (p *EventTableConfig) Assign(entries []isa.EventTableEntry) (*circuit.Matrix, error) {
	matrix := p.cs.NewMatrix(uint(len(entries)))
	//
	for k := range entries {
		entry := &entries[k]
		class := entry.Step.Class()
		//
		config, ok := p.configs[class]
		if !ok {
			return nil, &AssignError{entry.Eid, class, "no opcode module registered"}
		}
		//
		row := &RowContext{matrix, k}
		// Common columns
		row.AssignU64(p.common.Eid, uint64(entry.Eid))
		row.AssignU64(p.common.Sp, uint64(entry.Sp))
		row.AssignU64(p.common.Enable, 1)
		row.AssignU64(p.classBits[class], 1)
		// Module columns
		if err := config.Assign(row, entry); err != nil {
			return nil, err
		}
		//
		log.Debugf("assigned row %d (eid %d, %s)", k, entry.Eid, class)
	}
	//
	return matrix, nil
}
