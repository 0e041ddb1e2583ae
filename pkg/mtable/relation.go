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
package mtable

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/consensys/go-zkwasm/pkg/isa"
)

// Access is one row of the memory relation: a single stack read or write
// performed by some executed step.  Access values are comparable and hence
// usable directly as set keys.
type Access struct {
	// Type distinguishes reads from writes.
	Type AccessType
	// Eid of the executing step.
	Eid uint64
	// Index ordering this access within the step (1 = first).
	Index uint64
	// Address of the stack slot accessed.
	Address uint64
	// VType tag of the value accessed.
	VType uint64
	// Value accessed.
	Value fr.Element
}

func (p Access) String() string {
	return fmt.Sprintf("(%s eid=%d idx=%d addr=%d vtype=%d value=%s)",
		p.Type, p.Eid, p.Index, p.Address, p.VType, p.Value.String())
}

// Relation is the target side of the memory lookup argument: the set of all
// stack accesses performed across the whole trace.  It is built by replaying
// the event log, and is append-only during construction and read-only
// thereafter.
type Relation struct {
	accesses map[Access]struct{}
}

// NewRelation replays an event log, recording every stack access each step
// performs.  The access indices used here must mirror those wired by the
// corresponding opcode modules at configuration time.
func NewRelation(entries []isa.EventTableEntry) *Relation {
	p := &Relation{make(map[Access]struct{})}
	//
	for _, entry := range entries {
		p.insertStep(entry)
	}
	//
	return p
}

// Contains checks whether a given access appears in this relation.
func (p *Relation) Contains(access Access) bool {
	_, ok := p.accesses[access]
	return ok
}

// Size returns the number of distinct accesses in this relation.
func (p *Relation) Size() uint {
	return uint(len(p.accesses))
}

func (p *Relation) insertStep(entry isa.EventTableEntry) {
	var (
		eid = uint64(entry.Eid)
		sp  = uint64(entry.Sp)
	)
	//
	switch step := entry.Step.(type) {
	case isa.ConstStep:
		// Push immediate at the next free slot.
		p.insert(Write, eid, 1, sp, step.VType, step.Value)
	case isa.RelStep:
		// Pop right operand, pop left operand, push boolean result.
		p.insert(Read, eid, 1, sp-1, step.VType, step.Right)
		p.insert(Read, eid, 2, sp-2, step.VType, step.Left)
		p.insert(Write, eid, 3, sp-2, isa.Bool, boolValue(step.Result))
	case isa.DropStep:
		// Discards the top slot without touching memory.
	default:
		panic(fmt.Sprintf("unknown step payload %T", entry.Step))
	}
}

func (p *Relation) insert(access AccessType, eid, index, address uint64, vtype isa.VarType, value uint64) {
	var elem fr.Element
	//
	elem.SetUint64(value)
	//
	p.accesses[Access{access, eid, index, address, uint64(vtype), elem}] = struct{}{}
}

func boolValue(b bool) uint64 {
	if b {
		return 1
	}
	//
	return 0
}
