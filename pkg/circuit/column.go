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
package circuit

import (
	"fmt"

	"github.com/consensys/go-zkwasm/pkg/ir"
)

// Column identifies one advice column within a constraint system.  Columns
// are allocated once, at configuration time, and thereafter referenced by
// index from expressions and assignments.
type Column struct {
	// Index of this column within the enclosing constraint system.
	Index uint
	// Name of this column, which is useful primarily for debugging.
	Name string
}

// Expr constructs an expression reading this column on the current row.
func (p Column) Expr() ir.Expr {
	return ir.NewColumnAccess(p.Index, p.Name)
}

// Allocator hands out advice columns from a bounded arena using a
// monotonically advancing cursor.  A single allocator is threaded through
// every opcode module's configuration, meaning distinct modules can never
// alias columns.  Exhausting the arena indicates a circuit wiring defect and
// hence panics.
type Allocator struct {
	system *ConstraintSystem
	prefix string
	// Number of columns allocated so far.
	count uint
	// Maximum number of columns which can be allocated.
	limit uint
}

// NewAllocator constructs an allocator which can hand out at most limit
// advice columns from the given constraint system.
func NewAllocator(system *ConstraintSystem, prefix string, limit uint) *Allocator {
	return &Allocator{system, prefix, 0, limit}
}

// Next allocates a fresh advice column, which is automatically assigned a
// unique name.
func (p *Allocator) Next() Column {
	if p.count >= p.limit {
		panic(fmt.Sprintf("advice columns exhausted (limit %d)", p.limit))
	}
	// Determine unique name for new column
	name := fmt.Sprintf("%s$%d", p.prefix, p.count)
	//
	p.count++
	//
	return p.system.AdviceColumn(name)
}

// Allocated returns the number of columns allocated so far.
func (p *Allocator) Allocated() uint {
	return p.count
}
