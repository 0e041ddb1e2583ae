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
	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-zkwasm/pkg/ir"
)

// ConstraintSystem accumulates the columns and gates declared during the
// configuration phase.  It is the single owned builder object threaded (by
// exclusive reference) through every opcode module's configure call, and is
// read-only once witness generation begins.
type ConstraintSystem struct {
	// Names of all declared advice columns, in allocation order.
	columns []string
	// All gates declared so far.
	gates []Gate
}

// NewConstraintSystem constructs an empty constraint system.
func NewConstraintSystem() *ConstraintSystem {
	return &ConstraintSystem{}
}

// AdviceColumn declares a fresh advice column with a given name.
func (p *ConstraintSystem) AdviceColumn(name string) Column {
	index := uint(len(p.columns))
	p.columns = append(p.columns, name)
	//
	return Column{index, name}
}

// Width returns the number of columns declared in this constraint system.
func (p *ConstraintSystem) Width() uint {
	return uint(len(p.columns))
}

// ColumnName returns the name of a given column.
func (p *ConstraintSystem) ColumnName(index uint) string {
	return p.columns[index]
}

// CreateGate declares a gate comprising one or more constraints, each of
// which must vanish on every row of a valid trace.  Constraints are expected
// to be pre-scaled by the relevant enable predicate so that inactive rows
// remain unconstrained.
func (p *ConstraintSystem) CreateGate(handle string, constraints ...ir.Expr) {
	if len(constraints) == 0 {
		panic("gate declared without any constraints")
	}
	//
	log.Debugf("gate %q declared with %d constraint(s)", handle, len(constraints))
	//
	p.gates = append(p.gates, Gate{handle, constraints})
}

// Gates returns all gates declared in this constraint system.
func (p *ConstraintSystem) Gates() []Gate {
	return p.gates
}

// NewMatrix constructs a zeroed trace matrix with one cell for every column
// of this constraint system on every row.
func (p *ConstraintSystem) NewMatrix(height uint) *Matrix {
	return newMatrix(p.columns, height)
}
