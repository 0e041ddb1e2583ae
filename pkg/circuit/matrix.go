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

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Matrix holds the concrete witness: one field element for every (column,
// row) cell.  Cells are zero until assigned.  A matrix is write-once during
// the assignment phase and read-only during checking.
type Matrix struct {
	names   []string
	height  uint
	columns [][]fr.Element
}

func newMatrix(names []string, height uint) *Matrix {
	columns := make([][]fr.Element, len(names))
	//
	for i := range columns {
		columns[i] = make([]fr.Element, height)
	}
	//
	return &Matrix{names, height, columns}
}

// Cell implementation for the ir.Trace interface.
func (p *Matrix) Cell(col uint, row int) (fr.Element, error) {
	var empty fr.Element
	//
	if col >= uint(len(p.columns)) {
		return empty, fmt.Errorf("column %d out-of-bounds (width %d)", col, len(p.columns))
	} else if row < 0 || uint(row) >= p.height {
		return empty, fmt.Errorf("row %d out-of-bounds (height %d)", row, p.height)
	}
	//
	return p.columns[col][row], nil
}

// Height implementation for the ir.Trace interface.
func (p *Matrix) Height() uint {
	return p.height
}

// Set assigns a value to the cell of a given column on a given row.  An
// out-of-bounds cell indicates a defect in assignment dispatch and hence
// panics.
func (p *Matrix) Set(col Column, row int, val fr.Element) {
	if col.Index >= uint(len(p.columns)) || row < 0 || uint(row) >= p.height {
		panic(fmt.Sprintf("cell (%s,%d) out-of-bounds", col.Name, row))
	}
	//
	p.columns[col.Index][row] = val
}
