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
package ir

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// ColumnAccess represents reading the value of a given column on the current
// row.
type ColumnAccess struct {
	// Column index being accessed.
	Column uint
	// Name of the column being accessed, for reporting only.
	Name string
}

// NewColumnAccess constructs an expression reading a given column on the
// current row.
func NewColumnAccess(column uint, name string) Expr {
	return &ColumnAccess{column, name}
}

// EvalAt implementation for Expr interface.
func (p *ColumnAccess) EvalAt(row int, tr Trace) (fr.Element, error) {
	return tr.Cell(p.Column, row)
}

// String implementation for Expr interface.
func (p *ColumnAccess) String() string {
	return p.Name
}
