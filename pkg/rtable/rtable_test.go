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
package rtable

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/go-zkwasm/pkg/circuit"
	"github.com/consensys/go-zkwasm/pkg/isa"
)

func TestRangeConstraint(t *testing.T) {
	var (
		cs     = circuit.NewConstraintSystem()
		enable = cs.AdviceColumn("enable")
		value  = cs.AdviceColumn("value")
		rt     = NewRangeTableConfig()
	)
	//
	rt.AddRangeConstraint("value fits u8", enable.Expr(), value.Expr(), 8)
	//
	matrix := cs.NewMatrix(2)
	matrix.Set(enable, 0, fr.NewElement(1))
	matrix.Set(value, 0, fr.NewElement(255))
	// Inactive row may hold anything.
	matrix.Set(value, 1, fr.NewElement(1000))
	//
	require.Nil(t, rt.Accepts(matrix))
	// Push the active row out of range.
	matrix.Set(value, 0, fr.NewElement(256))
	//
	failure := rt.Accepts(matrix)
	require.NotNil(t, failure)
	assert.Contains(t, failure.Message(), "value fits u8")
}

func TestTypedRangeConstraint(t *testing.T) {
	var (
		cs     = circuit.NewConstraintSystem()
		enable = cs.AdviceColumn("enable")
		vtype  = cs.AdviceColumn("vtype")
		value  = cs.AdviceColumn("value")
		rt     = NewRangeTableConfig()
	)
	//
	rt.AddTypedRangeConstraint("operand", enable.Expr(), vtype.Expr(), value.Expr())
	//
	matrix := cs.NewMatrix(1)
	matrix.Set(enable, 0, fr.NewElement(1))
	matrix.Set(vtype, 0, fr.NewElement(uint64(isa.I32)))
	matrix.Set(value, 0, fr.NewElement(0xffffffff))
	//
	require.Nil(t, rt.Accepts(matrix))
	// A 33-bit value does not fit an i32.
	matrix.Set(value, 0, fr.NewElement(1<<32))
	assert.NotNil(t, rt.Accepts(matrix))
	// Booleans are bits.
	matrix.Set(vtype, 0, fr.NewElement(uint64(isa.Bool)))
	matrix.Set(value, 0, fr.NewElement(1))
	assert.Nil(t, rt.Accepts(matrix))
	matrix.Set(value, 0, fr.NewElement(2))
	assert.NotNil(t, rt.Accepts(matrix))
	// The zero tag is reserved and hence invalid on an active row.
	matrix.Set(vtype, 0, fr.NewElement(0))
	matrix.Set(value, 0, fr.NewElement(0))
	assert.NotNil(t, rt.Accepts(matrix))
	// Unless the row is inactive.
	matrix.Set(enable, 0, fr.NewElement(0))
	assert.Nil(t, rt.Accepts(matrix))
}
