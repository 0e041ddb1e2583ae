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
	"sync/atomic"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/go-zkwasm/pkg/ir"
)

func TestAllocatorCursor(t *testing.T) {
	var (
		cs    = NewConstraintSystem()
		alloc = NewAllocator(cs, "adv", 2)
	)
	//
	first := alloc.Next()
	second := alloc.Next()
	// Allocations advance monotonically and never alias.
	assert.Equal(t, uint(0), first.Index)
	assert.Equal(t, uint(1), second.Index)
	assert.Equal(t, uint(2), alloc.Allocated())
	assert.NotEqual(t, first.Name, second.Name)
	// Exhausting the arena is a wiring defect.
	assert.Panics(t, func() { alloc.Next() })
}

func TestGateAccepts(t *testing.T) {
	var (
		cs  = NewConstraintSystem()
		x   = cs.AdviceColumn("x")
		one = ir.Const64(1)
	)
	// x is a bit
	cs.CreateGate("x is bool", ir.Product(x.Expr(), ir.Subtract(x.Expr(), one)))
	//
	matrix := cs.NewMatrix(3)
	matrix.Set(x, 0, fr.NewElement(0))
	matrix.Set(x, 1, fr.NewElement(1))
	matrix.Set(x, 2, fr.NewElement(0))
	//
	require.Nil(t, cs.Accepts(matrix))
	// Now break it
	matrix.Set(x, 2, fr.NewElement(2))
	//
	failure := cs.Accepts(matrix)
	require.NotNil(t, failure)
	//
	vf, ok := failure.(*VanishingFailure)
	require.True(t, ok)
	assert.Equal(t, "x is bool", vf.Handle)
	assert.Equal(t, uint(2), vf.Row)
}

func TestMatrixBounds(t *testing.T) {
	var (
		cs = NewConstraintSystem()
		x  = cs.AdviceColumn("x")
	)
	//
	matrix := cs.NewMatrix(1)
	// Unassigned cells default to zero.
	val, err := matrix.Cell(x.Index, 0)
	require.NoError(t, err)
	assert.True(t, val.IsZero())
	// Out-of-bounds accesses are errors, not panics.
	_, err = matrix.Cell(x.Index, 1)
	assert.Error(t, err)
	_, err = matrix.Cell(x.Index+1, 0)
	assert.Error(t, err)
	// Out-of-bounds assignment is a dispatch defect.
	assert.Panics(t, func() { matrix.Set(x, 1, fr.NewElement(0)) })
}

func TestEmptyGatePanics(t *testing.T) {
	cs := NewConstraintSystem()
	assert.Panics(t, func() { cs.CreateGate("empty") })
}

func TestParCheck(t *testing.T) {
	var ran atomic.Uint32
	// All checks pass
	failure := ParCheck(8, func(int) Failure {
		ran.Add(1)
		return nil
	})
	require.Nil(t, failure)
	assert.Equal(t, uint32(8), ran.Load())
	// A failing check surfaces, whilst every check still runs.
	ran.Store(0)
	//
	failure = ParCheck(8, func(i int) Failure {
		ran.Add(1)
		//
		if i == 3 {
			return &InternalFailure{"broken", uint(i), "boom"}
		}
		//
		return nil
	})
	require.NotNil(t, failure)
	assert.Contains(t, failure.Message(), "broken")
	assert.Equal(t, uint32(8), ran.Load())
	// Vacuous case
	assert.Nil(t, ParCheck(0, func(int) Failure { return nil }))
}
